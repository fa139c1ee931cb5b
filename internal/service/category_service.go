package service

import (
	"errors"
	"fmt"

	"github.com/gosimple/slug"

	"github.com/MorseWayne/flour_shop/internal/domain"
	"github.com/MorseWayne/flour_shop/internal/repo"
)

// 分类相关业务错误
var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryExists   = errors.New("category already exists")
)

// CategoryService 定义分类业务逻辑接口
type CategoryService interface {
	CreateCategory(req *domain.CreateCategoryRequest) (*domain.Category, error)
	ListCategories() ([]*domain.Category, error)
	DeleteCategory(id int64) error
	// CategorySlugs 返回全部分类slug，供筛选词表使用
	CategorySlugs() ([]string, error)
}

// categoryService 实现CategoryService接口
type categoryService struct {
	categoryRepo repo.CategoryRepository
}

// NewCategoryService 创建分类服务实例
func NewCategoryService(categoryRepo repo.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

// CreateCategory 创建分类
func (s *categoryService) CreateCategory(req *domain.CreateCategoryRequest) (*domain.Category, error) {
	categorySlug := req.Slug
	if categorySlug == "" {
		categorySlug = slug.Make(req.Name)
	}

	existing, err := s.categoryRepo.GetBySlug(categorySlug)
	if err != nil {
		return nil, fmt.Errorf("check category slug: %w", err)
	}
	if existing != nil {
		return nil, ErrCategoryExists
	}

	category := &domain.Category{
		Slug:        categorySlug,
		Name:        req.Name,
		Description: req.Description,
	}

	if err := s.categoryRepo.Create(category); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}

	return category, nil
}

// ListCategories 获取全部分类
func (s *categoryService) ListCategories() ([]*domain.Category, error) {
	categories, err := s.categoryRepo.List()
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	if categories == nil {
		categories = []*domain.Category{}
	}
	return categories, nil
}

// DeleteCategory 删除分类
func (s *categoryService) DeleteCategory(id int64) error {
	if err := s.categoryRepo.Delete(id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

// CategorySlugs 返回全部分类slug
func (s *categoryService) CategorySlugs() ([]string, error) {
	categories, err := s.categoryRepo.List()
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	slugs := make([]string, 0, len(categories))
	for _, c := range categories {
		slugs = append(slugs, c.Slug)
	}
	return slugs, nil
}
