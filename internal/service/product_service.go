// Package service 实现业务逻辑层，协调各种资源完成业务需求。
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/gosimple/slug"

	"github.com/MorseWayne/flour_shop/internal/catalog"
	"github.com/MorseWayne/flour_shop/internal/domain"
	"github.com/MorseWayne/flour_shop/internal/repo"
)

// 商品相关业务错误
var (
	ErrProductNotFound = errors.New("product not found")
	ErrSlugExists      = errors.New("slug already exists")
	ErrInvalidPrice    = errors.New("price must not be negative")
)

// ProductService 定义商品业务逻辑接口
type ProductService interface {
	// 商品管理
	CreateProduct(req *domain.CreateProductRequest) (*domain.Product, error)
	GetProduct(id int64) (*domain.Product, error)
	GetProductBySlug(slug string) (*domain.Product, error)
	UpdateProduct(id int64, req *domain.UpdateProductRequest) (*domain.Product, error)
	DeleteProduct(id int64) error

	// 目录查询：按筛选状态执行查询并分页
	ListCatalog(ctx context.Context, state catalog.FilterState, page, pageSize int) (*domain.ProductListResponse, error)

	// 商品统计
	GetProductStats() (*domain.ProductStats, error)
}

// productService 实现ProductService接口
type productService struct {
	productRepo repo.ProductRepository
	executor    *catalog.Executor
	pageSize    int
	maxPageSize int
}

// NewProductService 创建商品服务实例
func NewProductService(productRepo repo.ProductRepository, executor *catalog.Executor, pageSize, maxPageSize int) ProductService {
	if pageSize <= 0 {
		pageSize = 12
	}
	if maxPageSize <= 0 {
		maxPageSize = 100
	}
	return &productService{
		productRepo: productRepo,
		executor:    executor,
		pageSize:    pageSize,
		maxPageSize: maxPageSize,
	}
}

// CreateProduct 创建商品
func (s *productService) CreateProduct(req *domain.CreateProductRequest) (*domain.Product, error) {
	if req.Price < 0 {
		return nil, ErrInvalidPrice
	}

	// slug留空时由名称生成
	productSlug := req.Slug
	if productSlug == "" {
		productSlug = slug.Make(req.Name)
	}

	// 验证slug唯一性
	existing, err := s.productRepo.GetBySlug(productSlug)
	if err != nil {
		return nil, fmt.Errorf("check slug uniqueness: %w", err)
	}
	if existing != nil {
		return nil, ErrSlugExists
	}

	currency := req.Currency
	if currency == "" {
		currency = domain.DefaultCurrency
	}

	product := &domain.Product{
		Name:            req.Name,
		Slug:            productSlug,
		Description:     req.Description,
		Price:           domain.Price{Amount: req.Price, Currency: currency},
		Weight:          req.Weight,
		Categories:      req.Categories,
		ImageURL:        req.ImageURL,
		Featured:        req.Featured,
		Stock:           req.Stock,
		MetaTitle:       req.MetaTitle,
		MetaDescription: req.MetaDescription,
	}

	if err := s.productRepo.Create(product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	return product, nil
}

// GetProduct 获取商品详情
func (s *productService) GetProduct(id int64) (*domain.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	return product, nil
}

// GetProductBySlug 根据slug获取商品
func (s *productService) GetProductBySlug(productSlug string) (*domain.Product, error) {
	product, err := s.productRepo.GetBySlug(productSlug)
	if err != nil {
		return nil, fmt.Errorf("get product by slug: %w", err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	return product, nil
}

// UpdateProduct 更新商品
func (s *productService) UpdateProduct(id int64, req *domain.UpdateProductRequest) (*domain.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Slug != nil && *req.Slug != product.Slug {
		// 验证新slug未被占用
		existing, err := s.productRepo.GetBySlug(*req.Slug)
		if err != nil {
			return nil, fmt.Errorf("check slug uniqueness: %w", err)
		}
		if existing != nil && existing.ID != id {
			return nil, ErrSlugExists
		}
		product.Slug = *req.Slug
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, ErrInvalidPrice
		}
		product.Price.Amount = *req.Price
	}
	if req.Currency != nil {
		product.Price.Currency = *req.Currency
	}
	if req.Weight != nil {
		product.Weight = *req.Weight
	}
	if req.Categories != nil {
		product.Categories = *req.Categories
	}
	if req.ImageURL != nil {
		product.ImageURL = *req.ImageURL
	}
	if req.Featured != nil {
		product.Featured = *req.Featured
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.MetaTitle != nil {
		product.MetaTitle = *req.MetaTitle
	}
	if req.MetaDescription != nil {
		product.MetaDescription = *req.MetaDescription
	}

	if err := s.productRepo.Update(product); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}

	return product, nil
}

// DeleteProduct 删除商品
func (s *productService) DeleteProduct(id int64) error {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return fmt.Errorf("get product: %w", err)
	}
	if product == nil {
		return ErrProductNotFound
	}

	return s.productRepo.Delete(id)
}

// ListCatalog 执行目录查询并分页。
// 查询经执行器下发，空结果是正常结果而非错误。
func (s *productService) ListCatalog(ctx context.Context, state catalog.FilterState, page, pageSize int) (*domain.ProductListResponse, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = s.pageSize
	}
	if pageSize > s.maxPageSize {
		pageSize = s.maxPageSize
	}

	items, err := s.executor.Do(ctx, state)
	if err != nil {
		return nil, fmt.Errorf("catalog query: %w", err)
	}

	total := int64(len(items))
	start := (page - 1) * pageSize
	if start > len(items) {
		start = len(items)
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}

	products := items[start:end]
	if products == nil {
		products = []*domain.Product{}
	}

	return &domain.ProductListResponse{
		Products: products,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// GetProductStats 获取商品统计信息
func (s *productService) GetProductStats() (*domain.ProductStats, error) {
	total, err := s.productRepo.Count()
	if err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}

	featured, err := s.productRepo.CountFeatured()
	if err != nil {
		return nil, fmt.Errorf("count featured products: %w", err)
	}

	outOfStock, err := s.productRepo.CountOutOfStock()
	if err != nil {
		return nil, fmt.Errorf("count out of stock products: %w", err)
	}

	avgPrice, err := s.productRepo.AveragePrice()
	if err != nil {
		return nil, fmt.Errorf("average price: %w", err)
	}

	return &domain.ProductStats{
		TotalProducts:    total,
		FeaturedProducts: featured,
		OutOfStock:       outOfStock,
		AveragePrice:     avgPrice,
	}, nil
}
