package repo

import (
	"database/sql"
	"fmt"

	"github.com/MorseWayne/flour_shop/internal/database"
	"github.com/MorseWayne/flour_shop/internal/domain"
)

// CategoryRepository 定义分类数据访问接口
type CategoryRepository interface {
	Create(category *domain.Category) error
	GetBySlug(slug string) (*domain.Category, error)
	List() ([]*domain.Category, error)
	Delete(id int64) error
}

// categoryRepo 实现CategoryRepository接口
type categoryRepo struct {
	db *database.DB
}

// NewCategoryRepository 创建分类仓储实例
func NewCategoryRepository(db *database.DB) CategoryRepository {
	return &categoryRepo{db: db}
}

// Create 创建分类
func (r *categoryRepo) Create(category *domain.Category) error {
	query := `INSERT INTO categories (slug, name, description) VALUES (?, ?, ?)`

	result, err := r.db.Exec(query, category.Slug, category.Name, category.Description)
	if err != nil {
		return fmt.Errorf("create category: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	category.ID = id
	return nil
}

// GetBySlug 根据slug查询分类，不存在时返回(nil, nil)
func (r *categoryRepo) GetBySlug(slug string) (*domain.Category, error) {
	category := &domain.Category{}
	query := `SELECT id, slug, name, description, created_at FROM categories WHERE slug = ?`

	err := r.db.QueryRow(query, slug).Scan(
		&category.ID,
		&category.Slug,
		&category.Name,
		&category.Description,
		&category.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}

	return category, nil
}

// List 获取全部分类，按名称排序
func (r *categoryRepo) List() ([]*domain.Category, error) {
	query := `SELECT id, slug, name, description, created_at FROM categories ORDER BY name ASC`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var categories []*domain.Category
	for rows.Next() {
		category := &domain.Category{}
		err := rows.Scan(
			&category.ID,
			&category.Slug,
			&category.Name,
			&category.Description,
			&category.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, category)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}

	return categories, nil
}

// Delete 删除分类，商品关联随外键级联删除
func (r *categoryRepo) Delete(id int64) error {
	_, err := r.db.Exec(`DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}
