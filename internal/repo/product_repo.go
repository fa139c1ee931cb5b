// Package repo 实现数据访问层，负责与数据库的交互。
// 仓储模式将数据访问逻辑与业务逻辑分离，接口便于单元测试时模拟。
package repo

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/MorseWayne/flour_shop/internal/catalog"
	"github.com/MorseWayne/flour_shop/internal/database"
	"github.com/MorseWayne/flour_shop/internal/domain"
)

// ProductRepository 定义商品数据访问接口
type ProductRepository interface {
	// 基本CRUD操作
	Create(product *domain.Product) error
	GetByID(id int64) (*domain.Product, error)
	GetBySlug(slug string) (*domain.Product, error)
	Update(product *domain.Product) error
	Delete(id int64) error

	// 目录查询：返回满足筛选条件、按排序键排好序的全部商品
	ListByFilter(ctx context.Context, state catalog.FilterState) ([]*domain.Product, error)

	// 统计操作
	Count() (int64, error)
	CountFeatured() (int64, error)
	CountOutOfStock() (int64, error)
	AveragePrice() (float64, error)
}

// productRepo 实现ProductRepository接口
type productRepo struct {
	db *database.DB
}

// NewProductRepository 创建商品仓储实例
func NewProductRepository(db *database.DB) ProductRepository {
	return &productRepo{db: db}
}

const productColumns = `p.id, p.name, p.slug, p.description, p.price_amount, p.price_currency,
	p.weight, p.image_url, p.featured, p.stock, p.meta_title, p.meta_description,
	p.created_at, p.updated_at`

// Create 创建商品及其分类关联
func (r *productRepo) Create(product *domain.Product) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO products (name, slug, description, price_amount, price_currency, weight,
			image_url, featured, stock, meta_title, meta_description)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	result, err := tx.Exec(query,
		product.Name,
		product.Slug,
		product.Description,
		product.Price.Amount,
		product.Price.Currency,
		product.Weight,
		product.ImageURL,
		product.Featured,
		product.Stock,
		product.MetaTitle,
		product.MetaDescription,
	)
	if err != nil {
		return fmt.Errorf("create product: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}
	product.ID = id

	if err := r.replaceCategories(tx, id, product.Categories); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// replaceCategories 重建商品与分类的关联关系
func (r *productRepo) replaceCategories(tx *sql.Tx, productID int64, categories []string) error {
	if _, err := tx.Exec(`DELETE FROM product_categories WHERE product_id = ?`, productID); err != nil {
		return fmt.Errorf("clear product categories: %w", err)
	}
	for _, slug := range categories {
		_, err := tx.Exec(`
			INSERT INTO product_categories (product_id, category_id)
			SELECT ?, id FROM categories WHERE slug = ?
		`, productID, slug)
		if err != nil {
			return fmt.Errorf("link category %s: %w", slug, err)
		}
	}
	return nil
}

// GetByID 根据ID获取商品
func (r *productRepo) GetByID(id int64) (*domain.Product, error) {
	return r.getOne("p.id = ?", id)
}

// GetBySlug 根据slug获取商品
func (r *productRepo) GetBySlug(slug string) (*domain.Product, error) {
	return r.getOne("p.slug = ?", slug)
}

// getOne 查询单个商品，未找到时返回(nil, nil)
func (r *productRepo) getOne(cond string, arg interface{}) (*domain.Product, error) {
	query := fmt.Sprintf(`
		SELECT %s, COALESCE(GROUP_CONCAT(c.slug ORDER BY c.slug), '') AS categories
		FROM products p
		LEFT JOIN product_categories pc ON pc.product_id = p.id
		LEFT JOIN categories c ON c.id = pc.category_id
		WHERE %s
		GROUP BY p.id
	`, productColumns, cond)

	product, err := scanProduct(r.db.QueryRow(query, arg))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	return product, nil
}

// Update 更新商品及其分类关联
func (r *productRepo) Update(product *domain.Product) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE products
		SET name = ?, slug = ?, description = ?, price_amount = ?, price_currency = ?,
			weight = ?, image_url = ?, featured = ?, stock = ?, meta_title = ?, meta_description = ?
		WHERE id = ?
	`
	_, err = tx.Exec(query,
		product.Name,
		product.Slug,
		product.Description,
		product.Price.Amount,
		product.Price.Currency,
		product.Weight,
		product.ImageURL,
		product.Featured,
		product.Stock,
		product.MetaTitle,
		product.MetaDescription,
		product.ID,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}

	if err := r.replaceCategories(tx, product.ID, product.Categories); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// Delete 删除商品，分类关联随外键级联删除
func (r *productRepo) Delete(id int64) error {
	_, err := r.db.Exec(`DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

// ListByFilter 将筛选状态翻译为SQL谓词执行目录查询。
// 与内存策略语义一致：价格闭区间 AND 分类交集 AND 规格成员，
// 排序在SQL侧完成，featured基准顺序为推荐位优先、ID升序。
func (r *productRepo) ListByFilter(ctx context.Context, state catalog.FilterState) ([]*domain.Product, error) {
	var conditions []string
	var args []interface{}

	conditions = append(conditions, "p.price_amount BETWEEN ? AND ?")
	args = append(args, state.PriceMin, state.PriceMax)

	if len(state.Categories) > 0 {
		conditions = append(conditions, fmt.Sprintf(`EXISTS (
			SELECT 1 FROM product_categories pc2
			JOIN categories c2 ON c2.id = pc2.category_id
			WHERE pc2.product_id = p.id AND c2.slug IN (%s)
		)`, placeholders(len(state.Categories))))
		for _, v := range state.Categories {
			args = append(args, v)
		}
	}

	if len(state.Weights) > 0 {
		conditions = append(conditions, fmt.Sprintf("p.weight IN (%s)", placeholders(len(state.Weights))))
		for _, v := range state.Weights {
			args = append(args, v)
		}
	}

	query := fmt.Sprintf(`
		SELECT %s, COALESCE(GROUP_CONCAT(c.slug ORDER BY c.slug), '') AS categories
		FROM products p
		LEFT JOIN product_categories pc ON pc.product_id = p.id
		LEFT JOIN categories c ON c.id = pc.category_id
		WHERE %s
		GROUP BY p.id
		ORDER BY %s
	`, productColumns, strings.Join(conditions, " AND "), orderClause(state.Sort))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var products []*domain.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return products, nil
}

// orderClause 将排序键映射为ORDER BY子句。
// 稳定性由确定性的次级排序键保证。
func orderClause(key catalog.SortKey) string {
	switch key {
	case catalog.SortPriceAsc:
		return "p.price_amount ASC, p.id ASC"
	case catalog.SortPriceDesc:
		return "p.price_amount DESC, p.id ASC"
	case catalog.SortNewest:
		return "p.created_at DESC, p.id DESC"
	default: // featured
		return "p.featured DESC, p.id ASC"
	}
}

// Count 获取商品总数
func (r *productRepo) Count() (int64, error) {
	return r.countWhere("1=1")
}

// CountFeatured 统计推荐位商品数量
func (r *productRepo) CountFeatured() (int64, error) {
	return r.countWhere("featured = 1")
}

// CountOutOfStock 统计缺货商品数量
func (r *productRepo) CountOutOfStock() (int64, error) {
	return r.countWhere("stock = 0")
}

func (r *productRepo) countWhere(cond string) (int64, error) {
	var count int64
	err := r.db.QueryRow("SELECT COUNT(*) FROM products WHERE " + cond).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return count, nil
}

// AveragePrice 获取商品平均价格
func (r *productRepo) AveragePrice() (float64, error) {
	var avg sql.NullFloat64
	err := r.db.QueryRow("SELECT AVG(price_amount) FROM products").Scan(&avg)
	if err != nil {
		return 0, fmt.Errorf("average price: %w", err)
	}
	return avg.Float64, nil
}

// rowScanner 兼容sql.Row和sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanProduct 从查询结果扫描商品，分类列为逗号连接的slug串
func scanProduct(row rowScanner) (*domain.Product, error) {
	product := &domain.Product{}
	var categories string
	err := row.Scan(
		&product.ID,
		&product.Name,
		&product.Slug,
		&product.Description,
		&product.Price.Amount,
		&product.Price.Currency,
		&product.Weight,
		&product.ImageURL,
		&product.Featured,
		&product.Stock,
		&product.MetaTitle,
		&product.MetaDescription,
		&product.CreatedAt,
		&product.UpdatedAt,
		&categories,
	)
	if err != nil {
		return nil, err
	}
	if categories != "" {
		product.Categories = strings.Split(categories, ",")
	}
	return product, nil
}

// placeholders 生成IN子句的占位符串
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}
