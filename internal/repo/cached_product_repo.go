// Package repo 提供带缓存的商品仓储实现
package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/MorseWayne/flour_shop/internal/cache"
	"github.com/MorseWayne/flour_shop/internal/catalog"
	"github.com/MorseWayne/flour_shop/internal/domain"
)

// CachedProductRepository 带缓存的商品仓储
type CachedProductRepository struct {
	repo  ProductRepository
	cache cache.Cache
	ttl   time.Duration
}

// NewCachedProductRepository 创建带缓存的商品仓储
func NewCachedProductRepository(repo ProductRepository, cache cache.Cache, ttl time.Duration) ProductRepository {
	return &CachedProductRepository{
		repo:  repo,
		cache: cache,
		ttl:   ttl,
	}
}

// Create 创建商品（清除相关缓存）
func (r *CachedProductRepository) Create(product *domain.Product) error {
	err := r.repo.Create(product)
	if err != nil {
		return err
	}

	// 清除相关缓存
	ctx := context.Background()
	r.cache.Del(ctx, r.productCacheKey(product.ID))
	r.cache.Del(ctx, r.productSlugCacheKey(product.Slug))

	return nil
}

// GetByID 根据ID获取商品（带缓存）
func (r *CachedProductRepository) GetByID(id int64) (*domain.Product, error) {
	ctx := context.Background()
	cacheKey := r.productCacheKey(id)

	// 尝试从缓存获取
	var product domain.Product
	err := r.cache.Get(ctx, cacheKey, &product)
	if err == nil {
		return &product, nil
	}

	// 缓存未命中，从数据库获取
	result, err := r.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, nil
	}

	// 写入缓存
	r.cache.Set(ctx, cacheKey, result, r.ttl)

	return result, nil
}

// GetBySlug 根据slug获取商品（带缓存）
func (r *CachedProductRepository) GetBySlug(slug string) (*domain.Product, error) {
	ctx := context.Background()
	cacheKey := r.productSlugCacheKey(slug)

	// 尝试从缓存获取
	var product domain.Product
	err := r.cache.Get(ctx, cacheKey, &product)
	if err == nil {
		return &product, nil
	}

	// 缓存未命中，从数据库获取
	result, err := r.repo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, nil
	}

	// 写入缓存
	r.cache.Set(ctx, cacheKey, result, r.ttl)
	// 同时缓存ID索引
	r.cache.Set(ctx, r.productCacheKey(result.ID), result, r.ttl)

	return result, nil
}

// Update 更新商品（清除相关缓存）
func (r *CachedProductRepository) Update(product *domain.Product) error {
	// 先获取旧数据以便清除旧slug的缓存
	old, err := r.repo.GetByID(product.ID)
	if err != nil {
		return err
	}

	if err := r.repo.Update(product); err != nil {
		return err
	}

	// 清除相关缓存
	ctx := context.Background()
	r.cache.Del(ctx, r.productCacheKey(product.ID))
	r.cache.Del(ctx, r.productSlugCacheKey(product.Slug))
	if old != nil && old.Slug != product.Slug {
		r.cache.Del(ctx, r.productSlugCacheKey(old.Slug))
	}

	return nil
}

// Delete 删除商品（清除相关缓存）
func (r *CachedProductRepository) Delete(id int64) error {
	// 先获取商品信息以便清除slug缓存
	product, err := r.repo.GetByID(id)
	if err != nil {
		return err
	}

	if err := r.repo.Delete(id); err != nil {
		return err
	}

	// 清除相关缓存
	ctx := context.Background()
	r.cache.Del(ctx, r.productCacheKey(id))
	if product != nil {
		r.cache.Del(ctx, r.productSlugCacheKey(product.Slug))
	}

	return nil
}

// ListByFilter 目录查询（不缓存，因为筛选参数组合太多）
func (r *CachedProductRepository) ListByFilter(ctx context.Context, state catalog.FilterState) ([]*domain.Product, error) {
	return r.repo.ListByFilter(ctx, state)
}

// Count 获取商品总数（不缓存）
func (r *CachedProductRepository) Count() (int64, error) {
	return r.repo.Count()
}

// CountFeatured 统计推荐位商品数量（不缓存）
func (r *CachedProductRepository) CountFeatured() (int64, error) {
	return r.repo.CountFeatured()
}

// CountOutOfStock 统计缺货商品数量（不缓存）
func (r *CachedProductRepository) CountOutOfStock() (int64, error) {
	return r.repo.CountOutOfStock()
}

// AveragePrice 获取商品平均价格（不缓存）
func (r *CachedProductRepository) AveragePrice() (float64, error) {
	return r.repo.AveragePrice()
}

// 缓存键生成方法
func (r *CachedProductRepository) productCacheKey(id int64) string {
	return fmt.Sprintf("product:id:%d", id)
}

func (r *CachedProductRepository) productSlugCacheKey(slug string) string {
	return fmt.Sprintf("product:slug:%s", slug)
}
