package repo

import (
	"context"

	"github.com/MorseWayne/flour_shop/internal/catalog"
	"github.com/MorseWayne/flour_shop/internal/domain"
)

// catalogStrategy 将商品仓储适配为目录查询策略
type catalogStrategy struct {
	products ProductRepository
}

// NewCatalogStrategy 基于商品仓储创建目录查询策略
func NewCatalogStrategy(products ProductRepository) catalog.Strategy {
	return &catalogStrategy{products: products}
}

func (s *catalogStrategy) Fetch(ctx context.Context, state catalog.FilterState) ([]*domain.Product, error) {
	return s.products.ListByFilter(ctx, state)
}
