package catalog

import (
	"context"
	"sort"
	"time"

	"github.com/MorseWayne/flour_shop/internal/domain"
)

// MemoryStrategy 对内存中的固定商品集合执行筛选和排序。
// 用于开发模式（mock数据）和测试，与SQL策略语义等价：
// 商品必须同时通过价格、分类、规格三个谓词（AND），
// 再按排序键稳定排序。
type MemoryStrategy struct {
	items   []*domain.Product
	latency time.Duration // 模拟的查询延迟，0表示立即返回
}

// NewMemoryStrategy 创建内存查询策略。
// items的原始顺序即featured排序的基准顺序。
func NewMemoryStrategy(items []*domain.Product) *MemoryStrategy {
	return &MemoryStrategy{items: items}
}

// WithLatency 设置模拟延迟，用于开发模式下还原加载状态
func (m *MemoryStrategy) WithLatency(d time.Duration) *MemoryStrategy {
	m.latency = d
	return m
}

// Fetch 实现Strategy接口
func (m *MemoryStrategy) Fetch(ctx context.Context, state FilterState) ([]*domain.Product, error) {
	if m.latency > 0 {
		select {
		case <-time.After(m.latency):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make([]*domain.Product, 0, len(m.items))
	for _, p := range m.items {
		if matches(p, state) {
			out = append(out, p)
		}
	}
	sortProducts(out, state.Sort)
	return out, nil
}

// matches 判断商品是否通过全部激活的筛选谓词
func matches(p *domain.Product, state FilterState) bool {
	if p.Price.Amount < state.PriceMin || p.Price.Amount > state.PriceMax {
		return false
	}
	// 空集合表示不过滤；多分类商品与所选集合有交集即通过
	if len(state.Categories) > 0 && !intersects(state.Categories, p.Categories) {
		return false
	}
	if len(state.Weights) > 0 && !containsSorted(state.Weights, p.Weight) {
		return false
	}
	return true
}

// sortProducts 按排序键对商品做稳定排序。
// featured保持原始顺序；比较相等的商品保持相对位置不变。
func sortProducts(items []*domain.Product, key SortKey) {
	switch key {
	case SortPriceAsc:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Price.Amount < items[j].Price.Amount
		})
	case SortPriceDesc:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Price.Amount > items[j].Price.Amount
		})
	case SortNewest:
		sort.SliceStable(items, func(i, j int) bool {
			if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
				return items[i].CreatedAt.After(items[j].CreatedAt)
			}
			return items[i].ID > items[j].ID
		})
	}
}
