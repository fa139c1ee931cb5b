// Package catalog 实现商品目录的筛选/排序管道。
// 包含筛选状态模型、URL查询串编解码、草稿/提交两级状态存储，
// 以及带"最后提交优先"保护的查询执行器。
package catalog

import (
	"slices"
	"sort"
)

// SortKey 定义目录排序方式，取值为封闭枚举
type SortKey string

const (
	SortFeatured  SortKey = "featured"   // 默认顺序：推荐位优先
	SortPriceAsc  SortKey = "price-asc"  // 价格升序
	SortPriceDesc SortKey = "price-desc" // 价格降序
	SortNewest    SortKey = "newest"     // 最新上架优先
)

// Valid 判断排序键是否在枚举范围内
func (k SortKey) Valid() bool {
	switch k {
	case SortFeatured, SortPriceAsc, SortPriceDesc, SortNewest:
		return true
	}
	return false
}

// 价格筛选的全局边界，与前端滑块的取值范围一致
const (
	PriceFloor = 0.0
	PriceCeil  = 100.0
)

// FilterState 表示一组筛选/排序条件。
// 分类和规格集合以有序去重的slice存储，空集合表示不过滤。
type FilterState struct {
	PriceMin   float64  `json:"price_min"`
	PriceMax   float64  `json:"price_max"`
	Categories []string `json:"categories"`
	Weights    []string `json:"weights"`
	Sort       SortKey  `json:"sort"`
}

// DefaultFilterState 返回全默认的筛选状态
func DefaultFilterState() FilterState {
	return FilterState{
		PriceMin: PriceFloor,
		PriceMax: PriceCeil,
		Sort:     SortFeatured,
	}
}

// IsDefault 判断状态是否等于全默认状态
func (s FilterState) IsDefault() bool {
	return s.Equal(DefaultFilterState())
}

// Equal 判断两个筛选状态是否等价
func (s FilterState) Equal(o FilterState) bool {
	return s.PriceMin == o.PriceMin &&
		s.PriceMax == o.PriceMax &&
		s.Sort == o.Sort &&
		slices.Equal(s.Categories, o.Categories) &&
		slices.Equal(s.Weights, o.Weights)
}

// Clone 返回状态的深拷贝
func (s FilterState) Clone() FilterState {
	c := s
	c.Categories = slices.Clone(s.Categories)
	c.Weights = slices.Clone(s.Weights)
	return c
}

// HasCategory 判断分类是否已选中
func (s FilterState) HasCategory(id string) bool {
	return containsSorted(s.Categories, id)
}

// HasWeight 判断规格是否已选中
func (s FilterState) HasWeight(id string) bool {
	return containsSorted(s.Weights, id)
}

// clampPrice 将价格边界收敛到全局范围内，min>max时交换。
// 边界外的取值没有业务含义，按约定收敛而不是拒绝。
func clampPrice(min, max float64) (float64, float64) {
	min = clamp(min, PriceFloor, PriceCeil)
	max = clamp(max, PriceFloor, PriceCeil)
	if min > max {
		min, max = max, min
	}
	return min, max
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// toggleSorted 对有序集合做切换：存在则删除，不存在则插入
func toggleSorted(set []string, id string) []string {
	i := sort.SearchStrings(set, id)
	if i < len(set) && set[i] == id {
		return append(set[:i], set[i+1:]...)
	}
	set = append(set, "")
	copy(set[i+1:], set[i:])
	set[i] = id
	return set
}

// addSorted 向有序集合插入元素，已存在时不变
func addSorted(set []string, id string) []string {
	i := sort.SearchStrings(set, id)
	if i < len(set) && set[i] == id {
		return set
	}
	set = append(set, "")
	copy(set[i+1:], set[i:])
	set[i] = id
	return set
}

func containsSorted(set []string, id string) bool {
	i := sort.SearchStrings(set, id)
	return i < len(set) && set[i] == id
}

// intersects 判断有序集合与任意集合是否有交集
func intersects(sorted []string, other []string) bool {
	for _, v := range other {
		if containsSorted(sorted, v) {
			return true
		}
	}
	return false
}
