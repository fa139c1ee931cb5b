package catalog

import (
	"net/url"
	"sync"
)

// Store 维护筛选条件的两级状态：
// draft是用户正在编辑、尚未生效的草稿，committed是已提交并反映在
// URL中的状态。勾选操作只改草稿，显式Apply才会提交并触发查询，
// 避免每次点选都刷新整个列表。
type Store struct {
	mu        sync.Mutex
	codec     *Codec
	draft     FilterState
	committed FilterState
}

// NewStore 创建状态存储，初始状态从当前URL查询参数水合；
// query为nil时使用全默认状态。
func NewStore(codec *Codec, query url.Values) *Store {
	st := &Store{codec: codec}
	if query != nil {
		st.committed = codec.Decode(query)
	} else {
		st.committed = DefaultFilterState()
	}
	st.draft = st.committed.Clone()
	return st
}

// Draft 返回当前草稿状态的副本
func (st *Store) Draft() FilterState {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.draft.Clone()
}

// Committed 返回最近一次提交状态的副本
func (st *Store) Committed() FilterState {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.committed.Clone()
}

// ToggleCategory 切换草稿中分类的选中状态
func (st *Store) ToggleCategory(id string) {
	if id == "" {
		return
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	st.draft.Categories = toggleSorted(st.draft.Categories, id)
}

// ToggleWeight 切换草稿中规格的选中状态
func (st *Store) ToggleWeight(id string) {
	if id == "" {
		return
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	st.draft.Weights = toggleSorted(st.draft.Weights, id)
}

// SetPriceRange 设置草稿价格区间，越界值收敛、倒置时交换
func (st *Store) SetPriceRange(min, max float64) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.draft.PriceMin, st.draft.PriceMax = clampPrice(min, max)
}

// SetSort 设置草稿排序方式。
// 枚举外的取值直接拒绝（no-op），不做静默纠正。
func (st *Store) SetSort(k SortKey) {
	if !k.Valid() {
		return
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	st.draft.Sort = k
}

// Apply 提交草稿状态，返回提交后的状态和规范化查询串。
// 这是草稿生效的唯一入口，调用方负责用返回的查询串更新URL。
func (st *Store) Apply() (FilterState, string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.committed = st.draft.Clone()
	return st.committed.Clone(), st.codec.EncodeQuery(st.committed)
}

// Reset 将草稿重置为默认状态并立即提交，返回空查询串
func (st *Store) Reset() (FilterState, string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.draft = DefaultFilterState()
	st.committed = DefaultFilterState()
	return st.committed.Clone(), ""
}
