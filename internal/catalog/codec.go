package catalog

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/gorilla/schema"
)

// URL查询参数名约定
const (
	paramCategory = "category"
	paramWeight   = "weight"
	paramMinPrice = "minPrice"
	paramMaxPrice = "maxPrice"
	paramSort     = "sort"
)

// Codec 实现FilterState与URL查询串之间的双向无损转换。
// 编码时省略等于默认值的参数以保持URL简短；解码对非法输入
// 宽容处理：无法识别的值回退到对应字段的默认值，绝不报错，
// 这样带失效参数的分享链接仍能渲染出可用的商品列表。
type Codec struct {
	knownCategories map[string]struct{}
	knownWeights    map[string]struct{}
	decoder         *schema.Decoder
}

// scalarParams 承载标量参数的schema解码目标。
// 指针字段区分"未出现"和"出现但非法"两种情况，两者都回退默认值。
type scalarParams struct {
	MinPrice *float64 `schema:"minPrice"`
	MaxPrice *float64 `schema:"maxPrice"`
	Sort     string   `schema:"sort"`
}

// NewCodec 创建编解码器。
// categories/weights为已知的合法取值集合，解码时用于丢弃失效id；
// 传入空集合表示不校验（接受任意id）。
func NewCodec(categories, weights []string) *Codec {
	c := &Codec{
		decoder: schema.NewDecoder(),
	}
	c.decoder.IgnoreUnknownKeys(true)
	if len(categories) > 0 {
		c.knownCategories = make(map[string]struct{}, len(categories))
		for _, v := range categories {
			c.knownCategories[v] = struct{}{}
		}
	}
	if len(weights) > 0 {
		c.knownWeights = make(map[string]struct{}, len(weights))
		for _, v := range weights {
			c.knownWeights[v] = struct{}{}
		}
	}
	return c
}

// Encode 将筛选状态序列化为URL查询参数。
// 多值集合编码为单个逗号连接参数，与解码侧约定一致。
func (c *Codec) Encode(s FilterState) url.Values {
	v := url.Values{}
	if len(s.Categories) > 0 {
		v.Set(paramCategory, strings.Join(s.Categories, ","))
	}
	if len(s.Weights) > 0 {
		v.Set(paramWeight, strings.Join(s.Weights, ","))
	}
	if s.PriceMin != PriceFloor {
		v.Set(paramMinPrice, strconv.FormatFloat(s.PriceMin, 'f', -1, 64))
	}
	if s.PriceMax != PriceCeil {
		v.Set(paramMaxPrice, strconv.FormatFloat(s.PriceMax, 'f', -1, 64))
	}
	if s.Sort != SortFeatured {
		v.Set(paramSort, string(s.Sort))
	}
	return v
}

// EncodeQuery 返回规范化的查询串（不带前导问号）
func (c *Codec) EncodeQuery(s FilterState) string {
	return c.Encode(s).Encode()
}

// Decode 将URL查询参数还原为筛选状态。
// 非法或越界的值落回字段默认值；价格边界收敛到[PriceFloor, PriceCeil]。
func (c *Codec) Decode(query url.Values) FilterState {
	s := DefaultFilterState()

	// 标量参数走schema解码；解码错误的字段保持零值，视同缺失
	var p scalarParams
	_ = c.decoder.Decode(&p, query)

	min, max := PriceFloor, PriceCeil
	if p.MinPrice != nil {
		min = *p.MinPrice
	}
	if p.MaxPrice != nil {
		max = *p.MaxPrice
	}
	s.PriceMin, s.PriceMax = clampPrice(min, max)

	if k := SortKey(p.Sort); k.Valid() {
		s.Sort = k
	}

	// 多值参数：逗号连接和重复键两种写法都接受
	s.Categories = c.decodeSet(query[paramCategory], c.knownCategories)
	s.Weights = c.decodeSet(query[paramWeight], c.knownWeights)
	return s
}

// DecodeQuery 从原始查询串解码。
// url.ParseQuery部分失败时仍使用其已解析出的参数。
func (c *Codec) DecodeQuery(raw string) FilterState {
	query, _ := url.ParseQuery(raw)
	return c.Decode(query)
}

// decodeSet 解析多值参数为有序去重集合，丢弃未知id
func (c *Codec) decodeSet(raw []string, known map[string]struct{}) []string {
	var out []string
	for _, chunk := range raw {
		for _, v := range strings.Split(chunk, ",") {
			v = strings.TrimSpace(v)
			if v == "" {
				continue
			}
			if known != nil {
				if _, ok := known[v]; !ok {
					continue
				}
			}
			out = addSorted(out, v)
		}
	}
	return out
}
