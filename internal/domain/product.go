// Package domain 定义商品相关的业务领域模型和核心业务规则。
package domain

import (
	"fmt"
	"time"
)

// DefaultCurrency 站点默认币种
const DefaultCurrency = "AED"

// Price 表示结构化的商品价格。
// 金额和币种分开存储，展示格式只在输出边界生成，
// 避免对格式化字符串做数值解析。
type Price struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// Display 返回用于页面展示的价格字符串，例如 "AED 25.00"。
func (p Price) Display() string {
	return fmt.Sprintf("%s %.2f", p.Currency, p.Amount)
}

// Product 表示商品领域模型
type Product struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Slug            string    `json:"slug"`
	Description     string    `json:"description"`
	Price           Price     `json:"price"`
	Weight          string    `json:"weight"`     // 规格档位，如 "1kg"、"25kg"
	Categories      []string  `json:"categories"` // 所属分类slug集合
	ImageURL        string    `json:"image_url"`
	Featured        bool      `json:"featured"`
	Stock           int       `json:"stock"`
	MetaTitle       string    `json:"meta_title,omitempty"`
	MetaDescription string    `json:"meta_description,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// InCategory 判断商品是否属于指定分类
func (p *Product) InCategory(slug string) bool {
	for _, c := range p.Categories {
		if c == slug {
			return true
		}
	}
	return false
}

// CreateProductRequest 表示创建商品请求
type CreateProductRequest struct {
	Name            string   `json:"name"`
	Slug            string   `json:"slug"` // 留空则由名称生成
	Description     string   `json:"description"`
	Price           float64  `json:"price"`
	Currency        string   `json:"currency"` // 留空则使用默认币种
	Weight          string   `json:"weight"`
	Categories      []string `json:"categories"`
	ImageURL        string   `json:"image_url"`
	Featured        bool     `json:"featured"`
	Stock           int      `json:"stock"`
	MetaTitle       string   `json:"meta_title"`
	MetaDescription string   `json:"meta_description"`
}

// UpdateProductRequest 表示更新商品请求，nil字段表示不修改
type UpdateProductRequest struct {
	Name            *string   `json:"name"`
	Slug            *string   `json:"slug"`
	Description     *string   `json:"description"`
	Price           *float64  `json:"price"`
	Currency        *string   `json:"currency"`
	Weight          *string   `json:"weight"`
	Categories      *[]string `json:"categories"`
	ImageURL        *string   `json:"image_url"`
	Featured        *bool     `json:"featured"`
	Stock           *int      `json:"stock"`
	MetaTitle       *string   `json:"meta_title"`
	MetaDescription *string   `json:"meta_description"`
}

// ProductListResponse 表示商品列表查询响应
type ProductListResponse struct {
	Products []*Product `json:"products"`
	Total    int64      `json:"total"`
	Page     int        `json:"page"`
	PageSize int        `json:"page_size"`
}

// ProductStats 商品统计信息，供后台仪表盘使用
type ProductStats struct {
	TotalProducts    int64   `json:"total_products"`
	FeaturedProducts int64   `json:"featured_products"`
	OutOfStock       int64   `json:"out_of_stock"`
	AveragePrice     float64 `json:"average_price"`
}
