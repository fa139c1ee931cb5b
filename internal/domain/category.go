package domain

import "time"

// Category 表示商品分类
type Category struct {
	ID          int64     `json:"id"`
	Slug        string    `json:"slug"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateCategoryRequest 表示创建分类请求
type CreateCategoryRequest struct {
	Slug        string `json:"slug"` // 留空则由名称生成
	Name        string `json:"name"`
	Description string `json:"description"`
}
