package domain

import "time"

// PostStatus 定义博客文章状态
type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"     // 草稿，仅后台可见
	PostStatusPublished PostStatus = "published" // 已发布
)

// BlogPost 表示博客文章领域模型
type BlogPost struct {
	ID              int64      `json:"id"`
	Title           string     `json:"title"`
	Slug            string     `json:"slug"`
	Excerpt         string     `json:"excerpt"`
	Content         string     `json:"content"` // 富文本HTML，由后台编辑器产出
	Category        string     `json:"category"`
	Status          PostStatus `json:"status"`
	Featured        bool       `json:"featured"`
	FeaturedImage   string     `json:"featured_image,omitempty"`
	AuthorID        int64      `json:"author_id"`
	MetaTitle       string     `json:"meta_title,omitempty"`
	MetaDescription string     `json:"meta_description,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// IsPublished 判断文章是否对外可见
func (p *BlogPost) IsPublished() bool {
	return p.Status == PostStatusPublished
}

// CreatePostRequest 表示创建文章请求
type CreatePostRequest struct {
	Title           string `json:"title"`
	Slug            string `json:"slug"` // 留空则由标题生成
	Excerpt         string `json:"excerpt"`
	Content         string `json:"content"`
	Category        string `json:"category"`
	Status          string `json:"status"`
	Featured        bool   `json:"featured"`
	FeaturedImage   string `json:"featured_image"`
	MetaTitle       string `json:"meta_title"`
	MetaDescription string `json:"meta_description"`
}

// UpdatePostRequest 表示更新文章请求，nil字段表示不修改
type UpdatePostRequest struct {
	Title           *string `json:"title"`
	Slug            *string `json:"slug"`
	Excerpt         *string `json:"excerpt"`
	Content         *string `json:"content"`
	Category        *string `json:"category"`
	Status          *string `json:"status"`
	Featured        *bool   `json:"featured"`
	FeaturedImage   *string `json:"featured_image"`
	MetaTitle       *string `json:"meta_title"`
	MetaDescription *string `json:"meta_description"`
}

// PostListRequest 表示文章列表查询请求
type PostListRequest struct {
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
	Status   *PostStatus `json:"status"`   // nil表示不过滤
	Category *string     `json:"category"` // nil表示不过滤
}

// PostListResponse 表示文章列表查询响应
type PostListResponse struct {
	Posts    []*BlogPost `json:"posts"`
	Total    int64       `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
}
