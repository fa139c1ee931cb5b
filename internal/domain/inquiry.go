package domain

import "time"

// InquiryStatus 定义询盘处理状态
type InquiryStatus string

const (
	InquiryStatusNew     InquiryStatus = "new"     // 未处理
	InquiryStatusRead    InquiryStatus = "read"    // 已查看
	InquiryStatusReplied InquiryStatus = "replied" // 已回复
)

// Inquiry 表示联系表单提交的询盘
type Inquiry struct {
	ID        int64         `json:"id"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Phone     string        `json:"phone"`
	Company   string        `json:"company,omitempty"`
	Message   string        `json:"message"`
	Status    InquiryStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
}

// CreateInquiryRequest 表示联系表单提交请求
type CreateInquiryRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
	Message string `json:"message"`
}

// InquiryListRequest 表示询盘列表查询请求
type InquiryListRequest struct {
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
	Status   *InquiryStatus `json:"status"` // nil表示不过滤
}

// InquiryListResponse 表示询盘列表查询响应
type InquiryListResponse struct {
	Inquiries []*Inquiry `json:"inquiries"`
	Total     int64      `json:"total"`
	Page      int        `json:"page"`
	PageSize  int        `json:"page_size"`
}

// InquiryStats 询盘统计信息
type InquiryStats struct {
	Total      int64 `json:"total"`
	New        int64 `json:"new"`
	Replied    int64 `json:"replied"`
	Last30Days int64 `json:"last_30_days"`
}

// InquiryMonthlyCount 按月统计的询盘数量，month格式为"2006-01"
type InquiryMonthlyCount struct {
	Month string `json:"month"`
	Count int64  `json:"count"`
}
