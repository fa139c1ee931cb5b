package service

import (
	"fmt"

	"github.com/MorseWayne/flour_shop/internal/domain"
	"github.com/MorseWayne/flour_shop/internal/repo"
)

// dashboardMonths 仪表盘趋势图覆盖的月份数
const dashboardMonths = 6

// DashboardStats 后台仪表盘汇总数据
type DashboardStats struct {
	Products         *domain.ProductStats          `json:"products"`
	Inquiries        *domain.InquiryStats          `json:"inquiries"`
	Posts            PostStats                     `json:"posts"`
	MonthlyInquiries []*domain.InquiryMonthlyCount `json:"monthly_inquiries"`
}

// PostStats 文章统计信息
type PostStats struct {
	Published int64 `json:"published"`
}

// DashboardService 聚合各模块统计供后台首页展示
type DashboardService interface {
	GetStats() (*DashboardStats, error)
}

// dashboardService 实现DashboardService接口
type dashboardService struct {
	products  ProductService
	inquiries InquiryService
	postRepo  repo.PostRepository
}

// NewDashboardService 创建仪表盘服务实例
func NewDashboardService(products ProductService, inquiries InquiryService, postRepo repo.PostRepository) DashboardService {
	return &dashboardService{
		products:  products,
		inquiries: inquiries,
		postRepo:  postRepo,
	}
}

// GetStats 汇总商品、询盘和文章统计
func (s *dashboardService) GetStats() (*DashboardStats, error) {
	productStats, err := s.products.GetProductStats()
	if err != nil {
		return nil, fmt.Errorf("product stats: %w", err)
	}

	inquiryStats, err := s.inquiries.GetInquiryStats()
	if err != nil {
		return nil, fmt.Errorf("inquiry stats: %w", err)
	}

	published, err := s.postRepo.CountPublished()
	if err != nil {
		return nil, fmt.Errorf("post stats: %w", err)
	}

	monthly, err := s.inquiries.GetMonthlySeries(dashboardMonths)
	if err != nil {
		return nil, fmt.Errorf("inquiry monthly series: %w", err)
	}

	return &DashboardStats{
		Products:         productStats,
		Inquiries:        inquiryStats,
		Posts:            PostStats{Published: published},
		MonthlyInquiries: monthly,
	}, nil
}
