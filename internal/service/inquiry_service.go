package service

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/MorseWayne/flour_shop/internal/domain"
	"github.com/MorseWayne/flour_shop/internal/repo"
)

// 询盘相关业务错误
var (
	ErrInquiryNotFound      = errors.New("inquiry not found")
	ErrInvalidInquiry       = errors.New("invalid inquiry")
	ErrInvalidInquiryStatus = errors.New("invalid inquiry status")
)

// emailPattern 只做粗校验，真实性靠回信验证
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// InquiryNotifier 在新询盘到达时发送通知。
// 通知失败不影响询盘落库。
type InquiryNotifier interface {
	NotifyNewInquiry(inquiry *domain.Inquiry) error
}

// InquiryService 定义询盘业务逻辑接口
type InquiryService interface {
	SubmitInquiry(req *domain.CreateInquiryRequest) (*domain.Inquiry, error)
	GetInquiry(id int64) (*domain.Inquiry, error)
	UpdateStatus(id int64, status domain.InquiryStatus) error
	DeleteInquiry(id int64) error
	ListInquiries(req *domain.InquiryListRequest) (*domain.InquiryListResponse, error)
	GetInquiryStats() (*domain.InquiryStats, error)
	// GetMonthlySeries 返回最近months个月的按月询盘数
	GetMonthlySeries(months int) ([]*domain.InquiryMonthlyCount, error)
}

// inquiryService 实现InquiryService接口
type inquiryService struct {
	inquiryRepo repo.InquiryRepository
	notifier    InquiryNotifier
	logger      *zap.Logger
}

// NewInquiryService 创建询盘服务实例，notifier可为nil表示不发通知
func NewInquiryService(inquiryRepo repo.InquiryRepository, notifier InquiryNotifier, logger *zap.Logger) InquiryService {
	return &inquiryService{
		inquiryRepo: inquiryRepo,
		notifier:    notifier,
		logger:      logger,
	}
}

// SubmitInquiry 处理联系表单提交
// 业务规则：
// 1. 姓名、邮箱、留言为必填项
// 2. 新询盘状态为new
// 3. 邮件通知异步发送，失败只记日志
func (s *inquiryService) SubmitInquiry(req *domain.CreateInquiryRequest) (*domain.Inquiry, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(strings.ToLower(req.Email))
	message := strings.TrimSpace(req.Message)

	if name == "" || message == "" {
		return nil, ErrInvalidInquiry
	}
	if !emailPattern.MatchString(email) {
		return nil, ErrInvalidInquiry
	}

	inquiry := &domain.Inquiry{
		Name:    name,
		Email:   email,
		Phone:   strings.TrimSpace(req.Phone),
		Company: strings.TrimSpace(req.Company),
		Message: message,
		Status:  domain.InquiryStatusNew,
	}

	if err := s.inquiryRepo.Create(inquiry); err != nil {
		s.logger.Error("failed to create inquiry", zap.Error(err))
		return nil, fmt.Errorf("create inquiry: %w", err)
	}

	s.logger.Info("inquiry submitted",
		zap.Int64("inquiry_id", inquiry.ID),
		zap.String("email", inquiry.Email),
	)

	if s.notifier != nil {
		go func(inq domain.Inquiry) {
			if err := s.notifier.NotifyNewInquiry(&inq); err != nil {
				s.logger.Warn("failed to send inquiry notification",
					zap.Int64("inquiry_id", inq.ID),
					zap.Error(err),
				)
			}
		}(*inquiry)
	}

	return inquiry, nil
}

// GetInquiry 获取询盘详情，查看未读询盘时自动标记为已读
func (s *inquiryService) GetInquiry(id int64) (*domain.Inquiry, error) {
	inquiry, err := s.inquiryRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("get inquiry: %w", err)
	}
	if inquiry == nil {
		return nil, ErrInquiryNotFound
	}

	if inquiry.Status == domain.InquiryStatusNew {
		if err := s.inquiryRepo.UpdateStatus(id, domain.InquiryStatusRead); err != nil {
			s.logger.Warn("failed to mark inquiry as read", zap.Int64("inquiry_id", id), zap.Error(err))
		} else {
			inquiry.Status = domain.InquiryStatusRead
		}
	}

	return inquiry, nil
}

// UpdateStatus 更新询盘处理状态
func (s *inquiryService) UpdateStatus(id int64, status domain.InquiryStatus) error {
	switch status {
	case domain.InquiryStatusNew, domain.InquiryStatusRead, domain.InquiryStatusReplied:
	default:
		return ErrInvalidInquiryStatus
	}

	if err := s.inquiryRepo.UpdateStatus(id, status); err != nil {
		if strings.Contains(err.Error(), "not found") {
			return ErrInquiryNotFound
		}
		return fmt.Errorf("update inquiry status: %w", err)
	}

	return nil
}

// DeleteInquiry 删除询盘
func (s *inquiryService) DeleteInquiry(id int64) error {
	inquiry, err := s.inquiryRepo.GetByID(id)
	if err != nil {
		return fmt.Errorf("get inquiry: %w", err)
	}
	if inquiry == nil {
		return ErrInquiryNotFound
	}

	return s.inquiryRepo.Delete(id)
}

// ListInquiries 分页获取询盘列表
func (s *inquiryService) ListInquiries(req *domain.InquiryListRequest) (*domain.InquiryListResponse, error) {
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = 20
	}
	if req.PageSize > 100 {
		req.PageSize = 100
	}

	inquiries, total, err := s.inquiryRepo.List(req)
	if err != nil {
		return nil, fmt.Errorf("list inquiries: %w", err)
	}
	if inquiries == nil {
		inquiries = []*domain.Inquiry{}
	}

	return &domain.InquiryListResponse{
		Inquiries: inquiries,
		Total:     total,
		Page:      req.Page,
		PageSize:  req.PageSize,
	}, nil
}

// GetInquiryStats 获取询盘统计信息
func (s *inquiryService) GetInquiryStats() (*domain.InquiryStats, error) {
	stats, err := s.inquiryRepo.Stats()
	if err != nil {
		return nil, fmt.Errorf("inquiry stats: %w", err)
	}
	return stats, nil
}

// GetMonthlySeries 获取按月询盘趋势
func (s *inquiryService) GetMonthlySeries(months int) ([]*domain.InquiryMonthlyCount, error) {
	series, err := s.inquiryRepo.MonthlySeries(months)
	if err != nil {
		return nil, fmt.Errorf("inquiry monthly series: %w", err)
	}
	if series == nil {
		series = []*domain.InquiryMonthlyCount{}
	}
	return series, nil
}
