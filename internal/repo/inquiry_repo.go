package repo

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/MorseWayne/flour_shop/internal/database"
	"github.com/MorseWayne/flour_shop/internal/domain"
)

// InquiryRepository 定义询盘数据访问接口
type InquiryRepository interface {
	Create(inquiry *domain.Inquiry) error
	GetByID(id int64) (*domain.Inquiry, error)
	UpdateStatus(id int64, status domain.InquiryStatus) error
	Delete(id int64) error
	List(req *domain.InquiryListRequest) ([]*domain.Inquiry, int64, error)
	Stats() (*domain.InquiryStats, error)
	// MonthlySeries 返回最近months个月每月的询盘数，按月份升序
	MonthlySeries(months int) ([]*domain.InquiryMonthlyCount, error)
}

// inquiryRepo 实现InquiryRepository接口
type inquiryRepo struct {
	db *database.DB
}

// NewInquiryRepository 创建询盘仓储实例
func NewInquiryRepository(db *database.DB) InquiryRepository {
	return &inquiryRepo{db: db}
}

const inquiryColumns = `id, name, email, phone, company, message, status, created_at`

// Create 创建询盘记录
func (r *inquiryRepo) Create(inquiry *domain.Inquiry) error {
	query := `
		INSERT INTO inquiries (name, email, phone, company, message, status)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.Exec(query,
		inquiry.Name,
		inquiry.Email,
		inquiry.Phone,
		inquiry.Company,
		inquiry.Message,
		string(inquiry.Status),
	)
	if err != nil {
		return fmt.Errorf("create inquiry: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	inquiry.ID = id
	return nil
}

// GetByID 根据ID查询询盘，不存在时返回(nil, nil)
func (r *inquiryRepo) GetByID(id int64) (*domain.Inquiry, error) {
	inquiry := &domain.Inquiry{}
	query := fmt.Sprintf(`SELECT %s FROM inquiries WHERE id = ?`, inquiryColumns)

	err := r.db.QueryRow(query, id).Scan(
		&inquiry.ID,
		&inquiry.Name,
		&inquiry.Email,
		&inquiry.Phone,
		&inquiry.Company,
		&inquiry.Message,
		&inquiry.Status,
		&inquiry.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get inquiry: %w", err)
	}

	return inquiry, nil
}

// UpdateStatus 更新询盘处理状态
func (r *inquiryRepo) UpdateStatus(id int64, status domain.InquiryStatus) error {
	result, err := r.db.Exec(`UPDATE inquiries SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return fmt.Errorf("update inquiry status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("inquiry not found")
	}

	return nil
}

// Delete 删除询盘记录
func (r *inquiryRepo) Delete(id int64) error {
	_, err := r.db.Exec(`DELETE FROM inquiries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete inquiry: %w", err)
	}
	return nil
}

// List 分页查询询盘列表，按创建时间倒序
func (r *inquiryRepo) List(req *domain.InquiryListRequest) ([]*domain.Inquiry, int64, error) {
	conditions := []string{"1=1"}
	var args []interface{}

	if req.Status != nil {
		conditions = append(conditions, "status = ?")
		args = append(args, string(*req.Status))
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM inquiries WHERE %s`, where)
	if err := r.db.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count inquiries: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s FROM inquiries
		WHERE %s
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?
	`, inquiryColumns, where)

	offset := (req.Page - 1) * req.PageSize
	args = append(args, req.PageSize, offset)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query inquiries: %w", err)
	}
	defer rows.Close()

	var inquiries []*domain.Inquiry
	for rows.Next() {
		inquiry := &domain.Inquiry{}
		err := rows.Scan(
			&inquiry.ID,
			&inquiry.Name,
			&inquiry.Email,
			&inquiry.Phone,
			&inquiry.Company,
			&inquiry.Message,
			&inquiry.Status,
			&inquiry.CreatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("scan inquiry: %w", err)
		}
		inquiries = append(inquiries, inquiry)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate inquiries: %w", err)
	}

	return inquiries, total, nil
}

// Stats 获取询盘统计信息
func (r *inquiryRepo) Stats() (*domain.InquiryStats, error) {
	stats := &domain.InquiryStats{}
	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(status = 'new'), 0),
			COALESCE(SUM(status = 'replied'), 0),
			COALESCE(SUM(created_at >= DATE_SUB(NOW(), INTERVAL 30 DAY)), 0)
		FROM inquiries
	`

	err := r.db.QueryRow(query).Scan(&stats.Total, &stats.New, &stats.Replied, &stats.Last30Days)
	if err != nil {
		return nil, fmt.Errorf("inquiry stats: %w", err)
	}

	return stats, nil
}

// MonthlySeries 按月聚合询盘数量
func (r *inquiryRepo) MonthlySeries(months int) ([]*domain.InquiryMonthlyCount, error) {
	if months <= 0 {
		months = 6
	}

	query := `
		SELECT DATE_FORMAT(created_at, '%Y-%m') AS month, COUNT(*)
		FROM inquiries
		WHERE created_at >= DATE_SUB(DATE_FORMAT(NOW(), '%Y-%m-01'), INTERVAL ? - 1 MONTH)
		GROUP BY month
		ORDER BY month ASC
	`

	rows, err := r.db.Query(query, months)
	if err != nil {
		return nil, fmt.Errorf("inquiry monthly series: %w", err)
	}
	defer rows.Close()

	var series []*domain.InquiryMonthlyCount
	for rows.Next() {
		point := &domain.InquiryMonthlyCount{}
		if err := rows.Scan(&point.Month, &point.Count); err != nil {
			return nil, fmt.Errorf("scan monthly count: %w", err)
		}
		series = append(series, point)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate monthly counts: %w", err)
	}

	return series, nil
}
