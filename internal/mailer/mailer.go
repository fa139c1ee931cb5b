// Package mailer 通过SMTP发送站内通知邮件。
package mailer

import (
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/MorseWayne/flour_shop/internal/domain"
)

// Mailer 封装SMTP发信
type Mailer struct {
	dialer   *gomail.Dialer
	from     string
	notifyTo string
	logger   *zap.Logger
}

// New 创建Mailer实例
func New(host string, port int, username, password, from, notifyTo string, logger *zap.Logger) *Mailer {
	return &Mailer{
		dialer:   gomail.NewDialer(host, port, username, password),
		from:     from,
		notifyTo: notifyTo,
		logger:   logger,
	}
}

// NotifyNewInquiry 向运营邮箱发送新询盘通知
func (m *Mailer) NotifyNewInquiry(inquiry *domain.Inquiry) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", m.notifyTo)
	msg.SetHeader("Subject", fmt.Sprintf("New inquiry from %s", inquiry.Name))
	msg.SetHeader("Reply-To", inquiry.Email)
	msg.SetBody("text/plain", fmt.Sprintf(
		"Name: %s\nEmail: %s\nPhone: %s\nCompany: %s\n\n%s\n",
		inquiry.Name, inquiry.Email, inquiry.Phone, inquiry.Company, inquiry.Message,
	))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send inquiry notification: %w", err)
	}

	m.logger.Info("inquiry notification sent",
		zap.Int64("inquiry_id", inquiry.ID),
		zap.String("to", m.notifyTo),
	)

	return nil
}
