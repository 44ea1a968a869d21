package email

import (
	"context"
	"fmt"
	"net/smtp"

	"institute-backend/internal/config"
	"institute-backend/pkg/logger"
)

// EmailService relays contact form submissions to the institute inbox.
type EmailService interface {
	SendContactMessage(ctx context.Context, msg ContactMessage) error
}

type smtpEmailService struct {
	smtpAddr string
	from     string
	to       string
}

func NewSMTPEmailService(cfg config.SMTPConfig) EmailService {
	return &smtpEmailService{
		smtpAddr: cfg.Host + ":" + cfg.Port,
		from:     cfg.From,
		to:       cfg.To,
	}
}

func (s *smtpEmailService) SendContactMessage(ctx context.Context, msg ContactMessage) error {
	subject := fmt.Sprintf("[Contact] %s", msg.Subject)
	body := fmt.Sprintf(`New inquiry from the website contact form.

Name:  %s
Email: %s
Phone: %s

%s`, msg.Name, msg.Email, msg.Phone, msg.Message)

	raw := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nReply-To: %s\r\nSubject: %s\r\n\r\n%s",
		s.from, s.to, msg.Email, subject, body))

	err := smtp.SendMail(s.smtpAddr, nil, s.from, []string{s.to}, raw)
	if err != nil {
		logger.Info("Failed to relay contact message", map[string]interface{}{
			"error":     err.Error(),
			"smtp_addr": s.smtpAddr,
		})
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
