package service

import (
	"context"

	"institute-backend/internal/domains/contact/model"
	"institute-backend/internal/infrastructure/email"
	"institute-backend/pkg/logger"
)

// Service validates contact submissions and relays them by email.
type Service interface {
	Relay(ctx context.Context, req *model.ContactRequest) error
}

type contactService struct {
	mailer     email.EmailService
	configured func() bool
}

// NewContactService creates a new contact service instance.
// configured reports whether the SMTP relay has the settings it needs;
// checked per request so a misconfigured deploy degrades to clean
// CONFIGURATION_ERROR responses instead of a crash at startup.
func NewContactService(mailer email.EmailService, configured func() bool) Service {
	return &contactService{
		mailer:     mailer,
		configured: configured,
	}
}

func (s *contactService) Relay(ctx context.Context, req *model.ContactRequest) error {
	trimmed := req.Trimmed()

	if err := trimmed.Validate(); err != nil {
		return model.NewValidationError(err)
	}

	if !s.configured() {
		return model.NewConfigurationError()
	}

	msg := email.ContactMessage{
		Name:    trimmed.Name,
		Email:   trimmed.Email,
		Phone:   trimmed.Phone,
		Subject: trimmed.Subject,
		Message: trimmed.Message,
	}

	if err := s.mailer.SendContactMessage(ctx, msg); err != nil {
		// Log the cause; the caller gets a generic delivery failure.
		logger.Error("contact relay delivery failed", err)
		return model.NewDeliveryError(err)
	}

	return nil
}
