package model

import (
	"errors"
	"fmt"
	"net/http"
)

// ContactError is the base error for the contact relay.
type ContactError struct {
	Code    string
	Message string
	Err     error
}

func (e *ContactError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *ContactError) Unwrap() error {
	return e.Err
}

// ============================================
// ERROR FACTORY FUNCTIONS
// ============================================

// NewValidationError: bad client input, user-correctable.
func NewValidationError(err error) *ContactError {
	return &ContactError{
		Code:    "VALIDATION_ERROR",
		Message: err.Error(),
		Err:     err,
	}
}

// NewConfigurationError: missing server-side mail setup; not something
// the submitting user can fix.
func NewConfigurationError() *ContactError {
	return &ContactError{
		Code:    "CONFIGURATION_ERROR",
		Message: "Contact relay is not configured",
	}
}

// NewDeliveryError: the send itself failed. The underlying error is
// logged server-side, never echoed to the caller.
func NewDeliveryError(err error) *ContactError {
	return &ContactError{
		Code:    "DELIVERY_ERROR",
		Message: "Failed to deliver message",
		Err:     err,
	}
}

// ============================================
// HTTP MAPPING
// ============================================

// GetErrorResponse maps a contact error to HTTP status, code, message.
// Delivery and configuration details stay generic on the wire.
func GetErrorResponse(err error) (int, string, string) {
	var contactErr *ContactError
	if !errors.As(err, &contactErr) {
		return http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Internal server error"
	}

	switch contactErr.Code {
	case "VALIDATION_ERROR":
		return http.StatusBadRequest, contactErr.Code, contactErr.Message
	case "CONFIGURATION_ERROR":
		return http.StatusInternalServerError, contactErr.Code, "Contact relay is not configured"
	case "DELIVERY_ERROR":
		return http.StatusInternalServerError, contactErr.Code, "Failed to deliver message"
	default:
		return http.StatusInternalServerError, contactErr.Code, contactErr.Message
	}
}
