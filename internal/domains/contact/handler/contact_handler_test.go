package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"institute-backend/internal/domains/contact/service"
	"institute-backend/internal/infrastructure/email"
)

type stubMailer struct {
	sent    []email.ContactMessage
	failErr error
}

func (s *stubMailer) SendContactMessage(ctx context.Context, msg email.ContactMessage) error {
	if s.failErr != nil {
		return s.failErr
	}
	s.sent = append(s.sent, msg)
	return nil
}

func setupRouter(mailer *stubMailer, configured bool) *gin.Engine {
	gin.SetMode(gin.TestMode)

	svc := service.NewContactService(mailer, func() bool { return configured })
	h := NewContactHandler(svc)

	router := gin.New()
	router.POST("/api/contact", h.Relay)
	return router
}

func postContact(t *testing.T, router *gin.Engine, payload map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/contact", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var resp struct {
		Success bool `json:"success"`
		Error   *struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.False(t, resp.Success)
	return resp.Error.Code
}

func validPayload() map[string]string {
	return map[string]string{
		"name":    "Juan Dela Cruz",
		"email":   "juan@example.com",
		"phone":   "0917 123 4567",
		"subject": "Enrollment inquiry",
		"message": "When does the next welding batch start?",
	}
}

func TestRelaySuccess(t *testing.T) {
	mailer := &stubMailer{}
	router := setupRouter(mailer, true)

	rec := postContact(t, router, validPayload())

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			OK bool `json:"ok"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.True(t, resp.Data.OK)

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "Enrollment inquiry", mailer.sent[0].Subject)
}

func TestRelayMissingSubjectIsValidationError(t *testing.T) {
	mailer := &stubMailer{}
	router := setupRouter(mailer, true)

	payload := validPayload()
	delete(payload, "subject")

	rec := postContact(t, router, payload)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", decodeError(t, rec))
	assert.Empty(t, mailer.sent)
}

func TestRelayWhitespaceOnlyFieldIsMissing(t *testing.T) {
	mailer := &stubMailer{}
	router := setupRouter(mailer, true)

	payload := validPayload()
	payload["message"] = "   \n\t "

	rec := postContact(t, router, payload)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", decodeError(t, rec))
}

func TestRelayInvalidEmailIsValidationError(t *testing.T) {
	mailer := &stubMailer{}
	router := setupRouter(mailer, true)

	payload := validPayload()
	payload["email"] = "not-an-email"

	rec := postContact(t, router, payload)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", decodeError(t, rec))
}

func TestRelayPhoneIsOptionalAndUnvalidated(t *testing.T) {
	mailer := &stubMailer{}
	router := setupRouter(mailer, true)

	payload := validPayload()
	delete(payload, "phone")

	rec := postContact(t, router, payload)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, mailer.sent, 1)
}

func TestRelayUnconfiguredIsConfigurationError(t *testing.T) {
	mailer := &stubMailer{}
	router := setupRouter(mailer, false)

	rec := postContact(t, router, validPayload())

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "CONFIGURATION_ERROR", decodeError(t, rec))
	assert.Empty(t, mailer.sent)
}

func TestRelaySendFailureIsDeliveryError(t *testing.T) {
	mailer := &stubMailer{failErr: errors.New("smtp: connection refused")}
	router := setupRouter(mailer, true)

	rec := postContact(t, router, validPayload())

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "DELIVERY_ERROR", decodeError(t, rec))
	// The SMTP detail must never leak to the caller.
	assert.NotContains(t, rec.Body.String(), "connection refused")
}
