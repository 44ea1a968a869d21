package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"institute-backend/internal/domains/contact/model"
	"institute-backend/internal/domains/contact/service"
	"institute-backend/internal/shared/response"
)

// ContactHandler handles POST /api/contact.
type ContactHandler struct {
	service service.Service
}

func NewContactHandler(service service.Service) *ContactHandler {
	return &ContactHandler{
		service: service,
	}
}

// Relay validates the form payload and forwards it to the institute
// inbox. Success carries no body beyond the ok flag.
func (h *ContactHandler) Relay(c *gin.Context) {
	var req model.ContactRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	if err := h.service.Relay(c.Request.Context(), &req); err != nil {
		statusCode, code, message := model.GetErrorResponse(err)
		response.ErrorResponse(c, statusCode, code, message)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"ok": true})
}
