package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"institute-backend/internal/domains/post/model"
	"institute-backend/internal/domains/post/service"
	"institute-backend/internal/shared/response"
)

// maxCoverSize caps cover uploads at 8 MiB.
const maxCoverSize = 8 << 20

// PostHandler handles the admin JSON API for posts.
type PostHandler struct {
	service service.Service
}

// NewPostHandler creates a new post handler instance
// Dependency injection pattern - receives service from container
func NewPostHandler(service service.Service) *PostHandler {
	return &PostHandler{
		service: service,
	}
}

// ListPosts handles GET /api/admin/posts
func (h *PostHandler) ListPosts(c *gin.Context) {
	results, err := h.service.ListPosts(c.Request.Context())
	if err != nil {
		statusCode, code, message := model.GetErrorResponse(err)
		response.ErrorResponse(c, statusCode, code, message)
		return
	}

	response.Success(c, http.StatusOK, results)
}

// GetPost handles GET /api/admin/posts/:id
func (h *PostHandler) GetPost(c *gin.Context) {
	idStr := c.Param("id")

	id, err := uuid.Parse(idStr)
	if err != nil {
		statusCode, code, message := model.GetErrorResponse(model.NewInvalidPostID(idStr))
		response.ErrorResponse(c, statusCode, code, message)
		return
	}

	result, err := h.service.GetPost(c.Request.Context(), id)
	if err != nil {
		statusCode, code, message := model.GetErrorResponse(err)
		response.ErrorResponse(c, statusCode, code, message)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// CreatePost handles POST /api/admin/posts
func (h *PostHandler) CreatePost(c *gin.Context) {
	var req model.CreatePostRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	result, err := h.service.CreatePost(c.Request.Context(), &req)
	if err != nil {
		statusCode, code, message := model.GetErrorResponse(err)
		response.ErrorResponse(c, statusCode, code, message)
		return
	}

	response.Success(c, http.StatusCreated, result)
}

// UpdatePost handles PUT /api/admin/posts/:id
func (h *PostHandler) UpdatePost(c *gin.Context) {
	idStr := c.Param("id")

	id, err := uuid.Parse(idStr)
	if err != nil {
		statusCode, code, message := model.GetErrorResponse(model.NewInvalidPostID(idStr))
		response.ErrorResponse(c, statusCode, code, message)
		return
	}

	var req model.UpdatePostRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	result, err := h.service.UpdatePost(c.Request.Context(), id, &req)
	if err != nil {
		statusCode, code, message := model.GetErrorResponse(err)
		response.ErrorResponse(c, statusCode, code, message)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// UploadCover handles POST /api/admin/posts/:id/cover (multipart form,
// field "cover").
func (h *PostHandler) UploadCover(c *gin.Context) {
	idStr := c.Param("id")

	id, err := uuid.Parse(idStr)
	if err != nil {
		statusCode, code, message := model.GetErrorResponse(model.NewInvalidPostID(idStr))
		response.ErrorResponse(c, statusCode, code, message)
		return
	}

	fileHeader, err := c.FormFile("cover")
	if err != nil {
		response.BadRequest(c, "Missing cover file")
		return
	}
	if fileHeader.Size > maxCoverSize {
		response.BadRequest(c, "Cover file too large")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "Unreadable cover file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxCoverSize))
	if err != nil {
		response.InternalServerError(c, "Failed to read cover file")
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	result, err := h.service.UploadCover(c.Request.Context(), id, fileHeader.Filename, data, contentType)
	if err != nil {
		statusCode, code, message := model.GetErrorResponse(err)
		response.ErrorResponse(c, statusCode, code, message)
		return
	}

	response.Success(c, http.StatusOK, result)
}
