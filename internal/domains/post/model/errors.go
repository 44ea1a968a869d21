package model

import (
	"errors"
	"fmt"
	"net/http"
)

// PostError is the base error for the post domain.
type PostError struct {
	Code    string // unique error code (e.g. "POST_NOT_FOUND")
	Message string // human-readable message
	Err     error  // underlying error
}

// Error implements error interface
func (e *PostError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap allows error wrapping compatibility
func (e *PostError) Unwrap() error {
	return e.Err
}

// ============================================
// ERROR FACTORY FUNCTIONS
// ============================================

// NewPostNotFound: the post does not exist or is not published. The two
// cases are deliberately indistinguishable on the public read path.
func NewPostNotFound() *PostError {
	return &PostError{
		Code:    "POST_NOT_FOUND",
		Message: "Post not found",
	}
}

func NewInvalidPostID(id string) *PostError {
	return &PostError{
		Code:    "INVALID_POST_ID",
		Message: fmt.Sprintf("Invalid post ID: %s", id),
	}
}

func NewInvalidTitle(reason string) *PostError {
	return &PostError{
		Code:    "VALIDATION_ERROR",
		Message: fmt.Sprintf("Invalid post title: %s", reason),
	}
}

func NewValidationError(err error) *PostError {
	return &PostError{
		Code:    "VALIDATION_ERROR",
		Message: err.Error(),
		Err:     err,
	}
}

func NewSlugAlreadyExists(slug string) *PostError {
	return &PostError{
		Code:    "SLUG_ALREADY_EXISTS",
		Message: fmt.Sprintf("A post with slug '%s' already exists", slug),
	}
}

// NewMissingSlugForCover: cover uploads build their object key from the
// slug, so an unnamed post cannot receive one.
func NewMissingSlugForCover() *PostError {
	return &PostError{
		Code:    "MISSING_SLUG",
		Message: "Post needs a title before a cover image can be uploaded",
	}
}

func NewCoverUploadError(err error) *PostError {
	return &PostError{
		Code:    "COVER_UPLOAD_ERROR",
		Message: "Failed to upload cover image",
		Err:     err,
	}
}

func NewDataAccessError(op string, err error) *PostError {
	return &PostError{
		Code:    "DATA_ACCESS_ERROR",
		Message: fmt.Sprintf("Failed to %s", op),
		Err:     err,
	}
}

// ============================================
// HTTP MAPPING
// ============================================

// GetErrorResponse maps a domain error to an HTTP status, code, message.
func GetErrorResponse(err error) (int, string, string) {
	var postErr *PostError
	if !errors.As(err, &postErr) {
		return http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Internal server error"
	}

	switch postErr.Code {
	case "POST_NOT_FOUND":
		return http.StatusNotFound, postErr.Code, postErr.Message
	case "VALIDATION_ERROR", "INVALID_POST_ID", "MISSING_SLUG":
		return http.StatusBadRequest, postErr.Code, postErr.Message
	case "SLUG_ALREADY_EXISTS":
		return http.StatusConflict, postErr.Code, postErr.Message
	default:
		return http.StatusInternalServerError, postErr.Code, postErr.Message
	}
}
