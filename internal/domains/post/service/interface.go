package service

import (
	"context"

	"github.com/google/uuid"

	"institute-backend/internal/domains/post/model"
)

// Service holds the post business logic for both sides of the site.
//
// The public read methods fail open: a data-access failure is logged
// and degraded to empty content so the marketing pages stay up. The
// admin methods surface errors to the acting editor.
type Service interface {
	// Public site.
	PublishedCards(ctx context.Context) []model.PostCard
	FeaturedCards(ctx context.Context, limit int) []model.PostCard
	ViewBySlug(ctx context.Context, slug string) (*model.PostView, error)

	// Admin editor.
	ListPosts(ctx context.Context) ([]*model.PostResponse, error)
	GetPost(ctx context.Context, id uuid.UUID) (*model.PostResponse, error)
	CreatePost(ctx context.Context, req *model.CreatePostRequest) (*model.PostResponse, error)
	UpdatePost(ctx context.Context, id uuid.UUID, req *model.UpdatePostRequest) (*model.PostResponse, error)
	UploadCover(ctx context.Context, id uuid.UUID, filename string, data []byte, contentType string) (*model.PostResponse, error)
}

// ObjectStore is the slice of the storage layer the editor needs for
// cover images.
type ObjectStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
}
