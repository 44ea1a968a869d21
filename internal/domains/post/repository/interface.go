package repository

import (
	"context"

	"github.com/google/uuid"

	"institute-backend/internal/domains/post/model"
)

// Repository is the single data-access interface for posts: both the
// public read operations and the editor's write operations go through
// it. Read methods return (nil, nil) for not-found; services decide how
// to surface that.
type Repository interface {
	// Public reads (published posts only).
	ListPublished(ctx context.Context) ([]*model.Post, error)
	ListFeatured(ctx context.Context, limit int) ([]*model.Post, error)
	// GetBySlug filters on published AND slug: an existing draft and a
	// missing row are both (nil, nil).
	GetBySlug(ctx context.Context, slug string) (*model.Post, error)

	// Admin reads (drafts included).
	GetByID(ctx context.Context, id uuid.UUID) (*model.Post, error)
	ListAll(ctx context.Context) ([]*model.Post, error)

	// Writes. Last write wins at the row level: there is no version or
	// etag check, so two editors saving the same post silently overwrite
	// each other.
	Create(ctx context.Context, post *model.Post) (*model.Post, error)
	Update(ctx context.Context, post *model.Post) (*model.Post, error)
}
