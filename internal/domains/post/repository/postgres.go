package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"institute-backend/internal/domains/post/model"
	"institute-backend/pkg/cache"
	"institute-backend/pkg/logger"
)

const (
	cacheKeyPublished  = "posts:published"
	cacheKeySlugPrefix = "posts:slug:"
	cacheTTL           = 5 * time.Minute
)

const postColumns = `id, title, slug, content, published_at, created_at, updated_at, cover_image_url`

// postgresRepository implements Repository on pgxpool, with a Redis
// read-through cache on the published paths. Cache errors are logged
// and ignored: the database is always the source of truth.
type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

// NewPostgresRepository creates a new post repository instance
// Dependency injection pattern - receives pool from container
func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) Repository {
	return &postgresRepository{
		pool:  pool,
		cache: cache,
	}
}

// ListPublished returns published posts, newest publish date first.
func (r *postgresRepository) ListPublished(ctx context.Context) ([]*model.Post, error) {
	if posts, ok := r.cachedList(ctx, cacheKeyPublished); ok {
		return posts, nil
	}

	query := fmt.Sprintf(`
    SELECT %s
    FROM posts
    WHERE published_at IS NOT NULL
    ORDER BY published_at DESC
  `, postColumns)

	posts, err := r.queryPosts(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list published posts: %w", err)
	}

	r.cacheSet(ctx, cacheKeyPublished, posts)
	return posts, nil
}

// ListFeatured returns at most limit published posts, same ordering.
func (r *postgresRepository) ListFeatured(ctx context.Context, limit int) ([]*model.Post, error) {
	key := fmt.Sprintf("%s:featured:%d", cacheKeyPublished, limit)
	if posts, ok := r.cachedList(ctx, key); ok {
		return posts, nil
	}

	query := fmt.Sprintf(`
    SELECT %s
    FROM posts
    WHERE published_at IS NOT NULL
    ORDER BY published_at DESC
    LIMIT $1
  `, postColumns)

	posts, err := r.queryPosts(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list featured posts: %w", err)
	}

	r.cacheSet(ctx, key, posts)
	return posts, nil
}

// GetBySlug retrieves a published post by slug. The query filters on
// published_at IS NOT NULL, so a draft with a matching slug scans the
// same as a missing row: (nil, nil).
func (r *postgresRepository) GetBySlug(ctx context.Context, slug string) (*model.Post, error) {
	key := cacheKeySlugPrefix + slug
	var cached model.Post
	if r.cache != nil {
		if found, err := r.cache.Get(ctx, key, &cached); err == nil && found {
			return &cached, nil
		}
	}

	query := fmt.Sprintf(`
    SELECT %s
    FROM posts
    WHERE published_at IS NOT NULL AND slug = $1
  `, postColumns)

	row := r.pool.QueryRow(ctx, query, slug)

	post, err := scanPost(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get post by slug: %w", err)
	}

	r.cacheSet(ctx, key, post)
	return post, nil
}

// GetByID retrieves a post by ID, drafts included (admin path, no cache).
func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	query := fmt.Sprintf(`
    SELECT %s
    FROM posts
    WHERE id = $1
  `, postColumns)

	row := r.pool.QueryRow(ctx, query, id)

	post, err := scanPost(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get post by id: %w", err)
	}

	return post, nil
}

// ListAll returns every post for the admin dashboard, drafts first by
// recency of creation.
func (r *postgresRepository) ListAll(ctx context.Context) ([]*model.Post, error) {
	query := fmt.Sprintf(`
    SELECT %s
    FROM posts
    ORDER BY created_at DESC
  `, postColumns)

	posts, err := r.queryPosts(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, nil
}

// Create inserts a new post record.
func (r *postgresRepository) Create(ctx context.Context, post *model.Post) (*model.Post, error) {
	query := fmt.Sprintf(`
    INSERT INTO posts (title, slug, content, published_at, cover_image_url)
    VALUES ($1, $2, $3, $4, $5)
    RETURNING %s
  `, postColumns)

	row := r.pool.QueryRow(ctx, query,
		post.Title, post.Slug, post.Content, post.PublishedAt, post.CoverImageURL)

	created, err := scanPost(row)
	if err != nil {
		if strings.Contains(err.Error(), "unique constraint") {
			return nil, model.NewSlugAlreadyExists(post.Slug)
		}
		return nil, model.NewDataAccessError("create post", err)
	}

	r.invalidate(ctx)
	return created, nil
}

// Update saves the mutable fields of an existing post. The slug is not
// in the SET list: it never changes after creation.
func (r *postgresRepository) Update(ctx context.Context, post *model.Post) (*model.Post, error) {
	query := fmt.Sprintf(`
    UPDATE posts
    SET title = $2, content = $3, published_at = $4, cover_image_url = $5, updated_at = now()
    WHERE id = $1
    RETURNING %s
  `, postColumns)

	row := r.pool.QueryRow(ctx, query,
		post.ID, post.Title, post.Content, post.PublishedAt, post.CoverImageURL)

	updated, err := scanPost(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, model.NewDataAccessError("update post", err)
	}

	r.invalidate(ctx)
	return updated, nil
}

// ============================================
// HELPERS
// ============================================

func (r *postgresRepository) queryPosts(ctx context.Context, query string, args ...interface{}) ([]*model.Post, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []*model.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post row: %w", err)
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

func scanPost(row pgx.Row) (*model.Post, error) {
	var post model.Post
	err := row.Scan(
		&post.ID,
		&post.Title,
		&post.Slug,
		&post.Content,
		&post.PublishedAt,
		&post.CreatedAt,
		&post.UpdatedAt,
		&post.CoverImageURL,
	)
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postgresRepository) cachedList(ctx context.Context, key string) ([]*model.Post, bool) {
	if r.cache == nil {
		return nil, false
	}
	var posts []*model.Post
	found, err := r.cache.Get(ctx, key, &posts)
	if err != nil || !found {
		return nil, false
	}
	return posts, true
}

func (r *postgresRepository) cacheSet(ctx context.Context, key string, value interface{}) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Set(ctx, key, value, cacheTTL); err != nil {
		logger.Warn("post cache set failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
}

// invalidate drops every cached post entry after a write.
func (r *postgresRepository) invalidate(ctx context.Context) {
	if r.cache == nil {
		return
	}
	if err := r.cache.DeletePattern(ctx, "posts:*"); err != nil {
		logger.Warn("post cache invalidation failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
