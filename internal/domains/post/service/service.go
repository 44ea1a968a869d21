package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"institute-backend/internal/domains/post/model"
	"institute-backend/internal/domains/post/repository"
	"institute-backend/internal/shared/utils"
	"institute-backend/pkg/logger"
)

const coverKeyPrefix = "covers/"

// postService implements Service
type postService struct {
	repo  repository.Repository
	store ObjectStore
	now   func() time.Time
}

// NewPostService creates a new post service instance
// Dependency injection pattern - receives repository and storage from container
func NewPostService(repo repository.Repository, store ObjectStore) Service {
	return &postService{
		repo:  repo,
		store: store,
		now:   time.Now,
	}
}

// ============================================
// PUBLIC SITE
// ============================================

// PublishedCards returns list cards for every published post. On any
// data-access failure it logs and returns an empty slice: the blog page
// renders empty instead of erroring.
func (s *postService) PublishedCards(ctx context.Context) []model.PostCard {
	posts, err := s.repo.ListPublished(ctx)
	if err != nil {
		logger.Error("failed to load published posts, serving empty list", err)
		return []model.PostCard{}
	}
	return toCards(posts)
}

// FeaturedCards returns at most limit cards, same failure policy.
func (s *postService) FeaturedCards(ctx context.Context, limit int) []model.PostCard {
	if limit < 1 {
		limit = 3
	}
	posts, err := s.repo.ListFeatured(ctx, limit)
	if err != nil {
		logger.Error("failed to load featured posts, serving empty list", err)
		return []model.PostCard{}
	}
	return toCards(posts)
}

// ViewBySlug returns the detail view for a published post. A missing
// row, an unpublished row and a data-access failure all surface as
// NotFound; the public site never distinguishes them.
func (s *postService) ViewBySlug(ctx context.Context, slug string) (*model.PostView, error) {
	post, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		logger.Error("failed to load post by slug, serving not-found", err)
		return nil, model.NewPostNotFound()
	}
	if post == nil {
		return nil, model.NewPostNotFound()
	}

	content := ""
	if post.Content != nil {
		content = *post.Content
	}

	view := &model.PostView{
		Title:       post.Title,
		Slug:        post.Slug,
		Body:        content,
		MetaExcerpt: Excerpt(content, ExcerptMetaLength),
		DateLabel:   FormatPostDate(post.PublishedAt, &post.CreatedAt),
	}
	if post.CoverImageURL != nil {
		view.CoverImageURL = *post.CoverImageURL
	}
	return view, nil
}

// ============================================
// ADMIN EDITOR
// ============================================

func (s *postService) ListPosts(ctx context.Context) ([]*model.PostResponse, error) {
	posts, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, model.NewDataAccessError("list posts", err)
	}

	responses := make([]*model.PostResponse, len(posts))
	for i, post := range posts {
		responses[i] = post.ToResponse()
	}
	return responses, nil
}

func (s *postService) GetPost(ctx context.Context, id uuid.UUID) (*model.PostResponse, error) {
	if id == uuid.Nil {
		return nil, model.NewInvalidPostID("id cannot be nil")
	}

	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, model.NewDataAccessError("get post", err)
	}
	if post == nil {
		return nil, model.NewPostNotFound()
	}

	return post.ToResponse(), nil
}

// CreatePost saves a brand-new post. The slug is derived from the title
// here and only here: later title edits never regenerate it.
func (s *postService) CreatePost(ctx context.Context, req *model.CreatePostRequest) (*model.PostResponse, error) {
	if req == nil {
		return nil, model.NewInvalidTitle("request cannot be nil")
	}
	if err := req.Validate(); err != nil {
		return nil, model.NewValidationError(err)
	}

	title := strings.TrimSpace(req.Title)
	slug := utils.GenerateSlug(title)
	if slug == "" {
		return nil, model.NewInvalidTitle("title produces an empty slug")
	}

	content, err := renderContent(req.Content)
	if err != nil {
		return nil, model.NewValidationError(err)
	}

	post := &model.Post{
		Title:   title,
		Slug:    slug,
		Content: &content,
	}
	if req.Publish {
		now := s.now()
		post.PublishedAt = &now
	}

	created, err := s.repo.Create(ctx, post)
	if err != nil {
		return nil, err
	}

	return created.ToResponse(), nil
}

// UpdatePost saves an existing post. Draft/publish state follows the
// request: publishing stamps published_at once and keeps the original
// timestamp on later saves, unpublishing clears it.
func (s *postService) UpdatePost(ctx context.Context, id uuid.UUID, req *model.UpdatePostRequest) (*model.PostResponse, error) {
	if id == uuid.Nil {
		return nil, model.NewInvalidPostID("id cannot be nil")
	}
	if req == nil {
		return nil, model.NewInvalidTitle("request cannot be nil")
	}
	if err := req.Validate(); err != nil {
		return nil, model.NewValidationError(err)
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, model.NewDataAccessError("get post", err)
	}
	if existing == nil {
		return nil, model.NewPostNotFound()
	}

	content, err := renderContent(req.Content)
	if err != nil {
		return nil, model.NewValidationError(err)
	}

	existing.Title = strings.TrimSpace(req.Title)
	existing.Content = &content

	switch {
	case req.Publish && existing.PublishedAt == nil:
		now := s.now()
		existing.PublishedAt = &now
	case !req.Publish:
		existing.PublishedAt = nil
	}

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, model.NewPostNotFound()
	}

	return updated.ToResponse(), nil
}

// UploadCover stores a cover image and records its URL on the post.
// The object key is built from the post's slug, so a post without one
// cannot receive a cover. On upload failure the stored URL is left
// unchanged; replaced objects are never deleted.
func (s *postService) UploadCover(ctx context.Context, id uuid.UUID, filename string, data []byte, contentType string) (*model.PostResponse, error) {
	if id == uuid.Nil {
		return nil, model.NewInvalidPostID("id cannot be nil")
	}

	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, model.NewDataAccessError("get post", err)
	}
	if post == nil {
		return nil, model.NewPostNotFound()
	}
	if post.Slug == "" {
		return nil, model.NewMissingSlugForCover()
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if ext == "" {
		ext = "jpg"
	}
	key := fmt.Sprintf("%s%s-%d.%s", coverKeyPrefix, post.Slug, s.now().Unix(), ext)

	url, err := s.store.Upload(ctx, key, data, contentType)
	if err != nil {
		return nil, model.NewCoverUploadError(err)
	}

	post.CoverImageURL = &url

	updated, err := s.repo.Update(ctx, post)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, model.NewPostNotFound()
	}

	return updated.ToResponse(), nil
}

// ============================================
// HELPERS
// ============================================

func toCards(posts []*model.Post) []model.PostCard {
	cards := make([]model.PostCard, 0, len(posts))
	for _, post := range posts {
		content := ""
		if post.Content != nil {
			content = *post.Content
		}

		card := model.PostCard{
			Title:     post.Title,
			Slug:      post.Slug,
			Excerpt:   Excerpt(content, ExcerptCardLength),
			DateLabel: FormatPostDate(post.PublishedAt, &post.CreatedAt),
		}
		if post.CoverImageURL != nil {
			card.CoverImageURL = *post.CoverImageURL
		}
		cards = append(cards, card)
	}
	return cards
}
