package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"institute-backend/internal/domains/post/model"
)

// fakeRepository is an in-memory Repository for service tests.
type fakeRepository struct {
	posts   map[uuid.UUID]*model.Post
	failAll bool
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{posts: make(map[uuid.UUID]*model.Post)}
}

var errBackend = errors.New("backend unavailable")

func (f *fakeRepository) ListPublished(ctx context.Context) ([]*model.Post, error) {
	if f.failAll {
		return nil, errBackend
	}
	var out []*model.Post
	for _, p := range f.posts {
		if p.IsPublished() {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeRepository) ListFeatured(ctx context.Context, limit int) ([]*model.Post, error) {
	published, err := f.ListPublished(ctx)
	if err != nil {
		return nil, err
	}
	if len(published) > limit {
		published = published[:limit]
	}
	return published, nil
}

func (f *fakeRepository) GetBySlug(ctx context.Context, slug string) (*model.Post, error) {
	if f.failAll {
		return nil, errBackend
	}
	for _, p := range f.posts {
		if p.Slug == slug && p.IsPublished() {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	if f.failAll {
		return nil, errBackend
	}
	return f.posts[id], nil
}

func (f *fakeRepository) ListAll(ctx context.Context) ([]*model.Post, error) {
	if f.failAll {
		return nil, errBackend
	}
	var out []*model.Post
	for _, p := range f.posts {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeRepository) Create(ctx context.Context, post *model.Post) (*model.Post, error) {
	if f.failAll {
		return nil, errBackend
	}
	for _, p := range f.posts {
		if p.Slug == post.Slug {
			return nil, model.NewSlugAlreadyExists(post.Slug)
		}
	}
	clone := *post
	clone.ID = uuid.New()
	clone.CreatedAt = time.Now()
	f.posts[clone.ID] = &clone
	return &clone, nil
}

func (f *fakeRepository) Update(ctx context.Context, post *model.Post) (*model.Post, error) {
	if f.failAll {
		return nil, errBackend
	}
	existing, ok := f.posts[post.ID]
	if !ok {
		return nil, nil
	}
	// Slug never changes on update, mirroring the SQL SET list.
	post.Slug = existing.Slug
	clone := *post
	f.posts[post.ID] = &clone
	return &clone, nil
}

// fakeStore records uploads.
type fakeStore struct {
	keys    []string
	failErr error
}

func (f *fakeStore) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if f.failErr != nil {
		return "", f.failErr
	}
	f.keys = append(f.keys, key)
	return "http://objects.local/institute/" + key, nil
}

func newTestService(repo *fakeRepository, store *fakeStore) *postService {
	return &postService{
		repo:  repo,
		store: store,
		now:   func() time.Time { return time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC) },
	}
}

// ============================================
// EDITOR SEMANTICS
// ============================================

func TestCreatePostDerivesSlugFromTitle(t *testing.T) {
	svc := newTestService(newFakeRepository(), &fakeStore{})

	created, err := svc.CreatePost(context.Background(), &model.CreatePostRequest{
		Title:   "Food & Beverage NC II!!",
		Content: "Enrollment details.",
	})

	require.NoError(t, err)
	assert.Equal(t, "food-beverage-nc-ii", created.Slug)
	assert.False(t, created.Published)
	assert.Nil(t, created.PublishedAt)
}

func TestCreatePostPublishStampsTimestamp(t *testing.T) {
	svc := newTestService(newFakeRepository(), &fakeStore{})

	created, err := svc.CreatePost(context.Background(), &model.CreatePostRequest{
		Title:   "Welding Basics",
		Publish: true,
	})

	require.NoError(t, err)
	assert.True(t, created.Published)
	require.NotNil(t, created.PublishedAt)
	assert.Equal(t, 2024, created.PublishedAt.Year())
}

func TestCreatePostRejectsEmptyTitle(t *testing.T) {
	svc := newTestService(newFakeRepository(), &fakeStore{})

	_, err := svc.CreatePost(context.Background(), &model.CreatePostRequest{Title: "   "})

	require.Error(t, err)
	status, code, _ := model.GetErrorResponse(err)
	assert.Equal(t, 400, status)
	assert.Equal(t, "VALIDATION_ERROR", code)
}

func TestCreatePostRejectsSymbolOnlyTitle(t *testing.T) {
	svc := newTestService(newFakeRepository(), &fakeStore{})

	_, err := svc.CreatePost(context.Background(), &model.CreatePostRequest{Title: "!!!"})

	require.Error(t, err)
	status, _, _ := model.GetErrorResponse(err)
	assert.Equal(t, 400, status)
}

func TestCreatePostStoresSanitizedHTML(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo, &fakeStore{})

	created, err := svc.CreatePost(context.Background(), &model.CreatePostRequest{
		Title:   "Campus News",
		Content: "# Update\n\n<script>alert(1)</script>ok",
	})

	require.NoError(t, err)
	assert.Contains(t, created.Content, "<h1")
	assert.NotContains(t, created.Content, "<script>")
}

func TestUpdatePostNeverRegeneratesSlug(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo, &fakeStore{})

	created, err := svc.CreatePost(context.Background(), &model.CreatePostRequest{Title: "Original Title"})
	require.NoError(t, err)
	require.Equal(t, "original-title", created.Slug)

	updated, err := svc.UpdatePost(context.Background(), created.ID, &model.UpdatePostRequest{
		Title: "Completely Different Title",
	})

	require.NoError(t, err)
	assert.Equal(t, "Completely Different Title", updated.Title)
	assert.Equal(t, "original-title", updated.Slug, "slug must stay stable after creation")
}

func TestUpdatePostPublishKeepsOriginalTimestamp(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo, &fakeStore{})

	created, err := svc.CreatePost(context.Background(), &model.CreatePostRequest{
		Title:   "Announcement",
		Publish: true,
	})
	require.NoError(t, err)
	firstPublish := *created.PublishedAt

	svc.now = func() time.Time { return firstPublish.Add(48 * time.Hour) }

	updated, err := svc.UpdatePost(context.Background(), created.ID, &model.UpdatePostRequest{
		Title:   "Announcement (edited)",
		Publish: true,
	})

	require.NoError(t, err)
	require.NotNil(t, updated.PublishedAt)
	assert.True(t, updated.PublishedAt.Equal(firstPublish),
		"re-saving a published post must not move its publish date")
}

func TestUpdatePostUnpublishClearsTimestamp(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo, &fakeStore{})

	created, err := svc.CreatePost(context.Background(), &model.CreatePostRequest{
		Title:   "Retracted",
		Publish: true,
	})
	require.NoError(t, err)

	updated, err := svc.UpdatePost(context.Background(), created.ID, &model.UpdatePostRequest{
		Title:   "Retracted",
		Publish: false,
	})

	require.NoError(t, err)
	assert.False(t, updated.Published)
	assert.Nil(t, updated.PublishedAt)
}

func TestUpdatePostMissingIsNotFound(t *testing.T) {
	svc := newTestService(newFakeRepository(), &fakeStore{})

	_, err := svc.UpdatePost(context.Background(), uuid.New(), &model.UpdatePostRequest{Title: "x"})

	require.Error(t, err)
	status, code, _ := model.GetErrorResponse(err)
	assert.Equal(t, 404, status)
	assert.Equal(t, "POST_NOT_FOUND", code)
}

func TestLastWriteWinsOnConcurrentSaves(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo, &fakeStore{})

	created, err := svc.CreatePost(context.Background(), &model.CreatePostRequest{Title: "Shared Draft"})
	require.NoError(t, err)

	// Two editors save in sequence with no version check: the second
	// save silently overwrites the first.
	_, err = svc.UpdatePost(context.Background(), created.ID, &model.UpdatePostRequest{
		Title: "Editor A's version", Content: "from A",
	})
	require.NoError(t, err)

	final, err := svc.UpdatePost(context.Background(), created.ID, &model.UpdatePostRequest{
		Title: "Editor B's version", Content: "from B",
	})
	require.NoError(t, err)

	assert.Equal(t, "Editor B's version", final.Title)
	assert.Contains(t, final.Content, "from B")
	assert.NotContains(t, final.Content, "from A")
}

// ============================================
// COVER UPLOADS
// ============================================

func TestUploadCoverBuildsKeyFromSlug(t *testing.T) {
	repo := newFakeRepository()
	store := &fakeStore{}
	svc := newTestService(repo, store)

	created, err := svc.CreatePost(context.Background(), &model.CreatePostRequest{Title: "Welding Basics"})
	require.NoError(t, err)

	updated, err := svc.UploadCover(context.Background(), created.ID, "photo.JPG", []byte("img"), "image/jpeg")

	require.NoError(t, err)
	require.Len(t, store.keys, 1)
	assert.Equal(t, "covers/welding-basics-1717243200.jpg", store.keys[0])
	assert.Equal(t, "http://objects.local/institute/covers/welding-basics-1717243200.jpg", updated.CoverImageURL)
}

func TestUploadCoverFailureLeavesPostUnchanged(t *testing.T) {
	repo := newFakeRepository()
	store := &fakeStore{failErr: errors.New("storage down")}
	svc := newTestService(repo, store)

	created, err := svc.CreatePost(context.Background(), &model.CreatePostRequest{Title: "Welding Basics"})
	require.NoError(t, err)

	_, err = svc.UploadCover(context.Background(), created.ID, "photo.jpg", []byte("img"), "image/jpeg")

	require.Error(t, err)
	status, code, _ := model.GetErrorResponse(err)
	assert.Equal(t, 500, status)
	assert.Equal(t, "COVER_UPLOAD_ERROR", code)

	after, err := svc.GetPost(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Empty(t, after.CoverImageURL, "failed upload must not touch the stored cover URL")
}

// ============================================
// PUBLIC READ PATH
// ============================================

func TestPublishedCardsExcludeDrafts(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo, &fakeStore{})

	_, err := svc.CreatePost(context.Background(), &model.CreatePostRequest{Title: "Draft Post"})
	require.NoError(t, err)
	_, err = svc.CreatePost(context.Background(), &model.CreatePostRequest{Title: "Live Post", Publish: true})
	require.NoError(t, err)

	cards := svc.PublishedCards(context.Background())

	require.Len(t, cards, 1)
	assert.Equal(t, "Live Post", cards[0].Title)
}

func TestPublishedCardsFailOpenToEmpty(t *testing.T) {
	repo := newFakeRepository()
	repo.failAll = true
	svc := newTestService(repo, &fakeStore{})

	cards := svc.PublishedCards(context.Background())

	assert.NotNil(t, cards)
	assert.Empty(t, cards)
}

func TestFeaturedCardsFailOpenToEmpty(t *testing.T) {
	repo := newFakeRepository()
	repo.failAll = true
	svc := newTestService(repo, &fakeStore{})

	assert.Empty(t, svc.FeaturedCards(context.Background(), 3))
}

func TestViewBySlugUnpublishedLooksLikeMissing(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo, &fakeStore{})

	_, err := svc.CreatePost(context.Background(), &model.CreatePostRequest{Title: "Hidden Draft"})
	require.NoError(t, err)

	_, draftErr := svc.ViewBySlug(context.Background(), "hidden-draft")
	_, missingErr := svc.ViewBySlug(context.Background(), "no-such-post")

	require.Error(t, draftErr)
	require.Error(t, missingErr)

	draftStatus, draftCode, draftMsg := model.GetErrorResponse(draftErr)
	missingStatus, missingCode, missingMsg := model.GetErrorResponse(missingErr)

	// An existing-but-unpublished slug must behave identically to a
	// nonexistent one.
	assert.Equal(t, missingStatus, draftStatus)
	assert.Equal(t, missingCode, draftCode)
	assert.Equal(t, missingMsg, draftMsg)
}

func TestViewBySlugDataFailureIsNotFound(t *testing.T) {
	repo := newFakeRepository()
	repo.failAll = true
	svc := newTestService(repo, &fakeStore{})

	_, err := svc.ViewBySlug(context.Background(), "anything")

	require.Error(t, err)
	status, _, _ := model.GetErrorResponse(err)
	assert.Equal(t, 404, status)
}
