package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// Post is a blog article. "Draft" versus "published" is carried by the
// presence of PublishedAt, not a separate flag: a post is publicly
// visible iff PublishedAt is non-nil.
type Post struct {
	ID            uuid.UUID  `json:"id" db:"id"`
	Title         string     `json:"title" db:"title"`
	Slug          string     `json:"slug" db:"slug"`
	Content       *string    `json:"content,omitempty" db:"content"`
	PublishedAt   *time.Time `json:"published_at,omitempty" db:"published_at"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty" db:"updated_at"`
	CoverImageURL *string    `json:"cover_image_url,omitempty" db:"cover_image_url"`
}

func (p *Post) IsPublished() bool {
	return p.PublishedAt != nil
}

// CreatePostRequest is the editor's save payload for a new post.
// Content is authored as Markdown; it is converted to sanitized HTML
// before storage. Publish=false saves a draft.
type CreatePostRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content"`
	Publish bool   `json:"publish"`
}

func (r CreatePostRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 200),
		),
	)
}

// UpdatePostRequest is the editor's save payload for an existing post.
// The slug is deliberately absent: it is derived once at creation and
// never regenerated, so published URLs stay stable.
type UpdatePostRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content"`
	Publish bool   `json:"publish"`
}

func (r UpdatePostRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 200),
		),
	)
}

// PostResponse is the admin API view of a post.
type PostResponse struct {
	ID            uuid.UUID  `json:"id"`
	Title         string     `json:"title"`
	Slug          string     `json:"slug"`
	Content       string     `json:"content"`
	Published     bool       `json:"published"`
	PublishedAt   *time.Time `json:"published_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	CoverImageURL string     `json:"cover_image_url,omitempty"`
}

func (p *Post) ToResponse() *PostResponse {
	resp := &PostResponse{
		ID:          p.ID,
		Title:       p.Title,
		Slug:        p.Slug,
		Published:   p.IsPublished(),
		PublishedAt: p.PublishedAt,
		CreatedAt:   p.CreatedAt,
	}
	if p.Content != nil {
		resp.Content = *p.Content
	}
	if p.CoverImageURL != nil {
		resp.CoverImageURL = *p.CoverImageURL
	}
	return resp
}

// PostCard is a public list item: title, excerpt, formatted date.
type PostCard struct {
	Title         string
	Slug          string
	Excerpt       string
	DateLabel     string
	CoverImageURL string
}

// PostView is the public detail-page view. Body holds sanitized HTML
// injected verbatim by the template.
type PostView struct {
	Title         string
	Slug          string
	Body          string
	MetaExcerpt   string
	DateLabel     string
	CoverImageURL string
}
