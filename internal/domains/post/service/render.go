package service

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

const (
	// Excerpt lengths for card views and detail-page metadata.
	ExcerptCardLength = 120
	ExcerptMetaLength = 160
)

var (
	tagPattern        = regexp.MustCompile(`<[^>]*>`)
	whitespacePattern = regexp.MustCompile(`\s+`)

	// Raw HTML passes through the converter; bluemonday below is the
	// safety gate. Stored content is HTML, so it must survive being fed
	// back through this pipeline on the next save.
	markdown = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)

	// UGC policy: keeps the formatting tags an article needs, strips
	// scripts and event handlers before anything reaches a template.
	sanitizer = bluemonday.UGCPolicy()
)

// Excerpt produces a plain-text preview of at most max characters.
// Markup tags are stripped first, whitespace runs collapse to single
// spaces, and text longer than max is cut at the rune boundary with a
// single ellipsis appended. Text exactly at max is returned as is.
func Excerpt(content string, max int) string {
	plain := tagPattern.ReplaceAllString(content, " ")
	plain = whitespacePattern.ReplaceAllString(plain, " ")
	plain = strings.TrimSpace(plain)

	runes := []rune(plain)
	if len(runes) <= max {
		return plain
	}
	return string(runes[:max]) + "…"
}

// FormatPostDate renders the display date for a post: the publish date
// when present, the creation date otherwise, "Jan 2, 2006" either way.
// Nil timestamps render as the empty string.
func FormatPostDate(publishedAt, createdAt *time.Time) string {
	t := publishedAt
	if t == nil {
		t = createdAt
	}
	if t == nil {
		return ""
	}
	return t.Format("Jan 2, 2006")
}

// renderContent converts authored Markdown to sanitized HTML. This is
// the canonical stored format: templates inject it without a second
// sanitization pass.
func renderContent(source string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("markdown conversion failed: %w", err)
	}
	return sanitizer.Sanitize(buf.String()), nil
}
