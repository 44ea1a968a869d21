package service

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExcerptStripsTags(t *testing.T) {
	got := Excerpt("<p>Welding <strong>basics</strong> for beginners</p>", 120)

	assert.Equal(t, "Welding basics for beginners", got)
	assert.NotContains(t, got, "<")
	assert.NotContains(t, got, ">")
}

func TestExcerptCollapsesWhitespace(t *testing.T) {
	got := Excerpt("Enrollment\n\n  is   now\topen", 120)

	assert.Equal(t, "Enrollment is now open", got)
}

func TestExcerptTruncatesWithEllipsis(t *testing.T) {
	long := strings.Repeat("a", 200)

	got := Excerpt(long, 120)

	assert.True(t, strings.HasSuffix(got, "…"))
	// Visible characters (ellipsis excluded) never exceed the max.
	assert.Equal(t, 120, len([]rune(strings.TrimSuffix(got, "…"))))
}

func TestExcerptNoEllipsisAtExactBoundary(t *testing.T) {
	exact := strings.Repeat("b", 120)

	got := Excerpt(exact, 120)

	assert.Equal(t, exact, got)
	assert.False(t, strings.HasSuffix(got, "…"))
}

func TestExcerptNeverExceedsMax(t *testing.T) {
	inputs := []string{
		"<h1>Title</h1>" + strings.Repeat("word ", 100),
		strings.Repeat("x", 121),
		"short one",
		"",
	}

	for _, in := range inputs {
		got := Excerpt(in, 120)
		visible := strings.TrimSuffix(got, "…")
		assert.LessOrEqual(t, len([]rune(visible)), 120, "input %q", in)
		assert.NotContains(t, got, "<", "no tag fragments for input %q", in)
	}
}

func TestExcerptCountsRunesNotBytes(t *testing.T) {
	// Multi-byte characters must be cut at rune boundaries.
	long := strings.Repeat("é", 130)

	got := Excerpt(long, 120)

	assert.Equal(t, 120, len([]rune(strings.TrimSuffix(got, "…"))))
}

func TestFormatPostDatePrefersPublishTimestamp(t *testing.T) {
	published := time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC)
	created := time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, "Mar 5, 2024", FormatPostDate(&published, &created))
}

func TestFormatPostDateFallsBackToCreated(t *testing.T) {
	created := time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, "Jan 1, 2024", FormatPostDate(nil, &created))
}

func TestFormatPostDateAbsentTimestamps(t *testing.T) {
	assert.Equal(t, "", FormatPostDate(nil, nil))
}

func TestRenderContentConvertsMarkdown(t *testing.T) {
	html, err := renderContent("# Heading\n\nSome **bold** text.")

	assert.NoError(t, err)
	assert.Contains(t, html, "<h1")
	assert.Contains(t, html, "<strong>bold</strong>")
}

func TestRenderContentSanitizesScripts(t *testing.T) {
	html, err := renderContent("hello <script>alert('x')</script> world")

	assert.NoError(t, err)
	assert.NotContains(t, html, "<script>")
	assert.NotContains(t, html, "alert")
}

func TestRenderContentStripsEventHandlers(t *testing.T) {
	html, err := renderContent(`<img src="x.png" onerror="alert(1)">`)

	assert.NoError(t, err)
	assert.NotContains(t, html, "onerror")
}
