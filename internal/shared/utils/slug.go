package utils

import (
	"regexp"
	"strings"
)

var (
	nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)
)

// GenerateSlug derives a URL-safe slug from a title.
// "Food & Beverage NC II!!" -> "food-beverage-nc-ii"
//
// Steps: lowercase, collapse every run of non-alphanumeric characters to
// a single hyphen, trim leading/trailing hyphens. Deterministic and
// idempotent: applying it to its own output is a no-op.
func GenerateSlug(input string) string {
	lower := strings.ToLower(input)

	hyphenated := nonSlugChars.ReplaceAllString(lower, "-")

	return strings.Trim(hyphenated, "-")
}
