package entity

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gosimple/unidecode"
)

// ExcerptLength is the number of content characters kept in a default excerpt.
const ExcerptLength = 200

// ExcerptEllipsis marks a default excerpt cut from longer content.
const ExcerptEllipsis = "..."

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	nonSlugChars  = regexp.MustCompile(`[^a-z0-9-]+`)
	hyphenRun     = regexp.MustCompile(`-{2,}`)
)

// Slugify reduces s to lowercase ASCII letters, digits and single hyphens.
// Accented letters are transliterated first. The result may be empty.
func Slugify(s string) string {
	s = unidecode.Unidecode(s)
	s = strings.TrimSpace(strings.ToLower(s))
	s = whitespaceRun.ReplaceAllString(s, "-")
	s = nonSlugChars.ReplaceAllString(s, "")
	s = hyphenRun.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// GenerateSlug derives a slug from a post title. Titles that reduce to
// nothing fall back to post-<epoch millis> of now so the result is never empty.
func GenerateSlug(title string, now time.Time) string {
	if s := Slugify(title); s != "" {
		return s
	}
	return fmt.Sprintf("post-%d", now.UnixMilli())
}

// SlugCandidate returns the n-th uniqueness candidate for base: base itself
// for n == 0, base-n otherwise.
func SlugCandidate(base string, n int) string {
	if n == 0 {
		return base
	}
	return fmt.Sprintf("%s-%d", base, n)
}

// DefaultExcerpt returns the first ExcerptLength characters of content,
// followed by ExcerptEllipsis when content was longer. Empty content yields nil.
func DefaultExcerpt(content string) *string {
	if content == "" {
		return nil
	}
	if utf8.RuneCountInString(content) <= ExcerptLength {
		out := content
		return &out
	}
	runes := []rune(content)
	out := string(runes[:ExcerptLength]) + ExcerptEllipsis
	return &out
}

// ResolveExcerpt keeps a caller excerpt when one was given and falls back to
// DefaultExcerpt otherwise.
func ResolveExcerpt(excerpt *string, content string) *string {
	if excerpt != nil && *excerpt != "" {
		return excerpt
	}
	return DefaultExcerpt(content)
}
