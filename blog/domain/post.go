package domain

import (
	"context"
	"time"
)

// Locale is a content partition key. Only the values in SupportedLocales are valid.
type Locale string

const (
	LocaleEN Locale = "en"
	LocalePT Locale = "pt"

	DefaultLocale = LocaleEN
)

// SupportedLocales lists every locale in the order listings aggregate them.
var SupportedLocales = []Locale{LocaleEN, LocalePT}

// ParseLocale reports whether s names a supported locale.
func ParseLocale(s string) (Locale, bool) {
	for _, l := range SupportedLocales {
		if string(l) == s {
			return l, true
		}
	}
	return "", false
}

// Post represents a blog post
// A post is built from one markdown file with YAML front-matter each time it is requested.
// Its identity is the pair (Language, Slug); the same slug can exist once per locale.
type Post struct {
	Slug        string
	Title       string
	Description string
	Author      string
	// Date is the display date. It is also the sort key.
	Date string
	// PublishDate hides the post from every read until it has passed. Nil means always visible.
	PublishDate *time.Time
	Tags        []string
	ReadTime    string
	Language    Locale
	Image       string
	Content     string
}

// PostKey addresses a post within the content store.
type PostKey struct {
	Locale Locale
	Slug   string
}

type PostRepository interface {
	// ListPosts returns visible posts newest first. An empty locale aggregates all supported locales.
	ListPosts(ctx context.Context, locale Locale) ([]Post, error)
	// GetPostBySlug returns false when the post is missing, malformed, or not yet published.
	GetPostBySlug(ctx context.Context, slug string, locale Locale) (*Post, bool)
}
