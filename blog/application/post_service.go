package application

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dfryer1193/portfolio/blog/domain"
	"github.com/rs/zerolog/log"
)

var _ domain.PostRepository = (*PostService)(nil)

const (
	markdownExt = ".md"

	DefaultAuthor   = "Robson Alves"
	DefaultReadTime = "5 min"
)

// PostService loads posts from a content store on every call.
// It keeps no state between calls, so it is safe for concurrent use.
type PostService struct {
	store         domain.ContentStore
	now           func() time.Time
	defaultAuthor string
}

type PostServiceOption func(*PostService)

// WithClock overrides the source of "now" used for publish-date filtering and date defaults.
func WithClock(now func() time.Time) PostServiceOption {
	return func(s *PostService) {
		s.now = now
	}
}

// WithDefaultAuthor sets the author used when a post does not name one.
func WithDefaultAuthor(author string) PostServiceOption {
	return func(s *PostService) {
		if author != "" {
			s.defaultAuthor = author
		}
	}
}

func NewPostService(store domain.ContentStore, opts ...PostServiceOption) *PostService {
	s := &PostService{
		store:         store,
		now:           time.Now,
		defaultAuthor: DefaultAuthor,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListPosts returns every visible post for locale, newest first. An empty locale means all supported locales.
// A missing content root or partition yields no posts; a post that cannot be read or parsed is skipped.
func (s *PostService) ListPosts(ctx context.Context, locale domain.Locale) ([]domain.Post, error) {
	locales := domain.SupportedLocales
	if locale != "" {
		locales = []domain.Locale{locale}
	}

	now := s.now()
	posts := make([]domain.Post, 0)

	for _, l := range locales {
		names, err := s.store.ListEntries(ctx, string(l))
		if errors.Is(err, domain.ErrStoreUnavailable) {
			return []domain.Post{}, nil
		}
		if errors.Is(err, domain.ErrPartitionNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list posts for locale %s: %w", l, err)
		}

		for _, name := range names {
			if !strings.HasSuffix(name, markdownExt) {
				continue
			}

			post, err := s.loadPost(ctx, l, name, now)
			if err != nil {
				log.Warn().Err(err).Str("locale", string(l)).Str("entry", name).Msg("Skipping unreadable post")
				continue
			}

			if !isVisible(post, now) {
				continue
			}

			posts = append(posts, *post)
		}
	}

	sortByDateDesc(posts)

	return posts, nil
}

// GetPostBySlug returns the post stored at <locale>/<slug>.md. It reports false for a missing,
// malformed, or not yet published post rather than returning an error.
func (s *PostService) GetPostBySlug(ctx context.Context, slug string, locale domain.Locale) (*domain.Post, bool) {
	if locale == "" {
		locale = domain.DefaultLocale
	}

	if !isValidSlug(slug) {
		return nil, false
	}

	now := s.now()
	post, err := s.loadPost(ctx, locale, slug+markdownExt, now)
	if err != nil {
		if !errors.Is(err, domain.ErrEntryNotFound) && !errors.Is(err, domain.ErrPartitionNotFound) && !errors.Is(err, domain.ErrStoreUnavailable) {
			log.Warn().Err(err).Str("locale", string(locale)).Str("slug", slug).Msg("Failed to load post")
		}
		return nil, false
	}

	if !isVisible(post, now) {
		return nil, false
	}

	return post, true
}

// Slugs returns the key of every visible post across all locales.
func (s *PostService) Slugs(ctx context.Context) ([]domain.PostKey, error) {
	posts, err := s.ListPosts(ctx, "")
	if err != nil {
		return nil, err
	}

	keys := make([]domain.PostKey, 0, len(posts))
	for _, p := range posts {
		keys = append(keys, domain.PostKey{Locale: p.Language, Slug: p.Slug})
	}
	return keys, nil
}

func (s *PostService) loadPost(ctx context.Context, locale domain.Locale, name string, now time.Time) (*domain.Post, error) {
	raw, err := s.store.ReadEntry(ctx, string(locale), name)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s/%s: %w", locale, name, err)
	}

	fm, body, err := parseFrontMatter(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s/%s: %w", locale, name, err)
	}

	slug := strings.TrimSuffix(name, markdownExt)
	post := &domain.Post{
		Slug:        slug,
		Title:       orDefault(fm.Title, slug),
		Description: fm.Description,
		Author:      orDefault(fm.Author, s.defaultAuthor),
		Date:        orDefault(fm.Date, now.UTC().Format(time.DateOnly)),
		Tags:        []string(fm.Tags),
		ReadTime:    orDefault(fm.ReadTime, DefaultReadTime),
		Language:    locale,
		Image:       fm.Image,
		Content:     body,
	}

	if post.Tags == nil {
		post.Tags = []string{}
	}

	// An unparseable publishDate is treated as absent.
	if publishAt, ok := parseTimestamp(fm.PublishDate); ok {
		post.PublishDate = &publishAt
	}

	return post, nil
}

func isVisible(p *domain.Post, now time.Time) bool {
	return p.PublishDate == nil || !p.PublishDate.After(now)
}

// sortByDateDesc orders posts newest first. Unparseable dates sort as the earliest instant.
func sortByDateDesc(posts []domain.Post) {
	keys := make(map[string]time.Time, len(posts))
	for _, p := range posts {
		t, _ := parseTimestamp(p.Date)
		keys[string(p.Language)+"/"+p.Slug] = t
	}

	sort.SliceStable(posts, func(i, j int) bool {
		a := keys[string(posts[i].Language)+"/"+posts[i].Slug]
		b := keys[string(posts[j].Language)+"/"+posts[j].Slug]
		return a.After(b)
	})
}

func isValidSlug(slug string) bool {
	if slug == "" || slug == "." || slug == ".." {
		return false
	}
	return !strings.ContainsAny(slug, `/\`) && !strings.Contains(slug, "..")
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
