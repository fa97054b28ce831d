package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dfryer1193/portfolio/blog/domain"
	"github.com/rs/zerolog/log"
)

// DefaultRenderTTL is how long a rendered post is served before it is rendered again.
const DefaultRenderTTL = time.Hour

// PostCatalog is a post repository that can also enumerate the keys of its visible posts.
type PostCatalog interface {
	domain.PostRepository
	Slugs(ctx context.Context) ([]domain.PostKey, error)
}

// RenderService turns posts into HTML, keeping results in an optional render cache.
// Cache failures are logged and never fail a render.
type RenderService struct {
	renderer MarkdownRenderer
	cache    domain.RenderCache
	ttl      time.Duration
	now      func() time.Time
}

// NewRenderService creates a RenderService. A nil cache disables caching, a non-positive ttl uses
// DefaultRenderTTL, and a nil now uses time.Now.
func NewRenderService(renderer MarkdownRenderer, cache domain.RenderCache, ttl time.Duration, now func() time.Time) *RenderService {
	if ttl <= 0 {
		ttl = DefaultRenderTTL
	}
	if now == nil {
		now = time.Now
	}
	return &RenderService{
		renderer: renderer,
		cache:    cache,
		ttl:      ttl,
		now:      now,
	}
}

// RenderPost returns the HTML for a post body, from the cache when a fresh copy exists.
func (s *RenderService) RenderPost(ctx context.Context, post *domain.Post) (string, error) {
	if post == nil {
		return "", fmt.Errorf("post cannot be nil")
	}

	key := domain.PostKey{Locale: post.Language, Slug: post.Slug}
	now := s.now()

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, key)
		switch {
		case err == nil && cached.Fresh(now, s.ttl):
			return cached.HTML, nil
		case err != nil && !errors.Is(err, domain.ErrCacheMiss):
			log.Warn().Err(err).Str("locale", string(key.Locale)).Str("slug", key.Slug).Msg("Render cache lookup failed")
		}
	}

	return s.renderAndStore(ctx, key, post, now)
}

// renderAndStore renders post unconditionally and replaces whatever the cache holds for key.
func (s *RenderService) renderAndStore(ctx context.Context, key domain.PostKey, post *domain.Post, now time.Time) (string, error) {
	html, err := s.renderer.Render([]byte(post.Content))
	if err != nil {
		return "", fmt.Errorf("failed to render %s/%s: %w", key.Locale, key.Slug, err)
	}

	if s.cache != nil {
		if err := s.cache.Put(ctx, &domain.RenderedPost{Key: key, HTML: html, RenderedAt: now}); err != nil {
			log.Warn().Err(err).Str("locale", string(key.Locale)).Str("slug", key.Slug).Msg("Failed to store rendered post")
		}
	}

	return html, nil
}

// HighlightCSS writes the stylesheet matching the highlighted code blocks in rendered posts.
func (s *RenderService) HighlightCSS(w io.Writer) error {
	return s.renderer.HighlightCSS(w)
}

// Warm renders every visible post with the current renderer and stores the result, replacing
// cached entries even when they are still fresh. It returns the number of posts rendered.
func (s *RenderService) Warm(ctx context.Context, posts PostCatalog) (int, error) {
	keys, err := posts.Slugs(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to enumerate posts: %w", err)
	}

	warmed := 0
	for _, key := range keys {
		if err := ctx.Err(); err != nil {
			return warmed, err
		}

		post, ok := posts.GetPostBySlug(ctx, key.Slug, key.Locale)
		if !ok {
			continue
		}

		if _, err := s.renderAndStore(ctx, key, post, s.now()); err != nil {
			log.Warn().Err(err).Str("locale", string(key.Locale)).Str("slug", key.Slug).Msg("Failed to warm post")
			continue
		}
		warmed++
	}

	return warmed, nil
}
