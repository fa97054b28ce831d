package domain

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned when no rendered page is stored for a key.
var ErrCacheMiss = errors.New("rendered post not cached")

// RenderedPost is a post body already converted to HTML.
type RenderedPost struct {
	Key        PostKey
	HTML       string
	RenderedAt time.Time
}

// Fresh reports whether the render is younger than maxAge at now.
func (r *RenderedPost) Fresh(now time.Time, maxAge time.Duration) bool {
	return now.Sub(r.RenderedAt) < maxAge
}

// RenderCache stores rendered post HTML between requests. It sits outside the post repository,
// which never caches anything itself.
type RenderCache interface {
	Get(ctx context.Context, key PostKey) (*RenderedPost, error)
	Put(ctx context.Context, p *RenderedPost) error
	Purge(ctx context.Context, keys []PostKey) error
	PurgeAll(ctx context.Context) error
}
