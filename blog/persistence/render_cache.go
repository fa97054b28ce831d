package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dfryer1193/portfolio/blog/domain"
	"github.com/dfryer1193/portfolio/shared/db"
)

var _ domain.RenderCache = (*SQLiteRenderCache)(nil)

// SQLiteRenderCache implements domain.RenderCache using SQL database (SQLite)
type SQLiteRenderCache struct {
	db *sql.DB
}

// NewRenderCache creates a new SQLiteRenderCache from a standard sql.DB
func NewRenderCache(db *sql.DB) *SQLiteRenderCache {
	return &SQLiteRenderCache{
		db: db,
	}
}

const getRenderedPostQuery = `
	SELECT html, rendered_at
	FROM rendered_posts
	WHERE locale = ? AND slug = ?
`

// Get retrieves a rendered post. It returns domain.ErrCacheMiss when nothing is stored.
func (c *SQLiteRenderCache) Get(ctx context.Context, key domain.PostKey) (*domain.RenderedPost, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}

	var (
		html       string
		renderedAt int64
	)
	err := db.GetExecutor(ctx, c.db).QueryRowContext(ctx, getRenderedPostQuery, string(key.Locale), key.Slug).Scan(&html, &renderedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get rendered post: %w", err)
	}

	return &domain.RenderedPost{
		Key:        key,
		HTML:       html,
		RenderedAt: time.Unix(0, renderedAt).UTC(),
	}, nil
}

const upsertRenderedPostQuery = `
	INSERT INTO rendered_posts (locale, slug, html, rendered_at)
	VALUES (?, ?, ?, ?)
	ON CONFLICT(locale, slug) DO UPDATE SET
		html = excluded.html,
		rendered_at = excluded.rendered_at
`

// Put stores or replaces a rendered post
func (c *SQLiteRenderCache) Put(ctx context.Context, p *domain.RenderedPost) error {
	if p == nil {
		return fmt.Errorf("rendered post cannot be nil")
	}
	if err := validateKey(p.Key); err != nil {
		return err
	}

	renderedAt := p.RenderedAt
	if renderedAt.IsZero() {
		renderedAt = time.Now()
	}

	_, err := db.GetExecutor(ctx, c.db).ExecContext(ctx, upsertRenderedPostQuery,
		string(p.Key.Locale),
		p.Key.Slug,
		p.HTML,
		renderedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("failed to store rendered post: %w", err)
	}

	return nil
}

const deleteRenderedPostQuery = `DELETE FROM rendered_posts WHERE locale = ? AND slug = ?`

// Purge removes the given keys within a single transaction
func (c *SQLiteRenderCache) Purge(ctx context.Context, keys []domain.PostKey) error {
	if len(keys) == 0 {
		return nil
	}

	return db.RunInTransaction(ctx, c.db, func(txCtx context.Context) error {
		executor := db.GetExecutor(txCtx, c.db)
		for _, key := range keys {
			if err := validateKey(key); err != nil {
				return err
			}
			if _, err := executor.ExecContext(txCtx, deleteRenderedPostQuery, string(key.Locale), key.Slug); err != nil {
				return fmt.Errorf("failed to purge %s/%s: %w", key.Locale, key.Slug, err)
			}
		}
		return nil
	})
}

// PurgeAll empties the cache
func (c *SQLiteRenderCache) PurgeAll(ctx context.Context) error {
	if _, err := db.GetExecutor(ctx, c.db).ExecContext(ctx, `DELETE FROM rendered_posts`); err != nil {
		return fmt.Errorf("failed to purge render cache: %w", err)
	}
	return nil
}

func validateKey(key domain.PostKey) error {
	if _, ok := domain.ParseLocale(string(key.Locale)); !ok {
		return fmt.Errorf("unsupported locale %q", key.Locale)
	}
	if key.Slug == "" {
		return fmt.Errorf("slug cannot be empty")
	}
	return nil
}
