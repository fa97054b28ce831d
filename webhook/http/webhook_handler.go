package http

import (
	"net/http"
	"path"
	"regexp"
	"strings"

	"github.com/dfryer1193/portfolio/blog/domain"
	"github.com/go-chi/chi/v5"
	"github.com/google/go-github/v75/github"
	"github.com/rs/zerolog/log"
)

const defaultContentRoot = "content/blog"

type WebhookHandler struct {
	webhookSecret []byte
	cache         domain.RenderCache
	repoFullName  string
	branch        string
	postPattern   *regexp.Regexp
	invalidate    func()
}

type Option func(*WebhookHandler)

// WithRepository ignores pushes to any repository other than fullName ("owner/repo").
func WithRepository(fullName string) Option {
	return func(h *WebhookHandler) {
		h.repoFullName = fullName
	}
}

// WithBranch ignores pushes to any branch other than branch.
func WithBranch(branch string) Option {
	return func(h *WebhookHandler) {
		h.branch = branch
	}
}

// WithContentRoot sets the repository directory holding the locale partitions.
func WithContentRoot(root string) Option {
	return func(h *WebhookHandler) {
		if root = strings.Trim(root, "/"); root != "" {
			h.postPattern = postPathPattern(root)
		}
	}
}

// WithSourceInvalidation registers fn to drop cached post sources before rendered posts are purged.
func WithSourceInvalidation(fn func()) Option {
	return func(h *WebhookHandler) {
		h.invalidate = fn
	}
}

func NewWebhookHandler(secret string, cache domain.RenderCache, opts ...Option) *WebhookHandler {
	if secret == "" {
		panic("WEBHOOK_SECRET is not set")
	}

	h := &WebhookHandler{
		webhookSecret: []byte(secret),
		cache:         cache,
		postPattern:   postPathPattern(defaultContentRoot),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func postPathPattern(root string) *regexp.Regexp {
	locales := make([]string, 0, len(domain.SupportedLocales))
	for _, l := range domain.SupportedLocales {
		locales = append(locales, regexp.QuoteMeta(string(l)))
	}
	return regexp.MustCompile(`^` + regexp.QuoteMeta(root) + `/(` + strings.Join(locales, "|") + `)/([^/]+)\.md$`)
}

func (h *WebhookHandler) RegisterRoutes(r chi.Router) {
	r.Post("/webhook/git", h.HandleGitWebhook)
}

func (h *WebhookHandler) HandleGitWebhook(w http.ResponseWriter, r *http.Request) {
	payload, err := github.ValidatePayload(r, h.webhookSecret)
	if err != nil {
		http.Error(w, "Invalid payload", http.StatusBadRequest)
		return
	}

	event, err := github.ParseWebHook(github.WebHookType(r), payload)
	if err != nil {
		http.Error(w, "Invalid event", http.StatusBadRequest)
		return
	}

	switch evt := event.(type) {
	case *github.PushEvent:
		err = h.handlePushEvent(r, evt)
	}
	if err != nil {
		http.Error(w, "Error handling event", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *WebhookHandler) handlePushEvent(r *http.Request, evt *github.PushEvent) error {
	if h.repoFullName != "" && evt.GetRepo().GetFullName() != h.repoFullName {
		log.Debug().Str("repo", evt.GetRepo().GetFullName()).Msg("Ignoring push to untracked repository")
		return nil
	}
	if h.branch != "" && evt.GetRef() != "refs/heads/"+h.branch {
		log.Debug().Str("ref", evt.GetRef()).Msg("Ignoring push to untracked branch")
		return nil
	}

	keys := h.affectedPosts(evt)
	if len(keys) == 0 {
		return nil
	}

	if h.invalidate != nil {
		h.invalidate()
	}

	if err := h.cache.Purge(r.Context(), keys); err != nil {
		log.Error().Err(err).Int("posts", len(keys)).Msg("Failed to purge render cache")
		return err
	}

	log.Info().Int("posts", len(keys)).Str("after", evt.GetAfter()).Msg("Purged rendered posts")
	return nil
}

// affectedPosts collects every post touched by the push, without duplicates.
func (h *WebhookHandler) affectedPosts(evt *github.PushEvent) []domain.PostKey {
	seen := make(map[domain.PostKey]bool)
	var keys []domain.PostKey

	for _, commit := range evt.Commits {
		var files []string
		files = append(files, commit.Added...)
		files = append(files, commit.Modified...)
		files = append(files, commit.Removed...)

		for _, file := range files {
			m := h.postPattern.FindStringSubmatch(path.Clean(file))
			if m == nil {
				continue
			}

			key := domain.PostKey{Locale: domain.Locale(m[1]), Slug: m[2]}
			if seen[key] {
				continue
			}
			seen[key] = true
			keys = append(keys, key)
		}
	}

	return keys
}
