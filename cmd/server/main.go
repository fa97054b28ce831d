package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dfryer1193/portfolio/blog/application"
	"github.com/dfryer1193/portfolio/blog/domain"
	"github.com/dfryer1193/portfolio/blog/persistence"
	"github.com/dfryer1193/portfolio/internal/config"
	"github.com/dfryer1193/portfolio/internal/middleware"
	"github.com/dfryer1193/portfolio/internal/rest"
	"github.com/dfryer1193/portfolio/shared/db/sqlite"
	gh "github.com/dfryer1193/portfolio/shared/github"
	"github.com/dfryer1193/portfolio/shared/i18n"
	webhook "github.com/dfryer1193/portfolio/webhook/http"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/go-github/v75/github"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

const (
	shutdownTimeout = 5 * time.Second
	warmTimeout     = 2 * time.Minute
)

func main() {
	warm := flag.Bool("warm", false, "render every visible post into the cache before serving")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	setupLogging(cfg)

	database := sqlite.NewSQLiteDB(sqlite.NewSQLiteConfig(cfg.SQLiteDBPath))
	if err := database.Connect(); err != nil {
		log.Fatal().Err(err).Str("path", cfg.SQLiteDBPath).Msg("Failed to connect to database")
	}
	defer func() {
		if err := database.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close database")
		}
	}()

	store, ghStore, ref := newContentStore(context.Background(), cfg)

	posts := application.NewPostService(store, application.WithDefaultAuthor(cfg.DefaultAuthor))
	renderer := application.NewMarkdownRenderer(
		application.WithHighlightStyle(cfg.HighlightStyle),
		application.WithLinkBase(cfg.SiteURL),
	)
	cache := persistence.NewRenderCache(database.DB())
	pages := application.NewRenderService(renderer, cache, cfg.RenderCacheTTL, nil)

	if *warm {
		warmCache(cache, pages, posts)
	}

	engine := gin.New()
	engine.Use(middleware.LoggingMiddleware())
	engine.Use(gin.CustomRecovery(middleware.HandlePanics()))
	rest.NewApi(engine, rest.NewHandler(posts, pages, i18n.DefaultCatalog()))

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	if cfg.WebhookSecret != "" {
		opts := []webhook.Option{webhook.WithContentRoot(cfg.GithubContentRoot)}
		if ghStore != nil {
			opts = append(opts,
				webhook.WithRepository(ghStore.GetRepoFullName()),
				webhook.WithBranch(ref),
				webhook.WithSourceInvalidation(ghStore.Invalidate),
			)
		}
		webhook.NewWebhookHandler(cfg.WebhookSecret, cache, opts...).RegisterRoutes(r)
	} else {
		log.Warn().Msg("WEBHOOK_SECRET is not set, cache purge webhook disabled")
	}

	r.Mount("/", engine)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("content_source", cfg.ContentSource).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to shutdown server")
	}

	log.Info().Msg("Server stopped")
}

func setupLogging(cfg *config.Config) {
	zerolog.SetGlobalLevel(cfg.LogLevel)
	if cfg.LogFormat == config.FormatConsole {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
	if cfg.LogLevel > zerolog.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}
}

// newContentStore returns the configured store. For the GitHub source it also returns the store
// itself and the ref it reads from, so the webhook can follow the same repository and branch.
func newContentStore(ctx context.Context, cfg *config.Config) (domain.ContentStore, *gh.GithubContentStore, string) {
	if cfg.ContentSource != config.SourceGithub {
		log.Info().Str("dir", cfg.ContentDir).Msg("Reading posts from the filesystem")
		return persistence.NewFileContentStore(cfg.ContentDir), nil, ""
	}

	var httpClient *http.Client
	if cfg.GithubToken != "" {
		httpClient = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.GithubToken}))
	}
	client := github.NewClient(httpClient)

	ref := cfg.GithubRef
	if ref == "" {
		meta := gh.NewGithubContentStore(client, cfg.GithubOwner, cfg.GithubRepo)
		branch, err := meta.GetDefaultBranchName(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to get default branch name")
		}
		ref = branch
	}

	store := gh.NewGithubContentStore(client, cfg.GithubOwner, cfg.GithubRepo,
		gh.WithRef(ref),
		gh.WithContentRoot(cfg.GithubContentRoot),
		gh.WithCacheTTL(cfg.GithubCacheTTL),
	)
	log.Info().Str("repo", store.GetRepoFullName()).Str("ref", ref).Msg("Reading posts from GitHub")

	return store, store, ref
}

// warmCache drops everything rendered by a previous run, which may have used another renderer
// configuration or list posts that no longer exist, then renders every visible post.
func warmCache(cache domain.RenderCache, pages *application.RenderService, posts application.PostCatalog) {
	ctx, cancel := context.WithTimeout(context.Background(), warmTimeout)
	defer cancel()

	if err := cache.PurgeAll(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to purge render cache before warm-up")
	}

	start := time.Now()
	warmed, err := pages.Warm(ctx, posts)
	if err != nil {
		log.Error().Err(err).Int("posts", warmed).Msg("Cache warm-up stopped early")
		return
	}
	log.Info().Int("posts", warmed).Dur("took", time.Since(start)).Msg("Render cache warmed")
}
