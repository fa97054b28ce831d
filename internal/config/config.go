package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

const (
	SourceFS     = "fs"
	SourceGithub = "github"

	FormatJSON    = "json"
	FormatConsole = "console"
)

type Config struct {
	Port int

	ContentSource string
	ContentDir    string

	GithubOwner       string
	GithubRepo        string
	GithubRef         string
	GithubContentRoot string
	GithubToken       string
	GithubCacheTTL    time.Duration
	WebhookSecret     string

	SQLiteDBPath   string
	RenderCacheTTL time.Duration

	DefaultAuthor  string
	SiteURL        string
	HighlightStyle string

	LogLevel  zerolog.Level
	LogFormat string
}

// Load reads the configuration from the environment, after loading any .env files found.
// A missing .env file is not an error.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}

	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() (*Config, error) {
	var errs []error

	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil || port <= 0 || port > 65535 {
		errs = append(errs, fmt.Errorf("PORT must be a valid port number"))
	}

	ttl, err := time.ParseDuration(getEnv("RENDER_CACHE_TTL", "1h"))
	if err != nil || ttl <= 0 {
		errs = append(errs, fmt.Errorf("RENDER_CACHE_TTL must be a positive duration"))
	}

	githubTTL, err := time.ParseDuration(getEnv("GITHUB_CACHE_TTL", "5m"))
	if err != nil || githubTTL <= 0 {
		errs = append(errs, fmt.Errorf("GITHUB_CACHE_TTL must be a positive duration"))
	}

	level, err := zerolog.ParseLevel(strings.ToLower(getEnv("LOG_LEVEL", "info")))
	if err != nil {
		errs = append(errs, fmt.Errorf("LOG_LEVEL: %w", err))
	}

	cfg := &Config{
		Port:              port,
		ContentSource:     strings.ToLower(getEnv("CONTENT_SOURCE", SourceFS)),
		ContentDir:        getEnv("CONTENT_DIR", "content/blog"),
		GithubOwner:       getEnv("GITHUB_OWNER", ""),
		GithubRepo:        getEnv("GITHUB_REPO", ""),
		GithubRef:         getEnv("GITHUB_REF", ""),
		GithubContentRoot: getEnv("GITHUB_CONTENT_ROOT", "content/blog"),
		GithubToken:       getEnv("GITHUB_TOKEN", ""),
		GithubCacheTTL:    githubTTL,
		WebhookSecret:     getEnv("WEBHOOK_SECRET", ""),
		SQLiteDBPath:      getEnv("SQLITE_DB_PATH", "./portfolio.db"),
		RenderCacheTTL:    ttl,
		DefaultAuthor:     getEnv("DEFAULT_AUTHOR", ""),
		SiteURL:           getEnv("SITE_URL", ""),
		HighlightStyle:    getEnv("HIGHLIGHT_STYLE", "github-dark"),
		LogLevel:          level,
		LogFormat:         strings.ToLower(getEnv("LOG_FORMAT", FormatJSON)),
	}

	switch cfg.ContentSource {
	case SourceFS:
	case SourceGithub:
		if cfg.GithubOwner == "" || cfg.GithubRepo == "" {
			errs = append(errs, fmt.Errorf("GITHUB_OWNER and GITHUB_REPO are required when CONTENT_SOURCE is %s", SourceGithub))
		}
	default:
		errs = append(errs, fmt.Errorf("CONTENT_SOURCE must be %s or %s, got %q", SourceFS, SourceGithub, cfg.ContentSource))
	}

	if cfg.LogFormat != FormatJSON && cfg.LogFormat != FormatConsole {
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be %s or %s, got %q", FormatJSON, FormatConsole, cfg.LogFormat))
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}

	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func getEnv(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}
