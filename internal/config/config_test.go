package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

var configKeys = []string{
	"PORT", "CONTENT_SOURCE", "CONTENT_DIR", "GITHUB_OWNER", "GITHUB_REPO", "GITHUB_REF",
	"GITHUB_CONTENT_ROOT", "GITHUB_TOKEN", "GITHUB_CACHE_TTL", "WEBHOOK_SECRET", "SQLITE_DB_PATH", "RENDER_CACHE_TTL",
	"DEFAULT_AUTHOR", "SITE_URL", "HIGHLIGHT_STYLE", "LOG_LEVEL", "LOG_FORMAT",
}

// clearEnv blanks every config key for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv() error = %v", err)
	}

	if cfg.Port != 8080 || cfg.Addr() != ":8080" {
		t.Errorf("Port = %d, Addr = %s", cfg.Port, cfg.Addr())
	}
	if cfg.ContentSource != SourceFS {
		t.Errorf("ContentSource = %s, want %s", cfg.ContentSource, SourceFS)
	}
	if cfg.ContentDir != "content/blog" || cfg.GithubContentRoot != "content/blog" {
		t.Errorf("ContentDir = %s, GithubContentRoot = %s", cfg.ContentDir, cfg.GithubContentRoot)
	}
	if cfg.SQLiteDBPath != "./portfolio.db" {
		t.Errorf("SQLiteDBPath = %s", cfg.SQLiteDBPath)
	}
	if cfg.RenderCacheTTL != time.Hour {
		t.Errorf("RenderCacheTTL = %v, want 1h", cfg.RenderCacheTTL)
	}
	if cfg.GithubCacheTTL != 5*time.Minute {
		t.Errorf("GithubCacheTTL = %v, want 5m", cfg.GithubCacheTTL)
	}
	if cfg.HighlightStyle != "github-dark" {
		t.Errorf("HighlightStyle = %s", cfg.HighlightStyle)
	}
	if cfg.LogLevel != zerolog.InfoLevel || cfg.LogFormat != FormatJSON {
		t.Errorf("LogLevel = %v, LogFormat = %s", cfg.LogLevel, cfg.LogFormat)
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("CONTENT_SOURCE", "GitHub")
	t.Setenv("GITHUB_OWNER", "robson")
	t.Setenv("GITHUB_REPO", "portfolio")
	t.Setenv("GITHUB_REF", "main")
	t.Setenv("RENDER_CACHE_TTL", "15m")
	t.Setenv("GITHUB_CACHE_TTL", "30s")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("LOG_FORMAT", "console")
	t.Setenv("DEFAULT_AUTHOR", " Someone Else ")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv() error = %v", err)
	}

	if cfg.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Port)
	}
	if cfg.ContentSource != SourceGithub || cfg.GithubOwner != "robson" || cfg.GithubRepo != "portfolio" || cfg.GithubRef != "main" {
		t.Errorf("github config = %+v", cfg)
	}
	if cfg.RenderCacheTTL != 15*time.Minute {
		t.Errorf("RenderCacheTTL = %v, want 15m", cfg.RenderCacheTTL)
	}
	if cfg.GithubCacheTTL != 30*time.Second {
		t.Errorf("GithubCacheTTL = %v, want 30s", cfg.GithubCacheTTL)
	}
	if cfg.LogLevel != zerolog.DebugLevel || cfg.LogFormat != FormatConsole {
		t.Errorf("LogLevel = %v, LogFormat = %s", cfg.LogLevel, cfg.LogFormat)
	}
	if cfg.DefaultAuthor != "Someone Else" {
		t.Errorf("DefaultAuthor = %q", cfg.DefaultAuthor)
	}
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantMsg string
	}{
		{name: "bad port", env: map[string]string{"PORT": "eighty"}, wantMsg: "PORT"},
		{name: "port out of range", env: map[string]string{"PORT": "70000"}, wantMsg: "PORT"},
		{name: "bad ttl", env: map[string]string{"RENDER_CACHE_TTL": "soon"}, wantMsg: "RENDER_CACHE_TTL"},
		{name: "negative ttl", env: map[string]string{"RENDER_CACHE_TTL": "-1m"}, wantMsg: "RENDER_CACHE_TTL"},
		{name: "zero github ttl", env: map[string]string{"GITHUB_CACHE_TTL": "0s"}, wantMsg: "GITHUB_CACHE_TTL"},
		{name: "bad level", env: map[string]string{"LOG_LEVEL": "loud"}, wantMsg: "LOG_LEVEL"},
		{name: "bad format", env: map[string]string{"LOG_FORMAT": "xml"}, wantMsg: "LOG_FORMAT"},
		{name: "bad source", env: map[string]string{"CONTENT_SOURCE": "s3"}, wantMsg: "CONTENT_SOURCE"},
		{name: "github without repo", env: map[string]string{"CONTENT_SOURCE": "github", "GITHUB_OWNER": "robson"}, wantMsg: "GITHUB_REPO"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := FromEnv()
			if err == nil {
				t.Fatal("FromEnv() should return an error")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error = %v, want mention of %s", err, tt.wantMsg)
			}
		})
	}
}

func TestLoad_EnvFile(t *testing.T) {
	clearEnv(t)
	// godotenv never overrides variables that are already set, so unset the ones the file provides.
	os.Unsetenv("PORT")
	os.Unsetenv("SITE_URL")

	envFile := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(envFile, []byte("PORT=3000\nSITE_URL=https://robsonalves.online\n"), 0644); err != nil {
		t.Fatalf("failed to write env file: %v", err)
	}
	t.Cleanup(func() {
		os.Unsetenv("PORT")
		os.Unsetenv("SITE_URL")
	})

	cfg, err := Load(envFile)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Port != 3000 || cfg.SiteURL != "https://robsonalves.online" {
		t.Errorf("Port = %d, SiteURL = %s", cfg.Port, cfg.SiteURL)
	}
}

func TestLoad_MissingEnvFile(t *testing.T) {
	clearEnv(t)

	if _, err := Load(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Errorf("Load() with a missing env file error = %v", err)
	}
}
