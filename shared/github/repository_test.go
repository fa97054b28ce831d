package github

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/dfryer1193/portfolio/blog/domain"
	"github.com/google/go-github/v75/github"
)

type contentEntry struct {
	Type     string `json:"type"`
	Name     string `json:"name"`
	Path     string `json:"path"`
	Encoding string `json:"encoding,omitempty"`
	Content  string `json:"content,omitempty"`
}

// newTestStore serves a fake contents API where files maps repository paths to their contents.
func newTestStore(t *testing.T, files map[string]string, opts ...Option) (*GithubContentStore, *[]string) {
	t.Helper()

	var refs []string
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/owner/repo/contents/", func(w http.ResponseWriter, r *http.Request) {
		refs = append(refs, r.URL.Query().Get("ref"))
		p := strings.TrimPrefix(r.URL.Path, "/repos/owner/repo/contents/")

		if content, ok := files[p]; ok {
			json.NewEncoder(w).Encode(contentEntry{
				Type:     "file",
				Name:     path.Base(p),
				Path:     p,
				Encoding: "base64",
				Content:  base64.StdEncoding.EncodeToString([]byte(content)),
			})
			return
		}

		var listing []contentEntry
		for fp := range files {
			if rest, ok := strings.CutPrefix(fp, p+"/"); ok {
				entry := contentEntry{Type: "file", Name: rest, Path: fp}
				if i := strings.Index(rest, "/"); i >= 0 {
					entry = contentEntry{Type: "dir", Name: rest[:i], Path: p + "/" + rest[:i]}
				}
				listing = append(listing, entry)
			}
		}
		if listing == nil {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"message": "Not Found"})
			return
		}
		json.NewEncoder(w).Encode(listing)
	})
	mux.HandleFunc("/repos/owner/repo", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"full_name": "owner/repo", "default_branch": "main"})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client := github.NewClient(nil)
	baseURL, _ := url.Parse(server.URL + "/")
	client.BaseURL = baseURL

	return NewGithubContentStore(client, "owner", "repo", opts...), &refs
}

func TestGithubContentStore_ListEntries(t *testing.T) {
	store, _ := newTestStore(t, map[string]string{
		"content/blog/en/b.md":        "b",
		"content/blog/en/a.md":        "a",
		"content/blog/en/drafts/c.md": "c",
		"content/blog/pt/ola.md":      "olá",
	})

	names, err := store.ListEntries(context.Background(), "en")
	if err != nil {
		t.Fatalf("ListEntries() error = %v", err)
	}

	// Subdirectories are not entries
	want := []string{"a.md", "b.md"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("ListEntries() = %v, want %v", names, want)
	}
}

func TestGithubContentStore_ListEntriesMissing(t *testing.T) {
	tests := []struct {
		name    string
		files   map[string]string
		part    string
		wantErr error
	}{
		{name: "missing partition", files: map[string]string{"content/blog/en/a.md": "a"}, part: "pt", wantErr: domain.ErrPartitionNotFound},
		{name: "missing root", files: map[string]string{"docs/readme.md": "x"}, part: "en", wantErr: domain.ErrStoreUnavailable},
		{name: "unsupported locale", files: map[string]string{}, part: "es", wantErr: domain.ErrPartitionNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, _ := newTestStore(t, tt.files)
			_, err := store.ListEntries(context.Background(), tt.part)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ListEntries() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestGithubContentStore_ReadEntry(t *testing.T) {
	store, refs := newTestStore(t, map[string]string{
		"posts/pt/ola.md": "---\ntitle: Olá\n---\nCorpo",
	}, WithContentRoot("/posts/"), WithRef("release"))

	data, err := store.ReadEntry(context.Background(), "pt", "ola.md")
	if err != nil {
		t.Fatalf("ReadEntry() error = %v", err)
	}
	if string(data) != "---\ntitle: Olá\n---\nCorpo" {
		t.Errorf("ReadEntry() = %q", data)
	}

	if len(*refs) != 1 || (*refs)[0] != "release" {
		t.Errorf("requests used refs %v, want [release]", *refs)
	}

	for _, name := range []string{"missing.md", "../ola.md", ".."} {
		t.Run(name, func(t *testing.T) {
			if _, err := store.ReadEntry(context.Background(), "pt", name); !errors.Is(err, domain.ErrEntryNotFound) {
				t.Errorf("ReadEntry(%q) error = %v, want ErrEntryNotFound", name, err)
			}
		})
	}
}

func TestGithubContentStore_ReadEntryDirectory(t *testing.T) {
	store, _ := newTestStore(t, map[string]string{"content/blog/en/nested/a.md": "a"})

	if _, err := store.ReadEntry(context.Background(), "en", "nested"); !errors.Is(err, domain.ErrEntryNotFound) {
		t.Errorf("ReadEntry() of a directory error = %v, want ErrEntryNotFound", err)
	}
}

func TestGithubContentStore_GetDefaultBranchName(t *testing.T) {
	store, _ := newTestStore(t, nil)

	branch, err := store.GetDefaultBranchName(context.Background())
	if err != nil {
		t.Fatalf("GetDefaultBranchName() error = %v", err)
	}
	if branch != "main" {
		t.Errorf("GetDefaultBranchName() = %s, want main", branch)
	}
	if store.GetRepoFullName() != "owner/repo" {
		t.Errorf("GetRepoFullName() = %s", store.GetRepoFullName())
	}
}

func TestHandleGithubError(t *testing.T) {
	if handleGithubError("op", nil) != nil {
		t.Error("nil error should stay nil")
	}

	base := errors.New("boom")
	if err := handleGithubError("op", base); !errors.Is(err, base) {
		t.Errorf("plain errors should be wrapped, got %v", err)
	}

	errResp := &github.ErrorResponse{
		Response: &http.Response{StatusCode: http.StatusForbidden},
		Message:  "rate limited",
	}
	if got := handleGithubError("listing", errResp).Error(); got != "github: listing failed with status 403: rate limited" {
		t.Errorf("handleGithubError() = %s", got)
	}
}

func TestGithubContentStore_CachesReads(t *testing.T) {
	store, requests := newTestStore(t, map[string]string{
		"content/blog/en/a.md": "# A",
		"content/blog/en/b.md": "# B",
	}, WithRef("main"), WithCacheTTL(time.Minute))

	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	store.cache.now = func() time.Time { return now }

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if _, err := store.ListEntries(ctx, "en"); err != nil {
			t.Fatalf("ListEntries() error = %v", err)
		}
		if _, err := store.ReadEntry(ctx, "en", "a.md"); err != nil {
			t.Fatalf("ReadEntry() error = %v", err)
		}
	}
	if len(*requests) != 2 {
		t.Errorf("made %d API requests, want 2", len(*requests))
	}

	now = now.Add(time.Minute)
	if _, err := store.ListEntries(ctx, "en"); err != nil {
		t.Fatalf("ListEntries() error = %v", err)
	}
	if len(*requests) != 3 {
		t.Errorf("expired listing should be refetched, made %d requests", len(*requests))
	}

	store.Invalidate()
	data, err := store.ReadEntry(ctx, "en", "a.md")
	if err != nil {
		t.Fatalf("ReadEntry() error = %v", err)
	}
	if string(data) != "# A" {
		t.Errorf("ReadEntry() = %q", data)
	}
	if len(*requests) != 4 {
		t.Errorf("invalidated file should be refetched, made %d requests", len(*requests))
	}
}

func TestGithubContentStore_CacheReturnsCopies(t *testing.T) {
	store, _ := newTestStore(t, map[string]string{"content/blog/en/a.md": "# A"}, WithCacheTTL(time.Minute))
	ctx := context.Background()

	data, err := store.ReadEntry(ctx, "en", "a.md")
	if err != nil {
		t.Fatalf("ReadEntry() error = %v", err)
	}
	data[0] = 'X'

	again, err := store.ReadEntry(ctx, "en", "a.md")
	if err != nil {
		t.Fatalf("ReadEntry() error = %v", err)
	}
	if string(again) != "# A" {
		t.Errorf("cached content was mutated through a returned slice: %q", again)
	}
}

func TestGithubContentStore_NoCacheByDefault(t *testing.T) {
	store, requests := newTestStore(t, map[string]string{"content/blog/en/a.md": "# A"})

	for i := 0; i < 2; i++ {
		if _, err := store.ReadEntry(context.Background(), "en", "a.md"); err != nil {
			t.Fatalf("ReadEntry() error = %v", err)
		}
	}
	if len(*requests) != 2 {
		t.Errorf("made %d API requests, want 2", len(*requests))
	}
	store.Invalidate()
}
