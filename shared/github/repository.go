package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/dfryer1193/portfolio/blog/domain"
	"github.com/google/go-github/v75/github"
)

var _ domain.ContentStore = (*GithubContentStore)(nil)

// DefaultContentRoot is the directory inside the repository that holds the locale partitions.
const DefaultContentRoot = "content/blog"

// GithubContentStore is an implementation of domain.ContentStore that reads posts through the GitHub contents API.
type GithubContentStore struct {
	client  *github.Client
	owner   string
	gitRepo string
	ref     string
	root    string
	cache   *contentCache
}

type Option func(*GithubContentStore)

// WithRef pins reads to a branch, tag, or commit SHA. The repository's default branch is used otherwise.
func WithRef(ref string) Option {
	return func(g *GithubContentStore) {
		g.ref = ref
	}
}

// WithContentRoot overrides the directory that holds the locale partitions.
func WithContentRoot(root string) Option {
	return func(g *GithubContentStore) {
		if root = strings.Trim(root, "/"); root != "" {
			g.root = root
		}
	}
}

// WithCacheTTL keeps listings and file contents in memory for ttl, so repeated reads of the same
// ref do not spend API rate limit. A non-positive ttl disables the cache.
func WithCacheTTL(ttl time.Duration) Option {
	return func(g *GithubContentStore) {
		if ttl > 0 {
			g.cache = newContentCache(ttl)
		} else {
			g.cache = nil
		}
	}
}

// NewGithubContentStore creates a new GithubContentStore.
func NewGithubContentStore(client *github.Client, owner string, gitRepo string, opts ...Option) *GithubContentStore {
	g := &GithubContentStore{
		client:  client,
		owner:   owner,
		gitRepo: gitRepo,
		root:    DefaultContentRoot,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ListEntries lists the file names in <root>/<partition>, sorted by name.
func (g *GithubContentStore) ListEntries(ctx context.Context, partition string) ([]string, error) {
	if _, ok := domain.ParseLocale(partition); !ok {
		return nil, fmt.Errorf("unsupported locale %q: %w", partition, domain.ErrPartitionNotFound)
	}

	dir := path.Join(g.root, partition)
	op := fmt.Sprintf("listing %s", dir)

	if g.cache != nil {
		if cached, ok := g.cache.get(g.cacheKey(dir)); ok {
			return append([]string(nil), cached.names...), nil
		}
	}

	_, entries, err := g.getContents(ctx, dir)
	if isNotFound(err) {
		if _, _, rootErr := g.getContents(ctx, g.root); isNotFound(rootErr) {
			return nil, fmt.Errorf("github: %s: %w", g.root, domain.ErrStoreUnavailable)
		}
		return nil, fmt.Errorf("github: %s: %w", dir, domain.ErrPartitionNotFound)
	}
	if err != nil {
		return nil, handleGithubError(op, err)
	}
	if entries == nil {
		return nil, fmt.Errorf("github: %s is not a directory: %w", dir, domain.ErrPartitionNotFound)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.GetType() != "file" {
			continue
		}
		names = append(names, e.GetName())
	}
	sort.Strings(names)

	if g.cache != nil {
		g.cache.putNames(g.cacheKey(dir), names)
	}

	return names, nil
}

// ReadEntry fetches the decoded contents of <root>/<partition>/<name>.
func (g *GithubContentStore) ReadEntry(ctx context.Context, partition string, name string) ([]byte, error) {
	if _, ok := domain.ParseLocale(partition); !ok {
		return nil, fmt.Errorf("unsupported locale %q: %w", partition, domain.ErrPartitionNotFound)
	}
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return nil, fmt.Errorf("invalid entry name %q: %w", name, domain.ErrEntryNotFound)
	}

	filePath := path.Join(g.root, partition, name)
	op := fmt.Sprintf("getting file %s", filePath)

	if g.cache != nil {
		if cached, ok := g.cache.get(g.cacheKey(filePath)); ok {
			return append([]byte(nil), cached.data...), nil
		}
	}

	fileContent, _, err := g.getContents(ctx, filePath)
	if isNotFound(err) {
		return nil, fmt.Errorf("github: %s: %w", filePath, domain.ErrEntryNotFound)
	}
	if err != nil {
		return nil, handleGithubError(op, err)
	}

	if fileContent == nil {
		return nil, fmt.Errorf("github: %s is not a file: %w", filePath, domain.ErrEntryNotFound)
	}

	content, err := fileContent.GetContent()
	if err != nil {
		return nil, fmt.Errorf("github: %s failed to decode content: %w", op, err)
	}

	if g.cache != nil {
		g.cache.putData(g.cacheKey(filePath), []byte(content))
	}

	return []byte(content), nil
}

// Invalidate drops every cached listing and file, so the next read fetches from GitHub.
func (g *GithubContentStore) Invalidate() {
	if g.cache != nil {
		g.cache.invalidate()
	}
}

// GetRepoFullName returns the repository's full name (e.g., "owner/repo").
func (g *GithubContentStore) GetRepoFullName() string {
	return fmt.Sprintf("%s/%s", g.owner, g.gitRepo)
}

// GetDefaultBranchName fetches the repository metadata and returns the name of the default branch.
func (g *GithubContentStore) GetDefaultBranchName(ctx context.Context) (string, error) {
	op := fmt.Sprintf("getting repository info for %s/%s", g.owner, g.gitRepo)
	repo, _, err := g.client.Repositories.Get(ctx, g.owner, g.gitRepo)
	if err != nil {
		return "", handleGithubError(op, err)
	}
	return repo.GetDefaultBranch(), nil
}

func (g *GithubContentStore) cacheKey(p string) string {
	return g.ref + ":" + p
}

func (g *GithubContentStore) getContents(ctx context.Context, p string) (*github.RepositoryContent, []*github.RepositoryContent, error) {
	var opts *github.RepositoryContentGetOptions
	if g.ref != "" {
		opts = &github.RepositoryContentGetOptions{Ref: g.ref}
	}

	file, dir, _, err := g.client.Repositories.GetContents(ctx, g.owner, g.gitRepo, p, opts)
	return file, dir, err
}

func isNotFound(err error) bool {
	var errResp *github.ErrorResponse
	return errors.As(err, &errResp) && errResp.Response != nil && errResp.Response.StatusCode == http.StatusNotFound
}

// handleGithubError inspects an error from the go-github client and returns a more informative, structured error.
func handleGithubError(op string, err error) error {
	if err == nil {
		return nil
	}

	var errResp *github.ErrorResponse
	if errors.As(err, &errResp) && errResp.Response != nil {
		return fmt.Errorf("github: %s failed with status %d: %s", op, errResp.Response.StatusCode, errResp.Message)
	}

	return fmt.Errorf("github: %s failed: %w", op, err)
}
