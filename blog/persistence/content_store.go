package persistence

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dfryer1193/portfolio/blog/domain"
)

var _ domain.ContentStore = (*FileContentStore)(nil)

const DefaultContentDir = "content/blog"

// FileContentStore implements domain.ContentStore over a directory tree: <root>/<locale>/<name>.md
type FileContentStore struct {
	root string
}

// NewFileContentStore creates a store rooted at dir. The directory does not need to exist yet.
func NewFileContentStore(dir string) *FileContentStore {
	if dir == "" {
		dir = DefaultContentDir
	}
	return &FileContentStore{
		root: dir,
	}
}

// ListEntries returns the names of the regular files in a partition, sorted by name.
func (s *FileContentStore) ListEntries(ctx context.Context, partition string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dir, err := s.partitionDir(partition)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		if _, rootErr := os.Stat(s.root); errors.Is(rootErr, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", s.root, domain.ErrStoreUnavailable)
		}
		return nil, fmt.Errorf("%s: %w", dir, domain.ErrPartitionNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read partition %s: %w", partition, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	return names, nil
}

// ReadEntry returns the full contents of one file in a partition.
func (s *FileContentStore) ReadEntry(ctx context.Context, partition string, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dir, err := s.partitionDir(partition)
	if err != nil {
		return nil, err
	}

	if name == "" || name == "." || name == ".." || name != filepath.Base(name) || strings.ContainsAny(name, `/\`) {
		return nil, fmt.Errorf("invalid entry name %q: %w", name, domain.ErrEntryNotFound)
	}

	data, err := os.ReadFile(filepath.Join(dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s/%s: %w", partition, name, domain.ErrEntryNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s/%s: %w", partition, name, err)
	}

	return data, nil
}

// WriteEntry creates a new file in a partition, creating the partition if needed.
// It refuses to overwrite an existing entry.
func (s *FileContentStore) WriteEntry(partition string, name string, contents []byte) (string, error) {
	dir, err := s.partitionDir(partition)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create partition directory: %w", err)
	}

	fullPath := filepath.Join(dir, name)
	f, err := os.OpenFile(fullPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return "", fmt.Errorf("failed to create post file: %w", err)
	}

	// A partial file would block every retry, since existing entries are never overwritten
	if err := writeContents(f, contents); err != nil {
		f.Close()
		os.Remove(fullPath)
		return "", fmt.Errorf("failed to write post file: %w", err)
	}

	if err := f.Close(); err != nil {
		os.Remove(fullPath)
		return "", fmt.Errorf("failed to close post file: %w", err)
	}

	return fullPath, nil
}

var writeContents = func(f *os.File, contents []byte) error {
	_, err := f.Write(contents)
	return err
}

func (s *FileContentStore) partitionDir(partition string) (string, error) {
	if _, ok := domain.ParseLocale(partition); !ok {
		return "", fmt.Errorf("unsupported locale %q: %w", partition, domain.ErrPartitionNotFound)
	}
	return filepath.Join(s.root, partition), nil
}
