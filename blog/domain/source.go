package domain

import (
	"context"
	"errors"
)

var (
	// ErrStoreUnavailable means the content root itself does not exist.
	ErrStoreUnavailable = errors.New("content store unavailable")
	// ErrPartitionNotFound means the locale directory does not exist.
	ErrPartitionNotFound = errors.New("content partition not found")
	// ErrEntryNotFound means the requested file does not exist in its partition.
	ErrEntryNotFound = errors.New("content entry not found")
)

// ContentStore is the read-only capability the post repository needs from wherever the markdown lives.
// Partitions are locale codes; entries are file names within a partition.
type ContentStore interface {
	ListEntries(ctx context.Context, partition string) ([]string, error)
	ReadEntry(ctx context.Context, partition string, name string) ([]byte, error)
}
