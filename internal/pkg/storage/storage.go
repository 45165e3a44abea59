package storage

import (
	"context"
	"io"
)

// Storage defines the interface for blob storage operations.
type Storage interface {
	// Save replaces the blob at path with content.
	// path is relative to the storage root.
	Save(ctx context.Context, path string, content io.Reader) error

	// Get opens the blob at path for reading.
	// A missing blob yields an error matching os.ErrNotExist.
	Get(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes the blob at path. Deleting a missing blob is not an error.
	Delete(ctx context.Context, path string) error
}
