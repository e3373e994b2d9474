package repository

import (
	"context"
	"io"
)

// FileStorage is the blob storage boundary. Objects are addressed by key
// strings; the financial reports feature stores uploaded documents here
// and persists only the resulting URL.
type FileStorage interface {
	// Upload stores the object and returns its public URL.
	Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error)

	// Delete removes the object. Deleting an absent object is not an
	// error.
	Delete(ctx context.Context, key string) error

	// URL returns the public URL of an object key without touching the
	// store.
	URL(key string) string
}
