// Package storage holds the blob-store contract and its backends. Keys
// are the derived document file paths, so the store layout mirrors what
// the documents table records.
package storage

import (
	"context"
	"io"
)

// BlobStore is the file-content collaborator. The domain core only
// derives keys; reading and writing bytes happens behind this interface.
type BlobStore interface {
	Upload(ctx context.Context, key string, r io.Reader, size int64) error
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}
