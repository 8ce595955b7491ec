package blobstore

import (
	"context"
	"io"
	"os"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations should return an error that satisfies
// `errors.Is(err, ErrNotFound)`. The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// Store is an abstraction for reading immutable snapshot blobs.
type Store interface {
	// Open opens a blob for a streaming read from the beginning.
	Open(ctx context.Context, name string) (Blob, error)
}

// Blob is a read-only handle to a snapshot blob.
type Blob interface {
	io.ReadCloser
	// Size returns the size of the blob in bytes, or -1 if unknown.
	Size() int64
}

// Downloader is an optional interface for Stores that can copy a whole blob
// to a local writer more efficiently than Open + io.Copy (e.g. parallel
// ranged downloads).
type Downloader interface {
	Download(ctx context.Context, name string, w io.WriterAt) (int64, error)
}
