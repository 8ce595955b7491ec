// Package blobstore provides storage abstraction for snapshot inputs.
//
// Store is the interface for opening immutable snapshot blobs for streaming
// reads. Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - LocalStore: local filesystem
//   - MemStore: in-memory, for tests and embedding
//   - s3.Store: Amazon S3
//   - minio.Store: MinIO and other S3-compatible systems
//   - CachingStore: wraps a remote store with a local blob cache
//
// # Custom Implementations
//
// Implement the Store interface to support custom backends:
//
//	type Store interface {
//	    Open(ctx, name) (Blob, error) // open for streaming read
//	}
//
// Remote stores that can download a whole blob more efficiently than a plain
// sequential read may additionally implement Downloader; CachingStore uses it
// when present.
package blobstore
