package blobstore

import (
	"bytes"
	"context"
	"io"
	"sync"
)

// MemStore is an in-memory Store, mainly for tests.
// It is safe for concurrent use.
type MemStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemStore creates an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{blobs: make(map[string][]byte)}
}

// Put stores a blob under the given name, overwriting any previous content.
func (s *MemStore) Put(name string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[name] = bytes.Clone(data)
}

// Open opens a blob for reading.
func (s *MemStore) Open(ctx context.Context, name string) (Blob, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	data, ok := s.blobs[name]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}

	return &memBlob{Reader: bytes.NewReader(data), size: int64(len(data))}, nil
}

type memBlob struct {
	*bytes.Reader
	size int64
}

func (b *memBlob) Close() error { return nil }

func (b *memBlob) Size() int64 { return b.size }

var _ io.ReadCloser = (*memBlob)(nil)
