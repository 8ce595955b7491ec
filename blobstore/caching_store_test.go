package blobstore

import (
	"context"
	"io"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingStore wraps a Store and counts Open calls.
type countingStore struct {
	inner Store
	opens atomic.Int64
}

func (s *countingStore) Open(ctx context.Context, name string) (Blob, error) {
	s.opens.Add(1)
	return s.inner.Open(ctx, name)
}

func newCachingFixture(t *testing.T) (*CachingStore, *countingStore) {
	t.Helper()

	mem := NewMemStore()
	mem.Put("snap.csv", []byte("payload"))
	mem.Put("other.csv", []byte("more"))

	counting := &countingStore{inner: mem}

	store, err := NewCachingStore(counting, t.TempDir())
	require.NoError(t, err)
	return store, counting
}

func TestCachingStore_FetchOnce(t *testing.T) {
	store, counting := newCachingFixture(t)
	ctx := context.Background()

	for range 3 {
		blob, err := store.Open(ctx, "snap.csv")
		require.NoError(t, err)

		data, err := io.ReadAll(blob)
		require.NoError(t, err)
		assert.Equal(t, "payload", string(data))
		require.NoError(t, blob.Close())
	}

	assert.Equal(t, int64(1), counting.opens.Load())
}

func TestCachingStore_NotFound(t *testing.T) {
	store, _ := newCachingFixture(t)

	_, err := store.Open(context.Background(), "absent.csv")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCachingStore_Warm(t *testing.T) {
	store, counting := newCachingFixture(t)
	ctx := context.Background()

	require.NoError(t, store.Warm(ctx, "snap.csv", "other.csv"))
	assert.Equal(t, int64(2), counting.opens.Load())

	// Already cached, no refetch.
	require.NoError(t, store.Warm(ctx, "snap.csv"))
	assert.Equal(t, int64(2), counting.opens.Load())

	blob, err := store.Open(ctx, "other.csv")
	require.NoError(t, err)
	data, err := io.ReadAll(blob)
	require.NoError(t, err)
	assert.Equal(t, "more", string(data))
	require.NoError(t, blob.Close())
	assert.Equal(t, int64(2), counting.opens.Load())
}

func TestCachingStore_WarmError(t *testing.T) {
	store, _ := newCachingFixture(t)

	err := store.Warm(context.Background(), "snap.csv", "absent.csv")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCachingStore_Throttled(t *testing.T) {
	mem := NewMemStore()
	mem.Put("snap.csv", []byte("payload"))

	store, err := NewCachingStore(mem, t.TempDir(), func(o *CachingOptions) {
		o.FetchesPerSecond = 1000
	})
	require.NoError(t, err)

	blob, err := store.Open(context.Background(), "snap.csv")
	require.NoError(t, err)
	require.NoError(t, blob.Close())
}

func TestCachingStore_SanitizesNames(t *testing.T) {
	mem := NewMemStore()
	mem.Put("resolved/2024/snap.csv", []byte("payload"))

	store, err := NewCachingStore(mem, t.TempDir())
	require.NoError(t, err)

	blob, err := store.Open(context.Background(), "resolved/2024/snap.csv")
	require.NoError(t, err)

	data, err := io.ReadAll(blob)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
	require.NoError(t, blob.Close())
}
