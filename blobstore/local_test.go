package blobstore

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "snap.csv"), []byte("hello"), 0o600))

	store := NewLocalStore(dir)

	blob, err := store.Open(context.Background(), "snap.csv")
	require.NoError(t, err)
	defer func() { _ = blob.Close() }()

	assert.Equal(t, int64(5), blob.Size())

	data, err := io.ReadAll(blob)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestLocalStore_AbsolutePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snap.csv")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))

	store := NewLocalStore("")

	blob, err := store.Open(context.Background(), path)
	require.NoError(t, err)
	require.NoError(t, blob.Close())
}

func TestLocalStore_NotFound(t *testing.T) {
	store := NewLocalStore(t.TempDir())

	_, err := store.Open(context.Background(), "absent.csv")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemStore(t *testing.T) {
	store := NewMemStore()
	store.Put("snap.csv", []byte("abc"))

	blob, err := store.Open(context.Background(), "snap.csv")
	require.NoError(t, err)

	assert.Equal(t, int64(3), blob.Size())

	data, err := io.ReadAll(blob)
	require.NoError(t, err)
	assert.Equal(t, "abc", string(data))
	require.NoError(t, blob.Close())

	_, err = store.Open(context.Background(), "other.csv")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemStore_PutCopies(t *testing.T) {
	store := NewMemStore()
	data := []byte("abc")
	store.Put("snap.csv", data)
	data[0] = 'z'

	blob, err := store.Open(context.Background(), "snap.csv")
	require.NoError(t, err)

	got, err := io.ReadAll(blob)
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}
