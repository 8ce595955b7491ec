package partition

import (
	"bytes"
	"context"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/slicedist/blobstore"
)

func collect(t *testing.T, src Source) []Group {
	t.Helper()
	var got []Group
	for g, err := range src.Groups(context.Background()) {
		require.NoError(t, err)
		got = append(got, g)
	}
	return got
}

func csvStore(name, content string) *blobstore.MemStore {
	store := blobstore.NewMemStore()
	store.Put(name, []byte(content))
	return store
}

func TestCSVSource_Groups(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []Group
	}{
		{
			name:    "SingleGroup",
			content: "entity_id,record_id\n1,a\n1,b\n1,c\n",
			want:    []Group{{Key: "1", Members: []string{"a", "b", "c"}}},
		},
		{
			name:    "MultipleGroups",
			content: "entity_id,record_id\n1,a\n1,b\n2,c\n3,d\n3,e\n",
			want: []Group{
				{Key: "1", Members: []string{"a", "b"}},
				{Key: "2", Members: []string{"c"}},
				{Key: "3", Members: []string{"d", "e"}},
			},
		},
		{
			name:    "ExtraColumnsIgnored",
			content: "entity_id,record_id,score\n1,a,0.9\n1,b,0.8\n",
			want:    []Group{{Key: "1", Members: []string{"a", "b"}}},
		},
		{
			name:    "HeaderOnly",
			content: "entity_id,record_id\n",
			want:    nil,
		},
		{
			name:    "Empty",
			content: "",
			want:    nil,
		},
		{
			// Adjacency is detected by key change only; a key coming back
			// later starts a new group rather than reopening the old one.
			name:    "NonContiguousDuplicateKey",
			content: "entity_id,record_id\n1,a\n2,b\n1,c\n",
			want: []Group{
				{Key: "1", Members: []string{"a"}},
				{Key: "2", Members: []string{"b"}},
				{Key: "1", Members: []string{"c"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := NewCSVSource(csvStore("snap.csv", tt.content), "snap.csv")
			assert.Equal(t, tt.want, collect(t, src))
		})
	}
}

func TestCSVSource_Restartable(t *testing.T) {
	src := NewCSVSource(csvStore("snap.csv", "entity_id,record_id\n1,a\n2,b\n2,c\n"), "snap.csv")

	first := collect(t, src)
	second := collect(t, src)

	require.Len(t, first, 2)
	assert.Equal(t, first, second)
}

func TestCSVSource_EarlyBreak(t *testing.T) {
	src := NewCSVSource(csvStore("snap.csv", "entity_id,record_id\n1,a\n2,b\n3,c\n"), "snap.csv")

	var got []Group
	for g, err := range src.Groups(context.Background()) {
		require.NoError(t, err)
		got = append(got, g)
		if len(got) == 2 {
			break
		}
	}
	require.Len(t, got, 2)

	// A fresh pass still sees everything.
	assert.Len(t, collect(t, src), 3)
}

func TestCSVSource_ShortRow(t *testing.T) {
	src := NewCSVSource(csvStore("snap.csv", "entity_id,record_id\n1,a\nnope\n"), "snap.csv")

	var rowErr *RowError
	for _, err := range src.Groups(context.Background()) {
		if err != nil {
			require.ErrorAs(t, err, &rowErr)
		}
	}
	require.NotNil(t, rowErr)
	assert.Equal(t, 3, rowErr.Line)
	assert.Equal(t, 1, rowErr.Fields)
}

func TestCSVSource_MissingBlob(t *testing.T) {
	src := NewCSVSource(blobstore.NewMemStore(), "absent.csv")

	var sawErr error
	for _, err := range src.Groups(context.Background()) {
		sawErr = err
	}
	require.ErrorIs(t, sawErr, blobstore.ErrNotFound)
}

func TestCSVSource_Gzip(t *testing.T) {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	_, err := w.Write([]byte("entity_id,record_id\n1,a\n1,b\n2,c\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	store := blobstore.NewMemStore()
	store.Put("snap.csv.gz", buf.Bytes())

	src := NewCSVSource(store, "snap.csv.gz")
	got := collect(t, src)

	require.Len(t, got, 2)
	assert.Equal(t, Group{Key: "1", Members: []string{"a", "b"}}, got[0])
}

func TestCSVSource_ContextCanceled(t *testing.T) {
	src := NewCSVSource(csvStore("snap.csv", "entity_id,record_id\n1,a\n"), "snap.csv")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var sawErr error
	for _, err := range src.Groups(ctx) {
		sawErr = err
	}
	require.ErrorIs(t, sawErr, context.Canceled)
}

func TestSliceSource(t *testing.T) {
	gs := []Group{
		{Key: "1", Members: []string{"a"}},
		{Key: "2", Members: []string{"b", "c"}},
	}
	src := NewSliceSource(gs...)

	assert.Equal(t, gs, collect(t, src))
	assert.Equal(t, gs, collect(t, src))
	assert.Equal(t, 2, gs[1].Size())
}
