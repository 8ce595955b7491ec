package partition

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"iter"

	"github.com/hupe1980/slicedist/blobstore"
	"github.com/hupe1980/slicedist/codec"
)

// CSVSource streams a partitioning snapshot from a CSV blob.
//
// Rows are (group-key, member) pairs; the first row is a header and is
// discarded, additional columns are ignored. Rows sharing a group key must be
// adjacent: a group ends when the key of the next row differs from the key of
// the previous one. The source holds only the immutable blob descriptor, so
// every Groups call opens its own pass.
type CSVSource struct {
	store blobstore.Store
	name  string
	dec   codec.Decompressor
}

// CSVOptions configures a CSVSource.
type CSVOptions struct {
	// Decompressor overrides extension-based codec selection.
	Decompressor codec.Decompressor
}

// NewCSVSource creates a CSVSource reading the named blob from store.
// Compression is inferred from the blob name unless overridden.
func NewCSVSource(store blobstore.Store, name string, optFns ...func(*CSVOptions)) *CSVSource {
	opts := CSVOptions{}
	for _, fn := range optFns {
		fn(&opts)
	}

	dec := opts.Decompressor
	if dec == nil {
		dec = codec.ForPath(name)
	}

	return &CSVSource{
		store: store,
		name:  name,
		dec:   dec,
	}
}

// Name returns the blob name the source reads from.
func (s *CSVSource) Name() string { return s.name }

// Groups implements Source.
func (s *CSVSource) Groups(ctx context.Context) iter.Seq2[Group, error] {
	return func(yield func(Group, error) bool) {
		blob, err := s.store.Open(ctx, s.name)
		if err != nil {
			yield(Group{}, fmt.Errorf("open snapshot %s: %w", s.name, err))
			return
		}
		defer func() { _ = blob.Close() }()

		rc, err := s.dec.WrapReader(blob)
		if err != nil {
			yield(Group{}, fmt.Errorf("decompress snapshot %s: %w", s.name, err))
			return
		}
		defer func() { _ = rc.Close() }()

		r := csv.NewReader(rc)
		r.FieldsPerRecord = -1

		// Header row.
		if _, err := r.Read(); err != nil {
			if !errors.Is(err, io.EOF) {
				yield(Group{}, fmt.Errorf("read snapshot %s: %w", s.name, err))
			}
			return
		}

		var (
			cur     Group
			started bool
		)
		line := 1

		for {
			if err := ctx.Err(); err != nil {
				yield(Group{}, err)
				return
			}

			rec, err := r.Read()
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				yield(Group{}, fmt.Errorf("read snapshot %s: %w", s.name, err))
				return
			}
			line++

			if len(rec) < 2 {
				yield(Group{}, &RowError{Name: s.name, Line: line, Fields: len(rec)})
				return
			}
			key, member := rec[0], rec[1]

			switch {
			case !started:
				cur = Group{Key: key, Members: []string{member}}
				started = true
			case key == cur.Key:
				cur.Members = append(cur.Members, member)
			default:
				if !yield(cur, nil) {
					return
				}
				cur = Group{Key: key, Members: []string{member}}
			}
		}

		if started {
			yield(cur, nil)
		}
	}
}
