package partition

import (
	"context"
	"fmt"
	"iter"
)

// Group is an ordered run of member identifiers sharing one group key within
// a single partitioning snapshot.
type Group struct {
	Key     string
	Members []string
}

// Size returns the number of members in the group.
func (g Group) Size() int { return len(g.Members) }

// Source yields the groups of one partitioning snapshot in first-appearance
// order of their key.
//
// Groups returns a fresh pass on every call: iterating the returned sequence
// again, or calling Groups again, re-reads the underlying data from the
// beginning. If the data cannot be opened or read, the failure is yielded as
// the error value and the sequence terminates.
type Source interface {
	Groups(ctx context.Context) iter.Seq2[Group, error]
}

// SliceSource serves groups from memory. It is useful for tests and for
// callers that already hold a resolved snapshot.
type SliceSource struct {
	groups []Group
}

// NewSliceSource creates a SliceSource over the given groups. The slice is
// not copied; callers must not mutate it while the source is in use.
func NewSliceSource(groups ...Group) *SliceSource {
	return &SliceSource{groups: groups}
}

// Groups implements Source.
func (s *SliceSource) Groups(ctx context.Context) iter.Seq2[Group, error] {
	return func(yield func(Group, error) bool) {
		for _, g := range s.groups {
			if err := ctx.Err(); err != nil {
				yield(Group{}, err)
				return
			}
			if !yield(g, nil) {
				return
			}
		}
	}
}

// RowError reports a row that does not carry the minimal (group-key, member)
// shape. Line numbers are 1-based and count the header row.
type RowError struct {
	Name   string
	Line   int
	Fields int
}

func (e *RowError) Error() string {
	return fmt.Sprintf("%s: row %d has %d fields, need at least 2", e.Name, e.Line, e.Fields)
}
