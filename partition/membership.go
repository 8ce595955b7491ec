package partition

import (
	"context"
	"errors"

	"github.com/RoaringBitmap/roaring/v2"
)

// ErrInternerMismatch is returned when membership sets built against
// different interners are combined.
var ErrInternerMismatch = errors.New("membership sets use different interners")

// Interner assigns dense uint32 ids to member identifiers. Share one Interner
// across the snapshots being compared so their bitmap ids line up.
// Not safe for concurrent use.
type Interner struct {
	ids map[string]uint32
}

// NewInterner creates an empty Interner.
func NewInterner() *Interner {
	return &Interner{ids: make(map[string]uint32)}
}

// Intern returns the id for member, assigning the next free id on first use.
func (i *Interner) Intern(member string) uint32 {
	if id, ok := i.ids[member]; ok {
		return id
	}
	id := uint32(len(i.ids))
	i.ids[member] = id
	return id
}

// Lookup returns the id for member without assigning one.
func (i *Interner) Lookup(member string) (uint32, bool) {
	id, ok := i.ids[member]
	return id, ok
}

// Len returns the number of interned members.
func (i *Interner) Len() int { return len(i.ids) }

// Membership is a roaring-bitmap set of the member ids observed in one
// snapshot, plus basic shape counters.
type Membership struct {
	in      *Interner
	rb      *roaring.Bitmap
	groups  int
	records int
}

// CollectMembership fully drains src into a membership set, interning every
// member through in.
func CollectMembership(ctx context.Context, src Source, in *Interner) (*Membership, error) {
	m := &Membership{
		in: in,
		rb: roaring.New(),
	}

	for g, err := range src.Groups(ctx) {
		if err != nil {
			return nil, err
		}
		m.groups++
		for _, member := range g.Members {
			m.records++
			m.rb.Add(in.Intern(member))
		}
	}

	return m, nil
}

// Groups returns the number of groups observed.
func (m *Membership) Groups() int { return m.groups }

// Records returns the number of rows observed, duplicates included.
func (m *Membership) Records() int { return m.records }

// Cardinality returns the number of distinct members.
func (m *Membership) Cardinality() uint64 { return m.rb.GetCardinality() }

// Contains reports whether the snapshot contains the member.
func (m *Membership) Contains(member string) bool {
	id, ok := m.in.Lookup(member)
	return ok && m.rb.Contains(id)
}

// Overlap summarizes membership agreement between a prior and a current
// snapshot.
type Overlap struct {
	Shared      uint64
	PriorOnly   uint64
	CurrentOnly uint64
	Jaccard     float64
}

// ComputeOverlap compares two membership sets. Both must have been collected
// with the same Interner.
func ComputeOverlap(prior, current *Membership) (Overlap, error) {
	if prior.in != current.in {
		return Overlap{}, ErrInternerMismatch
	}

	shared := roaring.And(prior.rb, current.rb).GetCardinality()
	union := roaring.Or(prior.rb, current.rb).GetCardinality()

	o := Overlap{
		Shared:      shared,
		PriorOnly:   prior.rb.GetCardinality() - shared,
		CurrentOnly: current.rb.GetCardinality() - shared,
	}
	if union > 0 {
		o.Jaccard = float64(shared) / float64(union)
	}

	return o, nil
}
