package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hupe1980/slicedist/cost"
	"github.com/hupe1980/slicedist/partition"
)

// unknownBucket keys members of a current group that never appeared in the
// prior snapshot. Prior-group arrival indices are 1-based, so 0 is free.
// All unknown members of one current group share this bucket; they charge no
// split cost (there is no prior group to split) but participate in merge
// accounting like any other bucket.
const unknownBucket = 0

// Engine computes the slice distance between two partitioning snapshots.
//
// An Engine is stateless between Distance calls; all scratch state lives in
// the call itself, so a single Engine may be reused.
type Engine struct {
	mergeCost cost.Func
	splitCost cost.Func
	logger    *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithMergeCost sets the cost function charged when a current group absorbs
// members from more than one prior group. Defaults to cost.Max.
func WithMergeCost(f cost.Func) Option {
	return func(e *Engine) {
		if f != nil {
			e.mergeCost = f
		}
	}
}

// WithSplitCost sets the cost function charged when a prior group's members
// are spread across more than one current group. Defaults to cost.Max.
func WithSplitCost(f cost.Func) Option {
	return func(e *Engine) {
		if f != nil {
			e.splitCost = f
		}
	}
}

// WithLogger sets the logger for progress and diagnostic output. Logging is
// informational only and never affects the computed distance.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// New creates an Engine. Without options it charges cost.Max for both splits
// and merges, matching the reference slice algorithm.
func New(optFns ...Option) *Engine {
	e := &Engine{
		mergeCost: cost.Max,
		splitCost: cost.Max,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, fn := range optFns {
		fn(e)
	}
	return e
}

// Result carries the computed distance and accounting counters.
type Result struct {
	// Cost is the accumulated split and merge cost.
	Cost float64
	// PriorGroups and CurrentGroups count the groups drained per side.
	PriorGroups   int
	CurrentGroups int
	// Splits and Merges count charged events.
	Splits int
	Merges int
	// UnknownMembers counts current-side members absent from the prior
	// snapshot.
	UnknownMembers int
}

// Distance drains both sources and returns the accumulated re-partitioning
// cost.
//
// The prior source is drained fully before any current group is examined;
// the current source is consumed one group at a time. Members of the current
// snapshot missing from the prior one are tolerated and costed through a
// shared unknown bucket. A prior group attributed more members than it holds
// indicates reused identifiers and fails with InconsistentSnapshotError.
func (e *Engine) Distance(ctx context.Context, prior, current partition.Source) (Result, error) {
	var res Result

	// Remaining-size table and member index, both keyed by 1-based arrival
	// order of the prior groups.
	sizes := make(map[int]int)
	index := make(map[string]int)

	arrival := 0
	for g, err := range prior.Groups(ctx) {
		if err != nil {
			return Result{}, fmt.Errorf("drain prior snapshot: %w", err)
		}
		arrival++
		sizes[arrival] = g.Size()
		for _, member := range g.Members {
			// Last writer wins if a member id shows up in several groups.
			index[member] = arrival
		}
	}
	res.PriorGroups = arrival

	e.logger.DebugContext(ctx, "prior snapshot indexed",
		"groups", arrival,
		"members", len(index),
	)

	for g, err := range current.Groups(ctx) {
		if err != nil {
			return Result{}, fmt.Errorf("drain current snapshot: %w", err)
		}
		res.CurrentGroups++

		buckets := newBucketMap(len(g.Members))
		for _, member := range g.Members {
			idx, ok := index[member]
			if !ok {
				idx = unknownBucket
				res.UnknownMembers++
			}
			buckets.inc(idx)
		}

		groupCost := 0.0
		total := 0

		for _, idx := range buckets.order {
			value := buckets.counts[idx]

			if idx != unknownBucket {
				remaining := sizes[idx]
				if remaining > value {
					groupCost += e.splitCost(value, remaining-value)
					res.Splits++
				}
				sizes[idx] = remaining - value
				if sizes[idx] < 0 {
					return Result{}, &InconsistentSnapshotError{
						PriorIndex: idx,
						Remaining:  remaining,
						Attributed: value,
					}
				}
			}

			if total != 0 {
				groupCost += e.mergeCost(value, total)
				res.Merges++
			}
			total += value
		}

		e.logger.DebugContext(ctx, "current group costed",
			"group", g.Key,
			"members", g.Size(),
			"buckets", len(buckets.order),
			"cost", groupCost,
		)

		res.Cost += groupCost
	}

	e.logger.InfoContext(ctx, "distance computed",
		"cost", res.Cost,
		"prior_groups", res.PriorGroups,
		"current_groups", res.CurrentGroups,
		"splits", res.Splits,
		"merges", res.Merges,
		"unknown_members", res.UnknownMembers,
	)

	return res, nil
}

// bucketMap counts members per prior-group arrival index, remembering the
// order in which distinct indices were first seen. That order drives the
// merge accounting and must not be replaced by map iteration order.
type bucketMap struct {
	order  []int
	counts map[int]int
}

func newBucketMap(capacity int) *bucketMap {
	return &bucketMap{
		counts: make(map[int]int, capacity),
	}
}

func (m *bucketMap) inc(idx int) {
	if _, ok := m.counts[idx]; !ok {
		m.order = append(m.order, idx)
	}
	m.counts[idx]++
}

// InconsistentSnapshotError reports a prior group that was attributed more
// members than it held, which only happens when a member identifier is
// reassigned between groups within one snapshot.
type InconsistentSnapshotError struct {
	PriorIndex int
	Remaining  int
	Attributed int
}

func (e *InconsistentSnapshotError) Error() string {
	return fmt.Sprintf("prior group %d: attributed %d members with only %d remaining",
		e.PriorIndex, e.Attributed, e.Remaining)
}
