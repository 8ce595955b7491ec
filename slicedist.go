package slicedist

import (
	"context"
	"time"

	"github.com/hupe1980/slicedist/engine"
	"github.com/hupe1980/slicedist/partition"
)

// Compare computes the slice distance between a prior and a current snapshot.
//
// The prior source is drained eagerly, the current source one group at a
// time, so memory scales with the prior universe plus the largest current
// group. Both sources are opened exactly once.
func Compare(ctx context.Context, prior, current partition.Source, optFns ...Option) (engine.Result, error) {
	o := applyOptions(optFns)

	eng := engine.New(
		engine.WithMergeCost(o.mergeCost),
		engine.WithSplitCost(o.splitCost),
		engine.WithLogger(o.logger.Logger),
	)

	start := time.Now()
	res, err := eng.Distance(ctx, prior, current)
	elapsed := time.Since(start)

	o.metrics.RecordCompare(res.Cost, elapsed, err)
	o.logger.LogCompare(ctx, res, elapsed, err)

	return res, err
}

// Inspect walks one snapshot, invoking fn for every group with its 1-based
// arrival index, and returns the number of groups. A non-nil error from fn
// stops the walk.
func Inspect(ctx context.Context, src partition.Source, fn func(arrival int, g partition.Group) error, optFns ...Option) (int, error) {
	o := applyOptions(optFns)

	start := time.Now()
	groups, err := inspect(ctx, src, fn)
	elapsed := time.Since(start)

	o.metrics.RecordInspect(groups, elapsed, err)
	o.logger.LogInspect(ctx, groups, elapsed, err)

	return groups, err
}

func inspect(ctx context.Context, src partition.Source, fn func(int, partition.Group) error) (int, error) {
	arrival := 0
	for g, err := range src.Groups(ctx) {
		if err != nil {
			return arrival, err
		}
		arrival++
		if fn != nil {
			if err := fn(arrival, g); err != nil {
				return arrival, err
			}
		}
	}
	return arrival, nil
}

// Overlap drains both snapshots and summarizes how their member universes
// agree: shared members, members only on one side, and the Jaccard index.
// This is an extra pass over both sources, independent of Compare.
func Overlap(ctx context.Context, prior, current partition.Source, optFns ...Option) (partition.Overlap, error) {
	o := applyOptions(optFns)
	in := partition.NewInterner()

	pm, err := partition.CollectMembership(ctx, prior, in)
	if err != nil {
		return partition.Overlap{}, err
	}
	cm, err := partition.CollectMembership(ctx, current, in)
	if err != nil {
		return partition.Overlap{}, err
	}

	ov, err := partition.ComputeOverlap(pm, cm)
	if err != nil {
		return partition.Overlap{}, err
	}

	o.logger.DebugContext(ctx, "membership overlap",
		"shared", ov.Shared,
		"prior_only", ov.PriorOnly,
		"current_only", ov.CurrentOnly,
		"jaccard", ov.Jaccard,
	)

	return ov, nil
}
