// Package slicedist measures how much re-partitioning happened between two
// snapshots of an entity-resolution process.
//
// Both snapshots group the same universe of record identifiers into entities.
// The slice distance charges a configurable cost for every split (one prior
// entity spread over several current entities) and every merge (one current
// entity absorbing several prior entities) and sums the charges into a single
// scalar: zero means the grouping did not move at all.
//
// # Quick Start
//
// Local CSV snapshots:
//
//	ctx := context.Background()
//	store := blobstore.NewLocalStore("")
//	prior := partition.NewCSVSource(store, "resolved-monday.csv")
//	current := partition.NewCSVSource(store, "resolved-tuesday.csv")
//
//	res, err := slicedist.Compare(ctx, prior, current)
//	fmt.Println(res.Cost)
//
// Cloud-resident snapshots:
//
//	s3Store, _ := s3.New(ctx, "my-bucket", func(o *s3.Options) { o.Prefix = "resolved/" })
//	cache, _ := blobstore.NewCachingStore(s3Store, "/tmp/slicedist")
//	prior := partition.NewCSVSource(cache, "monday.csv.zst")
//
// # Cost Functions
//
// The reference algorithm charges max(a, b) for both event kinds. Any pure
// function over two non-negative counts works:
//
//	res, _ := slicedist.Compare(ctx, prior, current,
//	    slicedist.WithMergeCost(cost.Sum),
//	    slicedist.WithSplitCost(cost.Constant(1)),
//	)
//
// # Asymmetry
//
// The distance is directional by construction: it models the cost of
// incrementally absorbing the current snapshot given the prior one, so
// Compare(a, b) and Compare(b, a) may differ. Member order inside a current
// group decides which prior group counts as the first contributor and is
// therefore significant.
package slicedist
