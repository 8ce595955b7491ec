package slicedist

import (
	"github.com/hupe1980/slicedist/blobstore"
)

// ErrNotFound is returned when a snapshot blob does not exist.
//
// It aliases blobstore.ErrNotFound so callers of the facade do not need to
// import the storage package for the common existence check. Shape errors
// carry their own types: partition.RowError for malformed rows and
// engine.InconsistentSnapshotError for reused member identifiers.
var ErrNotFound = blobstore.ErrNotFound
