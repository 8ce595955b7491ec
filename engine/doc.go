// Package engine implements the slice partition-distance computation.
//
// The engine consumes two partition sources: the prior snapshot is drained
// eagerly into a member index and per-group size table, the current snapshot
// is drained lazily one group at a time. For each current group it determines
// how the group's members are spread across prior groups and charges the
// configured split and merge costs. The result is a single scalar distance:
// zero means the snapshots partition their universe identically.
//
// The distance is asymmetric. Swapping prior and current can legitimately
// produce a different value, and the order in which a current group's members
// first touch distinct prior groups drives the merge accounting.
package engine
