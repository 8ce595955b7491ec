// Package partition defines the data model for partitioning snapshots and the
// sources that stream them.
//
// A snapshot divides a universe of record identifiers into groups. Sources
// expose a snapshot as a restartable lazy sequence of groups: every call to
// Groups opens a fresh pass over the underlying data, so a single source can
// be drained any number of times.
//
// # Built-in Sources
//
//   - CSVSource: (group-key, member) rows read through a blobstore.Store,
//     optionally decompressed by extension (.gz, .zst, .lz4)
//   - SliceSource: in-memory groups, mainly for tests and embedding
//   - dynamo.Source: rows scanned from a DynamoDB table
//
// Sources assume rows sharing a group key arrive adjacent; adjacency is
// detected by key change only and is not validated. Non-contiguous duplicate
// keys silently produce multiple groups with the same key.
package partition
