// Package dump holds ordered collections of records and moves them to and
// from FON files.
//
// A Dump maps 0-based line indices to records. Indices with no record are
// holes; they come from blank lines on read and are not re-emitted on write.
// Iteration and file output always follow ascending index order, regardless
// of insertion order.
//
// File operations pick a strategy from the input size:
//
//   - Reads below the whole-file limit (default 500 MiB) load the file into
//     one buffer and fan line ranges out across workers. Larger files are
//     streamed in chunks of a configurable line count (default 10000).
//   - Writes below the parallel method threshold (default 2000 records) use a
//     pipelined producer pool draining through a single in-order consumer.
//     Larger dumps serialize chunk by chunk, overlapping serialization with
//     file writes.
//
// Both paths preserve the index order of the dump exactly: workers never
// share an index slot, and output lines appear in ascending index order.
package dump
