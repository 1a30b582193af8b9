package dump

import (
	"runtime"
	"sync/atomic"
)

// Defaults for the strategy choosers. All are read at call time, so tests and
// callers can retune them without restarting anything.
const (
	DefaultWholeFileLimit          = 500 << 20
	DefaultChunkLines              = 10000
	DefaultParallelMethodThreshold = 2000
)

var (
	wholeFileLimit          = defaultInt64(DefaultWholeFileLimit)
	chunkLines              = defaultInt64(DefaultChunkLines)
	parallelMethodThreshold = defaultInt64(DefaultParallelMethodThreshold)
)

func defaultInt64(v int64) *atomic.Int64 {
	a := &atomic.Int64{}
	a.Store(v)
	return a
}

// SetWholeFileLimit changes the file size boundary, in bytes, between the
// whole-file and chunked read strategies.
func SetWholeFileLimit(bytes int64) { wholeFileLimit.Store(bytes) }

// WholeFileLimit returns the current whole-file read limit in bytes.
func WholeFileLimit() int64 { return wholeFileLimit.Load() }

// SetChunkLines changes the default line count per chunk for chunked reads.
func SetChunkLines(n int) { chunkLines.Store(int64(n)) }

// ChunkLines returns the default line count per chunk for chunked reads.
func ChunkLines() int { return int(chunkLines.Load()) }

// SetParallelMethodThreshold changes the record-count boundary between the
// pipelined and chunked write strategies.
func SetParallelMethodThreshold(n int) { parallelMethodThreshold.Store(int64(n)) }

// ParallelMethodThreshold returns the current write strategy boundary.
func ParallelMethodThreshold() int { return int(parallelMethodThreshold.Load()) }

// resolveParallelism maps the caller's parallelism request onto a worker
// count: non-positive means one worker per hardware thread.
func resolveParallelism(n int) int {
	if n > 0 {
		return n
	}
	return runtime.NumCPU()
}

// writeChunkSize sizes write chunks so every worker sees enough batches to
// overlap serialization with file writes without ballooning memory.
func writeChunkSize(count, parallelism int) int {
	denom := parallelism * 4
	if denom < 50 {
		denom = 50
	}
	size := count / denom
	if size < 500 {
		size = 500
	}
	if size > 2000 {
		size = 2000
	}
	return size
}
