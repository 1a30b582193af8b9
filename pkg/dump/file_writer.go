package dump

import (
	"bufio"
	"os"
	"sync"
	"sync/atomic"

	"github.com/fastobjectnotation/fon/pkg/fon"
)

// SerializeToFile writes the dump to path in ascending index order, one
// record per LF-terminated line. Dumps below the parallel method threshold
// go through the pipelined writer; larger dumps go through the chunked
// writer. parallelism <= 0 means one worker per hardware thread.
func SerializeToFile(d *Dump, path string, parallelism int) error {
	if d.Len() < ParallelMethodThreshold() {
		return serializePipelined(d, path, parallelism)
	}
	return SerializeToFileChunked(d, path, 0, parallelism)
}

// SerializeToFileOrdered serializes every record in parallel into one result
// array and then streams the array to disk in order. Memory scales with the
// whole output, so it suits small dumps.
func SerializeToFileOrdered(d *Dump, path string, parallelism int) error {
	_, recs := d.snapshot()
	lines := make([]string, len(recs))
	if err := serializeRange(recs, lines, parallelism); err != nil {
		return err
	}

	f, w, err := createFile(path)
	if err != nil {
		return err
	}
	for _, line := range lines {
		if err := writeLine(w, line); err != nil {
			return closeFile(f, path, err)
		}
	}
	return closeFile(f, path, flushErr(w, path))
}

// SerializeToFileChunked partitions the dump into chunks, serializing each
// chunk in parallel and writing it before the next begins. chunkSize <= 0
// derives the size from the record count and worker count.
func SerializeToFileChunked(d *Dump, path string, chunkSize, parallelism int) error {
	_, recs := d.snapshot()
	if chunkSize <= 0 {
		chunkSize = writeChunkSize(len(recs), resolveParallelism(parallelism))
	}

	f, w, err := createFile(path)
	if err != nil {
		return err
	}
	lines := make([]string, chunkSize)
	for lo := 0; lo < len(recs); lo += chunkSize {
		hi := lo + chunkSize
		if hi > len(recs) {
			hi = len(recs)
		}
		batch := lines[:hi-lo]
		if err := serializeRange(recs[lo:hi], batch, parallelism); err != nil {
			return closeFile(f, path, err)
		}
		for _, line := range batch {
			if err := writeLine(w, line); err != nil {
				return closeFile(f, path, err)
			}
		}
	}
	return closeFile(f, path, flushErr(w, path))
}

// serializeRange fills lines[i] with the serialization of recs[i], fanning
// the index space out across workers. Workers write disjoint slots.
func serializeRange(recs []*fon.Record, lines []string, parallelism int) error {
	n := len(recs)
	if n == 0 {
		return nil
	}
	workers := resolveParallelism(parallelism)
	if workers > n {
		workers = n
	}

	span := (n + workers - 1) / workers
	var (
		wg   sync.WaitGroup
		errs firstError
	)
	for w := 0; w < workers; w++ {
		lo := w * span
		hi := lo + span
		if hi > n {
			hi = n
		}
		if lo >= hi {
			break
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				line, err := fon.SerializeRecord(recs[i])
				if err != nil {
					errs.set(err)
					return
				}
				lines[i] = line
			}
		}(lo, hi)
	}
	wg.Wait()
	return errs.get()
}

// serializePipelined runs a producer pool that serializes records into an
// order-aware buffer while the calling goroutine drains the buffer to disk in
// strictly ascending position order. Every position is produced exactly once,
// so the consumer always makes progress.
func serializePipelined(d *Dump, path string, parallelism int) error {
	_, recs := d.snapshot()
	n := len(recs)

	f, w, err := createFile(path)
	if err != nil {
		return err
	}
	if n == 0 {
		return closeFile(f, path, flushErr(w, path))
	}

	workers := resolveParallelism(parallelism)
	if workers > n {
		workers = n
	}

	buf := newOrderedBuffer()
	var (
		cursor atomic.Int64
		wg     sync.WaitGroup
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				pos := int(cursor.Add(1)) - 1
				if pos >= n {
					return
				}
				line, err := fon.SerializeRecord(recs[pos])
				if err != nil {
					buf.fail(err)
					return
				}
				buf.put(pos, line)
			}
		}()
	}

	var werr error
	for pos := 0; pos < n; pos++ {
		line, err := buf.take(pos)
		if err != nil {
			werr = err
			break
		}
		if err := writeLine(w, line); err != nil {
			werr = err
			break
		}
	}
	wg.Wait()

	if werr == nil {
		werr = flushErr(w, path)
	}
	return closeFile(f, path, werr)
}

// orderedBuffer hands completed lines to a single consumer in position
// order. Producers park lines under their position; the consumer blocks
// until the next required position arrives or a producer fails.
type orderedBuffer struct {
	mu    sync.Mutex
	cond  *sync.Cond
	lines map[int]string
	err   error
}

func newOrderedBuffer() *orderedBuffer {
	b := &orderedBuffer{lines: make(map[int]string)}
	b.cond = sync.NewCond(&b.mu)
	return b
}

func (b *orderedBuffer) put(pos int, line string) {
	b.mu.Lock()
	b.lines[pos] = line
	b.mu.Unlock()
	b.cond.Broadcast()
}

func (b *orderedBuffer) fail(err error) {
	b.mu.Lock()
	if b.err == nil {
		b.err = err
	}
	b.mu.Unlock()
	b.cond.Broadcast()
}

func (b *orderedBuffer) take(pos int) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for {
		if b.err != nil {
			return "", b.err
		}
		if line, ok := b.lines[pos]; ok {
			delete(b.lines, pos)
			return line, nil
		}
		b.cond.Wait()
	}
}

func createFile(path string) (*os.File, *bufio.Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fon.WrapError(fon.ErrIO, err, "create %s: %v", path, err)
	}
	return f, bufio.NewWriterSize(f, 1<<16), nil
}

func writeLine(w *bufio.Writer, line string) error {
	if _, err := w.WriteString(line); err != nil {
		return fon.WrapError(fon.ErrIO, err, "write: %v", err)
	}
	if err := w.WriteByte('\n'); err != nil {
		return fon.WrapError(fon.ErrIO, err, "write: %v", err)
	}
	return nil
}

func flushErr(w *bufio.Writer, path string) error {
	if err := w.Flush(); err != nil {
		return fon.WrapError(fon.ErrIO, err, "flush %s: %v", path, err)
	}
	return nil
}

func closeFile(f *os.File, path string, err error) error {
	if cerr := f.Close(); cerr != nil && err == nil {
		return fon.WrapError(fon.ErrIO, cerr, "close %s: %v", path, cerr)
	}
	return err
}
