package dump

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"sync"

	"github.com/fastobjectnotation/fon/pkg/fon"
)

// DeserializeFromFile reads a FON file into a new dump, choosing the read
// strategy from the file size: files at or below the whole-file limit load in
// one buffer, larger files stream in chunks. parallelism <= 0 means one
// worker per hardware thread.
func DeserializeFromFile(path string, parallelism int) (*Dump, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fon.WrapError(fon.ErrIO, err, "stat %s: %v", path, err)
	}
	if info.Size() <= WholeFileLimit() {
		return deserializeWholeFile(path, parallelism)
	}
	return DeserializeFromFileChunked(path, ChunkLines(), parallelism)
}

// DeserializeFromFileChunked streams a FON file in chunks of the given line
// count, bounding peak memory to roughly one chunk of lines. chunkSize <= 0
// uses the package default.
func DeserializeFromFileChunked(path string, chunkSize, parallelism int) (*Dump, error) {
	if chunkSize <= 0 {
		chunkSize = ChunkLines()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fon.WrapError(fon.ErrIO, err, "open %s: %v", path, err)
	}
	defer f.Close()

	opts := fon.CurrentOptions()
	d := NewDump()
	r := bufio.NewReaderSize(f, 1<<20)
	lines := make([][]byte, 0, chunkSize)
	base := 0

	flush := func() error {
		if err := parseLines(d, lines, base, parallelism, opts); err != nil {
			return err
		}
		base += len(lines)
		lines = lines[:0]
		return nil
	}

	for {
		line, err := r.ReadBytes('\n')
		if len(line) > 0 {
			lines = append(lines, trimLineEnding(line))
			if len(lines) == chunkSize {
				if ferr := flush(); ferr != nil {
					return nil, ferr
				}
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fon.WrapError(fon.ErrIO, err, "read %s: %v", path, err)
		}
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return d, nil
}

func deserializeWholeFile(path string, parallelism int) (*Dump, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fon.WrapError(fon.ErrIO, err, "read %s: %v", path, err)
	}
	d := NewDump()
	if err := parseLines(d, splitLines(data), 0, parallelism, fon.CurrentOptions()); err != nil {
		return nil, err
	}
	return d, nil
}

// splitLines cuts data into per-line sub-slices. A CR directly before the LF
// belongs to the terminator; blank lines stay in the slice as empty entries
// so indices line up with file positions.
func splitLines(data []byte) [][]byte {
	lines := make([][]byte, 0, bytes.Count(data, []byte{'\n'})+1)
	for len(data) > 0 {
		i := bytes.IndexByte(data, '\n')
		if i < 0 {
			lines = append(lines, trimCR(data))
			break
		}
		lines = append(lines, trimCR(data[:i]))
		data = data[i+1:]
	}
	return lines
}

func trimCR(line []byte) []byte {
	if n := len(line); n > 0 && line[n-1] == '\r' {
		return line[:n-1]
	}
	return line
}

func trimLineEnding(line []byte) []byte {
	if n := len(line); n > 0 && line[n-1] == '\n' {
		line = line[:n-1]
	}
	return trimCR(line)
}

// parseLines fans the given lines out across workers and commits the parsed
// records into d at base plus the line's position. Workers own disjoint
// slices of the result array; the commit runs single-threaded after all
// workers drain. Blank lines leave holes.
func parseLines(d *Dump, lines [][]byte, base, parallelism int, opts fon.Options) error {
	n := len(lines)
	if n == 0 {
		return nil
	}
	workers := resolveParallelism(parallelism)
	if workers > n {
		workers = n
	}

	results := make([]*fon.Record, n)
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
				if len(lines[i]) == 0 {
					continue
				}
				rec, err := fon.ParseLineWith(lines[i], opts)
				if err != nil {
					errs.set(fon.WrapError(mustKind(err), err, "line %d: %v", base+i+1, err))
					return
				}
				results[i] = rec
			}
		}(lo, hi)
	}
	wg.Wait()
	if err := errs.get(); err != nil {
		return err
	}

	for i, rec := range results {
		if rec == nil {
			continue
		}
		if err := d.Add(base+i, rec); err != nil {
			return err
		}
	}
	return nil
}

func mustKind(err error) fon.ErrorKind {
	if kind, ok := fon.KindOf(err); ok {
		return kind
	}
	return fon.ErrInvalidFormat
}

// firstError keeps the first error reported by a worker pool.
type firstError struct {
	mu  sync.Mutex
	err error
}

func (f *firstError) set(err error) {
	f.mu.Lock()
	if f.err == nil {
		f.err = err
	}
	f.mu.Unlock()
}

func (f *firstError) get() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}
