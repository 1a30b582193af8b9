package dump

import (
	"sort"
	"sync"

	"github.com/fastobjectnotation/fon/pkg/fon"
)

// Dump is a thread-safe mapping from 0-based line index to record. Missing
// indices are holes and are skipped by iteration and file output.
type Dump struct {
	mu   sync.RWMutex
	recs map[int]*fon.Record
}

// NewDump returns an empty dump.
func NewDump() *Dump {
	return &Dump{recs: make(map[int]*fon.Record)}
}

// Add inserts rec at index. It fails with ErrDuplicateIndex when the index is
// already occupied; the incumbent record is untouched.
func (d *Dump) Add(index int, rec *fon.Record) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.recs[index]; ok {
		return fon.NewError(fon.ErrDuplicateIndex, "index %d already present", index)
	}
	d.recs[index] = rec
	return nil
}

// TryAdd inserts rec at index unless the index is occupied. It reports
// whether the insert happened.
func (d *Dump) TryAdd(index int, rec *fon.Record) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.recs[index]; ok {
		return false
	}
	d.recs[index] = rec
	return true
}

// Get returns the record stored at index.
func (d *Dump) Get(index int) (*fon.Record, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	rec, ok := d.recs[index]
	return rec, ok
}

// Len returns the number of records.
func (d *Dump) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.recs)
}

// Indices returns the occupied indices in ascending order.
func (d *Dump) Indices() []int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.sortedIndicesLocked()
}

func (d *Dump) sortedIndicesLocked() []int {
	out := make([]int, 0, len(d.recs))
	for i := range d.recs {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// snapshot returns the indices and records in ascending index order under one
// read lock, so file writers see a consistent view.
func (d *Dump) snapshot() ([]int, []*fon.Record) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	indices := d.sortedIndicesLocked()
	recs := make([]*fon.Record, len(indices))
	for i, idx := range indices {
		recs[i] = d.recs[idx]
	}
	return indices, recs
}

// Each calls fn for every record in ascending index order, stopping early if
// fn returns false.
func (d *Dump) Each(fn func(index int, rec *fon.Record) bool) {
	indices, recs := d.snapshot()
	for i, idx := range indices {
		if !fn(idx, recs[i]) {
			return
		}
	}
}

// Equal reports whether two dumps hold equal records at the same indices.
func (d *Dump) Equal(o *Dump) bool {
	if d == nil || o == nil {
		return d == o
	}
	ai, ar := d.snapshot()
	bi, br := o.snapshot()
	if len(ai) != len(bi) {
		return false
	}
	for i := range ai {
		if ai[i] != bi[i] || !ar[i].Equal(br[i]) {
			return false
		}
	}
	return true
}
