// Package archive persists FON records in a Pebble key-value store, keyed by
// line index. It gives dump files a queryable at-rest form: records round
// trip through their serialized line representation, so anything the codec
// accepts can be archived and restored unchanged.
package archive

import (
	"encoding/binary"
	"errors"

	"github.com/cockroachdb/pebble"

	"github.com/fastobjectnotation/fon/pkg/dump"
	"github.com/fastobjectnotation/fon/pkg/fon"
)

// Archive is a Pebble-backed store of serialized records keyed by 8-byte
// big-endian line index, so iteration order matches index order.
type Archive struct {
	db *pebble.DB
}

// Open opens or creates an archive at path.
func Open(path string) (*Archive, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fon.WrapError(fon.ErrIO, err, "open archive %s: %v", path, err)
	}
	return &Archive{db: db}, nil
}

// Put stores rec at index, replacing any previous record there.
func (a *Archive) Put(index int, rec *fon.Record) error {
	line, err := fon.SerializeRecord(rec)
	if err != nil {
		return err
	}
	if err := a.db.Set(indexKey(index), []byte(line), pebble.NoSync); err != nil {
		return fon.WrapError(fon.ErrIO, err, "put index %d: %v", index, err)
	}
	return nil
}

// Get returns the record stored at index, or ok=false when absent.
func (a *Archive) Get(index int) (*fon.Record, bool, error) {
	data, closer, err := a.db.Get(indexKey(index))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, false, nil
		}
		return nil, false, fon.WrapError(fon.ErrIO, err, "get index %d: %v", index, err)
	}
	defer closer.Close()

	rec, err := fon.ParseLine(data)
	if err != nil {
		return nil, false, err
	}
	return rec, true, nil
}

// Delete removes the record at index. Deleting an absent index is not an
// error.
func (a *Archive) Delete(index int) error {
	if err := a.db.Delete(indexKey(index), pebble.NoSync); err != nil {
		return fon.WrapError(fon.ErrIO, err, "delete index %d: %v", index, err)
	}
	return nil
}

// ImportDump stores every record of d under its line index.
func (a *Archive) ImportDump(d *dump.Dump) error {
	var impErr error
	d.Each(func(index int, rec *fon.Record) bool {
		impErr = a.Put(index, rec)
		return impErr == nil
	})
	return impErr
}

// ImportFile reads a FON file and stores every record under its line index.
// It returns the number of records imported.
func (a *Archive) ImportFile(path string, parallelism int) (int, error) {
	d, err := dump.DeserializeFromFile(path, parallelism)
	if err != nil {
		return 0, err
	}
	if err := a.ImportDump(d); err != nil {
		return 0, err
	}
	return d.Len(), nil
}

// ExportFile writes the whole archive to a FON file in ascending index order.
// It returns the number of records written.
func (a *Archive) ExportFile(path string, parallelism int) (int, error) {
	d, err := a.ExportDump()
	if err != nil {
		return 0, err
	}
	if err := dump.SerializeToFile(d, path, parallelism); err != nil {
		return 0, err
	}
	return d.Len(), nil
}

// ExportDump reads the whole archive back into a dump, preserving indices
// and holes.
func (a *Archive) ExportDump() (*dump.Dump, error) {
	iter, err := a.db.NewIter(nil)
	if err != nil {
		return nil, fon.WrapError(fon.ErrIO, err, "iterate archive: %v", err)
	}
	defer iter.Close()

	d := dump.NewDump()
	for iter.First(); iter.Valid(); iter.Next() {
		key := iter.Key()
		if len(key) != 8 {
			continue
		}
		index := int(binary.BigEndian.Uint64(key))
		rec, err := fon.ParseLine(iter.Value())
		if err != nil {
			return nil, err
		}
		if err := d.Add(index, rec); err != nil {
			return nil, err
		}
	}
	if err := iter.Error(); err != nil {
		return nil, fon.WrapError(fon.ErrIO, err, "iterate archive: %v", err)
	}
	return d, nil
}

// Len counts the records in the archive.
func (a *Archive) Len() (int, error) {
	iter, err := a.db.NewIter(nil)
	if err != nil {
		return 0, fon.WrapError(fon.ErrIO, err, "iterate archive: %v", err)
	}
	defer iter.Close()

	n := 0
	for iter.First(); iter.Valid(); iter.Next() {
		n++
	}
	if err := iter.Error(); err != nil {
		return 0, fon.WrapError(fon.ErrIO, err, "iterate archive: %v", err)
	}
	return n, nil
}

// Close flushes and closes the underlying store.
func (a *Archive) Close() error {
	if err := a.db.Close(); err != nil {
		return fon.WrapError(fon.ErrIO, err, "close archive: %v", err)
	}
	return nil
}

func indexKey(index int) []byte {
	var key [8]byte
	binary.BigEndian.PutUint64(key[:], uint64(index))
	return key[:]
}
