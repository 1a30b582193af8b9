// Package fon implements the FON line-oriented typed key/value format.
//
// A FON file is a sequence of records, one record per line. Each record is an
// ordered list of typed fields:
//
//	key=T:value,key2=T:[e1,e2,e3]
//
// Fields:
//   - key: a token drawn from [A-Za-z0-9_-]
//   - T: a single-character type tag (see Kind)
//   - value: a scalar payload, or a bracketed homogeneous array
//
// # Type Tags
//
// Eleven scalar kinds are supported:
//
//	e  uint8          t  int16          i  int32
//	u  uint32         l  int64          g  uint64
//	f  float32        d  float64        b  bool
//	s  string         r  raw binary (Z85-encoded on the wire)
//
// Every kind except r also has a homogeneous array form. Numerics are
// formatted locale-independently; floats use the shortest representation that
// round-trips the binary value. Strings are quoted with a JSON-like escape
// table. Raw payloads travel as Z85 text (see package z85).
//
// # Usage
//
// Single-line operations:
//
//	rec := fon.NewRecord()
//	_ = rec.Set("id", fon.Int(42))
//	_ = rec.Set("name", fon.String("test"))
//
//	line, err := fon.SerializeRecord(rec)
//	if err != nil {
//	    return err
//	}
//
//	parsed, err := fon.ParseLine([]byte(line))
//	if err != nil {
//	    return err
//	}
//
// Whole-file operations live in package dump, which fans parsing and
// serialization out across worker goroutines.
//
// # Error Handling
//
// All failures are reported as *Error values carrying an ErrorKind, a human
// message and, for parser errors, the byte offset of the failure within the
// input line.
//
// # Performance Considerations
//
// The parser reads numerics directly from the input slice and copies
// escape-free strings verbatim; only escape-bearing strings allocate a working
// buffer, drawn from a pool when large. Benchmark your specific use case; see
// the benchmark tests for examples.
//
// # Thread Safety
//
// Records and Values are not safe for concurrent mutation. Parsing and
// serialization functions are safe to call from many goroutines at once.
package fon
