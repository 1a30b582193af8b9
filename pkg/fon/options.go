package fon

import "sync/atomic"

// Options controls parsing behavior. The zero value is the default.
type Options struct {
	// EagerUnpackRaw runs the Z85 decoder on raw payloads during parse
	// instead of deferring to the first Unpack call.
	EagerUnpackRaw bool

	// StrictEscapes rejects escape sequences outside the known table instead
	// of degrading them to the escaped byte.
	StrictEscapes bool
}

// Package-wide defaults, read at call time by ParseLine. Held as atomics so
// tests running in parallel can flip them safely.
var (
	defaultEagerUnpackRaw atomic.Bool
	defaultStrictEscapes  atomic.Bool
)

// SetEagerUnpackRaw changes the package default for eager raw unpacking.
func SetEagerUnpackRaw(v bool) { defaultEagerUnpackRaw.Store(v) }

// EagerUnpackRaw returns the package default for eager raw unpacking.
func EagerUnpackRaw() bool { return defaultEagerUnpackRaw.Load() }

// SetStrictEscapes changes the package default for strict escape handling.
func SetStrictEscapes(v bool) { defaultStrictEscapes.Store(v) }

// StrictEscapes returns the package default for strict escape handling.
func StrictEscapes() bool { return defaultStrictEscapes.Load() }

// CurrentOptions snapshots the package defaults.
func CurrentOptions() Options {
	return Options{
		EagerUnpackRaw: defaultEagerUnpackRaw.Load(),
		StrictEscapes:  defaultStrictEscapes.Load(),
	}
}
