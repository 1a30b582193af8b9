package fon

import "sync"

// stackBufSize is the cutoff below which escape expansion uses a fresh small
// buffer instead of the shared pool.
const stackBufSize = 1024

var bufPool = sync.Pool{
	New: func() interface{} {
		b := make([]byte, 0, 4096)
		return &b
	},
}

// getBuf returns a zero-length scratch buffer with at least n bytes of
// capacity. Buffers above the stack cutoff come from the pool and must be
// released with putBuf.
func getBuf(n int) ([]byte, *[]byte) {
	if n <= stackBufSize {
		return make([]byte, 0, n), nil
	}
	p := bufPool.Get().(*[]byte)
	b := (*p)[:0]
	if cap(b) < n {
		b = make([]byte, 0, n)
		*p = b
	}
	return b, p
}

func putBuf(p *[]byte, b []byte) {
	if p == nil {
		return
	}
	*p = b[:0]
	bufPool.Put(p)
}
