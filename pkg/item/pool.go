package item

import "sync"

const (
	// DefaultPoolInitial is the freelist capacity at startup.
	DefaultPoolInitial = 500

	// DefaultPoolMax is the hard cap the freelist may grow to. Growth
	// doubles the capacity on each exhaustion until this limit.
	DefaultPoolMax = 4000
)

// BufferPool recycles raw buffers of a single fixed size in LIFO order, so
// the most recently released buffer is handed out first. Capacity starts at
// an initial value and doubles on demand up to a hard maximum; it never
// shrinks. Only buffers of exactly the pool's buffer size are pooled.
//
// The pool guards its freelist with its own mutex, held only for the
// duration of a pool operation.
type BufferPool struct {
	mu       sync.Mutex
	free     [][]byte
	capacity int
	maxCap   int
	bufSize  int
}

// NewBufferPool creates a pool recycling buffers of bufSize bytes, with the
// given initial capacity and hard maximum. Non-positive sizing arguments
// fall back to the defaults.
func NewBufferPool(bufSize, initial, max int) *BufferPool {
	if initial <= 0 {
		initial = DefaultPoolInitial
	}
	if max <= 0 {
		max = DefaultPoolMax
	}
	if max < initial {
		max = initial
	}
	return &BufferPool{
		free:     make([][]byte, 0, initial),
		capacity: initial,
		maxCap:   max,
		bufSize:  bufSize,
	}
}

// Acquire returns a buffer of the pool's buffer size, recycled from the
// freelist when one is available, freshly zeroed otherwise. The pool is not
// touched on the allocation path.
//
// Recycled buffers come back with their previous contents; callers must
// overwrite the region they use before reading it.
func (p *BufferPool) Acquire() []byte {
	p.mu.Lock()
	if n := len(p.free); n > 0 {
		buf := p.free[n-1]
		p.free[n-1] = nil
		p.free = p.free[:n-1]
		p.mu.Unlock()
		return buf
	}
	p.mu.Unlock()
	return make([]byte, p.bufSize)
}

// Release returns a buffer to the freelist and reports whether the pool took
// ownership. Buffers that are not exactly the pool's buffer size are always
// refused. When the freelist is full the capacity is doubled, bounded by the
// hard maximum; once the maximum is reached Release reports false and the
// caller keeps ownership (in practice, lets the buffer go to the collector).
func (p *BufferPool) Release(buf []byte) bool {
	if len(buf) != p.bufSize {
		return false
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.free) < p.capacity {
		p.free = append(p.free, buf)
		return true
	}
	if p.capacity >= p.maxCap {
		return false
	}
	p.capacity *= 2
	if p.capacity > p.maxCap {
		p.capacity = p.maxCap
	}
	p.free = append(p.free, buf)
	return true
}

// BufferSize returns the fixed size of pooled buffers.
func (p *BufferPool) BufferSize() int {
	return p.bufSize
}

// Free returns the number of buffers currently sitting in the freelist.
func (p *BufferPool) Free() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.free)
}

// Capacity returns the freelist's current capacity.
func (p *BufferPool) Capacity() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.capacity
}
