package item

// Allocator hands out Items backed either by the buffer pool (records at or
// under the pool's standard size) or by a direct allocation (oversized
// records). Both allocation paths and the release path route through the
// same size threshold.
type Allocator struct {
	pool *BufferPool
}

// NewAllocator creates an allocator drawing standard-size buffers from pool.
func NewAllocator(pool *BufferPool) *Allocator {
	return &Allocator{pool: pool}
}

// BufferSize returns the standard buffer size, the threshold between pooled
// and direct allocation.
func (a *Allocator) BufferSize() int {
	return a.pool.BufferSize()
}

// acquire is the single routing point between pool and direct allocation.
func (a *Allocator) acquire(total int) []byte {
	if total > a.pool.BufferSize() {
		return make([]byte, total)
	}
	return a.pool.Acquire()
}

// Allocate builds a fully formed Item for the given key, flags and payload
// length (terminator included): header and suffix written, key copied in.
// The payload region is left for the caller to fill.
func (a *Allocator) Allocate(key []byte, flags uint32, payloadLen int) (*Item, error) {
	if len(key) > MaxKeyLen {
		return nil, ErrKeyTooLong
	}
	suffix, err := MakeSuffix(flags, payloadLen)
	if err != nil {
		return nil, err
	}

	total := TotalSize(len(key), len(suffix), payloadLen)
	it := &Item{buf: a.acquire(total)}
	it.writeHeader(len(key), payloadLen, len(suffix))
	copy(it.Key(), key)
	copy(it.Suffix(), suffix)
	return it, nil
}

// AllocateRaw hands out an Item sized to hold total bytes without writing
// anything into it. Used when the contents, header included, will be filled
// by a backing-store read.
func (a *Allocator) AllocateRaw(total int) *Item {
	return &Item{buf: a.acquire(total)}
}

// Free releases an Item's buffer. Standard-size buffers go back to the pool;
// oversized buffers, and standard-size buffers the pool refuses, are left to
// the garbage collector. A nil Item is a no-op.
//
// The pooled-vs-direct decision reads the record's total size from its own
// header fields, so the header must not be scribbled over after allocation.
// The pool's own exact-size check keeps a buffer with an unwritten or stale
// header from ever being pooled at the wrong size.
func (a *Allocator) Free(it *Item) {
	if it == nil {
		return
	}
	if it.Size() <= a.pool.BufferSize() {
		if a.pool.Release(it.buf) {
			it.buf = nil
			return
		}
	}
	it.buf = nil
}
