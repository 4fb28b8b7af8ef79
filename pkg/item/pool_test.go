package item

import "testing"

func TestBufferPool_AcquireAllocatesStandardSize(t *testing.T) {
	pool := NewBufferPool(64, 2, 4)

	buf := pool.Acquire()
	if len(buf) != 64 {
		t.Fatalf("buffer length = %d, want 64", len(buf))
	}
	if pool.Free() != 0 {
		t.Errorf("pool occupancy = %d after miss, want 0", pool.Free())
	}
}

func TestBufferPool_LIFOReuse(t *testing.T) {
	pool := NewBufferPool(64, 4, 8)

	a := pool.Acquire()
	b := pool.Acquire()
	a[0] = 'a'
	b[0] = 'b'

	if !pool.Release(a) {
		t.Fatal("Release(a) refused")
	}
	if !pool.Release(b) {
		t.Fatal("Release(b) refused")
	}

	// Most recently released comes back first.
	if got := pool.Acquire(); got[0] != 'b' {
		t.Errorf("first reacquire got %q, want b", got[0])
	}
	if got := pool.Acquire(); got[0] != 'a' {
		t.Errorf("second reacquire got %q, want a", got[0])
	}
}

func TestBufferPool_InFlightAccounting(t *testing.T) {
	pool := NewBufferPool(64, 8, 8)

	bufs := make([][]byte, 0, 5)
	for i := 0; i < 5; i++ {
		bufs = append(bufs, pool.Acquire())
	}
	if pool.Free() != 0 {
		t.Fatalf("pool occupancy = %d with all buffers in flight, want 0", pool.Free())
	}

	// Returned buffers must all be distinct.
	seen := map[*byte]bool{}
	for _, buf := range bufs {
		p := &buf[0]
		if seen[p] {
			t.Fatal("pool handed out the same buffer twice")
		}
		seen[p] = true
	}

	for i, buf := range bufs {
		if !pool.Release(buf) {
			t.Fatalf("Release %d refused", i)
		}
		if pool.Free() != i+1 {
			t.Errorf("pool occupancy = %d after %d releases", pool.Free(), i+1)
		}
	}
}

func TestBufferPool_GrowthDoubles(t *testing.T) {
	pool := NewBufferPool(8, 2, 16)

	// Fill to initial capacity, then one more to force a doubling.
	for i := 0; i < 3; i++ {
		if !pool.Release(make([]byte, 8)) {
			t.Fatalf("Release %d refused", i)
		}
	}
	if pool.Capacity() != 4 {
		t.Errorf("capacity = %d after one exhaustion, want 4", pool.Capacity())
	}

	// Fill to the new capacity and force another doubling.
	if !pool.Release(make([]byte, 8)) {
		t.Fatal("Release at capacity refused")
	}
	if !pool.Release(make([]byte, 8)) {
		t.Fatal("Release past capacity refused")
	}
	if pool.Capacity() != 8 {
		t.Errorf("capacity = %d after two exhaustions, want 8", pool.Capacity())
	}
}

func TestBufferPool_HardCap(t *testing.T) {
	pool := NewBufferPool(8, 2, 4)

	for i := 0; i < 4; i++ {
		if !pool.Release(make([]byte, 8)) {
			t.Fatalf("Release %d refused before the cap", i)
		}
	}
	if pool.Capacity() != 4 {
		t.Fatalf("capacity = %d, want hard cap 4", pool.Capacity())
	}

	// At the hard cap: refuse, never grow further.
	if pool.Release(make([]byte, 8)) {
		t.Error("Release succeeded past the hard cap")
	}
	if pool.Capacity() != 4 {
		t.Errorf("capacity = %d after refused release, want 4", pool.Capacity())
	}
	if pool.Free() != 4 {
		t.Errorf("pool occupancy = %d after refused release, want 4", pool.Free())
	}
}

func TestBufferPool_RefusesWrongSize(t *testing.T) {
	pool := NewBufferPool(64, 4, 8)

	if pool.Release(make([]byte, 65)) {
		t.Error("pool accepted an oversized buffer")
	}
	if pool.Release(make([]byte, 6)) {
		t.Error("pool accepted an undersized buffer")
	}
	if pool.Free() != 0 {
		t.Errorf("pool occupancy = %d, want 0", pool.Free())
	}
}
