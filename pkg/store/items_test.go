package store

import (
	"bytes"
	"testing"

	"github.com/permacache/permacache/pkg/item"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memBacking is an in-memory BackingStore with the same buffer-length
// contract as the real adapters. It records the usable length of every
// destination buffer a Get was handed.
type memBacking struct {
	records map[string][]byte
	getDst  []int
}

func newMemBacking() *memBacking {
	return &memBacking{records: map[string][]byte{}}
}

func (m *memBacking) Get(key, dst []byte) (int, error) {
	m.getDst = append(m.getDst, len(dst))
	rec, ok := m.records[string(key)]
	if !ok {
		return 0, ErrNotFound
	}
	if len(rec) > len(dst) {
		return 0, &BufferTooSmallError{Needed: len(rec)}
	}
	copy(dst, rec)
	return len(rec), nil
}

func (m *memBacking) Put(key, value []byte) error {
	m.records[string(key)] = append([]byte{}, value...)
	return nil
}

func (m *memBacking) Delete(key []byte) error {
	if _, ok := m.records[string(key)]; !ok {
		return ErrNotFound
	}
	delete(m.records, string(key))
	return nil
}

func (m *memBacking) Exists(key []byte) (bool, error) {
	_, ok := m.records[string(key)]
	return ok, nil
}

func (m *memBacking) Close() error { return nil }

func newTestStore(bufSize int) (*ItemStore, *memBacking, *item.BufferPool) {
	pool := item.NewBufferPool(bufSize, 4, 8)
	backing := newMemBacking()
	return NewItemStore(backing, item.NewAllocator(pool)), backing, pool
}

func putItem(t *testing.T, s *ItemStore, key string, flags uint32, value string) {
	t.Helper()
	payload := append([]byte(value), '\r', '\n')
	it, err := s.Allocator().Allocate([]byte(key), flags, len(payload))
	require.NoError(t, err)
	copy(it.Payload(), payload)
	require.NoError(t, s.Put([]byte(key), it))
	s.Allocator().Free(it)
}

func TestItemStore_PutGetRoundTrip(t *testing.T) {
	s, _, _ := newTestStore(512)

	putItem(t, s, "user:42", 7, "a small value")

	it, err := s.Get([]byte("user:42"))
	require.NoError(t, err)
	defer s.Allocator().Free(it)

	assert.Equal(t, []byte("user:42"), it.Key())
	assert.Equal(t, []byte("a small value"), it.Value())
	flags, err := it.Flags()
	require.NoError(t, err)
	assert.Equal(t, uint32(7), flags)
}

func TestItemStore_GetMissing(t *testing.T) {
	s, _, pool := newTestStore(512)

	it, err := s.Get([]byte("nope"))
	assert.Nil(t, it)
	assert.ErrorIs(t, err, ErrNotFound)

	// The guess buffer went back to the pool, not leaked.
	assert.Equal(t, 1, pool.Free())
}

func TestItemStore_GetSizeRenegotiation(t *testing.T) {
	// Standard size 64; store a record well past it so the first read
	// comes back too small with the exact size.
	s, backing, pool := newTestStore(64)

	big := bytes.Repeat([]byte("v"), 400)
	putItem(t, s, "big", 3, string(big))
	recLen := len(backing.records["big"])
	require.Greater(t, recLen, 64)

	backing.getDst = nil
	it, err := s.Get([]byte("big"))
	require.NoError(t, err)

	// Exactly two reads: a standard-size guess, then the exact size the
	// store asked for.
	require.Equal(t, []int{64, recLen}, backing.getDst)
	assert.Equal(t, recLen, it.Size())
	assert.Equal(t, big, it.Value())

	// The guess buffer was released exactly once, back into the pool; the
	// oversized retry buffer is the one the caller holds.
	assert.Equal(t, 1, pool.Free())

	s.Allocator().Free(it)
	assert.Equal(t, 1, pool.Free(), "oversized buffer must not be pooled")
}

func TestItemStore_GetSecondTooSmallIsAnError(t *testing.T) {
	s, _, pool := newTestStore(64)

	// A store that keeps asking for more violates the renegotiation
	// protocol; the read must fail rather than loop.
	s.backing = &growingBacking{}

	it, err := s.Get([]byte("k"))
	assert.Nil(t, it)
	assert.ErrorIs(t, err, ErrSizeMismatch)
	assert.Equal(t, 1, pool.Free(), "guess buffer must be released")
}

// growingBacking reports every destination buffer as one byte too small.
type growingBacking struct{}

func (g *growingBacking) Get(key, dst []byte) (int, error) {
	return 0, &BufferTooSmallError{Needed: len(dst) + 1}
}
func (g *growingBacking) Put(key, value []byte) error { return nil }
func (g *growingBacking) Delete(key []byte) error     { return nil }
func (g *growingBacking) Exists(key []byte) (bool, error) {
	return false, nil
}
func (g *growingBacking) Close() error { return nil }

func TestItemStore_GetRejectsInconsistentRecord(t *testing.T) {
	s, backing, _ := newTestStore(512)

	// A stored blob whose header does not account for its length is
	// refused instead of handed to the caller.
	backing.records["junk"] = bytes.Repeat([]byte{0xff}, 32)

	it, err := s.Get([]byte("junk"))
	assert.Nil(t, it)
	assert.ErrorIs(t, err, ErrCorruptRecord)
}

func TestItemStore_PutWritesExactRecordBytes(t *testing.T) {
	s, backing, _ := newTestStore(512)

	putItem(t, s, "k", 0, "value")

	rec := backing.records["k"]
	// 6 header + 1 key + 6 suffix (" 0 5\r\n") + 7 payload
	assert.Len(t, rec, 20)
}

func TestItemStore_DeleteTriState(t *testing.T) {
	s, _, _ := newTestStore(512)

	assert.ErrorIs(t, s.Delete([]byte("absent")), ErrNotFound)

	putItem(t, s, "present", 0, "v")
	require.NoError(t, s.Delete([]byte("present")))

	exists, err := s.Exists([]byte("present"))
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestItemStore_Exists(t *testing.T) {
	s, backing, _ := newTestStore(512)

	putItem(t, s, "k", 0, "v")

	backing.getDst = nil
	exists, err := s.Exists([]byte("k"))
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Empty(t, backing.getDst, "Exists must not read the record into a buffer")
}
