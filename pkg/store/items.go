package store

import (
	"errors"

	"github.com/permacache/permacache/pkg/item"
)

// ItemStore maps item operations onto a backing store. It is the only
// component that talks to the store; the protocol layer above calls nothing
// else.
//
// Operations may block on store I/O and carry no timeout of their own;
// cancellation, if needed, belongs to the connection layer wrapping these
// calls.
type ItemStore struct {
	backing BackingStore
	alloc   *item.Allocator
}

// NewItemStore creates an ItemStore reading and writing through backing,
// drawing buffers from alloc.
func NewItemStore(backing BackingStore, alloc *item.Allocator) *ItemStore {
	return &ItemStore{
		backing: backing,
		alloc:   alloc,
	}
}

// Allocator returns the allocator items handed out by Get must be released
// to.
func (s *ItemStore) Allocator() *item.Allocator {
	return s.alloc
}

// Get reads the record stored under key.
//
// The read is a two-state size renegotiation: the first attempt uses a
// standard-size buffer; if the store reports the buffer too small along with
// the exact record size, the buffer is released, an exact-size buffer is
// allocated and the read retried once. The retry size is store-authoritative,
// so a second too-small report is a protocol violation and surfaces as
// ErrSizeMismatch rather than looping.
//
// Exactly one buffer is owned by the operation at any point; every exit path
// releases the buffer it holds. On success the caller owns the returned Item
// and must release it with the store's Allocator.
func (s *ItemStore) Get(key []byte) (*item.Item, error) {
	it := s.alloc.AllocateRaw(s.alloc.BufferSize())

	n, err := s.backing.Get(key, it.Buf())

	var tooSmall *BufferTooSmallError
	if errors.As(err, &tooSmall) {
		s.alloc.Free(it)
		it = s.alloc.AllocateRaw(tooSmall.Needed)
		n, err = s.backing.Get(key, it.Buf())
		if errors.As(err, &tooSmall) {
			s.alloc.Free(it)
			return nil, ErrSizeMismatch
		}
	}
	if err != nil {
		s.alloc.Free(it)
		return nil, err
	}

	// The record arrives with its header; the header must account for
	// exactly the bytes the store handed back.
	if n < item.HeaderSize || it.Size() != n {
		s.alloc.Free(it)
		return nil, ErrCorruptRecord
	}
	return it, nil
}

// Put writes it under key as a single record. The record's own header fields
// size the write. Failures are reported as-is, without retry.
func (s *ItemStore) Put(key []byte, it *item.Item) error {
	return s.backing.Put(key, it.Bytes())
}

// Delete removes the record under key. ErrNotFound means the key was already
// absent, so callers can distinguish an idempotent delete from a failure.
func (s *ItemStore) Delete(key []byte) error {
	return s.backing.Delete(key)
}

// Exists reports whether a record is stored under key. No Item is allocated.
func (s *ItemStore) Exists(key []byte) (bool, error) {
	return s.backing.Exists(key)
}
