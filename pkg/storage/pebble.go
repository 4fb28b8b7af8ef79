// Package storage provides the Pebble-backed implementation of the item
// layer's BackingStore interface.
package storage

import (
	"errors"

	"github.com/cockroachdb/pebble"

	"github.com/permacache/permacache/pkg/store"
)

// PebbleStore adapts a pebble.DB to the store.BackingStore contract,
// translating pebble results into the item layer's status taxonomy.
type PebbleStore struct {
	db *pebble.DB
}

// NewPebbleStore opens (creating if needed) a pebble database at path.
func NewPebbleStore(path string) (*PebbleStore, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, err
	}
	return &PebbleStore{db: db}, nil
}

// Get copies the record under key into dst and returns its length. When the
// record does not fit in dst, the exact size is reported through a
// BufferTooSmallError and dst is left untouched.
func (s *PebbleStore) Get(key, dst []byte) (int, error) {
	value, closer, err := s.db.Get(key)
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return 0, store.ErrNotFound
		}
		return 0, err
	}
	defer closer.Close()

	if len(value) > len(dst) {
		return 0, &store.BufferTooSmallError{Needed: len(value)}
	}
	copy(dst, value)
	return len(value), nil
}

// Put stores value under key.
func (s *PebbleStore) Put(key, value []byte) error {
	return s.db.Set(key, value, pebble.NoSync)
}

// Delete removes the record under key. Pebble deletes blindly, so the key is
// probed first to keep "was absent" distinguishable from "failed".
func (s *PebbleStore) Delete(key []byte) error {
	_, closer, err := s.db.Get(key)
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return store.ErrNotFound
		}
		return err
	}
	if err := closer.Close(); err != nil {
		return err
	}
	return s.db.Delete(key, pebble.NoSync)
}

// Exists reports whether a record is stored under key.
func (s *PebbleStore) Exists(key []byte) (bool, error) {
	_, closer, err := s.db.Get(key)
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, closer.Close()
}

// Close closes the underlying database.
func (s *PebbleStore) Close() error {
	return s.db.Close()
}
