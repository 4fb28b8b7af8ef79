package store

// BackingStore is the persistent keyed byte-record service the item layer
// reads and writes through. It is treated as opaque: transactions, caching
// and durability are the implementation's concern.
type BackingStore interface {
	// Get copies the record stored under key into dst and returns the
	// record's length. The length of dst is the declared usable length;
	// when the record does not fit, Get returns a *BufferTooSmallError
	// carrying the exact size required and writes nothing. A missing key
	// is ErrNotFound.
	Get(key, dst []byte) (int, error)

	// Put stores value under key as a single record, replacing any
	// previous record.
	Put(key, value []byte) error

	// Delete removes the record under key. A missing key is ErrNotFound,
	// distinct from an operation failure.
	Delete(key []byte) error

	// Exists reports membership without transferring the record.
	Exists(key []byte) (bool, error)

	// Close releases the store.
	Close() error
}
