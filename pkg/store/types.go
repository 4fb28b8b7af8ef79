package store

import "fmt"

// Errors
var (
	ErrNotFound      = &StoreError{"key not found"}
	ErrSizeMismatch  = &StoreError{"store reported a larger record after an exact-size retry"}
	ErrCorruptRecord = &StoreError{"record header does not match stored length"}
)

// StoreError represents a store access error
type StoreError struct {
	Message string
}

func (e *StoreError) Error() string {
	return e.Message
}

// BufferTooSmallError reports that a destination buffer could not hold a
// record, along with the exact size the store needs. The caller retries the
// read with a buffer of that size.
type BufferTooSmallError struct {
	Needed int
}

func (e *BufferTooSmallError) Error() string {
	return fmt.Sprintf("destination buffer too small: %d bytes required", e.Needed)
}
