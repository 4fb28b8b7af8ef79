package item

import (
	"encoding/binary"
	"fmt"
)

const (
	// HeaderSize is the fixed header length: KeyLen(1) + PayloadLen(4) + SuffixLen(1)
	HeaderSize = 6

	// MaxKeyLen is the largest key a record can carry (the key length is a byte)
	MaxKeyLen = 255

	// MaxSuffixLen caps the encoded suffix, terminator included
	MaxSuffixLen = 40
)

// Errors returned by the codec
var (
	ErrKeyTooLong    = fmt.Errorf("key exceeds %d bytes", MaxKeyLen)
	ErrSuffixTooLong = fmt.Errorf("encoded suffix exceeds %d bytes", MaxSuffixLen)
)

// Item is a single cached record laid out over a reusable buffer.
// The buffer may be longer than the record it holds; TotalSize bounds
// the meaningful bytes.
type Item struct {
	buf []byte
}

// MakeSuffix encodes the suffix string " <flags> <payload_len-2>\r\n".
// The payload length passed in includes the 2-byte CRLF terminator, which
// is excluded from the encoded size, matching what a client sent.
// Returns ErrSuffixTooLong rather than truncating if the result would not
// fit in MaxSuffixLen bytes.
func MakeSuffix(flags uint32, payloadLen int) ([]byte, error) {
	suffix := fmt.Sprintf(" %d %d\r\n", flags, payloadLen-2)
	if len(suffix) > MaxSuffixLen {
		return nil, ErrSuffixTooLong
	}
	return []byte(suffix), nil
}

// TotalSize computes the full record size for the given component lengths.
// This is the single sizing function used by the allocator and the store
// writer.
func TotalSize(keyLen, suffixLen, payloadLen int) int {
	return HeaderSize + keyLen + suffixLen + payloadLen
}

// Buf exposes the full backing buffer. The store read path uses it as the
// destination for record bytes; its length is the usable length declared to
// the store.
func (it *Item) Buf() []byte {
	return it.buf
}

// writeHeader fills the fixed header fields.
func (it *Item) writeHeader(keyLen, payloadLen, suffixLen int) {
	it.buf[0] = byte(keyLen)
	binary.LittleEndian.PutUint32(it.buf[1:5], uint32(payloadLen))
	it.buf[5] = byte(suffixLen)
}

// KeyLen returns the key length recorded in the header.
func (it *Item) KeyLen() int {
	return int(it.buf[0])
}

// PayloadLen returns the payload length recorded in the header, terminator
// included.
func (it *Item) PayloadLen() int {
	return int(binary.LittleEndian.Uint32(it.buf[1:5]))
}

// SuffixLen returns the suffix length recorded in the header.
func (it *Item) SuffixLen() int {
	return int(it.buf[5])
}

// Size returns the record's total size computed from its own header fields.
// It is only meaningful once the header has been written, either by the
// allocator or by a completed store read.
func (it *Item) Size() int {
	return TotalSize(it.KeyLen(), it.SuffixLen(), it.PayloadLen())
}

// Key returns the key bytes.
func (it *Item) Key() []byte {
	return it.buf[HeaderSize : HeaderSize+it.KeyLen()]
}

// Suffix returns the encoded suffix bytes.
func (it *Item) Suffix() []byte {
	off := HeaderSize + it.KeyLen()
	return it.buf[off : off+it.SuffixLen()]
}

// Payload returns the payload bytes, trailing terminator included.
func (it *Item) Payload() []byte {
	off := HeaderSize + it.KeyLen() + it.SuffixLen()
	return it.buf[off : off+it.PayloadLen()]
}

// Value returns the payload without its 2-byte terminator.
func (it *Item) Value() []byte {
	p := it.Payload()
	if len(p) < 2 {
		return p
	}
	return p[:len(p)-2]
}

// Bytes returns the complete encoded record, header through payload, sized
// by the header fields. This is exactly what gets written to the backing
// store.
func (it *Item) Bytes() []byte {
	return it.buf[:it.Size()]
}

// Flags parses the flags value back out of the suffix.
func (it *Item) Flags() (uint32, error) {
	var flags uint32
	var size int
	if _, err := fmt.Sscanf(string(it.Suffix()), " %d %d", &flags, &size); err != nil {
		return 0, fmt.Errorf("malformed suffix %q: %w", it.Suffix(), err)
	}
	return flags, nil
}
