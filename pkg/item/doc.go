// Package item implements the in-memory representation of a cached record
// and the recycling allocator that backs it.
//
// # Record Format
//
// An Item is a single variable-length buffer holding a complete record:
//
//	[KeyLen(1)][PayloadLen(4)][SuffixLen(1)][Key][Suffix][Payload]
//
// Fields:
//   - KeyLen: 8-bit key length in bytes (keys are at most 255 bytes)
//   - PayloadLen: 32-bit payload length in bytes, including the trailing
//     2-byte CRLF terminator (little-endian)
//   - SuffixLen: 8-bit suffix length in bytes
//   - Key: raw key bytes, not null-terminated
//   - Suffix: ASCII string of the form " <flags> <payload_len-2>\r\n",
//     at most 40 bytes
//   - Payload: the value bytes; the final 2 bytes are a CRLF terminator
//     appended by the caller, never regenerated here
//
// The total record size is: 6 bytes (header) + KeyLen + SuffixLen + PayloadLen.
// TotalSize is the single source of truth for that computation; both the
// allocator (buffer sizing) and the store writer (record sizing) use it.
//
// The whole buffer, header included, is what gets written to and read back
// from the backing store, so a record read from the store arrives with its
// header fields intact.
//
// # Buffer Recycling
//
// Buffers of exactly the configured standard size are recycled through a
// BufferPool, a bounded LIFO freelist. Records larger than the standard size
// bypass the pool entirely and are left to the garbage collector. The
// Allocator routes both the filled and raw allocation paths through the same
// size threshold.
package item
