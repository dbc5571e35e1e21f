// Package rowcodec implements the compact binary row envelope (component
// C4): a self-describing, bounds-checked record format with a null map,
// fixed-size fields, and a variable-length offset table, laid out exactly
// as described by the wire format table in this module's specification.
//
//	+0:  record length (int32, little-endian)
//	+4:  leading signature 'A','B'
//	+6:  field count (uint16)
//	+8:  rowDefId (int32)
//	+12: null bitmap, ceil(fieldCount/8) bytes, LSB-first
//	+M:  fixed-size field values and variable-length offset slots,
//	     interleaved in schema order (a null field consumes no bytes at
//	     all -- later fields shift left around it); one offset slot per
//	     non-null variable field, width chosen from the cumulative maximum
//	     size seen so far but storing the cumulative actual length. Fixed
//	     fields are not grouped ahead of the offset slots.
//	+Q:  variable-length field payloads, in schema order
//	-6:  trailing signature 'B','A'
//	-4:  trailing record length (int32, little-endian, must equal +0)
package rowcodec

import "storemy/pkg/qerrors"

const (
	offsetLengthA    = 0
	offsetSignatureA = 4
	offsetFieldCount = 6
	offsetRowDefID   = 8
	offsetNullMap    = 12

	// offsets relative to the end of the record
	trailerSignatureB = 6 // signature occupies [rowEnd-6, rowEnd-4)
	trailerLengthB    = 4 // length occupies [rowEnd-4, rowEnd)

	// MinimumRecordLength is the smallest possible envelope: header (12
	// bytes) + a zero-length null map slot + trailer (6 bytes), rounded
	// to the format's fixed floor.
	MinimumRecordLength = 18

	// MaximumRecordLength bounds a single row's serialized size.
	MaximumRecordLength = 8 * 1024 * 1024

	// createRowInitialSize is the starting buffer size BuildRow grows
	// from when growBuffer is set and no buffer was supplied.
	createRowInitialSize = 500
)

var (
	signatureA = [2]byte{'A', 'B'}
	signatureB = [2]byte{'B', 'A'}
)

// Buffer owns (or borrows) the byte slice rows are built into. An owned
// buffer may grow on demand; a borrowed (wrapped) buffer is immutable in
// size and BuildRow fails with a BufferImmutableError if it overflows.
type Buffer struct {
	bytes       []byte
	bufferStart int
	bufferEnd   int
	owned       bool
}

// NewBuffer allocates an owned buffer of the given size, growable on
// overflow during BuildRow.
func NewBuffer(size int) *Buffer {
	return &Buffer{bytes: make([]byte, size), bufferStart: 0, bufferEnd: size, owned: true}
}

// WrapBuffer borrows an existing byte slice. The buffer cannot grow;
// BuildRow against it fails with BufferImmutableError if the row does not
// fit.
func WrapBuffer(b []byte) *Buffer {
	return &Buffer{bytes: b, bufferStart: 0, bufferEnd: len(b), owned: false}
}

// Bytes returns the buffer's full backing slice.
func (b *Buffer) Bytes() []byte { return b.bytes }

// Len returns the buffer's usable length (bufferEnd - bufferStart).
func (b *Buffer) Len() int { return b.bufferEnd - b.bufferStart }

func (b *Buffer) grow() error {
	if !b.owned {
		return qerrors.BufferImmutableError("buffer is borrowed and cannot grow")
	}
	newSize := len(b.bytes) * 2
	if newSize == 0 {
		newSize = createRowInitialSize
	}
	grown := make([]byte, newSize)
	copy(grown, b.bytes)
	b.bytes = grown
	b.bufferEnd = newSize
	return nil
}
