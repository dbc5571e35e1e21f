// Package primitives holds the low-level byte-width identifiers and the
// little-endian get/put helpers the row wire format is built on.
package primitives

import "fmt"

// GetUint reads an unsigned little-endian integer of the given byte width
// (1, 2, 3, 4, or 8) starting at offset in buf.
func GetUint(buf []byte, offset, width int) uint64 {
	var v uint64
	for i := 0; i < width; i++ {
		v |= uint64(buf[offset+i]) << (8 * i)
	}
	return v
}

// PutUint writes v as an unsigned little-endian integer of the given byte
// width starting at offset in buf. It panics if v does not fit width bytes;
// that is a caller programming error, not a data condition.
func PutUint(buf []byte, offset, width int, v uint64) {
	if width < 8 && v>>(8*uint(width)) != 0 {
		panic(fmt.Sprintf("primitives: value %d does not fit in %d bytes", v, width))
	}
	for i := 0; i < width; i++ {
		buf[offset+i] = byte(v >> (8 * i))
	}
}

// GetInt32 reads a signed little-endian 32-bit integer.
func GetInt32(buf []byte, offset int) int32 {
	return int32(GetUint(buf, offset, 4))
}

// PutInt32 writes a signed little-endian 32-bit integer.
func PutInt32(buf []byte, offset int, v int32) {
	PutUint(buf, offset, 4, uint64(uint32(v)))
}

// GetUint16 reads an unsigned little-endian 16-bit integer.
func GetUint16(buf []byte, offset int) uint16 {
	return uint16(GetUint(buf, offset, 2))
}

// PutUint16 writes an unsigned little-endian 16-bit integer.
func PutUint16(buf []byte, offset int, v uint16) {
	PutUint(buf, offset, 2, uint64(v))
}

// GetChar reads a 2-byte ASCII signature character pair, e.g. "AB".
func GetChar(buf []byte, offset int) [2]byte {
	return [2]byte{buf[offset], buf[offset+1]}
}

// PutChar writes a 2-byte ASCII signature character pair.
func PutChar(buf []byte, offset int, c [2]byte) {
	buf[offset] = c[0]
	buf[offset+1] = c[1]
}

// VarWidth returns the number of bytes (0, 1, 2, or 3) needed to represent
// x as an unsigned little-endian integer, the width classification used for
// the row format's variable-length offset table slots.
func VarWidth(x uint64) int {
	switch {
	case x == 0:
		return 0
	case x <= 0xFF:
		return 1
	case x <= 0xFFFF:
		return 2
	default:
		return 3
	}
}
