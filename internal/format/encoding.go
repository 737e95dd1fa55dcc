package format

import "encoding/binary"

// Binary encoding utilities for little-endian integers.
//
// All block metadata (header size field, free flag, free-list links, and
// the footer tag) is stored little-endian in the arena. These helpers are
// the only place raw offsets meet raw bytes; everything above them works
// in terms of typed block accessors.

// PutU64 writes a uint64 value to the buffer at the specified offset in little-endian format.
func PutU64(b []byte, off int64, v uint64) {
	binary.LittleEndian.PutUint64(b[off:off+8], v)
}

// ReadU64 reads a uint64 value from the buffer at the specified offset in little-endian format.
func ReadU64(b []byte, off int64) uint64 {
	return binary.LittleEndian.Uint64(b[off : off+8])
}

// PutI64 writes an int64 value to the buffer at the specified offset in little-endian format.
func PutI64(b []byte, off int64, v int64) {
	binary.LittleEndian.PutUint64(b[off:off+8], uint64(v))
}

// ReadI64 reads an int64 value from the buffer at the specified offset in little-endian format.
func ReadI64(b []byte, off int64) int64 {
	return int64(binary.LittleEndian.Uint64(b[off : off+8]))
}
