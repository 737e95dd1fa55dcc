package malloc

import (
	"github.com/joshuapare/memkit/internal/format"
)

// Ref addresses a block payload as an offset into the arena. NullRef is
// the allocator's null pointer.
type Ref = int64

// NullRef is the null payload reference.
const NullRef = format.NullRef

// Block accessor layer. Together with internal/format this is the only
// code that performs offset arithmetic on the arena; the engine above
// works purely in terms of these accessors. Offsets passed in always
// name a block header.

func blockSize(data []byte, off int64) int64 {
	return int64(format.ReadU64(data, off+format.SizeOffset))
}

func setBlockSize(data []byte, off, size int64) {
	format.PutU64(data, off+format.SizeOffset, uint64(size))
}

func blockIsFree(data []byte, off int64) bool {
	return format.ReadU64(data, off+format.FreeOffset) != 0
}

func setBlockFree(data []byte, off int64, free bool) {
	var v uint64
	if free {
		v = 1
	}
	format.PutU64(data, off+format.FreeOffset, v)
}

func blockNext(data []byte, off int64) int64 {
	return format.ReadI64(data, off+format.NextOffset)
}

func setBlockNext(data []byte, off, next int64) {
	format.PutI64(data, off+format.NextOffset, next)
}

func blockPrev(data []byte, off int64) int64 {
	return format.ReadI64(data, off+format.PrevOffset)
}

func setBlockPrev(data []byte, off, prev int64) {
	format.PutI64(data, off+format.PrevOffset, prev)
}

// writeFooter copies the header's size field into the trailing tag.
// Must be called whenever a block's size changes.
func writeFooter(data []byte, off int64) {
	size := blockSize(data, off)
	format.PutU64(data, off+format.HeaderSize+size, uint64(size))
}

// footerSizeBefore reads the size stored in the footer that ends at off,
// which is the previous block's payload size.
func footerSizeBefore(data []byte, off int64) int64 {
	return int64(format.ReadU64(data, off-format.FooterSize))
}

// nextHeaderOff returns the header offset of the block immediately
// following the block at off. Valid only when that address is below the
// heap top.
func nextHeaderOff(data []byte, off int64) int64 {
	return off + format.HeaderSize + blockSize(data, off) + format.FooterSize
}

// payloadRef converts a header offset to the payload Ref handed out by
// the public surface.
func payloadRef(off int64) Ref {
	return off + format.HeaderSize
}

// headerOff converts a payload Ref back to its block header offset.
func headerOff(ref Ref) int64 {
	return ref - format.HeaderSize
}
