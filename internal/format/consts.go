package format

// Block geometry for the boundary-tag heap layout.
//
// Every block is laid out contiguously in the arena:
//
//	[Header (32 bytes)][Payload (size bytes, 8-aligned)][Footer (8 bytes)]
//
// Blocks tile the region exhaustively from the heap start to the heap top;
// there are no gaps between a block's footer and the next block's header.
const (
	// Alignment is the payload alignment and size granularity in bytes.
	Alignment = 8

	// AlignmentMask is used by Align to round sizes up to Alignment.
	AlignmentMask = Alignment - 1

	// HeaderSize is the total size of a block header in bytes.
	HeaderSize = 32

	// FooterSize is the size of the trailing boundary tag in bytes.
	// The footer duplicates the header's size field so the preceding
	// block can be located by stepping backward.
	FooterSize = 8

	// MinPayload is the smallest payload worth carving into its own
	// block. A split that would leave less than this is absorbed by
	// the allocation instead.
	MinPayload = 8

	// MinBlockSize is the smallest viable block: header, minimum
	// payload, and footer.
	MinBlockSize = HeaderSize + MinPayload + FooterSize
)

// Header field offsets, relative to the block's header address.
const (
	// SizeOffset holds the payload size in bytes (uint64, multiple of 8).
	SizeOffset = 0

	// FreeOffset holds the free flag (uint64, 0 = allocated, 1 = free).
	FreeOffset = 8

	// NextOffset holds the free-list forward link (int64 ref, NullRef
	// when absent). Meaningful only while the block is free.
	NextOffset = 16

	// PrevOffset holds the free-list back link (int64 ref, NullRef when
	// absent). Meaningful only while the block is free.
	PrevOffset = 24
)

// NullRef is the reserved "no block" reference. Offset 0 is a valid block
// address (the first block sits at the heap start), so the null sentinel
// must be out of band.
const NullRef int64 = -1
