package malloc

import "errors"

var (
	// ErrOutOfMemory indicates the heap-growth primitive failed and no
	// free block could satisfy the request. No heap state is mutated on
	// this path.
	ErrOutOfMemory = errors.New("malloc: out of memory")

	// ErrSizeOverflow indicates a Calloc element count and size whose
	// product overflows int64.
	ErrSizeOverflow = errors.New("malloc: allocation size overflow")
)
