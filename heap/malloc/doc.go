// Package malloc implements a first-fit boundary-tag heap allocator over
// a contiguous region grown on demand from a heap.Memory.
//
// # Overview
//
// The allocator provides the classic four-function contract — Malloc,
// Calloc, Free, Realloc — on top of one engine: a block layout with
// boundary tags, an unordered doubly-linked free list, exhaustive
// coalescing of adjacent free blocks, and splitting of oversized free
// blocks. The design favors a small, auditable first-fit engine over
// throughput-optimized allocator structures: no size classes, no
// best-fit, no deferred coalescing.
//
// # Block Layout
//
// Every block is a contiguous [Header][Payload][Footer] span. The header
// holds the payload size, the free flag, and the free-list links; the
// footer duplicates the size so the preceding block can be found by
// stepping backward. Blocks tile the region exhaustively — every byte
// between the heap start and the heap top belongs to exactly one block.
//
// # References
//
// Payloads are addressed by Ref, an int64 offset into the arena, with
// NullRef standing in for the null pointer. Offsets rather than raw
// pointers keep all address arithmetic inside one audited layer
// (internal/format plus block.go) and make an Allocator an ordinary
// value: multiple independent instances can coexist and be tested in
// isolation.
//
// # Usage Example
//
//	a := malloc.New(heap.NewArena(0))
//
//	ref, buf, err := a.Malloc(256)
//	if err != nil {
//	    return err
//	}
//	copy(buf, payload)
//
//	// Later, release the block for reuse.
//	a.Free(ref)
//
// Payload slices returned by Malloc, Calloc, and Realloc alias the arena
// and are valid until the next operation that grows the heap; refetch
// with Payload after growth.
//
// # Corruption Policy
//
// Unlinking a block from the free list first verifies that its
// neighbors' links point back at it. A violation means the free list has
// been overwritten — by a heap overflow or an exploit attempt — and is
// unrecoverable by policy: the allocator reports a diagnostic and
// terminates the process rather than continue on corrupted state. The
// check covers link symmetry only; it does not detect size-field
// tampering or use-after-free.
//
// # Thread Safety
//
// Allocator instances are not thread-safe and the engine has no locking
// discipline. If concurrent use is required, wrap the entire public
// surface in one coarse lock; per-block locking cannot work because
// coalescing and splitting mutate several blocks' linkage as one step.
package malloc
