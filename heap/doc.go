// Package heap models the process heap region the allocator manages.
//
// It separates two concerns:
//
//   - Memory: the OS heap-growth primitive, treated as a black box. It
//     extends a contiguous break and exposes the bytes below it. Arena
//     is the slice-backed implementation used by tests and most callers;
//     SystemArena reserves address space with mmap on platforms that
//     support it.
//
//   - Region: bookkeeping for the managed span. It remembers where the
//     heap started and where the current top (break) is, and requests
//     growth from the Memory. The region is initialized lazily on first
//     growth and never shrinks.
//
// Nothing in this package knows about blocks, headers, or free lists;
// that layering belongs to heap/malloc.
package heap
