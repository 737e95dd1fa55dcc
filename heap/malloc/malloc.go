package malloc

import (
	"fmt"
	"os"

	"github.com/joshuapare/memkit/heap"
	"github.com/joshuapare/memkit/internal/format"
)

// Runtime flag for allocation logging - controlled by MEMKIT_LOG_ALLOC env var.
var logAlloc = os.Getenv("MEMKIT_LOG_ALLOC") != ""

// CrashFn receives the diagnostic for an unrecoverable heap corruption.
// The default implementation writes it to stderr and terminates the
// process; tests substitute a panicking hook to observe the crash.
type CrashFn func(msg string)

func defaultCrash(msg string) {
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(2)
}

// Allocator is one independent heap instance: a region of the break it
// owns plus the free-list head. The zero value is not usable; construct
// with New.
type Allocator struct {
	region   *heap.Region
	freeHead int64 // header offset of the free-list head, NullRef when empty
	crash    CrashFn
	stats    Stats
}

// Option configures an Allocator.
type Option func(*Allocator)

// WithCrashFn replaces the corruption crash hook. Intended for tests;
// production callers should let a corrupted allocator terminate the
// process.
func WithCrashFn(fn CrashFn) Option {
	return func(a *Allocator) { a.crash = fn }
}

// New returns an allocator drawing its region from mem. The region is
// claimed lazily: no break is consumed until the first allocation.
func New(mem heap.Memory, opts ...Option) *Allocator {
	a := &Allocator{
		region:   heap.NewRegion(mem),
		freeHead: NullRef,
		crash:    defaultCrash,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Malloc allocates at least size usable bytes and returns the payload
// reference plus a view of the payload. The payload is 8-byte aligned
// and its contents are indeterminate. Returns NullRef with a nil error
// when size is zero or negative, and NullRef with ErrOutOfMemory when
// the break cannot be extended.
func (a *Allocator) Malloc(size int64) (Ref, []byte, error) {
	if size <= 0 {
		return NullRef, nil, nil
	}
	a.stats.AllocCalls++

	need := format.Align(size)
	data := a.region.Bytes()

	off := a.firstFit(data, need)
	if off != NullRef {
		// Reuse a free block, splitting off the tail when viable.
		a.split(data, off, need)
	} else {
		base, err := a.grow(need)
		if err != nil {
			return NullRef, nil, err
		}
		data = a.region.Bytes()
		off = base
		setBlockSize(data, off, need)
		setBlockFree(data, off, false)
		setBlockNext(data, off, NullRef)
		setBlockPrev(data, off, NullRef)
		writeFooter(data, off)
	}

	granted := blockSize(data, off) // may exceed need when a sliver was absorbed
	a.stats.BytesAllocated += granted

	ref := payloadRef(off)
	return ref, data[ref : ref+granted], nil
}

// Calloc allocates a zero-filled region for count elements of size bytes
// each. Returns NullRef with a nil error when either operand is zero or
// negative, and ErrSizeOverflow when count*size overflows.
func (a *Allocator) Calloc(count, size int64) (Ref, []byte, error) {
	if count <= 0 || size <= 0 {
		return NullRef, nil, nil
	}
	total := count * size
	if total/count != size {
		return NullRef, nil, fmt.Errorf("calloc %d x %d: %w", count, size, ErrSizeOverflow)
	}

	ref, buf, err := a.Malloc(total)
	if err != nil {
		return NullRef, nil, err
	}
	// Reused blocks carry stale bytes; zero the whole granted payload.
	clear(buf)
	return ref, buf, nil
}

// Free releases the block behind ref for reuse and merges it with any
// adjacent free neighbors. Freeing NullRef is a no-op. ref must have
// been returned by this allocator and not yet freed.
func (a *Allocator) Free(ref Ref) {
	if ref == NullRef {
		return
	}
	a.stats.FreeCalls++

	data := a.region.Bytes()
	off := headerOff(ref)
	a.stats.BytesFreed += blockSize(data, off)

	a.insertFree(data, off)
	a.coalesce(data, off)
}

// Realloc resizes the block behind ref to at least size bytes,
// preserving the first min(old, new) payload bytes.
//
// A NullRef behaves as Malloc(size); a size of zero behaves as Free(ref)
// and returns NullRef. Shrinking returns ref unchanged without splitting
// off the excess — a deliberate simplicity/fragmentation tradeoff.
// Growing first tries to absorb a free block immediately to the right;
// otherwise it falls back to allocate-copy-free. If the fallback
// allocation fails the original block is left entirely untouched and
// ErrOutOfMemory is returned.
func (a *Allocator) Realloc(ref Ref, size int64) (Ref, []byte, error) {
	if ref == NullRef {
		return a.Malloc(size)
	}
	if size <= 0 {
		a.Free(ref)
		return NullRef, nil, nil
	}
	a.stats.ReallocCalls++

	data := a.region.Bytes()
	off := headerOff(ref)
	oldSize := blockSize(data, off)
	need := format.Align(size)

	if need <= oldSize {
		a.stats.ReallocInPlace++
		return ref, data[ref : ref+oldSize], nil
	}

	// Probe the physically-following block for in-place growth.
	next := nextHeaderOff(data, off)
	if next < a.region.Top() && blockIsFree(data, next) {
		combined := oldSize + format.HeaderSize + format.FooterSize + blockSize(data, next)
		if combined >= need {
			a.removeFree(data, next)
			setBlockSize(data, off, combined)
			writeFooter(data, off)
			a.stats.ReallocInPlace++
			a.stats.BytesAllocated += combined - oldSize
			return ref, data[ref : ref+combined], nil
		}
	}

	newRef, buf, err := a.Malloc(size)
	if err != nil {
		return NullRef, nil, err
	}
	data = a.region.Bytes() // Malloc may have grown the heap
	copy(buf, data[ref:ref+oldSize])
	a.Free(ref)
	a.stats.ReallocMoved++
	return newRef, buf, nil
}

// Payload returns the current payload view for ref. Use it to refetch a
// view after an operation that grew the heap. Returns nil for NullRef.
func (a *Allocator) Payload(ref Ref) []byte {
	if ref == NullRef {
		return nil
	}
	data := a.region.Bytes()
	return data[ref : ref+blockSize(data, headerOff(ref))]
}

// grow extends the break by one block's worth of bytes for a payload of
// need and returns the new block's header offset. Growth failure
// surfaces as ErrOutOfMemory; nothing is mutated on that path.
func (a *Allocator) grow(need int64) (int64, error) {
	total := format.HeaderSize + need + format.FooterSize
	base, err := a.region.Grow(total)
	if err != nil {
		if logAlloc {
			fmt.Fprintf(os.Stderr, "[MALLOC] grow %d bytes failed: %v\n", total, err)
		}
		return 0, fmt.Errorf("%w: extend break by %d: %v", ErrOutOfMemory, total, err)
	}
	a.stats.GrowCalls++
	a.stats.GrowBytes += total
	return base, nil
}
