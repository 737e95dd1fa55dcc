package malloc

import (
	"fmt"

	"github.com/joshuapare/memkit/internal/format"
)

// Block describes one block during a heap walk.
type Block struct {
	Ref  Ref   // payload reference
	Size int64 // payload bytes
	Free bool
}

// Walk visits every block from the heap start to the heap top in address
// order, following boundary tags. The callback returns false to stop the
// walk early. Walk must not be interleaved with allocator mutations.
func (a *Allocator) Walk(fn func(Block) bool) {
	data := a.region.Bytes()
	top := a.region.Top()
	for off := a.region.Start(); off < top; off = nextHeaderOff(data, off) {
		b := Block{
			Ref:  payloadRef(off),
			Size: blockSize(data, off),
			Free: blockIsFree(data, off),
		}
		if !fn(b) {
			return
		}
	}
}

// CheckInvariants verifies the structural invariants of the heap and the
// free list. It is meant for tests and diagnostics, not hot paths: it
// walks every block and the whole free list.
//
// Checked: blocks tile [start, top) exactly with 8-aligned sizes of at
// least the minimum payload; every footer matches its header; no two
// free blocks are adjacent; the free list is symmetric and its
// membership matches the per-block free flags exactly.
func (a *Allocator) CheckInvariants() error {
	data := a.region.Bytes()
	start, top := a.region.Start(), a.region.Top()

	flagged := make(map[int64]bool) // free blocks found by address walk
	prevFree := false

	for off := start; off < top; {
		size := blockSize(data, off)
		if size < format.MinPayload || size%format.Alignment != 0 {
			return fmt.Errorf("block %#x: invalid payload size %d", off, size)
		}
		end := off + format.HeaderSize + size + format.FooterSize
		if end > top {
			return fmt.Errorf("block %#x: extends past heap top (%#x > %#x)", off, end, top)
		}
		if footer := int64(format.ReadU64(data, off+format.HeaderSize+size)); footer != size {
			return fmt.Errorf("block %#x: footer size %d differs from header size %d", off, footer, size)
		}
		free := blockIsFree(data, off)
		if free {
			if prevFree {
				return fmt.Errorf("block %#x: adjacent free blocks (coalescing missed)", off)
			}
			flagged[off] = true
		}
		prevFree = free
		off = end
	}

	// Free-list traversal must be symmetric and must cover exactly the
	// blocks flagged free.
	listed := make(map[int64]bool)
	prev := NullRef
	for off := a.freeHead; off != NullRef; off = blockNext(data, off) {
		if listed[off] {
			return fmt.Errorf("free list: cycle through block %#x", off)
		}
		listed[off] = true
		if !flagged[off] {
			return fmt.Errorf("free list: block %#x listed but not flagged free", off)
		}
		if got := blockPrev(data, off); got != prev {
			return fmt.Errorf("free list: block %#x back link %#x, want %#x", off, got, prev)
		}
		prev = off
	}
	if len(listed) != len(flagged) {
		return fmt.Errorf("free list: %d blocks listed, %d flagged free", len(listed), len(flagged))
	}
	return nil
}
