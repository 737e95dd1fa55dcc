package malloc

import (
	"fmt"
)

// The free list is an unordered doubly-linked set of free blocks, linked
// through the next/prev fields of their headers and anchored at
// Allocator.freeHead. Insertion is at the head (O(1), LIFO); search is a
// linear first-fit scan. The list and the per-block free flag are kept in
// lock-step: insertFree and removeFree are the only operations that touch
// either.

// insertFree marks the block free and links it at the head of the list.
func (a *Allocator) insertFree(data []byte, off int64) {
	setBlockFree(data, off, true)
	setBlockPrev(data, off, NullRef)
	setBlockNext(data, off, a.freeHead)
	if a.freeHead != NullRef {
		setBlockPrev(data, a.freeHead, off)
	}
	a.freeHead = off
}

// removeFree unlinks the block and marks it allocated.
//
// Before any pointer is written it verifies the doubly-linked symmetry
// invariant: the successor's back link and the predecessor's forward link
// must both reference this block. A violation means the free list has
// been overwritten and the allocator cannot be trusted to continue; the
// crash hook is invoked and, by default, the process terminates.
func (a *Allocator) removeFree(data []byte, off int64) {
	next := blockNext(data, off)
	prev := blockPrev(data, off)

	if next != NullRef && blockPrev(data, next) != off {
		a.crash(fmt.Sprintf(
			"malloc: corrupted heap: block %#x forward neighbor %#x does not link back",
			off, next))
		return
	}
	if prev != NullRef && blockNext(data, prev) != off {
		a.crash(fmt.Sprintf(
			"malloc: corrupted heap: block %#x backward neighbor %#x does not link forward",
			off, prev))
		return
	}

	setBlockFree(data, off, false)
	if a.freeHead == off {
		a.freeHead = next
	}
	if next != NullRef {
		setBlockPrev(data, next, prev)
	}
	if prev != NullRef {
		setBlockNext(data, prev, next)
	}
	setBlockNext(data, off, NullRef)
	setBlockPrev(data, off, NullRef)
}

// firstFit returns the header offset of the first free block whose
// payload holds at least need bytes, or NullRef. First-fit keeps the scan
// trivial at the cost of fragmentation relative to best-fit; the free
// list is unordered so "first" means most recently freed.
func (a *Allocator) firstFit(data []byte, need int64) int64 {
	for off := a.freeHead; off != NullRef; off = blockNext(data, off) {
		if blockSize(data, off) >= need {
			return off
		}
	}
	return NullRef
}
