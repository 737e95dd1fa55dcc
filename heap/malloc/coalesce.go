package malloc

import "github.com/joshuapare/memkit/internal/format"

// Coalescing merges a free block with its physically adjacent neighbors
// so that two free blocks are never left adjacent after a public
// operation completes. Both probes rely on boundary tags: the forward
// probe steps over this block's own footer, the backward probe reads the
// preceding block's footer to find its header.

// coalesce attempts both directions, next before prev. The order
// matters: merging forward first leaves off's address stable, and the
// backward probe reads the footer immediately before off, which the
// forward merge does not move.
func (a *Allocator) coalesce(data []byte, off int64) {
	a.coalesceNext(data, off)
	a.coalescePrev(data, off)
}

// coalesceNext merges the block at off with its following neighbor when
// that neighbor exists and is free. The block at off must be on the free
// list.
func (a *Allocator) coalesceNext(data []byte, off int64) {
	next := nextHeaderOff(data, off)
	if next == a.region.Top() {
		return // off is the last block
	}
	if !blockIsFree(data, next) {
		return
	}

	a.removeFree(data, off)
	a.removeFree(data, next)

	merged := blockSize(data, off) + format.FooterSize + format.HeaderSize + blockSize(data, next)
	setBlockSize(data, off, merged)
	writeFooter(data, off)

	a.insertFree(data, off)
	a.stats.CoalesceForward++
}

// coalescePrev merges the block at off into its preceding neighbor when
// that neighbor exists and is free. The block at off must be on the free
// list. On merge the preceding block absorbs off's bytes and off's
// identity dies with its header.
func (a *Allocator) coalescePrev(data []byte, off int64) {
	if off == a.region.Start() {
		return // off is the first block
	}
	prevSize := footerSizeBefore(data, off)
	prev := off - format.FooterSize - prevSize - format.HeaderSize
	if !blockIsFree(data, prev) {
		return
	}

	a.removeFree(data, off)
	a.removeFree(data, prev)

	merged := prevSize + format.FooterSize + format.HeaderSize + blockSize(data, off)
	setBlockSize(data, prev, merged)
	writeFooter(data, prev)

	a.insertFree(data, prev)
	a.stats.CoalesceBackward++
}
