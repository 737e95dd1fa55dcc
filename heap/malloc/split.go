package malloc

import "github.com/joshuapare/memkit/internal/format"

// split grants the free block at off to the caller, carving off a
// right-hand remainder block when the leftover is worth keeping. need
// must already be aligned and no larger than the block's payload.
//
// A remainder smaller than a minimum viable block (header, 8-byte
// payload, footer) would be an unusable sliver, so the whole block is
// granted as-is and the caller simply receives more usable bytes than
// requested.
func (a *Allocator) split(data []byte, off, need int64) {
	leftover := blockSize(data, off) - need
	if leftover < format.MinBlockSize {
		a.removeFree(data, off)
		return
	}

	a.removeFree(data, off)
	setBlockSize(data, off, need)
	writeFooter(data, off)

	rem := off + format.HeaderSize + need + format.FooterSize
	setBlockSize(data, rem, leftover-format.HeaderSize-format.FooterSize)
	writeFooter(data, rem)
	a.insertFree(data, rem)
	a.stats.SplitCount++

	// The remainder may sit directly against a block freed earlier;
	// merge forward so the no-adjacent-free invariant holds.
	a.coalesceNext(data, rem)
}
