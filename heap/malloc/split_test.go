package malloc

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/joshuapare/memkit/internal/format"
)

func TestSplitCarvesRemainder(t *testing.T) {
	a := newTestAllocator(t, 0)

	big := mustMalloc(t, a, 256)
	mustMalloc(t, a, 8) // guard so the remainder has an allocated right neighbor
	a.Free(big)

	// Reuse a small slice of the 256-byte block.
	got := mustMalloc(t, a, 64)
	assert.Equal(t, big, got, "head of the split serves the request")
	assert.Equal(t, 1, a.Stats().SplitCount)

	// Remainder: 256 - 64 leftover, minus one header/footer pair for the
	// new block's own tags.
	wantRemSize := int64(256 - 64 - overhead)
	wantRemRef := big + 64 + format.FooterSize + format.HeaderSize

	stats := a.Stats()
	assert.Equal(t, 1, stats.FreeBlocks)
	assert.Equal(t, wantRemSize, stats.FreeBytes)

	// The remainder is independently allocatable at the expected offset.
	rem := mustMalloc(t, a, wantRemSize)
	assert.Equal(t, wantRemRef, rem, "remainder block at the expected offset")
	assert.Equal(t, 2, a.Stats().GrowCalls, "both requests served without new growth beyond setup")
	assertInvariants(t, a)
}

func TestSplitAbsorbsSliver(t *testing.T) {
	a := newTestAllocator(t, 0)

	// A remainder below header+footer+8 bytes is not worth a block.
	big := mustMalloc(t, a, 64+format.MinBlockSize-8)
	mustMalloc(t, a, 8)
	a.Free(big)

	ref, buf, err := a.Malloc(64)
	assert.NoError(t, err)
	assert.Equal(t, big, ref)
	assert.Equal(t, int64(64+format.MinBlockSize-8), int64(len(buf)),
		"sliver is absorbed into the granted payload")
	assert.Equal(t, 0, a.Stats().SplitCount)
	assert.Equal(t, 0, a.Stats().FreeBlocks, "no remainder block may exist")
	assertInvariants(t, a)
}

func TestSplitKeepsMinimumRemainder(t *testing.T) {
	a := newTestAllocator(t, 0)

	// Leftover of exactly header+footer+8 is the smallest viable
	// remainder and must be kept.
	big := mustMalloc(t, a, 64+format.MinBlockSize)
	mustMalloc(t, a, 8)
	a.Free(big)

	got := mustMalloc(t, a, 64)
	assert.Equal(t, big, got)
	assert.Equal(t, 1, a.Stats().SplitCount)

	stats := a.Stats()
	assert.Equal(t, 1, stats.FreeBlocks)
	assert.Equal(t, int64(format.MinPayload), stats.FreeBytes, "remainder keeps the 8-byte minimum payload")
	assertInvariants(t, a)
}

func TestSplitRemainderMergesForward(t *testing.T) {
	a := newTestAllocator(t, 0)

	first := mustMalloc(t, a, 128)
	second := mustMalloc(t, a, 128)
	mustMalloc(t, a, 8)

	// Free both; they coalesce into one 128+128+overhead block.
	a.Free(second)
	a.Free(first)

	// Splitting a small head off the merged block must leave exactly one
	// remainder spanning the rest of it.
	got := mustMalloc(t, a, 32)
	assert.Equal(t, first, got)

	stats := a.Stats()
	assert.Equal(t, 1, stats.FreeBlocks)
	assert.Equal(t, int64(128+128+overhead-32-overhead), stats.FreeBytes)
	assertInvariants(t, a)
}

func TestSplitRemainderCoalescesWithLaterFree(t *testing.T) {
	a := newTestAllocator(t, 0)

	head := mustMalloc(t, a, 64)
	tail := mustMalloc(t, a, 64)
	mustMalloc(t, a, 8)

	// Free tail then head, then take a small piece of the merged block.
	// The remainder's forward merge probe must stop cleanly at its
	// allocated right neighbor and leave a single free block behind.
	a.Free(tail)
	a.Free(head)

	mustMalloc(t, a, 16)
	assertInvariants(t, a)

	stats := a.Stats()
	assert.Equal(t, 1, stats.FreeBlocks, "remainder must stay a single coalesced block")
}
