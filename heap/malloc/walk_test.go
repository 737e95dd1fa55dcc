package malloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/memkit/internal/format"
)

func TestWalkVisitsBlocksInAddressOrder(t *testing.T) {
	a := newTestAllocator(t, 0)

	refs := []Ref{
		mustMalloc(t, a, 32),
		mustMalloc(t, a, 64),
		mustMalloc(t, a, 16),
	}
	a.Free(refs[1])

	var seen []Block
	a.Walk(func(b Block) bool {
		seen = append(seen, b)
		return true
	})

	require.Len(t, seen, 3)
	assert.Equal(t, refs[0], seen[0].Ref)
	assert.Equal(t, refs[1], seen[1].Ref)
	assert.Equal(t, refs[2], seen[2].Ref)
	assert.False(t, seen[0].Free)
	assert.True(t, seen[1].Free)
	assert.False(t, seen[2].Free)

	// Blocks must tile the region exactly.
	var total int64
	for _, b := range seen {
		total += b.Size + overhead
	}
	assert.Equal(t, a.Stats().HeapSize, total)
}

func TestWalkEarlyStop(t *testing.T) {
	a := newTestAllocator(t, 0)
	mustMalloc(t, a, 8)
	mustMalloc(t, a, 8)
	mustMalloc(t, a, 8)

	count := 0
	a.Walk(func(Block) bool {
		count++
		return count < 2
	})
	assert.Equal(t, 2, count)
}

func TestWalkEmptyHeap(t *testing.T) {
	a := newTestAllocator(t, 0)
	a.Walk(func(Block) bool {
		t.Fatal("walk over an empty heap must not visit anything")
		return false
	})
}

func TestCheckInvariantsDetectsFooterMismatch(t *testing.T) {
	a := newTestAllocator(t, 0)
	ref := mustMalloc(t, a, 64)
	mustMalloc(t, a, 8)

	// Clobber the footer tag the way a payload overflow would.
	data := a.region.Bytes()
	format.PutU64(data, headerOff(ref)+format.HeaderSize+64, 9999)

	err := a.CheckInvariants()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "footer size")
}

func TestCheckInvariantsDetectsFlagDrift(t *testing.T) {
	a := newTestAllocator(t, 0)
	ref := mustMalloc(t, a, 64)
	mustMalloc(t, a, 8)

	// Flag a block free without ever inserting it into the list.
	setBlockFree(a.region.Bytes(), headerOff(ref), true)

	err := a.CheckInvariants()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "flagged")
}

func TestStatsCountersAccumulate(t *testing.T) {
	a := newTestAllocator(t, 0)

	refA := mustMalloc(t, a, 64)
	refB := mustMalloc(t, a, 64)
	mustMalloc(t, a, 8)
	a.Free(refA)
	a.Free(refB)                     // merges backward into A
	refA = mustMalloc(t, a, 32)      // splits the merged block
	_, _, err := a.Realloc(refA, 16) // shrink, in place
	require.NoError(t, err)

	stats := a.Stats()
	assert.Equal(t, 4, stats.AllocCalls)
	assert.Equal(t, 2, stats.FreeCalls)
	assert.Equal(t, 1, stats.ReallocCalls)
	assert.Equal(t, 1, stats.ReallocInPlace)
	assert.Equal(t, 1, stats.CoalesceBackward)
	assert.Equal(t, 1, stats.SplitCount)
	assert.Equal(t, 3, stats.GrowCalls)
	assert.Positive(t, stats.FreeBytes)
}
