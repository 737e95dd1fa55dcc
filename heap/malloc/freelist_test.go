package malloc

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/joshuapare/memkit/internal/format"
)

func TestFreeListIsLIFO(t *testing.T) {
	a := newTestAllocator(t, 0)

	// Three same-size blocks separated by live guards so freeing them
	// cannot coalesce.
	b1 := mustMalloc(t, a, 64)
	mustMalloc(t, a, 8)
	b2 := mustMalloc(t, a, 64)
	mustMalloc(t, a, 8)
	b3 := mustMalloc(t, a, 64)
	mustMalloc(t, a, 8)

	a.Free(b1)
	a.Free(b2)
	a.Free(b3)

	// First-fit scans from the head, so the most recently freed block
	// wins for an equal-size request.
	assert.Equal(t, b3, mustMalloc(t, a, 64))
	assert.Equal(t, b2, mustMalloc(t, a, 64))
	assert.Equal(t, b1, mustMalloc(t, a, 64))
	assertInvariants(t, a)
}

func TestFirstFitSkipsSmallBlocks(t *testing.T) {
	a := newTestAllocator(t, 0)

	small := mustMalloc(t, a, 16)
	mustMalloc(t, a, 8)
	big := mustMalloc(t, a, 256)
	mustMalloc(t, a, 8)

	a.Free(big)
	a.Free(small) // head of the list, but too small for the request

	got := mustMalloc(t, a, 200)
	assert.Equal(t, big, got, "scan must pass over the small head block")
	assertInvariants(t, a)
}

func TestFirstFitMissGrows(t *testing.T) {
	a := newTestAllocator(t, 0)

	small := mustMalloc(t, a, 16)
	mustMalloc(t, a, 8)
	a.Free(small)

	before := a.Stats().GrowCalls
	mustMalloc(t, a, 512)
	assert.Equal(t, before+1, a.Stats().GrowCalls, "no fit means fresh growth")

	// The small block is still free and still indexed.
	stats := a.Stats()
	assert.Equal(t, 1, stats.FreeBlocks)
	assert.Equal(t, int64(16), stats.FreeBytes)
	assertInvariants(t, a)
}

func TestFreeListMembershipMatchesFlags(t *testing.T) {
	a := newTestAllocator(t, 0)

	refs := make([]Ref, 0, 8)
	for n := 0; n < 8; n++ {
		refs = append(refs, mustMalloc(t, a, 48))
	}
	for i, ref := range refs {
		if i%2 == 0 {
			a.Free(ref)
		}
	}

	// CheckInvariants verifies flag/list lock-step and link symmetry.
	assertInvariants(t, a)

	free := 0
	a.Walk(func(b Block) bool {
		if b.Free {
			free++
		}
		return true
	})
	// Adjacent freed blocks coalesce, so count merged runs: refs 0,2,4,6
	// are separated by live blocks and stay distinct.
	assert.Equal(t, 4, free)
	assert.Equal(t, 4, a.Stats().FreeBlocks)
}

func TestMinimumBlockGeometry(t *testing.T) {
	a := newTestAllocator(t, 0)

	// The smallest possible request still yields a full block.
	ref := mustMalloc(t, a, 1)
	assert.Equal(t, int64(format.MinPayload), int64(len(a.Payload(ref))))
	assert.Equal(t, int64(format.MinBlockSize), a.Stats().HeapSize)
}
