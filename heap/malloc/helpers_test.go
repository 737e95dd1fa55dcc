package malloc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/memkit/heap"
	"github.com/joshuapare/memkit/internal/format"
)

// overhead is the per-block metadata cost: header plus footer.
const overhead = format.HeaderSize + format.FooterSize

// crashPanic is the message value the test crash hook panics with, so
// tests can observe the fail-fast path without killing the process.
type crashPanic string

// newTestAllocator returns an allocator over a fresh arena whose crash
// hook panics instead of exiting. limit 0 means unlimited.
func newTestAllocator(t *testing.T, limit int64) *Allocator {
	t.Helper()
	return New(heap.NewArena(limit), WithCrashFn(func(msg string) {
		panic(crashPanic(msg))
	}))
}

// mustMalloc allocates or fails the test.
func mustMalloc(t *testing.T, a *Allocator, size int64) Ref {
	t.Helper()
	ref, buf, err := a.Malloc(size)
	require.NoError(t, err)
	require.NotEqual(t, NullRef, ref)
	require.GreaterOrEqual(t, int64(len(buf)), size, "granted payload must cover the request")
	return ref
}

// assertInvariants fails the test if any structural invariant is broken.
func assertInvariants(t *testing.T, a *Allocator) {
	t.Helper()
	require.NoError(t, a.CheckInvariants())
}

// fillPayload writes a recognizable pattern derived from seed.
func fillPayload(buf []byte, seed byte) {
	for i := range buf {
		buf[i] = seed + byte(i)
	}
}

// checkPayload verifies the first n bytes of buf carry the pattern.
func checkPayload(t *testing.T, buf []byte, seed byte, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		require.Equal(t, seed+byte(i), buf[i], "payload byte %d", i)
	}
}
