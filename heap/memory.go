package heap

import "errors"

var (
	// ErrBreakLimit indicates the memory could not extend its break any
	// further (address-space or configured-limit exhaustion).
	ErrBreakLimit = errors.New("heap: break limit exceeded")

	// ErrNegativeGrowth indicates a caller asked the break to move
	// backward. The heap never shrinks.
	ErrNegativeGrowth = errors.New("heap: negative growth")
)

// Memory is the OS heap-growth primitive the allocator collaborates with.
//
// Sbrk extends the contiguous break by n bytes and returns the offset the
// extension starts at (the old break). Sbrk(0) reads the current break
// without moving it. On failure the break is unchanged and an error is
// returned; no sentinel offsets are used.
//
// Bytes returns the current window below the break. Growth may relocate
// the backing storage, so callers must refetch after any Sbrk that moved
// the break.
type Memory interface {
	Sbrk(n int64) (int64, error)
	Bytes() []byte
}
