package heap

import "fmt"

// Region tracks the span of the break the allocator owns: where it
// started and where it currently ends. It is created lazily: start and
// top are captured from the memory's break on the first Grow, so any
// bytes already below the break when the allocator attaches are left
// alone.
type Region struct {
	mem         Memory
	start       int64
	top         int64
	initialized bool
}

// NewRegion returns a Region over mem. No break is consumed until the
// first Grow.
func NewRegion(mem Memory) *Region {
	return &Region{mem: mem}
}

// Start returns the offset of the first managed byte. Zero until the
// first Grow.
func (r *Region) Start() int64 { return r.start }

// Top returns the current break of the managed span. Zero until the
// first Grow.
func (r *Region) Top() int64 { return r.top }

// Size returns the number of managed bytes.
func (r *Region) Size() int64 { return r.top - r.start }

// Bytes returns the memory window covering the region.
func (r *Region) Bytes() []byte { return r.mem.Bytes() }

// Grow extends the break by extra bytes and returns the offset the
// extension starts at. On failure the tracked bounds are unchanged and
// the memory's error is propagated.
func (r *Region) Grow(extra int64) (int64, error) {
	if !r.initialized {
		brk, err := r.mem.Sbrk(0)
		if err != nil {
			return 0, fmt.Errorf("heap: read initial break: %w", err)
		}
		r.start, r.top = brk, brk
		r.initialized = true
	}
	base, err := r.mem.Sbrk(extra)
	if err != nil {
		return 0, err
	}
	r.top = base + extra
	return base, nil
}
