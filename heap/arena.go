package heap

// Arena is a slice-backed Memory. The break is the slice length; growth
// appends zeroed bytes. An optional limit caps the break, which is how
// tests and callers induce out-of-memory conditions deterministically.
type Arena struct {
	data  []byte
	limit int64
}

// NewArena returns an Arena whose break may not exceed limit bytes.
// A limit of 0 or less means unlimited.
func NewArena(limit int64) *Arena {
	return &Arena{limit: limit}
}

// Sbrk extends the break by n bytes and returns the old break.
func (a *Arena) Sbrk(n int64) (int64, error) {
	if n < 0 {
		return 0, ErrNegativeGrowth
	}
	old := int64(len(a.data))
	if n == 0 {
		return old, nil
	}
	if a.limit > 0 && old+n > a.limit {
		return 0, ErrBreakLimit
	}
	a.data = append(a.data, make([]byte, n)...)
	return old, nil
}

// Bytes returns the current window below the break.
func (a *Arena) Bytes() []byte { return a.data }
