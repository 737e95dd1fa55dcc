//go:build !linux && !freebsd

package heap

// SystemArena falls back to a slice-backed arena on platforms without the
// mmap reservation path. The reserve size becomes the break limit, so the
// failure behavior matches the mapped implementation.
type SystemArena struct {
	*Arena
}

// NewSystem returns a slice-backed SystemArena capped at reserve bytes.
func NewSystem(reserve int64) (*SystemArena, error) {
	return &SystemArena{Arena: NewArena(reserve)}, nil
}

// Close is a no-op on the fallback implementation.
func (s *SystemArena) Close() error { return nil }
