//go:build linux || freebsd

package heap

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// SystemArena is a Memory backed by one anonymous mapping reserved up
// front. The break advances inside the reservation, so Bytes never
// relocates and payload views stay valid across growth. The reservation
// size is the hard break limit.
type SystemArena struct {
	data []byte
	brk  int64
}

// NewSystem reserves an anonymous mapping of reserve bytes and returns a
// SystemArena whose break starts at zero.
func NewSystem(reserve int64) (*SystemArena, error) {
	if reserve <= 0 {
		return nil, fmt.Errorf("heap: invalid reservation size %d", reserve)
	}
	data, err := unix.Mmap(
		-1, 0, int(reserve),
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_PRIVATE|unix.MAP_ANON,
	)
	if err != nil {
		return nil, fmt.Errorf("heap: reserve %d bytes: %w", reserve, err)
	}
	return &SystemArena{data: data}, nil
}

// Sbrk advances the break inside the reservation and returns the old break.
func (s *SystemArena) Sbrk(n int64) (int64, error) {
	if n < 0 {
		return 0, ErrNegativeGrowth
	}
	if s.brk+n > int64(len(s.data)) {
		return 0, ErrBreakLimit
	}
	old := s.brk
	s.brk += n
	return old, nil
}

// Bytes returns the mapped window below the break.
func (s *SystemArena) Bytes() []byte { return s.data[:s.brk] }

// Close releases the reservation. The arena must not be used afterwards.
func (s *SystemArena) Close() error {
	if s.data == nil {
		return nil
	}
	err := unix.Munmap(s.data)
	s.data = nil
	return err
}
