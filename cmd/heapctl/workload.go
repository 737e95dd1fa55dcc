package main

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/joshuapare/memkit/heap"
	"github.com/joshuapare/memkit/heap/malloc"
)

// workloadConfig describes a synthetic allocation workload.
type workloadConfig struct {
	Ops     int   // number of operations to run
	Seed    int64 // RNG seed, for reproducible runs
	MaxSize int64 // largest single allocation in bytes
	Limit   int64 // arena break limit, 0 = unlimited
}

// runWorkload drives an allocator with a seeded random mix of malloc,
// calloc, free, and realloc and returns it with roughly half the blocks
// still live. Out-of-memory from the configured limit is tolerated and
// counted; any other error aborts.
func runWorkload(cfg workloadConfig) (*malloc.Allocator, int, error) {
	rng := rand.New(rand.NewSource(cfg.Seed))
	a := malloc.New(heap.NewArena(cfg.Limit))

	live := make([]malloc.Ref, 0, cfg.Ops/2)
	oom := 0

	for i := 0; i < cfg.Ops; i++ {
		switch op := rng.Intn(10); {
		case op < 5 || len(live) == 0: // malloc
			size := rng.Int63n(cfg.MaxSize) + 1
			ref, _, err := a.Malloc(size)
			if err != nil {
				if errors.Is(err, malloc.ErrOutOfMemory) {
					oom++
					continue
				}
				return nil, oom, fmt.Errorf("op %d: malloc(%d): %w", i, size, err)
			}
			live = append(live, ref)

		case op < 6: // calloc
			count := rng.Int63n(16) + 1
			size := rng.Int63n(64) + 1
			ref, _, err := a.Calloc(count, size)
			if err != nil {
				if errors.Is(err, malloc.ErrOutOfMemory) {
					oom++
					continue
				}
				return nil, oom, fmt.Errorf("op %d: calloc(%d, %d): %w", i, count, size, err)
			}
			live = append(live, ref)

		case op < 8: // free
			j := rng.Intn(len(live))
			a.Free(live[j])
			live[j] = live[len(live)-1]
			live = live[:len(live)-1]

		default: // realloc
			j := rng.Intn(len(live))
			size := rng.Int63n(cfg.MaxSize) + 1
			ref, _, err := a.Realloc(live[j], size)
			if err != nil {
				if errors.Is(err, malloc.ErrOutOfMemory) {
					oom++
					continue
				}
				return nil, oom, fmt.Errorf("op %d: realloc(%d): %w", i, size, err)
			}
			live[j] = ref
		}
	}
	return a, oom, nil
}
