package malloc

// Stats holds allocator counters for instrumentation and tests. Counter
// fields accumulate over the allocator's lifetime; FreeBlocks, FreeBytes,
// and HeapSize are point-in-time values computed by Stats().
type Stats struct {
	AllocCalls       int   // Malloc calls with a positive size (Calloc delegates here)
	FreeCalls        int   // Free calls with a non-null ref
	ReallocCalls     int   // Realloc calls that resized (not the Malloc/Free aliases)
	GrowCalls        int   // Break extensions requested from the region
	GrowBytes        int64 // Total bytes added via growth, headers included
	SplitCount       int   // Free blocks split to satisfy an allocation
	CoalesceForward  int   // Merges with the following neighbor
	CoalesceBackward int   // Merges into the preceding neighbor
	ReallocInPlace   int   // Reallocs satisfied without moving the payload
	ReallocMoved     int   // Reallocs that fell back to allocate-copy-free
	BytesAllocated   int64 // Total payload bytes granted
	BytesFreed       int64 // Total payload bytes released

	FreeBlocks int   // Current number of blocks on the free list
	FreeBytes  int64 // Current total free payload bytes
	HeapSize   int64 // Current managed region size, headers included
}

// Stats returns a snapshot of the allocator's counters plus the current
// free-list totals.
func (a *Allocator) Stats() Stats {
	s := a.stats
	data := a.region.Bytes()
	for off := a.freeHead; off != NullRef; off = blockNext(data, off) {
		s.FreeBlocks++
		s.FreeBytes += blockSize(data, off)
	}
	s.HeapSize = a.region.Size()
	return s
}
