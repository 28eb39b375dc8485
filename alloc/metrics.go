package alloc

// usage sums bytes carved and bytes reserved across the arena's chunks.
func (a *Arena) usage() (used, reserved int) {
	for _, c := range a.chunks {
		used += c.offset
		reserved += len(c.buf)
	}
	return used, reserved
}

// SizeInUse returns the bytes carved from the arena since the last Reset,
// alignment padding included.
func (a *Arena) SizeInUse() int {
	used, _ := a.usage()
	return used
}

// NumChunks returns how many chunks the arena holds, used or not.
func (a *Arena) NumChunks() int { return len(a.chunks) }

// Capacity returns the bytes reserved by all chunks.
func (a *Arena) Capacity() int {
	_, reserved := a.usage()
	return reserved
}

// Utilization is SizeInUse over Capacity, or 0 for an empty arena.
func (a *Arena) Utilization() float64 {
	return utilization(a.usage())
}

func utilization(used, reserved int) float64 {
	if reserved == 0 {
		return 0
	}
	return float64(used) / float64(reserved)
}

// ChunkSize returns the size of chunks added for requests that fit in one.
func (a *Arena) ChunkSize() int { return a.chunkSize }

// Metrics takes a snapshot of the arena's usage in one pass over its chunks.
func (a *Arena) Metrics() ArenaMetrics {
	used, reserved := a.usage()
	return ArenaMetrics{
		SizeInUse:   used,
		Capacity:    reserved,
		NumChunks:   len(a.chunks),
		ChunkSize:   a.chunkSize,
		Utilization: utilization(used, reserved),
	}
}

// ArenaMetrics is a point-in-time view of an Arena, as reported by the
// memkit CLI for arena-backed configurations.
type ArenaMetrics struct {
	SizeInUse   int     `json:"size_in_use"`
	Capacity    int     `json:"capacity"`
	NumChunks   int     `json:"num_chunks"`
	ChunkSize   int     `json:"chunk_size"`
	Utilization float64 `json:"utilization"`
}

// Stats is a snapshot of the counters kept by a Tracking allocator.
type Stats struct {
	Allocations       int `json:"allocations"`        // successful Allocate/AllocateAligned calls
	FailedAllocations int `json:"failed_allocations"` // calls that returned nil
	Deallocations     int `json:"deallocations"`      // Deallocate calls with a non-nil block
	BytesInUse        int `json:"bytes_in_use"`
	PeakBytes         int `json:"peak_bytes"`
	LiveBlocks        int `json:"live_blocks"`
	PeakBlocks        int `json:"peak_blocks"`
}
