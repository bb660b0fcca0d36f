package alloc

// Stats is a snapshot of arena state and failure counters.
type Stats struct {
	Capacity    int     // Size of the storage region in bytes
	Used        int     // Bytes consumed since the last bulk reset
	Remaining   int     // Capacity - Used
	Live        int     // Allocations not yet released
	Utilization float64 // Used / Capacity (0.0-1.0)

	Resets     uint64 // Bulk resets triggered by Release
	OutOfSpace uint64 // Allocations rejected with ErrOutOfSpace
	Overflows  uint64 // Allocations rejected with ErrSizeOverflow
}

// Utilization returns the ratio of used bytes to capacity.
// Returns 0.0 for a zero-capacity arena.
func (a *Arena) Utilization() float64 {
	if a.capacity == 0 {
		return 0
	}
	return float64(a.Used()) / float64(a.capacity)
}

// Stats returns a snapshot of the arena.
func (a *Arena) Stats() Stats {
	return Stats{
		Capacity:    a.capacity,
		Used:        a.Used(),
		Remaining:   a.RemainingSpace(),
		Live:        a.live,
		Utilization: a.Utilization(),
		Resets:      a.resets,
		OutOfSpace:  a.outOfSpace,
		Overflows:   a.overflows,
	}
}
