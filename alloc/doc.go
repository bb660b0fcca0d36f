// Package alloc implements a fixed-capacity bump arena.
//
// # Overview
//
// An Arena owns a single contiguous region of Capacity bytes and hands out
// pieces of it by moving a cursor. The cursor moves in one direction only,
// chosen at construction:
//
//   - Up arenas start at offset 0 and grow toward the end of the region.
//   - Down arenas start at the end of the region and grow toward offset 0.
//
// Allocation is O(1) offset arithmetic and never touches the Go heap.
//
// # Release model
//
// There is no per-object free. Release decrements a live counter; when the
// counter returns to zero the cursor jumps back to its initial position and
// the whole region is available again. Release is not paired with any
// particular allocation, only the count matters:
//
//	a, _ := alloc.NewUp(64)
//	x, _ := a.Allocate(4, 1)
//	y, _ := a.Allocate(8, 1)
//	a.Release() // one allocation still live, nothing reclaimed
//	a.Release() // counter hits zero, x and y are both invalidated
//
// # Handles
//
// Allocate returns a Handle rather than a raw pointer. A handle carries the
// arena epoch it was issued in, and the epoch advances on every bulk reset,
// so resolving a handle that outlived its reset fails with ErrStaleHandle
// instead of silently aliasing newer allocations.
//
//	b, err := a.Bytes(h)
//	v, err := alloc.Value[header](a, h)
//
// # Alignment
//
// The arena performs no alignment adjustment: offsets are exactly the sums
// of the requested lengths. Value and Slice refuse to build a typed view
// over a region that does not satisfy the type's alignment and return
// ErrMisaligned. Callers that mix sizes and need typed access should request
// sizes that are multiples of the strictest alignment they use.
//
// # Thread safety
//
// An Arena is not safe for concurrent use. Confine one arena per goroutine
// or guard it with a mutex.
package alloc
