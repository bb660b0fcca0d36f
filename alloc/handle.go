package alloc

import "github.com/pkg/errors"

// Handle addresses one allocation inside an Arena. The zero Handle is never
// returned by a successful Allocate and can be used as a nil link.
//
// A handle stays resolvable until the arena's live count returns to zero;
// after that it is stale. A handle only resolves against the arena that
// issued it. Epochs are 32 bits wide, so a handle kept across 2^32 bulk
// resets can alias a fresh one.
type Handle struct {
	off   int
	size  int
	epoch uint32
	arena uint32
}

// Offset returns the handle's byte offset from the start of the region.
func (h Handle) Offset() int { return h.off }

// Len returns the number of bytes the handle addresses.
func (h Handle) Len() int { return h.size }

// IsZero reports whether h is the zero Handle.
func (h Handle) IsZero() bool { return h == Handle{} }

// Bytes returns the memory addressed by h. The slice is capped at h.Len() so
// appends cannot spill into neighbouring allocations.
func (a *Arena) Bytes(h Handle) ([]byte, error) {
	if err := a.check(h); err != nil {
		return nil, err
	}
	return a.buf[h.off : h.off+h.size : h.off+h.size], nil
}

// Valid reports whether h can currently be resolved.
func (a *Arena) Valid(h Handle) bool {
	return a.check(h) == nil
}

func (a *Arena) check(h Handle) error {
	if a.closed {
		return ErrClosed
	}
	if h.IsZero() {
		return errors.Wrap(ErrInvalidHandle, "zero handle")
	}
	if h.arena != a.id {
		return errors.Wrapf(ErrInvalidHandle, "handle from arena %d used on arena %d", h.arena, a.id)
	}
	if h.epoch != a.epoch {
		return errors.Wrapf(ErrStaleHandle, "handle epoch %d, arena epoch %d", h.epoch, a.epoch)
	}
	// The region must sit inside what has been consumed since the last reset.
	lo, hi := 0, a.cursor
	if a.dir == Down {
		lo, hi = a.cursor, a.capacity
	}
	if h.size <= 0 || h.off < lo || h.off > hi-h.size {
		return errors.Wrapf(ErrInvalidHandle, "region [%d,%d) outside [%d,%d)", h.off, h.off+h.size, lo, hi)
	}
	return nil
}
