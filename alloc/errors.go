package alloc

import "github.com/pkg/errors"

var (
	// ErrOutOfSpace is returned when a request is larger than the remaining space.
	ErrOutOfSpace = errors.New("arena: out of space")

	// ErrSizeOverflow is returned when elementSize*count does not fit in an int.
	ErrSizeOverflow = errors.New("arena: allocation size overflows")

	ErrInvalidSize     = errors.New("arena: invalid allocation size")
	ErrInvalidCapacity = errors.New("arena: invalid capacity")

	// ErrStaleHandle is returned when a handle was issued before the most
	// recent bulk reset.
	ErrStaleHandle   = errors.New("arena: stale handle")
	ErrInvalidHandle = errors.New("arena: invalid handle")

	ErrMisaligned         = errors.New("arena: misaligned region")
	ErrClosed             = errors.New("arena: closed")
	ErrBackingUnsupported = errors.New("arena: backing not supported on this platform")
)
