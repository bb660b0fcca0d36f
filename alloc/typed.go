package alloc

import (
	"unsafe"

	"github.com/pkg/errors"
)

// The helpers below build typed views over arena memory. The garbage
// collector does not scan arena storage, so T must not contain Go pointers
// (pointers, slices, strings, maps, channels, interfaces or funcs).

// Sizeof returns the size of T in bytes.
func Sizeof[T any]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}

// Alignof returns the alignment T requires in bytes.
func Alignof[T any]() int {
	var zero T
	return int(unsafe.Alignof(zero))
}

// NewValue allocates room for one T.
func NewValue[T any](a *Arena) (Handle, error) {
	return a.Allocate(Sizeof[T](), 1)
}

// NewSlice allocates room for n consecutive values of T.
func NewSlice[T any](a *Arena, n int) (Handle, error) {
	return a.Allocate(Sizeof[T](), n)
}

// Value returns a *T over the memory addressed by h. The contents are
// whatever was last written there; the arena never zeroes memory.
func Value[T any](a *Arena, h Handle) (*T, error) {
	p, _, err := view[T](a, h)
	if err != nil {
		return nil, err
	}
	return (*T)(p), nil
}

// Slice returns a []T covering the memory addressed by h.
func Slice[T any](a *Arena, h Handle) ([]T, error) {
	p, n, err := view[T](a, h)
	if err != nil {
		return nil, err
	}
	return unsafe.Slice((*T)(p), n), nil
}

// view resolves h and checks that it can hold at least one aligned T.
// It returns the base pointer and how many whole T values fit.
func view[T any](a *Arena, h Handle) (unsafe.Pointer, int, error) {
	var zero T
	size := int(unsafe.Sizeof(zero))
	if size == 0 {
		return nil, 0, errors.Wrap(ErrInvalidSize, "zero-sized type")
	}
	b, err := a.Bytes(h)
	if err != nil {
		return nil, 0, err
	}
	if len(b) < size {
		return nil, 0, errors.Wrapf(ErrInvalidHandle, "%d bytes cannot hold a %d byte value", len(b), size)
	}
	p := unsafe.Pointer(unsafe.SliceData(b))
	if align := unsafe.Alignof(zero); uintptr(p)%align != 0 {
		return nil, 0, errors.Wrapf(ErrMisaligned, "offset %d, alignment %d", h.off, align)
	}
	return p, len(b) / size, nil
}
