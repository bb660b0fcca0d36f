//go:build !(linux || darwin || freebsd || netbsd || openbsd || dragonfly)

package alloc

import "github.com/pkg/errors"

func mapRegion(length int) ([]byte, error) {
	return nil, errors.Wrapf(ErrBackingUnsupported, "mmap %d bytes", length)
}

func unmapRegion(b []byte) error {
	return nil
}
