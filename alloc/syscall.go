//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package alloc

import (
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// mapRegion returns an anonymous private read/write mapping of length bytes.
func mapRegion(length int) ([]byte, error) {
	if length == 0 {
		return []byte{}, nil
	}
	b, err := unix.Mmap(-1, 0, length, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, errors.Wrapf(err, "arena: mmap %d bytes", length)
	}
	return b, nil
}

func unmapRegion(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	return errors.Wrap(unix.Munmap(b), "arena: munmap")
}
