package alloc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLeak(t *testing.T) {
	for _, dir := range directions {
		a := newArena(t, dir, 1024)

		allocs := testing.AllocsPerRun(1000, func() {
			h, err := a.Allocate(8, 4)
			if err != nil {
				panic(err)
			}
			b, err := a.Bytes(h)
			if err != nil {
				panic(err)
			}
			b[0] = 1
			a.Release()
		})
		require.Zero(t, allocs, "%s arena allocated on the Go heap", dir)
		require.Equal(t, 1024, a.RemainingSpace())
	}
}

func TestLeakMmap(t *testing.T) {
	// Mapping and unmapping repeatedly must not exhaust the address space.
	for i := 0; i < 256; i++ {
		a, err := New(Config{Capacity: 1 << 20, Backing: Mmap})
		require.NoError(t, err)
		h, err := a.Allocate(1<<10, 1<<10)
		require.NoError(t, err)
		b, err := a.Bytes(h)
		require.NoError(t, err)
		b[len(b)-1] = 1
		require.NoError(t, a.Close())
	}
}
