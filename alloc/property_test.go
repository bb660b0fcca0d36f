package alloc

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func drawArena(t *rapid.T) *Arena {
	dir := rapid.SampledFrom(directions).Draw(t, "dir")
	capacity := rapid.IntRange(0, 512).Draw(t, "capacity")
	a, err := New(Config{Capacity: capacity, Direction: dir})
	require.NoError(t, err)
	return a
}

func TestPropertyExhaustion(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := drawArena(t)
		require.Equal(t, a.Capacity(), a.RemainingSpace())

		steps := rapid.IntRange(1, 40).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			size := rapid.IntRange(1, 32).Draw(t, "size")
			count := rapid.IntRange(1, 8).Draw(t, "count")
			remaining, live := a.RemainingSpace(), a.AllocationCount()

			_, err := a.Allocate(size, count)
			if size*count > remaining {
				require.ErrorIs(t, err, ErrOutOfSpace)
				require.Equal(t, remaining, a.RemainingSpace())
				require.Equal(t, live, a.AllocationCount())
				continue
			}
			require.NoError(t, err)
			require.Equal(t, remaining-size*count, a.RemainingSpace())
			require.Equal(t, live+1, a.AllocationCount())
		}
	})
}

func TestPropertyBulkReset(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := drawArena(t)
		before := a.RemainingSpace()

		var handles []Handle
		for _, size := range rapid.SliceOfN(rapid.IntRange(1, 64), 0, 32).Draw(t, "sizes") {
			h, err := a.Allocate(size, 1)
			if err == nil {
				handles = append(handles, h)
			}
		}
		k := len(handles)
		require.Equal(t, k, a.AllocationCount())

		partial := rapid.IntRange(0, k).Draw(t, "partial")
		for i := 0; i < partial; i++ {
			a.Release()
		}
		if partial < k {
			require.Less(t, a.RemainingSpace(), before)
			require.Positive(t, a.AllocationCount())
			for _, h := range handles {
				require.True(t, a.Valid(h))
			}
		}

		for i := partial; i < k; i++ {
			a.Release()
		}
		require.Equal(t, before, a.RemainingSpace())
		require.Zero(t, a.AllocationCount())
		for _, h := range handles {
			require.False(t, a.Valid(h))
		}

		snapshot := a.Stats()
		a.Release()
		require.Equal(t, snapshot, a.Stats())
	})
}

func TestPropertyDirectionality(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := drawArena(t)
		consumed := 0
		for _, size := range rapid.SliceOfN(rapid.IntRange(1, 64), 1, 16).Draw(t, "sizes") {
			h, err := a.Allocate(size, 1)
			if err != nil {
				require.ErrorIs(t, err, ErrOutOfSpace)
				continue
			}
			want := consumed
			if a.Direction() == Down {
				want = a.Capacity() - consumed - size
			}
			require.Equal(t, want, h.Offset())
			require.Equal(t, size, h.Len())
			consumed += size

			b, err := a.Bytes(h)
			require.NoError(t, err)
			require.Len(t, b, size)
		}
		require.Equal(t, consumed, a.Used())
	})
}
