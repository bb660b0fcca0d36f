package arenabook

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shivam-909/bumparena/alloc"
	"github.com/shivam-909/bumparena/internal/orderbook"
	standardbook "github.com/shivam-909/bumparena/internal/orderbook/standard"
)

func newBook(t *testing.T, dir alloc.Direction, orders int) (*arenabook, *alloc.Arena) {
	t.Helper()
	a, err := alloc.New(alloc.Config{Capacity: orders * alloc.Sizeof[node](), Direction: dir})
	require.NoError(t, err)
	return New(a).(*arenabook), a
}

func ids(orders []orderbook.Order) []int {
	out := make([]int, len(orders))
	for i, o := range orders {
		out[i] = o.Id
	}
	return out
}

func TestInsertRemove(t *testing.T) {
	for _, dir := range []alloc.Direction{alloc.Up, alloc.Down} {
		t.Run(dir.String(), func(t *testing.T) {
			b, a := newBook(t, dir, 16)

			// Shape the tree so removals hit the leaf, one-child and
			// two-children cases.
			for _, id := range []int{8, 4, 12, 2, 6, 10, 14, 5, 7, 13} {
				require.NoError(t, b.Insert(orderbook.Order{Id: id, Side: orderbook.OrderSideBuy, Price: 9000 + id, Qty: 1}))
			}
			assert.Equal(t, 10, b.Len())
			assert.Equal(t, 10, a.AllocationCount())
			assert.Equal(t, []int{2, 4, 5, 6, 7, 8, 10, 12, 13, 14}, ids(b.Orders()))

			require.NoError(t, b.Remove(4))  // two children, successor is deeper
			require.NoError(t, b.Remove(2))  // leaf
			require.NoError(t, b.Remove(14)) // one child
			require.NoError(t, b.Remove(8))  // root, two children
			assert.Equal(t, []int{5, 6, 7, 10, 12, 13}, ids(b.Orders()))
			assert.Equal(t, 6, a.AllocationCount())

			require.ErrorIs(t, b.Remove(99), orderbook.ErrOrderNotFound)
			assert.Equal(t, 6, b.Len())
		})
	}
}

func TestDownArenaWithUnalignedCapacity(t *testing.T) {
	for _, extra := range []int{1, 3, 7} {
		capacity := 16*alloc.Sizeof[node]() + extra
		a, err := alloc.NewDown(capacity)
		require.NoError(t, err)
		b := New(a).(*arenabook)

		for round := 0; round < 2; round++ {
			for _, id := range []int{8, 4, 12, 2, 6} {
				require.NoError(t, b.Insert(orderbook.Order{Id: id}), "capacity %d", capacity)
			}
			assert.Equal(t, []int{2, 4, 6, 8, 12}, ids(b.Orders()))
			// Five nodes plus the pad in front of them.
			assert.Equal(t, 6, a.AllocationCount())

			for _, id := range []int{4, 8, 2, 12, 6} {
				require.NoError(t, b.Remove(id))
			}
			assert.Zero(t, a.AllocationCount())
			assert.Equal(t, capacity, a.RemainingSpace())
		}
	}
}

func TestRemovingLastOrderResetsArena(t *testing.T) {
	b, a := newBook(t, alloc.Up, 8)
	for id := 1; id <= 8; id++ {
		require.NoError(t, b.Insert(orderbook.Order{Id: id}))
	}
	require.Zero(t, a.RemainingSpace())

	err := b.Insert(orderbook.Order{Id: 9})
	require.ErrorIs(t, err, alloc.ErrOutOfSpace)
	assert.Equal(t, 8, b.Len())

	// Interior holes are not reused while any order is live.
	for id := 1; id <= 7; id++ {
		require.NoError(t, b.Remove(id))
	}
	assert.Zero(t, a.RemainingSpace())
	require.ErrorIs(t, b.Insert(orderbook.Order{Id: 9}), alloc.ErrOutOfSpace)

	require.NoError(t, b.Remove(8))
	assert.Equal(t, a.Capacity(), a.RemainingSpace())
	assert.Zero(t, b.Len())
	assert.Empty(t, b.Orders())

	require.NoError(t, b.Insert(orderbook.Order{Id: 9}))
	assert.Equal(t, []int{9}, ids(b.Orders()))
}

func TestMatchesStandardBook(t *testing.T) {
	const steps = 5000

	b, _ := newBook(t, alloc.Down, steps)
	std := standardbook.New()
	gen, stdGen := orderbook.NewGenerator(7), orderbook.NewGenerator(7)

	for i := 0; i < steps; i++ {
		err := gen.Act(b)
		stdErr := stdGen.Act(std)
		require.Equal(t, stdErr, err, "step %d", i)
		require.Equal(t, std.Len(), b.Len(), "step %d", i)
	}
}

func TestString(t *testing.T) {
	b, _ := newBook(t, alloc.Up, 4)
	require.NoError(t, b.Insert(orderbook.Order{Id: 1, Side: orderbook.OrderSideBuy, Price: 9100, Qty: 2}))
	require.NoError(t, b.Insert(orderbook.Order{Id: 2, Side: orderbook.OrderSideSell, Price: 9200, Qty: 3}))

	out := b.String()
	assert.Contains(t, out, "Price: 9100, Quantity: 2, ID: 1")
	assert.Contains(t, out, "Price: 9200, Quantity: 3, ID: 2")
}
