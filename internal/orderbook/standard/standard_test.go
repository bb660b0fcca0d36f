package standardbook

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shivam-909/bumparena/internal/orderbook"
)

func TestInsertRemove(t *testing.T) {
	b := New()
	for _, id := range []int{5, 3, 8, 1, 4, 7, 9} {
		require.NoError(t, b.Insert(orderbook.Order{Id: id, Price: 9500 - id}))
	}
	assert.Equal(t, 7, b.Len())

	require.NoError(t, b.Remove(5))
	require.NoError(t, b.Remove(1))
	require.NoError(t, b.Remove(8))
	assert.Equal(t, 4, b.Len())

	require.ErrorIs(t, b.Remove(5), orderbook.ErrOrderNotFound)
	for _, id := range []int{3, 4, 7, 9} {
		require.NoError(t, b.Remove(id))
	}
	assert.Zero(t, b.Len())
}

func TestGeneratorDeterministic(t *testing.T) {
	g1, g2 := orderbook.NewGenerator(42), orderbook.NewGenerator(42)
	for i := 0; i < 100; i++ {
		o1, o2 := g1.GenerateOrder(), g2.GenerateOrder()
		require.Equal(t, o1, o2)
		require.Equal(t, i+1, o1.Id)
		require.GreaterOrEqual(t, o1.Price, orderbook.MinPrice)
		require.Less(t, o1.Price, orderbook.MaxPrice)
		require.Contains(t, []orderbook.OrderSide{orderbook.OrderSideBuy, orderbook.OrderSideSell}, o1.Side)
	}
}

func TestActNeverRemovesUnknownOrders(t *testing.T) {
	b := New()
	g := orderbook.NewGenerator(1)
	for i := 0; i < 10000; i++ {
		require.NoError(t, g.Act(b))
	}
}
