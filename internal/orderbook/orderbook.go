package orderbook

import (
	"errors"
	"math/rand/v2"
)

type OrderSide int

const (
	OrderSideBuy  OrderSide = 1
	OrderSideSell OrderSide = 2
	MaxPrice                = 10000
	MinPrice                = 9000
)

var ErrOrderNotFound = errors.New("order not found")

// Order holds no Go pointers so it can live in arena memory.
type Order struct {
	Id    int
	Side  OrderSide
	Price int
	Qty   int
}

type OrderBook interface {
	Insert(order Order) error
	Remove(id int) error
	Len() int
}

type OrderBookNode struct {
	Order Order
	Left  *OrderBookNode
	Right *OrderBookNode
}

// Generator produces a deterministic stream of orders and book actions.
type Generator struct {
	rng      *rand.Rand
	counter  int
	removals int
}

func NewGenerator(seed uint64) *Generator {
	return &Generator{
		rng:      rand.New(rand.NewPCG(seed, seed>>32|1)),
		counter:  1,
		removals: 1,
	}
}

func (g *Generator) randomBool() bool {
	n := g.rng.Int()
	return n%2 == 0
}

func (g *Generator) randomBoolDistribution(truePercentage int) bool {
	n := g.rng.IntN(100)
	return n < truePercentage
}

func (g *Generator) randomSide() OrderSide {
	if g.randomBool() {
		return OrderSideBuy
	}
	return OrderSideSell
}

func (g *Generator) GenerateOrder() Order {
	side := g.randomSide()
	price := g.rng.IntN(MaxPrice-MinPrice) + MinPrice
	qty := g.rng.IntN(10) + 1
	id := g.counter
	g.counter++
	return Order{id, side, price, qty}
}

// Act either inserts a fresh order or removes the oldest one, with equal
// probability. Orders are removed in id order.
func (g *Generator) Act(ob OrderBook) error {
	if g.randomBoolDistribution(50) {
		return ob.Insert(g.GenerateOrder())
	}
	if g.removals >= g.counter {
		return nil
	}
	err := ob.Remove(g.removals)
	g.removals++
	return err
}
