package bench

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/shivam-909/bumparena/alloc"
	"github.com/shivam-909/bumparena/internal/orderbook"
	"github.com/shivam-909/bumparena/internal/orderbook/arenabook"
	standardbook "github.com/shivam-909/bumparena/internal/orderbook/standard"
)

const (
	WorkloadSmall             = "small"
	WorkloadLarge             = "large"
	WorkloadMixed             = "mixed"
	WorkloadOrderBookArena    = "orderbook-arena"
	WorkloadOrderBookStandard = "orderbook-standard"
)

const (
	smallCount = 10000
	largeCount = 100
	largeSize  = 1024
	mixedCount = 1000
)

// Workload is one timed batch. Run returns how many operations it performed.
// Arena workloads must leave the arena empty so every batch starts fresh.
type Workload struct {
	Name string
	// Arena reports whether the workload allocates from the arena, and
	// therefore runs once per direction.
	Arena bool
	Run   func(a *alloc.Arena, env *Env) (int, error)
}

// Env carries per-worker workload parameters.
type Env struct {
	Orders int    // order book actions per batch
	Seed   uint64 // order stream seed, identical for every batch
}

var workloads = map[string]Workload{
	WorkloadSmall: {
		Name:  WorkloadSmall,
		Arena: true,
		Run: func(a *alloc.Arena, _ *Env) (int, error) {
			return fill(a, smallCount, func(int) int { return 1 })
		},
	},
	WorkloadLarge: {
		Name:  WorkloadLarge,
		Arena: true,
		Run: func(a *alloc.Arena, _ *Env) (int, error) {
			return fill(a, largeCount, func(int) int { return largeSize })
		},
	},
	WorkloadMixed: {
		Name:  WorkloadMixed,
		Arena: true,
		Run: func(a *alloc.Arena, _ *Env) (int, error) {
			return fill(a, mixedCount, func(i int) int {
				if i%2 == 0 {
					return 1
				}
				return 4
			})
		},
	},
	WorkloadOrderBookArena: {
		Name:  WorkloadOrderBookArena,
		Arena: true,
		Run: func(a *alloc.Arena, env *Env) (int, error) {
			// The book is dropped after the batch, so releasing every node
			// directly is enough to hand the next batch an empty arena.
			defer releaseAll(a)
			return act(arenabook.New(a), env)
		},
	},
	WorkloadOrderBookStandard: {
		Name: WorkloadOrderBookStandard,
		Run: func(_ *alloc.Arena, env *Env) (int, error) {
			return act(standardbook.New(), env)
		},
	},
}

// Lookup returns the named workload.
func Lookup(name string) (Workload, bool) {
	w, ok := workloads[name]
	return w, ok
}

// fill performs n allocations of size(i) bytes, writes each one and then
// releases them all, which bulk-resets the arena.
func fill(a *alloc.Arena, n int, size func(i int) int) (int, error) {
	defer releaseAll(a)
	for i := 0; i < n; i++ {
		h, err := a.Allocate(1, size(i))
		if err != nil {
			return i, errors.Wrapf(err, "allocation %d", i)
		}
		b, err := a.Bytes(h)
		if err != nil {
			return i, err
		}
		touch(b)
	}
	return n, nil
}

// touch writes an allocation the way the batch's caller would: a 4 byte
// region holds the integer 42, anything else gets 'a' in its first byte.
func touch(b []byte) {
	if len(b) == 4 {
		binary.LittleEndian.PutUint32(b, 42)
		return
	}
	b[0] = 'a'
}

func releaseAll(a *alloc.Arena) {
	for a.AllocationCount() > 0 {
		a.Release()
	}
}

// act drives env.Orders random insert/remove actions against book.
func act(book orderbook.OrderBook, env *Env) (int, error) {
	gen := orderbook.NewGenerator(env.Seed)
	for i := 0; i < env.Orders; i++ {
		if err := gen.Act(book); err != nil {
			return i, errors.Wrapf(err, "order book action %d", i)
		}
	}
	return env.Orders, nil
}
