package alloc

import (
	"sync/atomic"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/log"
	"github.com/pkg/errors"
)

const maxInt = int(^uint(0) >> 1)

// arenaIDs numbers arenas so handles can be traced back to their issuer.
var arenaIDs atomic.Uint32

// Config describes an arena to construct.
type Config struct {
	Capacity  int        // size of the storage region in bytes
	Direction Direction  // cursor direction, Up by default
	Backing   Backing    // storage source, Heap by default
	Logger    log.Logger // failure logger, log.Root() if nil
}

// Arena is a fixed-capacity bump allocator with counter-driven bulk release.
// Not goroutine-safe.
type Arena struct {
	id       uint32
	buf      []byte
	capacity int
	dir      Direction
	backing  Backing

	cursor int    // up: next free offset, down: lowest consumed offset
	live   int    // allocations not yet matched by Release
	epoch  uint32 // advanced on every bulk reset, 0 is never issued
	closed bool

	resets     uint64
	outOfSpace uint64
	overflows  uint64

	log log.Logger
}

// New creates an arena of cfg.Capacity bytes.
func New(cfg Config) (*Arena, error) {
	if cfg.Capacity < 0 {
		return nil, errors.Wrapf(ErrInvalidCapacity, "capacity %d", cfg.Capacity)
	}
	if cfg.Direction != Up && cfg.Direction != Down {
		return nil, errors.Errorf("arena: unknown direction %d", cfg.Direction)
	}

	var (
		buf []byte
		err error
	)
	switch cfg.Backing {
	case Heap:
		buf = make([]byte, cfg.Capacity)
	case Mmap:
		buf, err = mapRegion(cfg.Capacity)
		if err != nil {
			return nil, err
		}
	default:
		return nil, errors.Errorf("arena: unknown backing %d", cfg.Backing)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.Root()
	}
	a := &Arena{
		id:       nextArenaID(),
		buf:      buf,
		capacity: cfg.Capacity,
		dir:      cfg.Direction,
		backing:  cfg.Backing,
		epoch:    1,
		log:      logger,
	}
	a.cursor = a.origin()
	return a, nil
}

// NewUp creates a heap-backed arena growing upward.
func NewUp(capacity int) (*Arena, error) {
	return New(Config{Capacity: capacity, Direction: Up})
}

// NewDown creates a heap-backed arena growing downward.
func NewDown(capacity int) (*Arena, error) {
	return New(Config{Capacity: capacity, Direction: Down})
}

// Allocate reserves elementSize*count bytes and returns a handle to them.
// The memory is not zeroed and not aligned. On failure the arena is left
// untouched and the error matches ErrInvalidSize, ErrSizeOverflow,
// ErrOutOfSpace or ErrClosed.
func (a *Arena) Allocate(elementSize, count int) (Handle, error) {
	if a.closed {
		return Handle{}, ErrClosed
	}
	if elementSize <= 0 || count < 1 {
		return Handle{}, errors.Wrapf(ErrInvalidSize, "element size %d, count %d", elementSize, count)
	}
	n, err := requestLength(elementSize, count)
	if err != nil {
		a.overflows++
		a.log.Debug("Arena allocation size overflows", "size", elementSize, "count", count)
		return Handle{}, err
	}
	if remaining := a.RemainingSpace(); n > remaining {
		a.outOfSpace++
		a.log.Debug("Arena out of space", "dir", a.dir, "requested", n, "remaining", remaining, "live", a.live)
		return Handle{}, errors.Wrapf(ErrOutOfSpace, "requested %d bytes, %d remaining", n, remaining)
	}

	var off int
	switch a.dir {
	case Up:
		off = a.cursor
		a.cursor += n
	case Down:
		a.cursor -= n
		off = a.cursor
	}
	a.live++
	return Handle{off: off, size: n, epoch: a.epoch, arena: a.id}, nil
}

// Release drops one live allocation. When the live count reaches zero the
// whole arena is reclaimed and every outstanding handle becomes stale.
// Calling Release on an empty arena does nothing.
func (a *Arena) Release() {
	if a.live == 0 {
		return
	}
	a.live--
	if a.live == 0 {
		a.reset()
		a.resets++
	}
}

// Close releases the storage region. Further allocations fail with ErrClosed.
func (a *Arena) Close() error {
	if a.closed {
		return nil
	}
	a.closed = true
	a.live = 0
	a.reset()

	var err error
	if a.backing == Mmap {
		err = unmapRegion(a.buf)
	}
	a.buf = nil
	return err
}

// Capacity returns the size of the storage region fixed at construction.
func (a *Arena) Capacity() int {
	return a.capacity
}

// Used returns the number of bytes consumed since the last bulk reset.
func (a *Arena) Used() int {
	if a.dir == Down {
		return a.capacity - a.cursor
	}
	return a.cursor
}

// RemainingSpace returns Capacity() - Used().
func (a *Arena) RemainingSpace() int {
	return a.Capacity() - a.Used()
}

// AllocationCount returns the number of allocations not yet released.
func (a *Arena) AllocationCount() int {
	return a.live
}

// Direction returns the direction the cursor moves in.
func (a *Arena) Direction() Direction {
	return a.dir
}

// nextArenaID returns a non-zero arena id. Ids repeat after 2^32 arenas.
func nextArenaID() uint32 {
	for {
		if id := arenaIDs.Add(1); id != 0 {
			return id
		}
	}
}

// reset moves the cursor back to its initial position and invalidates
// every handle issued so far.
func (a *Arena) reset() {
	a.cursor = a.origin()
	a.epoch++
	if a.epoch == 0 {
		a.epoch = 1
	}
}

// origin is the cursor's initial position.
func (a *Arena) origin() int {
	if a.dir == Down {
		return a.capacity
	}
	return 0
}

// requestLength returns elementSize*count or ErrSizeOverflow.
func requestLength(elementSize, count int) (int, error) {
	n, overflow := math.SafeMul(uint64(elementSize), uint64(count))
	if overflow || n > uint64(maxInt) {
		return 0, errors.Wrapf(ErrSizeOverflow, "element size %d, count %d", elementSize, count)
	}
	return int(n), nil
}
