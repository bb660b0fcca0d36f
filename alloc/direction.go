package alloc

import "github.com/pkg/errors"

// Direction is the way an arena's cursor moves on allocation.
type Direction uint8

const (
	// Up arenas allocate from offset 0 toward the end of the region.
	Up Direction = iota
	// Down arenas allocate from the end of the region toward offset 0.
	Down
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return "unknown"
	}
}

func (d Direction) MarshalText() ([]byte, error) {
	if d != Up && d != Down {
		return nil, errors.Errorf("arena: unknown direction %d", d)
	}
	return []byte(d.String()), nil
}

func (d *Direction) UnmarshalText(text []byte) error {
	switch string(text) {
	case "up":
		*d = Up
	case "down":
		*d = Down
	default:
		return errors.Errorf("arena: unknown direction %q", text)
	}
	return nil
}

// Backing selects where an arena's storage region comes from.
type Backing uint8

const (
	// Heap backs the arena with a Go byte slice.
	Heap Backing = iota
	// Mmap backs the arena with an anonymous private mapping that is
	// unmapped by Close.
	Mmap
)

func (b Backing) String() string {
	switch b {
	case Heap:
		return "heap"
	case Mmap:
		return "mmap"
	default:
		return "unknown"
	}
}

func (b Backing) MarshalText() ([]byte, error) {
	if b != Heap && b != Mmap {
		return nil, errors.Errorf("arena: unknown backing %d", b)
	}
	return []byte(b.String()), nil
}

func (b *Backing) UnmarshalText(text []byte) error {
	switch string(text) {
	case "heap":
		*b = Heap
	case "mmap":
		*b = Mmap
	default:
		return errors.Errorf("arena: unknown backing %q", text)
	}
	return nil
}
