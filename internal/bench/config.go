package bench

import (
	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"github.com/shivam-909/bumparena/alloc"
)

// Config controls a benchmark run. It can be loaded from a TOML file:
//
//	capacity   = 1048576
//	iterations = 10
//	workers    = 4
//	directions = ["up", "down"]
//	backing    = "mmap"
//	workloads  = ["small", "large", "mixed"]
type Config struct {
	Capacity   int               `toml:"capacity"`   // arena size per worker in bytes
	Iterations int               `toml:"iterations"` // timed batches per workload
	Workers    int               `toml:"workers"`    // goroutines, one arena each
	Directions []alloc.Direction `toml:"directions"`
	Backing    alloc.Backing     `toml:"backing"`
	Workloads  []string          `toml:"workloads"`
	Orders     int               `toml:"orders"` // order book actions per batch
	Seed       uint64            `toml:"seed"`
}

// DefaultConfig mirrors the classic bump allocator benchmark: a 1 MiB heap,
// each workload averaged over 10 runs. It returns fresh slices on every call.
func DefaultConfig() Config {
	return Config{
		Capacity:   1 << 20,
		Iterations: 10,
		Workers:    1,
		Directions: []alloc.Direction{alloc.Up, alloc.Down},
		Backing:    alloc.Heap,
		Workloads:  []string{WorkloadSmall, WorkloadLarge, WorkloadMixed},
		Orders:     10000,
		Seed:       1,
	}
}

// LoadConfig decodes the TOML file at path over cfg. Keys that do not map
// to a Config field are rejected.
func LoadConfig(path string, cfg *Config) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return errors.Wrapf(err, "load config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return errors.Errorf("load config %s: unknown keys %v", path, undecoded)
	}
	return nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch {
	case c.Capacity < 0:
		return errors.Errorf("capacity must not be negative, got %d", c.Capacity)
	case c.Iterations < 1:
		return errors.Errorf("iterations must be positive, got %d", c.Iterations)
	case c.Workers < 1:
		return errors.Errorf("workers must be positive, got %d", c.Workers)
	case len(c.Directions) == 0:
		return errors.New("at least one direction is required")
	case len(c.Workloads) == 0:
		return errors.New("at least one workload is required")
	case c.Orders < 1:
		return errors.Errorf("orders must be positive, got %d", c.Orders)
	}
	for _, name := range c.Workloads {
		if _, ok := workloads[name]; !ok {
			return errors.Errorf("unknown workload %q", name)
		}
	}
	return nil
}
