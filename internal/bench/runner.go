package bench

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/shivam-909/bumparena/alloc"
)

// Result is the timing of one workload on one worker.
type Result struct {
	Name       string
	Direction  string // "up", "down", or "-" for workloads that bypass the arena
	Worker     int
	Average    time.Duration // mean wall-clock time per batch
	Iterations int           // batches timed
	Ops        int           // operations per batch
	Stats      alloc.Stats   // arena state after the last batch
}

// Runner executes the configured workloads.
type Runner struct {
	cfg Config
	log log.Logger
}

// NewRunner validates cfg and returns a runner for it.
func NewRunner(cfg Config) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Runner{cfg: cfg, log: log.New("module", "bench")}, nil
}

// Run times every workload, once per direction for arena workloads. Each
// worker goroutine owns a private arena. Cancelling ctx stops the run
// between batches.
func (r *Runner) Run(ctx context.Context) ([]Result, error) {
	var results []Result
	for _, name := range r.cfg.Workloads {
		w := workloads[name]

		dirs := []alloc.Direction{alloc.Up}
		if w.Arena {
			dirs = r.cfg.Directions
		}
		for _, dir := range dirs {
			res, err := r.runWorkload(ctx, w, dir)
			if err != nil {
				return results, err
			}
			results = append(results, res...)
		}
	}
	return results, nil
}

func (r *Runner) runWorkload(ctx context.Context, w Workload, dir alloc.Direction) ([]Result, error) {
	label := "-"
	if w.Arena {
		label = dir.String()
	}
	r.log.Info("Running workload", "name", w.Name, "dir", label, "workers", r.cfg.Workers, "iterations", r.cfg.Iterations)

	results := make([]Result, r.cfg.Workers)
	g, gctx := errgroup.WithContext(ctx)
	for worker := 0; worker < r.cfg.Workers; worker++ {
		g.Go(func() error {
			res, err := r.measure(gctx, w, dir)
			if err != nil {
				return errors.Wrapf(err, "%s/%s worker %d", w.Name, label, worker)
			}
			res.Direction = label
			res.Worker = worker
			results[worker] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// measure runs cfg.Iterations batches of w on a fresh arena and averages
// their wall-clock time.
func (r *Runner) measure(ctx context.Context, w Workload, dir alloc.Direction) (Result, error) {
	a, err := alloc.New(alloc.Config{
		Capacity:  r.cfg.Capacity,
		Direction: dir,
		Backing:   r.cfg.Backing,
		Logger:    r.log,
	})
	if err != nil {
		return Result{}, err
	}
	defer a.Close()

	env := &Env{Orders: r.cfg.Orders, Seed: r.cfg.Seed}

	var (
		total time.Duration
		ops   int
	)
	for i := 0; i < r.cfg.Iterations; i++ {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		start := time.Now()
		ops, err = w.Run(a, env)
		total += time.Since(start)
		if err != nil {
			return Result{}, err
		}
	}
	return Result{
		Name:       w.Name,
		Average:    total / time.Duration(r.cfg.Iterations),
		Iterations: r.cfg.Iterations,
		Ops:        ops,
		Stats:      a.Stats(),
	}, nil
}
