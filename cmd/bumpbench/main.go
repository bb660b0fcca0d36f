// Command bumpbench times the bump arena against the garbage collected heap.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ethereum/go-ethereum/log"
	"github.com/pkg/errors"
	"github.com/pkg/profile"
	"github.com/urfave/cli/v2"

	"github.com/shivam-909/bumparena/alloc"
	"github.com/shivam-909/bumparena/internal/bench"
)

var app = &cli.App{
	Name:   "bumpbench",
	Usage:  "benchmark the bump arena",
	Flags:  appFlags,
	Action: run,
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx *cli.Context) error {
	setDefaultLogger(ctx.Int(verbosityFlag.Name))

	cfg, err := makeConfig(ctx)
	if err != nil {
		return err
	}
	runner, err := bench.NewRunner(cfg)
	if err != nil {
		return err
	}

	if mode := ctx.String(profileFlag.Name); mode != "" {
		p, err := profileMode(mode)
		if err != nil {
			return err
		}
		defer profile.Start(p, profile.ProfilePath(ctx.String(profileDirFlag.Name)), profile.NoShutdownHook).Stop()
	}

	sigctx, stop := signal.NotifyContext(ctx.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	results, err := runner.Run(sigctx)
	if errors.Is(err, context.Canceled) {
		log.Warn("Benchmark interrupted", "completed", len(results))
	} else if err != nil {
		return err
	}
	bench.Render(os.Stdout, results)
	return nil
}

func setDefaultLogger(verbosity int) {
	glogger := log.NewGlogHandler(log.NewTerminalHandler(os.Stderr, true))
	glogger.Verbosity(log.FromLegacyLevel(verbosity))
	log.SetDefault(log.NewLogger(glogger))
}

// makeConfig layers the config file and then explicitly set flags over the
// defaults.
func makeConfig(ctx *cli.Context) (bench.Config, error) {
	cfg := bench.DefaultConfig()
	if path := ctx.String(configFlag.Name); path != "" {
		if err := bench.LoadConfig(path, &cfg); err != nil {
			return cfg, err
		}
	}

	if ctx.IsSet(capacityFlag.Name) {
		cfg.Capacity = ctx.Int(capacityFlag.Name)
	}
	if ctx.IsSet(iterationsFlag.Name) {
		cfg.Iterations = ctx.Int(iterationsFlag.Name)
	}
	if ctx.IsSet(workersFlag.Name) {
		cfg.Workers = ctx.Int(workersFlag.Name)
	}
	if ctx.IsSet(directionFlag.Name) {
		cfg.Directions = cfg.Directions[:0:0]
		for _, s := range ctx.StringSlice(directionFlag.Name) {
			var d alloc.Direction
			if err := d.UnmarshalText([]byte(s)); err != nil {
				return cfg, errors.Wrapf(err, "--%s", directionFlag.Name)
			}
			cfg.Directions = append(cfg.Directions, d)
		}
	}
	if ctx.IsSet(backingFlag.Name) {
		if err := cfg.Backing.UnmarshalText([]byte(ctx.String(backingFlag.Name))); err != nil {
			return cfg, errors.Wrapf(err, "--%s", backingFlag.Name)
		}
	}
	if ctx.IsSet(workloadFlag.Name) {
		cfg.Workloads = ctx.StringSlice(workloadFlag.Name)
	}
	if ctx.IsSet(ordersFlag.Name) {
		cfg.Orders = ctx.Int(ordersFlag.Name)
	}
	if ctx.IsSet(seedFlag.Name) {
		cfg.Seed = ctx.Uint64(seedFlag.Name)
	}
	return cfg, nil
}

func profileMode(mode string) (func(*profile.Profile), error) {
	switch mode {
	case "cpu":
		return profile.CPUProfile, nil
	case "mem":
		return profile.MemProfile, nil
	}
	return nil, errors.Errorf("unknown profile mode %q", mode)
}
