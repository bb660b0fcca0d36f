package main

import (
	"github.com/urfave/cli/v2"

	"github.com/shivam-909/bumparena/internal/bench"
)

var (
	configFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "TOML configuration file; flags given on the command line take precedence",
	}
	capacityFlag = &cli.IntFlag{
		Name:  "capacity",
		Usage: "Arena size per worker in bytes",
		Value: bench.DefaultConfig().Capacity,
	}
	iterationsFlag = &cli.IntFlag{
		Name:  "iterations",
		Usage: "Timed batches per workload",
		Value: bench.DefaultConfig().Iterations,
	}
	workersFlag = &cli.IntFlag{
		Name:  "workers",
		Usage: "Concurrent workers, each with a private arena",
		Value: bench.DefaultConfig().Workers,
	}
	directionFlag = &cli.StringSliceFlag{
		Name:  "direction",
		Usage: "Growth direction to run arena workloads in (up, down)",
	}
	backingFlag = &cli.StringFlag{
		Name:  "backing",
		Usage: "Arena memory source (heap, mmap)",
		Value: "heap",
	}
	workloadFlag = &cli.StringSliceFlag{
		Name:  "workload",
		Usage: "Workload to run (small, large, mixed, orderbook-arena, orderbook-standard)",
	}
	ordersFlag = &cli.IntFlag{
		Name:  "orders",
		Usage: "Order book actions per batch",
		Value: bench.DefaultConfig().Orders,
	}
	seedFlag = &cli.Uint64Flag{
		Name:  "seed",
		Usage: "Order stream seed",
		Value: bench.DefaultConfig().Seed,
	}
	verbosityFlag = &cli.IntFlag{
		Name:  "verbosity",
		Usage: "Logging verbosity: 0=silent, 1=error, 2=warn, 3=info, 4=debug, 5=detail",
		Value: 3,
	}
	profileFlag = &cli.StringFlag{
		Name:  "profile",
		Usage: "Write a profile of the run (cpu, mem)",
	}
	profileDirFlag = &cli.StringFlag{
		Name:  "profile.dir",
		Usage: "Directory the profile is written to",
		Value: ".",
	}
)

var appFlags = []cli.Flag{
	configFlag,
	capacityFlag,
	iterationsFlag,
	workersFlag,
	directionFlag,
	backingFlag,
	workloadFlag,
	ordersFlag,
	seedFlag,
	verbosityFlag,
	profileFlag,
	profileDirFlag,
}
