package main

import (
	"fmt"
	"time"

	"github.com/joshuapare/bootmem/alloc"
	"github.com/joshuapare/bootmem/internal/arena"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
)

var (
	benchSize    string
	benchOps     int
	benchProfile string
)

func init() {
	cmd := newBenchCmd()
	cmd.Flags().StringVar(&benchSize, "size", "64M", "Region size (supports K/M/G suffix)")
	cmd.Flags().IntVar(&benchOps, "ops", 5000000, "Alloc/free cycles per path")
	cmd.Flags().
		StringVar(&benchProfile, "profile", "", "Write a CPU profile to this directory")
	rootCmd.AddCommand(cmd)
}

func newBenchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bench",
		Short: "Benchmark the bump allocation paths",
		Long: `The bench command times tight alloc/free cycles on both the byte path
and the page path over a reserved region.

Example:
  bootctl bench --ops 10000000
  bootctl bench --profile ./prof`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench()
		},
	}
}

// benchResult reports one timed path.
type benchResult struct {
	Path      string
	Ops       int
	Elapsed   time.Duration
	OpsPerSec float64
}

func runBench() error {
	size, err := parseSize(benchSize)
	if err != nil {
		return err
	}

	if benchProfile != "" {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(benchProfile)).Stop()
	}

	ea, err := alloc.New(4096)
	if err != nil {
		return err
	}
	region, release, err := arena.Reserve(size)
	if err != nil {
		return err
	}
	defer release()
	ea.Init(alloc.Addr(arena.Base(region)), uintptr(len(region)))

	results := []benchResult{
		timePath("bytes", benchOps, func() error {
			addr, err := ea.AllocBytes(256, 8)
			if err != nil {
				return err
			}
			return ea.DeallocBytes(addr, 256)
		}),
		timePath("pages", benchOps, func() error {
			addr, err := ea.AllocPages(1, 4096)
			if err != nil {
				return err
			}
			return ea.DeallocPages(addr, 1)
		}),
	}

	if jsonOut {
		return printJSON(results)
	}
	for _, r := range results {
		printInfo("%-6s %d ops in %v (%.0f ops/sec)\n",
			r.Path, r.Ops, r.Elapsed, r.OpsPerSec)
	}
	return nil
}

func timePath(name string, ops int, cycle func() error) benchResult {
	start := time.Now()
	for n := 0; n < ops; n++ {
		if err := cycle(); err != nil {
			// Immediate free after every alloc means the region cannot
			// exhaust; any error here is a bug worth surfacing loudly.
			panic(fmt.Sprintf("bench %s: %v", name, err))
		}
	}
	elapsed := time.Since(start)

	return benchResult{
		Path:      name,
		Ops:       ops,
		Elapsed:   elapsed,
		OpsPerSec: float64(ops) / elapsed.Seconds(),
	}
}
