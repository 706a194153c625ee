package main

import (
	"fmt"
	"time"

	"github.com/regionpool/pool"
	"github.com/spf13/cobra"
)

var (
	benchRounds     int
	benchAllocsEach int
	benchAllocSize  int
)

func init() {
	cmd := newBenchCmd()
	cmd.Flags().IntVar(&benchRounds, "rounds", 10, "Number of alloc/reset rounds")
	cmd.Flags().IntVar(&benchAllocsEach, "allocs", 1000, "Allocations performed per round")
	cmd.Flags().IntVar(&benchAllocSize, "size", 64, "Size in bytes of each allocation")
	rootCmd.AddCommand(cmd)
}

func newBenchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bench",
		Short: "Time repeated alloc/Reset cycles against one pool",
		Long: `The bench command times how long a pool takes to serve a fixed batch of
allocations and then Reset, repeated across rounds - the request-scoped
lifecycle this allocator is designed for.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench()
		},
	}
}

func runBench() error {
	p, err := pool.New(pool.Options{BlockSize: blockSize})
	if err != nil {
		return fmt.Errorf("create pool: %w", err)
	}
	defer p.Destroy()

	for round := 1; round <= benchRounds; round++ {
		start := time.Now()
		for i := 0; i < benchAllocsEach; i++ {
			if _, err := p.Alloc(benchAllocSize); err != nil {
				return fmt.Errorf("round %d alloc %d: %w", round, i, err)
			}
		}
		elapsed := time.Since(start)
		s := p.Stats()
		fmt.Printf(
			"round %2d: %d allocs in %v (%d blocks, %.1f%% utilization)\n",
			round, benchAllocsEach, elapsed, s.NumBlocks, s.Utilization()*100,
		)
		p.Reset()
	}
	return nil
}
