package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var exerciseCfg = workloadConfig{}

func init() {
	cmd := newExerciseCmd()
	cmd.Flags().IntVar(&exerciseCfg.Ops, "ops", 10000, "Number of operations to run")
	cmd.Flags().Int64Var(&exerciseCfg.Seed, "seed", 1, "Workload RNG seed")
	cmd.Flags().Int64Var(&exerciseCfg.MaxSize, "max-size", 512, "Largest single allocation in bytes")
	cmd.Flags().Int64Var(&exerciseCfg.Limit, "limit", 0, "Arena break limit in bytes (0 = unlimited)")
	rootCmd.AddCommand(cmd)
}

func newExerciseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exercise",
		Short: "Run a synthetic workload and report allocator statistics",
		Long: `The exercise command drives a fresh allocator with a seeded random
mix of malloc, calloc, free, and realloc, then prints the allocator's
counters: growth, splits, coalesces, and current free-list totals.

Example:
  heapctl exercise --ops 50000 --max-size 1024
  heapctl exercise --seed 7 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExercise()
		},
	}
	return cmd
}

func runExercise() error {
	printVerbose("Running %d operations (seed %d, max size %d)\n",
		exerciseCfg.Ops, exerciseCfg.Seed, exerciseCfg.MaxSize)

	a, oom, err := runWorkload(exerciseCfg)
	if err != nil {
		return fmt.Errorf("workload failed: %w", err)
	}

	stats := a.Stats()
	if jsonOut {
		return printJSON(stats)
	}

	printInfo("\nAllocator Statistics:\n")
	printInfo("  Malloc calls:       %d\n", stats.AllocCalls)
	printInfo("  Free calls:         %d\n", stats.FreeCalls)
	printInfo("  Realloc calls:      %d (%d in place, %d moved)\n",
		stats.ReallocCalls, stats.ReallocInPlace, stats.ReallocMoved)
	printInfo("  Heap growths:       %d (%d bytes)\n", stats.GrowCalls, stats.GrowBytes)
	printInfo("  Splits:             %d\n", stats.SplitCount)
	printInfo("  Coalesces:          %d forward, %d backward\n",
		stats.CoalesceForward, stats.CoalesceBackward)
	printInfo("  Bytes allocated:    %d\n", stats.BytesAllocated)
	printInfo("  Bytes freed:        %d\n", stats.BytesFreed)
	printInfo("  Heap size:          %d bytes\n", stats.HeapSize)
	printInfo("  Free list:          %d blocks, %d bytes\n", stats.FreeBlocks, stats.FreeBytes)
	if oom > 0 {
		printInfo("  Out-of-memory hits: %d\n", oom)
	}
	return nil
}
