package main

import (
	"fmt"
	"log/slog"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/pavanmanishd/memkit/alloc"
	"github.com/pavanmanishd/memkit/config"
	"github.com/pavanmanishd/memkit/pool"
)

type poolFlags struct {
	nodes    int
	nodeSize int
	allocs   int
	frees    int
	overflow bool
}

// poolReport is the result of a pool run.
type poolReport struct {
	Name          string       `json:"name"`
	NodeSize      int          `json:"node_size"`
	NodeCount     int          `json:"node_count"`
	Requested     int          `json:"requested"`
	Served        int          `json:"served"`
	Failed        int          `json:"failed"`
	Freed         int          `json:"freed"`
	Live          int          `json:"live"`
	Peak          int          `json:"peak"`
	Overflowed    bool         `json:"overflowed"`
	OverflowLive  int          `json:"overflow_live"`
	OverflowStats *alloc.Stats `json:"overflow_stats,omitempty"`

	Arena *alloc.ArenaMetrics `json:"arena,omitempty"`
}

func newPoolCmd(g *globals) *cobra.Command {
	f := &poolFlags{}
	cmd := &cobra.Command{
		Use:   "pool",
		Short: "Run allocations against a fixed pool",
		Long: `The pool command builds a fixed pool from the [pool] config section,
performs --allocs allocations, frees the first --frees of them and reports
how the pool and its overflow allocator were used.

Example:
  memkit pool --nodes 64 --allocs 100 --frees 10
  memkit pool --overflow=false --allocs 100 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := g.load(cmd)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("nodes") {
				cfg.Pool.NodeCount = f.nodes
			}
			if flags.Changed("node-size") {
				cfg.Pool.NodeSize = f.nodeSize
			}
			if flags.Changed("overflow") {
				cfg.Pool.Overflow = f.overflow
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			report, err := runPool(cfg, f.allocs, f.frees, logger)
			if err != nil {
				return err
			}
			if g.jsonOut {
				return printJSON(cmd.OutOrStdout(), report)
			}
			printPoolReport(cmd, report)
			return nil
		},
	}
	cmd.Flags().IntVar(&f.nodes, "nodes", 0, "Node count (overrides pool.node_count)")
	cmd.Flags().IntVar(&f.nodeSize, "node-size", 0, "Node size in bytes (overrides pool.node_size)")
	cmd.Flags().BoolVar(&f.overflow, "overflow", true, "Serve requests past the pool from the configured allocator")
	cmd.Flags().IntVar(&f.allocs, "allocs", 128, "Number of allocations")
	cmd.Flags().IntVar(&f.frees, "frees", 0, "Number of allocations to free afterwards")
	return cmd
}

// poolAllocator is the part of the pool allocators a run needs.
type poolAllocator interface {
	alloc.Allocator
	Pool() *pool.FixedPool
}

func runPool(cfg config.Config, allocs, frees int, logger *slog.Logger) (poolReport, error) {
	if allocs < 0 || frees < 0 {
		return poolReport{}, errors.Newf("allocs and frees must not be negative (got %d, %d)", allocs, frees)
	}
	pc := cfg.Pool
	mem := make([]byte, pc.NodeCount*pc.NodeSize+pc.Alignment)
	opts := []pool.Option{pool.WithName(cfg.Allocator.Name + "-pool"), pool.WithLogger(logger)}

	var (
		a       poolAllocator
		ov      *pool.OverflowAllocator
		tracker *alloc.Tracking
		base    alloc.Allocator
	)
	if pc.Overflow {
		var err error
		if base, err = cfg.NewAllocator(logger); err != nil {
			return poolReport{}, err
		}
		tracker = alloc.NewTracking(base, alloc.WithName("overflow"))
		ov, err = pool.NewOverflowAllocator(mem, pc.NodeSize, pc.Alignment, 0, append(opts, pool.WithOverflow(tracker))...)
		if err != nil {
			return poolReport{}, err
		}
		a = ov
	} else {
		fa, err := pool.NewFixedAllocator(mem, pc.NodeSize, pc.Alignment, 0, opts...)
		if err != nil {
			return poolReport{}, err
		}
		a = fa
	}

	report := poolReport{
		Name:      a.Name(),
		NodeSize:  a.Pool().NodeSize(),
		NodeCount: a.Pool().NodeCount(),
		Requested: allocs,
	}
	blocks := make([][]byte, 0, allocs)
	for range allocs {
		b := a.Allocate(pc.NodeSize, alloc.FlagTemp)
		if b == nil {
			report.Failed++
			continue
		}
		blocks = append(blocks, b)
	}
	report.Served = len(blocks)
	for _, b := range blocks[:min(frees, len(blocks))] {
		a.Deallocate(b, pc.NodeSize)
		report.Freed++
	}
	logger.Debug("pool run finished",
		slog.String("pool", report.Name),
		slog.Int("served", report.Served),
		slog.Int("freed", report.Freed))

	if ov != nil {
		report.Live = ov.CurrentSize()
		report.Peak = ov.PeakSize()
		report.Overflowed = ov.HasOverflowed()
		report.OverflowLive = ov.OverflowCount()
		stats := tracker.Stats()
		report.OverflowStats = &stats
		if m, ok := arenaMetrics(base); ok {
			report.Arena = &m
		}
	} else {
		report.Live = a.Pool().CurrentSize()
		report.Peak = a.Pool().PeakSize()
	}
	return report, nil
}

// arenaMetrics looks through the config wrappers for an arena.
func arenaMetrics(a alloc.Allocator) (alloc.ArenaMetrics, bool) {
	for {
		switch x := a.(type) {
		case *alloc.Arena:
			return x.Metrics(), true
		case *alloc.Tracking:
			a = x.Inner()
		case *alloc.Sync:
			var m alloc.ArenaMetrics
			var ok bool
			x.Do(func(inner alloc.Allocator) { m, ok = arenaMetrics(inner) })
			return m, ok
		default:
			return alloc.ArenaMetrics{}, false
		}
	}
}

func printPoolReport(cmd *cobra.Command, r poolReport) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Pool %s: %d nodes x %d bytes\n", r.Name, r.NodeCount, r.NodeSize)
	fmt.Fprintf(out, "  requested: %d\n", r.Requested)
	fmt.Fprintf(out, "  served:    %d\n", r.Served)
	fmt.Fprintf(out, "  failed:    %d\n", r.Failed)
	fmt.Fprintf(out, "  freed:     %d\n", r.Freed)
	fmt.Fprintf(out, "  live:      %d (peak %d)\n", r.Live, r.Peak)
	if r.OverflowStats != nil {
		fmt.Fprintf(out, "  overflowed: %t, overflow blocks live: %d\n", r.Overflowed, r.OverflowLive)
		fmt.Fprintf(out, "  overflow allocator: %d allocations, %d deallocations, peak %d bytes\n",
			r.OverflowStats.Allocations, r.OverflowStats.Deallocations, r.OverflowStats.PeakBytes)
	}
	if r.Arena != nil {
		fmt.Fprintf(out, "  arena: %d of %d bytes in %d chunks (%.1f%%)\n",
			r.Arena.SizeInUse, r.Arena.Capacity, r.Arena.NumChunks, r.Arena.Utilization*100)
	}
}
