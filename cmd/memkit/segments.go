package main

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/pavanmanishd/memkit/alloc"
	"github.com/pavanmanishd/memkit/segmented"
)

type segmentsReport struct {
	Elements    int         `json:"elements"`
	SegmentSize int         `json:"segment_size"`
	Segments    int         `json:"segments"`
	Fill        []int       `json:"fill"`
	Allocator   string      `json:"allocator"`
	Stats       alloc.Stats `json:"stats"`
}

func newSegmentsCmd(g *globals) *cobra.Command {
	var count, size int
	cmd := &cobra.Command{
		Use:   "segments",
		Short: "Fill a segmented vector and show its segments",
		Long: `The segments command pushes --count elements into a segmented vector
whose segments hold --segment-size elements each, then prints the number of
segments and how full each one is.

Example:
  memkit segments --count 100 --segment-size 16`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 0 || size <= 0 {
				return errors.Newf("invalid --count %d or --segment-size %d", count, size)
			}
			cfg, logger, err := g.load(cmd)
			if err != nil {
				return err
			}
			base, err := cfg.NewAllocator(logger)
			if err != nil {
				return err
			}
			tracker := alloc.NewTracking(base, alloc.WithName("segments"))
			v := segmented.NewVector[uint64](size,
				segmented.WithAllocator(tracker),
				segmented.WithLogger(logger))
			for i := range count {
				if v.PushBack(uint64(i)) == nil {
					return errors.Newf("allocator %q ran out of memory after %d elements", base.Name(), i)
				}
			}
			report := segmentsReport{
				Elements:    v.Len(),
				SegmentSize: v.SegmentSize(),
				Segments:    v.SegmentCount(),
				Fill:        v.SegmentLens(),
				Allocator:   base.Name(),
				Stats:       tracker.Stats(),
			}
			if g.jsonOut {
				return printJSON(cmd.OutOrStdout(), report)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%d elements in %d segments of %d\n", report.Elements, report.Segments, report.SegmentSize)
			for i, n := range report.Fill {
				fmt.Fprintf(out, "  segment %d: %d/%d\n", i, n, report.SegmentSize)
			}
			fmt.Fprintf(out, "  %s: %d bytes in use\n", report.Allocator, report.Stats.BytesInUse)
			return nil
		},
	}
	cmd.Flags().IntVar(&count, "count", 100, "Number of elements to push")
	cmd.Flags().IntVar(&size, "segment-size", 16, "Elements per segment")
	return cmd
}
