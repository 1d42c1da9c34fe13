package main

import (
	"github.com/spf13/cobra"
)

var flags config

// newRootCmd builds the adaptivethreshold cobra command, mirroring
// adaptive_threshold.cpp's --i/--o/--dim/--tree-type/--threshold/
// --split-type/--split/--metric options as long-form flags.
func newRootCmd() *cobra.Command {
	var dims []int

	cmd := &cobra.Command{
		Use:   "adaptivethreshold",
		Short: "Build a merge/split tree of a scalar volume and evaluate a topological metric over it",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(dims) != 3 {
				return ErrBadDims
			}
			flags.dims.W, flags.dims.H, flags.dims.D = dims[0], dims[1], dims[2]

			return runAdaptiveThreshold(flags)
		},
	}

	cmd.Flags().StringVar(&flags.input, "i", "", "input raw volume file (required)")
	cmd.Flags().StringVar(&flags.output, "o", "", "output transformed volume file (required)")
	cmd.Flags().IntSliceVar(&dims, "dim", []int{0, 0, 0}, "volume dimensions: W H D")
	cmd.Flags().StringVar(&flags.treeType, "tree-type", "merge", "\"merge\" (0) or \"split\" (1)")
	cmd.Flags().Float32Var(&flags.threshold, "threshold", 0, "lower (merge) or upper (split) threshold")
	cmd.Flags().StringVar(&flags.splitType, "split-type", "length", "\"length\" or \"size\"")
	cmd.Flags().Float32Var(&flags.splitLimit, "split", -1, "split limit; <= 0 disables splitting")
	cmd.Flags().StringVar(&flags.metricName, "metric", "relevance", "\"threshold\", \"relevance\", \"local\", or \"r2\"")
	cmd.Flags().StringVar(&flags.family, "family", "", "base path for .family/.seg topology export (optional)")
	cmd.Flags().StringVar(&flags.vtk, "vtk", "", "path for an ASCII legacy VTK structured-points export (optional)")
	cmd.Flags().BoolVar(&flags.verbose, "verbose", false, "report sweep progress to stderr")

	return cmd
}

// Execute runs the root command, returning the same error RunE returns.
func Execute() error {
	return newRootCmd().Execute()
}
