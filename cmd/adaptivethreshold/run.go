// Package main implements the adaptivethreshold CLI: read a raw scalar
// volume, build its merge or split tree, optionally split the tree,
// evaluate a metric, and write the transformed volume plus (optionally)
// the .family/.seg topology export — the Go rewrite of
// original_source/src/adaptive_threshold.cpp's command-line tool.
package main

import (
	"errors"
	"fmt"

	"github.com/LLNL/adapt-go/field"
	"github.com/LLNL/adapt-go/mergetree"
	"github.com/LLNL/adapt-go/metric"
	"github.com/LLNL/adapt-go/neighborhood"
	"github.com/LLNL/adapt-go/rawio"
	"github.com/LLNL/adapt-go/sweep"
	"github.com/LLNL/adapt-go/topofile"
)

// Sentinel errors for malformed flag combinations, checked before any
// work begins (adaptive_threshold.cpp's parse_command_line validation).
var (
	ErrMissingInput    = errors.New("adaptivethreshold: --i is required")
	ErrMissingOutput   = errors.New("adaptivethreshold: --o is required")
	ErrBadDims         = errors.New("adaptivethreshold: --dim requires three positive integers")
	ErrUnknownTreeType = errors.New("adaptivethreshold: --tree-type must be \"merge\" (0) or \"split\" (1)")
	ErrUnknownSplit    = errors.New("adaptivethreshold: --split-type must be \"length\" or \"size\"")
	ErrUnknownMetric   = errors.New("adaptivethreshold: --metric must be \"threshold\", \"relevance\", \"local\", or \"r2\"")
)

// config holds every parsed flag; runAdaptiveThreshold is the pure
// function under test, independent of cobra's flag machinery.
type config struct {
	input      string
	output     string
	dims       field.Dims
	treeType   string
	threshold  field.FunctionType
	splitType  string
	splitLimit field.FunctionType
	metricName string
	family     string
	vtk        string
	verbose    bool
}

func (c config) validate() error {
	if c.input == "" {
		return ErrMissingInput
	}
	if c.output == "" {
		return ErrMissingOutput
	}
	if c.dims.W <= 0 || c.dims.H <= 0 || c.dims.D <= 0 {
		return ErrBadDims
	}
	if c.treeType != "merge" && c.treeType != "split" {
		return ErrUnknownTreeType
	}
	if c.splitLimit > 0 && c.splitType != "length" && c.splitType != "size" {
		return ErrUnknownSplit
	}
	switch c.metricName {
	case "threshold", "relevance", "local", "r2":
	default:
		return ErrUnknownMetric
	}

	return nil
}

// runAdaptiveThreshold executes the full pipeline described by cfg. It
// returns a plain Go error on failure (nil on success) — the inverse of
// original_source/src/adaptive_threshold.cpp's main(), which returned 0
// on a command-line parse failure and 1 on success (see DESIGN.md for
// why that convention is not reproduced at the process-exit level).
func runAdaptiveThreshold(cfg config) error {
	// --tree-type also accepts the numeric form: 0 = merge, 1 = split.
	switch cfg.treeType {
	case "0":
		cfg.treeType = "merge"
	case "1":
		cfg.treeType = "split"
	}

	if err := cfg.validate(); err != nil {
		return err
	}

	f, err := rawio.ReadVolume(cfg.input, cfg.dims)
	if err != nil {
		return fmt.Errorf("adaptivethreshold: %w", err)
	}

	var cmp field.Comparison
	var direction int
	if cfg.treeType == "split" {
		cmp = field.SplitComparison()
		direction = topofile.SplitDirection
	} else {
		cmp = field.MergeComparison()
		direction = topofile.MergeDirection
	}

	nbh, err := neighborhood.NewGrid(cfg.dims, neighborhood.Conn26)
	if err != nil {
		return fmt.Errorf("adaptivethreshold: %w", err)
	}

	var m metric.Metric
	switch cfg.metricName {
	case "threshold":
		m = metric.NewThreshold()
	case "local":
		m = metric.NewLocalThresholdMetric(nbh, cmp, cfg.threshold)
	case "r2":
		m = metric.NewR2()
	default:
		m = metric.NewRelevance()
	}

	tree := mergetree.New()
	label := make([]mergetree.NodeID, f.Len())

	// The family/segmentation export always needs each arc's full vertex
	// list, regardless of whether the chosen metric itself does.
	augmented := m.ExplicitArcs() || cfg.family != ""

	if err := sweep.Run(f, cmp, nbh, cfg.threshold, tree, sweep.Options{
		Augmented: augmented,
		Verbose:   cfg.verbose,
	}, label); err != nil {
		return fmt.Errorf("adaptivethreshold: %w", err)
	}

	if cfg.splitLimit > 0 {
		switch cfg.splitType {
		case "size":
			tree.SplitBySize(int(cfg.splitLimit))
		default:
			tree.SplitByLength(f, cfg.splitLimit)
		}
	}

	m.Initialize(f, tree)

	transform := make([]field.FunctionType, f.Len())
	if m.ExplicitArcs() {
		if err := m.EvalTree(tree); err != nil {
			return fmt.Errorf("adaptivethreshold: %w", err)
		}
		for v, l := range label {
			if l == mergetree.Null {
				transform[v] = m.FillValue()
			} else {
				transform[v] = tree.Node(l).Metric
			}
		}
	} else {
		for v, l := range label {
			transform[v] = m.Eval(v, l)
		}
	}

	if err := rawio.WriteValues(cfg.output, cfg.dims, transform); err != nil {
		return fmt.Errorf("adaptivethreshold: %w", err)
	}

	if cfg.vtk != "" {
		transformed, err := field.New(cfg.dims, transform)
		if err != nil {
			return fmt.Errorf("adaptivethreshold: %w", err)
		}
		if err := rawio.WriteVTKStructuredPoints(cfg.vtk, transformed); err != nil {
			return fmt.Errorf("adaptivethreshold: %w", err)
		}
	}

	if cfg.family != "" {
		// BuildFamily reads every node's Metric field to compute life
		// intervals; the per-vertex branch above never touches it, so it
		// is populated here from each node's own critical vertex.
		if !m.ExplicitArcs() {
			for i := 0; i < tree.Size(); i++ {
				n := tree.Node(i)
				n.Metric = m.Eval(n.Index, i)
			}
		}

		fam := topofile.BuildFamily(tree, cfg.metricName, direction)
		if err := topofile.WriteFamily(cfg.family+".family", fam); err != nil {
			return fmt.Errorf("adaptivethreshold: %w", err)
		}

		arcs := make([][]field.GlobalIndex, tree.Size())
		for i := 0; i < tree.Size(); i++ {
			arcs[i] = tree.Arc(i).Vertices
		}
		if err := topofile.WriteSegmentation(cfg.family+".seg", cfg.dims, arcs); err != nil {
			return fmt.Errorf("adaptivethreshold: %w", err)
		}
	}

	return nil
}
