// Package adapt builds and evaluates topological merge/split trees of
// scalar fields sampled on regular 3-D grids.
//
// A merge tree tracks how the superlevel sets {x : f(x) >= t} of a scalar
// field split into connected components as t decreases from the field's
// maximum to its minimum; a split tree is the same construction on -f. Both
// are produced by a single sweep over the field's vertices in descending
// order, using a union-find over already-swept components (package sweep).
// A pluggable metric (package metric) then scores the swept vertices or the
// tree's nodes — the identity threshold, relevance against each subtree's
// representative extremum, or a goodness-of-fit measure over an arc's
// vertices — and that score is splatted back onto the volume to produce an
// adaptively thresholded field.
//
// Package layout:
//
//	field/       — the scalar field, grid dimensions, and the merge/split
//	               comparison predicate every other package is parameterized over
//	neighborhood/ — 6- and 26-connected grid adjacency
//	unionfind/   — sequential-label union-find used by the sweep
//	mergetree/   — the tree itself: nodes, sibling rings, arcs, Inflate/Deflate
//	sweep/       — the sweep algorithm that builds a tree from a field
//	metric/      — Relevance, R2, and the lighter-weight LocalThreshold
//	rawio/       — raw and legacy VTK volume I/O
//	topofile/    — .family/.seg topology export
//	cmd/adaptivethreshold/ — the CLI front-end
//
// Build and Transform wire these together into the same pipeline the CLI
// drives; most callers embedding this module will want them instead of
// assembling a sweep by hand.
package adapt

import (
	"fmt"

	"github.com/LLNL/adapt-go/field"
	"github.com/LLNL/adapt-go/mergetree"
	"github.com/LLNL/adapt-go/metric"
	"github.com/LLNL/adapt-go/neighborhood"
	"github.com/LLNL/adapt-go/sweep"
)

// Result bundles a swept tree together with the per-vertex label array the
// sweep produced, and the field it was built from.
type Result struct {
	Tree  *mergetree.Tree
	Label []mergetree.NodeID
	Field *field.Field
}

// Build runs a full sweep of f over conn, producing either a merge tree
// (cmp = field.MergeComparison()) or a split tree (field.SplitComparison()).
// augmented controls whether arcs retain their full vertex lists, required
// by any metric with ExplicitArcs() true and by topology export.
func Build(f *field.Field, cmp field.Comparison, conn neighborhood.Connectivity, threshold field.FunctionType, augmented bool) (*Result, error) {
	nbh, err := neighborhood.NewGrid(f.Dims, conn)
	if err != nil {
		return nil, fmt.Errorf("adapt: %w", err)
	}

	tree := mergetree.New()
	label := make([]mergetree.NodeID, f.Len())

	if err := sweep.Run(f, cmp, nbh, threshold, tree, sweep.Options{Augmented: augmented}, label); err != nil {
		return nil, fmt.Errorf("adapt: %w", err)
	}

	return &Result{Tree: tree, Label: label, Field: f}, nil
}

// Transform evaluates m over r's tree and returns one value per vertex of
// r.Field, using m.FillValue() for vertices the sweep never labeled.
func Transform(r *Result, m metric.Metric) ([]field.FunctionType, error) {
	m.Initialize(r.Field, r.Tree)

	out := make([]field.FunctionType, r.Field.Len())

	if m.ExplicitArcs() {
		if err := m.EvalTree(r.Tree); err != nil {
			return nil, fmt.Errorf("adapt: %w", err)
		}
		for v, l := range r.Label {
			if l == mergetree.Null {
				out[v] = m.FillValue()
			} else {
				out[v] = r.Tree.Node(l).Metric
			}
		}
		return out, nil
	}

	for v, l := range r.Label {
		out[v] = m.Eval(v, l)
	}

	return out, nil
}
