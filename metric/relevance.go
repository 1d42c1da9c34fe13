package metric

import (
	"github.com/LLNL/adapt-go/field"
	"github.com/LLNL/adapt-go/mergetree"
)

// Relevance is the per-vertex distance to its arc's representative
// extremum, normalized by that extremum's distance to the field's global
// minimum (spec.md §6, "Relevance"):
//
//	1 - |rep_value(label) - F[v]| / |rep_value(label) - global_min|
//
// rep_value is the function value at the node's Rep — the highest-valued
// ancestor-free extremum of its subtree — so vertices on the same arc but
// at different depths in a larger subtree do not all collapse to one
// value (original_source/src/adaptive_threshold.cpp selects this as the
// default metric, "relevance"). It does not need explicit arcs: the Rep
// field the sweep already maintains is enough to evaluate any vertex
// directly.
type Relevance struct {
	data *field.Field
	tree *mergetree.Tree
	fill field.FunctionType
}

// NewRelevance returns an uninitialized Relevance metric.
func NewRelevance() *Relevance {
	return &Relevance{fill: 0}
}

// ExplicitArcs reports that Relevance can be computed without augmented
// arcs.
func (r *Relevance) ExplicitArcs() bool { return false }

// FillValue returns the output for unlabeled vertices.
func (r *Relevance) FillValue() field.FunctionType { return r.fill }

// Initialize binds the metric to f and tree.
func (r *Relevance) Initialize(f *field.Field, tree *mergetree.Tree) {
	r.data = f
	r.tree = tree
}

// Eval returns vertex id's relevance against label's representative
// extremum, per the spec.md formula above.
func (r *Relevance) Eval(id field.GlobalIndex, label mergetree.NodeID) field.FunctionType {
	if r.tree == nil || label == mergetree.Null {
		return r.fill
	}

	rep := r.tree.Node(label).Rep
	repValue := r.data.At(r.tree.Node(rep).Index)

	span := absFloat(repValue - r.tree.Minimum())
	if span == 0 {
		return 1
	}

	return 1 - absFloat(repValue-r.data.At(id))/span
}

// EvalTree evaluates Eval once per node, storing the result in each
// Node's Metric field.
func (r *Relevance) EvalTree(tree *mergetree.Tree) error {
	if r.data == nil {
		return ErrNotInitialized
	}

	for i := 0; i < tree.Size(); i++ {
		tree.Node(i).Metric = r.Eval(tree.Node(i).Index, i)
	}

	return nil
}
