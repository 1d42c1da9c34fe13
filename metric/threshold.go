package metric

import (
	"github.com/LLNL/adapt-go/field"
	"github.com/LLNL/adapt-go/mergetree"
)

// Threshold is the identity metric: the output at a vertex is simply its
// own function value (spec.md §6, "Threshold — identity: the function
// value of the vertex"). It needs neither explicit arcs nor a tree walk;
// Eval ignores label entirely.
type Threshold struct {
	data *field.Field
	fill field.FunctionType
}

// NewThreshold returns an uninitialized Threshold metric.
func NewThreshold() *Threshold {
	return &Threshold{}
}

// ExplicitArcs reports that Threshold can be computed without augmented
// arcs.
func (t *Threshold) ExplicitArcs() bool { return false }

// FillValue returns the output for unlabeled vertices.
func (t *Threshold) FillValue() field.FunctionType { return t.fill }

// Initialize binds the metric to f. tree is accepted to satisfy the
// Metric interface but unused: the identity value never depends on tree
// structure.
func (t *Threshold) Initialize(f *field.Field, tree *mergetree.Tree) {
	t.data = f
}

// Eval returns F[id].
func (t *Threshold) Eval(id field.GlobalIndex, label mergetree.NodeID) field.FunctionType {
	if t.data == nil {
		return t.fill
	}

	return t.data.At(id)
}

// EvalTree evaluates Eval once per node, storing the result in each
// Node's Metric field.
func (t *Threshold) EvalTree(tree *mergetree.Tree) error {
	if t.data == nil {
		return ErrNotInitialized
	}

	for i := 0; i < tree.Size(); i++ {
		tree.Node(i).Metric = t.Eval(tree.Node(i).Index, i)
	}

	return nil
}
