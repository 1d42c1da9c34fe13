package metric

import (
	"github.com/LLNL/adapt-go/field"
	"github.com/LLNL/adapt-go/mergetree"
	"github.com/LLNL/adapt-go/neighborhood"
)

// LocalThresholdMetric adapts the standalone LocalThreshold sweep to the
// Metric interface, so the CLI can select it the same way it selects
// Threshold, Relevance, and R2 (spec.md §6's CLI enumerates all four
// under one --metric flag). Unlike the others it needs its own
// neighborhood, comparison, and threshold — supplied at construction,
// since Initialize's signature only carries the field and tree.
type LocalThresholdMetric struct {
	nbh       neighborhood.Source
	cmp       field.Comparison
	threshold field.FunctionType

	transform []field.FunctionType
}

// NewLocalThresholdMetric returns a Metric that computes its output via
// LocalThreshold's own inline sweep rather than evaluating a
// previously-built tree.
func NewLocalThresholdMetric(nbh neighborhood.Source, cmp field.Comparison, threshold field.FunctionType) *LocalThresholdMetric {
	return &LocalThresholdMetric{nbh: nbh, cmp: cmp, threshold: threshold}
}

// ExplicitArcs reports that this metric never walks augmented arcs: its
// sweep is entirely self-contained.
func (l *LocalThresholdMetric) ExplicitArcs() bool { return false }

// FillValue returns the output for vertices LocalThreshold never visits.
func (l *LocalThresholdMetric) FillValue() field.FunctionType { return 0 }

// Initialize runs LocalThreshold's own sweep over f, caching the result.
// tree is accepted to satisfy the Metric interface but unused.
func (l *LocalThresholdMetric) Initialize(f *field.Field, tree *mergetree.Tree) {
	transform, err := LocalThreshold(f, l.cmp, l.nbh, l.threshold)
	if err != nil {
		panic(err)
	}

	l.transform = transform
}

// Eval returns the cached LocalThreshold value for vertex id. label is
// accepted to satisfy the Metric interface but unused: the sweep that
// produced l.transform already did its own labeling internally.
func (l *LocalThresholdMetric) Eval(id field.GlobalIndex, label mergetree.NodeID) field.FunctionType {
	if l.transform == nil {
		return l.FillValue()
	}

	return l.transform[id]
}

// EvalTree is never called (ExplicitArcs is false) but is implemented to
// satisfy Metric: it populates each node's Metric from the cached value
// of its own critical vertex (Node.Index).
func (l *LocalThresholdMetric) EvalTree(tree *mergetree.Tree) error {
	if l.transform == nil {
		return ErrNotInitialized
	}

	for i := 0; i < tree.Size(); i++ {
		tree.Node(i).Metric = l.Eval(tree.Node(i).Index, i)
	}

	return nil
}
