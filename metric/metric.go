// Package metric computes per-vertex or per-node scalar summaries over a
// merge/split tree: a pluggable evaluation step run after a sweep, in the
// style of the original tool's Relevance/R2 metric hierarchy
// (original_source/src/Metric.h, AdaptiveThreshold.h).
package metric

import (
	"errors"
	"sort"

	"github.com/LLNL/adapt-go/field"
	"github.com/LLNL/adapt-go/mergetree"
	"github.com/LLNL/adapt-go/neighborhood"
)

// ErrNotInitialized indicates Eval or EvalTree was called before
// Initialize.
var ErrNotInitialized = errors.New("metric: not initialized")

// Metric is the capability interface every metric implements, mirroring
// the base class in original_source/src/Metric.h. A metric that sets
// ExplicitArcs reports it needs the sweep run with Options.Augmented so
// EvalTree can walk each arc's full vertex list; one that doesn't is
// evaluated per vertex via Eval without ever materializing arcs.
type Metric interface {
	// ExplicitArcs reports whether this metric requires arcs populated
	// with their full vertex lists (sweep.Options.Augmented).
	ExplicitArcs() bool

	// FillValue is the output value for vertices with no label (below
	// threshold).
	FillValue() field.FunctionType

	// Initialize binds the metric to the field and tree it will evaluate
	// against. Must be called before Eval or EvalTree.
	Initialize(f *field.Field, tree *mergetree.Tree)

	// Eval computes the metric's value for vertex id, owned by the arc
	// with the given label. Used when ExplicitArcs is false: the metric
	// is evaluated independently for every swept vertex.
	Eval(id field.GlobalIndex, label mergetree.NodeID) field.FunctionType

	// EvalTree computes the metric once per node across the whole tree,
	// storing results in each Node's Metric field. Used when
	// ExplicitArcs is true: arcs already hold every vertex they need.
	EvalTree(tree *mergetree.Tree) error
}

// LocalThreshold computes a per-vertex relevance volume directly during a
// sweep, without constructing a merge tree: for each vertex it is one
// minus the distance to the highest maximum of its subtree, normalized by
// that maximum's distance to the global minimum (original_source/src/AdaptiveThreshold.h,
// compute_local_thresholds). This is an independent, lighter-weight path
// than building a Tree and evaluating Relevance against it — useful when
// only the scalar relevance volume is wanted, not the tree itself.
func LocalThreshold(f *field.Field, cmp field.Comparison, nbh neighborhood.Source, threshold field.FunctionType) ([]field.FunctionType, error) {
	transform := make([]field.FunctionType, f.Len())
	label := make([]field.GlobalIndex, f.Len())
	localMax := make(map[field.GlobalIndex]field.FunctionType)

	globalMin := f.At(0)
	order := make([]field.GlobalIndex, 0, f.Len())
	for v := 0; v < f.Len(); v++ {
		label[v] = field.NullLabel
		value := f.At(v)
		if cmp.Greater(globalMin, value) {
			globalMin = value
		}
		if cmp.Greater(value, threshold) {
			order = append(order, v)
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return cmp.Greater(f.At(order[i]), f.At(order[j]))
	})

	// A label here is a swept vertex index, not a sequential tree node id,
	// so unlike the sweep driver's use of unionfind (which relies on
	// creation order to always satisfy from < to) this walk needs the
	// original's unconstrained rep/addLabel/mergeLabel(from, to) — "to"
	// always survives, whichever vertex that is.
	uf := newLabelUnionFind()

	for _, v := range order {
		for _, w := range nbh.Neighbors(v) {
			if label[w] == field.NullLabel {
				continue
			}

			rep := uf.rep(label[w])

			switch {
			case label[v] == field.NullLabel:
				label[v] = rep

			case rep != label[v]:
				if label[v] != v {
					uf.addLabel(v)
					localMax[v] = f.At(v)

					uf.mergeLabel(label[v], v)

					if cmp.Greater(localMax[label[v]], localMax[v]) {
						localMax[v] = localMax[label[v]]
					}

					label[v] = v
				}

				uf.mergeLabel(rep, v)
				if cmp.Greater(localMax[rep], localMax[v]) {
					localMax[v] = localMax[rep]
				}
			}
		}

		if label[v] == field.NullLabel {
			uf.addLabel(v)
			label[v] = v
			localMax[v] = f.At(v)
		}

		top := localMax[label[v]]
		span := absFloat(top - globalMin)
		if span == 0 {
			transform[v] = 1
		} else {
			transform[v] = 1 - absFloat(top-f.At(v))/span
		}
	}

	return transform, nil
}

// labelUnionFind is the unconstrained disjoint-set used by LocalThreshold,
// matching original_source/src/UnionFind.h: mergeLabel(from, to) always
// makes to the surviving representative, regardless of numeric order.
type labelUnionFind struct {
	parent map[field.GlobalIndex]field.GlobalIndex
}

func newLabelUnionFind() *labelUnionFind {
	return &labelUnionFind{parent: make(map[field.GlobalIndex]field.GlobalIndex)}
}

func (u *labelUnionFind) addLabel(label field.GlobalIndex) {
	u.parent[label] = label
}

func (u *labelUnionFind) rep(label field.GlobalIndex) field.GlobalIndex {
	root := label
	for u.parent[root] != root {
		root = u.parent[root]
	}

	for cur := label; cur != root; {
		next := u.parent[cur]
		u.parent[cur] = root
		cur = next
	}

	return root
}

func (u *labelUnionFind) mergeLabel(from, to field.GlobalIndex) {
	u.parent[u.rep(from)] = to
}

func absFloat(v field.FunctionType) field.FunctionType {
	if v < 0 {
		return -v
	}

	return v
}
