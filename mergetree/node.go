package mergetree

import "github.com/LLNL/adapt-go/field"

// NodeID is the id of a tree node, assigned in creation order. Per
// spec.md §4.3, creation order equals sort order: for any two nodes x, y,
// x.ID < y.ID iff F[x.Index] succeeds F[y.Index] under the sweep's
// comparison (ties broken by global index, as provided by the sort).
type NodeID = int

// Null is the sentinel "no node" id, used for Down/Up/Rep before they are
// set and for roots/leaves.
const Null NodeID = field.NullLabel

// Node is a critical point of the field: a local extremum or a saddle.
type Node struct {
	// Index is the global index of the critical vertex.
	Index field.GlobalIndex

	// Down is this node's child (the subtree it merges into descending
	// sort order); Null marks a root.
	Down NodeID

	// Up is one parent of this node; Null marks a leaf (an extremum of
	// the opposite kind to the tree's root).
	Up NodeID

	// Next links this node into the circular sibling ring of its
	// siblings under the same Up-node's Down-child-set. Following Next
	// from any child of a node returns to itself when there is exactly
	// one child.
	Next NodeID

	// Rep is the node id of the highest-valued ancestor-free extremum in
	// this subtree. It is monotone non-decreasing along Down edges in
	// sort-time (i.e. lower ids, since creation order is sort order).
	Rep NodeID

	// Metric is the evaluated metric value at this node, populated by
	// Inflate/Deflate or by a Metric's tree-level Eval.
	Metric field.FunctionType
}

// newNode constructs a Node for the critical vertex at index id, with
// Next initialized to self (a sibling ring of one).
func newNode(index field.GlobalIndex, id NodeID) Node {
	return Node{
		Index: index,
		Down:  Null,
		Up:    Null,
		Next:  id,
		Rep:   Null,
	}
}
