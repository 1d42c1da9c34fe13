package mergetree

import "github.com/LLNL/adapt-go/field"

// Arc owns the ordered sequence of non-critical vertex indices between a
// node and its descendant. Arc i is paired one-to-one with Node i; the
// head vertex always equals node i's Index.
type Arc struct {
	Vertices []field.GlobalIndex
}

// newArc constructs an Arc whose sole member is its head vertex.
func newArc(head field.GlobalIndex) Arc {
	return Arc{Vertices: []field.GlobalIndex{head}}
}

// Size returns the number of vertices currently owned by the arc.
func (a *Arc) Size() int {
	return len(a.Vertices)
}
