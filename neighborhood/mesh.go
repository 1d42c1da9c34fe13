package neighborhood

import "github.com/LLNL/adapt-go/field"

// Mesh is the unstructured-mesh neighborhood source (spec.md §4.1): given
// a data set with point-to-cell and cell-to-point relations, it yields the
// union of all co-cell neighbors of v, each exactly once. NewMeshFromCells
// builds that union from cell-to-point connectivity; NewMeshFromAdjacency
// wraps an adjacency list the caller has already deduplicated. Either way
// Mesh itself only stores the resulting adjacency.
type Mesh struct {
	adjacency [][]field.GlobalIndex
}

// NewMeshFromAdjacency wraps a precomputed adjacency list. adjacency[v]
// must already be deduplicated; NewMeshFromAdjacency does not re-check it
// (this mirrors the original's Neighborhood contract, which offers no
// validation beyond bounds).
func NewMeshFromAdjacency(adjacency [][]field.GlobalIndex) *Mesh {
	return &Mesh{adjacency: adjacency}
}

// NewMeshFromCells builds a Mesh from cell-to-point connectivity: each
// entry of cells is the list of point indices belonging to one cell. Two
// points are neighbors iff they co-occur in at least one cell. numPoints
// is the total point count (the size of the resulting adjacency list).
func NewMeshFromCells(numPoints int, cells [][]field.GlobalIndex) *Mesh {
	seen := make([]map[field.GlobalIndex]struct{}, numPoints)
	for _, cell := range cells {
		for _, p := range cell {
			if seen[p] == nil {
				seen[p] = make(map[field.GlobalIndex]struct{})
			}
			for _, q := range cell {
				if q != p {
					seen[p][q] = struct{}{}
				}
			}
		}
	}

	adjacency := make([][]field.GlobalIndex, numPoints)
	for p, set := range seen {
		nbrs := make([]field.GlobalIndex, 0, len(set))
		for q := range set {
			nbrs = append(nbrs, q)
		}
		adjacency[p] = nbrs
	}

	return &Mesh{adjacency: adjacency}
}

// Neighbors returns the co-cell neighbors of v.
func (m *Mesh) Neighbors(v field.GlobalIndex) []field.GlobalIndex {
	assertValidIndex(v, len(m.adjacency))

	return m.adjacency[v]
}
