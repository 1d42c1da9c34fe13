package neighborhood

import (
	"sort"
	"testing"
)

func TestMeshFromCellsUnion(t *testing.T) {
	// Two triangles sharing an edge: {0,1,2} and {1,2,3}.
	m := NewMeshFromCells(4, [][]int{{0, 1, 2}, {1, 2, 3}})

	nbrs := append([]int{}, m.Neighbors(1)...)
	sort.Ints(nbrs)
	want := []int{0, 2, 3}
	if len(nbrs) != len(want) {
		t.Fatalf("neighbors of 1 = %v, want %v", nbrs, want)
	}
	for i := range want {
		if nbrs[i] != want[i] {
			t.Fatalf("neighbors of 1 = %v, want %v", nbrs, want)
		}
	}
}

func TestMeshFromAdjacency(t *testing.T) {
	m := NewMeshFromAdjacency([][]int{{1}, {0, 2}, {1}})
	if len(m.Neighbors(1)) != 2 {
		t.Fatalf("neighbors of 1 = %v, want len 2", m.Neighbors(1))
	}
}

func TestMeshNeighborsPanicsOutOfRange(t *testing.T) {
	m := NewMeshFromAdjacency([][]int{{1}, {0}})

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for out-of-range index")
		}
	}()
	m.Neighbors(5)
}
