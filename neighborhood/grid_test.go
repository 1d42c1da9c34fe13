package neighborhood

import (
	"sort"
	"testing"

	"github.com/LLNL/adapt-go/field"
)

func TestNewGridRejectsZeroDims(t *testing.T) {
	if _, err := NewGrid(field.Dims{W: 0, H: 1, D: 1}, Conn6); err != ErrZeroDims {
		t.Fatalf("err = %v, want ErrZeroDims", err)
	}
}

func TestGridConn6Corner(t *testing.T) {
	dims := field.Dims{W: 3, H: 3, D: 3}
	g, err := NewGrid(dims, Conn6)
	if err != nil {
		t.Fatal(err)
	}

	// Corner (0,0,0) has exactly 3 face-neighbors.
	nbrs := g.Neighbors(dims.FromCoord(0, 0, 0))
	if len(nbrs) != 3 {
		t.Fatalf("len(neighbors) = %d, want 3", len(nbrs))
	}

	// Center (1,1,1) has exactly 6 face-neighbors.
	nbrs = g.Neighbors(dims.FromCoord(1, 1, 1))
	if len(nbrs) != 6 {
		t.Fatalf("len(neighbors) = %d, want 6", len(nbrs))
	}
}

func TestGridConn26Center(t *testing.T) {
	dims := field.Dims{W: 3, H: 3, D: 3}
	g, err := NewGrid(dims, Conn26)
	if err != nil {
		t.Fatal(err)
	}

	nbrs := g.Neighbors(dims.FromCoord(1, 1, 1))
	if len(nbrs) != 26 {
		t.Fatalf("len(neighbors) = %d, want 26", len(nbrs))
	}

	nbrs = g.Neighbors(dims.FromCoord(0, 0, 0))
	if len(nbrs) != 7 {
		t.Fatalf("len(neighbors) = %d, want 7", len(nbrs))
	}
}

func TestGridNeighborsSymmetric(t *testing.T) {
	dims := field.Dims{W: 4, H: 3, D: 2}
	g, err := NewGrid(dims, Conn26)
	if err != nil {
		t.Fatal(err)
	}

	for v := 0; v < dims.Count(); v++ {
		for _, w := range append([]field.GlobalIndex{}, g.Neighbors(v)...) {
			back := append([]field.GlobalIndex{}, g.Neighbors(w)...)
			sort.Ints(back)
			i := sort.SearchInts(back, v)
			if i == len(back) || back[i] != v {
				t.Errorf("neighbor relation not symmetric: %d -> %d but not back", v, w)
			}
		}
	}
}

func TestGridNeighborsPanicsOutOfRange(t *testing.T) {
	dims := field.Dims{W: 2, H: 2, D: 2}
	g, _ := NewGrid(dims, Conn6)

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for out-of-range index")
		}
	}()
	g.Neighbors(100)
}
