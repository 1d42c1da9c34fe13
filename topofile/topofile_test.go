package topofile

import (
	"path/filepath"
	"testing"

	"github.com/LLNL/adapt-go/field"
	"github.com/LLNL/adapt-go/mergetree"
)

func TestBuildFamilyAndRoundTrip(t *testing.T) {
	tr := mergetree.New()
	leaf := tr.AddCriticalPoint(0)
	root := tr.AddCriticalPoint(1)
	if err := tr.AddEdge(leaf, root); err != nil {
		t.Fatal(err)
	}
	tr.SetMinimum(0)
	tr.SetMaximum(10)
	tr.Node(leaf).Metric = 2
	tr.Node(root).Metric = 8

	fam := BuildFamily(tr, "relevance", MergeDirection)
	if fam.Range != [2]field.FunctionType{0, 10} {
		t.Errorf("Range = %v, want [0 10]", fam.Range)
	}
	if len(fam.Nodes) != 2 {
		t.Fatalf("len(Nodes) = %d, want 2", len(fam.Nodes))
	}
	if fam.Nodes[leaf].Life != [2]field.FunctionType{2, 8} {
		t.Errorf("leaf life = %v, want [2 8]", fam.Nodes[leaf].Life)
	}
	if fam.Nodes[leaf].Down != root {
		t.Errorf("leaf Down = %d, want %d", fam.Nodes[leaf].Down, root)
	}
	if fam.Nodes[leaf].Direction != MergeDirection {
		t.Errorf("leaf Direction = %d, want %d", fam.Nodes[leaf].Direction, MergeDirection)
	}

	path := filepath.Join(t.TempDir(), "test.family")
	if err := WriteFamily(path, fam); err != nil {
		t.Fatal(err)
	}

	got, err := ReadFamily(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Range != fam.Range {
		t.Errorf("round-tripped Range = %v, want %v", got.Range, fam.Range)
	}
	if got.Metric != fam.Metric {
		t.Errorf("round-tripped Metric = %q, want %q", got.Metric, fam.Metric)
	}
	for i := range fam.Nodes {
		if got.Nodes[i] != fam.Nodes[i] {
			t.Errorf("round-tripped node %d = %+v, want %+v", i, got.Nodes[i], fam.Nodes[i])
		}
		if got.VertexCounts[i] != fam.VertexCounts[i] {
			t.Errorf("round-tripped vertex count %d = %d, want %d", i, got.VertexCounts[i], fam.VertexCounts[i])
		}
	}
}

func TestReadFamilyRejectsBadMagic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.family")
	if err := WriteSegmentation(path, field.Dims{W: 1, H: 1, D: 1}, nil); err != nil {
		t.Fatal(err)
	}

	if _, err := ReadFamily(path); err != ErrBadMagic {
		t.Fatalf("err = %v, want ErrBadMagic", err)
	}
}

func TestSegmentationRoundTrip(t *testing.T) {
	dims := field.Dims{W: 3, H: 2, D: 1}
	arcs := [][]field.GlobalIndex{
		{0, 1, 2},
		{3, 4},
		{5},
	}

	path := filepath.Join(t.TempDir(), "test.seg")
	if err := WriteSegmentation(path, dims, arcs); err != nil {
		t.Fatal(err)
	}

	descriptor, gotArcs, err := ReadSegmentation(path)
	if err != nil {
		t.Fatal(err)
	}
	if descriptor != "3 3 2 1" {
		t.Errorf("descriptor = %q, want %q", descriptor, "3 3 2 1")
	}
	if len(gotArcs) != len(arcs) {
		t.Fatalf("len(arcs) = %d, want %d", len(gotArcs), len(arcs))
	}
	for i, arc := range arcs {
		if len(gotArcs[i]) != len(arc) {
			t.Fatalf("arc %d has %d vertices, want %d", i, len(gotArcs[i]), len(arc))
		}
		for j, v := range arc {
			if gotArcs[i][j] != v {
				t.Errorf("arc %d vertex %d = %d, want %d", i, j, gotArcs[i][j], v)
			}
		}
	}
}
