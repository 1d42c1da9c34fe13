package adapt

import (
	"testing"

	"github.com/LLNL/adapt-go/field"
	"github.com/LLNL/adapt-go/metric"
	"github.com/LLNL/adapt-go/neighborhood"
)

func TestBuildAndTransformMonotoneRamp(t *testing.T) {
	dims := field.Dims{W: 5, H: 1, D: 1}
	f, err := field.New(dims, []field.FunctionType{0, 1, 2, 3, 4})
	if err != nil {
		t.Fatal(err)
	}

	r, err := Build(f, field.MergeComparison(), neighborhood.Conn6, -1, false)
	if err != nil {
		t.Fatal(err)
	}

	out, err := Transform(r, metric.NewRelevance())
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != f.Len() {
		t.Fatalf("len(out) = %d, want %d", len(out), f.Len())
	}

	root := r.Label[4]
	if out[4] != 1 {
		t.Errorf("root (vertex 4, label %d) relevance = %v, want 1", root, out[4])
	}
}

func TestBuildRejectsZeroDims(t *testing.T) {
	f, err := field.New(field.Dims{W: 1, H: 1, D: 1}, []field.FunctionType{0})
	if err != nil {
		t.Fatal(err)
	}

	bad := field.Dims{}
	f.Dims = bad
	if _, err := Build(f, field.MergeComparison(), neighborhood.Conn6, -1, false); err == nil {
		t.Fatal("expected an error building over zero dims")
	}
}
