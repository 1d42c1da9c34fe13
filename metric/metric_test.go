package metric

import (
	"math"
	"testing"

	"github.com/LLNL/adapt-go/field"
	"github.com/LLNL/adapt-go/mergetree"
	"github.com/LLNL/adapt-go/neighborhood"
	"github.com/LLNL/adapt-go/sweep"
)

func mustField(t *testing.T, dims field.Dims, values []field.FunctionType) *field.Field {
	t.Helper()
	f, err := field.New(dims, values)
	if err != nil {
		t.Fatal(err)
	}

	return f
}

func mustGrid(t *testing.T, dims field.Dims) *neighborhood.Grid {
	t.Helper()
	g, err := neighborhood.NewGrid(dims, neighborhood.Conn6)
	if err != nil {
		t.Fatal(err)
	}

	return g
}

// Scenario: relevance metric on a monotone ramp (spec.md §8's worked
// example, "relevance metric on monotone ramp"): every vertex shares the
// single root's arc, so relevance is 1 - |peak - F[v]| / |peak - min|,
// giving the varying profile [0, 0.25, 0.5, 0.75, 1], not a constant.
func TestRelevanceOnMonotoneRamp(t *testing.T) {
	dims := field.Dims{W: 5, H: 1, D: 1}
	f := mustField(t, dims, []field.FunctionType{0, 1, 2, 3, 4})
	g := mustGrid(t, dims)
	tr := mergetree.New()
	label := make([]mergetree.NodeID, f.Len())

	if err := sweep.Run(f, field.MergeComparison(), g, -1, tr, sweep.Options{}, label); err != nil {
		t.Fatal(err)
	}

	rel := NewRelevance()
	rel.Initialize(f, tr)

	want := []field.FunctionType{0, 0.25, 0.5, 0.75, 1}
	for v, w := range want {
		got := rel.Eval(v, label[v])
		if math.Abs(float64(got-w)) > 1e-6 {
			t.Errorf("relevance[%d] = %v, want %v", v, got, w)
		}
	}
}

func TestRelevanceTwoPeaksUsesTallerPeakRep(t *testing.T) {
	dims := field.Dims{W: 5, H: 1, D: 1}
	f := mustField(t, dims, []field.FunctionType{0, 3, 1, 4, 0})
	g := mustGrid(t, dims)
	tr := mergetree.New()
	label := make([]mergetree.NodeID, f.Len())

	if err := sweep.Run(f, field.MergeComparison(), g, -1, tr, sweep.Options{}, label); err != nil {
		t.Fatal(err)
	}

	rel := NewRelevance()
	rel.Initialize(f, tr)

	// The taller peak (value 4, vertex 3) is the rep of the whole tree,
	// so the saddle vertex (value 1, vertex 2, shared by every vertex
	// still labeled by the root once it absorbs both peaks) sits 3 of
	// the full 4-unit span below that rep: relevance 1 - 3/4 = 0.25. The
	// two vertices at the global minimum (value 0) sit the full span
	// away from the rep: relevance 0.
	if got, want := rel.Eval(2, label[2]), field.FunctionType(0.25); math.Abs(float64(got-want)) > 1e-6 {
		t.Errorf("relevance at saddle vertex = %v, want %v", got, want)
	}
	if got := rel.Eval(0, label[0]); math.Abs(float64(got)) > 1e-6 {
		t.Errorf("relevance at global minimum = %v, want 0", got)
	}
	if got := rel.Eval(4, label[4]); math.Abs(float64(got)) > 1e-6 {
		t.Errorf("relevance at global minimum = %v, want 0", got)
	}
}

func TestR2PerfectRampIsOne(t *testing.T) {
	dims := field.Dims{W: 9, H: 1, D: 1}
	values := make([]field.FunctionType, dims.Count())
	for i := range values {
		values[i] = field.FunctionType(i)
	}
	f := mustField(t, dims, values)
	g := mustGrid(t, dims)
	tr := mergetree.New()
	label := make([]mergetree.NodeID, f.Len())

	if err := sweep.Run(f, field.MergeComparison(), g, -1, tr, sweep.Options{Augmented: true}, label); err != nil {
		t.Fatal(err)
	}

	r2 := NewR2()
	if !r2.ExplicitArcs() {
		t.Fatal("R2.ExplicitArcs() = false, want true")
	}
	r2.Initialize(f, tr)
	if err := r2.EvalTree(tr); err != nil {
		t.Fatal(err)
	}

	if math.Abs(float64(tr.Node(0).Metric-1)) > 1e-6 {
		t.Errorf("R2 on a perfect ramp = %v, want ~1", tr.Node(0).Metric)
	}
}

func TestR2SingleVertexArcIsOne(t *testing.T) {
	tr := mergetree.New()
	root := tr.AddCriticalPoint(0)
	f := mustField(t, field.Dims{W: 1, H: 1, D: 1}, []field.FunctionType{5})

	r2 := NewR2()
	r2.Initialize(f, tr)
	if err := r2.EvalTree(tr); err != nil {
		t.Fatal(err)
	}
	if tr.Node(root).Metric != 1 {
		t.Errorf("R2 on single-vertex arc = %v, want 1", tr.Node(root).Metric)
	}
}

func TestEvalTreeRequiresInitialize(t *testing.T) {
	tr := mergetree.New()
	tr.AddCriticalPoint(0)

	r2 := NewR2()
	if err := r2.EvalTree(tr); err != ErrNotInitialized {
		t.Fatalf("err = %v, want ErrNotInitialized", err)
	}

	rel := NewRelevance()
	if err := rel.EvalTree(tr); err != ErrNotInitialized {
		t.Fatalf("err = %v, want ErrNotInitialized", err)
	}
}

func TestLocalThresholdMonotoneRamp(t *testing.T) {
	dims := field.Dims{W: 5, H: 1, D: 1}
	f := mustField(t, dims, []field.FunctionType{0, 1, 2, 3, 4})
	g := mustGrid(t, dims)

	transform, err := LocalThreshold(f, field.MergeComparison(), g, -1)
	if err != nil {
		t.Fatal(err)
	}

	// On a monotone ramp every vertex belongs to the single maximum's
	// subtree, so relevance is 1 at the peak itself and falls toward 0 at
	// the global minimum (the ramp spans the full global range).
	if transform[4] != 1 {
		t.Errorf("transform[4] = %v, want 1 (at the maximum itself)", transform[4])
	}
	if transform[0] >= transform[4] {
		t.Errorf("transform[0] = %v should be lower than the peak's %v", transform[0], transform[4])
	}
}

func TestThresholdIsIdentity(t *testing.T) {
	dims := field.Dims{W: 5, H: 1, D: 1}
	f := mustField(t, dims, []field.FunctionType{0, 1, 2, 3, 4})
	g := mustGrid(t, dims)
	tr := mergetree.New()
	label := make([]mergetree.NodeID, f.Len())

	if err := sweep.Run(f, field.MergeComparison(), g, -1, tr, sweep.Options{}, label); err != nil {
		t.Fatal(err)
	}

	th := NewThreshold()
	th.Initialize(f, tr)

	for v := 0; v < f.Len(); v++ {
		if got, want := th.Eval(v, label[v]), f.At(v); got != want {
			t.Errorf("threshold[%d] = %v, want %v", v, got, want)
		}
	}
}

func TestLocalThresholdMetricMatchesStandaloneFunction(t *testing.T) {
	dims := field.Dims{W: 5, H: 1, D: 1}
	f := mustField(t, dims, []field.FunctionType{0, 1, 2, 3, 4})
	g := mustGrid(t, dims)

	want, err := LocalThreshold(f, field.MergeComparison(), g, -1)
	if err != nil {
		t.Fatal(err)
	}

	lt := NewLocalThresholdMetric(g, field.MergeComparison(), -1)
	if lt.ExplicitArcs() {
		t.Fatal("LocalThresholdMetric.ExplicitArcs() = true, want false")
	}
	lt.Initialize(f, nil)

	for v := range want {
		if got := lt.Eval(v, mergetree.Null); got != want[v] {
			t.Errorf("LocalThresholdMetric.Eval(%d) = %v, want %v", v, got, want[v])
		}
	}
}

func TestLocalThresholdBelowThresholdUntouched(t *testing.T) {
	dims := field.Dims{W: 5, H: 1, D: 1}
	f := mustField(t, dims, []field.FunctionType{0, 1, 2, 3, 4})
	g := mustGrid(t, dims)

	transform, err := LocalThreshold(f, field.MergeComparison(), g, 2.5)
	if err != nil {
		t.Fatal(err)
	}
	if len(transform) != f.Len() {
		t.Fatalf("transform has %d entries, want %d", len(transform), f.Len())
	}
	for v := 0; v <= 2; v++ {
		if transform[v] != 0 {
			t.Errorf("transform[%d] = %v, want 0 (never swept)", v, transform[v])
		}
	}
}
