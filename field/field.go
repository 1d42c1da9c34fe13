// Package field defines the scalar field sampled on a 3-D regular grid,
// the global/local index conventions used throughout ADAPT, and the
// merge/split comparison predicate that every other package is
// parameterized over.
package field

import "fmt"

// FunctionType is the sample type of the scalar field. The original tool
// stores single-precision floats; matching that width keeps raw-file I/O
// byte-compatible with the reference data sets.
type FunctionType = float32

// GlobalIndex addresses a single vertex of the flattened 3-D grid, in
// [0, Dims.Count()).
type GlobalIndex = int

// NullLabel is the sentinel "no label assigned yet" value used in label
// arrays and in Node down/up/rep fields. The original uses an unsigned
// wraparound constant (LNULL); Go has no implicit wraparound sentinel
// convention in this codebase, so a negative value is used instead.
const NullLabel = -1

// Dims describes the extent of the regular grid.
type Dims struct {
	W, H, D int
}

// Count returns the total number of vertices, W*H*D.
func (d Dims) Count() int {
	return d.W * d.H * d.D
}

// FromCoord maps a 3-D coordinate to its global index.
func (d Dims) FromCoord(x, y, z int) GlobalIndex {
	return z*d.W*d.H + y*d.W + x
}

// ToCoord maps a global index back to its 3-D coordinate.
func (d Dims) ToCoord(v GlobalIndex) (x, y, z int) {
	x = v % d.W
	y = (v / d.W) % d.H
	z = v / (d.W * d.H)

	return x, y, z
}

// InBounds reports whether (x,y,z) lies within the grid.
func (d Dims) InBounds(x, y, z int) bool {
	return x >= 0 && x < d.W && y >= 0 && y < d.H && z >= 0 && z < d.D
}

// Field is an immutable scalar field sampled on a regular grid. It is
// read-only to every downstream component for the duration of a sweep.
type Field struct {
	Dims   Dims
	Values []FunctionType
}

// New wraps values as a Field, validating that len(values) == dims.Count().
func New(dims Dims, values []FunctionType) (*Field, error) {
	if len(values) != dims.Count() {
		return nil, fmt.Errorf("field: %d values for dims %dx%dx%d (want %d)", len(values), dims.W, dims.H, dims.D, dims.Count())
	}

	return &Field{Dims: dims, Values: values}, nil
}

// At returns the value at global index v.
func (f *Field) At(v GlobalIndex) FunctionType {
	return f.Values[v]
}

// Len returns the number of vertices in the field.
func (f *Field) Len() int {
	return len(f.Values)
}

// Comparison is the total-ordering predicate used for both sort order and
// saddle logic during a single sweep. The merge-tree variant reads
// "greater than"; the split-tree variant reads "less than" (equivalently,
// the merge tree of -F).
type Comparison struct {
	// Name identifies the variant for logging/CLI echo purposes.
	Name string

	// Greater reports whether a strictly precedes b in sweep order. Equal
	// values report false; the sweep's stable sort then keeps tied vertices
	// in global-index order.
	Greater func(a, b FunctionType) bool
}

// MergeComparison builds the descending (superlevel-set) comparison used
// to construct a merge tree.
func MergeComparison() Comparison {
	return Comparison{
		Name:    "merge",
		Greater: func(a, b FunctionType) bool { return a > b },
	}
}

// SplitComparison builds the ascending (sublevel-set) comparison used to
// construct a split tree. It is the merge-tree comparison of the negated
// field (spec.md §8 property 9): Greater(a, b) here is equivalent to
// MergeComparison().Greater(-a, -b).
func SplitComparison() Comparison {
	return Comparison{
		Name:    "split",
		Greater: func(a, b FunctionType) bool { return a < b },
	}
}
