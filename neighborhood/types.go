// Package neighborhood provides neighbor sources for the sweep driver: a
// precomputed-offset 6- or 26-connected regular grid, and an adjacency-list
// backed source for unstructured meshes. Both satisfy Source.
package neighborhood

import (
	"errors"

	"github.com/LLNL/adapt-go/field"
)

// Sentinel errors for neighborhood construction.
var (
	// ErrZeroDims indicates a grid was constructed with a non-positive
	// dimension.
	ErrZeroDims = errors.New("neighborhood: dimensions must all be positive")
)

// Source is the capability every sweep driver depends on: for a vertex,
// produce the set of adjacent vertex indices. Implementations must make
// Neighbors safe to call repeatedly and in any order (single-pass,
// restartable per call, per spec.md §4.1).
type Source interface {
	// Neighbors returns the neighbor indices of v. The returned slice must
	// not be retained across calls that may reuse its backing storage; callers
	// that need to keep it should copy it.
	Neighbors(v field.GlobalIndex) []field.GlobalIndex
}

// assertValidIndex panics if v is out of [0, count). Out-of-range indices
// are a programmer error per spec.md §7 and must fail fast rather than be
// silently tolerated.
func assertValidIndex(v, count int) {
	if v < 0 || v >= count {
		panic("neighborhood: vertex index out of range")
	}
}
