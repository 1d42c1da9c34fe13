// Package sweep implements the sorted sweep driver: the single-pass
// traversal of sorted grid vertices that builds a merge tree (or split
// tree) while labelling every vertex with its owning arc (spec.md §4.4).
package sweep

import (
	"errors"
	"fmt"
	"log"
	"sort"

	"github.com/LLNL/adapt-go/field"
	"github.com/LLNL/adapt-go/mergetree"
	"github.com/LLNL/adapt-go/neighborhood"
	"github.com/LLNL/adapt-go/unionfind"
)

// Sentinel errors for misconfigured calls (spec.md §7 "Configuration
// errors" for the driver's own preconditions).
var (
	// ErrLabelLength indicates the caller's label slice does not have one
	// entry per vertex.
	ErrLabelLength = errors.New("sweep: label slice length must equal field length")
	// ErrEmptyField indicates the field has no vertices to sweep.
	ErrEmptyField = errors.New("sweep: field has no vertices")
)

// Options configures a single sweep.
type Options struct {
	// Augmented requests that every labelled vertex also be appended to
	// its arc's vertex list (required by metrics with ExplicitArcs()).
	Augmented bool

	// Verbose enables stderr progress logging, mirroring the original
	// tool's "Screening vertices" / "Sorting" / "Processing NN%" output.
	Verbose bool
}

// Run performs the sorted sweep over f using nbh for adjacency and cmp to
// select merge- or split-tree semantics, populating tree and label.
// label must have exactly f.Len() entries and is reset to
// mergetree.Null before the sweep begins.
func Run(f *field.Field, cmp field.Comparison, nbh neighborhood.Source, threshold field.FunctionType, tree *mergetree.Tree, opts Options, label []mergetree.NodeID) error {
	if len(label) != f.Len() {
		return ErrLabelLength
	}
	if f.Len() == 0 {
		return ErrEmptyField
	}

	logger := log.New(log.Writer(), "", 0)
	logf := func(format string, args ...interface{}) {
		if opts.Verbose {
			logger.Printf(format, args...)
		}
	}

	// 1. Screen and bound: record every vertex passing the threshold and
	// the global floor, independent of the threshold.
	logf("Screening vertices")
	order := make([]field.GlobalIndex, 0, f.Len())
	low := f.At(0)
	for v := 0; v < f.Len(); v++ {
		label[v] = mergetree.Null
		value := f.At(v)
		if cmp.Greater(value, threshold) {
			order = append(order, v)
		}
		if cmp.Greater(low, value) {
			low = value
		}
	}

	if len(order) == 0 {
		// Silent no-op per spec.md §7: every vertex failed the threshold.
		tree.SetMinimum(low)
		tree.SetMaximum(low)

		return nil
	}

	// 2. Sort by F under cmp, descending in sweep order.
	logf("Sorting")
	sort.SliceStable(order, func(i, j int) bool {
		return cmp.Greater(f.At(order[i]), f.At(order[j]))
	})

	// 3. Record extrema.
	tree.SetMaximum(f.At(order[0]))
	tree.SetMinimum(low)

	uf := unionfind.New()

	total := len(order)
	reported := -1

	// 4. Sweep.
	for i, v := range order {
		created := false
		if opts.Verbose {
			pct := 100 * i / total
			if pct != reported {
				logf("Processing %3d%%", pct)
				reported = pct
			}
		}

		for _, w := range nbh.Neighbors(v) {
			if label[w] == mergetree.Null {
				continue // neighbor not yet visited; F[w] does not precede F[v]
			}

			neighLabel := uf.MustFind(label[w])

			switch {
			case label[v] == mergetree.Null:
				// Join an existing component.
				label[v] = neighLabel

			case neighLabel != label[v]:
				// v is a saddle where two components meet.
				if tree.Node(label[v]).Index != v {
					// First time the saddle rule fires at v: create the
					// critical node and attach the first component.
					newLabel := tree.AddCriticalPoint(v)
					if err := tree.AddEdge(label[v], newLabel); err != nil {
						return fmt.Errorf("sweep: addEdge(%d,%d): %w", label[v], newLabel, err)
					}
					tree.Node(newLabel).Rep = tree.Node(label[v]).Rep

					if err := uf.Add(newLabel); err != nil {
						return fmt.Errorf("sweep: uf.Add(%d): %w", newLabel, err)
					}
					uf.MustMerge(label[v], newLabel)

					label[v] = newLabel
					created = true
				}

				// Attach the second (or third, ...) component.
				if err := tree.AddEdge(neighLabel, label[v]); err != nil {
					return fmt.Errorf("sweep: addEdge(%d,%d): %w", neighLabel, label[v], err)
				}

				if tree.Node(neighLabel).Rep < tree.Node(label[v]).Rep {
					tree.Node(label[v]).Rep = tree.Node(neighLabel).Rep
				}

				uf.MustMerge(neighLabel, label[v])

			default:
				// Same component rejoining itself: nothing to do.
			}
		}

		if label[v] == mergetree.Null {
			// No higher-valued labelled neighbor: a local extremum.
			newLabel := tree.AddCriticalPoint(v)
			tree.Node(newLabel).Rep = newLabel

			if err := uf.Add(newLabel); err != nil {
				return fmt.Errorf("sweep: uf.Add(%d): %w", newLabel, err)
			}

			label[v] = newLabel
			created = true
		}

		if opts.Augmented && !created {
			// v's arc already contains v as its head (set by
			// AddCriticalPoint) when this iteration created a node.
			tree.AddVertex(v, label[v])
		}
	}

	logf("Processing 100%%")

	return nil
}
