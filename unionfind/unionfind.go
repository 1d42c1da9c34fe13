// Package unionfind implements a disjoint-set structure over sparse,
// externally-assigned labels (merge-tree node ids). It keeps a slice of
// parent-labels plus a map from label to slot index, the same shape as
// the map-based DSU used for MST construction in the teacher corpus, but
// enforcing "newer label survives" instead of union-by-rank: merges are
// driven by sort order, not tree depth, so rank tracking is unnecessary
// (spec.md §4.2).
package unionfind

import "errors"

// Sentinel errors.
var (
	// ErrUnknownLabel indicates an operation referenced a label that was
	// never added.
	ErrUnknownLabel = errors.New("unionfind: unknown label")
	// ErrDuplicateLabel indicates Add was called twice for the same label.
	ErrDuplicateLabel = errors.New("unionfind: label already added")
	// ErrMergeOrder indicates Merge was called with from >= to; the
	// structure requires from < to so the newer label always survives.
	ErrMergeOrder = errors.New("unionfind: merge requires from < to")
)

// UnionFind maps sparse labels to a current representative label.
type UnionFind struct {
	parent []int         // parent[slot] = parent label
	slot   map[int]int   // label -> slot index into parent
}

// New returns an empty UnionFind.
func New() *UnionFind {
	return &UnionFind{slot: make(map[int]int)}
}

// Add registers label as a new, self-parented slot. Returns
// ErrDuplicateLabel if label is already known.
func (u *UnionFind) Add(label int) error {
	if _, ok := u.slot[label]; ok {
		return ErrDuplicateLabel
	}

	u.slot[label] = len(u.parent)
	u.parent = append(u.parent, label)

	return nil
}

// Find walks parent links to the fixed point for label, path-compressing
// every intermediate slot to point directly at the root. Returns
// ErrUnknownLabel if label was never added.
func (u *UnionFind) Find(label int) (int, error) {
	if _, ok := u.slot[label]; !ok {
		return 0, ErrUnknownLabel
	}

	// Walk to the root.
	root := label
	for {
		s, ok := u.slot[root]
		if !ok {
			break
		}
		p := u.parent[s]
		if p == root {
			break
		}
		root = p
	}

	// Path-compress every node visited on the way.
	cur := label
	for cur != root {
		s := u.slot[cur]
		next := u.parent[s]
		u.parent[s] = root
		cur = next
	}

	return root, nil
}

// MustFind is Find without the error return, for callers (the sweep
// driver) that only ever call it with labels they just added themselves;
// an unknown label at that point is a programmer error.
func (u *UnionFind) MustFind(label int) int {
	root, err := u.Find(label)
	if err != nil {
		panic(err)
	}

	return root
}

// Merge combines from into to, requiring from < to (the discipline that
// makes the merge-tree's rep invariant hold automatically, spec.md §4.2)
// and that both labels are known.
func (u *UnionFind) Merge(from, to int) error {
	if from >= to {
		return ErrMergeOrder
	}
	fs, ok := u.slot[from]
	if !ok {
		return ErrUnknownLabel
	}
	if _, ok := u.slot[to]; !ok {
		return ErrUnknownLabel
	}

	u.parent[fs] = to

	return nil
}

// MustMerge is Merge without the error return, for callers that have
// already validated from < to and that both labels exist; any failure
// here indicates a broken sweep invariant and is a programmer error
// (spec.md §7).
func (u *UnionFind) MustMerge(from, to int) {
	if err := u.Merge(from, to); err != nil {
		panic(err)
	}
}

// Len returns the number of labels currently tracked.
func (u *UnionFind) Len() int {
	return len(u.parent)
}
