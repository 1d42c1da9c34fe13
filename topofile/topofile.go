// Package topofile writes the merge/split tree's topology and
// segmentation to disk in a small self-contained binary format: a
// compatible substitute for the real external topology-file library's
// .family/.seg schema (original_source/talass/talass_merge_tree.cpp's
// ClanHandle/FamilyHandle/SegmentationHandle usage), which that original
// tool delegates to a library this module does not reproduce.
package topofile

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/LLNL/adapt-go/field"
	"github.com/LLNL/adapt-go/mergetree"
)

// magic identifies the family-file format; version allows the fixed-width
// record layout to change without silently misreading an old file.
const (
	familyMagic  uint32 = 0xADA97F01
	familyVers   uint32 = 1
	segMagic     uint32 = 0xADA97F02
	segVers      uint32 = 1
)

// ErrBadMagic indicates a file did not start with the expected magic
// number, i.e. it is not a topofile family/segmentation file (or is
// corrupt).
var ErrBadMagic = errors.New("topofile: bad magic number")

// FamilyNode is one node's entry in a Family: the life interval of its
// metric value between itself and its child, its down-pointer, and the
// tree direction (0 = merge, 1 = split), mirroring the
// life[0],life[1]/addLink/direction fields built per node in
// talass_merge_tree.cpp.
type FamilyNode struct {
	Life      [2]field.FunctionType
	Down      mergetree.NodeID
	Direction int
}

// Family is the full exported topology: the tree's overall function
// range, one FamilyNode per tree node, the per-node accumulated vertex
// count (talass_merge_tree.cpp's StatHandle "vertexCount" stat), and the
// metric name used to populate node life intervals.
type Family struct {
	Range        [2]field.FunctionType
	Nodes        []FamilyNode
	VertexCounts []int
	Metric       string
}

// MergeDirection and SplitDirection are the Direction values recorded on
// every FamilyNode, mirroring the original's features[i].direction(...)
// keyed off the tree type used to build the tree.
const (
	MergeDirection = 0
	SplitDirection = 1
)

// BuildFamily assembles a Family from tree, using metric's already-
// computed per-node Metric values as each node's upper life bound and its
// child's Metric as the lower bound (tree.node(i).down()==Null meaning a
// local extremum uses its own value for both bounds, matching the
// original's handling of roots). direction should be MergeDirection or
// SplitDirection depending on which comparison built tree.
func BuildFamily(tree *mergetree.Tree, metricName string, direction int) Family {
	fam := Family{
		Range:        [2]field.FunctionType{tree.Minimum(), tree.Maximum()},
		Nodes:        make([]FamilyNode, tree.Size()),
		VertexCounts: tree.VolumeAccumulate(),
		Metric:       metricName,
	}

	for i := 0; i < tree.Size(); i++ {
		n := tree.Node(i)
		high := n.Metric
		low := high
		if n.Down != mergetree.Null {
			low = tree.Node(n.Down).Metric
		}
		if low > high {
			low, high = high, low
		}

		fam.Nodes[i] = FamilyNode{
			Life:      [2]field.FunctionType{low, high},
			Down:      n.Down,
			Direction: direction,
		}
	}

	return fam
}

// WriteFamily writes fam to path as a small fixed-width binary format:
// magic, version, node count, range, metric name (length-prefixed), then
// one fixed-size record per node (life interval, down pointer, direction,
// vertex count).
func WriteFamily(path string, fam Family) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("topofile: create %s: %w", path, err)
	}
	defer out.Close()

	w := bufio.NewWriter(out)

	if err := binary.Write(w, binary.LittleEndian, familyMagic); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, familyVers); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(fam.Nodes))); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, fam.Range); err != nil {
		return err
	}

	metricBytes := []byte(fam.Metric)
	if err := binary.Write(w, binary.LittleEndian, uint32(len(metricBytes))); err != nil {
		return err
	}
	if _, err := w.Write(metricBytes); err != nil {
		return err
	}

	for i, n := range fam.Nodes {
		if err := binary.Write(w, binary.LittleEndian, n.Life); err != nil {
			return fmt.Errorf("topofile: write node %d: %w", i, err)
		}
		if err := binary.Write(w, binary.LittleEndian, int64(n.Down)); err != nil {
			return fmt.Errorf("topofile: write node %d: %w", i, err)
		}
		if err := binary.Write(w, binary.LittleEndian, int32(n.Direction)); err != nil {
			return fmt.Errorf("topofile: write node %d: %w", i, err)
		}

		count := int64(0)
		if i < len(fam.VertexCounts) {
			count = int64(fam.VertexCounts[i])
		}
		if err := binary.Write(w, binary.LittleEndian, count); err != nil {
			return fmt.Errorf("topofile: write node %d: %w", i, err)
		}
	}

	return w.Flush()
}

// ReadFamily reads a Family previously written by WriteFamily.
func ReadFamily(path string) (Family, error) {
	f, err := os.Open(path)
	if err != nil {
		return Family{}, fmt.Errorf("topofile: open %s: %w", path, err)
	}
	defer f.Close()

	r := bufio.NewReader(f)

	var magic, vers, count uint32
	if err := binary.Read(r, binary.LittleEndian, &magic); err != nil {
		return Family{}, err
	}
	if magic != familyMagic {
		return Family{}, ErrBadMagic
	}
	if err := binary.Read(r, binary.LittleEndian, &vers); err != nil {
		return Family{}, err
	}
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return Family{}, err
	}

	fam := Family{Nodes: make([]FamilyNode, count), VertexCounts: make([]int, count)}
	if err := binary.Read(r, binary.LittleEndian, &fam.Range); err != nil {
		return Family{}, err
	}

	var metricLen uint32
	if err := binary.Read(r, binary.LittleEndian, &metricLen); err != nil {
		return Family{}, err
	}
	metricBytes := make([]byte, metricLen)
	if _, err := io.ReadFull(r, metricBytes); err != nil {
		return Family{}, err
	}
	fam.Metric = string(metricBytes)

	for i := range fam.Nodes {
		var down int64
		var direction int32
		var vcount int64

		if err := binary.Read(r, binary.LittleEndian, &fam.Nodes[i].Life); err != nil {
			return Family{}, fmt.Errorf("topofile: read node %d: %w", i, err)
		}
		if err := binary.Read(r, binary.LittleEndian, &down); err != nil {
			return Family{}, fmt.Errorf("topofile: read node %d: %w", i, err)
		}
		if err := binary.Read(r, binary.LittleEndian, &direction); err != nil {
			return Family{}, fmt.Errorf("topofile: read node %d: %w", i, err)
		}
		if err := binary.Read(r, binary.LittleEndian, &vcount); err != nil {
			return Family{}, fmt.Errorf("topofile: read node %d: %w", i, err)
		}

		fam.Nodes[i].Down = mergetree.NodeID(down)
		fam.Nodes[i].Direction = int(direction)
		fam.VertexCounts[i] = int(vcount)
	}

	return fam, nil
}

// WriteSegmentation writes the domain descriptor ("3 W H D", matching
// talass_merge_tree.cpp's sprintf(descriptor,...)) followed by each arc's
// vertex-index list, one arc per tree node in node-id order.
func WriteSegmentation(path string, dims field.Dims, arcs [][]field.GlobalIndex) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("topofile: create %s: %w", path, err)
	}
	defer out.Close()

	w := bufio.NewWriter(out)

	if err := binary.Write(w, binary.LittleEndian, segMagic); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, segVers); err != nil {
		return err
	}

	descriptor := fmt.Sprintf("3 %d %d %d", dims.W, dims.H, dims.D)
	descBytes := []byte(descriptor)
	if err := binary.Write(w, binary.LittleEndian, uint32(len(descBytes))); err != nil {
		return err
	}
	if _, err := w.Write(descBytes); err != nil {
		return err
	}

	if err := binary.Write(w, binary.LittleEndian, uint32(len(arcs))); err != nil {
		return err
	}

	for i, arc := range arcs {
		if err := binary.Write(w, binary.LittleEndian, uint32(len(arc))); err != nil {
			return fmt.Errorf("topofile: write arc %d: %w", i, err)
		}

		// field.GlobalIndex is a plain int (platform-dependent width),
		// which encoding/binary cannot encode directly; widen to a fixed
		// int64 for a portable on-disk representation.
		wide := make([]int64, len(arc))
		for j, v := range arc {
			wide[j] = int64(v)
		}
		if err := binary.Write(w, binary.LittleEndian, wide); err != nil {
			return fmt.Errorf("topofile: write arc %d: %w", i, err)
		}
	}

	return w.Flush()
}

// ReadSegmentation reads a segmentation file previously written by
// WriteSegmentation, returning the domain descriptor string and the
// per-node arc vertex lists.
func ReadSegmentation(path string) (string, [][]field.GlobalIndex, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", nil, fmt.Errorf("topofile: open %s: %w", path, err)
	}
	defer f.Close()

	r := bufio.NewReader(f)

	var magic, vers, descLen, arcCount uint32
	if err := binary.Read(r, binary.LittleEndian, &magic); err != nil {
		return "", nil, err
	}
	if magic != segMagic {
		return "", nil, ErrBadMagic
	}
	if err := binary.Read(r, binary.LittleEndian, &vers); err != nil {
		return "", nil, err
	}
	if err := binary.Read(r, binary.LittleEndian, &descLen); err != nil {
		return "", nil, err
	}

	descBytes := make([]byte, descLen)
	if _, err := io.ReadFull(r, descBytes); err != nil {
		return "", nil, err
	}

	if err := binary.Read(r, binary.LittleEndian, &arcCount); err != nil {
		return "", nil, err
	}

	arcs := make([][]field.GlobalIndex, arcCount)
	for i := range arcs {
		var n uint32
		if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
			return "", nil, fmt.Errorf("topofile: read arc %d: %w", i, err)
		}

		wide := make([]int64, n)
		if err := binary.Read(r, binary.LittleEndian, wide); err != nil {
			return "", nil, fmt.Errorf("topofile: read arc %d: %w", i, err)
		}

		arcs[i] = make([]field.GlobalIndex, n)
		for j, v := range wide {
			arcs[i][j] = field.GlobalIndex(v)
		}
	}

	return string(descBytes), arcs, nil
}
