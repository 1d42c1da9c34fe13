package neighborhood

import "github.com/LLNL/adapt-go/field"

// Connectivity selects how many of the 26 integer offsets around a voxel
// count as neighbors.
type Connectivity int

const (
	// Conn6 uses face-adjacency only: ±x, ±y, ±z.
	Conn6 Connectivity = iota
	// Conn26 uses full corner/edge/face adjacency.
	Conn26
)

// Grid is the full 3-D regular-grid neighborhood source (spec.md §4.1).
// It precomputes a fixed offset table once at construction, the way
// gridgraph.GridGraph precomputes its 2-D 4/8-connectivity offsets, and
// reuses it for every Neighbors call, filtering out-of-bounds offsets
// per-call against the queried vertex's coordinate.
type Grid struct {
	dims    field.Dims
	conn    Connectivity
	offsets [][3]int

	// buf is reused across Neighbors calls to avoid an allocation per
	// vertex; callers that need to retain the result must copy it.
	buf []field.GlobalIndex
}

// NewGrid constructs a Grid neighborhood source over dims with the given
// connectivity.
func NewGrid(dims field.Dims, conn Connectivity) (*Grid, error) {
	if dims.W <= 0 || dims.H <= 0 || dims.D <= 0 {
		return nil, ErrZeroDims
	}

	return &Grid{
		dims:    dims,
		conn:    conn,
		offsets: offsetTable(conn),
		buf:     make([]field.GlobalIndex, 0, len(offsetTable(conn))),
	}, nil
}

// offsetTable returns the (dx,dy,dz) offsets for the requested
// connectivity, excluding (0,0,0).
func offsetTable(conn Connectivity) [][3]int {
	var offsets [][3]int
	for dz := -1; dz <= 1; dz++ {
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 && dz == 0 {
					continue
				}
				if conn == Conn6 {
					// Face-adjacency: exactly one coordinate differs.
					nonZero := 0
					if dx != 0 {
						nonZero++
					}
					if dy != 0 {
						nonZero++
					}
					if dz != 0 {
						nonZero++
					}
					if nonZero != 1 {
						continue
					}
				}
				offsets = append(offsets, [3]int{dx, dy, dz})
			}
		}
	}

	return offsets
}

// Neighbors returns the (up to 6 or 26) in-bounds neighbors of v. The
// returned slice is reused on the next call; copy it if you need to keep
// it past that point.
func (g *Grid) Neighbors(v field.GlobalIndex) []field.GlobalIndex {
	assertValidIndex(v, g.dims.Count())

	x, y, z := g.dims.ToCoord(v)
	g.buf = g.buf[:0]
	for _, off := range g.offsets {
		nx, ny, nz := x+off[0], y+off[1], z+off[2]
		if !g.dims.InBounds(nx, ny, nz) {
			continue
		}
		g.buf = append(g.buf, g.dims.FromCoord(nx, ny, nz))
	}

	return g.buf
}

// Dims returns the grid's dimensions.
func (g *Grid) Dims() field.Dims {
	return g.dims
}
