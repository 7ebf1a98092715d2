package geom

// Grid provides an interface for reasoning over a 1D slice as if it were a
// 2D lattice of vertices. Index u runs fastest.
type Grid struct {
	// Width and Height are the number of vertices along each axis, i.e. one
	// more than the number of cells.
	Width, Height int
	Area          int
}

// Init sets g up over a lattice of (cellsU + 1) x (cellsV + 1) vertices.
func (g *Grid) Init(cellsU, cellsV int) {
	g.Width = cellsU + 1
	g.Height = cellsV + 1
	g.Area = g.Width * g.Height
}

// Idx returns the grid index corresponding to a set of coordinates. The
// coordinates are not checked.
func (g *Grid) Idx(u, v int) int {
	return u + v*g.Width
}

// IdxCheck returns an index and true if the given coordinate are valid and
// false otherwise.
func (g *Grid) IdxCheck(u, v int) (idx int, ok bool) {
	if u < 0 || v < 0 || u >= g.Width || v >= g.Height {
		return -1, false
	}
	return g.Idx(u, v), true
}

// Coords returns the u, v coordinates of a point from its grid index.
func (g *Grid) Coords(idx int) (u, v int) {
	return idx % g.Width, idx / g.Width
}
