package geom

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Triangle is a face given as three vertex indices.
type Triangle [3]int

// Mesh is a triangulated lattice with per-vertex normals. It stands in for
// the renderer's geometry: faces are fixed at construction and normals are
// recomputed from positions on demand.
type Mesh struct {
	Grid
	faces   []Triangle
	normals []mgl64.Vec3
}

// NewMesh triangulates a lattice of cellsU x cellsV cells. Each cell
// contributes the faces (a, b, d) and (b, c, d), where a is the cell's lower
// left vertex and the corners run counter-clockwise.
func NewMesh(cellsU, cellsV int) *Mesh {
	m := &Mesh{}
	m.Grid.Init(cellsU, cellsV)

	m.faces = make([]Triangle, 0, 2*cellsU*cellsV)
	for v := 0; v < cellsV; v++ {
		for u := 0; u < cellsU; u++ {
			a := m.Idx(u, v)
			b := m.Idx(u+1, v)
			c := m.Idx(u+1, v+1)
			d := m.Idx(u, v+1)
			m.faces = append(m.faces, Triangle{a, b, d}, Triangle{b, c, d})
		}
	}
	m.normals = make([]mgl64.Vec3, m.Area)

	return m
}

// Faces returns the mesh's faces. The slice must not be modified.
func (m *Mesh) Faces() []Triangle { return m.faces }

// VertexNormals returns the normals computed by the last call to
// ComputeNormals. They are zero before the first call.
func (m *Mesh) VertexNormals() []mgl64.Vec3 { return m.normals }

// ComputeNormals sets every vertex normal to the normalized sum of the
// (area weighted) normals of the faces touching it. Vertices which touch no
// face, or whose face normals cancel, get a zero normal.
func (m *Mesh) ComputeNormals(pos []mgl64.Vec3) {
	if len(pos) != m.Area {
		panic("geom: position count does not match mesh vertex count")
	}

	for i := range m.normals {
		m.normals[i] = mgl64.Vec3{}
	}

	for _, f := range m.faces {
		a, b, c := pos[f[0]], pos[f[1]], pos[f[2]]
		n := c.Sub(b).Cross(a.Sub(b))
		for _, idx := range f {
			m.normals[idx] = m.normals[idx].Add(n)
		}
	}

	for i, n := range m.normals {
		if l := n.Len(); l > 0 {
			m.normals[i] = n.Mul(1 / l)
		}
	}
}
