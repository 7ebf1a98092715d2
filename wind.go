package cloth

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// WindForce returns the wind at time now, in milliseconds. Its direction
// turns slowly on all three axes and its strength varies between 20 and 60.
func WindForce(now float64) mgl64.Vec3 {
	strength := math.Cos(now/7000)*20 + 40
	dir := mgl64.Vec3{
		math.Sin(now / 2000),
		math.Cos(now / 3000),
		math.Sin(now / 1000),
	}
	// The three components never vanish together, so dir is never zero.
	return dir.Normalize().Mul(strength)
}

// ApplyWind pushes each face's vertices along their normals by the part of
// wind facing them. A vertex is pushed once for every face it belongs to.
// Zero normals contribute nothing.
func ApplyWind(ps []Particle, m Mesh, wind mgl64.Vec3) {
	normals := m.VertexNormals()
	for _, f := range m.Faces() {
		for _, idx := range f {
			n := normals[idx]
			l := n.Len()
			if l == 0 {
				continue
			}
			ps[idx].AddForce(n.Mul(n.Dot(wind) / l))
		}
	}
}
