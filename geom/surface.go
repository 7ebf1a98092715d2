/*package geom contains the geometric helpers used to lay out and shade a
cloth: lattice indexing, parametric surfaces and triangle meshes.
*/
package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Surface maps normalized lattice coordinates u, v in [0, 1] to a position.
type Surface func(u, v float64) mgl64.Vec3

// Plane returns a vertical plane of the given width and height centered on
// x = 0 with its lower edge at y = height/2.
func Plane(width, height float64) Surface {
	return func(u, v float64) mgl64.Vec3 {
		return mgl64.Vec3{(u - 0.5) * width, (v + 0.5) * height, 0}
	}
}

// Cylinder returns an open vertical cylinder around the y axis. u wraps
// around the circumference, so the u = 0 and u = 1 edges coincide.
func Cylinder(radius, height float64) Surface {
	return func(u, v float64) mgl64.Vec3 {
		phi := u * 2 * math.Pi
		return mgl64.Vec3{
			radius * math.Cos(phi), (v + 0.5) * height, radius * math.Sin(phi),
		}
	}
}
