package cloth

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Ball is a solid sphere which pushes particles out of its interior.
type Ball struct {
	Center mgl64.Vec3
	Radius float64
}

const (
	DefaultBallRadius = 60.0
	DefaultBallY      = -45.0
)

// DefaultBall returns the reference ball at its t = 0 position.
func DefaultBall() Ball {
	b := Ball{Center: mgl64.Vec3{0, DefaultBallY, 0}, Radius: DefaultBallRadius}
	b.Move(0)
	return b
}

// Move places the ball on its path at time now, given in milliseconds. The
// ball sweeps through the xz plane and keeps its height.
func (b *Ball) Move(now float64) {
	b.Center[0] = math.Cos(now/400) * 70
	b.Center[2] = -math.Sin(now/600) * 90
}

// Collide projects every particle inside the ball onto its surface, along
// the ray from the center through the particle. Only positions change; the
// implied velocity follows on the next integration. A particle exactly at
// the center has no such ray and is left there.
func (b *Ball) Collide(ps []Particle) {
	for i := range ps {
		diff := ps[i].Position.Sub(b.Center)
		l := diff.Len()
		if l >= b.Radius || l == 0 {
			continue
		}
		ps[i].Position = b.Center.Add(diff.Mul(b.Radius / l))
	}
}

// CollideFloor raises every particle below floorY onto the floor. Horizontal
// positions are not changed.
func CollideFloor(ps []Particle, floorY float64) {
	for i := range ps {
		if ps[i].Position[1] < floorY {
			ps[i].Position[1] = floorY
		}
	}
}
