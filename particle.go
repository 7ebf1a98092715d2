/*package cloth simulates a rectangular piece of cloth as a lattice of point
masses joined by distance constraints.

Particles are advanced with position Verlet integration and the constraints
are relaxed with the scheme described in Jakobsen, "Advanced Character
Physics" (2001). A Simulation adds wind, gravity, collisions with a moving
ball and the floor, and pinned particles on top of this.
*/
package cloth

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Particle is a single point mass. Its velocity is implied by the difference
// between Position and Previous.
type Particle struct {
	Position, Previous, Original mgl64.Vec3
	// Acc is the acceleration accumulated since the last integration.
	Acc mgl64.Vec3

	Mass, InvMass float64
}

// NewParticle creates a particle at rest at pos. mass must be positive.
func NewParticle(pos mgl64.Vec3, mass float64) *Particle {
	p := &Particle{}
	p.Init(pos, mass)
	return p
}

// Init initializes a particle at rest at pos.
func (p *Particle) Init(pos mgl64.Vec3, mass float64) {
	p.Position = pos
	p.Previous = pos
	p.Original = pos
	p.Acc = mgl64.Vec3{}
	p.Mass = mass
	p.InvMass = 1 / mass
}

// AddForce converts a force to an acceleration and accumulates it.
func (p *Particle) AddForce(f mgl64.Vec3) {
	p.Acc = p.Acc.Add(f.Mul(p.InvMass))
}

// Integrate performs one Verlet step:
//
//	x' = x + (x - x_prev)*drag + a*dt^2
//
// after which x_prev = x, x = x' and the accumulated acceleration is cleared.
func (p *Particle) Integrate(dtSq, drag float64) {
	next := p.Position.Sub(p.Previous).Mul(drag).Add(p.Position)
	next = next.Add(p.Acc.Mul(dtSq))

	p.Previous = p.Position
	p.Position = next
	p.Acc = mgl64.Vec3{}
}

// Velocity returns the displacement over the last step.
func (p *Particle) Velocity() mgl64.Vec3 {
	return p.Position.Sub(p.Previous)
}
