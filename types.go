package cloth

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/steven-dawkins/cloth/geom"
)

// Params holds the physical constants of a cloth simulation. Lengths are in
// arbitrary scene units, times in seconds.
type Params struct {
	// Timestep is the fixed amount of simulated time per Step.
	Timestep float64
	// Damping is the fraction of the implied velocity lost every step.
	Damping float64
	// Gravity is the magnitude of the downward (-y) acceleration.
	Gravity float64
	// RestDistance is the rest length of every structural constraint.
	RestDistance float64
	// Mass is the mass of every particle.
	Mass float64
	// FloorY is the height of the ground plane.
	FloorY float64
	// Iterations is the number of relaxation passes per step.
	Iterations int
	// Border selects which edge constraints are added along the last row
	// and column.
	Border Border
}

// DefaultParams returns the parameters of the reference cloth.
func DefaultParams() Params {
	return Params{
		Timestep:     18.0 / 1000,
		Damping:      0.03,
		Gravity:      981 * 1.4,
		RestDistance: 25,
		Mass:         0.1,
		FloorY:       -250,
		Iterations:   1,
		Border:       BorderOpen,
	}
}

// Drag is the factor applied to the implied velocity every step.
func (p Params) Drag() float64 { return 1 - p.Damping }

// TimestepSq is Timestep squared.
func (p Params) TimestepSq() float64 { return p.Timestep * p.Timestep }

// Mesh supplies the triangulated surface of a cloth along with one normal
// per particle. Index i of VertexNormals corresponds to particle i.
type Mesh interface {
	Faces() []geom.Triangle
	VertexNormals() []mgl64.Vec3
}

// Controls are the per-step inputs to a Simulation.
type Controls struct {
	Wind, Ball bool
	// Pins must index into the cloth's particles.
	Pins PinSet
	// Mesh is required for wind. Wind is skipped if it is nil.
	Mesh Mesh
}
