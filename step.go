package cloth

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Simulation advances a Cloth through time. It is not safe for concurrent
// use, and the cloth's particles must not be modified while Step runs.
type Simulation struct {
	Cloth  *Cloth
	Params Params
	Ball   Ball

	gravity    mgl64.Vec3
	dtSq, drag float64
	steps      int
}

// NewSimulation creates a Simulation of c using p, with the ball at its
// default size and t = 0 position.
func NewSimulation(c *Cloth, p Params) *Simulation {
	s := &Simulation{Cloth: c, Params: p, Ball: DefaultBall()}
	s.gravity = mgl64.Vec3{0, -p.Gravity, 0}.Mul(p.Mass)
	s.dtSq = p.TimestepSq()
	s.drag = p.Drag()
	return s
}

// Step advances the cloth by exactly one Timestep. now is the time in
// milliseconds and only sets the phase of the wind and the ball; it has no
// effect on the size of the step.
//
// The stages run in a fixed order: wind, gravity and integration,
// relaxation, ball, floor, pins. Pins come last so they override every
// other correction.
//
// Step returns an error without touching the cloth if ctl.Pins refers to a
// particle which does not exist.
func (s *Simulation) Step(now float64, ctl Controls) error {
	ps := s.Cloth.Particles
	if err := ctl.Pins.Check(len(ps)); err != nil {
		return err
	}

	if ctl.Wind && ctl.Mesh != nil {
		ApplyWind(ps, ctl.Mesh, WindForce(now))
	}

	for i := range ps {
		ps[i].AddForce(s.gravity)
		ps[i].Integrate(s.dtSq, s.drag)
	}

	for i := 0; i < s.Params.Iterations; i++ {
		s.Cloth.Relax()
	}

	s.Ball.Move(now)
	if ctl.Ball {
		s.Ball.Collide(ps)
	}

	CollideFloor(ps, s.Params.FloorY)

	ctl.Pins.Enforce(ps)

	s.steps++
	return nil
}

// Steps returns the number of completed calls to Step.
func (s *Simulation) Steps() int { return s.steps }

// Time returns the amount of simulated time, in seconds.
func (s *Simulation) Time() float64 {
	return float64(s.steps) * s.Params.Timestep
}
