package cloth

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steven-dawkins/cloth/geom"
)

// frameTime is the spacing of the now values fed to Step in these tests, in
// milliseconds.
const frameTime = 1000.0 / 60

func runSim(t *testing.T, steps int, ctl func(i int) Controls) *Simulation {
	p := DefaultParams()
	c := newTestCloth(t, 20, 10, p)
	s := NewSimulation(c, p)
	for i := 0; i < steps; i++ {
		require.NoError(t, s.Step(float64(i)*frameTime, ctl(i)))
	}
	return s
}

func TestStepDeterministic(t *testing.T) {
	mesh := geom.NewMesh(20, 10)
	ctl := func(i int) Controls {
		return Controls{Wind: true, Ball: true, Pins: PinSet{0, 20}, Mesh: mesh}
	}

	run := func() []mgl64.Vec3 {
		p := DefaultParams()
		c := newTestCloth(t, 20, 10, p)
		s := NewSimulation(c, p)
		for i := 0; i < 200; i++ {
			mesh.ComputeNormals(c.Positions(nil))
			s.Step(float64(i)*frameTime, ctl(i))
		}
		return c.Positions(nil)
	}

	a, b := run(), run()
	assert.Equal(t, a, b)
}

func TestStepGravityScenario(t *testing.T) {
	p := DefaultParams()
	require.Equal(t, 0.018, p.Timestep)

	c, err := NewCloth(2, 2, geom.Plane(50, 50), p)
	require.NoError(t, err)
	require.Len(t, c.Particles, 9)
	require.Len(t, c.Constraints, 8)

	s := NewSimulation(c, p)
	for i := 0; i < 50; i++ {
		s.Step(float64(i)*frameTime, Controls{})

		for j := range c.Particles {
			pt := &c.Particles[j]
			for k := 0; k < 3; k++ {
				require.False(t, math.IsNaN(pt.Position[k]),
					"step %d particle %d is NaN", i+1, j)
			}
			if pt.Position[1] > pt.Original[1] {
				t.Fatalf("step %d: particle %d rose from %g to %g",
					i+1, j, pt.Original[1], pt.Position[1])
			}
		}
	}

	assert.Equal(t, 50, s.Steps())
	assert.InDelta(t, 0.9, s.Time(), 1e-12)
	// Falling freely, the cloth has dropped.
	assert.Less(t, c.Particles[0].Position[1], c.Particles[0].Original[1]-10)
}

func TestStepCornerPin(t *testing.T) {
	mesh := geom.NewMesh(20, 10)
	p := DefaultParams()
	c := newTestCloth(t, 20, 10, p)
	s := NewSimulation(c, p)
	pins := PinSet{0}

	for i := 0; i < 100; i++ {
		mesh.ComputeNormals(c.Positions(nil))
		s.Step(float64(i)*frameTime,
			Controls{Wind: true, Ball: true, Pins: pins, Mesh: mesh})

		p0 := c.Particles[0]
		if p0.Position != p0.Original || p0.Previous != p0.Original {
			t.Fatalf("step %d: pinned particle at %v (previous %v), rest %v",
				i+1, p0.Position, p0.Previous, p0.Original)
		}
	}
	assert.True(t, c.Finite())
}

func TestStepFloor(t *testing.T) {
	s := runSim(t, 300, func(int) Controls { return Controls{} })
	for i, pt := range s.Cloth.Particles {
		if pt.Position[1] < s.Params.FloorY {
			t.Errorf("particle %d below the floor: %v", i, pt.Position)
		}
	}
	// Three seconds is plenty of time to land.
	p0 := s.Cloth.Particles[0]
	assert.Less(t, p0.Position[1], p0.Original[1]-100)
}

func TestStepPinsOverrideFloor(t *testing.T) {
	p := DefaultParams()
	p.FloorY = 1000
	c := newTestCloth(t, 2, 2, p)
	s := NewSimulation(c, p)

	s.Step(0, Controls{Pins: PinSet{4}})
	assert.Equal(t, c.Particles[4].Original, c.Particles[4].Position)
	assert.Equal(t, 1000.0, c.Particles[0].Position[1])
}

func TestStepBadPins(t *testing.T) {
	p := DefaultParams()
	table := []PinSet{{9}, {-1}, {0, 4, 100}}

	for i, pins := range table {
		c := newTestCloth(t, 2, 2, p)
		s := NewSimulation(c, p)
		before := append([]Particle{}, c.Particles...)

		err := s.Step(0, Controls{Pins: pins})
		if err == nil {
			t.Errorf("%d) pins %v accepted", i+1, pins)
		}
		assert.Equal(t, before, c.Particles, "%d) cloth modified", i+1)
		assert.Equal(t, 0, s.Steps(), "%d) step counted", i+1)
	}

	c := newTestCloth(t, 2, 2, p)
	s := NewSimulation(c, p)
	require.NoError(t, s.Step(0, Controls{Pins: PinSet{0, 8}}))
}

func TestStepBall(t *testing.T) {
	s := runSim(t, 0, nil)

	// The ball moves with now whether or not collisions are on.
	s.Step(400*math.Pi, Controls{})
	want := mgl64.Vec3{-70, DefaultBallY, -90 * math.Sin(400*math.Pi/600)}
	assert.True(t, vecEpsEq(want, s.Ball.Center, 1e-9))

	// Put a particle inside the ball's next position.
	now := 0.0
	next := s.Ball
	next.Move(now)
	pt := &s.Cloth.Particles[50]
	pt.Position = next.Center.Add(mgl64.Vec3{0, 1, 0})
	pt.Previous = pt.Position

	s.Step(now, Controls{Ball: true, Pins: PinSet{}})
	d := pt.Position.Sub(s.Ball.Center).Len()
	assert.GreaterOrEqual(t, d, s.Ball.Radius-1e-9)
}

func TestStepWindRequiresMesh(t *testing.T) {
	a := runSim(t, 20, func(int) Controls { return Controls{Wind: true} })
	b := runSim(t, 20, func(int) Controls { return Controls{} })
	assert.Equal(t, a.Cloth.Positions(nil), b.Cloth.Positions(nil))
}

func TestStepIterations(t *testing.T) {
	run := func(iters int) float64 {
		p := DefaultParams()
		p.Gravity = 0
		p.Iterations = iters
		c := newTestCloth(t, 20, 10, p)
		for i := range c.Particles {
			pt := &c.Particles[i]
			pt.Position = pt.Position.Mul(1.5)
			pt.Previous = pt.Position
		}
		s := NewSimulation(c, p)
		s.Step(0, Controls{})
		return c.Strain()
	}

	// More passes per step make a stiffer cloth.
	assert.Less(t, run(50), run(1))
	assert.Equal(t, run(1), run(1))
}

func TestStepTimestepIndependentOfNow(t *testing.T) {
	a := runSim(t, 30, func(i int) Controls { return Controls{Pins: PinSet{0}} })

	p := DefaultParams()
	c := newTestCloth(t, 20, 10, p)
	b := NewSimulation(c, p)
	for i := 0; i < 30; i++ {
		// Irregular frame times.
		b.Step(float64(i*i)*3, Controls{Pins: PinSet{0}})
	}
	assert.Equal(t, a.Cloth.Positions(nil), b.Cloth.Positions(nil))
}

func BenchmarkStep(b *testing.B) {
	p := DefaultParams()
	c, err := NewCloth(20, 10, plane(20, 10, p), p)
	if err != nil {
		b.Fatal(err.Error())
	}
	mesh := geom.NewMesh(20, 10)
	s := NewSimulation(c, p)
	ctl := Controls{Wind: true, Ball: true, Pins: PinSet{0, 20}, Mesh: mesh}
	pos := make([]mgl64.Vec3, len(c.Particles))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		pos = c.Positions(pos)
		mesh.ComputeNormals(pos)
		s.Step(float64(i)*frameTime, ctl)
	}
}
