package cloth

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func pair(x1, x2 mgl64.Vec3) (*Particle, *Particle) {
	return NewParticle(x1, 0.1), NewParticle(x2, 0.1)
}

func TestSatisfyCoincident(t *testing.T) {
	x := mgl64.Vec3{3, -4, 5}
	p1, p2 := pair(x, x)
	Satisfy(p1, p2, 25)

	assert.Equal(t, x, p1.Position)
	assert.Equal(t, x, p2.Position)
	assert.False(t, math.IsNaN(p1.Position[0]))
}

func TestSatisfy(t *testing.T) {
	table := []struct {
		x1, x2, y1, y2 mgl64.Vec3
		dist           float64
	}{
		// Stretched.
		{mgl64.Vec3{0, 0, 0}, mgl64.Vec3{40, 0, 0},
			mgl64.Vec3{7.5, 0, 0}, mgl64.Vec3{32.5, 0, 0}, 25},
		// Compressed.
		{mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 10, 0},
			mgl64.Vec3{0, -7.5, 0}, mgl64.Vec3{0, 17.5, 0}, 25},
		// Already satisfied.
		{mgl64.Vec3{1, 1, 1}, mgl64.Vec3{1, 1, 26},
			mgl64.Vec3{1, 1, 1}, mgl64.Vec3{1, 1, 26}, 25},
		// Zero rest length pulls both to the midpoint.
		{mgl64.Vec3{-2, 0, 0}, mgl64.Vec3{2, 4, 0},
			mgl64.Vec3{0, 2, 0}, mgl64.Vec3{0, 2, 0}, 0},
	}

	for i, test := range table {
		p1, p2 := pair(test.x1, test.x2)
		Satisfy(p1, p2, test.dist)
		if !vecEpsEq(p1.Position, test.y1, testEps) ||
			!vecEpsEq(p2.Position, test.y2, testEps) {
			t.Errorf("%d) Satisfy(%v, %v, %g) -> %v %v instead of %v %v",
				i+1, test.x1, test.x2, test.dist,
				p1.Position, p2.Position, test.y1, test.y2)
		}

		// The midpoint never moves.
		mid0 := test.x1.Add(test.x2).Mul(0.5)
		mid1 := p1.Position.Add(p2.Position).Mul(0.5)
		assert.True(t, vecEpsEq(mid0, mid1, testEps), "%d) midpoint moved", i+1)

		// Previous positions are untouched.
		assert.Equal(t, test.x1, p1.Previous)
		assert.Equal(t, test.x2, p2.Previous)
	}
}

func twoParticleCloth(d0, rest float64) *Cloth {
	c := &Cloth{W: 1, H: 0}
	c.Particles = make([]Particle, 2)
	c.Particles[0].Init(mgl64.Vec3{0, 0, 0}, 0.1)
	c.Particles[1].Init(mgl64.Vec3{d0 * 0.6, d0 * 0.8, 0}, 0.1)
	c.Constraints = []Constraint{{0, 1, rest}}
	return c
}

func constraintError(c *Cloth) float64 {
	sum := 0.0
	for _, con := range c.Constraints {
		d := c.Particles[con.P2].Position.Sub(c.Particles[con.P1].Position).Len()
		sum += math.Abs(d - con.Distance)
	}
	return sum
}

func TestRelaxTwoParticles(t *testing.T) {
	for i, d0 := range []float64{1, 10, 24, 26, 40, 1000} {
		c := twoParticleCloth(d0, 25)
		prev := constraintError(c)
		for pass := 0; pass < 10; pass++ {
			c.Relax()
			e := constraintError(c)
			if e > prev+1e-12 {
				t.Errorf("%d) pass %d raised the error from %g to %g",
					i+1, pass+1, prev, e)
			}
			prev = e
		}
		assert.InDelta(t, 0, prev, 1e-9, "d0 = %g", d0)
	}
}

func TestRelaxChainConverges(t *testing.T) {
	c := &Cloth{W: 2, H: 0}
	c.Particles = make([]Particle, 3)
	c.Particles[0].Init(mgl64.Vec3{0, 0, 0}, 0.1)
	c.Particles[1].Init(mgl64.Vec3{10, 0, 0}, 0.1)
	c.Particles[2].Init(mgl64.Vec3{60, 0, 0}, 0.1)
	c.Constraints = []Constraint{{0, 1, 25}, {1, 2, 25}}

	// A single pass only partially fixes a chain.
	c.Relax()
	assert.InDelta(t, 8.75, constraintError(c), 1e-9)

	prev := constraintError(c)
	for pass := 0; pass < 40; pass++ {
		c.Relax()
		e := constraintError(c)
		assert.LessOrEqual(t, e, prev+1e-12)
		prev = e
	}
	assert.InDelta(t, 0, prev, 1e-6)
}

func TestRelaxOrderMatters(t *testing.T) {
	build := func(cons []Constraint) *Cloth {
		c := &Cloth{W: 2, H: 0}
		c.Particles = make([]Particle, 3)
		c.Particles[0].Init(mgl64.Vec3{0, 0, 0}, 0.1)
		c.Particles[1].Init(mgl64.Vec3{10, 0, 0}, 0.1)
		c.Particles[2].Init(mgl64.Vec3{60, 0, 0}, 0.1)
		c.Constraints = cons
		return c
	}

	a := build([]Constraint{{0, 1, 25}, {1, 2, 25}})
	b := build([]Constraint{{1, 2, 25}, {0, 1, 25}})
	a.Relax()
	b.Relax()
	assert.NotEqual(t, a.Particles[1].Position, b.Particles[1].Position)
}

func BenchmarkRelax(b *testing.B) {
	c, err := NewCloth(20, 10, plane(20, 10, DefaultParams()), DefaultParams())
	if err != nil {
		b.Fatal(err.Error())
	}
	for i := range c.Particles {
		c.Particles[i].Position[1] *= 1.1
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Relax()
	}
}
