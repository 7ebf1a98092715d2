package cloth

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/steven-dawkins/cloth/geom"
)

// Constraint keeps the particles at indices P1 and P2 Distance apart.
type Constraint struct {
	P1, P2   int
	Distance float64
}

// Border selects the constraints added along the last row and column of a
// cloth, beyond the "up" and "right" edge of every cell.
type Border int

const (
	// BorderOpen adds nothing: the last column has no vertical edges and
	// the last row has no horizontal edges.
	BorderOpen Border = iota
	// BorderClosed adds the vertical edges of the last column and the
	// horizontal edges of the last row.
	BorderClosed
	// BorderSeam stitches the last column to the first, as needed when the
	// cloth is wrapped around a cylinder. The horizontal edges of the last
	// row are added too.
	BorderSeam
	EndBorder
)

var borderNames = [EndBorder]string{"Open", "Closed", "Seam"}

func (b Border) String() string {
	if b < 0 || b >= EndBorder {
		return fmt.Sprintf("Border(%d)", int(b))
	}
	return borderNames[b]
}

// BorderFromString returns the Border with the given (case insensitive)
// name.
func BorderFromString(s string) (Border, bool) {
	for b := BorderOpen; b < EndBorder; b++ {
		if strings.EqualFold(b.String(), s) {
			return b, true
		}
	}
	return BorderOpen, false
}

// InvalidTopologyError is returned when a cloth cannot be constructed from
// the given dimensions or constants.
type InvalidTopologyError struct {
	W, H   int
	Reason string
}

func (e *InvalidTopologyError) Error() string {
	return fmt.Sprintf("invalid %dx%d cloth topology: %s", e.W, e.H, e.Reason)
}

// IsInvalidTopology returns true if err is or wraps an InvalidTopologyError.
func IsInvalidTopology(err error) bool {
	var te *InvalidTopologyError
	return errors.As(err, &te)
}

// Cloth is a lattice of W x H cells, i.e. (W+1) x (H+1) particles, joined by
// structural constraints. Particle (u, v) is stored at Idx(u, v).
type Cloth struct {
	W, H        int
	Particles   []Particle
	Constraints []Constraint

	grid geom.Grid
}

// NewCloth builds a cloth of w x h cells whose particles are placed by
// evaluating surface at (u/w, v/h).
func NewCloth(w, h int, surface geom.Surface, p Params) (*Cloth, error) {
	switch {
	case w < 1 || h < 1:
		return nil, &InvalidTopologyError{w, h, "dimensions must be positive"}
	case !(p.Mass > 0):
		return nil, &InvalidTopologyError{
			w, h, fmt.Sprintf("particle mass %g is not positive", p.Mass),
		}
	case !(p.RestDistance >= 0):
		return nil, &InvalidTopologyError{
			w, h, fmt.Sprintf("rest distance %g is negative", p.RestDistance),
		}
	case p.Border < 0 || p.Border >= EndBorder:
		return nil, &InvalidTopologyError{
			w, h, fmt.Sprintf("unknown border %v", p.Border),
		}
	case surface == nil:
		return nil, &InvalidTopologyError{w, h, "no surface function"}
	}

	c := &Cloth{W: w, H: h}
	c.grid.Init(w, h)

	c.Particles = make([]Particle, c.grid.Area)
	for v := 0; v <= h; v++ {
		for u := 0; u <= w; u++ {
			pos := surface(float64(u)/float64(w), float64(v)/float64(h))
			c.Particles[c.Idx(u, v)].Init(pos, p.Mass)
		}
	}

	c.Constraints = make([]Constraint, 0, ConstraintCount(w, h, p.Border))
	for v := 0; v < h; v++ {
		for u := 0; u < w; u++ {
			c.link(u, v, u, v+1, p.RestDistance)
			c.link(u, v, u+1, v, p.RestDistance)
		}
	}

	switch p.Border {
	case BorderClosed:
		for v := 0; v < h; v++ {
			c.link(w, v, w, v+1, p.RestDistance)
		}
	case BorderSeam:
		for v := 0; v < h; v++ {
			c.link(w, v, w, v+1, p.RestDistance)
			c.link(w, v, 0, v, p.RestDistance)
		}
	}
	if p.Border != BorderOpen {
		for u := 0; u < w; u++ {
			c.link(u, h, u+1, h, p.RestDistance)
		}
	}

	return c, nil
}

// ConstraintCount returns the number of constraints in a w x h cloth with
// the given border.
func ConstraintCount(w, h int, b Border) int {
	n := 2 * w * h
	switch b {
	case BorderClosed:
		n += w + h
	case BorderSeam:
		n += w + 2*h
	}
	return n
}

func (c *Cloth) link(u1, v1, u2, v2 int, dist float64) {
	c.Constraints = append(c.Constraints, Constraint{
		P1: c.Idx(u1, v1), P2: c.Idx(u2, v2), Distance: dist,
	})
}

// Idx returns the index of particle (u, v). The caller must ensure that
// 0 <= u <= W and 0 <= v <= H.
func (c *Cloth) Idx(u, v int) int { return c.grid.Idx(u, v) }

// IdxCheck returns the index of particle (u, v) and true if the coordinates
// are inside the cloth and false otherwise.
func (c *Cloth) IdxCheck(u, v int) (int, bool) { return c.grid.IdxCheck(u, v) }

// Coords returns the lattice coordinates of the particle at idx.
func (c *Cloth) Coords(idx int) (u, v int) { return c.grid.Coords(idx) }

// Positions copies all particle positions into buf, growing it if needed,
// and returns it.
func (c *Cloth) Positions(buf []mgl64.Vec3) []mgl64.Vec3 {
	if cap(buf) < len(c.Particles) {
		buf = make([]mgl64.Vec3, len(c.Particles))
	}
	buf = buf[:len(c.Particles)]
	for i := range c.Particles {
		buf[i] = c.Particles[i].Position
	}
	return buf
}

// Finite returns true if every particle position is finite.
func (c *Cloth) Finite() bool {
	for i := range c.Particles {
		for _, x := range c.Particles[i].Position {
			if math.IsNaN(x) || math.IsInf(x, 0) {
				return false
			}
		}
	}
	return true
}
