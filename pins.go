package cloth

import (
	"fmt"
	"math/rand"
	"strings"
)

// PinSet lists the particles held at their original positions. Duplicates
// are harmless and an empty set leaves the cloth free.
type PinSet []int

// Enforce resets every pinned particle to its original position with zero
// velocity.
func (pins PinSet) Enforce(ps []Particle) {
	for _, idx := range pins {
		p := &ps[idx]
		p.Position = p.Original
		p.Previous = p.Original
	}
}

// Check returns an error if any index is outside [0, n).
func (pins PinSet) Check(n int) error {
	for i, idx := range pins {
		if idx < 0 || idx >= n {
			return fmt.Errorf(
				"pin %d refers to particle %d, which is not in [0, %d)",
				i, idx, n,
			)
		}
	}
	return nil
}

// Formation is a named pin configuration.
type Formation struct {
	Name string
	Pins PinSet
}

// Formations returns the catalog of pin configurations for c, in a fixed
// order:
//
//	point:   the particle at index 6
//	top:     the entire first row
//	corner:  the first corner
//	none:    nothing, the cloth falls freely
//	classic: both corners of the first row
func Formations(c *Cloth) []Formation {
	top := make(PinSet, c.W+1)
	for u := range top {
		top[u] = c.Idx(u, 0)
	}

	point := PinSet{6}
	if n := len(c.Particles); n <= 6 {
		point = PinSet{n - 1}
	}

	return []Formation{
		{"point", point},
		{"top", top},
		{"corner", PinSet{0}},
		{"none", PinSet{}},
		{"classic", PinSet{c.Idx(0, 0), c.Idx(c.W, 0)}},
	}
}

// DefaultFormation is the name of the formation a cloth starts in.
const DefaultFormation = "top"

// FormationByName looks up a formation in c's catalog, ignoring case.
func FormationByName(c *Cloth, name string) (Formation, error) {
	fs := Formations(c)
	names := make([]string, len(fs))
	for i, f := range fs {
		if strings.EqualFold(f.Name, name) {
			return f, nil
		}
		names[i] = f.Name
	}
	return Formation{}, fmt.Errorf(
		"unknown pin formation '%s', must be one of [ %s ]",
		name, strings.Join(names, " | "),
	)
}

// NextFormation returns the formation following name in c's catalog,
// wrapping around at the end. Unknown names give the first formation.
func NextFormation(c *Cloth, name string) Formation {
	fs := Formations(c)
	for i, f := range fs {
		if strings.EqualFold(f.Name, name) {
			return fs[(i+1)%len(fs)]
		}
	}
	return fs[0]
}

// RandomFormation draws a formation from c's catalog uniformly.
func RandomFormation(c *Cloth, rng *rand.Rand) Formation {
	fs := Formations(c)
	return fs[rng.Intn(len(fs))]
}
