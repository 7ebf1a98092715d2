package cloth

// Satisfy moves p1 and p2 symmetrically along the line joining them so that
// they end up distance apart. Coincident particles are left alone, since
// there is no direction to push them in.
func Satisfy(p1, p2 *Particle, distance float64) {
	diff := p2.Position.Sub(p1.Position)
	cur := diff.Len()
	if cur == 0 {
		return
	}

	half := diff.Mul((1 - distance/cur) * 0.5)
	p1.Position = p1.Position.Add(half)
	p2.Position = p2.Position.Sub(half)
}

// Relax performs a single relaxation pass over all constraints in the order
// they were created. Each correction sees the results of the ones before
// it, so the pass must stay sequential.
func (c *Cloth) Relax() {
	ps := c.Particles
	for _, con := range c.Constraints {
		Satisfy(&ps[con.P1], &ps[con.P2], con.Distance)
	}
}

// Strain returns the largest relative deviation of any constraint from its
// rest length, |d - d0| / d0. Constraints with a zero rest length
// contribute their absolute length.
func (c *Cloth) Strain() float64 {
	max := 0.0
	for _, con := range c.Constraints {
		d := c.Particles[con.P2].Position.Sub(c.Particles[con.P1].Position).Len()
		s := d - con.Distance
		if s < 0 {
			s = -s
		}
		if con.Distance > 0 {
			s /= con.Distance
		}
		if s > max {
			max = s
		}
	}
	return max
}
