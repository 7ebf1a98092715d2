package io

import (
	"fmt"

	"github.com/phil-mansfield/table"

	"github.com/steven-dawkins/cloth"
)

// ReadPinFile reads a pin set from the first column of a text table. Each
// entry must be a particle index in [0, particles).
func ReadPinFile(fname string, particles int) (cloth.PinSet, error) {
	cols, err := table.ReadTable(fname, []int{0}, nil)
	if err != nil {
		return nil, err
	}

	pins := make(cloth.PinSet, len(cols[0]))
	for i, x := range cols[0] {
		idx, ok := toIndex(x)
		if !ok {
			return nil, fmt.Errorf(
				"Line %d of pin file '%s' is %g, which is not an index.",
				i+1, fname, x,
			)
		}
		pins[i] = idx
	}

	if err := pins.Check(particles); err != nil {
		return nil, fmt.Errorf("Pin file '%s': %s", fname, err.Error())
	}
	return pins, nil
}
