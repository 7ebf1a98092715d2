package io

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/phil-mansfield/table"
)

// WritePositions writes one "index x y z" line per position. Values are
// printed with enough digits to be read back exactly.
func WritePositions(w io.Writer, pos []mgl64.Vec3) error {
	bw := bufio.NewWriter(w)
	for i, x := range pos {
		_, err := fmt.Fprintf(bw, "%d %.17g %.17g %.17g\n", i, x[0], x[1], x[2])
		if err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WritePositionsFile is WritePositions to a newly created file.
func WritePositionsFile(fname string, pos []mgl64.Vec3) error {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}

	if err = WritePositions(f, pos); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadPositionsFile reads a file written by WritePositions. Lines may come
// in any order, but every index in [0, n) must appear exactly once.
func ReadPositionsFile(fname string) ([]mgl64.Vec3, error) {
	cols, err := table.ReadTable(fname, []int{0, 1, 2, 3}, nil)
	if err != nil {
		return nil, err
	}

	idxs, xs, ys, zs := cols[0], cols[1], cols[2], cols[3]
	pos := make([]mgl64.Vec3, len(idxs))
	seen := make([]bool, len(idxs))

	for i := range idxs {
		idx, ok := toIndex(idxs[i])
		if !ok || idx >= len(pos) {
			return nil, fmt.Errorf(
				"Line %d of '%s' has index %g, which is not in [0, %d).",
				i+1, fname, idxs[i], len(pos),
			)
		} else if seen[idx] {
			return nil, fmt.Errorf(
				"Index %d appears more than once in '%s'.", idx, fname,
			)
		}
		seen[idx] = true
		pos[idx] = mgl64.Vec3{xs[i], ys[i], zs[i]}
	}

	return pos, nil
}

// toIndex converts a table value to a non-negative integer index.
func toIndex(x float64) (int, bool) {
	if x < 0 || x != math.Floor(x) || x > math.MaxInt32 {
		return 0, false
	}
	return int(x), true
}
