package main

import (
	"math"

	plt "github.com/phil-mansfield/pyplot"

	"github.com/steven-dawkins/cloth"
)

// heightTrace records the lowest, mean and highest particle heights after
// every step.
type heightTrace struct {
	ts, minYs, meanYs, maxYs []float64
}

func newHeightTrace(steps int) *heightTrace {
	return &heightTrace{
		ts:     make([]float64, 0, steps),
		minYs:  make([]float64, 0, steps),
		meanYs: make([]float64, 0, steps),
		maxYs:  make([]float64, 0, steps),
	}
}

func (h *heightTrace) Add(s *cloth.Simulation) {
	ps := s.Cloth.Particles
	min, max, sum := math.Inf(+1), math.Inf(-1), 0.0
	for i := range ps {
		y := ps[i].Position[1]
		min = math.Min(min, y)
		max = math.Max(max, y)
		sum += y
	}

	h.ts = append(h.ts, s.Time())
	h.minYs = append(h.minYs, min)
	h.meanYs = append(h.meanYs, sum/float64(len(ps)))
	h.maxYs = append(h.maxYs, max)
}

// Plot writes and runs a matplotlib script which saves the trace to fname.
func (h *heightTrace) Plot(fname string, floorY float64) {
	if len(h.ts) == 0 {
		return
	}

	plt.Figure()

	t0, t1 := h.ts[0], h.ts[len(h.ts)-1]
	plt.Plot([]float64{t0, t1}, []float64{floorY, floorY}, "k", plt.LW(2))

	plt.Plot(h.ts, h.maxYs, "r", plt.LW(2))
	plt.Plot(h.ts, h.meanYs, "k", plt.LW(3))
	plt.Plot(h.ts, h.minYs, "b", plt.LW(2))

	plt.Title("Cloth height")
	plt.XLabel(`$t$ [s]`, plt.FontSize(16))
	plt.YLabel(`$y$`, plt.FontSize(16))
	plt.Grid(plt.Axis("y"))
	plt.SaveFig(fname)

	plt.Execute()
}
