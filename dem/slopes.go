package dem

import (
	"math"
	"sync"
)

// Tensor holds the eight directional slopes of every cell, ordered by
// Direction code: elevation drop toward the neighbour over flow distance
// (cell width for axis steps, cell width times sqrt2 for diagonals).
// Entries toward off-grid or no-data neighbours hold NaN.
type Tensor struct {
	Nr, Nc int
	S      []float64 // len Nr*Nc*8
}

// At returns the slope from cell (r,c) toward its neighbour in direction d.
func (t *Tensor) At(r, c int, d Direction) float64 {
	return t.S[(r*t.Nc+c)*8+int(d)]
}

// Slopes computes the directional slope tensor. Each cell depends only on
// its fixed neighbourhood, so rows are resolved concurrently.
func (g *Grid) Slopes() *Tensor {
	t := &Tensor{Nr: g.Nr, Nc: g.Nc, S: make([]float64, g.Nr*g.Nc*8)}
	for i := range t.S {
		t.S[i] = math.NaN()
	}

	dists := [8]float64{}
	for d := range Offsets {
		dists[d] = g.Cw
		if Direction(d).Diagonal() {
			dists[d] *= math.Sqrt2
		}
	}

	var wg sync.WaitGroup
	wg.Add(g.Nr)
	for r := 0; r < g.Nr; r++ {
		go func(r int) {
			defer wg.Done()
			for c := 0; c < g.Nc; c++ {
				z := g.Z[r*g.Nc+c]
				if math.IsNaN(z) {
					continue
				}
				for d, o := range Offsets {
					rr, cc := r+o.Dr, c+o.Dc
					if !g.IsIn(rr, cc) {
						continue
					}
					zn := g.Z[rr*g.Nc+cc]
					if math.IsNaN(zn) {
						continue
					}
					t.S[(r*g.Nc+c)*8+d] = (z - zn) / dists[d]
				}
			}
		}(r)
	}
	wg.Wait()
	return t
}

// Max reduces the tensor to the per-cell maximum slope; ties keep the first
// direction's value. Cells with no defined slope hold NaN.
func (t *Tensor) Max() []float64 {
	mx := make([]float64, t.Nr*t.Nc)
	for i := range mx {
		mx[i] = math.NaN()
		for d := 0; d < 8; d++ {
			s := t.S[i*8+d]
			if math.IsNaN(s) {
				continue
			}
			if math.IsNaN(mx[i]) || s > mx[i] {
				mx[i] = s
			}
		}
	}
	return mx
}
