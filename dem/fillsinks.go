package dem

import "math"

// Epsilon is the lift applied above the lowest neighbour when raising a sink.
const Epsilon = 0.1

// FillSinks raises every interior cell that sits below all eight of its
// neighbours to the lowest neighbour's elevation plus Epsilon. Border cells
// are never modified; a cell whose eight neighbours are all no-data is
// skipped. Single forward pass in row-major order: chained depressions and
// plateaus may need further passes (see FillSinksN).
func (g *Grid) FillSinks() *Grid {
	out := g.Copy()
	g.fillSinks(out)
	return out
}

// FillSinksInPlace applies the same single pass, overwriting the receiver.
func (g *Grid) FillSinksInPlace() {
	copy(g.Z, g.FillSinks().Z)
}

func (g *Grid) fillSinks(out *Grid) {
	for r := 1; r < g.Nr-1; r++ {
		for c := 1; c < g.Nc-1; c++ {
			cid := r*g.Nc + c
			z := g.Z[cid]
			if math.IsNaN(z) {
				continue
			}
			mn := math.NaN()
			for _, o := range Offsets {
				zn := g.Z[(r+o.Dr)*g.Nc+c+o.Dc]
				if math.IsNaN(zn) {
					continue
				}
				if math.IsNaN(mn) || zn < mn {
					mn = zn
				}
			}
			if math.IsNaN(mn) {
				continue
			}
			if out.Z[cid] < mn {
				out.Z[cid] = mn + Epsilon
			}
		}
	}
}

// FillSinksN repeats the single-pass fill until the surface stops changing
// or maxPasses is reached, returning the filled grid and the number of
// passes applied. Optional extension over the single-pass baseline for
// nested depressions.
func (g *Grid) FillSinksN(maxPasses int) (*Grid, int) {
	cur, n := g, 0
	for n < maxPasses {
		nxt := cur.FillSinks()
		n++
		if cur.equal(nxt) {
			return nxt, n
		}
		cur = nxt
	}
	return cur, n
}

func (g *Grid) equal(o *Grid) bool {
	if g.Nr != o.Nr || g.Nc != o.Nc {
		return false
	}
	for i, z := range g.Z {
		zo := o.Z[i]
		if math.IsNaN(z) && math.IsNaN(zo) {
			continue
		}
		if z != zo {
			return false
		}
	}
	return true
}
