package dem

import (
	"fmt"
	"math"
)

// DirGrid is a dense D8 flow-direction raster. Nodir marks cells that are
// no-data or have no defined slope.
type DirGrid struct {
	Nr, Nc int
	D      []Direction // len Nr*Nc
}

// Override forces the direction at a single cell, replacing the computed
// value unconditionally. Used for outfalls that must drain off the raster.
type Override struct {
	Row, Col int
	Dir      Direction
}

// FlowDirection assigns each valid cell the direction of its maximum slope;
// under a tie the lowest code wins. A cell is valid only if its elevation is
// defined and at least one of its eight slopes is defined. Overrides are
// applied after automatic assignment.
func FlowDirection(g *Grid, t *Tensor, overrides []Override) (*DirGrid, error) {
	if t.Nr != g.Nr || t.Nc != g.Nc {
		return nil, fmt.Errorf("dem.FlowDirection: slope tensor shape %dx%d does not match grid %dx%d",
			t.Nr, t.Nc, g.Nr, g.Nc)
	}

	fd := &DirGrid{Nr: g.Nr, Nc: g.Nc, D: make([]Direction, g.Nr*g.Nc)}
	for cid := range fd.D {
		fd.D[cid] = Nodir
		if math.IsNaN(g.Z[cid]) {
			continue
		}
		best, bd := math.NaN(), Nodir
		for d := Direction(0); d < 8; d++ {
			s := t.S[cid*8+int(d)]
			if math.IsNaN(s) {
				continue
			}
			if bd == Nodir || s > best {
				best, bd = s, d
			}
		}
		fd.D[cid] = bd
	}

	for _, o := range overrides {
		if o.Row < 0 || o.Row >= g.Nr || o.Col < 0 || o.Col >= g.Nc {
			return nil, fmt.Errorf("dem.FlowDirection: override cell (%d,%d) lies outside %dx%d grid",
				o.Row, o.Col, g.Nr, g.Nc)
		}
		if !o.Dir.Defined() {
			return nil, fmt.Errorf("dem.FlowDirection: override at (%d,%d) holds invalid direction %d",
				o.Row, o.Col, o.Dir)
		}
		fd.D[o.Row*g.Nc+o.Col] = o.Dir
	}
	return fd, nil
}

// Downstream returns the coordinate the cell drains to. ok is false when the
// cell carries no direction or its target lies off the grid.
func (fd *DirGrid) Downstream(r, c int) (int, int, bool) {
	d := fd.D[r*fd.Nc+c]
	if !d.Defined() {
		return 0, 0, false
	}
	o := Offsets[d]
	rr, cc := r+o.Dr, c+o.Dc
	if rr < 0 || rr >= fd.Nr || cc < 0 || cc >= fd.Nc {
		return 0, 0, false
	}
	return rr, cc, true
}

// upstream appends to buf every neighbour whose direction points into (r,c):
// the neighbour at offset d carries the opposite of d.
func (fd *DirGrid) upstream(r, c int, buf []int) []int {
	for d := Direction(0); d < 8; d++ {
		o := Offsets[d]
		rr, cc := r+o.Dr, c+o.Dc
		if rr < 0 || rr >= fd.Nr || cc < 0 || cc >= fd.Nc {
			continue
		}
		if fd.D[rr*fd.Nc+cc] == d.Opposite() {
			buf = append(buf, rr*fd.Nc+cc)
		}
	}
	return buf
}
