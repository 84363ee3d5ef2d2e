// Package dem routes water flow over dense digital elevation models using
// the D8 (eight-direction steepest descent) method: sink filling, directional
// slope fields, flow-direction assignment, memoized flow accumulation,
// upslope adjacency tables and basin pruning.
package dem

import (
	"fmt"
	"math"
)

// Grid is a dense row-major elevation raster. No-data cells hold NaN.
type Grid struct {
	Nr, Nc int       // rows, columns
	Cw     float64   // cell width
	Z      []float64 // elevations, len Nr*Nc
}

// NewGrid wraps a row-major elevation slice. The slice is held, not copied.
func NewGrid(nr, nc int, cw float64, z []float64) (*Grid, error) {
	if nr <= 0 || nc <= 0 {
		return nil, fmt.Errorf("dem.NewGrid: invalid shape %d x %d", nr, nc)
	}
	if cw <= 0. {
		return nil, fmt.Errorf("dem.NewGrid: invalid cell width %f", cw)
	}
	if len(z) != nr*nc {
		return nil, fmt.Errorf("dem.NewGrid: slice length %d does not match %d x %d grid", len(z), nr, nc)
	}
	return &Grid{Nr: nr, Nc: nc, Cw: cw, Z: z}, nil
}

// CellID converts a row/column pair to its linear row-major index.
func (g *Grid) CellID(r, c int) int { return r*g.Nc + c }

// RowCol converts a linear cell index back to its row/column pair.
func (g *Grid) RowCol(cid int) (int, int) { return cid / g.Nc, cid % g.Nc }

// IsIn reports whether the coordinate lies on the grid.
func (g *Grid) IsIn(r, c int) bool { return r >= 0 && r < g.Nr && c >= 0 && c < g.Nc }

// IsValid reports whether the coordinate lies on the grid and holds data.
func (g *Grid) IsValid(r, c int) bool {
	return g.IsIn(r, c) && !math.IsNaN(g.Z[r*g.Nc+c])
}

// Copy returns a deep copy of the grid.
func (g *Grid) Copy() *Grid {
	z := make([]float64, len(g.Z))
	copy(z, g.Z)
	return &Grid{Nr: g.Nr, Nc: g.Nc, Cw: g.Cw, Z: z}
}

// Nvalid counts the cells holding data.
func (g *Grid) Nvalid() int {
	n := 0
	for _, z := range g.Z {
		if !math.IsNaN(z) {
			n++
		}
	}
	return n
}
