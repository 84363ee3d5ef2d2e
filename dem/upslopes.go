package dem

import "fmt"

// Cell is a grid coordinate.
type Cell struct{ Row, Col int }

// IntGrid is a dense integer raster (bit-coded directions, basin ids).
type IntGrid struct {
	Nr, Nc int
	V      []int32 // len Nr*Nc
}

// NewIntGrid wraps a row-major integer slice.
func NewIntGrid(nr, nc int, v []int32) (*IntGrid, error) {
	if nr <= 0 || nc <= 0 {
		return nil, fmt.Errorf("dem.NewIntGrid: invalid shape %d x %d", nr, nc)
	}
	if len(v) != nr*nc {
		return nil, fmt.Errorf("dem.NewIntGrid: slice length %d does not match %d x %d grid", len(v), nr, nc)
	}
	return &IntGrid{Nr: nr, Nc: nc, V: v}, nil
}

// Upslopes converts a bit-coded direction raster (codes 1,2,4,8,16,32,64,128,
// one per compass direction) into upstream adjacency lists: each valid cell
// maps to the cells draining directly into it. Cells with no upstream
// neighbours map to an empty list. A raster holding any other non-no-data
// value is rejected with an InvalidCodeError naming the offending values.
func Upslopes(bd *IntGrid, nodata int32) (map[Cell][]Cell, error) {
	if bd == nil {
		return nil, fmt.Errorf("dem.Upslopes: nil direction grid")
	}

	bad := map[int]bool{}
	for _, v := range bd.V {
		if v == nodata {
			continue
		}
		if _, ok := bitOffsets[int(v)]; !ok {
			bad[int(v)] = true
		}
	}
	if len(bad) > 0 {
		return nil, newInvalidCodeError(bad)
	}

	tbl := make(map[Cell][]Cell, bd.Nr*bd.Nc)
	for r := 0; r < bd.Nr; r++ {
		for c := 0; c < bd.Nc; c++ {
			if bd.V[r*bd.Nc+c] != nodata {
				tbl[Cell{r, c}] = []Cell{}
			}
		}
	}
	for r := 0; r < bd.Nr; r++ {
		for c := 0; c < bd.Nc; c++ {
			v := bd.V[r*bd.Nc+c]
			if v == nodata {
				continue
			}
			o := bitOffsets[int(v)]
			ds := Cell{r + o.Dr, c + o.Dc}
			if _, ok := tbl[ds]; ok { // off-grid or no-data targets drain away
				tbl[ds] = append(tbl[ds], Cell{r, c})
			}
		}
	}
	return tbl, nil
}

// DownstreamCells converts a bit-coded direction raster to the coordinate of
// each cell's single downstream target; cells that are no-data or drain off
// the grid are absent.
func DownstreamCells(bd *IntGrid, nodata int32) (map[Cell]Cell, error) {
	if bd == nil {
		return nil, fmt.Errorf("dem.DownstreamCells: nil direction grid")
	}

	bad := map[int]bool{}
	out := make(map[Cell]Cell, bd.Nr*bd.Nc)
	for r := 0; r < bd.Nr; r++ {
		for c := 0; c < bd.Nc; c++ {
			v := bd.V[r*bd.Nc+c]
			if v == nodata {
				continue
			}
			o, ok := bitOffsets[int(v)]
			if !ok {
				bad[int(v)] = true
				continue
			}
			rr, cc := r+o.Dr, c+o.Dc
			if rr < 0 || rr >= bd.Nr || cc < 0 || cc >= bd.Nc {
				continue
			}
			out[Cell{r, c}] = Cell{rr, cc}
		}
	}
	if len(bad) > 0 {
		return nil, newInvalidCodeError(bad)
	}
	return out, nil
}
