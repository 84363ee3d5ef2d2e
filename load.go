package rivers

import (
	"fmt"
	"math"

	"github.com/maseology/goHydro/grid"

	"github.com/Serapieum-of-alex/digital-rivers/dem"
)

const nodata = -9999.

// LoadGDEF reads a grid definition file.
func LoadGDEF(fp string) (*grid.Definition, error) {
	gd, err := grid.ReadGDEF(fp, true)
	if err != nil {
		return nil, fmt.Errorf("rivers.LoadGDEF: %v", err)
	}
	return gd, nil
}

// LoadElevation reads a grid definition and a real-valued elevation raster
// into a dense grid; raster no-data values map to NaN.
func LoadElevation(gdefFP, demFP string) (*dem.Grid, *grid.Definition, error) {
	gd, err := grid.ReadGDEF(gdefFP, true)
	if err != nil {
		return nil, nil, fmt.Errorf("rivers.LoadElevation: %v", err)
	}

	var gr grid.Real
	gr.NewGD32(demFP, gd)

	z := make([]float64, gd.Nrow*gd.Ncol)
	for i := range z {
		z[i] = math.NaN()
	}
	for cid, v := range gr.A {
		if v == nodata {
			continue
		}
		z[cid] = v
	}

	g, err := dem.NewGrid(gd.Nrow, gd.Ncol, gd.Cwidth, z)
	if err != nil {
		return nil, nil, fmt.Errorf("rivers.LoadElevation: %v", err)
	}
	return g, gd, nil
}

// LoadIntGrid reads an integer raster (bit-coded flow directions, basin ids)
// against a known grid definition; absent cells hold dem.NoData.
func LoadIntGrid(gd *grid.Definition, fp string) (*dem.IntGrid, error) {
	var g grid.Indx
	g.GD = gd
	g.New(fp)

	v := make([]int32, gd.Nrow*gd.Ncol)
	for i := range v {
		v[i] = dem.NoData
	}
	for cid, val := range g.A {
		v[cid] = int32(val)
	}
	return dem.NewIntGrid(gd.Nrow, gd.Ncol, v)
}
