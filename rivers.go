// Package rivers derives water-flow routing from digital elevation models:
// depressions are filled, each cell is assigned its D8 steepest-descent
// direction (optionally forced at designated outfalls), and upstream
// contributing area is accumulated over the resulting flow network. Raster
// definitions and persistence follow the GDEF/bil conventions of
// github.com/maseology/goHydro/grid; the numeric core lives in the dem
// subpackage.
package rivers

import (
	"context"

	"github.com/Serapieum-of-alex/digital-rivers/dem"
)

// Routing holds the products of a full routing run over one elevation grid.
type Routing struct {
	Filled *dem.Grid    // sink-filled elevation
	Slopes *dem.Tensor  // eight directional slopes per cell
	Dir    *dem.DirGrid // D8 steepest-descent directions
	Acc    *dem.AccGrid // upstream contributing cell counts
}

// Route runs the pipeline with the single-threaded depth-first accumulator.
func Route(ctx context.Context, g *dem.Grid, overrides []dem.Override) (*Routing, error) {
	return route(ctx, g, overrides, dem.Accumulate)
}

// RouteConcurrent runs the pipeline with the layer-parallel accumulator.
func RouteConcurrent(ctx context.Context, g *dem.Grid, overrides []dem.Override) (*Routing, error) {
	return route(ctx, g, overrides, dem.AccumulateConcurrent)
}

func route(ctx context.Context, g *dem.Grid, overrides []dem.Override,
	accumulate func(context.Context, *dem.Grid, *dem.DirGrid) (*dem.AccGrid, error)) (*Routing, error) {

	filled := g.FillSinks()
	slopes := filled.Slopes()
	fd, err := dem.FlowDirection(filled, slopes, overrides)
	if err != nil {
		return nil, err
	}
	acc, err := accumulate(ctx, filled, fd)
	if err != nil {
		return nil, err
	}
	return &Routing{Filled: filled, Slopes: slopes, Dir: fd, Acc: acc}, nil
}
