package rivers

import (
	"fmt"
	"math"

	"github.com/im7mortal/UTM"
	"github.com/maseology/goHydro/grid"

	"github.com/Serapieum-of-alex/digital-rivers/dem"
)

// Outfall is a designated outlet point with the direction flow is forced to
// take there, typically off the raster edge.
type Outfall struct {
	E, N float64 // easting/northing in the grid's projection
	Dir  dem.Direction
}

// Overrides snaps each outfall to its nearest cell in the grid definition's
// coordinate table and returns the forced-direction overrides to hand to
// FlowDirection.
func Overrides(gd *grid.Definition, outfalls []Outfall) ([]dem.Override, error) {
	out := make([]dem.Override, 0, len(outfalls))
	for _, of := range outfalls {
		cid, d2 := -1, math.MaxFloat64
		for c, xy := range gd.Coord {
			dx, dy := xy.X-of.E, xy.Y-of.N
			if dd := dx*dx + dy*dy; dd < d2 {
				cid, d2 = c, dd
			}
		}
		if cid < 0 {
			return nil, fmt.Errorf("rivers.Overrides: grid definition holds no cell coordinates")
		}
		out = append(out, dem.Override{Row: cid / gd.Ncol, Col: cid % gd.Ncol, Dir: of.Dir})
	}
	return out, nil
}

// OverridesLatLng converts geographic outfall points to the grid's UTM
// coordinates before snapping. Points must fall in a single UTM zone.
func OverridesLatLng(gd *grid.Definition, lats, lngs []float64, dirs []dem.Direction) ([]dem.Override, error) {
	if len(lats) != len(lngs) || len(lats) != len(dirs) {
		return nil, fmt.Errorf("rivers.OverridesLatLng: %d lat, %d lng, %d direction values", len(lats), len(lngs), len(dirs))
	}
	ofs := make([]Outfall, len(lats))
	for i := range lats {
		e, n, _, _, err := UTM.FromLatLon(lats[i], lngs[i], false)
		if err != nil {
			return nil, fmt.Errorf("rivers.OverridesLatLng: (%f, %f): %v", lats[i], lngs[i], err)
		}
		ofs[i] = Outfall{E: e, N: n, Dir: dirs[i]}
	}
	return Overrides(gd, ofs)
}
