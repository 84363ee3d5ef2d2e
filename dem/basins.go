package dem

import "fmt"

// PruneBasins collapses a multi-basin label raster to a single basin: the
// first id met scanning row-major is retained and every other valid cell is
// overwritten with the no-data value. The input is never mutated.
func PruneBasins(b *IntGrid, nodata int32) (*IntGrid, error) {
	if b == nil {
		return nil, fmt.Errorf("dem.PruneBasins: nil basin grid")
	}

	keep, found := nodata, false
	for _, v := range b.V {
		if v != nodata {
			keep, found = v, true
			break
		}
	}

	out := &IntGrid{Nr: b.Nr, Nc: b.Nc, V: make([]int32, len(b.V))}
	copy(out.V, b.V)
	if !found {
		return out, nil
	}
	for i, v := range out.V {
		if v != nodata && v != keep {
			out.V[i] = nodata
		}
	}
	return out, nil
}
