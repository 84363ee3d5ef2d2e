package dem

import (
	"context"
	"fmt"
	"math"
)

// NoData marks integer-raster cells outside the valid elevation mask.
const NoData int32 = -9999

// internal cache sentinels, never observable in a returned grid
const (
	unprocessed int32 = -1
	inProgress  int32 = -2
)

// AccGrid counts, per cell, the upstream cells whose flow path passes
// through it (the cell itself contributes zero). NoData marks cells outside
// the valid elevation mask.
type AccGrid struct {
	Nr, Nc int
	N      []int32 // len Nr*Nc
}

// At returns the accumulation at (r,c).
func (a *AccGrid) At(r, c int) int32 { return a.N[r*a.Nc+c] }

// Accumulate computes flow accumulation over a direction grid:
// acc(cell) = sum over upstream neighbours u of (1 + acc(u)), memoized.
// The upstream walk uses an explicit stack; chain length is bounded only by
// grid size, so call-stack recursion is avoided. A direction grid that
// routes a cell into itself yields a CycleError. The context is checked
// cooperatively as cells resolve.
func Accumulate(ctx context.Context, g *Grid, fd *DirGrid) (*AccGrid, error) {
	if fd.Nr != g.Nr || fd.Nc != g.Nc {
		return nil, fmt.Errorf("dem.Accumulate: direction grid shape %dx%d does not match grid %dx%d",
			fd.Nr, fd.Nc, g.Nr, g.Nc)
	}

	acc := &AccGrid{Nr: g.Nr, Nc: g.Nc, N: make([]int32, g.Nr*g.Nc)}
	for cid := range acc.N {
		if math.IsNaN(g.Z[cid]) {
			acc.N[cid] = NoData
		} else {
			acc.N[cid] = unprocessed
		}
	}

	var stack, buf []int
	nres := 0
	for cid := range acc.N {
		if acc.N[cid] != unprocessed {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		stack = append(stack[:0], cid)
		acc.N[cid] = inProgress
		for len(stack) > 0 {
			c := stack[len(stack)-1]
			buf = fd.upstream(c/g.Nc, c%g.Nc, buf[:0])
			ready := true
			var sum int32
			for _, u := range buf {
				switch acc.N[u] {
				case NoData: // outside the mask; silently excluded
				case unprocessed:
					acc.N[u] = inProgress
					stack = append(stack, u)
					ready = false
				case inProgress:
					// u is already being resolved below us on the stack
					return nil, &CycleError{Row: u / g.Nc, Col: u % g.Nc}
				default:
					sum += 1 + acc.N[u]
				}
			}
			if !ready {
				continue
			}
			acc.N[c] = sum
			stack = stack[:len(stack)-1]
			if nres++; nres&0x3ff == 0 {
				if err := ctx.Err(); err != nil {
					return nil, err
				}
			}
		}
	}
	return acc, nil
}
