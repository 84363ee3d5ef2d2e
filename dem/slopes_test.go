package dem

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlopesDistances(t *testing.T) {
	g := mustGrid(t, 2, 2, 2., []float64{
		4, 2,
		1, 0,
	})
	s := g.Slopes()

	assert.InDelta(t, 1.0, s.At(0, 0, East), 1e-12)               // (4-2)/2
	assert.InDelta(t, 1.5, s.At(0, 0, South), 1e-12)              // (4-1)/2
	assert.InDelta(t, 4./(2.*math.Sqrt2), s.At(0, 0, Southeast), 1e-12) // (4-0)/(2*sqrt2)
	assert.InDelta(t, -1.0, s.At(0, 1, West), 1e-12)              // uphill is negative
}

func TestSlopesUndefinedOffGrid(t *testing.T) {
	g := mustGrid(t, 2, 2, 1., []float64{
		4, 2,
		1, 0,
	})
	s := g.Slopes()
	for _, d := range []Direction{North, Northwest, Northeast, West, Southwest} {
		assert.True(t, math.IsNaN(s.At(0, 0, d)), "direction %s of a corner cell", d)
	}
}

func TestSlopesUndefinedTowardNoData(t *testing.T) {
	nan := math.NaN()
	g := mustGrid(t, 1, 3, 1., []float64{3, 2, nan})
	s := g.Slopes()

	assert.True(t, math.IsNaN(s.At(0, 1, East))) // neighbour is no-data
	assert.InDelta(t, 1., s.At(0, 1, West), 1e-12)
	for d := Direction(0); d < 8; d++ {
		assert.True(t, math.IsNaN(s.At(0, 2, d)), "no-data cell carries slope %s", d)
	}
}

func TestSlopesDefinedCountBound(t *testing.T) {
	nan := math.NaN()
	g := mustGrid(t, 3, 3, 1., []float64{
		1, 2, 3,
		4, 5, nan,
		7, 8, 9,
	})
	s := g.Slopes()
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			n := 0
			for d := Direction(0); d < 8; d++ {
				if !math.IsNaN(s.At(r, c, d)) {
					n++
				}
			}
			assert.LessOrEqual(t, n, 8)
			if r == 1 && c == 1 {
				assert.Equal(t, 7, n) // one no-data neighbour
			}
		}
	}
}

func TestSlopeMax(t *testing.T) {
	g := mustGrid(t, 3, 3, 1., []float64{
		9, 9, 9,
		9, 5, 9,
		9, 1, 9,
	})
	s := g.Slopes()
	mx := s.Max()
	assert.InDelta(t, 4., mx[g.CellID(1, 1)], 1e-12) // drop toward the southern cell

	nan := math.NaN()
	gn := mustGrid(t, 1, 1, 1., []float64{nan})
	assert.True(t, math.IsNaN(gn.Slopes().Max()[0]))
}
