package dem

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlowDirectionSteepestDescent(t *testing.T) {
	g := mustGrid(t, 3, 3, 1., []float64{
		9, 9, 9,
		9, 5, 9,
		9, 9, 1,
	})
	fd, err := FlowDirection(g, g.Slopes(), nil)
	require.NoError(t, err)
	assert.Equal(t, Southeast, fd.D[g.CellID(1, 1)])
	assert.Equal(t, Southeast, fd.D[g.CellID(0, 0)]) // corner drains through the centre
}

func TestFlowDirectionTieLowestCode(t *testing.T) {
	// south and north neighbours tie at the steepest slope; south enumerates first
	g := mustGrid(t, 3, 3, 1., []float64{
		9, 1, 9,
		9, 5, 9,
		9, 1, 9,
	})
	fd, err := FlowDirection(g, g.Slopes(), nil)
	require.NoError(t, err)
	assert.Equal(t, South, fd.D[g.CellID(1, 1)])
}

func TestFlowDirectionInvalidCells(t *testing.T) {
	nan := math.NaN()
	g := mustGrid(t, 1, 2, 1., []float64{nan, 3})
	fd, err := FlowDirection(g, g.Slopes(), nil)
	require.NoError(t, err)
	assert.Equal(t, Nodir, fd.D[0]) // no-data cell

	g1 := mustGrid(t, 1, 1, 1., []float64{3})
	fd1, err := FlowDirection(g1, g1.Slopes(), nil)
	require.NoError(t, err)
	assert.Equal(t, Nodir, fd1.D[0]) // valid elevation, no defined slope
}

func TestFlowDirectionOverrides(t *testing.T) {
	g := mustGrid(t, 3, 3, 1., []float64{
		9, 9, 9,
		9, 5, 9,
		9, 9, 1,
	})
	fd, err := FlowDirection(g, g.Slopes(), []Override{{Row: 1, Col: 1, Dir: North}})
	require.NoError(t, err)
	assert.Equal(t, North, fd.D[g.CellID(1, 1)]) // replaces the computed southeast

	_, err = FlowDirection(g, g.Slopes(), []Override{{Row: 5, Col: 0, Dir: North}})
	assert.Error(t, err)
	_, err = FlowDirection(g, g.Slopes(), []Override{{Row: 0, Col: 0, Dir: 9}})
	assert.Error(t, err)
}

func TestFlowDirectionShapeMismatch(t *testing.T) {
	g := mustGrid(t, 3, 3, 1., make([]float64, 9))
	g2 := mustGrid(t, 2, 2, 1., make([]float64, 4))
	_, err := FlowDirection(g, g2.Slopes(), nil)
	assert.Error(t, err)
}

func TestDownstream(t *testing.T) {
	g := mustGrid(t, 2, 2, 1., []float64{4, 3, 2, 1})
	fd, err := FlowDirection(g, g.Slopes(), []Override{{Row: 1, Col: 1, Dir: East}})
	require.NoError(t, err)

	r, c, ok := fd.Downstream(0, 0)
	require.True(t, ok)
	assert.Equal(t, 1, r) // steepest drop is the diagonal
	assert.Equal(t, 1, c)

	_, _, ok = fd.Downstream(1, 1) // forced east off the grid
	assert.False(t, ok)
}
