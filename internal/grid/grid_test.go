package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mayB1998/Motion-Planning/internal/geom"
	"github.com/mayB1998/Motion-Planning/internal/obstacle"
)

func bounds30() geom.Bounds {
	return geom.Bounds{Min: geom.Vector2D{X: 0, Y: 0}, Max: geom.Vector2D{X: 30, Y: 30}}
}

func TestBuildMapDimensionsEmptyObstacles(t *testing.T) {
	g := New(nil, 0, bounds30())
	require.NoError(t, g.BuildMap(0.1))

	w, h := g.Dimensions()
	assert.Equal(t, 300, w)
	assert.Equal(t, 300, h)
	assert.Len(t, g.Cells, w*h)
}

func TestBuildMapBoundaryCellsOccupied(t *testing.T) {
	g := New(nil, 0, bounds30())
	require.NoError(t, g.BuildMap(1))
	w, h := g.Dimensions()

	assert.True(t, g.CellAt(Index{I: 0, J: 0}).Occupied)
	assert.True(t, g.CellAt(Index{I: w - 1, J: h - 1}).Occupied)
	assert.False(t, g.CellAt(Index{I: w / 2, J: h / 2}).Occupied)
}

func TestBuildMapLabelsObstacleCells(t *testing.T) {
	o, err := obstacle.New([]geom.Vector2D{
		{X: 10, Y: 10}, {X: 20, Y: 10}, {X: 20, Y: 20}, {X: 10, Y: 20},
	})
	require.NoError(t, err)

	g := New([]obstacle.Obstacle{o}, 0, bounds30())
	require.NoError(t, g.BuildMap(1))

	center := g.IndexOf(geom.Vector2D{X: 15, Y: 15})
	assert.True(t, g.CellAt(center).Occupied)
}

func TestOccupancyGridEncoding(t *testing.T) {
	g := New(nil, 0, bounds30())
	require.NoError(t, g.BuildMap(5))

	bytes := g.OccupancyGrid()
	w, h := g.Dimensions()
	require.Len(t, bytes, w*h)
	for i, c := range g.Cells {
		if c.Occupied {
			assert.EqualValues(t, 100, bytes[i])
		} else {
			assert.EqualValues(t, 0, bytes[i])
		}
	}
}

func TestFakeGridStartsInteriorFreeBoundaryKnown(t *testing.T) {
	o, err := obstacle.New([]geom.Vector2D{
		{X: 10, Y: 10}, {X: 20, Y: 10}, {X: 20, Y: 20}, {X: 10, Y: 20},
	})
	require.NoError(t, err)
	g := New([]obstacle.Obstacle{o}, 0, bounds30())
	require.NoError(t, g.BuildMap(1))
	w, h := g.Dimensions()

	center := g.IndexOf(geom.Vector2D{X: 15, Y: 15})
	assert.False(t, g.FakeCellAt(center).Occupied, "interior obstacle cell unseen yet")
	assert.True(t, g.FakeCellAt(Index{I: 0, J: 0}).Occupied, "boundary ring known up front")
	assert.True(t, g.FakeCellAt(Index{I: w - 1, J: h - 1}).Occupied)
}

func TestUpdateGridSyncsWithinVisibilityAndReportsFlips(t *testing.T) {
	o, err := obstacle.New([]geom.Vector2D{
		{X: 10, Y: 10}, {X: 20, Y: 10}, {X: 20, Y: 20}, {X: 10, Y: 20},
	})
	require.NoError(t, err)
	g := New([]obstacle.Obstacle{o}, 0, bounds30())
	require.NoError(t, g.BuildMap(1))

	from := g.IndexOf(geom.Vector2D{X: 15, Y: 15})
	flipped := g.UpdateGrid(from, 2)

	assert.NotEmpty(t, flipped)
	for _, c := range flipped {
		assert.Equal(t, g.CellAt(c.Index).Occupied, c.Occupied)
	}

	// Calling again with the same centre and visibility is idempotent:
	// nothing left to flip.
	again := g.UpdateGrid(from, 2)
	assert.Empty(t, again)
}

func TestNeighbors8InBoundsOnly(t *testing.T) {
	g := New(nil, 0, bounds30())
	require.NoError(t, g.BuildMap(5))

	corner := Index{I: 0, J: 0}
	nbs := g.Neighbors8(corner)
	assert.Len(t, nbs, 3)
}
