package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mayB1998/Motion-Planning/internal/geom"
	"github.com/mayB1998/Motion-Planning/internal/grid"
	"github.com/mayB1998/Motion-Planning/internal/obstacle"
)

func wallWithGapBounds() geom.Bounds {
	return geom.Bounds{Min: geom.Vector2D{X: 0, Y: 0}, Max: geom.Vector2D{X: 20, Y: 20}}
}

func wallWithGap(t *testing.T) []obstacle.Obstacle {
	t.Helper()
	o, err := obstacle.New([]geom.Vector2D{
		{X: 9, Y: 3}, {X: 11, Y: 3}, {X: 11, Y: 16}, {X: 9, Y: 16},
	})
	require.NoError(t, err)
	return []obstacle.Obstacle{o}
}

func TestLPAStarPreVisibilityIgnoresUnseenObstacle(t *testing.T) {
	g := grid.New(wallWithGap(t), 0, wallWithGapBounds())
	require.NoError(t, g.BuildMap(1))

	start := geom.Vector2D{X: 2, Y: 10}
	goal := geom.Vector2D{X: 18, Y: 10}

	lp := NewLPAStar(g)
	require.NoError(t, lp.Initialize(start, goal))
	lp.ComputeShortestPath()
	gotPath := lp.ReturnPath()
	require.True(t, lp.ReturnValid())

	freeGrid := grid.New(nil, 0, wallWithGapBounds())
	require.NoError(t, freeGrid.BuildMap(1))
	a := NewAStar()
	refPath, err := a.PlanGrid(freeGrid, start, goal)
	require.NoError(t, err)

	assert.InDelta(t, pathLength(refPath), pathLength(gotPath), 1e-6)
}

func TestLPAStarConvergesToFreshAStarAfterFullVisibility(t *testing.T) {
	g := grid.New(wallWithGap(t), 0, wallWithGapBounds())
	require.NoError(t, g.BuildMap(1))

	start := geom.Vector2D{X: 2, Y: 10}
	goal := geom.Vector2D{X: 18, Y: 10}

	lp := NewLPAStar(g)
	require.NoError(t, lp.Initialize(start, goal))
	lp.ComputeShortestPath()

	w, h := g.Dimensions()
	flipped := g.UpdateGrid(grid.Index{I: w / 2, J: h / 2}, w+h)
	lp.SimulateUpdate(flipped)

	gotPath := lp.ReturnPath()
	require.True(t, lp.ReturnValid())

	a := NewAStar()
	refPath, err := a.PlanGrid(g, start, goal)
	require.NoError(t, err)

	assert.InDelta(t, pathLength(refPath), pathLength(gotPath), 1e-6)
}

func TestLPAStarInvalidWhenGoalSealed(t *testing.T) {
	o, err := obstacle.New([]geom.Vector2D{
		{X: 0, Y: 8}, {X: 20, Y: 8}, {X: 20, Y: 12}, {X: 0, Y: 12},
	})
	require.NoError(t, err)
	g := grid.New([]obstacle.Obstacle{o}, 0, wallWithGapBounds())
	require.NoError(t, g.BuildMap(1))

	start := geom.Vector2D{X: 5, Y: 2}
	goal := geom.Vector2D{X: 5, Y: 18}

	lp := NewLPAStar(g)
	require.NoError(t, lp.Initialize(start, goal))

	w, h := g.Dimensions()
	flipped := g.UpdateGrid(grid.Index{I: w / 2, J: h / 2}, w+h)
	lp.SimulateUpdate(flipped)

	lp.ReturnPath()
	assert.False(t, lp.ReturnValid())
}

// TestLPAStarIterCapFlagsInvalidDespiteFeasiblePath checks that hitting
// the iteration cap flags ReturnValid false even when a usable path can
// still be extracted from the partially-converged g-values.
func TestLPAStarIterCapFlagsInvalidDespiteFeasiblePath(t *testing.T) {
	g := grid.New(nil, 0, wallWithGapBounds())
	require.NoError(t, g.BuildMap(1))

	start := geom.Vector2D{X: 5, Y: 5}
	goal := geom.Vector2D{X: 6, Y: 5}

	lp := NewLPAStar(g, WithLPAIterCap(1))
	require.NoError(t, lp.Initialize(start, goal))
	lp.ComputeShortestPath()

	path := lp.ReturnPath()
	require.NotEmpty(t, path)
	assert.False(t, lp.ReturnValid())
}
