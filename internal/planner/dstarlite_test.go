package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mayB1998/Motion-Planning/internal/geom"
	"github.com/mayB1998/Motion-Planning/internal/grid"
)

func TestDStarLiteConvergesToFreshAStarAfterFullVisibility(t *testing.T) {
	g := grid.New(wallWithGap(t), 0, wallWithGapBounds())
	require.NoError(t, g.BuildMap(1))

	start := geom.Vector2D{X: 2, Y: 10}
	goal := geom.Vector2D{X: 18, Y: 10}

	d := NewDStarLite(g)
	require.NoError(t, d.Initialize(start, goal))
	d.ComputeShortestPath()

	w, h := g.Dimensions()
	flipped := g.UpdateGrid(grid.Index{I: w / 2, J: h / 2}, w+h)
	d.SimulateUpdate(start, flipped)

	gotPath := d.ReturnPath()
	require.True(t, d.ReturnValid())
	require.NotEmpty(t, gotPath)

	assert.Less(t, gotPath[0].Distance(start), 1.5)
	assert.Less(t, gotPath[len(gotPath)-1].Distance(goal), 1.5)

	a := NewAStar()
	refPath, err := a.PlanGrid(g, start, goal)
	require.NoError(t, err)
	assert.InDelta(t, pathLength(refPath), pathLength(gotPath), 1e-6)
}

func TestDStarLiteAdvancesKmAsRobotMoves(t *testing.T) {
	g := grid.New(nil, 0, wallWithGapBounds())
	require.NoError(t, g.BuildMap(1))

	start := geom.Vector2D{X: 2, Y: 2}
	goal := geom.Vector2D{X: 18, Y: 18}

	d := NewDStarLite(g)
	require.NoError(t, d.Initialize(start, goal))
	d.ComputeShortestPath()

	before := d.km
	d.SimulateUpdate(geom.Vector2D{X: 4, Y: 2}, nil)
	assert.Greater(t, d.km, before)

	path := d.ReturnPath()
	require.True(t, d.ReturnValid())
	assert.Less(t, path[0].Distance(geom.Vector2D{X: 4, Y: 2}), 1.5)
}

// TestDStarLiteKmAccumulatesStepwise guards against km being computed
// from a stale two-steps-back position: after start->A->B, km must equal
// h(start,A) + h(A,B), not h(start,A) + h(start,B).
func TestDStarLiteKmAccumulatesStepwise(t *testing.T) {
	g := grid.New(nil, 0, wallWithGapBounds())
	require.NoError(t, g.BuildMap(1))

	start := geom.Vector2D{X: 2, Y: 2}
	a := geom.Vector2D{X: 4, Y: 2}
	b := geom.Vector2D{X: 4, Y: 6}
	goal := geom.Vector2D{X: 18, Y: 18}

	d := NewDStarLite(g)
	require.NoError(t, d.Initialize(start, goal))
	d.ComputeShortestPath()

	d.SimulateUpdate(a, nil)
	d.SimulateUpdate(b, nil)

	startCenter := g.CellAt(g.IndexOf(start)).Center
	aCenter := g.CellAt(g.IndexOf(a)).Center
	bCenter := g.CellAt(g.IndexOf(b)).Center
	wantKm := heuristic(startCenter, aCenter) + heuristic(aCenter, bCenter)
	wrongKm := heuristic(startCenter, aCenter) + heuristic(startCenter, bCenter)

	assert.InDelta(t, wantKm, d.km, 1e-9)
	assert.NotEqual(t, wrongKm, d.km)
}

func TestDStarLiteIterCapFlagsInvalidDespiteFeasiblePath(t *testing.T) {
	g := grid.New(nil, 0, wallWithGapBounds())
	require.NoError(t, g.BuildMap(1))

	start := geom.Vector2D{X: 5, Y: 5}
	goal := geom.Vector2D{X: 6, Y: 5}

	d := NewDStarLite(g, WithDStarIterCap(1))
	require.NoError(t, d.Initialize(start, goal))
	d.ComputeShortestPath()

	path := d.ReturnPath()
	require.NotEmpty(t, path)
	assert.False(t, d.ReturnValid())
}
