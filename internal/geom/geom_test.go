package geom

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square(side float64) Polygon {
	return Polygon{
		{X: 0, Y: 0},
		{X: side, Y: 0},
		{X: side, Y: side},
		{X: 0, Y: side},
	}
}

func TestVector2DArithmetic(t *testing.T) {
	a := Vector2D{X: 1, Y: 2}
	b := Vector2D{X: 3, Y: -1}

	assert.Equal(t, Vector2D{X: 4, Y: 1}, a.Add(b))
	assert.Equal(t, Vector2D{X: -2, Y: 3}, a.Sub(b))
	assert.InDelta(t, 1, a.Dot(Vector2D{X: 1, Y: 0}), Epsilon)
	assert.InDelta(t, math.Hypot(1, 2), a.Norm(), Epsilon)
}

func TestVector2DNormalize(t *testing.T) {
	v := Vector2D{X: 3, Y: 4}
	n := v.Normalize()
	assert.InDelta(t, 1, n.Norm(), Epsilon)

	zero := Vector2D{}.Normalize()
	assert.Equal(t, Vector2D{}, zero)
}

func TestPointInsideConvexSquare(t *testing.T) {
	sq := square(10)
	require.True(t, IsConvexCCW(sq))

	assert.True(t, PointInside(sq, Vector2D{X: 5, Y: 5}))
	assert.True(t, PointInside(sq, Vector2D{X: 0, Y: 0})) // boundary
	assert.False(t, PointInside(sq, Vector2D{X: 11, Y: 5}))
	assert.False(t, PointInside(sq, Vector2D{X: -1, Y: -1}))
}

func TestIsConvexCCWRejectsClockwise(t *testing.T) {
	cw := Polygon{{X: 0, Y: 0}, {X: 0, Y: 10}, {X: 10, Y: 10}, {X: 10, Y: 0}}
	assert.False(t, IsConvexCCW(cw))
}

func TestIsConvexCCWRejectsTooFewVertices(t *testing.T) {
	assert.False(t, IsConvexCCW(Polygon{{X: 0, Y: 0}, {X: 1, Y: 1}}))
}

func TestSegmentBlockedCrossing(t *testing.T) {
	sq := square(10)
	assert.True(t, SegmentBlocked(sq, Vector2D{X: -5, Y: 5}, Vector2D{X: 15, Y: 5}))
	assert.False(t, SegmentBlocked(sq, Vector2D{X: -5, Y: 15}, Vector2D{X: 15, Y: 15}))
}

func TestSegmentBlockedContained(t *testing.T) {
	sq := square(10)
	assert.True(t, SegmentBlocked(sq, Vector2D{X: 2, Y: 2}, Vector2D{X: 8, Y: 8}))
}

func TestDistanceToPolygon(t *testing.T) {
	sq := square(10)

	d, _ := DistanceToPolygon(sq, Vector2D{X: 5, Y: 5})
	assert.Equal(t, 0.0, d)

	d, nearest := DistanceToPolygon(sq, Vector2D{X: 15, Y: 5})
	assert.InDelta(t, 5, d, Epsilon)
	assert.InDelta(t, 10, nearest.X, Epsilon)
}

func TestInflateSquareGrowsBounds(t *testing.T) {
	sq := square(10)
	inflated := Inflate(sq, 1)

	require.Len(t, inflated, 4)
	bounds := BoundsOfPolygons([]Polygon{inflated})
	assert.InDelta(t, -1, bounds.Min.X, 1e-9)
	assert.InDelta(t, -1, bounds.Min.Y, 1e-9)
	assert.InDelta(t, 11, bounds.Max.X, 1e-9)
	assert.InDelta(t, 11, bounds.Max.Y, 1e-9)
}

func TestInflateZeroRadiusIsIdentity(t *testing.T) {
	sq := square(10)
	out := Inflate(sq, 0)
	if diff := cmp.Diff(sq, out, cmpopts.EquateApprox(0, Epsilon)); diff != "" {
		t.Errorf("Inflate(sq, 0) mismatch (-want +got):\n%s", diff)
	}
}

func TestBoundsContains(t *testing.T) {
	b := Bounds{Min: Vector2D{X: 0, Y: 0}, Max: Vector2D{X: 10, Y: 10}}
	assert.True(t, b.Contains(Vector2D{X: 5, Y: 5}))
	assert.True(t, b.Contains(Vector2D{X: 0, Y: 0}))
	assert.False(t, b.Contains(Vector2D{X: 11, Y: 0}))
}

func TestBoundsOfPolygonsMultiple(t *testing.T) {
	a := square(2)
	b := Polygon{{X: 5, Y: 5}, {X: 7, Y: 5}, {X: 7, Y: 7}, {X: 5, Y: 7}}
	bounds := BoundsOfPolygons([]Polygon{a, b})
	assert.Equal(t, Vector2D{X: 0, Y: 0}, bounds.Min)
	assert.Equal(t, Vector2D{X: 7, Y: 7}, bounds.Max)
}
