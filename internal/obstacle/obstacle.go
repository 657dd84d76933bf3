// Package obstacle holds the convex-polygon obstacle model shared by
// every map builder (PRM, Grid) and planner.
package obstacle

import (
	"github.com/mayB1998/Motion-Planning/internal/geom"
	"github.com/mayB1998/Motion-Planning/internal/planerr"
)

// Obstacle is a convex, counter-clockwise polygon in the workspace.
type Obstacle struct {
	Vertices geom.Polygon
}

// New validates vertices and returns an Obstacle. It reports
// InvalidGeometry if there are fewer than three vertices or the
// polygon isn't convex and counter-clockwise.
func New(vertices []geom.Vector2D) (Obstacle, error) {
	poly := geom.Polygon(vertices)
	if len(poly) < 3 {
		return Obstacle{}, planerr.New(planerr.InvalidGeometry, "obstacle must have at least 3 vertices")
	}
	if !geom.IsConvexCCW(poly) {
		return Obstacle{}, planerr.New(planerr.InvalidGeometry, "obstacle must be convex and counter-clockwise")
	}
	return Obstacle{Vertices: poly}, nil
}

// InflateAll returns the inflated polygon for every obstacle in obs,
// in order, each edge pushed outward by r.
func InflateAll(obs []Obstacle, r float64) []geom.Polygon {
	out := make([]geom.Polygon, len(obs))
	for i, o := range obs {
		out[i] = geom.Inflate(o.Vertices, r)
	}
	return out
}

// Bounds returns the axis-aligned bounding box of every obstacle's raw
// (uninflated) vertices, per the data model: workspace bounds are the
// AABB of all obstacle vertices. Callers with no obstacles must supply
// explicit bounds instead of calling this with an empty slice.
func Bounds(obs []Obstacle) geom.Bounds {
	polys := make([]geom.Polygon, len(obs))
	for i, o := range obs {
		polys[i] = o.Vertices
	}
	return geom.BoundsOfPolygons(polys)
}

// PointBlocked reports whether p lies inside any inflated obstacle.
func PointBlocked(inflated []geom.Polygon, p geom.Vector2D) bool {
	for _, poly := range inflated {
		if geom.PointInside(poly, p) {
			return true
		}
	}
	return false
}

// SegmentBlocked reports whether segment ab intersects or is
// contained in any inflated obstacle.
func SegmentBlocked(inflated []geom.Polygon, a, b geom.Vector2D) bool {
	for _, poly := range inflated {
		if geom.SegmentBlocked(poly, a, b) {
			return true
		}
	}
	return false
}
