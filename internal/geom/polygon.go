package geom

import "math"

// Polygon is an ordered, counter-clockwise sequence of vertices
// forming a convex shape.
type Polygon []Vector2D

// PointInside reports whether p lies inside poly, or within Epsilon
// of its boundary. poly is assumed convex and counter-clockwise, so a
// single half-plane test per edge suffices: p is inside iff it is
// never strictly to the right of any edge.
func PointInside(poly Polygon, p Vector2D) bool {
	n := len(poly)
	if n < 3 {
		return false
	}
	for i := 0; i < n; i++ {
		a := poly[i]
		b := poly[(i+1)%n]
		edge := b.Sub(a)
		toPoint := p.Sub(a)
		if edge.Cross(toPoint) < -Epsilon {
			return false
		}
	}
	return true
}

// IsConvexCCW reports whether poly is a convex, counter-clockwise
// polygon of at least 3 vertices. Collinear consecutive edges are
// tolerated.
func IsConvexCCW(poly Polygon) bool {
	n := len(poly)
	if n < 3 {
		return false
	}
	sawPositive := false
	for i := 0; i < n; i++ {
		a := poly[i]
		b := poly[(i+1)%n]
		c := poly[(i+2)%n]
		cross := b.Sub(a).Cross(c.Sub(b))
		if cross < -Epsilon {
			return false
		}
		if cross > Epsilon {
			sawPositive = true
		}
	}
	return sawPositive
}

// segmentsIntersect reports whether closed segments p1p2 and p3p4
// properly or improperly intersect (including touching endpoints and
// collinear overlap).
func segmentsIntersect(p1, p2, p3, p4 Vector2D) bool {
	d1 := direction(p3, p4, p1)
	d2 := direction(p3, p4, p2)
	d3 := direction(p1, p2, p3)
	d4 := direction(p1, p2, p4)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}
	if math.Abs(d1) <= Epsilon && onSegment(p3, p4, p1) {
		return true
	}
	if math.Abs(d2) <= Epsilon && onSegment(p3, p4, p2) {
		return true
	}
	if math.Abs(d3) <= Epsilon && onSegment(p1, p2, p3) {
		return true
	}
	if math.Abs(d4) <= Epsilon && onSegment(p1, p2, p4) {
		return true
	}
	return false
}

func direction(a, b, c Vector2D) float64 {
	return b.Sub(a).Cross(c.Sub(a))
}

func onSegment(a, b, p Vector2D) bool {
	if direction(a, b, p) > Epsilon || direction(a, b, p) < -Epsilon {
		return false
	}
	return math.Min(a.X, b.X)-Epsilon <= p.X && p.X <= math.Max(a.X, b.X)+Epsilon &&
		math.Min(a.Y, b.Y)-Epsilon <= p.Y && p.Y <= math.Max(a.Y, b.Y)+Epsilon
}

// SegmentBlocked reports whether segment ab intersects or is
// contained in poly. Every edge is tested for a proper segment-segment
// intersection, and both endpoints are tested for containment so that
// a segment wholly swallowed by the polygon (no edge crossing) is
// still reported as blocked.
func SegmentBlocked(poly Polygon, a, b Vector2D) bool {
	if PointInside(poly, a) || PointInside(poly, b) {
		return true
	}
	n := len(poly)
	for i := 0; i < n; i++ {
		e1 := poly[i]
		e2 := poly[(i+1)%n]
		if segmentsIntersect(a, b, e1, e2) {
			return true
		}
	}
	return false
}

// DistanceToPolygon returns the Euclidean distance from p to the
// nearest point on poly's boundary together with that boundary point.
// If p is inside poly it returns 0 and p itself. It is used by the
// potential field planner's repulsive term.
func DistanceToPolygon(poly Polygon, p Vector2D) (dist float64, nearest Vector2D) {
	if PointInside(poly, p) {
		return 0, p
	}
	n := len(poly)
	best := math.Inf(1)
	var bestPt Vector2D
	for i := 0; i < n; i++ {
		a := poly[i]
		b := poly[(i+1)%n]
		q := closestPointOnSegment(a, b, p)
		d := p.Distance(q)
		if d < best {
			best = d
			bestPt = q
		}
	}
	return best, bestPt
}

func closestPointOnSegment(a, b, p Vector2D) Vector2D {
	ab := b.Sub(a)
	length2 := ab.Dot(ab)
	if length2 < Epsilon*Epsilon {
		return a
	}
	t := p.Sub(a).Dot(ab) / length2
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return a.Add(ab.Scale(t))
}

// Inflate returns poly with every edge translated outward along its
// normal by r, with adjacent translated edges re-intersected to form
// the new vertex set. r == 0 returns a copy of poly unchanged.
func Inflate(poly Polygon, r float64) Polygon {
	n := len(poly)
	if n < 3 || r == 0 {
		out := make(Polygon, n)
		copy(out, poly)
		return out
	}

	// Translated line i runs through poly[i]+offset along the edge
	// direction poly[i]->poly[i+1].
	type line struct {
		point, dir Vector2D
	}
	lines := make([]line, n)
	for i := 0; i < n; i++ {
		a := poly[i]
		b := poly[(i+1)%n]
		dir := b.Sub(a)
		outward := dir.Perp().Normalize()
		offset := outward.Scale(r)
		lines[i] = line{point: a.Add(offset), dir: dir}
	}

	out := make(Polygon, n)
	for i := 0; i < n; i++ {
		prev := lines[(i-1+n)%n]
		cur := lines[i]
		pt, ok := intersectLines(prev.point, prev.dir, cur.point, cur.dir)
		if !ok {
			// Parallel edges (degenerate/collinear input): fall back
			// to translating the original vertex by the average of
			// both outward normals.
			pt = poly[i].Add(prev.dir.Perp().Normalize().Add(cur.dir.Perp().Normalize()).Normalize().Scale(r))
		}
		out[i] = pt
	}
	return out
}

// intersectLines finds the intersection of the infinite line through
// p1 in direction d1 and the infinite line through p2 in direction d2.
func intersectLines(p1, d1, p2, d2 Vector2D) (Vector2D, bool) {
	denom := d1.Cross(d2)
	if math.Abs(denom) < Epsilon {
		return Vector2D{}, false
	}
	diff := p2.Sub(p1)
	t := diff.Cross(d2) / denom
	return p1.Add(d1.Scale(t)), true
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min, Max Vector2D
}

// Contains reports whether p lies within the bounds (inclusive).
func (b Bounds) Contains(p Vector2D) bool {
	return p.X >= b.Min.X-Epsilon && p.X <= b.Max.X+Epsilon &&
		p.Y >= b.Min.Y-Epsilon && p.Y <= b.Max.Y+Epsilon
}

// BoundsOfPolygons returns the axis-aligned bounding box of every
// vertex of every polygon given. If polys holds no vertices the result
// is an empty, inverted box (Min at +Inf, Max at -Inf); callers with
// no obstacles must supply explicit workspace bounds instead.
func BoundsOfPolygons(polys []Polygon) Bounds {
	min := Vector2D{X: math.Inf(1), Y: math.Inf(1)}
	max := Vector2D{X: math.Inf(-1), Y: math.Inf(-1)}
	for _, poly := range polys {
		for _, v := range poly {
			if v.X < min.X {
				min.X = v.X
			}
			if v.Y < min.Y {
				min.Y = v.Y
			}
			if v.X > max.X {
				max.X = v.X
			}
			if v.Y > max.Y {
				max.Y = v.Y
			}
		}
	}
	return Bounds{Min: min, Max: max}
}
