// Package geom provides the 2D primitives the planning core is built
// on: points, convex polygons, segment/polygon collision tests, and
// polygon inflation.
package geom

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Epsilon is the default absolute tolerance used throughout the core
// for floating-point comparisons (key ties, point/edge coincidence).
const Epsilon = 1e-6

// Vector2D is a point or free vector in the plane.
type Vector2D struct {
	X, Y float64
}

// Add returns v+w.
func (v Vector2D) Add(w Vector2D) Vector2D {
	return Vector2D{v.X + w.X, v.Y + w.Y}
}

// Sub returns v-w.
func (v Vector2D) Sub(w Vector2D) Vector2D {
	return Vector2D{v.X - w.X, v.Y - w.Y}
}

// Scale returns v scaled by s.
func (v Vector2D) Scale(s float64) Vector2D {
	return Vector2D{v.X * s, v.Y * s}
}

// Dot returns the dot product of v and w.
func (v Vector2D) Dot(w Vector2D) float64 {
	return v.X*w.X + v.Y*w.Y
}

// Cross returns the 2D cross product (the z component of v×w in 3D).
func (v Vector2D) Cross(w Vector2D) float64 {
	return v.X*w.Y - v.Y*w.X
}

// Norm returns the Euclidean length of v.
func (v Vector2D) Norm() float64 {
	return math.Hypot(v.X, v.Y)
}

// Normalize returns v scaled to unit length. The zero vector is
// returned unchanged.
func (v Vector2D) Normalize() Vector2D {
	n := v.Norm()
	if n < Epsilon {
		return Vector2D{}
	}
	return v.Scale(1 / n)
}

// Angle returns the angle of v from the positive X axis, in radians.
func (v Vector2D) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// Distance returns the Euclidean distance between v and w.
func (v Vector2D) Distance(w Vector2D) float64 {
	return v.Sub(w).Norm()
}

// AlmostEqual reports whether v and w are within an absolute
// tolerance tol of each other in both components.
func (v Vector2D) AlmostEqual(w Vector2D, tol float64) bool {
	return floats.EqualWithinAbs(v.X, w.X, tol) && floats.EqualWithinAbs(v.Y, w.Y, tol)
}

// EqualWithinAbs reports whether a and b differ by no more than tol.
// It is the scalar counterpart of Vector2D.AlmostEqual, used for key
// and cost comparisons across the planners.
func EqualWithinAbs(a, b, tol float64) bool {
	return floats.EqualWithinAbs(a, b, tol)
}

// Perp returns v rotated -90 degrees, i.e. the vector you get by
// looking "to the right" of v. For a CCW polygon edge this points
// outward.
func (v Vector2D) Perp() Vector2D {
	return Vector2D{v.Y, -v.X}
}
