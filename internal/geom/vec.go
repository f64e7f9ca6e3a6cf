// Package geom provides the 2D vector helpers shared by the simulation.
// World space is y-up; the terminal renderer flips rows when drawing.
package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec is a 2D vector in world units.
type Vec = mgl64.Vec2

// epsilon below which a vector is treated as zero length.
const epsilon = 1e-9

// Zero is the zero vector.
var Zero = Vec{}

// V builds a vector from components.
func V(x, y float64) Vec {
	return Vec{x, y}
}

// IsZero reports whether v has (near) zero length.
func IsZero(v Vec) bool {
	return v.Dot(v) < epsilon*epsilon
}

// Normalize returns v scaled to unit length, or the zero vector when v has no length.
// mgl64's Normalize divides by zero in that case.
func Normalize(v Vec) Vec {
	if IsZero(v) {
		return Zero
	}
	return v.Normalize()
}

// Reflect mirrors v about the surface with the given normal.
func Reflect(v, normal Vec) Vec {
	n := Normalize(normal)
	if IsZero(n) {
		return v
	}
	return v.Sub(n.Mul(2 * v.Dot(n)))
}

// Lerp blends from a toward b by t, with t clamped to [0, 1].
func Lerp(a, b Vec, t float64) Vec {
	t = Clamp(t, 0, 1)
	return a.Add(b.Sub(a).Mul(t))
}

// MoveTowards steps from current toward target by at most maxDelta.
func MoveTowards(current, target Vec, maxDelta float64) Vec {
	diff := target.Sub(current)
	dist := diff.Len()
	if dist <= maxDelta || dist < epsilon {
		return target
	}
	return current.Add(diff.Mul(maxDelta / dist))
}

// Dist returns the distance between two points.
func Dist(a, b Vec) float64 {
	return b.Sub(a).Len()
}

// Clamp limits x to [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}

// Rect is an axis-aligned rectangle given by its min and max corners.
type Rect struct {
	Min, Max Vec
}

// Contains reports whether p lies inside r (edges included).
func (r Rect) Contains(p Vec) bool {
	return p.X() >= r.Min.X() && p.X() <= r.Max.X() &&
		p.Y() >= r.Min.Y() && p.Y() <= r.Max.Y()
}
