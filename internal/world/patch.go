package world

import (
	"math"

	"github.com/samdwyer/linguaquest/internal/geom"
)

// Patch is a rectangular area of ice or drift, in tile coordinates.
type Patch struct {
	Kind          Tile
	X, Y          int // Bottom-left tile
	Width, Height int
}

// Center returns the center tile of the patch.
func (p Patch) Center() (int, int) {
	return p.X + p.Width/2, p.Y + p.Height/2
}

// Contains returns true if the given tile is inside the patch.
func (p Patch) Contains(x, y int) bool {
	return x >= p.X && x < p.X+p.Width && y >= p.Y && y < p.Y+p.Height
}

// Intersects returns true if the patches overlap or touch.
func (p Patch) Intersects(other Patch) bool {
	return p.X <= other.X+other.Width &&
		p.X+p.Width >= other.X &&
		p.Y <= other.Y+other.Height &&
		p.Y+p.Height >= other.Y
}

// Edge returns half the longer side in world units. Slip duration on ice
// scales with it.
func (p Patch) Edge() float64 {
	return math.Max(float64(p.Width), float64(p.Height)) / 2
}

// Rect returns the patch bounds in world units given the arena origin.
func (p Patch) Rect(origin geom.Vec) geom.Rect {
	lo := origin.Add(geom.V(float64(p.X), float64(p.Y)))
	return geom.Rect{Min: lo, Max: lo.Add(geom.V(float64(p.Width), float64(p.Height)))}
}
