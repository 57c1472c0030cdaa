// Package core provides fundamental types and utilities for the starfield.
// It contains no external dependencies (especially no Bubble Tea) to keep the
// generator and layer maths pure and testable.
package core

// Rect represents an axis-aligned rectangle in pixel space.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge (exclusive).
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge (exclusive).
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// ContainsRect returns true if other lies entirely inside this rectangle.
func (r Rect) ContainsRect(other Rect) bool {
	return other.X >= r.X && other.Y >= r.Y &&
		other.Right() <= r.Right() && other.Bottom() <= r.Bottom()
}

// Square returns the bounding box of a disk with the given center and radius.
func Square(cx, cy, radius int) Rect {
	return NewRect(cx-radius, cy-radius, 2*radius+1, 2*radius+1)
}

// Vec2 is a 2D vector, used for per-layer scroll offsets.
type Vec2 struct {
	X, Y float64
}

// Vec3 is a 3D world position as reported by the location collaborator.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Mod returns x modulo n in [0, n). Used for repeat-wrapped texture lookups.
func Mod(x, n int) int {
	if n <= 0 {
		return 0
	}
	m := x % n
	if m < 0 {
		m += n
	}
	return m
}
