// Package core provides fundamental types and utilities shared by the simulation,
// the pilots and the terminal front end. It contains no external dependencies
// (especially no Bubble Tea) to keep game logic pure and testable.
package core

// Point is a cell coordinate on the board.
type Point struct {
	X, Y int
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// Add returns the point translated by v.
func (p Point) Add(v Vec) Point {
	return Point{X: p.X + v.X, Y: p.Y + v.Y}
}

// Wrap folds the point into a size×size board, re-entering from the opposite edge.
func (p Point) Wrap(size int) Point {
	return Point{X: Mod(p.X, size), Y: Mod(p.Y, size)}
}

// Within reports whether both coordinates lie in [lo, hi].
func (p Point) Within(lo, hi int) bool {
	return p.X >= lo && p.X <= hi && p.Y >= lo && p.Y <= hi
}

// Vec is a velocity in cells per tick.
type Vec struct {
	X, Y int
}

// Zero reports whether the vector is (0, 0).
func (v Vec) Zero() bool {
	return v.X == 0 && v.Y == 0
}

// Neg returns the vector pointing the other way.
func (v Vec) Neg() Vec {
	return Vec{X: -v.X, Y: -v.Y}
}

// Rect represents an axis-aligned rectangle on the screen.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Mod is the Euclidean remainder: the result is always in [0, n) for n > 0.
func Mod(a, n int) int {
	if n <= 0 {
		return a
	}
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}

// Clamp restricts a value to be within [lo, hi].
func Clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
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
