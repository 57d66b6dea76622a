// Package core provides fundamental types and utilities for the snake game.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import (
	"math"
	"math/rand"
)

// Position is a point in pixel units. Game entities always sit on a
// multiple of the cell size.
type Position struct {
	X, Y uint16
}

// Borders is the size of the playable area in pixel units.
type Borders struct {
	W, H uint16
}

// CheckCollision reports whether two positions overlap exactly.
func CheckCollision(a, b Position) bool {
	return a.X == b.X && a.Y == b.Y
}

// GridSize returns the number of columns and rows that fit in the borders.
func GridSize(b Borders, cell uint16) (cols, rows int) {
	if cell == 0 {
		return 0, 0
	}
	return int(b.W / cell), int(b.H / cell)
}

// CellOf converts a pixel position to grid coordinates.
func CellOf(p Position, cell uint16) (col, row int) {
	if cell == 0 {
		return 0, 0
	}
	return int(p.X / cell), int(p.Y / cell)
}

// PositionOf converts grid coordinates to a pixel position.
// Coordinates that do not fit in uint16 saturate.
func PositionOf(col, row int, cell uint16) Position {
	return Position{
		X: satMul(col, cell),
		Y: satMul(row, cell),
	}
}

// RandomPosition returns a uniformly random grid-aligned position inside b.
// The caller guarantees b.W and b.H are positive multiples of cell.
func RandomPosition(rng *rand.Rand, b Borders, cell uint16) Position {
	cols, rows := GridSize(b, cell)
	return PositionOf(rng.Intn(cols), rng.Intn(rows), cell)
}

// Contains reports whether p lies inside the borders.
func (b Borders) Contains(p Position) bool {
	return p.X < b.W && p.Y < b.H
}

// AddSat adds two uint16 values, saturating at math.MaxUint16.
func AddSat(a, b uint16) uint16 {
	if a > math.MaxUint16-b {
		return math.MaxUint16
	}
	return a + b
}

// SubSat subtracts b from a, saturating at zero.
func SubSat(a, b uint16) uint16 {
	if b > a {
		return 0
	}
	return a - b
}

func satMul(n int, cell uint16) uint16 {
	if n <= 0 {
		return 0
	}
	v := n * int(cell)
	if v > math.MaxUint16 {
		return math.MaxUint16
	}
	return uint16(v)
}

// Rect represents an axis-aligned rectangle in pixel units.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// CellRect returns the cell-sized rectangle whose top-left corner is p.
func CellRect(p Position, cell uint16) Rect {
	return NewRect(int(p.X), int(p.Y), int(cell), int(cell))
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Intersects returns true if this rectangle overlaps with another.
func (r Rect) Intersects(other Rect) bool {
	if r.X >= other.Right() || other.X >= r.Right() {
		return false
	}
	if r.Y >= other.Bottom() || other.Y >= r.Bottom() {
		return false
	}
	return true
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
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
