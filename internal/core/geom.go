// Package core provides fundamental types and utilities for the snake game.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

// DefaultGridCount is the side length of the default square playfield.
const DefaultGridCount = 20

// Cell is a single grid coordinate. Cells are plain values with no identity.
type Cell struct {
	X, Y int
}

// Add returns the cell offset by the given delta.
func (c Cell) Add(dx, dy int) Cell {
	return Cell{X: c.X + dx, Y: c.Y + dy}
}

// CellsEqual reports whether two cells occupy the same coordinate.
func CellsEqual(a, b Cell) bool {
	return a.X == b.X && a.Y == b.Y
}

// Direction is one of the four grid-aligned movement directions.
type Direction int

const (
	DirRight Direction = iota
	DirDown
	DirLeft
	DirUp
)

// Delta returns the unit vector for the direction.
// Y grows downwards, matching screen coordinates.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	default:
		return 0, 0
	}
}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	default:
		return DirLeft
	}
}

// Valid reports whether d is one of the four known directions.
func (d Direction) Valid() bool {
	return d >= DirRight && d <= DirUp
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// Grid is a square N×N coordinate space.
type Grid struct {
	Count int
}

// NewGrid creates a grid with the given side length.
func NewGrid(count int) Grid {
	return Grid{Count: count}
}

// InBounds reports whether c lies inside the grid.
func (g Grid) InBounds(c Cell) bool {
	return c.X >= 0 && c.X < g.Count && c.Y >= 0 && c.Y < g.Count
}

// Center returns the middle cell (rounded down).
func (g Grid) Center() Cell {
	return Cell{X: g.Count / 2, Y: g.Count / 2}
}

// Cells returns the total number of cells.
func (g Grid) Cells() int {
	return g.Count * g.Count
}

// Rect represents an axis-aligned box on the screen, used for panels and overlays.
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
