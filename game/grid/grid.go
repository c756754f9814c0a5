// Package grid provides the coordinate math shared by every layer of the game:
// map dimensions, flat storage indexing, bounds checks, world to cell
// conversion and the 4-neighbor connectivity mask encoding.
package grid

import (
	"fmt"
	"math"
)

// Size is the immutable dimension of a map in cells.
type Size struct {
	W int `json:"width" yaml:"width"`
	H int `json:"height" yaml:"height"`
}

// Cell is one discrete grid position.
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// String formats a cell as (x,y)
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Point is a continuous position in world units.
type Point struct {
	X float64
	Y float64
}

// Len returns the number of cells in the map
func (s Size) Len() int {
	return s.W * s.H
}

// Index maps (x, y) to the flat storage index y*W+x.
// The result is only meaningful for coordinates inside the map; callers
// must bounds-check first (see Lookup).
func (s Size) Index(x, y int) int {
	return y*s.W + x
}

// Contains reports whether (x, y) lies inside [0,W)x[0,H).
func (s Size) Contains(x, y int) bool {
	return x >= 0 && y >= 0 && x < s.W && y < s.H
}

// Lookup is the bounds-checked form of Index.
func (s Size) Lookup(x, y int) (int, bool) {
	if !s.Contains(x, y) {
		return 0, false
	}
	return s.Index(x, y), true
}

// CellAt is the inverse of Index.
func (s Size) CellAt(i int) Cell {
	return Cell{X: i % s.W, Y: i / s.W}
}

// CellFromWorld converts a world position to the cell under it using floor
// division by tileSize. Positions outside the map are rejected, not clamped.
func CellFromWorld(p Point, tileSize float64, size Size) (Cell, bool) {
	if tileSize <= 0 {
		return Cell{}, false
	}
	fx := math.Floor(p.X / tileSize)
	fy := math.Floor(p.Y / tileSize)
	if fx < 0 || fy < 0 || fx >= float64(size.W) || fy >= float64(size.H) {
		return Cell{}, false
	}
	return Cell{X: int(fx), Y: int(fy)}, true
}

// CellOrigin returns the world position of the cell's top-left corner.
func CellOrigin(c Cell, tileSize float64) Point {
	return Point{X: float64(c.X) * tileSize, Y: float64(c.Y) * tileSize}
}
