package view

import (
	"github.com/wricardo/mcp-training/pipeworks/game/catalog"
	"github.com/wricardo/mcp-training/pipeworks/game/engine"
	"github.com/wricardo/mcp-training/pipeworks/game/grid"
)

// Line is a segment in world units
type Line struct {
	X0, Y0, X1, Y1 float64
}

// DebugGrid is the cell boundary overlay
type DebugGrid struct {
	Enabled   bool
	Color     catalog.Color
	Thickness float64
}

// NewDebugGrid creates the overlay from map config
func NewDebugGrid(cfg engine.DebugGridConfig) *DebugGrid {
	return &DebugGrid{
		Enabled:   cfg.Enabled,
		Color:     cfg.Color,
		Thickness: cfg.Thickness,
	}
}

// Toggle flips the overlay and returns the new state
func (g *DebugGrid) Toggle() bool {
	g.Enabled = !g.Enabled
	return g.Enabled
}

// Lines returns one vertical line per column boundary (0..W) followed by one
// horizontal line per row boundary (0..H), each spanning the whole map.
func (g *DebugGrid) Lines(size grid.Size, tileSize float64) []Line {
	w := float64(size.W) * tileSize
	h := float64(size.H) * tileSize
	lines := make([]Line, 0, size.W+size.H+2)
	for x := 0; x <= size.W; x++ {
		xw := float64(x) * tileSize
		lines = append(lines, Line{X0: xw, Y0: 0, X1: xw, Y1: h})
	}
	for y := 0; y <= size.H; y++ {
		yw := float64(y) * tileSize
		lines = append(lines, Line{X0: 0, Y0: yw, X1: w, Y1: yw})
	}
	return lines
}
