package engine

import (
	"github.com/wricardo/mcp-training/pipeworks/game/grid"
)

// DragState is the gesture interpreter's transient state. Last is only
// meaningful when HasLast is set.
type DragState struct {
	Active  bool
	Last    grid.Cell
	HasLast bool
}

// Reset returns the drag to idle
func (d *DragState) Reset() {
	*d = DragState{}
}

// Step advances the drag by one frame and writes presence along the path.
// cell/onMap is the cursor cell for this frame, onMap false when the cursor
// is missing or off the map. It returns the number of cells whose presence
// changed.
//
// Edits commit as they happen: cancelling the drag never reverts them.
func (d *DragState) Step(tool Tool, primary Buttons, cell grid.Cell, onMap bool, net *PipeNetwork) int {
	if !tool.IsPipe() {
		d.Reset()
		return 0
	}

	if primary.JustPressed {
		d.Active = true
		d.HasLast = false
	}
	if primary.JustReleased {
		d.Reset()
	}
	if !d.Active || !primary.Held || !onMap {
		return 0
	}

	if !d.HasLast {
		d.Last = cell
		d.HasLast = true
		return 0
	}
	if d.Last == cell {
		return 0
	}

	changed := 0
	for _, c := range PathCells(d.Last, cell) {
		if net.Set(c.X, c.Y, tool == ToolPipePlace) {
			changed++
		}
	}
	d.Last = cell
	return changed
}

// PathCells returns the axis-aligned path from a to b, both inclusive. A
// diagonal move turns once at the corner (b.X, a.Y): horizontal first, then
// vertical. The corner appears once.
func PathCells(a, b grid.Cell) []grid.Cell {
	if a.X == b.X || a.Y == b.Y {
		return appendSegment(nil, a, b)
	}
	corner := grid.Cell{X: b.X, Y: a.Y}
	cells := appendSegment(nil, a, corner)
	return appendSegment(cells, corner, b)
}

// appendSegment appends the straight run from a to b, walking from a.
// If dst already ends with a, a is not repeated.
func appendSegment(dst []grid.Cell, a, b grid.Cell) []grid.Cell {
	dx, dy := step(b.X-a.X), step(b.Y-a.Y)
	c := a
	if n := len(dst); n > 0 && dst[n-1] == a {
		c = grid.Cell{X: a.X + dx, Y: a.Y + dy}
		if a == b {
			return dst
		}
	}
	for {
		dst = append(dst, c)
		if c == b {
			return dst
		}
		c.X += dx
		c.Y += dy
	}
}

func step(d int) int {
	switch {
	case d > 0:
		return 1
	case d < 0:
		return -1
	}
	return 0
}
