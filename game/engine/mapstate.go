package engine

import (
	"github.com/wricardo/mcp-training/pipeworks/game/catalog"
	"github.com/wricardo/mcp-training/pipeworks/game/grid"
)

// MapState is the authoritative logical grid: one base tile per cell and an
// optional overlay marker. An empty overlay id means no marker.
type MapState struct {
	size    grid.Size
	base    []catalog.TileID
	overlay []catalog.TileID
}

// NewMapState creates a map with every base cell Empty and no overlays
func NewMapState(size grid.Size) *MapState {
	base := make([]catalog.TileID, size.Len())
	for i := range base {
		base[i] = catalog.Empty
	}
	return &MapState{
		size:    size,
		base:    base,
		overlay: make([]catalog.TileID, size.Len()),
	}
}

func (m *MapState) Size() grid.Size { return m.size }

// Base returns the base tile at (x, y); ok is false out of bounds
func (m *MapState) Base(x, y int) (id catalog.TileID, ok bool) {
	i, ok := m.size.Lookup(x, y)
	if !ok {
		return "", false
	}
	return m.base[i], true
}

// Overlay returns the overlay marker at (x, y), if any
func (m *MapState) Overlay(x, y int) (catalog.TileID, bool) {
	i, ok := m.size.Lookup(x, y)
	if !ok || m.overlay[i] == "" {
		return "", false
	}
	return m.overlay[i], true
}

// SetBase sets the base tile. It returns false when (x, y) is off the map.
func (m *MapState) SetBase(x, y int, id catalog.TileID) bool {
	i, ok := m.size.Lookup(x, y)
	if !ok {
		return false
	}
	m.base[i] = id
	return true
}

// SetOverlay sets the overlay marker; an empty id clears it.
func (m *MapState) SetOverlay(x, y int, id catalog.TileID) bool {
	i, ok := m.size.Lookup(x, y)
	if !ok {
		return false
	}
	m.overlay[i] = id
	return true
}

// CountBase counts cells whose base is not Empty
func (m *MapState) CountBase() int {
	n := 0
	for _, id := range m.base {
		if id != catalog.Empty {
			n++
		}
	}
	return n
}
