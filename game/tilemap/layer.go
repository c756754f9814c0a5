// Package tilemap holds the visual side of the map: layers of tiles keyed by
// cell, a registry resolving layer names to live layers, and the
// reconciliation that keeps pipe layers in step with the logical network.
//
// Front ends draw by walking a TileLayer; pipe reconciliation only ever
// talks to the Layer contract.
package tilemap

import (
	"errors"

	"github.com/wricardo/mcp-training/pipeworks/game/catalog"
	"github.com/wricardo/mcp-training/pipeworks/game/grid"
)

var (
	ErrLayerUnavailable = errors.New("visual layer unavailable")
	ErrOutOfBounds      = errors.New("cell out of bounds")
)

// Layer is the contract the engine drives. Upsert replaces any entry already
// at the cell; Remove on an empty cell is a no-op.
// Bindings compare layers by identity, so implementations are pointers.
type Layer interface {
	Upsert(cell grid.Cell, mask grid.Mask, color catalog.Color) error
	Remove(cell grid.Cell) error
}

// Handle is an opaque visual identity. Replacing a tile issues a new handle.
type Handle uint32

// Tile is one visual entry. Mask selects the display variant and is zero for
// non-pipe layers.
type Tile struct {
	Handle Handle
	Mask   grid.Mask
	Color  catalog.Color
}

// TileLayer is an arena of tiles indexed by cell. The zero handle marks an
// empty slot, so existence checks never need a separate query.
type TileLayer struct {
	name     string
	size     grid.Size
	tiles    []Tile
	next     Handle
	count    int
	visible  bool
	detached bool
	revision uint64
}

// NewTileLayer creates an empty layer covering size
func NewTileLayer(name string, size grid.Size, visible bool) *TileLayer {
	return &TileLayer{
		name:    name,
		size:    size,
		tiles:   make([]Tile, size.Len()),
		visible: visible,
	}
}

// Upsert places a tile at cell, replacing what was there.
func (l *TileLayer) Upsert(cell grid.Cell, mask grid.Mask, color catalog.Color) error {
	if l.detached {
		return ErrLayerUnavailable
	}
	i, ok := l.size.Lookup(cell.X, cell.Y)
	if !ok {
		return ErrOutOfBounds
	}
	if l.tiles[i].Handle == 0 {
		l.count++
	}
	l.next++
	l.tiles[i] = Tile{Handle: l.next, Mask: mask, Color: color}
	l.revision++
	return nil
}

// Remove clears the tile at cell
func (l *TileLayer) Remove(cell grid.Cell) error {
	if l.detached {
		return ErrLayerUnavailable
	}
	i, ok := l.size.Lookup(cell.X, cell.Y)
	if !ok {
		return ErrOutOfBounds
	}
	if l.tiles[i].Handle == 0 {
		return nil
	}
	l.tiles[i] = Tile{}
	l.count--
	l.revision++
	return nil
}

// Get returns the tile at cell, if any.
func (l *TileLayer) Get(cell grid.Cell) (Tile, bool) {
	i, ok := l.size.Lookup(cell.X, cell.Y)
	if !ok || l.tiles[i].Handle == 0 {
		return Tile{}, false
	}
	return l.tiles[i], true
}

// Each calls fn for every occupied cell in index order.
func (l *TileLayer) Each(fn func(cell grid.Cell, t Tile)) {
	for i, t := range l.tiles {
		if t.Handle != 0 {
			fn(l.size.CellAt(i), t)
		}
	}
}

// Clear drops every tile
func (l *TileLayer) Clear() {
	if l.count == 0 {
		return
	}
	for i := range l.tiles {
		l.tiles[i] = Tile{}
	}
	l.count = 0
	l.revision++
}

// Detach makes the layer reject edits, as if its render target went away.
// Attach restores it.
func (l *TileLayer) Detach() { l.detached = true }
func (l *TileLayer) Attach() { l.detached = false }

func (l *TileLayer) Name() string     { return l.name }
func (l *TileLayer) Size() grid.Size  { return l.size }
func (l *TileLayer) Len() int         { return l.count }
func (l *TileLayer) Visible() bool    { return l.visible }
func (l *TileLayer) Revision() uint64 { return l.revision }

// SetVisible shows or hides the layer. Visibility never touches tile data.
func (l *TileLayer) SetVisible(v bool) {
	if l.visible != v {
		l.visible = v
		l.revision++
	}
}

// ToggleVisible flips visibility and returns the new value
func (l *TileLayer) ToggleVisible() bool {
	l.SetVisible(!l.visible)
	return l.visible
}
