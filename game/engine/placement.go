package engine

import (
	"errors"
	"fmt"

	"github.com/wricardo/mcp-training/pipeworks/game/catalog"
	"github.com/wricardo/mcp-training/pipeworks/game/grid"
	"github.com/wricardo/mcp-training/pipeworks/game/tilemap"
)

var (
	ErrOutOfBounds = errors.New("cell out of bounds")
	ErrWrongLayer  = errors.New("tile belongs to another layer")
)

// Command is a scripted map edit applied with GameEngine.Apply
type Command interface {
	isCommand()
}

// PlaceTile places a catalog tile on the layer its catalog entry names.
type PlaceTile struct {
	X, Y int
	Tile catalog.TileID
}

// RemoveTile clears a cell. An empty Layer clears both base and overlay.
type RemoveTile struct {
	X, Y  int
	Layer catalog.Layer
}

func (PlaceTile) isCommand()  {}
func (RemoveTile) isCommand() {}

// Brushes are the tiles the pointer places
type Brushes struct {
	Base    catalog.TileID
	Overlay catalog.TileID
}

// placeBase sets the base tile and mirrors it into the base layer. Empty is
// always a valid base, listed in the catalog or not, and removes the visual.
func (e *GameEngine) placeBase(cell grid.Cell, id catalog.TileID) error {
	if id == catalog.Empty {
		if !e.mapState.SetBase(cell.X, cell.Y, id) {
			return fmt.Errorf("%w: %v", ErrOutOfBounds, cell)
		}
		return e.visual(tilemap.LayerBase, func(l tilemap.Layer) error { return l.Remove(cell) })
	}

	def, err := e.catalog.Def(id)
	if err != nil {
		return err
	}
	if def.Layer != catalog.LayerBase {
		return fmt.Errorf("%w: %s is %s", ErrWrongLayer, id, def.Layer)
	}
	if !e.mapState.SetBase(cell.X, cell.Y, id) {
		return fmt.Errorf("%w: %v", ErrOutOfBounds, cell)
	}
	return e.visual(tilemap.LayerBase, func(l tilemap.Layer) error { return l.Upsert(cell, 0, def.Color) })
}

// placeOverlay sets the overlay marker and upserts it into the overlay layer.
func (e *GameEngine) placeOverlay(cell grid.Cell, id catalog.TileID) error {
	def, err := e.catalog.Def(id)
	if err != nil {
		return err
	}
	if def.Layer != catalog.LayerOverlay {
		return fmt.Errorf("%w: %s is %s", ErrWrongLayer, id, def.Layer)
	}
	if !e.mapState.SetOverlay(cell.X, cell.Y, id) {
		return fmt.Errorf("%w: %v", ErrOutOfBounds, cell)
	}
	return e.visual(tilemap.LayerOverlay, func(l tilemap.Layer) error { return l.Upsert(cell, 0, def.Color) })
}

func (e *GameEngine) clearOverlay(cell grid.Cell) error {
	if !e.mapState.SetOverlay(cell.X, cell.Y, "") {
		return fmt.Errorf("%w: %v", ErrOutOfBounds, cell)
	}
	return e.visual(tilemap.LayerOverlay, func(l tilemap.Layer) error { return l.Remove(cell) })
}

// visual runs one edit against a named layer. A missing or unavailable layer
// is skipped: the logical state already changed and stays authoritative.
func (e *GameEngine) visual(name string, edit func(tilemap.Layer) error) error {
	layer, ok := e.layers.Get(name)
	if !ok {
		e.skipped(name, tilemap.ErrLayerUnavailable)
		return nil
	}
	if err := edit(layer); err != nil {
		if errors.Is(err, tilemap.ErrLayerUnavailable) {
			e.skipped(name, err)
			return nil
		}
		return fmt.Errorf("layer %s: %w", name, err)
	}
	return nil
}

// placeFromInput handles one frame of pointer placement. Pipe tools own the
// pointer, so callers skip this while one is active.
func (e *GameEngine) placeFromInput(in FrameInput, cell grid.Cell, onMap bool) {
	if !onMap {
		return
	}
	if in.Primary.JustPressed {
		if err := e.placeBase(cell, e.brushes.Base); err != nil {
			e.debugf("place base at %v: %v", cell, err)
		}
	}
	if in.SecondaryJustPressed {
		if err := e.placeOverlay(cell, e.brushes.Overlay); err != nil {
			e.debugf("place overlay at %v: %v", cell, err)
		}
	}
}
