package engine

import (
	"fmt"
	"log"

	"github.com/wricardo/mcp-training/pipeworks/game/catalog"
	"github.com/wricardo/mcp-training/pipeworks/game/grid"
	"github.com/wricardo/mcp-training/pipeworks/game/tilemap"
)

// Engine provides the main interface for game operations
type Engine interface {
	// Frame pipeline
	Update(in FrameInput)
	Apply(cmd Command) error
	Reset()

	// State
	Map() *MapState
	Pipes() *PipeNetwork
	Layers() *tilemap.Registry
	Drag() DragState
	Cursor() (grid.Cell, bool)
	Stats() Stats

	// Configuration
	GetConfig() *MapConfig
	Catalog() *catalog.Catalog
	Brushes() Brushes
	SetBrush(id catalog.TileID) error
	CycleOverlayBrush() catalog.TileID
	ToggleEngineering() bool
}

// GameEngine implements the Engine interface. It owns all per-map state and
// is driven from a single goroutine, one Update per frame.
type GameEngine struct {
	config   *MapConfig
	catalog  *catalog.Catalog
	mapState *MapState
	pipes    *PipeNetwork
	drag     DragState
	layers   *tilemap.Registry
	bindings []*tilemap.PipeBinding
	brushes  Brushes

	cursor    grid.Cell
	hasCursor bool
	debug     bool

	resolves int
	upserted int
	removed  int
	skips    int
}

// NewEngine creates a new game engine for the given map and tile catalog. A
// nil catalog means the built-in one.
func NewEngine(config *MapConfig, cat *catalog.Catalog) (*GameEngine, error) {
	if err := ValidateMapConfig(config); err != nil {
		return nil, err
	}
	ApplyDefaults(config)
	if cat == nil {
		cat = catalog.Default()
	}

	size := config.Size()
	e := &GameEngine{
		config:   config,
		catalog:  cat,
		mapState: NewMapState(size),
		pipes:    NewPipeNetwork(size),
		layers:   tilemap.NewRegistry(),
	}

	e.layers.Register(tilemap.LayerBase, tilemap.NewTileLayer(tilemap.LayerBase, size, true))
	e.layers.Register(tilemap.LayerOverlay, tilemap.NewTileLayer(tilemap.LayerOverlay, size, true))
	e.layers.Register(tilemap.LayerPipes, tilemap.NewTileLayer(tilemap.LayerPipes, size, true))
	e.layers.Register(tilemap.LayerPipesEngineering, tilemap.NewTileLayer(tilemap.LayerPipesEngineering, size, false))
	e.bindings = []*tilemap.PipeBinding{
		tilemap.NewPipeBinding(tilemap.LayerPipes, config.PipeColors.Normal, size),
		tilemap.NewPipeBinding(tilemap.LayerPipesEngineering, config.PipeColors.Engineering, size),
	}

	if brushes := cat.Brushes(catalog.LayerBase); len(brushes) > 0 {
		e.brushes.Base = brushes[0]
	} else {
		e.brushes.Base = catalog.Empty
	}
	if brushes := cat.Brushes(catalog.LayerOverlay); len(brushes) > 0 {
		e.brushes.Overlay = brushes[0]
	}

	return e, nil
}

// NewEngineWithDefaults creates an engine on the built-in map and catalog
func NewEngineWithDefaults() *GameEngine {
	e, err := NewEngine(DefaultMapConfig(), nil)
	if err != nil {
		panic(err)
	}
	return e
}

// SetDebug enables per-frame debug logging
func (e *GameEngine) SetDebug(debug bool) {
	e.debug = debug
}

// Update runs one frame: pointer input edits map or pipe presence, then
// connectivity is resolved, then pipe layers are synced. The order is fixed.
func (e *GameEngine) Update(in FrameInput) {
	var cell grid.Cell
	onMap := false
	if in.HasCursor {
		cell, onMap = grid.CellFromWorld(in.Cursor, e.config.TileSize, e.mapState.Size())
	}
	e.cursor, e.hasCursor = cell, onMap

	if in.Tool.IsPipe() {
		if n := e.drag.Step(in.Tool, in.Primary, cell, onMap, e.pipes); n > 0 {
			e.debugf("%s changed %d cells ending at %v", in.Tool, n, cell)
		}
	} else {
		e.drag.Reset()
		e.placeFromInput(in, cell, onMap)
	}

	e.resolveAndSync()
}

// resolveAndSync is the dirty pass: both steps are no-ops unless presence
// changed or a layer is still catching up.
func (e *GameEngine) resolveAndSync() {
	if e.pipes.Resolve() {
		e.resolves++
	}
	for _, b := range e.bindings {
		st, err := b.Sync(e.layers, e.pipes)
		e.upserted += st.Upserted
		e.removed += st.Removed
		if err != nil {
			e.skipped(b.Layer(), err)
		}
	}
}

func (e *GameEngine) skipped(layer string, err error) {
	e.skips++
	e.debugf("skipping layer %s this frame: %v", layer, err)
}

func (e *GameEngine) debugf(format string, args ...interface{}) {
	if e.debug {
		log.Printf("[engine] "+format, args...)
	}
}

// Apply runs a scripted edit. Pipe layers are brought up to date before it
// returns.
func (e *GameEngine) Apply(cmd Command) error {
	var err error
	switch c := cmd.(type) {
	case PlaceTile:
		err = e.applyPlace(c)
	case RemoveTile:
		err = e.applyRemove(c)
	default:
		err = fmt.Errorf("unknown command %T", cmd)
	}
	e.resolveAndSync()
	return err
}

func (e *GameEngine) applyPlace(c PlaceTile) error {
	def, err := e.catalog.Def(c.Tile)
	if err != nil {
		return err
	}
	cell := grid.Cell{X: c.X, Y: c.Y}
	if def.Layer == catalog.LayerOverlay {
		return e.placeOverlay(cell, c.Tile)
	}
	return e.placeBase(cell, c.Tile)
}

func (e *GameEngine) applyRemove(c RemoveTile) error {
	cell := grid.Cell{X: c.X, Y: c.Y}
	switch c.Layer {
	case catalog.LayerBase:
		return e.placeBase(cell, catalog.Empty)
	case catalog.LayerOverlay:
		return e.clearOverlay(cell)
	case "":
		if err := e.clearOverlay(cell); err != nil {
			return err
		}
		return e.placeBase(cell, catalog.Empty)
	default:
		return fmt.Errorf("%w: unknown layer %q", ErrWrongLayer, c.Layer)
	}
}

// Reset clears the map, the pipe network and the drag. Pipe layers catch up
// through the normal sync pass.
func (e *GameEngine) Reset() {
	size := e.mapState.Size()
	for i := 0; i < size.Len(); i++ {
		c := size.CellAt(i)
		e.pipes.Set(c.X, c.Y, false)
	}
	e.mapState = NewMapState(size)
	for _, name := range []string{tilemap.LayerBase, tilemap.LayerOverlay} {
		if l, ok := e.layers.TileLayer(name); ok {
			l.Clear()
		}
	}
	e.drag.Reset()
	e.resolveAndSync()
}

// Map returns the logical map
func (e *GameEngine) Map() *MapState {
	return e.mapState
}

// Pipes returns the pipe network
func (e *GameEngine) Pipes() *PipeNetwork {
	return e.pipes
}

// Layers returns the visual layer registry
func (e *GameEngine) Layers() *tilemap.Registry {
	return e.layers
}

// Drag returns a copy of the current drag state
func (e *GameEngine) Drag() DragState {
	return e.drag
}

// Cursor returns the cell under the pointer as of the last Update
func (e *GameEngine) Cursor() (grid.Cell, bool) {
	return e.cursor, e.hasCursor
}

// GetConfig returns the map configuration
func (e *GameEngine) GetConfig() *MapConfig {
	return e.config
}

// Catalog returns the tile catalog
func (e *GameEngine) Catalog() *catalog.Catalog {
	return e.catalog
}

// Brushes returns the active placement brushes
func (e *GameEngine) Brushes() Brushes {
	return e.brushes
}

// SetBrush selects the brush for the tile's own layer
func (e *GameEngine) SetBrush(id catalog.TileID) error {
	def, err := e.catalog.Def(id)
	if err != nil {
		return err
	}
	if def.Layer == catalog.LayerOverlay {
		e.brushes.Overlay = id
	} else {
		e.brushes.Base = id
	}
	return nil
}

// CycleOverlayBrush advances to the next overlay tile in catalog order
func (e *GameEngine) CycleOverlayBrush() catalog.TileID {
	ids := e.catalog.Brushes(catalog.LayerOverlay)
	if len(ids) == 0 {
		return e.brushes.Overlay
	}
	next := ids[0]
	for i, id := range ids {
		if id == e.brushes.Overlay {
			next = ids[(i+1)%len(ids)]
			break
		}
	}
	e.brushes.Overlay = next
	return next
}

// ToggleEngineering flips the engineering pipe view and returns whether it
// is now visible. Pipe data is untouched.
func (e *GameEngine) ToggleEngineering() bool {
	l, ok := e.layers.TileLayer(tilemap.LayerPipesEngineering)
	if !ok {
		return false
	}
	return l.ToggleVisible()
}

// Stats returns counters for HUDs and logs
func (e *GameEngine) Stats() Stats {
	return Stats{
		Map:       e.config.Name,
		Size:      e.mapState.Size(),
		Pipes:     e.pipes.Count(),
		Version:   e.pipes.Version(),
		Resolves:  e.resolves,
		Upserted:  e.upserted,
		Removed:   e.removed,
		Skipped:   e.skips,
		Dragging:  e.drag.Active,
		BaseBrush: e.brushes.Base,
		Overlay:   e.brushes.Overlay,
	}
}
