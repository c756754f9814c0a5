package engine

import (
	"errors"
	"testing"

	"github.com/wricardo/mcp-training/pipeworks/game/catalog"
	"github.com/wricardo/mcp-training/pipeworks/game/grid"
	"github.com/wricardo/mcp-training/pipeworks/game/tilemap"
)

const testTile = 16.0

func createTestConfig() *MapConfig {
	return &MapConfig{
		Name:        "Engine Test Map",
		Description: "Map for engine tests",
		Width:       8,
		Height:      8,
		TileSize:    testTile,
	}
}

func createTestEngine(t *testing.T) *GameEngine {
	t.Helper()
	e, err := NewEngine(createTestConfig(), nil)
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}
	return e
}

// at returns the world position of the center of cell (x, y)
func at(x, y int) grid.Point {
	return grid.Point{X: float64(x)*testTile + testTile/2, Y: float64(y)*testTile + testTile/2}
}

// dragFrames presses on the first cell, holds through the rest and releases.
func dragFrames(e *GameEngine, tool Tool, cells ...grid.Cell) {
	for i, c := range cells {
		e.Update(FrameInput{
			Tool:      tool,
			Primary:   Buttons{JustPressed: i == 0, Held: true},
			Cursor:    at(c.X, c.Y),
			HasCursor: true,
		})
	}
	last := cells[len(cells)-1]
	e.Update(FrameInput{
		Tool:      tool,
		Primary:   Buttons{JustReleased: true},
		Cursor:    at(last.X, last.Y),
		HasCursor: true,
	})
}

func assertPipes(t *testing.T, e *GameEngine, want ...grid.Cell) {
	t.Helper()
	set := make(map[grid.Cell]bool)
	for _, c := range want {
		set[c] = true
	}
	size := e.Map().Size()
	for i := 0; i < size.Len(); i++ {
		c := size.CellAt(i)
		if got := e.Pipes().Has(c.X, c.Y); got != set[c] {
			t.Errorf("Pipe at %v = %v, want %v", c, got, set[c])
		}
	}
}

func cells(xy ...int) []grid.Cell {
	var out []grid.Cell
	for i := 0; i+1 < len(xy); i += 2 {
		out = append(out, grid.Cell{X: xy[i], Y: xy[i+1]})
	}
	return out
}

func TestNewEngine(t *testing.T) {
	e := createTestEngine(t)

	if e.Map().Size() != (grid.Size{W: 8, H: 8}) {
		t.Errorf("Unexpected map size %v", e.Map().Size())
	}
	if id, _ := e.Map().Base(3, 3); id != catalog.Empty {
		t.Errorf("Expected Empty base, got %q", id)
	}
	if _, ok := e.Map().Overlay(3, 3); ok {
		t.Error("Expected no overlay on a fresh map")
	}
	if b := e.Brushes(); b.Base != "Dirt" || b.Overlay != "Marker" {
		t.Errorf("Unexpected default brushes %+v", b)
	}

	for _, name := range tilemap.DrawOrder {
		if _, ok := e.Layers().TileLayer(name); !ok {
			t.Errorf("Expected layer %s to be registered", name)
		}
	}
	eng, _ := e.Layers().TileLayer(tilemap.LayerPipesEngineering)
	if eng.Visible() {
		t.Error("Expected engineering view hidden at start")
	}
}

func TestNewEngine_InvalidConfig(t *testing.T) {
	config := createTestConfig()
	config.Width = 0

	if _, err := NewEngine(config, nil); err == nil {
		t.Error("Expected error for invalid config")
	}
}

func TestDrag_StraightLine(t *testing.T) {
	e := createTestEngine(t)
	dragFrames(e, ToolPipePlace, cells(2, 2, 2, 5)...)

	assertPipes(t, e, cells(2, 2, 2, 3, 2, 4, 2, 5)...)

	wantMasks := map[grid.Cell]grid.Mask{
		{X: 2, Y: 2}: grid.South,
		{X: 2, Y: 3}: grid.North | grid.South,
		{X: 2, Y: 4}: grid.North | grid.South,
		{X: 2, Y: 5}: grid.North,
	}
	for c, want := range wantMasks {
		if got := e.Pipes().Mask(c.X, c.Y); got != want {
			t.Errorf("Mask at %v = %v, want %v", c, got, want)
		}
	}
}

func TestDrag_DiagonalTurnsOnce(t *testing.T) {
	e := createTestEngine(t)
	dragFrames(e, ToolPipePlace, cells(0, 0, 2, 2)...)

	assertPipes(t, e, cells(0, 0, 1, 0, 2, 0, 2, 1, 2, 2)...)
	if m := e.Pipes().Mask(2, 0); m != grid.West|grid.South {
		t.Errorf("Corner mask = %v, want W|S", m)
	}
	if e.Pipes().Has(1, 1) {
		t.Error("Diagonal drag must not place pipe off the L path")
	}
}

func TestDrag_NoMovementNoEdits(t *testing.T) {
	tests := []struct {
		name  string
		cells []grid.Cell
	}{
		{"press and release", cells(4, 4)},
		{"held in place", cells(4, 4, 4, 4, 4, 4)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := createTestEngine(t)
			dragFrames(e, ToolPipePlace, tt.cells...)
			if e.Pipes().Count() != 0 || e.Pipes().Version() != 0 {
				t.Errorf("Expected no edits, got %d pipes at version %d", e.Pipes().Count(), e.Pipes().Version())
			}
		})
	}
}

func TestDrag_PlaceTwiceIsIdempotent(t *testing.T) {
	e := createTestEngine(t)
	dragFrames(e, ToolPipePlace, cells(1, 1, 1, 3)...)
	version := e.Pipes().Version()
	stats := e.Stats()

	dragFrames(e, ToolPipePlace, cells(1, 1, 1, 3)...)

	assertPipes(t, e, cells(1, 1, 1, 2, 1, 3)...)
	if e.Pipes().Version() != version {
		t.Errorf("Re-placing existing pipe moved the version %d -> %d", version, e.Pipes().Version())
	}
	after := e.Stats()
	if after.Upserted != stats.Upserted || after.Resolves != stats.Resolves {
		t.Errorf("Re-placing existing pipe caused visual work: %+v -> %+v", stats, after)
	}
}

func TestDrag_Erase(t *testing.T) {
	e := createTestEngine(t)
	dragFrames(e, ToolPipePlace, cells(0, 3, 5, 3)...)
	dragFrames(e, ToolPipeErase, cells(2, 3, 3, 3)...)

	assertPipes(t, e, cells(0, 3, 1, 3, 4, 3, 5, 3)...)
	if m := e.Pipes().Mask(1, 3); m != grid.West {
		t.Errorf("Mask next to the gap = %v, want W", m)
	}
}

func TestDrag_ToolSwitchCancelsWithoutRevert(t *testing.T) {
	e := createTestEngine(t)

	e.Update(FrameInput{Tool: ToolPipePlace, Primary: Buttons{JustPressed: true, Held: true}, Cursor: at(0, 0), HasCursor: true})
	e.Update(FrameInput{Tool: ToolPipePlace, Primary: Buttons{Held: true}, Cursor: at(0, 2), HasCursor: true})
	assertPipes(t, e, cells(0, 0, 0, 1, 0, 2)...)

	// Tool switched away mid-drag, button still held
	e.Update(FrameInput{Tool: ToolNone, Primary: Buttons{Held: true}, Cursor: at(0, 4), HasCursor: true})
	if e.Drag().Active {
		t.Error("Expected drag cancelled by tool switch")
	}

	// Back to a pipe tool without a fresh press: still idle
	e.Update(FrameInput{Tool: ToolPipePlace, Primary: Buttons{Held: true}, Cursor: at(0, 6), HasCursor: true})
	e.Update(FrameInput{Tool: ToolPipePlace, Primary: Buttons{Held: true}, Cursor: at(3, 6), HasCursor: true})

	assertPipes(t, e, cells(0, 0, 0, 1, 0, 2)...)
}

func TestDrag_ReleaseEndsDrag(t *testing.T) {
	e := createTestEngine(t)
	dragFrames(e, ToolPipePlace, cells(0, 0, 1, 0)...)

	if e.Drag().Active || e.Drag().HasLast {
		t.Errorf("Expected idle drag after release, got %+v", e.Drag())
	}

	e.Update(FrameInput{Tool: ToolPipePlace, Primary: Buttons{Held: true}, Cursor: at(5, 5), HasCursor: true})
	assertPipes(t, e, cells(0, 0, 1, 0)...)
}

func TestDrag_OffMapSampleSkipped(t *testing.T) {
	e := createTestEngine(t)

	e.Update(FrameInput{Tool: ToolPipePlace, Primary: Buttons{JustPressed: true, Held: true}, Cursor: at(0, 0), HasCursor: true})
	e.Update(FrameInput{Tool: ToolPipePlace, Primary: Buttons{Held: true}, Cursor: grid.Point{X: -5, Y: 3}, HasCursor: true})
	e.Update(FrameInput{Tool: ToolPipePlace, Primary: Buttons{Held: true}})
	if e.Pipes().Count() != 0 {
		t.Fatalf("Off-map and missing samples must not edit, got %d pipes", e.Pipes().Count())
	}

	e.Update(FrameInput{Tool: ToolPipePlace, Primary: Buttons{Held: true}, Cursor: at(0, 2), HasCursor: true})
	assertPipes(t, e, cells(0, 0, 0, 1, 0, 2)...)
}

func TestSync_BothLayersMirrorNetwork(t *testing.T) {
	e := createTestEngine(t)
	dragFrames(e, ToolPipePlace, cells(1, 1, 3, 1)...)

	normal, _ := e.Layers().TileLayer(tilemap.LayerPipes)
	eng, _ := e.Layers().TileLayer(tilemap.LayerPipesEngineering)

	for _, l := range []*tilemap.TileLayer{normal, eng} {
		if l.Len() != 3 {
			t.Errorf("Layer %s has %d tiles, want 3", l.Name(), l.Len())
		}
		tile, ok := l.Get(grid.Cell{X: 2, Y: 1})
		if !ok || tile.Mask != grid.East|grid.West {
			t.Errorf("Layer %s middle tile = %+v", l.Name(), tile)
		}
	}

	tile, _ := normal.Get(grid.Cell{X: 1, Y: 1})
	if tile.Color != DefaultPipeColor {
		t.Errorf("Normal view color = %v", tile.Color)
	}
	tile, _ = eng.Get(grid.Cell{X: 1, Y: 1})
	if tile.Color != DefaultEngineeringColor {
		t.Errorf("Engineering view color = %v", tile.Color)
	}
}

// recordingLayer counts Layer contract calls per cell.
type recordingLayer struct {
	upserts map[grid.Cell]int
	removes map[grid.Cell]int
}

func newRecordingLayer() *recordingLayer {
	return &recordingLayer{upserts: map[grid.Cell]int{}, removes: map[grid.Cell]int{}}
}

func (r *recordingLayer) Upsert(cell grid.Cell, mask grid.Mask, color catalog.Color) error {
	r.upserts[cell]++
	return nil
}

func (r *recordingLayer) Remove(cell grid.Cell) error {
	r.removes[cell]++
	return nil
}

func TestSync_EditsExactlyTheChangedCells(t *testing.T) {
	e := createTestEngine(t)
	rec := newRecordingLayer()
	e.Layers().Register(tilemap.LayerPipes, rec)

	dragFrames(e, ToolPipePlace, cells(0, 0, 2, 0)...)
	for _, c := range cells(0, 0, 1, 0, 2, 0) {
		if rec.upserts[c] != 1 {
			t.Errorf("Expected one upsert at %v, got %d", c, rec.upserts[c])
		}
	}
	if len(rec.upserts) != 3 || len(rec.removes) != 0 {
		t.Fatalf("Unexpected edits %v %v", rec.upserts, rec.removes)
	}

	t.Run("idle frame touches nothing", func(t *testing.T) {
		*rec = *newRecordingLayer()
		e.Update(FrameInput{})
		if len(rec.upserts) != 0 || len(rec.removes) != 0 {
			t.Errorf("Expected no edits, got %v %v", rec.upserts, rec.removes)
		}
	})

	t.Run("extension upserts new cell and changed neighbor only", func(t *testing.T) {
		*rec = *newRecordingLayer()
		dragFrames(e, ToolPipePlace, cells(2, 0, 2, 1)...)
		want := map[grid.Cell]int{{X: 2, Y: 0}: 1, {X: 2, Y: 1}: 1}
		if len(rec.upserts) != len(want) || rec.upserts[grid.Cell{X: 2, Y: 0}] != 1 || rec.upserts[grid.Cell{X: 2, Y: 1}] != 1 {
			t.Errorf("Upserts = %v, want %v", rec.upserts, want)
		}
		if len(rec.removes) != 0 {
			t.Errorf("Unexpected removes %v", rec.removes)
		}
	})

	t.Run("erase removes only the erased cell", func(t *testing.T) {
		*rec = *newRecordingLayer()
		e.Pipes().Set(2, 1, false)
		e.Update(FrameInput{})
		if len(rec.removes) != 1 || rec.removes[grid.Cell{X: 2, Y: 1}] != 1 {
			t.Errorf("Removes = %v, want only (2,1)", rec.removes)
		}
		if len(rec.upserts) != 1 || rec.upserts[grid.Cell{X: 2, Y: 0}] != 1 {
			t.Errorf("Upserts = %v, want only (2,0) for its mask change", rec.upserts)
		}
	})
}

func TestSync_MissingLayerSkippedThenCaughtUp(t *testing.T) {
	e := createTestEngine(t)
	e.Layers().Unregister(tilemap.LayerPipesEngineering)

	dragFrames(e, ToolPipePlace, cells(0, 0, 0, 3)...)

	normal, _ := e.Layers().TileLayer(tilemap.LayerPipes)
	if normal.Len() != 4 {
		t.Errorf("Normal layer should sync despite missing sibling, got %d tiles", normal.Len())
	}
	if e.Stats().Skipped == 0 {
		t.Error("Expected skipped layer passes to be counted")
	}

	eng := tilemap.NewTileLayer(tilemap.LayerPipesEngineering, e.Map().Size(), false)
	e.Layers().Register(tilemap.LayerPipesEngineering, eng)
	e.Update(FrameInput{})

	if eng.Len() != 4 {
		t.Errorf("Engineering layer should catch up, got %d tiles", eng.Len())
	}
	if tile, _ := eng.Get(grid.Cell{X: 0, Y: 1}); tile.Mask != grid.North|grid.South {
		t.Errorf("Caught-up tile mask = %v", tile.Mask)
	}
}

func TestSync_ReplacedLayerGetsFullNetwork(t *testing.T) {
	e := createTestEngine(t)
	dragFrames(e, ToolPipePlace, cells(0, 0, 3, 0)...)

	e.Layers().Unregister(tilemap.LayerPipesEngineering)
	dragFrames(e, ToolPipePlace, cells(0, 5, 1, 5)...)

	eng := tilemap.NewTileLayer(tilemap.LayerPipesEngineering, e.Map().Size(), false)
	e.Layers().Register(tilemap.LayerPipesEngineering, eng)
	e.Update(FrameInput{})

	if e.Pipes().Count() != 6 || eng.Len() != 6 {
		t.Fatalf("Expected 6 pipes mirrored into the new layer, got %d logical %d visual", e.Pipes().Count(), eng.Len())
	}
	if tile, _ := eng.Get(grid.Cell{X: 1, Y: 0}); tile.Mask != grid.East|grid.West {
		t.Errorf("Pipe laid before the swap has mask %v", tile.Mask)
	}

	// Swapping in another layer with no network edit still rebuilds it
	again := tilemap.NewTileLayer(tilemap.LayerPipesEngineering, e.Map().Size(), false)
	e.Layers().Register(tilemap.LayerPipesEngineering, again)
	e.Update(FrameInput{})
	if again.Len() != 6 {
		t.Errorf("Expected the second replacement to hold 6 tiles, got %d", again.Len())
	}
}

func TestSync_DetachedLayerDoesNotBreakFrame(t *testing.T) {
	e := createTestEngine(t)
	normal, _ := e.Layers().TileLayer(tilemap.LayerPipes)
	normal.Detach()

	dragFrames(e, ToolPipePlace, cells(4, 4, 6, 4)...)
	if normal.Len() != 0 {
		t.Fatalf("Detached layer must not receive edits")
	}

	normal.Attach()
	e.Update(FrameInput{})
	if normal.Len() != 3 {
		t.Errorf("Expected layer to catch up after reattach, got %d", normal.Len())
	}
}

func TestPlacement_Pointer(t *testing.T) {
	e := createTestEngine(t)

	e.Update(FrameInput{Primary: Buttons{JustPressed: true, Held: true}, Cursor: at(1, 2), HasCursor: true})
	e.Update(FrameInput{SecondaryJustPressed: true, Cursor: at(3, 4), HasCursor: true})

	if id, _ := e.Map().Base(1, 2); id != "Dirt" {
		t.Errorf("Expected Dirt at (1,2), got %q", id)
	}
	if id, ok := e.Map().Overlay(3, 4); !ok || id != "Marker" {
		t.Errorf("Expected Marker at (3,4), got %q", id)
	}

	base, _ := e.Layers().TileLayer(tilemap.LayerBase)
	overlay, _ := e.Layers().TileLayer(tilemap.LayerOverlay)
	if base.Len() != 1 || overlay.Len() != 1 {
		t.Errorf("Expected one visual per layer, got base=%d overlay=%d", base.Len(), overlay.Len())
	}
	dirt, _ := e.Catalog().Def("Dirt")
	if tile, _ := base.Get(grid.Cell{X: 1, Y: 2}); tile.Color != dirt.Color {
		t.Errorf("Base tile color = %v, want %v", tile.Color, dirt.Color)
	}

	// Same cell again replaces, never duplicates
	e.Update(FrameInput{Primary: Buttons{JustPressed: true, Held: true}, Cursor: at(1, 2), HasCursor: true})
	if base.Len() != 1 {
		t.Errorf("Expected replacement, got %d base tiles", base.Len())
	}

	// Holding without a fresh press does not paint
	e.Update(FrameInput{Primary: Buttons{Held: true}, Cursor: at(5, 5), HasCursor: true})
	if id, _ := e.Map().Base(5, 5); id != catalog.Empty {
		t.Errorf("Held button should not place, got %q", id)
	}
}

func TestPlacement_SuppressedByPipeTools(t *testing.T) {
	for _, tool := range []Tool{ToolPipePlace, ToolPipeErase} {
		t.Run(tool.String(), func(t *testing.T) {
			e := createTestEngine(t)
			e.Update(FrameInput{
				Tool:                 tool,
				Primary:              Buttons{JustPressed: true, Held: true},
				SecondaryJustPressed: true,
				Cursor:               at(2, 2),
				HasCursor:            true,
			})
			if id, _ := e.Map().Base(2, 2); id != catalog.Empty {
				t.Errorf("Base placed under %s: %q", tool, id)
			}
			if _, ok := e.Map().Overlay(2, 2); ok {
				t.Errorf("Overlay placed under %s", tool)
			}
		})
	}
}

func TestApply(t *testing.T) {
	e := createTestEngine(t)
	base, _ := e.Layers().TileLayer(tilemap.LayerBase)
	overlay, _ := e.Layers().TileLayer(tilemap.LayerOverlay)

	if err := e.Apply(PlaceTile{X: 0, Y: 0, Tile: "Dirt"}); err != nil {
		t.Fatalf("PlaceTile Dirt: %v", err)
	}
	if err := e.Apply(PlaceTile{X: 0, Y: 0, Tile: "Marker"}); err != nil {
		t.Fatalf("PlaceTile Marker: %v", err)
	}
	if base.Len() != 1 || overlay.Len() != 1 {
		t.Fatalf("Expected base and overlay visuals, got %d %d", base.Len(), overlay.Len())
	}

	if err := e.Apply(RemoveTile{X: 0, Y: 0, Layer: catalog.LayerOverlay}); err != nil {
		t.Fatalf("RemoveTile overlay: %v", err)
	}
	if _, ok := e.Map().Overlay(0, 0); ok || overlay.Len() != 0 {
		t.Error("Expected overlay cleared")
	}
	if id, _ := e.Map().Base(0, 0); id != "Dirt" {
		t.Error("Removing the overlay must keep the base")
	}

	if err := e.Apply(PlaceTile{X: 0, Y: 0, Tile: catalog.Empty}); err != nil {
		t.Fatalf("PlaceTile Empty: %v", err)
	}
	if base.Len() != 0 {
		t.Error("Placing Empty should remove the base visual")
	}

	tests := []struct {
		name string
		cmd  Command
		err  error
	}{
		{"unknown tile", PlaceTile{X: 0, Y: 0, Tile: "Lava"}, catalog.ErrTileNotFound},
		{"off map", PlaceTile{X: 8, Y: 0, Tile: "Dirt"}, ErrOutOfBounds},
		{"negative", RemoveTile{X: -1, Y: 0}, ErrOutOfBounds},
		{"bad layer", RemoveTile{X: 0, Y: 0, Layer: "Sky"}, ErrWrongLayer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := e.Apply(tt.cmd); !errors.Is(err, tt.err) {
				t.Errorf("Expected %v, got %v", tt.err, err)
			}
		})
	}
}

func TestApply_RemoveBothLayers(t *testing.T) {
	e := createTestEngine(t)
	e.Apply(PlaceTile{X: 2, Y: 2, Tile: "Dirt"})
	e.Apply(PlaceTile{X: 2, Y: 2, Tile: "Marker"})

	if err := e.Apply(RemoveTile{X: 2, Y: 2}); err != nil {
		t.Fatalf("RemoveTile: %v", err)
	}
	if id, _ := e.Map().Base(2, 2); id != catalog.Empty {
		t.Errorf("Expected Empty base, got %q", id)
	}
	if _, ok := e.Map().Overlay(2, 2); ok {
		t.Error("Expected no overlay")
	}
}

func TestApply_RemoveWithoutEmptyInCatalog(t *testing.T) {
	cat, err := catalog.New([]catalog.Entry{
		{ID: "Dirt", Layer: catalog.LayerBase, Color: catalog.RGB(0.55, 0.42, 0.35)},
		{ID: "Marker", Layer: catalog.LayerOverlay, Color: catalog.RGB(1, 0.9, 0)},
	})
	if err != nil {
		t.Fatalf("Failed to build catalog: %v", err)
	}
	e, err := NewEngine(createTestConfig(), cat)
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}
	base, _ := e.Layers().TileLayer(tilemap.LayerBase)

	e.Apply(PlaceTile{X: 1, Y: 1, Tile: "Dirt"})
	e.Apply(PlaceTile{X: 1, Y: 1, Tile: "Marker"})

	if err := e.Apply(RemoveTile{X: 1, Y: 1}); err != nil {
		t.Fatalf("RemoveTile: %v", err)
	}
	if id, _ := e.Map().Base(1, 1); id != catalog.Empty {
		t.Errorf("Expected Empty base, got %q", id)
	}
	if _, ok := e.Map().Overlay(1, 1); ok {
		t.Error("Expected no overlay")
	}
	if base.Len() != 0 {
		t.Errorf("Expected the base visual removed, got %d tiles", base.Len())
	}

	e.Apply(PlaceTile{X: 2, Y: 2, Tile: "Dirt"})
	if err := e.Apply(PlaceTile{X: 2, Y: 2, Tile: catalog.Empty}); err != nil {
		t.Errorf("Placing Empty must not need a catalog entry: %v", err)
	}
}

func TestBrushes(t *testing.T) {
	cat, err := catalog.New([]catalog.Entry{
		{ID: catalog.Empty, Layer: catalog.LayerBase, Color: catalog.Transparent},
		{ID: "Dirt", Layer: catalog.LayerBase, Color: catalog.RGB(0.5, 0.4, 0.3)},
		{ID: "Stone", Layer: catalog.LayerBase, Color: catalog.RGB(0.5, 0.5, 0.5)},
		{ID: "Marker", Layer: catalog.LayerOverlay, Color: catalog.RGB(1, 1, 0)},
		{ID: "Flag", Layer: catalog.LayerOverlay, Color: catalog.RGB(1, 0, 0)},
	})
	if err != nil {
		t.Fatalf("Failed to build catalog: %v", err)
	}
	e, err := NewEngine(createTestConfig(), cat)
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}

	if err := e.SetBrush("Stone"); err != nil {
		t.Fatalf("SetBrush: %v", err)
	}
	if err := e.SetBrush("Lava"); !errors.Is(err, catalog.ErrTileNotFound) {
		t.Errorf("Expected ErrTileNotFound, got %v", err)
	}
	e.Update(FrameInput{Primary: Buttons{JustPressed: true, Held: true}, Cursor: at(0, 0), HasCursor: true})
	if id, _ := e.Map().Base(0, 0); id != "Stone" {
		t.Errorf("Expected Stone, got %q", id)
	}

	if got := e.CycleOverlayBrush(); got != "Flag" {
		t.Errorf("Expected Flag, got %q", got)
	}
	if got := e.CycleOverlayBrush(); got != "Marker" {
		t.Errorf("Expected wrap to Marker, got %q", got)
	}
}

func TestToggleEngineering(t *testing.T) {
	e := createTestEngine(t)
	dragFrames(e, ToolPipePlace, cells(0, 0, 1, 0)...)

	if !e.ToggleEngineering() {
		t.Error("Expected engineering view visible after toggle")
	}
	eng, _ := e.Layers().TileLayer(tilemap.LayerPipesEngineering)
	if eng.Len() != 2 {
		t.Errorf("Toggle must not touch tiles, got %d", eng.Len())
	}
	if e.ToggleEngineering() {
		t.Error("Expected engineering view hidden after second toggle")
	}
}

func TestReset(t *testing.T) {
	e := createTestEngine(t)
	dragFrames(e, ToolPipePlace, cells(0, 0, 3, 3)...)
	e.Apply(PlaceTile{X: 5, Y: 5, Tile: "Dirt"})
	e.Apply(PlaceTile{X: 5, Y: 5, Tile: "Marker"})

	e.Reset()

	if e.Pipes().Count() != 0 || e.Map().CountBase() != 0 {
		t.Errorf("Expected empty map after reset, got %d pipes %d tiles", e.Pipes().Count(), e.Map().CountBase())
	}
	for _, name := range tilemap.DrawOrder {
		l, _ := e.Layers().TileLayer(name)
		if l.Len() != 0 {
			t.Errorf("Layer %s still has %d tiles", name, l.Len())
		}
	}
}

func TestCursorAndStats(t *testing.T) {
	e := createTestEngine(t)
	e.Update(FrameInput{Cursor: at(6, 7), HasCursor: true})

	if c, ok := e.Cursor(); !ok || c != (grid.Cell{X: 6, Y: 7}) {
		t.Errorf("Cursor = %v %v", c, ok)
	}
	e.Update(FrameInput{Cursor: grid.Point{X: 1000, Y: 0}, HasCursor: true})
	if _, ok := e.Cursor(); ok {
		t.Error("Expected no cursor cell off the map")
	}

	dragFrames(e, ToolPipePlace, cells(0, 0, 0, 1)...)
	st := e.Stats()
	if st.Map != "Engine Test Map" || st.Pipes != 2 || st.Resolves != 1 {
		t.Errorf("Unexpected stats %+v", st)
	}
	if st.Upserted != 4 {
		t.Errorf("Expected 2 upserts per pipe layer, got %d", st.Upserted)
	}
}
