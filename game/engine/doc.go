// Package engine provides the core game logic for Pipeworks.
//
// The engine package implements:
//   - Map state: one base tile per cell plus an optional overlay marker
//   - The pipe network: per-cell presence and derived NESW connectivity
//   - Drag gestures that fill straight runs and single L-turns of pipe
//   - The per-frame pipeline that keeps the visual layers in step
//
// Core Types:
//
// The Engine interface defines the main contract for game operations,
// implemented by GameEngine. MapConfig describes a map and is loaded from
// JSON or YAML files by the config package. FrameInput is the per-frame
// input snapshot produced by a front end.
//
// Usage:
//
//	gameEngine, err := engine.NewEngine(mapConfig, tileCatalog)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Once per frame
//	gameEngine.Update(engine.FrameInput{
//		Tool:      engine.ToolPipePlace,
//		Primary:   engine.Buttons{Held: true},
//		Cursor:    grid.Point{X: 40, Y: 24},
//		HasCursor: true,
//	})
//
// Frame Pipeline:
//
// Update runs three steps in a fixed order. Pointer input edits either the
// map (placement) or pipe presence (gesture). If presence changed, every
// cell's connectivity mask is recomputed. Then each pipe layer binding
// upserts or removes exactly the visual entries whose presence or mask
// changed. A missing visual layer is skipped for the frame and catches up on
// a later one.
package engine
