package view

import (
	"fmt"

	"github.com/wricardo/mcp-training/pipeworks/game/catalog"
	"github.com/wricardo/mcp-training/pipeworks/game/engine"
)

// Action is a keyboard command shared by every front end
type Action int

const (
	ActionNone Action = iota
	ActionPipePlace
	ActionPipeErase
	ActionToolNone
	ActionToggleGrid
	ActionToggleEngineering
	ActionCycleOverlay
	ActionClearOverlay
	ActionBrush
	ActionNextMap
	ActionReset
	ActionQuit
)

// Key codes for keys without a printable rune
const (
	KeyEscape    rune = 0x1b
	KeyBackspace rune = 0x08
	KeyDelete    rune = 0x7f
	KeyTab       rune = '\t'
)

// KeyAction maps a key to its action. For ActionBrush, arg is the zero-based
// base brush index selected by keys 1-9.
func KeyAction(r rune) (a Action, arg int) {
	switch r {
	case 'p', 'P':
		return ActionPipePlace, 0
	case 'o', 'O':
		return ActionPipeErase, 0
	case KeyEscape:
		return ActionToolNone, 0
	case KeyBackspace, KeyDelete:
		return ActionToggleGrid, 0
	case 'e', 'E':
		return ActionToggleEngineering, 0
	case 'm', 'M':
		return ActionCycleOverlay, 0
	case 'x', 'X':
		return ActionClearOverlay, 0
	case KeyTab:
		return ActionNextMap, 0
	case 'r', 'R':
		return ActionReset, 0
	case 'q', 'Q':
		return ActionQuit, 0
	}
	if r >= '1' && r <= '9' {
		return ActionBrush, int(r - '1')
	}
	return ActionNone, 0
}

// Controls is the presentation state the keyboard edits: the selected tool
// and the debug grid. Status holds the last feedback line for the HUD.
type Controls struct {
	Tool   engine.Tool
	Grid   *DebugGrid
	Status string
}

// NewControls starts with no tool selected
func NewControls(cfg *engine.MapConfig) *Controls {
	return &Controls{
		Grid: NewDebugGrid(cfg.DebugGrid),
	}
}

// Handle applies an action to the controls and the engine. ActionNextMap and
// ActionQuit are left to the front end and reported through the return value.
func (c *Controls) Handle(a Action, arg int, e engine.Engine) (handled bool) {
	switch a {
	case ActionPipePlace:
		c.Tool = engine.ToolPipePlace
	case ActionPipeErase:
		c.Tool = engine.ToolPipeErase
	case ActionToolNone:
		c.Tool = engine.ToolNone
	case ActionToggleGrid:
		c.Status = fmt.Sprintf("debug grid %s", onOff(c.Grid.Toggle()))
	case ActionToggleEngineering:
		c.Status = fmt.Sprintf("engineering view %s", onOff(e.ToggleEngineering()))
	case ActionCycleOverlay:
		c.Status = fmt.Sprintf("overlay brush %s", e.CycleOverlayBrush())
	case ActionBrush:
		brushes := e.Catalog().Brushes(catalog.LayerBase)
		if arg < 0 || arg >= len(brushes) {
			c.Status = fmt.Sprintf("no base brush %d", arg+1)
			return true
		}
		if err := e.SetBrush(brushes[arg]); err != nil {
			c.Status = err.Error()
			return true
		}
		c.Status = fmt.Sprintf("base brush %s", brushes[arg])
	case ActionClearOverlay:
		cell, ok := e.Cursor()
		if !ok {
			c.Status = "no cell under cursor"
			return true
		}
		if err := e.Apply(engine.RemoveTile{X: cell.X, Y: cell.Y, Layer: catalog.LayerOverlay}); err != nil {
			c.Status = err.Error()
			return true
		}
		c.Status = fmt.Sprintf("cleared overlay at %v", cell)
	case ActionReset:
		e.Reset()
		c.Status = "map cleared"
	default:
		return false
	}
	return true
}

// HUD returns the status lines shown on top of the map
func (c *Controls) HUD(e engine.Engine) []string {
	st := e.Stats()
	cursor := "-"
	if cell, ok := e.Cursor(); ok {
		cursor = cell.String()
	}
	lines := []string{
		fmt.Sprintf("map %s %dx%d  tool %s  brush %s/%s", st.Map, st.Size.W, st.Size.H, c.Tool, st.BaseBrush, st.Overlay),
		fmt.Sprintf("pipes %d  cursor %s", st.Pipes, cursor),
	}
	if c.Status != "" {
		lines = append(lines, c.Status)
	}
	return lines
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
