package engine

import (
	"github.com/wricardo/mcp-training/pipeworks/game/catalog"
	"github.com/wricardo/mcp-training/pipeworks/game/grid"
)

// Tool is the active input mode
type Tool int

const (
	ToolNone Tool = iota
	ToolPipePlace
	ToolPipeErase
)

const (
	// Validation constants
	MinMapSize      = 1
	MaxMapSize      = 512
	DefaultTileSize = 16.0
	DefaultZoomMin  = 0.25
	DefaultZoomMax  = 8.0
	DefaultPanSpeed = 400.0
)

var (
	// DefaultPipeColor is the normal pipe view color
	DefaultPipeColor = catalog.White
	// DefaultEngineeringColor is the engineering pipe view color
	DefaultEngineeringColor = catalog.RGB(0.6, 0.9, 1.0)
	// DefaultGridColor is the debug grid line color
	DefaultGridColor = catalog.Color{1, 1, 1, 0.15}
)

// IsPipe reports whether the tool claims the primary button for pipe editing.
func (t Tool) IsPipe() bool {
	return t == ToolPipePlace || t == ToolPipeErase
}

func (t Tool) String() string {
	switch t {
	case ToolPipePlace:
		return "pipe-place"
	case ToolPipeErase:
		return "pipe-erase"
	default:
		return "none"
	}
}

// Buttons is the per-frame state of one pointer button. Held is true on the
// frame the button goes down as well.
type Buttons struct {
	JustPressed  bool
	Held         bool
	JustReleased bool
}

// FrameInput is the snapshot the engine consumes each frame. Front ends
// translate raw device state into this; the engine never reads devices.
type FrameInput struct {
	Tool                 Tool
	Primary              Buttons
	SecondaryJustPressed bool
	// Cursor is in world units; ignored unless HasCursor
	Cursor    grid.Point
	HasCursor bool
}

// PipeColors styles the two pipe views
type PipeColors struct {
	Normal      catalog.Color `json:"normal" yaml:"normal"`
	Engineering catalog.Color `json:"engineering" yaml:"engineering"`
}

// DebugGridConfig configures the cell boundary overlay
type DebugGridConfig struct {
	Enabled   bool          `json:"enabled" yaml:"enabled"`
	Color     catalog.Color `json:"color" yaml:"color"`
	Thickness float64       `json:"thickness" yaml:"thickness"`
}

// CameraConfig bounds the camera
type CameraConfig struct {
	ZoomMin  float64 `json:"zoom_min" yaml:"zoom_min"`
	ZoomMax  float64 `json:"zoom_max" yaml:"zoom_max"`
	PanSpeed float64 `json:"pan_speed" yaml:"pan_speed"`
}

// MapConfig represents a map configuration file
type MapConfig struct {
	Name        string          `json:"name" yaml:"name"`
	Description string          `json:"description" yaml:"description"`
	Width       int             `json:"width" yaml:"width"`
	Height      int             `json:"height" yaml:"height"`
	TileSize    float64         `json:"tile_size" yaml:"tile_size"`
	Catalog     string          `json:"catalog,omitempty" yaml:"catalog,omitempty"`
	PipeColors  PipeColors      `json:"pipe_colors" yaml:"pipe_colors"`
	DebugGrid   DebugGridConfig `json:"debug_grid" yaml:"debug_grid"`
	Camera      CameraConfig    `json:"camera" yaml:"camera"`
}

// Size returns the map dimensions
func (c *MapConfig) Size() grid.Size {
	return grid.Size{W: c.Width, H: c.Height}
}

// Stats is a point-in-time summary for HUDs and logs
type Stats struct {
	Map       string
	Size      grid.Size
	Pipes     int
	Version   uint64
	Resolves  int
	Upserted  int
	Removed   int
	Skipped   int
	Dragging  bool
	BaseBrush catalog.TileID
	Overlay   catalog.TileID
}
