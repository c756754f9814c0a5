package engine

import (
	"fmt"

	"github.com/wricardo/mcp-training/pipeworks/game/catalog"
)

// ValidateMapConfig validates a map configuration
func ValidateMapConfig(config *MapConfig) error {
	if config == nil {
		return fmt.Errorf("config validation: config is nil")
	}
	if config.Name == "" {
		return fmt.Errorf("config validation: name is required")
	}

	if config.Width < MinMapSize || config.Width > MaxMapSize {
		return fmt.Errorf("config validation: width must be between %d and %d, got %d", MinMapSize, MaxMapSize, config.Width)
	}
	if config.Height < MinMapSize || config.Height > MaxMapSize {
		return fmt.Errorf("config validation: height must be between %d and %d, got %d", MinMapSize, MaxMapSize, config.Height)
	}
	if config.TileSize < 0 {
		return fmt.Errorf("config validation: tile_size must be positive, got %g", config.TileSize)
	}

	for name, c := range map[string]catalog.Color{
		"pipe_colors.normal":      config.PipeColors.Normal,
		"pipe_colors.engineering": config.PipeColors.Engineering,
		"debug_grid.color":        config.DebugGrid.Color,
	} {
		if !c.Valid() {
			return fmt.Errorf("config validation: %s components must be within [0,1]", name)
		}
	}
	if config.DebugGrid.Thickness < 0 {
		return fmt.Errorf("config validation: debug_grid.thickness must not be negative")
	}

	cam := config.Camera
	if cam.ZoomMin < 0 || cam.ZoomMax < 0 || cam.PanSpeed < 0 {
		return fmt.Errorf("config validation: camera values must not be negative")
	}
	// Compare the limits the camera will actually use
	zoomMin, zoomMax := cam.ZoomMin, cam.ZoomMax
	if zoomMin == 0 {
		zoomMin = DefaultZoomMin
	}
	if zoomMax == 0 {
		zoomMax = DefaultZoomMax
	}
	if zoomMin > zoomMax {
		return fmt.Errorf("config validation: camera.zoom_min (%g) exceeds zoom_max (%g)", zoomMin, zoomMax)
	}

	return nil
}

// ApplyDefaults fills unset optional fields. Zero colors count as unset.
func ApplyDefaults(config *MapConfig) {
	if config.TileSize == 0 {
		config.TileSize = DefaultTileSize
	}
	if config.PipeColors.Normal == catalog.Transparent {
		config.PipeColors.Normal = DefaultPipeColor
	}
	if config.PipeColors.Engineering == catalog.Transparent {
		config.PipeColors.Engineering = DefaultEngineeringColor
	}
	if config.DebugGrid.Color == catalog.Transparent {
		config.DebugGrid.Color = DefaultGridColor
	}
	if config.DebugGrid.Thickness == 0 {
		config.DebugGrid.Thickness = 1
	}
	if config.Camera.ZoomMin == 0 {
		config.Camera.ZoomMin = DefaultZoomMin
	}
	if config.Camera.ZoomMax == 0 {
		config.Camera.ZoomMax = DefaultZoomMax
	}
	if config.Camera.PanSpeed == 0 {
		config.Camera.PanSpeed = DefaultPanSpeed
	}
}

// DefaultMapConfig returns the built-in map used when no config files exist.
func DefaultMapConfig() *MapConfig {
	config := &MapConfig{
		Name:        "default",
		Description: "Default minimal configuration",
		Width:       32,
		Height:      24,
	}
	ApplyDefaults(config)
	return config
}
