// Package view holds the front-end independent presentation state: the 2D
// camera, the debug grid overlay, key bindings and the HUD text. Both the
// desktop and the terminal front ends drive the engine through it.
package view

import (
	"math"

	"github.com/wricardo/mcp-training/pipeworks/game/engine"
	"github.com/wricardo/mcp-training/pipeworks/game/grid"
)

// Camera looks at the world from (X, Y), the world position under the
// viewport center. Zoom is screen pixels per world unit.
type Camera struct {
	X, Y     float64
	Zoom     float64
	ZoomMin  float64
	ZoomMax  float64
	PanSpeed float64
}

// NewCamera creates a camera at zoom 1 bounded by cfg
func NewCamera(cfg engine.CameraConfig) *Camera {
	c := &Camera{
		Zoom:     1,
		ZoomMin:  cfg.ZoomMin,
		ZoomMax:  cfg.ZoomMax,
		PanSpeed: cfg.PanSpeed,
	}
	c.Zoom = c.clampZoom(c.Zoom)
	return c
}

// CenterOn moves the camera to the middle of a map
func (c *Camera) CenterOn(size grid.Size, tileSize float64) {
	c.X = float64(size.W) * tileSize / 2
	c.Y = float64(size.H) * tileSize / 2
}

// ZoomBy applies a wheel scroll. Each unit scales the visible world area by
// 1 - scroll*0.1, so scrolling up zooms in.
func (c *Camera) ZoomBy(scroll float64) {
	if scroll == 0 {
		return
	}
	factor := 1 - scroll*0.1
	if factor < 0.1 {
		factor = 0.1
	}
	c.Zoom = c.clampZoom(c.Zoom / factor)
}

func (c *Camera) clampZoom(z float64) float64 {
	if c.ZoomMin > 0 && z < c.ZoomMin {
		return c.ZoomMin
	}
	if c.ZoomMax > 0 && z > c.ZoomMax {
		return c.ZoomMax
	}
	return z
}

// Pan moves the camera along (dx, dy) for dt seconds at PanSpeed world units
// per second. The direction is normalized so diagonals are not faster.
// Screen y grows downward: dy < 0 moves the view up.
func (c *Camera) Pan(dx, dy float64, dt float64) {
	l := math.Hypot(dx, dy)
	if l == 0 || dt <= 0 {
		return
	}
	step := c.PanSpeed * dt / l
	c.X += dx * step
	c.Y += dy * step
}

// ScreenToWorld converts a screen position inside a viewport of vw x vh
// pixels to world units
func (c *Camera) ScreenToWorld(sx, sy, vw, vh float64) grid.Point {
	return grid.Point{
		X: c.X + (sx-vw/2)/c.Zoom,
		Y: c.Y + (sy-vh/2)/c.Zoom,
	}
}

// WorldToScreen is the inverse of ScreenToWorld
func (c *Camera) WorldToScreen(p grid.Point, vw, vh float64) (sx, sy float64) {
	sx = (p.X-c.X)*c.Zoom + vw/2
	sy = (p.Y-c.Y)*c.Zoom + vh/2
	return
}
