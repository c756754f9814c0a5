// Package desktop is the windowed front end, built on ebiten. It turns
// keyboard, mouse and wheel state into view actions and engine frame input,
// then draws the visible tile layers, the debug grid and the HUD.
package desktop

import (
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/wricardo/mcp-training/pipeworks/game/engine"
	"github.com/wricardo/mcp-training/pipeworks/game/grid"
	"github.com/wricardo/mcp-training/pipeworks/game/session"
	"github.com/wricardo/mcp-training/pipeworks/game/tilemap"
	"github.com/wricardo/mcp-training/pipeworks/game/view"
)

const (
	screenWidth   = 1024
	screenHeight  = 768
	hudLineHeight = 16
	hudMargin     = 8
)

var (
	background  = color.RGBA{24, 24, 28, 255}
	mapBounds   = color.RGBA{70, 70, 80, 255}
	cursorColor = color.RGBA{255, 220, 0, 200}
)

// Game implements ebiten.Game over the session manager. Exactly one session
// is active; Tab moves to the next map config.
type Game struct {
	sessions *session.Manager
	current  *session.Session
	width    int
	height   int
}

// NewGame creates the desktop game showing start
func NewGame(sessions *session.Manager, start *session.Session) *Game {
	return &Game{
		sessions: sessions,
		current:  start,
		width:    screenWidth,
		height:   screenHeight,
	}
}

// Run opens the window and blocks until the player quits
func Run(sessions *session.Manager, start *session.Session) error {
	game := NewGame(sessions, start)

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("Pipeworks - " + start.Config.Name)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	return ebiten.RunGame(game)
}

// Update handles one frame of input
func (g *Game) Update() error {
	for _, k := range inpututil.AppendJustPressedKeys(nil) {
		r, ok := keyRune(k)
		if !ok {
			continue
		}
		a, arg := view.KeyAction(r)
		switch a {
		case view.ActionQuit:
			return ebiten.Termination
		case view.ActionNextMap:
			g.nextMap()
		default:
			g.current.Controls.Handle(a, arg, g.current.Engine)
		}
	}

	s := g.current
	g.pan(s.Camera)
	if _, wy := ebiten.Wheel(); wy != 0 {
		s.Camera.ZoomBy(wy)
	}

	cx, cy := ebiten.CursorPosition()
	primary := engine.Buttons{
		JustPressed:  inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		Held:         ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		JustReleased: inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
	}
	secondary := inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight)

	s.Engine.Update(buildInput(s.Controls.Tool, s.Camera, cx, cy, g.width, g.height, primary, secondary))
	return nil
}

func (g *Game) nextMap() {
	next, err := g.sessions.Next(g.current)
	if err != nil {
		log.Printf("Failed to switch map: %v", err)
		g.current.Controls.Status = err.Error()
		return
	}
	g.current = next
	ebiten.SetWindowTitle("Pipeworks - " + next.Config.Name)
}

func (g *Game) pan(cam *view.Camera) {
	var dx, dy float64
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		dy--
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		dy++
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		dx--
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		dx++
	}
	cam.Pan(dx, dy, 1/float64(ebiten.TPS()))
}

// Draw renders the active session
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)

	s := g.current
	ts := s.Config.TileSize
	vw, vh := float64(g.width), float64(g.height)
	cell := ts * s.Camera.Zoom

	ox, oy := s.Camera.WorldToScreen(grid.Point{}, vw, vh)
	size := s.Engine.Map().Size()
	vector.StrokeRect(screen, float32(ox), float32(oy), float32(float64(size.W)*cell), float32(float64(size.H)*cell), 1, mapBounds, false)

	reg := s.Engine.Layers()
	for _, name := range tilemap.DrawOrder {
		layer, ok := reg.TileLayer(name)
		if !ok || !layer.Visible() {
			continue
		}
		pipe := isPipeLayer(name)
		layer.Each(func(c grid.Cell, t tilemap.Tile) {
			x, y := s.Camera.WorldToScreen(grid.CellOrigin(c, ts), vw, vh)
			if !pipe {
				ebitenutil.DrawRect(screen, x, y, cell, cell, t.Color)
				return
			}
			for _, r := range pipeRects(t.Mask) {
				ebitenutil.DrawRect(screen, x+r.X*cell, y+r.Y*cell, r.W*cell, r.H*cell, t.Color)
			}
		})
	}

	if s.Controls.Grid.Enabled {
		for _, l := range s.Controls.Grid.Lines(size, ts) {
			x0, y0 := s.Camera.WorldToScreen(grid.Point{X: l.X0, Y: l.Y0}, vw, vh)
			x1, y1 := s.Camera.WorldToScreen(grid.Point{X: l.X1, Y: l.Y1}, vw, vh)
			vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1), float32(s.Controls.Grid.Thickness), s.Controls.Grid.Color, false)
		}
	}

	if c, ok := s.Engine.Cursor(); ok && s.Controls.Tool != engine.ToolNone {
		x, y := s.Camera.WorldToScreen(grid.CellOrigin(c, ts), vw, vh)
		vector.StrokeRect(screen, float32(x), float32(y), float32(cell), float32(cell), 2, cursorColor, false)
	}

	for i, line := range s.Controls.HUD(s.Engine) {
		ebitenutil.DebugPrintAt(screen, line, hudMargin, hudMargin+i*hudLineHeight)
	}
}

// Layout follows the window size so the map is never stretched
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.width, g.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// buildInput converts a cursor position in a w x h viewport into engine
// frame input. A cursor outside the viewport reports no cursor.
func buildInput(tool engine.Tool, cam *view.Camera, cx, cy, w, h int, primary engine.Buttons, secondary bool) engine.FrameInput {
	in := engine.FrameInput{
		Tool:                 tool,
		Primary:              primary,
		SecondaryJustPressed: secondary,
	}
	if cx >= 0 && cy >= 0 && cx < w && cy < h {
		in.Cursor = cam.ScreenToWorld(float64(cx), float64(cy), float64(w), float64(h))
		in.HasCursor = true
	}
	return in
}

func isPipeLayer(name string) bool {
	return name == tilemap.LayerPipes || name == tilemap.LayerPipesEngineering
}
