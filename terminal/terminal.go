// Package terminal is the text front end, built on tcell. Each screen
// character shows one world sample, so at zoom 1 a tile is one character.
// Pipes are drawn with box-drawing glyphs chosen by their connectivity mask.
package terminal

import (
	"fmt"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/wricardo/mcp-training/pipeworks/game/engine"
	"github.com/wricardo/mcp-training/pipeworks/game/grid"
	"github.com/wricardo/mcp-training/pipeworks/game/session"
	"github.com/wricardo/mcp-training/pipeworks/game/view"
)

const (
	frameInterval = time.Second / 30
	// seconds of camera travel per arrow or WASD key press
	panStep = 0.125
)

// App drives one tcell screen. Events are applied as they arrive; the engine
// advances once per frame.
type App struct {
	screen   tcell.Screen
	sessions *session.Manager
	current  *session.Session

	mouseX, mouseY int
	hasMouse       bool
	held           bool
	pressed        bool
	released       bool
	secondary      bool
	secondaryHeld  bool
}

// New creates an app on an initialized screen
func New(screen tcell.Screen, sessions *session.Manager, start *session.Session) *App {
	return &App{
		screen:   screen,
		sessions: sessions,
		current:  start,
	}
}

// Run takes over the terminal until the player quits
func Run(sessions *session.Manager, start *session.Session) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	defer screen.Fini()

	screen.EnableMouse()
	screen.Clear()

	return New(screen, sessions, start).Loop()
}

// Loop pumps screen events and renders frames until quit
func (a *App) Loop() error {
	events := make(chan tcell.Event, 64)
	quit := make(chan struct{})
	go a.screen.ChannelEvents(events, quit)
	defer close(quit)

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	a.Frame()
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !a.Handle(ev) {
				return nil
			}
		case <-ticker.C:
			a.Frame()
		}
	}
}

// Session returns the session on screen
func (a *App) Session() *session.Session {
	return a.current
}

// Handle applies one screen event. It returns false when the player quits.
func (a *App) Handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
	case *tcell.EventKey:
		return a.handleKey(ev)
	case *tcell.EventMouse:
		a.handleMouse(ev)
	}
	return true
}

func (a *App) handleKey(ev *tcell.EventKey) bool {
	s := a.current
	switch ev.Key() {
	case tcell.KeyCtrlC:
		return false
	case tcell.KeyUp:
		s.Camera.Pan(0, -1, panStep)
		return true
	case tcell.KeyDown:
		s.Camera.Pan(0, 1, panStep)
		return true
	case tcell.KeyLeft:
		s.Camera.Pan(-1, 0, panStep)
		return true
	case tcell.KeyRight:
		s.Camera.Pan(1, 0, panStep)
		return true
	}

	r, ok := keyRune(ev)
	if !ok {
		return true
	}
	switch r {
	case 'w', 'W':
		s.Camera.Pan(0, -1, panStep)
		return true
	case 's', 'S':
		s.Camera.Pan(0, 1, panStep)
		return true
	case 'a', 'A':
		s.Camera.Pan(-1, 0, panStep)
		return true
	case 'd', 'D':
		s.Camera.Pan(1, 0, panStep)
		return true
	case '+', '=':
		s.Camera.ZoomBy(1)
		return true
	case '-':
		s.Camera.ZoomBy(-1)
		return true
	}

	action, arg := view.KeyAction(r)
	switch action {
	case view.ActionQuit:
		return false
	case view.ActionNextMap:
		a.nextMap()
	default:
		s.Controls.Handle(action, arg, s.Engine)
	}
	return true
}

// keyRune maps a key event to the rune view.KeyAction understands
func keyRune(ev *tcell.EventKey) (rune, bool) {
	switch ev.Key() {
	case tcell.KeyRune:
		return ev.Rune(), true
	case tcell.KeyEscape:
		return view.KeyEscape, true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return view.KeyBackspace, true
	case tcell.KeyDelete:
		return view.KeyDelete, true
	case tcell.KeyTab:
		return view.KeyTab, true
	}
	return 0, false
}

func (a *App) handleMouse(ev *tcell.EventMouse) {
	a.mouseX, a.mouseY = ev.Position()
	w, h := a.screen.Size()
	a.hasMouse = a.mouseX >= 0 && a.mouseY >= 0 && a.mouseX < w && a.mouseY < h

	buttons := ev.Buttons()
	held := buttons&tcell.Button1 != 0
	if held && !a.held {
		a.pressed = true
	}
	if !held && a.held {
		a.released = true
	}
	a.held = held

	right := buttons&tcell.Button2 != 0
	if right && !a.secondaryHeld {
		a.secondary = true
	}
	a.secondaryHeld = right

	switch {
	case buttons&tcell.WheelUp != 0:
		a.current.Camera.ZoomBy(1)
	case buttons&tcell.WheelDown != 0:
		a.current.Camera.ZoomBy(-1)
	}
}

func (a *App) nextMap() {
	next, err := a.sessions.Next(a.current)
	if err != nil {
		log.Printf("Failed to switch map: %v", err)
		a.current.Controls.Status = err.Error()
		return
	}
	a.current = next
	a.screen.Clear()
}

// Frame advances the engine with the input gathered since the last frame
// and redraws the screen.
func (a *App) Frame() {
	s := a.current
	in := engine.FrameInput{
		Tool: s.Controls.Tool,
		Primary: engine.Buttons{
			JustPressed:  a.pressed,
			Held:         a.held,
			JustReleased: a.released,
		},
		SecondaryJustPressed: a.secondary,
	}
	if a.hasMouse {
		in.Cursor = a.toWorld(float64(a.mouseX)+0.5, float64(a.mouseY)+0.5)
		in.HasCursor = true
	}
	a.pressed, a.released, a.secondary = false, false, false

	s.Engine.Update(in)
	a.draw()
}

// toWorld maps a character position to world units. Characters are scaled
// to one tile each so the camera zoom reads the same as on the desktop.
func (a *App) toWorld(sx, sy float64) grid.Point {
	w, h := a.screen.Size()
	ts := a.current.Config.TileSize
	return a.current.Camera.ScreenToWorld(sx*ts, sy*ts, float64(w)*ts, float64(h)*ts)
}

func (a *App) draw() {
	s := a.current
	w, h := a.screen.Size()
	size := s.Engine.Map().Size()
	ts := s.Config.TileSize
	cursor, hasCursor := s.Engine.Cursor()
	hasCursor = hasCursor && s.Controls.Tool != engine.ToolNone

	for sy := 0; sy < h; sy++ {
		for sx := 0; sx < w; sx++ {
			p := a.toWorld(float64(sx)+0.5, float64(sy)+0.5)
			c, ok := grid.CellFromWorld(p, ts, size)
			if !ok {
				a.screen.SetContent(sx, sy, ' ', nil, tcell.StyleDefault)
				continue
			}
			glyph, style := cellGlyph(s.Engine.Layers(), c, s.Controls.Grid.Enabled)
			if hasCursor && c == cursor {
				style = style.Reverse(true)
			}
			a.screen.SetContent(sx, sy, glyph, nil, style)
		}
	}

	hud := tcell.StyleDefault.Foreground(tcell.ColorYellow).Background(tcell.ColorBlack)
	for i, line := range s.Controls.HUD(s.Engine) {
		drawText(a.screen, 0, i, hud, line)
	}
	a.screen.Show()
}

func drawText(screen tcell.Screen, x, y int, style tcell.Style, text string) {
	for _, r := range text {
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}
