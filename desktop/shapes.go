package desktop

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/wricardo/mcp-training/pipeworks/game/grid"
	"github.com/wricardo/mcp-training/pipeworks/game/view"
)

// rect is a rectangle in unit cell coordinates, origin top-left
type rect struct {
	X, Y, W, H float64
}

const third = 1.0 / 3

// pipeRects returns the pieces of a pipe tile: a center hub plus one arm
// toward each connected side. An isolated pipe is just the hub.
func pipeRects(m grid.Mask) []rect {
	rects := []rect{{X: third, Y: third, W: third, H: third}}
	if m.Has(grid.North) {
		rects = append(rects, rect{X: third, Y: 0, W: third, H: third})
	}
	if m.Has(grid.East) {
		rects = append(rects, rect{X: 2 * third, Y: third, W: third, H: third})
	}
	if m.Has(grid.South) {
		rects = append(rects, rect{X: third, Y: 2 * third, W: third, H: third})
	}
	if m.Has(grid.West) {
		rects = append(rects, rect{X: 0, Y: third, W: third, H: third})
	}
	return rects
}

var keyRunes = map[ebiten.Key]rune{
	ebiten.KeyP:         'p',
	ebiten.KeyO:         'o',
	ebiten.KeyE:         'e',
	ebiten.KeyM:         'm',
	ebiten.KeyX:         'x',
	ebiten.KeyR:         'r',
	ebiten.KeyQ:         'q',
	ebiten.KeyEscape:    view.KeyEscape,
	ebiten.KeyBackspace: view.KeyBackspace,
	ebiten.KeyDelete:    view.KeyDelete,
	ebiten.KeyTab:       view.KeyTab,
}

// keyRune maps an ebiten key to the rune view.KeyAction understands
func keyRune(k ebiten.Key) (rune, bool) {
	if k >= ebiten.Key1 && k <= ebiten.Key9 {
		return '1' + rune(k-ebiten.Key1), true
	}
	r, ok := keyRunes[k]
	return r, ok
}
