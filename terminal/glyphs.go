package terminal

import (
	"github.com/gdamore/tcell/v2"

	"github.com/wricardo/mcp-training/pipeworks/game/catalog"
	"github.com/wricardo/mcp-training/pipeworks/game/grid"
	"github.com/wricardo/mcp-training/pipeworks/game/tilemap"
)

// pipeGlyphs is indexed by connectivity mask (N=1, E=2, S=4, W=8)
var pipeGlyphs = [16]rune{
	'•', '╵', '╶', '└',
	'╷', '│', '┌', '├',
	'╴', '┘', '─', '┴',
	'┐', '┤', '┬', '┼',
}

const (
	overlayGlyph = '▪'
	gridGlyph    = '·'
)

// pipeGlyph returns the box-drawing rune for a pipe with mask m
func pipeGlyph(m grid.Mask) rune {
	return pipeGlyphs[m&grid.AllSides]
}

// toTcell converts a catalog color, dropping alpha
func toTcell(c catalog.Color) tcell.Color {
	r, g, b, _ := c.Bytes()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// cellGlyph composes the visible layers at c bottom to top. Base tiles paint
// the background; overlay and pipe tiles draw a glyph over it.
func cellGlyph(reg *tilemap.Registry, c grid.Cell, showGrid bool) (rune, tcell.Style) {
	glyph := ' '
	if showGrid {
		glyph = gridGlyph
	}
	style := tcell.StyleDefault

	for _, name := range tilemap.DrawOrder {
		layer, ok := reg.TileLayer(name)
		if !ok || !layer.Visible() {
			continue
		}
		t, ok := layer.Get(c)
		if !ok {
			continue
		}
		switch name {
		case tilemap.LayerBase:
			style = style.Background(toTcell(t.Color))
		case tilemap.LayerOverlay:
			glyph = overlayGlyph
			style = style.Foreground(toTcell(t.Color))
		default:
			glyph = pipeGlyph(t.Mask)
			style = style.Foreground(toTcell(t.Color))
		}
	}
	return glyph, style
}
