package catalog

// Color is a straight-alpha RGBA color with components in [0,1], stored the
// way catalog and config files spell it: [r, g, b, a].
type Color [4]float32

var (
	Transparent = Color{0, 0, 0, 0}
	White       = Color{1, 1, 1, 1}
)

// RGB builds an opaque color
func RGB(r, g, b float32) Color {
	return Color{r, g, b, 1}
}

// RGBA implements image/color.Color so front ends can hand catalog colors
// straight to their drawing APIs. Values are alpha-premultiplied.
func (c Color) RGBA() (r, g, b, a uint32) {
	alpha := clamp01(c[3])
	r = uint32(clamp01(c[0])*alpha*0xffff + 0.5)
	g = uint32(clamp01(c[1])*alpha*0xffff + 0.5)
	b = uint32(clamp01(c[2])*alpha*0xffff + 0.5)
	a = uint32(alpha*0xffff + 0.5)
	return
}

// Bytes returns the straight (non-premultiplied) 8-bit channels.
func (c Color) Bytes() (r, g, b, a uint8) {
	return to8(c[0]), to8(c[1]), to8(c[2]), to8(c[3])
}

// Valid reports whether every component is within [0,1].
func (c Color) Valid() bool {
	for _, v := range c {
		if v < 0 || v > 1 {
			return false
		}
	}
	return true
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func to8(v float32) uint8 {
	return uint8(clamp01(v)*255 + 0.5)
}
