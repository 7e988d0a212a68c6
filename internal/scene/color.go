package scene

import (
	"image/color"

	"github.com/chewxy/math32"
)

// Color represents an RGBA color with float components (0.0 to 1.0).
type Color struct {
	R, G, B, A float32
}

// Scene palette.
var (
	ColorWhite     = Color{1, 1, 1, 1}
	ColorRed       = Color{1, 0, 0, 1}
	ColorGreen     = Color{0, 1, 0, 1}
	ColorBlue      = Color{0, 0, 1, 1}
	ColorTooth     = Hex(0xfefefe)
	ColorLabel     = Hex(0xdc2626)
	ColorHemiGrnd  = Hex(0xeeeeee)
	ColorSelection = Hex(0xff0000)
	ColorXray      = Hex(0x00ff00)
	ColorPlane     = Hex(0x00ff00)
)

// RGB creates a color from 8-bit RGB values with full alpha.
func RGB(r, g, b uint8) Color {
	return Color{
		R: float32(r) / 255.0,
		G: float32(g) / 255.0,
		B: float32(b) / 255.0,
		A: 1.0,
	}
}

// Hex creates an opaque color from 0xRRGGBB.
func Hex(v uint32) Color {
	return RGB(uint8(v>>16), uint8(v>>8), uint8(v))
}

// HSL creates an opaque color from hue in degrees and saturation and
// lightness in [0, 1].
func HSL(h, s, l float32) Color {
	h = math32.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	c := (1 - math32.Abs(2*l-1)) * s
	x := c * (1 - math32.Abs(math32.Mod(h/60, 2)-1))
	m := l - c/2

	var r, g, b float32
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return Color{r + m, g + m, b + m, 1}
}

// SegmentColor is the deterministic color of segment i: golden-angle hue
// steps at 70% saturation and lightness.
func SegmentColor(i int) Color {
	return HSL(math32.Mod(float32(i)*137.5, 360), 0.7, 0.7)
}

// WithAlpha returns a copy of the color with a different alpha value.
func (c Color) WithAlpha(a float32) Color {
	return Color{c.R, c.G, c.B, a}
}

// NRGBA converts to an 8-bit non-premultiplied color.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: to8(c.R),
		G: to8(c.G),
		B: to8(c.B),
		A: to8(c.A),
	}
}

func to8(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
