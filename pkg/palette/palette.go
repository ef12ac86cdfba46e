// Package palette defines the fixed color table for the neuro aesthetic:
// deep blues, violets, and azure tones used as blend targets by the
// effect stages and overlay rendering.
//
// The palette is an immutable value passed explicitly into the stages
// that need it. Stages never reach into package-level state, so tests
// and callers can substitute alternative palettes.
package palette

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is an 8-bit RGB triple.
type Color struct {
	R, G, B uint8
}

// Colorful converts c to a go-colorful color for blend math.
func (c Color) Colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}

// Hex returns the #rrggbb representation.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Palette is the named color table used across the toolkit.
type Palette struct {
	DeepNight Color // base of the night gradient
	Violet    Color // top of the night gradient
	Azure     Color // photonic noise sparkle
	Purple    Color // accent
	DarkBlue  Color // accent
}

// Default returns the standard neuro palette.
func Default() Palette {
	return Palette{
		DeepNight: Color{0x03, 0x0b, 0x18},
		Violet:    Color{0x7d, 0x5b, 0xff},
		Azure:     Color{0x4f, 0xd1, 0xc5},
		Purple:    Color{0x8b, 0x5c, 0xf6},
		DarkBlue:  Color{0x1e, 0x3a, 0x8a},
	}
}

// Gradient returns n colors linearly interpolated from a to b in RGB
// space. The first entry is exactly a and the last exactly b. It is
// used by the color-shift stage to precompute its horizontal lookup
// table once per frame width.
func Gradient(a, b Color, n int) []Color {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []Color{a}
	}
	ca, cb := a.Colorful(), b.Colorful()
	out := make([]Color, n)
	for i := range out {
		t := float64(i) / float64(n-1)
		m := ca.BlendRgb(cb, t)
		out[i] = Color{
			R: uint8(m.R*255 + 0.5),
			G: uint8(m.G*255 + 0.5),
			B: uint8(m.B*255 + 0.5),
		}
	}
	return out
}
