// Package overlay applies emotion-colored overlays to frames. A
// timeline of segments maps timestamps to a color, shape and intensity;
// the engine alpha-blends the selected overlay onto the frame either as
// a flat tint or through a radial falloff mask.
package overlay

import (
	"strconv"
	"strings"

	"github.com/mirrorlight/neuro/pkg/errors"
)

// Color is an RGBA quad. Alpha encodes the blend strength baked into
// the color itself, independent of a segment's intensity multiplier.
type Color struct {
	R, G, B, A uint8
}

// ParseHex parses an RRGGBBAA hex color with an optional leading '#',
// case-insensitive.
func ParseHex(s string) (Color, error) {
	digits := strings.TrimPrefix(s, "#")
	if len(digits) != 8 {
		return Color{}, errors.New(errors.ErrCodeInvalidColor, "hex color %q must have exactly 8 hex digits", s)
	}
	v, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return Color{}, errors.New(errors.ErrCodeInvalidColor, "invalid hex color %q", s)
	}
	return Color{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}

// Hex returns the #rrggbbaa representation.
func (c Color) Hex() string {
	const hexdigits = "0123456789abcdef"
	b := make([]byte, 0, 9)
	b = append(b, '#')
	for _, v := range []uint8{c.R, c.G, c.B, c.A} {
		b = append(b, hexdigits[v>>4], hexdigits[v&0xf])
	}
	return string(b)
}
