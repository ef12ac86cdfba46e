// Package mask generates per-pixel visibility fields from declarative
// shape parameters: the eyelid-shaped blink mask used by clip
// transitions and the radial falloff used by overlays.
//
// A field is an ephemeral float slice in [0,1] with the same dimensions
// as the frame it will be composited over; it is never persisted.
package mask

import (
	"math"

	"github.com/mirrorlight/neuro/pkg/easing"
	"github.com/mirrorlight/neuro/pkg/errors"
)

// Field is a width×height visibility field with values in [0,1].
type Field struct {
	Width  int
	Height int
	Values []float64
}

// At returns the visibility at (x, y).
func (f *Field) At(x, y int) float64 {
	return f.Values[y*f.Width+x]
}

// Eyelid produces an eyelid-shaped visibility field. At progress 0 the
// eye is fully open (visibility 1 along the center row); as progress
// approaches 1 the gap between the lids narrows to nothing. Opening and
// closing share this one formula: callers animate a blink purely by how
// they map time to progress.
//
// The lid edge follows an ellipse, so the lids meet sooner at the
// horizontal edges than at the center.
func Eyelid(width, height int, progress float64) (*Field, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "mask dimensions must be positive, got %dx%d", width, height)
	}
	progress = easing.Clamp01(progress)

	centerX := float64(width) / 2
	centerY := float64(height) / 2
	rx := float64(width) * 0.5
	maxGap := float64(height) * 0.6
	gap := maxGap * (1 - progress)

	f := &Field{Width: width, Height: height, Values: make([]float64, width*height)}
	for y := 0; y < height; y++ {
		distY := math.Abs(float64(y) - centerY)
		for x := 0; x < width; x++ {
			distX := math.Abs(float64(x) - centerX)

			dx := distX / rx
			sq := dx * dx
			if sq > 1 {
				sq = 1
			}
			ellipse := math.Sqrt(1 - sq)
			effectiveGap := gap * (0.3 + 0.7*ellipse)

			over := distY - effectiveGap
			if over < 0 {
				over = 0
			}
			vis := 1 - over/(effectiveGap*0.5+1)
			vis = easing.Clamp01(vis)
			f.Values[y*width+x] = easing.Smoothstep(vis)
		}
	}
	return f, nil
}
