package mask

import (
	"math"

	"github.com/mirrorlight/neuro/pkg/errors"
)

// radialExponent shapes the radial falloff; 1.5 gives a softer knee
// than plain linear falloff.
const radialExponent = 1.5

// Radial produces a falloff field centered on the frame: 1 at the
// center, decaying to 0 at the corners as (1 − d/dmax)^1.5.
func Radial(width, height int) (*Field, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "mask dimensions must be positive, got %dx%d", width, height)
	}
	centerX := float64(width) / 2
	centerY := float64(height) / 2
	maxDist := math.Hypot(centerX, centerY)

	f := &Field{Width: width, Height: height, Values: make([]float64, width*height)}
	for y := 0; y < height; y++ {
		dy := float64(y) - centerY
		for x := 0; x < width; x++ {
			dx := float64(x) - centerX
			d := math.Hypot(dx, dy)
			v := 1 - d/maxDist
			if v < 0 {
				v = 0
			}
			f.Values[y*width+x] = math.Pow(v, radialExponent)
		}
	}
	return f, nil
}
