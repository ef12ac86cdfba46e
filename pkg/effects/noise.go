package effects

import (
	"math"
	"math/rand"
	"time"

	"github.com/mirrorlight/neuro/pkg/frame"
	"github.com/mirrorlight/neuro/pkg/palette"
)

// DefaultNoiseDensity is the fraction of pixels seeded with a photonic
// point per frame.
const DefaultNoiseDensity = 0.008

// PhotonicNoise scatters glowing points across the frame. Points drift
// on a sinusoidal path driven by the timestamp and wrap around the
// frame edges. A zero density disables the stage.
//
// Rand is the source of point placement; nil picks a time-seeded
// source, so repeated runs are not reproducible unless the caller
// supplies a seeded one.
type PhotonicNoise struct {
	Density float64
	Color   palette.Color
	Rand    *rand.Rand
}

// NewPhotonicNoise sparkles with the azure of pal at the given density.
func NewPhotonicNoise(pal palette.Palette, density float64, rng *rand.Rand) PhotonicNoise {
	return PhotonicNoise{Density: density, Color: pal.Azure, Rand: rng}
}

func (PhotonicNoise) Name() string { return "photonic_noise" }

func (s PhotonicNoise) Apply(f *frame.Frame, t float64) (*frame.Frame, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	out := f.Clone()
	points := int(math.Ceil(float64(f.Height*f.Width) * s.Density))
	if points == 0 {
		return out, nil
	}

	rng := s.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	addR := float64(s.Color.R) * 0.3
	addG := float64(s.Color.G) * 0.3
	addB := float64(s.Color.B) * 0.3
	for n := 0; n < points; n++ {
		x := rng.Intn(f.Width)
		y := rng.Intn(f.Height)

		offsetX := int(5 * math.Sin(2*t+float64(y)*0.01))
		offsetY := int(5 * math.Cos(2*t+float64(x)*0.01))
		px := ((x+offsetX)%f.Width + f.Width) % f.Width
		py := ((y+offsetY)%f.Height + f.Height) % f.Height

		r, g, b := out.At(px, py)
		out.Set(px, py,
			frame.ClampU8(float64(r)+addR),
			frame.ClampU8(float64(g)+addG),
			frame.ClampU8(float64(b)+addB))
	}
	return out, nil
}
