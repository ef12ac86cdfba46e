package effects

import (
	"math"

	"github.com/mirrorlight/neuro/pkg/frame"
	"github.com/mirrorlight/neuro/pkg/palette"
)

// ColorShift blends every frame toward a horizontal gradient between
// two palette colors. The blend weight pulses over time so the grading
// breathes instead of sitting flat on the footage.
type ColorShift struct {
	From palette.Color
	To   palette.Color
}

// NewColorShift grades toward the deep-night-to-violet ramp of pal.
func NewColorShift(pal palette.Palette) ColorShift {
	return ColorShift{From: pal.DeepNight, To: pal.Violet}
}

func (ColorShift) Name() string { return "color_shift" }

// Apply blends f toward the gradient with weight 0.4·pulse, where
// pulse = 0.5 + 0.3·sin(0.5t).
func (s ColorShift) Apply(f *frame.Frame, t float64) (*frame.Frame, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	pulse := 0.5 + 0.3*math.Sin(0.5*t)
	weight := 0.4 * pulse

	ramp := palette.Gradient(s.From, s.To, f.Width)
	out := f.Clone()
	i := 0
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			c := ramp[x]
			out.Pix[i] = frame.ClampU8(float64(f.Pix[i])*(1-weight) + float64(c.R)*weight)
			out.Pix[i+1] = frame.ClampU8(float64(f.Pix[i+1])*(1-weight) + float64(c.G)*weight)
			out.Pix[i+2] = frame.ClampU8(float64(f.Pix[i+2])*(1-weight) + float64(c.B)*weight)
			i += frame.Channels
		}
	}
	return out, nil
}
