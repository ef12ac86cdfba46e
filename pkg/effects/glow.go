package effects

import (
	"github.com/disintegration/imaging"

	"github.com/mirrorlight/neuro/pkg/frame"
)

// DefaultGlowIntensity is the additive weight of the blurred layer.
const DefaultGlowIntensity = 0.25

// Glow brightens light regions by blurring the frame and adding the
// blurred layer back on top, a bloom without an explicit highlight
// threshold.
type Glow struct {
	Intensity float64
}

func (Glow) Name() string { return "glow" }

// Apply computes out = f + blur(f, intensity·10)·intensity, clamped.
func (s Glow) Apply(f *frame.Frame, _ float64) (*frame.Frame, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	if s.Intensity == 0 {
		return f.Clone(), nil
	}

	blurred, err := frame.FromImage(imaging.Blur(f.ToImage(), s.Intensity*10))
	if err != nil {
		return nil, err
	}

	out := f.Clone()
	for i := range out.Pix {
		out.Pix[i] = frame.ClampU8(float64(f.Pix[i]) + float64(blurred.Pix[i])*s.Intensity)
	}
	return out, nil
}
