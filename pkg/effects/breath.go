package effects

import (
	"math"

	"github.com/disintegration/imaging"

	"github.com/mirrorlight/neuro/pkg/easing"
	"github.com/mirrorlight/neuro/pkg/frame"
)

// DefaultBreathPeriod is one inhale/exhale cycle in seconds.
const DefaultBreathPeriod = 6.0

// BreathRhythm pulses softness and brightness on a slow cycle. The
// breath envelope drives a mild blur, the blur's blend weight and a
// brightness lift, so the frame appears to inhale and exhale.
type BreathRhythm struct {
	Period float64
}

func (BreathRhythm) Name() string { return "breath_rhythm" }

func (s BreathRhythm) Apply(f *frame.Frame, t float64) (*frame.Frame, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	phase := 2 * math.Pi * t / s.Period
	breath := easing.Breath(phase)

	out := f.Clone()
	// Blur in coarse steps; small envelopes skip the blur entirely.
	sigma := float64(int(breath * 2))
	if sigma > 0 {
		blurred, err := frame.FromImage(imaging.Blur(f.ToImage(), sigma))
		if err != nil {
			return nil, err
		}
		w := breath * 0.3
		for i := range out.Pix {
			out.Pix[i] = frame.ClampU8(float64(f.Pix[i])*(1-w) + float64(blurred.Pix[i])*w)
		}
	}

	brightness := 1 + breath*0.1
	for i := range out.Pix {
		out.Pix[i] = frame.ClampU8(float64(out.Pix[i]) * brightness)
	}
	return out, nil
}
