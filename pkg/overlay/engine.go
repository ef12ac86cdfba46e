package overlay

import (
	"github.com/mirrorlight/neuro/pkg/frame"
	"github.com/mirrorlight/neuro/pkg/mask"
)

// Engine blends timeline overlays onto frames. The zero value is not
// usable; construct with NewEngine.
type Engine struct {
	timeline Timeline
}

// NewEngine validates the timeline and builds an engine over it. An
// empty timeline is allowed; ProcessFrame then passes frames through.
func NewEngine(tl Timeline) (*Engine, error) {
	if err := tl.Validate(); err != nil {
		return nil, err
	}
	return &Engine{timeline: tl}, nil
}

// Timeline returns the configured segments.
func (e *Engine) Timeline() Timeline {
	return e.timeline
}

// ProcessFrame selects the segment for t and blends it onto f. With no
// matching segment the frame is returned as an untouched clone.
func (e *Engine) ProcessFrame(f *frame.Frame, t float64) (*frame.Frame, error) {
	seg, ok := e.timeline.Select(t)
	if !ok {
		if err := f.Validate(); err != nil {
			return nil, err
		}
		return f.Clone(), nil
	}
	return Apply(f, seg.Color, seg.Shape, seg.Intensity)
}

// Apply blends the overlay color onto f: out = f·(1−α) + overlay·α with
// α = (color.A/255)·intensity. For ShapeRadial the overlay color is
// scaled per pixel by the radial falloff mask before blending.
func Apply(f *frame.Frame, c Color, shape Shape, intensity float64) (*frame.Frame, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	alpha := float64(c.A) / 255 * intensity
	out := f.Clone()
	if alpha == 0 {
		return out, nil
	}

	r := float64(c.R)
	g := float64(c.G)
	b := float64(c.B)

	if shape == ShapeRadial {
		m, err := mask.Radial(f.Width, f.Height)
		if err != nil {
			return nil, err
		}
		i := 0
		for p := 0; p < f.Width*f.Height; p++ {
			v := m.Values[p]
			out.Pix[i] = frame.ClampU8(float64(f.Pix[i])*(1-alpha) + r*v*alpha)
			out.Pix[i+1] = frame.ClampU8(float64(f.Pix[i+1])*(1-alpha) + g*v*alpha)
			out.Pix[i+2] = frame.ClampU8(float64(f.Pix[i+2])*(1-alpha) + b*v*alpha)
			i += frame.Channels
		}
		return out, nil
	}

	i := 0
	for p := 0; p < f.Width*f.Height; p++ {
		out.Pix[i] = frame.ClampU8(float64(f.Pix[i])*(1-alpha) + r*alpha)
		out.Pix[i+1] = frame.ClampU8(float64(f.Pix[i+1])*(1-alpha) + g*alpha)
		out.Pix[i+2] = frame.ClampU8(float64(f.Pix[i+2])*(1-alpha) + b*alpha)
		i += frame.Channels
	}
	return out, nil
}
