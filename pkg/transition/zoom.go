// Package transition implements the clip-boundary effects: the
// two-phase zoom curve and the eyelid blink wipe. Both keep output
// dimensions equal to input dimensions, so clips concatenate without
// reformatting.
package transition

import (
	"image/color"

	"github.com/disintegration/imaging"

	"github.com/mirrorlight/neuro/pkg/easing"
	"github.com/mirrorlight/neuro/pkg/errors"
	"github.com/mirrorlight/neuro/pkg/frame"
)

// Default zoom factors: push in to 1.3x over the first half of the
// clip, settle back to 1.0x over the second.
const (
	DefaultZoomIn  = 1.3
	DefaultZoomOut = 1.0
)

// Zoom scales a frame along a two-phase smoothstepped curve over the
// clip duration: 1.0 up to In across [0, D/2), then In down to Out
// across [D/2, D]. Both branches meet at In, so the curve is continuous
// at the midpoint.
type Zoom struct {
	In       float64
	Out      float64
	Duration float64
}

// NewZoom validates the factors and clip duration.
func NewZoom(in, out, duration float64) (Zoom, error) {
	if in <= 0 || out <= 0 {
		return Zoom{}, errors.New(errors.ErrCodeInvalidConfig, "zoom factors must be positive, got in=%v out=%v", in, out)
	}
	if duration <= 0 {
		return Zoom{}, errors.New(errors.ErrCodeInvalidConfig, "clip duration must be positive, got %v", duration)
	}
	return Zoom{In: in, Out: out, Duration: duration}, nil
}

// Scale evaluates the curve at t. Times outside [0, Duration] clamp to
// the curve endpoints.
func (z Zoom) Scale(t float64) float64 {
	half := z.Duration / 2
	if t < half {
		p := easing.Smoothstep(easing.Clamp01(t / half))
		return 1 + (z.In-1)*p
	}
	p := easing.Smoothstep(easing.Clamp01((t - half) / half))
	return z.In - (z.In-z.Out)*p
}

// Apply resizes f by the curve's scale at t, then center-crops (scale
// above 1) or center-pads with black (scale below 1) back to the input
// dimensions.
func (z Zoom) Apply(f *frame.Frame, t float64) (*frame.Frame, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	scale := z.Scale(t)
	newW := int(float64(f.Width) * scale)
	newH := int(float64(f.Height) * scale)
	if newW == f.Width && newH == f.Height {
		out := f.Clone()
		out.Timestamp = t
		return out, nil
	}

	img := imaging.Resize(f.ToImage(), newW, newH, imaging.Linear)
	if scale > 1 {
		img = imaging.CropCenter(img, f.Width, f.Height)
	} else {
		canvas := imaging.New(f.Width, f.Height, color.NRGBA{A: 0xff})
		img = imaging.PasteCenter(canvas, img)
	}

	out, err := frame.FromImage(img)
	if err != nil {
		return nil, err
	}
	out.Timestamp = t
	return out, nil
}
