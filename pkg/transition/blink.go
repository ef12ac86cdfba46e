package transition

import (
	"github.com/mirrorlight/neuro/pkg/easing"
	"github.com/mirrorlight/neuro/pkg/errors"
	"github.com/mirrorlight/neuro/pkg/frame"
	"github.com/mirrorlight/neuro/pkg/mask"
)

// DefaultBlinkDuration is the length of one lid sweep in seconds.
const DefaultBlinkDuration = 0.2

// Blink wraps a clip with an eyelid wipe: the eye opens over the first
// OpenDuration seconds and closes over the last CloseDuration seconds.
// Outside those windows frames pass through untouched. A zero window
// duration disables that side.
type Blink struct {
	OpenDuration  float64
	CloseDuration float64
	ClipDuration  float64
}

// NewBlink validates the window and clip durations.
func NewBlink(open, close, clip float64) (Blink, error) {
	if open < 0 || close < 0 {
		return Blink{}, errors.New(errors.ErrCodeInvalidConfig, "blink durations must be non-negative, got open=%v close=%v", open, close)
	}
	if clip <= 0 {
		return Blink{}, errors.New(errors.ErrCodeInvalidConfig, "clip duration must be positive, got %v", clip)
	}
	if open+close > clip {
		return Blink{}, errors.New(errors.ErrCodeInvalidConfig, "blink windows (%v+%v) exceed clip duration %v", open, close, clip)
	}
	return Blink{OpenDuration: open, CloseDuration: close, ClipDuration: clip}, nil
}

// progress maps t to the eyelid mask progress: 0 means open, 1 means
// closed. Opening runs eased closed-to-open, closing eased open-to-
// closed; between the windows the eye stays open.
func (b Blink) progress(t float64) float64 {
	if b.OpenDuration > 0 && t < b.OpenDuration {
		return 1 - easing.Out(easing.Clamp01(t/b.OpenDuration))
	}
	if b.CloseDuration > 0 && t > b.ClipDuration-b.CloseDuration {
		return easing.In(easing.Clamp01((t - (b.ClipDuration - b.CloseDuration)) / b.CloseDuration))
	}
	return 0
}

// Apply multiplies the frame by the eyelid visibility field for the
// blink phase at t. Frames outside both windows are returned as clones
// with no pixel changes.
func (b Blink) Apply(f *frame.Frame, t float64) (*frame.Frame, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	out := f.Clone()
	out.Timestamp = t

	p := b.progress(t)
	if p == 0 {
		return out, nil
	}

	m, err := mask.Eyelid(f.Width, f.Height, p)
	if err != nil {
		return nil, err
	}
	i := 0
	for pix := 0; pix < f.Width*f.Height; pix++ {
		v := m.Values[pix]
		out.Pix[i] = frame.ClampU8(float64(out.Pix[i]) * v)
		out.Pix[i+1] = frame.ClampU8(float64(out.Pix[i+1]) * v)
		out.Pix[i+2] = frame.ClampU8(float64(out.Pix[i+2]) * v)
		i += frame.Channels
	}
	return out, nil
}
