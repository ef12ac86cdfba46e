package overlay

import (
	"github.com/mirrorlight/neuro/pkg/errors"
)

// Shape selects how the overlay color covers the frame.
type Shape string

const (
	// ShapeTint covers every pixel with the flat color.
	ShapeTint Shape = "tint"
	// ShapeRadial scales the color by a radial falloff from the center.
	ShapeRadial Shape = "radial"
)

// DefaultIntensity is the blend intensity when a segment leaves it
// unset.
const DefaultIntensity = 0.35

// Segment is one timeline interval with its own color and blend
// parameters. Segments are built once from configuration and never
// change during playback.
type Segment struct {
	ID        int
	Color     Color
	Start     float64
	Duration  float64
	Shape     Shape
	Intensity float64
}

// Validate rejects out-of-range segment parameters.
func (s Segment) Validate() error {
	if s.Start < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "segment %d start must be non-negative, got %v", s.ID, s.Start)
	}
	if s.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "segment %d duration must be non-negative, got %v", s.ID, s.Duration)
	}
	if s.Intensity < 0 || s.Intensity > 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "segment %d intensity must be in [0,1], got %v", s.ID, s.Intensity)
	}
	switch s.Shape {
	case ShapeTint, ShapeRadial:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "segment %d has unknown shape %q", s.ID, s.Shape)
	}
	return nil
}

// Timeline is an ordered segment list. Segments may overlap; selection
// honors specification order.
type Timeline []Segment

// Validate checks every segment.
func (tl Timeline) Validate() error {
	for _, s := range tl {
		if err := s.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Select returns the first segment whose half-open interval
// [Start, Start+Duration) contains t. Out-of-range timestamps fall back
// to the last segment so the overlay holds instead of flashing off. An
// empty timeline selects nothing.
func (tl Timeline) Select(t float64) (Segment, bool) {
	for _, s := range tl {
		if t >= s.Start && t < s.Start+s.Duration {
			return s, true
		}
	}
	if len(tl) > 0 {
		return tl[len(tl)-1], true
	}
	return Segment{}, false
}
