// Package effects implements the per-frame transform chain: color
// shift, edge enhancement, glow, breath rhythm and photonic noise,
// composed in a fixed order by Pipeline.
//
// Stages are value types holding their own parameters. Apply never
// mutates its input; it returns a new frame with the same dimensions
// and all samples clamped to [0,255].
package effects

import (
	"github.com/mirrorlight/neuro/pkg/frame"
)

// Stage is one pure frame transform, parameterized by the absolute
// timestamp in seconds.
type Stage interface {
	// Name identifies the stage in logs and timing stats.
	Name() string

	// Apply transforms f at time t. The input is left untouched.
	Apply(f *frame.Frame, t float64) (*frame.Frame, error)
}
