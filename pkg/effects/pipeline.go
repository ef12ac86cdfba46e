package effects

import (
	"math/rand"

	"github.com/mirrorlight/neuro/pkg/errors"
	"github.com/mirrorlight/neuro/pkg/frame"
	"github.com/mirrorlight/neuro/pkg/palette"
)

// Options configures the standard effect chain.
type Options struct {
	// Palette supplies the blend targets. The zero value means the
	// default neuro palette.
	Palette palette.Palette

	// EdgeStrength, GlowIntensity, BreathPeriod and NoiseDensity tune
	// the individual stages. Negative values are rejected; zero values
	// take the stage defaults, except NoiseDensity where DisableNoise
	// distinguishes "default" from "off".
	EdgeStrength  float64
	GlowIntensity float64
	BreathPeriod  float64
	NoiseDensity  float64
	DisableNoise  bool

	// Rand drives photonic point placement. Nil keeps the production
	// default of a time-seeded source.
	Rand *rand.Rand
}

// ValidateAndSetDefaults checks ranges and fills in defaults in place.
func (o *Options) ValidateAndSetDefaults() error {
	if o.EdgeStrength < 0 || o.EdgeStrength > 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "edge strength must be in [0,1], got %v", o.EdgeStrength)
	}
	if o.GlowIntensity < 0 || o.GlowIntensity > 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "glow intensity must be in [0,1], got %v", o.GlowIntensity)
	}
	if o.BreathPeriod < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "breath period must be positive, got %v", o.BreathPeriod)
	}
	if o.NoiseDensity < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "noise density must be non-negative, got %v", o.NoiseDensity)
	}

	if (o.Palette == palette.Palette{}) {
		o.Palette = palette.Default()
	}
	if o.EdgeStrength == 0 {
		o.EdgeStrength = DefaultEdgeStrength
	}
	if o.GlowIntensity == 0 {
		o.GlowIntensity = DefaultGlowIntensity
	}
	if o.BreathPeriod == 0 {
		o.BreathPeriod = DefaultBreathPeriod
	}
	if o.NoiseDensity == 0 && !o.DisableNoise {
		o.NoiseDensity = DefaultNoiseDensity
	}
	if o.DisableNoise {
		o.NoiseDensity = 0
	}
	return nil
}

// Pipeline is an ordered stage chain. The order is part of the visual
// contract: reordering stages changes the result materially.
type Pipeline struct {
	stages []Stage
}

// NewPipeline builds the standard chain in its fixed order: color shift,
// edge enhancement, glow, breath rhythm, photonic noise.
func NewPipeline(opts Options) (*Pipeline, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	return &Pipeline{stages: []Stage{
		NewColorShift(opts.Palette),
		EdgeEnhance{Strength: opts.EdgeStrength, Threshold: DefaultEdgeThreshold},
		Glow{Intensity: opts.GlowIntensity},
		BreathRhythm{Period: opts.BreathPeriod},
		NewPhotonicNoise(opts.Palette, opts.NoiseDensity, opts.Rand),
	}}, nil
}

// Stages exposes the chain for per-stage instrumentation.
func (p *Pipeline) Stages() []Stage {
	return p.stages
}

// Process runs f through every stage in order.
func (p *Pipeline) Process(f *frame.Frame, t float64) (*frame.Frame, error) {
	cur := f
	for _, s := range p.stages {
		next, err := s.Apply(cur, t)
		if err != nil {
			code := errors.GetCode(err)
			if code == "" {
				code = errors.ErrCodeInternal
			}
			return nil, errors.Wrap(code, err, "stage %s failed", s.Name())
		}
		cur = next
	}
	return cur, nil
}
