// Package pipeline runs the effect chain over whole frame sequences.
//
// The Runner wraps pkg/effects with the operational concerns a real
// render needs: result caching keyed by frame content and parameters,
// bounded parallelism across independent frames, per-stage timing and
// structured logging. CLI commands and library callers share it, so
// caching behavior stays identical across entry points.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{Seed: 42, Workers: 4}
//	result, err := runner.Execute(ctx, src, sink, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	logger.Info("done", "frames", result.Stats.FrameCount)
package pipeline

import (
	"runtime"
	"time"

	"github.com/mirrorlight/neuro/pkg/cache"
	"github.com/mirrorlight/neuro/pkg/effects"
	"github.com/mirrorlight/neuro/pkg/errors"
	"github.com/mirrorlight/neuro/pkg/palette"
)

// TTLFrame bounds how long cached frame results live. Content-addressed
// entries never go stale, but unbounded caches fill disks.
const TTLFrame = 14 * 24 * time.Hour

// Options configures a pipeline run over a frame sequence.
// This struct supports JSON serialization for job submission.
type Options struct {
	// Effect parameters, zero values take the stage defaults.
	EdgeStrength  float64 `json:"edge_strength,omitempty"`
	GlowIntensity float64 `json:"glow_intensity,omitempty"`
	BreathPeriod  float64 `json:"breath_period,omitempty"`
	NoiseDensity  float64 `json:"noise_density,omitempty"`
	DisableNoise  bool    `json:"disable_noise,omitempty"`

	// Seed makes photonic noise reproducible: frame i uses Seed+i.
	// Zero keeps the production default of time-seeded randomness.
	Seed int64 `json:"seed,omitempty"`

	// Workers bounds parallel frame processing; zero means the number
	// of CPUs.
	Workers int `json:"workers,omitempty"`

	// Refresh bypasses cache reads (results are still written back).
	Refresh bool `json:"refresh,omitempty"`

	// Palette overrides the default color table. Not serialized; job
	// submission carries palettes separately.
	Palette palette.Palette `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Workers < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "workers must be non-negative, got %d", o.Workers)
	}
	if o.Workers == 0 {
		o.Workers = runtime.NumCPU()
	}
	// Delegate effect parameter checks to the stage options, then copy
	// the defaulted values back so cache keys see them.
	eff := o.effectOptions()
	if err := eff.ValidateAndSetDefaults(); err != nil {
		return err
	}
	o.Palette = eff.Palette
	o.EdgeStrength = eff.EdgeStrength
	o.GlowIntensity = eff.GlowIntensity
	o.BreathPeriod = eff.BreathPeriod
	o.NoiseDensity = eff.NoiseDensity
	o.validated = true
	return nil
}

// effectOptions converts to the stage-level options, leaving the random
// source for the runner to fill per frame.
func (o *Options) effectOptions() effects.Options {
	return effects.Options{
		Palette:       o.Palette,
		EdgeStrength:  o.EdgeStrength,
		GlowIntensity: o.GlowIntensity,
		BreathPeriod:  o.BreathPeriod,
		NoiseDensity:  o.NoiseDensity,
		DisableNoise:  o.DisableNoise,
	}
}

// FrameKeyOpts returns cache key options for one frame.
func (o *Options) FrameKeyOpts(timestamp float64) cache.FrameKeyOpts {
	return cache.FrameKeyOpts{
		Timestamp:     timestamp,
		EdgeStrength:  o.EdgeStrength,
		GlowIntensity: o.GlowIntensity,
		BreathPeriod:  o.BreathPeriod,
		NoiseDensity:  o.NoiseDensity,
		Seed:          o.Seed,
	}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// JobID identifies the run in logs.
	JobID string

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks cache effectiveness across frames.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	FrameCount int
	Duration   time.Duration

	// StageTimes accumulates processing time per stage name across all
	// frames that missed the cache.
	StageTimes map[string]time.Duration
}

// CacheInfo tracks cache hits across a run.
type CacheInfo struct {
	Hits   int
	Misses int
}
