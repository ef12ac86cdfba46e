// Package audio generates the procedural ambient bed for processed
// clips: a low bass hum, a slow heartbeat pulse and a six second
// breath swell, summed and normalized. The generator is a beep
// streamer, so it composes with the rest of the beep ecosystem.
package audio

import (
	"math"

	"github.com/gopxl/beep"

	"github.com/mirrorlight/neuro/pkg/errors"
)

// Ambient layer constants. The heartbeat repeats every 1.2 seconds as
// a 0.1 second pulse with exponential decay; the breath swell shares
// the effect pipeline's six second cycle.
const (
	bassFrequency     = 30.0
	bassAmplitude     = 0.1
	heartbeatInterval = 1.2
	heartbeatLength   = 0.1
	heartbeatAmp      = 0.05
	heartbeatDecay    = 10.0
	breathPeriod      = 6.0
	breathAmplitude   = 0.05
	peakLevel         = 0.3
)

// Generator streams the ambient mix for a fixed duration. It is mono
// rendered to both channels.
type Generator struct {
	rate  beep.SampleRate
	total int
	pos   int
	norm  float64
}

// NewGenerator builds a generator for the given duration in seconds.
// The signal is pre-scanned once to normalize its peak to a fixed
// level, matching output loudness across durations.
func NewGenerator(duration float64, rate beep.SampleRate) (*Generator, error) {
	if duration <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "audio duration must be positive, got %v", duration)
	}
	if rate <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "sample rate must be positive, got %d", rate)
	}

	g := &Generator{
		rate:  rate,
		total: int(float64(rate) * duration),
		norm:  1,
	}

	var peak float64
	for i := 0; i < g.total; i++ {
		if v := math.Abs(g.value(i)); v > peak {
			peak = v
		}
	}
	if peak > 0 {
		g.norm = peakLevel / peak
	}
	return g, nil
}

// Len returns the total number of samples.
func (g *Generator) Len() int { return g.total }

// value computes the raw (unnormalized) mix at sample index i.
func (g *Generator) value(i int) float64 {
	t := float64(i) / float64(g.rate)

	bass := bassAmplitude * math.Sin(2*math.Pi*bassFrequency*t)

	var heartbeat float64
	sincePulse := math.Mod(t, heartbeatInterval)
	if sincePulse < heartbeatLength {
		heartbeat = heartbeatAmp * math.Exp(-heartbeatDecay*sincePulse/heartbeatLength)
	}

	breath := breathAmplitude * math.Sin(2*math.Pi*t/breathPeriod)

	return bass + heartbeat + breath
}

// Stream fills samples until the duration is exhausted.
func (g *Generator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if g.pos >= g.total {
			return i, i > 0
		}
		v := g.value(g.pos) * g.norm
		samples[i][0] = v
		samples[i][1] = v
		g.pos++
	}
	return len(samples), true
}

// Err always reports nil; generation cannot fail mid-stream.
func (g *Generator) Err() error { return nil }

var _ beep.Streamer = (*Generator)(nil)
