package pipeline

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/mirrorlight/neuro/pkg/cache"
	"github.com/mirrorlight/neuro/pkg/effects"
	"github.com/mirrorlight/neuro/pkg/errors"
	"github.com/mirrorlight/neuro/pkg/frame"
	"github.com/mirrorlight/neuro/pkg/source"
)

// Runner executes the effect chain over frame sequences with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store run results. Multiple goroutines can safely share one Runner
// with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute drains src through the effect chain into sink. Frames are
// processed in parallel up to opts.Workers but written to the sink in
// source order.
func (r *Runner) Execute(ctx context.Context, src source.FrameSource, sink source.FrameSink, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{
		JobID: uuid.NewString(),
		Stats: Stats{StageTimes: make(map[string]time.Duration)},
	}
	start := time.Now()

	r.Logger.Info("starting pipeline run",
		"job", result.JobID,
		"workers", opts.Workers,
		"seed", opts.Seed)

	// Drain the source first; frames are independent once read.
	var frames []*frame.Frame
	for {
		f, err := src.Next(ctx)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "read frame %d", len(frames))
		}
		if f == nil {
			break
		}
		frames = append(frames, f)
	}

	processed := make([]*frame.Frame, len(frames))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for i, f := range frames {
		i, f := i, f
		g.Go(func() error {
			out, hit, stageTimes, err := r.processFrame(gctx, f, i, opts)
			if err != nil {
				return err
			}
			processed[i] = out
			mu.Lock()
			if hit {
				result.CacheInfo.Hits++
			} else {
				result.CacheInfo.Misses++
			}
			for name, d := range stageTimes {
				result.Stats.StageTimes[name] += d
			}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Sink writes stay in ascending timestamp order.
	for i, f := range processed {
		if err := sink.Write(ctx, f); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "write frame %d", i)
		}
	}

	result.Stats.FrameCount = len(frames)
	result.Stats.Duration = time.Since(start)

	r.Logger.Info("pipeline run complete",
		"job", result.JobID,
		"frames", result.Stats.FrameCount,
		"cache_hits", result.CacheInfo.Hits,
		"duration", result.Stats.Duration)

	return result, nil
}

// ProcessFrame runs a single frame through the chain with caching,
// using the frame's position in its sequence to derive the noise seed.
func (r *Runner) ProcessFrame(ctx context.Context, f *frame.Frame, index int, opts Options) (*frame.Frame, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	out, _, _, err := r.processFrame(ctx, f, index, opts)
	return out, err
}

func (r *Runner) processFrame(ctx context.Context, f *frame.Frame, index int, opts Options) (*frame.Frame, bool, map[string]time.Duration, error) {
	if err := f.Validate(); err != nil {
		return nil, false, nil, err
	}

	// Unseeded noise makes results non-reproducible, so only
	// deterministic runs are cacheable.
	cacheable := opts.Seed != 0 || opts.NoiseDensity == 0
	key := r.Keyer.FrameKey(cache.Hash(f.Pix), opts.FrameKeyOpts(f.Timestamp))

	if cacheable && !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			if out := frameFromCache(f, data); out != nil {
				r.Logger.Debug("frame cache hit", "index", index, "t", f.Timestamp)
				return out, true, nil, nil
			}
		}
	}

	eff := opts.effectOptions()
	if opts.Seed != 0 {
		eff.Rand = rand.New(rand.NewSource(opts.Seed + int64(index)))
	}
	p, err := effects.NewPipeline(eff)
	if err != nil {
		return nil, false, nil, err
	}

	stageTimes := make(map[string]time.Duration, len(p.Stages()))
	cur := f
	for _, s := range p.Stages() {
		stageStart := time.Now()
		next, err := s.Apply(cur, f.Timestamp)
		if err != nil {
			code := errors.GetCode(err)
			if code == "" {
				code = errors.ErrCodeInternal
			}
			return nil, false, nil, errors.Wrap(code, err, "stage %s on frame %d", s.Name(), index)
		}
		stageTimes[s.Name()] += time.Since(stageStart)
		cur = next
	}

	if cacheable {
		_ = r.Cache.Set(ctx, key, cur.Pix, TTLFrame)
	}
	return cur, false, stageTimes, nil
}

// frameFromCache rebuilds a processed frame from cached pixel data,
// returning nil when the entry does not match the source geometry.
func frameFromCache(src *frame.Frame, data []byte) *frame.Frame {
	if len(data) != src.Width*src.Height*frame.Channels {
		return nil
	}
	pix := make([]uint8, len(data))
	copy(pix, data)
	return &frame.Frame{
		Width:     src.Width,
		Height:    src.Height,
		Pix:       pix,
		Timestamp: src.Timestamp,
	}
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
