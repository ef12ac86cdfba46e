package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mirrorlight/neuro/pkg/media"
	"github.com/mirrorlight/neuro/pkg/pipeline"
	"github.com/mirrorlight/neuro/pkg/source"
)

// processOpts holds the command-line flags for the process command.
type processOpts struct {
	output        string  // output video path or frame directory
	fps           float64 // frame rate, zero probes the input
	edgeStrength  float64 // edge enhancement blend weight
	glowIntensity float64 // glow blend weight
	breathPeriod  float64 // breath cycle length in seconds
	density       float64 // photonic noise point density
	seed          int64   // noise seed, zero is time-seeded
	workers       int     // parallel frame workers
	noCache       bool    // disable the frame cache
	refresh       bool    // recompute even when cached
	redis         string  // redis address for a shared cache
	keepFrames    bool    // keep the intermediate frame directory
}

// processCommand creates the process command: the full effect chain over
// a video file or a directory of PNG frames.
func (c *CLI) processCommand() *cobra.Command {
	var opts processOpts

	cmd := &cobra.Command{
		Use:   "process [video|frame-dir]",
		Short: "Run the consciousness effect chain over a clip",
		Long: `Process runs every frame of the input through the effect chain:
color shift, edge enhancement, glow, breath rhythm and photonic noise.

The input is either a video file (decoded and re-encoded via ffmpeg) or a
directory of PNG frames (processed in place to a sibling directory).
Pass --density 0 to disable photonic noise entirely; pass --seed for
reproducible noise.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pOpts := pipeline.Options{
				EdgeStrength:  opts.edgeStrength,
				GlowIntensity: opts.glowIntensity,
				BreathPeriod:  opts.breathPeriod,
				NoiseDensity:  opts.density,
				DisableNoise:  cmd.Flags().Changed("density") && opts.density == 0,
				Seed:          opts.seed,
				Workers:       opts.workers,
				Refresh:       opts.refresh,
			}
			if err := c.Config.ApplyTo(&pOpts); err != nil {
				return err
			}
			if opts.redis == "" {
				opts.redis = c.Config.Cache.Redis
			}
			return c.runProcess(cmd.Context(), args[0], &opts, pOpts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output video path (or frame directory for directory input)")
	cmd.Flags().Float64Var(&opts.fps, "fps", 0, "frame rate (default: probed from input)")
	cmd.Flags().Float64Var(&opts.edgeStrength, "edge-strength", 0, "edge enhancement strength in [0,1]")
	cmd.Flags().Float64Var(&opts.glowIntensity, "glow", 0, "glow intensity in [0,1]")
	cmd.Flags().Float64Var(&opts.breathPeriod, "breath-period", 0, "breath cycle length in seconds")
	cmd.Flags().Float64Var(&opts.density, "density", 0, "photonic noise density (0 disables noise)")
	cmd.Flags().Int64Var(&opts.seed, "seed", 0, "noise seed for reproducible output (0: time-seeded)")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "parallel frame workers (0: number of CPUs)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the frame result cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute frames even when cached")
	cmd.Flags().StringVar(&opts.redis, "redis", "", "redis address for a shared frame cache")
	cmd.Flags().BoolVar(&opts.keepFrames, "keep-frames", false, "keep the intermediate frame directory")

	return cmd
}

// runProcess dispatches on the input type: directories hold PNG
// sequences, everything else goes through ffmpeg.
func (c *CLI) runProcess(ctx context.Context, input string, opts *processOpts, pOpts pipeline.Options) error {
	info, err := os.Stat(input)
	if err != nil {
		return fmt.Errorf("stat %s: %w", input, err)
	}
	if info.IsDir() {
		return c.processFrameDir(ctx, input, opts, pOpts)
	}
	return c.processVideo(ctx, input, opts, pOpts)
}

// processFrameDir runs the chain over a PNG sequence directory.
func (c *CLI) processFrameDir(ctx context.Context, input string, opts *processOpts, pOpts pipeline.Options) error {
	fps := c.Config.FPS(defaultFPS)
	if opts.fps > 0 {
		fps = opts.fps
	}
	outDir := opts.output
	if outDir == "" {
		outDir = strings.TrimSuffix(input, "/") + "_neuro"
	}

	src, err := source.NewPNGDirSource(input, fps)
	if err != nil {
		return err
	}
	defer src.Close()
	sink, err := source.NewPNGDirSink(outDir)
	if err != nil {
		return err
	}
	defer sink.Close()

	result, err := c.execute(ctx, src, sink, opts, pOpts)
	if err != nil {
		return err
	}

	printSuccess("Processed %d frames", result.Stats.FrameCount)
	printFrameStats(result.Stats.FrameCount, result.CacheInfo.Hits)
	printFile(outDir)
	printNextStep("Assemble a video", fmt.Sprintf("ffmpeg -framerate %g -i %s/frame_%%06d.png out.mp4", fps, outDir))
	return nil
}

// processVideo decodes input, runs the chain, and re-encodes.
func (c *CLI) processVideo(ctx context.Context, input string, opts *processOpts, pOpts pipeline.Options) error {
	logger := loggerFromContext(ctx)

	meta, err := media.Probe(input)
	if err != nil {
		return err
	}
	fps := meta.FPS
	if opts.fps > 0 {
		fps = opts.fps
	}
	if fps <= 0 {
		fps = c.Config.FPS(defaultFPS)
	}
	logger.Infof("Input: %dx%d @ %.3g fps, %.1fs", meta.Width, meta.Height, fps, meta.Duration)

	workDir, err := os.MkdirTemp("", appName+"-process-*")
	if err != nil {
		return fmt.Errorf("create work dir: %w", err)
	}
	if !opts.keepFrames {
		defer os.RemoveAll(workDir)
	}
	rawDir := filepath.Join(workDir, "raw")
	outDir := filepath.Join(workDir, "out")
	for _, d := range []string{rawDir, outDir} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return err
		}
	}

	sp := newSpinnerWithContext(ctx, "Extracting frames...")
	sp.Start()
	err = media.ExtractFrames(ctx, input, rawDir, fps)
	sp.Stop()
	if err != nil {
		return err
	}

	src, err := source.NewPNGDirSource(rawDir, fps)
	if err != nil {
		return err
	}
	defer src.Close()
	sink, err := source.NewPNGDirSink(outDir)
	if err != nil {
		return err
	}
	defer sink.Close()
	logger.Infof("Extracted %d frames", src.Len())

	result, err := c.execute(ctx, src, sink, opts, pOpts)
	if err != nil {
		return err
	}

	output := opts.output
	if output == "" {
		ext := filepath.Ext(input)
		output = strings.TrimSuffix(input, ext) + "_neuro.mp4"
	}

	sp = newSpinnerWithContext(ctx, "Encoding video...")
	sp.Start()
	err = media.Encode(ctx, outDir, output, media.EncodeOptions{FPS: fps, Codec: c.Config.Media.Codec, Bitrate: c.Config.Media.Bitrate})
	sp.Stop()
	if err != nil {
		return err
	}

	printSuccess("Processed %d frames", result.Stats.FrameCount)
	printFrameStats(result.Stats.FrameCount, result.CacheInfo.Hits)
	printFile(output)
	return nil
}

// execute builds a runner and runs the chain, logging per-stage timing.
func (c *CLI) execute(ctx context.Context, src source.FrameSource, sink source.FrameSink, opts *processOpts, pOpts pipeline.Options) (*pipeline.Result, error) {
	runner, err := c.newRunner(ctx, opts.noCache, opts.redis)
	if err != nil {
		return nil, err
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	result, err := runner.Execute(ctx, src, sink, pOpts)
	if err != nil {
		return nil, err
	}
	prog.done(fmt.Sprintf("Applied effect chain to %d frames", result.Stats.FrameCount))

	for name, d := range result.Stats.StageTimes {
		c.Logger.Debugf("stage %s: %s total", name, d)
	}
	return result, nil
}
