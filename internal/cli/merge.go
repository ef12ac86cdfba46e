package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mirrorlight/neuro/pkg/media"
	"github.com/mirrorlight/neuro/pkg/source"
	"github.com/mirrorlight/neuro/pkg/transition"
)

// mergeOpts holds the command-line flags for the merge command.
type mergeOpts struct {
	output  string  // output video path
	fps     float64 // frame rate, zero probes the first clip
	zoomIn  float64 // peak zoom factor at each clip's midpoint
	zoomOut float64 // final zoom factor at each clip's end
	blink   float64 // eyelid open/close duration in seconds
}

// mergeCommand creates the merge command: two clips joined with zoom
// curves and an eyelid blink at the cut.
func (c *CLI) mergeCommand() *cobra.Command {
	var opts mergeOpts

	cmd := &cobra.Command{
		Use:   "merge [first] [second]",
		Short: "Join two clips with zoom and blink transitions",
		Long: `Merge applies a two-phase zoom curve over each clip (scale rises to the
zoom-in factor at the midpoint, settles at the zoom-out factor by the end)
and an eyelid blink that closes at each cut and reopens after it, then
concatenates the results.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.zoomIn == 0 {
				opts.zoomIn = c.Config.Transitions.ZoomIn
			}
			if opts.zoomOut == 0 {
				opts.zoomOut = c.Config.Transitions.ZoomOut
			}
			if opts.blink == 0 {
				opts.blink = c.Config.Transitions.BlinkDuration
			}
			if opts.zoomIn == 0 {
				opts.zoomIn = transition.DefaultZoomIn
			}
			if opts.zoomOut == 0 {
				opts.zoomOut = transition.DefaultZoomOut
			}
			if opts.blink == 0 {
				opts.blink = transition.DefaultBlinkDuration
			}
			return c.runMerge(cmd.Context(), args[0], args[1], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "merged.mp4", "output video path")
	cmd.Flags().Float64Var(&opts.fps, "fps", 0, "frame rate (default: probed from the first clip)")
	cmd.Flags().Float64Var(&opts.zoomIn, "zoom-in", 0, "peak zoom factor at each clip's midpoint")
	cmd.Flags().Float64Var(&opts.zoomOut, "zoom-out", 0, "final zoom factor at each clip's end")
	cmd.Flags().Float64Var(&opts.blink, "blink", 0, "blink duration in seconds")

	return cmd
}

func (c *CLI) runMerge(ctx context.Context, first, second string, opts *mergeOpts) error {
	logger := loggerFromContext(ctx)

	meta, err := media.Probe(first)
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

	workDir, err := os.MkdirTemp("", appName+"-merge-*")
	if err != nil {
		return fmt.Errorf("create work dir: %w", err)
	}
	defer os.RemoveAll(workDir)

	clips := []string{first, second}
	parts := make([]string, 0, len(clips))
	for i, clip := range clips {
		// Only the cut gets a closing lid: every clip opens, but the
		// last one stays open so the merged video does not end on a
		// closed eye.
		closeDur := opts.blink
		if i == len(clips)-1 {
			closeDur = 0
		}
		out := filepath.Join(workDir, fmt.Sprintf("part_%d.mp4", i))
		if err := c.transitionClip(ctx, clip, out, filepath.Join(workDir, fmt.Sprintf("clip_%d", i)), fps, closeDur, opts); err != nil {
			return fmt.Errorf("clip %s: %w", clip, err)
		}
		parts = append(parts, out)
	}

	logger.Info("Concatenating clips")
	if err := media.Concat(ctx, parts, opts.output, media.EncodeOptions{FPS: fps, Codec: c.Config.Media.Codec, Bitrate: c.Config.Media.Bitrate}); err != nil {
		return err
	}

	printSuccess("Merged %s + %s", filepath.Base(first), filepath.Base(second))
	printFile(opts.output)
	return nil
}

// transitionClip extracts one clip's frames, applies the zoom curve and
// blink windows, and encodes the result. closeDur sets the closing lid
// window; zero leaves the clip's end open.
func (c *CLI) transitionClip(ctx context.Context, clip, outPath, workDir string, fps, closeDur float64, opts *mergeOpts) error {
	logger := loggerFromContext(ctx)

	rawDir := filepath.Join(workDir, "raw")
	outDir := filepath.Join(workDir, "out")
	for _, d := range []string{rawDir, outDir} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return err
		}
	}

	sp := newSpinnerWithContext(ctx, fmt.Sprintf("Extracting %s...", filepath.Base(clip)))
	sp.Start()
	err := media.ExtractFrames(ctx, clip, rawDir, fps)
	sp.Stop()
	if err != nil {
		return err
	}

	src, err := source.NewPNGDirSource(rawDir, fps)
	if err != nil {
		return err
	}
	defer src.Close()

	duration := float64(src.Len()) / fps
	zoom, err := transition.NewZoom(opts.zoomIn, opts.zoomOut, duration)
	if err != nil {
		return err
	}
	blink, err := transition.NewBlink(opts.blink, closeDur, duration)
	if err != nil {
		return err
	}
	logger.Infof("Transitioning %d frames (%.1fs, zoom %.2g→%.2g, blink %.2gs open / %.2gs close)",
		src.Len(), duration, opts.zoomIn, opts.zoomOut, opts.blink, closeDur)

	sink, err := source.NewPNGDirSink(outDir)
	if err != nil {
		return err
	}
	defer sink.Close()

	prog := newProgress(logger)
	n := 0
	for {
		f, err := src.Next(ctx)
		if err != nil {
			return err
		}
		if f == nil {
			break
		}
		zoomed, err := zoom.Apply(f, f.Timestamp)
		if err != nil {
			return err
		}
		blinked, err := blink.Apply(zoomed, f.Timestamp)
		if err != nil {
			return err
		}
		if err := sink.Write(ctx, blinked); err != nil {
			return err
		}
		n++
	}
	prog.done(fmt.Sprintf("Transitioned %d frames", n))

	return media.Encode(ctx, outDir, outPath, media.EncodeOptions{FPS: fps, Codec: c.Config.Media.Codec, Bitrate: c.Config.Media.Bitrate})
}
