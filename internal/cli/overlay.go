package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"

	"github.com/mirrorlight/neuro/pkg/errors"
	"github.com/mirrorlight/neuro/pkg/frame"
	"github.com/mirrorlight/neuro/pkg/overlay"
	"github.com/mirrorlight/neuro/pkg/render"
	"github.com/mirrorlight/neuro/pkg/source"
	"github.com/mirrorlight/neuro/pkg/timeline"
)

// overlayOpts holds the command-line flags for the overlay command.
type overlayOpts struct {
	timelinePath string  // JSON timeline file
	mstringPath  string  // text file carrying M-string emotion markers
	frames       string  // frame selection for the sprite preview
	sprite       string  // sprite sheet output path
	output       string  // full-render output directory
	fps          float64 // frame rate for timestamp mapping
}

// overlayCommand creates the overlay command: emotion-colored tints over
// a PNG frame sequence, driven by a timeline.
func (c *CLI) overlayCommand() *cobra.Command {
	var opts overlayOpts

	cmd := &cobra.Command{
		Use:   "overlay [frame-dir]",
		Short: "Apply emotion-colored overlays to a frame sequence",
		Long: `Overlay tints frames with timeline-selected RGBA colors. The timeline
comes from a JSON file (--timeline) or is derived from M-string emotion
markers embedded in a text file (--mstring), one second per emotion.

Use --sprite with --frames to preview selected frames as a sprite sheet,
or --output to render the whole sequence.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.sprite == "" && opts.output == "" {
				return errors.New(errors.ErrCodeInvalidInput, "nothing to do: pass --sprite and/or --output")
			}
			return c.runOverlay(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVar(&opts.timelinePath, "timeline", "", "JSON timeline file")
	cmd.Flags().StringVar(&opts.mstringPath, "mstring", "", "text file with M-string emotion markers")
	cmd.Flags().StringVar(&opts.frames, "frames", "", "frame selection for --sprite, e.g. 0,5,10-14 (default: all)")
	cmd.Flags().StringVar(&opts.sprite, "sprite", "", "write a sprite-sheet preview PNG to this path")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "render the full sequence into this directory")
	cmd.Flags().Float64Var(&opts.fps, "fps", 0, "frame rate for mapping frames to timeline seconds")

	return cmd
}

func (c *CLI) runOverlay(ctx context.Context, dir string, opts *overlayOpts) error {
	logger := loggerFromContext(ctx)

	tl, err := c.loadTimeline(opts)
	if err != nil {
		return err
	}
	engine, err := overlay.NewEngine(tl)
	if err != nil {
		return err
	}
	logger.Infof("Timeline: %d segments", len(tl))

	fps := c.Config.FPS(defaultFPS)
	if opts.fps > 0 {
		fps = opts.fps
	}
	src, err := source.NewPNGDirSource(dir, fps)
	if err != nil {
		return err
	}
	defer src.Close()

	var frames []*frame.Frame
	for {
		f, err := src.Next(ctx)
		if err != nil {
			return err
		}
		if f == nil {
			break
		}
		frames = append(frames, f)
	}
	logger.Infof("Loaded %d frames", len(frames))

	if opts.sprite != "" {
		if err := c.overlaySprite(engine, frames, opts); err != nil {
			return err
		}
		printSuccess("Sprite preview written")
		printFile(opts.sprite)
	}

	if opts.output != "" {
		if err := c.overlayRender(ctx, engine, frames, opts.output); err != nil {
			return err
		}
		printSuccess("Rendered %d overlaid frames", len(frames))
		printFile(opts.output)
	}
	return nil
}

// loadTimeline builds the overlay timeline from whichever flag is set.
// The JSON file wins when both are given.
func (c *CLI) loadTimeline(opts *overlayOpts) (overlay.Timeline, error) {
	switch {
	case opts.timelinePath != "":
		return timeline.Load(opts.timelinePath)
	case opts.mstringPath != "":
		text, err := os.ReadFile(opts.mstringPath)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", opts.mstringPath)
		}
		colors := timeline.Colors(timeline.ParseMString(string(text)))
		if len(colors) == 0 {
			return nil, errors.New(errors.ErrCodeEmptyTimeline, "no emotion markers found in %s", opts.mstringPath)
		}
		return timeline.Default(colors), nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "a timeline is required: pass --timeline or --mstring")
	}
}

// overlaySprite renders selected frames through the engine and composes
// them into the fixed-column sprite sheet.
func (c *CLI) overlaySprite(engine *overlay.Engine, frames []*frame.Frame, opts *overlayOpts) error {
	indices, err := ParseFrameIndices(opts.frames)
	if err != nil {
		return err
	}
	if indices == nil {
		indices = make([]int, len(frames))
		for i := range indices {
			indices[i] = i
		}
	}

	selected := make([]*frame.Frame, 0, len(indices))
	for _, i := range indices {
		if i >= len(frames) {
			return errors.New(errors.ErrCodeInvalidInput, "frame index %d out of range (have %d frames)", i, len(frames))
		}
		out, err := engine.ProcessFrame(frames[i], frames[i].Timestamp)
		if err != nil {
			return err
		}
		selected = append(selected, out)
	}

	sheet, err := render.Sprite(selected)
	if err != nil {
		return err
	}
	return imaging.Save(sheet, opts.sprite)
}

// overlayRender runs every frame through the engine into a PNG sink.
func (c *CLI) overlayRender(ctx context.Context, engine *overlay.Engine, frames []*frame.Frame, outDir string) error {
	sink, err := source.NewPNGDirSink(outDir)
	if err != nil {
		return err
	}
	defer sink.Close()

	prog := newProgress(loggerFromContext(ctx))
	for i, f := range frames {
		out, err := engine.ProcessFrame(f, f.Timestamp)
		if err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		if err := sink.Write(ctx, out); err != nil {
			return err
		}
	}
	prog.done(fmt.Sprintf("Overlaid %d frames", len(frames)))
	return nil
}
