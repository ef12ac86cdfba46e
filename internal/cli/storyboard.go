package cli

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"

	"github.com/mirrorlight/neuro/pkg/errors"
	"github.com/mirrorlight/neuro/pkg/media"
	"github.com/mirrorlight/neuro/pkg/render"
)

// storyboardOpts holds the command-line flags for the storyboard command.
type storyboardOpts struct {
	output     string  // atlas PNG output path
	fps        float64 // sampling rate, frames per second of source time
	columns    int     // grid columns, zero auto-sizes to near-square
	thumbWidth int     // per-tile width in pixels
	labels     bool    // draw timestamp labels
	fontPath   string  // TTF for labels
	fontSize   float64 // label size in points
}

// storyboardCommand creates the storyboard command: sampled frames tiled
// into a single PNG grid.
func (c *CLI) storyboardCommand() *cobra.Command {
	var opts storyboardOpts

	cmd := &cobra.Command{
		Use:   "storyboard [video|frame-dir]",
		Short: "Compose sampled frames into a storyboard grid",
		Long: `Storyboard samples the input at a fixed rate (default one frame per
second for video input) and tiles the thumbnails into a near-square PNG
grid, optionally stamping each tile with its timestamp.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.fps <= 0 {
				return errors.New(errors.ErrCodeInvalidConfig, "fps must be positive, got %v", opts.fps)
			}
			return c.runStoryboard(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "storyboard.png", "output PNG path")
	cmd.Flags().Float64Var(&opts.fps, "fps", 1, "sampling rate in frames per second")
	cmd.Flags().IntVar(&opts.columns, "columns", 0, "grid columns (0: near-square)")
	cmd.Flags().IntVar(&opts.thumbWidth, "thumb-width", 320, "thumbnail width in pixels")
	cmd.Flags().BoolVar(&opts.labels, "labels", false, "stamp each tile with its timestamp")
	cmd.Flags().StringVar(&opts.fontPath, "font", "", "TTF font for labels (default: built-in bitmap face)")
	cmd.Flags().Float64Var(&opts.fontSize, "font-size", 0, "label font size in points")

	return cmd
}

func (c *CLI) runStoryboard(ctx context.Context, input string, opts *storyboardOpts) error {
	logger := loggerFromContext(ctx)

	info, err := os.Stat(input)
	if err != nil {
		return fmt.Errorf("stat %s: %w", input, err)
	}

	frameDir := input
	if !info.IsDir() {
		workDir, err := os.MkdirTemp("", appName+"-storyboard-*")
		if err != nil {
			return fmt.Errorf("create work dir: %w", err)
		}
		defer os.RemoveAll(workDir)

		sp := newSpinnerWithContext(ctx, "Sampling frames...")
		sp.Start()
		err = media.ExtractFrames(ctx, input, workDir, opts.fps)
		sp.Stop()
		if err != nil {
			return err
		}
		frameDir = workDir
	}

	images, err := loadPNGs(frameDir)
	if err != nil {
		return err
	}
	logger.Infof("Composing %d tiles", len(images))

	atlas, err := render.Atlas(images, render.AtlasOptions{
		Columns:        opts.columns,
		ThumbWidth:     opts.thumbWidth,
		Labels:         opts.labels,
		SecondsPerTile: 1 / opts.fps,
		FontPath:       opts.fontPath,
		FontSize:       opts.fontSize,
	})
	if err != nil {
		return err
	}
	if err := imaging.Save(atlas, opts.output); err != nil {
		return fmt.Errorf("save %s: %w", opts.output, err)
	}

	printSuccess("Storyboard with %d tiles", len(images))
	printFile(opts.output)
	return nil
}

// loadPNGs opens every .png under dir in name order.
func loadPNGs(dir string) ([]image.Image, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", dir)
	}

	var paths []string
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ".png") {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)
	if len(paths) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no PNG frames in %s", dir)
	}

	images := make([]image.Image, 0, len(paths))
	for _, p := range paths {
		img, err := imaging.Open(p)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode %s", p)
		}
		images = append(images, img)
	}
	return images, nil
}
