package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mirrorlight/neuro/pkg/optimize"
)

// optimizeCommand creates the optimize command: lossless-ish re-encoding
// of PNG and JPEG assets, keeping the result only when it is smaller.
func (c *CLI) optimizeCommand() *cobra.Command {
	var (
		quality int
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "optimize [file|dir]",
		Short: "Re-encode images in place when that shrinks them",
		Long: `Optimize re-encodes PNG files at maximum compression and JPEG files at
the given quality, replacing each file only when the re-encoded version
is smaller. Visited files are recorded in a content-hash cache, so
repeated runs over an unchanged tree are cheap.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runOptimize(cmd.Context(), args[0], quality, noCache)
		},
	}

	cmd.Flags().IntVar(&quality, "quality", optimize.DefaultJPEGQuality, "JPEG re-encode quality")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the visited-file cache")

	return cmd
}

func (c *CLI) runOptimize(ctx context.Context, path string, quality int, noCache bool) error {
	backend, err := newCache(ctx, noCache, c.Config.Cache.Redis)
	if err != nil {
		return err
	}
	defer backend.Close()

	o := optimize.New(backend)
	o.Quality = quality

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	var results []optimize.Result
	if info.IsDir() {
		results, err = o.Dir(ctx, path)
	} else {
		var res optimize.Result
		res, err = o.File(ctx, path)
		results = append(results, res)
	}
	if err != nil {
		return err
	}

	var replaced, skipped int
	var saved int64
	for _, res := range results {
		saved += res.Saved()
		switch {
		case res.Replaced:
			replaced++
			printDetail("%s: %d → %d bytes", res.Path, res.OriginalSize, res.NewSize)
		case res.Cached:
			skipped++
		}
	}

	printSuccess("Optimized %d of %d images, saved %d bytes", replaced, len(results), saved)
	if skipped > 0 {
		printDetail("%d unchanged files skipped via cache", skipped)
	}
	return nil
}
