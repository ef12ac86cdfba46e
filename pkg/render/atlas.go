// Package render composes frame thumbnails into PNG atlases: the
// near-square storyboard grid with optional timestamp labels, and the
// fixed-column sprite sheet used to preview overlay frames.
package render

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/mirrorlight/neuro/pkg/errors"
)

// DefaultSpriteColumns and DefaultSpriteWidth match the overlay
// preview sheet: five tiles per row, each 320px wide.
const (
	DefaultSpriteColumns = 5
	DefaultSpriteWidth   = 320
)

// AtlasOptions controls grid shape and labeling.
type AtlasOptions struct {
	// Columns fixes the grid width; zero auto-sizes to a near-square
	// grid (ceil of the square root of the tile count).
	Columns int

	// ThumbWidth scales every tile to this width, keeping aspect
	// ratio. Zero keeps the original frame size.
	ThumbWidth int

	// Labels draws a timestamp in the corner of each tile.
	Labels bool

	// SecondsPerTile converts a tile index to its label timestamp.
	// Zero means one second per tile.
	SecondsPerTile float64

	// FontPath optionally loads a TTF for labels; empty falls back to
	// the built-in bitmap face.
	FontPath string
	FontSize float64
}

// Atlas tiles the images row-major onto a black canvas. All tiles take
// the dimensions of the first image after scaling; later images are
// resized to fit.
func Atlas(images []image.Image, opts AtlasOptions) (image.Image, error) {
	if len(images) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no frames to compose into an atlas")
	}

	cols := opts.Columns
	if cols <= 0 {
		cols = int(math.Ceil(math.Sqrt(float64(len(images)))))
	}
	rows := (len(images) + cols - 1) / cols

	first := images[0]
	tileW := first.Bounds().Dx()
	tileH := first.Bounds().Dy()
	if opts.ThumbWidth > 0 {
		scale := float64(opts.ThumbWidth) / float64(tileW)
		tileW = opts.ThumbWidth
		tileH = int(float64(tileH) * scale)
	}
	if tileW <= 0 || tileH <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "degenerate tile size %dx%d", tileW, tileH)
	}

	canvas := imaging.New(cols*tileW, rows*tileH, color.NRGBA{A: 0xff})
	for i, img := range images {
		tile := imaging.Resize(img, tileW, tileH, imaging.Lanczos)
		x := (i % cols) * tileW
		y := (i / cols) * tileH
		canvas = imaging.Paste(canvas, tile, image.Pt(x, y))
	}

	if !opts.Labels {
		return canvas, nil
	}
	return drawLabels(canvas, len(images), cols, tileW, tileH, opts)
}

// drawLabels stamps a timestamp with a dark backing box into the top
// left corner of every tile.
func drawLabels(canvas image.Image, n, cols, tileW, tileH int, opts AtlasOptions) (image.Image, error) {
	dc := gg.NewContextForImage(canvas)

	if opts.FontPath != "" {
		size := opts.FontSize
		if size <= 0 {
			size = 20
		}
		if err := dc.LoadFontFace(opts.FontPath, size); err != nil {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "label font %s", opts.FontPath)
		}
	} else {
		dc.SetFontFace(basicfont.Face7x13)
	}

	step := opts.SecondsPerTile
	if step <= 0 {
		step = 1
	}
	for i := 0; i < n; i++ {
		label := gg.Point{
			X: float64((i%cols)*tileW) + 10,
			Y: float64((i/cols)*tileH) + 10,
		}
		text := formatSeconds(float64(i) * step)
		tw, th := dc.MeasureString(text)

		dc.SetRGBA(0, 0, 0, 0.7)
		dc.DrawRectangle(label.X-4, label.Y-4, tw+8, th+8)
		dc.Fill()

		dc.SetRGB(1, 1, 1)
		dc.DrawString(text, label.X, label.Y+th)
	}
	return dc.Image(), nil
}

// formatSeconds renders whole seconds as "07s" and fractional ones as
// "7.5s".
func formatSeconds(s float64) string {
	if s == math.Trunc(s) {
		return fmt.Sprintf("%02ds", int(s))
	}
	return fmt.Sprintf("%.1fs", s)
}
