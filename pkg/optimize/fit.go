package optimize

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"github.com/mirrorlight/neuro/pkg/errors"
)

// Presentation canvas dimensions.
const (
	TargetWidth  = 1920
	TargetHeight = 1080
)

// FitAndPad scales img to fit inside width x height preserving aspect
// ratio, then centers it on a black canvas of exactly those
// dimensions.
func FitAndPad(img image.Image, width, height int) (image.Image, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "target dimensions must be positive, got %dx%d", width, height)
	}
	fitted := imaging.Fit(img, width, height, imaging.Lanczos)
	canvas := imaging.New(width, height, color.NRGBA{A: 0xff})
	return imaging.PasteCenter(canvas, fitted), nil
}
