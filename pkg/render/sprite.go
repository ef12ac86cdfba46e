package render

import (
	"image"

	"github.com/mirrorlight/neuro/pkg/frame"
)

// Sprite composes overlay preview frames into the standard sheet: five
// columns of 320px-wide tiles, no labels.
func Sprite(frames []*frame.Frame) (image.Image, error) {
	return Atlas(Images(frames), AtlasOptions{
		Columns:    DefaultSpriteColumns,
		ThumbWidth: DefaultSpriteWidth,
	})
}

// Images converts frames to images for atlas composition.
func Images(frames []*frame.Frame) []image.Image {
	out := make([]image.Image, len(frames))
	for i, f := range frames {
		out[i] = f.ToImage()
	}
	return out
}
