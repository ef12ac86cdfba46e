// Package frame defines the unit of work for the effects pipeline: a
// rectangular raster of 8-bit RGB samples stamped with the timestamp at
// which it occurs in its clip.
//
// Frames convert losslessly to and from image.NRGBA so the pipeline can
// hand buffers to the imaging stack (blur, resize) and take them back.
// Every stage contract in pkg/effects and pkg/transition preserves frame
// dimensions and keeps samples clamped to [0,255].
package frame

import (
	"image"
	"image/color"

	"github.com/mirrorlight/neuro/pkg/errors"
)

// Channels is the number of interleaved samples per pixel.
const Channels = 3

// Frame is a rectangular RGB raster plus the timestamp (seconds) at
// which it occurs. Pix holds width*height*Channels samples in row-major
// order.
type Frame struct {
	Width     int
	Height    int
	Pix       []uint8
	Timestamp float64
}

// New allocates a zeroed (black) frame of the given dimensions.
func New(width, height int) (*Frame, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "frame dimensions must be positive, got %dx%d", width, height)
	}
	return &Frame{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*Channels),
	}, nil
}

// Validate checks the frame invariants: positive dimensions and a pixel
// buffer of exactly width*height*Channels samples.
func (f *Frame) Validate() error {
	if f == nil {
		return errors.New(errors.ErrCodeInvalidFrame, "nil frame")
	}
	if f.Width <= 0 || f.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidFrame, "empty frame: %dx%d", f.Width, f.Height)
	}
	if len(f.Pix) != f.Width*f.Height*Channels {
		return errors.New(errors.ErrCodeInvalidFrame,
			"pixel buffer is %d samples, want %d (%dx%dx%d)",
			len(f.Pix), f.Width*f.Height*Channels, f.Width, f.Height, Channels)
	}
	return nil
}

// Clone returns a deep copy sharing no pixel storage with f.
func (f *Frame) Clone() *Frame {
	pix := make([]uint8, len(f.Pix))
	copy(pix, f.Pix)
	return &Frame{Width: f.Width, Height: f.Height, Pix: pix, Timestamp: f.Timestamp}
}

// At returns the RGB sample at (x, y). Out-of-range coordinates are the
// caller's bug; no bounds check is performed beyond the slice's own.
func (f *Frame) At(x, y int) (r, g, b uint8) {
	i := (y*f.Width + x) * Channels
	return f.Pix[i], f.Pix[i+1], f.Pix[i+2]
}

// Set writes the RGB sample at (x, y).
func (f *Frame) Set(x, y int, r, g, b uint8) {
	i := (y*f.Width + x) * Channels
	f.Pix[i], f.Pix[i+1], f.Pix[i+2] = r, g, b
}

// FromImage converts an image to a frame, flattening any alpha against
// black. The timestamp is left at zero for the caller to stamp.
func FromImage(img image.Image) (*Frame, error) {
	bounds := img.Bounds()
	f, err := New(bounds.Dx(), bounds.Dy())
	if err != nil {
		return nil, err
	}
	// Fast path for the NRGBA layout produced by the imaging stack.
	if src, ok := img.(*image.NRGBA); ok {
		i := 0
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			row := src.Pix[(y-bounds.Min.Y)*src.Stride:]
			for x := 0; x < f.Width; x++ {
				f.Pix[i] = row[x*4]
				f.Pix[i+1] = row[x*4+1]
				f.Pix[i+2] = row[x*4+2]
				i += Channels
			}
		}
		return f, nil
	}
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			f.Pix[i], f.Pix[i+1], f.Pix[i+2] = c.R, c.G, c.B
			i += Channels
		}
	}
	return f, nil
}

// ToImage converts the frame to an opaque NRGBA image.
func (f *Frame) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, f.Width, f.Height))
	i := 0
	for y := 0; y < f.Height; y++ {
		row := img.Pix[y*img.Stride:]
		for x := 0; x < f.Width; x++ {
			row[x*4] = f.Pix[i]
			row[x*4+1] = f.Pix[i+1]
			row[x*4+2] = f.Pix[i+2]
			row[x*4+3] = 0xff
			i += Channels
		}
	}
	return img
}

// ClampU8 clamps v to [0,255] and converts to uint8.
func ClampU8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
