package effects

import (
	"math"

	"github.com/mirrorlight/neuro/pkg/frame"
)

// DefaultEdgeStrength is the blend weight of the edge map.
const DefaultEdgeStrength = 0.15

// DefaultEdgeThreshold is the Sobel gradient magnitude above which a
// pixel counts as an edge.
const DefaultEdgeThreshold = 150.0

// EdgeEnhance overlays a hard edge map on the frame. Edges are detected
// with a Sobel operator over luminance, thresholded to a binary map and
// blended in as white lines.
type EdgeEnhance struct {
	Strength  float64
	Threshold float64
}

func (EdgeEnhance) Name() string { return "edge_enhance" }

// Apply blends the edge map over f: out = f·(1−strength) + edges·strength.
func (s EdgeEnhance) Apply(f *frame.Frame, _ float64) (*frame.Frame, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	lum := luminance(f)
	w, h := f.Width, f.Height

	out := f.Clone()
	i := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var edge float64
			if x > 0 && x < w-1 && y > 0 && y < h-1 {
				gx := -lum[(y-1)*w+x-1] + lum[(y-1)*w+x+1] +
					-2*lum[y*w+x-1] + 2*lum[y*w+x+1] +
					-lum[(y+1)*w+x-1] + lum[(y+1)*w+x+1]
				gy := -lum[(y-1)*w+x-1] - 2*lum[(y-1)*w+x] - lum[(y-1)*w+x+1] +
					lum[(y+1)*w+x-1] + 2*lum[(y+1)*w+x] + lum[(y+1)*w+x+1]
				if math.Hypot(gx, gy) >= s.Threshold {
					edge = 255
				}
			}
			for c := 0; c < frame.Channels; c++ {
				out.Pix[i+c] = frame.ClampU8(float64(f.Pix[i+c])*(1-s.Strength) + edge*s.Strength)
			}
			i += frame.Channels
		}
	}
	return out, nil
}

// luminance flattens the frame to ITU-R BT.601 luma.
func luminance(f *frame.Frame) []float64 {
	lum := make([]float64, f.Width*f.Height)
	for p := range lum {
		i := p * frame.Channels
		lum[p] = 0.299*float64(f.Pix[i]) + 0.587*float64(f.Pix[i+1]) + 0.114*float64(f.Pix[i+2])
	}
	return lum
}
