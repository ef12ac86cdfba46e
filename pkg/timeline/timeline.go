package timeline

import (
	"encoding/json"
	"os"

	"github.com/mirrorlight/neuro/pkg/errors"
	"github.com/mirrorlight/neuro/pkg/overlay"
)

// defaultStep spaces the fallback timeline's segments one second apart.
const defaultStep = 1.0

type segmentJSON struct {
	EmotionID   int      `json:"emotion_id"`
	Hex         string   `json:"hex"`
	StartTime   float64  `json:"start_time"`
	Duration    float64  `json:"duration"`
	OverlayType string   `json:"overlay_type"`
	Intensity   *float64 `json:"intensity"`
}

// Load reads a JSON timeline file into an overlay timeline. Missing
// overlay_type defaults to tint and missing intensity to the overlay
// default; colors must be valid RRGGBBAA hex.
func Load(path string) (overlay.Timeline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "timeline file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read timeline %s", path)
	}

	var raw []segmentJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse timeline %s", path)
	}

	tl := make(overlay.Timeline, 0, len(raw))
	for _, item := range raw {
		c, err := overlay.ParseHex(item.Hex)
		if err != nil {
			return nil, err
		}
		shape := overlay.Shape(item.OverlayType)
		if item.OverlayType == "" {
			shape = overlay.ShapeTint
		}
		intensity := overlay.DefaultIntensity
		if item.Intensity != nil {
			intensity = *item.Intensity
		}
		tl = append(tl, overlay.Segment{
			ID:        item.EmotionID,
			Color:     c,
			Start:     item.StartTime,
			Duration:  item.Duration,
			Shape:     shape,
			Intensity: intensity,
		})
	}
	if err := tl.Validate(); err != nil {
		return nil, err
	}
	return tl, nil
}

// Default builds the fallback timeline: one tint segment per color,
// one second each, back to back in the given order.
func Default(colors []overlay.Color) overlay.Timeline {
	tl := make(overlay.Timeline, len(colors))
	for i, c := range colors {
		tl[i] = overlay.Segment{
			ID:        i,
			Color:     c,
			Start:     float64(i) * defaultStep,
			Duration:  defaultStep,
			Shape:     overlay.ShapeTint,
			Intensity: overlay.DefaultIntensity,
		}
	}
	return tl
}
