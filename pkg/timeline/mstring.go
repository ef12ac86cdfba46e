// Package timeline turns overlay configuration sources into typed
// overlay timelines: M-string emotion color maps, JSON segment files,
// and the evenly spaced default timeline used when neither is given.
package timeline

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/mirrorlight/neuro/pkg/overlay"
)

var (
	footerRe  = regexp.MustCompile(`emotion_map:\s*([^*]+)\*/`)
	lineRe    = regexp.MustCompile(`\|<-\s*([^:]+):`)
	hexBodyRe = regexp.MustCompile(`^#?[0-9A-Fa-f]{8}$`)
)

// Emotion pairs an emotion id with its overlay color.
type Emotion struct {
	ID    int
	Color overlay.Color
}

// ParseMString extracts emotion colors from an M-string document.
// Colors come from two places: the `emotion_map:` footer (entries
// `id@RRGGBBAA=...` separated by commas) and inline `|<- id@RRGGBBAA:`
// markers. Footer entries win over inline markers for the same id;
// malformed entries are skipped, not fatal.
//
// Emotions are returned in encounter order, footer first, which is the
// order the default timeline plays them in.
func ParseMString(text string) []Emotion {
	var emotions []Emotion
	index := make(map[int]int)

	// Footer entries insert in order; a repeated id keeps its first
	// position but takes the later color.
	record := func(id int, c overlay.Color, overwrite bool) {
		if i, seen := index[id]; seen {
			if overwrite {
				emotions[i].Color = c
			}
			return
		}
		index[id] = len(emotions)
		emotions = append(emotions, Emotion{ID: id, Color: c})
	}

	if m := footerRe.FindStringSubmatch(text); m != nil {
		for _, entry := range strings.Split(m[1], ",") {
			entry = strings.TrimSpace(entry)
			key, _, found := strings.Cut(entry, "=")
			if !found {
				continue
			}
			idPart, colorPart, found := strings.Cut(key, "@")
			if !found {
				continue
			}
			id, err := strconv.Atoi(strings.TrimSpace(idPart))
			if err != nil {
				continue
			}
			c, err := overlay.ParseHex(strings.TrimSpace(colorPart))
			if err != nil {
				continue
			}
			record(id, c, true)
		}
	}

	for _, m := range lineRe.FindAllStringSubmatch(text, -1) {
		idPart, colorPart, found := strings.Cut(m[1], "@")
		if !found {
			continue
		}
		id, err := strconv.Atoi(strings.TrimSpace(idPart))
		if err != nil {
			continue
		}
		colorPart = strings.TrimSpace(colorPart)
		if !hexBodyRe.MatchString(colorPart) {
			continue
		}
		c, err := overlay.ParseHex(colorPart)
		if err != nil {
			continue
		}
		record(id, c, false)
	}

	return emotions
}

// Colors flattens parsed emotions into their playback order.
func Colors(emotions []Emotion) []overlay.Color {
	out := make([]overlay.Color, len(emotions))
	for i, e := range emotions {
		out[i] = e.Color
	}
	return out
}
