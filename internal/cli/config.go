package cli

import (
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/mirrorlight/neuro/pkg/errors"
	"github.com/mirrorlight/neuro/pkg/palette"
	"github.com/mirrorlight/neuro/pkg/pipeline"
)

// defaultConfigFile is picked up from the working directory when no
// --config flag is given.
const defaultConfigFile = "neuro.toml"

// Config carries the optional neuro.toml settings. Zero values mean
// "use the built-in default"; flags override config values.
type Config struct {
	Effects struct {
		EdgeStrength  float64 `toml:"edge_strength"`
		GlowIntensity float64 `toml:"glow_intensity"`
		BreathPeriod  float64 `toml:"breath_period"`
		NoiseDensity  float64 `toml:"noise_density"`
	} `toml:"effects"`

	Transitions struct {
		ZoomIn        float64 `toml:"zoom_in"`
		ZoomOut       float64 `toml:"zoom_out"`
		BlinkDuration float64 `toml:"blink_duration"`
	} `toml:"transitions"`

	Media struct {
		FPS     float64 `toml:"fps"`
		Codec   string  `toml:"codec"`
		Bitrate string  `toml:"bitrate"`
	} `toml:"media"`

	Cache struct {
		Redis string `toml:"redis"`
	} `toml:"cache"`

	// Palette maps color names (deep_night, violet, azure, purple,
	// dark_blue) to #rrggbb overrides.
	Palette map[string]string `toml:"palette"`
}

// LoadConfig reads the TOML config at path. An empty path falls back to
// ./neuro.toml; a missing file is not an error and yields an empty
// config.
func LoadConfig(path string) (*Config, error) {
	explicit := path != ""
	if path == "" {
		path = defaultConfigFile
	}

	var cfg Config
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if explicit {
			return nil, errors.New(errors.ErrCodeFileNotFound, "config file %s not found", path)
		}
		return &cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if _, err := cfg.BuildPalette(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ApplyTo fills zero-valued pipeline options from the config.
func (c *Config) ApplyTo(opts *pipeline.Options) error {
	if opts.EdgeStrength == 0 {
		opts.EdgeStrength = c.Effects.EdgeStrength
	}
	if opts.GlowIntensity == 0 {
		opts.GlowIntensity = c.Effects.GlowIntensity
	}
	if opts.BreathPeriod == 0 {
		opts.BreathPeriod = c.Effects.BreathPeriod
	}
	if opts.NoiseDensity == 0 && !opts.DisableNoise {
		opts.NoiseDensity = c.Effects.NoiseDensity
	}
	pal, err := c.BuildPalette()
	if err != nil {
		return err
	}
	opts.Palette = pal
	return nil
}

// FPS returns the configured frame rate, falling back to def.
func (c *Config) FPS(def float64) float64 {
	if c.Media.FPS > 0 {
		return c.Media.FPS
	}
	return def
}

// BuildPalette returns the default palette with any [palette] overrides
// applied.
func (c *Config) BuildPalette() (palette.Palette, error) {
	pal := palette.Default()
	for name, hex := range c.Palette {
		col, err := parsePaletteHex(hex)
		if err != nil {
			return pal, errors.Wrap(errors.ErrCodeInvalidConfig, err, "palette entry %q", name)
		}
		switch strings.ToLower(name) {
		case "deep_night":
			pal.DeepNight = col
		case "violet":
			pal.Violet = col
		case "azure":
			pal.Azure = col
		case "purple":
			pal.Purple = col
		case "dark_blue":
			pal.DarkBlue = col
		default:
			return pal, errors.New(errors.ErrCodeInvalidConfig, "unknown palette entry %q", name)
		}
	}
	return pal, nil
}

// parsePaletteHex parses an opaque #rrggbb color. Overlay colors carry
// alpha and parse elsewhere; the palette is always opaque.
func parsePaletteHex(s string) (palette.Color, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return palette.Color{}, errors.New(errors.ErrCodeInvalidColor, "expected rrggbb, got %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return palette.Color{}, errors.Wrap(errors.ErrCodeInvalidColor, err, "parse %q", s)
	}
	return palette.Color{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
	}, nil
}
