package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mirrorlight/neuro/pkg/errors"
	"github.com/mirrorlight/neuro/pkg/palette"
	"github.com/mirrorlight/neuro/pkg/pipeline"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "neuro.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
[effects]
edge_strength = 0.2
breath_period = 4.0

[transitions]
zoom_in = 1.5
blink_duration = 0.3

[media]
fps = 30.0

[palette]
violet = "#aa00ff"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Effects.EdgeStrength != 0.2 {
		t.Errorf("EdgeStrength = %v, want 0.2", cfg.Effects.EdgeStrength)
	}
	if cfg.Transitions.ZoomIn != 1.5 {
		t.Errorf("ZoomIn = %v, want 1.5", cfg.Transitions.ZoomIn)
	}
	if cfg.FPS(24) != 30 {
		t.Errorf("FPS = %v, want 30", cfg.FPS(24))
	}

	pal, err := cfg.BuildPalette()
	if err != nil {
		t.Fatalf("BuildPalette: %v", err)
	}
	if (pal.Violet != palette.Color{R: 0xaa, G: 0x00, B: 0xff}) {
		t.Errorf("Violet override = %+v", pal.Violet)
	}
	// Untouched entries keep defaults.
	if pal.Azure != palette.Default().Azure {
		t.Errorf("Azure should keep its default, got %+v", pal.Azure)
	}
}

func TestLoadConfigMissing(t *testing.T) {
	// Implicit default path that does not exist: empty config, no error.
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig(\"\"): %v", err)
	}
	if cfg.FPS(24) != 24 {
		t.Errorf("empty config FPS fallback = %v, want 24", cfg.FPS(24))
	}

	// Explicit path that does not exist is an error.
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("explicit missing config error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestLoadConfigRejectsBadPalette(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown entry", "[palette]\nchartreuse = \"#00ff00\"\n"},
		{"short hex", "[palette]\nviolet = \"#ff\"\n"},
		{"garbage hex", "[palette]\nviolet = \"#zzzzzz\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			if _, err := LoadConfig(path); err == nil {
				t.Error("LoadConfig should reject bad palette entries")
			}
		})
	}
}

func TestLoadConfigRejectsBadTOML(t *testing.T) {
	path := writeConfig(t, "not [valid toml")
	if _, err := LoadConfig(path); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("error = %v, want INVALID_CONFIG", err)
	}
}

func TestConfigApplyTo(t *testing.T) {
	path := writeConfig(t, `
[effects]
edge_strength = 0.25
glow_intensity = 0.4
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}

	// Zero-valued options pick up config values.
	var opts pipeline.Options
	if err := cfg.ApplyTo(&opts); err != nil {
		t.Fatal(err)
	}
	if opts.EdgeStrength != 0.25 || opts.GlowIntensity != 0.4 {
		t.Errorf("config not applied: %+v", opts)
	}

	// Flag-set options win over config.
	opts = pipeline.Options{EdgeStrength: 0.9}
	if err := cfg.ApplyTo(&opts); err != nil {
		t.Fatal(err)
	}
	if opts.EdgeStrength != 0.9 {
		t.Errorf("explicit option overwritten: %v", opts.EdgeStrength)
	}
}
