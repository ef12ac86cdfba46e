package source

import (
	"context"
	"math"
	"path/filepath"
	"testing"

	"github.com/mirrorlight/neuro/pkg/errors"
	"github.com/mirrorlight/neuro/pkg/frame"
)

func TestPNGDirRoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	sink, err := NewPNGDirSink(dir)
	if err != nil {
		t.Fatalf("NewPNGDirSink: %v", err)
	}
	for i := 0; i < 3; i++ {
		f, _ := frame.New(8, 6)
		for j := range f.Pix {
			f.Pix[j] = uint8(i * 50)
		}
		if err := sink.Write(ctx, f); err != nil {
			t.Fatalf("Write frame %d: %v", i, err)
		}
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("Close sink: %v", err)
	}

	src, err := NewPNGDirSource(dir, 24)
	if err != nil {
		t.Fatalf("NewPNGDirSource: %v", err)
	}
	defer src.Close()

	if src.Len() != 3 {
		t.Fatalf("Len = %d, want 3", src.Len())
	}
	for i := 0; i < 3; i++ {
		f, err := src.Next(ctx)
		if err != nil {
			t.Fatalf("Next %d: %v", i, err)
		}
		if f == nil {
			t.Fatalf("Next %d returned nil before end", i)
		}
		if f.Width != 8 || f.Height != 6 {
			t.Errorf("frame %d dimensions = %dx%d", i, f.Width, f.Height)
		}
		if f.Pix[0] != uint8(i*50) {
			t.Errorf("frame %d sample = %d, want %d", i, f.Pix[0], i*50)
		}
		wantTS := float64(i) / 24
		if math.Abs(f.Timestamp-wantTS) > 1e-9 {
			t.Errorf("frame %d timestamp = %v, want %v", i, f.Timestamp, wantTS)
		}
	}

	// Past the end: (nil, nil)
	f, err := src.Next(ctx)
	if err != nil || f != nil {
		t.Errorf("Next past end = (%v, %v), want (nil, nil)", f, err)
	}
}

func TestPNGDirSourceErrors(t *testing.T) {
	if _, err := NewPNGDirSource(t.TempDir(), 0); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("zero fps error = %v, want INVALID_CONFIG", err)
	}
	if _, err := NewPNGDirSource(t.TempDir(), 24); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("empty dir error = %v, want INVALID_INPUT", err)
	}
	if _, err := NewPNGDirSource(filepath.Join(t.TempDir(), "nope"), 24); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing dir error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestPNGDirSourceRespectsContext(t *testing.T) {
	dir := t.TempDir()
	sink, _ := NewPNGDirSink(dir)
	f, _ := frame.New(2, 2)
	_ = sink.Write(context.Background(), f)

	src, err := NewPNGDirSource(dir, 24)
	if err != nil {
		t.Fatalf("NewPNGDirSource: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := src.Next(ctx); err == nil {
		t.Error("Next with cancelled context should fail")
	}
}
