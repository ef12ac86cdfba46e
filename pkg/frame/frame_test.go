package frame

import (
	"image"
	"image/color"
	"testing"

	"github.com/mirrorlight/neuro/pkg/errors"
)

func TestNew(t *testing.T) {
	f, err := New(4, 3)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if f.Width != 4 || f.Height != 3 {
		t.Errorf("dimensions = %dx%d, want 4x3", f.Width, f.Height)
	}
	if len(f.Pix) != 4*3*Channels {
		t.Errorf("len(Pix) = %d, want %d", len(f.Pix), 4*3*Channels)
	}
	if err := f.Validate(); err != nil {
		t.Errorf("Validate on fresh frame: %v", err)
	}
}

func TestNewRejectsDegenerate(t *testing.T) {
	tests := []struct {
		name string
		w, h int
	}{
		{"ZeroWidth", 0, 10},
		{"ZeroHeight", 10, 0},
		{"Negative", -1, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.w, tt.h)
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("New(%d,%d) error = %v, want INVALID_CONFIG", tt.w, tt.h, err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	var nilFrame *Frame
	if !errors.Is(nilFrame.Validate(), errors.ErrCodeInvalidFrame) {
		t.Error("nil frame should be INVALID_FRAME")
	}

	f := &Frame{Width: 2, Height: 2, Pix: make([]uint8, 5)}
	if !errors.Is(f.Validate(), errors.ErrCodeInvalidFrame) {
		t.Error("short pixel buffer should be INVALID_FRAME")
	}
}

func TestCloneIsDeep(t *testing.T) {
	f, _ := New(2, 2)
	f.Set(1, 1, 10, 20, 30)
	f.Timestamp = 1.5

	c := f.Clone()
	c.Set(1, 1, 99, 99, 99)

	if r, g, b := f.At(1, 1); r != 10 || g != 20 || b != 30 {
		t.Errorf("mutating clone changed original: %d %d %d", r, g, b)
	}
	if c.Timestamp != 1.5 {
		t.Errorf("clone timestamp = %v, want 1.5", c.Timestamp)
	}
}

func TestImageRoundTrip(t *testing.T) {
	f, _ := New(3, 2)
	f.Set(0, 0, 1, 2, 3)
	f.Set(2, 1, 250, 128, 7)

	back, err := FromImage(f.ToImage())
	if err != nil {
		t.Fatalf("FromImage: %v", err)
	}
	if back.Width != f.Width || back.Height != f.Height {
		t.Fatalf("dimensions changed: %dx%d", back.Width, back.Height)
	}
	for i := range f.Pix {
		if f.Pix[i] != back.Pix[i] {
			t.Fatalf("sample %d changed: %d -> %d", i, f.Pix[i], back.Pix[i])
		}
	}
}

func TestFromImageGeneric(t *testing.T) {
	// Non-NRGBA images take the generic conversion path.
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.RGBA{R: 10, G: 20, B: 30, A: 255})
	img.Set(1, 0, color.RGBA{R: 40, G: 50, B: 60, A: 255})

	f, err := FromImage(img)
	if err != nil {
		t.Fatalf("FromImage: %v", err)
	}
	if r, g, b := f.At(0, 0); r != 10 || g != 20 || b != 30 {
		t.Errorf("pixel (0,0) = %d %d %d", r, g, b)
	}
	if r, g, b := f.At(1, 0); r != 40 || g != 50 || b != 60 {
		t.Errorf("pixel (1,0) = %d %d %d", r, g, b)
	}
}

func TestClampU8(t *testing.T) {
	tests := []struct {
		in   float64
		want uint8
	}{
		{-3, 0},
		{0, 0},
		{127.7, 127},
		{255, 255},
		{300, 255},
	}
	for _, tt := range tests {
		if got := ClampU8(tt.in); got != tt.want {
			t.Errorf("ClampU8(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
