package render

import (
	"image"
	"testing"

	"github.com/mirrorlight/neuro/pkg/errors"
	"github.com/mirrorlight/neuro/pkg/frame"
)

func frames(t *testing.T, n, w, h int) []*frame.Frame {
	t.Helper()
	out := make([]*frame.Frame, n)
	for i := range out {
		f, err := frame.New(w, h)
		if err != nil {
			t.Fatalf("frame.New: %v", err)
		}
		for j := range f.Pix {
			f.Pix[j] = uint8(40 * (i + 1))
		}
		out[i] = f
	}
	return out
}

func TestAtlasAutoGridIsNearSquare(t *testing.T) {
	// 7 tiles auto-size to ceil(sqrt(7)) = 3 columns, 3 rows.
	img, err := Atlas(Images(frames(t, 7, 20, 10)), AtlasOptions{})
	if err != nil {
		t.Fatalf("Atlas: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != 3*20 || b.Dy() != 3*10 {
		t.Errorf("atlas = %dx%d, want %dx%d", b.Dx(), b.Dy(), 3*20, 3*10)
	}
}

func TestAtlasFixedColumns(t *testing.T) {
	img, err := Atlas(Images(frames(t, 6, 16, 8)), AtlasOptions{Columns: 2})
	if err != nil {
		t.Fatalf("Atlas: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != 2*16 || b.Dy() != 3*8 {
		t.Errorf("atlas = %dx%d, want %dx%d", b.Dx(), b.Dy(), 2*16, 3*8)
	}
}

func TestAtlasThumbWidthScales(t *testing.T) {
	img, err := Atlas(Images(frames(t, 2, 64, 32)), AtlasOptions{Columns: 2, ThumbWidth: 16})
	if err != nil {
		t.Fatalf("Atlas: %v", err)
	}
	// Aspect ratio 2:1 preserved: 16x8 tiles.
	b := img.Bounds()
	if b.Dx() != 32 || b.Dy() != 8 {
		t.Errorf("atlas = %dx%d, want 32x8", b.Dx(), b.Dy())
	}
}

func TestAtlasEmptyInput(t *testing.T) {
	if _, err := Atlas(nil, AtlasOptions{}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("error = %v, want INVALID_INPUT", err)
	}
}

func TestAtlasLabels(t *testing.T) {
	plain, err := Atlas(Images(frames(t, 4, 60, 40)), AtlasOptions{Columns: 2})
	if err != nil {
		t.Fatalf("Atlas: %v", err)
	}
	labeled, err := Atlas(Images(frames(t, 4, 60, 40)), AtlasOptions{Columns: 2, Labels: true})
	if err != nil {
		t.Fatalf("Atlas with labels: %v", err)
	}
	if labeled.Bounds() != plain.Bounds() {
		t.Fatalf("labels changed atlas dimensions: %v vs %v", labeled.Bounds(), plain.Bounds())
	}
	if imagesEqual(plain, labeled) {
		t.Error("labeled atlas should differ from the plain one")
	}
}

func TestAtlasLabelFontMissing(t *testing.T) {
	_, err := Atlas(Images(frames(t, 1, 20, 20)), AtlasOptions{Labels: true, FontPath: "/nonexistent.ttf"})
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestSpriteLayout(t *testing.T) {
	img, err := Sprite(frames(t, 6, 640, 320))
	if err != nil {
		t.Fatalf("Sprite: %v", err)
	}
	b := img.Bounds()
	// 5 columns of 320px tiles, two rows, aspect 2:1 -> 160px tall.
	if b.Dx() != 5*320 || b.Dy() != 2*160 {
		t.Errorf("sprite = %dx%d, want %dx%d", b.Dx(), b.Dy(), 5*320, 2*160)
	}
}

func TestFormatSeconds(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "00s"},
		{7, "07s"},
		{42, "42s"},
		{7.5, "7.5s"},
	}
	for _, tt := range tests {
		if got := formatSeconds(tt.in); got != tt.want {
			t.Errorf("formatSeconds(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func imagesEqual(a, b image.Image) bool {
	if a.Bounds() != b.Bounds() {
		return false
	}
	for y := a.Bounds().Min.Y; y < a.Bounds().Max.Y; y++ {
		for x := a.Bounds().Min.X; x < a.Bounds().Max.X; x++ {
			ar, ag, ab, _ := a.At(x, y).RGBA()
			br, bg, bb, _ := b.At(x, y).RGBA()
			if ar != br || ag != bg || ab != bb {
				return false
			}
		}
	}
	return true
}
