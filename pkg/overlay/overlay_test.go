package overlay

import (
	"testing"

	"github.com/mirrorlight/neuro/pkg/errors"
	"github.com/mirrorlight/neuro/pkg/frame"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Color
		wantErr bool
	}{
		{"Bare", "7d5bffaa", Color{0x7d, 0x5b, 0xff, 0xaa}, false},
		{"Prefixed", "#7d5bffaa", Color{0x7d, 0x5b, 0xff, 0xaa}, false},
		{"Uppercase", "#7D5BFFAA", Color{0x7d, 0x5b, 0xff, 0xaa}, false},
		{"Garbage", "zzzzzzzz", Color{}, true},
		{"TooShort", "#7d5bff", Color{}, true},
		{"TooLong", "#7d5bffaa00", Color{}, true},
		{"Empty", "", Color{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseHex(tt.in)
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeInvalidColor) {
					t.Fatalf("ParseHex(%q) error = %v, want INVALID_COLOR", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseHex(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseHex(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestColorHexRoundTrip(t *testing.T) {
	c := Color{0x7d, 0x5b, 0xff, 0xaa}
	back, err := ParseHex(c.Hex())
	if err != nil {
		t.Fatalf("ParseHex: %v", err)
	}
	if back != c {
		t.Errorf("round trip changed color: %+v -> %+v", c, back)
	}
}

func TestSelect(t *testing.T) {
	tl := Timeline{
		{ID: 0, Start: 0, Duration: 1, Shape: ShapeTint, Intensity: 0.35},
		{ID: 1, Start: 1, Duration: 1, Shape: ShapeTint, Intensity: 0.35},
	}

	tests := []struct {
		name   string
		t      float64
		wantID int
	}{
		{"FirstSegment", 0.5, 0},
		{"SecondSegment", 1.5, 1},
		{"BoundaryBelongsToNext", 1.0, 1},
		{"PastEndFallsBackToLast", 5.0, 1},
		{"BeforeStartFallsBackToLast", -1.0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seg, ok := tl.Select(tt.t)
			if !ok {
				t.Fatalf("Select(%v) found nothing", tt.t)
			}
			if seg.ID != tt.wantID {
				t.Errorf("Select(%v) = segment %d, want %d", tt.t, seg.ID, tt.wantID)
			}
		})
	}
}

func TestSelectEmptyTimeline(t *testing.T) {
	if _, ok := (Timeline{}).Select(1); ok {
		t.Error("empty timeline should select nothing")
	}
}

func TestSelectHonorsSpecificationOrderOnOverlap(t *testing.T) {
	tl := Timeline{
		{ID: 7, Start: 0, Duration: 10, Shape: ShapeTint, Intensity: 0.5},
		{ID: 8, Start: 2, Duration: 2, Shape: ShapeTint, Intensity: 0.5},
	}
	seg, ok := tl.Select(3)
	if !ok || seg.ID != 7 {
		t.Errorf("Select(3) = %+v, want first listed segment 7", seg)
	}
}

func TestSegmentValidate(t *testing.T) {
	tests := []struct {
		name string
		seg  Segment
		ok   bool
	}{
		{"Valid", Segment{Shape: ShapeRadial, Intensity: 1}, true},
		{"NegativeStart", Segment{Start: -1, Shape: ShapeTint}, false},
		{"NegativeDuration", Segment{Duration: -1, Shape: ShapeTint}, false},
		{"IntensityOverOne", Segment{Intensity: 1.5, Shape: ShapeTint}, false},
		{"UnknownShape", Segment{Shape: "spiral"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.seg.Validate()
			if tt.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tt.ok && !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Fatalf("error = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func grayFrame(t *testing.T, w, h int, v uint8) *frame.Frame {
	t.Helper()
	f, err := frame.New(w, h)
	if err != nil {
		t.Fatalf("frame.New: %v", err)
	}
	for i := range f.Pix {
		f.Pix[i] = v
	}
	return f
}

func TestApplyZeroIntensityIsIdentity(t *testing.T) {
	f := grayFrame(t, 8, 8, 99)
	out, err := Apply(f, Color{255, 0, 0, 255}, ShapeTint, 0)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	for i := range f.Pix {
		if out.Pix[i] != f.Pix[i] {
			t.Fatal("zero intensity modified the frame")
		}
	}
}

func TestApplyFullTintReplacesFrame(t *testing.T) {
	f := grayFrame(t, 8, 8, 40)
	c := Color{0x7d, 0x5b, 0xff, 0xff}
	out, err := Apply(f, c, ShapeTint, 1)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	for p := 0; p < 64; p++ {
		r, g, b := out.At(p%8, p/8)
		if r != c.R || g != c.G || b != c.B {
			t.Fatalf("pixel %d = (%d,%d,%d), want flat color", p, r, g, b)
		}
	}
}

func TestApplyRadialFadesOutward(t *testing.T) {
	f := grayFrame(t, 33, 33, 0)
	out, err := Apply(f, Color{0, 200, 0, 255}, ShapeRadial, 1)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	_, gCenter, _ := out.At(16, 16)
	_, gCorner, _ := out.At(0, 0)
	if gCenter <= gCorner {
		t.Errorf("radial overlay not centered: center=%d corner=%d", gCenter, gCorner)
	}
	if gCorner > 10 {
		t.Errorf("corner = %d, want near 0", gCorner)
	}
}

func TestEngineEmptyTimelinePassesThrough(t *testing.T) {
	e, err := NewEngine(nil)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	f := grayFrame(t, 4, 4, 123)
	out, err := e.ProcessFrame(f, 2.5)
	if err != nil {
		t.Fatalf("ProcessFrame: %v", err)
	}
	for i := range f.Pix {
		if out.Pix[i] != f.Pix[i] {
			t.Fatal("empty timeline modified the frame")
		}
	}
}

func TestEngineSelectsByTimestamp(t *testing.T) {
	tl := Timeline{
		{ID: 0, Color: Color{255, 0, 0, 255}, Start: 0, Duration: 1, Shape: ShapeTint, Intensity: 1},
		{ID: 1, Color: Color{0, 0, 255, 255}, Start: 1, Duration: 1, Shape: ShapeTint, Intensity: 1},
	}
	e, err := NewEngine(tl)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	f := grayFrame(t, 4, 4, 0)

	out, err := e.ProcessFrame(f, 0.5)
	if err != nil {
		t.Fatalf("ProcessFrame: %v", err)
	}
	if r, _, b := out.At(0, 0); r != 255 || b != 0 {
		t.Errorf("t=0.5 blended (%d,_,%d), want red segment", r, b)
	}

	out, err = e.ProcessFrame(f, 1.5)
	if err != nil {
		t.Fatalf("ProcessFrame: %v", err)
	}
	if r, _, b := out.At(0, 0); r != 0 || b != 255 {
		t.Errorf("t=1.5 blended (%d,_,%d), want blue segment", r, b)
	}
}

func TestEngineRejectsBadTimeline(t *testing.T) {
	_, err := NewEngine(Timeline{{Duration: -2, Shape: ShapeTint}})
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("error = %v, want INVALID_CONFIG", err)
	}
}
