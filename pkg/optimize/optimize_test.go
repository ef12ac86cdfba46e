package optimize

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/mirrorlight/neuro/pkg/cache"
	"github.com/mirrorlight/neuro/pkg/errors"
)

// writeLoosePNG writes a PNG with no compression, guaranteeing the
// optimizer can shrink it.
func writeLoosePNG(t *testing.T, path string, w, h int) int64 {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = uint8(i % 7 * 30)
	}
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.NoCompression}
	if err := enc.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	return int64(buf.Len())
}

// writeNoisePNG writes an already well-compressed PNG of random noise.
func writeNoisePNG(t *testing.T, path string) int64 {
	t.Helper()
	rng := rand.New(rand.NewSource(3))
	img := image.NewNRGBA(image.Rect(0, 0, 32, 32))
	for i := range img.Pix {
		img.Pix[i] = uint8(rng.Intn(256))
	}
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	return int64(buf.Len())
}

func TestFileShrinksLoosePNG(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "loose.png")
	orig := writeLoosePNG(t, path, 64, 64)

	res, err := New(nil).File(ctx, path)
	if err != nil {
		t.Fatalf("File: %v", err)
	}
	if !res.Replaced {
		t.Fatal("loose PNG should be replaced")
	}
	if res.NewSize >= orig || res.Saved() <= 0 {
		t.Errorf("new size %d not smaller than %d", res.NewSize, orig)
	}
	info, _ := os.Stat(path)
	if info.Size() != res.NewSize {
		t.Errorf("on-disk size %d != reported %d", info.Size(), res.NewSize)
	}

	// Still decodable after replacement.
	data, _ := os.ReadFile(path)
	if _, err := png.Decode(bytes.NewReader(data)); err != nil {
		t.Errorf("optimized file no longer decodes: %v", err)
	}
}

func TestFileKeepsCompactPNG(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "noise.png")
	orig := writeNoisePNG(t, path)

	res, err := New(nil).File(ctx, path)
	if err != nil {
		t.Fatalf("File: %v", err)
	}
	if res.Replaced {
		t.Error("already-compact PNG should be kept")
	}
	info, _ := os.Stat(path)
	if info.Size() != orig {
		t.Errorf("file changed size: %d -> %d", orig, info.Size())
	}
}

func TestFileCacheSkipsSecondRun(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "img.png")
	writeLoosePNG(t, path, 32, 32)

	c, err := cache.NewFileCache(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatal(err)
	}
	o := New(c)

	first, err := o.File(ctx, path)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if first.Cached {
		t.Fatal("first run should not be cached")
	}

	second, err := o.File(ctx, path)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if !second.Cached {
		t.Error("second run over unchanged file should hit the cache")
	}
}

func TestFileErrors(t *testing.T) {
	ctx := context.Background()
	o := New(nil)

	if _, err := o.File(ctx, "image.bmp"); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("unsupported ext error = %v", err)
	}
	if _, err := o.File(ctx, filepath.Join(t.TempDir(), "missing.png")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v", err)
	}

	bad := filepath.Join(t.TempDir(), "bad.png")
	os.WriteFile(bad, []byte("not a png"), 0o644)
	if _, err := o.File(ctx, bad); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("corrupt file error = %v", err)
	}
}

func TestDirWalks(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	writeLoosePNG(t, filepath.Join(dir, "a.png"), 32, 32)
	writeLoosePNG(t, filepath.Join(dir, "b.png"), 32, 32)
	os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip me"), 0o644)

	results, err := New(nil).Dir(ctx, dir)
	if err != nil {
		t.Fatalf("Dir: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("optimized %d files, want 2", len(results))
	}
}

func TestFitAndPad(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 400, 400))
	for i := range src.Pix {
		src.Pix[i] = 200
	}

	out, err := FitAndPad(src, 192, 108)
	if err != nil {
		t.Fatalf("FitAndPad: %v", err)
	}
	b := out.Bounds()
	if b.Dx() != 192 || b.Dy() != 108 {
		t.Fatalf("dimensions = %dx%d, want 192x108", b.Dx(), b.Dy())
	}

	// Square source in a wide target: black bars left and right.
	r, g, bl, _ := out.At(0, 54).RGBA()
	if r != 0 || g != 0 || bl != 0 {
		t.Error("left pad band should be black")
	}
	r, _, _, _ = out.At(96, 54).RGBA()
	if r == 0 {
		t.Error("center should carry image content")
	}
}

func TestFitAndPadRejectsDegenerate(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	if _, err := FitAndPad(src, 0, 100); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("error = %v, want INVALID_CONFIG", err)
	}
}
