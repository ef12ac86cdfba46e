package source

import (
	"context"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mirrorlight/neuro/pkg/errors"
	"github.com/mirrorlight/neuro/pkg/frame"
)

// PNGDirSource reads a directory of PNG files as a frame sequence.
// Files are ordered by name; timestamps are assigned from the frame
// rate, so frame_0000.png at 24 fps carries t=0, the next t=1/24.
type PNGDirSource struct {
	paths []string
	fps   float64
	index int
}

// NewPNGDirSource lists the PNG files under dir. An empty directory is
// rejected; a run over zero frames is a configuration mistake.
func NewPNGDirSource(dir string, fps float64) (*PNGDirSource, error) {
	if fps <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "fps must be positive, got %v", fps)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "frame directory %s", dir)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read frame directory %s", dir)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".png") {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	if len(paths) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no PNG frames in %s", dir)
	}
	sort.Strings(paths)
	return &PNGDirSource{paths: paths, fps: fps}, nil
}

// Len returns the number of frames in the sequence.
func (s *PNGDirSource) Len() int { return len(s.paths) }

// Next decodes the next frame, or returns (nil, nil) past the end.
func (s *PNGDirSource) Next(ctx context.Context) (*frame.Frame, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.index >= len(s.paths) {
		return nil, nil
	}
	path := s.paths[s.index]

	fh, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "open frame %s", path)
	}
	img, err := png.Decode(fh)
	closeErr := fh.Close()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode frame %s", path)
	}
	if closeErr != nil {
		return nil, closeErr
	}

	f, err := frame.FromImage(img)
	if err != nil {
		return nil, err
	}
	f.Timestamp = float64(s.index) / s.fps
	s.index++
	return f, nil
}

// Close releases nothing; files are opened per frame.
func (s *PNGDirSource) Close() error { return nil }

// PNGDirSink writes frames as zero-padded PNG files into a directory.
type PNGDirSink struct {
	dir   string
	index int
}

// NewPNGDirSink creates the output directory if needed.
func NewPNGDirSink(dir string) (*PNGDirSink, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create output directory %s", dir)
	}
	return &PNGDirSink{dir: dir}, nil
}

// Write encodes f as the next frame file.
func (s *PNGDirSink) Write(ctx context.Context, f *frame.Frame) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := f.Validate(); err != nil {
		return err
	}

	path := filepath.Join(s.dir, fmt.Sprintf("frame_%06d.png", s.index))
	fh, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create frame %s", path)
	}
	if err := png.Encode(fh, f.ToImage()); err != nil {
		_ = fh.Close()
		return errors.Wrap(errors.ErrCodeInternal, err, "encode frame %s", path)
	}
	if err := fh.Close(); err != nil {
		return err
	}
	s.index++
	return nil
}

// Close releases nothing; files are closed per frame.
func (s *PNGDirSink) Close() error { return nil }

var (
	_ FrameSource = (*PNGDirSource)(nil)
	_ FrameSink   = (*PNGDirSink)(nil)
)
