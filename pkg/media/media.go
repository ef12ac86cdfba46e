// Package media delegates container and codec work to FFmpeg via the
// goffmpeg transcoder: probing clips, exploding them into PNG frame
// sequences for the pipeline, and assembling processed sequences back
// into video. The core effect packages never import this package.
package media

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xfrr/goffmpeg/transcoder"

	"github.com/mirrorlight/neuro/pkg/errors"
)

// FramePattern is the printf pattern shared by extraction, encoding
// and the PNG directory sink.
const FramePattern = "frame_%06d.png"

// Metadata describes the first video stream of a clip.
type Metadata struct {
	Width    int
	Height   int
	FPS      float64
	Duration float64
	Codec    string
}

// Probe reads stream metadata from a video file.
func Probe(path string) (*Metadata, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "video %s", path)
	}

	trans := new(transcoder.Transcoder)
	if err := trans.Initialize(path, ""); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "probe %s", path)
	}

	meta := trans.MediaFile().Metadata()
	duration, _ := strconv.ParseFloat(meta.Format.Duration, 64)

	for _, stream := range meta.Streams {
		if stream.CodecType != "video" {
			continue
		}
		return &Metadata{
			Width:    stream.Width,
			Height:   stream.Height,
			FPS:      parseRate(stream.AvgFrameRate),
			Duration: duration,
			Codec:    stream.CodecName,
		}, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "%s has no video stream", path)
}

// parseRate parses an ffprobe rational like "24000/1001" into a float.
func parseRate(r string) float64 {
	num, den, found := strings.Cut(r, "/")
	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0
	}
	if !found {
		return n
	}
	d, err := strconv.ParseFloat(den, 64)
	if err != nil || d == 0 {
		return 0
	}
	return n / d
}

// ExtractFrames decodes a video into a PNG sequence under outDir at the
// given frame rate.
func ExtractFrames(ctx context.Context, videoPath, outDir string, fps float64) error {
	if fps <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "fps must be positive, got %v", fps)
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create frame directory %s", outDir)
	}

	trans := new(transcoder.Transcoder)
	if err := trans.Initialize(videoPath, filepath.Join(outDir, FramePattern)); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "open %s", videoPath)
	}
	trans.MediaFile().SetVideoCodec("png")
	trans.MediaFile().SetOutputFormat("image2")
	trans.MediaFile().SetFrameRate(int(fps))
	trans.MediaFile().SetSkipAudio(true)

	return wait(ctx, trans, "extract frames from "+videoPath)
}

// EncodeOptions tunes video assembly.
type EncodeOptions struct {
	FPS     float64
	Codec   string // default libx264
	Bitrate string // default 5000k
}

// Encode assembles a PNG frame sequence from framesDir into a video
// file.
func Encode(ctx context.Context, framesDir, outPath string, opts EncodeOptions) error {
	if opts.FPS <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "fps must be positive, got %v", opts.FPS)
	}
	if opts.Codec == "" {
		opts.Codec = "libx264"
	}
	if opts.Bitrate == "" {
		opts.Bitrate = "5000k"
	}

	trans := new(transcoder.Transcoder)
	pattern := filepath.Join(framesDir, FramePattern)
	if err := trans.Initialize(pattern, outPath); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "open frame sequence %s", pattern)
	}
	trans.MediaFile().SetVideoCodec(opts.Codec)
	trans.MediaFile().SetVideoBitRate(opts.Bitrate)
	trans.MediaFile().SetFrameRate(int(opts.FPS))
	trans.MediaFile().SetSkipAudio(true)

	return wait(ctx, trans, "encode "+outPath)
}

// concatInputArgs select the concat demuxer for the list-file input.
// The transcoder has no setter for the input format, so the flags go in
// raw; -safe 0 lets the demuxer accept absolute paths.
var concatInputArgs = []string{"-f", "concat", "-safe", "0"}

// writeConcatList writes the demuxer list file naming every input by
// absolute path. The caller removes the returned file.
func writeConcatList(inputs []string) (string, error) {
	list, err := os.CreateTemp("", "neuro_concat_*.txt")
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "create concat list")
	}
	for _, in := range inputs {
		abs, err := filepath.Abs(in)
		if err != nil {
			_ = list.Close()
			_ = os.Remove(list.Name())
			return "", errors.Wrap(errors.ErrCodeInternal, err, "resolve %s", in)
		}
		fmt.Fprintf(list, "file '%s'\n", abs)
	}
	if err := list.Close(); err != nil {
		_ = os.Remove(list.Name())
		return "", err
	}
	return list.Name(), nil
}

// Concat joins video files back to back into outPath by re-encoding
// through the concat demuxer list format.
func Concat(ctx context.Context, inputs []string, outPath string, opts EncodeOptions) error {
	if len(inputs) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "no inputs to concatenate")
	}

	listPath, err := writeConcatList(inputs)
	if err != nil {
		return err
	}
	defer os.Remove(listPath)

	trans := new(transcoder.Transcoder)
	if err := trans.Initialize(listPath, outPath); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "open concat list")
	}
	trans.MediaFile().SetRawInputArgs(concatInputArgs)
	if opts.Codec != "" {
		trans.MediaFile().SetVideoCodec(opts.Codec)
	}
	if opts.Bitrate != "" {
		trans.MediaFile().SetVideoBitRate(opts.Bitrate)
	}

	return wait(ctx, trans, "concatenate into "+outPath)
}

// wait runs the transcoder and blocks on completion or context
// cancellation. FFmpeg itself keeps running on cancellation; the next
// process exit reaps it.
func wait(ctx context.Context, trans *transcoder.Transcoder, what string) error {
	done := trans.Run(false)
	select {
	case err := <-done:
		if err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "%s", what)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
