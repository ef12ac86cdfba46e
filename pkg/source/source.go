// Package source abstracts where frames come from and where processed
// frames go. The pipeline only sees the FrameSource and FrameSink
// interfaces; media decoding and encoding stay outside the core.
package source

import (
	"context"

	"github.com/mirrorlight/neuro/pkg/frame"
)

// FrameSource yields frames in ascending timestamp order. Next returns
// (nil, nil) after the last frame.
type FrameSource interface {
	Next(ctx context.Context) (*frame.Frame, error)
	Close() error
}

// FrameSink consumes processed frames in the order they are written.
type FrameSink interface {
	Write(ctx context.Context, f *frame.Frame) error
	Close() error
}
