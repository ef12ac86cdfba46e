// Package pkg provides the core libraries for the neuro video effects
// toolkit.
//
// # Overview
//
// Neuro runs video frames through a chain of time-parameterized visual
// transforms. The pkg directory is organized into three main areas:
//
//  1. Core math and raster types (easing, palette, frame, mask)
//  2. Transforms (effects, transition, overlay, timeline)
//  3. Orchestration and tooling (pipeline, cache, source, media, render,
//     audio, optimize)
//
// # Architecture
//
// The typical data flow through neuro:
//
//	Video file / PNG sequence
//	         ↓
//	    [source] package (frame decoding, timestamps)
//	         ↓
//	    [effects] package (color shift → edge → glow → breath → noise)
//	         ↓
//	    [transition] / [overlay] packages (zoom, blink, emotion tints)
//	         ↓
//	    [media] package (encode, concat)
//
// The [pipeline] package wraps the chain with caching, bounded
// parallelism and per-stage timing; the CLI in internal/cli and any
// library caller share it so behavior stays identical across entry
// points.
//
// # Quick Start
//
// Run the effect chain over a frame sequence:
//
//	import (
//	    "context"
//	    "github.com/mirrorlight/neuro/pkg/pipeline"
//	    "github.com/mirrorlight/neuro/pkg/source"
//	)
//
//	src, _ := source.NewPNGDirSource("frames", 24)
//	sink, _ := source.NewPNGDirSink("frames_out")
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, _ := runner.Execute(context.Background(), src, sink,
//	    pipeline.Options{Seed: 42})
//
// # Main Packages
//
// [easing] - Pure interpolation curves: smoothstep, ease-in/out, the
// breath cycle.
//
// [palette] - The fixed neuro color table and gradient math, built on
// go-colorful.
//
// [frame] - The RGB raster type exchanged between every stage, with
// image.NRGBA conversions for the imaging stack.
//
// [mask] - Scalar visibility fields: the eyelid blink mask and the
// radial falloff used by overlays.
//
// [effects] - The five-stage effect chain. Stages are plain value types
// applied per frame at a timestamp.
//
// [transition] - Clip transitions: the two-phase zoom curve and the
// eyelid blink.
//
// [overlay] - Emotion-colored tints selected from a timeline of RGBA
// segments.
//
// [timeline] - Timeline construction: JSON files and M-string emotion
// markers.
//
// [pipeline] - The cached, parallel runner over frame sequences.
//
// [cache] - Content-addressed caching with file, redis and null
// backends.
//
// [source] - FrameSource/FrameSink abstractions and the PNG directory
// implementations.
//
// [media] - ffmpeg delegation: probing, frame extraction, encoding and
// concatenation.
//
// [render] - PNG atlases: storyboard grids and sprite sheets.
//
// [audio] - The procedural ambient bed as a beep.Streamer with WAV
// output.
//
// [optimize] - In-place image re-encoding with a visited-file cache.
//
// [easing]: https://pkg.go.dev/github.com/mirrorlight/neuro/pkg/easing
// [palette]: https://pkg.go.dev/github.com/mirrorlight/neuro/pkg/palette
// [frame]: https://pkg.go.dev/github.com/mirrorlight/neuro/pkg/frame
// [mask]: https://pkg.go.dev/github.com/mirrorlight/neuro/pkg/mask
// [effects]: https://pkg.go.dev/github.com/mirrorlight/neuro/pkg/effects
// [transition]: https://pkg.go.dev/github.com/mirrorlight/neuro/pkg/transition
// [overlay]: https://pkg.go.dev/github.com/mirrorlight/neuro/pkg/overlay
// [timeline]: https://pkg.go.dev/github.com/mirrorlight/neuro/pkg/timeline
// [pipeline]: https://pkg.go.dev/github.com/mirrorlight/neuro/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/mirrorlight/neuro/pkg/cache
// [source]: https://pkg.go.dev/github.com/mirrorlight/neuro/pkg/source
// [media]: https://pkg.go.dev/github.com/mirrorlight/neuro/pkg/media
// [render]: https://pkg.go.dev/github.com/mirrorlight/neuro/pkg/render
// [audio]: https://pkg.go.dev/github.com/mirrorlight/neuro/pkg/audio
// [optimize]: https://pkg.go.dev/github.com/mirrorlight/neuro/pkg/optimize
package pkg
