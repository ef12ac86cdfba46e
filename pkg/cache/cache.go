// Package cache provides the render cache used to skip re-processing
// frames and artifacts whose inputs have not changed. Backends share
// one interface: a local file cache for single-machine runs, a Redis
// cache for shared render farms, and a null cache for disabling
// caching entirely.
package cache

import (
	"context"
	"time"
)

// Cache is the backend interface. A miss is (nil, false, nil); errors
// are reserved for backend failures.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// FrameKeyOpts captures everything besides the source pixels that
// changes a processed frame.
type FrameKeyOpts struct {
	Timestamp     float64
	EdgeStrength  float64
	GlowIntensity float64
	BreathPeriod  float64
	NoiseDensity  float64
	Seed          int64
}

// ArtifactKeyOpts captures the encoding parameters of a derived
// artifact (optimized image, sprite tile).
type ArtifactKeyOpts struct {
	Format  string
	Quality int
	Width   int
	Height  int
}

// Keyer generates cache keys. Implementations must be deterministic:
// equal inputs yield equal keys across processes.
type Keyer interface {
	// FrameKey keys a processed frame by its source content hash and
	// the effect parameters.
	FrameKey(contentHash string, opts FrameKeyOpts) string

	// ArtifactKey keys a derived artifact by its input hash and
	// encoding parameters.
	ArtifactKey(inputHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard key scheme: prefix:sha256(parts).
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// FrameKey generates a key for frame result caching.
func (k *DefaultKeyer) FrameKey(contentHash string, opts FrameKeyOpts) string {
	return hashKey("frame", contentHash, opts)
}

// ArtifactKey generates a key for artifact caching.
func (k *DefaultKeyer) ArtifactKey(inputHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", inputHash, opts)
}

var _ Keyer = (*DefaultKeyer)(nil)
