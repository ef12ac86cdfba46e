package cache

// ScopedKeyer wraps a Keyer with a prefix, giving each render job (or
// each user of a shared Redis cache) its own key namespace.
//
// Example usage:
//
//	// Job-scoped keys that a `neuro cache clear --job` can target
//	jobKeyer := NewScopedKeyer(NewDefaultKeyer(), "job:"+jobID+":")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// FrameKey generates a prefixed key for frame result caching.
func (k *ScopedKeyer) FrameKey(contentHash string, opts FrameKeyOpts) string {
	return k.prefix + k.inner.FrameKey(contentHash, opts)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(inputHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(inputHash, opts)
}
