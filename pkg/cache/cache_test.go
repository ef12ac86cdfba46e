package cache

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	// Set does nothing (no error)
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	// Delete does nothing (no error)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	if err := c.Set(ctx, "frame:abc", []byte("pixels"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}

	data, hit, err := c.Get(ctx, "frame:abc")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !hit {
		t.Fatal("expected hit after Set")
	}
	if string(data) != "pixels" {
		t.Errorf("Get = %q, want %q", data, "pixels")
	}

	// Missing key is a miss, not an error
	_, hit, err = c.Get(ctx, "frame:other")
	if err != nil || hit {
		t.Errorf("missing key: hit=%v err=%v", hit, err)
	}

	if err := c.Delete(ctx, "frame:abc"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	_, hit, _ = c.Get(ctx, "frame:abc")
	if hit {
		t.Error("key survived Delete")
	}

	// Deleting a missing key is fine
	if err := c.Delete(ctx, "frame:abc"); err != nil {
		t.Errorf("Delete of missing key: %v", err)
	}
}

func TestFileCacheExpiration(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	if err := c.Set(ctx, "k", []byte("v"), time.Millisecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	_, hit, err := c.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if hit {
		t.Error("expired entry should be a miss")
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// SHA-256 produces 64 hex chars
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	fk1 := k.FrameKey("hash1", FrameKeyOpts{Timestamp: 1, NoiseDensity: 0.008})
	fk2 := k.FrameKey("hash1", FrameKeyOpts{Timestamp: 1, NoiseDensity: 0.008})
	if fk1 != fk2 {
		t.Error("FrameKey should be deterministic")
	}

	fk3 := k.FrameKey("hash1", FrameKeyOpts{Timestamp: 2, NoiseDensity: 0.008})
	if fk1 == fk3 {
		t.Error("Different timestamps should produce different keys")
	}

	fk4 := k.FrameKey("hash2", FrameKeyOpts{Timestamp: 1, NoiseDensity: 0.008})
	if fk1 == fk4 {
		t.Error("Different content hashes should produce different keys")
	}

	if !strings.HasPrefix(fk1, "frame:") {
		t.Errorf("FrameKey prefix: %s", fk1)
	}

	ak1 := k.ArtifactKey("h", ArtifactKeyOpts{Format: "png", Quality: 90})
	ak2 := k.ArtifactKey("h", ArtifactKeyOpts{Format: "jpeg", Quality: 90})
	if ak1 == ak2 {
		t.Error("Different formats should produce different keys")
	}
	if !strings.HasPrefix(ak1, "artifact:") {
		t.Errorf("ArtifactKey prefix: %s", ak1)
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "job:123:")

	fk := scoped.FrameKey("h", FrameKeyOpts{})
	if !strings.HasPrefix(fk, "job:123:frame:") {
		t.Errorf("scoped FrameKey = %s", fk)
	}
	if strings.TrimPrefix(fk, "job:123:") != inner.FrameKey("h", FrameKeyOpts{}) {
		t.Error("scoped key should wrap the inner key unchanged")
	}

	// Nil inner falls back to the default keyer
	fallback := NewScopedKeyer(nil, "p:")
	if !strings.HasPrefix(fallback.ArtifactKey("h", ArtifactKeyOpts{}), "p:artifact:") {
		t.Error("nil inner should use the default keyer")
	}
}

func TestRetryWithBackoff(t *testing.T) {
	ctx := context.Background()

	// Non-retryable errors return immediately
	calls := 0
	plain := errors.New("fatal")
	err := RetryWithBackoff(ctx, func() error {
		calls++
		return plain
	})
	if err != plain || calls != 1 {
		t.Errorf("non-retryable: err=%v calls=%d", err, calls)
	}

	// Retryable errors are retried until success
	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		if calls < 2 {
			return Retryable(errors.New("transient"))
		}
		return nil
	})
	if err != nil || calls != 2 {
		t.Errorf("retryable: err=%v calls=%d", err, calls)
	}
}

func TestIsRetryable(t *testing.T) {
	if IsRetryable(errors.New("plain")) {
		t.Error("plain error should not be retryable")
	}
	if !IsRetryable(Retryable(errors.New("transient"))) {
		t.Error("wrapped error should be retryable")
	}
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should be nil")
	}
}
