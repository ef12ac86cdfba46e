// Package optimize re-encodes still images in place, keeping the
// re-encoded file only when it is actually smaller. A content-hash
// cache records files already visited, so repeated runs over the same
// asset tree skip unchanged files entirely.
package optimize

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/mirrorlight/neuro/pkg/cache"
	"github.com/mirrorlight/neuro/pkg/errors"
)

// DefaultJPEGQuality balances artifacts against size for re-encoding.
const DefaultJPEGQuality = 85

// Result reports what happened to one file.
type Result struct {
	Path         string
	OriginalSize int64
	NewSize      int64
	Replaced     bool
	Cached       bool
}

// Saved returns the byte reduction, zero when the file was kept as is.
func (r Result) Saved() int64 {
	if !r.Replaced {
		return 0
	}
	return r.OriginalSize - r.NewSize
}

// Optimizer re-encodes images with a skip cache. A nil cache disables
// skipping.
type Optimizer struct {
	Cache   cache.Cache
	Keyer   cache.Keyer
	Quality int
}

// New builds an optimizer over the given cache backend.
func New(c cache.Cache) *Optimizer {
	if c == nil {
		c = cache.NewNullCache()
	}
	return &Optimizer{
		Cache:   c,
		Keyer:   cache.NewDefaultKeyer(),
		Quality: DefaultJPEGQuality,
	}
}

// File re-encodes one PNG or JPEG file in place when that shrinks it.
func (o *Optimizer) File(ctx context.Context, path string) (Result, error) {
	format, ok := formatForPath(path)
	if !ok {
		return Result{}, errors.New(errors.ErrCodeUnsupported, "unsupported image type %s", filepath.Ext(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "image %s", path)
		}
		return Result{}, errors.Wrap(errors.ErrCodeInternal, err, "read %s", path)
	}
	res := Result{Path: path, OriginalSize: int64(len(data)), NewSize: int64(len(data))}

	key := o.Keyer.ArtifactKey(cache.Hash(data), cache.ArtifactKeyOpts{Format: format, Quality: o.Quality})
	if _, hit, err := o.Cache.Get(ctx, key); err == nil && hit {
		res.Cached = true
		return res, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return Result{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode %s", path)
	}

	var buf bytes.Buffer
	switch format {
	case "png":
		enc := png.Encoder{CompressionLevel: png.BestCompression}
		err = enc.Encode(&buf, img)
	case "jpeg":
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: o.Quality})
	}
	if err != nil {
		return Result{}, errors.Wrap(errors.ErrCodeInternal, err, "re-encode %s", path)
	}

	if int64(buf.Len()) < res.OriginalSize {
		if err := replaceFile(path, buf.Bytes()); err != nil {
			return Result{}, err
		}
		res.NewSize = int64(buf.Len())
		res.Replaced = true
		// Key the result by the new content so the rewritten file is
		// also recognized next run.
		newKey := o.Keyer.ArtifactKey(cache.Hash(buf.Bytes()), cache.ArtifactKeyOpts{Format: format, Quality: o.Quality})
		_ = o.Cache.Set(ctx, newKey, []byte("1"), 0)
	}
	_ = o.Cache.Set(ctx, key, []byte("1"), 0)
	return res, nil
}

// Dir walks root and optimizes every PNG and JPEG under it. Walking
// continues past per-file failures; the first error is reported after
// the walk alongside the successful results.
func (o *Optimizer) Dir(ctx context.Context, root string) ([]Result, error) {
	var results []Result
	var firstErr error
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			return nil
		}
		if _, ok := formatForPath(path); !ok {
			return nil
		}
		res, ferr := o.File(ctx, path)
		if ferr != nil {
			if firstErr == nil {
				firstErr = ferr
			}
			return nil
		}
		results = append(results, res)
		return nil
	})
	if err != nil {
		return results, errors.Wrap(errors.ErrCodeInternal, err, "walk %s", root)
	}
	return results, firstErr
}

func formatForPath(path string) (string, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "png", true
	case ".jpg", ".jpeg":
		return "jpeg", true
	default:
		return "", false
	}
}

// replaceFile writes data next to path and renames it into place, so a
// crash mid-write never leaves a truncated image.
func replaceFile(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", tmp)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return errors.Wrap(errors.ErrCodeInternal, err, "replace %s", path)
	}
	return nil
}
