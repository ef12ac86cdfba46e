package cli

import (
	"sort"
	"strconv"
	"strings"

	"github.com/mirrorlight/neuro/pkg/errors"
)

// ParseFrameIndices parses a frame selection like "0,5,10-14" into a
// sorted, de-duplicated slice of indices. Ranges are inclusive on both
// ends. An empty spec returns nil, meaning "all frames".
func ParseFrameIndices(spec string) ([]int, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, nil
	}

	seen := make(map[int]struct{})
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		lo, hi, err := parseIndexRange(part)
		if err != nil {
			return nil, err
		}
		for i := lo; i <= hi; i++ {
			seen[i] = struct{}{}
		}
	}

	out := make([]int, 0, len(seen))
	for i := range seen {
		out = append(out, i)
	}
	sort.Ints(out)
	return out, nil
}

func parseIndexRange(part string) (lo, hi int, err error) {
	if a, b, found := strings.Cut(part, "-"); found {
		lo, err = parseIndex(a)
		if err != nil {
			return 0, 0, err
		}
		hi, err = parseIndex(b)
		if err != nil {
			return 0, 0, err
		}
		if hi < lo {
			return 0, 0, errors.New(errors.ErrCodeInvalidInput, "descending range %q", part)
		}
		return lo, hi, nil
	}
	lo, err = parseIndex(part)
	return lo, lo, err
}

func parseIndex(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidInput, err, "frame index %q", s)
	}
	if n < 0 {
		return 0, errors.New(errors.ErrCodeInvalidInput, "negative frame index %d", n)
	}
	return n, nil
}
