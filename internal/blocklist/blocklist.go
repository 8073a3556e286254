// Package blocklist builds the set of address ranges that the signal
// handler must excise from samples, by matching loaded shared library
// paths against user-supplied substrings.
package blocklist

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tikv/rp-prof/internal/native"
	"github.com/tikv/rp-prof/internal/retry"
)

// Segment is a half-open address range belonging to a blocklisted library.
type Segment struct {
	Start uint64
	End   uint64
}

// libImage is the platform-neutral shape both enumerators produce.
type libImage struct {
	start uint64
	end   uint64
	path  string
}

// enumerate is overridden per-OS in blocklist_linux.go / blocklist_darwin.go.
var enumerate func(logger zerolog.Logger) ([]libImage, error)

// readMapsRetryConfig governs the retries around the platform enumeration
// call: reading the live
// memory map can race a concurrently dlopen-ing thread and observe a
// transiently inconsistent snapshot, so a couple of quick retries are worth
// it before giving up.
var readMapsRetryConfig = retry.Config{
	MaxRetries:     3,
	InitialBackoff: 5 * time.Millisecond,
	MaxBackoff:     50 * time.Millisecond,
}

// Build enumerates loaded shared libraries and returns the address ranges
// of every segment belonging to a library whose path contains one of
// substrings. Order matches insertion order; a linear scan over segments is
// acceptable (N is bounded to a few hundred in practice).
func Build(logger zerolog.Logger, substrings []string) ([]Segment, error) {
	if enumerate == nil {
		return nil, fmt.Errorf("blocklist: no shared-library enumerator registered for this platform")
	}
	if len(substrings) == 0 {
		return nil, nil
	}

	var images []libImage
	err := retry.Do(context.Background(), readMapsRetryConfig, func() error {
		var innerErr error
		images, innerErr = enumerate(logger)
		return innerErr
	}, func(err error) bool { return err != nil })
	if err != nil {
		return nil, fmt.Errorf("blocklist: enumerate shared libraries: %w", err)
	}

	var segments []Segment
	for _, img := range images {
		if img.path == "" {
			continue
		}
		if matchesAny(img.path, substrings) {
			segments = append(segments, Segment{Start: img.start, End: img.end})
		}
	}
	return segments, nil
}

// ToNative converts Segments to the native package's wire shape.
func ToNative(segs []Segment) []native.Segment {
	out := make([]native.Segment, len(segs))
	for i, s := range segs {
		out[i] = native.Segment{Start: s.Start, End: s.End}
	}
	return out
}

// Contains reports whether addr falls strictly inside any segment,
// mirroring the reference implementation's boundary handling: a sample
// whose PC equals a segment's start or end address is NOT excised.
func Contains(segs []Segment, addr uint64) bool {
	for _, s := range segs {
		if addr > s.Start && addr < s.End {
			return true
		}
	}
	return false
}

func matchesAny(path string, substrings []string) bool {
	for _, sub := range substrings {
		if sub != "" && strings.Contains(path, sub) {
			return true
		}
	}
	return false
}
