//go:build linux

package proc

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	cleanup "github.com/tikv/rp-prof/internal/errors"
)

// MapEntry is a single mapped memory region from /proc/self/maps.
type MapEntry struct {
	Start    uint64
	End      uint64
	Perms    string
	Pathname string
}

// ParseSelfMaps reads and parses /proc/self/maps for the calling process.
//
// Lines look like:
//
//	7f2abcd00000-7f2abcd21000 r-xp 00000000 08:01 1234 /usr/lib/libc.so.6
//
// Anonymous mappings (no trailing pathname) are included with an empty
// Pathname so callers can still reason about address space layout, but
// they never match a library-name blocklist query.
func ParseSelfMaps(logger zerolog.Logger) ([]MapEntry, error) {
	f, err := os.Open("/proc/self/maps")
	if err != nil {
		return nil, fmt.Errorf("open /proc/self/maps: %w", err)
	}
	defer cleanup.DeferClose(logger, f, "failed to close /proc/self/maps")

	var entries []MapEntry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		entry, ok, err := parseMapLine(scanner.Text())
		if err != nil {
			return nil, fmt.Errorf("parse /proc/self/maps: %w", err)
		}
		if ok {
			entries = append(entries, entry)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan /proc/self/maps: %w", err)
	}

	return entries, nil
}

func parseMapLine(line string) (MapEntry, bool, error) {
	fields := strings.Fields(line)
	if len(fields) < 5 {
		return MapEntry{}, false, nil
	}

	addrRange := fields[0]
	sep := strings.IndexByte(addrRange, '-')
	if sep < 0 {
		return MapEntry{}, false, nil
	}

	start, err := strconv.ParseUint(addrRange[:sep], 16, 64)
	if err != nil {
		return MapEntry{}, false, fmt.Errorf("bad start address %q: %w", addrRange[:sep], err)
	}
	end, err := strconv.ParseUint(addrRange[sep+1:], 16, 64)
	if err != nil {
		return MapEntry{}, false, fmt.Errorf("bad end address %q: %w", addrRange[sep+1:], err)
	}

	entry := MapEntry{Start: start, End: end, Perms: fields[1]}
	if len(fields) >= 6 {
		entry.Pathname = fields[5]
	}
	return entry, true, nil
}
