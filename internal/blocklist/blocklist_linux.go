//go:build linux

package blocklist

import (
	"github.com/rs/zerolog"

	"github.com/tikv/rp-prof/internal/sys/proc"
)

func init() {
	enumerate = enumerateLinux
}

func enumerateLinux(logger zerolog.Logger) ([]libImage, error) {
	entries, err := proc.ParseSelfMaps(logger)
	if err != nil {
		return nil, err
	}

	images := make([]libImage, 0, len(entries))
	for _, e := range entries {
		if e.Pathname == "" {
			continue
		}
		images = append(images, libImage{start: e.Start, end: e.End, path: e.Pathname})
	}
	return images, nil
}
