//go:build darwin

package blocklist

import (
	"github.com/rs/zerolog"

	"github.com/tikv/rp-prof/internal/sys/dyld"
)

func init() {
	enumerate = enumerateDarwin
}

func enumerateDarwin(_ zerolog.Logger) ([]libImage, error) {
	segs, err := dyld.Segments()
	if err != nil {
		return nil, err
	}

	images := make([]libImage, len(segs))
	for i, s := range segs {
		images[i] = libImage{start: s.Start, end: s.End, path: s.ImagePath}
	}
	return images, nil
}
