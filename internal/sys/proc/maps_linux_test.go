//go:build linux

package proc

import (
	"io"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseMapLine(t *testing.T) {
	cases := []struct {
		name string
		line string
		ok   bool
		want MapEntry
	}{
		{
			name: "named mapping",
			line: "7f2abcd00000-7f2abcd21000 r-xp 00000000 08:01 1234 /usr/lib/libc.so.6",
			ok:   true,
			want: MapEntry{Start: 0x7f2abcd00000, End: 0x7f2abcd21000, Perms: "r-xp", Pathname: "/usr/lib/libc.so.6"},
		},
		{
			name: "anonymous mapping",
			line: "55a1f0000000-55a1f0021000 rw-p 00000000 00:00 0",
			ok:   true,
			want: MapEntry{Start: 0x55a1f0000000, End: 0x55a1f0021000, Perms: "rw-p"},
		},
		{
			name: "short line",
			line: "not a maps line",
			ok:   false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok, err := parseMapLine(tc.line)
			if err != nil {
				t.Fatalf("parseMapLine returned error: %v", err)
			}
			if ok != tc.ok {
				t.Fatalf("ok = %v, want %v", ok, tc.ok)
			}
			if !ok {
				return
			}
			if got != tc.want {
				t.Errorf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestParseSelfMaps(t *testing.T) {
	entries, err := ParseSelfMaps(zerolog.New(io.Discard))
	if err != nil {
		t.Fatalf("ParseSelfMaps returned error: %v", err)
	}
	if len(entries) == 0 {
		t.Fatal("ParseSelfMaps returned no entries for own process")
	}
	for _, e := range entries {
		if e.End <= e.Start {
			t.Errorf("entry %+v has End <= Start", e)
		}
	}
}
