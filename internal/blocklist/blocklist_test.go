package blocklist

import (
	"io"
	"testing"

	"github.com/rs/zerolog"
)

func TestContainsStrictInequality(t *testing.T) {
	segs := []Segment{{Start: 100, End: 200}}

	cases := []struct {
		addr uint64
		want bool
	}{
		{addr: 100, want: false}, // boundary excluded: strict inequality
		{addr: 101, want: true},
		{addr: 150, want: true},
		{addr: 199, want: true},
		{addr: 200, want: false}, // boundary excluded
		{addr: 50, want: false},
	}

	for _, tc := range cases {
		if got := Contains(segs, tc.addr); got != tc.want {
			t.Errorf("Contains(%d) = %v, want %v", tc.addr, got, tc.want)
		}
	}
}

func TestMatchesAny(t *testing.T) {
	if !matchesAny("/usr/lib/libc.so.6", []string{"libc"}) {
		t.Error("expected substring match")
	}
	if matchesAny("/usr/lib/libm.so.6", []string{"libc"}) {
		t.Error("expected no match")
	}
	if matchesAny("/usr/lib/libc.so.6", []string{""}) {
		t.Error("empty substring must never match")
	}
}

func TestBuildEmptySubstrings(t *testing.T) {
	segs, err := Build(zerolog.New(io.Discard), nil)
	if err != nil {
		t.Fatalf("Build(nil) returned error: %v", err)
	}
	if segs != nil {
		t.Errorf("Build(nil) = %v, want nil", segs)
	}
}
