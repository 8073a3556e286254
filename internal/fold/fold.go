// Package fold formats drained samples as folded-stack text, the plain-line
// format flamegraph.pl and inferno consume: one line per distinct stack,
// frames joined by ';' with the innermost (leaf) frame last, followed by a
// space and the hit count. No symbolization happens here; frames are
// rendered as raw hex instruction addresses, since symbol resolution is out
// of scope for this module.
package fold

import (
	"fmt"
	"io"
	"strings"

	"github.com/tikv/rp-prof/internal/native"
)

// Write renders samples as folded-stack text to w, one line per sample.
func Write(w io.Writer, samples []native.Sample) error {
	var b strings.Builder
	for _, s := range samples {
		b.Reset()
		writeStack(&b, s)
		if _, err := io.WriteString(w, b.String()); err != nil {
			return fmt.Errorf("fold: write: %w", err)
		}
	}
	return nil
}

func writeStack(b *strings.Builder, s native.Sample) {
	if s.ThreadName != "" {
		b.WriteString(s.ThreadName)
		b.WriteByte(';')
	}
	for i := len(s.IPs) - 1; i >= 0; i-- {
		fmt.Fprintf(b, "0x%x", s.IPs[i])
		if i > 0 {
			b.WriteByte(';')
		}
	}
	fmt.Fprintf(b, " %d\n", s.Count)
}
