package rpprof

import (
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/zeebo/xxh3"

	"github.com/tikv/rp-prof/internal/fold"
	"github.com/tikv/rp-prof/internal/native"
	"github.com/tikv/rp-prof/internal/safe"
	"github.com/tikv/rp-prof/internal/timer"
)

// Timing reports the sampling frequency and wall time elapsed over a
// profiling session.
type Timing struct {
	FrequencyHz int
	Elapsed     time.Duration
}

// Sample is one distinct stack drained from the sink, with its hit count.
type Sample struct {
	// Stack holds instruction addresses innermost (leaf) frame first.
	Stack       []uint64
	ThreadName  string
	ThreadID    uint64
	Count       uint64
	Fingerprint uint64
}

// ReportBuilder hands off the raw sample stream to a downstream consumer.
// Symbolization and report-tree construction are not implemented here.
type ReportBuilder struct {
	sessionID uuid.UUID
	timing    Timing
	dropped   int64
	samples   []Sample
}

func newReportBuilder(sessionID uuid.UUID, t timer.Timing, dropped uint64, raw []native.Sample) *ReportBuilder {
	samples := make([]Sample, len(raw))
	for i, s := range raw {
		samples[i] = Sample{
			Stack:       s.IPs,
			ThreadName:  s.ThreadName,
			ThreadID:    s.ThreadID,
			Count:       s.Count,
			Fingerprint: fingerprint(s),
		}
	}

	// Downstream report consumers (e.g. a JSON/protobuf encoder in another
	// language) conventionally want a signed count; clamp rather than wrap.
	droppedSigned, _ := safe.Uint64ToInt64(dropped)

	return &ReportBuilder{
		sessionID: sessionID,
		timing:    Timing{FrequencyHz: t.FrequencyHz, Elapsed: t.Elapsed},
		dropped:   droppedSigned,
		samples:   samples,
	}
}

// fingerprint recomputes a collision-resistant stack key off the signal
// path, used to let downstream consumers merge sink entries that may have
// split across probe sequences under the C sink's cheaper hash.
func fingerprint(s native.Sample) uint64 {
	h := xxh3.New()
	for _, ip := range s.IPs {
		var buf [8]byte
		for i := range buf {
			buf[i] = byte(ip >> (8 * i))
		}
		_, _ = h.Write(buf[:])
	}
	_, _ = h.Write([]byte(s.ThreadName))
	var tidBuf [8]byte
	for i := range tidBuf {
		tidBuf[i] = byte(s.ThreadID >> (8 * i))
	}
	_, _ = h.Write(tidBuf[:])
	return h.Sum64()
}

// Samples returns every distinct stack collected during the session.
func (r *ReportBuilder) Samples() []Sample {
	return r.samples
}

// Timing returns the configured frequency and elapsed wall time.
func (r *ReportBuilder) Timing() Timing {
	return r.timing
}

// Dropped returns the number of samples dropped due to sink overflow or
// lock contention during this session — never retried, per policy.
func (r *ReportBuilder) Dropped() int64 {
	return r.dropped
}

// SessionID identifies the profiling session this report was drained from.
func (r *ReportBuilder) SessionID() uuid.UUID {
	return r.sessionID
}

// WriteFolded renders every sample as folded-stack text (one line per
// stack, "frame;frame;...;frame count", innermost frame last). Addresses
// are emitted as raw hex; no symbolization is performed.
func (r *ReportBuilder) WriteFolded(w io.Writer) error {
	raw := make([]native.Sample, len(r.samples))
	for i, s := range r.samples {
		raw[i] = native.Sample{
			IPs:        s.Stack,
			ThreadName: s.ThreadName,
			ThreadID:   s.ThreadID,
			Count:      s.Count,
		}
	}
	return fold.Write(w, raw)
}
