package rpprof

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tikv/rp-prof/internal/core"
	"github.com/tikv/rp-prof/internal/rperrors"
)

// Guard is a scoped acquisition of the profiler: constructing one (via
// Builder.Build) arms the sampler, and Close disarms it. At most one Guard
// may exist process-wide at a time.
type Guard struct {
	core      *core.Core
	sessionID uuid.UUID
	logger    zerolog.Logger

	closeOnce sync.Once
	closeErr  error
}

// SessionID identifies this profiling session, distinguishing reports
// across repeated start/stop cycles within the same process.
func (g *Guard) SessionID() uuid.UUID {
	return g.sessionID
}

// Report drains the sink and returns a ReportBuilder over the collected
// samples, then stops the profiler as a side effect, matching the reference
// semantics where dropping the guard is how a profiling session ends. The
// drain happens before Stop because Stop empties the sink.
func (g *Guard) Report() (*ReportBuilder, error) {
	timing, _ := g.core.Timing()
	dropped := g.core.DroppedSamples()
	samples := g.core.Drain()

	if err := g.core.Stop(); err != nil {
		return nil, err
	}

	return newReportBuilder(g.sessionID, timing, dropped, samples), nil
}

// Close releases the guard. Release order matches the design: the timer is
// disarmed before the handler is uninstalled, which Core.Stop already
// enforces. Errors are logged, never surfaced — destruction must be
// infallible, so Close always returns nil and calls after the first do
// nothing; callers
// that want the underlying error can inspect it via LastCloseError.
func (g *Guard) Close() error {
	g.closeOnce.Do(func() {
		err := g.core.Stop()
		if err != nil {
			// Report() already stops the core in the common case; Stop
			// returning NotRunning here just means Close is running after
			// Report, which is expected and not worth logging as a failure.
			if !isNotRunning(err) {
				g.logger.Warn().Err(err).Msg("failed to stop profiler on guard close")
			}
		}
		g.closeErr = err
	})
	return nil
}

// LastCloseError returns the error Core.Stop produced during the most
// recent Close call, or nil if Close has not been called or Stop succeeded.
func (g *Guard) LastCloseError() error {
	return g.closeErr
}

func isNotRunning(err error) bool {
	return errors.Is(err, rperrors.ErrNotRunning)
}
