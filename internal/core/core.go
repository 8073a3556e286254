// Package core owns the profiler's lifecycle: installing/uninstalling the
// signal handler, arming/disarming the interval timer, and managing the
// process-wide running flag. This is the ProfilerCore from the design; the
// process-global state it mutates lives in internal/native.
package core

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/tikv/rp-prof/internal/blocklist"
	"github.com/tikv/rp-prof/internal/native"
	"github.com/tikv/rp-prof/internal/rperrors"
	"github.com/tikv/rp-prof/internal/timer"
	"github.com/tikv/rp-prof/internal/unwind"
)

const (
	minFrequencyHz = 1
	maxFrequencyHz = 1000
)

// mu serializes Start/Stop across every Core instance in the process. A
// per-instance mutex cannot enforce "at most one Guard running at a time"
// on its own: Builder.Build constructs a fresh Core per call, so two
// concurrent Build calls would otherwise hold two different mutexes and
// both observe native.IsRunning() == false before either sets it. A single
// package-level mutex closes that race; native's running flag (not any
// per-instance field) remains the actual source of truth for exclusivity.
var mu sync.Mutex

// Core is a profiler lifecycle owner. At most one Core may be running at a
// time process-wide, enforced via mu plus native.IsRunning(), the one
// genuinely process-wide flag; running below is only this instance's own
// bookkeeping, used so Stop/Timing can tell whether this particular Core
// started the profiler.
type Core struct {
	running bool
	timer   *timer.IntervalTimer
	logger  zerolog.Logger
}

// New returns an idle Core.
func New(logger zerolog.Logger) *Core {
	return &Core{logger: logger.With().Str("component", "core").Logger()}
}

// Start validates frequencyHz, builds the blocklist from blocklistLibs,
// installs the signal handler, and arms the timer, in that order: the
// handler must be installed before the timer can deliver anything, or a
// SIGPROF could find no handler and terminate the process.
func (c *Core) Start(frequencyHz int, blocklistLibs []string) error {
	if frequencyHz < minFrequencyHz || frequencyHz > maxFrequencyHz {
		return fmt.Errorf("%w: frequency_hz must be in [%d, %d], got %d",
			rperrors.ErrCreating, minFrequencyHz, maxFrequencyHz, frequencyHz)
	}

	mu.Lock()
	defer mu.Unlock()

	if native.IsRunning() {
		return rperrors.ErrAlreadyRunning
	}

	segs, err := blocklist.Build(c.logger, blocklistLibs)
	if err != nil {
		return fmt.Errorf("%w: %v", rperrors.ErrCreating, err)
	}
	if stored := native.SetBlocklist(blocklist.ToNative(segs)); stored < len(segs) {
		c.logger.Warn().
			Int("requested", len(segs)).
			Int("stored", stored).
			Msg("blocklist segment capacity exceeded, remaining segments dropped")
	}

	if ok, checked := unwind.ProbeFramePointers(c.Start); checked && !ok {
		c.logger.Warn().Msg("this binary does not appear to use standard frame pointers; " +
			"the frame-pointer unwinder may produce truncated stacks")
	}

	if err := native.InstallHandler(); err != nil {
		return fmt.Errorf("%w: %v", rperrors.ErrOS, err)
	}

	t, err := timer.New(frequencyHz)
	if err != nil {
		// Roll back partial init: handler installed but timer failed to arm.
		if uninstallErr := native.UninstallHandler(); uninstallErr != nil {
			c.logger.Warn().Err(uninstallErr).Msg("failed to roll back handler install after timer arm failure")
		}
		return fmt.Errorf("%w: %v", rperrors.ErrOS, err)
	}

	native.SetRunning(true)
	c.timer = t
	c.running = true

	c.logger.Info().
		Int("frequency_hz", frequencyHz).
		Int("blocklist_segments", len(segs)).
		Msg("profiler started")

	return nil
}

// Stop disarms the timer first (halting new samples), then replaces
// SIGPROF's disposition with SIG_IGN, then resets the native state. This
// order is load-bearing: reversing it lets a SIGPROF arrive after the
// handler is uninstalled but before it is ignored, which defaults to
// terminating the process.
func (c *Core) Stop() error {
	mu.Lock()
	defer mu.Unlock()

	if !c.running {
		return rperrors.ErrNotRunning
	}

	if err := c.timer.Disarm(); err != nil {
		c.logger.Warn().Err(err).Msg("failed to disarm interval timer")
	}
	if err := native.UninstallHandler(); err != nil {
		c.logger.Warn().Err(err).Msg("failed to uninstall signal handler")
	}
	native.StopAndReset()

	c.timer = nil
	c.running = false

	c.logger.Info().Msg("profiler stopped")

	return nil
}

// Drain returns every sample recorded since the last reset. Call it before
// Stop, which empties the sink. The copy runs under the native state lock,
// so a signal that arrives meanwhile fails its try-lock and drops its sample
// instead of writing into the sink mid-copy.
func (c *Core) Drain() []native.Sample {
	return native.Drain()
}

// Timing returns the configured frequency and elapsed wall time. Valid only
// while running.
func (c *Core) Timing() (timer.Timing, bool) {
	mu.Lock()
	defer mu.Unlock()
	if c.timer == nil {
		return timer.Timing{}, false
	}
	return c.timer.Timing(), true
}

// DroppedSamples returns the number of samples dropped to sink overflow or
// lock contention since the last reset. Must be read before Stop, which
// zeroes the counters as part of returning the sink to empty.
func (c *Core) DroppedSamples() uint64 {
	return native.DroppedCounter() + native.LockContendedCounter()
}

// IsRunning reports whether the core currently owns an armed profiler.
func (c *Core) IsRunning() bool {
	mu.Lock()
	defer mu.Unlock()
	return c.running
}
