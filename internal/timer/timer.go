// Package timer wraps the POSIX ITIMER_PROF interval timer that drives
// profiling signal delivery.
package timer

import (
	"fmt"
	"time"

	"golang.org/x/sys/unix"
)

// Timing reports the configured frequency and elapsed wall time since the
// timer was armed.
type Timing struct {
	FrequencyHz int
	Elapsed     time.Duration
}

// IntervalTimer arms and disarms ITIMER_PROF. ITIMER_PROF charges both user
// and system CPU time to the process; the kernel delivers SIGPROF to some
// thread in the process, not necessarily the one consuming the most CPU, so
// the profiler observes an unbiased sample across runnable threads.
type IntervalTimer struct {
	frequencyHz int
	start       time.Time
}

// New arms the timer at frequencyHz and records the start time. The period
// is 1s/frequencyHz rounded to microseconds, floored at 1µs.
func New(frequencyHz int) (*IntervalTimer, error) {
	period := periodMicros(frequencyHz)

	it := unix.Itimerval{
		Value:    unix.Timeval{Sec: period / 1_000_000, Usec: period % 1_000_000},
		Interval: unix.Timeval{Sec: period / 1_000_000, Usec: period % 1_000_000},
	}

	if err := unix.Setitimer(unix.ITIMER_PROF, &it, nil); err != nil {
		return nil, fmt.Errorf("setitimer(ITIMER_PROF) arm: %w", err)
	}

	return &IntervalTimer{frequencyHz: frequencyHz, start: time.Now()}, nil
}

// Timing returns the configured frequency and elapsed time since New.
func (t *IntervalTimer) Timing() Timing {
	return Timing{FrequencyHz: t.frequencyHz, Elapsed: time.Since(t.start)}
}

// Disarm zeroes the timer period, which the kernel treats as "stop
// delivering this timer's signal". Idempotent: disarming twice is harmless.
func (t *IntervalTimer) Disarm() error {
	var zero unix.Itimerval
	if err := unix.Setitimer(unix.ITIMER_PROF, &zero, nil); err != nil {
		return fmt.Errorf("setitimer(ITIMER_PROF) disarm: %w", err)
	}
	return nil
}

func periodMicros(frequencyHz int) int64 {
	if frequencyHz < 1 {
		frequencyHz = 1
	}
	micros := int64(1_000_000 / frequencyHz)
	if micros < 1 {
		micros = 1
	}
	return micros
}
