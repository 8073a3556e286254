// Package native wraps the cgo signal-handling core: the C-level
// SignalHandler, SampleSink and UnwindProvider from the design. Everything
// that must run inside a POSIX signal handler lives in C here; Go only ever
// calls into this package from ordinary (non-signal) goroutines.
package native

/*
#cgo CFLAGS: -std=c11 -Wall
#cgo linux LDFLAGS: -lpthread
#cgo rpprof_libunwind LDFLAGS: -lunwind
#include <stdlib.h>
#include "core.h"
#include "signal_handler.h"
*/
import "C"

import (
	"errors"
	"unsafe"

	"github.com/tikv/rp-prof/internal/safe"
)

func init() {
	C.rpprof_state_init()
}

// Segment is the address range [Start, End) of a blocklisted library. The
// handler excises only addresses strictly between Start and End.
type Segment struct {
	Start uint64
	End   uint64
}

// Sample is one drained sink entry: a distinct stack plus its hit count.
type Sample struct {
	IPs        []uint64
	ThreadName string
	ThreadID   uint64
	Count      uint64
}

// InstallHandler installs the SIGPROF handler with SA_SIGINFO|SA_RESTART
// and an empty block mask.
func InstallHandler() error {
	if C.rpprof_install_handler() != 0 {
		return errors.New("sigaction(SIGPROF, install) failed")
	}
	return nil
}

// UninstallHandler replaces SIGPROF's disposition with SIG_IGN.
func UninstallHandler() error {
	if C.rpprof_uninstall_handler() != 0 {
		return errors.New("sigaction(SIGPROF, SIG_IGN) failed")
	}
	return nil
}

// SetRunning flips the global running flag under the state's write lock.
func SetRunning(running bool) {
	if running {
		C.rpprof_set_running(1)
	} else {
		C.rpprof_set_running(0)
	}
}

// IsRunning reports the single process-wide running flag under the read
// lock. This is the source of truth for exclusivity across every Core
// instance in the process, since each Core's own bookkeeping is private to
// that instance.
func IsRunning() bool {
	return C.rpprof_is_running() != 0
}

// StopAndReset clears running, the sink and the counters under the write
// lock. Call only after the timer has been disarmed and the handler
// uninstalled (or ignored), so no producer can observe the reset mid-flight.
func StopAndReset() {
	C.rpprof_stop_and_reset()
}

// SetBlocklist copies segs into the C-side static array, returning the
// number actually stored (truncated if segs exceeds the fixed capacity).
func SetBlocklist(segs []Segment) int {
	if len(segs) == 0 {
		return 0
	}
	cSegs := make([]C.rpprof_segment, len(segs))
	for i, s := range segs {
		cSegs[i] = C.rpprof_segment{start: C.uint64_t(s.Start), end: C.uint64_t(s.End)}
	}
	count, _ := safe.IntToInt32(len(cSegs))
	n := C.rpprof_set_blocklist((*C.rpprof_segment)(unsafe.Pointer(&cSegs[0])), C.int32_t(count))
	return int(n)
}

// Drain copies every populated sink slot into Go-owned Samples. It holds the
// state's read lock while copying, so the handler (which only try-locks)
// cannot write to the sink during the copy. StopAndReset empties the sink,
// so Drain must run before it.
func Drain() []Sample {
	buf := make([]C.rpprof_drained_sample, C.RPPROF_SINK_CAPACITY)
	n := C.rpprof_drain((*C.rpprof_drained_sample)(unsafe.Pointer(&buf[0])), C.int32_t(len(buf)))

	samples := make([]Sample, 0, int(n))
	for i := 0; i < int(n); i++ {
		d := buf[i]
		ips := make([]uint64, int(d.depth))
		for j := range ips {
			ips[j] = uint64(d.ips[j])
		}
		samples = append(samples, Sample{
			IPs:        ips,
			ThreadName: C.GoString((*C.char)(unsafe.Pointer(&d.thread_name[0]))),
			ThreadID:   uint64(d.thread_id),
			Count:      uint64(d.count),
		})
	}
	return samples
}

// SampleCounter returns the number of samples successfully committed to the
// sink since the last reset.
func SampleCounter() uint64 {
	return uint64(C.rpprof_global_state.sample_counter)
}

// DroppedCounter returns the number of samples dropped due to sink overflow
// since the last reset.
func DroppedCounter() uint64 {
	return uint64(C.rpprof_global_state.dropped_counter)
}

// LockContendedCounter returns the number of handler invocations that
// dropped a sample because the try-lock failed.
func LockContendedCounter() uint64 {
	return uint64(C.rpprof_global_state.lock_contended_counter)
}

// InvokeHandlerForTest calls the handler body directly, bypassing signal
// delivery. Exposed only for the AS-safety and errno-preservation test
// suites; ucontext may be nil.
func InvokeHandlerForTest(ucontext unsafe.Pointer) {
	C.rpprof_invoke_handler_for_test(0, nil, ucontext)
}
