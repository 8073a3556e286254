// Package rpprof is a signal-driven sampling CPU profiler for POSIX
// processes (Linux and macOS; x86_64, aarch64 and, on Linux, riscv64).
//
// A Builder configures and starts the profiler, producing a Guard that owns
// the running profiler until Close is called. Samples accumulate in a
// lock-free sink fed from a SIGPROF handler; Report drains them for a
// downstream consumer (symbolization, flamegraph rendering and pprof
// encoding are explicitly out of scope for this package).
package rpprof
