// Package profile provides optional runtime profiling for the revfmt
// application.
//
// This package integrates [github.com/pkg/profile] with conditional
// compilation support. Profiling is optional and must be enabled at build
// time using the "pprof" build tag. When built without the tag, all
// operations are no-ops with zero runtime overhead.
//
// The following profiling modes are supported when built with the pprof tag:
//
//   - allocs:    Memory allocation profiling (all allocations)
//   - block:     Block (synchronization) profiling
//   - clock:     Wall-clock profiling
//   - cpu:       CPU profiling
//   - goroutine: Goroutine profiling
//   - heap:      Heap memory profiling (live allocations)
//   - mem:       General memory profiling
//   - mutex:     Mutex contention profiling
//   - thread:    Thread creation profiling
//   - trace:     Execution trace profiling
//
// Use [Modes] to retrieve the list of supported modes programmatically.
//
// A profiler is configured as a [Config] and started with [Config.Start]:
//
//	var cfg profile.Config = func() (string, string, bool) {
//	    return "cpu", "/tmp/profiles", true
//	}
//	ctrl := cfg.Start()
//	defer ctrl.Stop()
//
// Profile files are written to the configured directory with names matching
// the profiling mode (e.g., cpu.pprof, mem.pprof).
//
// The revfmt command exposes profiling through the --pprof-mode and
// --pprof-dir flags when built with the pprof tag. Analyze the output with
// go tool pprof:
//
//	go tool pprof ./revfmt /tmp/profiles/cpu.pprof
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
