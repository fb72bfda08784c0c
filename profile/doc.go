// Package profile provides optional runtime profiling for scriptgen.
//
// Profiling is backed by [github.com/pkg/profile] and only compiled in when
// building with the "pprof" tag:
//
//	go build -tags pprof .
//	./scriptgen --pprof-mode cpu compile collection.yaml
//
// Without the tag, [Modes] is empty and [Profiler.Start] returns a no-op
// stopper, so callers never need to check the build configuration.
//
// Profile files are written under the configured directory with names
// matching the profiling mode (cpu.pprof, mem.pprof, ...) and can be
// inspected with "go tool pprof".
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
