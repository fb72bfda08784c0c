// Package cli contains the command line interface for scriptgen.
//
// # Usage
//
//	scriptgen [flags] <command> [args]
//
// The default command is compile:
//
//	scriptgen linux.yaml --recommend=standard -o privacy.sh
//	scriptgen compile windows.yaml --revert --script "Disable telemetry"
//
// Other commands inspect a collection without generating code:
//
//	scriptgen list linux.yaml
//	scriptgen search linux.yaml telemetry
//	scriptgen functions linux.yaml
//	scriptgen validate linux.yaml macos.yaml windows.yaml
//
// # Configuration
//
// Flag defaults are read from a YAML file in the user configuration
// directory (for example ~/.config/scriptgen/config). The file maps flag
// names to values; "scriptgen init" writes one from the current flags.
//
// # Logging Options
//
//   - --log-level: minimum log level (trace, debug, info, warn, error)
//   - --log-format: output format (json, text)
//   - --log-time-layout: timestamp format (RFC3339, Kitchen, none, ...)
//   - --log-caller: include caller information
//   - --log-pretty: colorize output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof .
//
//   - --pprof-mode: profile kind (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: output directory (default ~/.cache/scriptgen/pprof)
package cli
