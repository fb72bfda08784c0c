// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// The package offers configurable time formatting, caller information,
// and output formats that are applied at logger creation time using
// functional options.
//
// # Basic Usage
//
//	logger := log.Make(os.Stderr)
//	logger.Info("collection loaded", slog.Int("scripts", 42))
//
// # Configuration
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithTimeLayout("RFC3339Nano"),
//		log.WithCaller(true))
//
// # Default Logger
//
// Package-level functions ([Info], [DebugContext], ...) write through a
// process-wide default logger reconfigured with [Config]. The CLI configures
// it from the --log-* flags before any command runs.
//
// # Zero Value
//
// The zero [Logger] discards everything. Compilers and parsers accept a
// Logger through their options and stay silent unless one is provided.
//
// # Output Formats
//
// Two output formats are supported: [FormatJSON] (default) and
// [FormatText]. With [WithPretty] enabled, text output is colorized with
// lipgloss styles and JSON output is indented.
package log
