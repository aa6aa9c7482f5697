// Package log provides a concurrency-safe structured logging facade over
// [log/slog].
//
// It adds a Trace level below Debug, colorized pretty handlers for
// terminal output, and a process-wide default logger configurable with
// functional options. Library packages accept a [Logger] value and never
// touch the default logger; only the CLI configures it.
package log
