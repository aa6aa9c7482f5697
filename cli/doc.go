// Package cli contains the command line interface for revfmt.
//
// # Usage
//
// The CLI exposes the template engine as four subcommands:
//
//	revfmt render [template]   # render revision records to the terminal
//	revfmt check [template]    # validate configured templates
//	revfmt fmt [source]        # canonically format template source
//	revfmt repl                # evaluate templates interactively
//
// # Configuration
//
// Configuration lives in a YAML file (default: the platform config
// directory, e.g. ~/.config/revfmt/config.yaml) with templates, aliases,
// colors, and flags sections. The flags section supplies defaults for any
// command-line flag; explicit flags always win.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, RFC3339Nano, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Enable colorized pretty printing
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o revfmt .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default:
//     ~/.cache/revfmt/pprof)
//
// # Examples
//
//	# Render the stock log template over the built-in sample history
//	revfmt render
//
//	# Render a named template over records loaded from a file
//	revfmt render op_log --input ops.yaml --kind operation
//
//	# Validate every configured template
//	revfmt check --log-level=debug
//
//	# Format template source from stdin
//	echo 'if(empty,label("empty","(empty)"))' | revfmt fmt
package cli
