// Package cmd implements the revfmt subcommands: render, check, fmt,
// and repl.
package cmd
