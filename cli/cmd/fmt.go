package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ardnew/revfmt/template"
)

// Fmt parses template source and reprints it in canonical form.
//
// Formatting decodes and re-encodes string literals, normalizes spacing
// around operators and argument lists, and preserves parenthesized
// groupings. Formatting an already canonical template is the identity.
type Fmt struct {
	Source string `arg:"" default:"-" help:"Template source file or '-' for stdin" name:"source"`

	Expr string `help:"Literal template source to format (overrides the file)" short:"e"`
}

// Run executes the fmt command.
func (f *Fmt) Run(ctx context.Context) (err error) {
	_, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	source := f.Expr
	if source == "" {
		source, err = f.read()
		if err != nil {
			return err
		}
	}

	expr, err := template.Parse(source)
	if err != nil {
		return template.WrapError(err).
			With(slog.String("command", "fmt"))
	}

	fmt.Println(template.Format(expr))

	return nil
}

// read loads template source from the named file or stdin.
func (f *Fmt) read() (string, error) {
	var file *os.File

	if f.Source == "-" {
		file = os.Stdin
	} else {
		var err error

		file, err = os.Open(f.Source)
		if err != nil {
			return "", err
		}
		defer file.Close()
	}

	buf, err := io.ReadAll(bufio.NewReader(file))
	if err != nil {
		return "", err
	}

	return string(buf), nil
}
