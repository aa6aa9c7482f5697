package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ardnew/revfmt/log"
	"github.com/ardnew/revfmt/template"
)

// Check validates configured templates without rendering anything.
//
// Every lexical, syntactic, and binding error in a template is a
// configuration error, so check resolves each template completely against
// its context kind and reports the first error per template.
type Check struct {
	Templates []string `arg:"" help:"Template names to validate (default: all)" name:"templates" optional:""`

	Kind string `help:"Context kind for explicitly named templates" enum:",commit,operation" default:"" short:"k"`
}

// Run executes the check command.
func (c *Check) Run(ctx context.Context) (err error) {
	_, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	cfg, _, err := setup(ctx)
	if err != nil {
		return err
	}

	session := template.NewSession(cfg, template.WithLogger(log.Default()))

	names := c.Templates
	if len(names) == 0 {
		names = cfg.TemplateNames()
	}

	failed := 0

	for _, name := range names {
		kind := c.kindOf(name)

		err := session.Check(name, kind)
		if err != nil {
			failed++

			log.Error("invalid template",
				slog.String("template", name),
				slog.String("kind", kind.String()),
				slog.Any("cause", err),
			)

			continue
		}

		fmt.Printf("%s: ok (%s)\n", name, kind)
	}

	if failed > 0 {
		return ErrCheckFailed.With(
			slog.Int("failed", failed),
			slog.Int("total", len(names)),
		)
	}

	return nil
}

// kindOf selects the context kind to validate a template against. An
// explicit --kind wins; otherwise operation-log templates are recognized
// by naming convention.
func (c *Check) kindOf(name string) template.ContextKind {
	switch c.Kind {
	case "commit":
		return template.ContextCommit
	case "operation":
		return template.ContextOperation
	}

	if strings.HasPrefix(name, "op_") || strings.Contains(name, "_op_") {
		return template.ContextOperation
	}

	return template.ContextCommit
}
