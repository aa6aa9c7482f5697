package cmd

import (
	"context"

	"github.com/ardnew/revfmt/cli/cmd/repl"
	"github.com/ardnew/revfmt/log"
)

// Repl runs the interactive template evaluator.
type Repl struct {
	CacheDir string `default:"${cacheDir}" help:"Directory for REPL history" type:"path"`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	cfg, palette, err := setup(ctx)
	if err != nil {
		return err
	}

	return repl.Run(ctx, cfg, palette, r.CacheDir, log.Default())
}
