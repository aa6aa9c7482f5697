package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ardnew/revfmt/log"
	"github.com/ardnew/revfmt/style"
	"github.com/ardnew/revfmt/template"
	"github.com/ardnew/revfmt/vcs"
)

// Render renders revision records through a configured template.
type Render struct {
	Template string `arg:"" help:"Template name to render" name:"template" optional:""`

	Input  string `help:"Revision records YAML file or '-' for stdin"          short:"i"`
	Kind   string `default:"commit" enum:"commit,operation"                    help:"Record kind to render" short:"k"`
	Source string `help:"Literal template source overriding the named template" short:"e"`
	Plain  bool   `help:"Disable terminal styling"                             negatable:""`
}

// Run executes the render command.
func (r *Render) Run(ctx context.Context) (err error) {
	_, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	cfg, palette, err := setup(ctx)
	if err != nil {
		return err
	}

	records, err := r.records()
	if err != nil {
		return err
	}

	renderer := style.NewRenderer(palette)
	if r.Plain {
		renderer = style.NewRenderer(nil)
	}

	switch r.Kind {
	case "operation":
		return r.renderOperations(ctx, cfg, renderer, records.Operations)
	default:
		return r.renderCommits(ctx, cfg, renderer, records.Commits)
	}
}

// records loads the revision set named by --input, or the built-in samples
// when no input was given.
func (r *Render) records() (*vcs.Records, error) {
	if r.Input == "" {
		return &vcs.Records{
			Commits:    vcs.SampleCommits(),
			Operations: vcs.SampleOperations(),
		}, nil
	}

	return vcs.LoadRecords(r.Input)
}

// name returns the template to render, defaulting by record kind.
func (r *Render) name(kind template.ContextKind) string {
	if r.Template != "" {
		return r.Template
	}

	if kind == template.ContextOperation {
		return "op_log"
	}

	return "log"
}

func (r *Render) renderCommits(
	ctx context.Context,
	cfg *template.Config,
	renderer *style.Renderer,
	commits []*vcs.Commit,
) error {
	if len(commits) == 0 {
		return ErrNoRecords.With(slog.String("kind", r.Kind))
	}

	session := template.NewSession(cfg,
		template.WithLogger(log.Default()),
		template.WithClock(time.Now),
		template.WithIdResolver(vcs.CommitResolver(commits)),
	)

	for _, commit := range commits {
		frags, err := r.commitFragments(session, commit)
		if err != nil {
			return err
		}

		fmt.Print(renderer.Render(frags))
	}

	log.DebugContext(ctx, "rendered records",
		slog.Int("count", len(commits)),
		slog.String("kind", r.Kind),
	)

	return nil
}

func (r *Render) commitFragments(
	session *template.Session,
	commit *vcs.Commit,
) ([]template.Fragment, error) {
	if r.Source != "" {
		return session.RenderCommitSource(r.Source, commit)
	}

	return session.RenderCommit(r.name(template.ContextCommit), commit)
}

func (r *Render) renderOperations(
	ctx context.Context,
	cfg *template.Config,
	renderer *style.Renderer,
	ops []*vcs.Operation,
) error {
	if len(ops) == 0 {
		return ErrNoRecords.With(slog.String("kind", r.Kind))
	}

	session := template.NewSession(cfg,
		template.WithLogger(log.Default()),
		template.WithClock(time.Now),
		template.WithIdResolver(vcs.OperationResolver(ops)),
	)

	for _, op := range ops {
		var (
			frags []template.Fragment
			err   error
		)

		if r.Source != "" {
			frags, err = session.RenderOperationSource(r.Source, op)
		} else {
			frags, err = session.RenderOperation(
				r.name(template.ContextOperation), op)
		}

		if err != nil {
			return err
		}

		fmt.Print(renderer.Render(frags))
	}

	log.DebugContext(ctx, "rendered records",
		slog.Int("count", len(ops)),
		slog.String("kind", r.Kind),
	)

	return nil
}
