package cmd

import (
	"context"
	"log/slog"

	"github.com/alecthomas/kong"

	"github.com/ardnew/revfmt/config"
	"github.com/ardnew/revfmt/log"
	"github.com/ardnew/revfmt/style"
	"github.com/ardnew/revfmt/template"
)

// contextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// configPathKey is used to store the configuration file path in
// [context.Context].
type configPathKey struct{}

// WithConfigPath returns a new context.Context carrying the path of the
// configuration file selected on the command line.
func WithConfigPath(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, configPathKey{}, path)
}

func configPathFrom(ctx context.Context) string {
	path, _ := ctx.Value(configPathKey{}).(string)

	return path
}

// setup loads the configuration file referenced by ctx and builds the
// engine configuration and terminal palette from it.
func setup(ctx context.Context) (*template.Config, style.Palette, error) {
	if ktx := kongContextFrom(ctx); ktx != nil {
		log.DebugContext(ctx, "running command",
			slog.String("command", ktx.Command()),
		)
	}

	file, err := config.Load(configPathFrom(ctx))
	if err != nil {
		return nil, nil, err
	}

	cfg, err := file.Engine()
	if err != nil {
		return nil, nil, err
	}

	return cfg, style.DefaultPalette().Override(file.Colors), nil
}
