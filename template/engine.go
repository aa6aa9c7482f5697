package template

import (
	"log/slog"
	"maps"
	"slices"
	"time"

	"github.com/ardnew/revfmt/log"
)

// Config is the immutable configuration of one rendering session: the
// named top-level templates and the alias table.
//
// Construct it once (NewConfig pre-loads the built-in defaults, user
// configuration overrides by name) and pass it by reference into every
// session; the engine performs no ambient or global lookup.
type Config struct {
	Templates map[string]string
	Aliases   *AliasTable
}

// NewConfig creates a configuration populated with the built-in default
// templates and aliases.
func NewConfig() *Config {
	cfg := &Config{
		Templates: maps.Clone(defaultTemplates),
		Aliases:   NewAliasTable(),
	}

	for _, a := range defaultAliases {
		// Declarations are compiled in; they cannot fail to parse.
		_ = cfg.Aliases.Define(a.decl, a.source)
	}

	return cfg
}

// TemplateNames returns the configured top-level template names, sorted.
func (c *Config) TemplateNames() []string {
	return slices.Sorted(maps.Keys(c.Templates))
}

// Session renders context items through the templates of one Config.
//
// A session parses and resolves each distinct template at most once and
// shares the bound result, read-only, across every subsequent evaluation.
// Sessions are safe for concurrent rendering: binding is guarded once per
// template, and evaluation carries no state between items.
type Session struct {
	cfg    *Config
	logger log.Logger
	clock  func() time.Time
	ids    IdResolver
	bound  boundCache
}

// Option applies a configuration option to a Session.
type Option func(*Session)

// WithLogger sets the structured logger used for trace output.
func WithLogger(logger log.Logger) Option {
	return func(s *Session) { s.logger = logger }
}

// WithClock sets the time source used by relative timestamp formatting.
// Evaluation is deterministic for a fixed clock.
func WithClock(clock func() time.Time) Option {
	return func(s *Session) { s.clock = clock }
}

// WithIdResolver sets the collaborator backing Id.shortest(n).
func WithIdResolver(ids IdResolver) Option {
	return func(s *Session) { s.ids = ids }
}

// NewSession creates a rendering session over the given configuration.
func NewSession(cfg *Config, opts ...Option) *Session {
	s := &Session{
		cfg:   cfg,
		clock: time.Now,
		ids:   fullLengthResolver{},
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Config returns the configuration this session renders with.
func (s *Session) Config() *Config { return s.cfg }

// RenderCommit renders the named template against one commit-log entry.
func (s *Session) RenderCommit(name string, c Commit) ([]Fragment, error) {
	bound, err := s.boundTemplate(name, ContextCommit)
	if err != nil {
		return nil, err
	}

	st := s.state(ContextCommit)
	st.commit = c

	return st.render(bound)
}

// RenderOperation renders the named template against one operation-log
// entry.
func (s *Session) RenderOperation(
	name string,
	op Operation,
) ([]Fragment, error) {
	bound, err := s.boundTemplate(name, ContextOperation)
	if err != nil {
		return nil, err
	}

	st := s.state(ContextOperation)
	st.op = op

	return st.render(bound)
}

// RenderCommitSource renders ad-hoc template source against one commit.
// The bound tree is cached by source hash like any named template.
func (s *Session) RenderCommitSource(
	source string,
	c Commit,
) ([]Fragment, error) {
	bound, err := s.boundSource(source, ContextCommit)
	if err != nil {
		return nil, err
	}

	st := s.state(ContextCommit)
	st.commit = c

	return st.render(bound)
}

// RenderOperationSource renders ad-hoc template source against one
// operation.
func (s *Session) RenderOperationSource(
	source string,
	op Operation,
) ([]Fragment, error) {
	bound, err := s.boundSource(source, ContextOperation)
	if err != nil {
		return nil, err
	}

	st := s.state(ContextOperation)
	st.op = op

	return st.render(bound)
}

// Check parses and resolves the named template for a context kind without
// evaluating it. All configuration errors a template can produce surface
// here, once, before any item renders.
func (s *Session) Check(name string, kind ContextKind) error {
	_, err := s.boundTemplate(name, kind)

	return err
}

// state builds the per-item evaluation state.
func (s *Session) state(kind ContextKind) *state {
	return &state{
		kind:  kind,
		clock: s.clock,
		ids:   s.ids,
	}
}

// boundTemplate looks up a named template and binds its source.
func (s *Session) boundTemplate(
	name string,
	kind ContextKind,
) (*BoundExpr, error) {
	source, ok := s.cfg.Templates[name]
	if !ok {
		return nil, ErrTemplateNotFound.
			With(
				slog.String("template", name),
				suggestAttr(name, s.cfg.TemplateNames()),
			)
	}

	return s.boundSource(source, kind)
}
