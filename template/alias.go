package template

import (
	"log/slog"
	"maps"
	"slices"
	"sync"
)

// Alias is a named, optionally parametrized template definition.
//
// The body is kept as raw source and parsed on first use, so a table of
// aliases can be loaded from configuration without paying for definitions
// that never appear in a rendered template. Parse errors surface at the
// first call site that expands the alias.
type Alias struct {
	Name   string
	Params []string // nil for a symbol alias
	Source string

	once sync.Once
	expr *Expr
	err  error
}

// parsed returns the parsed body, parsing it on first use.
//
// The parse runs under a [sync.Once] because one Alias is shared by every
// template that expands it: concurrent binds of distinct sources reach the
// same Alias value.
func (a *Alias) parsed() (*Expr, error) {
	a.once.Do(func() {
		expr, err := Parse(a.Source)
		if err != nil {
			a.err = WrapError(err).With(slog.String("alias", a.Name))

			return
		}

		a.expr = expr
	})

	return a.expr, a.err
}

// AliasTable maps alias names to definitions.
//
// The table is mutated only while configuration loads; resolution and
// evaluation treat it as read-only, so one table is safely shared across
// concurrent rendering sessions.
type AliasTable struct {
	defs map[string]*Alias
}

// NewAliasTable creates an empty alias table.
func NewAliasTable() *AliasTable {
	return &AliasTable{defs: make(map[string]*Alias)}
}

// Define adds an alias to the table.
//
// The declaration is either a bare name ("description_placeholder") or a
// name with parameter names ("format_short_id(id)"). Parameter names must
// be unique. Redefining an existing name replaces it: the last definition
// in configuration order wins, which is how user configuration overrides
// the built-in defaults.
func (t *AliasTable) Define(decl, source string) error {
	name, params, err := parseAliasDecl(decl)
	if err != nil {
		return err
	}

	t.defs[name] = &Alias{Name: name, Params: params, Source: source}

	return nil
}

// Get retrieves an alias by name.
// Returns (nil, false) if the alias is not defined.
func (t *AliasTable) Get(name string) (*Alias, bool) {
	a, ok := t.defs[name]

	return a, ok
}

// Names returns all defined alias names in sorted order.
func (t *AliasTable) Names() []string {
	return slices.Sorted(maps.Keys(t.defs))
}

// Clone returns an independent copy of the table.
// The Alias values themselves are shared: definitions are immutable after
// load apart from the lazily parsed body, which is identical either way.
func (t *AliasTable) Clone() *AliasTable {
	return &AliasTable{defs: maps.Clone(t.defs)}
}

// parseAliasDecl splits an alias declaration into name and parameters.
func parseAliasDecl(decl string) (string, []string, error) {
	tokens, err := Tokenize(decl)
	if err != nil {
		return "", nil, ErrAliasDecl.Wrap(err).
			With(slog.String("declaration", decl))
	}

	fail := func() (string, []string, error) {
		return "", nil, ErrAliasDecl.
			With(slog.String("declaration", decl))
	}

	if len(tokens) < 2 || tokens[0].Kind != KindIdent {
		return fail()
	}

	name := tokens[0].Text

	// Bare symbol alias: IDENT EOF.
	if tokens[1].Kind == KindEOF {
		return name, nil, nil
	}

	// Parametrized alias: IDENT "(" IDENT ("," IDENT)* ")" EOF.
	if tokens[1].Kind != KindLParen {
		return fail()
	}

	params := make([]string, 0, 2)

	// Explicit empty parameter list: IDENT "(" ")" EOF.
	if len(tokens) >= 4 &&
		tokens[2].Kind == KindRParen && tokens[3].Kind == KindEOF {
		return name, params, nil
	}

	i := 2
	for {
		if i >= len(tokens) || tokens[i].Kind != KindIdent {
			return fail()
		}

		if slices.Contains(params, tokens[i].Text) {
			return "", nil, ErrAliasDecl.
				With(
					slog.String("declaration", decl),
					slog.String("duplicate_parameter", tokens[i].Text),
				)
		}

		params = append(params, tokens[i].Text)
		i++

		if i >= len(tokens) {
			return fail()
		}

		switch tokens[i].Kind {
		case KindComma:
			i++

		case KindRParen:
			if i+1 >= len(tokens) || tokens[i+1].Kind != KindEOF {
				return fail()
			}

			return name, params, nil

		default:
			return fail()
		}
	}
}
