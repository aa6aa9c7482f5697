package template

import (
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/sahilm/fuzzy"
)

// boundType discriminates the node variants of a resolved tree.
type boundType int

const (
	boundLiteral boundType = iota
	boundProperty
	boundMethod
	boundBuiltin
	boundConcat
)

// BoundExpr is a template expression after name resolution.
//
// Every name has been resolved to a built-in operation, a property
// accessor on the context kind, or a method of its receiver's value type;
// alias references have been expanded inline. Binding is context-item
// independent: a bound tree is built once per distinct template and shared
// read-only across all items rendered in one session.
type BoundExpr struct {
	typ  boundType
	out  ValueType // static result type
	pos  Position
	lit  Value
	prop *property
	meth *method
	bi   *builtin
	recv *BoundExpr
	args []*BoundExpr
}

// property is one entry in a context kind's capability set.
type property struct {
	name      string
	out       ValueType
	getCommit func(Commit) Value
	getOp     func(Operation) Value
}

// commitProperties is the capability set of commit-log entries.
var commitProperties = map[string]*property{
	"commit_id": {
		out:       ValueId,
		getCommit: func(c Commit) Value { return IdValue(c.CommitId()) },
	},
	"change_id": {
		out:       ValueId,
		getCommit: func(c Commit) Value { return IdValue(c.ChangeId()) },
	},
	"author": {
		out:       ValueSignature,
		getCommit: func(c Commit) Value { return SigValue(c.Author()) },
	},
	"committer": {
		out:       ValueSignature,
		getCommit: func(c Commit) Value { return SigValue(c.Committer()) },
	},
	"description": {
		out:       ValueString,
		getCommit: func(c Commit) Value { return StringValue(c.Description()) },
	},
	"branches": {
		out:       ValueList,
		getCommit: func(c Commit) Value { return StringListValue(c.Branches()) },
	},
	"tags": {
		out:       ValueList,
		getCommit: func(c Commit) Value { return StringListValue(c.Tags()) },
	},
	"working_copies": {
		out:       ValueList,
		getCommit: func(c Commit) Value { return StringListValue(c.WorkingCopies()) },
	},
	"current_working_copy": {
		out:       ValueBoolean,
		getCommit: func(c Commit) Value { return BoolValue(c.IsWorkingCopy()) },
	},
	"git_head": {
		out:       ValueBoolean,
		getCommit: func(c Commit) Value { return BoolValue(c.IsGitHead()) },
	},
	"divergent": {
		out:       ValueBoolean,
		getCommit: func(c Commit) Value { return BoolValue(c.IsDivergent()) },
	},
	"hidden": {
		out:       ValueBoolean,
		getCommit: func(c Commit) Value { return BoolValue(c.IsHidden()) },
	},
	"conflict": {
		out:       ValueBoolean,
		getCommit: func(c Commit) Value { return BoolValue(c.HasConflict()) },
	},
	"empty": {
		out:       ValueBoolean,
		getCommit: func(c Commit) Value { return BoolValue(c.IsEmpty()) },
	},
}

// operationProperties is the capability set of operation-log entries.
var operationProperties = map[string]*property{
	"id": {
		out:   ValueId,
		getOp: func(o Operation) Value { return IdValue(o.Id()) },
	},
	"user": {
		out:   ValueString,
		getOp: func(o Operation) Value { return StringValue(o.User()) },
	},
	"time": {
		out:   ValueTimeRange,
		getOp: func(o Operation) Value { return RangeValue(o.Time()) },
	},
	"description": {
		out:   ValueString,
		getOp: func(o Operation) Value { return StringValue(o.Description()) },
	},
	"tags": {
		out:   ValueList,
		getOp: func(o Operation) Value { return StringListValue(o.Tags()) },
	},
	"current_operation": {
		out:   ValueBoolean,
		getOp: func(o Operation) Value { return BoolValue(o.IsCurrent()) },
	},
}

// contextProperties returns the capability set for a context kind.
func contextProperties(kind ContextKind) map[string]*property {
	if kind == ContextOperation {
		return operationProperties
	}

	return commitProperties
}

// method is one entry in a value type's capability set.
// Methods are strict: arguments are evaluated before the method runs.
type method struct {
	name     string
	argTypes []ValueType // exact arity and static argument types
	out      ValueType
	eval     func(st *state, recv Value, args []Value) (Value, error)
}

// valueMethods is the closed capability table keyed by receiver type.
// Resolution performs a lookup keyed by (type, name) at bind time, so an
// unknown combination is a static error, not a runtime dispatch failure.
var valueMethods = map[ValueType]map[string]*method{
	ValueString: {
		"first_line": {
			out: ValueString,
			eval: func(_ *state, recv Value, _ []Value) (Value, error) {
				return StringValue(firstLine(recv.Str)), nil
			},
		},
	},
	ValueTimestamp: {
		"ago": {
			out: ValueString,
			eval: func(st *state, recv Value, _ []Value) (Value, error) {
				return StringValue(timeAgo(recv.Time, st.clock())), nil
			},
		},
	},
	ValueTimeRange: {
		"start": {
			out: ValueTimestamp,
			eval: func(_ *state, recv Value, _ []Value) (Value, error) {
				return TimeValue(recv.Range.Start), nil
			},
		},
		"end": {
			out: ValueTimestamp,
			eval: func(_ *state, recv Value, _ []Value) (Value, error) {
				return TimeValue(recv.Range.End), nil
			},
		},
		"duration": {
			out: ValueString,
			eval: func(_ *state, recv Value, _ []Value) (Value, error) {
				d := recv.Range.End.Sub(recv.Range.Start)

				return StringValue(humanDuration(d)), nil
			},
		},
	},
	ValueSignature: {
		"name": {
			out: ValueString,
			eval: func(_ *state, recv Value, _ []Value) (Value, error) {
				return StringValue(recv.Sig.Name), nil
			},
		},
		"email": {
			out: ValueString,
			eval: func(_ *state, recv Value, _ []Value) (Value, error) {
				return StringValue(recv.Sig.Email), nil
			},
		},
		"username": {
			out: ValueString,
			eval: func(_ *state, recv Value, _ []Value) (Value, error) {
				return StringValue(recv.Sig.Username()), nil
			},
		},
		"timestamp": {
			out: ValueTimestamp,
			eval: func(_ *state, recv Value, _ []Value) (Value, error) {
				return TimeValue(recv.Sig.Timestamp), nil
			},
		},
	},
	ValueId: {
		"short": {
			out: ValueString,
			eval: func(_ *state, recv Value, _ []Value) (Value, error) {
				return StringValue(prefixOf(recv.Str, shortIdLen)), nil
			},
		},
		"shortest": {
			argTypes: []ValueType{ValueInteger},
			out:      ValueString,
			eval: func(st *state, recv Value, args []Value) (Value, error) {
				return StringValue(shortestPrefix(
					recv.Str, int(args[0].Int), st.ids,
				)), nil
			},
		},
	},
}

// shortIdLen is the prefix length of Id.short().
const shortIdLen = 12

// resolver binds one expression tree against a context kind.
type resolver struct {
	cfg  *Config
	kind ContextKind

	// stack holds the names of aliases currently being expanded, in
	// expansion order. Re-entry of a name already on the stack is a cycle.
	stack []string

	// params maps the current alias body's parameter names to argument
	// trees already bound at the call site. Nil outside alias bodies.
	params map[string]*BoundExpr
}

// Resolve binds a parsed expression against a context kind using the given
// configuration. The returned tree honors the capability sets of every
// receiver and contains no unresolved names.
func Resolve(expr *Expr, cfg *Config, kind ContextKind) (*BoundExpr, error) {
	r := &resolver{cfg: cfg, kind: kind}

	return r.bind(expr)
}

func (r *resolver) bind(expr *Expr) (*BoundExpr, error) {
	switch expr.Type {
	case TypeString:
		return &BoundExpr{
			typ: boundLiteral,
			out: ValueString,
			pos: expr.Pos,
			lit: StringValue(expr.Text),
		}, nil

	case TypeInteger:
		return &BoundExpr{
			typ: boundLiteral,
			out: ValueInteger,
			pos: expr.Pos,
			lit: IntValue(expr.Int),
		}, nil

	case TypeGroup:
		return r.bind(expr.Inner)

	case TypeConcat:
		left, err := r.bind(expr.Args[0])
		if err != nil {
			return nil, err
		}

		right, err := r.bind(expr.Args[1])
		if err != nil {
			return nil, err
		}

		return &BoundExpr{
			typ:  boundConcat,
			out:  ValueTemplate,
			pos:  expr.Pos,
			args: []*BoundExpr{left, right},
		}, nil

	case TypeIdent, TypeCall:
		return r.bindName(expr)

	case TypeMethod:
		return r.bindMethod(expr)

	default:
		return nil, ErrParse.WithPosition(expr.Pos).
			With(slog.String("node", expr.Type.String()))
	}
}

// bindName resolves a bare identifier or function call. Resolution tiers,
// in strict priority order: engine built-in, alias parameter (within an
// alias body), user or default alias, property of the context kind.
func (r *resolver) bindName(expr *Expr) (*BoundExpr, error) {
	name := expr.Text

	// Tier 1: built-in combinator. Built-ins are not overridable.
	if bi, ok := builtins[name]; ok {
		return r.bindBuiltin(expr, bi)
	}

	// Tier 2: parameter of the alias body currently being expanded.
	// Parameters are plain substitutions and accept no arguments.
	if bound, ok := r.params[name]; ok && expr.Type == TypeIdent {
		return bound, nil
	}

	// Tier 3: alias of matching name.
	if alias, ok := r.cfg.Aliases.Get(name); ok {
		return r.bindAlias(expr, alias)
	}

	// Tier 4: property of the context kind.
	if prop, ok := contextProperties(r.kind)[name]; ok {
		if len(expr.Args) > 0 {
			return nil, ErrArity.WithPosition(expr.Pos).
				With(
					slog.String("name", name),
					slog.Int("expected", 0),
					slog.Int("got", len(expr.Args)),
				)
		}

		return &BoundExpr{
			typ:  boundProperty,
			out:  prop.out,
			pos:  expr.Pos,
			prop: prop,
		}, nil
	}

	return nil, r.unresolved(expr.Pos, name)
}

// bindBuiltin checks arity and static argument types of a built-in call,
// binding arguments as unevaluated subtrees for the built-in's lazy
// evaluation rule.
func (r *resolver) bindBuiltin(expr *Expr, bi *builtin) (*BoundExpr, error) {
	n := len(expr.Args)

	if n < bi.minArgs || (bi.maxArgs >= 0 && n > bi.maxArgs) {
		return nil, ErrArity.WithPosition(expr.Pos).
			With(
				slog.String("name", bi.name),
				slog.String("expected", bi.arityString()),
				slog.Int("got", n),
			)
	}

	args := make([]*BoundExpr, n)

	for i, arg := range expr.Args {
		bound, err := r.bind(arg)
		if err != nil {
			return nil, err
		}

		args[i] = bound
	}

	if bi.check != nil {
		if err := bi.check(args, expr.Pos); err != nil {
			return nil, err
		}
	}

	return &BoundExpr{
		typ:  boundBuiltin,
		out:  ValueTemplate,
		pos:  expr.Pos,
		bi:   bi,
		args: args,
	}, nil
}

// bindAlias expands an alias reference inline at the call site.
//
// Expansion is a substitution: the body resolves as if written at the call
// site, against the calling context kind, with parameters bound to the
// caller's already-bound argument trees. Aliases are therefore
// context-polymorphic: format_short_id(id) works for whatever kind of id
// each call site supplies.
func (r *resolver) bindAlias(expr *Expr, alias *Alias) (*BoundExpr, error) {
	if slices.Contains(r.stack, alias.Name) {
		return nil, ErrAliasCycle.WithPosition(expr.Pos).
			With(
				slog.String("alias", alias.Name),
				slog.String("stack", strings.Join(r.stack, " -> ")),
			)
	}

	if len(expr.Args) != len(alias.Params) {
		return nil, ErrArity.WithPosition(expr.Pos).
			With(
				slog.String("alias", alias.Name),
				slog.Int("expected", len(alias.Params)),
				slog.Int("got", len(expr.Args)),
			)
	}

	// Arguments bind in the caller's environment before the body's
	// parameter scope replaces it.
	params := make(map[string]*BoundExpr, len(alias.Params))

	for i, arg := range expr.Args {
		bound, err := r.bind(arg)
		if err != nil {
			return nil, err
		}

		params[alias.Params[i]] = bound
	}

	body, err := alias.parsed()
	if err != nil {
		return nil, err
	}

	inner := &resolver{
		cfg:    r.cfg,
		kind:   r.kind,
		stack:  append(r.stack[:len(r.stack):len(r.stack)], alias.Name),
		params: params,
	}

	bound, err := inner.bind(body)
	if err != nil {
		return nil, WrapError(err).With(slog.String("alias", alias.Name))
	}

	return bound, nil
}

// bindMethod resolves a method call against the static type of its
// receiver.
func (r *resolver) bindMethod(expr *Expr) (*BoundExpr, error) {
	recv, err := r.bind(expr.Recv)
	if err != nil {
		return nil, err
	}

	meth, ok := valueMethods[recv.out][expr.Text]
	if !ok {
		return nil, ErrUnknownMethod.WithPosition(expr.Pos).
			With(
				slog.String("type", recv.out.String()),
				slog.String("method", expr.Text),
				suggestAttr(expr.Text, methodNames(recv.out)),
			)
	}

	if len(expr.Args) != len(meth.argTypes) {
		return nil, ErrArity.WithPosition(expr.Pos).
			With(
				slog.String("method", expr.Text),
				slog.Int("expected", len(meth.argTypes)),
				slog.Int("got", len(expr.Args)),
			)
	}

	args := make([]*BoundExpr, len(expr.Args))

	for i, arg := range expr.Args {
		bound, err := r.bind(arg)
		if err != nil {
			return nil, err
		}

		if bound.out != meth.argTypes[i] {
			return nil, ErrType.WithPosition(arg.Pos).
				With(
					slog.String("method", expr.Text),
					slog.Int("argument", i+1),
					slog.String("expected", meth.argTypes[i].String()),
					slog.String("got", bound.out.String()),
				)
		}

		args[i] = bound
	}

	return &BoundExpr{
		typ:  boundMethod,
		out:  meth.out,
		pos:  expr.Pos,
		meth: meth,
		recv: recv,
		args: args,
	}, nil
}

// unresolved builds the error for a name matching no tier, with fuzzy
// "did you mean" candidates drawn from every tier the name was checked
// against.
func (r *resolver) unresolved(pos Position, name string) error {
	candidates := make([]string, 0, 16)

	for bi := range builtins {
		candidates = append(candidates, bi)
	}

	for p := range r.params {
		candidates = append(candidates, p)
	}

	candidates = append(candidates, r.cfg.Aliases.Names()...)
	candidates = append(candidates,
		slices.Sorted(maps.Keys(contextProperties(r.kind)))...)

	return ErrUnresolvedName.WithPosition(pos).
		With(
			slog.String("name", name),
			slog.String("context", r.kind.String()),
			suggestAttr(name, candidates),
		)
}

// methodNames returns the method capability set of a value type, sorted.
func methodNames(t ValueType) []string {
	return slices.Sorted(maps.Keys(valueMethods[t]))
}

// suggestAttr builds a "did you mean" log attribute from the closest fuzzy
// matches, or an empty attribute when nothing is close.
func suggestAttr(name string, candidates []string) slog.Attr {
	matches := fuzzy.Find(name, candidates)

	if len(matches) == 0 {
		return slog.Attr{}
	}

	const limit = 3

	picks := make([]string, 0, limit)

	for _, m := range matches {
		picks = append(picks, m.Str)

		if len(picks) == limit {
			break
		}
	}

	return slog.String("did_you_mean", strings.Join(picks, ", "))
}
