package template

import (
	"log/slog"
	"strconv"
	"strings"
)

// builtin is an engine-provided combinator. Built-ins receive their
// arguments as unevaluated bound subtrees and explicitly choose which to
// force, which is what gives if and coalesce their short-circuit
// semantics.
type builtin struct {
	name    string
	minArgs int
	maxArgs int // -1 for unbounded

	// check performs additional static validation of bound arguments.
	check func(args []*BoundExpr, pos Position) error

	// eval forces whichever arguments the combinator's rule selects and
	// produces the resulting fragments.
	eval func(st *state, args []*BoundExpr) ([]Fragment, error)
}

func (b *builtin) arityString() string {
	if b.maxArgs < 0 {
		return "at least " + strconv.Itoa(b.minArgs)
	}

	if b.minArgs == b.maxArgs {
		return strconv.Itoa(b.minArgs)
	}

	return strconv.Itoa(b.minArgs) + ".." + strconv.Itoa(b.maxArgs)
}

// builtins is the combinator table. Names here shadow aliases and
// properties: tier one of resolution, not overridable.
var builtins = map[string]*builtin{
	"if": {
		name:    "if",
		minArgs: 2,
		maxArgs: 3,
		check:   checkIfCondition,
		eval:    evalIf,
	},
	"concat": {
		name:    "concat",
		minArgs: 1,
		maxArgs: -1,
		eval:    evalConcat,
	},
	"separate": {
		name:    "separate",
		minArgs: 1,
		maxArgs: -1,
		eval:    evalSeparate,
	},
	"label": {
		name:    "label",
		minArgs: 2,
		maxArgs: 2,
		eval:    evalLabel,
	},
	"indent": {
		name:    "indent",
		minArgs: 2,
		maxArgs: 2,
		eval:    evalIndent,
	},
	"coalesce": {
		name:    "coalesce",
		minArgs: 1,
		maxArgs: -1,
		eval:    evalCoalesce,
	},
}

// checkIfCondition enforces that the condition is statically Boolean.
func checkIfCondition(args []*BoundExpr, pos Position) error {
	if args[0].out != ValueBoolean {
		return ErrType.WithPosition(pos).
			With(
				slog.String("builtin", "if"),
				slog.String("expected", ValueBoolean.String()),
				slog.String("got", args[0].out.String()),
			)
	}

	return nil
}

// evalIf forces the condition, then exactly one branch. The unselected
// branch is never evaluated. A missing else branch yields no output.
func evalIf(st *state, args []*BoundExpr) ([]Fragment, error) {
	cond, err := st.evaluate(args[0])
	if err != nil {
		return nil, err
	}

	if cond.Bool {
		return st.render(args[1])
	}

	if len(args) == 3 {
		return st.render(args[2])
	}

	return nil, nil
}

// evalConcat renders every argument in order.
func evalConcat(st *state, args []*BoundExpr) ([]Fragment, error) {
	frags := make([]Fragment, 0, len(args))

	for _, arg := range args {
		part, err := st.render(arg)
		if err != nil {
			return nil, err
		}

		frags = append(frags, part...)
	}

	return frags, nil
}

// evalSeparate joins the non-empty arguments with the separator. Empty
// arguments contribute nothing, including their adjacent separator.
func evalSeparate(st *state, args []*BoundExpr) ([]Fragment, error) {
	sep, err := st.render(args[0])
	if err != nil {
		return nil, err
	}

	var frags []Fragment

	for _, arg := range args[1:] {
		part, err := st.render(arg)
		if err != nil {
			return nil, err
		}

		if isEmpty(part) {
			continue
		}

		if len(frags) > 0 {
			frags = append(frags, sep...)
		}

		frags = append(frags, part...)
	}

	return frags, nil
}

// evalLabel adds labels to every fragment the content produces. The first
// argument renders to a whitespace-separated list of label names; an empty
// rendering adds no labels, which lets templates write conditional labels
// as label(if(flag, "name"), content).
func evalLabel(st *state, args []*BoundExpr) ([]Fragment, error) {
	names, err := st.render(args[0])
	if err != nil {
		return nil, err
	}

	content, err := st.render(args[1])
	if err != nil {
		return nil, err
	}

	return labelAll(content, strings.Fields(Text(names))), nil
}

// evalIndent prefixes every line of the content's rendered text. The
// prefix fragment inherits the labels of the line it opens.
func evalIndent(st *state, args []*BoundExpr) ([]Fragment, error) {
	prefix, err := st.render(args[0])
	if err != nil {
		return nil, err
	}

	content, err := st.render(args[1])
	if err != nil {
		return nil, err
	}

	pre := Text(prefix)
	if pre == "" {
		return content, nil
	}

	frags := make([]Fragment, 0, 2*len(content))
	atStart := true

	for _, f := range content {
		for _, seg := range strings.SplitAfter(f.Text, "\n") {
			if seg == "" {
				continue
			}

			if atStart {
				frags = append(frags, Fragment{Text: pre, Labels: f.Labels})
			}

			frags = append(frags, Fragment{Text: seg, Labels: f.Labels})
			atStart = strings.HasSuffix(seg, "\n")
		}
	}

	return frags, nil
}

// evalCoalesce returns the first argument whose rendering is non-empty.
// Later arguments are never evaluated once one succeeds.
func evalCoalesce(st *state, args []*BoundExpr) ([]Fragment, error) {
	for _, arg := range args {
		part, err := st.render(arg)
		if err != nil {
			return nil, err
		}

		if !isEmpty(part) {
			return part, nil
		}
	}

	return nil, nil
}
