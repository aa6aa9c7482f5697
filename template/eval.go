package template

import (
	"log/slog"
	"strconv"
	"strings"
	"time"
)

// state carries the per-item evaluation inputs: the context item, the
// clock, and the id-prefix resolver. It is created fresh for every
// rendered item; the bound tree and configuration it reads are shared and
// never mutated, so concurrent evaluations need no synchronization.
type state struct {
	kind   ContextKind
	commit Commit
	op     Operation
	clock  func() time.Time
	ids    IdResolver
}

// evaluate computes the value of a bound node.
//
// Built-in nodes evaluate to a deferred Template value; their combinator
// rule runs only when the surrounding node forces the fragments, which
// preserves short-circuit semantics for if and coalesce.
func (st *state) evaluate(b *BoundExpr) (Value, error) {
	switch b.typ {
	case boundLiteral:
		return b.lit, nil

	case boundProperty:
		return st.property(b.prop), nil

	case boundMethod:
		recv, err := st.evaluate(b.recv)
		if err != nil {
			return Value{}, err
		}

		args := make([]Value, len(b.args))

		for i, arg := range b.args {
			v, err := st.evaluate(arg)
			if err != nil {
				return Value{}, err
			}

			args[i] = v
		}

		return b.meth.eval(st, recv, args)

	case boundBuiltin:
		return TemplateValue(func() ([]Fragment, error) {
			return b.bi.eval(st, b.args)
		}), nil

	case boundConcat:
		return TemplateValue(func() ([]Fragment, error) {
			left, err := st.render(b.args[0])
			if err != nil {
				return nil, err
			}

			right, err := st.render(b.args[1])
			if err != nil {
				return nil, err
			}

			return append(left, right...), nil
		}), nil

	default:
		return Value{}, ErrType.WithPosition(b.pos).
			With(slog.Int("bound_type", int(b.typ)))
	}
}

// render evaluates a bound node and flattens the result to fragments.
func (st *state) render(b *BoundExpr) ([]Fragment, error) {
	v, err := st.evaluate(b)
	if err != nil {
		return nil, err
	}

	return v.render()
}

// property invokes the context accessor matching the evaluation kind.
func (st *state) property(prop *property) Value {
	if st.kind == ContextOperation {
		return prop.getOp(st.op)
	}

	return prop.getCommit(st.commit)
}

// firstLine returns s up to the first line terminator, or all of s if it
// contains none.
func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSuffix(s[:i], "\r")
	}

	return s
}

// prefixOf returns the first n characters of s, or all of s if shorter.
func prefixOf(s string, n int) string {
	if n < len(s) {
		return s[:n]
	}

	return s
}

// shortestPrefix returns the shortest prefix of id that is unique among
// the resolver's candidate set, capped at n characters. With no resolver
// configured every id reports full length, so the result degrades to an
// n-character prefix.
func shortestPrefix(id string, n int, ids IdResolver) string {
	length := ids.ShortestPrefixLen(id)

	if length < 1 {
		length = 1
	}

	if n >= 0 && length > n {
		length = n
	}

	return prefixOf(id, length)
}

// timeAgo formats t relative to now as a human-readable duration, e.g.
// "2 hours ago". Future timestamps format as "in 2 hours".
func timeAgo(t, now time.Time) string {
	d := now.Sub(t)

	if d < 0 {
		return "in " + humanDuration(-d)
	}

	return humanDuration(d) + " ago"
}

// humanDuration renders a duration in its largest natural unit.
func humanDuration(d time.Duration) string {
	if d < 0 {
		d = -d
	}

	type unit struct {
		span time.Duration
		name string
	}

	units := []unit{
		{365 * 24 * time.Hour, "year"},
		{30 * 24 * time.Hour, "month"},
		{7 * 24 * time.Hour, "week"},
		{24 * time.Hour, "day"},
		{time.Hour, "hour"},
		{time.Minute, "minute"},
	}

	for _, u := range units {
		if d >= u.span {
			return plural(int64(d/u.span), u.name)
		}
	}

	return plural(int64(d/time.Second), "second")
}

func plural(n int64, unit string) string {
	s := strconv.FormatInt(n, 10) + " " + unit

	if n != 1 {
		s += "s"
	}

	return s
}
