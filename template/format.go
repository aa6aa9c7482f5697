package template

import (
	"strconv"
	"strings"
)

// Format re-serializes a parsed expression to template source.
//
// The output is canonical rather than byte-identical to the original
// source: comments are gone, spacing normalizes, and string literals use
// the template escape set. Parsing the result yields a structurally
// identical tree.
func Format(expr *Expr) string {
	var sb strings.Builder

	formatExpr(&sb, expr)

	return sb.String()
}

func formatExpr(sb *strings.Builder, expr *Expr) {
	if expr == nil {
		return
	}

	switch expr.Type {
	case TypeString:
		quoteString(sb, expr.Text)

	case TypeInteger:
		sb.WriteString(strconv.FormatInt(expr.Int, 10))

	case TypeIdent:
		sb.WriteString(expr.Text)

	case TypeCall:
		sb.WriteString(expr.Text)
		formatArgs(sb, expr.Args)

	case TypeMethod:
		formatExpr(sb, expr.Recv)
		sb.WriteString(".")
		sb.WriteString(expr.Text)
		formatArgs(sb, expr.Args)

	case TypeConcat:
		formatExpr(sb, expr.Args[0])
		sb.WriteString(" ++ ")
		formatExpr(sb, expr.Args[1])

	case TypeGroup:
		sb.WriteString("(")
		formatExpr(sb, expr.Inner)
		sb.WriteString(")")
	}
}

// quoteString writes s as a string literal using only the escapes the
// parser recognizes. Every other byte passes through verbatim, so the
// output reparses to the same string.
func quoteString(sb *strings.Builder, s string) {
	sb.WriteByte('"')

	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		case '\r':
			sb.WriteString(`\r`)
		case 0:
			sb.WriteString(`\0`)
		default:
			sb.WriteByte(c)
		}
	}

	sb.WriteByte('"')
}

func formatArgs(sb *strings.Builder, args []*Expr) {
	sb.WriteString("(")

	for i, arg := range args {
		if i > 0 {
			sb.WriteString(", ")
		}

		formatExpr(sb, arg)
	}

	sb.WriteString(")")
}
