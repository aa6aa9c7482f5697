package template

import (
	"log/slog"
	"strconv"
)

// Kind identifies the lexical class of a [Token].
type Kind int

const (
	// KindEOF marks the end of the token stream.
	KindEOF Kind = iota

	// KindIdent is an identifier: [A-Za-z_][A-Za-z0-9_]*.
	KindIdent

	// KindString is a double-quoted string literal.
	KindString

	// KindInteger is a decimal integer literal.
	KindInteger

	// KindConcat is the two-character operator "++".
	KindConcat

	// KindDot is the method-chain operator ".".
	KindDot

	// KindLParen is "(".
	KindLParen

	// KindRParen is ")".
	KindRParen

	// KindComma is ",".
	KindComma
)

// String returns a human-readable name for the token kind.
func (k Kind) String() string {
	switch k {
	case KindEOF:
		return "end of input"
	case KindIdent:
		return "identifier"
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	case KindConcat:
		return `"++"`
	case KindDot:
		return `"."`
	case KindLParen:
		return `"("`
	case KindRParen:
		return `")"`
	case KindComma:
		return `","`
	default:
		return "unknown"
	}
}

// Position locates a token or syntax node in template source.
type Position struct {
	Offset int // byte offset from the start of the source
	Line   int // 1-based line number
	Column int // 1-based column number
}

// String formats the position as "line:column".
func (p Position) String() string {
	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
}

// LogValue implements slog.LogValuer so positions render compactly in
// structured logs.
func (p Position) LogValue() slog.Value {
	return slog.StringValue(p.String())
}

// Token is one lexical unit of template source.
//
// Text holds the raw source text of the token. For string literals this
// includes the surrounding quotes; the parser decodes escapes.
type Token struct {
	Kind Kind
	Text string
	Pos  Position
}
