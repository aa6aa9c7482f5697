package template

import (
	"log/slog"
	"unicode/utf8"
)

// Tokenize splits template source into tokens.
//
// Whitespace and '#' line comments are skipped. The returned slice always
// ends with a [KindEOF] token. On an unrecognized character the error is
// [ErrLex] carrying the byte offset of the offending rune.
func Tokenize(source string) ([]Token, error) {
	l := &lexer{input: source, line: 1, col: 1}

	tokens := make([]Token, 0, 16)

	for {
		l.skipIgnorable()

		if l.eof() {
			tokens = append(tokens, Token{Kind: KindEOF, Pos: l.position()})

			return tokens, nil
		}

		tok, err := l.next()
		if err != nil {
			return nil, err
		}

		tokens = append(tokens, tok)
	}
}

// lexer holds scanning state over one source string.
type lexer struct {
	input string
	pos   int
	line  int
	col   int
}

// next scans a single token. The caller has already skipped ignorable input.
func (l *lexer) next() (Token, error) {
	pos := l.position()
	ch := l.peek()

	switch {
	case isIdentStart(ch):
		return Token{Kind: KindIdent, Text: l.scanIdent(), Pos: pos}, nil

	case isDigit(ch):
		return Token{Kind: KindInteger, Text: l.scanInteger(), Pos: pos}, nil

	case ch == '"':
		text, err := l.scanString()
		if err != nil {
			return Token{}, err
		}

		return Token{Kind: KindString, Text: text, Pos: pos}, nil

	case ch == '+':
		l.advance()

		if l.peek() != '+' {
			return Token{}, ErrLex.WithPosition(pos).
				With(slog.String("found", "+"),
					slog.String("expected", `"++"`))
		}

		l.advance()

		return Token{Kind: KindConcat, Text: "++", Pos: pos}, nil

	case ch == '.':
		l.advance()

		return Token{Kind: KindDot, Text: ".", Pos: pos}, nil

	case ch == '(':
		l.advance()

		return Token{Kind: KindLParen, Text: "(", Pos: pos}, nil

	case ch == ')':
		l.advance()

		return Token{Kind: KindRParen, Text: ")", Pos: pos}, nil

	case ch == ',':
		l.advance()

		return Token{Kind: KindComma, Text: ",", Pos: pos}, nil

	default:
		return Token{}, ErrLex.WithPosition(pos).
			With(slog.String("found", string(ch)))
	}
}

// scanIdent consumes an identifier and returns its text.
func (l *lexer) scanIdent() string {
	start := l.pos

	l.advance()

	for !l.eof() && isIdentContinue(l.peek()) {
		l.advance()
	}

	return l.input[start:l.pos]
}

// scanInteger consumes a run of decimal digits.
func (l *lexer) scanInteger() string {
	start := l.pos

	for !l.eof() && isDigit(l.peek()) {
		l.advance()
	}

	return l.input[start:l.pos]
}

// scanString consumes a double-quoted string literal including both quotes.
// Escapes are validated here but decoded by the parser.
func (l *lexer) scanString() (string, error) {
	start := l.pos

	l.advance() // opening quote

	for !l.eof() {
		ch := l.peek()

		if ch == '\\' {
			l.advance()

			if l.eof() {
				break
			}

			l.advance()

			continue
		}

		if ch == '"' {
			l.advance()

			return l.input[start:l.pos], nil
		}

		l.advance()
	}

	return "", ErrLex.WithPosition(l.position()).
		With(slog.String("expected", `closing "`))
}

// skipIgnorable consumes whitespace and '#' line comments.
func (l *lexer) skipIgnorable() {
	for !l.eof() {
		ch := l.peek()

		switch {
		case ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n':
			l.advance()

		case ch == '#':
			for !l.eof() && l.peek() != '\n' {
				l.advance()
			}

		default:
			return
		}
	}
}

func (l *lexer) peek() rune {
	if l.eof() {
		return 0
	}

	r, _ := utf8.DecodeRuneInString(l.input[l.pos:])

	return r
}

func (l *lexer) advance() {
	if l.eof() {
		return
	}

	r, size := utf8.DecodeRuneInString(l.input[l.pos:])

	l.pos += size
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
}

func (l *lexer) eof() bool {
	return l.pos >= len(l.input)
}

func (l *lexer) position() Position {
	return Position{Offset: l.pos, Line: l.line, Column: l.col}
}

// Character classification

func isIdentStart(r rune) bool {
	return r == '_' ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z')
}

func isIdentContinue(r rune) bool {
	return isIdentStart(r) || isDigit(r)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
