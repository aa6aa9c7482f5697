package template

import (
	"log/slog"
	"strconv"
	"strings"
)

// Parse tokenizes and parses one template expression.
//
// The entire source must form a single expression; trailing tokens after a
// complete expression are a parse error.
func Parse(source string) (*Expr, error) {
	tokens, err := Tokenize(source)
	if err != nil {
		return nil, err
	}

	p := &parser{tokens: tokens}

	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if p.peek().Kind != KindEOF {
		return nil, ErrParse.WithPosition(p.peek().Pos).
			With(
				slog.String("expected", KindEOF.String()),
				slog.String("found", p.peek().Kind.String()),
			)
	}

	return expr, nil
}

// parser holds the parser state over a token stream.
type parser struct {
	tokens []Token
	cur    int
}

// parseExpr parses the loosest-binding production: concatenation.
// "a ++ b ++ c" associates left as Concat(Concat(a, b), c).
func (p *parser) parseExpr() (*Expr, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}

	for p.peek().Kind == KindConcat {
		pos := p.peek().Pos

		p.advance()

		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}

		left = &Expr{
			Type: TypeConcat,
			Pos:  pos,
			Args: []*Expr{left, right},
		}
	}

	return left, nil
}

// parseTerm parses a primary followed by any chain of ".name(args)" suffixes.
func (p *parser) parseTerm() (*Expr, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for p.peek().Kind == KindDot {
		p.advance()

		name := p.peek()
		if name.Kind != KindIdent {
			return nil, ErrParse.WithPosition(name.Pos).
				With(
					slog.String("expected", KindIdent.String()),
					slog.String("found", name.Kind.String()),
				)
		}

		p.advance()

		var args []*Expr

		if p.peek().Kind == KindLParen {
			args, err = p.parseArgs()
			if err != nil {
				return nil, err
			}
		}

		expr = &Expr{
			Type: TypeMethod,
			Pos:  name.Pos,
			Text: name.Text,
			Recv: expr,
			Args: args,
		}
	}

	return expr, nil
}

// parsePrimary parses literals, identifiers, function calls, and groups.
func (p *parser) parsePrimary() (*Expr, error) {
	tok := p.peek()

	switch tok.Kind {
	case KindString:
		text, err := decodeString(tok)
		if err != nil {
			return nil, err
		}

		p.advance()

		return &Expr{Type: TypeString, Pos: tok.Pos, Text: text}, nil

	case KindInteger:
		n, err := strconv.ParseInt(tok.Text, 10, 64)
		if err != nil {
			return nil, ErrParse.WithPosition(tok.Pos).Wrap(err).
				With(slog.String("literal", tok.Text))
		}

		p.advance()

		return &Expr{
			Type: TypeInteger,
			Pos:  tok.Pos,
			Text: tok.Text,
			Int:  n,
		}, nil

	case KindIdent:
		p.advance()

		// An identifier immediately followed by "(" is a function call.
		if p.peek().Kind == KindLParen {
			args, err := p.parseArgs()
			if err != nil {
				return nil, err
			}

			return &Expr{
				Type: TypeCall,
				Pos:  tok.Pos,
				Text: tok.Text,
				Args: args,
			}, nil
		}

		return &Expr{Type: TypeIdent, Pos: tok.Pos, Text: tok.Text}, nil

	case KindLParen:
		p.advance()

		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		if p.peek().Kind != KindRParen {
			return nil, ErrParse.WithPosition(p.peek().Pos).
				With(
					slog.String("expected", KindRParen.String()),
					slog.String("found", p.peek().Kind.String()),
				)
		}

		p.advance()

		return &Expr{Type: TypeGroup, Pos: tok.Pos, Inner: inner}, nil

	default:
		return nil, ErrParse.WithPosition(tok.Pos).
			With(
				slog.String("expected", "expression"),
				slog.String("found", tok.Kind.String()),
			)
	}
}

// parseArgs parses a parenthesized, comma-separated argument list.
// The opening parenthesis is the current token.
func (p *parser) parseArgs() ([]*Expr, error) {
	p.advance() // "("

	// A nil slice keeps "x.short" and "x.short()" structurally identical,
	// which the formatter round-trip relies on.
	var args []*Expr

	if p.peek().Kind == KindRParen {
		p.advance()

		return args, nil
	}

	for {
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		args = append(args, arg)

		switch p.peek().Kind {
		case KindComma:
			p.advance()

		case KindRParen:
			p.advance()

			return args, nil

		default:
			return nil, ErrParse.WithPosition(p.peek().Pos).
				With(
					slog.String("expected", `"," or ")"`),
					slog.String("found", p.peek().Kind.String()),
				)
		}
	}
}

// peek returns the current token without consuming it.
// The token stream is EOF-terminated, so peek is always in bounds.
func (p *parser) peek() Token {
	return p.tokens[p.cur]
}

// advance consumes the current token. The trailing EOF is never consumed.
func (p *parser) advance() {
	if p.tokens[p.cur].Kind != KindEOF {
		p.cur++
	}
}

// decodeString decodes the escape sequences of a quoted string literal.
// Recognized escapes: \" \\ \n \t \r \0.
func decodeString(tok Token) (string, error) {
	raw := tok.Text

	// The lexer guarantees surrounding quotes.
	raw = raw[1 : len(raw)-1]

	if !strings.ContainsRune(raw, '\\') {
		return raw, nil
	}

	var sb strings.Builder

	sb.Grow(len(raw))

	for i := 0; i < len(raw); i++ {
		ch := raw[i]

		if ch != '\\' {
			sb.WriteByte(ch)

			continue
		}

		i++

		switch raw[i] {
		case '"':
			sb.WriteByte('"')
		case '\\':
			sb.WriteByte('\\')
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case 'r':
			sb.WriteByte('\r')
		case '0':
			sb.WriteByte(0)
		default:
			return "", ErrParse.WithPosition(tok.Pos).
				With(slog.String("escape", `\`+string(raw[i])))
		}
	}

	return sb.String(), nil
}
