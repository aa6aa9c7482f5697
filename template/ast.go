package template

// ExprType indicates the type of an expression node.
type ExprType int

const (
	// TypeString is a string literal.
	TypeString ExprType = iota

	// TypeInteger is a decimal integer literal.
	TypeInteger

	// TypeIdent is a bare identifier: a property of the context item, a
	// zero-argument alias, or an alias parameter.
	TypeIdent

	// TypeCall is a function call: name(args...).
	TypeCall

	// TypeMethod is a method call on a receiver: recv.name(args...).
	// A bare ".name" without parentheses parses as a zero-argument method.
	TypeMethod

	// TypeConcat is the "++" operator joining exactly two operands.
	TypeConcat

	// TypeGroup is a parenthesized expression.
	TypeGroup
)

// String returns a string representation of the expression type.
func (t ExprType) String() string {
	switch t {
	case TypeString:
		return "String"
	case TypeInteger:
		return "Integer"
	case TypeIdent:
		return "Identifier"
	case TypeCall:
		return "FunctionCall"
	case TypeMethod:
		return "MethodCall"
	case TypeConcat:
		return "Concat"
	case TypeGroup:
		return "Group"
	default:
		return "Unknown"
	}
}

// Expr is a node in a parsed template expression tree.
//
// Exactly the fields relevant to Type are set:
//
//	TypeString   Text (decoded literal)
//	TypeInteger  Int, Text (literal text)
//	TypeIdent    Text (name)
//	TypeCall     Text (name), Args
//	TypeMethod   Text (name), Recv, Args
//	TypeConcat   Args (exactly two operands)
//	TypeGroup    Inner
type Expr struct {
	Type  ExprType
	Pos   Position
	Text  string
	Int   int64
	Recv  *Expr
	Inner *Expr
	Args  []*Expr
}
