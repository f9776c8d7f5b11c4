package ast

import (
	"strconv"
	"strings"

	"github.com/lpp-lang/lpp/internal/lexer"
)

// Identifier represents a name. Value always equals Token.Literal.
type Identifier struct {
	Token lexer.Token
	Value string
}

// NewIdentifier constructs an identifier node from its token.
func NewIdentifier(tok lexer.Token) *Identifier {
	return &Identifier{
		Token: tok,
		Value: tok.Literal,
	}
}

func (i *Identifier) TokenLiteral() string { return i.Token.Literal }
func (i *Identifier) String() string       { return i.Value }

// expressionNode marks Identifier as an expression.
func (*Identifier) expressionNode() {}

// IntegerLiteral represents an integer literal. Value is nil when the
// literal text does not fit an int64.
type IntegerLiteral struct {
	Token lexer.Token
	Value *int64
}

// NewIntegerLiteral constructs an integer literal whose value is filled in
// once the literal text has been converted.
func NewIntegerLiteral(tok lexer.Token) *IntegerLiteral {
	return &IntegerLiteral{Token: tok}
}

func (l *IntegerLiteral) TokenLiteral() string { return l.Token.Literal }

func (l *IntegerLiteral) String() string {
	if l.Value == nil {
		return l.Token.Literal
	}
	return strconv.FormatInt(*l.Value, 10)
}

// expressionNode marks IntegerLiteral as an expression.
func (*IntegerLiteral) expressionNode() {}

// BooleanLiteral renders as its keyword (`verdadero` / `falso`).
type BooleanLiteral struct {
	Token lexer.Token
	Value bool
}

// NewBooleanLiteral constructs a boolean literal from its keyword token.
func NewBooleanLiteral(tok lexer.Token) *BooleanLiteral {
	return &BooleanLiteral{
		Token: tok,
		Value: tok.Type == lexer.TRUE,
	}
}

func (l *BooleanLiteral) TokenLiteral() string { return l.Token.Literal }
func (l *BooleanLiteral) String() string       { return l.Token.Literal }

// expressionNode marks BooleanLiteral as an expression.
func (*BooleanLiteral) expressionNode() {}

// PrefixExpression represents `!x` or `-x`.
type PrefixExpression struct {
	Token    lexer.Token
	Operator string
	Right    Expression
}

// NewPrefixExpression constructs a unary expression whose operand is filled
// in by the caller.
func NewPrefixExpression(tok lexer.Token) *PrefixExpression {
	return &PrefixExpression{
		Token:    tok,
		Operator: tok.Literal,
	}
}

func (e *PrefixExpression) TokenLiteral() string { return e.Token.Literal }

func (e *PrefixExpression) String() string {
	return "(" + e.Operator + exprString(e.Right) + ")"
}

// expressionNode marks PrefixExpression as an expression.
func (*PrefixExpression) expressionNode() {}

// InfixExpression represents a binary operation. Left is always set.
type InfixExpression struct {
	Token    lexer.Token
	Left     Expression
	Operator string
	Right    Expression
}

// NewInfixExpression constructs a binary expression node whose right
// operand is filled in by the caller.
func NewInfixExpression(tok lexer.Token, left Expression) *InfixExpression {
	return &InfixExpression{
		Token:    tok,
		Left:     left,
		Operator: tok.Literal,
	}
}

func (e *InfixExpression) TokenLiteral() string { return e.Token.Literal }

func (e *InfixExpression) String() string {
	return "(" + exprString(e.Left) + " " + e.Operator + " " + exprString(e.Right) + ")"
}

// expressionNode marks InfixExpression as an expression.
func (*InfixExpression) expressionNode() {}

// IfExpression represents `si (cond) { ... } si_no { ... }`.
// Alternative is nil when there is no si_no clause.
type IfExpression struct {
	Token       lexer.Token
	Condition   Expression
	Consequence *Block
	Alternative *Block
}

// NewIfExpression constructs a conditional from its `si` token.
func NewIfExpression(tok lexer.Token) *IfExpression {
	return &IfExpression{Token: tok}
}

func (e *IfExpression) TokenLiteral() string { return e.Token.Literal }

func (e *IfExpression) String() string {
	var out strings.Builder
	out.WriteString("si ")
	out.WriteString(exprString(e.Condition))
	out.WriteString(" ")
	out.WriteString(blockString(e.Consequence))
	out.WriteString(" ")
	if e.Alternative != nil {
		out.WriteString("si_no ")
		out.WriteString(e.Alternative.String())
	}
	return out.String()
}

// expressionNode marks IfExpression as an expression.
func (*IfExpression) expressionNode() {}

// FunctionLiteral represents `funcion(a, b) { ... }`.
type FunctionLiteral struct {
	Token      lexer.Token
	Parameters []*Identifier
	Body       *Block
}

// NewFunctionLiteral constructs a function literal with its own, empty
// parameter list.
func NewFunctionLiteral(tok lexer.Token) *FunctionLiteral {
	return &FunctionLiteral{
		Token:      tok,
		Parameters: make([]*Identifier, 0),
	}
}

func (f *FunctionLiteral) TokenLiteral() string { return f.Token.Literal }

func (f *FunctionLiteral) String() string {
	params := make([]string, 0, len(f.Parameters))
	for _, p := range f.Parameters {
		params = append(params, p.String())
	}

	var out strings.Builder
	out.WriteString(f.TokenLiteral())
	out.WriteString("(")
	out.WriteString(strings.Join(params, ", "))
	out.WriteString(") ")
	out.WriteString(blockString(f.Body))
	return out.String()
}

// expressionNode marks FunctionLiteral as an expression.
func (*FunctionLiteral) expressionNode() {}

// CallExpression represents `callee(args...)`. Token is the opening `(`.
type CallExpression struct {
	Token     lexer.Token
	Function  Expression
	Arguments []Expression
}

// NewCallExpression constructs a call with its own, empty argument list.
func NewCallExpression(tok lexer.Token, fn Expression) *CallExpression {
	return &CallExpression{
		Token:     tok,
		Function:  fn,
		Arguments: make([]Expression, 0),
	}
}

func (c *CallExpression) TokenLiteral() string { return c.Token.Literal }

func (c *CallExpression) String() string {
	args := make([]string, 0, len(c.Arguments))
	for _, a := range c.Arguments {
		args = append(args, exprString(a))
	}
	return exprString(c.Function) + "(" + strings.Join(args, ", ") + ")"
}

// expressionNode marks CallExpression as an expression.
func (*CallExpression) expressionNode() {}
