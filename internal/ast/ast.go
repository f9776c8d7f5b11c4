package ast

import (
	"strings"

	"github.com/lpp-lang/lpp/internal/lexer"
)

// Node represents any AST node. Every node can report the literal of the
// token that introduced it and render itself in canonical form.
type Node interface {
	TokenLiteral() string
	String() string
}

// Statement represents a statement node.
type Statement interface {
	Node
	statementNode()
}

// Expression represents an expression node.
type Expression interface {
	Node
	expressionNode()
}

// Program is the root of every parse. It owns its statements.
type Program struct {
	Statements []Statement
}

// NewProgram constructs an empty program.
func NewProgram() *Program {
	return &Program{Statements: make([]Statement, 0)}
}

// TokenLiteral returns the literal of the first statement, or "" when empty.
func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

func (p *Program) String() string {
	return joinStatements(p.Statements)
}

// LetStatement represents `variable <name> = <value>;`.
type LetStatement struct {
	Token lexer.Token
	Name  *Identifier
	Value Expression
}

// NewLetStatement constructs a let statement node.
func NewLetStatement(tok lexer.Token, name *Identifier, value Expression) *LetStatement {
	return &LetStatement{
		Token: tok,
		Name:  name,
		Value: value,
	}
}

func (s *LetStatement) TokenLiteral() string { return s.Token.Literal }

func (s *LetStatement) String() string {
	var out strings.Builder
	out.WriteString(s.TokenLiteral())
	out.WriteString(" ")
	if s.Name != nil {
		out.WriteString(s.Name.String())
	}
	out.WriteString(" = ")
	out.WriteString(exprString(s.Value))
	out.WriteString(";")
	return out.String()
}

// statementNode marks LetStatement as a statement.
func (*LetStatement) statementNode() {}

// ReturnStatement represents `retorna <value>;`. ReturnValue is nil for a
// bare `retorna;`.
type ReturnStatement struct {
	Token       lexer.Token
	ReturnValue Expression
}

// NewReturnStatement constructs a return statement node.
func NewReturnStatement(tok lexer.Token, value Expression) *ReturnStatement {
	return &ReturnStatement{
		Token:       tok,
		ReturnValue: value,
	}
}

func (s *ReturnStatement) TokenLiteral() string { return s.Token.Literal }

func (s *ReturnStatement) String() string {
	if s.ReturnValue == nil {
		return s.TokenLiteral() + ";"
	}
	return s.TokenLiteral() + " " + s.ReturnValue.String() + ";"
}

// statementNode marks ReturnStatement as a statement.
func (*ReturnStatement) statementNode() {}

// ExpressionStatement wraps a bare expression used as a statement.
// Expression is nil when no prefix rule matched the first token.
type ExpressionStatement struct {
	Token      lexer.Token
	Expression Expression
}

// NewExpressionStatement constructs an expression statement node.
func NewExpressionStatement(tok lexer.Token, expr Expression) *ExpressionStatement {
	return &ExpressionStatement{
		Token:      tok,
		Expression: expr,
	}
}

func (s *ExpressionStatement) TokenLiteral() string { return s.Token.Literal }

func (s *ExpressionStatement) String() string { return exprString(s.Expression) }

// statementNode marks ExpressionStatement as a statement.
func (*ExpressionStatement) statementNode() {}

// Block is a brace-delimited statement sequence. Token is the opening `{`.
type Block struct {
	Token      lexer.Token
	Statements []Statement
}

// NewBlock constructs an empty block.
func NewBlock(tok lexer.Token) *Block {
	return &Block{
		Token:      tok,
		Statements: make([]Statement, 0),
	}
}

func (b *Block) TokenLiteral() string { return b.Token.Literal }

func (b *Block) String() string { return joinStatements(b.Statements) }

// statementNode marks Block as a statement.
func (*Block) statementNode() {}

func joinStatements(stmts []Statement) string {
	var out strings.Builder
	for _, s := range stmts {
		out.WriteString(s.String())
	}
	return out.String()
}

// exprString renders an optional child; absent children render as "".
func exprString(e Expression) string {
	if e == nil {
		return ""
	}
	return e.String()
}

func blockString(b *Block) string {
	if b == nil {
		return ""
	}
	return b.String()
}
