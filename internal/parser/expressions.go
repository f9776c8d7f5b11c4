package parser

import (
	"strconv"

	"github.com/lpp-lang/lpp/internal/ast"
	"github.com/lpp-lang/lpp/internal/lexer"
)

// parseExpression is the Pratt loop. An infix operator in peekTok is only
// consumed while it binds strictly tighter than precedence, which makes
// operators of equal precedence associate to the left.
func (p *Parser) parseExpression(precedence int) ast.Expression {
	prefix := p.prefixFns[p.curTok.Type]
	if prefix == nil {
		p.reportNoPrefix(p.curTok)
		return nil
	}

	left := prefix()
	if left == nil {
		return nil
	}

	for !p.peekIs(lexer.SEMICOLON) && precedence < p.peekPrecedence() {
		rule := p.infixFns[p.peekTok.Type]

		p.nextToken()

		left = rule.fn(left)
		if left == nil {
			return nil
		}
	}

	return left
}

func (p *Parser) parseIdentifier() ast.Expression {
	return ast.NewIdentifier(p.curTok)
}

func (p *Parser) parseIntegerLiteral() ast.Expression {
	lit := ast.NewIntegerLiteral(p.curTok)

	value, err := strconv.ParseInt(p.curTok.Literal, 10, 64)
	if err != nil {
		p.reportInvalidInteger(p.curTok)
		return lit
	}

	lit.Value = &value
	return lit
}

func (p *Parser) parseBooleanLiteral() ast.Expression {
	return ast.NewBooleanLiteral(p.curTok)
}

// parsePrefixExpression consumes the operator before recursing so that
// precedencePrefix controls how far the operand extends.
func (p *Parser) parsePrefixExpression() ast.Expression {
	expr := ast.NewPrefixExpression(p.curTok)

	p.nextToken()

	expr.Right = p.parseExpression(precedencePrefix)

	return expr
}

// parseGroupedExpression parses "(expr)" without introducing a node of its
// own; grouping is visible through the shape of the returned tree.
func (p *Parser) parseGroupedExpression() ast.Expression {
	p.nextToken()

	expr := p.parseExpression(precedenceLowest)
	if expr == nil {
		return nil
	}

	if !p.expect(lexer.RPAREN) {
		return nil
	}

	return expr
}

func (p *Parser) parseInfixExpression(left ast.Expression) ast.Expression {
	expr := ast.NewInfixExpression(p.curTok, left)
	precedence := p.curPrecedence()

	p.nextToken()

	expr.Right = p.parseExpression(precedence)

	return expr
}

func (p *Parser) parseIfExpression() ast.Expression {
	expr := ast.NewIfExpression(p.curTok)

	if !p.expect(lexer.LPAREN) {
		return nil
	}

	p.nextToken()

	expr.Condition = p.parseExpression(precedenceLowest)

	if !p.expect(lexer.RPAREN) {
		return nil
	}

	if !p.expect(lexer.LBRACE) {
		return nil
	}

	expr.Consequence = p.parseBlock()
	if expr.Consequence == nil {
		return nil
	}

	if !p.peekIs(lexer.ELSE) {
		return expr
	}

	p.nextToken()

	if !p.expect(lexer.LBRACE) {
		return nil
	}

	expr.Alternative = p.parseBlock()
	if expr.Alternative == nil {
		return nil
	}

	return expr
}

func (p *Parser) parseFunctionLiteral() ast.Expression {
	fn := ast.NewFunctionLiteral(p.curTok)

	if !p.expect(lexer.LPAREN) {
		return nil
	}

	params, ok := p.parseFunctionParameters()
	if !ok {
		// Consume the rest of the list and the body so a single bad
		// parameter yields a single diagnostic.
		p.skipToClosing(lexer.LPAREN, lexer.RPAREN)
		if p.curIs(lexer.RPAREN) && p.peekIs(lexer.LBRACE) {
			p.nextToken()
			p.parseBlock()
		}
		return nil
	}
	fn.Parameters = append(fn.Parameters, params...)

	if !p.expect(lexer.LBRACE) {
		return nil
	}

	fn.Body = p.parseBlock()
	if fn.Body == nil {
		return nil
	}

	return fn
}

// parseFunctionParameters parses identifiers from the `(` in curTok through
// the matching `)`.
func (p *Parser) parseFunctionParameters() ([]*ast.Identifier, bool) {
	p.nextToken()

	res, ok := parseDelimited[*ast.Identifier](p, delimitedConfig{
		Closing:             lexer.RPAREN,
		Separator:           lexer.COMMA,
		AllowEmpty:          true,
		MissingElementMsg:   "expected parameter name",
		MissingSeparatorMsg: "expected ',' or ')' after parameter",
	}, func(int) (*ast.Identifier, bool) {
		if !p.curIs(lexer.IDENT) {
			p.reportUnexpected(lexer.IDENT, p.curTok)
			return nil, false
		}
		return ast.NewIdentifier(p.curTok), true
	})
	if !ok {
		return nil, false
	}

	return res.Items, true
}

func (p *Parser) parseCallExpression(function ast.Expression) ast.Expression {
	call := ast.NewCallExpression(p.curTok, function)

	p.nextToken()

	res, ok := parseDelimited[ast.Expression](p, delimitedConfig{
		Closing:             lexer.RPAREN,
		Separator:           lexer.COMMA,
		AllowEmpty:          true,
		MissingElementMsg:   "expected expression",
		MissingSeparatorMsg: "expected ',' or ')' after argument",
	}, func(int) (ast.Expression, bool) {
		arg := p.parseExpression(precedenceLowest)
		if arg == nil {
			return nil, false
		}
		return arg, true
	})
	if !ok {
		p.skipToClosing(lexer.LPAREN, lexer.RPAREN)
		return nil
	}

	call.Arguments = append(call.Arguments, res.Items...)

	return call
}
