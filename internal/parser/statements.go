package parser

import (
	"github.com/lpp-lang/lpp/internal/ast"
	"github.com/lpp-lang/lpp/internal/lexer"
)

// parseStatement dispatches on curTok. A nil result means the statement was
// abandoned after recording a diagnostic.
func (p *Parser) parseStatement() ast.Statement {
	switch p.curTok.Type {
	case lexer.LET:
		return p.parseLetStatement()
	case lexer.RETURN:
		return p.parseReturnStatement()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseLetStatement() ast.Statement {
	stmt := ast.NewLetStatement(p.curTok, nil, nil)

	if !p.expect(lexer.IDENT) {
		return nil
	}

	stmt.Name = ast.NewIdentifier(p.curTok)

	if !p.expect(lexer.ASSIGN) {
		return nil
	}

	p.nextToken()

	stmt.Value = p.parseExpression(precedenceLowest)

	if p.peekIs(lexer.SEMICOLON) {
		p.nextToken()
	}

	return stmt
}

func (p *Parser) parseReturnStatement() ast.Statement {
	stmt := ast.NewReturnStatement(p.curTok, nil)

	switch p.peekTok.Type {
	case lexer.SEMICOLON:
		p.nextToken()
		return stmt
	case lexer.RBRACE, lexer.EOF:
		// Bare return closing a block or the program; leave the terminator
		// for the enclosing loop.
		return stmt
	}

	p.nextToken()

	stmt.ReturnValue = p.parseExpression(precedenceLowest)

	if p.peekIs(lexer.SEMICOLON) {
		p.nextToken()
	}

	return stmt
}

// parseExpressionStatement always yields a statement, even when the
// expression itself could not be parsed.
func (p *Parser) parseExpressionStatement() ast.Statement {
	stmt := ast.NewExpressionStatement(p.curTok, p.parseExpression(precedenceLowest))

	if p.peekIs(lexer.SEMICOLON) {
		p.nextToken()
	}

	return stmt
}

// parseBlock parses statements after the `{` in curTok up to the matching
// `}`, leaving curTok on it. Reaching EOF first reports the missing brace
// and returns nil.
func (p *Parser) parseBlock() *ast.Block {
	block := ast.NewBlock(p.curTok)

	p.nextToken()

	for !p.curIs(lexer.RBRACE) && !p.curIs(lexer.EOF) {
		if stmt := p.parseStatement(); stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
		p.nextToken()
	}

	if !p.curIs(lexer.RBRACE) {
		p.reportUnclosed(lexer.RBRACE, p.curTok, block.Token)
		return nil
	}

	return block
}
