package parser

import (
	"github.com/lpp-lang/lpp/internal/lexer"
)

const (
	precedenceLowest = iota + 1
	precedenceEquals
	precedenceLessGreater
	precedenceSum
	precedenceProduct
	precedencePrefix
	precedenceCall
)

// nextToken advances the parser's token window.
// Contract: after calling nextToken, curTok == old(peekTok). The source is
// only queried from this hop to keep lookahead bookkeeping centralized.
func (p *Parser) nextToken() {
	p.curTok = p.peekTok
	p.peekTok = p.src.NextToken()
}

func (p *Parser) curIs(tt lexer.TokenType) bool {
	return p.curTok.Type == tt
}

func (p *Parser) peekIs(tt lexer.TokenType) bool {
	return p.peekTok.Type == tt
}

// expect asserts that the peek token matches the provided type.
// The caller is responsible for inspecting curTok before invoking expect,
// because expect never rewinds; on success it promotes peekTok into curTok.
func (p *Parser) expect(tt lexer.TokenType) bool {
	if p.peekIs(tt) {
		p.nextToken()
		return true
	}

	p.reportUnexpected(tt, p.peekTok)
	return false
}

// peekPrecedence returns the binding power of the infix operator in peekTok,
// or precedenceLowest when peekTok cannot continue an expression.
func (p *Parser) peekPrecedence() int {
	if rule, ok := p.infixFns[p.peekTok.Type]; ok {
		return rule.precedence
	}

	return precedenceLowest
}

func (p *Parser) curPrecedence() int {
	if rule, ok := p.infixFns[p.curTok.Type]; ok {
		return rule.precedence
	}

	return precedenceLowest
}
