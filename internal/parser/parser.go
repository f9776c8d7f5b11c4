package parser

import (
	"log/slog"
	"slices"

	"github.com/lpp-lang/lpp/internal/ast"
	"github.com/lpp-lang/lpp/internal/diag"
	"github.com/lpp-lang/lpp/internal/lexer"
	"github.com/lpp-lang/lpp/internal/logger"
)

// TokenSource is the token stream the parser consumes. Implementations must
// keep returning an EOF token once their input is exhausted.
type TokenSource interface {
	NextToken() lexer.Token
}

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

// infixRule pairs an infix parse function with the binding power of its
// operator so dispatch and precedence come from a single lookup.
type infixRule struct {
	fn         infixParseFn
	precedence int
}

type Option func(*options)

type options struct {
	filename string
	logger   *slog.Logger
}

// WithFilename configures the parser to attribute all emitted spans to the provided filename.
func WithFilename(name string) Option {
	return func(o *options) {
		o.filename = name
	}
}

// WithLogger routes the parser's debug records to l.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// Parser implements a Pratt-style recursive descent parser for LPP.
// Invariants:
//   - Lookahead: curTok always reflects the token currently under examination;
//     peekTok mirrors the next token pulled from the source. The pair forms the
//     parser's sole lookahead window and is only mutated via nextToken.
//   - Diagnostics: errors is an append-only accumulator of recoverable
//     diagnostics, mirrored as shared diagnostics in diags. Callers consult
//     Errors() or Err() after ParseProgram.
//   - Dispatch tables are filled in New and never modified afterwards.
//
// A Parser is not safe for concurrent use.
type Parser struct {
	src     TokenSource
	curTok  lexer.Token
	peekTok lexer.Token

	errors []ParseError
	diags  diag.Collector

	filename string
	logger   *slog.Logger

	prefixFns map[lexer.TokenType]prefixParseFn
	infixFns  map[lexer.TokenType]infixRule
}

// New returns a parser reading tokens from src.
func New(src TokenSource, opts ...Option) *Parser {
	cfg := options{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = logger.Discard()
	}

	p := &Parser{
		src:       src,
		filename:  cfg.filename,
		logger:    cfg.logger.With("component", "parser"),
		prefixFns: make(map[lexer.TokenType]prefixParseFn),
		infixFns:  make(map[lexer.TokenType]infixRule),
	}

	p.registerPrefix(lexer.IDENT, p.parseIdentifier)
	p.registerPrefix(lexer.INT, p.parseIntegerLiteral)
	p.registerPrefix(lexer.TRUE, p.parseBooleanLiteral)
	p.registerPrefix(lexer.FALSE, p.parseBooleanLiteral)
	p.registerPrefix(lexer.BANG, p.parsePrefixExpression)
	p.registerPrefix(lexer.MINUS, p.parsePrefixExpression)
	p.registerPrefix(lexer.LPAREN, p.parseGroupedExpression)
	p.registerPrefix(lexer.IF, p.parseIfExpression)
	p.registerPrefix(lexer.FUNCTION, p.parseFunctionLiteral)

	p.registerInfix(lexer.EQ, precedenceEquals, p.parseInfixExpression)
	p.registerInfix(lexer.NOT_EQ, precedenceEquals, p.parseInfixExpression)
	p.registerInfix(lexer.LT, precedenceLessGreater, p.parseInfixExpression)
	p.registerInfix(lexer.GT, precedenceLessGreater, p.parseInfixExpression)
	p.registerInfix(lexer.PLUS, precedenceSum, p.parseInfixExpression)
	p.registerInfix(lexer.MINUS, precedenceSum, p.parseInfixExpression)
	p.registerInfix(lexer.ASTERISK, precedenceProduct, p.parseInfixExpression)
	p.registerInfix(lexer.SLASH, precedenceProduct, p.parseInfixExpression)
	p.registerInfix(lexer.LPAREN, precedenceCall, p.parseCallExpression)

	// Seed curTok/peekTok.
	p.nextToken()
	p.nextToken()

	return p
}

// NewFromString returns a parser over a fresh lexer for input.
func NewFromString(input string, opts ...Option) *Parser {
	cfg := options{}
	for _, opt := range opts {
		opt(&cfg)
	}

	lx := lexer.New(input)
	if cfg.filename != "" {
		lx.SetFilename(cfg.filename)
	}

	return New(lx, opts...)
}

// Errors returns a copy of the recoverable parse errors in the order they
// were encountered.
func (p *Parser) Errors() []ParseError {
	return slices.Clone(p.errors)
}

// Diagnostics returns the parse errors converted to shared diagnostics.
func (p *Parser) Diagnostics() []diag.Diagnostic {
	return p.diags.Items()
}

// HasErrors reports whether any error-severity diagnostic was recorded.
func (p *Parser) HasErrors() bool {
	return p.diags.HasErrors()
}

// Err joins the recorded diagnostics into one error, or returns nil for a
// clean parse.
func (p *Parser) Err() error {
	return p.diags.Err()
}

// ParseProgram parses the whole token stream. It always returns a program;
// malformed statements are reported through Errors and skipped.
func (p *Parser) ParseProgram() *ast.Program {
	p.logger.Debug("parse started", "filename", p.filename)

	program := ast.NewProgram()

	for !p.curIs(lexer.EOF) {
		if stmt := p.parseStatement(); stmt != nil {
			program.Statements = append(program.Statements, stmt)
		}
		p.nextToken()
	}

	p.logger.Debug("parse finished",
		"filename", p.filename,
		"statements", len(program.Statements),
		"diagnostics", p.diags.Len(),
	)

	return program
}

func (p *Parser) registerPrefix(tokenType lexer.TokenType, fn prefixParseFn) {
	p.prefixFns[tokenType] = fn
}

func (p *Parser) registerInfix(tokenType lexer.TokenType, precedence int, fn infixParseFn) {
	p.infixFns[tokenType] = infixRule{fn: fn, precedence: precedence}
}
