package parser

import (
	"fmt"

	"github.com/lpp-lang/lpp/internal/diag"
	"github.com/lpp-lang/lpp/internal/lexer"
)

// ErrorKind classifies a recoverable parse error.
type ErrorKind int

const (
	// ErrUnexpectedToken: a required token was missing.
	ErrUnexpectedToken ErrorKind = iota
	// ErrNoPrefixRule: a token that cannot start an expression appeared in
	// expression position.
	ErrNoPrefixRule
	// ErrInvalidInteger: an integer literal does not fit an int64.
	ErrInvalidInteger
)

func (k ErrorKind) String() string {
	switch k {
	case ErrUnexpectedToken:
		return "UnexpectedToken"
	case ErrNoPrefixRule:
		return "NoPrefixRule"
	case ErrInvalidInteger:
		return "InvalidInteger"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

func (k ErrorKind) diagnosticCode() diag.Code {
	switch k {
	case ErrUnexpectedToken:
		return diag.CodeParseUnexpectedToken
	case ErrNoPrefixRule:
		return diag.CodeParseNoPrefixRule
	case ErrInvalidInteger:
		return diag.CodeParseInvalidInteger
	default:
		return diag.Code("PARSE_UNKNOWN_ERROR")
	}
}

// ParseError captures a recoverable parsing error with location context.
// Expected is only set for ErrUnexpectedToken. Related, when RelatedLabel is
// set, points at a second location such as the `{` of an unclosed block.
type ParseError struct {
	Kind     ErrorKind
	Message  string
	Span     lexer.Span
	Expected lexer.TokenType
	Found    lexer.TokenType
	Literal  string // literal text of the offending token
	Severity diag.Severity

	Related      lexer.Span
	RelatedLabel string
}

func (e ParseError) Error() string {
	if e.Span.Filename != "" {
		return fmt.Sprintf("%s:%d:%d: %s", e.Span.Filename, e.Span.Line, e.Span.Column, e.Message)
	}
	return fmt.Sprintf("%d:%d: %s", e.Span.Line, e.Span.Column, e.Message)
}

// ToDiagnostic converts a parse error into a shared diagnostic structure.
func (e ParseError) ToDiagnostic() diag.Diagnostic {
	span := toDiagSpan(e.Span)

	d := diag.Diagnostic{
		Stage:    diag.StageParser,
		Severity: e.Severity,
		Code:     e.Kind.diagnosticCode(),
		Message:  e.Message,
		Span:     span,
	}

	d = d.WithPrimarySpan(span, e.primaryLabel())
	if e.RelatedLabel != "" {
		d = d.WithSecondarySpan(toDiagSpan(e.Related), e.RelatedLabel)
	}

	switch {
	case e.Found == lexer.ILLEGAL:
		d = d.WithNote(fmt.Sprintf("illegal character %q", e.Literal))
	case e.Found == lexer.EOF:
		d = d.WithNote("input ended here")
	case e.Expected == lexer.IDENT && lexer.IsKeyword(e.Found):
		d = d.WithNote(fmt.Sprintf("`%s` is a reserved word", e.Literal))
	}

	if e.Kind == ErrUnexpectedToken && e.Expected != "" {
		d = d.WithHelp(fmt.Sprintf("expected `%s` here", e.Expected))
	}

	return d
}

func (e ParseError) primaryLabel() string {
	switch e.Kind {
	case ErrUnexpectedToken:
		if e.Expected != "" {
			return fmt.Sprintf("expected `%s`", e.Expected)
		}
		return ""
	case ErrNoPrefixRule:
		return "not an expression"
	case ErrInvalidInteger:
		return "does not fit in 64 bits"
	default:
		return ""
	}
}

func toDiagSpan(s lexer.Span) diag.Span {
	return diag.Span{
		Filename: s.Filename,
		Line:     s.Line,
		Column:   s.Column,
		Start:    s.Start,
		End:      s.End,
	}
}

// emitParseDiagnostic records a recoverable diagnostic without aborting parsing.
func (p *Parser) emitParseDiagnostic(err ParseError) {
	if err.Span.Filename == "" && p.filename != "" {
		err.Span.Filename = p.filename
	}
	if err.RelatedLabel != "" && err.Related.Filename == "" && p.filename != "" {
		err.Related.Filename = p.filename
	}
	if err.Severity == "" {
		err.Severity = diag.SeverityError
	}

	p.errors = append(p.errors, err)
	p.diags.Add(err.ToDiagnostic())

	p.logger.Debug("parse diagnostic",
		"kind", err.Kind.String(),
		"message", err.Message,
		"line", err.Span.Line,
		"column", err.Span.Column,
	)
}

// reportUnexpected records that expected was required where found appeared.
func (p *Parser) reportUnexpected(expected lexer.TokenType, found lexer.Token) {
	p.emitParseDiagnostic(ParseError{
		Kind:     ErrUnexpectedToken,
		Message:  fmt.Sprintf("expected next token to be %s, got %s instead", expected, found.Type),
		Span:     found.Span,
		Expected: expected,
		Found:    found.Type,
		Literal:  found.Literal,
	})
}

// reportUnclosed records a missing closing token, pointing back at the
// token that opened the construct.
func (p *Parser) reportUnclosed(expected lexer.TokenType, found, opening lexer.Token) {
	p.emitParseDiagnostic(ParseError{
		Kind:         ErrUnexpectedToken,
		Message:      fmt.Sprintf("expected next token to be %s, got %s instead", expected, found.Type),
		Span:         found.Span,
		Expected:     expected,
		Found:        found.Type,
		Literal:      found.Literal,
		Related:      opening.Span,
		RelatedLabel: fmt.Sprintf("`%s` opened here", opening.Literal),
	})
}

// reportError records an UnexpectedToken diagnostic with a custom message,
// for places where more than one token kind would have been accepted.
func (p *Parser) reportError(msg string, found lexer.Token) {
	p.emitParseDiagnostic(ParseError{
		Kind:    ErrUnexpectedToken,
		Message: msg,
		Span:    found.Span,
		Found:   found.Type,
		Literal: found.Literal,
	})
}

func (p *Parser) reportNoPrefix(tok lexer.Token) {
	p.emitParseDiagnostic(ParseError{
		Kind:    ErrNoPrefixRule,
		Message: fmt.Sprintf("no prefix parse function for %s found", tok.Type),
		Span:    tok.Span,
		Found:   tok.Type,
		Literal: tok.Literal,
	})
}

func (p *Parser) reportInvalidInteger(tok lexer.Token) {
	p.emitParseDiagnostic(ParseError{
		Kind:    ErrInvalidInteger,
		Message: fmt.Sprintf("could not parse %q as integer", tok.Literal),
		Span:    tok.Span,
		Found:   tok.Type,
		Literal: tok.Literal,
	})
}
