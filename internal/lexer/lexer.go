package lexer

import (
	"strconv"
	"unicode"

	"github.com/lpp-lang/lpp/internal/diag"
)

type LexerErrorKind int

const (
	ErrIllegalRune LexerErrorKind = iota
)

type LexerError struct {
	Kind    LexerErrorKind
	Message string
	Span    Span
}

func (k LexerErrorKind) diagnosticCode() diag.Code {
	switch k {
	case ErrIllegalRune:
		return diag.CodeLexerIllegalRune
	default:
		return diag.Code("LEXER_UNKNOWN_ERROR")
	}
}

// ToDiagnostic converts a lexer error into a shared diagnostic structure.
func (e LexerError) ToDiagnostic() diag.Diagnostic {
	span := diag.Span{
		Filename: e.Span.Filename,
		Line:     e.Span.Line,
		Column:   e.Span.Column,
		Start:    e.Span.Start,
		End:      e.Span.End,
	}

	d := diag.Diagnostic{
		Stage:    diag.StageLexer,
		Severity: diag.SeverityError,
		Code:     e.Kind.diagnosticCode(),
		Message:  e.Message,
		Span:     span,
	}

	return d.WithPrimarySpan(span, "not valid in LPP source")
}

// Lexer represents the lexer state
type Lexer struct {
	input    []rune
	pos      int  // index of the current rune
	ch       rune // current rune (0 at EOF; use atEOF, input may contain NUL)
	line     int  // current line number (1-based)
	column   int  // current column number (1-based)
	filename string

	Errors []LexerError
}

func (l *Lexer) addError(kind LexerErrorKind, msg string, span Span) {
	l.Errors = append(l.Errors, LexerError{
		Kind:    kind,
		Message: msg,
		Span:    span,
	})
}

// New creates a new lexer for the given input
func New(input string) *Lexer {
	l := &Lexer{
		input:  []rune(input),
		pos:    -1, // start before first rune
		line:   1,
		column: 0, // will be 1 after first read()
	}
	l.read()
	return l
}

// SetFilename attributes every span produced from now on to name.
func (l *Lexer) SetFilename(name string) {
	l.filename = name
}

// read advances the lexer to the next character.
// line/column always reflect the position of the character at pos.
func (l *Lexer) read() {
	l.pos++
	prevPos := l.pos - 1
	inputLen := len(l.input)

	if l.pos >= inputLen {
		// Clamp so repeated reads at EOF keep pos, line and column stable.
		if l.pos > inputLen {
			l.pos = inputLen
			l.ch = 0
			return
		}
		if prevPos >= 0 {
			if l.input[prevPos] == '\n' {
				l.line++
				l.column = 1
			} else {
				l.column++
			}
		} else {
			l.column = 1
		}
		l.ch = 0
		return
	}

	l.ch = l.input[l.pos]

	if prevPos >= 0 && l.input[prevPos] == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
}

func (l *Lexer) atEOF() bool {
	return l.pos >= len(l.input)
}

// peek returns the next character without advancing
func (l *Lexer) peek() rune {
	if l.pos+1 >= len(l.input) {
		return 0
	}
	return l.input[l.pos+1]
}

func (l *Lexer) makeToken(tokType TokenType, startLine, startColumn, startPos int, literal string) Token {
	return Token{
		Type:    tokType,
		Literal: literal,
		Span: Span{
			Filename: l.filename,
			Line:     startLine,
			Column:   startColumn,
			Start:    startPos,
			End:      l.pos,
		},
	}
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.read()
	}
}

// readIdentifier reads an identifier or keyword
func (l *Lexer) readIdentifier() string {
	start := l.pos
	for isLetter(l.ch) || isDigit(l.ch) {
		l.read()
	}
	return string(l.input[start:l.pos])
}

// readNumber reads an integer literal, or a float when a fractional part follows.
func (l *Lexer) readNumber() (string, TokenType) {
	start := l.pos
	for isDigit(l.ch) {
		l.read()
	}

	if l.ch == '.' && isDigit(l.peek()) {
		l.read() // consume '.'
		for isDigit(l.ch) {
			l.read()
		}
		return string(l.input[start:l.pos]), FLOAT
	}

	return string(l.input[start:l.pos]), INT
}

// single maps one-rune tokens that never combine with a following rune.
var single = map[rune]TokenType{
	'+': PLUS,
	'-': MINUS,
	'*': ASTERISK,
	'/': SLASH,
	'<': LT,
	'>': GT,
	',': COMMA,
	';': SEMICOLON,
	'(': LPAREN,
	')': RPAREN,
	'{': LBRACE,
	'}': RBRACE,
}

// NextToken returns the next token from the input. Once the input is
// exhausted every call returns an EOF token.
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()

	startLine, startColumn, startPos := l.line, l.column, l.pos

	// End of input is decided by position; a NUL rune in the source is
	// lexed as ILLEGAL like any other unknown character.
	if l.atEOF() {
		if startColumn == 0 {
			startColumn = 1
		}
		return l.makeToken(EOF, startLine, startColumn, startPos, "")
	}

	switch l.ch {
	case '=':
		if l.peek() == '=' {
			l.read()
			l.read()
			return l.makeToken(EQ, startLine, startColumn, startPos, "==")
		}
		l.read()
		return l.makeToken(ASSIGN, startLine, startColumn, startPos, "=")

	case '!':
		if l.peek() == '=' {
			l.read()
			l.read()
			return l.makeToken(NOT_EQ, startLine, startColumn, startPos, "!=")
		}
		l.read()
		return l.makeToken(BANG, startLine, startColumn, startPos, "!")
	}

	if tokType, ok := single[l.ch]; ok {
		raw := string(l.ch)
		l.read()
		return l.makeToken(tokType, startLine, startColumn, startPos, raw)
	}

	switch {
	case isLetter(l.ch):
		literal := l.readIdentifier()
		return l.makeToken(LookupIdent(literal), startLine, startColumn, startPos, literal)
	case isDigit(l.ch):
		literal, tokType := l.readNumber()
		return l.makeToken(tokType, startLine, startColumn, startPos, literal)
	default:
		raw := string(l.ch)
		l.read()
		tok := l.makeToken(ILLEGAL, startLine, startColumn, startPos, raw)
		l.addError(
			ErrIllegalRune,
			"illegal character "+strconv.Quote(raw),
			tok.Span,
		)
		return tok
	}
}

func isLetter(ch rune) bool {
	return unicode.IsLetter(ch) || ch == '_'
}

func isDigit(ch rune) bool {
	// Numeric literals are restricted to ASCII digits.
	return ch >= '0' && ch <= '9'
}
