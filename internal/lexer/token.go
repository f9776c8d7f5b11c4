package lexer

// TokenType represents the type of a token
type TokenType string

// Span represents the source location of a token
type Span struct {
	Filename string // optional source filename for diagnostics
	Line     int    // 1-based line number
	Column   int    // 1-based column number
	Start    int    // index in []rune of the source
	End      int    // exclusive end index
}

// Token represents a lexical token
type Token struct {
	Type    TokenType
	Literal string // exact runes matched from source
	Span    Span   // source location information
}

// Token type constants
const (
	// Special tokens
	ILLEGAL TokenType = "ILLEGAL"
	EOF     TokenType = "EOF"

	// Identifiers and literals
	IDENT TokenType = "IDENT" // suma, mi_var, x, ...
	INT   TokenType = "INT"   // 1343456
	FLOAT TokenType = "FLOAT" // 3.14

	// Operators
	ASSIGN   TokenType = "="
	PLUS     TokenType = "+"
	MINUS    TokenType = "-"
	BANG     TokenType = "!"
	ASTERISK TokenType = "*"
	SLASH    TokenType = "/"

	LT     TokenType = "<"
	GT     TokenType = ">"
	EQ     TokenType = "=="
	NOT_EQ TokenType = "!="

	// Delimiters
	COMMA     TokenType = ","
	SEMICOLON TokenType = ";"

	LPAREN TokenType = "("
	RPAREN TokenType = ")"
	LBRACE TokenType = "{"
	RBRACE TokenType = "}"

	// Keywords
	LET      TokenType = "LET"
	FUNCTION TokenType = "FUNCTION"
	IF       TokenType = "IF"
	ELSE     TokenType = "ELSE"
	RETURN   TokenType = "RETURN"
	TRUE     TokenType = "TRUE"
	FALSE    TokenType = "FALSE"
	FOR      TokenType = "FOR"
)

var keywords = map[string]TokenType{
	"variable":  LET,
	"funcion":   FUNCTION,
	"si":        IF,
	"si_no":     ELSE,
	"retorna":   RETURN,
	"verdadero": TRUE,
	"falso":     FALSE,
	"para":      FOR,
}

// LookupIdent checks if the identifier is a keyword
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// IsKeyword reports whether tt is one of the reserved word kinds.
func IsKeyword(tt TokenType) bool {
	for _, kw := range keywords {
		if kw == tt {
			return true
		}
	}
	return false
}
