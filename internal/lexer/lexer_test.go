package lexer

import (
	"testing"
)

type expectedToken struct {
	expectedType    TokenType
	expectedLiteral string
}

func assertTokens(t *testing.T, input string, tests []expectedToken) {
	t.Helper()

	l := New(input)

	for i, tt := range tests {
		tok := l.NextToken()

		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q",
				i, tt.expectedType, tok.Type)
		}

		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q",
				i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestNextToken_Illegal(t *testing.T) {
	assertTokens(t, "¡¿@", []expectedToken{
		{ILLEGAL, "¡"},
		{ILLEGAL, "¿"},
		{ILLEGAL, "@"},
		{EOF, ""},
	})
}

func TestNextToken_OneCharacterOperators(t *testing.T) {
	assertTokens(t, "=+-/*<>!", []expectedToken{
		{ASSIGN, "="},
		{PLUS, "+"},
		{MINUS, "-"},
		{SLASH, "/"},
		{ASTERISK, "*"},
		{LT, "<"},
		{GT, ">"},
		{BANG, "!"},
		{EOF, ""},
	})
}

func TestNextToken_TwoCharacterOperators(t *testing.T) {
	input := `
		10 == 10;
		10 != 9;
	`

	assertTokens(t, input, []expectedToken{
		{INT, "10"},
		{EQ, "=="},
		{INT, "10"},
		{SEMICOLON, ";"},
		{INT, "10"},
		{NOT_EQ, "!="},
		{INT, "9"},
		{SEMICOLON, ";"},
		{EOF, ""},
	})
}

func TestNextToken_Delimiters(t *testing.T) {
	assertTokens(t, "(){},;", []expectedToken{
		{LPAREN, "("},
		{RPAREN, ")"},
		{LBRACE, "{"},
		{RBRACE, "}"},
		{COMMA, ","},
		{SEMICOLON, ";"},
		{EOF, ""},
	})
}

func TestNextToken_Assignment(t *testing.T) {
	assertTokens(t, "variable cinco = 5;", []expectedToken{
		{LET, "variable"},
		{IDENT, "cinco"},
		{ASSIGN, "="},
		{INT, "5"},
		{SEMICOLON, ";"},
		{EOF, ""},
	})
}

func TestNextToken_FunctionDeclaration(t *testing.T) {
	input := `
		variable suma = funcion(x, y) {
			x + y;
		};
	`

	assertTokens(t, input, []expectedToken{
		{LET, "variable"},
		{IDENT, "suma"},
		{ASSIGN, "="},
		{FUNCTION, "funcion"},
		{LPAREN, "("},
		{IDENT, "x"},
		{COMMA, ","},
		{IDENT, "y"},
		{RPAREN, ")"},
		{LBRACE, "{"},
		{IDENT, "x"},
		{PLUS, "+"},
		{IDENT, "y"},
		{SEMICOLON, ";"},
		{RBRACE, "}"},
		{SEMICOLON, ";"},
		{EOF, ""},
	})
}

func TestNextToken_FunctionCall(t *testing.T) {
	assertTokens(t, "variable resultado = suma(dos, tres);", []expectedToken{
		{LET, "variable"},
		{IDENT, "resultado"},
		{ASSIGN, "="},
		{IDENT, "suma"},
		{LPAREN, "("},
		{IDENT, "dos"},
		{COMMA, ","},
		{IDENT, "tres"},
		{RPAREN, ")"},
		{SEMICOLON, ";"},
		{EOF, ""},
	})
}

func TestNextToken_ControlStatement(t *testing.T) {
	input := `
		si (5 < 10) {
			retorna verdadero;
		} si_no {
			retorna falso;
		}
	`

	assertTokens(t, input, []expectedToken{
		{IF, "si"},
		{LPAREN, "("},
		{INT, "5"},
		{LT, "<"},
		{INT, "10"},
		{RPAREN, ")"},
		{LBRACE, "{"},
		{RETURN, "retorna"},
		{TRUE, "verdadero"},
		{SEMICOLON, ";"},
		{RBRACE, "}"},
		{ELSE, "si_no"},
		{LBRACE, "{"},
		{RETURN, "retorna"},
		{FALSE, "falso"},
		{SEMICOLON, ";"},
		{RBRACE, "}"},
		{EOF, ""},
	})
}

func TestNextToken_NumbersAndIdentifiers(t *testing.T) {
	assertTokens(t, "para año_2 3.14 42 7.", []expectedToken{
		{FOR, "para"},
		{IDENT, "año_2"},
		{FLOAT, "3.14"},
		{INT, "42"},
		{INT, "7"},
		{ILLEGAL, "."},
		{EOF, ""},
	})
}

func TestNextToken_NULIsIllegal(t *testing.T) {
	assertTokens(t, "a\x00 b; c;", []expectedToken{
		{IDENT, "a"},
		{ILLEGAL, "\x00"},
		{IDENT, "b"},
		{SEMICOLON, ";"},
		{IDENT, "c"},
		{SEMICOLON, ";"},
		{EOF, ""},
	})

	l := New("\x00")
	if tok := l.NextToken(); tok.Type != ILLEGAL || tok.Span.Column != 1 {
		t.Fatalf("expected ILLEGAL at column 1, got %s at %d", tok.Type, tok.Span.Column)
	}
	if tok := l.NextToken(); tok.Type != EOF {
		t.Fatalf("expected EOF after NUL, got %s", tok.Type)
	}
	if len(l.Errors) != 1 || l.Errors[0].Message != `illegal character "\x00"` {
		t.Fatalf("expected one illegal character error, got %+v", l.Errors)
	}
}

func TestNextToken_EOFIsIdempotent(t *testing.T) {
	l := New("+")

	if tok := l.NextToken(); tok.Type != PLUS {
		t.Fatalf("expected %q, got %q", PLUS, tok.Type)
	}

	first := l.NextToken()
	if first.Type != EOF {
		t.Fatalf("expected %q, got %q", EOF, first.Type)
	}

	for i := 0; i < 10; i++ {
		tok := l.NextToken()
		if tok != first {
			t.Fatalf("call %d: expected %+v, got %+v", i, first, tok)
		}
	}
}

func TestNextToken_EmptyInput(t *testing.T) {
	l := New("")

	tok := l.NextToken()
	if tok.Type != EOF {
		t.Fatalf("expected %q, got %q", EOF, tok.Type)
	}
	if tok.Span.Line != 1 || tok.Span.Column != 1 {
		t.Fatalf("expected EOF at 1:1, got %d:%d", tok.Span.Line, tok.Span.Column)
	}
}

func TestTokenSpan_MultiLine(t *testing.T) {
	l := New("variable x\n  = 10;")
	l.SetFilename("main.lpp")

	tests := []struct {
		typ    TokenType
		line   int
		column int
		start  int
		end    int
	}{
		{LET, 1, 1, 0, 8},
		{IDENT, 1, 10, 9, 10},
		{ASSIGN, 2, 3, 13, 14},
		{INT, 2, 5, 15, 17},
		{SEMICOLON, 2, 7, 17, 18},
		{EOF, 2, 8, 18, 18},
	}

	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.typ {
			t.Fatalf("tests[%d] - expected token %q, got %q", i, tt.typ, tok.Type)
		}
		if tok.Span.Filename != "main.lpp" {
			t.Fatalf("tests[%d] - expected filename %q, got %q", i, "main.lpp", tok.Span.Filename)
		}
		if tok.Span.Line != tt.line || tok.Span.Column != tt.column {
			t.Fatalf("tests[%d] - expected %d:%d, got %d:%d", i, tt.line, tt.column, tok.Span.Line, tok.Span.Column)
		}
		if tok.Span.Start != tt.start || tok.Span.End != tt.end {
			t.Fatalf("tests[%d] - expected [%d,%d), got [%d,%d)", i, tt.start, tt.end, tok.Span.Start, tok.Span.End)
		}
	}
}

func TestLookupIdent(t *testing.T) {
	tests := []struct {
		ident string
		want  TokenType
	}{
		{"variable", LET},
		{"funcion", FUNCTION},
		{"si", IF},
		{"si_no", ELSE},
		{"retorna", RETURN},
		{"verdadero", TRUE},
		{"falso", FALSE},
		{"para", FOR},
		{"sino", IDENT},
		{"Variable", IDENT},
	}

	for _, tt := range tests {
		if got := LookupIdent(tt.ident); got != tt.want {
			t.Fatalf("LookupIdent(%q): expected %q, got %q", tt.ident, tt.want, got)
		}
	}

	if !IsKeyword(ELSE) || IsKeyword(IDENT) {
		t.Fatalf("IsKeyword misclassified keyword kinds")
	}
}
