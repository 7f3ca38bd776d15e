package lexer

import "testing"

func tokenKinds(toks []Token) []TokenType {
	kinds := make([]TokenType, len(toks))
	for i, t := range toks {
		kinds[i] = t.Kind
	}
	return kinds
}

func assertKinds(t *testing.T, toks []Token, want []TokenType) {
	t.Helper()
	got := tokenKinds(toks)
	if len(got) != len(want) {
		t.Fatalf("token count mismatch: got %d, want %d\ngot:  %v\nwant: %v", len(got), len(want), got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestTokenizeSimpleAssignment(t *testing.T) {
	input := "x = 5\n"
	l := New("test", input)
	toks := l.Tokenize()

	assertKinds(t, toks, []TokenType{IDENT, ASSIGN, INT, NEWLINE, EOF})
	if len(l.Errors()) != 0 {
		t.Fatalf("unexpected lexer errors: %v", l.Errors())
	}
}

func TestTokenizeKeywords(t *testing.T) {
	input := "library scope content global init import if else until return true false null function and or not extends alias type"
	l := New("test", input)
	toks := l.Tokenize()

	want := []TokenType{
		LIBRARY, SCOPE, CONTENT, GLOBAL, INIT, IMPORT, IF, ELSE, UNTIL, RETURN,
		TRUE, FALSE, NULL, FUNCTION, AND, OR, NOT, EXTENDS, ALIAS, TYPE, EOF,
	}
	assertKinds(t, toks, want)
}

func TestIndentationRoundTrip(t *testing.T) {
	input := "scope S :\n    function f ( ) :\n        return\n"
	l := New("test", input)
	toks := l.Tokenize()

	assertKinds(t, toks, []TokenType{
		SCOPE, IDENT, COLON, NEWLINE,
		INDENT, FUNCTION, IDENT, LPAREN, RPAREN, COLON, NEWLINE,
		INDENT, RETURN, NEWLINE,
		DEDENT, DEDENT, EOF,
	})
}

func TestInconsistentDedentReportsError(t *testing.T) {
	input := "scope S :\n    function f ( ) :\n        return\n      return\n"
	l := New("test", input)
	l.Tokenize()

	if len(l.Errors()) == 0 {
		t.Fatal("expected an inconsistent-dedent error, got none")
	}
}

func TestParenDepthSuppressesNewline(t *testing.T) {
	input := "f(1,\n2)\n"
	l := New("test", input)
	toks := l.Tokenize()

	assertKinds(t, toks, []TokenType{
		IDENT, LPAREN, INT, COMMA, INT, RPAREN, NEWLINE, EOF,
	})
}

func TestHexAndRealNumbers(t *testing.T) {
	input := "0x1F 3.14 42\n"
	l := New("test", input)
	toks := l.Tokenize()

	assertKinds(t, toks, []TokenType{INT, REAL, INT, NEWLINE, EOF})
	if toks[0].Lexeme != "0x1F" {
		t.Fatalf("hex lexeme: got %q", toks[0].Lexeme)
	}
	if toks[1].Lexeme != "3.14" {
		t.Fatalf("real lexeme: got %q", toks[1].Lexeme)
	}
}

func TestStringEscapes(t *testing.T) {
	input := `"hello\nworld"` + "\n"
	l := New("test", input)
	toks := l.Tokenize()

	if toks[0].Kind != STRING {
		t.Fatalf("expected STRING, got %s", toks[0].Kind)
	}
	if toks[0].Lexeme != "hello\nworld" {
		t.Fatalf("unexpected unescaped lexeme: %q", toks[0].Lexeme)
	}
}

func TestUnterminatedStringReportsError(t *testing.T) {
	l := New("test", `"oops`+"\n")
	l.Tokenize()
	if len(l.Errors()) == 0 {
		t.Fatal("expected an unterminated-string error")
	}
}

func TestRuneColumnsCountUnicodeAsOneColumn(t *testing.T) {
	input := "über x\n"
	l := New("test", input)
	toks := l.Tokenize()

	if toks[0].Lexeme != "über" {
		t.Fatalf("identifier: got %q", toks[0].Lexeme)
	}
	if toks[1].Start.Column != 6 {
		t.Fatalf("expected second token to start at column 6 (rune-counted), got %d", toks[1].Start.Column)
	}
}
