package lexer

import "github.com/vjassplus/vjpc/internal/source"

// TokenType identifies the lexical category of a Token. Token types are
// grouped for clarity, mirroring the source dialect's small fixed grammar.
type TokenType int

const (
	// Special tokens
	ILLEGAL TokenType = iota
	EOF
	INDENT
	DEDENT
	NEWLINE

	// Identifiers and literals
	IDENT
	INT
	REAL
	STRING

	keywordBegin

	// Keywords
	LIBRARY
	SCOPE
	CONTENT
	GLOBAL
	INIT
	IMPORT
	IF
	ELSE
	UNTIL
	RETURN
	TRUE
	FALSE
	NULL
	FUNCTION
	AND
	OR
	NOT
	EXTENDS
	ALIAS
	TYPE

	keywordEnd

	// Punctuation and operators
	LPAREN
	RPAREN
	LBRACKET
	RBRACKET
	LBRACE
	RBRACE
	COMMA
	DOT
	COLON
	SEMICOLON
	STAR
	TILDE
	ASSIGN
	PLUS
	MINUS
	SLASH
	PERCENT
	NOT_BANG
	LESS
	GREATER
	LESS_EQUAL
	GREATER_EQUAL
	EQUAL
	NOT_EQUAL
	PLUS_PLUS
	MINUS_MINUS
	ARROW
	FAT_ARROW
)

var keywords = map[string]TokenType{
	"library":  LIBRARY,
	"scope":    SCOPE,
	"content":  CONTENT,
	"global":   GLOBAL,
	"init":     INIT,
	"import":   IMPORT,
	"if":       IF,
	"else":     ELSE,
	"until":    UNTIL,
	"return":   RETURN,
	"true":     TRUE,
	"false":    FALSE,
	"null":     NULL,
	"function": FUNCTION,
	"and":      AND,
	"or":       OR,
	"not":      NOT,
	"extends":  EXTENDS,
	"alias":    ALIAS,
	"type":     TYPE,
}

// LookupIdent classifies ident as a keyword TokenType, or IDENT if it is
// not a reserved word.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

func (t TokenType) IsKeyword() bool {
	return t > keywordBegin && t < keywordEnd
}

var names = map[TokenType]string{
	ILLEGAL: "ILLEGAL", EOF: "EOF", INDENT: "INDENT", DEDENT: "DEDENT", NEWLINE: "NEWLINE",
	IDENT: "IDENT", INT: "INT", REAL: "REAL", STRING: "STRING",
	LIBRARY: "library", SCOPE: "scope", CONTENT: "content", GLOBAL: "global",
	INIT: "init", IMPORT: "import", IF: "if", ELSE: "else", UNTIL: "until",
	RETURN: "return", TRUE: "true", FALSE: "false", NULL: "null",
	FUNCTION: "function", AND: "and", OR: "or", NOT: "not", EXTENDS: "extends",
	ALIAS: "alias", TYPE: "type",
	LPAREN: "(", RPAREN: ")", LBRACKET: "[", RBRACKET: "]", LBRACE: "{", RBRACE: "}", COMMA: ",",
	DOT: ".", COLON: ":", SEMICOLON: ";", STAR: "*", TILDE: "~", ASSIGN: "=",
	PLUS: "+", MINUS: "-", SLASH: "/", PERCENT: "%", NOT_BANG: "!",
	LESS: "<", GREATER: ">", LESS_EQUAL: "<=", GREATER_EQUAL: ">=",
	EQUAL: "==", NOT_EQUAL: "!=", PLUS_PLUS: "++", MINUS_MINUS: "--",
	ARROW: "->", FAT_ARROW: "=>",
}

func (t TokenType) String() string {
	if name, ok := names[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// Token is a single lexical unit. Tokens carry no semantic type — the
// parser and lowering pass are responsible for interpreting Lexeme.
type Token struct {
	Kind   TokenType
	Lexeme string
	Start  source.Position
	End    source.Position
}

func (t Token) String() string {
	return t.Kind.String() + " " + t.Lexeme
}
