// Package parser builds a Program tree from a token stream. Block
// structure is driven by INDENT/DEDENT tokens synthesized by the lexer;
// within a block, statement structure is driven by NEWLINE. This keeps
// the parser itself an ordinary recursive descent, per the design note
// in spec.md §9 rejecting parser-driven column tracking.
package parser

import (
	"fmt"

	"github.com/vjassplus/vjpc/internal/ast"
	"github.com/vjassplus/vjpc/internal/errors"
	"github.com/vjassplus/vjpc/internal/lexer"
	"github.com/vjassplus/vjpc/internal/source"
)

// Parser consumes one unit's token stream and produces the Container
// nodes found at its top level. Call New per unit; Parser holds no state
// that would need to persist across units.
type Parser struct {
	unit   string
	text   string
	tokens []lexer.Token
	pos    int
	bag    *errors.Bag
}

func New(unit, text string, tokens []lexer.Token, bag *errors.Bag) *Parser {
	return &Parser{unit: unit, text: text, tokens: tokens, bag: bag}
}

func (p *Parser) peek() lexer.Token  { return p.tokens[p.pos] }
func (p *Parser) peekAt(n int) lexer.Token {
	if p.pos+n >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // EOF
	}
	return p.tokens[p.pos+n]
}
func (p *Parser) atEnd() bool { return p.peek().Kind == lexer.EOF }

func (p *Parser) advance() lexer.Token {
	tok := p.peek()
	if !p.atEnd() {
		p.pos++
	}
	return tok
}

func (p *Parser) check(kind lexer.TokenType) bool { return p.peek().Kind == kind }

func (p *Parser) match(kind lexer.TokenType) bool {
	if p.check(kind) {
		p.advance()
		return true
	}
	return false
}

// expect consumes the current token if it has kind, else reports a syntax
// error at the current token's location and returns the current token
// unconsumed so the caller can attempt to continue within the statement.
func (p *Parser) expect(kind lexer.TokenType, context string) lexer.Token {
	if p.check(kind) {
		return p.advance()
	}
	tok := p.peek()
	p.errorf(tok.Start, "expected %s %s, found %q", kind, context, tok.Lexeme)
	return tok
}

func (p *Parser) errorf(pos source.Position, format string, args ...any) {
	p.bag.Add(&errors.CompilerError{
		Kind:    errors.SyntaxError,
		Pos:     pos,
		Unit:    p.unit,
		Message: fmt.Sprintf(format, args...),
		Source:  p.text,
	})
}

func (p *Parser) loc(start source.Position) source.Location {
	return source.NewLocation(p.unit, start, p.peek().Start)
}

// skipNewlines consumes zero or more consecutive NEWLINE tokens. Blank
// lines inside a unit's text turn into their own NEWLINE token, so block
// bodies tolerate blank lines between statements without special-casing
// them at every call site.
func (p *Parser) skipNewlines() {
	for p.check(lexer.NEWLINE) {
		p.advance()
	}
}

// ParseProgram parses every top-level declaration in one unit: import
// directives (collected separately by the Source Resolver, so they are
// simply skipped here) and Library/Scope/Content containers.
func (p *Parser) ParseProgram() []ast.Container {
	var containers []ast.Container
	p.skipNewlines()
	for !p.atEnd() {
		switch p.peek().Kind {
		case lexer.IMPORT:
			p.advance()
			p.expect(lexer.STRING, "after import")
		case lexer.LIBRARY:
			containers = append(containers, p.parseLibrary())
		case lexer.SCOPE:
			containers = append(containers, p.parseScope())
		case lexer.CONTENT:
			containers = append(containers, p.parseContent())
		default:
			tok := p.peek()
			p.errorf(tok.Start, "expected library, scope, content, or import, found %q", tok.Lexeme)
			p.advance()
		}
		p.skipNewlines()
	}
	return containers
}
