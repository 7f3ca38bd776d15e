package parser

import (
	"github.com/vjassplus/vjpc/internal/ast"
	"github.com/vjassplus/vjpc/internal/lexer"
)

// parseLibrary parses `library NAME :` INDENT members DEDENT.
func (p *Parser) parseLibrary() *ast.Library {
	start := p.advance().Start // 'library'
	name := p.expect(lexer.IDENT, "library name").Lexeme
	lib := &ast.Library{Name: name}
	p.expect(lexer.COLON, "after library name")
	lib.Body = p.parseBlockMembers()
	lib.Location = p.loc(start)
	return lib
}

// parseScope parses `scope NAME :` INDENT members DEDENT.
func (p *Parser) parseScope() *ast.Scope {
	start := p.advance().Start // 'scope'
	name := p.expect(lexer.IDENT, "scope name").Lexeme
	sc := &ast.Scope{Name: name}
	p.expect(lexer.COLON, "after scope name")
	sc.Body = p.parseBlockMembers()
	sc.Location = p.loc(start)
	return sc
}

// parseContent parses `content :` INDENT members DEDENT. Its Name stays
// empty until the lowering pass's anonymous-naming sub-pass stamps a
// synthetic tag on it.
func (p *Parser) parseContent() *ast.Content {
	start := p.advance().Start // 'content'
	c := &ast.Content{}
	p.expect(lexer.COLON, "after content")
	c.Body = p.parseBlockMembers()
	c.Location = p.loc(start)
	return c
}

// parseBlockMembers consumes the NEWLINE INDENT ... DEDENT wrapper around
// a member sequence and returns the parsed members.
func (p *Parser) parseBlockMembers() ast.Members {
	p.skipNewlines()
	p.expect(lexer.INDENT, "to begin block")
	members := p.parseMembers()
	p.expect(lexer.DEDENT, "to end block")
	return members
}

// parseMembers parses the member productions inside a library/scope/
// content body until a DEDENT or EOF is seen.
func (p *Parser) parseMembers() ast.Members {
	var m ast.Members
	p.skipNewlines()
	for !p.check(lexer.DEDENT) && !p.atEnd() {
		switch p.peek().Kind {
		case lexer.GLOBAL:
			p.parseGlobalBlock(&m)
		case lexer.INIT:
			m.Inits = append(m.Inits, p.parseInit())
		case lexer.TYPE:
			m.Types = append(m.Types, p.parseTypeDecl(true))
		case lexer.ALIAS:
			m.Types = append(m.Types, p.parseTypeDecl(false))
		case lexer.SCOPE:
			m.Nested = append(m.Nested, p.parseScope())
		case lexer.CONTENT:
			m.Nested = append(m.Nested, p.parseContent())
		case lexer.IDENT:
			if p.peekAt(1).Kind == lexer.LPAREN {
				m.Functions = append(m.Functions, p.parseFunctionDecl(ast.Private))
			} else {
				m.Globals = append(m.Globals, p.parseGlobalVarDecl(ast.Private))
			}
		default:
			tok := p.peek()
			p.errorf(tok.Start, "unexpected token %q in declaration block", tok.Lexeme)
			p.advance()
		}
		p.skipNewlines()
	}
	return m
}

// parseGlobalBlock parses `global :` INDENT members DEDENT, merging the
// nested members into the parent's Members with Public visibility. The
// source dialect's `global:` is a visibility modifier, not a container of
// its own in the tree.
func (p *Parser) parseGlobalBlock(into *ast.Members) {
	p.advance() // 'global'
	p.expect(lexer.COLON, "after global")
	p.skipNewlines()
	p.expect(lexer.INDENT, "to begin global block")
	for !p.check(lexer.DEDENT) && !p.atEnd() {
		switch p.peek().Kind {
		case lexer.IDENT:
			if p.peekAt(1).Kind == lexer.LPAREN {
				into.Functions = append(into.Functions, p.parseFunctionDecl(ast.Public))
			} else {
				into.Globals = append(into.Globals, p.parseGlobalVarDecl(ast.Public))
			}
		default:
			tok := p.peek()
			p.errorf(tok.Start, "only declarations are allowed inside global:, found %q", tok.Lexeme)
			p.advance()
		}
		p.skipNewlines()
	}
	p.expect(lexer.DEDENT, "to end global block")
}

// parseInit parses `init :` INDENT statements DEDENT.
func (p *Parser) parseInit() *ast.Init {
	start := p.advance().Start // 'init'
	p.expect(lexer.COLON, "after init")
	body := p.parseIndentedStatements()
	return &ast.Init{Body: body, Location: p.loc(start)}
}

// parseTypeDecl parses `type NAME extends BASE` or `alias NAME extends
// BASE`. strong is true for `type`, false for `alias`.
func (p *Parser) parseTypeDecl(strong bool) *ast.TypeAlias {
	start := p.advance().Start // 'type' or 'alias'
	name := p.expect(lexer.IDENT, "type name").Lexeme
	p.expect(lexer.EXTENDS, "after type name")
	base := p.expect(lexer.IDENT, "base type").Lexeme
	return &ast.TypeAlias{Name: name, Base: base, IsStrongType: strong, Location: p.loc(start)}
}

// parseGlobalVarDecl parses `TYPE [*]NAME [= EXPR | ~ EXPR]`.
func (p *Parser) parseGlobalVarDecl(vis ast.Visibility) *ast.GlobalVar {
	start := p.peek().Start
	typ := p.expect(lexer.IDENT, "type").Lexeme

	isArray := p.match(lexer.STAR)
	name := p.expect(lexer.IDENT, "variable name").Lexeme

	g := &ast.GlobalVar{Name: name, Type: typ, Visibility: vis, IsArray: isArray}

	switch {
	case p.match(lexer.TILDE):
		g.Constness = ast.Constant
		p.parseGlobalInitValue(g)
	case p.match(lexer.ASSIGN):
		g.Constness = ast.Mutable
		p.parseGlobalInitValue(g)
	}
	g.Location = p.loc(start)
	return g
}

// parseGlobalInitValue parses the right-hand side of a global's `~`/`=`
// initializer. `[]` and `{}` are not literal values: they mark the
// declaration as array- or hashtable-initialized respectively, per
// spec.md §4.3.
func (p *Parser) parseGlobalInitValue(g *ast.GlobalVar) {
	switch {
	case p.check(lexer.LBRACKET) && p.peekAt(1).Kind == lexer.RBRACKET:
		p.advance()
		p.advance()
		g.IsArray = true
	case p.check(lexer.LBRACE) && p.peekAt(1).Kind == lexer.RBRACE:
		p.advance()
		p.advance()
		g.IsHashtable = true
	default:
		g.Init = p.parseExpr()
	}
}

// parseFunctionDecl parses `NAME ( PARAMS ) [ -> RETTYPE ] :` INDENT
// statements DEDENT — the simplified function declaration form (no
// leading `function` keyword; that keyword is reserved for function
// *references*, `function Name`, inside expressions).
func (p *Parser) parseFunctionDecl(vis ast.Visibility) *ast.Function {
	start := p.peek().Start
	name := p.advance().Lexeme // identifier already confirmed by caller's lookahead
	p.expect(lexer.LPAREN, "after function name")

	var params []ast.Param
	for !p.check(lexer.RPAREN) && !p.atEnd() {
		ptype := p.expect(lexer.IDENT, "parameter type").Lexeme
		pname := p.expect(lexer.IDENT, "parameter name").Lexeme
		params = append(params, ast.Param{Name: pname, Type: ptype})
		if !p.match(lexer.COMMA) {
			break
		}
	}
	p.expect(lexer.RPAREN, "to close parameter list")

	var ret string
	if p.match(lexer.ARROW) {
		ret = p.expect(lexer.IDENT, "return type").Lexeme
	}

	p.expect(lexer.COLON, "after function signature")
	body := p.parseIndentedStatements()

	return &ast.Function{
		Name:       name,
		Visibility: vis,
		Params:     params,
		ReturnType: ret,
		Body:       body,
		Location:   p.loc(start),
	}
}
