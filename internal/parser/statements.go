package parser

import (
	"github.com/vjassplus/vjpc/internal/ast"
	"github.com/vjassplus/vjpc/internal/lexer"
)

// parseIndentedStatements consumes NEWLINE INDENT ... DEDENT around a
// statement sequence and returns the parsed statements.
func (p *Parser) parseIndentedStatements() []ast.Statement {
	p.skipNewlines()
	p.expect(lexer.INDENT, "to begin block")
	stmts := p.parseStatements()
	p.expect(lexer.DEDENT, "to end block")
	return stmts
}

func (p *Parser) parseStatements() []ast.Statement {
	var stmts []ast.Statement
	p.skipNewlines()
	for !p.check(lexer.DEDENT) && !p.atEnd() {
		if s := p.parseStatement(); s != nil {
			stmts = append(stmts, s)
		}
		p.skipNewlines()
	}
	return stmts
}

// parseStatement dispatches on the leading token. A statement line may
// not continue across a newline (no backslash continuation): each
// production below consumes exactly one logical line.
func (p *Parser) parseStatement() ast.Statement {
	switch p.peek().Kind {
	case lexer.RETURN:
		return p.parseReturn()
	case lexer.IF:
		return p.parseIf()
	case lexer.UNTIL:
		return p.parseUntil()
	case lexer.IDENT:
		if p.isLocalDeclLookahead() {
			return p.parseLocalDecl()
		}
		return p.parseExprLedStatement()
	default:
		tok := p.peek()
		p.errorf(tok.Start, "unexpected token %q at start of statement", tok.Lexeme)
		p.advance()
		return nil
	}
}

// isLocalDeclLookahead reports whether the current position starts
// `TYPE [*]NAME ...` (a local declaration) rather than an expression-led
// statement. It holds exactly when an IDENT is immediately followed by
// another IDENT, or by '*' then IDENT — two identifiers never appear
// back-to-back in any other statement form.
func (p *Parser) isLocalDeclLookahead() bool {
	if p.peekAt(1).Kind == lexer.IDENT {
		return true
	}
	return p.peekAt(1).Kind == lexer.STAR && p.peekAt(2).Kind == lexer.IDENT
}

// parseLocalDecl parses `TYPE [*]NAME [= EXPR]`. Hoisting to the
// enclosing function's prologue happens in the lowering pass, not here:
// the parser only records the declaration at its original position.
func (p *Parser) parseLocalDecl() ast.Statement {
	start := p.peek().Start
	typ := p.advance().Lexeme
	isArray := p.match(lexer.STAR)
	name := p.expect(lexer.IDENT, "local variable name").Lexeme

	decl := &ast.LocalDecl{Name: name, Type: typ, IsArray: isArray}
	if p.match(lexer.ASSIGN) {
		decl.Init = p.parseExpr()
	}
	decl.Location = p.loc(start)
	return decl
}

// parseExprLedStatement parses an assignment, a post-increment/decrement,
// or a bare call, all of which start by parsing a full expression and
// then looking at what follows it.
func (p *Parser) parseExprLedStatement() ast.Statement {
	start := p.peek().Start
	expr := p.parseExpr()

	switch {
	case p.match(lexer.ASSIGN):
		value := p.parseExpr()
		return &ast.Assign{Target: expr, Value: value, Location: p.loc(start)}

	case p.check(lexer.PLUS_PLUS) || p.check(lexer.MINUS_MINUS):
		inc := p.advance().Kind == lexer.PLUS_PLUS
		return &ast.PostIncDec{Target: expr, Increment: inc, Location: p.loc(start)}

	default:
		if call, ok := expr.(*ast.Call); ok {
			call.NeedsCallPrefix = true
			return &ast.ExprStmt{Call: call, Location: p.loc(start)}
		}
		p.errorf(start, "expression is not a valid statement on its own")
		return nil
	}
}

// parseIf parses `if EXPR :` INDENT stmts DEDENT [`else :` INDENT stmts DEDENT].
func (p *Parser) parseIf() ast.Statement {
	start := p.advance().Start // 'if'
	cond := p.parseExpr()
	p.expect(lexer.COLON, "after if condition")
	then := p.parseIndentedStatements()

	node := &ast.If{Cond: cond, Then: then}

	p.skipNewlines()
	if p.check(lexer.ELSE) {
		p.advance()
		p.expect(lexer.COLON, "after else")
		node.Else = p.parseIndentedStatements()
	}
	node.Location = p.loc(start)
	return node
}

// parseUntil parses `until EXPR :` INDENT stmts DEDENT.
func (p *Parser) parseUntil() ast.Statement {
	start := p.advance().Start // 'until'
	cond := p.parseExpr()
	p.expect(lexer.COLON, "after until condition")
	body := p.parseIndentedStatements()
	return &ast.Until{Cond: cond, Body: body, Location: p.loc(start)}
}

// parseReturn parses `return [EXPR]`. An EXPR is present unless the next
// token ends the statement (NEWLINE, DEDENT, or EOF).
func (p *Parser) parseReturn() ast.Statement {
	start := p.advance().Start // 'return'
	node := &ast.Return{}
	if !p.check(lexer.NEWLINE) && !p.check(lexer.DEDENT) && !p.atEnd() {
		node.Value = p.parseExpr()
	}
	node.Location = p.loc(start)
	return node
}
