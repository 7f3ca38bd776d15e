package parser

import (
	"github.com/vjassplus/vjpc/internal/ast"
	"github.com/vjassplus/vjpc/internal/lexer"
)

// parseExpr is the grammar's entry point: precedence climbing from `or`
// (lowest) down to postfix (highest), per spec.md §4.3.
func (p *Parser) parseExpr() ast.Expression { return p.parseOr() }

func (p *Parser) parseOr() ast.Expression {
	left := p.parseAnd()
	for p.check(lexer.OR) {
		start := p.peek().Start
		p.advance()
		right := p.parseAnd()
		left = &ast.Binary{Op: ast.OpOr, Left: left, Right: right, Location: p.loc(start)}
	}
	return left
}

func (p *Parser) parseAnd() ast.Expression {
	left := p.parseEquality()
	for p.check(lexer.AND) {
		start := p.peek().Start
		p.advance()
		right := p.parseEquality()
		left = &ast.Binary{Op: ast.OpAnd, Left: left, Right: right, Location: p.loc(start)}
	}
	return left
}

func (p *Parser) parseEquality() ast.Expression {
	left := p.parseRelational()
	for p.check(lexer.EQUAL) || p.check(lexer.NOT_EQUAL) {
		start := p.peek().Start
		op := ast.OpEq
		if p.advance().Kind == lexer.NOT_EQUAL {
			op = ast.OpNeq
		}
		right := p.parseRelational()
		left = &ast.Binary{Op: op, Left: left, Right: right, Location: p.loc(start)}
	}
	return left
}

var relOps = map[lexer.TokenType]ast.BinaryOp{
	lexer.LESS: ast.OpLt, lexer.GREATER: ast.OpGt,
	lexer.LESS_EQUAL: ast.OpLe, lexer.GREATER_EQUAL: ast.OpGe,
}

func (p *Parser) parseRelational() ast.Expression {
	left := p.parseAdditive()
	for {
		op, ok := relOps[p.peek().Kind]
		if !ok {
			break
		}
		start := p.peek().Start
		p.advance()
		right := p.parseAdditive()
		left = &ast.Binary{Op: op, Left: left, Right: right, Location: p.loc(start)}
	}
	return left
}

func (p *Parser) parseAdditive() ast.Expression {
	left := p.parseMultiplicative()
	for p.check(lexer.PLUS) || p.check(lexer.MINUS) {
		start := p.peek().Start
		op := ast.OpAdd
		if p.advance().Kind == lexer.MINUS {
			op = ast.OpSub
		}
		right := p.parseMultiplicative()
		left = &ast.Binary{Op: op, Left: left, Right: right, Location: p.loc(start)}
	}
	return left
}

var mulOps = map[lexer.TokenType]ast.BinaryOp{
	lexer.STAR: ast.OpMul, lexer.SLASH: ast.OpDiv, lexer.PERCENT: ast.OpMod,
}

func (p *Parser) parseMultiplicative() ast.Expression {
	left := p.parseUnary()
	for {
		op, ok := mulOps[p.peek().Kind]
		if !ok {
			break
		}
		start := p.peek().Start
		p.advance()
		right := p.parseUnary()
		left = &ast.Binary{Op: op, Left: left, Right: right, Location: p.loc(start)}
	}
	return left
}

func (p *Parser) parseUnary() ast.Expression {
	if p.check(lexer.MINUS) || p.check(lexer.NOT) {
		start := p.peek().Start
		op := ast.OpNeg
		if p.advance().Kind == lexer.NOT {
			op = ast.OpNot
		}
		operand := p.parseUnary()
		return &ast.Unary{Op: op, Operand: operand, Location: p.loc(start)}
	}
	return p.parsePostfix()
}

// parsePostfix parses a primary expression followed by any run of `.`
// member access, `[...]` index, or `(...)` call suffixes.
func (p *Parser) parsePostfix() ast.Expression {
	start := p.peek().Start
	expr := p.parsePrimary()

	for {
		switch p.peek().Kind {
		case lexer.DOT:
			p.advance()
			field := p.expect(lexer.IDENT, "field name after '.'").Lexeme
			expr = &ast.FieldAccess{Base: expr, Field: field, Location: p.loc(start)}
		case lexer.LBRACKET:
			p.advance()
			idx := p.parseExpr()
			p.expect(lexer.RBRACKET, "to close index expression")
			expr = &ast.Index{Base: expr, Index: idx, Location: p.loc(start)}
		case lexer.LPAREN:
			p.advance()
			var args []ast.Expression
			for !p.check(lexer.RPAREN) && !p.atEnd() {
				args = append(args, p.parseExpr())
				if !p.match(lexer.COMMA) {
					break
				}
			}
			p.expect(lexer.RPAREN, "to close call arguments")
			expr = &ast.Call{Callee: expr, Args: args, Location: p.loc(start)}
		default:
			return expr
		}
	}
}

func (p *Parser) parsePrimary() ast.Expression {
	tok := p.peek()
	start := tok.Start

	switch tok.Kind {
	case lexer.INT:
		p.advance()
		return &ast.Literal{Kind: ast.IntLit, Text: tok.Lexeme, Location: p.loc(start)}
	case lexer.REAL:
		p.advance()
		return &ast.Literal{Kind: ast.RealLit, Text: tok.Lexeme, Location: p.loc(start)}
	case lexer.STRING:
		p.advance()
		return &ast.Literal{Kind: ast.StringLit, Text: tok.Lexeme, Location: p.loc(start)}
	case lexer.TRUE, lexer.FALSE:
		p.advance()
		return &ast.Literal{Kind: ast.BoolLit, Bool: tok.Kind == lexer.TRUE, Location: p.loc(start)}
	case lexer.NULL:
		p.advance()
		return &ast.Literal{Kind: ast.NullLit, Location: p.loc(start)}
	case lexer.FUNCTION:
		p.advance()
		name := p.expect(lexer.IDENT, "function name after 'function'").Lexeme
		return &ast.FunctionRef{Name: name, Location: p.loc(start)}
	case lexer.IDENT:
		p.advance()
		return &ast.Ref{Name: tok.Lexeme, Location: p.loc(start)}
	case lexer.LPAREN:
		p.advance()
		expr := p.parseExpr()
		p.expect(lexer.RPAREN, "to close grouped expression")
		return expr
	default:
		p.errorf(start, "expected expression, found %q", tok.Lexeme)
		p.advance()
		return &ast.Literal{Kind: ast.NullLit, Location: p.loc(start)}
	}
}
