package lower

import "github.com/vjassplus/vjpc/internal/ast"

// normalizeContainer expands every PostIncDec into the equivalent Assign
// (`lvalue = lvalue + 1` / `- 1`), so the emitter only ever has to know
// how to render a `set` statement. Visibility and the needs-call/needs-set
// prefix flags are already resolved by the parser (global: block nesting
// and Assign/ExprStmt node kind respectively), so this sub-pass has
// nothing left to do for those.
func normalizeContainer(c ast.Container, _ bool) {
	m := c.Members()
	for _, fn := range m.Functions {
		fn.Body = normalizeStatements(fn.Body)
	}
	for _, nested := range m.Nested {
		normalizeContainer(nested, false)
	}
}

func normalizeStatements(stmts []ast.Statement) []ast.Statement {
	out := make([]ast.Statement, 0, len(stmts))
	for _, s := range stmts {
		switch n := s.(type) {
		case *ast.PostIncDec:
			out = append(out, expandPostIncDec(n))
		case *ast.If:
			n.Then = normalizeStatements(n.Then)
			n.Else = normalizeStatements(n.Else)
			out = append(out, n)
		case *ast.Until:
			n.Body = normalizeStatements(n.Body)
			out = append(out, n)
		default:
			out = append(out, s)
		}
	}
	return out
}

func expandPostIncDec(n *ast.PostIncDec) *ast.Assign {
	op := ast.OpSub
	if n.Increment {
		op = ast.OpAdd
	}
	return &ast.Assign{
		Target: n.Target,
		Value: &ast.Binary{
			Op:       op,
			Left:     n.Target,
			Right:    &ast.Literal{Kind: ast.IntLit, Text: "1"},
			Location: n.Location,
		},
		Location: n.Location,
	}
}
