package lower

import (
	"github.com/vjassplus/vjpc/internal/ast"
	"github.com/vjassplus/vjpc/internal/errors"
)

// hoistContainer hoists locals in every function of c, then recurses into
// nested containers.
func hoistContainer(c ast.Container, bag *errors.Bag) {
	m := c.Members()
	for _, fn := range m.Functions {
		hoistFunction(fn, bag)
	}
	for _, nested := range m.Nested {
		hoistContainer(nested, bag)
	}
}

// hoistFunction walks fn's body, moving every LocalDecl found anywhere in
// it (including inside if/until bodies) into fn.Locals, and leaving an
// Assign behind at the original position when the declaration had an
// initializer. The target dialect requires every local to be declared at
// the function head; this realizes that without losing the assignment's
// original position or evaluation order.
func hoistFunction(fn *ast.Function, bag *errors.Bag) {
	seen := make(map[string]bool)
	for _, p := range fn.Params {
		seen[p.Name] = true
	}
	fn.Body = hoistStatements(fn.Body, fn, seen, bag)
}

func hoistStatements(stmts []ast.Statement, fn *ast.Function, seen map[string]bool, bag *errors.Bag) []ast.Statement {
	out := make([]ast.Statement, 0, len(stmts))
	for _, s := range stmts {
		switch n := s.(type) {
		case *ast.LocalDecl:
			if seen[n.Name] {
				bag.Add(&errors.CompilerError{
					Kind:    errors.SemanticError,
					Pos:     n.Location.Start,
					Unit:    n.Location.Unit,
					Message: "local '" + n.Name + "' collides with an earlier declaration in the same function; the target dialect cannot express shadowed locals",
				})
				continue
			}
			seen[n.Name] = true
			fn.Locals = append(fn.Locals, &ast.LocalDecl{
				Name: n.Name, Type: n.Type, IsArray: n.IsArray, Location: n.Location,
			})
			if n.Init != nil {
				out = append(out, &ast.Assign{
					Target:   &ast.Ref{Name: n.Name, Location: n.Location},
					Value:    n.Init,
					Location: n.Location,
				})
			}
		case *ast.If:
			n.Then = hoistStatements(n.Then, fn, seen, bag)
			n.Else = hoistStatements(n.Else, fn, seen, bag)
			out = append(out, n)
		case *ast.Until:
			n.Body = hoistStatements(n.Body, fn, seen, bag)
			out = append(out, n)
		default:
			out = append(out, s)
		}
	}
	return out
}
