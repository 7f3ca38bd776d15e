package lower

import "github.com/vjassplus/vjpc/internal/ast"

// collectAliases walks every container (recursively) and records each
// `alias N extends B` as N -> B. `type N extends B` declarations are left
// out: they are strong types and render as struct declarations, never
// resolved away.
func collectAliases(containers []ast.Container) map[string]string {
	aliases := make(map[string]string)
	var walk func(c ast.Container)
	walk = func(c ast.Container) {
		m := c.Members()
		for _, t := range m.Types {
			if !t.IsStrongType {
				aliases[t.Name] = t.Base
			}
		}
		for _, nested := range m.Nested {
			walk(nested)
		}
	}
	for _, c := range containers {
		walk(c)
	}
	return aliases
}

// resolveAlias follows an alias chain to its final base type. A cycle
// (which a well-formed program never produces) is broken by the visited
// set rather than looping forever.
func resolveAlias(name string, aliases map[string]string) string {
	visited := map[string]bool{}
	for {
		base, ok := aliases[name]
		if !ok || visited[name] {
			return name
		}
		visited[name] = true
		name = base
	}
}

// resolveAliasesInContainer rewrites every type reference in c (global
// variables, parameters, return types, and local declarations) to its
// resolved alias base, then recurses into nested containers.
func resolveAliasesInContainer(c ast.Container, aliases map[string]string) {
	m := c.Members()

	for _, g := range m.Globals {
		g.Type = resolveAlias(g.Type, aliases)
	}
	for _, fn := range m.Functions {
		for i := range fn.Params {
			fn.Params[i].Type = resolveAlias(fn.Params[i].Type, aliases)
		}
		if fn.ReturnType != "" {
			fn.ReturnType = resolveAlias(fn.ReturnType, aliases)
		}
		resolveAliasesInStatements(fn.Body, aliases)
	}

	for _, nested := range m.Nested {
		resolveAliasesInContainer(nested, aliases)
	}
}

func resolveAliasesInStatements(stmts []ast.Statement, aliases map[string]string) {
	for _, s := range stmts {
		switch n := s.(type) {
		case *ast.LocalDecl:
			n.Type = resolveAlias(n.Type, aliases)
		case *ast.If:
			resolveAliasesInStatements(n.Then, aliases)
			resolveAliasesInStatements(n.Else, aliases)
		case *ast.Until:
			resolveAliasesInStatements(n.Body, aliases)
		}
	}
}
