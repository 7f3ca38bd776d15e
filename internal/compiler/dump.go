package compiler

import (
	"fmt"
	"strings"

	"github.com/vjassplus/vjpc/internal/ast"
)

// DumpAST renders prog as indented text for debugging and golden tests.
// It is not the target dialect; it exists purely to make the lowered
// tree's shape (synthetic names, hoisted locals, resolved aliases)
// inspectable without running the full emitter.
func DumpAST(prog *ast.Program) string {
	var sb strings.Builder
	for _, c := range prog.Containers {
		dumpContainer(&sb, c, 0)
	}
	return sb.String()
}

func writeDump(sb *strings.Builder, depth int, format string, args ...any) {
	sb.WriteString(strings.Repeat("  ", depth))
	fmt.Fprintf(sb, format, args...)
	sb.WriteString("\n")
}

func dumpContainer(sb *strings.Builder, c ast.Container, depth int) {
	kind := "scope"
	switch c.(type) {
	case *ast.Library:
		kind = "library"
	case *ast.Content:
		kind = "content"
	}
	writeDump(sb, depth, "%s %s initializer=%q", kind, c.ContainerName(), c.InitializerName())

	m := c.Members()
	for _, t := range m.Types {
		writeDump(sb, depth+1, "type %s extends %s strong=%v", t.Name, t.Base, t.IsStrongType)
	}
	for _, g := range m.Globals {
		writeDump(sb, depth+1, "global %s %s visibility=%v constness=%v array=%v hashtable=%v",
			g.Type, g.Name, g.Visibility, g.Constness, g.IsArray, g.IsHashtable)
	}
	for _, fn := range m.Functions {
		dumpFunction(sb, fn, depth+1)
	}
	for _, nested := range m.Nested {
		dumpContainer(sb, nested, depth+1)
	}
}

func dumpFunction(sb *strings.Builder, fn *ast.Function, depth int) {
	writeDump(sb, depth, "function %s visibility=%v synthetic=%v", fn.Name, fn.Visibility, fn.Synthetic)
	for _, l := range fn.Locals {
		writeDump(sb, depth+1, "local %s %s array=%v", l.Type, l.Name, l.IsArray)
	}
	dumpStatements(sb, fn.Body, depth+1)
}

func dumpStatements(sb *strings.Builder, stmts []ast.Statement, depth int) {
	for _, s := range stmts {
		switch n := s.(type) {
		case *ast.Assign:
			writeDump(sb, depth, "assign")
		case *ast.ExprStmt:
			writeDump(sb, depth, "exprstmt needsCall=%v", callNeedsPrefix(n.Call))
		case *ast.If:
			writeDump(sb, depth, "if")
			dumpStatements(sb, n.Then, depth+1)
			if len(n.Else) > 0 {
				writeDump(sb, depth, "else")
				dumpStatements(sb, n.Else, depth+1)
			}
		case *ast.Until:
			writeDump(sb, depth, "until")
			dumpStatements(sb, n.Body, depth+1)
		case *ast.Return:
			writeDump(sb, depth, "return hasValue=%v", n.Value != nil)
		case *ast.LocalDecl:
			writeDump(sb, depth, "localdecl %s %s", n.Type, n.Name)
		case *ast.PostIncDec:
			writeDump(sb, depth, "postincdec increment=%v", n.Increment)
		}
	}
}

func callNeedsPrefix(e ast.Expression) bool {
	if c, ok := e.(*ast.Call); ok {
		return c.NeedsCallPrefix
	}
	return false
}
