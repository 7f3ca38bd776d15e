// Package emit renders a lowered ast.Program as target-dialect text. By
// the time a tree reaches here, the lowering pass has already assigned
// every anonymous name, resolved every alias, hoisted every local, and
// expanded every PostIncDec — the printer's only job is textual layout.
package emit

import (
	"fmt"
	"runtime/debug"
	"strconv"
	"strings"

	"github.com/vjassplus/vjpc/internal/ast"
	"github.com/vjassplus/vjpc/internal/errors"
)

const indentWidth = 4

// Printer renders a Program to the target dialect. Style is carried for
// symmetry with the teacher's formatter but only StyleDetailed exists.
type Printer struct {
	Style Style

	bag    *errors.Bag
	sb     strings.Builder
	indent int
}

// New creates a Printer for the given style. bag receives an InternalError
// diagnostic (with a captured stack trace) if the tree contains a node
// kind the printer doesn't recognize, instead of the printer panicking.
func New(style Style, bag *errors.Bag) *Printer {
	return &Printer{Style: style, bag: bag}
}

// reportInternal records an InternalError diagnostic for an unreachable
// branch (a node kind that should have been rejected by an earlier phase)
// and captures the current stack so --debug can surface it. Callers still
// return immediately afterward; rendering does not continue past the
// point of an unrecognized node.
func (p *Printer) reportInternal(message string) {
	p.bag.Add(&errors.CompilerError{
		Kind:    errors.InternalError,
		Message: "emit: " + message,
		Stack:   string(debug.Stack()),
	})
}

// Print renders every container in prog, in order, separated by a blank
// line, and returns the complete target-dialect text.
func (p *Printer) Print(prog *ast.Program) string {
	for i, c := range prog.Containers {
		if i > 0 {
			p.sb.WriteString("\n")
		}
		p.printContainer(c)
	}
	return p.sb.String()
}

func (p *Printer) writeIndented(line string) {
	if line == "" {
		p.sb.WriteString("\n")
		return
	}
	p.sb.WriteString(strings.Repeat(" ", p.indent*indentWidth))
	p.sb.WriteString(line)
	p.sb.WriteString("\n")
}

func (p *Printer) printContainer(c ast.Container) {
	switch n := c.(type) {
	case *ast.Library:
		p.printBlock("library", n.Name, n.InitializerName(), "endlibrary", n.Body)
	case *ast.Scope:
		p.printBlock("scope", n.Name, n.InitializerName(), "endscope", n.Body)
	case *ast.Content:
		p.printBlock("scope", n.Name, n.InitializerName(), "endscope", n.Body)
	default:
		p.reportInternal(fmt.Sprintf("unrecognized container type %T", c))
	}
}

func (p *Printer) printBlock(keyword, name, initializer, endKeyword string, m ast.Members) {
	header := keyword + " " + name
	if initializer != "" {
		header += " initializer " + initializer
	}
	p.writeIndented(header)
	p.indent++

	if len(m.Types) > 0 {
		for _, t := range m.Types {
			if t.IsStrongType {
				// Per the conservative struct-emission choice, a strong
				// type always extends array; t.Base only mattered for
				// validating the declaration shape at parse time.
				p.writeIndented(fmt.Sprintf("struct %s extends array", t.Name))
			}
		}
		p.writeIndented("")
	}

	if len(m.Globals) > 0 {
		p.writeIndented("globals")
		p.indent++
		for _, g := range m.Globals {
			p.writeIndented(p.renderGlobal(g))
		}
		p.indent--
		p.writeIndented("endglobals")
		p.writeIndented("")
	}

	for i, fn := range m.Functions {
		if i > 0 {
			p.writeIndented("")
		}
		p.printFunction(fn)
	}

	for _, nested := range m.Nested {
		p.writeIndented("")
		p.printContainer(nested)
	}

	p.indent--
	p.writeIndented(endKeyword)
}

func (p *Printer) renderGlobal(g *ast.GlobalVar) string {
	if g.IsHashtable {
		vis := ""
		if g.Visibility == ast.Private {
			vis = "private "
		}
		return fmt.Sprintf("%sconstant hashtable %s = InitHashtable()", vis, g.Name)
	}

	var sb strings.Builder
	if g.Visibility == ast.Private {
		sb.WriteString("private ")
	}
	if g.Constness == ast.Constant {
		sb.WriteString("constant ")
	}
	sb.WriteString(g.Type)
	if g.IsArray {
		sb.WriteString(" array")
	}
	sb.WriteString(" ")
	sb.WriteString(g.Name)
	if g.Init != nil {
		sb.WriteString(" = ")
		sb.WriteString(p.renderExpr(g.Init, 0))
	}
	return sb.String()
}

func (p *Printer) printFunction(fn *ast.Function) {
	vis := ""
	if fn.Visibility == ast.Private {
		vis = "private "
	}
	params := "nothing"
	if len(fn.Params) > 0 {
		parts := make([]string, len(fn.Params))
		for i, prm := range fn.Params {
			parts[i] = prm.Type + " " + prm.Name
		}
		params = strings.Join(parts, ", ")
	}
	ret := "nothing"
	if fn.ReturnType != "" {
		ret = fn.ReturnType
	}

	p.writeIndented(fmt.Sprintf("%sfunction %s takes %s returns %s", vis, fn.Name, params, ret))
	p.indent++

	for _, l := range fn.Locals {
		if l.IsArray {
			p.writeIndented(fmt.Sprintf("local %s array %s", l.Type, l.Name))
		} else {
			p.writeIndented(fmt.Sprintf("local %s %s", l.Type, l.Name))
		}
	}

	p.printStatements(fn.Body)

	p.indent--
	p.writeIndented("endfunction")
}

func (p *Printer) printStatements(stmts []ast.Statement) {
	for _, s := range stmts {
		p.printStatement(s)
	}
}

func (p *Printer) printStatement(s ast.Statement) {
	switch n := s.(type) {
	case *ast.LocalDecl:
		// Only reachable if the hoisting pass was skipped (e.g. direct
		// unit tests of the printer); render inline as a fallback.
		if n.Init != nil {
			p.writeIndented(fmt.Sprintf("local %s %s = %s", n.Type, n.Name, p.renderExpr(n.Init, 0)))
		} else {
			p.writeIndented(fmt.Sprintf("local %s %s", n.Type, n.Name))
		}
	case *ast.Assign:
		p.writeIndented(fmt.Sprintf("set %s = %s", p.renderExpr(n.Target, 0), p.renderExpr(n.Value, 0)))
	case *ast.ExprStmt:
		p.writeIndented("call " + p.renderExpr(n.Call, 0))
	case *ast.If:
		p.writeIndented("if " + p.renderExpr(n.Cond, 0) + " then")
		p.indent++
		p.printStatements(n.Then)
		p.indent--
		if len(n.Else) > 0 {
			p.writeIndented("else")
			p.indent++
			p.printStatements(n.Else)
			p.indent--
		}
		p.writeIndented("endif")
	case *ast.Until:
		p.writeIndented("loop")
		p.indent++
		p.writeIndented("exitwhen " + p.renderExpr(n.Cond, 0))
		p.printStatements(n.Body)
		p.indent--
		p.writeIndented("endloop")
	case *ast.Return:
		if n.Value != nil {
			p.writeIndented("return " + p.renderExpr(n.Value, 0))
		} else {
			p.writeIndented("return")
		}
	case *ast.PostIncDec:
		// The lowering pass always expands these to Assign before the
		// printer runs; this branch only fires in isolated printer tests.
		op := "-"
		if n.Increment {
			op = "+"
		}
		target := p.renderExpr(n.Target, 0)
		p.writeIndented(fmt.Sprintf("set %s = %s %s 1", target, target, op))
	default:
		p.reportInternal(fmt.Sprintf("unrecognized statement type %T", s))
	}
}

// precedence levels, lowest to highest, matching the grammar's tie-break
// order so renderExpr only parenthesizes a sub-expression when rendering
// it flat would otherwise change its meaning.
func binaryPrecedence(op ast.BinaryOp) int {
	switch op {
	case ast.OpOr:
		return 1
	case ast.OpAnd:
		return 2
	case ast.OpEq, ast.OpNeq:
		return 3
	case ast.OpLt, ast.OpGt, ast.OpLe, ast.OpGe:
		return 4
	case ast.OpAdd, ast.OpSub:
		return 5
	case ast.OpMul, ast.OpDiv, ast.OpMod:
		return 6
	default:
		return 0
	}
}

func binaryOpText(op ast.BinaryOp) string {
	switch op {
	case ast.OpAdd:
		return "+"
	case ast.OpSub:
		return "-"
	case ast.OpMul:
		return "*"
	case ast.OpDiv:
		return "/"
	case ast.OpMod:
		return "%"
	case ast.OpAnd:
		return "and"
	case ast.OpOr:
		return "or"
	case ast.OpEq:
		return "=="
	case ast.OpNeq:
		return "!="
	case ast.OpLt:
		return "<"
	case ast.OpGt:
		return ">"
	case ast.OpLe:
		return "<="
	case ast.OpGe:
		return ">="
	default:
		return "?"
	}
}

// renderExpr renders e, wrapping it in parentheses iff its own precedence
// is lower than parentPrec (i.e. it was the operand of a tighter-binding
// operator and would otherwise be misread).
func (p *Printer) renderExpr(e ast.Expression, parentPrec int) string {
	switch n := e.(type) {
	case *ast.Literal:
		return renderLiteral(n)
	case *ast.Ref:
		return n.Name
	case *ast.FunctionRef:
		return "function " + n.Name
	case *ast.FieldAccess:
		return p.renderExpr(n.Base, 100) + "." + n.Field
	case *ast.Index:
		return p.renderExpr(n.Base, 100) + "[" + p.renderExpr(n.Index, 0) + "]"
	case *ast.Call:
		args := make([]string, len(n.Args))
		for i, a := range n.Args {
			args[i] = p.renderExpr(a, 0)
		}
		return p.renderExpr(n.Callee, 100) + "(" + strings.Join(args, ", ") + ")"
	case *ast.Unary:
		operand := p.renderExpr(n.Operand, 7)
		if n.Op == ast.OpNot {
			return "not " + operand
		}
		return "-" + operand
	case *ast.Binary:
		prec := binaryPrecedence(n.Op)
		left := p.renderExpr(n.Left, prec)
		right := p.renderExpr(n.Right, prec+1)
		text := left + " " + binaryOpText(n.Op) + " " + right
		if prec < parentPrec {
			return "(" + text + ")"
		}
		return text
	default:
		p.reportInternal(fmt.Sprintf("unrecognized expression type %T", e))
		return ""
	}
}

func renderLiteral(l *ast.Literal) string {
	switch l.Kind {
	case ast.IntLit, ast.RealLit:
		return l.Text
	case ast.StringLit:
		return strconv.Quote(l.Text)
	case ast.BoolLit:
		if l.Bool {
			return "true"
		}
		return "false"
	case ast.NullLit:
		return "null"
	default:
		return ""
	}
}
