package ast

import "github.com/vjassplus/vjpc/internal/source"

// LocalDecl is a local variable declaration. It is legal anywhere inside
// a function body at parse time; the lowering pass's hoisting sub-pass
// splits each one into a prologue declaration plus, if Init is non-nil,
// an Assign left behind at the original position.
type LocalDecl struct {
	Name     string
	Type     string
	IsArray  bool
	Init     Expression // nil if the declaration has no initializer
	Location source.Location
}

func (d *LocalDecl) stmtNode()            {}
func (d *LocalDecl) Loc() source.Location { return d.Location }

// Assign is `lvalue = expr`. There is no separate prefix flag: the node
// kind itself tells the emitter to render it with a `set` prefix.
type Assign struct {
	Target   Expression
	Value    Expression
	Location source.Location
}

func (a *Assign) stmtNode()            {}
func (a *Assign) Loc() source.Location { return a.Location }

// ExprStmt is a bare call used as a statement, e.g. `DoThing(1, 2)`. It is
// emitted with a `call` prefix.
type ExprStmt struct {
	Call     Expression
	Location source.Location
}

func (e *ExprStmt) stmtNode()            {}
func (e *ExprStmt) Loc() source.Location { return e.Location }

// If is `if cond: ... [else: ...]`.
type If struct {
	Cond     Expression
	Then     []Statement
	Else     []Statement // nil if no else clause
	Location source.Location
}

func (i *If) stmtNode()            {}
func (i *If) Loc() source.Location { return i.Location }

// Until is `until cond: ...`, emitted as `loop ... exitwhen cond ...
// endloop` in the target dialect.
type Until struct {
	Cond     Expression
	Body     []Statement
	Location source.Location
}

func (u *Until) stmtNode()            {}
func (u *Until) Loc() source.Location { return u.Location }

// Return is `return [expr]`.
type Return struct {
	Value    Expression // nil for a bare `return`
	Location source.Location
}

func (r *Return) stmtNode()            {}
func (r *Return) Loc() source.Location { return r.Location }

// PostIncDec is `lvalue++` or `lvalue--`. The parser keeps it distinct so
// the lowering/emit stages can rewrite it to `set lvalue = lvalue + 1` (or
// `- 1`) without re-parsing anything.
type PostIncDec struct {
	Target    Expression
	Increment bool // true for ++, false for --
	Location  source.Location
}

func (p *PostIncDec) stmtNode()            {}
func (p *PostIncDec) Loc() source.Location { return p.Location }
