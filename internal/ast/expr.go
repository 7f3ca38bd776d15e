package ast

import "github.com/vjassplus/vjpc/internal/source"

// Literal is an integer, real, string, boolean, or null literal.
type LiteralKind int

const (
	IntLit LiteralKind = iota
	RealLit
	StringLit
	BoolLit
	NullLit
)

type Literal struct {
	Kind     LiteralKind
	Text     string // original lexeme, preserved verbatim for int/real
	Bool     bool
	Location source.Location
}

func (l *Literal) exprNode()           {}
func (l *Literal) Loc() source.Location { return l.Location }

// Ref is a bare identifier reference. No pass resolves it or checks it
// against the declared locals, globals, or parameters; the emitter
// renders the name as written.
type Ref struct {
	Name     string
	Location source.Location
}

func (r *Ref) exprNode()           {}
func (r *Ref) Loc() source.Location { return r.Location }

// Index is `base[index]`.
type Index struct {
	Base     Expression
	Index    Expression
	Location source.Location
}

func (i *Index) exprNode()           {}
func (i *Index) Loc() source.Location { return i.Location }

// FieldAccess is `base.field`.
type FieldAccess struct {
	Base     Expression
	Field    string
	Location source.Location
}

func (f *FieldAccess) exprNode()           {}
func (f *FieldAccess) Loc() source.Location { return f.Location }

// Call is `callee(args...)`. NeedsCallPrefix is set by the parser when
// this Call is used directly as a statement (never inside a larger
// expression), so the emitter can add the `call` keyword without
// re-analyzing context.
type Call struct {
	Callee          Expression
	Args            []Expression
	NeedsCallPrefix bool
	Location        source.Location
}

func (c *Call) exprNode()           {}
func (c *Call) Loc() source.Location { return c.Location }

// BinaryOp enumerates the binary operators of the expression grammar.
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpAnd
	OpOr
	OpEq
	OpNeq
	OpLt
	OpGt
	OpLe
	OpGe
)

type Binary struct {
	Op       BinaryOp
	Left     Expression
	Right    Expression
	Location source.Location
}

func (b *Binary) exprNode()           {}
func (b *Binary) Loc() source.Location { return b.Location }

// UnaryOp enumerates the unary operators of the expression grammar.
type UnaryOp int

const (
	OpNeg UnaryOp = iota
	OpNot
)

type Unary struct {
	Op       UnaryOp
	Operand  Expression
	Location source.Location
}

func (u *Unary) exprNode()           {}
func (u *Unary) Loc() source.Location { return u.Location }

// FunctionRef is `function Name`, forming a first-class reference to a
// function for passing as a callback argument.
type FunctionRef struct {
	Name     string
	Location source.Location
}

func (f *FunctionRef) exprNode()           {}
func (f *FunctionRef) Loc() source.Location { return f.Location }
