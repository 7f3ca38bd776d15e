// Package ast defines the program tree produced by the parser and
// annotated in place by the lowering pass. Node variants follow the data
// model: containers (Library/Scope/Content), declarations (Globals,
// GlobalVar, Function, Init, TypeAlias), statements, and expressions.
package ast

import "github.com/vjassplus/vjpc/internal/source"

// Node is implemented by every tree element.
type Node interface {
	Loc() source.Location
}

// Statement is a node that does not produce a value.
type Statement interface {
	Node
	stmtNode()
}

// Expression is a node that produces a value.
type Expression interface {
	Node
	exprNode()
}

// Program is the root of the tree: the ordered top-level declarations
// from every resolved unit, in dependency post-order.
type Program struct {
	Containers []Container
	Location   source.Location
}

func (p *Program) Loc() source.Location { return p.Location }

// Container is implemented by Library, Scope, and Content: the three
// declaration containers of the source dialect.
type Container interface {
	Node
	ContainerName() string
	SetInitializerName(string)
	InitializerName() string
	Members() *Members
	// SetContainerName assigns a name to a container whose Name was empty
	// at parse time (anonymous scopes and content blocks).
	SetContainerName(string)
}

// Members groups the declarations and nested containers found directly
// inside a Library/Scope/Content body.
type Members struct {
	Globals   []*GlobalVar // flattened; each carries its own Visibility
	Functions []*Function
	Inits     []*Init
	Types     []*TypeAlias
	Nested    []Container
}

// Library is a top-level declaration container.
type Library struct {
	Name        string
	Initializer string // "" until lowering assigns "onInit"
	Body        Members
	Location    source.Location
}

func (l *Library) Loc() source.Location        { return l.Location }
func (l *Library) ContainerName() string       { return l.Name }
func (l *Library) SetInitializerName(n string) { l.Initializer = n }
func (l *Library) InitializerName() string     { return l.Initializer }
func (l *Library) Members() *Members           { return &l.Body }
func (l *Library) SetContainerName(n string)   { l.Name = n }

// Scope is a named (or, once lowered, synthetically named) declaration
// container nested under a Library or at top level.
type Scope struct {
	Name        string
	Synthetic   bool // true if Name was assigned at lowering, not parsed
	Initializer string
	Body        Members
	Location    source.Location
}

func (s *Scope) Loc() source.Location        { return s.Location }
func (s *Scope) ContainerName() string       { return s.Name }
func (s *Scope) SetInitializerName(n string) { s.Initializer = n }
func (s *Scope) InitializerName() string     { return s.Initializer }
func (s *Scope) Members() *Members           { return &s.Body }
func (s *Scope) SetContainerName(n string)   { s.Name = n; s.Synthetic = true }

// Content is an always-anonymous scope; its Name is empty until lowering
// stamps a synthetic "VJPS<hex>" tag on it.
type Content struct {
	Name        string
	Initializer string
	Body        Members
	Location    source.Location
}

func (c *Content) Loc() source.Location        { return c.Location }
func (c *Content) ContainerName() string       { return c.Name }
func (c *Content) SetInitializerName(n string) { c.Initializer = n }
func (c *Content) InitializerName() string     { return c.Initializer }
func (c *Content) Members() *Members           { return &c.Body }
func (c *Content) SetContainerName(n string)   { c.Name = n }

// Visibility controls whether a declaration is rendered with the
// `private` keyword in the target dialect.
type Visibility int

const (
	Private Visibility = iota
	Public
)

// Constness distinguishes a `~`-initialized constant from a mutable `=`
// initialized global.
type Constness int

const (
	Mutable Constness = iota
	Constant
)

// GlobalVar is one declaration inside a Globals block (top-level, outside
// any function body).
type GlobalVar struct {
	Name        string
	Type        string
	Visibility  Visibility
	Constness   Constness
	IsArray     bool
	Init        Expression // nil if no initializer
	IsHashtable bool       // true for `{}`-style hashtable initializers
	Location    source.Location
}

func (g *GlobalVar) Loc() source.Location { return g.Location }

// Param is one function parameter.
type Param struct {
	Name string
	Type string
}

// Function is a named function or the body of a lowered Init block.
type Function struct {
	Name        string
	Visibility  Visibility
	Params      []Param
	ReturnType  string // "" if the function returns nothing
	Locals      []*LocalDecl
	Body        []Statement
	Synthetic   bool // true for VJPI.../onInit functions synthesized at lowering
	Location    source.Location
}

func (f *Function) Loc() source.Location { return f.Location }

// Init is a `init:` block, later absorbed into a synthetic Function by
// the lowering pass's anonymous-naming sub-pass.
type Init struct {
	Body     []Statement
	Location source.Location
}

func (i *Init) Loc() source.Location { return i.Location }

// TypeAlias is `type N extends B` or `alias N extends B`. IsStrongType
// distinguishes the two: a strong `type` renders as a struct, an `alias`
// only ever resolves to its base at emit time.
type TypeAlias struct {
	Name         string
	Base         string
	IsStrongType bool
	Location     source.Location
}

func (t *TypeAlias) Loc() source.Location { return t.Location }
