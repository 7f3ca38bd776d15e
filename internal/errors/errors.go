// Package errors provides the compiler's diagnostic sink and the source
// context formatter used to render a single error with a line/column
// header, the offending source line, and a caret pointing at the column.
package errors

import (
	"fmt"
	"strings"

	"github.com/vjassplus/vjpc/internal/source"
)

// Kind classifies a diagnostic by the phase that raised it.
type Kind int

const (
	IOError Kind = iota
	LexicalError
	SyntaxError
	SemanticError
	InternalError
)

func (k Kind) String() string {
	switch k {
	case IOError:
		return "io error"
	case LexicalError:
		return "lexical error"
	case SyntaxError:
		return "syntax error"
	case SemanticError:
		return "semantic error"
	case InternalError:
		return "internal error"
	default:
		return "error"
	}
}

// CompilerError is a single diagnostic with position and source context.
type CompilerError struct {
	Kind    Kind
	Pos     source.Position
	Unit    string
	Message string
	Source  string // the full unit text, for context rendering
	Stack   string // populated only for InternalError, shown with --debug
}

func (e *CompilerError) Error() string { return e.Format(false) }

// Format renders the error as "<Kind> in <unit>:<line>:<col>" (e.g.
// "Syntax error in main.jp:3:5") followed by
// the offending source line and a caret, matching the teacher's
// CompilerError formatter idiom.
func (e *CompilerError) Format(debug bool) string {
	var sb strings.Builder

	if e.Unit != "" {
		fmt.Fprintf(&sb, "%s in %s:%d:%d\n", strings.ToUpper(e.Kind.String()[:1])+e.Kind.String()[1:], e.Unit, e.Pos.Line, e.Pos.Column)
	} else {
		fmt.Fprintf(&sb, "%s at %d:%d\n", e.Kind, e.Pos.Line, e.Pos.Column)
	}

	if line := e.sourceLine(e.Pos.Line); line != "" {
		gutter := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(gutter)
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(gutter)+e.Pos.Column-1))
		sb.WriteString("^\n")
	}

	sb.WriteString(e.Message)

	if debug && e.Kind == InternalError && e.Stack != "" {
		sb.WriteString("\n\n")
		sb.WriteString(e.Stack)
	}

	return sb.String()
}

func (e *CompilerError) sourceLine(n int) string {
	if e.Source == "" || n < 1 {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if n > len(lines) {
		return ""
	}
	return lines[n-1]
}

// Bag is the per-invocation diagnostic sink threaded through every phase.
// It deliberately holds no package-level state: each Compile call gets
// its own Bag, per the compilation-context design note.
type Bag struct {
	errs []*CompilerError
}

func NewBag() *Bag { return &Bag{} }

func (b *Bag) Add(err *CompilerError) { b.errs = append(b.errs, err) }

func (b *Bag) Errors() []*CompilerError { return b.errs }

func (b *Bag) HasErrors() bool { return len(b.errs) > 0 }

// First returns the first recorded error, or nil if the bag is empty.
// The driver's propagation policy acts on this: the first error in a
// phase stops that phase.
func (b *Bag) First() *CompilerError {
	if len(b.errs) == 0 {
		return nil
	}
	return b.errs[0]
}

// FormatAll renders every error in the bag, one per paragraph.
func FormatAll(errs []*CompilerError, debug bool) string {
	var sb strings.Builder
	for i, e := range errs {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(e.Format(debug))
	}
	return sb.String()
}
