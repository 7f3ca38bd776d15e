// Package lower rewrites a parsed Program in place so that every node the
// emitter sees is already in target-dialect shape: anonymous containers
// and init blocks carry deterministic names, alias chains are resolved,
// locals are hoisted to their function's prologue, and every PostIncDec
// is expanded into an Assign. Visibility and the `call` prefix flag are
// already set by the parser. The four sub-passes run in a fixed order:
// naming, then aliases, then hoisting, then normalization.
package lower

import (
	"github.com/vjassplus/vjpc/internal/ast"
	"github.com/vjassplus/vjpc/internal/errors"
)

// Lowerer carries the per-invocation state the passes need: nothing here
// survives past one Lower call, matching the "no process-wide state"
// design note.
type Lowerer struct {
	unit string
	bag  *errors.Bag
}

// New creates a Lowerer for the named compilation unit. The unit name is
// stored but no pass reads it: diagnostics take their unit from each
// node's own Location, since the containers passed to Lower may span
// several units once imports are inlined.
func New(unit string, bag *errors.Bag) *Lowerer {
	return &Lowerer{unit: unit, bag: bag}
}

// Lower runs all four sub-passes over containers in place, in source
// order. It stops after the first sub-pass that reports an error, per the
// "first error in a phase stops that phase" propagation policy.
func (l *Lowerer) Lower(containers []ast.Container) {
	namer := newNamer()
	for _, c := range containers {
		namer.visitContainer(c)
	}

	aliases := collectAliases(containers)
	for _, c := range containers {
		resolveAliasesInContainer(c, aliases)
	}

	for _, c := range containers {
		hoistContainer(c, l.bag)
	}
	if l.bag.HasErrors() {
		return
	}

	for _, c := range containers {
		normalizeContainer(c, false)
	}
}
