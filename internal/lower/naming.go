package lower

import (
	"fmt"
	"hash/fnv"

	"github.com/vjassplus/vjpc/internal/ast"
)

// namer assigns deterministic VJPS/VJPI tags, walking containers in the
// order the parser produced them so the same input always yields the same
// tags regardless of which process ran the compiler.
type namer struct {
	scopeOrdinal map[string]int // canonical unit path -> next scope ordinal
}

func newNamer() *namer {
	return &namer{scopeOrdinal: make(map[string]int)}
}

// visitContainer assigns a name to c if it is anonymous, wraps its init:
// blocks into synthetic VJPI functions plus an onInit caller, and recurses
// into nested containers.
func (n *namer) visitContainer(c ast.Container) {
	unit := c.Loc().Unit

	if c.ContainerName() == "" {
		ordinal := n.scopeOrdinal[unit]
		n.scopeOrdinal[unit] = ordinal + 1
		c.SetContainerName(fmt.Sprintf("VJPS%s", stableTag(unit, ordinal)))
	}

	members := c.Members()
	n.assignInits(c, unit, members)

	for _, nested := range members.Nested {
		n.visitContainer(nested)
	}
}

// assignInits wraps every init: block found directly in members into its
// own synthetic VJPI function, appended to Functions, and gives the
// container an onInit function that calls each VJPI in source order. Each
// tag is derived from the enclosing container's own (already-assigned)
// name plus the init block's ordinal within that container, so two
// containers in the same unit that each have one init: block never
// collide on the same VJPI name.
func (n *namer) assignInits(c ast.Container, unit string, members *ast.Members) {
	if len(members.Inits) == 0 {
		return
	}

	scope := c.ContainerName() + "/" + unit

	var initFns []*ast.Function
	for i, init := range members.Inits {
		initFns = append(initFns, &ast.Function{
			Name:      fmt.Sprintf("VJPI%s", stableTag(scope, i)),
			Body:      init.Body,
			Synthetic: true,
			Location:  init.Location,
		})
	}
	members.Functions = append(members.Functions, initFns...)
	members.Inits = nil

	c.SetInitializerName("onInit")
	members.Functions = append(members.Functions, onInitFunction(initFns))
}

// onInitFunction builds the synthetic onInit body: one call-statement per
// VJPI function, in source order.
func onInitFunction(initFns []*ast.Function) *ast.Function {
	var body []ast.Statement
	for _, fn := range initFns {
		body = append(body, &ast.ExprStmt{
			Call: &ast.Call{
				Callee:          &ast.Ref{Name: fn.Name},
				NeedsCallPrefix: true,
			},
		})
	}
	return &ast.Function{Name: "onInit", Body: body, Synthetic: true}
}

// stableTag hashes (unit, ordinal) with FNV-1a and renders the result as
// 16 lowercase hex digits. FNV is used rather than a cryptographic hash
// because these tags only need to be stable and well-distributed, never
// collision-resistant against an adversary.
func stableTag(unit string, ordinal int) string {
	h := fnv.New64a()
	h.Write([]byte(unit))
	h.Write([]byte{0})
	fmt.Fprintf(h, "%d", ordinal)
	return fmt.Sprintf("%016x", h.Sum64())
}
