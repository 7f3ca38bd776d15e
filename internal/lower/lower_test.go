package lower

import (
	"testing"

	"github.com/vjassplus/vjpc/internal/ast"
	"github.com/vjassplus/vjpc/internal/errors"
	"github.com/vjassplus/vjpc/internal/lexer"
	"github.com/vjassplus/vjpc/internal/parser"
)

func parseAndLower(t *testing.T, src string) ([]ast.Container, *errors.Bag) {
	t.Helper()
	lx := lexer.New("unit.jp", src)
	toks := lx.Tokenize()
	if len(lx.Errors()) != 0 {
		t.Fatalf("unexpected lexer errors: %v", lx.Errors())
	}
	bag := errors.NewBag()
	p := parser.New("unit.jp", src, toks, bag)
	containers := p.ParseProgram()
	if bag.HasErrors() {
		t.Fatalf("unexpected parse errors: %s", errors.FormatAll(bag.Errors(), false))
	}

	l := New("unit.jp", bag)
	l.Lower(containers)
	return containers, bag
}

func TestContentGetsDeterministicName(t *testing.T) {
	src := "library L :\n" +
		"    content :\n" +
		"        global :\n" +
		"            integer X = 1\n"

	containers1, _ := parseAndLower(t, src)
	containers2, _ := parseAndLower(t, src)

	name1 := containers1[0].(*ast.Library).Body.Nested[0].ContainerName()
	name2 := containers2[0].(*ast.Library).Body.Nested[0].ContainerName()

	if name1 != name2 {
		t.Fatalf("expected deterministic naming, got %q then %q", name1, name2)
	}
	if len(name1) != len("VJPS")+16 {
		t.Fatalf("expected a VJPS<16-hex> tag, got %q", name1)
	}
}

func TestInitBlockBecomesVJPIFunctionWithOnInit(t *testing.T) {
	src := "library L :\n" +
		"    init :\n" +
		"        integer i = 1\n"

	containers, _ := parseAndLower(t, src)
	lib := containers[0].(*ast.Library)

	if lib.Initializer != "onInit" {
		t.Fatalf("expected library initializer 'onInit', got %q", lib.Initializer)
	}
	if len(lib.Body.Inits) != 0 {
		t.Fatalf("expected Inits to be cleared after lowering")
	}

	var vjpi, onInit *ast.Function
	for _, fn := range lib.Body.Functions {
		switch {
		case fn.Name == "onInit":
			onInit = fn
		case len(fn.Name) > 4 && fn.Name[:4] == "VJPI":
			vjpi = fn
		}
	}
	if vjpi == nil {
		t.Fatal("expected a VJPI<hex> function")
	}
	if onInit == nil {
		t.Fatal("expected an onInit function")
	}
	if len(onInit.Body) != 1 {
		t.Fatalf("expected onInit to call exactly one VJPI function, got %d statements", len(onInit.Body))
	}
	call := onInit.Body[0].(*ast.ExprStmt).Call.(*ast.Call)
	if call.Callee.(*ast.Ref).Name != vjpi.Name {
		t.Fatalf("expected onInit to call %s, got %s", vjpi.Name, call.Callee.(*ast.Ref).Name)
	}
}

func TestSiblingContainersWithOneInitEachGetDistinctVJPINames(t *testing.T) {
	src := "library A :\n" +
		"    init :\n" +
		"        integer a = 1\n" +
		"library B :\n" +
		"    init :\n" +
		"        integer b = 2\n"

	containers, _ := parseAndLower(t, src)

	vjpiName := func(lib *ast.Library) string {
		for _, fn := range lib.Body.Functions {
			if len(fn.Name) > 4 && fn.Name[:4] == "VJPI" {
				return fn.Name
			}
		}
		t.Fatalf("expected a VJPI function in library %s", lib.Name)
		return ""
	}

	nameA := vjpiName(containers[0].(*ast.Library))
	nameB := vjpiName(containers[1].(*ast.Library))
	if nameA == nameB {
		t.Fatalf("expected distinct VJPI names for sibling containers' init blocks, both got %q", nameA)
	}
}

func TestAliasResolvesToBase(t *testing.T) {
	src := "library L :\n" +
		"    alias MyUnit extends unit\n" +
		"    global :\n" +
		"        MyUnit U = null\n"

	containers, _ := parseAndLower(t, src)
	lib := containers[0].(*ast.Library)
	if lib.Body.Globals[0].Type != "unit" {
		t.Fatalf("expected alias MyUnit to resolve to 'unit', got %q", lib.Body.Globals[0].Type)
	}
}

func TestLocalHoistingMovesDeclarationsToPrologue(t *testing.T) {
	src := "scope S :\n" +
		"    F ( ) :\n" +
		"        integer a = 1\n" +
		"        a = a + 1\n" +
		"        integer b = 2\n" +
		"        integer c\n"

	containers, _ := parseAndLower(t, src)
	fn := containers[0].(*ast.Scope).Body.Functions[0]

	if len(fn.Locals) != 3 {
		t.Fatalf("expected 3 hoisted locals, got %d", len(fn.Locals))
	}
	names := []string{fn.Locals[0].Name, fn.Locals[1].Name, fn.Locals[2].Name}
	if names[0] != "a" || names[1] != "b" || names[2] != "c" {
		t.Fatalf("expected locals in declaration order a,b,c, got %v", names)
	}

	// Only a and b had initializers; both should survive as Assign at their
	// original position, in original order, and c's bare decl should leave
	// nothing behind in the body.
	var assigns []string
	for _, s := range fn.Body {
		if a, ok := s.(*ast.Assign); ok {
			if ref, ok := a.Target.(*ast.Ref); ok {
				assigns = append(assigns, ref.Name)
			}
		}
	}
	if len(assigns) != 3 {
		t.Fatalf("expected 3 assigns (a's init, a=a+1, b's init), got %d: %v", len(assigns), assigns)
	}
	if assigns[0] != "a" || assigns[1] != "a" || assigns[2] != "b" {
		t.Fatalf("unexpected assign order: %v", assigns)
	}
}

func TestShadowedLocalIsSemanticError(t *testing.T) {
	src := "scope S :\n" +
		"    F ( ) :\n" +
		"        integer a = 1\n" +
		"        integer a = 2\n"

	_, bag := parseAndLower(t, src)
	if !bag.HasErrors() {
		t.Fatal("expected a semantic error for a shadowed local")
	}
}

func TestPostIncDecExpandsToAssign(t *testing.T) {
	src := "scope S :\n" +
		"    F ( ) :\n" +
		"        i++\n"

	containers, _ := parseAndLower(t, src)
	fn := containers[0].(*ast.Scope).Body.Functions[0]
	assign, ok := fn.Body[0].(*ast.Assign)
	if !ok {
		t.Fatalf("expected PostIncDec to expand into *ast.Assign, got %T", fn.Body[0])
	}
	bin := assign.Value.(*ast.Binary)
	if bin.Op != ast.OpAdd {
		t.Fatalf("expected '+' for increment, got %v", bin.Op)
	}
}
