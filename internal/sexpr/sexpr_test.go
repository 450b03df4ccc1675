package sexpr

import (
	"testing"

	"github.com/cxylang/frontend/internal/arena"
	"github.com/cxylang/frontend/internal/ast"
	"github.com/cxylang/frontend/internal/diag"
	"github.com/cxylang/frontend/internal/intern"
	"github.com/cxylang/frontend/internal/lexer"
	"github.com/cxylang/frontend/internal/parser"
)

// parseVarInit parses `var x = <expr>` and returns the Init expression, a
// convenient way to reach an arbitrary expression through the parser's
// public entry point without a parser-package-internal test hook.
func parseVarInit(t *testing.T, expr string) (ast.Expr, *intern.Interner) {
	t.Helper()
	a := arena.New()
	in := intern.New(a)
	logger := diag.NewLogger()
	lx := lexer.New("t.cxy", []byte("var x = "+expr+"\n"), in, logger)
	mod := parser.Parse(lx, a, in, logger)
	if logger.HasErrors() {
		t.Fatalf("unexpected diagnostics parsing %q", expr)
	}
	return mod.MainContent[0].(*ast.VariableDecl).Init, in
}

func TestDumpPrecedenceScenario(t *testing.T) {
	t.Parallel()

	node, in := parseVarInit(t, "a + b * c == d && e")
	got := Dump(in, node)
	want := "(Binary && (Binary == (Binary + (Identifier a) (Binary * (Identifier b) (Identifier c))) (Identifier d)) (Identifier e))"
	if got != want {
		t.Fatalf("Dump =\n%s\nwant\n%s", got, want)
	}
}

func TestDumpIntLiteral(t *testing.T) {
	t.Parallel()

	node, in := parseVarInit(t, "42")
	if got, want := Dump(in, node), "(Int 42)"; got != want {
		t.Fatalf("Dump = %q, want %q", got, want)
	}
}

func TestDumpArrayOfOptionalsType(t *testing.T) {
	t.Parallel()

	a := arena.New()
	in := intern.New(a)
	logger := diag.NewLogger()
	lx := lexer.New("t.cxy", []byte("var buf: [10]?i32\n"), in, logger)
	mod := parser.Parse(lx, a, in, logger)
	if logger.HasErrors() {
		t.Fatalf("unexpected diagnostics")
	}
	decl := mod.MainContent[0]
	got := Dump(in, decl)
	want := "(VariableDeclaration (Identifier buf) (ArrayType (Int 10) (OptionalType (Type i32))))"
	if got != want {
		t.Fatalf("Dump = %q, want %q", got, want)
	}
}

func TestDumpGenericFuncDecl(t *testing.T) {
	t.Parallel()

	a := arena.New()
	in := intern.New(a)
	logger := diag.NewLogger()
	lx := lexer.New("t.cxy", []byte("func max<T>(a i32, b i32) i32 => a\n"), in, logger)
	mod := parser.Parse(lx, a, in, logger)
	if logger.HasErrors() {
		t.Fatalf("unexpected diagnostics")
	}
	got := Dump(in, mod.MainContent[0])
	want := "(GenericDeclaration (TypeParameterDeclaration (Identifier T)) " +
		"(FuncDeclaration (Identifier max) " +
		"(FuncParamDeclaration (Identifier a) (Type i32)) " +
		"(FuncParamDeclaration (Identifier b) (Type i32)) " +
		"(Type i32) (Identifier a)))"
	if got != want {
		t.Fatalf("Dump =\n%s\nwant\n%s", got, want)
	}
}

func TestDumpNilNodeIsEmptyList(t *testing.T) {
	t.Parallel()

	in := intern.New(arena.New())
	if got, want := Dump(in, nil), "()"; got != want {
		t.Fatalf("Dump(nil) = %q, want %q", got, want)
	}
}
