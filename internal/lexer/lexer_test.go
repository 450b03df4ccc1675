package lexer

import (
	"testing"

	"github.com/cxylang/frontend/internal/arena"
	"github.com/cxylang/frontend/internal/diag"
	"github.com/cxylang/frontend/internal/intern"
)

func newTestLexer(src string) (*Lexer, *diag.Logger, *intern.Interner) {
	logger := diag.NewLogger()
	mem := &diag.MemorySink{}
	logger.AddSink(mem)
	in := intern.New(arena.New())
	return New("test.cxy", []byte(src), in, logger), logger, in
}

func allTokens(lx *Lexer) []Token {
	var toks []Token
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == EoF {
			return toks
		}
	}
}

func TestLexSymbolsLongestMatch(t *testing.T) {
	t.Parallel()

	lx, logger, _ := newTestLexer("<<= >>= ... .. . ->  => == != &&. &.")
	toks := allTokens(lx)
	if logger.HasErrors() {
		t.Fatalf("unexpected diagnostics")
	}

	want := []TokenKind{ShlEqual, ShrEqual, Elipsis, DotDot, Dot, ThinArrow, FatArrow, Equal, NotEqual, LAnd, Dot, BAndDot, EoF}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %+v", len(toks), len(want), toks)
	}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Fatalf("token[%d] = %s, want %s", i, toks[i].Kind, k)
		}
	}
}

func TestLexKeywordsAndIdentifiers(t *testing.T) {
	t.Parallel()

	lx, logger, in := newTestLexer("func myFunc pubfunc pub")
	toks := allTokens(lx)
	if logger.HasErrors() {
		t.Fatalf("unexpected diagnostics")
	}

	if toks[0].Kind != Func {
		t.Fatalf("toks[0].Kind = %s, want Func", toks[0].Kind)
	}
	if toks[1].Kind != Ident || in.String(toks[1].Value.Ident) != "myFunc" {
		t.Fatalf("toks[1] = %+v, want Ident(myFunc)", toks[1])
	}
	if toks[2].Kind != Ident || in.String(toks[2].Value.Ident) != "pubfunc" {
		t.Fatalf("toks[2] = %+v, want Ident(pubfunc)", toks[2])
	}
	if toks[3].Kind != Pub {
		t.Fatalf("toks[3].Kind = %s, want Pub", toks[3].Kind)
	}
}

func TestLexIntegerLiteralsAllBases(t *testing.T) {
	t.Parallel()

	lx, logger, _ := newTestLexer("0x2A 0b101 0o17 017 42 1_000_000")
	toks := allTokens(lx)
	if logger.HasErrors() {
		t.Fatalf("unexpected diagnostics")
	}

	want := []uint64{42, 5, 15, 15, 42, 1000000}
	for i, w := range want {
		if toks[i].Kind != IntLiteral {
			t.Fatalf("toks[%d].Kind = %s, want IntLiteral", i, toks[i].Kind)
		}
		if toks[i].Value.IntVal != w {
			t.Fatalf("toks[%d].Value.IntVal = %d, want %d", i, toks[i].Value.IntVal, w)
		}
	}
}

func TestLexIntegerOverflowClampsAndReportsDiagnostic(t *testing.T) {
	t.Parallel()

	lx, logger, _ := newTestLexer("0xFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFF")
	tok := lx.Next()
	if tok.Kind != IntLiteral {
		t.Fatalf("Kind = %s, want IntLiteral", tok.Kind)
	}
	if tok.Value.IntVal != ^uint64(0) || tok.Value.IntHi != ^uint64(0) {
		t.Fatalf("expected clamp to max uint128, got hi=%d lo=%d", tok.Value.IntHi, tok.Value.IntVal)
	}
	if !logger.HasErrors() {
		t.Fatal("expected overflow diagnostic")
	}
}

func TestLexFloatLiterals(t *testing.T) {
	t.Parallel()

	lx, logger, _ := newTestLexer("1.5 .5e+1 3f 2d 1e10")
	toks := allTokens(lx)
	if logger.HasErrors() {
		t.Fatalf("unexpected diagnostics")
	}

	for i, tok := range toks[:5] {
		if tok.Kind != FloatLiteral {
			t.Fatalf("toks[%d].Kind = %s, want FloatLiteral", i, tok.Kind)
		}
	}
	if toks[0].Value.FloatVal != 1.5 {
		t.Fatalf("toks[0].Value.FloatVal = %v, want 1.5", toks[0].Value.FloatVal)
	}
	if toks[2].Value.FloatTyp != FloatF32 {
		t.Fatalf("toks[2].Value.FloatTyp = %v, want FloatF32", toks[2].Value.FloatTyp)
	}
}

func TestLexFloatLiteralsAcrossBases(t *testing.T) {
	t.Parallel()

	lx, logger, _ := newTestLexer("0x1.8p3 0b101e2 0o17e1")
	toks := allTokens(lx)
	if logger.HasErrors() {
		t.Fatalf("unexpected diagnostics")
	}

	want := []float64{12.0, 500.0, 150.0}
	for i, w := range want {
		if toks[i].Kind != FloatLiteral {
			t.Fatalf("toks[%d].Kind = %s, want FloatLiteral", i, toks[i].Kind)
		}
		if toks[i].Value.FloatVal != w {
			t.Fatalf("toks[%d].Value.FloatVal = %v, want %v", i, toks[i].Value.FloatVal, w)
		}
	}
}

func TestLexStringLiteralWithEscapes(t *testing.T) {
	t.Parallel()

	lx, logger, in := newTestLexer(`"a\nb\"c"`)
	tok := lx.Next()
	if logger.HasErrors() {
		t.Fatalf("unexpected diagnostics")
	}
	if tok.Kind != StringLiteral {
		t.Fatalf("Kind = %s, want StringLiteral", tok.Kind)
	}
	if got := in.String(tok.Value.Str); got != "a\nb\"c" {
		t.Fatalf("decoded = %q, want %q", got, "a\nb\"c")
	}
}

func TestLexRawStringNoEscapeProcessing(t *testing.T) {
	t.Parallel()

	lx, logger, in := newTestLexer(`r"a\nb"`)
	tok := lx.Next()
	if logger.HasErrors() {
		t.Fatalf("unexpected diagnostics")
	}
	if tok.Kind != StringLiteral {
		t.Fatalf("Kind = %s, want StringLiteral", tok.Kind)
	}
	if got := in.String(tok.Value.Str); got != `a\nb` {
		t.Fatalf("decoded = %q, want %q", got, `a\nb`)
	}
}

func TestLexCharacterLiteralEscapesAndUnicode(t *testing.T) {
	t.Parallel()

	lx, logger, _ := newTestLexer(`'\n' '\x41' '\u{1F600}' 'z'`)
	toks := allTokens(lx)
	if logger.HasErrors() {
		t.Fatalf("unexpected diagnostics")
	}
	want := []rune{'\n', 'A', 0x1F600, 'z'}
	for i, w := range want {
		if toks[i].Kind != CharLiteral {
			t.Fatalf("toks[%d].Kind = %s, want CharLiteral", i, toks[i].Kind)
		}
		if toks[i].Value.CharVal != w {
			t.Fatalf("toks[%d].Value.CharVal = %U, want %U", i, toks[i].Value.CharVal, w)
		}
	}
}

func TestLexCharacterLiteralUnrecognizedEscapeIsError(t *testing.T) {
	t.Parallel()

	lx, logger, _ := newTestLexer(`'\q'`)
	tok := lx.Next()
	if !logger.HasErrors() {
		t.Fatalf("expected a diagnostic for an unrecognized escape")
	}
	if tok.Kind != Error {
		t.Fatalf("Kind = %s, want Error", tok.Kind)
	}
}

func TestLexStringUnrecognizedEscapePreservesRawBytes(t *testing.T) {
	t.Parallel()

	lx, logger, in := newTestLexer(`"a\qb"`)
	tok := lx.Next()
	if logger.HasErrors() {
		t.Fatalf("unexpected diagnostics for an unrecognized string escape")
	}
	if tok.Kind != StringLiteral {
		t.Fatalf("Kind = %s, want StringLiteral", tok.Kind)
	}
	if got := in.String(tok.Value.Str); got != `a\qb` {
		t.Fatalf("decoded = %q, want %q", got, `a\qb`)
	}
}

func TestLexStringInterpolationFragments(t *testing.T) {
	t.Parallel()

	lx, logger, in := newTestLexer(`"PRE{a}MID{b}POST"`)
	toks := allTokens(lx)
	if logger.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", logger)
	}

	wantKinds := []TokenKind{LString, Ident, StringLiteral, Ident, RString, EoF}
	if len(toks) != len(wantKinds) {
		t.Fatalf("got %d tokens, want %d: %+v", len(toks), len(wantKinds), toks)
	}
	for i, k := range wantKinds {
		if toks[i].Kind != k {
			t.Fatalf("toks[%d].Kind = %s, want %s", i, toks[i].Kind, k)
		}
	}
	if got := in.String(toks[0].Value.Str); got != "PRE" {
		t.Fatalf("LString = %q, want PRE", got)
	}
	if got := in.String(toks[2].Value.Str); got != "MID" {
		t.Fatalf("StringLiteral(mid) = %q, want MID", got)
	}
	if got := in.String(toks[4].Value.Str); got != "POST" {
		t.Fatalf("RString = %q, want POST", got)
	}
}

func TestLexStringInterpolationWithBracesInsideExpr(t *testing.T) {
	t.Parallel()

	lx, logger, _ := newTestLexer(`"X{ {1:2} }Y"`)
	toks := allTokens(lx)
	if logger.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", logger)
	}
	wantKinds := []TokenKind{LString, LBrace, IntLiteral, Colon, IntLiteral, RBrace, RString, EoF}
	if len(toks) != len(wantKinds) {
		t.Fatalf("got %d tokens, want %d: %+v", len(toks), len(wantKinds), toks)
	}
	for i, k := range wantKinds {
		if toks[i].Kind != k {
			t.Fatalf("toks[%d].Kind = %s, want %s", i, toks[i].Kind, k)
		}
	}
}

func TestLexUnterminatedStringReportsDiagnosticAndErrorToken(t *testing.T) {
	t.Parallel()

	lx, logger, _ := newTestLexer(`"abc`)
	tok := lx.Next()
	if tok.Kind != Error {
		t.Fatalf("Kind = %s, want Error", tok.Kind)
	}
	if !logger.HasErrors() {
		t.Fatal("expected diagnostic for unterminated string")
	}
}

func TestLexUnterminatedBlockComment(t *testing.T) {
	t.Parallel()

	lx, logger, _ := newTestLexer("/* abc")
	tok := lx.Next()
	if tok.Kind != EoF {
		t.Fatalf("Kind = %s, want EoF", tok.Kind)
	}
	if !logger.HasErrors() {
		t.Fatal("expected diagnostic for unterminated block comment")
	}
}

func TestLexNestedBlockComments(t *testing.T) {
	t.Parallel()

	lx, logger, _ := newTestLexer("/* outer /* inner */ still-comment */ 1")
	tok := lx.Next()
	if logger.HasErrors() {
		t.Fatalf("unexpected diagnostics")
	}
	if tok.Kind != IntLiteral {
		t.Fatalf("Kind = %s, want IntLiteral", tok.Kind)
	}
}

func TestPushIncludeAutoPopsAndDetectsCycle(t *testing.T) {
	t.Parallel()

	lx, logger, _ := newTestLexer("a")
	if err := lx.PushInclude("inc.cxy", []byte("b")); err != nil {
		t.Fatalf("PushInclude() error = %v", err)
	}

	tok := lx.Next()
	if tok.Kind != Ident || tok.Location.Filename != "inc.cxy" {
		t.Fatalf("expected ident from inc.cxy, got %+v", tok)
	}

	tok = lx.Next()
	if tok.Kind != Ident || tok.Location.Filename != "test.cxy" {
		t.Fatalf("expected auto-pop back to test.cxy, got %+v", tok)
	}

	if logger.HasErrors() {
		t.Fatal("unexpected diagnostics")
	}

	if err := lx.PushInclude("test.cxy", []byte("x")); err == nil {
		t.Fatal("expected recursive include error")
	}
}

func TestTemplateContextSplitsShr(t *testing.T) {
	t.Parallel()

	lx, logger, _ := newTestLexer("A<B<C>>")
	_ = lx.Next() // A
	_ = lx.Next() // <
	_ = lx.Next() // B
	_ = lx.Next() // <
	_ = lx.Next() // C

	lx.EnterTemplateContext()
	lx.EnterTemplateContext()
	first := lx.Next()
	lx.ExitTemplateContext()
	second := lx.Next()
	lx.ExitTemplateContext()

	if first.Kind != Greater || second.Kind != Greater {
		t.Fatalf("expected two Greater tokens, got %s, %s", first.Kind, second.Kind)
	}
	if logger.HasErrors() {
		t.Fatal("unexpected diagnostics")
	}
}
