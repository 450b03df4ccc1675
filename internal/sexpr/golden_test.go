package sexpr

import (
	"strings"
	"testing"

	"github.com/cxylang/frontend/internal/arena"
	"github.com/cxylang/frontend/internal/diag"
	"github.com/cxylang/frontend/internal/intern"
	"github.com/cxylang/frontend/internal/lexer"
	"github.com/cxylang/frontend/internal/parser"
	"github.com/cxylang/frontend/internal/testutil"
)

// TestGoldenDumpsMatchFixtures parses every testdata/sexpr input file and
// checks its whole-module dump against the paired .sexpr fixture.
func TestGoldenDumpsMatchFixtures(t *testing.T) {
	cases, err := testutil.SexprGoldenCases()
	if err != nil {
		t.Fatalf("SexprGoldenCases: %v", err)
	}

	for _, c := range cases {
		c := c
		t.Run(c.Name, func(t *testing.T) {
			src := testutil.ReadFile(t, c.InputPath)
			want := strings.TrimRight(string(testutil.ReadFile(t, c.ExpectedPath)), "\n")

			a := arena.New()
			in := intern.New(a)
			logger := diag.NewLogger()
			lx := lexer.New(c.Name+".cxy", src, in, logger)
			mod := parser.Parse(lx, a, in, logger)
			if logger.HasErrors() {
				t.Fatalf("unexpected diagnostics parsing %s", c.Name)
			}

			got := Dump(in, mod)
			if got != want {
				t.Fatalf("Dump =\n%s\nwant\n%s", got, want)
			}
		})
	}
}
