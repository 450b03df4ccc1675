package testutil

import (
	"os"
	"testing"
)

func TestSexprGoldenCasesDiscovered(t *testing.T) {
	cases, err := SexprGoldenCases()
	if err != nil {
		t.Fatalf("SexprGoldenCases: %v", err)
	}
	if len(cases) == 0 {
		t.Fatal("expected at least one sexpr golden case")
	}

	for _, c := range cases {
		if _, err := os.Stat(c.InputPath); err != nil {
			t.Fatalf("input fixture missing for %s: %v", c.Name, err)
		}
		if _, err := os.Stat(c.ExpectedPath); err != nil {
			t.Fatalf("expected fixture missing for %s: %v", c.Name, err)
		}
	}
}
