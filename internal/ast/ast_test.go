package ast

import (
	"testing"

	"github.com/cxylang/frontend/internal/text"
)

func loc() text.Location {
	return text.Location{Filename: "t.cxy", Start: text.Position{Row: 1, Column: 1}, End: text.Position{Row: 1, Column: 2}}
}

func TestBinaryExprAdoptsChildren(t *testing.T) {
	t.Parallel()

	lhs := NewIntLiteral(loc(), 1, 0, 0)
	rhs := NewIntLiteral(loc(), 2, 0, 0)
	bin := NewBinaryExpr(loc(), 0, lhs, rhs)

	if lhs.Parent() != Node(bin) {
		t.Fatalf("lhs.Parent() = %v, want bin", lhs.Parent())
	}
	if rhs.Parent() != Node(bin) {
		t.Fatalf("rhs.Parent() = %v, want bin", rhs.Parent())
	}
}

func TestFlagsHasReportsSubset(t *testing.T) {
	t.Parallel()

	v := NewVariableDecl(loc(), nil, nil, NewIntLiteral(loc(), 0, 0, 0))
	v.AddFlags(FlagPublic | FlagConst)

	if !v.Flags().Has(FlagPublic) {
		t.Fatal("expected FlagPublic set")
	}
	if v.Flags().Has(FlagExtern) {
		t.Fatal("did not expect FlagExtern set")
	}
}

func TestQualifiedPathAdoptsTypeArgs(t *testing.T) {
	t.Parallel()

	elemType := NewPrimitiveType(loc(), 0)
	seg := PathSegment{TypeArgs: []TypeExpr{elemType}}
	path := NewQualifiedPath(loc(), true, []PathSegment{seg})

	if elemType.Parent() != Node(path) {
		t.Fatalf("type arg parent = %v, want path", elemType.Parent())
	}
}

func TestModuleDeclAdoptsTopLevelAndMainContent(t *testing.T) {
	t.Parallel()

	imp := NewImportDecl(loc(), WholeModule, 0, 0, nil)
	decl := NewTypeDecl(loc(), 0, NewPrimitiveType(loc(), 0))
	mod := NewModuleDecl(loc(), 0, false, []*ImportDecl{imp}, []Decl{decl})

	if imp.Parent() != Node(mod) {
		t.Fatalf("import parent = %v, want module", imp.Parent())
	}
	if decl.Parent() != Node(mod) {
		t.Fatalf("decl parent = %v, want module", decl.Parent())
	}
}
