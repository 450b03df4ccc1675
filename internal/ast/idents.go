package ast

import (
	"github.com/cxylang/frontend/internal/intern"
	"github.com/cxylang/frontend/internal/text"
)

// Identifier is a bare name reference. ResolvedNode is a weak back-reference
// left nil by the parser; a later semantic pass may populate it.
type Identifier struct {
	base
	Name         intern.Handle
	ResolvedNode Node
}

func NewIdentifier(loc text.Location, name intern.Handle) *Identifier {
	return &Identifier{base: base{loc: loc}, Name: name}
}
func (*Identifier) exprNode() {}

// PathSegment is one `.`-separated component of a QualifiedPath, optionally
// followed by its own generic type-argument list.
type PathSegment struct {
	Name     intern.Handle
	TypeArgs []TypeExpr
}

// QualifiedPath is a `::`-rooted or relative dotted path, e.g. `::foo.bar<T>`.
type QualifiedPath struct {
	base
	Rooted   bool // true when the path began with a leading '::'
	Segments []PathSegment
}

func NewQualifiedPath(loc text.Location, rooted bool, segments []PathSegment) *QualifiedPath {
	p := &QualifiedPath{base: base{loc: loc}, Rooted: rooted, Segments: segments}
	for _, seg := range segments {
		adoptAll[TypeExpr](p, seg.TypeArgs)
	}
	return p
}
func (*QualifiedPath) exprNode()     {}
func (*QualifiedPath) typeExprNode() {}
