package ast

import (
	"github.com/cxylang/frontend/internal/lexer"
	"github.com/cxylang/frontend/internal/text"
)

// PrimitiveType is a built-in scalar type keyword (i8, f64, bool, void, ...).
type PrimitiveType struct {
	base
	Kind lexer.TokenKind
}

func NewPrimitiveType(loc text.Location, kind lexer.TokenKind) *PrimitiveType {
	return &PrimitiveType{base: base{loc: loc}, Kind: kind}
}
func (*PrimitiveType) typeExprNode() {}

// ArrayType is `[size?]element`; Size is nil for a dynamically-sized array.
type ArrayType struct {
	base
	Size    Expr
	Element TypeExpr
}

func NewArrayType(loc text.Location, size Expr, element TypeExpr) *ArrayType {
	t := &ArrayType{base: base{loc: loc}, Size: size, Element: element}
	if size != nil {
		adopt(t, size)
	}
	adopt(t, element)
	return t
}
func (*ArrayType) typeExprNode() {}

// TupleType is `(t1, t2, ...)` with two or more elements (a single
// parenthesized element without a trailing comma parses as a grouped type,
// not a TupleType).
type TupleType struct {
	base
	Elements []TypeExpr
}

func NewTupleType(loc text.Location, elements []TypeExpr) *TupleType {
	t := &TupleType{base: base{loc: loc}, Elements: elements}
	adoptAll[TypeExpr](t, elements)
	return t
}
func (*TupleType) typeExprNode() {}

// UnionType is `t1 | t2 | ...` with two or more members.
type UnionType struct {
	base
	Members []TypeExpr
}

func NewUnionType(loc text.Location, members []TypeExpr) *UnionType {
	t := &UnionType{base: base{loc: loc}, Members: members}
	adoptAll[TypeExpr](t, members)
	return t
}
func (*UnionType) typeExprNode() {}

// PointerType is `*target`.
type PointerType struct {
	base
	Target TypeExpr
}

func NewPointerType(loc text.Location, target TypeExpr) *PointerType {
	t := &PointerType{base: base{loc: loc}, Target: target}
	adopt(t, target)
	return t
}
func (*PointerType) typeExprNode() {}

// ReferenceType is `&target`.
type ReferenceType struct {
	base
	Target TypeExpr
}

func NewReferenceType(loc text.Location, target TypeExpr) *ReferenceType {
	t := &ReferenceType{base: base{loc: loc}, Target: target}
	adopt(t, target)
	return t
}
func (*ReferenceType) typeExprNode() {}

// OptionalType is `?target`.
type OptionalType struct {
	base
	Target TypeExpr
}

func NewOptionalType(loc text.Location, target TypeExpr) *OptionalType {
	t := &OptionalType{base: base{loc: loc}, Target: target}
	adopt(t, target)
	return t
}
func (*OptionalType) typeExprNode() {}

// ResultType is `!target`.
type ResultType struct {
	base
	Target TypeExpr
}

func NewResultType(loc text.Location, target TypeExpr) *ResultType {
	t := &ResultType{base: base{loc: loc}, Target: target}
	adopt(t, target)
	return t
}
func (*ResultType) typeExprNode() {}

// FunctionType is `func(t1, t2, ...) -> ret`.
type FunctionType struct {
	base
	Params     []TypeExpr
	ReturnType TypeExpr
}

func NewFunctionType(loc text.Location, params []TypeExpr, returnType TypeExpr) *FunctionType {
	t := &FunctionType{base: base{loc: loc}, Params: params, ReturnType: returnType}
	adoptAll[TypeExpr](t, params)
	adopt(t, returnType)
	return t
}
func (*FunctionType) typeExprNode() {}
