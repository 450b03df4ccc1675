package ast

import (
	"github.com/cxylang/frontend/internal/intern"
	"github.com/cxylang/frontend/internal/lexer"
	"github.com/cxylang/frontend/internal/text"
)

// UnaryExpr is a prefix or postfix unary operator application. Prefix is
// true for `++x`/`-x`/`!x`/... and false for the postfix forms `x++`/`x--`.
type UnaryExpr struct {
	base
	Op      lexer.TokenKind
	Prefix  bool
	Operand Expr
}

func NewUnaryExpr(loc text.Location, op lexer.TokenKind, prefix bool, operand Expr) *UnaryExpr {
	e := &UnaryExpr{base: base{loc: loc}, Op: op, Prefix: prefix, Operand: operand}
	adopt(e, operand)
	return e
}
func (*UnaryExpr) exprNode() {}

// BinaryExpr applies a left-associative binary operator.
type BinaryExpr struct {
	base
	Op       lexer.TokenKind
	LHS, RHS Expr
}

func NewBinaryExpr(loc text.Location, op lexer.TokenKind, lhs, rhs Expr) *BinaryExpr {
	e := &BinaryExpr{base: base{loc: loc}, Op: op, LHS: lhs, RHS: rhs}
	adopt(e, lhs)
	adopt(e, rhs)
	return e
}
func (*BinaryExpr) exprNode() {}

// TernaryExpr is `cond ? then : else`.
type TernaryExpr struct {
	base
	Cond, Then, Else Expr
}

func NewTernaryExpr(loc text.Location, cond, then, els Expr) *TernaryExpr {
	e := &TernaryExpr{base: base{loc: loc}, Cond: cond, Then: then, Else: els}
	adopt(e, cond)
	adopt(e, then)
	adopt(e, els)
	return e
}
func (*TernaryExpr) exprNode() {}

// AssignmentExpr is `target op= value` for op in {=, +=, -=, ...}.
type AssignmentExpr struct {
	base
	Op            lexer.TokenKind
	Target, Value Expr
}

func NewAssignmentExpr(loc text.Location, op lexer.TokenKind, target, value Expr) *AssignmentExpr {
	e := &AssignmentExpr{base: base{loc: loc}, Op: op, Target: target, Value: value}
	adopt(e, target)
	adopt(e, value)
	return e
}
func (*AssignmentExpr) exprNode() {}

// GroupExpr is a parenthesized expression kept distinct from its inner
// expression so re-serialization preserves the grouping.
type GroupExpr struct {
	base
	Inner Expr
}

func NewGroupExpr(loc text.Location, inner Expr) *GroupExpr {
	e := &GroupExpr{base: base{loc: loc}, Inner: inner}
	adopt(e, inner)
	return e
}
func (*GroupExpr) exprNode() {}

// StmtExpr wraps a statement block used in expression position, e.g. a
// closure body written as `{ ... }` rather than `=> expr`.
type StmtExpr struct {
	base
	Inner Stmt
}

func NewStmtExpr(loc text.Location, inner Stmt) *StmtExpr {
	e := &StmtExpr{base: base{loc: loc}, Inner: inner}
	adopt(e, inner)
	return e
}
func (*StmtExpr) exprNode() {}

// CastExpr is `expr as type` (checked conversion) or `expr !: type` (forced
// reinterpret, Retype == true).
type CastExpr struct {
	base
	Operand Expr
	Type    TypeExpr
	Retype  bool
}

func NewCastExpr(loc text.Location, operand Expr, typ TypeExpr, retype bool) *CastExpr {
	e := &CastExpr{base: base{loc: loc}, Operand: operand, Type: typ, Retype: retype}
	adopt(e, operand)
	adopt(e, typ)
	return e
}
func (*CastExpr) exprNode() {}

// CallExpr is `callee(args...)`.
type CallExpr struct {
	base
	Callee Expr
	Args   []Expr
}

func NewCallExpr(loc text.Location, callee Expr, args []Expr) *CallExpr {
	e := &CallExpr{base: base{loc: loc}, Callee: callee, Args: args}
	adopt(e, callee)
	adoptAll[Expr](e, args)
	return e
}
func (*CallExpr) exprNode() {}

// IndexExpr is `object[index]`.
type IndexExpr struct {
	base
	Object, Index Expr
}

func NewIndexExpr(loc text.Location, object, index Expr) *IndexExpr {
	e := &IndexExpr{base: base{loc: loc}, Object: object, Index: index}
	adopt(e, object)
	adopt(e, index)
	return e
}
func (*IndexExpr) exprNode() {}

// MemberExpr is `object.name` or, when Arrow is true, `object&.name`.
type MemberExpr struct {
	base
	Object Expr
	Name   intern.Handle
	Arrow  bool
}

func NewMemberExpr(loc text.Location, object Expr, name intern.Handle, arrow bool) *MemberExpr {
	e := &MemberExpr{base: base{loc: loc}, Object: object, Name: name, Arrow: arrow}
	adopt(e, object)
	return e
}
func (*MemberExpr) exprNode() {}

// ArrayExpr is an array literal `[a, b, c]`.
type ArrayExpr struct {
	base
	Elements []Expr
}

func NewArrayExpr(loc text.Location, elements []Expr) *ArrayExpr {
	e := &ArrayExpr{base: base{loc: loc}, Elements: elements}
	adoptAll[Expr](e, elements)
	return e
}
func (*ArrayExpr) exprNode() {}

// TupleExpr is a tuple literal `(a, b)`.
type TupleExpr struct {
	base
	Elements []Expr
}

func NewTupleExpr(loc text.Location, elements []Expr) *TupleExpr {
	e := &TupleExpr{base: base{loc: loc}, Elements: elements}
	adoptAll[Expr](e, elements)
	return e
}
func (*TupleExpr) exprNode() {}

// FieldInit is one `name: value` pair inside a StructExpr.
type FieldInit struct {
	Name  intern.Handle
	Value Expr
}

// StructExpr is a struct literal, optionally naming the struct type being
// constructed.
type StructExpr struct {
	base
	Type   TypeExpr // nil when inferred from context
	Fields []FieldInit
}

func NewStructExpr(loc text.Location, typ TypeExpr, fields []FieldInit) *StructExpr {
	e := &StructExpr{base: base{loc: loc}, Type: typ, Fields: fields}
	if typ != nil {
		adopt(e, typ)
	}
	for _, f := range fields {
		adopt(e, f.Value)
	}
	return e
}
func (*StructExpr) exprNode() {}

// MacroCallExpr is `#name(args...)` or `#.name` macro invocation.
type MacroCallExpr struct {
	base
	Name intern.Handle
	Args []Expr
}

func NewMacroCallExpr(loc text.Location, name intern.Handle, args []Expr) *MacroCallExpr {
	e := &MacroCallExpr{base: base{loc: loc}, Name: name, Args: args}
	adoptAll[Expr](e, args)
	return e
}
func (*MacroCallExpr) exprNode() {}

// ClosureExpr is an anonymous function literal.
type ClosureExpr struct {
	base
	Params []*FuncParam
	Body   Expr // either a plain expression or a *StmtExpr wrapping a block
}

func NewClosureExpr(loc text.Location, params []*FuncParam, body Expr) *ClosureExpr {
	e := &ClosureExpr{base: base{loc: loc}, Params: params, Body: body}
	adoptAll[*FuncParam](e, params)
	adopt(e, body)
	return e
}
func (*ClosureExpr) exprNode() {}

// RangeExpr is `start..end` or `start..<end` (Inclusive == false). Either
// endpoint may be omitted in contexts that allow open ranges.
type RangeExpr struct {
	base
	Start, End Expr
	Inclusive  bool
}

func NewRangeExpr(loc text.Location, start, end Expr, inclusive bool) *RangeExpr {
	e := &RangeExpr{base: base{loc: loc}, Start: start, End: end, Inclusive: inclusive}
	if start != nil {
		adopt(e, start)
	}
	if end != nil {
		adopt(e, end)
	}
	return e
}
func (*RangeExpr) exprNode() {}

// SpreadExpr is `...expr`, used in argument lists and array literals.
type SpreadExpr struct {
	base
	Operand Expr
}

func NewSpreadExpr(loc text.Location, operand Expr) *SpreadExpr {
	e := &SpreadExpr{base: base{loc: loc}, Operand: operand}
	adopt(e, operand)
	return e
}
func (*SpreadExpr) exprNode() {}

// StringExpr is an interpolated string: an ordered mix of literal string
// fragments (*StringLiteral) and embedded expressions.
type StringExpr struct {
	base
	Parts []Expr
}

func NewStringExpr(loc text.Location, parts []Expr) *StringExpr {
	e := &StringExpr{base: base{loc: loc}, Parts: parts}
	adoptAll[Expr](e, parts)
	return e
}
func (*StringExpr) exprNode() {}
