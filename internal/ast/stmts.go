package ast

import (
	"github.com/cxylang/frontend/internal/intern"
	"github.com/cxylang/frontend/internal/text"
)

// ExprStmt is an expression used in statement position, e.g. a bare call.
type ExprStmt struct {
	base
	X Expr
}

func NewExprStmt(loc text.Location, x Expr) *ExprStmt {
	s := &ExprStmt{base: base{loc: loc}, X: x}
	adopt(s, x)
	return s
}
func (*ExprStmt) stmtNode() {}

// BreakStmt is `break`.
type BreakStmt struct{ base }

func NewBreakStmt(loc text.Location) *BreakStmt { return &BreakStmt{base: base{loc: loc}} }
func (*BreakStmt) stmtNode()                    {}

// ContinueStmt is `continue`.
type ContinueStmt struct{ base }

func NewContinueStmt(loc text.Location) *ContinueStmt { return &ContinueStmt{base: base{loc: loc}} }
func (*ContinueStmt) stmtNode()                       {}

// DeferStmt is `defer stmt`, wrapping any parse-level statement.
type DeferStmt struct {
	base
	Inner Stmt
}

func NewDeferStmt(loc text.Location, inner Stmt) *DeferStmt {
	s := &DeferStmt{base: base{loc: loc}, Inner: inner}
	adopt(s, inner)
	return s
}
func (*DeferStmt) stmtNode() {}

// ReturnStmt is `return [expr]`.
type ReturnStmt struct {
	base
	Value Expr // nil when bare `return`
}

func NewReturnStmt(loc text.Location, value Expr) *ReturnStmt {
	s := &ReturnStmt{base: base{loc: loc}, Value: value}
	if value != nil {
		adopt(s, value)
	}
	return s
}
func (*ReturnStmt) stmtNode() {}

// YieldStmt is `yield [expr]`.
type YieldStmt struct {
	base
	Value Expr
}

func NewYieldStmt(loc text.Location, value Expr) *YieldStmt {
	s := &YieldStmt{base: base{loc: loc}, Value: value}
	if value != nil {
		adopt(s, value)
	}
	return s
}
func (*YieldStmt) stmtNode() {}

// BlockStmt is `{ stmts... }`.
type BlockStmt struct {
	base
	Stmts []Stmt
}

func NewBlockStmt(loc text.Location, stmts []Stmt) *BlockStmt {
	s := &BlockStmt{base: base{loc: loc}, Stmts: stmts}
	adoptAll[Stmt](s, stmts)
	return s
}
func (*BlockStmt) stmtNode() {}

// IfStmt is `if cond then (else else)?`. Cond is either an Expr or a
// *VariableDecl (the single-name conditional-variable-declaration form).
type IfStmt struct {
	base
	Cond       Node
	Then, Else Stmt
}

func NewIfStmt(loc text.Location, cond Node, then, els Stmt) *IfStmt {
	s := &IfStmt{base: base{loc: loc}, Cond: cond, Then: then, Else: els}
	adopt(s, cond)
	adopt(s, then)
	if els != nil {
		adopt(s, els)
	}
	return s
}
func (*IfStmt) stmtNode() {}

// WhileStmt is `while cond? body`. Cond is nil for the infinite-loop form.
type WhileStmt struct {
	base
	Cond Node
	Body Stmt
}

func NewWhileStmt(loc text.Location, cond Node, body Stmt) *WhileStmt {
	s := &WhileStmt{base: base{loc: loc}, Cond: cond, Body: body}
	if cond != nil {
		adopt(s, cond)
	}
	adopt(s, body)
	return s
}
func (*WhileStmt) stmtNode() {}

// ForStmt is `for vars in range (, cond)? body`.
type ForStmt struct {
	base
	Vars  []*Identifier
	Range Expr
	Cond  Expr // optional extra filter condition
	Body  Stmt
}

func NewForStmt(loc text.Location, vars []*Identifier, rng, cond Expr, body Stmt) *ForStmt {
	s := &ForStmt{base: base{loc: loc}, Vars: vars, Range: rng, Cond: cond, Body: body}
	adoptAll[*Identifier](s, vars)
	adopt(s, rng)
	if cond != nil {
		adopt(s, cond)
	}
	adopt(s, body)
	return s
}
func (*ForStmt) stmtNode() {}

// CaseClause is one `switch` arm: `values => stmts` or `... => stmts` when
// IsDefault is true (Values is then empty).
type CaseClause struct {
	base
	Values    []Expr
	IsDefault bool
	Stmts     []Stmt
}

func NewCaseClause(loc text.Location, values []Expr, isDefault bool, stmts []Stmt) *CaseClause {
	c := &CaseClause{base: base{loc: loc}, Values: values, IsDefault: isDefault, Stmts: stmts}
	adoptAll[Expr](c, values)
	adoptAll[Stmt](c, stmts)
	return c
}
func (*CaseClause) stmtNode() {}

// SwitchStmt is `switch disc { case* }`. Disc is either an Expr or a
// *VariableDecl, mirroring IfStmt.Cond.
type SwitchStmt struct {
	base
	Disc  Node
	Cases []*CaseClause
}

func NewSwitchStmt(loc text.Location, disc Node, cases []*CaseClause) *SwitchStmt {
	s := &SwitchStmt{base: base{loc: loc}, Disc: disc, Cases: cases}
	adopt(s, disc)
	adoptAll[*CaseClause](s, cases)
	return s
}
func (*SwitchStmt) stmtNode() {}

// MatchCase is one `match` arm: a list of type patterns, an optional `as`
// binding name, and a body; IsDefault is true for the `...` arm (TypeList
// is then empty).
type MatchCase struct {
	base
	TypeList  []TypeExpr
	Binding   intern.Handle // zero Handle when no `as` binding
	HasBind   bool
	IsDefault bool
	Body      Stmt
}

func NewMatchCase(loc text.Location, typeList []TypeExpr, binding intern.Handle, hasBind, isDefault bool, body Stmt) *MatchCase {
	c := &MatchCase{base: base{loc: loc}, TypeList: typeList, Binding: binding, HasBind: hasBind, IsDefault: isDefault, Body: body}
	adoptAll[TypeExpr](c, typeList)
	adopt(c, body)
	return c
}
func (*MatchCase) stmtNode() {}

// MatchStmt is `match disc { matchCase* }`.
type MatchStmt struct {
	base
	Disc  Expr
	Cases []*MatchCase
}

func NewMatchStmt(loc text.Location, disc Expr, cases []*MatchCase) *MatchStmt {
	s := &MatchStmt{base: base{loc: loc}, Disc: disc, Cases: cases}
	adopt(s, disc)
	adoptAll[*MatchCase](s, cases)
	return s
}
func (*MatchStmt) stmtNode() {}
