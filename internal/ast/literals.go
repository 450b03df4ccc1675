package ast

import (
	"github.com/cxylang/frontend/internal/intern"
	"github.com/cxylang/frontend/internal/lexer"
	"github.com/cxylang/frontend/internal/text"
)

// IntLiteral is an integer literal, wide enough to hold the full 2^128-1
// range the lexer accepts; Lo/Hi mirror lexer.Value's split.
type IntLiteral struct {
	base
	Lo, Hi uint64
	Type   lexer.IntegerType
}

func NewIntLiteral(loc text.Location, lo, hi uint64, typ lexer.IntegerType) *IntLiteral {
	return &IntLiteral{base: base{loc: loc}, Lo: lo, Hi: hi, Type: typ}
}
func (*IntLiteral) exprNode() {}

// FloatLiteral is a floating-point literal.
type FloatLiteral struct {
	base
	Value float64
	Type  lexer.FloatType
}

func NewFloatLiteral(loc text.Location, value float64, typ lexer.FloatType) *FloatLiteral {
	return &FloatLiteral{base: base{loc: loc}, Value: value, Type: typ}
}
func (*FloatLiteral) exprNode() {}

// CharLiteral is a single Unicode scalar value.
type CharLiteral struct {
	base
	Value rune
}

func NewCharLiteral(loc text.Location, value rune) *CharLiteral {
	return &CharLiteral{base: base{loc: loc}, Value: value}
}
func (*CharLiteral) exprNode() {}

// StringLiteral is a non-interpolated string, or one fragment of an
// interpolated one; its interned Value holds the already-escape-decoded
// bytes.
type StringLiteral struct {
	base
	Value intern.Handle
}

func NewStringLiteral(loc text.Location, value intern.Handle) *StringLiteral {
	return &StringLiteral{base: base{loc: loc}, Value: value}
}
func (*StringLiteral) exprNode() {}

// BoolLiteral is the `true`/`false` literal.
type BoolLiteral struct {
	base
	Value bool
}

func NewBoolLiteral(loc text.Location, value bool) *BoolLiteral {
	return &BoolLiteral{base: base{loc: loc}, Value: value}
}
func (*BoolLiteral) exprNode() {}

// NullLiteral is the `null` literal.
type NullLiteral struct{ base }

func NewNullLiteral(loc text.Location) *NullLiteral {
	return &NullLiteral{base: base{loc: loc}}
}
func (*NullLiteral) exprNode() {}
