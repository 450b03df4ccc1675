// Package ast defines the tagged-variant node model produced by the parser:
// one concrete Go struct per node kind, each embedding base for its shared
// location, flag, attribute, and parent bookkeeping. Each NewXxx constructor
// returns an ordinary Go heap allocation; the parser backs the slices it
// hands to those constructors with an arena.Arena, and interned names live
// in the same arena.
package ast

import "github.com/cxylang/frontend/internal/text"

// Flags holds the bit flags a declaration or field may carry.
type Flags uint32

const (
	FlagPublic Flags = 1 << iota
	FlagConst
	FlagExtern
	FlagVariadic
	FlagDefault
)

// Has reports whether all bits of other are set in f.
func (f Flags) Has(other Flags) bool { return f&other == other }

// Node is implemented by every concrete AST node type. Parent is a
// non-owning back-reference set by whichever constructor adopts the node as
// a child; it exists for pretty-printing and diagnostic context only, never
// for ownership traversal.
type Node interface {
	Location() text.Location
	Flags() Flags
	Attributes() []*Attribute
	Parent() Node

	setParent(Node)
}

// base is embedded by every concrete node type and implements the bulk of
// the Node interface. Concrete types only need to add their own payload
// fields and, where spec required it, a dedicated accessor.
type base struct {
	loc        text.Location
	flags      Flags
	attributes []*Attribute
	parent     Node
}

func (b *base) Location() text.Location   { return b.loc }
func (b *base) Flags() Flags              { return b.flags }
func (b *base) Attributes() []*Attribute  { return b.attributes }
func (b *base) Parent() Node              { return b.parent }
func (b *base) setParent(p Node)          { b.parent = p }
func (b *base) SetFlags(f Flags)          { b.flags = f }
func (b *base) AddFlags(f Flags)          { b.flags |= f }
func (b *base) SetAttributes(a []*Attribute) {
	b.attributes = a
	for _, attr := range a {
		attr.setParent(nil)
	}
}

// adopt sets n's parent to owner. Callers are responsible for skipping nil
// optional children; adopt itself does not special-case them because a
// typed nil pointer boxed in the Node interface is not itself nil.
func adopt(owner Node, n Node) {
	n.setParent(owner)
}

// adoptAll adopts each element of ns under owner.
func adoptAll[T Node](owner Node, ns []T) {
	for _, n := range ns {
		adopt(owner, n)
	}
}

// Attribute represents one `@name(args)` annotation hung off a declaration.
type Attribute struct {
	base
	Name *Identifier
	Args []Expr
}

func NewAttribute(loc text.Location, name *Identifier, args []Expr) *Attribute {
	a := &Attribute{base: base{loc: loc}, Name: name, Args: args}
	adopt(a, name)
	adoptAll[Expr](a, args)
	return a
}
