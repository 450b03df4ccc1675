package ast

import (
	"github.com/cxylang/frontend/internal/intern"
	"github.com/cxylang/frontend/internal/lexer"
	"github.com/cxylang/frontend/internal/text"
)

// VariableDecl is `(var|const|auto) name(, name)* (: type)? (= init)?`.
// FlagConst marks `const`; at least one of Type or Init is non-nil.
type VariableDecl struct {
	base
	Names []*Identifier
	Type  TypeExpr
	Init  Expr
}

func NewVariableDecl(loc text.Location, names []*Identifier, typ TypeExpr, init Expr) *VariableDecl {
	d := &VariableDecl{base: base{loc: loc}, Names: names, Type: typ, Init: init}
	adoptAll[*Identifier](d, names)
	if typ != nil {
		adopt(d, typ)
	}
	if init != nil {
		adopt(d, init)
	}
	return d
}
func (*VariableDecl) declNode() {}
func (*VariableDecl) stmtNode() {}

// FuncParam is one function parameter: `name type (= default)?`, or, when
// Variadic is set, `... name type`.
type FuncParam struct {
	base
	Name     intern.Handle
	Type     TypeExpr
	Default  Expr
	Variadic bool
}

func NewFuncParam(loc text.Location, name intern.Handle, typ TypeExpr, def Expr, variadic bool) *FuncParam {
	p := &FuncParam{base: base{loc: loc}, Name: name, Type: typ, Default: def, Variadic: variadic}
	adopt(p, typ)
	if def != nil {
		adopt(p, def)
	}
	return p
}

// FuncDecl is `func (name|`operator`) genericParams? (params) returnType? body?`.
// IsOperator distinguishes an operator-overload declaration, whose spelling
// is Operator rather than Name.
type FuncDecl struct {
	base
	Name       intern.Handle
	IsOperator bool
	Operator   lexer.TokenKind
	Params     []*FuncParam
	ReturnType TypeExpr // nil when omitted (extern requires it; see parser)
	Body       Expr     // either a plain expression (`=> expr`) or a *StmtExpr wrapping a block; nil for bodyless extern decls
}

func NewFuncDecl(loc text.Location, name intern.Handle, params []*FuncParam, returnType TypeExpr, body Expr) *FuncDecl {
	d := &FuncDecl{base: base{loc: loc}, Name: name, Params: params, ReturnType: returnType, Body: body}
	adoptAll[*FuncParam](d, params)
	if returnType != nil {
		adopt(d, returnType)
	}
	if body != nil {
		adopt(d, body)
	}
	return d
}
func (*FuncDecl) declNode() {}
func (*FuncDecl) stmtNode() {}

// TypeDecl is `type name genericParams? = typeExpr`.
type TypeDecl struct {
	base
	Name intern.Handle
	Type TypeExpr
}

func NewTypeDecl(loc text.Location, name intern.Handle, typ TypeExpr) *TypeDecl {
	d := &TypeDecl{base: base{loc: loc}, Name: name, Type: typ}
	adopt(d, typ)
	return d
}
func (*TypeDecl) declNode() {}
func (*TypeDecl) stmtNode() {}

// EnumOption is one `name (= value)?` member of an EnumDecl.
type EnumOption struct {
	base
	Name  intern.Handle
	Value Expr
}

func NewEnumOption(loc text.Location, name intern.Handle, value Expr) *EnumOption {
	o := &EnumOption{base: base{loc: loc}, Name: name, Value: value}
	if value != nil {
		adopt(o, value)
	}
	return o
}

// EnumDecl is `enum name (: baseType)? { option* }`.
type EnumDecl struct {
	base
	Name     intern.Handle
	BaseType TypeExpr
	Options  []*EnumOption
}

func NewEnumDecl(loc text.Location, name intern.Handle, baseType TypeExpr, options []*EnumOption) *EnumDecl {
	d := &EnumDecl{base: base{loc: loc}, Name: name, BaseType: baseType, Options: options}
	if baseType != nil {
		adopt(d, baseType)
	}
	adoptAll[*EnumOption](d, options)
	return d
}
func (*EnumDecl) declNode() {}
func (*EnumDecl) stmtNode() {}

// Field is one `name type (= init)?` struct/class member. FlagPublic is set
// unless the member was prefixed `priv`.
type Field struct {
	base
	Name intern.Handle
	Type TypeExpr
	Init Expr
}

func NewField(loc text.Location, name intern.Handle, typ TypeExpr, init Expr) *Field {
	f := &Field{base: base{loc: loc}, Name: name, Type: typ, Init: init}
	if typ != nil {
		adopt(f, typ)
	}
	if init != nil {
		adopt(f, init)
	}
	return f
}
func (*Field) declNode() {}
func (*Field) stmtNode() {}

// StructDecl is `struct name genericParams? { (annotation|member)* }`.
type StructDecl struct {
	base
	Name    intern.Handle
	Members []Decl
}

func NewStructDecl(loc text.Location, name intern.Handle, members []Decl) *StructDecl {
	d := &StructDecl{base: base{loc: loc}, Name: name, Members: members}
	adoptAll[Decl](d, members)
	return d
}
func (*StructDecl) declNode() {}
func (*StructDecl) stmtNode() {}

// ClassDecl is `class name genericParams? (: base)? { (annotation|member)* }`.
type ClassDecl struct {
	base
	Name    intern.Handle
	Base    TypeExpr
	Members []Decl
}

func NewClassDecl(loc text.Location, name intern.Handle, base_ TypeExpr, members []Decl) *ClassDecl {
	d := &ClassDecl{base: base{loc: loc}, Name: name, Base: base_, Members: members}
	if base_ != nil {
		adopt(d, base_)
	}
	adoptAll[Decl](d, members)
	return d
}
func (*ClassDecl) declNode() {}
func (*ClassDecl) stmtNode() {}

// ImportKind enumerates the four import forms of the external import
// grammar.
type ImportKind uint8

const (
	WholeModule ImportKind = iota
	ModuleAlias
	MultipleImports
	ConditionalTest
)

func (k ImportKind) String() string {
	switch k {
	case WholeModule:
		return "WholeModule"
	case ModuleAlias:
		return "ModuleAlias"
	case MultipleImports:
		return "MultipleImports"
	case ConditionalTest:
		return "ConditionalTest"
	default:
		return "ImportKind(?)"
	}
}

// ImportItem is one `orig (as alias)?` entry of a `{ ... }` import list.
type ImportItem struct {
	Orig  intern.Handle
	Alias intern.Handle // zero Handle when no alias
}

// ImportDecl is an `import ...` declaration, normalizing the four surface
// forms (plain, aliased, entity-list, and conditional `import test`) down to
// a single Kind/Path/Alias/Entities shape.
type ImportDecl struct {
	base
	Kind     ImportKind
	Path     intern.Handle
	Alias    intern.Handle // zero Handle when absent
	Entities []ImportItem
}

func NewImportDecl(loc text.Location, kind ImportKind, path, alias intern.Handle, entities []ImportItem) *ImportDecl {
	return &ImportDecl{base: base{loc: loc}, Kind: kind, Path: path, Alias: alias, Entities: entities}
}
func (*ImportDecl) declNode() {}
func (*ImportDecl) stmtNode() {}

// TypeParameter is one `...? name (: constraint)? (= default)?` entry of a
// generic parameter list.
type TypeParameter struct {
	base
	Name       intern.Handle
	Constraint TypeExpr
	Default    TypeExpr
	Variadic   bool
}

func NewTypeParameter(loc text.Location, name intern.Handle, constraint, def TypeExpr, variadic bool) *TypeParameter {
	p := &TypeParameter{base: base{loc: loc}, Name: name, Constraint: constraint, Default: def, Variadic: variadic}
	if constraint != nil {
		adopt(p, constraint)
	}
	if def != nil {
		adopt(p, def)
	}
	return p
}

// GenericDecl wraps a FuncDecl/TypeDecl/StructDecl/ClassDecl with its
// generic parameter list.
type GenericDecl struct {
	base
	TypeParams []*TypeParameter
	Decl       Decl
}

func NewGenericDecl(loc text.Location, typeParams []*TypeParameter, decl Decl) *GenericDecl {
	d := &GenericDecl{base: base{loc: loc}, TypeParams: typeParams, Decl: decl}
	adoptAll[*TypeParameter](d, typeParams)
	adopt(d, decl)
	return d
}
func (*GenericDecl) declNode() {}
func (*GenericDecl) stmtNode() {}

// ModuleDecl is the root node of a parsed translation unit.
type ModuleDecl struct {
	base
	Name        intern.Handle // zero Handle for the implicit main module
	HasName     bool
	TopLevel    []*ImportDecl
	MainContent []Decl
}

func NewModuleDecl(loc text.Location, name intern.Handle, hasName bool, topLevel []*ImportDecl, mainContent []Decl) *ModuleDecl {
	m := &ModuleDecl{base: base{loc: loc}, Name: name, HasName: hasName, TopLevel: topLevel, MainContent: mainContent}
	adoptAll[*ImportDecl](m, topLevel)
	adoptAll[Decl](m, mainContent)
	return m
}
func (*ModuleDecl) declNode() {}
