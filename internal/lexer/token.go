// Package lexer tokenizes cxy source into a token stream, handling include
// buffers, numeric and string literal grammars, and string interpolation.
package lexer

import (
	"fmt"

	"github.com/cxylang/frontend/internal/intern"
	"github.com/cxylang/frontend/internal/text"
)

// TokenKind identifies the syntactic category of a Token.
type TokenKind uint16

const (
	// Symbols (punctuation and operators).
	LParen TokenKind = iota
	RParen
	LBracket
	RBracket
	LBrace
	RBrace
	At
	Hash
	LNot
	BNot
	Dot
	DotDot
	Elipsis
	Question
	Comma
	Colon
	Semicolon
	Assign
	Equal
	NotEqual
	FatArrow
	ThinArrow
	Less
	LessEqual
	Shl
	ShlEqual
	Greater
	GreaterEqual
	Shr
	ShrEqual
	Plus
	Minus
	Mult
	Div
	Mod
	BAnd
	BXor
	BOr
	LAnd
	LOr
	PlusPlus
	MinusMinus
	PlusEqual
	MinusEqual
	MultEqual
	DivEqual
	ModEqual
	BAndEqual
	BAndDot
	BXorEqual
	BOrEqual
	Quote
	CallOverride
	IndexOverride
	IndexAssignOvd
	AstMacroAccess
	Define
	BangColon

	// Keywords.
	Virtual
	Auto
	True
	False
	Null
	If
	Else
	Match
	For
	In
	Is
	While
	Break
	Return
	Yield
	Continue
	Func
	Var
	Const
	Type
	Native
	Extern
	Exception
	Struct
	Enum
	Pub
	Priv
	Opaque
	Catch
	Raise
	Async
	Launch
	Ptrof
	Await
	Delete
	Discard
	Switch
	Case
	Default
	Defer
	Macro
	Void
	String
	Range
	Module
	Import
	Include
	CSources
	As
	Asm
	From
	Unsafe
	Interface
	This
	ThisClass
	Super
	Class
	Defined
	Test
	Plugin
	CBuild

	// Primitive type keywords.
	I8
	I16
	I32
	I64
	I128
	U8
	U16
	U32
	U64
	U128
	F32
	F64
	Bool
	Char

	// Special tokens.
	Ident
	IntLiteral
	FloatLiteral
	CharLiteral
	StringLiteral
	LString
	RString
	EoF
	Error

	firstSymbol  = LParen
	lastSymbol   = BangColon
	firstKeyword = Virtual
	lastKeyword  = Char
	firstSpecial = Ident
	lastSpecial  = Error
)

var tokenStrings = map[TokenKind]string{
	LParen: "(", RParen: ")", LBracket: "[", RBracket: "]",
	LBrace: "{", RBrace: "}", At: "@", Hash: "#", LNot: "!", BNot: "~",
	Dot: ".", DotDot: "..", Elipsis: "...", Question: "?", Comma: ",",
	Colon: ":", Semicolon: ";", Assign: "=", Equal: "==", NotEqual: "!=",
	FatArrow: "=>", ThinArrow: "->", Less: "<", LessEqual: "<=", Shl: "<<",
	ShlEqual: "<<=", Greater: ">", GreaterEqual: ">=", Shr: ">>", ShrEqual: ">>=",
	Plus: "+", Minus: "-", Mult: "*", Div: "/", Mod: "%", BAnd: "&",
	BXor: "^", BOr: "|", LAnd: "&&", LOr: "||", PlusPlus: "++", MinusMinus: "--",
	PlusEqual: "+=", MinusEqual: "-=", MultEqual: "*=", DivEqual: "/=",
	ModEqual: "%=", BAndEqual: "&=", BAndDot: "&.", BXorEqual: "^=",
	BOrEqual: "|=", Quote: "`", CallOverride: "()", IndexOverride: "[]",
	IndexAssignOvd: "[]=", AstMacroAccess: "#.", Define: "##", BangColon: "!:",

	Virtual: "virtual", Auto: "auto", True: "true", False: "false", Null: "null",
	If: "if", Else: "else", Match: "match", For: "for", In: "in", Is: "is",
	While: "while", Break: "break", Return: "return", Yield: "yield",
	Continue: "continue", Func: "func", Var: "var", Const: "const", Type: "type",
	Native: "native", Extern: "extern", Exception: "exception", Struct: "struct",
	Enum: "enum", Pub: "pub", Priv: "priv", Opaque: "opaque", Catch: "catch",
	Raise: "raise", Async: "async", Launch: "launch", Ptrof: "ptrof",
	Await: "await", Delete: "delete", Discard: "discard", Switch: "switch",
	Case: "case", Default: "default", Defer: "defer", Macro: "macro",
	Void: "void", String: "string", Range: "range", Module: "module",
	Import: "import", Include: "include", CSources: "cSources", As: "as",
	Asm: "asm", From: "from", Unsafe: "unsafe", Interface: "interface",
	This: "this", ThisClass: "This", Super: "super", Class: "class",
	Defined: "defined", Test: "test", Plugin: "plugin", CBuild: "__cc",

	I8: "i8", I16: "i16", I32: "i32", I64: "i64", I128: "i128",
	U8: "u8", U16: "u16", U32: "u32", U64: "u64", U128: "u128",
	F32: "f32", F64: "f64", Bool: "bool", Char: "char",

	Ident: "identifier", IntLiteral: "integer literal",
	FloatLiteral: "floating-point literal", CharLiteral: "character literal",
	StringLiteral: "string literal", LString: "`(", RString: ")`",
	EoF: "end of file", Error: "invalid token",
}

// keywordKinds maps keyword spelling to TokenKind, restricted to the
// keyword range of tokenStrings so symbol spellings never leak in.
var keywordKinds = func() map[string]TokenKind {
	m := make(map[string]TokenKind, lastKeyword-firstKeyword+1)
	for k := firstKeyword; k <= lastKeyword; k++ {
		m[tokenStrings[k]] = k
	}
	return m
}()

func (k TokenKind) String() string {
	if s, ok := tokenStrings[k]; ok {
		return s
	}
	return fmt.Sprintf("TokenKind(%d)", uint16(k))
}

// IsSymbol reports whether k is a punctuation/operator token.
func (k TokenKind) IsSymbol() bool { return k >= firstSymbol && k <= lastSymbol }

// IsKeyword reports whether k is a reserved word, including primitive type keywords.
func (k TokenKind) IsKeyword() bool { return k >= firstKeyword && k <= lastKeyword }

// IsSpecial reports whether k is an identifier, literal, or structural marker.
func (k TokenKind) IsSpecial() bool { return k >= firstSpecial && k <= lastSpecial }

// IsLiteral reports whether k represents a literal value token.
func (k TokenKind) IsLiteral() bool {
	switch k {
	case IntLiteral, FloatLiteral, CharLiteral, StringLiteral, True, False, Null:
		return true
	default:
		return false
	}
}

// IsPrimitiveType reports whether k is a built-in scalar type keyword.
func (k TokenKind) IsPrimitiveType() bool {
	switch k {
	case I8, I16, I32, I64, I128, U8, U16, U32, U64, U128, F32, F64, Bool, Char, Void, String:
		return true
	default:
		return false
	}
}

// LookupKeyword returns the TokenKind for a keyword spelling, reporting
// ok=false if s is not a reserved word (the caller should then emit Ident).
func LookupKeyword(s string) (TokenKind, bool) {
	k, ok := keywordKinds[s]
	return k, ok
}

// IntegerType classifies an integer literal's suffix.
type IntegerType uint8

const (
	IntAuto IntegerType = iota
	IntI8
	IntI16
	IntI32
	IntI64
	IntU8
	IntU16
	IntU32
	IntU64
	IntI128
	IntU128
)

// FloatType classifies a floating-point literal's suffix.
type FloatType uint8

const (
	FloatAuto FloatType = iota
	FloatF32
	FloatF64
)

// Value carries the decoded payload for identifier and literal tokens.
// Which field is meaningful is selected by the owning Token's Kind.
type Value struct {
	Ident    intern.Handle
	Str      intern.Handle
	IntVal   uint64
	IntHi    uint64 // high 64 bits, for literals that overflow 64 bits up to 2^128-1
	IntType  IntegerType
	FloatVal float64
	FloatTyp FloatType
	CharVal  rune
}

// Token is a single lexical unit with its source location and, for
// identifiers and literals, a decoded Value.
type Token struct {
	Kind     TokenKind
	Location text.Location
	Value    Value
	HasValue bool
}

// Text returns the canonical spelling of a fixed-text token (symbol or
// keyword). For identifiers and literals, callers should read Value instead.
func (t Token) Text() string {
	return t.Kind.String()
}
