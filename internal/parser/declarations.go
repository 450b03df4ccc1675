package parser

import (
	"github.com/cxylang/frontend/internal/arena"
	"github.com/cxylang/frontend/internal/ast"
	"github.com/cxylang/frontend/internal/intern"
	"github.com/cxylang/frontend/internal/lexer"
)

// parseDeclaration dispatches on attribute list, then visibility, then
// keyword. It is used both at module scope and, with parseMember, at
// struct/class member scope.
func (p *Parser) parseDeclaration() ast.Decl {
	start := p.current()
	attrs := p.parseAttributes()

	flags := ast.Flags(0)
	if p.match(lexer.Pub) {
		flags |= ast.FlagPublic
	} else if p.match(lexer.Extern) {
		flags |= ast.FlagExtern
	}
	// extern may be preceded or followed by pub in source; accept both orders.
	if flags.Has(ast.FlagPublic) && p.match(lexer.Extern) {
		flags |= ast.FlagExtern
	} else if flags.Has(ast.FlagExtern) && p.match(lexer.Pub) {
		flags |= ast.FlagPublic
	}

	var decl ast.Decl
	switch {
	case p.checkAny(lexer.Var, lexer.Const, lexer.Auto):
		// parseVariableDecl returns a concrete *ast.VariableDecl; a nil
		// result must not be boxed into decl, or the decl == nil check below
		// would miss it (a typed nil pointer in an interface is not itself nil).
		if v := p.parseVariableDecl(); v != nil {
			decl = v
		}
	case p.check(lexer.Func):
		decl = p.parseFuncDecl()
	case p.check(lexer.Type):
		decl = p.parseTypeDecl()
	case p.check(lexer.Enum):
		decl = p.parseEnumDecl()
	case p.checkAny(lexer.Struct, lexer.Class):
		decl = p.parseStructOrClassDecl()
	default:
		p.errorAt(p.current(), "expected a declaration, found %s", p.current().Kind)
		at := p.current().Location.Start.ByteOffset
		p.synchronize()
		// synchronize stops in place at a stray closer or just after a `;`;
		// step over the offending token so the caller's loop advances.
		if !p.atEnd() && p.current().Location.Start.ByteOffset == at {
			p.advance()
		}
		return nil
	}
	if decl == nil {
		return nil
	}

	p.validateExternDecl(start, flags, decl)
	applyDeclFlags(decl, flags)
	if len(attrs) > 0 {
		decl.(interface{ SetAttributes([]*ast.Attribute) }).SetAttributes(attrs)
	}
	return decl
}

// applyDeclFlags sets the accumulated dispatch-level flags on decl, looking
// through a GenericDecl wrapper to its inner declaration.
func applyDeclFlags(decl ast.Decl, flags ast.Flags) {
	if flags == 0 {
		return
	}
	if g, ok := decl.(*ast.GenericDecl); ok {
		applyDeclFlags(g.Decl, flags)
		return
	}
	type flagSetter interface{ AddFlags(ast.Flags) }
	if fs, ok := decl.(flagSetter); ok {
		fs.AddFlags(flags)
	}
}

func (p *Parser) validateExternDecl(start lexer.Token, flags ast.Flags, decl ast.Decl) {
	if !flags.Has(ast.FlagExtern) {
		return
	}
	inner := decl
	if g, ok := decl.(*ast.GenericDecl); ok {
		inner = g.Decl
		p.errorAt(start, "extern declarations cannot be generic")
	}
	switch d := inner.(type) {
	case *ast.FuncDecl:
		if d.ReturnType == nil {
			p.errorAt(start, "extern func requires an explicit return type")
		}
		if d.Body != nil {
			p.errorAt(start, "extern func cannot have a body")
		}
	case *ast.VariableDecl:
		if d.Type == nil {
			p.errorAt(start, "extern var/const requires an explicit type")
		}
		if d.Init != nil {
			p.errorAt(start, "extern var/const cannot have an initializer")
		}
	case *ast.StructDecl, *ast.ClassDecl, *ast.EnumDecl:
		p.errorAt(start, "extern struct/class/enum is not allowed")
	}
}

// parseAttributes parses zero or more `@name(args)` attributes preceding a
// declaration.
func (p *Parser) parseAttributes() []*ast.Attribute {
	var attrs []*ast.Attribute
	for p.check(lexer.At) {
		start := p.advance() // '@'
		nameTok, ok := p.expect(lexer.Ident, "attribute name")
		if !ok {
			p.synchronize()
			return attrs
		}
		name := ast.NewIdentifier(nameTok.Location, nameTok.Value.Ident)

		var args []ast.Expr
		if p.match(lexer.LParen) {
			args = p.parseExprList(lexer.RParen)
			p.expect(lexer.RParen, "')'")
		}
		attrs = append(attrs, ast.NewAttribute(p.loc(start), name, args))
	}
	return attrs
}

// parseVariableDecl implements
// `('var' | 'const' | 'auto') name (',' name)* (',')? (':' type)? ('=' expr)?`.
func (p *Parser) parseVariableDecl() *ast.VariableDecl {
	start := p.advance() // var | const | auto

	var names []*ast.Identifier
	for {
		nameTok, ok := p.expect(lexer.Ident, "variable name")
		if !ok {
			p.synchronize()
			return nil
		}
		names = append(names, ast.NewIdentifier(nameTok.Location, nameTok.Value.Ident))
		if !p.match(lexer.Comma) {
			break
		}
		if p.checkAny(lexer.Colon, lexer.Assign) {
			break // trailing comma before ':'/'='
		}
	}

	var typ ast.TypeExpr
	if p.match(lexer.Colon) {
		typ = p.parseType()
	}

	var init ast.Expr
	if p.match(lexer.Assign) {
		init = p.parseExpression()
	}

	if typ == nil && init == nil {
		p.errorAt(start, "variable declaration requires a type or an initializer")
	}

	decl := ast.NewVariableDecl(p.loc(start), names, typ, init)
	if start.Kind == lexer.Const {
		decl.AddFlags(ast.FlagConst)
	}
	return decl
}

// parseFuncDecl implements
// `'func' (ident | '`' operator '`') genericParams? '(' paramList ')' returnType? body?`.
func (p *Parser) parseFuncDecl() ast.Decl {
	start := p.advance() // 'func'

	var name intern.Handle
	isOperator := false
	var operator lexer.TokenKind
	switch {
	case p.check(lexer.Quote):
		p.advance()
		operator = p.parseOverloadOperator()
		isOperator = true
		if _, ok := p.expect(lexer.Quote, "closing '`'"); !ok {
			p.synchronize()
			return nil
		}
	default:
		nameTok, ok := p.expect(lexer.Ident, "function name")
		if !ok {
			p.synchronize()
			return nil
		}
		name = nameTok.Value.Ident
	}

	typeParams := p.tryParseGenericParams()

	if _, ok := p.expect(lexer.LParen, "'('"); !ok {
		p.synchronize()
		return nil
	}
	params := p.parseFuncParamList()
	if _, ok := p.expect(lexer.RParen, "')'"); !ok {
		p.synchronize()
		return nil
	}

	var returnType ast.TypeExpr
	if !p.checkAny(lexer.FatArrow, lexer.LBrace, lexer.Semicolon) && !p.atEnd() {
		returnType = p.parseType()
	}

	var body ast.Expr
	switch {
	case p.match(lexer.FatArrow):
		body = p.parseExpression()
	case p.check(lexer.LBrace):
		body = ast.NewStmtExpr(p.current().Location, p.parseBlockStmt())
	}

	fn := ast.NewFuncDecl(p.loc(start), name, params, returnType, body)
	fn.IsOperator = isOperator
	fn.Operator = operator

	if len(typeParams) > 0 {
		return ast.NewGenericDecl(p.loc(start), typeParams, fn)
	}
	return fn
}

// parseOverloadOperator consumes the operator token(s) between a pair of
// backticks in an operator-overload function name, reporting a diagnostic
// for unary-only/address-like operators (`! & ^ ~ as`) that cannot be
// overloaded. `[]`, `[]=`, and `()` are synthesized from their constituent
// bracket/paren tokens since the lexer emits them as ordinary
// single-character tokens.
func (p *Parser) parseOverloadOperator() lexer.TokenKind {
	start := p.current()
	switch start.Kind {
	case lexer.LBracket:
		p.advance()
		if _, ok := p.expect(lexer.RBracket, "']'"); !ok {
			return start.Kind
		}
		if p.match(lexer.Assign) {
			return lexer.IndexAssignOvd
		}
		return lexer.IndexOverride
	case lexer.LParen:
		p.advance()
		if _, ok := p.expect(lexer.RParen, "')'"); !ok {
			return start.Kind
		}
		return lexer.CallOverride
	default:
		opTok := p.advance()
		if !isOverloadableOperator(opTok.Kind) {
			p.errorAt(opTok, "%s is not a valid operator-overload target", opTok.Kind)
		}
		return opTok.Kind
	}
}

// isOverloadableOperator reports whether kind is one of the operator tokens
// allowed as a `func `op`(...)` overload target: arithmetic, comparison,
// bitwise binary, logical binary, increment/decrement, and their
// compound-assignment forms. `[]`, `[]=`, and `()` are handled separately
// in parseOverloadOperator since they are multi-token spellings;
// unary-only/address-like operators (`! & ^ ~ as`) are rejected.
func isOverloadableOperator(kind lexer.TokenKind) bool {
	switch kind {
	case lexer.Plus, lexer.Minus, lexer.Mult, lexer.Div, lexer.Mod,
		lexer.Equal, lexer.NotEqual, lexer.Less, lexer.LessEqual, lexer.Greater, lexer.GreaterEqual,
		lexer.BAnd, lexer.BOr, lexer.BXor, lexer.Shl, lexer.Shr,
		lexer.LAnd, lexer.LOr,
		lexer.PlusPlus, lexer.MinusMinus,
		lexer.PlusEqual, lexer.MinusEqual, lexer.MultEqual, lexer.DivEqual, lexer.ModEqual,
		lexer.BAndEqual, lexer.BOrEqual, lexer.BXorEqual, lexer.ShlEqual, lexer.ShrEqual:
		return true
	default:
		return false
	}
}

// parseFuncParamList implements
// `(param (',' param)* (',')?)?`  where  `param := ident type ('=' expr)? | '...' ident type`.
func (p *Parser) parseFuncParamList() []*ast.FuncParam {
	var params []*ast.FuncParam
	for !p.check(lexer.RParen) && !p.atEnd() {
		start := p.current()
		variadic := p.match(lexer.Elipsis)

		nameTok, ok := p.expect(lexer.Ident, "parameter name")
		if !ok {
			p.synchronize()
			return params
		}
		typ := p.parseType()

		var def ast.Expr
		if !variadic && p.match(lexer.Assign) {
			def = p.parseExpression()
		}

		params = append(params, ast.NewFuncParam(p.loc(start), nameTok.Value.Ident, typ, def, variadic))
		if !p.match(lexer.Comma) {
			break
		}
	}
	return arena.AllocSlice(p.arena, params)
}

// parseTypeDecl implements `'type' name genericParams? '=' typeExpr`.
func (p *Parser) parseTypeDecl() ast.Decl {
	start := p.advance() // 'type'
	nameTok, ok := p.expect(lexer.Ident, "type name")
	if !ok {
		p.synchronize()
		return nil
	}

	typeParams := p.tryParseGenericParams()

	if _, ok := p.expect(lexer.Assign, "'='"); !ok {
		p.synchronize()
		return nil
	}
	typ := p.parseType()

	decl := ast.NewTypeDecl(p.loc(start), nameTok.Value.Ident, typ)
	if len(typeParams) > 0 {
		return ast.NewGenericDecl(p.loc(start), typeParams, decl)
	}
	return decl
}

// parseEnumDecl implements
// `'enum' name (':' typeExpr)? '{' (option (',' option)* (',')?)? '}'`.
func (p *Parser) parseEnumDecl() ast.Decl {
	start := p.advance() // 'enum'
	nameTok, ok := p.expect(lexer.Ident, "enum name")
	if !ok {
		p.synchronize()
		return nil
	}

	var baseType ast.TypeExpr
	if p.match(lexer.Colon) {
		baseType = p.parseType()
	}

	if _, ok := p.expect(lexer.LBrace, "'{'"); !ok {
		p.synchronize()
		return nil
	}

	var options []*ast.EnumOption
	for !p.check(lexer.RBrace) && !p.atEnd() {
		optStart := p.current()
		optNameTok, ok := p.expect(lexer.Ident, "enum option name")
		if !ok {
			p.synchronize()
			break
		}
		var value ast.Expr
		if p.match(lexer.Assign) {
			value = p.parseExpression()
		}
		options = append(options, ast.NewEnumOption(p.loc(optStart), optNameTok.Value.Ident, value))
		if !p.match(lexer.Comma) {
			break
		}
	}
	p.expect(lexer.RBrace, "'}'")

	return ast.NewEnumDecl(p.loc(start), nameTok.Value.Ident, baseType, arena.AllocSlice(p.arena, options))
}

// parseStructOrClassDecl implements
// `('struct' | 'class') name genericParams? (':' typeExpr)? '{' (annotation | member)* '}'`.
// Only 'class' may carry a base type.
func (p *Parser) parseStructOrClassDecl() ast.Decl {
	start := p.advance() // 'struct' | 'class'
	isClass := start.Kind == lexer.Class

	nameTok, ok := p.expect(lexer.Ident, "type name")
	if !ok {
		p.synchronize()
		return nil
	}

	typeParams := p.tryParseGenericParams()

	var base ast.TypeExpr
	if isClass && p.match(lexer.Colon) {
		base = p.parseType()
	}

	if _, ok := p.expect(lexer.LBrace, "'{'"); !ok {
		p.synchronize()
		return nil
	}

	var members []ast.Decl
	for !p.check(lexer.RBrace) && !p.atEnd() {
		if p.check(lexer.Quote) { // annotation: '`' ident '=' expr
			if m := p.parseAnnotation(); m != nil {
				members = append(members, m)
			}
			continue
		}
		if m := p.parseMember(); m != nil {
			members = append(members, m)
		}
	}
	p.expect(lexer.RBrace, "'}'")
	members = arena.AllocSlice(p.arena, members)

	var decl ast.Decl
	if isClass {
		decl = ast.NewClassDecl(p.loc(start), nameTok.Value.Ident, base, members)
	} else {
		decl = ast.NewStructDecl(p.loc(start), nameTok.Value.Ident, members)
	}
	if len(typeParams) > 0 {
		return ast.NewGenericDecl(p.loc(start), typeParams, decl)
	}
	return decl
}

// parseAnnotation parses `'`' ident '=' expr` and records it as a field
// carrying the annotation's value, matching the annotation grammar's shape.
func (p *Parser) parseAnnotation() ast.Decl {
	start := p.advance() // '`'
	nameTok, ok := p.expect(lexer.Ident, "annotation name")
	if !ok {
		p.synchronize()
		return nil
	}
	if _, ok := p.expect(lexer.Assign, "'='"); !ok {
		p.synchronize()
		return nil
	}
	value := p.parseExpression()
	return ast.NewField(p.loc(start), nameTok.Value.Ident, nil, value)
}

// parseMember implements `member := visibility? (field | funcDecl | typeDecl)`,
// with field-visibility defaulting public unless `priv` prefixed.
func (p *Parser) parseMember() ast.Decl {
	start := p.current()
	flags := ast.FlagPublic
	if p.match(lexer.Priv) {
		flags &^= ast.FlagPublic
	} else {
		p.match(lexer.Pub)
	}

	switch {
	case p.check(lexer.Func):
		d := p.parseFuncDecl()
		applyDeclFlags(d, flags)
		return d
	case p.check(lexer.Type):
		d := p.parseTypeDecl()
		applyDeclFlags(d, flags)
		return d
	case p.check(lexer.Ident):
		nameTok := p.advance()
		typ := p.parseType()
		var init ast.Expr
		if p.match(lexer.Assign) {
			init = p.parseExpression()
		}
		p.match(lexer.Semicolon)
		f := ast.NewField(p.loc(start), nameTok.Value.Ident, typ, init)
		f.AddFlags(flags)
		return f
	default:
		p.errorAt(p.current(), "expected a struct/class member, found %s", p.current().Kind)
		p.synchronize()
		return nil
	}
}

// tryParseGenericParams parses an optional
// `'<' typeParam (',' typeParam)* (',')? '>'` generic parameter list,
// validating the variadic-last and defaults-trailing ordering rules.
func (p *Parser) tryParseGenericParams() []*ast.TypeParameter {
	if !p.check(lexer.Less) {
		return nil
	}
	p.advance()
	p.lx.EnterTemplateContext()
	defer p.lx.ExitTemplateContext()

	var params []*ast.TypeParameter
	sawVariadic := false
	sawDefault := false
	for !p.check(lexer.Greater) && !p.atEnd() {
		start := p.current()
		variadic := p.match(lexer.Elipsis)
		nameTok, ok := p.expect(lexer.Ident, "type parameter name")
		if !ok {
			p.synchronize()
			break
		}

		var constraint, def ast.TypeExpr
		if p.match(lexer.Colon) {
			constraint = p.parseType()
		}
		if p.match(lexer.Assign) {
			def = p.parseType()
		}

		if variadic {
			if sawVariadic {
				p.errorAt(start, "at most one variadic type parameter is allowed")
			}
			sawVariadic = true
		} else if sawVariadic {
			p.errorAt(start, "variadic type parameter must be last")
		}
		if def != nil {
			sawDefault = true
		} else if sawDefault {
			p.errorAt(start, "non-defaulted type parameter cannot follow a defaulted one")
		}

		params = append(params, ast.NewTypeParameter(p.loc(start), nameTok.Value.Ident, constraint, def, variadic))
		if !p.match(lexer.Comma) {
			break
		}
	}
	p.expect(lexer.Greater, "'>'")
	return arena.AllocSlice(p.arena, params)
}
