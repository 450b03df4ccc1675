package parser

import (
	"github.com/cxylang/frontend/internal/ast"
	"github.com/cxylang/frontend/internal/lexer"
)

// parseType implements the type-expression grammar:
//
//	type        := unionType
//	unionType   := postfixType ('|' postfixType)*
//	primaryType := primitive | '*'type | '&'type | '?'type | '!'type
//	            |  '['expr?']'type | '('typeList')' | 'func'(...)->type
//	            |  qualifiedPath
func (p *Parser) parseType() ast.TypeExpr {
	start := p.current()
	first := p.parsePrimaryType()
	if !p.check(lexer.BOr) {
		return first
	}
	members := []ast.TypeExpr{first}
	for p.match(lexer.BOr) {
		members = append(members, p.parsePrimaryType())
	}
	return ast.NewUnionType(p.loc(start), members)
}

func (p *Parser) parsePrimaryType() ast.TypeExpr {
	start := p.current()

	if start.Kind.IsPrimitiveType() {
		p.advance()
		return ast.NewPrimitiveType(p.loc(start), start.Kind)
	}

	switch start.Kind {
	case lexer.Mult:
		p.advance()
		return ast.NewPointerType(p.loc(start), p.parsePrimaryType())
	case lexer.BAnd:
		p.advance()
		return ast.NewReferenceType(p.loc(start), p.parsePrimaryType())
	case lexer.Question:
		p.advance()
		return ast.NewOptionalType(p.loc(start), p.parsePrimaryType())
	case lexer.LNot:
		p.advance()
		return ast.NewResultType(p.loc(start), p.parsePrimaryType())
	case lexer.LBracket:
		p.advance()
		var size ast.Expr
		if !p.check(lexer.RBracket) {
			size = p.parseExpression()
		}
		p.expect(lexer.RBracket, "']'")
		return ast.NewArrayType(p.loc(start), size, p.parsePrimaryType())
	case lexer.LParen:
		return p.parseTupleOrGroupedType(start)
	case lexer.Func:
		return p.parseFunctionType(start)
	default:
		return p.parseQualifiedPathType(start)
	}
}

// parseTupleOrGroupedType implements `'(' typeList ')'`: a single element
// with no trailing comma is a grouped type (returned directly, unwrapped);
// anything else, including `()`, is a TupleType.
func (p *Parser) parseTupleOrGroupedType(start lexer.Token) ast.TypeExpr {
	p.advance() // '('
	var elems []ast.TypeExpr
	trailingComma := false
	for !p.check(lexer.RParen) && !p.atEnd() {
		elems = append(elems, p.parseType())
		if p.match(lexer.Comma) {
			trailingComma = true
			continue
		}
		trailingComma = false
		break
	}
	p.expect(lexer.RParen, "')'")

	if len(elems) == 1 && !trailingComma {
		return elems[0]
	}
	return ast.NewTupleType(p.loc(start), elems)
}

// parseFunctionType implements `'func' '(' typeList ')' '->' type`.
func (p *Parser) parseFunctionType(start lexer.Token) ast.TypeExpr {
	p.advance() // 'func'
	p.expect(lexer.LParen, "'('")
	var params []ast.TypeExpr
	for !p.check(lexer.RParen) && !p.atEnd() {
		params = append(params, p.parseType())
		if !p.match(lexer.Comma) {
			break
		}
	}
	p.expect(lexer.RParen, "')'")
	p.expect(lexer.ThinArrow, "'->'")
	ret := p.parseType()
	return ast.NewFunctionType(p.loc(start), params, ret)
}

// parseQualifiedPathType parses a (possibly `::`-rooted) dotted path used as
// a user-defined or generic type, e.g. `foo.Bar<i32, T>`.
func (p *Parser) parseQualifiedPathType(start lexer.Token) ast.TypeExpr {
	rooted := p.checkDoubleColon()
	if rooted {
		p.advance()
		p.advance()
	}

	var segments []ast.PathSegment
	for {
		nameTok, ok := p.expect(lexer.Ident, "type name")
		if !ok {
			p.synchronize()
			return ast.NewQualifiedPath(p.loc(start), rooted, segments)
		}
		seg := ast.PathSegment{Name: nameTok.Value.Ident}
		if p.check(lexer.Less) {
			seg.TypeArgs = p.parseTypeArgList()
		}
		segments = append(segments, seg)
		if !p.match(lexer.Dot) {
			break
		}
	}
	return ast.NewQualifiedPath(p.loc(start), rooted, segments)
}

// checkDoubleColon reports whether the current and next tokens are both
// Colon, the lexer's spelling of the `::` qualified-path root prefix (it has
// no single merged token for `::`).
func (p *Parser) checkDoubleColon() bool {
	return p.check(lexer.Colon) && p.lookahead1().Kind == lexer.Colon
}

// parseTypeArgList parses `'<' type (',' type)* (',')? '>'`, driving the
// lexer's template-context `>>`-splitting hooks so a closing `>>` at the end
// of nested generic arguments splits into two `>` tokens.
func (p *Parser) parseTypeArgList() []ast.TypeExpr {
	p.advance() // '<'
	p.lx.EnterTemplateContext()
	defer p.lx.ExitTemplateContext()

	var args []ast.TypeExpr
	for !p.check(lexer.Greater) && !p.atEnd() {
		args = append(args, p.parseType())
		if !p.match(lexer.Comma) {
			break
		}
	}
	p.expect(lexer.Greater, "'>'")
	return args
}
