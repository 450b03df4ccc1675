package parser

import (
	"github.com/cxylang/frontend/internal/arena"
	"github.com/cxylang/frontend/internal/ast"
	"github.com/cxylang/frontend/internal/lexer"
)

// parseExpression is the grammar's entry point: assignment, the lowest
// precedence level.
func (p *Parser) parseExpression() ast.Expr {
	return p.parseAssignment()
}

var assignOps = []lexer.TokenKind{
	lexer.Assign, lexer.PlusEqual, lexer.MinusEqual, lexer.MultEqual, lexer.DivEqual,
	lexer.ModEqual, lexer.BAndEqual, lexer.BXorEqual, lexer.BOrEqual, lexer.ShlEqual, lexer.ShrEqual,
}

// parseAssignment implements `conditional (assignOp assignment)?`, right-associative.
func (p *Parser) parseAssignment() ast.Expr {
	start := p.current()
	target := p.parseConditional()
	if !p.checkAny(assignOps...) {
		return target
	}
	op := p.advance()
	value := p.parseAssignment()
	return ast.NewAssignmentExpr(p.loc(start), op.Kind, target, value)
}

// parseConditional implements `logicalOr ('?' expression ':' conditional)?`.
func (p *Parser) parseConditional() ast.Expr {
	start := p.current()
	cond := p.parseLogicalOr()
	if !p.match(lexer.Question) {
		return cond
	}
	then := p.parseExpression()
	p.expect(lexer.Colon, "':'")
	els := p.parseConditional()
	return ast.NewTernaryExpr(p.loc(start), cond, then, els)
}

func (p *Parser) parseLogicalOr() ast.Expr {
	return p.parseLeftAssocBinaryAny(p.parseLogicalAnd, lexer.LOr)
}
func (p *Parser) parseLogicalAnd() ast.Expr {
	return p.parseLeftAssocBinaryAny(p.parseBitOr, lexer.LAnd)
}
func (p *Parser) parseBitOr() ast.Expr {
	return p.parseLeftAssocBinaryAny(p.parseBitXor, lexer.BOr)
}
func (p *Parser) parseBitXor() ast.Expr {
	return p.parseLeftAssocBinaryAny(p.parseBitAnd, lexer.BXor)
}
func (p *Parser) parseBitAnd() ast.Expr {
	return p.parseLeftAssocBinaryAny(p.parseEquality, lexer.BAnd)
}
func (p *Parser) parseEquality() ast.Expr {
	return p.parseLeftAssocBinaryAny(p.parseRelational, lexer.Equal, lexer.NotEqual)
}
func (p *Parser) parseRelational() ast.Expr {
	return p.parseLeftAssocBinaryAny(p.parseShift, lexer.Less, lexer.LessEqual, lexer.Greater, lexer.GreaterEqual)
}
func (p *Parser) parseShift() ast.Expr {
	return p.parseLeftAssocBinaryAny(p.parseAdditive, lexer.Shl, lexer.Shr)
}
func (p *Parser) parseAdditive() ast.Expr {
	return p.parseLeftAssocBinaryAny(p.parseMultiplicative, lexer.Plus, lexer.Minus)
}
func (p *Parser) parseMultiplicative() ast.Expr {
	return p.parseLeftAssocBinaryAny(p.parseCast, lexer.Mult, lexer.Div, lexer.Mod)
}

// parseLeftAssocBinaryAny folds a left-associative binary level, accepting
// any of ops, over a sub-parser one level up the precedence ladder.
func (p *Parser) parseLeftAssocBinaryAny(sub func() ast.Expr, ops ...lexer.TokenKind) ast.Expr {
	start := p.current()
	lhs := sub()
	for p.checkAny(ops...) {
		op := p.advance()
		rhs := sub()
		lhs = ast.NewBinaryExpr(p.loc(start), op.Kind, lhs, rhs)
	}
	return lhs
}

// parseCast implements `unary (('as' | '!:') typeExpr)*`, left-associative.
func (p *Parser) parseCast() ast.Expr {
	start := p.current()
	operand := p.parseUnary()
	for p.checkAny(lexer.As, lexer.BangColon) {
		retype := p.current().Kind == lexer.BangColon
		p.advance()
		typ := p.parseType()
		operand = ast.NewCastExpr(p.loc(start), operand, typ, retype)
	}
	return operand
}

var prefixOps = []lexer.TokenKind{
	lexer.PlusPlus, lexer.MinusMinus, lexer.Plus, lexer.Minus, lexer.LNot, lexer.BNot, lexer.BAnd, lexer.BXor,
}

// parseUnary implements `prefixOp unary | postfix`. A prefix `&&` is
// special-cased: the lexer has already fused it into one LAnd token, but
// spec treats it as two nested prefix `&` operators, not logical-AND.
func (p *Parser) parseUnary() ast.Expr {
	start := p.current()
	if p.check(lexer.LAnd) {
		p.advance()
		inner := p.parseUnary()
		addr := ast.NewUnaryExpr(p.loc(start), lexer.BAnd, true, inner)
		return ast.NewUnaryExpr(p.loc(start), lexer.BAnd, true, addr)
	}
	if p.checkAny(prefixOps...) {
		op := p.advance()
		operand := p.parseUnary()
		return ast.NewUnaryExpr(p.loc(start), op.Kind, true, operand)
	}
	return p.parsePostfix()
}

// parsePostfix implements `primary postfixSuffix*`.
func (p *Parser) parsePostfix() ast.Expr {
	start := p.current()
	expr := p.parsePrimary()
	if expr == nil {
		return nil
	}

	for {
		switch {
		case p.checkAny(lexer.PlusPlus, lexer.MinusMinus):
			op := p.advance()
			expr = ast.NewUnaryExpr(p.loc(start), op.Kind, false, expr)
		case p.check(lexer.LBracket):
			p.advance()
			index := p.parseExpression()
			p.expect(lexer.RBracket, "']'")
			expr = ast.NewIndexExpr(p.loc(start), expr, index)
		case p.check(lexer.Dot):
			p.advance()
			nameTok, ok := p.expect(lexer.Ident, "member name")
			if !ok {
				return expr
			}
			expr = ast.NewMemberExpr(p.loc(start), expr, nameTok.Value.Ident, false)
		case p.check(lexer.BAndDot):
			p.advance()
			nameTok, ok := p.expect(lexer.Ident, "member name")
			if !ok {
				return expr
			}
			expr = ast.NewMemberExpr(p.loc(start), expr, nameTok.Value.Ident, true)
		case p.check(lexer.LParen):
			p.advance()
			args := p.parseExprList(lexer.RParen)
			p.expect(lexer.RParen, "')'")
			expr = ast.NewCallExpr(p.loc(start), expr, args)
		default:
			return expr
		}
	}
}

// parsePrimary implements
// `literal | identifier | '(' expr ')' | tupleOrGroup | arrayLiteral | qualifiedPath`,
// plus StructExpr, ClosureExpr, and interpolated StringExpr.
func (p *Parser) parsePrimary() ast.Expr {
	start := p.current()

	switch start.Kind {
	case lexer.IntLiteral:
		p.advance()
		return ast.NewIntLiteral(p.loc(start), start.Value.IntVal, start.Value.IntHi, start.Value.IntType)
	case lexer.FloatLiteral:
		p.advance()
		return ast.NewFloatLiteral(p.loc(start), start.Value.FloatVal, start.Value.FloatTyp)
	case lexer.CharLiteral:
		p.advance()
		return ast.NewCharLiteral(p.loc(start), start.Value.CharVal)
	case lexer.StringLiteral:
		p.advance()
		return ast.NewStringLiteral(p.loc(start), start.Value.Str)
	case lexer.LString:
		return p.parseStringExpr()
	case lexer.True:
		p.advance()
		return ast.NewBoolLiteral(p.loc(start), true)
	case lexer.False:
		p.advance()
		return ast.NewBoolLiteral(p.loc(start), false)
	case lexer.Null:
		p.advance()
		return ast.NewNullLiteral(p.loc(start))
	case lexer.Elipsis:
		p.advance()
		return ast.NewSpreadExpr(p.loc(start), p.parseExpression())
	case lexer.LBracket:
		return p.parseArrayExpr(start)
	case lexer.LParen:
		return p.parseTupleOrGroupExpr(start)
	case lexer.Func:
		return p.parseClosureExpr(start)
	case lexer.Colon:
		if p.checkDoubleColon() {
			return p.parseQualifiedPathExpr(start)
		}
		p.errorAt(start, "expected an expression, found %s", start.Kind)
		p.synchronize()
		return nil
	case lexer.Ident:
		p.advance()
		ident := ast.NewIdentifier(start.Location, start.Value.Ident)
		if p.check(lexer.LBrace) && p.lookaheadLooksLikeStructLiteral() {
			return p.parseStructExprFrom(start, ast.NewQualifiedPath(p.loc(start), false, []ast.PathSegment{{Name: start.Value.Ident}}))
		}
		return ident
	default:
		p.errorAt(start, "expected an expression, found %s", start.Kind)
		p.synchronize()
		return nil
	}
}

// parseQualifiedPathExpr parses a `::`-rooted path used as a primary
// expression. Type arguments are accepted per segment since rootedness
// removes the `a < b` ambiguity the bare-identifier case must avoid.
func (p *Parser) parseQualifiedPathExpr(start lexer.Token) ast.Expr {
	p.advance() // first ':'
	p.advance() // second ':'

	var segments []ast.PathSegment
	for {
		nameTok, ok := p.expect(lexer.Ident, "path segment")
		if !ok {
			p.synchronize()
			return ast.NewQualifiedPath(p.loc(start), true, segments)
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
	path := ast.NewQualifiedPath(p.loc(start), true, segments)
	if p.check(lexer.LBrace) && p.lookaheadLooksLikeStructLiteral() {
		return p.parseStructExprFrom(start, path)
	}
	return path
}

// lookaheadLooksLikeStructLiteral heuristically distinguishes a struct
// literal `Type{ name: value }` from a following block statement by
// requiring the brace to be immediately followed by '}' (empty struct) or
// an identifier then ':'.
func (p *Parser) lookaheadLooksLikeStructLiteral() bool {
	if p.lookahead1().Kind == lexer.RBrace {
		return true
	}
	return p.lookahead1().Kind == lexer.Ident && p.lookahead2().Kind == lexer.Colon
}

func (p *Parser) parseStructExprFrom(start lexer.Token, typ ast.TypeExpr) ast.Expr {
	p.advance() // '{'
	var fields []ast.FieldInit
	for !p.check(lexer.RBrace) && !p.atEnd() {
		nameTok, ok := p.expect(lexer.Ident, "field name")
		if !ok {
			p.synchronize()
			break
		}
		p.expect(lexer.Colon, "':'")
		value := p.parseExpression()
		fields = append(fields, ast.FieldInit{Name: nameTok.Value.Ident, Value: value})
		if !p.match(lexer.Comma) {
			break
		}
	}
	p.expect(lexer.RBrace, "'}'")
	return ast.NewStructExpr(p.loc(start), typ, fields)
}

func (p *Parser) parseArrayExpr(start lexer.Token) ast.Expr {
	p.advance() // '['
	elems := p.parseExprList(lexer.RBracket)
	p.expect(lexer.RBracket, "']'")
	return ast.NewArrayExpr(p.loc(start), elems)
}

// parseTupleOrGroupExpr implements `'(' expr ')'` grouping and tuple
// literals: a single element with no trailing comma is a GroupExpr;
// anything else, including `()`, is a TupleExpr.
func (p *Parser) parseTupleOrGroupExpr(start lexer.Token) ast.Expr {
	p.advance() // '('
	var elems []ast.Expr
	trailingComma := false
	for !p.check(lexer.RParen) && !p.atEnd() {
		elems = append(elems, p.parseExpression())
		if p.match(lexer.Comma) {
			trailingComma = true
			continue
		}
		trailingComma = false
		break
	}
	p.expect(lexer.RParen, "')'")

	if len(elems) == 1 && !trailingComma {
		return ast.NewGroupExpr(p.loc(start), elems[0])
	}
	return ast.NewTupleExpr(p.loc(start), elems)
}

// parseClosureExpr implements an anonymous function literal:
// `'func' '(' paramList ')' ('=>' expr | block)`.
func (p *Parser) parseClosureExpr(start lexer.Token) ast.Expr {
	p.advance() // 'func'
	p.expect(lexer.LParen, "'('")
	params := p.parseFuncParamList()
	p.expect(lexer.RParen, "')'")

	var body ast.Expr
	switch {
	case p.match(lexer.FatArrow):
		body = p.parseExpression()
	case p.check(lexer.LBrace):
		body = ast.NewStmtExpr(p.current().Location, p.parseBlockStmt())
	default:
		p.errorAt(p.current(), "expected '=>' or '{' to start closure body")
	}
	return ast.NewClosureExpr(p.loc(start), params, body)
}

// parseStringExpr assembles an interpolated string from the lexer's
// LString / embedded-expression / StringLiteral(middle) / RString sequence
// into a StringExpr mixing *StringLiteral fragments and expressions.
func (p *Parser) parseStringExpr() ast.Expr {
	start := p.advance() // LString
	parts := []ast.Expr{ast.NewStringLiteral(start.Location, start.Value.Str)}

	for {
		parts = append(parts, p.parseExpression())
		switch {
		case p.check(lexer.RString):
			tok := p.advance()
			parts = append(parts, ast.NewStringLiteral(tok.Location, tok.Value.Str))
			return ast.NewStringExpr(p.loc(start), parts)
		case p.check(lexer.StringLiteral):
			tok := p.advance()
			parts = append(parts, ast.NewStringLiteral(tok.Location, tok.Value.Str))
		default:
			p.errorAt(p.current(), "unterminated interpolated string")
			return ast.NewStringExpr(p.loc(start), parts)
		}
	}
}

// parseExprList parses a comma-separated expression list up to (but not
// consuming) close, allowing a trailing comma.
func (p *Parser) parseExprList(close lexer.TokenKind) []ast.Expr {
	var exprs []ast.Expr
	for !p.check(close) && !p.atEnd() {
		exprs = append(exprs, p.parseExpression())
		if !p.match(lexer.Comma) {
			break
		}
	}
	return arena.AllocSlice(p.arena, exprs)
}

// parseRangeExpr parses the for-loop range production `conditional '..' '<'? conditional`;
// Inclusive is true for plain `..` and false for `..<`.
func (p *Parser) parseRangeExpr() ast.Expr {
	start := p.current()
	from := p.parseConditional()
	if !p.match(lexer.DotDot) {
		return from
	}
	inclusive := !p.match(lexer.Less)
	to := p.parseConditional()
	return ast.NewRangeExpr(p.loc(start), from, to, inclusive)
}
