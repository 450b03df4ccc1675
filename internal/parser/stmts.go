package parser

import (
	"github.com/cxylang/frontend/internal/arena"
	"github.com/cxylang/frontend/internal/ast"
	"github.com/cxylang/frontend/internal/intern"
	"github.com/cxylang/frontend/internal/lexer"
)

// parseStatement dispatches on the current token: block, the statement
// keywords, var/const/auto-as-statement, and an expression-statement
// fallback.
func (p *Parser) parseStatement() ast.Stmt {
	switch {
	case p.check(lexer.LBrace):
		return p.parseBlockStmt()
	case p.check(lexer.Break):
		start := p.advance()
		p.match(lexer.Semicolon)
		return ast.NewBreakStmt(p.loc(start))
	case p.check(lexer.Continue):
		start := p.advance()
		p.match(lexer.Semicolon)
		return ast.NewContinueStmt(p.loc(start))
	case p.check(lexer.Defer):
		start := p.advance()
		inner := p.parseStatement()
		return ast.NewDeferStmt(p.loc(start), inner)
	case p.check(lexer.Return):
		start := p.advance()
		var value ast.Expr
		if !p.checkAny(lexer.Semicolon, lexer.RBrace) && !p.atEnd() {
			value = p.parseExpression()
		}
		p.match(lexer.Semicolon)
		return ast.NewReturnStmt(p.loc(start), value)
	case p.check(lexer.Yield):
		start := p.advance()
		var value ast.Expr
		if !p.checkAny(lexer.Semicolon, lexer.RBrace) && !p.atEnd() {
			value = p.parseExpression()
		}
		p.match(lexer.Semicolon)
		return ast.NewYieldStmt(p.loc(start), value)
	case p.check(lexer.If):
		return p.parseIfStmt()
	case p.check(lexer.While):
		return p.parseWhileStmt()
	case p.check(lexer.For):
		return p.parseForStmt()
	case p.check(lexer.Switch):
		return p.parseSwitchStmt()
	case p.check(lexer.Match):
		return p.parseMatchStmt()
	case p.checkAny(lexer.Var, lexer.Const, lexer.Auto):
		decl := p.parseVariableDecl()
		p.match(lexer.Semicolon)
		if decl == nil {
			return nil
		}
		return decl
	default:
		start := p.current()
		expr := p.parseExpression()
		p.match(lexer.Semicolon)
		if expr == nil {
			return nil
		}
		return ast.NewExprStmt(p.loc(start), expr)
	}
}

// parseBlockStmt implements `'{' stmt* '}'`, statements optionally
// separated by `;`.
func (p *Parser) parseBlockStmt() *ast.BlockStmt {
	start := p.current()
	p.expect(lexer.LBrace, "'{'")

	var stmts []ast.Stmt
	for !p.check(lexer.RBrace) && !p.atEnd() {
		if s := p.parseStatement(); s != nil {
			stmts = append(stmts, s)
		}
	}
	p.expect(lexer.RBrace, "'}'")
	return ast.NewBlockStmt(p.loc(start), arena.AllocSlice(p.arena, stmts))
}

// parseCondition wraps parseConditionOrDecl with a placeholder fallback: the
// Cond field on If/While/Switch is a required (non-optional) child, so a
// parse failure that already reported a diagnostic must not propagate a nil
// Node up into an adopt() call, which does not special-case nil.
func (p *Parser) parseCondition() ast.Node {
	if cond := p.parseConditionOrDecl(); cond != nil {
		return cond
	}
	return ast.NewNullLiteral(p.current().Location)
}

// parseConditionOrDecl implements the cond grammar shared by if/while/
// switch: either a bare expression or a single-name conditional variable
// declaration `('const'|'var'|'auto') ident (':' type)? '=' expr`.
// Multi-name conditional declarations are rejected.
func (p *Parser) parseConditionOrDecl() ast.Node {
	if !p.checkAny(lexer.Var, lexer.Const, lexer.Auto) {
		return p.parseExpression()
	}

	start := p.advance()
	nameTok, ok := p.expect(lexer.Ident, "variable name")
	if !ok {
		p.synchronize()
		return nil
	}
	if p.check(lexer.Comma) {
		p.errorAt(p.current(), "conditional variable declaration allows only one name")
	}
	name := ast.NewIdentifier(nameTok.Location, nameTok.Value.Ident)

	var typ ast.TypeExpr
	if p.match(lexer.Colon) {
		typ = p.parseType()
	}
	p.expect(lexer.Assign, "'='")
	init := p.parseExpression()

	decl := ast.NewVariableDecl(p.loc(start), []*ast.Identifier{name}, typ, init)
	if start.Kind == lexer.Const {
		decl.AddFlags(ast.FlagConst)
	}
	return decl
}

// parseIfStmt implements
// `'if' cond thenStmt ('else' elseStmt)?`.
func (p *Parser) parseIfStmt() *ast.IfStmt {
	start := p.advance() // 'if'
	parenthesized := p.match(lexer.LParen)
	cond := p.parseCondition()
	if parenthesized {
		p.expect(lexer.RParen, "')'")
	}

	then := p.parseIfWhileBody(parenthesized)

	var els ast.Stmt
	if p.match(lexer.Else) {
		if p.check(lexer.If) {
			els = p.parseIfStmt()
		} else {
			els = p.parseIfWhileBody(parenthesized)
		}
	}
	return ast.NewIfStmt(p.loc(start), cond, then, els)
}

// parseIfWhileBody implements the shared if/while body-form rule: a block,
// or (only when the condition was parenthesized) a single statement.
func (p *Parser) parseIfWhileBody(parenthesized bool) ast.Stmt {
	if p.check(lexer.LBrace) || !parenthesized {
		return p.parseBlockStmt()
	}
	return p.parseStatement()
}

// parseWhileStmt implements `'while' cond? body`; an absent condition is an
// infinite loop.
func (p *Parser) parseWhileStmt() *ast.WhileStmt {
	start := p.advance() // 'while'
	if p.check(lexer.LBrace) {
		body := p.parseBlockStmt()
		return ast.NewWhileStmt(p.loc(start), nil, body)
	}

	parenthesized := p.match(lexer.LParen)
	cond := p.parseCondition()
	if parenthesized {
		p.expect(lexer.RParen, "')'")
	}
	body := p.parseIfWhileBody(parenthesized)
	return ast.NewWhileStmt(p.loc(start), cond, body)
}

// parseForStmt implements
// `'for' ('('? varList 'in' rangeExpr (',' condExpr)? ')'? body`.
func (p *Parser) parseForStmt() *ast.ForStmt {
	start := p.advance() // 'for'
	parenthesized := p.match(lexer.LParen)

	var vars []*ast.Identifier
	for {
		nameTok, ok := p.expect(lexer.Ident, "loop variable name")
		if !ok {
			p.synchronize()
			break
		}
		vars = append(vars, ast.NewIdentifier(nameTok.Location, nameTok.Value.Ident))
		if !p.match(lexer.Comma) {
			break
		}
	}

	p.expect(lexer.In, "'in'")
	rng := p.parseRangeExpr()

	var cond ast.Expr
	if p.match(lexer.Comma) {
		cond = p.parseExpression()
	}
	if parenthesized {
		p.expect(lexer.RParen, "')'")
	}

	var body ast.Stmt
	if p.check(lexer.LBrace) || !parenthesized {
		body = p.parseBlockStmt()
	} else {
		body = p.parseStatement()
	}
	return ast.NewForStmt(p.loc(start), arena.AllocSlice(p.arena, vars), rng, cond, body)
}

// parseSwitchStmt implements `'switch' disc '{' case* '}'`.
func (p *Parser) parseSwitchStmt() *ast.SwitchStmt {
	start := p.advance() // 'switch'
	disc := p.parseCondition()
	p.expect(lexer.LBrace, "'{'")

	var cases []*ast.CaseClause
	for !p.check(lexer.RBrace) && !p.atEnd() {
		cases = append(cases, p.parseCaseClause())
	}
	p.expect(lexer.RBrace, "'}'")
	return ast.NewSwitchStmt(p.loc(start), disc, arena.AllocSlice(p.arena, cases))
}

// parseCaseClause implements
// `casePattern ('=>' stmt | '=>' '{' stmts '}')` where
// `casePattern := '...' | expr (',' expr)* (',')?`.
func (p *Parser) parseCaseClause() *ast.CaseClause {
	start := p.current()

	var values []ast.Expr
	isDefault := false
	if p.match(lexer.Elipsis) {
		isDefault = true
	} else {
		for {
			values = append(values, p.parseExpression())
			if !p.match(lexer.Comma) {
				break
			}
			if p.checkAny(lexer.FatArrow) {
				break
			}
		}
	}

	p.expect(lexer.FatArrow, "'=>'")
	stmts := p.parseCaseBody()
	return ast.NewCaseClause(p.loc(start), values, isDefault, stmts)
}

func (p *Parser) parseCaseBody() []ast.Stmt {
	if p.check(lexer.LBrace) {
		return p.parseBlockStmt().Stmts
	}
	return []ast.Stmt{p.parseStatement()}
}

// parseMatchStmt implements `'match' disc '{' matchCase* '}'`.
func (p *Parser) parseMatchStmt() *ast.MatchStmt {
	start := p.advance() // 'match'
	disc := p.parseExpression()
	p.expect(lexer.LBrace, "'{'")

	var cases []*ast.MatchCase
	for !p.check(lexer.RBrace) && !p.atEnd() {
		cases = append(cases, p.parseMatchCase())
	}
	p.expect(lexer.RBrace, "'}'")
	return ast.NewMatchStmt(p.loc(start), disc, arena.AllocSlice(p.arena, cases))
}

// parseMatchCase implements
// `matchPattern ('as' bindingIdent)? '=>' body` where
// `matchPattern := '...' | typeExpr (',' typeExpr)* (',')?`.
func (p *Parser) parseMatchCase() *ast.MatchCase {
	start := p.current()

	var types []ast.TypeExpr
	isDefault := false
	if p.match(lexer.Elipsis) {
		isDefault = true
	} else {
		for {
			types = append(types, p.parseType())
			if !p.match(lexer.Comma) {
				break
			}
			if p.checkAny(lexer.As, lexer.FatArrow) {
				break
			}
		}
	}

	var binding intern.Handle
	hasBind := false
	if p.match(lexer.As) {
		nameTok, ok := p.expect(lexer.Ident, "binding name")
		if ok {
			binding = nameTok.Value.Ident
			hasBind = true
		}
	}

	p.expect(lexer.FatArrow, "'=>'")
	body := ast.NewBlockStmt(p.current().Location, p.parseCaseBody())
	return ast.NewMatchCase(p.loc(start), types, binding, hasBind, isDefault, body)
}
