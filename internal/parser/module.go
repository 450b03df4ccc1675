package parser

import (
	"github.com/cxylang/frontend/internal/arena"
	"github.com/cxylang/frontend/internal/ast"
	"github.com/cxylang/frontend/internal/intern"
	"github.com/cxylang/frontend/internal/lexer"
)

// parseModule implements the top-level grammar: an optional `module <ident>`
// header, then an interleaved sequence of import declarations (collected
// into TopLevel regardless of position) and other declarations (collected
// into MainContent).
func (p *Parser) parseModule() *ast.ModuleDecl {
	start := p.current()

	var name intern.Handle
	hasName := false
	if p.match(lexer.Module) {
		if tok, ok := p.expect(lexer.Ident, "module name"); ok {
			name = tok.Value.Ident
			hasName = true
		}
	}

	var topLevel []*ast.ImportDecl
	var mainContent []ast.Decl

	for !p.atEnd() {
		if p.check(lexer.Import) {
			if imp := p.parseImport(); imp != nil {
				topLevel = append(topLevel, imp)
			}
			continue
		}
		if d := p.parseDeclaration(); d != nil {
			mainContent = append(mainContent, d)
		}
	}

	return ast.NewModuleDecl(p.loc(start), name, hasName, arena.AllocSlice(p.arena, topLevel), arena.AllocSlice(p.arena, mainContent))
}
