package parser

import (
	"github.com/cxylang/frontend/internal/arena"
	"github.com/cxylang/frontend/internal/ast"
	"github.com/cxylang/frontend/internal/intern"
	"github.com/cxylang/frontend/internal/lexer"
)

// parseImport implements the four import surface forms:
//
//	import "path"                                // WholeModule
//	import "path" as alias                       // ModuleAlias
//	import name ('as' alias)? from "path"        // one named import
//	import '{' importItem (',' importItem)* (,)? '}' from "path"
//	import test <any of the above>               // ConditionalTest
func (p *Parser) parseImport() *ast.ImportDecl {
	start := p.current()
	if _, ok := p.expect(lexer.Import, "'import'"); !ok {
		p.synchronize()
		return nil
	}

	conditional := p.match(lexer.Test)

	var decl *ast.ImportDecl
	switch {
	case p.check(lexer.StringLiteral):
		decl = p.parseWholeModuleOrAliasImport(start)
	case p.check(lexer.LBrace):
		decl = p.parseMultipleImport(start)
	case p.check(lexer.Ident):
		decl = p.parseSingleNamedImport(start)
	default:
		p.errorAt(p.current(), "expected import path, '{', or identifier after 'import'")
		p.synchronize()
		return nil
	}

	if decl == nil {
		return nil
	}
	if conditional {
		decl.Kind = ast.ConditionalTest
	}
	return decl
}

func (p *Parser) parseWholeModuleOrAliasImport(start lexer.Token) *ast.ImportDecl {
	pathTok, ok := p.expect(lexer.StringLiteral, "import path")
	if !ok {
		p.synchronize()
		return nil
	}

	kind := ast.WholeModule
	var alias intern.Handle
	if p.match(lexer.As) {
		aliasTok, ok := p.expect(lexer.Ident, "alias identifier")
		if !ok {
			p.synchronize()
			return nil
		}
		kind = ast.ModuleAlias
		alias = aliasTok.Value.Ident
	}

	if requiresAliasForm(p.interner.String(pathTok.Value.Str)) && kind != ast.ModuleAlias {
		p.errorAt(pathTok, "header import of %q requires an alias or named-imports form", p.interner.String(pathTok.Value.Str))
	}

	return ast.NewImportDecl(p.loc(start), kind, pathTok.Value.Str, alias, nil)
}

func (p *Parser) parseSingleNamedImport(start lexer.Token) *ast.ImportDecl {
	nameTok, ok := p.expect(lexer.Ident, "import name")
	if !ok {
		p.synchronize()
		return nil
	}

	var alias intern.Handle
	if p.match(lexer.As) {
		aliasTok, ok := p.expect(lexer.Ident, "alias identifier")
		if !ok {
			p.synchronize()
			return nil
		}
		alias = aliasTok.Value.Ident
	}

	if _, ok := p.expect(lexer.From, "'from'"); !ok {
		p.synchronize()
		return nil
	}
	pathTok, ok := p.expect(lexer.StringLiteral, "import path")
	if !ok {
		p.synchronize()
		return nil
	}

	item := ast.ImportItem{Orig: nameTok.Value.Ident, Alias: alias}
	return ast.NewImportDecl(p.loc(start), ast.MultipleImports, pathTok.Value.Str, 0, []ast.ImportItem{item})
}

func (p *Parser) parseMultipleImport(start lexer.Token) *ast.ImportDecl {
	if _, ok := p.expect(lexer.LBrace, "'{'"); !ok {
		p.synchronize()
		return nil
	}

	var items []ast.ImportItem
	for !p.check(lexer.RBrace) && !p.atEnd() {
		nameTok, ok := p.expect(lexer.Ident, "import item name")
		if !ok {
			p.synchronize()
			return nil
		}
		var alias intern.Handle
		if p.match(lexer.As) {
			aliasTok, ok := p.expect(lexer.Ident, "alias identifier")
			if !ok {
				p.synchronize()
				return nil
			}
			alias = aliasTok.Value.Ident
		}
		items = append(items, ast.ImportItem{Orig: nameTok.Value.Ident, Alias: alias})
		if !p.match(lexer.Comma) {
			break
		}
	}
	if _, ok := p.expect(lexer.RBrace, "'}'"); !ok {
		p.synchronize()
		return nil
	}
	if len(items) == 0 {
		p.errorAt(p.previous(), "empty import list")
		return nil
	}

	if _, ok := p.expect(lexer.From, "'from'"); !ok {
		p.synchronize()
		return nil
	}
	pathTok, ok := p.expect(lexer.StringLiteral, "import path")
	if !ok {
		p.synchronize()
		return nil
	}

	return ast.NewImportDecl(p.loc(start), ast.MultipleImports, pathTok.Value.Str, 0, arena.AllocSlice(p.arena, items))
}

// requiresAliasForm reports whether path names a C header (*.h), which must
// be imported with an alias or named-imports form rather than as a bare
// whole-module import.
func requiresAliasForm(path string) bool {
	return len(path) > 2 && path[len(path)-2:] == ".h"
}
