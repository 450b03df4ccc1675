// Package parser implements a hand-rolled recursive-descent parser over
// internal/lexer's token stream, producing an internal/ast tree. The parser
// keeps a four-slot lookahead window (previous, current, lookahead1,
// lookahead2) and recovers from malformed productions by synchronizing at
// statement/declaration boundaries rather than aborting the whole parse.
package parser

import (
	"github.com/cxylang/frontend/internal/arena"
	"github.com/cxylang/frontend/internal/ast"
	"github.com/cxylang/frontend/internal/diag"
	"github.com/cxylang/frontend/internal/intern"
	"github.com/cxylang/frontend/internal/lexer"
	"github.com/cxylang/frontend/internal/text"
)

// Parser turns a lexer.Lexer's token stream into an *ast.ModuleDecl.
type Parser struct {
	lx       *lexer.Lexer
	arena    *arena.Arena
	interner *intern.Interner
	logger   *diag.Logger

	// window holds {previous, current, lookahead1, lookahead2}.
	window [4]lexer.Token
}

const (
	slotPrevious = iota
	slotCurrent
	slotLookahead1
	slotLookahead2
)

// New creates a Parser over lx, ready to call Parse. arena and interner are
// shared with the Lexer that produced lx; logger is shared with both.
func New(lx *lexer.Lexer, a *arena.Arena, in *intern.Interner, logger *diag.Logger) *Parser {
	p := &Parser{lx: lx, arena: a, interner: in, logger: logger}
	p.window[slotCurrent] = lx.Next()
	p.window[slotLookahead1] = lx.Next()
	p.window[slotLookahead2] = lx.Next()
	return p
}

func (p *Parser) current() lexer.Token     { return p.window[slotCurrent] }
func (p *Parser) previous() lexer.Token    { return p.window[slotPrevious] }
func (p *Parser) lookahead1() lexer.Token  { return p.window[slotLookahead1] }
func (p *Parser) lookahead2() lexer.Token  { return p.window[slotLookahead2] }
func (p *Parser) atEnd() bool              { return p.current().Kind == lexer.EoF }

// advance shifts the window and pulls one new token from the lexer into the
// vacated lookahead2 slot, returning the now-previous (just-consumed)
// token.
func (p *Parser) advance() lexer.Token {
	if p.atEnd() {
		return p.current()
	}
	p.window[slotPrevious] = p.window[slotCurrent]
	p.window[slotCurrent] = p.window[slotLookahead1]
	p.window[slotLookahead1] = p.window[slotLookahead2]
	p.window[slotLookahead2] = p.lx.Next()
	return p.previous()
}

func (p *Parser) check(kind lexer.TokenKind) bool {
	return p.current().Kind == kind
}

func (p *Parser) checkAny(kinds ...lexer.TokenKind) bool {
	for _, k := range kinds {
		if p.current().Kind == k {
			return true
		}
	}
	return false
}

// match consumes and returns true if the current token is kind.
func (p *Parser) match(kind lexer.TokenKind) bool {
	if !p.check(kind) {
		return false
	}
	p.advance()
	return true
}

// expect consumes the current token if it matches kind, otherwise records a
// MissingToken diagnostic at the current token's location and leaves the
// window untouched so callers can attempt resynchronization.
func (p *Parser) expect(kind lexer.TokenKind, what string) (lexer.Token, bool) {
	if p.check(kind) {
		return p.advance(), true
	}
	p.errorAt(p.current(), "expected %s, found %s", what, p.current().Kind)
	return lexer.Token{}, false
}

func (p *Parser) errorAt(tok lexer.Token, format string, args ...any) {
	p.logger.Error(tok.Location, format, args...)
}

// loc builds a Location spanning from start's Start position to the
// previously-consumed token's End position; the common case of "location of
// what I just finished parsing".
func (p *Parser) loc(start lexer.Token) text.Location {
	return text.Location{Filename: start.Location.Filename, Start: start.Location.Start, End: p.previous().Location.End}
}

// synchBoundaries are the statement/declaration-starting keywords that
// double as synchronization points for error recovery.
var synchBoundaries = []lexer.TokenKind{
	lexer.Func, lexer.Var, lexer.Const, lexer.Type, lexer.Struct, lexer.Enum,
}

// synchronize skips tokens until a synchronization point: `;`, `}`, `)`,
// `]`, EoF, or one of synchBoundaries. It never crosses a module boundary
// because EoF always halts it.
func (p *Parser) synchronize() {
	for !p.atEnd() {
		if p.previous().Kind == lexer.Semicolon {
			return
		}
		if p.checkAny(lexer.RBrace, lexer.RParen, lexer.RBracket) {
			return
		}
		if p.checkAny(synchBoundaries...) {
			return
		}
		p.advance()
	}
}

// Parse parses the whole token stream into a ModuleDecl, the parser's sole
// entry point.
func Parse(lx *lexer.Lexer, a *arena.Arena, in *intern.Interner, logger *diag.Logger) *ast.ModuleDecl {
	p := New(lx, a, in, logger)
	return p.parseModule()
}
