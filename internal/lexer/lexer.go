package lexer

import (
	"fmt"

	"github.com/cxylang/frontend/internal/diag"
	"github.com/cxylang/frontend/internal/intern"
	"github.com/cxylang/frontend/internal/text"
)

// bufferEntry is one entry of the include stack: the top-level source file
// plus any files pushed via PushInclude. Position tracking is byte-indexed;
// row/column are maintained alongside for Location construction.
type bufferEntry struct {
	filename string
	content  []byte
	pos      int
	row      int
	col      int
}

func (b *bufferEntry) atEnd() bool { return b.pos >= len(b.content) }

func (b *bufferEntry) peek() byte {
	if b.atEnd() {
		return 0
	}
	return b.content[b.pos]
}

func (b *bufferEntry) peekAt(n int) byte {
	if b.pos+n >= len(b.content) {
		return 0
	}
	return b.content[b.pos+n]
}

func (b *bufferEntry) advance() byte {
	c := b.content[b.pos]
	b.pos++
	if c == '\n' {
		b.row++
		b.col = 1
	} else {
		b.col++
	}
	return c
}

func (b *bufferEntry) position() text.Position {
	return text.Position{Row: b.row, Column: b.col, ByteOffset: text.ByteOffset(b.pos)}
}

// interpContext tracks one level of string interpolation nesting.
type interpContext struct {
	inExpression bool
	braceDepth   uint32
}

// Lexer produces a pull-based token stream from a stack of source buffers.
// One top-level buffer plus any number of pushed include buffers; EOF on a
// non-top buffer automatically pops, EOF on the top buffer yields EoF.
type Lexer struct {
	buffers  []*bufferEntry
	interner *intern.Interner
	logger   *diag.Logger

	interpStack   []interpContext
	templateDepth int
}

// New creates a Lexer over the top-level buffer (filename, content).
func New(filename string, content []byte, interner *intern.Interner, logger *diag.Logger) *Lexer {
	return &Lexer{
		buffers:  []*bufferEntry{{filename: filename, content: content, row: 1, col: 1}},
		interner: interner,
		logger:   logger,
	}
}

// PushInclude pushes a new top buffer for an included file. It refuses and
// reports an error if filename already appears on the buffer stack.
func (lx *Lexer) PushInclude(filename string, content []byte) error {
	if lx.wouldCreateCycle(filename) {
		return fmt.Errorf("recursive include: %s", filename)
	}
	lx.buffers = append(lx.buffers, &bufferEntry{filename: filename, content: content, row: 1, col: 1})
	return nil
}

func (lx *Lexer) wouldCreateCycle(filename string) bool {
	for _, b := range lx.buffers {
		if b.filename == filename {
			return true
		}
	}
	return false
}

func (lx *Lexer) top() *bufferEntry {
	return lx.buffers[len(lx.buffers)-1]
}

// EnterTemplateContext is called by the parser when it begins parsing a
// generic argument list, disabling >> coalescing so "A<B<C>>" splits the
// closing ">>" into two Greater tokens.
func (lx *Lexer) EnterTemplateContext() { lx.templateDepth++ }

// ExitTemplateContext ends one level of generic argument list parsing.
func (lx *Lexer) ExitTemplateContext() {
	if lx.templateDepth > 0 {
		lx.templateDepth--
	}
}

func (lx *Lexer) inTemplateContext() bool { return lx.templateDepth > 0 }

// Next returns the next token in the stream, pulling from the lexer's
// buffer stack and popping exhausted include buffers as needed.
func (lx *Lexer) Next() Token {
	if n := len(lx.interpStack); n > 0 && !lx.interpStack[n-1].inExpression {
		if tok, handled := lx.tryResumeInterpString(); handled {
			return tok
		}
	}

	tok := lx.nextRaw()

	if n := len(lx.interpStack); n > 0 && lx.interpStack[n-1].inExpression {
		switch tok.Kind {
		case LBrace:
			lx.interpStack[n-1].braceDepth++
		case RBrace:
			if lx.interpStack[n-1].braceDepth == 0 {
				lx.interpStack[n-1].inExpression = false
				if resumed, handled := lx.tryResumeInterpString(); handled {
					return resumed
				}
			} else {
				lx.interpStack[n-1].braceDepth--
			}
		}
	}
	return tok
}

// nextRaw performs ordinary token dispatch, ignoring interpolation bracket
// bookkeeping; Next wraps it to track { } nesting inside interpolated
// expressions.
func (lx *Lexer) nextRaw() Token {
	lx.skipWhitespaceAndComments()

	for lx.top().atEnd() && len(lx.buffers) > 1 {
		lx.buffers = lx.buffers[:len(lx.buffers)-1]
		lx.skipWhitespaceAndComments()
	}

	b := lx.top()
	if b.atEnd() {
		return lx.makeToken(EoF, b.position(), b.position())
	}

	start := b.position()
	c := b.peek()

	switch {
	case c == 'r' && b.peekAt(1) == '"':
		return lx.lexRawString()
	case isIdentStart(c):
		return lx.lexIdentifierOrKeyword()
	case isDigit(c):
		return lx.lexNumber()
	case c == '.' && isDigit(b.peekAt(1)):
		return lx.lexNumber()
	case c == '"':
		return lx.lexString()
	case c == '\'':
		return lx.lexCharacter()
	default:
		return lx.lexSymbol(start)
	}
}

func (lx *Lexer) skipWhitespaceAndComments() {
	for {
		b := lx.top()
		for !b.atEnd() {
			switch b.peek() {
			case ' ', '\t', '\n', '\r':
				b.advance()
				continue
			}
			break
		}

		if b.peek() == '/' && b.peekAt(1) == '/' {
			for !b.atEnd() && b.peek() != '\n' {
				b.advance()
			}
			continue
		}
		if b.peek() == '/' && b.peekAt(1) == '*' {
			lx.skipBlockComment()
			continue
		}
		break
	}
}

func (lx *Lexer) skipBlockComment() {
	b := lx.top()
	start := b.position()
	b.advance()
	b.advance()
	depth := 1
	for depth > 0 {
		if b.atEnd() {
			lx.logger.Error(lx.locationFrom(start), "unterminated block comment")
			return
		}
		if b.peek() == '/' && b.peekAt(1) == '*' {
			b.advance()
			b.advance()
			depth++
			continue
		}
		if b.peek() == '*' && b.peekAt(1) == '/' {
			b.advance()
			b.advance()
			depth--
			continue
		}
		b.advance()
	}
}

func (lx *Lexer) lexIdentifierOrKeyword() Token {
	b := lx.top()
	start := b.position()
	startPos := b.pos
	for !b.atEnd() && isIdentPart(b.peek()) {
		b.advance()
	}
	word := string(b.content[startPos:b.pos])

	if kw, ok := LookupKeyword(word); ok {
		return lx.makeToken(kw, start, b.position())
	}

	tok := lx.makeToken(Ident, start, b.position())
	tok.HasValue = true
	tok.Value.Ident = lx.interner.InternString(word)
	return tok
}

func (lx *Lexer) lexSymbol(start text.Position) Token {
	b := lx.top()
	c := b.advance()

	two := func(next byte, kind2 TokenKind, kind1 TokenKind) TokenKind {
		if b.peek() == next {
			b.advance()
			return kind2
		}
		return kind1
	}

	switch c {
	case '(':
		return lx.makeToken(LParen, start, b.position())
	case ')':
		return lx.makeToken(RParen, start, b.position())
	case '[':
		return lx.makeToken(LBracket, start, b.position())
	case ']':
		return lx.makeToken(RBracket, start, b.position())
	case '{':
		return lx.makeToken(LBrace, start, b.position())
	case '}':
		return lx.makeToken(RBrace, start, b.position())
	case '@':
		return lx.makeToken(At, start, b.position())
	case '#':
		if b.peek() == '#' {
			b.advance()
			return lx.makeToken(Define, start, b.position())
		}
		if b.peek() == '.' {
			b.advance()
			return lx.makeToken(AstMacroAccess, start, b.position())
		}
		return lx.makeToken(Hash, start, b.position())
	case '!':
		if b.peek() == ':' {
			b.advance()
			return lx.makeToken(BangColon, start, b.position())
		}
		return lx.makeToken(two('=', NotEqual, LNot), start, b.position())
	case '~':
		return lx.makeToken(BNot, start, b.position())
	case '.':
		if b.peek() == '.' {
			b.advance()
			if b.peek() == '.' {
				b.advance()
				return lx.makeToken(Elipsis, start, b.position())
			}
			return lx.makeToken(DotDot, start, b.position())
		}
		return lx.makeToken(Dot, start, b.position())
	case '?':
		return lx.makeToken(Question, start, b.position())
	case ',':
		return lx.makeToken(Comma, start, b.position())
	case ':':
		return lx.makeToken(Colon, start, b.position())
	case ';':
		return lx.makeToken(Semicolon, start, b.position())
	case '=':
		if b.peek() == '>' {
			b.advance()
			return lx.makeToken(FatArrow, start, b.position())
		}
		return lx.makeToken(two('=', Equal, Assign), start, b.position())
	case '<':
		if b.peek() == '<' {
			b.advance()
			return lx.makeToken(two('=', ShlEqual, Shl), start, b.position())
		}
		return lx.makeToken(two('=', LessEqual, Less), start, b.position())
	case '>':
		if lx.inTemplateContext() {
			return lx.makeToken(Greater, start, b.position())
		}
		if b.peek() == '>' {
			b.advance()
			return lx.makeToken(two('=', ShrEqual, Shr), start, b.position())
		}
		return lx.makeToken(two('=', GreaterEqual, Greater), start, b.position())
	case '+':
		if b.peek() == '+' {
			b.advance()
			return lx.makeToken(PlusPlus, start, b.position())
		}
		return lx.makeToken(two('=', PlusEqual, Plus), start, b.position())
	case '-':
		if b.peek() == '-' {
			b.advance()
			return lx.makeToken(MinusMinus, start, b.position())
		}
		if b.peek() == '>' {
			b.advance()
			return lx.makeToken(ThinArrow, start, b.position())
		}
		return lx.makeToken(two('=', MinusEqual, Minus), start, b.position())
	case '*':
		return lx.makeToken(two('=', MultEqual, Mult), start, b.position())
	case '/':
		return lx.makeToken(two('=', DivEqual, Div), start, b.position())
	case '%':
		return lx.makeToken(two('=', ModEqual, Mod), start, b.position())
	case '&':
		if b.peek() == '&' {
			b.advance()
			return lx.makeToken(LAnd, start, b.position())
		}
		if b.peek() == '.' {
			b.advance()
			return lx.makeToken(BAndDot, start, b.position())
		}
		return lx.makeToken(two('=', BAndEqual, BAnd), start, b.position())
	case '^':
		return lx.makeToken(two('=', BXorEqual, BXor), start, b.position())
	case '|':
		if b.peek() == '|' {
			b.advance()
			return lx.makeToken(LOr, start, b.position())
		}
		return lx.makeToken(two('=', BOrEqual, BOr), start, b.position())
	case '`':
		return lx.makeToken(Quote, start, b.position())
	default:
		lx.logger.Error(lx.locationFrom(start), "unexpected character %q", c)
		return lx.makeToken(Error, start, b.position())
	}
}

func (lx *Lexer) makeToken(kind TokenKind, start, end text.Position) Token {
	return Token{Kind: kind, Location: text.Location{Filename: lx.top().filename, Start: start, End: end}}
}

func (lx *Lexer) locationFrom(start text.Position) text.Location {
	return text.Location{Filename: lx.top().filename, Start: start, End: lx.top().position()}
}

func isDigit(c byte) bool      { return c >= '0' && c <= '9' }
func isHexDigit(c byte) bool   { return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F') }
func isIdentStart(c byte) bool { return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }
func isIdentPart(c byte) bool  { return isIdentStart(c) || isDigit(c) }
