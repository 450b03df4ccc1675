package lexer

import (
	"math"
	"math/big"
	"strings"

	"github.com/cxylang/frontend/internal/text"
)

// maxUint128 is 2^128 - 1, the clamp ceiling for integer literal overflow.
var maxUint128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))

func isOctalDigit(c byte) bool  { return c >= '0' && c <= '7' }
func isBinaryDigit(c byte) bool { return c == '0' || c == '1' }

// lexNumber scans an integer or floating-point literal starting at the
// lexer's current position, per the grammar:
//
//	integer := prefix? digits (letterSuffix)?
//	prefix   := "0x" | "0b" | "0o" | "0" (octal) | "" (decimal)
func (lx *Lexer) lexNumber() Token {
	b := lx.top()
	start := b.position()

	base := 10
	switch {
	case b.peek() == '0' && (b.peekAt(1) == 'x' || b.peekAt(1) == 'X'):
		b.advance()
		b.advance()
		base = 16
	case b.peek() == '0' && (b.peekAt(1) == 'b' || b.peekAt(1) == 'B'):
		b.advance()
		b.advance()
		base = 2
	case b.peek() == '0' && (b.peekAt(1) == 'o' || b.peekAt(1) == 'O'):
		b.advance()
		b.advance()
		base = 8
	case b.peek() == '0' && isOctalDigit(b.peekAt(1)):
		b.advance()
		base = 8
	}

	digitValid := func(c byte) bool {
		switch base {
		case 2:
			return isBinaryDigit(c)
		case 8:
			return isOctalDigit(c)
		case 16:
			return isHexDigit(c)
		default:
			return isDigit(c)
		}
	}

	var intDigits strings.Builder
	for !b.atEnd() && (digitValid(b.peek()) || b.peek() == '_') {
		c := b.advance()
		if c != '_' {
			intDigits.WriteByte(c)
		}
	}

	// A '.' not followed by another '.' converts the token in flight to a
	// float, independent of base.
	isFloat := false
	var fracDigits strings.Builder
	if b.peek() == '.' && b.peekAt(1) != '.' {
		isFloat = true
		b.advance()
		for !b.atEnd() && (digitValid(b.peek()) || b.peek() == '_') {
			c := b.advance()
			if c != '_' {
				fracDigits.WriteByte(c)
			}
		}
	}

	// Exponent: e/E for bases <= 10, p/P for hex; the exponent digits
	// themselves are always decimal.
	expLetterLo, expLetterHi := byte('e'), byte('E')
	if base == 16 {
		expLetterLo, expLetterHi = 'p', 'P'
	}
	expNegative := false
	var expDigits strings.Builder
	if b.peek() == expLetterLo || b.peek() == expLetterHi {
		isFloat = true
		b.advance()
		if b.peek() == '+' || b.peek() == '-' {
			expNegative = b.peek() == '-'
			b.advance()
		}
		if !isDigit(b.peek()) {
			lx.logger.Error(lx.locationFrom(start), "invalid number: no digits in exponent")
		}
		for !b.atEnd() && (isDigit(b.peek()) || b.peek() == '_') {
			c := b.advance()
			if c != '_' {
				expDigits.WriteByte(c)
			}
		}
	}

	// Float suffixes f/F/d/D also switch to float parsing within decimal base.
	if base == 10 && !isFloat {
		switch b.peek() {
		case 'f', 'F', 'd', 'D':
			isFloat = true
		}
	}

	suffixStart := b.pos
	for !b.atEnd() && (isIdentPart(b.peek())) {
		b.advance()
	}
	suffix := string(b.content[suffixStart:b.pos])

	end := b.position()
	if isFloat {
		return lx.makeFloatToken(start, end, base, intDigits.String(), fracDigits.String(), expNegative, expDigits.String(), suffix)
	}
	return lx.makeIntToken(start, end, intDigits.String(), base, suffix)
}

// makeFloatToken computes a float value digit-by-digit in base, mirroring
// the reference lexer's lexFloat: the mantissa (integer and fractional
// digits) is read in base, while the exponent multiplier is base-2 for hex
// literals (`p`/`P`) and base-10 otherwise (`e`/`E`), matching the exponent
// letter chosen in lexNumber.
func (lx *Lexer) makeFloatToken(start, end text.Position, base int, intDigits, fracDigits string, expNegative bool, expDigits, suffix string) Token {
	if intDigits == "" && fracDigits == "" {
		lx.logger.Error(lx.locationFromTo(start, end), "invalid floating-point literal: no digits")
	}

	val := mantissaValue(base, intDigits, fracDigits)
	if expDigits != "" {
		exp := 0
		for i := 0; i < len(expDigits); i++ {
			exp = exp*10 + int(expDigits[i]-'0')
		}
		if expNegative {
			exp = -exp
		}
		expBase := 10.0
		if base == 16 {
			expBase = 2.0
		}
		val *= math.Pow(expBase, float64(exp))
	}

	typ := FloatAuto
	switch suffix {
	case "", "d", "D":
		typ = FloatF64
	case "f", "F":
		typ = FloatF32
	default:
		lx.logger.Error(lx.locationFromTo(start, end), "invalid type suffix: %s", suffix)
	}

	tok := lx.makeToken(FloatLiteral, start, end)
	tok.HasValue = true
	tok.Value.FloatVal = val
	tok.Value.FloatTyp = typ
	return tok
}

// mantissaValue interprets intDigits and fracDigits as base-radix digits,
// the same place-value walk the reference lexer does digit-by-digit rather
// than through a decimal-only string parser.
func mantissaValue(base int, intDigits, fracDigits string) float64 {
	var value float64
	for i := 0; i < len(intDigits); i++ {
		value = value*float64(base) + float64(hexDigitValue(intDigits[i]))
	}
	if fracDigits != "" {
		div := float64(base)
		for i := 0; i < len(fracDigits); i++ {
			value += float64(hexDigitValue(fracDigits[i])) / div
			div *= float64(base)
		}
	}
	return value
}

func (lx *Lexer) makeIntToken(start, end text.Position, digits string, base int, suffix string) Token {
	if digits == "" {
		digits = "0"
	}
	v, ok := new(big.Int).SetString(digits, base)
	if !ok {
		lx.logger.Error(lx.locationFromTo(start, end), "invalid integer literal: %s", digits)
		v = big.NewInt(0)
	}
	if v.Cmp(maxUint128) > 0 {
		lx.logger.Error(lx.locationFromTo(start, end), "integer literal overflow")
		v = new(big.Int).Set(maxUint128)
	}

	mask64 := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 64), big.NewInt(1))
	lo := new(big.Int).And(v, mask64).Uint64()
	hi := new(big.Int).Rsh(v, 64).Uint64()

	typ, ok := integerSuffixType(suffix)
	if !ok {
		lx.logger.Error(lx.locationFromTo(start, end), "invalid type suffix: %s", suffix)
	}

	tok := lx.makeToken(IntLiteral, start, end)
	tok.HasValue = true
	tok.Value.IntVal = lo
	tok.Value.IntHi = hi
	tok.Value.IntType = typ
	return tok
}

// integerSuffixType recognizes cxy-native suffixes (i8..u128) and legacy
// C-style suffixes (u, l, ul, ll, ull, ...).
func integerSuffixType(suffix string) (IntegerType, bool) {
	switch suffix {
	case "":
		return IntAuto, true
	case "i8":
		return IntI8, true
	case "i16":
		return IntI16, true
	case "i32":
		return IntI32, true
	case "i64":
		return IntI64, true
	case "i128":
		return IntI128, true
	case "u8":
		return IntU8, true
	case "u16":
		return IntU16, true
	case "u32":
		return IntU32, true
	case "u64":
		return IntU64, true
	case "u128":
		return IntU128, true
	}

	lower := strings.ToLower(suffix)
	switch lower {
	case "u":
		return IntU32, true
	case "l":
		return IntI64, true
	case "ul", "lu":
		return IntU64, true
	case "ll":
		return IntI64, true
	case "ull", "llu":
		return IntU64, true
	}
	return IntAuto, false
}

func (lx *Lexer) locationFromTo(start, end text.Position) text.Location {
	return text.Location{Filename: lx.top().filename, Start: start, End: end}
}
