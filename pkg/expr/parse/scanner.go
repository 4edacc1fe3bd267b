package parse

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// scanFunc scans a token starting at p.start and returns it. It leaves p.pos
// after the token.
type scanFunc func(p *parser) token

// Per-character dispatch for ASCII. Characters without an entry are
// unexpected, except that non-ASCII letters start identifiers.
var (
	scanners     [128]scanFunc
	isIdentStart [128]bool
	isIdentPart  [128]bool
	isDigit      [128]bool
	isSpace      [128]bool
)

func init() {
	for i := 0; i < 128; i++ {
		c := byte(i)
		isDigit[i] = '0' <= c && c <= '9'
		isIdentStart[i] = 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || c == '_' || c == '$'
		isIdentPart[i] = isIdentStart[i] || isDigit[i]
		isSpace[i] = c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
		switch {
		case isIdentStart[i]:
			scanners[i] = scanIdentifier
		case isDigit[i]:
			scanners[i] = scanNumber
		}
	}
	single := func(t token) scanFunc {
		return func(p *parser) token { p.pos++; return t }
	}
	for c, t := range map[byte]token{
		'(': tOpenParen, ')': tCloseParen, '{': tOpenBrace, '}': tCloseBrace,
		'[': tOpenBracket, ']': tCloseBracket, ',': tComma, ':': tColon,
		';': tSemicolon, '%': tPercent,
	} {
		scanners[c] = single(t)
	}
	scanners['\''] = scanString
	scanners['"'] = scanString
	scanners['`'] = func(p *parser) token {
		p.pos++
		return p.scanTemplatePart()
	}
	scanners['.'] = scanDot
	scanners['?'] = func(p *parser) token {
		switch {
		case p.peekAt(1) == '.' && !isDigitAt(p.src, p.pos+2):
			p.pos += 2
			return tQuestionDot
		case p.peekAt(1) == '?':
			p.pos += 2
			return tQuestionQuestion
		}
		p.pos++
		return tQuestion
	}
	scanners['='] = operator(tEquals, ">", tArrow, "=", tEqualsEquals, "==", tEqualsEqualsEquals)
	scanners['!'] = operator(tExclamation, "=", tExclamationEquals, "==", tExclamationEqualsEquals)
	scanners['<'] = operator(tLessThan, "=", tLessThanEquals)
	scanners['>'] = operator(tGreaterThan, "=", tGreaterThanEquals)
	scanners['+'] = operator(tPlus, "=", tPlusEquals)
	scanners['-'] = operator(tMinus, "=", tMinusEquals)
	scanners['*'] = operator(tAsterisk, "=", tAsteriskEquals)
	scanners['/'] = operator(tSlash, "=", tSlashEquals)
	scanners['&'] = operator(tAmpersand, "&", tAmpersandAmpersand)
	scanners['|'] = operator(tBar, "|", tBarBar)
}

// operator returns a scanFunc for an operator character. The arguments
// after the first token alternate between a suffix and the token produced
// when the character is followed by it. Longer suffixes must come later.
func operator(t token, alternatives ...any) scanFunc {
	return func(p *parser) token {
		result, n := t, 1
		for i := 0; i+1 < len(alternatives); i += 2 {
			suffix := alternatives[i].(string)
			if strings.HasPrefix(p.src[p.pos+1:], suffix) {
				result, n = alternatives[i+1].(token), 1+len(suffix)
			}
		}
		p.pos += n
		return result
	}
}

func isDigitAt(s string, i int) bool {
	return i < len(s) && isDigit[s[i]&0x7f] && s[i] < 0x80
}

func (p *parser) peekAt(offset int) byte {
	if i := p.pos + offset; i < len(p.src) {
		return p.src[i]
	}
	return 0
}

// next scans the next token.
func (p *parser) next() {
	for p.pos < len(p.src) && p.src[p.pos] < 0x80 && isSpace[p.src[p.pos]] {
		p.pos++
	}
	p.start = p.pos
	p.value = nil
	if p.pos == len(p.src) {
		p.tok = tEOF
		return
	}
	c := p.src[p.pos]
	if c >= 0x80 {
		r, _ := utf8.DecodeRuneInString(p.src[p.pos:])
		if !unicode.IsLetter(r) {
			p.failAt(p.pos, p.pos+utf8.RuneLen(r), ErrUnexpectedCharacter, "unexpected character %q", r)
		}
		p.tok = scanIdentifier(p)
		return
	}
	scan := scanners[c]
	if scan == nil {
		p.failAt(p.pos, p.pos+1, ErrUnexpectedCharacter, "unexpected character %q", c)
	}
	p.tok = scan(p)
}

func scanIdentifier(p *parser) token {
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c < 0x80 {
			if !isIdentPart[c] {
				break
			}
			p.pos++
			continue
		}
		r, size := utf8.DecodeRuneInString(p.src[p.pos:])
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			break
		}
		p.pos += size
	}
	name := p.src[p.start:p.pos]
	p.value = name
	if t, ok := keywords[name]; ok {
		return t
	}
	return tIdentifier
}

func scanNumber(p *parser) token {
	digits := func() {
		for isDigitAt(p.src, p.pos) {
			p.pos++
		}
	}
	digits()
	if p.peekAt(0) == '.' && p.peekAt(1) != '.' {
		p.pos++
		digits()
	}
	if c := p.peekAt(0); c == 'e' || c == 'E' {
		p.pos++
		if c := p.peekAt(0); c == '+' || c == '-' {
			p.pos++
		}
		if !isDigitAt(p.src, p.pos) {
			p.fail(ErrUnexpectedCharacter, "invalid exponent in number %s", p.src[p.start:p.pos])
		}
		digits()
	}
	f, err := strconv.ParseFloat(p.src[p.start:p.pos], 64)
	if err != nil {
		p.fail(ErrUnexpectedCharacter, "invalid number %s", p.src[p.start:p.pos])
	}
	p.value = f
	return tNumber
}

func scanDot(p *parser) token {
	switch {
	case isDigitAt(p.src, p.pos+1):
		return scanNumber(p)
	case strings.HasPrefix(p.src[p.pos:], "..."):
		p.pos += 3
		return tDotDotDot
	case strings.HasPrefix(p.src[p.pos:], ".."):
		p.pos += 2
		return tDotDot
	}
	p.pos++
	return tDot
}

func scanString(p *parser) token {
	quote := p.src[p.pos]
	p.pos++
	var sb strings.Builder
	for {
		if p.pos >= len(p.src) {
			p.fail(ErrUnterminatedQuote, "unterminated string")
		}
		c := p.src[p.pos]
		switch c {
		case quote:
			p.pos++
			p.value = sb.String()
			return tString
		case '\\':
			r, next := p.unescape(p.pos + 1)
			sb.WriteRune(r)
			p.pos = next
		default:
			sb.WriteByte(c)
			p.pos++
		}
	}
}

// scanTemplatePart scans a part of a template literal starting at p.pos,
// which is just after the opening backtick or the } closing a
// substitution. The cooked text becomes p.value and the raw text p.raw.
func (p *parser) scanTemplatePart() token {
	begin := p.pos
	var sb strings.Builder
	for {
		if p.pos >= len(p.src) {
			p.fail(ErrUnterminatedTemplate, "unterminated template")
		}
		switch c := p.src[p.pos]; {
		case c == '`':
			p.raw = p.src[begin:p.pos]
			p.pos++
			p.value = sb.String()
			return tTemplateTail
		case c == '$' && p.peekAt(1) == '{':
			p.raw = p.src[begin:p.pos]
			p.pos += 2
			p.value = sb.String()
			return tTemplateContinuation
		case c == '\\':
			r, next := p.unescape(p.pos + 1)
			sb.WriteRune(r)
			p.pos = next
		default:
			sb.WriteByte(c)
			p.pos++
		}
	}
}

var escapes = map[byte]rune{
	'b': '\b', 'f': '\f', 'n': '\n', 'r': '\r', 't': '\t', 'v': '\v', '0': 0,
}

// unescape decodes the escape sequence whose backslash is just before i. It
// returns the character and the index after the sequence. Characters
// without a special meaning stand for themselves.
func (p *parser) unescape(i int) (rune, int) {
	if i >= len(p.src) {
		p.failAt(i-1, i, ErrUnterminatedQuote, "unterminated escape sequence")
	}
	c := p.src[i]
	if r, ok := escapes[c]; ok {
		return r, i + 1
	}
	if c == 'u' && i+5 <= len(p.src) {
		if n, err := strconv.ParseUint(p.src[i+1:i+5], 16, 32); err == nil {
			return rune(n), i + 5
		}
	}
	r, size := utf8.DecodeRuneInString(p.src[i:])
	return r, i + size
}
