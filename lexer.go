package fastjson

import (
	"strings"
	"unicode/utf16"
)

// lexer produces tokens from a byte buffer. The cursor only moves forward.
// Line and column are tracked by counting LF bytes as the cursor advances.
type lexer struct {
	input     []byte
	off       int
	line      int // 1-based
	lineStart int // offset of the first byte of the current line
}

func newLexer(input []byte) *lexer {
	return &lexer{input: input, line: 1}
}

// pos returns the position of the current cursor offset.
func (l *lexer) pos() Pos {
	return Pos{Offset: l.off, Line: l.line, Column: l.off - l.lineStart + 1}
}

func (l *lexer) skipWhitespace() {
	for l.off < len(l.input) {
		switch l.input[l.off] {
		case ' ', '\t', '\r':
			l.off++
		case '\n':
			l.off++
			l.line++
			l.lineStart = l.off
		default:
			return
		}
	}
}

// next returns the next token, or a positioned error. At end of input it
// returns a tokEOF token, never an error.
func (l *lexer) next() (token, *Error) {
	l.skipWhitespace()
	if l.off >= len(l.input) {
		return token{kind: tokEOF, pos: l.pos()}, nil
	}

	start := l.pos()
	switch c := l.input[l.off]; c {
	case '{':
		l.off++
		return token{kind: tokObjectStart, pos: start}, nil
	case '}':
		l.off++
		return token{kind: tokObjectEnd, pos: start}, nil
	case '[':
		l.off++
		return token{kind: tokArrayStart, pos: start}, nil
	case ']':
		l.off++
		return token{kind: tokArrayEnd, pos: start}, nil
	case ':':
		l.off++
		return token{kind: tokColon, pos: start}, nil
	case ',':
		l.off++
		return token{kind: tokComma, pos: start}, nil
	case '"':
		return l.lexString()
	case 't':
		return l.lexLiteral("true", tokTrue)
	case 'f':
		return l.lexLiteral("false", tokFalse)
	case 'n':
		return l.lexLiteral("null", tokNull)
	default:
		if c == '-' || (c >= '0' && c <= '9') {
			return l.lexNumber()
		}
		return token{}, newSyntaxError(KindUnexpectedToken, start, "unexpected character %q", c)
	}
}

func (l *lexer) lexLiteral(lit string, kind tokenKind) (token, *Error) {
	start := l.pos()
	if len(l.input)-l.off >= len(lit) && string(l.input[l.off:l.off+len(lit)]) == lit {
		l.off += len(lit)
		return token{kind: kind, pos: start}, nil
	}
	return token{}, newSyntaxError(KindUnexpectedToken, start, "invalid literal, expected %q", lit)
}

// lexString scans a string literal. When the literal contains no escape
// sequences the token borrows the span between the quotes directly from the
// input buffer; otherwise it decodes into a fresh buffer.
func (l *lexer) lexString() (token, *Error) {
	start := l.pos() // at the opening quote
	l.off++
	contentStart := l.off

	for l.off < len(l.input) {
		switch l.input[l.off] {
		case '"':
			ref := borrowedString(l.input[contentStart:l.off])
			l.off++
			return token{kind: tokString, pos: start, str: ref}, nil
		case '\\':
			return l.lexEscapedString(start, contentStart)
		case '\n':
			l.off++
			l.line++
			l.lineStart = l.off
		default:
			l.off++
		}
	}
	return token{}, newSyntaxError(KindUnterminatedString, start, "string literal not closed")
}

// lexEscapedString continues a string literal from the first backslash,
// decoding escapes into an owned buffer.
func (l *lexer) lexEscapedString(start Pos, contentStart int) (token, *Error) {
	var sb strings.Builder
	sb.Write(l.input[contentStart:l.off])

	for l.off < len(l.input) {
		switch c := l.input[l.off]; c {
		case '"':
			l.off++
			return token{kind: tokString, pos: start, str: OwnedString(sb.String())}, nil
		case '\\':
			escPos := l.pos()
			l.off++
			if l.off >= len(l.input) {
				return token{}, newSyntaxError(KindUnterminatedString, start, "string literal not closed")
			}
			switch e := l.input[l.off]; e {
			case '"', '\\', '/':
				sb.WriteByte(e)
				l.off++
			case 'b':
				sb.WriteByte('\b')
				l.off++
			case 'f':
				sb.WriteByte('\f')
				l.off++
			case 'n':
				sb.WriteByte('\n')
				l.off++
			case 'r':
				sb.WriteByte('\r')
				l.off++
			case 't':
				sb.WriteByte('\t')
				l.off++
			case 'u':
				l.off++
				r, err := l.readUnicodeEscape(escPos)
				if err != nil {
					return token{}, err
				}
				sb.WriteRune(r)
			default:
				return token{}, newSyntaxError(KindInvalidEscape, escPos, `invalid escape sequence \%c`, e)
			}
		case '\n':
			sb.WriteByte(c)
			l.off++
			l.line++
			l.lineStart = l.off
		default:
			sb.WriteByte(c)
			l.off++
		}
	}
	return token{}, newSyntaxError(KindUnterminatedString, start, "string literal not closed")
}

// readUnicodeEscape reads the XXXX of a \uXXXX escape, composing surrogate
// pairs when a high surrogate is followed by a second \uXXXX escape.
func (l *lexer) readUnicodeEscape(escPos Pos) (rune, *Error) {
	r, err := l.readHex4()
	if err != nil {
		return 0, err
	}
	if !utf16.IsSurrogate(r) {
		return r, nil
	}
	if r >= 0xDC00 {
		return 0, newSyntaxError(KindInvalidEscape, escPos, `unpaired low surrogate \u%04X`, r)
	}
	if len(l.input)-l.off < 2 || l.input[l.off] != '\\' || l.input[l.off+1] != 'u' {
		return 0, newSyntaxError(KindInvalidEscape, escPos, `unpaired high surrogate \u%04X`, r)
	}
	l.off += 2
	r2, err := l.readHex4()
	if err != nil {
		return 0, err
	}
	dec := utf16.DecodeRune(r, r2)
	if dec == 0xFFFD {
		return 0, newSyntaxError(KindInvalidEscape, escPos, `invalid surrogate pair \u%04X\u%04X`, r, r2)
	}
	return dec, nil
}

func (l *lexer) readHex4() (rune, *Error) {
	var r rune
	for k := 0; k < 4; k++ {
		if l.off >= len(l.input) {
			return 0, newSyntaxError(KindInvalidEscape, l.pos(), `unexpected end of input in \u escape`)
		}
		c := l.input[l.off]
		var d rune
		switch {
		case c >= '0' && c <= '9':
			d = rune(c - '0')
		case c >= 'a' && c <= 'f':
			d = rune(c-'a') + 10
		case c >= 'A' && c <= 'F':
			d = rune(c-'A') + 10
		default:
			return 0, newSyntaxError(KindInvalidEscape, l.pos(), `invalid hex digit %q in \u escape`, c)
		}
		r = r<<4 | d
		l.off++
	}
	return r, nil
}

// lexNumber scans a number lexeme by span only; decoding happens later when
// a target type is known.
func (l *lexer) lexNumber() (token, *Error) {
	start := l.pos()
	lexStart := l.off

	if l.input[l.off] == '-' {
		l.off++
	}

	// integer part: 0 | [1-9][0-9]*
	switch {
	case l.off >= len(l.input) || !isDigit(l.input[l.off]):
		return token{}, newSyntaxError(KindMalformedNumber, l.pos(), "digit expected")
	case l.input[l.off] == '0':
		l.off++
		if l.off < len(l.input) && isDigit(l.input[l.off]) {
			return token{}, newSyntaxError(KindMalformedNumber, l.pos(), "leading zero in number")
		}
	default:
		for l.off < len(l.input) && isDigit(l.input[l.off]) {
			l.off++
		}
	}

	if l.off < len(l.input) && l.input[l.off] == '.' {
		l.off++
		if l.off >= len(l.input) || !isDigit(l.input[l.off]) {
			return token{}, newSyntaxError(KindMalformedNumber, l.pos(), "digit expected after decimal point")
		}
		for l.off < len(l.input) && isDigit(l.input[l.off]) {
			l.off++
		}
	}

	if l.off < len(l.input) && (l.input[l.off] == 'e' || l.input[l.off] == 'E') {
		l.off++
		if l.off < len(l.input) && (l.input[l.off] == '+' || l.input[l.off] == '-') {
			l.off++
		}
		if l.off >= len(l.input) || !isDigit(l.input[l.off]) {
			return token{}, newSyntaxError(KindMalformedNumber, l.pos(), "exponent has no digits")
		}
		for l.off < len(l.input) && isDigit(l.input[l.off]) {
			l.off++
		}
	}

	return token{kind: tokNumber, pos: start, lex: b2s(l.input[lexStart:l.off])}, nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
