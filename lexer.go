package dejson

import (
	"fmt"
	"unicode/utf16"
	"unicode/utf8"
)

type tokenKind int

const (
	tokenEOF tokenKind = iota
	tokenNull
	tokenTrue
	tokenFalse
	tokenNumber
	tokenString
	tokenBeginArray
	tokenEndArray
	tokenBeginObject
	tokenEndObject
	tokenComma
	tokenColon
)

// token is transient: produced lazily, consumed immediately, never stored.
// line and column are 1-indexed and point at the token's first character.
type token struct {
	kind   tokenKind
	line   int
	column int
	str    string // decoded payload for tokenString
	raw    []byte // raw literal for tokenNumber, kept uninterpreted
}

type lexer struct {
	data      []byte
	pos       int
	line      int
	lineStart int
	faults    Sink
}

func newLexer(data []byte, faults Sink) *lexer {
	return &lexer{data: data, line: 1, faults: faults}
}

func (l *lexer) column(pos int) int {
	return pos - l.lineStart + 1
}

// Strings reject raw control characters and literals contain no newlines,
// so line accounting only needs to happen here.
func (l *lexer) skipWhitespace() {
	for l.pos < len(l.data) {
		switch l.data[l.pos] {
		case ' ', '\t', '\r':
			l.pos++
		case '\n':
			l.pos++
			l.line++
			l.lineStart = l.pos
		default:
			return
		}
	}
}

func (l *lexer) next() (token, error) {
	l.skipWhitespace()
	if l.pos >= len(l.data) {
		return token{kind: tokenEOF, line: l.line, column: l.column(l.pos)}, nil
	}
	tok := token{line: l.line, column: l.column(l.pos)}
	switch c := l.data[l.pos]; c {
	case '{':
		l.pos++
		tok.kind = tokenBeginObject
	case '}':
		l.pos++
		tok.kind = tokenEndObject
	case '[':
		l.pos++
		tok.kind = tokenBeginArray
	case ']':
		l.pos++
		tok.kind = tokenEndArray
	case ',':
		l.pos++
		tok.kind = tokenComma
	case ':':
		l.pos++
		tok.kind = tokenColon
	case '"':
		decoded, err := l.scanString()
		if err != nil {
			return token{}, err
		}
		tok.kind = tokenString
		tok.str = decoded
	case 't':
		if !l.match("true") {
			return token{}, l.faults.FormatError(tok.line, tok.column, "invalid literal")
		}
		tok.kind = tokenTrue
	case 'f':
		if !l.match("false") {
			return token{}, l.faults.FormatError(tok.line, tok.column, "invalid literal")
		}
		tok.kind = tokenFalse
	case 'n':
		if !l.match("null") {
			return token{}, l.faults.FormatError(tok.line, tok.column, "invalid literal")
		}
		tok.kind = tokenNull
	default:
		if c == '-' || (c >= '0' && c <= '9') {
			raw, err := l.scanNumber()
			if err != nil {
				return token{}, err
			}
			tok.kind = tokenNumber
			tok.raw = raw
			break
		}
		return token{}, l.faults.FormatError(tok.line, tok.column, fmt.Sprintf("invalid character %q", c))
	}
	return tok, nil
}

func (l *lexer) match(literal string) bool {
	end := l.pos + len(literal)
	if end > len(l.data) || string(l.data[l.pos:end]) != literal {
		return false
	}
	l.pos = end
	return true
}

// scanNumber validates the RFC 8259 number grammar and returns the raw
// slice uninterpreted so the Visitor chooses integer vs floating decoding.
func (l *lexer) scanNumber() ([]byte, error) {
	start := l.pos
	fail := func() ([]byte, error) {
		return nil, l.faults.FormatError(l.line, l.column(start), "invalid number literal")
	}
	if l.pos < len(l.data) && l.data[l.pos] == '-' {
		l.pos++
	}
	switch {
	case l.pos >= len(l.data):
		return fail()
	case l.data[l.pos] == '0':
		l.pos++
	case l.data[l.pos] >= '1' && l.data[l.pos] <= '9':
		for l.pos < len(l.data) && isDigit(l.data[l.pos]) {
			l.pos++
		}
	default:
		return fail()
	}
	if l.pos < len(l.data) && l.data[l.pos] == '.' {
		l.pos++
		if l.pos >= len(l.data) || !isDigit(l.data[l.pos]) {
			return fail()
		}
		for l.pos < len(l.data) && isDigit(l.data[l.pos]) {
			l.pos++
		}
	}
	if l.pos < len(l.data) && (l.data[l.pos] == 'e' || l.data[l.pos] == 'E') {
		l.pos++
		if l.pos < len(l.data) && (l.data[l.pos] == '+' || l.data[l.pos] == '-') {
			l.pos++
		}
		if l.pos >= len(l.data) || !isDigit(l.data[l.pos]) {
			return fail()
		}
		for l.pos < len(l.data) && isDigit(l.data[l.pos]) {
			l.pos++
		}
	}
	return l.data[start:l.pos], nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// scanString decodes a string literal starting at the opening quote.
func (l *lexer) scanString() (string, error) {
	l.pos++
	start := l.pos
	i := start
	for i < len(l.data) {
		c := l.data[i]
		if c == '"' {
			segment := l.data[start:i]
			if at, ok := firstInvalidUTF8(segment); !ok {
				return "", l.faults.FormatError(l.line, l.column(start+at), "invalid UTF-8 sequence in string")
			}
			l.pos = i + 1
			// Copy so decoded strings never alias the caller's input buffer.
			return string(segment), nil
		}
		if c == '\\' {
			break
		}
		if c < 0x20 {
			return "", l.faults.FormatError(l.line, l.column(i), "invalid control character in string")
		}
		i++
	}
	if i >= len(l.data) {
		return "", l.faults.FormatError(l.line, l.column(len(l.data)), "unterminated string")
	}

	prefix := l.data[start:i]
	if at, ok := firstInvalidUTF8(prefix); !ok {
		return "", l.faults.FormatError(l.line, l.column(start+at), "invalid UTF-8 sequence in string")
	}
	out := make([]byte, 0, len(l.data)-start)
	out = append(out, prefix...)
	for i < len(l.data) {
		switch c := l.data[i]; {
		case c == '"':
			l.pos = i + 1
			return string(out), nil
		case c == '\\':
			decoded, next, err := l.decodeEscape(i)
			if err != nil {
				return "", err
			}
			out = append(out, decoded...)
			i = next
		case c < 0x20:
			return "", l.faults.FormatError(l.line, l.column(i), "invalid control character in string")
		case c < utf8.RuneSelf:
			out = append(out, c)
			i++
		default:
			r, size := utf8.DecodeRune(l.data[i:])
			if r == utf8.RuneError && size == 1 {
				return "", l.faults.FormatError(l.line, l.column(i), "invalid UTF-8 sequence in string")
			}
			out = append(out, l.data[i:i+size]...)
			i += size
		}
	}
	return "", l.faults.FormatError(l.line, l.column(len(l.data)), "unterminated string")
}

// decodeEscape decodes one escape sequence starting at the backslash and
// returns the decoded bytes plus the index just past the sequence.
func (l *lexer) decodeEscape(at int) ([]byte, int, error) {
	if at+1 >= len(l.data) {
		return nil, 0, l.faults.FormatError(l.line, l.column(len(l.data)), "unterminated string")
	}
	switch c := l.data[at+1]; c {
	case '"', '\\', '/':
		return []byte{c}, at + 2, nil
	case 'b':
		return []byte{'\b'}, at + 2, nil
	case 'f':
		return []byte{'\f'}, at + 2, nil
	case 'n':
		return []byte{'\n'}, at + 2, nil
	case 'r':
		return []byte{'\r'}, at + 2, nil
	case 't':
		return []byte{'\t'}, at + 2, nil
	case 'u':
		return l.decodeUnicodeEscape(at)
	default:
		return nil, 0, l.faults.FormatError(l.line, l.column(at+1), fmt.Sprintf("invalid escape character %q", c))
	}
}

func (l *lexer) decodeUnicodeEscape(at int) ([]byte, int, error) {
	if at+6 > len(l.data) {
		return nil, 0, l.faults.FormatError(l.line, l.column(at), "invalid unicode escape")
	}
	r, ok := parseHex4(l.data[at+2 : at+6])
	if !ok {
		return nil, 0, l.faults.FormatError(l.line, l.column(at), "invalid unicode escape")
	}
	next := at + 6
	if utf16.IsSurrogate(r) {
		// Supplementary plane characters arrive as a surrogate pair.
		if next+6 > len(l.data) || l.data[next] != '\\' || l.data[next+1] != 'u' {
			return nil, 0, l.faults.FormatError(l.line, l.column(at), "invalid surrogate pair")
		}
		r2, ok := parseHex4(l.data[next+2 : next+6])
		if !ok {
			return nil, 0, l.faults.FormatError(l.line, l.column(at), "invalid surrogate pair")
		}
		decoded := utf16.DecodeRune(r, r2)
		if decoded == utf8.RuneError {
			return nil, 0, l.faults.FormatError(l.line, l.column(at), "invalid surrogate pair")
		}
		return utf8.AppendRune(nil, decoded), next + 6, nil
	}
	return utf8.AppendRune(nil, r), next, nil
}

func parseHex4(b []byte) (rune, bool) {
	var v rune
	for i := 0; i < 4; i++ {
		c := b[i]
		var d rune
		switch {
		case c >= '0' && c <= '9':
			d = rune(c - '0')
		case c >= 'a' && c <= 'f':
			d = rune(c-'a') + 10
		case c >= 'A' && c <= 'F':
			d = rune(c-'A') + 10
		default:
			return 0, false
		}
		v = (v << 4) | d
	}
	return v, true
}

func firstInvalidUTF8(data []byte) (int, bool) {
	for i := 0; i < len(data); {
		if data[i] < utf8.RuneSelf {
			i++
			continue
		}
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size == 1 {
			return i, false
		}
		i += size
	}
	return 0, true
}
