package cjslexer

import (
	"bytes"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"
	"unicode/utf8"
)

type tokenKind int

const (
	tokIdent tokenKind = iota
	tokPunct
	tokString
	tokNumber
	tokTemplate
	tokRegex
	// tokBadString is a string literal with an escape that cannot be decoded. It never
	// names an export.
	tokBadString
)

type token struct {
	kind tokenKind
	text string
}

// punctuators sorted longest first so that the first prefix match wins.
var punctuators = []string{
	">>>=",
	"...", "===", "!==", "**=", "<<=", ">>=", ">>>", "&&=", "||=", "??=",
	"==", "!=", "<=", ">=", "=>", "+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=",
	"&&", "||", "??", "?.", "++", "--", "**", "<<", ">>",
}

// lexer splits source into tokens, dropping comments and whitespace.
// Template literal text and regular expressions become single opaque tokens so that
// their content is never mistaken for code.
type lexer struct {
	src      []byte
	pos      int
	tokens   []token
	keywords map[string]bool

	// templates holds the brace depth of each open template substitution.
	templates []int
}

func tokenize(src []byte, regexKeywords map[string]bool) []token {
	l := &lexer{src: src, keywords: regexKeywords}
	l.run()
	return l.tokens
}

func (l *lexer) run() {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f':
			l.pos++
		case c == '/' && l.peek(1) == '/':
			l.skipLineComment()
		case c == '/' && l.peek(1) == '*':
			l.skipBlockComment()
		case c == '#' && l.pos == 0 && l.peek(1) == '!':
			l.skipLineComment()
		case c == '\'' || c == '"':
			l.readString(c)
		case c == '`':
			l.pos++
			l.readTemplate()
		case c == '/':
			if l.regexAllowed() {
				l.readRegex()
			} else {
				l.readPunct()
			}
		case isIdentStart(c):
			l.readIdent()
		case isDigit(c) || (c == '.' && isDigit(l.peek(1))):
			l.readNumber()
		case c == '{':
			if n := len(l.templates); n > 0 {
				l.templates[n-1]++
			}
			l.emit(tokPunct, "{")
			l.pos++
		case c == '}':
			if n := len(l.templates); n > 0 {
				if l.templates[n-1] == 0 {
					l.templates = l.templates[:n-1]
					l.pos++
					l.readTemplate()
					continue
				}
				l.templates[n-1]--
			}
			l.emit(tokPunct, "}")
			l.pos++
		default:
			l.readPunct()
		}
	}
}

func (l *lexer) peek(offset int) byte {
	if i := l.pos + offset; i < len(l.src) {
		return l.src[i]
	}
	return 0
}

func (l *lexer) emit(kind tokenKind, text string) {
	l.tokens = append(l.tokens, token{kind: kind, text: text})
}

func (l *lexer) skipLineComment() {
	for l.pos < len(l.src) && l.src[l.pos] != '\n' {
		l.pos++
	}
}

func (l *lexer) skipBlockComment() {
	end := bytes.Index(l.src[l.pos+2:], []byte("*/"))
	if end < 0 {
		l.pos = len(l.src)
		return
	}
	l.pos += end + 4
}

// readString emits the decoded value of a quoted string.
func (l *lexer) readString(quote byte) {
	l.pos++
	var b strings.Builder
	kind := tokString
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch c {
		case quote:
			l.pos++
			l.emit(kind, b.String())
			return
		case '\\':
			l.pos++
			if !l.readEscape(&b) {
				kind = tokBadString
			}
		case '\n':
			// Unterminated string.
			l.emit(kind, b.String())
			return
		default:
			b.WriteByte(c)
			l.pos++
		}
	}
	l.emit(kind, b.String())
}

// readEscape decodes the escape sequence after a backslash and reports whether it was
// understood. Legacy octal escapes are not.
func (l *lexer) readEscape(b *strings.Builder) bool {
	if l.pos >= len(l.src) {
		return false
	}
	c := l.src[l.pos]
	l.pos++

	switch c {
	case 'n':
		b.WriteByte('\n')
	case 't':
		b.WriteByte('\t')
	case 'r':
		b.WriteByte('\r')
	case 'b':
		b.WriteByte('\b')
	case 'f':
		b.WriteByte('\f')
	case 'v':
		b.WriteByte('\v')
	case '0':
		if isDigit(l.peek(0)) {
			return false
		}
		b.WriteByte(0)
	case '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return false
	case '\r':
		// Line continuation, optionally CRLF.
		if l.peek(0) == '\n' {
			l.pos++
		}
	case '\n':
	case 'x':
		r, ok := l.hex(2)
		if !ok {
			return false
		}
		b.WriteRune(r)
	case 'u':
		r, ok := l.unicodeEscape()
		if !ok {
			return false
		}
		b.WriteRune(r)
	default:
		// Identity escapes such as \' and \\. U+2028 and U+2029 continue the line.
		r, size := utf8.DecodeRune(l.src[l.pos-1:])
		l.pos += size - 1
		if r == '\u2028' || r == '\u2029' {
			return true
		}
		b.WriteRune(r)
	}
	return true
}

// unicodeEscape decodes the part of \uHHHH or \u{H...} after the "u", joining
// surrogate pairs written as two escapes.
func (l *lexer) unicodeEscape() (rune, bool) {
	if l.peek(0) == '{' {
		end := bytes.IndexByte(l.src[l.pos:], '}')
		if end < 2 {
			return 0, false
		}
		v, err := strconv.ParseUint(string(l.src[l.pos+1:l.pos+end]), 16, 32)
		if err != nil || v > unicode.MaxRune || utf16.IsSurrogate(rune(v)) {
			return 0, false
		}
		l.pos += end + 1
		return rune(v), true
	}

	r, ok := l.hex(4)
	if !ok {
		return 0, false
	}
	if !utf16.IsSurrogate(r) {
		return r, true
	}
	if l.peek(0) != '\\' || l.peek(1) != 'u' {
		return 0, false
	}
	l.pos += 2
	lo, ok := l.hex(4)
	if !ok {
		return 0, false
	}
	joined := utf16.DecodeRune(r, lo)
	return joined, joined != utf8.RuneError
}

// hex reads exactly n hex digits.
func (l *lexer) hex(n int) (rune, bool) {
	if l.pos+n > len(l.src) {
		return 0, false
	}
	v, err := strconv.ParseUint(string(l.src[l.pos:l.pos+n]), 16, 32)
	if err != nil {
		return 0, false
	}
	l.pos += n
	return rune(v), true
}

// readTemplate scans template text up to the closing backtick or the next substitution.
func (l *lexer) readTemplate() {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == '\\':
			l.pos += 2
		case c == '`':
			l.pos++
			l.emit(tokTemplate, "`")
			return
		case c == '$' && l.peek(1) == '{':
			l.pos += 2
			l.templates = append(l.templates, 0)
			l.emit(tokTemplate, "${")
			return
		default:
			l.pos++
		}
	}
	l.emit(tokTemplate, "`")
}

func (l *lexer) readRegex() {
	start := l.pos
	l.pos++
	inClass := false
loop:
	for l.pos < len(l.src) {
		switch l.src[l.pos] {
		case '\\':
			l.pos++
		case '[':
			inClass = true
		case ']':
			inClass = false
		case '/':
			if !inClass {
				l.pos++
				break loop
			}
		case '\n':
			break loop
		}
		l.pos++
	}
	for l.pos < len(l.src) && isIdentPart(l.src[l.pos]) {
		l.pos++
	}
	l.emit(tokRegex, string(l.src[start:l.pos]))
}

// regexAllowed reports whether a slash at the current position starts a regular
// expression rather than a division, judged by the previous token.
func (l *lexer) regexAllowed() bool {
	if len(l.tokens) == 0 {
		return true
	}
	prev := l.tokens[len(l.tokens)-1]
	switch prev.kind {
	case tokPunct:
		switch prev.text {
		case ")", "]", "++", "--":
			return false
		}
		return true
	case tokIdent:
		return l.keywords[prev.text]
	case tokTemplate:
		return prev.text == "${"
	default:
		return false
	}
}

func (l *lexer) readIdent() {
	start := l.pos
	for l.pos < len(l.src) && isIdentPart(l.src[l.pos]) {
		l.pos++
	}
	l.emit(tokIdent, string(l.src[start:l.pos]))
}

func (l *lexer) readNumber() {
	start := l.pos
	for l.pos < len(l.src) && (isIdentPart(l.src[l.pos]) || l.src[l.pos] == '.') {
		l.pos++
	}
	l.emit(tokNumber, string(l.src[start:l.pos]))
}

func (l *lexer) readPunct() {
	rest := l.src[l.pos:]
	for _, p := range punctuators {
		if len(rest) >= len(p) && string(rest[:len(p)]) == p {
			l.emit(tokPunct, p)
			l.pos += len(p)
			return
		}
	}
	l.emit(tokPunct, string(rest[:1]))
	l.pos++
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= 0x80
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
