package syntax

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// TokenKind classifies a lexical token.
type TokenKind int

const (
	TokenWhitespace TokenKind = iota
	TokenNewline
	TokenLineComment
	TokenBlockComment
	TokenDirective
	TokenIdentifier
	TokenNumber
	TokenString
	TokenChar
	TokenPunct
)

// Token is a slice of the source text. Concatenating the Text of every token
// returned by Lex reproduces the input exactly.
type Token struct {
	Kind   TokenKind
	Text   string
	Offset int
}

// End returns the offset just past the token.
func (t Token) End() int {
	return t.Offset + len(t.Text)
}

// IsTrivia reports whether the token carries no semantics.
func (t Token) IsTrivia() bool {
	switch t.Kind {
	case TokenWhitespace, TokenNewline, TokenLineComment, TokenBlockComment, TokenDirective:
		return true
	}
	return false
}

// Is reports whether the token is significant and has the given text.
func (t Token) Is(text string) bool {
	return !t.IsTrivia() && t.Text == text
}

var multiPunct = []string{
	"=>", "::", "==", "!=", "<=", ">=", "&&", "||", "??", "++", "--", "->",
	"+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=",
}

type lexer struct {
	src       string
	pos       int
	lineStart bool
	tokens    []Token
}

// Lex splits src into tokens. It never fails: unrecognised characters become
// single-rune punctuation tokens and unterminated literals run to the end of
// the line or file.
func Lex(src string) []Token {
	l := &lexer{src: src, lineStart: true}
	for l.pos < len(l.src) {
		l.next()
	}
	return l.tokens
}

func (l *lexer) emit(kind TokenKind, end int) {
	l.tokens = append(l.tokens, Token{Kind: kind, Text: l.src[l.pos:end], Offset: l.pos})
	l.pos = end
}

func (l *lexer) next() {
	c := l.src[l.pos]

	switch {
	case c == '\n':
		l.emit(TokenNewline, l.pos+1)
		l.lineStart = true
		return
	case c == '\r':
		end := l.pos + 1
		if end < len(l.src) && l.src[end] == '\n' {
			end++
		}
		l.emit(TokenNewline, end)
		l.lineStart = true
		return
	case c == ' ' || c == '\t' || c == '\v' || c == '\f':
		end := l.pos
		for end < len(l.src) && isInlineSpace(l.src[end]) {
			end++
		}
		l.emit(TokenWhitespace, end)
		return
	case c == '#' && l.lineStart:
		l.emit(TokenDirective, l.lineEnd(l.pos))
		return
	}

	l.lineStart = false

	switch {
	case strings.HasPrefix(l.src[l.pos:], "//"):
		l.emit(TokenLineComment, l.lineEnd(l.pos))
	case strings.HasPrefix(l.src[l.pos:], "/*"):
		end := strings.Index(l.src[l.pos+2:], "*/")
		if end < 0 {
			l.emit(TokenBlockComment, len(l.src))
		} else {
			l.emit(TokenBlockComment, l.pos+2+end+2)
		}
	case c == '"' || c == '$' || (c == '@' && l.peekAt(1) == '"') || (c == '@' && l.peekAt(1) == '$'):
		if end, ok := l.scanString(l.pos); ok {
			l.emit(TokenString, end)
			return
		}
		l.emitRune()
	case c == '\'':
		l.emit(TokenChar, l.scanChar(l.pos))
	case c >= '0' && c <= '9':
		l.emit(TokenNumber, l.scanNumber(l.pos))
	case c == '@' || isIdentStart(l.src[l.pos:]):
		end := l.pos
		if c == '@' {
			end++
		}
		end = l.scanIdentRest(end)
		if end == l.pos || (c == '@' && end == l.pos+1) {
			l.emitRune()
			return
		}
		l.emit(TokenIdentifier, end)
	default:
		for _, p := range multiPunct {
			if strings.HasPrefix(l.src[l.pos:], p) {
				l.emit(TokenPunct, l.pos+len(p))
				return
			}
		}
		l.emitRune()
	}
}

func (l *lexer) emitRune() {
	_, size := utf8.DecodeRuneInString(l.src[l.pos:])
	l.emit(TokenPunct, l.pos+size)
}

func (l *lexer) peekAt(n int) byte {
	if l.pos+n < len(l.src) {
		return l.src[l.pos+n]
	}
	return 0
}

func (l *lexer) lineEnd(from int) int {
	end := strings.IndexAny(l.src[from:], "\r\n")
	if end < 0 {
		return len(l.src)
	}
	return from + end
}

func isInlineSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\v' || c == '\f'
}

func isIdentStart(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return r == '_' || unicode.IsLetter(r)
}

func (l *lexer) scanIdentRest(pos int) int {
	for pos < len(l.src) {
		r, size := utf8.DecodeRuneInString(l.src[pos:])
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			break
		}
		pos += size
	}
	return pos
}

func (l *lexer) scanNumber(pos int) int {
	for pos < len(l.src) {
		c := l.src[pos]
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '_':
			pos++
		case c == '.' && pos+1 < len(l.src) && l.src[pos+1] >= '0' && l.src[pos+1] <= '9':
			pos++
		default:
			return pos
		}
	}
	return pos
}

func (l *lexer) scanChar(pos int) int {
	pos++
	for pos < len(l.src) {
		switch l.src[pos] {
		case '\\':
			pos += 2
		case '\'':
			return pos + 1
		case '\n', '\r':
			return pos
		default:
			pos++
		}
	}
	return len(l.src)
}

// scanString scans any string literal form starting at pos. It reports false
// when the text at pos is not a string literal after all (a lone '$').
func (l *lexer) scanString(pos int) (int, bool) {
	verbatim, dollars := false, 0
	i := pos
	for i < len(l.src) {
		switch l.src[i] {
		case '@':
			verbatim = true
			i++
			continue
		case '$':
			dollars++
			i++
			continue
		}
		break
	}
	if i >= len(l.src) || l.src[i] != '"' {
		return 0, false
	}

	if strings.HasPrefix(l.src[i:], `"""`) {
		return l.scanRawString(i), true
	}
	return l.scanQuoted(i+1, verbatim, dollars > 0), true
}

func (l *lexer) scanRawString(pos int) int {
	quotes := 0
	for pos+quotes < len(l.src) && l.src[pos+quotes] == '"' {
		quotes++
	}
	closing := strings.Repeat(`"`, quotes)
	end := strings.Index(l.src[pos+quotes:], closing)
	if end < 0 {
		return len(l.src)
	}
	end = pos + quotes + end + quotes
	for end < len(l.src) && l.src[end] == '"' {
		end++
	}
	return end
}

func (l *lexer) scanQuoted(pos int, verbatim, interpolated bool) int {
	for pos < len(l.src) {
		c := l.src[pos]
		switch {
		case c == '"':
			if verbatim && pos+1 < len(l.src) && l.src[pos+1] == '"' {
				pos += 2
				continue
			}
			return pos + 1
		case c == '\\' && !verbatim:
			pos += 2
		case (c == '\n' || c == '\r') && !verbatim:
			return pos
		case c == '{' && interpolated:
			if pos+1 < len(l.src) && l.src[pos+1] == '{' {
				pos += 2
				continue
			}
			pos = l.scanHole(pos + 1)
		default:
			pos++
		}
	}
	return len(l.src)
}

// scanHole skips an interpolation hole and returns the offset after its
// closing brace.
func (l *lexer) scanHole(pos int) int {
	depth := 0
	for pos < len(l.src) {
		c := l.src[pos]
		switch {
		case c == '{':
			depth++
			pos++
		case c == '}':
			if depth == 0 {
				return pos + 1
			}
			depth--
			pos++
		case c == '"' || ((c == '$' || c == '@') && (l.srcAt(pos+1) == '"' || l.srcAt(pos+1) == '$' || l.srcAt(pos+1) == '@')):
			sub := &lexer{src: l.src}
			end, ok := sub.scanString(pos)
			if !ok {
				pos++
				continue
			}
			pos = end
		case c == '\'':
			pos = l.scanChar(pos)
		case strings.HasPrefix(l.src[pos:], "/*"):
			end := strings.Index(l.src[pos+2:], "*/")
			if end < 0 {
				return len(l.src)
			}
			pos += 2 + end + 2
		default:
			pos++
		}
	}
	return len(l.src)
}

func (l *lexer) srcAt(i int) byte {
	if i < len(l.src) {
		return l.src[i]
	}
	return 0
}
