package pbxparser

import (
	"fmt"
	"strings"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokLBrace
	tokRBrace
	tokLParen
	tokRParen
	tokEqual
	tokSemicolon
	tokComma
	tokString
	tokLiteral
	tokComment
	tokLineComment
)

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "end of input"
	case tokLBrace:
		return "'{'"
	case tokRBrace:
		return "'}'"
	case tokLParen:
		return "'('"
	case tokRParen:
		return "')'"
	case tokEqual:
		return "'='"
	case tokSemicolon:
		return "';'"
	case tokComma:
		return "','"
	case tokString:
		return "quoted string"
	case tokLiteral:
		return "literal"
	case tokComment, tokLineComment:
		return "comment"
	}
	return "unknown token"
}

type token struct {
	kind   tokenKind
	text   string
	line   int
	column int
}

// ParseError reports input that is not a pbxproj property list.
type ParseError struct {
	Line   int
	Column int
	Msg    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("pbxproj parse error at line %d, column %d: %s", e.Line, e.Column, e.Msg)
}

type lexer struct {
	src    []byte
	pos    int
	line   int
	column int
}

func newLexer(src []byte) *lexer {
	return &lexer{src: src, line: 1, column: 1}
}

func isLiteralChar(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	}
	return strings.IndexByte("_$/:.-+", c) >= 0
}

func (l *lexer) errorf(line, column int, format string, args ...interface{}) *ParseError {
	return &ParseError{Line: line, Column: column, Msg: fmt.Sprintf(format, args...)}
}

func (l *lexer) advance(n int) {
	for i := 0; i < n && l.pos < len(l.src); i++ {
		if l.src[l.pos] == '\n' {
			l.line++
			l.column = 1
		} else {
			l.column++
		}
		l.pos++
	}
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.src) {
		switch l.src[l.pos] {
		case ' ', '\t', '\r', '\n':
			l.advance(1)
		default:
			return
		}
	}
}

func (l *lexer) hasPrefix(s string) bool {
	return strings.HasPrefix(string(l.src[l.pos:min(len(l.src), l.pos+len(s))]), s)
}

func (l *lexer) next() (token, error) {
	l.skipSpace()
	tok := token{line: l.line, column: l.column}
	if l.pos >= len(l.src) {
		tok.kind = tokEOF
		return tok, nil
	}

	c := l.src[l.pos]
	switch c {
	case '{', '}', '(', ')', '=', ';', ',':
		tok.kind = map[byte]tokenKind{
			'{': tokLBrace, '}': tokRBrace, '(': tokLParen, ')': tokRParen,
			'=': tokEqual, ';': tokSemicolon, ',': tokComma,
		}[c]
		tok.text = string(c)
		l.advance(1)
		return tok, nil
	case '"':
		return l.quoted(tok)
	}

	if l.hasPrefix("/*") {
		end := strings.Index(string(l.src[l.pos+2:]), "*/")
		if end < 0 {
			return tok, l.errorf(tok.line, tok.column, "unterminated comment")
		}
		tok.kind = tokComment
		tok.text = strings.TrimSpace(string(l.src[l.pos+2 : l.pos+2+end]))
		l.advance(end + 4)
		return tok, nil
	}
	if l.hasPrefix("//") {
		end := strings.IndexByte(string(l.src[l.pos:]), '\n')
		if end < 0 {
			end = len(l.src) - l.pos
		}
		tok.kind = tokLineComment
		tok.text = strings.TrimSpace(string(l.src[l.pos+2 : l.pos+end]))
		l.advance(end)
		return tok, nil
	}

	if isLiteralChar(c) {
		start := l.pos
		for l.pos < len(l.src) && isLiteralChar(l.src[l.pos]) {
			// a comment opener ends the literal: `foo/*c*/`
			if l.hasPrefix("/*") || l.hasPrefix("//") {
				break
			}
			l.advance(1)
		}
		tok.kind = tokLiteral
		tok.text = string(l.src[start:l.pos])
		return tok, nil
	}

	return tok, l.errorf(tok.line, tok.column, "unexpected character %q", c)
}

// quoted keeps the string verbatim, quotes and escapes included, so that the
// writer can reproduce it untouched.
func (l *lexer) quoted(tok token) (token, error) {
	start := l.pos
	i := l.pos + 1
	for i < len(l.src) {
		switch l.src[i] {
		case '\\':
			i += 2
			continue
		case '"':
			tok.kind = tokString
			tok.text = string(l.src[start : i+1])
			l.advance(i + 1 - start)
			return tok, nil
		}
		i++
	}
	return tok, l.errorf(tok.line, tok.column, "unterminated quoted string")
}
