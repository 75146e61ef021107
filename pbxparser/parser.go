package pbxparser

import (
	"bytes"
	"io"
	"regexp"
	"strconv"
)

const (
	HeadCommentKey = "headComment"
	ProjectKey     = "project"

	CommentKeySuffix = "_comment"
)

var (
	sectionBeginRegex = regexp.MustCompile(`^Begin (\S+) section$`)
	sectionEndRegex   = regexp.MustCompile(`^End (\S+) section$`)
	intRegex          = regexp.MustCompile(`^(0|[1-9][0-9]{0,17})$`)
)

type parser struct {
	lex    *lexer
	peeked *token
}

// Parse reads a pbxproj document. The result holds the header comment under
// HeadCommentKey and the root dictionary under ProjectKey.
func Parse(data []byte) (Object, error) {
	p := &parser{lex: newLexer(data)}
	return p.parseDocument()
}

func ParseReader(r io.Reader) (Object, error) {
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		return Object{}, err
	}
	return Parse(buf.Bytes())
}

func (p *parser) next() (token, error) {
	if p.peeked != nil {
		tok := *p.peeked
		p.peeked = nil
		return tok, nil
	}
	return p.lex.next()
}

func (p *parser) peek() (token, error) {
	if p.peeked != nil {
		return *p.peeked, nil
	}
	tok, err := p.lex.next()
	if err != nil {
		return tok, err
	}
	p.peeked = &tok
	return tok, nil
}

func unexpected(tok token, want string) *ParseError {
	return &ParseError{Line: tok.line, Column: tok.column, Msg: "expected " + want + ", found " + tok.kind.String()}
}

func (p *parser) parseDocument() (Object, error) {
	doc := NewObject()
	for {
		tok, err := p.next()
		if err != nil {
			return Object{}, err
		}
		switch tok.kind {
		case tokLineComment:
			if !doc.Has(HeadCommentKey) {
				doc.Set(HeadCommentKey, tok.text)
			}
			continue
		case tokComment:
			continue
		case tokLBrace:
			root, err := p.parseDict()
			if err != nil {
				return Object{}, err
			}
			doc.Set(ProjectKey, root)
			return doc, p.expectEnd()
		default:
			return Object{}, unexpected(tok, "'{'")
		}
	}
}

func (p *parser) expectEnd() error {
	for {
		tok, err := p.next()
		if err != nil {
			return err
		}
		switch tok.kind {
		case tokEOF:
			return nil
		case tokComment, tokLineComment:
			continue
		default:
			return unexpected(tok, "end of input")
		}
	}
}

// parseDict parses the body of a dictionary whose '{' was consumed. Entries between
// "Begin X section" and "End X section" banners land in a nested Object X.
func (p *parser) parseDict() (Object, error) {
	result := NewObject()
	target := result
	section := ""
	var sectionTok token

	for {
		tok, err := p.next()
		if err != nil {
			return Object{}, err
		}
		switch tok.kind {
		case tokRBrace:
			if section != "" {
				return Object{}, &ParseError{Line: sectionTok.line, Column: sectionTok.column, Msg: "unterminated section " + section}
			}
			return result, nil
		case tokComment:
			if m := sectionBeginRegex.FindStringSubmatch(tok.text); m != nil {
				if section != "" {
					return Object{}, &ParseError{Line: tok.line, Column: tok.column, Msg: "section " + m[1] + " opened inside section " + section}
				}
				section, sectionTok = m[1], tok
				target = result.GetObject(section)
				if target.IsNil() {
					target = NewObject()
					result.Set(section, target)
				}
			} else if m := sectionEndRegex.FindStringSubmatch(tok.text); m != nil {
				if m[1] != section {
					return Object{}, &ParseError{Line: tok.line, Column: tok.column, Msg: "unbalanced end of section " + m[1]}
				}
				section = ""
				target = result
			}
		case tokLineComment:
		case tokString, tokLiteral:
			if err := p.parseAssignment(tok.text, target); err != nil {
				return Object{}, err
			}
		default:
			return Object{}, unexpected(tok, "key or '}'")
		}
	}
}

func (p *parser) parseAssignment(key string, target Object) error {
	keyComment := ""
	tok, err := p.next()
	if err != nil {
		return err
	}
	if tok.kind == tokComment {
		keyComment = tok.text
		if tok, err = p.next(); err != nil {
			return err
		}
	}
	if tok.kind != tokEqual {
		return unexpected(tok, "'='")
	}

	value, err := p.parseValue()
	if err != nil {
		return err
	}
	valueComment, err := p.optionalComment()
	if err != nil {
		return err
	}

	if tok, err = p.next(); err != nil {
		return err
	}
	if tok.kind != tokSemicolon {
		return unexpected(tok, "';'")
	}

	target.Set(key, value)
	if keyComment != "" {
		target.Set(key+CommentKeySuffix, keyComment)
	} else if valueComment != "" {
		target.Set(key+CommentKeySuffix, valueComment)
	}
	return nil
}

func (p *parser) optionalComment() (string, error) {
	tok, err := p.peek()
	if err != nil {
		return "", err
	}
	if tok.kind != tokComment {
		return "", nil
	}
	p.peeked = nil
	return tok.text, nil
}

func (p *parser) parseValue() (interface{}, error) {
	tok, err := p.next()
	if err != nil {
		return nil, err
	}
	switch tok.kind {
	case tokLBrace:
		return p.parseDict()
	case tokLParen:
		return p.parseArray()
	case tokString:
		return tok.text, nil
	case tokLiteral:
		if intRegex.MatchString(tok.text) {
			if n, err := strconv.Atoi(tok.text); err == nil {
				return n, nil
			}
		}
		return tok.text, nil
	case tokComment:
		// `key = /* c */ value;` is not produced by Xcode but is harmless.
		return p.parseValue()
	}
	return nil, unexpected(tok, "value")
}

// parseArray parses list items after '('. A commented scalar item becomes an
// Object{value, comment}.
func (p *parser) parseArray() ([]interface{}, error) {
	list := []interface{}{}
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		switch tok.kind {
		case tokRParen:
			p.peeked = nil
			return list, nil
		case tokComment, tokLineComment:
			p.peeked = nil
			continue
		}

		value, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		comment, err := p.optionalComment()
		if err != nil {
			return nil, err
		}
		if str, ok := value.(string); ok && comment != "" {
			value = NewObjectWithData([]ObjectItem{
				NewObjectItem("value", str),
				NewObjectItem("comment", comment),
			})
		}
		list = append(list, value)

		tok, err = p.next()
		if err != nil {
			return nil, err
		}
		switch tok.kind {
		case tokComma:
		case tokRParen:
			return list, nil
		default:
			return nil, unexpected(tok, "',' or ')'")
		}
	}
}
