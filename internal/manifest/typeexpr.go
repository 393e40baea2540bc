package manifest

import (
	"fmt"
	"strings"
	"unicode"
)

// typeExpr is an unresolved type expression such as
// "System.Collections.Generic.List<string?>[]".
type typeExpr struct {
	name string
	args []*typeExpr
	// elem is set for arrays.
	elem     *typeExpr
	nullable bool
}

func (e *typeExpr) dotted() bool {
	return strings.Contains(e.name, ".")
}

type exprParser struct {
	src string
	pos int
}

// parseTypeExpr parses Name[<Args>] followed by any number of '?' and '[]' suffixes.
func parseTypeExpr(src string) (*typeExpr, error) {
	p := &exprParser{src: src}
	e, err := p.parseType()
	if err != nil {
		return nil, err
	}

	p.skipSpace()
	if p.pos < len(p.src) {
		return nil, p.errorf("unexpected %q", p.src[p.pos:])
	}
	return e, nil
}

func (p *exprParser) parseType() (*typeExpr, error) {
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	e := &typeExpr{name: name}

	p.skipSpace()
	if p.peek('<') {
		p.pos++
		for {
			arg, err := p.parseType()
			if err != nil {
				return nil, err
			}
			e.args = append(e.args, arg)

			p.skipSpace()
			if p.peek(',') {
				p.pos++
				continue
			}
			if p.peek('>') {
				p.pos++
				break
			}
			return nil, p.errorf("expected ',' or '>'")
		}
	}

	for {
		p.skipSpace()
		switch {
		case p.peek('?'):
			if e.nullable {
				return nil, p.errorf("duplicate '?'")
			}
			e.nullable = true
			p.pos++
		case p.peek('['):
			p.pos++
			p.skipSpace()
			if !p.peek(']') {
				return nil, p.errorf("expected ']'")
			}
			p.pos++
			e = &typeExpr{elem: e}
		default:
			return e, nil
		}
	}
}

// parseName reads a dotted identifier.
func (p *exprParser) parseName() (string, error) {
	p.skipSpace()
	start := p.pos
	for {
		ident := p.parseIdent()
		if ident == "" {
			return "", p.errorf("expected identifier")
		}
		if !p.peek('.') {
			break
		}
		p.pos++
	}
	return p.src[start:p.pos], nil
}

func (p *exprParser) parseIdent() string {
	start := p.pos
	for i, r := range p.src[p.pos:] {
		if r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)) {
			continue
		}
		p.pos = start + i
		return p.src[start:p.pos]
	}
	p.pos = len(p.src)
	return p.src[start:]
}

func (p *exprParser) peek(c byte) bool {
	return p.pos < len(p.src) && p.src[p.pos] == c
}

func (p *exprParser) skipSpace() {
	for p.pos < len(p.src) && p.src[p.pos] == ' ' {
		p.pos++
	}
}

func (p *exprParser) errorf(msg string, args ...any) error {
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	return &SyntaxError{Expr: p.src, Pos: p.pos, Msg: msg}
}
