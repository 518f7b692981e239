// SPDX-License-Identifier: MIT

package expression

import (
	"fmt"
	"math"
)

// maxDepth bounds nesting so hostile input cannot exhaust the stack.
const maxDepth = 200

// parser is a recursive-descent parser over the token slice.
//
// Grammar (lowest precedence first):
//
//	expr    := term (('+' | '-') term)*
//	term    := unary (('*' | '/') unary)*
//	unary   := ('+' | '-') unary | power
//	power   := postfix ['**' unary]
//	postfix := atom ( '[' index (',' index)* ']' )*
//	atom    := number | name | name '(' [expr (',' expr)*] ')' | '(' expr ')'
//	index   := ['-'] integer
type parser struct {
	src   string
	toks  []token
	pos   int
	depth int
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tEOF {
		p.pos++
	}

	return t
}

func (p *parser) errorf(at token, format string, args ...any) error {
	return &SyntaxError{Source: p.src, Pos: at.pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) expect(kind tokenKind) (token, error) {
	t := p.next()
	if t.kind != kind {
		return t, p.errorf(t, "expected %s, found %s", kind, describe(t))
	}

	return t, nil
}

func describe(t token) string {
	if t.text != "" {
		return fmt.Sprintf("%s %q", t.kind, t.text)
	}

	return t.kind.String()
}

// enter/leave guard the nesting depth.
func (p *parser) enter() error {
	p.depth++
	if p.depth > maxDepth {
		return p.errorf(p.peek(), "expression nested deeper than %d levels", maxDepth)
	}

	return nil
}

func (p *parser) leave() { p.depth-- }

func (p *parser) parseProgram() (node, error) {
	if p.peek().kind == tEOF {
		return nil, p.errorf(p.peek(), "empty expression")
	}
	n, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tEOF {
		return nil, p.errorf(t, "unexpected %s", describe(t))
	}

	return n, nil
}

func (p *parser) parseExpr() (node, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		if t.kind != tPlus && t.kind != tMinus {
			return left, nil
		}
		p.next()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = &binaryNode{op: t.kind, pos: t.pos, l: left, r: right}
	}
}

func (p *parser) parseTerm() (node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		if t.kind != tStar && t.kind != tSlash {
			return left, nil
		}
		p.next()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &binaryNode{op: t.kind, pos: t.pos, l: left, r: right}
	}
}

func (p *parser) parseUnary() (node, error) {
	t := p.peek()
	if t.kind != tPlus && t.kind != tMinus {
		return p.parsePower()
	}
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()
	p.next()
	x, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	return &unaryNode{op: t.kind, pos: t.pos, x: x}, nil
}

func (p *parser) parsePower() (node, error) {
	base, err := p.parsePostfix()
	if err != nil {
		return nil, err
	}
	t := p.peek()
	if t.kind != tPow {
		return base, nil
	}
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()
	p.next()
	exp, err := p.parseUnary() // right-associative: 2**3**2 == 2**(3**2)
	if err != nil {
		return nil, err
	}

	return &binaryNode{op: tPow, pos: t.pos, l: base, r: exp}, nil
}

func (p *parser) parsePostfix() (node, error) {
	x, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tLBrack {
		open := p.next()
		var idx []int
		for {
			i, err := p.parseIndex()
			if err != nil {
				return nil, err
			}
			idx = append(idx, i)
			if p.peek().kind != tComma {
				break
			}
			p.next()
		}
		if _, err := p.expect(tRBrack); err != nil {
			return nil, err
		}
		x = &indexNode{pos: open.pos, x: x, idx: idx}
	}

	return x, nil
}

func (p *parser) parseIndex() (int, error) {
	neg := false
	if p.peek().kind == tMinus {
		p.next()
		neg = true
	}
	t := p.next()
	if t.kind != tNumber || t.num != math.Trunc(t.num) || math.IsInf(t.num, 0) || t.num > math.MaxInt32 {
		return 0, p.errorf(t, "subscript must be an integer literal, found %s", describe(t))
	}
	i := int(t.num)
	if neg {
		i = -i
	}

	return i, nil
}

func (p *parser) parseAtom() (node, error) {
	t := p.next()
	switch t.kind {
	case tNumber:
		return &numberNode{pos: t.pos, val: t.num}, nil
	case tIdent:
		if p.peek().kind != tLParen {
			return &nameNode{pos: t.pos, name: t.text}, nil
		}
		return p.parseCall(t)
	case tLParen:
		x, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tRParen); err != nil {
			return nil, err
		}
		return x, nil
	}

	return nil, p.errorf(t, "unexpected %s", describe(t))
}

func (p *parser) parseCall(name token) (node, error) {
	p.next() // '('
	call := &callNode{pos: name.pos, name: name.text}
	if p.peek().kind == tRParen {
		p.next()
		return call, nil
	}
	for {
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		call.args = append(call.args, arg)
		t := p.next()
		if t.kind == tRParen {
			return call, nil
		}
		if t.kind != tComma {
			return nil, p.errorf(t, "expected ',' or ')' in call to %s, found %s", name.text, describe(t))
		}
	}
}
