// SPDX-License-Identifier: MIT

package expression

import (
	"sort"
	"strings"

	"github.com/katalvlaran/lvparam/parameters"
)

// Program is a compiled expression. It holds only the source text and an
// immutable tree, so one Program may be evaluated from many goroutines.
type Program struct {
	src  string
	root node
}

// Compile parses src once. Every lexical or grammatical problem is reported
// here as a *SyntaxError; nothing is deferred to Eval.
func Compile(src string) (*Program, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{src: src, toks: toks}
	root, err := p.parseProgram()
	if err != nil {
		return nil, err
	}

	return &Program{src: src, root: root}, nil
}

// MustCompile is Compile that panics on error; for package-level fixtures.
func MustCompile(src string) *Program {
	p, err := Compile(src)
	if err != nil {
		panic(err)
	}

	return p
}

// Eval runs the program against env. Errors are *EvalError.
func (p *Program) Eval(env Env) (parameters.Array, error) {
	return p.root.eval(env)
}

// Source returns the text the program was compiled from.
func (p *Program) Source() string { return p.src }

// Names returns the free names used as operands (call targets excluded), sorted.
func (p *Program) Names() []string {
	seen := make(map[string]struct{})
	p.root.names(seen)
	out := make([]string, 0, len(seen))
	for n := range seen {
		out = append(out, n)
	}
	sort.Strings(out)

	return out
}

// String renders the parsed tree fully parenthesized, which makes the
// precedence decisions of the parser visible.
func (p *Program) String() string {
	var b strings.Builder
	p.root.write(&b)

	return b.String()
}
