// SPDX-License-Identifier: MIT

package expression

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/katalvlaran/lvparam/parameters"
)

// Env supplies the values of free names. parameters.Parameter implements it.
type Env interface {
	Lookup(name string) (parameters.Array, bool)
}

// node is a compiled expression tree element.
type node interface {
	eval(env Env) (parameters.Array, error)
	write(b *strings.Builder)
	names(seen map[string]struct{})
}

type numberNode struct {
	pos int
	val float64
}

func (n *numberNode) eval(Env) (parameters.Array, error) { return parameters.ScalarOf(n.val), nil }

func (n *numberNode) write(b *strings.Builder) {
	b.WriteString(strconv.FormatFloat(n.val, 'g', -1, 64))
}

func (n *numberNode) names(map[string]struct{}) {}

type nameNode struct {
	pos  int
	name string
}

// eval resolves a binding first, then the function table.
func (n *nameNode) eval(env Env) (parameters.Array, error) {
	if v, ok := env.Lookup(n.name); ok {
		return v, nil
	}
	if IsFunction(n.name) {
		return parameters.Array{}, evalErrorf("name "+n.name, n.pos, ErrFunctionAsValue, "%s must be called", n.name)
	}

	return parameters.Array{}, evalErrorf("name "+n.name, n.pos, ErrUndefinedName, "%q is not a declared parameter", n.name)
}

func (n *nameNode) write(b *strings.Builder) { b.WriteString(n.name) }

func (n *nameNode) names(seen map[string]struct{}) { seen[n.name] = struct{}{} }

type unaryNode struct {
	op  tokenKind
	pos int
	x   node
}

func (n *unaryNode) eval(env Env) (parameters.Array, error) {
	v, err := n.x.eval(env)
	if err != nil {
		return parameters.Array{}, err
	}
	if n.op == tPlus {
		return v, nil
	}

	return v.Map(func(f float64) float64 { return -f }), nil
}

func (n *unaryNode) write(b *strings.Builder) {
	if n.op == tMinus {
		b.WriteByte('-')
	} else {
		b.WriteByte('+')
	}
	n.x.write(b)
}

func (n *unaryNode) names(seen map[string]struct{}) { n.x.names(seen) }

type binaryNode struct {
	op   tokenKind
	pos  int
	l, r node
}

var binaryOps = map[tokenKind]func(a, b float64) float64{
	tPlus:  func(a, b float64) float64 { return a + b },
	tMinus: func(a, b float64) float64 { return a - b },
	tStar:  func(a, b float64) float64 { return a * b },
	tSlash: func(a, b float64) float64 { return a / b },
	tPow:   math.Pow,
}

var binarySymbols = map[tokenKind]string{tPlus: "+", tMinus: "-", tStar: "*", tSlash: "/", tPow: "**"}

func (n *binaryNode) eval(env Env) (parameters.Array, error) {
	l, err := n.l.eval(env)
	if err != nil {
		return parameters.Array{}, err
	}
	r, err := n.r.eval(env)
	if err != nil {
		return parameters.Array{}, err
	}
	out, err := parameters.Zip(l, r, binaryOps[n.op])
	if err != nil {
		return parameters.Array{}, evalErrorf("operator "+binarySymbols[n.op], n.pos, ErrShape, "%v", err)
	}

	return out, nil
}

func (n *binaryNode) write(b *strings.Builder) {
	b.WriteByte('(')
	n.l.write(b)
	b.WriteString(" " + binarySymbols[n.op] + " ")
	n.r.write(b)
	b.WriteByte(')')
}

func (n *binaryNode) names(seen map[string]struct{}) {
	n.l.names(seen)
	n.r.names(seen)
}

type callNode struct {
	pos  int
	name string
	args []node
}

// eval applies the parameter-first lookup rule to the callee as well: a
// bound parameter named like a function is found first and is not callable.
func (n *callNode) eval(env Env) (parameters.Array, error) {
	op := "call " + n.name
	if _, bound := env.Lookup(n.name); bound {
		return parameters.Array{}, evalErrorf(op, n.pos, ErrNotCallable, "%q is a parameter", n.name)
	}
	fn, ok := functions[n.name]
	if !ok {
		return parameters.Array{}, evalErrorf(op, n.pos, ErrUnknownFunction, "%q is not an allowed function", n.name)
	}
	if len(n.args) != fn.arity {
		return parameters.Array{}, evalErrorf(op, n.pos, ErrArity, "%s takes %d argument(s), got %d", n.name, fn.arity, len(n.args))
	}
	args := make([]parameters.Array, len(n.args))
	for i, a := range n.args {
		v, err := a.eval(env)
		if err != nil {
			return parameters.Array{}, err
		}
		args[i] = v
	}
	out, err := fn.apply(args)
	if err != nil {
		return parameters.Array{}, evalErrorf(op, n.pos, ErrShape, "%v", err)
	}

	return out, nil
}

func (n *callNode) write(b *strings.Builder) {
	b.WriteString(n.name + "(")
	for i, a := range n.args {
		if i > 0 {
			b.WriteString(", ")
		}
		a.write(b)
	}
	b.WriteByte(')')
}

func (n *callNode) names(seen map[string]struct{}) {
	for _, a := range n.args {
		a.names(seen)
	}
}

type indexNode struct {
	pos int
	x   node
	idx []int
}

func (n *indexNode) eval(env Env) (parameters.Array, error) {
	v, err := n.x.eval(env)
	if err != nil {
		return parameters.Array{}, err
	}
	for _, i := range n.idx {
		v, err = v.Index(i)
		if err != nil {
			if errors.Is(err, parameters.ErrIndex) {
				return parameters.Array{}, evalErrorf("subscript", n.pos, ErrIndex, "%v", err)
			}
			return parameters.Array{}, err
		}
	}

	return v, nil
}

func (n *indexNode) write(b *strings.Builder) {
	n.x.write(b)
	b.WriteByte('[')
	for i, k := range n.idx {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.Itoa(k))
	}
	b.WriteByte(']')
}

func (n *indexNode) names(seen map[string]struct{}) { n.x.names(seen) }
