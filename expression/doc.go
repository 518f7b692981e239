// Package expression compiles textual arithmetic over named parameters into
// a Program that can be evaluated many times.
//
// ✨ What is accepted?
//
//	numbers        2, 0.5, .5, 1e-3, 3.
//	names          x, diffusion, _t0          (bound at evaluation time)
//	operators      + - * / **                 (** is right-associative and
//	                                           binds tighter than unary minus
//	                                           on its left: -x**2 == -(x**2))
//	grouping       ( ... )
//	calls          sin(x), minimum(x, 1)
//	subscription   v[0], v[-1], m[1, 0]       (integer literals only)
//
// Anything else (attribute access, strings, assignments, comparisons and
// keywords) is a *SyntaxError reported by Compile. There is no general
// evaluator behind a Program: a call can only reach the fixed table below.
//
//	elementwise    sin cos tan arcsin arccos arctan
//	               sinh cosh tanh arcsinh arccosh arctanh
//	               exp exp2 log log2 log10
//	reductions     min max                    (one argument, result is a scalar)
//	binary         minimum maximum            (elementwise, scalars broadcast)
//
// Name resolution happens when a Program runs: a parameter binding is looked
// up first and only then the function table, so a parameter named like a
// function shadows it (calling it fails with ErrNotCallable).
//
// Values are parameters.Array; arithmetic is elementwise in IEEE-754 double
// precision with scalar broadcasting (1/0 is +Inf, log(-1) is NaN).
//
// Programs are immutable and safe for concurrent use.
package expression
