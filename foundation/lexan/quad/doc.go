// Package quad compiles arithmetic expressions into quadruples.
//
// Operands are single-letter identifiers; numbers are not part of the
// grammar. Operators are binary + - * / with the usual precedence, unary
// minus and parentheses:
//
//	E      := T A(T)
//	A(inh) := "+" T A(t) | "-" T A(t) | ε
//	T      := O B(O)
//	B(inh) := "*" O B(t) | "/" O B(t) | ε
//	O      := "-" O | identifier | "(" E ")"
//
// Each operation stores its result in a fresh temporary t1, t2, ... For
// example a+b*c compiles to
//
//	(*, b, c, t1)
//	(+, a, t1, t2)
package quad
