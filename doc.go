// Package calc implements a small infix calculator over integers, reals, and
// complex numbers.
//
// An expression is parsed once under a fixed LL(1) grammar and compiled into
// a Code, a pure function of its variables, so the same expression can be
// evaluated against many environments:
//
//	a, _ := calc.Parse("2^foo - 1")
//	c, _ := calc.Compile(a)
//	r, _ := c.Eval(calc.Env{"foo": calc.NewInt(8)})
//
// Integers are arbitrary-precision and promote to reals and then to complex
// values when operands mix. "/" always divides exactly, "//" floors, "^" is
// right-associative, and "!" is the factorial. The constants e, pi, and i
// are predefined, along with a small closed set of functions such as sin,
// log, and max. Unknown functions are reported when compiling, before any
// variable bindings exist.
package calc
