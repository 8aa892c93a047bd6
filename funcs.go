package calc

import "math"

// builtin is one entry of the fixed function table. The compiler checks
// arity with canCall before it ever builds a call, so call may assume a
// legal argument count.
type builtin struct {
	// minArgs and maxArgs bound the accepted argument counts; maxArgs < 0
	// means no upper bound.
	minArgs, maxArgs int
	call             func(invoc []Num) (Num, error)
}

func (f builtin) canCall(n int) bool {
	return n >= f.minArgs && (f.maxArgs < 0 || n <= f.maxArgs)
}

// monadic adapts a one-argument function.
func monadic(f func(x Num) (Num, error)) builtin {
	return builtin{minArgs: 1, maxArgs: 1, call: func(invoc []Num) (Num, error) {
		return f(invoc[0])
	}}
}

// monadicReal adapts a one-argument function on reals: integer arguments
// promote, complex arguments are out of domain, and the result is real even
// for integer input.
func monadicReal(name string, f func(x float64) float64) builtin {
	return monadic(func(x Num) (Num, error) {
		if x.kind == KindComplex {
			return Num{}, &DomainError{X: x, Func: name}
		}
		return NewReal(f(x.Real())), nil
	})
}

// monadicPositive is monadicReal restricted to positive arguments.
func monadicPositive(name string, f func(x float64) float64) builtin {
	return monadic(func(x Num) (Num, error) {
		if x.kind == KindComplex {
			return Num{}, &DomainError{X: x, Func: name}
		}
		v := x.Real()
		if v <= 0 {
			return Num{}, &DomainError{X: x, Func: name}
		}
		return NewReal(f(v)), nil
	})
}

// variadic adapts max and min: two or more arguments reduced pairwise by
// comparison, keeping the earliest winner on ties.
func variadic(name string, keep func(cmp int) bool) builtin {
	return builtin{minArgs: 2, maxArgs: -1, call: func(invoc []Num) (Num, error) {
		best := invoc[0]
		for _, v := range invoc[1:] {
			c, err := numCmp(v, best, name)
			if err != nil {
				return Num{}, err
			}
			if keep(c) {
				best = v
			}
		}
		return best, nil
	}}
}

// builtins is the closed set of functions a call can resolve to. Bare
// identifiers never consult it, so any of these names still works as a
// variable.
var builtins = map[string]builtin{
	"abs": monadic(func(x Num) (Num, error) { return numAbs(x), nil }),

	"ceil":  monadicReal("ceil", math.Ceil),
	"floor": monadicReal("floor", math.Floor),
	"round": monadicReal("round", math.Round),

	"sin": monadicReal("sin", math.Sin),
	"cos": monadicReal("cos", math.Cos),
	"tan": monadicReal("tan", math.Tan),

	"degrees": monadicReal("degrees", func(x float64) float64 { return x * (180 / math.Pi) }),
	"radians": monadicReal("radians", func(x float64) float64 { return x * (math.Pi / 180) }),

	"log":   monadicPositive("log", math.Log),
	"log10": monadicPositive("log10", math.Log10),
	"log2":  monadicPositive("log2", math.Log2),

	"max": variadic("max", func(cmp int) bool { return cmp > 0 }),
	"min": variadic("min", func(cmp int) bool { return cmp < 0 }),
}
