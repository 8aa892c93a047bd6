package calc

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Env is the set of variable bindings an expression is evaluated against.
// The evaluator only reads it.
type Env map[string]Num

// Code is a compiled expression: a pure function from an environment to a
// number, together with the list of variable names it looks up. A Code
// holds no mutable state, so it may be evaluated any number of times,
// concurrently if needed.
type Code struct {
	run   func(env Env) (Num, error)
	names []string
}

// Compile translates a parsed expression into an evaluatable Code. Unknown
// function names and wrong-arity calls are reported here, before any
// environment exists, so an expression can be validated without bindings.
func Compile(e *Expr) (*Code, error) {
	return compile(e.n)
}

// Vars returns the variable names the expression looks up, in left-to-right
// order of appearance. A name that appears more than once is reported more
// than once.
func (c *Code) Vars() []string {
	return append(([]string)(nil), c.names...)
}

// Eval runs the compiled expression against an environment. Arithmetic
// happens only now; a Code built from constants alone still does its work
// per call.
func (c *Code) Eval(env Env) (Num, error) {
	return c.run(env)
}

// EvalString is a shortcut to parse, compile, and evaluate an expression.
func EvalString(src string, env Env) (Num, error) {
	a, err := Parse(src)
	if err != nil {
		return Num{}, err
	}
	c, err := Compile(a)
	if err != nil {
		return Num{}, err
	}
	return c.Eval(env)
}

// binops maps each binary operator kind to its arithmetic.
var binops = map[nodeKind]func(x, y Num) (Num, error){
	nodeAdd: func(x, y Num) (Num, error) { return numAdd(x, y), nil },
	nodeSub: func(x, y Num) (Num, error) { return numSub(x, y), nil },
	nodeMul: func(x, y Num) (Num, error) { return numMul(x, y), nil },

	nodeDiv:      numDiv,
	nodeFloorDiv: numFloorDiv,
	nodeMod:      numMod,
	nodePow:      numPow,
}

func compile(n *node) (*Code, error) {
	switch n.kind {
	case nodeNum:
		return constant(literal(n.name)), nil
	case nodeName:
		switch n.name {
		case "e":
			return constant(NewReal(math.E)), nil
		case "pi":
			return constant(NewReal(math.Pi)), nil
		case "i":
			return constant(NewComplex(complex(0, 1))), nil
		}
		name := n.name
		run := func(env Env) (Num, error) {
			v, ok := env[name]
			if !ok {
				return Num{}, &NameError{Name: name}
			}
			return v, nil
		}
		return &Code{run: run, names: []string{name}}, nil
	case nodeCall:
		return compileCall(n)
	case nodeNeg, nodeFact, nodeAbs:
		x, err := compile(n.kids[0])
		if err != nil {
			return nil, err
		}
		var run func(env Env) (Num, error)
		switch n.kind {
		case nodeNeg:
			run = func(env Env) (Num, error) {
				v, err := x.run(env)
				if err != nil {
					return Num{}, err
				}
				return numNeg(v), nil
			}
		case nodeFact:
			run = func(env Env) (Num, error) {
				v, err := x.run(env)
				if err != nil {
					return Num{}, err
				}
				return numFact(v)
			}
		case nodeAbs:
			run = func(env Env) (Num, error) {
				v, err := x.run(env)
				if err != nil {
					return Num{}, err
				}
				return numAbs(v), nil
			}
		}
		return &Code{run: run, names: x.names}, nil
	case nodeAdd, nodeSub, nodeMul, nodeDiv, nodeFloorDiv, nodeMod, nodePow:
		l, err := compile(n.kids[0])
		if err != nil {
			return nil, err
		}
		r, err := compile(n.kids[1])
		if err != nil {
			return nil, err
		}
		op := binops[n.kind]
		run := func(env Env) (Num, error) {
			x, err := l.run(env)
			if err != nil {
				return Num{}, err
			}
			y, err := r.run(env)
			if err != nil {
				return Num{}, err
			}
			return op(x, y)
		}
		names := make([]string, 0, len(l.names)+len(r.names))
		names = append(names, l.names...)
		names = append(names, r.names...)
		return &Code{run: run, names: names}, nil
	default:
		panic("calc: compile of invalid node " + n.kind.String())
	}
}

func compileCall(n *node) (*Code, error) {
	fn := builtins[n.name]
	if fn.call == nil {
		return nil, &UnknownFuncError{Name: n.name}
	}
	if !fn.canCall(len(n.kids)) {
		return nil, &CallError{Func: n.name, Len: len(n.kids)}
	}
	args := make([]*Code, len(n.kids))
	var names []string
	for i, k := range n.kids {
		c, err := compile(k)
		if err != nil {
			return nil, err
		}
		args[i] = c
		names = append(names, c.names...)
	}
	run := func(env Env) (Num, error) {
		invoc := make([]Num, len(args))
		for i, a := range args {
			v, err := a.run(env)
			if err != nil {
				return Num{}, err
			}
			invoc[i] = v
		}
		return fn.call(invoc)
	}
	return &Code{run: run, names: names}, nil
}

// constant is a Code with a fixed value and no free names.
func constant(v Num) *Code {
	return &Code{run: func(Env) (Num, error) { return v, nil }}
}

// literal converts a numeric literal's text: integer when there is no
// decimal point, real otherwise. The lexer guarantees the form; a real
// beyond float64 range saturates to infinity.
func literal(text string) Num {
	if !strings.Contains(text, ".") {
		i, ok := new(big.Int).SetString(text, 10)
		if !ok {
			panic("calc: invalid integer literal " + strconv.Quote(text))
		}
		return intNum(i)
	}
	f, _ := strconv.ParseFloat(text, 64)
	return NewReal(f)
}

// UnknownFuncError is a compile error for a call to a name outside the
// builtin set.
type UnknownFuncError struct {
	// Name is the function name that is not defined.
	Name string
}

func (err *UnknownFuncError) Error() string {
	return "function " + strconv.Quote(err.Name) + " is not defined"
}

// CallError is a compile error for a builtin called with a number of
// arguments it does not accept.
type CallError struct {
	// Func is the function name that was called.
	Func string
	// Len is the number of arguments in the call.
	Len int
}

func (err *CallError) Error() string {
	return "cannot call " + err.Func + " with " + strconv.Itoa(err.Len) + " arguments"
}

// NameError is an error from a lookup for a variable that is missing from
// the environment.
type NameError struct {
	// Name is the name that was missing.
	Name string
}

func (err *NameError) Error() string {
	return "undefined variable: " + strconv.Quote(err.Name)
}
