package calc

import (
	"math"
	"math/big"
	"math/cmplx"
	"strconv"
)

// NumKind identifies which kind of number a Num holds.
type NumKind int8

const (
	// KindNone is the kind of the zero Num, which is not a valid number.
	KindNone NumKind = iota
	// KindInt is an arbitrary-precision integer.
	KindInt
	// KindReal is a double-precision real.
	KindReal
	// KindComplex is a double-precision complex number.
	KindComplex
)

func (k NumKind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindReal:
		return "real"
	case KindComplex:
		return "complex"
	default:
		return "none"
	}
}

// Num is a numeric value: an arbitrary-precision integer, a real, or a
// complex number. Operations promote toward complex when kinds mix. The
// zero Num is not a valid number; it appears only alongside a non-nil
// error.
type Num struct {
	kind NumKind
	i    *big.Int
	f    float64
	c    complex128
}

// NewInt returns x as an integer Num.
func NewInt(x int64) Num {
	return Num{kind: KindInt, i: big.NewInt(x)}
}

// NewReal returns f as a real Num.
func NewReal(f float64) Num {
	return Num{kind: KindReal, f: f}
}

// NewComplex returns c as a complex Num.
func NewComplex(c complex128) Num {
	return Num{kind: KindComplex, c: c}
}

// intNum wraps i without copying. The caller gives up ownership.
func intNum(i *big.Int) Num {
	return Num{kind: KindInt, i: i}
}

// Kind returns the kind of number n holds.
func (n Num) Kind() NumKind {
	return n.kind
}

// Int returns a copy of n's value. It panics unless n's kind is KindInt.
func (n Num) Int() *big.Int {
	if n.kind != KindInt {
		panic("calc: Int of " + n.kind.String() + " value")
	}
	return new(big.Int).Set(n.i)
}

// Real returns n's value as a real, converting an integer as needed.
// Integers beyond the range of a float64 saturate to infinity. Panics if n
// is complex or invalid.
func (n Num) Real() float64 {
	switch n.kind {
	case KindInt:
		f, _ := new(big.Float).SetInt(n.i).Float64()
		return f
	case KindReal:
		return n.f
	}
	panic("calc: Real of " + n.kind.String() + " value")
}

// Complex returns n's value as a complex number. Every valid kind converts.
func (n Num) Complex() complex128 {
	if n.kind == KindComplex {
		return n.c
	}
	return complex(n.Real(), 0)
}

// String formats integers in decimal, reals in shortest round-trip form,
// and complex values in Go's (a+bi) form.
func (n Num) String() string {
	switch n.kind {
	case KindInt:
		return n.i.String()
	case KindReal:
		return strconv.FormatFloat(n.f, 'g', -1, 64)
	case KindComplex:
		return strconv.FormatComplex(n.c, 'g', -1, 128)
	default:
		return "<invalid>"
	}
}

// widen returns the wider of two kinds.
func widen(a, b NumKind) NumKind {
	if a > b {
		return a
	}
	return b
}

func (n Num) isZero() bool {
	switch n.kind {
	case KindInt:
		return n.i.Sign() == 0
	case KindReal:
		return n.f == 0
	default:
		return n.c == 0
	}
}

// complexOperand returns whichever operand is complex, preferring x, for
// blaming in errors.
func complexOperand(x, y Num) Num {
	if x.kind == KindComplex {
		return x
	}
	return y
}

func numAdd(x, y Num) Num {
	switch widen(x.kind, y.kind) {
	case KindInt:
		return intNum(new(big.Int).Add(x.i, y.i))
	case KindReal:
		return NewReal(x.Real() + y.Real())
	default:
		return NewComplex(x.Complex() + y.Complex())
	}
}

func numSub(x, y Num) Num {
	switch widen(x.kind, y.kind) {
	case KindInt:
		return intNum(new(big.Int).Sub(x.i, y.i))
	case KindReal:
		return NewReal(x.Real() - y.Real())
	default:
		return NewComplex(x.Complex() - y.Complex())
	}
}

func numMul(x, y Num) Num {
	switch widen(x.kind, y.kind) {
	case KindInt:
		return intNum(new(big.Int).Mul(x.i, y.i))
	case KindReal:
		return NewReal(x.Real() * y.Real())
	default:
		return NewComplex(x.Complex() * y.Complex())
	}
}

func numNeg(x Num) Num {
	switch x.kind {
	case KindInt:
		return intNum(new(big.Int).Neg(x.i))
	case KindReal:
		return NewReal(-x.f)
	default:
		return NewComplex(-x.c)
	}
}

// numAbs is the magnitude, for both the |x| form and the abs builtin.
func numAbs(x Num) Num {
	switch x.kind {
	case KindInt:
		return intNum(new(big.Int).Abs(x.i))
	case KindReal:
		return NewReal(math.Abs(x.f))
	default:
		return NewReal(cmplx.Abs(x.c))
	}
}

// numDiv is true division. Integer operands promote to real, so the result
// kind never depends on divisibility.
func numDiv(x, y Num) (Num, error) {
	if y.isZero() {
		return Num{}, &DomainError{X: y, Func: "/"}
	}
	if widen(x.kind, y.kind) == KindComplex {
		return NewComplex(x.Complex() / y.Complex()), nil
	}
	return NewReal(x.Real() / y.Real()), nil
}

// numFloorDiv is floor division. Truncating big.Int division is adjusted
// toward negative infinity when the remainder and the divisor disagree in
// sign.
func numFloorDiv(x, y Num) (Num, error) {
	switch widen(x.kind, y.kind) {
	case KindInt:
		if y.i.Sign() == 0 {
			return Num{}, &DomainError{X: y, Func: "//"}
		}
		q, r := new(big.Int).QuoRem(x.i, y.i, new(big.Int))
		if r.Sign() != 0 && r.Sign() != y.i.Sign() {
			q.Sub(q, big.NewInt(1))
		}
		return intNum(q), nil
	case KindReal:
		if y.Real() == 0 {
			return Num{}, &DomainError{X: y, Func: "//"}
		}
		return NewReal(math.Floor(x.Real() / y.Real())), nil
	default:
		return Num{}, &DomainError{X: complexOperand(x, y), Func: "//"}
	}
}

// numMod is the remainder paired with floor division: a nonzero result
// takes the divisor's sign.
func numMod(x, y Num) (Num, error) {
	switch widen(x.kind, y.kind) {
	case KindInt:
		if y.i.Sign() == 0 {
			return Num{}, &DomainError{X: y, Func: "%"}
		}
		r := new(big.Int).Rem(x.i, y.i)
		if r.Sign() != 0 && r.Sign() != y.i.Sign() {
			r.Add(r, y.i)
		}
		return intNum(r), nil
	case KindReal:
		fy := y.Real()
		if fy == 0 {
			return Num{}, &DomainError{X: y, Func: "%"}
		}
		r := math.Mod(x.Real(), fy)
		if r != 0 && (r < 0) != (fy < 0) {
			r += fy
		}
		return NewReal(r), nil
	default:
		return Num{}, &DomainError{X: complexOperand(x, y), Func: "%"}
	}
}

// numPow is exponentiation. An integer base with a non-negative integer
// exponent stays exact; a negative integer exponent drops to real; complex
// results come only from complex operands, so a negative real base with a
// non-integral exponent is out of domain.
func numPow(x, y Num) (Num, error) {
	switch widen(x.kind, y.kind) {
	case KindInt:
		if y.i.Sign() >= 0 {
			return intNum(new(big.Int).Exp(x.i, y.i, nil)), nil
		}
		if x.i.Sign() == 0 {
			return Num{}, &DomainError{X: x, Func: "^"}
		}
		return NewReal(math.Pow(x.Real(), y.Real())), nil
	case KindReal:
		fx, fy := x.Real(), y.Real()
		if fx == 0 && fy < 0 {
			return Num{}, &DomainError{X: x, Func: "^"}
		}
		if fx < 0 && fy != math.Trunc(fy) {
			return Num{}, &DomainError{X: x, Func: "^"}
		}
		return NewReal(math.Pow(fx, fy)), nil
	default:
		cx, cy := x.Complex(), y.Complex()
		if cx == 0 && cy != 0 && (real(cy) < 0 || imag(cy) != 0) {
			return Num{}, &DomainError{X: x, Func: "^"}
		}
		return NewComplex(cmplx.Pow(cx, cy)), nil
	}
}

// numFact is the factorial. The operand must be integral and non-negative;
// integral reals are accepted and the result is an exact integer.
func numFact(x Num) (Num, error) {
	var v *big.Int
	switch x.kind {
	case KindInt:
		v = x.i
	case KindReal:
		if x.f != math.Trunc(x.f) || math.IsInf(x.f, 0) {
			return Num{}, &DomainError{X: x, Func: "!"}
		}
		v, _ = big.NewFloat(x.f).Int(nil)
	default:
		return Num{}, &DomainError{X: x, Func: "!"}
	}
	if v.Sign() < 0 || !v.IsInt64() {
		return Num{}, &DomainError{X: x, Func: "!"}
	}
	return intNum(new(big.Int).MulRange(1, v.Int64())), nil
}

// numCmp compares two numbers for max and min, promoting integers to reals
// when kinds mix. Complex numbers have no ordering.
func numCmp(x, y Num, fn string) (int, error) {
	switch widen(x.kind, y.kind) {
	case KindInt:
		return x.i.Cmp(y.i), nil
	case KindReal:
		fx, fy := x.Real(), y.Real()
		switch {
		case fx < fy:
			return -1, nil
		case fx > fy:
			return 1, nil
		}
		return 0, nil
	default:
		return 0, &DomainError{X: complexOperand(x, y), Func: fn}
	}
}

// DomainError is an error from an operation applied outside its domain: a
// factorial of a negative or non-integral value, a division by zero, a
// transcendental function of an argument it is undefined for, or a complex
// number where ordering or flooring is required.
type DomainError struct {
	// X is the out-of-domain argument.
	X Num
	// Func is the operator or function that rejected it.
	Func string
}

func (err *DomainError) Error() string {
	return err.X.String() + " outside domain of " + err.Func
}
