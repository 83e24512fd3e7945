package calc

import (
	"math"
)

// Func is a built-in function from reals to reals.
type Func interface {
	// Call evaluates the function. args has a length for which CanCall
	// returned true.
	Call(args []float64) float64

	// CanCall returns whether the function can be called with n arguments.
	// The parser rejects calls with any other number of arguments.
	CanCall(n int) bool
}

// builtins is the fixed set of function names. Identifiers that name a
// builtin are always parsed as calls and can never be variables.
var builtins = map[string]Func{
	"sqrt": Monadic(func(x float64) float64 { return math.Pow(x, 0.5) }),
	"cbrt": Monadic(func(x float64) float64 { return math.Pow(x, 1.0/3.0) }),
	"ln":   Monadic(math.Log),
	"root": Dyadic(func(x, n float64) float64 { return math.Pow(x, 1/n) }),
	"log":  Dyadic(logb),

	"sin": Monadic(math.Sin),
	"cos": Monadic(math.Cos),
	"tan": Monadic(math.Tan),
	// cot and csc are the reciprocals of sin and tan, not of tan and sin.
	"cot": reciprocal(math.Sin),
	"sec": reciprocal(math.Cos),
	"csc": reciprocal(math.Tan),

	"asin": Monadic(math.Asin),
	"acos": Monadic(math.Acos),
	"atan": Monadic(math.Atan),
	"acot": reciprocal(math.Atan),
	"asec": reciprocal(math.Acos),
	"acsc": reciprocal(math.Asin),

	"sinh": Monadic(math.Sinh),
	"cosh": Monadic(math.Cosh),
	"tanh": Monadic(math.Tanh),
	"coth": reciprocal(math.Tanh),
	"sech": reciprocal(math.Cosh),
	"csch": reciprocal(math.Sinh),

	"asinh": Monadic(math.Asinh),
	"acosh": Monadic(math.Acosh),
	"atanh": Monadic(math.Atanh),
	"acoth": reciprocal(math.Atanh),
	"asech": reciprocal(math.Acosh),
	"acsch": reciprocal(math.Asinh),
}

// Builtin returns the built-in function with the given name, or nil if there
// is none.
func Builtin(name string) Func {
	return builtins[name]
}

// logb computes the logarithm of x in base b. Bases 10 and 2 use the
// dedicated library functions, so log(1000) is 3 and log_2(8) is 3 exactly,
// where ln(x)/ln(b) would give 2.9999999999999996 for the former.
func logb(b, x float64) float64 {
	switch b {
	case 10:
		return math.Log10(x)
	case 2:
		return math.Log2(x)
	default:
		return math.Log(x) / math.Log(b)
	}
}

func reciprocal(f func(float64) float64) Func {
	return Monadic(func(x float64) float64 { return 1 / f(x) })
}

type monadic struct {
	f func(float64) float64
}

func (m monadic) Call(args []float64) float64 {
	return m.f(args[0])
}

func (m monadic) CanCall(n int) bool {
	return n == 1
}

// Monadic wraps a function of one variable into a Func.
func Monadic(f func(float64) float64) Func {
	return monadic{f}
}

type dyadic struct {
	f func(float64, float64) float64
}

func (d dyadic) Call(args []float64) float64 {
	return d.f(args[0], args[1])
}

func (d dyadic) CanCall(n int) bool {
	return n == 2
}

// Dyadic wraps a function of two variables into a Func.
func Dyadic(f func(float64, float64) float64) Func {
	return dyadic{f}
}
