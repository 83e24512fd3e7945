package calc

import (
	"io"
	"math"
	"math/big"
	"strings"
)

// Eval evaluates the expression. Evaluation cannot fail: invalid arithmetic
// like division by zero or the logarithm of a negative number produces an
// infinity or NaN.
func (e *Expr) Eval() float64 {
	return e.n.eval()
}

// eval computes the node's value.
func (n *node) eval() float64 {
	switch n.kind {
	case nodeNum:
		return n.num
	case nodeVar:
		return n.left.eval()
	case nodeCall:
		fn := builtins[n.name]
		if fn == nil {
			panic("calc: call of unknown function " + n.name)
		}
		args := make([]float64, len(n.args))
		for i, a := range n.args {
			args[i] = a.eval()
		}
		return fn.Call(args)
	case nodeBinary:
		l := n.left.eval()
		r := n.right.eval()
		switch n.op.Kind {
		case OpAdd:
			return l + r
		case OpSub:
			return l - r
		case OpMul:
			return l * r
		case OpDiv:
			return l / r
		case OpPow:
			return math.Pow(l, r)
		case OpPercent:
			return l * r / 100
		case OpEqual:
			if l == r {
				return 1
			}
			return 0
		}
	case nodeUnary:
		x := n.left.eval()
		switch n.op.Kind {
		case OpSub:
			return -x
		case OpAbs:
			return math.Abs(x)
		case OpFactorial:
			return factorial(x, n.op.Depth)
		}
	}
	panic("calc: invalid AST node " + n.kind.String() + " with operator " + n.op.String())
}

// factorial computes the multifactorial x(!*depth) of floor(x) exactly and
// rounds the result to float64, saturating to +Inf. Like a saturating
// conversion to an unsigned integer, negative and NaN arguments are treated
// as zero.
func factorial(x float64, depth int) float64 {
	if depth <= 0 || x == 0 || math.IsNaN(x) || x < 0 {
		return 1
	}
	if math.IsInf(x, 1) {
		return math.Inf(1)
	}
	i, _ := new(big.Float).SetFloat64(math.Floor(x)).Int(nil)
	step := big.NewInt(int64(depth))
	r := big.NewInt(1)
	for i.Sign() > 0 {
		r.Mul(r, i)
		if r.BitLen() > maxFloatBits {
			// Already past the largest float64.
			return math.Inf(1)
		}
		if i.Cmp(step) <= 0 {
			break
		}
		i.Sub(i, step)
	}
	f, _ := new(big.Float).SetInt(r).Float64()
	return f
}

// maxFloatBits is the bit length of the largest finite float64. Any integer
// longer than this is at least 2^1024.
const maxFloatBits = 1024

// Eval is a shortcut to parse an expression and return its result. Names in
// the expression are resolved in env, and assignments are added to it. If env
// is nil, a new Env with only the constants is used.
func Eval(src io.RuneScanner, env *Env) (float64, error) {
	a, err := Parse(src, env)
	if err != nil {
		return 0, err
	}
	return a.Eval(), nil
}

// EvalString is a shortcut to parse and evaluate a string expression.
func EvalString(src string, env *Env) (float64, error) {
	return Eval(strings.NewReader(src), env)
}
