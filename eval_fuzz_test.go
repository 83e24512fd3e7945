//go:build go1.18
// +build go1.18

package calc_test

import (
	"math"
	"strconv"
	"testing"

	"github.com/zephyrtronium/calc"
)

func FuzzEval(f *testing.F) {
	f.Add("x")
	f.Add("y = 2x")
	f.Add("|-3|2 + 50%")
	f.Add("log_2(8)!!")
	f.Fuzz(func(t *testing.T, s string) {
		calc.EvalString(s, calc.NewEnv(calc.SetVar("x", 1)))
	})
}

func FuzzEvalLiteral(f *testing.F) {
	f.Add(0.0)
	f.Add(2.5)
	f.Add(1e300)
	f.Fuzz(func(t *testing.T, v float64) {
		if v < 0 || math.IsInf(v, 0) || math.IsNaN(v) {
			t.Skip()
		}
		src := strconv.FormatFloat(v, 'f', -1, 64)
		r, err := calc.EvalString(src, nil)
		if err != nil {
			t.Fatalf("%q: %v", src, err)
		}
		if r != v {
			t.Errorf("%q evaluated to %v", src, r)
		}
	})
}
