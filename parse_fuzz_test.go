//go:build go1.18
// +build go1.18

package calc_test

import (
	"errors"
	"testing"

	"github.com/zephyrtronium/calc"
)

func FuzzParse(f *testing.F) {
	f.Add("x")
	f.Add("2pi(1+")
	f.Add("root_3(27)")
	f.Add("1×2")
	f.Fuzz(func(t *testing.T, s string) {
		a, err := calc.ParseString(s, nil)
		if err != nil {
			var ie calc.InputError
			if !errors.As(err, &ie) {
				t.Errorf("%q: error %v is not an InputError", s, err)
			}
			return
		}
		// Rendering must not panic.
		_ = a.String()
	})
}
