//go:build go1.18
// +build go1.18

package calc_test

import (
	"testing"

	"github.com/zephyrtronium/calc"
)

func FuzzEval(f *testing.F) {
	f.Add("x")
	f.Add("y")
	f.Add("1×2")
	f.Add("f(x) := x^2; f([1, 2])")
	f.Add("min(sin, cos)(pi)")
	f.Fuzz(func(t *testing.T, s string) {
		calc.EvalString(s, calc.SetVar("x", calc.Int(0)), calc.Prec(10))
	})
}
