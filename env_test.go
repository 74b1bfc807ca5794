package calc_test

import (
	"errors"
	"sort"
	"testing"

	"github.com/zephyrtronium/calc"
)

func TestEnvVars(t *testing.T) {
	zero := calc.Int(0)
	one := calc.Int(1)
	env := calc.NewEnv(calc.SetVar("x", zero))
	if x, err := env.Lookup("x"); err != nil || x != zero {
		t.Errorf("x should be %[1]v at %[1]p but is %[2]v at %[2]p (error %v)", zero, x, err)
	}
	var ne *calc.NameError
	if y, err := env.Lookup("y"); !errors.As(err, &ne) {
		t.Errorf("env has y: %v (error %v)", y, err)
	}
	env.Set("y", one)
	if x, _ := env.Lookup("x"); x != zero {
		t.Errorf("x should be %[1]v at %[1]p but is %[2]v at %[2]p", zero, x)
	}
	if y, _ := env.Lookup("y"); y != one {
		t.Errorf("y should be %[1]v at %[1]p but is %[2]v at %[2]p", one, y)
	}
	env.Set("x", one)
	if x, _ := env.Lookup("x"); x != one {
		t.Errorf("x should be %[1]v at %[1]p but is %[2]v at %[2]p", one, x)
	}
}

func TestEnvSetVars(t *testing.T) {
	env := calc.NewEnv(calc.SetVars(map[string]calc.Value{"a": calc.Int(1), "b": calc.Int(2)}))
	r, err := env.EvalString("a + b")
	if err != nil {
		t.Fatal(err)
	}
	if got := env.Format(r); got != "3" {
		t.Errorf("want 3, got %s", got)
	}
}

func TestEnvClone(t *testing.T) {
	env := calc.NewEnv(calc.SetVar("x", calc.Int(1)))
	c := env.Clone(calc.SetVar("x", calc.Int(2)))
	if _, err := c.EvalString("y := 3"); err != nil {
		t.Fatal(err)
	}
	if x, _ := env.Lookup("x"); env.Format(x) != "1" {
		t.Errorf("original x changed to %v", x)
	}
	if x, _ := c.Lookup("x"); c.Format(x) != "2" {
		t.Errorf("clone x is %v", x)
	}
	if _, err := env.Lookup("y"); err == nil {
		t.Error("definition in clone leaked to original")
	}
}

func TestEnvNames(t *testing.T) {
	env := calc.NewEnv()
	if _, err := env.EvalString("zz := 1"); err != nil {
		t.Fatal(err)
	}
	names := env.Names()
	if !sort.StringsAreSorted(names) {
		t.Errorf("names not sorted: %q", names)
	}
	want := []string{"ans", "cos", "e", "i", "pi", "precision", "scientific", "sin", "sum", "zz"}
	for _, w := range want {
		k := sort.SearchStrings(names, w)
		if k == len(names) || names[k] != w {
			t.Errorf("names missing %q: %q", w, names)
		}
	}
}

func TestEnvDefine(t *testing.T) {
	env := calc.NewEnv()
	var pe *calc.ProtectedNameError
	if _, err := env.Define("pi", calc.Int(3)); !errors.As(err, &pe) {
		t.Errorf("defining pi gave %#v", err)
	} else if pe.Name != "pi" {
		t.Errorf("wrong protected name %q", pe.Name)
	}
	v, err := env.Define("x", calc.Frac(1, 2))
	if err != nil {
		t.Fatal(err)
	}
	if x, _ := env.Lookup("x"); x != v {
		t.Errorf("x is %v, not the defined %v", x, v)
	}
	// Set bypasses protection.
	env.Set("pi", calc.Int(3))
	if p, _ := env.Lookup("pi"); env.Format(p) != "3" {
		t.Errorf("pi is %v after Set", p)
	}
}

func TestEnvPrec(t *testing.T) {
	env := calc.NewEnv()
	if env.Prec() != calc.DefaultPrec {
		t.Errorf("default precision is %d, want %d", env.Prec(), calc.DefaultPrec)
	}
	env = calc.NewEnv(calc.Prec(50))
	if env.Prec() != 50 {
		t.Errorf("precision is %d, want 50", env.Prec())
	}
	if env.Bits() < 167 {
		t.Errorf("%d bits is too few for 50 digits", env.Bits())
	}
	pi, _ := env.Lookup("pi")
	if p := pi.(*calc.Real).Float().Prec(); p != env.Bits() {
		t.Errorf("pi has %d bits, want %d", p, env.Bits())
	}
	if _, err := env.EvalString("precision := 10"); err != nil {
		t.Fatal(err)
	}
	if env.Prec() != 10 {
		t.Errorf("precision is %d after definition, want 10", env.Prec())
	}
	pi, _ = env.Lookup("pi")
	if p := pi.(*calc.Real).Float().Prec(); p != env.Bits() {
		t.Errorf("pi has %d bits after precision change, want %d", p, env.Bits())
	}
	defer func() {
		if recover() == nil {
			t.Error("Prec(0) didn't panic")
		}
	}()
	calc.Prec(0)
}

func TestEnvScientific(t *testing.T) {
	env := calc.NewEnv(calc.Scientific(true))
	if !env.Scientific() {
		t.Error("scientific notation not set")
	}
	s, _ := env.Lookup("scientific")
	if env.Format(s) != "1" {
		t.Errorf("scientific is %v", s)
	}
	if _, err := env.EvalString("scientific := 0"); err != nil {
		t.Fatal(err)
	}
	if env.Scientific() {
		t.Error("scientific notation not cleared")
	}
}

func TestFunctionCall(t *testing.T) {
	env := calc.NewEnv()
	v, err := env.EvalString("f(x) := x + 1")
	if err != nil {
		t.Fatal(err)
	}
	f := v.(*calc.Function)
	if f.Arity() != 1 {
		t.Errorf("arity is %d", f.Arity())
	}
	r, err := f.Call(env, calc.NewVector(calc.Int(1), calc.Int(2)))
	if err != nil {
		t.Fatal(err)
	}
	if got := env.Format(r); got != "[2, 3]" {
		t.Errorf("want [2, 3], got %s", got)
	}
	var ae *calc.ArityError
	g, _ := env.EvalString("g(x, y) := x")
	if _, err := g.(*calc.Function).Call(env, calc.Int(1), calc.Int(2), calc.Int(3)); !errors.As(err, &ae) {
		t.Errorf("calling with too many arguments gave %#v", err)
	} else if ae.Func != "g" || ae.Want != 2 || ae.Got != 3 {
		t.Errorf("wrong arity error %+v", ae)
	}
}
