package calc

import (
	"math/big"

	"github.com/zephyrtronium/bigfloat"
)

// defaults is the registry of names every environment starts with. Each entry
// creates its value at a precision in bits. The names are protected from
// redefinition. It is populated in init to break the reference cycle through
// the evaluator.
var defaults map[string]func(bits uint) Value

func init() {
	defaults = map[string]func(bits uint) Value{
		"pi": func(bits uint) Value { return approx(piFloat(bits)) },
		"e": func(bits uint) Value {
			return approx(bigfloat.Exp(new(big.Float).SetPrec(bits), big.NewFloat(1)))
		},
		"i":   func(uint) Value { return &Complex{re: zero, im: one} },
		"ans": func(uint) Value { return zero },

		"sin":  monadic("sin", sinScalar),
		"cos":  monadic("cos", cosScalar),
		"tan":  monadic("tan", tanScalar),
		"asin": monadic("asin", asinScalar),
		"acos": monadic("acos", acosScalar),
		"atan": monadic("atan", atanScalar),
		"exp": monadic("exp", func(env *Env, x Value) (Value, error) {
			return expScalar(x, env.Bits())
		}),
		"ln": monadic("ln", func(env *Env, x Value) (Value, error) {
			return logScalar(x, env.Bits())
		}),
		"sqrt": monadic("sqrt", func(env *Env, x Value) (Value, error) {
			return sqrt(x, env.Bits()), nil
		}),
		"abs":   monadic("abs", absScalar),
		"floor": monadic("floor", rounding("floor", floorRat)),
		"ceil":  monadic("ceil", rounding("ceil", ceilRat)),
		"round": monadic("round", rounding("round", roundRat)),
		"re": monadic("re", func(env *Env, x Value) (Value, error) {
			re, _ := parts(x)
			return re, nil
		}),
		"im": monadic("im", func(env *Env, x Value) (Value, error) {
			_, im := parts(x)
			return im, nil
		}),
		"conj": monadic("conj", func(env *Env, x Value) (Value, error) {
			re, im := parts(x)
			return cplx(re, neg(im)), nil
		}),
		"factorial": monadic("factorial", factorialScalar),

		"log":     builtin("log", logFn, "x", "base"),
		"min":     builtin("min", extremum("min", true), "a", "b"),
		"max":     builtin("max", extremum("max", false), "a", "b"),
		"sum":     builtin("sum", series("sum", false), "low", "high", "f"),
		"product": builtin("product", series("product", true), "low", "high", "f"),
		"get":     builtin("get", getFn, "v", "k"),
		"size":    builtin("size", sizeFn, "v"),
		"cross":   builtin("cross", crossFn, "a", "b"),
		"dot":     builtin("dot", dotFn, "a", "b"),
	}
}

// builtin creates a registry entry for a function implemented in Go.
func builtin(name string, fn NativeFunc, params ...string) func(uint) Value {
	return func(uint) Value { return Builtin(name, params, fn) }
}

// monadic creates a registry entry for a function of one argument that
// lifts over functions and maps over vectors.
func monadic(name string, scalar func(env *Env, x Value) (Value, error)) func(uint) Value {
	fn := func(env *Env, args []Value) (Value, error) {
		return unary(env, name, args[0], scalar)
	}
	return builtin(name, fn, "x")
}

// realfn applies a float function to a real scalar.
func realfn(name string, x Value, prec uint, f func(x *big.Float, prec uint) *big.Float) (r Value, err error) {
	defer catchNaN(name, x, &err)
	return approx(f(floatOf(x, prec), prec)), nil
}

// halfpi returns ±π/2, flagged exact.
func halfpi(prec uint, negative bool) *Real {
	h := piFloat(prec)
	h.SetMantExp(h, -1)
	if negative {
		h.Neg(h)
	}
	return &Real{f: h, exact: true}
}

func sinScalar(env *Env, x Value) (Value, error) {
	if z, ok := x.(*Complex); ok {
		return ctrig(z, env.Bits(), true)
	}
	if isZero(x) && exact(x) {
		return zero, nil
	}
	return realfn("sin", x, env.Bits(), sinFloat)
}

func cosScalar(env *Env, x Value) (Value, error) {
	if z, ok := x.(*Complex); ok {
		return ctrig(z, env.Bits(), false)
	}
	if isZero(x) && exact(x) {
		return one, nil
	}
	return realfn("cos", x, env.Bits(), cosFloat)
}

func tanScalar(env *Env, x Value) (Value, error) {
	if isZero(x) && exact(x) {
		return zero, nil
	}
	s, err := sinScalar(env, x)
	if err != nil {
		return nil, err
	}
	c, err := cosScalar(env, x)
	if err != nil {
		return nil, err
	}
	if isZero(c) {
		return nil, &DomainError{X: x, Func: "tan"}
	}
	return quo(s, c, env.Bits())
}

// ctrig computes sin z or cos z for complex z.
func ctrig(z *Complex, prec uint, sin bool) (r Value, err error) {
	defer catchNaN("sin", z, &err)
	a, b := floatOf(z.re, prec), floatOf(z.im, prec)
	sa, ca := sinFloat(a, prec), cosFloat(a, prec)
	sh, ch := sinhcosh(b, prec)
	var re, im *big.Float
	if sin {
		// sin(a+bi) = sin a cosh b + i cos a sinh b
		re = new(big.Float).SetPrec(prec).Mul(sa, ch)
		im = new(big.Float).SetPrec(prec).Mul(ca, sh)
	} else {
		// cos(a+bi) = cos a cosh b - i sin a sinh b
		re = new(big.Float).SetPrec(prec).Mul(ca, ch)
		im = new(big.Float).SetPrec(prec).Mul(sa, sh)
		im.Neg(im)
	}
	return cplx(approx(re), approx(im)), nil
}

// unit checks that a real scalar lies in [-1, 1] for asin and acos.
func unit(name string, x Value, prec uint) error {
	if !isReal(x) {
		return &TypeError{Op: name, X: x}
	}
	m := floatOf(x, prec)
	if m.Abs(m).Cmp(big.NewFloat(1)) > 0 {
		return &DomainError{X: x, Func: name}
	}
	return nil
}

func asinScalar(env *Env, x Value) (Value, error) {
	prec := env.Bits()
	if err := unit("asin", x, prec); err != nil {
		return nil, err
	}
	switch {
	case isZero(x) && exact(x):
		return zero, nil
	case exact(x) && isOne(x):
		return halfpi(prec, false), nil
	case exact(x) && isOne(neg(x)):
		return halfpi(prec, true), nil
	}
	return realfn("asin", x, prec, asinFloat)
}

func acosScalar(env *Env, x Value) (Value, error) {
	prec := env.Bits()
	if err := unit("acos", x, prec); err != nil {
		return nil, err
	}
	switch {
	case exact(x) && isOne(x):
		return zero, nil
	case isZero(x) && exact(x):
		return halfpi(prec, false), nil
	case exact(x) && isOne(neg(x)):
		return &Real{f: piFloat(prec), exact: true}, nil
	}
	a, err := realfn("acos", x, prec, asinFloat)
	if err != nil {
		return nil, err
	}
	return sub(approx(halfpi(prec, false).f), a, prec)
}

func atanScalar(env *Env, x Value) (Value, error) {
	if !isReal(x) {
		return nil, &TypeError{Op: "atan", X: x}
	}
	if isZero(x) && exact(x) {
		return zero, nil
	}
	return realfn("atan", x, env.Bits(), atanFloat)
}

func absScalar(env *Env, x Value) (Value, error) {
	switch x := x.(type) {
	case *Rational:
		return &Rational{r: new(big.Rat).Abs(x.r)}, nil
	case *Real:
		return &Real{f: new(big.Float).Abs(x.f), exact: x.exact}, nil
	case *Complex:
		prec := env.Bits()
		rr, err := mul(x.re, x.re, prec)
		if err != nil {
			return nil, err
		}
		ii, err := mul(x.im, x.im, prec)
		if err != nil {
			return nil, err
		}
		s, err := add(rr, ii, prec)
		if err != nil {
			return nil, err
		}
		return sqrt(s, prec), nil
	default:
		panic("calc: abs of " + typeName(x))
	}
}

func floorRat(r *big.Rat) *big.Int {
	// Euclidean division by a positive denominator is floor division.
	return new(big.Int).Div(r.Num(), r.Denom())
}

func ceilRat(r *big.Rat) *big.Int {
	k := floorRat(new(big.Rat).Neg(r))
	return k.Neg(k)
}

func roundRat(r *big.Rat) *big.Int {
	return floorRat(new(big.Rat).Add(r, big.NewRat(1, 2)))
}

// rounding creates the scalar part of floor, ceil, or round. The result is
// always an exact integer.
func rounding(name string, f func(*big.Rat) *big.Int) func(env *Env, x Value) (Value, error) {
	return func(env *Env, x Value) (Value, error) {
		var r *big.Rat
		switch x := x.(type) {
		case *Rational:
			r = x.r
		case *Real:
			if x.f.IsInf() {
				return nil, &DomainError{X: x, Func: name}
			}
			r, _ = x.f.Rat(nil)
		default:
			return nil, &TypeError{Op: name, X: x}
		}
		return &Rational{r: new(big.Rat).SetInt(f(r))}, nil
	}
}

func factorialScalar(env *Env, x Value) (Value, error) {
	n, err := toInt("factorial", x)
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, &DomainError{X: x, Func: "factorial"}
	}
	r := big.NewInt(1)
	var k big.Int
	for i := int64(2); i <= n; i++ {
		r.Mul(r, k.SetInt64(i))
	}
	return &Rational{r: new(big.Rat).SetInt(r)}, nil
}

func logFn(env *Env, args []Value) (Value, error) {
	x, base := args[0], args[1]
	if base == Unspecified {
		base = Int(10)
	}
	return binary(env, "log", "log({l}, {r})", x, base, func(env *Env, x, b Value) (Value, error) {
		prec := env.Bits()
		if exact(x) && isOne(x) {
			return zero, nil
		}
		lx, err := logScalar(x, prec)
		if err != nil {
			return nil, err
		}
		lb, err := logScalar(b, prec)
		if err != nil {
			return nil, err
		}
		if isZero(lb) {
			return nil, &DomainError{X: b, Arg: 2, Func: "log"}
		}
		return quo(lx, lb, prec)
	})
}

// extremum creates min or max. With two arguments, the result is the blend
// of a and b under the weights c and 1-c, where c is 1 if a is the extremum
// and 0 otherwise; since the weights are exact 0 or 1, the blend selects an
// operand rather than multiplying. With one vector argument, the elements are
// folded pairwise.
func extremum(name string, min bool) NativeFunc {
	pick := func(env *Env, a, b Value) (Value, error) {
		return binary(env, name, name+"({l}, {r})", a, b, func(env *Env, a, b Value) (Value, error) {
			prec := env.Bits()
			c, err := compare(name, a, b, prec)
			if err != nil {
				return nil, err
			}
			w := c < 0
			if !min {
				w = c > 0
			}
			return add(scale(a, boolValue(w)), scale(b, boolValue(!w)), prec)
		})
	}
	var fn NativeFunc
	fn = func(env *Env, args []Value) (Value, error) {
		a, b := args[0], args[1]
		if b != Unspecified {
			return pick(env, a, b)
		}
		switch a := a.(type) {
		case *Vector:
			if len(a.elems) == 0 {
				return nil, &TypeError{Op: name, X: a, Reason: "empty vector"}
			}
			r := a.elems[0]
			for _, e := range a.elems[1:] {
				var err error
				if r, err = pick(env, r, e); err != nil {
					return nil, err
				}
			}
			return r, nil
		case *Function:
			op := func(env *Env, x Value) (Value, error) { return fn(env, []Value{x, Unspecified}) }
			return lift1(name+"({x})", a, op), nil
		}
		return a, nil
	}
	return fn
}

// scale weights v by w, which is exactly 0 or 1: the result is v itself or
// exact zero.
func scale(v, w Value) Value {
	if isZero(w) {
		return zero
	}
	return v
}

// series creates sum or product. The bounds may be functions, which lifts the
// operation, or vectors, which pairs or broadcasts them. The summand f is
// called with each value from low to high in unit steps; a non-function f is
// treated as a constant function.
func series(name string, product bool) NativeFunc {
	return func(env *Env, args []Value) (Value, error) {
		lo, hi := args[0], args[1]
		fn, ok := args[2].(*Function)
		if !ok {
			fn = &Function{Params: []string{"x"}, Body: &Literal{Value: args[2]}}
		}
		tmpl := name + "({l}, {r}, " + (&Literal{Value: fn}).String() + ")"
		return binary(env, name, tmpl, lo, hi, func(env *Env, lo, hi Value) (Value, error) {
			return iterate(env, name, lo, hi, fn, product)
		})
	}
}

func iterate(env *Env, name string, lo, hi Value, fn *Function, product bool) (Value, error) {
	for k, v := range []Value{lo, hi} {
		if x, ok := v.(*Real); ok && x.f.IsInf() {
			return nil, &DomainError{X: v, Arg: k + 1, Func: name}
		}
	}
	prec := env.Bits()
	var acc Value = zero
	if product {
		acc = one
	}
	for i := lo; ; {
		c, err := compare(name, i, hi, prec)
		if err != nil {
			return nil, err
		}
		if c > 0 {
			return acc, nil
		}
		v, err := fn.call(env, &List{elems: []Value{i}})
		if err != nil {
			return nil, err
		}
		if product {
			acc, err = Mul(env, acc, v)
		} else {
			acc, err = Add(env, acc, v)
		}
		if err != nil {
			return nil, err
		}
		if i, err = add(i, one, prec); err != nil {
			return nil, err
		}
	}
}

func getFn(env *Env, args []Value) (Value, error) {
	v, k := args[0], args[1]
	switch x := v.(type) {
	case *Function:
		op := func(env *Env, v Value) (Value, error) { return getFn(env, []Value{v, k}) }
		return lift1("get({x}, "+k.String()+")", x, op), nil
	case *Vector:
		if ks, ok := k.(*Vector); ok {
			r := make([]Value, len(ks.elems))
			for i, e := range ks.elems {
				var err error
				if r[i], err = getFn(env, []Value{v, e}); err != nil {
					return nil, err
				}
			}
			return &Vector{elems: r}, nil
		}
		n, err := toInt("get", k)
		if err != nil {
			return nil, err
		}
		if n < 0 || n >= int64(len(x.elems)) {
			return nil, &DomainError{X: k, Arg: 2, Func: "get"}
		}
		return x.elems[n], nil
	default:
		return nil, &TypeError{Op: "get", X: v}
	}
}

func sizeFn(env *Env, args []Value) (Value, error) {
	switch x := args[0].(type) {
	case *Function:
		op := func(env *Env, v Value) (Value, error) { return sizeFn(env, []Value{v}) }
		return lift1("size({x})", x, op), nil
	case *Vector:
		return Int(int64(len(x.elems))), nil
	default:
		return nil, &TypeError{Op: "size", X: x}
	}
}

func crossFn(env *Env, args []Value) (Value, error) {
	a, b := args[0], args[1]
	op := func(env *Env, a, b Value) (Value, error) { return crossFn(env, []Value{a, b}) }
	if r, ok, err := lift2("cross", "cross({l}, {r})", a, b, op); ok {
		return r, err
	}
	u, uv := a.(*Vector)
	v, vv := b.(*Vector)
	if !uv || !vv || len(u.elems) != 3 || len(v.elems) != 3 {
		return nil, &TypeError{Op: "cross", X: a, Y: b, Reason: "need two 3-vectors"}
	}
	r := make([]Value, 3)
	for i := range r {
		j, k := (i+1)%3, (i+2)%3
		p, err := Mul(env, u.elems[j], v.elems[k])
		if err != nil {
			return nil, err
		}
		q, err := Mul(env, u.elems[k], v.elems[j])
		if err != nil {
			return nil, err
		}
		if r[i], err = Sub(env, p, q); err != nil {
			return nil, err
		}
	}
	return &Vector{elems: r}, nil
}

func dotFn(env *Env, args []Value) (Value, error) {
	a, b := args[0], args[1]
	op := func(env *Env, a, b Value) (Value, error) { return dotFn(env, []Value{a, b}) }
	if r, ok, err := lift2("dot", "dot({l}, {r})", a, b, op); ok {
		return r, err
	}
	u, uv := a.(*Vector)
	v, vv := b.(*Vector)
	if !uv || !vv || len(u.elems) != len(v.elems) {
		return nil, &TypeError{Op: "dot", X: a, Y: b, Reason: "need two vectors of equal length"}
	}
	var r Value = zero
	for i := range u.elems {
		p, err := Mul(env, u.elems[i], v.elems[i])
		if err != nil {
			return nil, err
		}
		if r, err = Add(env, r, p); err != nil {
			return nil, err
		}
	}
	return r, nil
}
