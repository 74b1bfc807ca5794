package calc

// UnaryFunc is an operation on one value.
type UnaryFunc func(env *Env, x Value) (Value, error)

// BinaryFunc is an operation on two values.
type BinaryFunc func(env *Env, x, y Value) (Value, error)

// Operations dispatch on their operands in a fixed order. A function operand
// is lifted, so that the result is a new function of the same parameters. A
// vector operand is mapped element-wise. Only scalars reach the scalar
// implementation.

// callOf builds an expression that calls f with the values of params.
func callOf(f *Function, params []string) Expr {
	args := make([]Expr, len(params))
	for i, p := range params {
		args[i] = &SymbolRef{Name: p}
	}
	return &Apply{Callee: &Literal{Value: f}, Arg: &ListAccumulate{Elems: args}}
}

// lift1 wraps op around a function: (op f)(x) = op(f(x)).
func lift1(tmpl string, f *Function, op UnaryFunc) *Function {
	return &Function{
		Params: f.Params,
		Body:   &UnaryOp{Template: tmpl, Operand: callOf(f, f.Params), Op: op},
	}
}

// lift2 combines x and y under op if either is a function. If both are, they
// must have equal arity, and the result evaluates both against the same
// arguments: (f op g)(x) = f(x) op g(x). The boolean result reports whether
// lifting applied.
func lift2(name, tmpl string, x, y Value, op BinaryFunc) (Value, bool, error) {
	fx, xf := x.(*Function)
	fy, yf := y.(*Function)
	switch {
	case xf && yf:
		if len(fx.Params) != len(fy.Params) {
			return nil, true, &TypeError{Op: name, X: x, Y: y, Reason: "functions have different arity"}
		}
		r := &Function{
			Params: fx.Params,
			Body:   &BinaryOp{Template: tmpl, Left: callOf(fx, fx.Params), Right: callOf(fy, fx.Params), Op: op},
		}
		return r, true, nil
	case xf:
		r := &Function{
			Params: fx.Params,
			Body:   &BinaryOp{Template: tmpl, Left: callOf(fx, fx.Params), Right: &Literal{Value: y}, Op: op},
		}
		return r, true, nil
	case yf:
		r := &Function{
			Params: fy.Params,
			Body:   &BinaryOp{Template: tmpl, Left: &Literal{Value: x}, Right: callOf(fy, fy.Params), Op: op},
		}
		return r, true, nil
	}
	return nil, false, nil
}

// unary applies a scalar operation to x, lifting over functions and mapping
// over vectors.
func unary(env *Env, name string, x Value, scalar func(env *Env, x Value) (Value, error)) (Value, error) {
	switch x := x.(type) {
	case *Function:
		op := func(env *Env, v Value) (Value, error) { return unary(env, name, v, scalar) }
		return lift1(name+"({x})", x, op), nil
	case *Vector:
		r := make([]Value, len(x.elems))
		for i, e := range x.elems {
			v, err := unary(env, name, e, scalar)
			if err != nil {
				return nil, err
			}
			r[i] = v
		}
		return &Vector{elems: r}, nil
	case *List:
		return nil, &TypeError{Op: name, X: x}
	case *Rational, *Real, *Complex:
		return scalar(env, x)
	default:
		panic("calc: invalid value type")
	}
}

// binary applies a scalar operation to x and y, lifting over functions and
// pairing or broadcasting over vectors.
func binary(env *Env, name, tmpl string, x, y Value, scalar func(env *Env, x, y Value) (Value, error)) (Value, error) {
	op := func(env *Env, x, y Value) (Value, error) { return binary(env, name, tmpl, x, y, scalar) }
	if r, ok, err := lift2(name, tmpl, x, y, op); ok {
		return r, err
	}
	vx, xv := x.(*Vector)
	vy, yv := y.(*Vector)
	switch {
	case xv && yv:
		if len(vx.elems) != len(vy.elems) {
			return nil, &TypeError{Op: name, X: x, Y: y, Reason: "vectors have different lengths"}
		}
		r := make([]Value, len(vx.elems))
		for i := range vx.elems {
			v, err := op(env, vx.elems[i], vy.elems[i])
			if err != nil {
				return nil, err
			}
			r[i] = v
		}
		return &Vector{elems: r}, nil
	case xv:
		r := make([]Value, len(vx.elems))
		for i, e := range vx.elems {
			v, err := op(env, e, y)
			if err != nil {
				return nil, err
			}
			r[i] = v
		}
		return &Vector{elems: r}, nil
	case yv:
		r := make([]Value, len(vy.elems))
		for i, e := range vy.elems {
			v, err := op(env, x, e)
			if err != nil {
				return nil, err
			}
			r[i] = v
		}
		return &Vector{elems: r}, nil
	}
	if !isScalar(x) || !isScalar(y) {
		return nil, &TypeError{Op: name, X: x, Y: y}
	}
	return scalar(env, x, y)
}

// Add computes x + y.
func Add(env *Env, x, y Value) (Value, error) {
	return binary(env, "+", "{l} + {r}", x, y, func(env *Env, x, y Value) (Value, error) {
		return add(x, y, env.Bits())
	})
}

// Sub computes x - y.
func Sub(env *Env, x, y Value) (Value, error) {
	return binary(env, "-", "{l} - {r}", x, y, func(env *Env, x, y Value) (Value, error) {
		return sub(x, y, env.Bits())
	})
}

// Mul computes x * y.
func Mul(env *Env, x, y Value) (Value, error) {
	return binary(env, "*", "{l} * {r}", x, y, func(env *Env, x, y Value) (Value, error) {
		return mul(x, y, env.Bits())
	})
}

// Div computes x / y.
func Div(env *Env, x, y Value) (Value, error) {
	return binary(env, "/", "{l} / {r}", x, y, func(env *Env, x, y Value) (Value, error) {
		return quo(x, y, env.Bits())
	})
}

// Pow computes x ^ y.
func Pow(env *Env, x, y Value) (Value, error) {
	return binary(env, "^", "{l}^{r}", x, y, func(env *Env, x, y Value) (Value, error) {
		return pow(x, y, env.Bits())
	})
}

// Neg computes -x.
func Neg(env *Env, x Value) (Value, error) {
	if f, ok := x.(*Function); ok {
		return lift1("-{x}", f, Neg), nil
	}
	return unary(env, "-", x, func(env *Env, x Value) (Value, error) {
		return neg(x), nil
	})
}
