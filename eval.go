package calc

import (
	"io"
	"strings"
)

// maxSettle bounds the number of reductions the evaluation driver performs on
// a result.
const maxSettle = 64

// Eval evaluates an expression and returns the result. If an error occurs,
// e.g. an undefined name or an argument outside a function's domain, then the
// result is nil and env.Err returns the error.
func (env *Env) Eval(e Expr) Value {
	env.result, env.err = env.Evaluate(e)
	return env.result
}

// Evaluate evaluates an expression and returns the result. The result is
// also stored under the name "ans". Panics if called while env is already
// evaluating an expression.
func (env *Env) Evaluate(e Expr) (Value, error) {
	if env.depth > 0 {
		panic("calc: Evaluate during evaluation")
	}
	v, err := env.eval(e)
	if err != nil {
		return nil, err
	}
	for i := 0; i < maxSettle; i++ {
		n := settle(v)
		if n == v {
			break
		}
		v = n
	}
	env.globals["ans"] = v
	return v, nil
}

// Result returns the result obtained by the last call to Eval, or nil if it
// failed.
func (env *Env) Result() Value {
	return env.result
}

// Err returns the error from the last call to Eval, if any.
func (env *Env) Err() error {
	return env.err
}

// EvalString parses and evaluates an expression in env.
func (env *Env) EvalString(src string) (Value, error) {
	e, err := Parse(strings.NewReader(src))
	if err != nil {
		return nil, err
	}
	return env.Evaluate(e)
}

// settle performs one reduction step on a result: Unspecified becomes an
// ordinary zero, a single-element list reduces to its element, and a complex
// number with an exact zero imaginary part reduces to its real part. If no
// step applies, the result is v itself.
func settle(v Value) Value {
	if v == Unspecified {
		return Int(0)
	}
	switch v := v.(type) {
	case *List:
		if len(v.elems) == 1 {
			return v.elems[0]
		}
	case *Complex:
		if x, ok := v.im.(*Rational); ok && x.r.Sign() == 0 {
			return v.re
		}
	case *Vector:
		var r []Value
		for i, e := range v.elems {
			n := settle(e)
			if n != e && r == nil {
				r = append(make([]Value, 0, len(v.elems)), v.elems[:i]...)
			}
			if r != nil {
				r = append(r, n)
			}
		}
		if r != nil {
			return &Vector{elems: r}
		}
	}
	return v
}

// eval reduces an expression to a value.
func (env *Env) eval(e Expr) (Value, error) {
	switch e := e.(type) {
	case *Literal:
		return e.Value, nil
	case *SymbolRef:
		return env.Lookup(e.Name)
	case *Define:
		s, ok := e.Target.(*SymbolRef)
		if !ok {
			return nil, &SyntaxError{Expr: e, Msg: "cannot assign to " + e.Target.String()}
		}
		v, err := env.eval(e.Body)
		if err != nil {
			return nil, err
		}
		return env.Define(s.Name, v)
	case *DefineFunction:
		if e.Name == "" {
			return nil, &SyntaxError{Expr: e, Msg: "function has no name"}
		}
		params, err := signature(e, e.Params)
		if err != nil {
			return nil, err
		}
		f := &Function{Name: e.Name, Params: params, Body: e.Body}
		return env.Define(e.Name, f)
	case *Lambda:
		params, err := signature(e, e.Params)
		if err != nil {
			return nil, err
		}
		return &Function{Params: params, Body: e.Body}, nil
	case *UnaryOp:
		x, err := env.eval(e.Operand)
		if err != nil {
			return nil, err
		}
		return e.Op(env, x)
	case *BinaryOp:
		x, err := env.eval(e.Left)
		if err != nil {
			return nil, err
		}
		y, err := env.eval(e.Right)
		if err != nil {
			return nil, err
		}
		return e.Op(env, x, y)
	case *Apply:
		callee, err := env.eval(e.Callee)
		if err != nil {
			return nil, err
		}
		arg, err := env.eval(e.Arg)
		if err != nil {
			return nil, err
		}
		return env.apply(callee, arg)
	case *ListAccumulate:
		var acc *accumulator
		for _, x := range e.Elems {
			v, err := env.eval(x)
			if err != nil {
				return nil, err
			}
			acc = appendValue(acc, v)
		}
		if e.Vector {
			return acc.vector(), nil
		}
		return acc.list(), nil
	case *Native:
		return nil, &SyntaxError{Expr: e, Msg: "builtin body outside a call"}
	default:
		panic("calc: invalid expression node")
	}
}

// apply evaluates a juxtaposition. A function applied to a non-function is a
// call; anything else is a multiplication. Builtins are always called, so
// that they can lift over function arguments.
func (env *Env) apply(callee, arg Value) (Value, error) {
	if f, ok := callee.(*Function); ok {
		if _, fn := arg.(*Function); !fn || f.native() {
			return f.call(env, arg)
		}
	}
	return Mul(env, callee, arg)
}

// signature extracts parameter names from a parameter list expression.
func signature(def, params Expr) ([]string, error) {
	switch p := params.(type) {
	case *SymbolRef:
		return []string{p.Name}, nil
	case *ListAccumulate:
		if p.Vector {
			return nil, &SyntaxError{Expr: def, Msg: "parameters in square brackets"}
		}
		names := make([]string, len(p.Elems))
		for i, x := range p.Elems {
			s, ok := x.(*SymbolRef)
			if !ok {
				return nil, &SyntaxError{Expr: def, Msg: "parameter " + x.String() + " is not a name"}
			}
			for _, n := range names[:i] {
				if n == s.Name {
					return nil, &SyntaxError{Expr: def, Msg: "duplicate parameter " + s.Name}
				}
			}
			names[i] = s.Name
		}
		return names, nil
	default:
		return nil, &SyntaxError{Expr: def, Msg: "parameter " + params.String() + " is not a name"}
	}
}

// Eval is a shortcut to parse an expression and return its result in a new
// environment.
func Eval(src io.RuneScanner, opts ...EnvOption) (Value, error) {
	env := NewEnv(opts...)
	e, err := Parse(src)
	if err != nil {
		return nil, err
	}
	return env.Evaluate(e)
}

// EvalString is a shortcut to parse and evaluate a string expression in a new
// environment.
func EvalString(src string, opts ...EnvOption) (Value, error) {
	return Eval(strings.NewReader(src), opts...)
}
