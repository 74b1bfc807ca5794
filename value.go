package calc

import (
	"math/big"
	"strings"
)

// Value is a runtime value. The set of Value types is closed: *Rational,
// *Real, *Complex, *Vector, *Function, and *List. Values are immutable; every
// operation on Values produces new ones.
type Value interface {
	String() string
	value()
}

// Rational is an exact rational number.
type Rational struct {
	r *big.Rat
}

// Real is an arbitrary-precision approximation of a real number.
type Real struct {
	f *big.Float
	// exact indicates that f is known to equal the true result, e.g. the
	// result of sin(0) or asin(1).
	exact bool
}

// Complex is a complex number. Its parts are *Rational or *Real.
type Complex struct {
	re, im Value
}

// Vector is an ordered sequence of values.
type Vector struct {
	elems []Value
}

// List is an ordered sequence of values produced by a comma-separated list in
// round brackets. It is transient: lists are used as argument lists for
// function calls and are not otherwise valid operands.
type List struct {
	elems []Value
}

// Function is a first-class function. Calling a function binds its
// parameters as locals and evaluates its body.
type Function struct {
	// Name is the name under which the function was defined. It is used for
	// display and error messages only; anonymous functions have no name.
	Name string
	// Params is the list of parameter names.
	Params []string
	// Body is the expression evaluated when the function is called.
	Body Expr
}

func (*Rational) value() {}
func (*Real) value()     {}
func (*Complex) value()  {}
func (*Vector) value()   {}
func (*List) value()     {}
func (*Function) value() {}

// Unspecified is the value bound to a function parameter that received no
// argument. It behaves as exact zero in arithmetic. Builtins that need to
// distinguish a missing argument compare by identity.
var Unspecified Value = &Rational{r: new(big.Rat)}

// Int returns an exact integer value.
func Int(x int64) *Rational {
	return &Rational{r: new(big.Rat).SetInt64(x)}
}

// Frac returns the exact rational value a/b. Panics if b is zero.
func Frac(a, b int64) *Rational {
	if b == 0 {
		panic("calc: zero denominator")
	}
	return &Rational{r: big.NewRat(a, b)}
}

// NewRational returns an exact value equal to r.
func NewRational(r *big.Rat) *Rational {
	return &Rational{r: new(big.Rat).Set(r)}
}

// Rat returns a copy of the value of x.
func (x *Rational) Rat() *big.Rat {
	return new(big.Rat).Set(x.r)
}

// NewReal returns an approximate value equal to f. exact marks whether f is
// known to be the exact result.
func NewReal(f *big.Float, exact bool) *Real {
	return &Real{f: new(big.Float).Copy(f), exact: exact}
}

// Float returns a copy of the value of x.
func (x *Real) Float() *big.Float {
	return new(big.Float).Copy(x.f)
}

// Exact returns whether x is known to be exact.
func (x *Real) Exact() bool {
	return x.exact
}

// NewComplex returns re + im i. Both parts must be *Rational or *Real. If im
// is exact zero, the result is re itself.
func NewComplex(re, im Value) Value {
	if !isReal(re) || !isReal(im) {
		panic("calc: complex parts must be real")
	}
	return cplx(re, im)
}

// Real returns the real part of z.
func (z *Complex) Real() Value {
	return z.re
}

// Imag returns the imaginary part of z.
func (z *Complex) Imag() Value {
	return z.im
}

// NewVector returns a vector holding a copy of elems.
func NewVector(elems ...Value) *Vector {
	return &Vector{elems: append([]Value(nil), elems...)}
}

// Len returns the number of elements in v.
func (v *Vector) Len() int {
	return len(v.elems)
}

// At returns the element of v at index k.
func (v *Vector) At(k int) Value {
	return v.elems[k]
}

// Elems returns a copy of the elements of v.
func (v *Vector) Elems() []Value {
	return append([]Value(nil), v.elems...)
}

// NewList returns a list holding a copy of elems.
func NewList(elems ...Value) *List {
	return &List{elems: append([]Value(nil), elems...)}
}

// Len returns the number of elements in l.
func (l *List) Len() int {
	return len(l.elems)
}

// Elems returns a copy of the elements of l.
func (l *List) Elems() []Value {
	return append([]Value(nil), l.elems...)
}

// Arity returns the number of parameters of f.
func (f *Function) Arity() int {
	return len(f.Params)
}

// native returns whether f is a builtin.
func (f *Function) native() bool {
	_, ok := f.Body.(*Native)
	return ok
}

func (x *Rational) String() string { return defaultfmt.format(x) }
func (x *Real) String() string     { return defaultfmt.format(x) }
func (z *Complex) String() string  { return defaultfmt.format(z) }
func (v *Vector) String() string   { return defaultfmt.format(v) }
func (l *List) String() string     { return defaultfmt.format(l) }
func (f *Function) String() string { return defaultfmt.format(f) }

// typeName returns a short name for the type of v for use in messages.
func typeName(v Value) string {
	switch v.(type) {
	case nil:
		return "nothing"
	case *Rational:
		return "rational"
	case *Real:
		return "real"
	case *Complex:
		return "complex"
	case *Vector:
		return "vector"
	case *List:
		return "list"
	case *Function:
		return "function"
	default:
		panic("calc: invalid value type")
	}
}

// isReal returns whether v is a real scalar.
func isReal(v Value) bool {
	switch v.(type) {
	case *Rational, *Real:
		return true
	}
	return false
}

// isScalar returns whether v is a real or complex scalar.
func isScalar(v Value) bool {
	switch v.(type) {
	case *Rational, *Real, *Complex:
		return true
	}
	return false
}

// paramString formats a parameter list.
func paramString(params []string) string {
	if len(params) == 1 {
		return params[0]
	}
	return "(" + strings.Join(params, ", ") + ")"
}
