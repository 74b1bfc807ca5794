package calc

import (
	"math/big"

	"github.com/zephyrtronium/bigfloat"
)

// This file implements arithmetic on scalars. Every function here takes
// *Rational, *Real, or *Complex operands; the polymorphic operators in ops.go
// handle functions and vectors before reaching these. prec is the precision
// in bits for approximate results.

var (
	zero = Int(0)
	one  = Int(1)
)

// catchNaN converts a big.ErrNaN panic, which math/big and bigfloat use to
// signal invalid operations like inf-inf, into a DomainError on x.
func catchNaN(fn string, x Value, err *error) {
	r := recover()
	if r == nil {
		return
	}
	if _, ok := r.(big.ErrNaN); !ok {
		panic(r)
	}
	*err = &DomainError{X: x, Func: fn}
}

// cplx creates re + im i, simplifying to re when im is exact zero.
func cplx(re, im Value) Value {
	if x, ok := im.(*Rational); ok && x.r.Sign() == 0 {
		return re
	}
	return &Complex{re: re, im: im}
}

// parts splits a scalar into its real and imaginary parts.
func parts(v Value) (re, im Value) {
	if z, ok := v.(*Complex); ok {
		return z.re, z.im
	}
	return v, zero
}

// floatOf converts a real scalar to a float with the given precision.
func floatOf(v Value, prec uint) *big.Float {
	switch v := v.(type) {
	case *Rational:
		return new(big.Float).SetPrec(prec).SetRat(v.r)
	case *Real:
		return new(big.Float).SetPrec(prec).Set(v.f)
	default:
		panic("calc: floatOf on " + typeName(v))
	}
}

// approx wraps a computed float as an approximate value.
func approx(f *big.Float) *Real {
	return &Real{f: f}
}

// exact returns whether v is known to be exact.
func exact(v Value) bool {
	switch v := v.(type) {
	case *Rational:
		return true
	case *Real:
		return v.exact
	case *Complex:
		return exact(v.re) && exact(v.im)
	}
	return false
}

// isZero returns whether a scalar is zero.
func isZero(v Value) bool {
	switch v := v.(type) {
	case *Rational:
		return v.r.Sign() == 0
	case *Real:
		return v.f.Sign() == 0
	case *Complex:
		return isZero(v.re) && isZero(v.im)
	}
	return false
}

// isOne returns whether a scalar is one.
func isOne(v Value) bool {
	switch v := v.(type) {
	case *Rational:
		return v.r.IsInt() && v.r.Num().IsInt64() && v.r.Num().Int64() == 1
	case *Real:
		return v.f.Cmp(big.NewFloat(1)) == 0
	case *Complex:
		return isOne(v.re) && isZero(v.im)
	}
	return false
}

// sign returns the sign of a real scalar.
func sign(v Value) int {
	switch v := v.(type) {
	case *Rational:
		return v.r.Sign()
	case *Real:
		return v.f.Sign()
	default:
		panic("calc: sign of " + typeName(v))
	}
}

// add computes a + b.
func add(a, b Value, prec uint) (Value, error) {
	if _, ok := a.(*Complex); ok {
		return cadd(a, b, prec)
	}
	if _, ok := b.(*Complex); ok {
		return cadd(a, b, prec)
	}
	if x, ok := a.(*Rational); ok {
		if y, ok := b.(*Rational); ok {
			return &Rational{r: new(big.Rat).Add(x.r, y.r)}, nil
		}
	}
	return floatop("+", a, b, prec, (*big.Float).Add)
}

func cadd(a, b Value, prec uint) (Value, error) {
	ar, ai := parts(a)
	br, bi := parts(b)
	re, err := add(ar, br, prec)
	if err != nil {
		return nil, err
	}
	im, err := add(ai, bi, prec)
	if err != nil {
		return nil, err
	}
	return cplx(re, im), nil
}

// sub computes a - b.
func sub(a, b Value, prec uint) (Value, error) {
	return add(a, neg(b), prec)
}

// neg computes -a.
func neg(a Value) Value {
	switch a := a.(type) {
	case *Rational:
		return &Rational{r: new(big.Rat).Neg(a.r)}
	case *Real:
		return &Real{f: new(big.Float).Neg(a.f), exact: a.exact}
	case *Complex:
		return &Complex{re: neg(a.re), im: neg(a.im)}
	default:
		panic("calc: neg of " + typeName(a))
	}
}

// mul computes a * b.
func mul(a, b Value, prec uint) (Value, error) {
	_, ac := a.(*Complex)
	_, bc := b.(*Complex)
	if ac || bc {
		ar, ai := parts(a)
		br, bi := parts(b)
		rr, err := mul(ar, br, prec)
		if err != nil {
			return nil, err
		}
		ii, err := mul(ai, bi, prec)
		if err != nil {
			return nil, err
		}
		ri, err := mul(ar, bi, prec)
		if err != nil {
			return nil, err
		}
		ir, err := mul(ai, br, prec)
		if err != nil {
			return nil, err
		}
		re, err := sub(rr, ii, prec)
		if err != nil {
			return nil, err
		}
		im, err := add(ri, ir, prec)
		if err != nil {
			return nil, err
		}
		return cplx(re, im), nil
	}
	if x, ok := a.(*Rational); ok {
		if y, ok := b.(*Rational); ok {
			return &Rational{r: new(big.Rat).Mul(x.r, y.r)}, nil
		}
	}
	return floatop("*", a, b, prec, (*big.Float).Mul)
}

// quo computes a / b.
func quo(a, b Value, prec uint) (Value, error) {
	if isZero(b) {
		return nil, &DomainError{X: b, Arg: 2, Func: "/"}
	}
	if z, ok := b.(*Complex); ok {
		// a / (c+di) = a (c-di) / (c² + d²)
		cc, err := mul(z.re, z.re, prec)
		if err != nil {
			return nil, err
		}
		dd, err := mul(z.im, z.im, prec)
		if err != nil {
			return nil, err
		}
		den, err := add(cc, dd, prec)
		if err != nil {
			return nil, err
		}
		num, err := mul(a, &Complex{re: z.re, im: neg(z.im)}, prec)
		if err != nil {
			return nil, err
		}
		re, im := parts(num)
		if re, err = quo(re, den, prec); err != nil {
			return nil, err
		}
		if im, err = quo(im, den, prec); err != nil {
			return nil, err
		}
		return cplx(re, im), nil
	}
	if z, ok := a.(*Complex); ok {
		re, err := quo(z.re, b, prec)
		if err != nil {
			return nil, err
		}
		im, err := quo(z.im, b, prec)
		if err != nil {
			return nil, err
		}
		return cplx(re, im), nil
	}
	if x, ok := a.(*Rational); ok {
		if y, ok := b.(*Rational); ok {
			return &Rational{r: new(big.Rat).Quo(x.r, y.r)}, nil
		}
	}
	return floatop("/", a, b, prec, (*big.Float).Quo)
}

// floatop applies a float operation to two real scalars.
func floatop(name string, a, b Value, prec uint, op func(z, x, y *big.Float) *big.Float) (r Value, err error) {
	defer catchNaN(name, b, &err)
	x, y := floatOf(a, prec), floatOf(b, prec)
	z := op(new(big.Float).SetPrec(prec), x, y)
	return &Real{f: z, exact: exact(a) && exact(b)}, nil
}

// integer returns the value of v if it is an exact integer that fits in an
// int64.
func integer(v Value) (int64, bool) {
	x, ok := v.(*Rational)
	if !ok || !x.r.IsInt() || !x.r.Num().IsInt64() {
		return 0, false
	}
	return x.r.Num().Int64(), true
}

// pow computes a ^ b.
func pow(a, b Value, prec uint) (Value, error) {
	if n, ok := integer(b); ok {
		return powint(a, n, prec)
	}
	_, ac := a.(*Complex)
	_, bc := b.(*Complex)
	if ac || bc {
		if isZero(a) {
			if re, _ := parts(b); sign(re) > 0 {
				return zero, nil
			}
			return nil, &DomainError{X: a, Arg: 1, Func: "^"}
		}
		l, err := clog(a, prec)
		if err != nil {
			return nil, err
		}
		e, err := mul(b, l, prec)
		if err != nil {
			return nil, err
		}
		return cexp(e, prec)
	}
	if sign(a) == 0 {
		if sign(b) > 0 {
			return zero, nil
		}
		return nil, &DomainError{X: a, Arg: 1, Func: "^"}
	}
	if x, ok := b.(*Rational); ok && x.r.Num().IsInt64() && x.r.Denom().IsInt64() && x.r.Denom().Int64() == 2 {
		// a^(p/2) = sqrt(a)^p, exact for perfect squares.
		s := sqrt(a, prec)
		return powint(s, x.r.Num().Int64(), prec)
	}
	if sign(a) < 0 {
		return negpow(a, b, prec)
	}
	return powfloat(a, b, prec)
}

// negpow computes a ^ b for negative real a and real b.
func negpow(a, b Value, prec uint) (r Value, err error) {
	// (-x)^y = x^y (cos πy + i sin πy)
	m, err := pow(neg(a), b, prec)
	if err != nil {
		return nil, err
	}
	defer catchNaN("^", b, &err)
	t := new(big.Float).Mul(piFloat(prec), floatOf(b, prec))
	c, err := mul(m, approx(cosFloat(t, prec)), prec)
	if err != nil {
		return nil, err
	}
	s, err := mul(m, approx(sinFloat(t, prec)), prec)
	if err != nil {
		return nil, err
	}
	return cplx(c, s), nil
}

func powfloat(a, b Value, prec uint) (r Value, err error) {
	defer catchNaN("^", a, &err)
	z := new(big.Float).SetPrec(prec)
	bigfloat.Pow(z, floatOf(a, prec), floatOf(b, prec))
	return approx(z), nil
}

// powint computes a ^ n by repeated squaring.
func powint(a Value, n int64, prec uint) (Value, error) {
	if n < 0 {
		if isZero(a) {
			return nil, &DomainError{X: a, Arg: 1, Func: "^"}
		}
		r, err := powint(a, -n, prec)
		if err != nil {
			return nil, err
		}
		return quo(one, r, prec)
	}
	if x, ok := a.(*Rational); ok {
		e := big.NewInt(n)
		num := new(big.Int).Exp(x.r.Num(), e, nil)
		den := new(big.Int).Exp(x.r.Denom(), e, nil)
		return &Rational{r: new(big.Rat).SetFrac(num, den)}, nil
	}
	var r Value = one
	for n > 0 {
		var err error
		if n&1 != 0 {
			if r, err = mul(r, a, prec); err != nil {
				return nil, err
			}
		}
		n >>= 1
		if n > 0 {
			if a, err = mul(a, a, prec); err != nil {
				return nil, err
			}
		}
	}
	return r, nil
}

// sqrt computes the principal square root of a scalar.
func sqrt(a Value, prec uint) Value {
	switch a := a.(type) {
	case *Rational:
		if a.r.Sign() < 0 {
			return cplx(zero, sqrt(neg(a), prec))
		}
		n, d := a.r.Num(), a.r.Denom()
		sn, sd := new(big.Int).Sqrt(n), new(big.Int).Sqrt(d)
		if new(big.Int).Mul(sn, sn).Cmp(n) == 0 && new(big.Int).Mul(sd, sd).Cmp(d) == 0 {
			return &Rational{r: new(big.Rat).SetFrac(sn, sd)}
		}
		return approx(new(big.Float).SetPrec(prec).Sqrt(floatOf(a, prec)))
	case *Real:
		switch a.f.Sign() {
		case -1:
			return cplx(zero, sqrt(neg(a), prec))
		case 0:
			return a
		}
		return approx(new(big.Float).SetPrec(prec).Sqrt(floatOf(a, prec)))
	case *Complex:
		// sqrt(x+yi) = sqrt((m+x)/2) ± i sqrt((m-x)/2), m = |x+yi|
		x, y := floatOf(a.re, prec), floatOf(a.im, prec)
		m := cabs(x, y, prec)
		h := new(big.Float).SetPrec(prec).Add(m, x)
		re := new(big.Float).SetPrec(prec).Sqrt(h.Quo(h, big.NewFloat(2)))
		h = new(big.Float).SetPrec(prec).Sub(m, x)
		im := new(big.Float).SetPrec(prec).Sqrt(h.Quo(h, big.NewFloat(2)))
		if y.Signbit() {
			im.Neg(im)
		}
		return cplx(approx(re), approx(im))
	default:
		panic("calc: sqrt of " + typeName(a))
	}
}

// cabs computes sqrt(x² + y²).
func cabs(x, y *big.Float, prec uint) *big.Float {
	xx := new(big.Float).SetPrec(prec).Mul(x, x)
	yy := new(big.Float).SetPrec(prec).Mul(y, y)
	return new(big.Float).SetPrec(prec).Sqrt(xx.Add(xx, yy))
}

// compare compares two real scalars, returning -1, 0, or +1.
func compare(op string, a, b Value, prec uint) (int, error) {
	if !isReal(a) || !isReal(b) {
		return 0, &TypeError{Op: op, X: a, Y: b}
	}
	if x, ok := a.(*Rational); ok {
		if y, ok := b.(*Rational); ok {
			return x.r.Cmp(y.r), nil
		}
	}
	return floatOf(a, prec).Cmp(floatOf(b, prec)), nil
}

// toInt converts a scalar to an int64 for control decisions like loop bounds
// and indices.
func toInt(fn string, v Value) (int64, error) {
	switch x := v.(type) {
	case *Rational:
		if n, ok := integer(x); ok {
			return n, nil
		}
	case *Real:
		if x.f.IsInt() {
			if n, acc := x.f.Int64(); acc == big.Exact {
				return n, nil
			}
		}
	case *Complex:
		if isZero(x.im) {
			return toInt(fn, x.re)
		}
	default:
		return 0, &TypeError{Op: fn, X: v}
	}
	return 0, &DomainError{X: v, Func: fn}
}

// expScalar computes e^a.
func expScalar(a Value, prec uint) (r Value, err error) {
	switch x := a.(type) {
	case *Rational:
		if x.r.Sign() == 0 {
			return one, nil
		}
	case *Complex:
		return cexp(a, prec)
	}
	defer catchNaN("exp", a, &err)
	return approx(bigfloat.Exp(new(big.Float).SetPrec(prec), floatOf(a, prec))), nil
}

// logScalar computes the natural logarithm of a.
func logScalar(a Value, prec uint) (r Value, err error) {
	if _, ok := a.(*Complex); ok {
		return clog(a, prec)
	}
	if isOne(a) && exact(a) {
		return zero, nil
	}
	switch sign(a) {
	case 0:
		return nil, &DomainError{X: a, Func: "ln"}
	case -1:
		// ln(-x) = ln x + iπ
		l, err := logScalar(neg(a), prec)
		if err != nil {
			return nil, err
		}
		return cplx(l, approx(piFloat(prec))), nil
	}
	defer catchNaN("ln", a, &err)
	return approx(bigfloat.Log(new(big.Float).SetPrec(prec), floatOf(a, prec))), nil
}

// cexp computes e^z for complex z.
func cexp(z Value, prec uint) (Value, error) {
	re, im := parts(z)
	m, err := expScalar(re, prec)
	if err != nil {
		return nil, err
	}
	if isZero(im) {
		return m, nil
	}
	y := floatOf(im, prec)
	c, err := mul(m, approx(cosFloat(y, prec)), prec)
	if err != nil {
		return nil, err
	}
	s, err := mul(m, approx(sinFloat(y, prec)), prec)
	if err != nil {
		return nil, err
	}
	return cplx(c, s), nil
}

// clog computes the principal natural logarithm of complex z.
func clog(z Value, prec uint) (r Value, err error) {
	re, im := parts(z)
	if isZero(re) && isZero(im) {
		return nil, &DomainError{X: z, Func: "ln"}
	}
	defer catchNaN("ln", z, &err)
	x, y := floatOf(re, prec), floatOf(im, prec)
	m := bigfloat.Log(new(big.Float).SetPrec(prec), cabs(x, y, prec))
	return cplx(approx(m), approx(atan2Float(y, x, prec))), nil
}
