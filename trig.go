package calc

import (
	"math/big"

	"github.com/zephyrtronium/bigfloat"
)

// bigfloat provides exp, log, and pow, but not trigonometric functions. The
// functions here compute them by Taylor series after argument reduction.
// Each panics with big.ErrNaN on an infinite argument where the result is
// undefined, consistent with bigfloat.

// guardBits is the number of extra bits of working precision used in series.
const guardBits = 32

// piFloat computes π to prec bits.
func piFloat(prec uint) *big.Float {
	return bigfloat.Pi(new(big.Float).SetPrec(prec))
}

// small reports whether a series term is negligible at working precision wp.
func small(term *big.Float, wp uint) bool {
	return term.Sign() == 0 || term.MantExp(nil) < -int(wp)
}

// reduce returns x mod 2π in [-π, π] and the working precision used.
func reduce(x *big.Float, prec uint) (*big.Float, uint) {
	if x.IsInf() {
		panic(big.ErrNaN{})
	}
	wp := prec + guardBits
	if e := x.MantExp(nil); e > 0 {
		wp += uint(e)
	}
	r := new(big.Float).SetPrec(wp).Set(x)
	tau := piFloat(wp)
	tau.SetMantExp(tau, 1)
	q := new(big.Float).SetPrec(wp).Quo(r, tau)
	// round q to the nearest integer
	half := big.NewFloat(0.5)
	if q.Signbit() {
		q.Sub(q, half)
	} else {
		q.Add(q, half)
	}
	k, _ := q.Int(nil)
	q.SetInt(k)
	r.Sub(r, q.Mul(q, tau))
	return r, wp
}

// sinFloat computes sin x to prec bits.
func sinFloat(x *big.Float, prec uint) *big.Float {
	r, wp := reduce(x, prec)
	x2 := new(big.Float).SetPrec(wp).Mul(r, r)
	sum := new(big.Float).SetPrec(wp).Set(r)
	term := new(big.Float).SetPrec(wp).Set(r)
	for k := int64(1); !small(term, wp); k++ {
		term.Mul(term, x2)
		term.Quo(term, new(big.Float).SetInt64(-(2*k)*(2*k+1)))
		sum.Add(sum, term)
	}
	return sum.SetPrec(prec)
}

// cosFloat computes cos x to prec bits.
func cosFloat(x *big.Float, prec uint) *big.Float {
	r, wp := reduce(x, prec)
	x2 := new(big.Float).SetPrec(wp).Mul(r, r)
	sum := new(big.Float).SetPrec(wp).SetInt64(1)
	term := new(big.Float).SetPrec(wp).SetInt64(1)
	for k := int64(1); !small(term, wp); k++ {
		term.Mul(term, x2)
		term.Quo(term, new(big.Float).SetInt64(-(2*k-1)*(2*k)))
		sum.Add(sum, term)
	}
	return sum.SetPrec(prec)
}

// atanFloat computes atan x to prec bits.
func atanFloat(x *big.Float, prec uint) *big.Float {
	wp := prec + guardBits
	if x.IsInf() {
		r := piFloat(wp)
		r.SetMantExp(r, -1)
		if x.Signbit() {
			r.Neg(r)
		}
		return r.SetPrec(prec)
	}
	t := new(big.Float).SetPrec(wp).Abs(x)
	inv := t.Cmp(big.NewFloat(1)) > 0
	if inv {
		t.Quo(big.NewFloat(1), t)
	}
	// atan t = 2 atan(t / (1 + sqrt(1 + t²))); halve until the series
	// converges quickly.
	halvings := 0
	eighth := big.NewFloat(0.125)
	for t.Cmp(eighth) > 0 {
		d := new(big.Float).SetPrec(wp).Mul(t, t)
		d.Add(d, big.NewFloat(1))
		d = new(big.Float).SetPrec(wp).Sqrt(d)
		d.Add(d, big.NewFloat(1))
		t.Quo(t, d)
		halvings++
	}
	t2 := new(big.Float).SetPrec(wp).Mul(t, t)
	sum := new(big.Float).SetPrec(wp).Set(t)
	pw := new(big.Float).SetPrec(wp).Set(t)
	term := new(big.Float).SetPrec(wp).Set(t)
	for k := int64(1); !small(term, wp); k++ {
		pw.Mul(pw, t2)
		pw.Neg(pw)
		term.Quo(pw, new(big.Float).SetInt64(2*k+1))
		sum.Add(sum, term)
	}
	sum.SetMantExp(sum, halvings)
	if inv {
		h := piFloat(wp)
		h.SetMantExp(h, -1)
		sum.Sub(h, sum)
	}
	if x.Signbit() {
		sum.Neg(sum)
	}
	return sum.SetPrec(prec)
}

// atan2Float computes the angle of the point (x, y) in (-π, π].
func atan2Float(y, x *big.Float, prec uint) *big.Float {
	wp := prec + guardBits
	switch x.Sign() {
	case 1:
		return atanFloat(new(big.Float).SetPrec(wp).Quo(y, x), prec)
	case -1:
		a := atanFloat(new(big.Float).SetPrec(wp).Quo(y, x), wp)
		if y.Signbit() {
			return a.Sub(a, piFloat(wp)).SetPrec(prec)
		}
		return a.Add(a, piFloat(wp)).SetPrec(prec)
	}
	switch y.Sign() {
	case 0:
		return new(big.Float).SetPrec(prec)
	case 1:
		h := piFloat(prec)
		return h.SetMantExp(h, -1)
	default:
		h := piFloat(prec)
		h.SetMantExp(h, -1)
		return h.Neg(h)
	}
}

// asinFloat computes asin x for |x| <= 1.
func asinFloat(x *big.Float, prec uint) *big.Float {
	wp := prec + guardBits
	c := new(big.Float).SetPrec(wp).Mul(x, x)
	c.Sub(big.NewFloat(1), c)
	c = new(big.Float).SetPrec(wp).Sqrt(c)
	return atan2Float(x, c, prec)
}

// sinhcosh computes sinh x and cosh x.
func sinhcosh(x *big.Float, prec uint) (sh, ch *big.Float) {
	wp := prec + guardBits
	e := bigfloat.Exp(new(big.Float).SetPrec(wp), x)
	ie := new(big.Float).SetPrec(wp).Quo(big.NewFloat(1), e)
	sh = new(big.Float).SetPrec(wp).Sub(e, ie)
	sh.SetMantExp(sh, -1)
	ch = new(big.Float).SetPrec(wp).Add(e, ie)
	ch.SetMantExp(ch, -1)
	return sh.SetPrec(prec), ch.SetPrec(prec)
}
