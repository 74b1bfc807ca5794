package calc

import (
	"math"
	"strings"
)

// formatter renders values as text.
type formatter struct {
	// digits is the number of significant decimal digits for approximate
	// values. If zero, each value's own precision decides.
	digits int
	// sci selects scientific notation for approximate values.
	sci bool
}

var defaultfmt formatter

func (p formatter) format(v Value) string {
	var b strings.Builder
	p.write(&b, v)
	return b.String()
}

func (p formatter) write(b *strings.Builder, v Value) {
	switch v := v.(type) {
	case *Rational:
		if v.r.IsInt() {
			b.WriteString(v.r.Num().String())
			return
		}
		b.WriteString(v.r.String())
	case *Real:
		d := p.digits
		if d <= 0 {
			d = bitsToDigits(v.f.Prec())
		}
		if p.sci {
			b.WriteString(v.f.Text('e', d-1))
			return
		}
		b.WriteString(v.f.Text('g', d))
	case *Complex:
		if !isZero(v.re) {
			p.write(b, v.re)
			if sign(v.im) < 0 {
				b.WriteString(" - ")
				p.write(b, neg(v.im))
			} else {
				b.WriteString(" + ")
				p.write(b, v.im)
			}
		} else {
			p.write(b, v.im)
		}
		b.WriteByte('i')
	case *Vector:
		b.WriteByte('[')
		p.elems(b, v.elems)
		b.WriteByte(']')
	case *List:
		b.WriteByte('(')
		p.elems(b, v.elems)
		b.WriteByte(')')
	case *Function:
		if v.Name == "" {
			b.WriteString(paramString(v.Params))
			b.WriteString(" -> ")
		} else {
			b.WriteString(v.Name)
			b.WriteByte('(')
			b.WriteString(strings.Join(v.Params, ", "))
			b.WriteString(") = ")
		}
		b.WriteString(v.Body.String())
	default:
		panic("calc: invalid value type")
	}
}

func (p formatter) elems(b *strings.Builder, elems []Value) {
	for i, e := range elems {
		if i > 0 {
			b.WriteString(", ")
		}
		p.write(b, e)
	}
}

// bitsToDigits converts a precision in bits to significant decimal digits.
func bitsToDigits(bits uint) int {
	d := int(float64(bits) * math.Log10(2))
	if d < 1 {
		return 10
	}
	return d
}

// digitsToBits converts a precision in decimal digits to bits.
func digitsToBits(digits uint) uint {
	return uint(math.Ceil(float64(digits)*math.Log2(10))) + 4
}
