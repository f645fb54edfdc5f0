package beval

import (
	"errors"
	"math"
	"math/big"
	"strconv"

	"github.com/zephyrtronium/bigfloat"
)

// arith is the arithmetic the evaluator computes with. Operations never
// modify their operands.
type arith[T any] interface {
	// num parses the text of an Int or Float token. The result is false if
	// the text is not a number.
	num(text string) (T, bool)
	neg(x T) T
	add(x, y T) T
	sub(x, y T) T
	mul(x, y T) T
	quo(x, y T) T
	rem(x, y T) T
	pow(x, y T) (T, error)
	// zero reports whether x is zero of either sign.
	zero(x T) bool
	call(fn Func, x T) (T, error)
}

type floatArith struct{}

func (floatArith) num(text string) (float64, bool) {
	r, err := strconv.ParseFloat(text, 64)
	// Out of range literals become ±Inf or 0, as with strtod.
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return r, true
}

func (floatArith) neg(x float64) float64 { return -x }
func (floatArith) add(x, y float64) float64 { return x + y }
func (floatArith) sub(x, y float64) float64 { return x - y }
func (floatArith) mul(x, y float64) float64 { return x * y }
func (floatArith) quo(x, y float64) float64 { return x / y }
func (floatArith) rem(x, y float64) float64 { return math.Mod(x, y) }
func (floatArith) pow(x, y float64) (float64, error) { return math.Pow(x, y), nil }
func (floatArith) zero(x float64) bool { return x == 0 }

func (floatArith) call(fn Func, x float64) (float64, error) {
	return fn.Float64(x), nil
}

// bigArith computes with big.Float values of a fixed precision. Operations on
// infinities that have no value, like Inf-Inf, panic with big.ErrNaN.
type bigArith struct {
	prec uint
}

func (a bigArith) new() *big.Float {
	return new(big.Float).SetPrec(a.prec)
}

func (a bigArith) num(text string) (*big.Float, bool) {
	r, _, err := a.new().Parse(text, 10)
	if err != nil {
		return nil, false
	}
	return r, true
}

func (a bigArith) neg(x *big.Float) *big.Float { return a.new().Neg(x) }
func (a bigArith) add(x, y *big.Float) *big.Float { return a.new().Add(x, y) }
func (a bigArith) sub(x, y *big.Float) *big.Float { return a.new().Sub(x, y) }
func (a bigArith) mul(x, y *big.Float) *big.Float { return a.new().Mul(x, y) }
func (a bigArith) quo(x, y *big.Float) *big.Float { return a.new().Quo(x, y) }
func (a bigArith) zero(x *big.Float) bool { return x.Sign() == 0 }

// rem computes x - y*trunc(x/y), so the result has the sign of x, like
// math.Mod. The result is exact before rounding to the precision of a, and the
// work depends on the precisions of x and y rather than their magnitudes.
func (a bigArith) rem(x, y *big.Float) *big.Float {
	z := a.new()
	switch {
	case x.IsInf():
		panic(&DomainError{Func: "%"})
	case y.IsInf():
		return z.Set(x)
	}
	ax := new(big.Float).Abs(x)
	if ax.Cmp(new(big.Float).Abs(y)) < 0 {
		return z.Set(x)
	}
	// With |x| = mx*2^ex and |y| = my*2^ey for integers mx and my, and k the
	// lesser exponent, |x| mod |y| is 2^k * (mx*2^(ex-k) mod my*2^(ey-k)).
	// Since |x| >= |y|, ey-k is at most the length of mx.
	mx, ex := intMant(ax)
	my, ey := intMant(y)
	k := min(ex, ey)
	m := my.Lsh(my, uint(ey-k))
	r := new(big.Int).Exp(big.NewInt(2), big.NewInt(int64(ex-k)), m)
	r.Mul(r, mx).Mod(r, m)
	z.SetInt(r)
	z.SetMantExp(z, k)
	if x.Sign() < 0 {
		z.Neg(z)
	}
	return z
}

// intMant returns the integer m and exponent e such that |x| = m*2^e, for
// finite nonzero x.
func intMant(x *big.Float) (*big.Int, int) {
	mant := new(big.Float)
	e := x.MantExp(mant)
	p := int(x.MinPrec())
	mant.SetMantExp(mant.Abs(mant), p)
	m, _ := mant.Int(nil)
	return m, e - p
}

func (a bigArith) pow(x, y *big.Float) (*big.Float, error) {
	z := a.new()
	switch {
	case y.Sign() == 0:
		return z.SetInt64(1), nil
	case x.Sign() == 0:
		if y.Sign() < 0 {
			return z.SetInf(false), nil
		}
		return z, nil
	case x.IsInf(), y.IsInf():
		// The limits are the same as for float64.
		xf, _ := x.Float64()
		yf, _ := y.Float64()
		r := math.Pow(xf, yf)
		if math.IsNaN(r) {
			return nil, &DomainError{X: new(big.Float).Copy(x), Func: "^"}
		}
		return z.SetFloat64(r), nil
	case x.Sign() < 0:
		// Negative bases only have real powers for integer exponents.
		if !y.IsInt() {
			return nil, &DomainError{X: new(big.Float).Copy(x), Func: "^"}
		}
		z.Set(bigfloat.Pow(z, new(big.Float).Abs(x), y))
		// An integer y is odd only if its integer mantissa is odd and unscaled.
		if m, e := intMant(y); e == 0 && m.Bit(0) != 0 {
			z.Neg(z)
		}
		return z, nil
	}
	// Pow does not always write its result into z.
	return z.Set(bigfloat.Pow(z, x, y)), nil
}

func (a bigArith) call(fn Func, x *big.Float) (*big.Float, error) {
	z := a.new()
	if err := fn.Big(z, x); err != nil {
		return nil, err
	}
	return z, nil
}
