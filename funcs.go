package beval

import (
	"errors"
	"math"
	"math/big"
	"sort"

	"github.com/zephyrtronium/bigfloat"
)

// Func is a function from reals to reals.
type Func interface {
	// Float64 evaluates the function in float64 arithmetic. Arguments outside
	// the function's domain produce NaN.
	Float64(x float64) float64

	// Big sets z to the function's value at x. z has its precision set and
	// is not otherwise used. If x is outside the function's domain, the
	// result is an error that unwraps to ErrDomain.
	Big(z, x *big.Float) error
}

var globalfuncs = map[string]Func{
	"sqrt":  Monadic(math.Sqrt, (*big.Float).Sqrt),
	"log":   Monadic(math.Log, bigLog),
	"sin":   Monadic(math.Sin, nil),
	"cos":   Monadic(math.Cos, nil),
	"tan":   Monadic(math.Tan, nil),
	"torad": Monadic(torad, bigTorad),
	"todeg": Monadic(todeg, bigTodeg),
}

// Lookup returns the built-in function with the given name, or nil if there
// is none. Names are case-sensitive.
func Lookup(name string) Func {
	return globalfuncs[name]
}

// FuncNames returns the names of the built-in functions in sorted order.
func FuncNames() []string {
	names := make([]string, 0, len(globalfuncs))
	for k := range globalfuncs {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

type monadic struct {
	f  func(float64) float64
	bf func(z, x *big.Float) *big.Float
}

func (m monadic) Float64(x float64) float64 {
	return m.f(x)
}

func (m monadic) Big(z, x *big.Float) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		err = r.(error) // panic if not error
		if errors.Is(err, ErrDomain) {
			return
		}
		if errors.As(err, &big.ErrNaN{}) {
			err = &DomainError{X: new(big.Float).Copy(x)}
			return
		}
		panic(err)
	}()
	if m.bf == nil {
		// No arbitrary-precision implementation. Go through float64.
		v, _ := x.Float64()
		r := m.f(v)
		if math.IsNaN(r) {
			return &DomainError{X: new(big.Float).Copy(x)}
		}
		z.SetFloat64(r)
		return nil
	}
	m.bf(z, x)
	return nil
}

// Monadic wraps a function of one variable into a Func. bf computes the same
// function to the precision of its z argument; its return value is ignored.
// If bf is called on an argument outside its domain, it should panic with an
// error that unwraps to ErrDomain or to big.ErrNaN. If bf is nil, the
// arbitrary-precision form of the function converts through float64.
func Monadic(f func(float64) float64, bf func(z, x *big.Float) *big.Float) Func {
	return monadic{f: f, bf: bf}
}

func torad(x float64) float64 {
	return x * math.Pi / 180
}

func todeg(x float64) float64 {
	return x * 180 / math.Pi
}

func bigLog(z, x *big.Float) *big.Float {
	switch {
	case x.Sign() < 0:
		panic(&DomainError{X: new(big.Float).Copy(x)})
	case x.Sign() == 0:
		return z.SetInf(true)
	case x.IsInf():
		return z.SetInf(false)
	}
	return z.Set(bigfloat.Log(z, x))
}

func bigTorad(z, x *big.Float) *big.Float {
	pi := bigfloat.Pi(new(big.Float).SetPrec(z.Prec()))
	z.Mul(x, pi)
	return z.Quo(z, big.NewFloat(180))
}

func bigTodeg(z, x *big.Float) *big.Float {
	pi := bigfloat.Pi(new(big.Float).SetPrec(z.Prec()))
	z.Mul(x, big.NewFloat(180))
	return z.Quo(z, pi)
}
