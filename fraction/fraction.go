// SPDX-License-Identifier: MIT
// Package fraction implements an extended rational number a/b over
// arbitrary-precision integers, covering ℚ ∪ {−∞, +∞}.
//
// Representation:
//   - The denominator is kept non-negative; the sign lives in the numerator.
//   - A zero denominator encodes a signed infinity (sign of the numerator).
//   - Arithmetic does NOT reduce to lowest terms. Callers needing a canonical
//     form reduce explicitly (see vec.ReduceByGCD). Equality and ordering are
//     exact regardless, because Cmp cross-multiplies.
//
// Values are immutable: every operation returns a freshly allocated Fraction
// and never writes to its operands. The zero value is 0.
//
// Ordering:
//
//	−∞ < every finite value < +∞, and two same-signed infinities compare equal.
//	Comparison never goes through floating division.
package fraction

import (
	"fmt"
	"math/big"
)

// Fraction is the extended rational num/den. See the package doc for the
// representation invariants.
type Fraction struct {
	num *big.Int // sign carrier; nil means 0
	den *big.Int // ≥ 0; nil means 1
}

var (
	bigZero = big.NewInt(0)
	bigOne  = big.NewInt(1)
)

// New returns num/den with the sign folded into the numerator.
// The arguments are copied. den may be zero (±∞ by the sign of num; 0/0 is
// kept as-is and compares equal to everything, callers must not build it).
func New(num, den *big.Int) Fraction {
	var f = Fraction{num: new(big.Int).Set(num), den: new(big.Int).Set(den)}
	f.fixSign()

	return f
}

// FromInt returns the integer x as x/1.
func FromInt(x *big.Int) Fraction {
	return Fraction{num: new(big.Int).Set(x), den: big.NewInt(1)}
}

// FromInt64 returns a/b for machine integers.
func FromInt64(a, b int64) Fraction {
	return New(big.NewInt(a), big.NewInt(b))
}

// Inf returns +∞ (1/0). Use Inf().Neg() for −∞.
func Inf() Fraction {
	return Fraction{num: big.NewInt(1), den: big.NewInt(0)}
}

// fixSign restores den ≥ 0. A zero numerator over a nonzero denominator is
// normalized to 0/1.
func (f *Fraction) fixSign() {
	if f.num.Sign() == 0 {
		if f.den.Sign() != 0 {
			f.den.SetInt64(1)
		}
		return
	}
	if f.den.Sign() < 0 {
		f.num.Neg(f.num)
		f.den.Neg(f.den)
	}
}

// n and d return the effective numerator/denominator, resolving the zero value.
func (f Fraction) n() *big.Int {
	if f.num == nil {
		return bigZero
	}
	return f.num
}

func (f Fraction) d() *big.Int {
	if f.den == nil {
		return bigOne
	}
	return f.den
}

// Num returns a copy of the numerator.
func (f Fraction) Num() *big.Int { return new(big.Int).Set(f.n()) }

// Den returns a copy of the (non-negative) denominator.
func (f Fraction) Den() *big.Int { return new(big.Int).Set(f.d()) }

// IsInf reports whether f is +∞ or −∞.
func (f Fraction) IsInf() bool {
	return f.d().Sign() == 0 && f.n().Sign() != 0
}

// Sign returns -1, 0 or +1.
func (f Fraction) Sign() int { return f.n().Sign() }

// Add returns f + o. Adding opposite infinities is undefined.
func (f Fraction) Add(o Fraction) Fraction {
	var num = new(big.Int).Mul(f.n(), o.d())
	num.Add(num, new(big.Int).Mul(f.d(), o.n()))

	return Fraction{num: num, den: new(big.Int).Mul(f.d(), o.d())}
}

// Sub returns f − o.
func (f Fraction) Sub(o Fraction) Fraction {
	var num = new(big.Int).Mul(f.n(), o.d())
	num.Sub(num, new(big.Int).Mul(f.d(), o.n()))

	return Fraction{num: num, den: new(big.Int).Mul(f.d(), o.d())}
}

// Mul returns f · o.
func (f Fraction) Mul(o Fraction) Fraction {
	var out = Fraction{
		num: new(big.Int).Mul(f.n(), o.n()),
		den: new(big.Int).Mul(f.d(), o.d()),
	}
	out.fixSign()

	return out
}

// Quo returns f / o. Dividing a finite value by 0 yields a signed infinity.
func (f Fraction) Quo(o Fraction) Fraction {
	var out = Fraction{
		num: new(big.Int).Mul(f.n(), o.d()),
		den: new(big.Int).Mul(f.d(), o.n()),
	}
	out.fixSign()

	return out
}

// Neg returns −f.
func (f Fraction) Neg() Fraction {
	return Fraction{num: new(big.Int).Neg(f.n()), den: new(big.Int).Set(f.d())}
}

// Cmp returns -1, 0 or +1 as f <, ==, > o.
//
// Differently signed numerators decide the order on their own; this is what
// makes −∞ < +∞ even though cross-multiplication by two zero denominators
// would give 0. Otherwise a·o.b is compared with b·o.a exactly.
func (f Fraction) Cmp(o Fraction) int {
	var fs, os = f.n().Sign(), o.n().Sign()
	if (fs < 0) != (os < 0) {
		if fs < 0 {
			return -1
		}
		return 1
	}
	var lhs = new(big.Int).Mul(f.n(), o.d())
	var rhs = new(big.Int).Mul(f.d(), o.n())

	return lhs.Cmp(rhs)
}

// Equal reports f == o (by value, not by representation).
func (f Fraction) Equal(o Fraction) bool { return f.Cmp(o) == 0 }

// Less reports f < o.
func (f Fraction) Less(o Fraction) bool { return f.Cmp(o) < 0 }

// Float64 returns the nearest float64; infinities map to ±Inf.
func (f Fraction) Float64() float64 {
	if f.d().Sign() == 0 {
		var inf = new(big.Float).SetInf(f.n().Sign() < 0)
		v, _ := inf.Float64()
		return v
	}
	v, _ := new(big.Rat).SetFrac(f.n(), f.d()).Float64()

	return v
}

// Rat returns f as a *big.Rat (lowest terms) and false for infinities.
func (f Fraction) Rat() (*big.Rat, bool) {
	if f.d().Sign() == 0 {
		return nil, false
	}

	return new(big.Rat).SetFrac(f.n(), f.d()), true
}

// String renders f as "num/den" without reduction.
func (f Fraction) String() string {
	return fmt.Sprintf("%s/%s", f.n().String(), f.d().String())
}
