// SPDX-License-Identifier: MIT
// Package vec provides the small set of exact vector kernels shared by every
// solver: affine scalar products and gcd-based reduction over *big.Int slices.
//
// Conventions:
//   - A vector is a []*big.Int; entries are never nil once built by this package.
//   - Kernels never alias their inputs in results unless documented (ReduceByGCD
//     works in place by contract).
//   - Length mismatches are programmer errors and panic; there is no user input here.
package vec

import (
	"fmt"
	"math/big"
)

// Panic messages (no magic strings at call sites).
const (
	panicAffineLength = "vec: DotAffine: lengths %d and %d differ by more than one"
	panicDotLength    = "vec: Dot: lengths %d and %d differ"
)

// DotAffine returns Σ a[i]·b[i] over the common prefix of a and b.
// The longer operand may carry exactly one extra (homogeneous) entry, which is
// ignored. This is how an objective of length d is applied to a point of
// length d+1.
//
// Complexity: O(min(len(a), len(b))) multiplications.
func DotAffine(a, b []*big.Int) *big.Int {
	var n = len(a)
	if len(b) < n {
		n = len(b)
	}
	if len(a) > n+1 || len(b) > n+1 {
		panic(fmt.Sprintf(panicAffineLength, len(a), len(b)))
	}

	var (
		sum  = new(big.Int)
		prod = new(big.Int)
		i    int
	)
	for i = 0; i < n; i++ {
		sum.Add(sum, prod.Mul(a[i], b[i]))
	}

	return sum
}

// Dot returns Σ a[i]·b[i]; a and b must have the same length.
func Dot(a, b []*big.Int) *big.Int {
	if len(a) != len(b) {
		panic(fmt.Sprintf(panicDotLength, len(a), len(b)))
	}

	return DotAffine(a, b)
}

// GCD returns the non-negative gcd of all entries of v (0 for an empty or
// all-zero vector).
func GCD(v []*big.Int) *big.Int {
	var g = new(big.Int)
	for _, e := range v {
		g.GCD(nil, nil, g, e)
		if g.IsInt64() && g.Int64() == 1 {
			break
		}
	}

	return g
}

// ReduceByGCD divides every entry of v in place by the gcd of all entries.
// The all-zero vector and vectors already in lowest terms are left unchanged,
// which makes the operation idempotent.
//
// Complexity: O(len(v)) gcd steps plus O(len(v)) exact divisions.
func ReduceByGCD(v []*big.Int) {
	var g = GCD(v)
	if g.Sign() == 0 || g.Cmp(one) == 0 {
		return
	}
	for _, e := range v {
		e.Quo(e, g)
	}
}

// Reduced returns a gcd-reduced copy of v; v is not modified.
func Reduced(v []*big.Int) []*big.Int {
	var out = Clone(v)
	ReduceByGCD(out)

	return out
}

var one = big.NewInt(1)
