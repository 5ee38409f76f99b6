// SPDX-License-Identifier: MIT

package vec

import "math/big"

// Zeros returns a vector of n fresh zero entries.
func Zeros(n int) []*big.Int {
	var out = make([]*big.Int, n)
	for i := range out {
		out[i] = new(big.Int)
	}

	return out
}

// FromInt64s builds a vector from machine integers.
func FromInt64s(xs ...int64) []*big.Int {
	var out = make([]*big.Int, len(xs))
	for i, x := range xs {
		out[i] = big.NewInt(x)
	}

	return out
}

// Clone deep-copies v; the result shares no big.Int with v.
func Clone(v []*big.Int) []*big.Int {
	if v == nil {
		return nil
	}
	var out = make([]*big.Int, len(v))
	for i, e := range v {
		out[i] = new(big.Int).Set(e)
	}

	return out
}

// Neg returns a fresh vector holding −v.
func Neg(v []*big.Int) []*big.Int {
	var out = make([]*big.Int, len(v))
	for i, e := range v {
		out[i] = new(big.Int).Neg(e)
	}

	return out
}

// IsZero reports whether every entry of v is zero (true for an empty vector).
func IsZero(v []*big.Int) bool {
	for _, e := range v {
		if e.Sign() != 0 {
			return false
		}
	}

	return true
}

// Equal reports element-wise equality; vectors of different length differ.
func Equal(a, b []*big.Int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Cmp(b[i]) != 0 {
			return false
		}
	}

	return true
}

// FirstNonZero returns the index of the first nonzero entry, or -1.
func FirstNonZero(v []*big.Int) int {
	for i, e := range v {
		if e.Sign() != 0 {
			return i
		}
	}

	return -1
}
