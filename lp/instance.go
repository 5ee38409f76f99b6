// SPDX-License-Identifier: MIT
// Package lp holds the problem/result data model shared by every solver.
//
// Canonical form:
//
//	maximize    c · x
//	subject to  A · (x | 1) ≤ 0
//
// Each row of A has d+1 entries: the coefficients of x followed by the
// homogeneous constant (−b for a constraint a·x ≤ b). Points and rays live in
// homogeneous coordinates of length d+1: a finite point has a positive last
// entry (x/x_last is the affine point), a ray has last entry 0.
//
// Ownership:
//   - An Instance is immutable once built. Accessors return the stored slices;
//     callers must treat them as read-only.
//   - Subset shares rows with its parent (cheap sampling); Shuffled and Clone
//     return a uniquely owned row order for solvers that reorder rows.
package lp

import (
	"fmt"
	"math/big"
	"math/rand"

	"github.com/dacin21/exact-lp/rng"
	"github.com/dacin21/exact-lp/vec"
)

// Instance is an LP in canonical homogeneous form. The zero value is the empty
// 0-dimensional LP.
type Instance struct {
	a [][]*big.Int
	c []*big.Int
}

// NewInstance builds an Instance from rows a (each of length len(c)+1) and
// objective c. The slices are taken over, not copied.
//
// Errors: ErrRowLength (wrapped with the offending row index).
func NewInstance(a [][]*big.Int, c []*big.Int) (Instance, error) {
	var d = len(c)
	for i, row := range a {
		if len(row) != d+1 {
			return Instance{}, fmt.Errorf("row %d has %d entries, want %d: %w", i, len(row), d+1, ErrRowLength)
		}
	}

	return Instance{a: a, c: c}, nil
}

// MustInstance is NewInstance for literals known to be well-formed; it panics
// on a malformed row.
func MustInstance(a [][]*big.Int, c []*big.Int) Instance {
	inst, err := NewInstance(a, c)
	if err != nil {
		panic(err)
	}

	return inst
}

// NewInstanceFromBounds builds the canonical rows of { x : A x ≤ b } by
// appending −b_i to row i. A is copied; rows must have len(c) entries.
func NewInstanceFromBounds(a [][]*big.Int, b, c []*big.Int) (Instance, error) {
	if len(a) != len(b) {
		return Instance{}, fmt.Errorf("%d rows, %d bounds: %w", len(a), len(b), ErrBoundsLength)
	}
	var rows = make([][]*big.Int, len(a))
	for i, row := range a {
		if len(row) != len(c) {
			return Instance{}, fmt.Errorf("row %d has %d coefficients, want %d: %w", i, len(row), len(c), ErrRowLength)
		}
		rows[i] = append(vec.Clone(row), new(big.Int).Neg(b[i]))
	}

	return Instance{a: rows, c: c}, nil
}

// N returns the number of constraint rows.
func (in Instance) N() int { return len(in.a) }

// D returns the number of variables.
func (in Instance) D() int { return len(in.c) }

// Row returns row i (read-only).
func (in Instance) Row(i int) []*big.Int { return in.a[i] }

// Rows returns all rows (read-only).
func (in Instance) Rows() [][]*big.Int { return in.a }

// Objective returns c (read-only).
func (in Instance) Objective() []*big.Int { return in.c }

// Subset returns the sub-instance made of rows idx (duplicates allowed) with
// the same objective. Rows are shared, not copied.
func (in Instance) Subset(idx []int) Instance {
	var rows = make([][]*big.Int, len(idx))
	for j, i := range idx {
		rows[j] = in.a[i]
	}

	return Instance{a: rows, c: in.c}
}

// Shuffled returns a copy whose row order is a uniform permutation drawn from r.
// The row slice is freshly allocated; row contents are shared.
func (in Instance) Shuffled(r *rand.Rand) Instance {
	var rows = make([][]*big.Int, len(in.a))
	copy(rows, in.a)
	rng.ShuffleInPlace(rows, r)

	return Instance{a: rows, c: in.c}
}

// Clone deep-copies every row and the objective.
func (in Instance) Clone() Instance {
	var rows = make([][]*big.Int, len(in.a))
	for i, row := range in.a {
		rows[i] = vec.Clone(row)
	}

	return Instance{a: rows, c: vec.Clone(in.c)}
}
