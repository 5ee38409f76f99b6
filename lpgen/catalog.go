// SPDX-License-Identifier: MIT

package lpgen

import (
	"math/big"

	"github.com/dacin21/exact-lp/fraction"
	"github.com/dacin21/exact-lp/lp"
	"github.com/dacin21/exact-lp/vec"
)

// Case is a small LP with a hand-checked outcome.
type Case struct {
	Name      string
	Instance  lp.Instance
	Status    lp.Status
	Objective fraction.Fraction
}

func build(c []int64, rs ...[]int64) lp.Instance {
	var a = make([][]*big.Int, len(rs))
	for i, r := range rs {
		a[i] = vec.FromInt64s(r...)
	}

	return lp.MustInstance(a, vec.FromInt64s(c...))
}

// Catalog returns freshly built copies of the hand-checked cases: every
// status, dimensions 0 to 3, degenerate vertices, fractional optima and
// instances whose origin is infeasible.
func Catalog() []Case {
	var (
		inf    = fraction.Inf()
		negInf = fraction.Inf().Neg()
		q      = fraction.FromInt64
	)

	return []Case{
		{
			// max x0  s.t. x0 ≤ 5, x1 ≤ 3, x0+x1 ≤ 6
			Name:      "box-2d",
			Instance:  build([]int64{1, 0}, []int64{1, 0, -5}, []int64{0, 1, -3}, []int64{1, 1, -6}),
			Status:    lp.Optimal,
			Objective: q(5, 1),
		},
		{
			// x0 ≤ 1 and x0 ≥ 2
			Name:      "opposing-bounds-1d",
			Instance:  build([]int64{1}, []int64{1, -1}, []int64{-1, 2}),
			Status:    lp.Infeasible,
			Objective: negInf,
		},
		{
			Name:      "free-1d",
			Instance:  build([]int64{1}),
			Status:    lp.Unbounded,
			Objective: inf,
		},
		{
			// 2x0 ≤ 3
			Name:      "half-1d",
			Instance:  build([]int64{1}, []int64{2, -3}),
			Status:    lp.Optimal,
			Objective: q(3, 2),
		},
		{
			// max −x0  s.t. x0 ≥ −7/3
			Name:      "lower-bound-1d",
			Instance:  build([]int64{-1}, []int64{-3, -7}),
			Status:    lp.Optimal,
			Objective: q(7, 3),
		},
		{
			Name:      "point-0d",
			Instance:  build(nil, []int64{-1}, []int64{0}),
			Status:    lp.Optimal,
			Objective: q(0, 1),
		},
		{
			Name:      "empty-0d",
			Instance:  build(nil, []int64{-1}, []int64{1}),
			Status:    lp.Infeasible,
			Objective: negInf,
		},
		{
			// max x0  s.t. x1 ≤ 3
			Name:      "halfplane-2d",
			Instance:  build([]int64{1, 0}, []int64{0, 1, -3}),
			Status:    lp.Unbounded,
			Objective: inf,
		},
		{
			// max x0+x1  s.t. 2x0+x1 ≤ 4, x0+3x1 ≤ 6, x ≥ 0
			Name: "fractional-2d",
			Instance: build([]int64{1, 1},
				[]int64{2, 1, -4}, []int64{1, 3, -6}, []int64{-1, 0, 0}, []int64{0, -1, 0}),
			Status:    lp.Optimal,
			Objective: q(14, 5),
		},
		{
			// min x0+x1  s.t. x0 ≥ 2, x1 ≥ 3, x0+x1 ≤ 10
			Name: "origin-infeasible-2d",
			Instance: build([]int64{-1, -1},
				[]int64{-1, 0, 2}, []int64{0, -1, 3}, []int64{1, 1, -10}),
			Status:    lp.Optimal,
			Objective: q(-5, 1),
		},
		{
			Name:      "zero-objective-2d",
			Instance:  build([]int64{0, 0}, []int64{1, 0, -1}, []int64{-1, 0, 0}),
			Status:    lp.Optimal,
			Objective: q(0, 1),
		},
		{
			// x0+x1+x2 ≤ 1 and x0+x1+x2 ≥ 2
			Name: "slab-3d",
			Instance: build([]int64{1, 1, 1},
				[]int64{1, 1, 1, -1}, []int64{-1, -1, -1, 2}),
			Status:    lp.Infeasible,
			Objective: negInf,
		},
		{
			// six rows through the apex (0,0,4)
			Name: "degenerate-apex-3d",
			Instance: build([]int64{0, 0, 1},
				[]int64{-1, 0, 0, 0}, []int64{0, -1, 0, 0},
				[]int64{1, 1, 1, -4}, []int64{0, 0, 1, -4},
				[]int64{1, 0, 1, -4}, []int64{0, 1, 1, -4}),
			Status:    lp.Optimal,
			Objective: q(4, 1),
		},
		{
			// x0 = 1 and x1 = 2 written as opposing (and repeated) inequalities
			Name: "equalities-2d",
			Instance: build([]int64{1, 1},
				[]int64{-1, 0, 1}, []int64{1, 0, -1},
				[]int64{0, -1, 2}, []int64{0, -1, 2}, []int64{0, 1, -2}),
			Status:    lp.Optimal,
			Objective: q(3, 1),
		},
		{
			// Beale's cycling example, scaled to integers:
			// max 3x0 − 80x1 + 2x2 − 24x3
			// s.t. x0 − 32x1 − 4x2 + 36x3 ≤ 0, x0 − 24x1 − x2 + 6x3 ≤ 0, x2 ≤ 1, x ≥ 0
			Name: "beale-4d",
			Instance: build([]int64{3, -80, 2, -24},
				[]int64{1, -32, -4, 36, 0}, []int64{1, -24, -1, 6, 0}, []int64{0, 0, 1, 0, -1},
				[]int64{-1, 0, 0, 0, 0}, []int64{0, -1, 0, 0, 0},
				[]int64{0, 0, -1, 0, 0}, []int64{0, 0, 0, -1, 0}),
			Status:    lp.Optimal,
			Objective: q(5, 1),
		},
		{
			// x0 ≤ 1, x1 ≤ 1, x2 free
			Name: "prism-3d",
			Instance: build([]int64{1, 1, 1},
				[]int64{1, 0, 0, -1}, []int64{0, 1, 0, -1}),
			Status:    lp.Unbounded,
			Objective: inf,
		},
	}
}
