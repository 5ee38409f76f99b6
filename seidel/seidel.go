// SPDX-License-Identifier: MIT
// Package seidel implements Seidel's randomized incremental LP algorithm over
// exact integers.
//
// Algorithm (dimension d, rows processed in random order):
//   - d = 0: the point (1); infeasible iff some row has a positive constant.
//   - d = 1: one deterministic pass keeps the tightest interval endpoint in the
//     direction of c; a second pass catches opposing bounds that do not meet.
//   - d ≥ 2: start from the unconstrained optimum (unbounded along sign(c)).
//     Whenever row i is violated, the optimum lies on its boundary: eliminate one
//     coordinate using that row, solve the (d−1)-dimensional LP of rows 0..i−1,
//     and lift the point and ray back.
//
// Exactness:
//   - Elimination is the fraction-free two-variable rule v_j·p_k − v_k·p_j, so
//     every intermediate stays integral. Coefficients grow with depth; the final
//     point and ray are gcd-reduced once per top-level solve.
//
// Complexity:
//   - Expected O(d!·n) over the random row order; recursion depth ≤ d.
//
// Randomness:
//   - The row order is drawn from the caller's *rand.Rand on a fresh working
//     copy. The input Instance is never reordered.
package seidel

import (
	"math/big"
	"math/rand"

	"github.com/dacin21/exact-lp/lp"
	"github.com/dacin21/exact-lp/rng"
	"github.com/dacin21/exact-lp/vec"
)

// Solve runs the incremental algorithm on in with row order drawn from r
// (r==nil uses the rng.DefaultSeed stream).
func Solve(in lp.Instance, r *rand.Rand) lp.Result {
	var w = walker{r: r}

	return w.solve(in)
}

// walker carries per-solve state through the recursion.
type walker struct {
	r           *rand.Rand
	moveToFront bool
	violations  int
}

func (w *walker) solve(in lp.Instance) lp.Result {
	if w.r == nil {
		w.r = rng.FromSeed(0)
	}
	var res = w.rec(in, 0)
	res.ReduceAll()
	res.RecalcObjective(in.Objective())

	return res
}

// baseResult is the unconstrained optimum: x = origin, ray = sign(c).
func baseResult(c []*big.Int) lp.Result {
	var (
		d   = len(c)
		x   = vec.Zeros(d + 1)
		ray = vec.Zeros(d + 1)
	)
	x[d].SetInt64(1)
	for i, ci := range c {
		ray[i].SetInt64(int64(ci.Sign()))
	}
	if vec.IsZero(ray) {
		return lp.NewResult(lp.Optimal, x, ray)
	}

	return lp.NewResult(lp.Unbounded, x, ray)
}

func (w *walker) rec(in lp.Instance, depth int) lp.Result {
	switch in.D() {
	case 0:
		return solve0(in)
	case 1:
		return solve1(in)
	}

	var work lp.Instance
	if w.moveToFront && depth > 0 {
		// projected rows are already uniquely owned by this level
		work = in
	} else {
		work = in.Shuffled(w.r)
	}

	var (
		rows = work.Rows()
		c    = work.Objective()
		res  = baseResult(c)
		i    int
	)
	for i = 0; i < len(rows); i++ {
		if !res.Violates(rows[i]) {
			continue
		}
		w.violations++

		plane, k := makeProjection(rows[i])
		if k < 0 {
			// only the constant is nonzero and it is positive
			return lp.InfeasibleResult()
		}
		var sub = make([][]*big.Int, i)
		for j := 0; j < i; j++ {
			sub[j] = projectDown(rows[j], plane, k)
		}
		var subRes = w.rec(lp.MustInstance(sub, projectDown(c, plane, k)), depth+1)
		if !subRes.Feasible() {
			return subRes
		}
		res = subRes
		res.SetX(projectUp(subRes.X(), plane, k))
		res.SetRay(projectUp(subRes.Ray(), plane, k))

		if w.moveToFront {
			moveToFront(rows, i)
		}
	}

	return res
}

// solve0 handles the 0-dimensional LP: rows are single constants.
func solve0(in lp.Instance) lp.Result {
	var res = lp.NewResult(lp.Optimal, vec.FromInt64s(1), vec.FromInt64s(0))
	for _, row := range in.Rows() {
		if res.Violates(row) {
			return lp.InfeasibleResult()
		}
	}

	return res
}

// solve1 handles d = 1 deterministically in two passes.
func solve1(in lp.Instance) lp.Result {
	var (
		c   = in.Objective()
		res = baseResult(c)
	)
	for _, row := range in.Rows() {
		if !res.Violates(row) {
			continue
		}
		switch row[0].Sign() {
		case -1: // lower bound x ≥ row1/(−row0)
			res.ResetRay()
			res.SetX([]*big.Int{new(big.Int).Set(row[1]), new(big.Int).Neg(row[0])})
		case 1: // upper bound x ≤ −row1/row0
			res.ResetRay()
			res.SetX([]*big.Int{new(big.Int).Neg(row[1]), new(big.Int).Set(row[0])})
		default:
			return lp.InfeasibleResult()
		}
		res.RecalcObjective(c)
	}
	for _, row := range in.Rows() {
		if res.Violates(row) {
			return lp.InfeasibleResult()
		}
	}

	return res
}

// makeProjection picks the elimination coordinate k (first nonzero of row) and
// returns row sign-normalized so that plane[k] > 0. k is -1 when only the
// homogeneous constant is nonzero.
func makeProjection(row []*big.Int) ([]*big.Int, int) {
	var k = vec.FirstNonZero(row)
	if k < 0 || k == len(row)-1 {
		return nil, -1
	}
	if row[k].Sign() < 0 {
		return vec.Neg(row), k
	}

	return row, k
}

// projectDown eliminates coordinate k of v against plane:
// out[j'] = v[j]·plane[k] − v[k]·plane[j] for j ≠ k. len(v) may be len(plane)
// (a row) or len(plane)−1 (the objective).
func projectDown(v, plane []*big.Int, k int) []*big.Int {
	var (
		out = make([]*big.Int, 0, len(v)-1)
		tmp = new(big.Int)
	)
	for j := range v {
		if j == k {
			continue
		}
		var e = new(big.Int).Mul(v[j], plane[k])
		e.Sub(e, tmp.Mul(v[k], plane[j]))
		out = append(out, e)
	}

	return out
}

// projectUp lifts a (d−1)-dimensional homogeneous vector onto plane, solving
// for coordinate k so that plane·out = 0.
func projectUp(v, plane []*big.Int, k int) []*big.Int {
	var (
		out = make([]*big.Int, len(v)+1)
		tmp = new(big.Int)
		jj  int
	)
	out[k] = new(big.Int)
	for j := range v {
		jj = j
		if j >= k {
			jj = j + 1
		}
		out[jj] = new(big.Int).Mul(v[j], plane[k])
		out[k].Sub(out[k], tmp.Mul(v[j], plane[jj]))
	}

	return out
}

// moveToFront rotates rows[0..i] right by one so rows[i] becomes rows[0].
// The set of rows 0..i is unchanged, so the scan can continue at i+1.
func moveToFront(rows [][]*big.Int, i int) {
	var row = rows[i]
	copy(rows[1:i+1], rows[:i])
	rows[0] = row
}
