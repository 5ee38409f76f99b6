// SPDX-License-Identifier: MIT

package simplex

import (
	"math/big"

	"github.com/dacin21/exact-lp/fraction"
)

// artificial is the label of the single phase-1 column.
const artificial = -1

// tableau is a dense fraction-free simplex tableau.
//
// Layout with n constraints and d split variables:
//
//	rows    0..n−1  constraints (basic variable labels in basic)
//	row     n       phase-2 objective (reduced costs, value in the rhs column)
//	row     n+1     phase-1 objective
//	columns 0..d    nonbasic variables (labels in nonbasic); column d starts as the artificial
//	column  d+1     right-hand side
//
// Labels 0..d−1 are the split variables, d..d+n−1 the slacks and −1 the
// artificial. The logical value of a cell is t[i][j]/scale with scale > 0.
type tableau struct {
	t        [][]*big.Int
	scale    *big.Int
	basic    []int
	nonbasic []int
	n, d     int
	pivots   int
}

// pivot exchanges nonbasic column s with basic row r using fraction-free
// elimination, then divides the whole tableau and scale by their common gcd.
//
// With p = t[r][s], σ = sign(p):
//
//	t[i][j] ← t[i][j]·|p| − t[r][j]·t[i][s]·σ    (i ≠ r, j ≠ s)
//	t[r][j] ← t[r][j]·scale·σ                    (j ≠ s)
//	t[i][s] ← −t[i][s]·scale·σ                   (i ≠ r)
//	t[r][s] ← scale²·σ,   scale ← scale·|p|
func (tb *tableau) pivot(s, r int) {
	var (
		pr    = tb.t[r]
		sigma = pr[s].Sign()
		abs   = new(big.Int).Abs(pr[s])
		tmp   = new(big.Int)
	)
	for i, row := range tb.t {
		if i == r {
			continue
		}
		var is = row[s]
		for j, e := range row {
			if j == s {
				continue
			}
			e.Mul(e, abs)
			if is.Sign() == 0 || pr[j].Sign() == 0 {
				continue
			}
			tmp.Mul(pr[j], is)
			if sigma < 0 {
				e.Add(e, tmp)
			} else {
				e.Sub(e, tmp)
			}
		}
	}

	var rs = new(big.Int).Set(tb.scale)
	if sigma < 0 {
		rs.Neg(rs)
	}
	for j, e := range pr {
		if j != s {
			e.Mul(e, rs)
		}
	}
	for i, row := range tb.t {
		if i != r {
			row[s].Mul(row[s], rs)
			row[s].Neg(row[s])
		}
	}
	pr[s] = new(big.Int).Mul(tb.scale, rs)
	tb.scale.Mul(tb.scale, abs)

	tb.basic[r], tb.nonbasic[s] = tb.nonbasic[s], tb.basic[r]
	tb.pivots++
	tb.reduce()
}

// reduce divides every entry and scale by their gcd.
func (tb *tableau) reduce() {
	var g = new(big.Int).Set(tb.scale)
	for _, row := range tb.t {
		for _, e := range row {
			g.GCD(nil, nil, g, e)
			if g.IsInt64() && g.Int64() == 1 {
				return
			}
		}
	}
	if g.Sign() == 0 {
		return
	}
	tb.scale.Quo(tb.scale, g)
	for _, row := range tb.t {
		for _, e := range row {
			e.Quo(e, g)
		}
	}
}

// entering applies the primal steepest-edge rule on objective row obj:
// minimize (rc·|rc| / ‖column‖², label) over eligible columns, where the norm
// runs over the constraint rows and the phase-2 objective row. Columns with a
// zero norm are skipped. It returns -1 when no column improves.
func (tb *tableau) entering(obj int, skipArtificial bool) int {
	var (
		best      = -1
		bestSlope fraction.Fraction
		norm      = new(big.Int)
		tmp       = new(big.Int)
	)
	for j := 0; j <= tb.d; j++ {
		if skipArtificial && tb.nonbasic[j] == artificial {
			continue
		}
		norm.SetInt64(0)
		for i := 0; i <= tb.n; i++ {
			norm.Add(norm, tmp.Mul(tb.t[i][j], tb.t[i][j]))
		}
		if norm.Sign() == 0 {
			continue
		}
		var rc = tb.t[obj][j]
		var slope = fraction.New(new(big.Int).Mul(rc, new(big.Int).Abs(rc)), norm)
		if best < 0 {
			best, bestSlope = j, slope
			continue
		}
		var c = slope.Cmp(bestSlope)
		if c < 0 || (c == 0 && tb.nonbasic[j] < tb.nonbasic[best]) {
			best, bestSlope = j, slope
		}
	}
	if best < 0 || tb.t[obj][best].Sign() >= 0 {
		return -1
	}

	return best
}

// leaving applies the minimum ratio test on column s, ties by smallest basic
// label. It returns -1 when no entry of the column is positive.
func (tb *tableau) leaving(s int) int {
	var (
		best      = -1
		bestRatio fraction.Fraction
		rhs       = tb.d + 1
	)
	for i := 0; i < tb.n; i++ {
		if tb.t[i][s].Sign() <= 0 {
			continue
		}
		var ratio = fraction.New(tb.t[i][rhs], tb.t[i][s])
		if best < 0 {
			best, bestRatio = i, ratio
			continue
		}
		var c = ratio.Cmp(bestRatio)
		if c < 0 || (c == 0 && tb.basic[i] < tb.basic[best]) {
			best, bestRatio = i, ratio
		}
	}

	return best
}

// runPhase pivots until optimal (returns -1) or until a column with no leaving
// row is found (returns that column: the objective is unbounded along it).
func (tb *tableau) runPhase(obj int, skipArtificial bool) int {
	for {
		var s = tb.entering(obj, skipArtificial)
		if s < 0 {
			return -1
		}
		var r = tb.leaving(s)
		if r < 0 {
			return s
		}
		tb.pivot(s, r)
	}
}

// driveOutArtificial pivots the artificial variable out of row i on the
// smallest nonzero entry (ties by label). A row with no nonzero entry is
// redundant and is left alone; its rhs is zero after a successful phase 1.
//
// The column is chosen by its entry, not by a strictly improving phase-1
// reduced cost: row i has rhs 0, so a pivot on any nonzero entry is
// degenerate and keeps every basic value, and zero entries are never used.
func (tb *tableau) driveOutArtificial(i int) {
	var enter = -1
	for j := 0; j <= tb.d; j++ {
		var e = tb.t[i][j]
		if e.Sign() == 0 {
			continue
		}
		if enter < 0 {
			enter = j
			continue
		}
		var c = e.Cmp(tb.t[i][enter])
		if c < 0 || (c == 0 && tb.nonbasic[j] < tb.nonbasic[enter]) {
			enter = j
		}
	}
	if enter >= 0 {
		tb.pivot(enter, i)
	}
}
