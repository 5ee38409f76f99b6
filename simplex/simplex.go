// SPDX-License-Identifier: MIT
// Package simplex implements an exact two-phase dense-tableau simplex method.
//
// Model:
//   - Every free variable x_j is split into x_j⁺ − x_j⁻ ≥ 0, so the tableau has
//     d = 2·D structural columns for an instance of dimension D.
//   - Each row a·x + a_last ≤ 0 becomes a·x − t + s = −a_last with slack s ≥ 0
//     and one shared artificial t ≥ 0.
//   - Cells are integers over one shared positive scale. Each pivot is a
//     fraction-free elimination followed by a tableau-wide gcd reduction.
//
// Phases:
//   - If some right-hand side is negative, t is pivoted into the most negative
//     row and phase 1 minimizes t. The LP is infeasible iff t stays positive.
//     A t still basic afterwards (at value 0) is pivoted out.
//   - Phase 2 maximizes c·x with t held at zero.
//
// Pivot rules:
//   - Entering: primal steepest edge, rc·|rc| / ‖column‖², ties by smallest label.
//   - Leaving: minimum ratio, ties by smallest basic label.
//
// Complexity: O(n·d) big-integer operations per pivot; the pivot count is
// unbounded in theory and small on the degenerate LPs this package targets.
package simplex

import (
	"context"
	"io"
	"log/slog"
	"math/big"

	"github.com/dacin21/exact-lp/lp"
	"github.com/dacin21/exact-lp/vec"
)

// Stats describes one solve.
type Stats struct {
	Phase1 bool
	Pivots int
}

// Solve runs the two-phase method on in.
func Solve(in lp.Instance) lp.Result {
	res, _ := solve(in)
	return res
}

func newTableau(in lp.Instance) *tableau {
	var (
		d0 = in.D()
		d  = 2 * d0
		n  = in.N()
		t  = make([][]*big.Int, n+2)
	)
	for i := range t {
		t[i] = vec.Zeros(d + 2)
	}
	for i, row := range in.Rows() {
		for j := 0; j < d0; j++ {
			t[i][2*j].Set(row[j])
			t[i][2*j+1].Neg(row[j])
		}
		t[i][d].SetInt64(-1)
		t[i][d+1].Neg(row[d0])
	}
	for j, cj := range in.Objective() {
		t[n][2*j].Neg(cj)
		t[n][2*j+1].Set(cj)
	}
	t[n+1][d].SetInt64(1)

	var tb = &tableau{
		t:        t,
		scale:    big.NewInt(1),
		basic:    make([]int, n),
		nonbasic: make([]int, d+1),
		n:        n,
		d:        d,
	}
	for i := range tb.basic {
		tb.basic[i] = d + i
	}
	for j := 0; j < d; j++ {
		tb.nonbasic[j] = j
	}
	tb.nonbasic[d] = artificial

	return tb
}

func solve(in lp.Instance) (lp.Result, Stats) {
	var (
		tb    = newTableau(in)
		n, d  = tb.n, tb.d
		rhs   = d + 1
		stats Stats
	)

	var leave = -1
	for i := 0; i < n; i++ {
		if leave < 0 || tb.t[i][rhs].Cmp(tb.t[leave][rhs]) < 0 {
			leave = i
		}
	}
	if leave >= 0 && tb.t[leave][rhs].Sign() < 0 {
		stats.Phase1 = true
		tb.pivot(d, leave)
		if tb.runPhase(n+1, false) >= 0 || tb.t[n+1][rhs].Sign() < 0 {
			stats.Pivots = tb.pivots
			return lp.InfeasibleResult(), stats
		}
		for i := 0; i < n; i++ {
			if tb.basic[i] == artificial {
				tb.driveOutArtificial(i)
			}
		}
	}

	var (
		unboundedCol = tb.runPhase(n, true)
		x            = vec.Zeros(d + 1)
	)
	stats.Pivots = tb.pivots
	x[d].Set(tb.scale)
	for i, b := range tb.basic {
		if b >= 0 && b < d {
			x[b].Set(tb.t[i][rhs])
		}
	}

	var res lp.Result
	if unboundedCol >= 0 {
		var ray = vec.Zeros(d + 1)
		for i, b := range tb.basic {
			if b >= 0 && b < d {
				ray[b].Neg(tb.t[i][unboundedCol])
			}
		}
		if l := tb.nonbasic[unboundedCol]; l >= 0 && l < d {
			ray[l].Set(tb.scale)
		}
		res = lp.NewResult(lp.Unbounded, collapse(x), collapse(ray))
	} else {
		res = lp.NewResult(lp.Optimal, collapse(x), vec.Zeros(in.D()+1))
	}
	res.ReduceAll()
	res.RecalcObjective(in.Objective())

	return res, stats
}

// collapse maps a split vector (x⁺_0, x⁻_0, …, h) back to (x⁺_0 − x⁻_0, …, h).
func collapse(v []*big.Int) []*big.Int {
	var (
		d0  = len(v) / 2
		out = make([]*big.Int, d0+1)
	)
	for i := 0; i < d0; i++ {
		out[i] = new(big.Int).Sub(v[2*i], v[2*i+1])
	}
	out[d0] = new(big.Int).Set(v[len(v)-1])

	return out
}

// Option configures a Solver.
type Option func(*Solver)

// WithLogger sets the logger for per-solve Debug records.
func WithLogger(l *slog.Logger) Option {
	return func(s *Solver) {
		if l != nil {
			s.logger = l
		}
	}
}

// Solver is a configured tableau solver. It is stateless between solves and
// safe for concurrent use.
type Solver struct {
	logger *slog.Logger
}

// New returns a Solver.
func New(opts ...Option) *Solver {
	var s = &Solver{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Solve implements lp.Solver.
func (s *Solver) Solve(in lp.Instance) lp.Result {
	res, stats := solve(in)
	if s.logger.Enabled(context.Background(), slog.LevelDebug) {
		s.logger.Debug("simplex solve",
			slog.Int("n", in.N()),
			slog.Int("d", in.D()),
			slog.Bool("phase1", stats.Phase1),
			slog.Int("pivots", stats.Pivots),
			slog.String("status", res.Status().String()),
		)
	}

	return res
}

// SolveStats is Solve plus the pivot statistics.
func SolveStats(in lp.Instance) (lp.Result, Stats) {
	return solve(in)
}
