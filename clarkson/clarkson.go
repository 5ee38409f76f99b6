// SPDX-License-Identifier: MIT
// Package clarkson implements Clarkson's two-level sampling reduction, which
// lets any exact LP backend scale to very many constraints in low dimension.
//
// Level 1 (n ≤ 9d² after level 2, or called directly):
//   - One int64 weight per row, initially 1.
//   - Each round samples k = 6d² distinct rows with probability proportional to
//     weight and solves them with the backend.
//   - Infeasible sample ⇒ infeasible LP. No violated row ⇒ done.
//   - If the violated weight is at most total/(3d), violators' weights double;
//     otherwise the round is discarded and resampled.
//
// Level 2 (n > 9d²):
//   - A core set of rows grows across rounds. Each round adds k = d·round(√n)
//     rows drawn uniformly with replacement, solves core+extra with level 1 and
//     drops the extra rows again.
//   - Infeasible ⇒ infeasible. No violator ⇒ done. At most 2·round(√n)
//     violators ⇒ they join the core set; otherwise the round is discarded.
//
// Termination:
//   - Both loops run until an answer is certified; there is no round cap.
//     SolveContext checks the context between rounds, and an Observer sees
//     every round.
//
// The backend is used only through lp.Solver and must not share this
// Solver's random stream.
package clarkson

import (
	"context"
	"io"
	"log/slog"
	"math"
	"math/rand"
	"sort"

	"github.com/dacin21/exact-lp/lp"
	"github.com/dacin21/exact-lp/rng"
)

// RoundStats describes one finished round of either level.
type RoundStats struct {
	// Level is 1 or 2.
	Level int
	// Round counts from 0 within one call of that level.
	Round int
	// Sample is the number of rows handed to the backend (level 1) or to
	// level 1 (level 2).
	Sample int
	// Violators is the number of rows of the level's input the candidate violates.
	Violators int
	// ViolatedWeight and TotalWeight are level-1 weights (0 on level 2).
	ViolatedWeight int64
	TotalWeight    int64
	// Accepted reports that weights were doubled (level 1) or violators were
	// added to the core set (level 2).
	Accepted bool
	// Done reports that this round produced the final answer of its level.
	Done bool
}

// Observer receives every round. It runs on the solving goroutine.
type Observer func(RoundStats)

// Option configures a Solver.
type Option func(*Solver)

const (
	panicNilBackend = "clarkson: New: nil backend"
	panicNilRand    = "clarkson: WithRand: nil *rand.Rand"
)

// WithSeed makes sampling deterministic (seed 0 ⇒ rng.DefaultSeed).
func WithSeed(seed int64) Option {
	return func(s *Solver) { s.rand = rng.FromSeed(seed) }
}

// WithRand hands the solver an existing random stream.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic(panicNilRand)
	}
	return func(s *Solver) { s.rand = r }
}

// WithObserver installs a per-round hook.
func WithObserver(o Observer) Option {
	return func(s *Solver) { s.observer = o }
}

// WithLogger sets the logger for per-solve Debug records.
func WithLogger(l *slog.Logger) Option {
	return func(s *Solver) {
		if l != nil {
			s.logger = l
		}
	}
}

// Solver wraps a backend with the sampling reduction. It owns its random
// stream and is not safe for concurrent use.
type Solver struct {
	backend  lp.Solver
	rand     *rand.Rand
	observer Observer
	logger   *slog.Logger
}

// New wraps backend. Without WithSeed/WithRand sampling is clock-seeded.
func New(backend lp.Solver, opts ...Option) *Solver {
	if backend == nil {
		panic(panicNilBackend)
	}
	var s = &Solver{
		backend: backend,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rand == nil {
		s.rand = rng.Clock()
	}

	return s
}

// Solve implements lp.Solver.
func (s *Solver) Solve(in lp.Instance) lp.Result {
	res, _ := s.SolveContext(context.Background(), in)
	return res
}

// SolveContext is Solve with cancellation between rounds. On cancellation it
// returns ctx.Err() and a zero Result.
func (s *Solver) SolveContext(ctx context.Context, in lp.Instance) (lp.Result, error) {
	if err := ctx.Err(); err != nil {
		return lp.Result{}, err
	}
	var run = runner{s: s, ctx: ctx}
	res, err := run.level2(in)
	if err != nil {
		return lp.Result{}, err
	}
	s.logger.Debug("clarkson solve",
		slog.Int("n", in.N()),
		slog.Int("d", in.D()),
		slog.Int("rounds1", run.rounds1),
		slog.Int("rounds2", run.rounds2),
		slog.String("status", res.Status().String()),
	)

	return res, nil
}

// runner carries one solve's counters.
type runner struct {
	s       *Solver
	ctx     context.Context
	rounds1 int
	rounds2 int
}

func (r *runner) observe(st RoundStats) {
	if r.s.observer != nil {
		r.s.observer(st)
	}
}

// level2 is the outer core-set loop.
func (r *runner) level2(in lp.Instance) (lp.Result, error) {
	var n, d = in.N(), in.D()
	if d == 0 || n <= 9*d*d {
		return r.level1(in)
	}

	var (
		rootN = int(math.Round(math.Sqrt(float64(n))))
		k     = d * rootN
		core  = make([]int, 0, 2*k)
		rows  = in.Rows()
	)
	for round := 0; ; round++ {
		if err := r.ctx.Err(); err != nil {
			return lp.Result{}, err
		}
		r.rounds2++

		var base = len(core)
		for i := 0; i < k; i++ {
			core = append(core, r.s.rand.Intn(n))
		}
		var sample = len(core)
		res, err := r.level1(in.Subset(core))
		core = core[:base]
		if err != nil {
			return lp.Result{}, err
		}
		if !res.Feasible() {
			r.observe(RoundStats{Level: 2, Round: round, Sample: sample, Done: true})
			return res, nil
		}

		var violators []int
		for i, row := range rows {
			if res.Violates(row) {
				violators = append(violators, i)
			}
		}
		var st = RoundStats{Level: 2, Round: round, Sample: sample, Violators: len(violators)}
		if len(violators) == 0 {
			st.Done = true
			r.observe(st)
			return res, nil
		}
		if len(violators) <= 2*rootN {
			core = append(core, violators...)
			st.Accepted = true
		}
		r.observe(st)
	}
}

// level1 is the multiplicative-weights loop.
func (r *runner) level1(in lp.Instance) (lp.Result, error) {
	var (
		n, d = in.N(), in.D()
		k    = 6 * d * d
	)
	if d == 0 || n <= k {
		return r.s.backend.Solve(in), nil
	}

	var (
		rows     = in.Rows()
		weight   = make([]int64, n)
		prefix   = make([]int64, n)
		violated = make([]bool, n)
		picked   = make(map[int]struct{}, k)
		idx      = make([]int, 0, k)
	)
	for i := range weight {
		weight[i] = 1
	}
	for round := 0; ; round++ {
		if err := r.ctx.Err(); err != nil {
			return lp.Result{}, err
		}
		r.rounds1++

		var total int64
		for i, w := range weight {
			total += w
			prefix[i] = total
		}

		// k distinct rows, each draw proportional to weight
		clear(picked)
		idx = idx[:0]
		for len(idx) < k {
			var u = r.s.rand.Int63n(total)
			var i = sort.Search(n, func(j int) bool { return prefix[j] > u })
			if _, dup := picked[i]; dup {
				continue
			}
			picked[i] = struct{}{}
			idx = append(idx, i)
		}
		sort.Ints(idx)

		var res = r.s.backend.Solve(in.Subset(idx))
		if !res.Feasible() {
			r.observe(RoundStats{Level: 1, Round: round, Sample: k, TotalWeight: total, Done: true})
			return res, nil
		}

		var (
			violatedW int64
			count     int
		)
		for i, row := range rows {
			violated[i] = res.Violates(row)
			if violated[i] {
				violatedW += weight[i]
				count++
			}
		}
		var st = RoundStats{
			Level: 1, Round: round, Sample: k,
			Violators: count, ViolatedWeight: violatedW, TotalWeight: total,
		}
		if violatedW == 0 {
			st.Done = true
			r.observe(st)
			return res, nil
		}
		if violatedW*int64(3*d) <= total {
			for i, v := range violated {
				if v {
					weight[i] *= 2
				}
			}
			st.Accepted = true
		}
		r.observe(st)
	}
}
