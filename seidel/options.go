// SPDX-License-Identifier: MIT

package seidel

import (
	"context"
	"io"
	"log/slog"
	"math/rand"

	"github.com/dacin21/exact-lp/lp"
	"github.com/dacin21/exact-lp/rng"
)

// Option configures a Solver.
type Option func(*Options)

// Options is the resolved Solver configuration.
type Options struct {
	rand        *rand.Rand
	moveToFront bool
	logger      *slog.Logger
}

const panicNilRand = "seidel: WithRand: nil *rand.Rand"

// WithSeed makes the solver deterministic (seed 0 ⇒ rng.DefaultSeed).
func WithSeed(seed int64) Option {
	return func(o *Options) { o.rand = rng.FromSeed(seed) }
}

// WithRand hands the solver an existing random stream. The solver takes it
// over; do not use r elsewhere concurrently.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic(panicNilRand)
	}
	return func(o *Options) { o.rand = r }
}

// WithMoveToFront enables the move-to-front variant: the top level is still
// shuffled, but recursive levels keep their rows in the order inherited from
// the parent and every violated row is moved to the front of its level.
func WithMoveToFront(on bool) Option {
	return func(o *Options) { o.moveToFront = on }
}

// WithLogger sets the logger for per-solve Debug records.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.logger = l
		}
	}
}

// Solver is a configured incremental solver. It owns its random stream and
// is not safe for concurrent use.
type Solver struct {
	opts Options
}

// New returns a Solver. Without WithSeed/WithRand the stream is clock-seeded.
func New(opts ...Option) *Solver {
	var o = Options{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(&o)
	}
	if o.rand == nil {
		o.rand = rng.Clock()
	}

	return &Solver{opts: o}
}

// Solve implements lp.Solver.
func (s *Solver) Solve(in lp.Instance) lp.Result {
	var w = walker{r: s.opts.rand, moveToFront: s.opts.moveToFront}
	var res = w.solve(in)
	if s.opts.logger.Enabled(context.Background(), slog.LevelDebug) {
		s.opts.logger.Debug("seidel solve",
			slog.Int("n", in.N()),
			slog.Int("d", in.D()),
			slog.Int("violations", w.violations),
			slog.String("status", res.Status().String()),
		)
	}

	return res
}
