// SPDX-License-Identifier: MIT

package lpsolve

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/dacin21/exact-lp/clarkson"
	"github.com/dacin21/exact-lp/lp"
	"github.com/dacin21/exact-lp/rng"
	"github.com/dacin21/exact-lp/seidel"
	"github.com/dacin21/exact-lp/simplex"
)

const tracerName = "github.com/dacin21/exact-lp/lpsolve"

// Stream ids handed to rng.Derive; one per random consumer.
const (
	streamBackend  uint64 = 1
	streamClarkson uint64 = 2
)

// contextSolver is implemented by pipelines that can stop between rounds.
type contextSolver interface {
	SolveContext(ctx context.Context, in lp.Instance) (lp.Result, error)
}

// Solver is a configured pipeline. Like its random streams it is not safe
// for concurrent use; build one Solver per goroutine.
type Solver struct {
	opts     Options
	pipeline lp.Solver
	logger   *slog.Logger
}

// New validates opts and builds the pipeline.
func New(opts ...Option) (*Solver, error) {
	var o = DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if !o.Strategy.valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedStrategy, o.Strategy)
	}

	var logger = o.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	var base *rand.Rand
	if o.Deterministic {
		base = rng.FromSeed(o.Seed)
	} else {
		base = rng.Clock()
	}
	var (
		backendRand  = rng.Derive(base, streamBackend)
		clarksonRand = rng.Derive(base, streamClarkson)
	)

	var backend lp.Solver
	switch o.Strategy {
	case Seidel, ClarksonSeidel:
		backend = seidel.New(
			seidel.WithRand(backendRand),
			seidel.WithMoveToFront(o.MoveToFront),
			seidel.WithLogger(logger),
		)
	case Simplex, ClarksonSimplex:
		backend = simplex.New(simplex.WithLogger(logger))
	default:
		return nil, ErrUnsupportedStrategy
	}

	var pipeline = backend
	if o.Strategy.usesClarkson() {
		pipeline = clarkson.New(backend,
			clarkson.WithRand(clarksonRand),
			clarkson.WithObserver(chainObservers(o)),
			clarkson.WithLogger(logger),
		)
	}

	return &Solver{opts: o, pipeline: pipeline, logger: logger}, nil
}

// chainObservers fans a round out to the user hook and the metrics.
func chainObservers(o Options) clarkson.Observer {
	switch {
	case o.Metrics == nil:
		return o.Observer
	case o.Observer == nil:
		return o.Metrics.Observer()
	}
	var user, m = o.Observer, o.Metrics.Observer()

	return func(st clarkson.RoundStats) {
		user(st)
		m(st)
	}
}

// Strategy reports the configured strategy.
func (s *Solver) Strategy() Strategy { return s.opts.Strategy }

// Solve implements lp.Solver. A failed certificate check panics; use
// SolveContext to receive it as an error instead.
func (s *Solver) Solve(in lp.Instance) lp.Result {
	res, err := s.SolveContext(context.Background(), in)
	if err != nil {
		panic(err)
	}
	return res
}

// SolveContext solves in. Errors come from ctx (Clarkson strategies check it
// between rounds, the direct strategies only up front) or from the
// certificate check.
func (s *Solver) SolveContext(ctx context.Context, in lp.Instance) (lp.Result, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "lpsolve.Solve")
	defer span.End()
	span.SetAttributes(
		attribute.String("lp.strategy", s.opts.Strategy.String()),
		attribute.Int("lp.rows", in.N()),
		attribute.Int("lp.dim", in.D()),
	)

	if err := ctx.Err(); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return lp.Result{}, err
	}

	var (
		start = time.Now()
		res   lp.Result
		err   error
	)
	if cs, ok := s.pipeline.(contextSolver); ok {
		res, err = cs.SolveContext(ctx, in)
	} else {
		res = s.pipeline.Solve(in)
	}
	var elapsed = time.Since(start)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return lp.Result{}, err
	}

	if s.opts.CheckCertificate {
		if cerr := lp.CheckCertificate(in, res); cerr != nil {
			err = fmt.Errorf("%w: %w", ErrBadCertificate, cerr)
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return lp.Result{}, err
		}
	}

	if s.opts.Metrics != nil {
		s.opts.Metrics.ObserveSolve(s.opts.Strategy.String(), res.Status(), elapsed)
	}
	span.SetAttributes(attribute.String("lp.status", res.Status().String()))
	s.logger.Debug("lp solved",
		slog.String("strategy", s.opts.Strategy.String()),
		slog.Int("n", in.N()),
		slog.Int("d", in.D()),
		slog.String("status", res.Status().String()),
		slog.String("objective", res.Objective().String()),
		slog.Duration("elapsed", elapsed),
	)

	return res, nil
}

// Solve builds a one-shot Solver from opts and runs it.
func Solve(in lp.Instance, opts ...Option) (lp.Result, error) {
	return SolveContext(context.Background(), in, opts...)
}

// SolveContext is Solve with a context.
func SolveContext(ctx context.Context, in lp.Instance, opts ...Option) (lp.Result, error) {
	s, err := New(opts...)
	if err != nil {
		return lp.Result{}, err
	}
	return s.SolveContext(ctx, in)
}
