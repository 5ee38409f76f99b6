// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/dacin21/exact-lp/lp"
	"github.com/dacin21/exact-lp/lpsolve"
	"github.com/dacin21/exact-lp/rng"
)

var errCheckFailed = errors.New("fixtures failed")

// outcome is the verdict for one fixture file.
type outcome struct {
	path   string
	status lp.Status
	err    error
}

func (o outcome) line() string {
	switch {
	case o.err == nil:
		return fmt.Sprintf("ok    %s %s", o.path, o.status)
	case !lp.IsHardMismatch(o.err):
		return fmt.Sprintf("ok    %s %s (other optimal vertex)", o.path, o.status)
	default:
		return fmt.Sprintf("FAIL  %s: %v", o.path, o.err)
	}
}

func (a *app) checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check FIXTURE...",
		Short: "Solve fixture files and compare with their recorded answers",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outcomes, err := a.checkAll(cmd.Context(), args)
			if err != nil {
				return err
			}
			var failed int
			for _, o := range outcomes {
				fmt.Fprintln(cmd.OutOrStdout(), o.line())
				if lp.IsHardMismatch(o.err) {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d %w", failed, len(outcomes), errCheckFailed)
			}
			return nil
		},
	}
}

// checkAll verifies paths concurrently, at most cfg.Workers at a time. Each
// file is solved on one goroutine with its own derived random stream, so
// seeded runs do not depend on scheduling.
func (a *app) checkAll(ctx context.Context, paths []string) ([]outcome, error) {
	var outcomes = make([]outcome, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.cfg.Workers)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outcomes[i] = a.checkFile(gctx, i, path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return outcomes, nil
}

func (a *app) checkFile(ctx context.Context, i int, path string) outcome {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "check.fixture", trace.WithAttributes(
		attribute.String("path", path),
		attribute.String("lpsolve.run_id", a.runID),
	))
	defer span.End()

	var o = outcome{path: path}
	var fail = func(err error) outcome {
		o.err = err
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		a.logger.Warn("fixture failed", slog.String("path", path), slog.String("error", err.Error()))
		return o
	}

	f, err := os.Open(path)
	if err != nil {
		return fail(err)
	}
	fx, err := lp.ReadFixture(f)
	f.Close()
	if err != nil {
		return fail(err)
	}

	var seed = rng.DeriveSeed(a.cfg.Seed, uint64(i))
	res, err := lpsolve.SolveContext(ctx, fx.Instance, a.solveOptions(seed, a.cfg.Seed != 0)...)
	if err != nil {
		return fail(err)
	}
	o.status = res.Status()
	if err = fx.Verify(res); err != nil {
		if lp.IsHardMismatch(err) {
			return fail(err)
		}
		o.err = err
	}
	a.logger.Debug("fixture checked", slog.String("path", path), slog.String("status", o.status.String()))

	return o
}
