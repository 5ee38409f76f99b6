// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/dacin21/exact-lp/lpsolve"
	"github.com/dacin21/exact-lp/metrics"
)

const tracerName = "github.com/dacin21/exact-lp/cmd/lpsolve"

// app is the state shared by every subcommand of one invocation.
type app struct {
	configPath string
	flags      Config

	cfg      Config
	logger   *slog.Logger
	runID    string
	registry *prometheus.Registry
	metrics  *metrics.Collectors
	shutdown func(context.Context) error
}

// run executes one CLI invocation and returns the process exit code.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var a = &app{}
	var root = a.rootCmd()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	var err = root.ExecuteContext(ctx)
	if cerr := a.close(context.Background()); err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintln(stderr, "lpsolve:", err)
		if errors.Is(err, errCheckFailed) {
			return 2
		}
		return 1
	}

	return 0
}

func (a *app) rootCmd() *cobra.Command {
	var root = &cobra.Command{
		Use:           "lpsolve",
		Short:         "Exact rational LP solver",
		Long:          "lpsolve solves linear programs over the integers exactly, with Seidel's\nalgorithm, a fraction-free simplex, or Clarkson's sampling on top of either.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	var def = DefaultConfig()
	var pf = root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "YAML config file")
	pf.StringVar(&a.flags.Strategy, "strategy", def.Strategy, "seidel, simplex, clarkson-seidel or clarkson-simplex")
	pf.Int64Var(&a.flags.Seed, "seed", def.Seed, "base seed (0 = clock-seeded)")
	pf.BoolVar(&a.flags.MoveToFront, "move-to-front", def.MoveToFront, "Seidel move-to-front variant")
	pf.BoolVar(&a.flags.CheckCertificate, "check-certificate", def.CheckCertificate, "verify every result against its instance")
	pf.IntVar(&a.flags.Workers, "workers", def.Workers, "concurrent fixtures in check")
	pf.StringVar(&a.flags.LogLevel, "log-level", def.LogLevel, "debug, info, warn or error")
	pf.BoolVar(&a.flags.Trace, "trace", def.Trace, "print OpenTelemetry spans to stderr")
	pf.StringVar(&a.flags.MetricsOut, "metrics-out", def.MetricsOut, "write Prometheus metrics to this file on exit")

	root.AddCommand(a.solveCmd(), a.checkCmd(), a.genCmd())

	return root
}

// setup resolves the config (file, env, then flags) and builds the ambient stack.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := LoadConfig(a.configPath)
	if err != nil {
		return err
	}
	a.applyFlags(cmd, &cfg)
	if err = cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	a.cfg = cfg

	a.runID = uuid.NewString()
	lvl, _ := cfg.level()
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: lvl})).
		With(slog.String("run_id", a.runID))

	a.registry = prometheus.NewRegistry()
	a.metrics = metrics.New(a.registry)

	if cfg.Trace {
		if a.shutdown, err = initTracer(cmd.ErrOrStderr(), a.runID); err != nil {
			return fmt.Errorf("init tracing: %w", err)
		}
	}
	a.logger.Debug("config resolved",
		slog.String("strategy", cfg.Strategy),
		slog.Int64("seed", cfg.Seed),
		slog.Int("workers", cfg.Workers),
	)

	return nil
}

func (a *app) applyFlags(cmd *cobra.Command, cfg *Config) {
	var f = cmd.Flags()
	if f.Changed("strategy") {
		cfg.Strategy = a.flags.Strategy
	}
	if f.Changed("seed") {
		cfg.Seed = a.flags.Seed
	}
	if f.Changed("move-to-front") {
		cfg.MoveToFront = a.flags.MoveToFront
	}
	if f.Changed("check-certificate") {
		cfg.CheckCertificate = a.flags.CheckCertificate
	}
	if f.Changed("workers") {
		cfg.Workers = a.flags.Workers
	}
	if f.Changed("log-level") {
		cfg.LogLevel = a.flags.LogLevel
	}
	if f.Changed("trace") {
		cfg.Trace = a.flags.Trace
	}
	if f.Changed("metrics-out") {
		cfg.MetricsOut = a.flags.MetricsOut
	}
}

// close flushes metrics and spans; it is safe to call when setup never ran.
func (a *app) close(ctx context.Context) error {
	var errs []error
	if a.registry != nil && a.cfg.MetricsOut != "" {
		if err := prometheus.WriteToTextfile(a.cfg.MetricsOut, a.registry); err != nil {
			errs = append(errs, fmt.Errorf("write metrics: %w", err))
		}
	}
	if a.shutdown != nil {
		if err := a.shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown tracing: %w", err))
		}
	}

	return errors.Join(errs...)
}

// solveOptions is the per-solve lpsolve configuration. seeded=false keeps
// the streams clock-seeded.
func (a *app) solveOptions(seed int64, seeded bool) []lpsolve.Option {
	strategy, _ := lpsolve.ParseStrategy(a.cfg.Strategy)
	var opts = []lpsolve.Option{
		lpsolve.WithStrategy(strategy),
		lpsolve.WithMoveToFront(a.cfg.MoveToFront),
		lpsolve.WithCertificateCheck(a.cfg.CheckCertificate),
		lpsolve.WithLogger(a.logger),
		lpsolve.WithMetrics(a.metrics),
	}
	if seeded {
		opts = append(opts, lpsolve.WithSeed(seed))
	}

	return opts
}

func initTracer(w io.Writer, runID string) (func(context.Context) error, error) {
	exporter, err := stdouttrace.New(stdouttrace.WithWriter(w), stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, fmt.Errorf("create exporter: %w", err)
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewSchemaless(
			attribute.String("service.name", "lpsolve"),
			attribute.String("lpsolve.run_id", runID),
		)),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	otel.SetTracerProvider(tp)

	return tp.Shutdown, nil
}

// openInput opens path, or stdin for "-".
func openInput(cmd *cobra.Command, path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	return os.Open(path)
}
