package lpsolve_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"math"
	"math/big"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"gonum.org/v1/gonum/mat"
	gonumlp "gonum.org/v1/gonum/optimize/convex/lp"

	"github.com/dacin21/exact-lp/clarkson"
	"github.com/dacin21/exact-lp/fraction"
	"github.com/dacin21/exact-lp/lp"
	"github.com/dacin21/exact-lp/lpgen"
	"github.com/dacin21/exact-lp/lpsolve"
	"github.com/dacin21/exact-lp/metrics"
	"github.com/dacin21/exact-lp/vec"
)

func solveAll(t *testing.T, in lp.Instance, seed int64) map[lpsolve.Strategy]lp.Result {
	t.Helper()
	var out = make(map[lpsolve.Strategy]lp.Result, 4)
	for _, s := range lpsolve.Strategies() {
		res, err := lpsolve.Solve(in, lpsolve.WithStrategy(s), lpsolve.WithSeed(seed), lpsolve.WithCertificateCheck(true))
		require.NoError(t, err, "%s", s)
		out[s] = res
	}
	return out
}

func requireAgree(t *testing.T, results map[lpsolve.Strategy]lp.Result, msg string) {
	t.Helper()
	var ref = results[lpsolve.Simplex]
	for s, res := range results {
		require.Equal(t, ref.Status(), res.Status(), "%s %s", msg, s)
		require.True(t, ref.Objective().Equal(res.Objective()), "%s %s: %s vs %s", msg, s, res.Objective(), ref.Objective())
	}
}

func TestEndToEndExamples(t *testing.T) {
	box := lp.MustInstance([][]*big.Int{
		vec.FromInt64s(1, 0, -5),
		vec.FromInt64s(0, 1, -3),
		vec.FromInt64s(1, 1, -6),
	}, vec.FromInt64s(1, 0))
	infeasible := lp.MustInstance([][]*big.Int{
		vec.FromInt64s(1, -1),
		vec.FromInt64s(-1, 2),
	}, vec.FromInt64s(1))
	free := lp.MustInstance(nil, vec.FromInt64s(1))

	for _, s := range lpsolve.Strategies() {
		t.Run(s.String(), func(t *testing.T) {
			res, err := lpsolve.Solve(box, lpsolve.WithStrategy(s), lpsolve.WithSeed(1))
			require.NoError(t, err)
			require.Equal(t, lp.Optimal, res.Status())
			assert.True(t, fraction.FromInt64(5, 1).Equal(res.Objective()))
			pt := res.Point()
			assert.Equal(t, "5", pt[0].RatString())

			res, err = lpsolve.Solve(infeasible, lpsolve.WithStrategy(s), lpsolve.WithSeed(1))
			require.NoError(t, err)
			assert.Equal(t, lp.Infeasible, res.Status())
			assert.True(t, res.Objective().IsInf())
			assert.Negative(t, res.Objective().Sign())

			res, err = lpsolve.Solve(free, lpsolve.WithStrategy(s), lpsolve.WithSeed(1))
			require.NoError(t, err)
			require.Equal(t, lp.Unbounded, res.Status())
			assert.Positive(t, res.Ray()[0].Sign())
			assert.Zero(t, res.Ray()[1].Sign())
		})
	}
}

func TestCatalogAgreement(t *testing.T) {
	for _, tc := range lpgen.Catalog() {
		results := solveAll(t, tc.Instance, 7)
		requireAgree(t, results, tc.Name)
		require.Equal(t, tc.Status, results[lpsolve.Seidel].Status(), tc.Name)
		require.True(t, tc.Objective.Equal(results[lpsolve.Seidel].Objective()), tc.Name)
	}
}

func TestRandomAgreement(t *testing.T) {
	for seed := int64(1); seed <= 12; seed++ {
		opts := []lpgen.Option{lpgen.WithSeed(seed), lpgen.WithCoeffRange(8)}
		if seed%3 != 0 {
			opts = append(opts, lpgen.WithBox(30), lpgen.WithFeasible(true))
		}
		n := 40
		if seed%4 == 0 {
			n = 400
		}
		in, err := lpgen.Random(n, 1+int(seed%3), opts...)
		require.NoError(t, err)
		requireAgree(t, solveAll(t, in, seed), "random")
	}
}

func TestAnnulusAgreement(t *testing.T) {
	pts, err := lpgen.RandomPoints(300, 2, lpgen.WithSeed(5), lpgen.WithCoeffRange(200))
	require.NoError(t, err)
	in, err := lpgen.Annulus(pts)
	require.NoError(t, err)

	results := solveAll(t, in, 3)
	requireAgree(t, results, "annulus")
	assert.Equal(t, lp.Optimal, results[lpsolve.ClarksonSeidel].Status())
}

func TestMoveToFrontAgreement(t *testing.T) {
	in, err := lpgen.Random(120, 3, lpgen.WithSeed(11), lpgen.WithBox(20), lpgen.WithFeasible(true))
	require.NoError(t, err)
	plain, err := lpsolve.Solve(in, lpsolve.WithStrategy(lpsolve.Seidel), lpsolve.WithSeed(2))
	require.NoError(t, err)
	mtf, err := lpsolve.Solve(in, lpsolve.WithStrategy(lpsolve.Seidel), lpsolve.WithSeed(2), lpsolve.WithMoveToFront(true))
	require.NoError(t, err)
	require.True(t, plain.Objective().Equal(mtf.Objective()))
}

func TestStrategyNames(t *testing.T) {
	for _, s := range lpsolve.Strategies() {
		got, err := lpsolve.ParseStrategy(strings.ToUpper(s.String()))
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
	_, err := lpsolve.ParseStrategy("interior-point")
	require.ErrorIs(t, err, lpsolve.ErrUnsupportedStrategy)
	assert.Equal(t, "Strategy(9)", lpsolve.Strategy(9).String())
	assert.Equal(t, lpsolve.ClarksonSeidel, lpsolve.DefaultOptions().Strategy)
}

func TestUnsupportedStrategy(t *testing.T) {
	_, err := lpsolve.New(lpsolve.WithStrategy(lpsolve.Strategy(-1)))
	require.ErrorIs(t, err, lpsolve.ErrUnsupportedStrategy)

	_, err = lpsolve.Solve(lp.Instance{}, lpsolve.WithStrategy(lpsolve.Strategy(4)))
	require.ErrorIs(t, err, lpsolve.ErrUnsupportedStrategy)
}

// TestSeededReproducible: the same seed yields the same point, not only the
// same objective.
func TestSeededReproducible(t *testing.T) {
	in, err := lpgen.Random(500, 2, lpgen.WithSeed(4), lpgen.WithBox(50))
	require.NoError(t, err)
	for _, s := range lpsolve.Strategies() {
		a, err := lpsolve.Solve(in, lpsolve.WithStrategy(s), lpsolve.WithSeed(99))
		require.NoError(t, err)
		b, err := lpsolve.Solve(in, lpsolve.WithStrategy(s), lpsolve.WithSeed(99))
		require.NoError(t, err)
		assert.True(t, vec.Equal(a.X(), b.X()), "%s", s)
		assert.True(t, vec.Equal(a.Ray(), b.Ray()), "%s", s)
	}
}

func TestObserverAndMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	in, err := lpgen.Random(700, 2, lpgen.WithSeed(6), lpgen.WithBox(40), lpgen.WithFeasible(true))
	require.NoError(t, err)

	var rounds int
	s, err := lpsolve.New(
		lpsolve.WithStrategy(lpsolve.ClarksonSimplex),
		lpsolve.WithSeed(1),
		lpsolve.WithMetrics(m),
		lpsolve.WithObserver(func(clarkson.RoundStats) { rounds++ }),
	)
	require.NoError(t, err)
	assert.Equal(t, lpsolve.ClarksonSimplex, s.Strategy())
	res := s.Solve(in)
	require.Equal(t, lp.Optimal, res.Status())
	assert.Positive(t, rounds)

	want := `
# HELP exactlp_solves_total Total LP solves by strategy and result status
# TYPE exactlp_solves_total counter
exactlp_solves_total{status="OPTIMAL",strategy="clarkson-simplex"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(want), "exactlp_solves_total"))
	n, err := testutil.GatherAndCount(reg, "exactlp_clarkson_rounds_total")
	require.NoError(t, err)
	assert.Positive(t, n)
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for _, s := range lpsolve.Strategies() {
		_, err := lpsolve.SolveContext(ctx, lpgen.Catalog()[0].Instance, lpsolve.WithStrategy(s))
		require.True(t, errors.Is(err, context.Canceled), "%s", s)
	}
}

func TestLoggerAndSpan(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	_, err := lpsolve.Solve(lpgen.Catalog()[0].Instance,
		lpsolve.WithStrategy(lpsolve.Seidel), lpsolve.WithSeed(1), lpsolve.WithLogger(logger))
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "lp solved")
	assert.Contains(t, buf.String(), "strategy=seidel")
	assert.Contains(t, buf.String(), "seidel solve")

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "lpsolve.Solve", spans[0].Name())
	var status string
	for _, kv := range spans[0].Attributes() {
		if kv.Key == "lp.status" {
			status = kv.Value.AsString()
		}
	}
	assert.Equal(t, "OPTIMAL", status)
}

// gonumStandardForm rewrites max c·x s.t. A x ≤ b (x free) as
// min −c·x⁺ + c·x⁻ s.t. A x⁺ − A x⁻ + s = b with x⁺, x⁻, s ≥ 0.
func gonumStandardForm(in lp.Instance) (c []float64, a *mat.Dense, b []float64) {
	var n, d = in.N(), in.D()
	var cols = 2*d + n
	c = make([]float64, cols)
	for j, cj := range in.Objective() {
		f, _ := new(big.Float).SetInt(cj).Float64()
		c[j] = -f
		c[d+j] = f
	}
	a = mat.NewDense(n, cols, nil)
	b = make([]float64, n)
	for i, row := range in.Rows() {
		for j := 0; j < d; j++ {
			f, _ := new(big.Float).SetInt(row[j]).Float64()
			a.Set(i, j, f)
			a.Set(i, d+j, -f)
		}
		a.Set(i, 2*d+i, 1)
		f, _ := new(big.Float).SetInt(row[d]).Float64()
		b[i] = -f
	}
	return c, a, b
}

// TestFloatOracle cross-checks the exact answer against gonum's float simplex.
func TestFloatOracle(t *testing.T) {
	for seed := int64(1); seed <= 8; seed++ {
		in, err := lpgen.Random(16, 2+int(seed%2), lpgen.WithSeed(seed), lpgen.WithCoeffRange(5),
			lpgen.WithBox(10), lpgen.WithFeasible(true))
		require.NoError(t, err)

		res, err := lpsolve.Solve(in, lpsolve.WithSeed(seed))
		require.NoError(t, err)
		require.Equal(t, lp.Optimal, res.Status())

		c, a, b := gonumStandardForm(in)
		opt, _, err := gonumlp.Simplex(c, a, b, 0, nil)
		require.NoError(t, err, "seed %d", seed)
		exact := res.Objective().Float64()
		assert.InDelta(t, exact, -opt, 1e-6*math.Max(1, math.Abs(exact)), "seed %d", seed)
	}

	bad := lpgen.Catalog()[1].Instance
	c, a, b := gonumStandardForm(bad)
	_, _, err := gonumlp.Simplex(c, a, b, 0, nil)
	require.ErrorIs(t, err, gonumlp.ErrInfeasible)
	res, err := lpsolve.Solve(bad)
	require.NoError(t, err)
	assert.Equal(t, lp.Infeasible, res.Status())
}

// TestQuietAboveDebug: a library solve writes nothing at Info level, even
// through the Clarkson pipeline.
func TestQuietAboveDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	in, err := lpgen.Random(400, 2, lpgen.WithSeed(3), lpgen.WithBox(20))
	require.NoError(t, err)

	for _, s := range lpsolve.Strategies() {
		_, err := lpsolve.Solve(in, lpsolve.WithStrategy(s), lpsolve.WithSeed(1),
			lpsolve.WithLogger(logger), lpsolve.WithCertificateCheck(true))
		require.NoError(t, err)
	}
	assert.Empty(t, buf.String())
}
