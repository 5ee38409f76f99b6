package clarkson_test

import (
	"context"
	"errors"
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/dacin21/exact-lp/clarkson"
	"github.com/dacin21/exact-lp/lp"
	"github.com/dacin21/exact-lp/lpgen"
	"github.com/dacin21/exact-lp/seidel"
	"github.com/dacin21/exact-lp/simplex"
	"github.com/dacin21/exact-lp/vec"
)

// ClarksonSuite checks that the reduction never changes the answer of its backend.
type ClarksonSuite struct {
	suite.Suite
}

func (s *ClarksonSuite) backends(seed int64) map[string]lp.Solver {
	return map[string]lp.Solver{
		"seidel":  seidel.New(seidel.WithSeed(seed)),
		"simplex": simplex.New(),
	}
}

// TestCatalog runs the small hand-checked cases; they go straight to the backend.
func (s *ClarksonSuite) TestCatalog() {
	for name, backend := range s.backends(1) {
		solver := clarkson.New(backend, clarkson.WithSeed(3))
		for _, tc := range lpgen.Catalog() {
			res := solver.Solve(tc.Instance)
			require.Equal(s.T(), tc.Status, res.Status(), "%s/%s", name, tc.Name)
			require.True(s.T(), tc.Objective.Equal(res.Objective()), "%s/%s", name, tc.Name)
		}
	}
}

// TestEquivalenceLevel1 uses n between 6d² and 9d² so only level 1 samples.
func (s *ClarksonSuite) TestEquivalenceLevel1() {
	in, err := lpgen.Random(30, 2, lpgen.WithSeed(5), lpgen.WithBox(40), lpgen.WithFeasible(true))
	require.NoError(s.T(), err)
	require.Greater(s.T(), in.N(), 24)
	require.LessOrEqual(s.T(), in.N(), 36)

	direct := seidel.Solve(in, nil)
	var levels = map[int]int{}
	solver := clarkson.New(seidel.New(seidel.WithSeed(2)),
		clarkson.WithSeed(9),
		clarkson.WithObserver(func(st clarkson.RoundStats) { levels[st.Level]++ }),
	)
	for trial := 0; trial < 10; trial++ {
		res := solver.Solve(in)
		require.Equal(s.T(), direct.Status(), res.Status())
		require.True(s.T(), direct.Objective().Equal(res.Objective()))
		require.NoError(s.T(), lp.CheckCertificate(in, res))
	}
	assert.Zero(s.T(), levels[2])
	assert.Positive(s.T(), levels[1])
}

// TestEquivalenceLevel2 uses n ≫ 9d² so the core-set loop runs.
func (s *ClarksonSuite) TestEquivalenceLevel2() {
	for seed := int64(1); seed <= 4; seed++ {
		opts := []lpgen.Option{lpgen.WithSeed(seed), lpgen.WithCoeffRange(20)}
		if seed != 4 {
			opts = append(opts, lpgen.WithBox(100), lpgen.WithFeasible(true))
		}
		in, err := lpgen.Random(600, 2, opts...)
		require.NoError(s.T(), err)

		want := simplex.Solve(in)
		for name, backend := range s.backends(seed) {
			var rounds2, done int
			solver := clarkson.New(backend, clarkson.WithSeed(seed), clarkson.WithObserver(func(st clarkson.RoundStats) {
				if st.Level == 2 {
					rounds2++
					if st.Done {
						done++
					}
				}
			}))
			res := solver.Solve(in)
			require.Equal(s.T(), want.Status(), res.Status(), "seed %d %s", seed, name)
			require.True(s.T(), want.Objective().Equal(res.Objective()), "seed %d %s", seed, name)
			require.NoError(s.T(), lp.CheckCertificate(in, res), "seed %d %s", seed, name)
			assert.Positive(s.T(), rounds2, "seed %d %s", seed, name)
			assert.Equal(s.T(), 1, done, "exactly one final level-2 round")
		}
	}
}

// TestAcceptanceRules replays every non-final round against its threshold:
// level 1 doubles weights iff violated·3d ≤ total, level 2 keeps violators
// iff |V| ≤ 2·round(√n).
func (s *ClarksonSuite) TestAcceptanceRules() {
	const d = 2
	var accepted1, accepted2 int
	check := func(n int) func(clarkson.RoundStats) {
		rootN := int(math.Round(math.Sqrt(float64(n))))
		return func(st clarkson.RoundStats) {
			if st.Done {
				return
			}
			switch st.Level {
			case 1:
				want := st.ViolatedWeight*int64(3*d) <= st.TotalWeight
				require.Equal(s.T(), want, st.Accepted, "level 1 round %+v", st)
				if st.Accepted {
					accepted1++
				}
			case 2:
				want := st.Violators <= 2*rootN
				require.Equal(s.T(), want, st.Accepted, "level 2 round %+v", st)
				if st.Accepted {
					accepted2++
				}
			}
		}
	}

	for seed := int64(1); seed <= 6; seed++ {
		small, err := lpgen.Random(30, d, lpgen.WithSeed(seed), lpgen.WithBox(40), lpgen.WithFeasible(true))
		require.NoError(s.T(), err)
		res := clarkson.New(simplex.New(), clarkson.WithSeed(seed), clarkson.WithObserver(check(small.N()))).Solve(small)
		require.NoError(s.T(), lp.CheckCertificate(small, res))

		large, err := lpgen.Random(900, d, lpgen.WithSeed(seed), lpgen.WithCoeffRange(20), lpgen.WithBox(100), lpgen.WithFeasible(true))
		require.NoError(s.T(), err)
		res = clarkson.New(seidel.New(seidel.WithSeed(seed)), clarkson.WithSeed(seed), clarkson.WithObserver(check(large.N()))).Solve(large)
		require.NoError(s.T(), lp.CheckCertificate(large, res))
	}
	assert.Positive(s.T(), accepted1, "some level-1 round doubled weights")
	assert.Positive(s.T(), accepted2, "some level-2 round grew the core set")
}

// TestAnnulusLarge mirrors the enclosing-annulus workload the reduction targets.
func (s *ClarksonSuite) TestAnnulusLarge() {
	pts, err := lpgen.RandomPoints(400, 2, lpgen.WithSeed(12), lpgen.WithCoeffRange(1000))
	require.NoError(s.T(), err)
	in, err := lpgen.Annulus(pts)
	require.NoError(s.T(), err)

	want := seidel.Solve(in, nil)
	got := clarkson.New(seidel.New(seidel.WithSeed(1)), clarkson.WithSeed(1)).Solve(in)
	require.Equal(s.T(), lp.Optimal, got.Status())
	require.True(s.T(), want.Objective().Equal(got.Objective()))
}

// TestInfeasiblePropagates: a sampled infeasible subset ends the solve.
func (s *ClarksonSuite) TestInfeasiblePropagates() {
	in, err := lpgen.Random(500, 2, lpgen.WithSeed(21), lpgen.WithCoeffRange(5))
	require.NoError(s.T(), err)
	all := make([][]*big.Int, 0, in.N()+2)
	all = append(all, in.Rows()...)
	// x0 ≤ 1 and x0 ≥ 2
	all = append(all, vec.FromInt64s(1, 0, -1), vec.FromInt64s(-1, 0, 2))
	bad := lp.MustInstance(all, in.Objective())

	res := clarkson.New(simplex.New(), clarkson.WithSeed(4)).Solve(bad)
	require.Equal(s.T(), lp.Infeasible, res.Status())
}

// TestCancel: a cancelled context stops before any backend call.
func (s *ClarksonSuite) TestCancel() {
	in, err := lpgen.Random(600, 2, lpgen.WithSeed(1), lpgen.WithBox(10))
	require.NoError(s.T(), err)

	var calls int
	backend := lp.SolverFunc(func(sub lp.Instance) lp.Result {
		calls++
		return simplex.Solve(sub)
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = clarkson.New(backend, clarkson.WithSeed(1)).SolveContext(ctx, in)
	require.True(s.T(), errors.Is(err, context.Canceled))
	assert.Zero(s.T(), calls)
}

// TestCancelMidway cancels from the observer after the first round.
func (s *ClarksonSuite) TestCancelMidway() {
	in, err := lpgen.Random(2000, 3, lpgen.WithSeed(8), lpgen.WithBox(50), lpgen.WithFeasible(true))
	require.NoError(s.T(), err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var seen int
	solver := clarkson.New(simplex.New(), clarkson.WithSeed(2), clarkson.WithObserver(func(st clarkson.RoundStats) {
		seen++
		if !st.Done {
			cancel()
		}
	}))
	res, err := solver.SolveContext(ctx, in)
	if err == nil {
		// the very first rounds certified the optimum
		require.NoError(s.T(), lp.CheckCertificate(in, res))
		return
	}
	require.ErrorIs(s.T(), err, context.Canceled)
	assert.Positive(s.T(), seen)
}

// TestNilBackendPanics guards the constructor contract.
func (s *ClarksonSuite) TestNilBackendPanics() {
	require.Panics(s.T(), func() { clarkson.New(nil) })
	require.Panics(s.T(), func() { clarkson.WithRand(nil) })
}

// TestClarksonSuite runs the ClarksonSuite.
func TestClarksonSuite(t *testing.T) {
	suite.Run(t, new(ClarksonSuite))
}

func BenchmarkClarksonSeidel_Annulus(b *testing.B) {
	pts, err := lpgen.RandomPoints(5000, 2, lpgen.WithSeed(1), lpgen.WithCoeffRange(10000))
	require.NoError(b, err)
	in, err := lpgen.Annulus(pts)
	require.NoError(b, err)
	solver := clarkson.New(seidel.New(seidel.WithSeed(1)), clarkson.WithSeed(1))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = solver.Solve(in)
	}
}
