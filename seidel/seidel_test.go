package seidel_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/dacin21/exact-lp/lp"
	"github.com/dacin21/exact-lp/lpgen"
	"github.com/dacin21/exact-lp/rng"
	"github.com/dacin21/exact-lp/seidel"
	"github.com/dacin21/exact-lp/vec"
)

// SeidelSuite exercises the incremental solver on hand-checked and random LPs.
type SeidelSuite struct {
	suite.Suite
}

// TestCatalog verifies status, objective and certificate on every catalog case,
// for both the plain and the move-to-front variant.
func (s *SeidelSuite) TestCatalog() {
	for _, mtf := range []bool{false, true} {
		solver := seidel.New(seidel.WithSeed(7), seidel.WithMoveToFront(mtf))
		for _, tc := range lpgen.Catalog() {
			res := solver.Solve(tc.Instance)
			require.Equal(s.T(), tc.Status, res.Status(), "%s mtf=%v", tc.Name, mtf)
			require.True(s.T(), tc.Objective.Equal(res.Objective()), "%s: got %s", tc.Name, res.Objective())
			require.NoError(s.T(), lp.CheckCertificate(tc.Instance, res), tc.Name)
		}
	}
}

// TestBoxVertex checks the worked d=2 example: x0 = 5 at the optimum.
func (s *SeidelSuite) TestBoxVertex() {
	in := lpgen.Catalog()[0].Instance
	res := seidel.Solve(in, rng.FromSeed(1))
	require.Equal(s.T(), lp.Optimal, res.Status())
	pt := res.Point()
	require.Len(s.T(), pt, 2)
	require.Equal(s.T(), "5/1", pt[0].String())
	require.Equal(s.T(), int64(0), res.Ray()[0].Int64())
	require.True(s.T(), vec.IsZero(res.Ray()))
}

// TestUnboundedRay1D checks the worked d=1 unbounded example.
func (s *SeidelSuite) TestUnboundedRay1D() {
	in := lp.MustInstance(nil, vec.FromInt64s(1))
	res := seidel.Solve(in, nil)
	require.Equal(s.T(), lp.Unbounded, res.Status())
	require.Equal(s.T(), 1, res.Ray()[0].Sign())
}

// TestInputNotReordered guards the working-copy contract.
func (s *SeidelSuite) TestInputNotReordered() {
	in, err := lpgen.Random(40, 3, lpgen.WithSeed(3), lpgen.WithBox(20))
	require.NoError(s.T(), err)
	before := in.Clone()

	_ = seidel.Solve(in, rng.FromSeed(5))
	for i := 0; i < in.N(); i++ {
		require.True(s.T(), vec.Equal(before.Row(i), in.Row(i)), "row %d changed", i)
	}
}

// TestSeedReproducible: same seed ⇒ identical point and ray.
func (s *SeidelSuite) TestSeedReproducible() {
	in, err := lpgen.Random(60, 4, lpgen.WithSeed(11), lpgen.WithBox(30), lpgen.WithFeasible(true))
	require.NoError(s.T(), err)

	a := seidel.New(seidel.WithSeed(42)).Solve(in)
	b := seidel.New(seidel.WithSeed(42)).Solve(in)
	require.Equal(s.T(), a.Status(), b.Status())
	require.True(s.T(), vec.Equal(a.X(), b.X()))
	require.True(s.T(), vec.Equal(a.Ray(), b.Ray()))
}

// TestRandomAgreement compares plain and move-to-front runs on random LPs
// across seeds: statuses and objectives must match and certificates hold.
func (s *SeidelSuite) TestRandomAgreement() {
	for seed := int64(1); seed <= 25; seed++ {
		opts := []lpgen.Option{lpgen.WithSeed(seed)}
		if seed%2 == 0 {
			opts = append(opts, lpgen.WithBox(15))
		}
		if seed%3 == 0 {
			opts = append(opts, lpgen.WithFeasible(true))
		}
		in, err := lpgen.Random(30, 1+int(seed%4), opts...)
		require.NoError(s.T(), err)

		plain := seidel.New(seidel.WithSeed(seed)).Solve(in)
		mtf := seidel.New(seidel.WithSeed(seed+100), seidel.WithMoveToFront(true)).Solve(in)

		require.Equal(s.T(), plain.Status(), mtf.Status(), "seed %d", seed)
		require.True(s.T(), plain.Objective().Equal(mtf.Objective()), "seed %d", seed)
		require.NoError(s.T(), lp.CheckCertificate(in, plain), "seed %d", seed)
		require.NoError(s.T(), lp.CheckCertificate(in, mtf), "seed %d", seed)
	}
}

// TestAnnulusIsBounded: enclosing-annulus LPs always have a finite optimum ≤ 0.
func (s *SeidelSuite) TestAnnulusIsBounded() {
	pts, err := lpgen.RandomPoints(50, 2, lpgen.WithSeed(6))
	require.NoError(s.T(), err)
	in, err := lpgen.Annulus(pts)
	require.NoError(s.T(), err)

	res := seidel.New(seidel.WithSeed(1)).Solve(in)
	require.Equal(s.T(), lp.Optimal, res.Status())
	require.LessOrEqual(s.T(), res.Objective().Sign(), 0)
	require.NoError(s.T(), lp.CheckCertificate(in, res))
}

// TestSeidelSuite runs the SeidelSuite.
func TestSeidelSuite(t *testing.T) {
	suite.Run(t, new(SeidelSuite))
}
