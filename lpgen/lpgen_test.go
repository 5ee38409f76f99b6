// Package lpgen_test checks generator contracts: determinism under a seed,
// sentinel errors, and the structure of the generated rows.
package lpgen_test

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dacin21/exact-lp/lp"
	"github.com/dacin21/exact-lp/lpgen"
	"github.com/dacin21/exact-lp/vec"
)

func TestRandom_Errors(t *testing.T) {
	_, err := lpgen.Random(5, 2)
	require.ErrorIs(t, err, lpgen.ErrNeedRandSource)

	_, err = lpgen.Random(-1, 2, lpgen.WithSeed(1))
	require.ErrorIs(t, err, lpgen.ErrTooFewRows)

	_, err = lpgen.Random(3, -2, lpgen.WithSeed(1))
	require.ErrorIs(t, err, lpgen.ErrBadDimension)

	require.Panics(t, func() { lpgen.WithCoeffRange(0) })
	require.Panics(t, func() { lpgen.WithBox(-1) })
	require.Panics(t, func() { lpgen.WithRand(nil) })
}

func TestRandom_DeterministicUnderSeed(t *testing.T) {
	gen := func() string {
		in, err := lpgen.Random(20, 3, lpgen.WithSeed(99), lpgen.WithBox(50))
		require.NoError(t, err)
		var buf bytes.Buffer
		require.NoError(t, lp.WriteInstance(&buf, in))
		return buf.String()
	}
	assert.Equal(t, gen(), gen())
}

func TestRandom_ShapeAndBox(t *testing.T) {
	in, err := lpgen.Random(7, 3, lpgen.WithSeed(4), lpgen.WithBox(9), lpgen.WithCoeffRange(5))
	require.NoError(t, err)
	assert.Equal(t, 7+2*3, in.N())
	assert.Equal(t, 3, in.D())

	for i := 0; i < 7; i++ {
		for _, e := range in.Row(i)[:3] {
			assert.LessOrEqual(t, e.CmpAbs(big.NewInt(5)), 0)
		}
	}
	assert.True(t, vec.Equal(vec.FromInt64s(1, 0, 0, -9), in.Row(7)))
	assert.True(t, vec.Equal(vec.FromInt64s(-1, 0, 0, -9), in.Row(8)))
}

func TestRandom_FeasibleHasWitness(t *testing.T) {
	in, err := lpgen.Random(200, 4, lpgen.WithSeed(8), lpgen.WithFeasible(true), lpgen.WithBox(3))
	require.NoError(t, err)

	// Some integer point in the box satisfies every row; brute force the 7^4 grid.
	var found bool
	x := vec.Zeros(5)
	x[4].SetInt64(1)
	var walk func(i int)
	walk = func(i int) {
		if found {
			return
		}
		if i == 4 {
			for _, row := range in.Rows() {
				if vec.Dot(row, x).Sign() > 0 {
					return
				}
			}
			found = true
			return
		}
		for v := int64(-3); v <= 3; v++ {
			x[i].SetInt64(v)
			walk(i + 1)
		}
	}
	walk(0)
	assert.True(t, found)
}

func TestAnnulus(t *testing.T) {
	_, err := lpgen.Annulus(nil)
	require.ErrorIs(t, err, lpgen.ErrTooFewRows)
	_, err = lpgen.Annulus([][]*big.Int{vec.FromInt64s(1, 2), vec.FromInt64s(1)})
	require.ErrorIs(t, err, lpgen.ErrBadDimension)

	in, err := lpgen.Annulus([][]*big.Int{vec.FromInt64s(3, -1)})
	require.NoError(t, err)
	assert.Equal(t, 2, in.N())
	assert.Equal(t, 4, in.D())
	assert.True(t, vec.Equal(vec.FromInt64s(6, -2, 1, 0, -10), in.Row(0)))
	assert.True(t, vec.Equal(vec.FromInt64s(-6, 2, 0, -1, 10), in.Row(1)))
	assert.True(t, vec.Equal(vec.FromInt64s(0, 0, 1, -1), in.Objective()))
}

func TestRandomPoints(t *testing.T) {
	pts, err := lpgen.RandomPoints(10, 3, lpgen.WithSeed(2), lpgen.WithCoeffRange(4))
	require.NoError(t, err)
	require.Len(t, pts, 10)
	for _, p := range pts {
		require.Len(t, p, 3)
		for _, e := range p {
			assert.LessOrEqual(t, e.CmpAbs(big.NewInt(4)), 0)
		}
	}

	_, err = lpgen.RandomPoints(3, 2)
	require.ErrorIs(t, err, lpgen.ErrNeedRandSource)
}

func TestCatalog_FreshCopies(t *testing.T) {
	a := lpgen.Catalog()
	b := lpgen.Catalog()
	require.Equal(t, len(a), len(b))
	a[0].Instance.Row(0)[0].SetInt64(123)
	assert.Equal(t, int64(1), b[0].Instance.Row(0)[0].Int64())

	names := make(map[string]struct{})
	for _, c := range a {
		_, dup := names[c.Name]
		require.False(t, dup, c.Name)
		names[c.Name] = struct{}{}
	}
}
