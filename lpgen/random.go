// SPDX-License-Identifier: MIT

package lpgen

import (
	"fmt"
	"math/big"

	"github.com/dacin21/exact-lp/lp"
	"github.com/dacin21/exact-lp/vec"
)

const (
	methodRandom       = "Random"
	methodRandomPoints = "RandomPoints"
)

// Random samples an LP with n random rows in d variables plus the optional
// bounding box rows.
//
// Model:
//   - Row coefficients and the objective are uniform in [−R, R].
//   - Without WithFeasible the constant is uniform in [−R², R²].
//   - With WithFeasible a hidden point h (|h_i| ≤ min(R, box)) is drawn first
//     and each constant is chosen so that a·h + const ∈ [−R, 0].
//
// Contract: n ≥ 0, d ≥ 0, a random source is configured.
//
// Complexity: O((n + d)·d) draws.
func Random(n, d int, opts ...Option) (lp.Instance, error) {
	var cfg = newConfig(opts...)
	if n < 0 {
		return lp.Instance{}, fmt.Errorf("%s: n=%d: %w", methodRandom, n, ErrTooFewRows)
	}
	if d < 0 {
		return lp.Instance{}, fmt.Errorf("%s: d=%d: %w", methodRandom, d, ErrBadDimension)
	}
	if cfg.rng == nil {
		return lp.Instance{}, fmt.Errorf("%s: %w", methodRandom, ErrNeedRandSource)
	}

	var (
		g      = cfg.rng
		r      = cfg.coeffRange
		hidden []int64
	)
	if cfg.feasible {
		var hr = r
		if cfg.box > 0 && cfg.box < hr {
			hr = cfg.box
		}
		hidden = make([]int64, d)
		for i := range hidden {
			hidden[i] = uniform(g, hr)
		}
	}

	var rows = make([][]*big.Int, 0, n+2*d)
	for i := 0; i < n; i++ {
		var (
			row = make([]*big.Int, d+1)
			dot int64
		)
		for j := 0; j < d; j++ {
			var a = uniform(g, r)
			row[j] = big.NewInt(a)
			if hidden != nil {
				dot += a * hidden[j]
			}
		}
		if hidden != nil {
			row[d] = big.NewInt(-dot - g.Int63n(r+1))
		} else {
			row[d] = big.NewInt(uniform(g, r*r))
		}
		rows = append(rows, row)
	}
	if cfg.box > 0 {
		rows = append(rows, boxRows(d, cfg.box)...)
	}

	var c = make([]*big.Int, d)
	for j := range c {
		c[j] = big.NewInt(uniform(g, r))
	}

	return lp.NewInstance(rows, c)
}

// boxRows returns x_i − b ≤ 0 and −x_i − b ≤ 0 for every coordinate.
func boxRows(d int, b int64) [][]*big.Int {
	var rows = make([][]*big.Int, 0, 2*d)
	for i := 0; i < d; i++ {
		var up, down = vec.Zeros(d + 1), vec.Zeros(d + 1)
		up[i].SetInt64(1)
		up[d].SetInt64(-b)
		down[i].SetInt64(-1)
		down[d].SetInt64(-b)
		rows = append(rows, up, down)
	}

	return rows
}

// RandomPoints draws n integer points in [−R, R]^dim.
func RandomPoints(n, dim int, opts ...Option) ([][]*big.Int, error) {
	var cfg = newConfig(opts...)
	if n < 0 {
		return nil, fmt.Errorf("%s: n=%d: %w", methodRandomPoints, n, ErrTooFewRows)
	}
	if dim < 0 {
		return nil, fmt.Errorf("%s: dim=%d: %w", methodRandomPoints, dim, ErrBadDimension)
	}
	if cfg.rng == nil {
		return nil, fmt.Errorf("%s: %w", methodRandomPoints, ErrNeedRandSource)
	}

	var pts = make([][]*big.Int, n)
	for i := range pts {
		pts[i] = make([]*big.Int, dim)
		for j := range pts[i] {
			pts[i][j] = big.NewInt(uniform(cfg.rng, cfg.coeffRange))
		}
	}

	return pts, nil
}
