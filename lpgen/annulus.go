// SPDX-License-Identifier: MIT

package lpgen

import (
	"fmt"
	"math/big"

	"github.com/dacin21/exact-lp/lp"
	"github.com/dacin21/exact-lp/vec"
)

const methodAnnulus = "Annulus"

// Annulus builds the smallest-enclosing-annulus LP of points p ∈ ℤ^k.
//
// Variables (d = k+2): the center m ∈ ℚ^k, u = r_in² − |m|² and
// v = r_out² − |m|². Every point must lie between the two spheres:
//
//	u + 2p·m − |p|² ≤ 0     (outside the inner sphere)
//	|p|² − 2p·m − v ≤ 0     (inside the outer sphere)
//
// The objective maximizes u − v, i.e. minimizes r_out² − r_in². It is 0 iff
// all points lie on one sphere. The LP is always feasible and bounded.
//
// Contract: at least one point; all points share one dimension.
func Annulus(points [][]*big.Int) (lp.Instance, error) {
	if len(points) == 0 {
		return lp.Instance{}, fmt.Errorf("%s: no points: %w", methodAnnulus, ErrTooFewRows)
	}
	var k = len(points[0])
	var rows = make([][]*big.Int, 0, 2*len(points))
	for i, p := range points {
		if len(p) != k {
			return lp.Instance{}, fmt.Errorf("%s: point %d has dimension %d, want %d: %w",
				methodAnnulus, i, len(p), k, ErrBadDimension)
		}
		var (
			norm  = vec.Dot(p, p)
			inner = make([]*big.Int, k+3)
			outer = make([]*big.Int, k+3)
		)
		for j, pj := range p {
			inner[j] = new(big.Int).Lsh(pj, 1)
			outer[j] = new(big.Int).Neg(inner[j])
		}
		inner[k], inner[k+1], inner[k+2] = big.NewInt(1), big.NewInt(0), new(big.Int).Neg(norm)
		outer[k], outer[k+1], outer[k+2] = big.NewInt(0), big.NewInt(-1), norm
		rows = append(rows, inner, outer)
	}

	var c = vec.Zeros(k + 2)
	c[k].SetInt64(1)
	c[k+1].SetInt64(-1)

	return lp.NewInstance(rows, c)
}
