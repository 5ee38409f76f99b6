// SPDX-License-Identifier: MIT

package lp

import (
	"fmt"

	"github.com/dacin21/exact-lp/fraction"
	"github.com/dacin21/exact-lp/vec"
)

// CheckCertificate verifies that res certifies its own status on in:
//
//   - Optimal: len(x) = d+1, x_last > 0, no row violated, objective = c·x / x_last.
//   - Unbounded: len(ray) = d+1, ray_last = 0, c·ray > 0, row·ray ≤ 0 for every row.
//   - Infeasible: objective is −∞. Infeasibility itself has no compact
//     certificate here; compare against a second solver for that.
//
// Errors: ErrBadCertificate wrapped with the first failing condition.
//
// Complexity: O(n·d) big-integer multiplications.
func CheckCertificate(in Instance, res Result) error {
	var d = in.D()
	switch res.Status() {
	case Optimal:
		var x = res.X()
		if len(x) != d+1 {
			return fmt.Errorf("x has %d entries, want %d: %w", len(x), d+1, ErrBadCertificate)
		}
		if x[d].Sign() <= 0 {
			return fmt.Errorf("x homogeneous entry %s is not positive: %w", x[d], ErrBadCertificate)
		}
		for i, row := range in.Rows() {
			if vec.Dot(row, x).Sign() > 0 {
				return fmt.Errorf("row %d violated by x: %w", i, ErrBadCertificate)
			}
		}
		var want = fraction.New(vec.DotAffine(in.Objective(), x), x[d])
		if !want.Equal(res.Objective()) {
			return fmt.Errorf("objective %s, c·x gives %s: %w", res.Objective(), want, ErrBadCertificate)
		}
	case Unbounded:
		var ray = res.Ray()
		if len(ray) != d+1 {
			return fmt.Errorf("ray has %d entries, want %d: %w", len(ray), d+1, ErrBadCertificate)
		}
		if ray[d].Sign() != 0 {
			return fmt.Errorf("ray homogeneous entry %s is not zero: %w", ray[d], ErrBadCertificate)
		}
		if vec.DotAffine(in.Objective(), ray).Sign() <= 0 {
			return fmt.Errorf("c·ray is not positive: %w", ErrBadCertificate)
		}
		for i, row := range in.Rows() {
			if vec.Dot(row, ray).Sign() > 0 {
				return fmt.Errorf("row %d has row·ray > 0: %w", i, ErrBadCertificate)
			}
		}
		if !res.Objective().Equal(fraction.Inf()) {
			return fmt.Errorf("objective %s, want +inf: %w", res.Objective(), ErrBadCertificate)
		}
	case Infeasible:
		if !res.Objective().Equal(fraction.Inf().Neg()) {
			return fmt.Errorf("objective %s, want -inf: %w", res.Objective(), ErrBadCertificate)
		}
	}

	return nil
}
