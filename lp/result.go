// SPDX-License-Identifier: MIT

package lp

import (
	"fmt"
	"math/big"

	"github.com/dacin21/exact-lp/fraction"
	"github.com/dacin21/exact-lp/vec"
)

// Status classifies a Result. Infeasible and Unbounded are ordinary outcomes,
// not failures.
type Status uint8

const (
	// statusError is the zero value: a Result nobody produced. Reading it panics.
	statusError Status = iota
	// Infeasible: no x satisfies every row.
	Infeasible
	// Optimal: x is a finite optimum.
	Optimal
	// Unbounded: ray certifies an unbounded objective.
	Unbounded
)

const panicErrorStatus = "lp: result has no status (zero Result used outside a solver)"

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case Infeasible:
		return "INFEASIBLE"
	case Optimal:
		return "OPTIMAL"
	case Unbounded:
		return "UNBOUNDED"
	default:
		return "ERROR"
	}
}

// Result is a solver outcome together with its certificate.
//
//   - Infeasible: objective −∞; X and Ray are empty.
//   - Optimal: objective = (c·x)/x_last; no row is violated by x; Ray is zero.
//   - Unbounded: objective +∞; c·ray > 0 and row·ray ≤ 0 for every row. X is the
//     point the ray was found at and need not satisfy the rows on its own.
//
// The zero Result carries no status; Status, Feasible and Bounded panic on it.
type Result struct {
	status    Status
	x, ray    []*big.Int
	objective fraction.Fraction
}

// InfeasibleResult returns the infeasible sentinel.
func InfeasibleResult() Result {
	return Result{status: Infeasible, objective: fraction.Inf().Neg()}
}

// NewResult builds a feasible base-case result. The objective is left at 0;
// call RecalcObjective once x and ray are final. Passing an unknown status is
// a programmer error and panics.
func NewResult(status Status, x, ray []*big.Int) Result {
	if status != Optimal && status != Unbounded && status != Infeasible {
		panic(fmt.Sprintf("lp: NewResult: invalid status %d", status))
	}

	return Result{status: status, x: x, ray: ray}
}

func (r Result) mustStatus() Status {
	if r.status == statusError {
		panic(panicErrorStatus)
	}
	return r.status
}

// Status returns the outcome.
func (r Result) Status() Status { return r.mustStatus() }

// Feasible reports Status != Infeasible.
func (r Result) Feasible() bool { return r.mustStatus() != Infeasible }

// Bounded reports Status != Unbounded.
func (r Result) Bounded() bool { return r.mustStatus() != Unbounded }

// X returns the homogeneous point (read-only).
func (r Result) X() []*big.Int { return r.x }

// Ray returns the homogeneous ray (read-only; zero unless Unbounded).
func (r Result) Ray() []*big.Int { return r.ray }

// Objective returns the objective value: −∞, a finite fraction, or +∞.
func (r Result) Objective() fraction.Fraction { return r.objective }

// Violates reports whether this candidate violates row.
// For an unbounded candidate the ray decides first: row·ray > 0 violates,
// row·ray < 0 satisfies, 0 falls through to the point test row·x > 0.
func (r Result) Violates(row []*big.Int) bool {
	if r.status == Unbounded {
		switch vec.DotAffine(row, r.ray).Sign() {
		case 1:
			return true
		case -1:
			return false
		}
	}

	return vec.Dot(row, r.x).Sign() > 0
}

// Point returns x[0..d-1]/x[d] as rationals, or nil when x is empty or not finite.
func (r Result) Point() []*big.Rat {
	var d = len(r.x) - 1
	if d < 0 || r.x[d].Sign() == 0 {
		return nil
	}
	var out = make([]*big.Rat, d)
	for i := 0; i < d; i++ {
		out[i] = new(big.Rat).SetFrac(r.x[i], r.x[d])
	}

	return out
}

// The methods below are solver-side utilities used while a Result is being
// assembled. They are not a mutation API for returned results.

// SetX replaces x.
func (r *Result) SetX(x []*big.Int) { r.x = x }

// SetRay replaces the ray.
func (r *Result) SetRay(ray []*big.Int) { r.ray = ray }

// ResetRay zeroes the ray and downgrades Unbounded to Optimal.
// It must not be called on an infeasible result.
func (r *Result) ResetRay() {
	if r.mustStatus() == Infeasible {
		panic("lp: ResetRay on infeasible result")
	}
	r.status = Optimal
	for _, e := range r.ray {
		e.SetInt64(0)
	}
}

// RecalcObjective derives the objective from status, x and c.
func (r *Result) RecalcObjective(c []*big.Int) {
	switch r.mustStatus() {
	case Optimal:
		r.objective = fraction.New(vec.DotAffine(r.x, c), r.x[len(r.x)-1])
	case Unbounded:
		r.objective = fraction.Inf()
	case Infeasible:
		r.objective = fraction.Inf().Neg()
	}
}

// ReduceAll gcd-reduces x and ray independently, in place.
func (r *Result) ReduceAll() {
	vec.ReduceByGCD(r.x)
	vec.ReduceByGCD(r.ray)
}

// String renders the status and objective, e.g. "OPTIMAL 5/1".
func (r Result) String() string {
	return fmt.Sprintf("%s %s", r.status, r.objective)
}
