// SPDX-License-Identifier: MIT
// Package lp: sentinel error set.
// Every message is prefixed with "lp: ..." for easy grepping. Constructors and
// codecs wrap these with fmt.Errorf("ctx: %w", ErrX); callers match them with
// errors.Is. Infeasible and unbounded LPs are NOT errors: they are ordinary
// Status values on a Result.

package lp

import "errors"

var (
	// ErrRowLength indicates a constraint row whose length is not d+1.
	ErrRowLength = errors.New("lp: row length must be d+1")

	// ErrBoundsLength indicates len(b) != len(A) in NewInstanceFromBounds.
	ErrBoundsLength = errors.New("lp: bounds length differs from row count")

	// ErrMalformedInput is returned by the text codecs on unparsable or truncated input.
	ErrMalformedInput = errors.New("lp: malformed input")

	// ErrStatusMismatch: a fixture expected a different status than the solver returned.
	ErrStatusMismatch = errors.New("lp: status mismatch")

	// ErrObjectiveMismatch: statuses agree (OPTIMAL) but objectives differ.
	ErrObjectiveMismatch = errors.New("lp: objective mismatch")

	// ErrSolutionDiffers: objectives agree but the optimal points differ after
	// gcd reduction. Soft: expected on degenerate LPs with several optima.
	ErrSolutionDiffers = errors.New("lp: solution differs (lp might be degenerate)")

	// ErrBadCertificate: a Result does not certify its own status against the instance.
	ErrBadCertificate = errors.New("lp: result fails certificate check")
)
