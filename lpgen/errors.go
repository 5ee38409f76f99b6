// SPDX-License-Identifier: MIT
// Package lpgen: sentinel errors. Generators return these wrapped with the
// method name; callers match them with errors.Is.

package lpgen

import "errors"

var (
	// ErrTooFewRows indicates a negative row count or an empty point set.
	ErrTooFewRows = errors.New("lpgen: too few rows")

	// ErrBadDimension indicates a negative dimension or points of mixed dimension.
	ErrBadDimension = errors.New("lpgen: invalid dimension")

	// ErrNeedRandSource indicates a stochastic generator was called without WithSeed/WithRand.
	ErrNeedRandSource = errors.New("lpgen: random source required")
)
