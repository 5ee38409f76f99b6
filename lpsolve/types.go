// SPDX-License-Identifier: MIT
// Package lpsolve is the single entry point for solving an exact LP with one
// of four strategies.
//
// Strategies:
//
//	– Seidel:          randomized incremental solver on all rows.
//	– Simplex:         fraction-free tableau simplex on all rows.
//	– ClarksonSeidel:  Clarkson's sampling reduction with Seidel as backend.
//	– ClarksonSimplex: Clarkson's sampling reduction with Simplex as backend.
//
// All strategies return the same status and objective on the same input;
// only the reported point or ray may differ when the optimum is degenerate.
//
// Options:
//
//	– Strategy:         which solver pipeline runs (default ClarksonSeidel).
//	– Seed:             base seed for every random stream when Deterministic.
//	– MoveToFront:      Seidel's move-to-front variant.
//	– CheckCertificate: verify the returned result against the instance.
//	– Observer:         per-round hook for the Clarkson strategies.
//	– Logger, Metrics:  ambient observability, both optional.
//
// Errors (sentinel):
//
//	– ErrUnsupportedStrategy if Options.Strategy is not one of the four.
//	– ErrBadCertificate      if CheckCertificate is on and the result fails it.
package lpsolve

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors returned by the dispatcher.
var (
	// ErrUnsupportedStrategy indicates an unknown Strategy value or name.
	ErrUnsupportedStrategy = errors.New("lpsolve: unsupported strategy")

	// ErrBadCertificate wraps a failed lp.CheckCertificate.
	ErrBadCertificate = errors.New("lpsolve: result failed certificate check")
)

// Strategy selects the solver pipeline.
type Strategy int

const (
	// Seidel runs the incremental solver directly.
	Seidel Strategy = iota

	// Simplex runs the tableau simplex directly.
	Simplex

	// ClarksonSeidel wraps Seidel in the sampling reduction.
	ClarksonSeidel

	// ClarksonSimplex wraps Simplex in the sampling reduction.
	ClarksonSimplex
)

var strategyNames = [...]string{
	Seidel:          "seidel",
	Simplex:         "simplex",
	ClarksonSeidel:  "clarkson-seidel",
	ClarksonSimplex: "clarkson-simplex",
}

// Strategies lists every supported strategy in declaration order.
func Strategies() []Strategy {
	return []Strategy{Seidel, Simplex, ClarksonSeidel, ClarksonSimplex}
}

// String returns the lower-case name used by the CLI and metrics labels.
func (s Strategy) String() string {
	if s < 0 || int(s) >= len(strategyNames) {
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
	return strategyNames[s]
}

// ParseStrategy is the inverse of String; matching ignores case.
func ParseStrategy(name string) (Strategy, error) {
	var key = strings.ToLower(strings.TrimSpace(name))
	for i, n := range strategyNames {
		if n == key {
			return Strategy(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedStrategy, name)
}

func (s Strategy) valid() bool {
	return s >= Seidel && s <= ClarksonSimplex
}

func (s Strategy) usesClarkson() bool {
	return s == ClarksonSeidel || s == ClarksonSimplex
}
