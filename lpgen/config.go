// SPDX-License-Identifier: MIT
// Package lpgen builds LP instances for tests, benchmarks and the CLI `gen`
// command: seeded random polytopes, enclosing-annulus LPs over point sets, and
// a catalog of small hand-checked cases.
//
// Deterministic defaults:
//   - rng         = nil (stochastic generators fail with ErrNeedRandSource)
//   - coeffRange  = 10  (coefficients drawn from [−10, 10])
//   - box         = 0   (no bounding box rows)
//   - feasible    = false
//
// Set WithSeed for reproducible fixtures.
package lpgen

import (
	"math/rand"

	"github.com/dacin21/exact-lp/rng"
)

const (
	defaultCoeffRange int64 = 10

	panicCoeffRange = "lpgen: WithCoeffRange: range must be > 0"
	panicBox        = "lpgen: WithBox: bound must be ≥ 0"
	panicNilRand    = "lpgen: WithRand: nil *rand.Rand"
)

// Option configures a generator.
type Option func(*config)

type config struct {
	rng        *rand.Rand
	coeffRange int64
	box        int64
	feasible   bool
}

func newConfig(opts ...Option) config {
	var cfg = config{coeffRange: defaultCoeffRange}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// WithSeed seeds a fresh stream (seed 0 ⇒ rng.DefaultSeed).
func WithSeed(seed int64) Option {
	return func(c *config) { c.rng = rng.FromSeed(seed) }
}

// WithRand uses r as the random stream.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic(panicNilRand)
	}
	return func(c *config) { c.rng = r }
}

// WithCoeffRange draws coefficients (and point coordinates) from [−r, r].
func WithCoeffRange(r int64) Option {
	if r <= 0 {
		panic(panicCoeffRange)
	}
	return func(c *config) { c.coeffRange = r }
}

// WithBox appends the 2d rows −b ≤ x_i ≤ b, which makes the LP bounded.
// b = 0 disables the box.
func WithBox(b int64) Option {
	if b < 0 {
		panic(panicBox)
	}
	return func(c *config) { c.box = b }
}

// WithFeasible makes every random row hold at a hidden integer point, so the
// LP is feasible by construction.
func WithFeasible(on bool) Option {
	return func(c *config) { c.feasible = on }
}

// uniform draws from [−r, r].
func uniform(g *rand.Rand, r int64) int64 {
	return g.Int63n(2*r+1) - r
}
