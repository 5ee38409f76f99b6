// SPDX-License-Identifier: MIT

package lpsolve

import (
	"log/slog"

	"github.com/dacin21/exact-lp/clarkson"
	"github.com/dacin21/exact-lp/metrics"
)

// Options configures a Solver.
//
// Strategy         – solver pipeline (default ClarksonSeidel).
// Seed             – base seed; used only when Deterministic is true.
// Deterministic    – derive every random stream from Seed instead of the clock.
// MoveToFront      – Seidel move-to-front variant (Seidel-backed strategies only).
// CheckCertificate – run lp.CheckCertificate on every result.
// Observer         – Clarkson per-round hook; ignored by the direct strategies.
// Logger           – Debug/Info records; nil discards.
// Metrics          – Prometheus collectors; nil disables.
type Options struct {
	Strategy         Strategy
	Seed             int64
	Deterministic    bool
	MoveToFront      bool
	CheckCertificate bool
	Observer         clarkson.Observer
	Logger           *slog.Logger
	Metrics          *metrics.Collectors
}

// Option represents a functional option for configuring a Solver.
type Option func(*Options)

// DefaultOptions returns the defaults:
//   - Strategy:         ClarksonSeidel.
//   - Deterministic:    false (clock-seeded).
//   - MoveToFront:      false.
//   - CheckCertificate: false.
//   - Observer, Logger, Metrics: nil.
func DefaultOptions() Options {
	return Options{Strategy: ClarksonSeidel}
}

// WithStrategy selects the solver pipeline.
func WithStrategy(s Strategy) Option {
	return func(o *Options) { o.Strategy = s }
}

// WithSeed makes the solve reproducible.
func WithSeed(seed int64) Option {
	return func(o *Options) {
		o.Seed = seed
		o.Deterministic = true
	}
}

// WithMoveToFront toggles Seidel's move-to-front variant.
func WithMoveToFront(on bool) Option {
	return func(o *Options) { o.MoveToFront = on }
}

// WithCertificateCheck verifies every result before returning it.
func WithCertificateCheck(on bool) Option {
	return func(o *Options) { o.CheckCertificate = on }
}

// WithObserver installs a Clarkson per-round hook.
func WithObserver(obs clarkson.Observer) Option {
	return func(o *Options) { o.Observer = obs }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// WithMetrics records solve and round metrics on m.
func WithMetrics(m *metrics.Collectors) Option {
	return func(o *Options) { o.Metrics = m }
}
