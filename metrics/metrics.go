// SPDX-License-Identifier: MIT
// Package metrics exposes Prometheus collectors for LP solves and Clarkson
// sampling rounds. Collectors are registered on a caller-supplied registerer,
// never on the global default, so tests and the CLI each get their own set.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/dacin21/exact-lp/clarkson"
	"github.com/dacin21/exact-lp/lp"
)

const namespace = "exactlp"

// knownStrategies bounds the strategy label's cardinality.
var knownStrategies = map[string]bool{
	"seidel":           true,
	"simplex":          true,
	"clarkson-seidel":  true,
	"clarkson-simplex": true,
}

func sanitizeStrategy(name string) string {
	if knownStrategies[name] {
		return name
	}
	return "unknown"
}

// Collectors groups every metric of one registry.
type Collectors struct {
	// solvesTotal counts finished solves.
	//
	// Labels:
	//   - strategy: dispatcher strategy (sanitized)
	//   - status: INFEASIBLE, OPTIMAL or UNBOUNDED
	solvesTotal *prometheus.CounterVec

	// solveDuration records wall time per solve.
	solveDuration *prometheus.HistogramVec

	// roundsTotal counts Clarkson rounds.
	//
	// Labels:
	//   - level: "1" or "2"
	//   - outcome: "done", "accepted" or "resampled"
	roundsTotal *prometheus.CounterVec

	// sampleRows records the sub-problem size handed down per round.
	sampleRows *prometheus.HistogramVec
}

// New creates and registers the collectors on reg.
func New(reg prometheus.Registerer) *Collectors {
	var f = promauto.With(reg)

	return &Collectors{
		solvesTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "solves_total",
				Help:      "Total LP solves by strategy and result status",
			},
			[]string{"strategy", "status"},
		),
		solveDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "solve_duration_seconds",
				Help:      "Wall time of one LP solve",
				Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 10),
			},
			[]string{"strategy"},
		),
		roundsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "clarkson",
				Name:      "rounds_total",
				Help:      "Total Clarkson sampling rounds by level and outcome",
			},
			[]string{"level", "outcome"},
		),
		sampleRows: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "clarkson",
				Name:      "sample_rows",
				Help:      "Rows handed to the next level per Clarkson round",
				Buckets:   prometheus.ExponentialBuckets(8, 2, 12),
			},
			[]string{"level"},
		),
	}
}

// ObserveSolve records one finished solve.
func (c *Collectors) ObserveSolve(strategy string, status lp.Status, elapsed time.Duration) {
	strategy = sanitizeStrategy(strategy)
	c.solvesTotal.WithLabelValues(strategy, status.String()).Inc()
	c.solveDuration.WithLabelValues(strategy).Observe(elapsed.Seconds())
}

// ObserveRound records one Clarkson round. It has the clarkson.Observer shape.
func (c *Collectors) ObserveRound(st clarkson.RoundStats) {
	var outcome = "resampled"
	switch {
	case st.Done:
		outcome = "done"
	case st.Accepted:
		outcome = "accepted"
	}
	var level = strconv.Itoa(st.Level)
	c.roundsTotal.WithLabelValues(level, outcome).Inc()
	c.sampleRows.WithLabelValues(level).Observe(float64(st.Sample))
}

// Observer returns ObserveRound as a clarkson.Observer.
func (c *Collectors) Observer() clarkson.Observer {
	return c.ObserveRound
}
