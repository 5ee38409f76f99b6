package simplex

import "github.com/dacin21/exact-lp/lp"

// Phase2EnteringLabels runs phase 2 from the initial tableau of an instance
// whose origin is feasible and returns the label of every entering column.
func Phase2EnteringLabels(in lp.Instance) []int {
	var (
		tb     = newTableau(in)
		labels []int
	)
	for {
		var s = tb.entering(tb.n, true)
		if s < 0 {
			return labels
		}
		labels = append(labels, tb.nonbasic[s])
		var r = tb.leaving(s)
		if r < 0 {
			return labels
		}
		tb.pivot(s, r)
	}
}
