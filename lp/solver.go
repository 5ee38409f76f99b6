// SPDX-License-Identifier: MIT

package lp

// Solver is the one capability the Clarkson reduction and the dispatcher rely
// on: take an instance, return a self-certifying Result. A Solver that draws
// randomness owns its random source and is not safe for concurrent use.
type Solver interface {
	Solve(Instance) Result
}

// SolverFunc adapts a plain function to Solver.
type SolverFunc func(Instance) Result

// Solve calls f(in).
func (f SolverFunc) Solve(in Instance) Result { return f(in) }
