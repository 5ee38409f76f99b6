// Package exactlp solves linear programs exactly, with arbitrary-precision
// integer arithmetic end to end and no floating point on the solving path.
//
// What is in the module?
//
//	• vec, fraction:   integer vectors and extended rationals (±∞ included)
//	• lp:              Instance/Result model, certificates, text and fixture codecs
//	• seidel:          randomized incremental solver, optional move-to-front
//	• simplex:         fraction-free tableau simplex with steepest-edge pricing
//	• clarkson:        two-level sampling reduction over any lp.Solver
//	• lpsolve:         one entry point for the four strategies
//	• lpgen:           random, annulus and hand-checked instances
//	• metrics:         Prometheus collectors for solves and sampling rounds
//	• cmd/lpsolve:     CLI to solve, check and generate instances
//
// Canonical form:
//
//	maximize c·x  subject to  A·(x | 1) ≤ 0
//
// Every row carries its homogeneous constant last; a finite optimum is a
// homogeneous point with positive last coordinate, an unbounded direction a
// ray with last coordinate 0.
//
// Quick start:
//
//	in := lp.MustInstance(rows, c)
//	res, err := lpsolve.Solve(in, lpsolve.WithSeed(1))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Status(), res.Objective())
//
// Randomized parts take an explicit seed; equal seeds give identical runs.
package exactlp
