// SPDX-License-Identifier: MIT
// Package rng - explicit random sources shared by the randomized solvers.
//
// Every randomized component (row shuffling in the incremental solver, weighted
// sampling in the Clarkson reduction, instance generators) receives its own
// *rand.Rand. There is no package-level generator.
//
// Goals:
//   - Determinism: same seed ⇒ identical row orders and samples.
//   - Encapsulation: seeded sources come from FromSeed; clock-seeded ones from Clock.
//   - Independent streams: Derive splits one parent into uncorrelated children,
//     e.g. one per fixture file solved in parallel.
//
// Concurrency:
//   - math/rand.Rand is NOT goroutine-safe. Do not share a *rand.Rand across goroutines.
package rng

import (
	"math/rand"
	"time"
)

// DefaultSeed is the fixed seed used when callers pass seed==0.
const DefaultSeed int64 = 1

// FromSeed returns a deterministic *rand.Rand.
// Policy: seed==0 ⇒ DefaultSeed; otherwise the provided seed verbatim.
//
// Complexity: O(1).
func FromSeed(seed int64) *rand.Rand {
	var s = seed
	if s == 0 {
		s = DefaultSeed
	}

	return rand.New(rand.NewSource(s))
}

// Clock returns a time-seeded *rand.Rand for non-reproducible runs.
func Clock() *rand.Rand {
	return rand.New(rand.NewSource(DeriveSeed(time.Now().UnixNano(), 0)))
}

// DeriveSeed mixes a parent seed and a stream identifier into a new 64-bit seed
// with a SplitMix64-style finalizer, so nearby inputs give unrelated outputs.
//
// Complexity: O(1).
func DeriveSeed(parent int64, stream uint64) int64 {
	var x = uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31

	return int64(x)
}

// Derive creates an independent deterministic stream from base and a stream id.
// If base==nil, DefaultSeed is the parent. Otherwise base.Int63() is consumed
// once, so reusing a stream id on the same base still yields distinct children.
//
// Usage:
//   - Call during setup (not in hot loops) to create per-worker RNGs.
func Derive(base *rand.Rand, stream uint64) *rand.Rand {
	var parent int64
	if base == nil {
		parent = DefaultSeed
	} else {
		parent = base.Int63()
	}

	return rand.New(rand.NewSource(DeriveSeed(parent, stream)))
}

// ShuffleInPlace performs a Fisher–Yates shuffle of a using r.
// If r==nil, the DefaultSeed stream is used.
//
// Complexity: O(n) time, O(1) extra space.
func ShuffleInPlace[T any](a []T, r *rand.Rand) {
	var n = len(a)
	if n <= 1 {
		return
	}
	if r == nil {
		r = FromSeed(0)
	}

	var i, j int
	for i = n - 1; i > 0; i-- {
		j = r.Intn(i + 1)
		a[i], a[j] = a[j], a[i]
	}
}

// Perm returns a permutation of 0..n-1 drawn from r (n<0 is treated as 0).
//
// Complexity: O(n) time, O(n) space.
func Perm(n int, r *rand.Rand) []int {
	if n < 0 {
		n = 0
	}
	var p = make([]int, n)
	for i := range p {
		p[i] = i
	}
	ShuffleInPlace(p, r)

	return p
}
