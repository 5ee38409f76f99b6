// SPDX-License-Identifier: MIT

// Command lpsolve solves, checks and generates exact LP instances.
//
// Usage:
//
//	lpsolve solve [--fixture] FILE|-
//	lpsolve check FIXTURE...
//	lpsolve gen random  --n 1000 --d 3 --box 100 [--solve]
//	lpsolve gen annulus --points 500 --dim 2 [--solve]
//
// Configuration is read from --config (YAML), then LPSOLVE_* environment
// variables, then flags.
package main

import (
	"context"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
