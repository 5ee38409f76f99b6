// SPDX-License-Identifier: MIT

package main

import (
	"bufio"
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dacin21/exact-lp/lp"
	"github.com/dacin21/exact-lp/lpsolve"
)

func (a *app) solveCmd() *cobra.Command {
	var asFixture bool
	var cmd = &cobra.Command{
		Use:   "solve FILE|-",
		Short: "Solve one instance and print the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := openInput(cmd, args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			in, err := lp.ReadInstance(f)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}

			res, err := lpsolve.SolveContext(cmd.Context(), in, a.solveOptions(a.cfg.Seed, a.cfg.Seed != 0)...)
			if err != nil {
				return err
			}
			if asFixture {
				return lp.WriteFixture(cmd.OutOrStdout(), lp.FixtureFromResult(in, res))
			}
			return writeResult(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().BoolVar(&asFixture, "fixture", false, "print the instance and result as a fixture")

	return cmd
}

// writeResult prints a result as "key value" lines.
func writeResult(w io.Writer, res lp.Result) error {
	var bw = bufio.NewWriter(w)
	fmt.Fprintf(bw, "status %s\n", res.Status())
	fmt.Fprintf(bw, "objective %s\n", res.Objective())
	switch res.Status() {
	case lp.Optimal:
		fmt.Fprintf(bw, "x %s\n", joinInts(res.X()))
		var pt = res.Point()
		var parts = make([]string, len(pt))
		for i, q := range pt {
			parts[i] = q.RatString()
		}
		fmt.Fprintf(bw, "point %s\n", strings.Join(parts, " "))
	case lp.Unbounded:
		fmt.Fprintf(bw, "x %s\n", joinInts(res.X()))
		fmt.Fprintf(bw, "ray %s\n", joinInts(res.Ray()))
	}

	return bw.Flush()
}

func joinInts(v []*big.Int) string {
	var parts = make([]string, len(v))
	for i, x := range v {
		parts[i] = x.String()
	}
	return strings.Join(parts, " ")
}
