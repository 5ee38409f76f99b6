// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dacin21/exact-lp/lp"
	"github.com/dacin21/exact-lp/lpgen"
	"github.com/dacin21/exact-lp/lpsolve"
)

// genFlags are shared by the gen subcommands.
type genFlags struct {
	seed  int64
	coeff int64
	out   string
	solve bool
}

func (g *genFlags) register(cmd *cobra.Command) {
	cmd.Flags().Int64Var(&g.seed, "gen-seed", 1, "generator seed")
	cmd.Flags().Int64Var(&g.coeff, "coeff", 10, "coefficients are drawn from [-coeff, coeff]")
	cmd.Flags().StringVarP(&g.out, "out", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&g.solve, "solve", false, "solve the instance and write a fixture")
}

func (g *genFlags) options() ([]lpgen.Option, error) {
	if g.coeff <= 0 {
		return nil, fmt.Errorf("--coeff must be > 0, got %d", g.coeff)
	}
	return []lpgen.Option{lpgen.WithSeed(g.seed), lpgen.WithCoeffRange(g.coeff)}, nil
}

func (a *app) genCmd() *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "gen",
		Short: "Generate random instances or fixtures",
	}
	cmd.AddCommand(a.genRandomCmd(), a.genAnnulusCmd())

	return cmd
}

func (a *app) genRandomCmd() *cobra.Command {
	var (
		g        genFlags
		n, d     int
		box      int64
		feasible bool
	)
	var cmd = &cobra.Command{
		Use:   "random",
		Short: "Random LP with integer coefficients",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := g.options()
			if err != nil {
				return err
			}
			if box < 0 {
				return fmt.Errorf("--box must be >= 0, got %d", box)
			}
			opts = append(opts, lpgen.WithBox(box), lpgen.WithFeasible(feasible))
			in, err := lpgen.Random(n, d, opts...)
			if err != nil {
				return err
			}
			return a.emit(cmd, &g, in)
		},
	}
	g.register(cmd)
	cmd.Flags().IntVar(&n, "n", 100, "number of random rows")
	cmd.Flags().IntVar(&d, "d", 2, "dimension")
	cmd.Flags().Int64Var(&box, "box", 0, "add -box <= x_i <= box rows (0 = none)")
	cmd.Flags().BoolVar(&feasible, "feasible", false, "make the rows feasible by construction")

	return cmd
}

func (a *app) genAnnulusCmd() *cobra.Command {
	var (
		g           genFlags
		points, dim int
	)
	var cmd = &cobra.Command{
		Use:   "annulus",
		Short: "Smallest enclosing annulus LP of random points",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := g.options()
			if err != nil {
				return err
			}
			pts, err := lpgen.RandomPoints(points, dim, opts...)
			if err != nil {
				return err
			}
			in, err := lpgen.Annulus(pts)
			if err != nil {
				return err
			}
			return a.emit(cmd, &g, in)
		},
	}
	g.register(cmd)
	cmd.Flags().IntVar(&points, "points", 100, "number of points")
	cmd.Flags().IntVar(&dim, "dim", 2, "point dimension")

	return cmd
}

// emit writes in, or its solved fixture, to --out or stdout.
func (a *app) emit(cmd *cobra.Command, g *genFlags, in lp.Instance) (err error) {
	var w io.Writer = cmd.OutOrStdout()
	if g.out != "" {
		f, cerr := os.Create(g.out)
		if cerr != nil {
			return cerr
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
		w = f
	}

	if !g.solve {
		return lp.WriteInstance(w, in)
	}
	res, err := lpsolve.SolveContext(cmd.Context(), in, a.solveOptions(a.cfg.Seed, a.cfg.Seed != 0)...)
	if err != nil {
		return err
	}
	a.logger.Info("generated fixture", "rows", in.N(), "dim", in.D(), "status", res.Status().String())

	return lp.WriteFixture(w, lp.FixtureFromResult(in, res))
}
