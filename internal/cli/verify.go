package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/stabdecomp/internal/diagramfile"
	"github.com/roach88/stabdecomp/internal/runner"
	"github.com/roach88/stabdecomp/internal/tensor"
)

// VerifyResult is the output of the verify command.
type VerifyResult struct {
	Diagram    string `json:"diagram"`
	TCount     int    `json:"t_count"`
	Terms      int    `json:"terms"`
	Incomplete int    `json:"incomplete"`
	Match      bool   `json:"match"`
}

// NewVerifyCommand creates the verify command.
func NewVerifyCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DecomposeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "verify <diagram>",
		Short: "Check a decomposition against exact tensor evaluation",
		Long: `Decompose a diagram with term saving on, then compare the sum of the
terminal diagrams' tensors with the tensor of the input. Both sides are
evaluated exactly, so only small diagrams can be verified.

Exit codes:
  0 - The terms sum to the input
  1 - Tensor mismatch
  2 - Command error (unreadable diagram, diagram too large to evaluate)

Example:
  stabdecomp verify circuit.zxt --random-t --seed 3`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Simplify, "simp", "full", "simplifier applied to each term (full|none)")
	cmd.Flags().BoolVar(&opts.RandomT, "random-t", false, "pick T-vertices at random")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 1, "seed for --random-t")
	cmd.Flags().IntVar(&opts.ParallelDepth, "parallel-depth", 0, "breadth-first depth before forking (0 = sequential)")
	cmd.Flags().IntVar(&opts.Workers, "workers", 0, "parallel workers (0 = GOMAXPROCS)")

	return cmd
}

func runVerify(opts *DecomposeOptions, path string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	g, doc, err := diagramfile.Load(path)
	if err != nil {
		return f.Fail(ExitCommandError, CodeLoad, "failed to load diagram", err)
	}
	want, err := tensor.Evaluate(g)
	if err != nil {
		return f.Fail(ExitCommandError, CodeDecompose, "failed to evaluate input", err)
	}

	ro := opts.runOptions(cmd)
	ro.Save = true
	res, err := runner.Run(g, doc, ro)
	if err != nil {
		return f.Fail(ExitCommandError, CodeDecompose, "decomposition failed", err)
	}
	have, err := tensor.Sum(res.Decomposer.Done())
	if err != nil {
		return f.Fail(ExitCommandError, CodeDecompose, "failed to evaluate terms", err)
	}

	out := VerifyResult{
		Diagram:    path,
		TCount:     g.TCount(),
		Terms:      res.Record.Terms,
		Incomplete: res.Record.Incomplete,
		Match:      want.Equal(have),
	}
	if !out.Match {
		if f.Format == "json" {
			if err := f.Error(CodeTensorMismatch, "terms do not sum to the input", out); err != nil {
				return err
			}
		} else {
			fmt.Fprintf(f.Writer, "✗ %s: %d terms do not sum to the input\n", out.Diagram, out.Terms)
		}
		return NewExitError(ExitFailure, "tensor mismatch")
	}

	return f.Emit(out, func(w io.Writer) {
		fmt.Fprintf(w, "✓ %s: %d terms sum to the input\n", out.Diagram, out.Terms)
	})
}
