package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/stabdecomp/internal/diagramfile"
	"github.com/roach88/stabdecomp/internal/engine"
)

// BoundResult is the output of the bound command.
type BoundResult struct {
	Diagram  string `json:"diagram"`
	TCount   int    `json:"t_count"`
	MaxTerms string `json:"max_terms"`
}

// NewBoundCommand creates the bound command.
func NewBoundCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bound <diagram>",
		Short: "Print the T-count and term bound of a diagram",
		Long: `Print the T-count of a diagram and the upper bound on the number of
stabilizer terms a full decomposition produces. Nothing is decomposed.

Example:
  stabdecomp bound circuit.zxt --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBound(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runBound(opts *RootOptions, path string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	g, _, err := diagramfile.Load(path)
	if err != nil {
		return f.Fail(ExitCommandError, CodeLoad, "failed to load diagram", err)
	}

	out := BoundResult{
		Diagram:  path,
		TCount:   g.TCount(),
		MaxTerms: engine.New(g).MaxTerms().String(),
	}
	return f.Emit(out, func(w io.Writer) {
		fmt.Fprintf(w, "%s: t-count %d, at most %s terms\n", out.Diagram, out.TCount, out.MaxTerms)
	})
}
