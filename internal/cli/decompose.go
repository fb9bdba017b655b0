package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/stabdecomp/internal/diagramfile"
	"github.com/roach88/stabdecomp/internal/ir"
	"github.com/roach88/stabdecomp/internal/runner"
	"github.com/roach88/stabdecomp/internal/scalar"
	"github.com/roach88/stabdecomp/internal/store"
	"github.com/roach88/stabdecomp/internal/zx"
)

// DecomposeOptions holds flags for the decompose command.
type DecomposeOptions struct {
	*RootOptions
	Simplify      string
	RandomT       bool
	Seed          uint64
	ParallelDepth int
	Workers       int
	MaxSteps      int
	Save          bool
	Database      string
	Label         string

	// IDGenerator allows overriding the run id generator (for testing).
	// If nil, defaults to store.UUIDv7Generator.
	IDGenerator store.IDGenerator
}

// DecomposeResult is the output of the decompose command.
type DecomposeResult struct {
	Diagram     string       `json:"diagram"`
	DiagramHash string       `json:"diagram_hash"`
	TCount      int          `json:"t_count"`
	MaxTerms    string       `json:"max_terms"`
	Terms       int          `json:"terms"`
	Incomplete  int          `json:"incomplete"`
	Saved       int          `json:"saved"`
	Scalar      ir.ScalarDoc `json:"scalar"`
	Approx      string       `json:"approx"`
	RunID       string       `json:"run_id,omitempty"`
	ElapsedMS   int64        `json:"elapsed_ms"`
}

// NewDecomposeCommand creates the decompose command.
func NewDecomposeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DecomposeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "decompose <diagram>",
		Short: "Decompose a diagram into stabilizer terms",
		Long: `Decompose a ZX diagram completely and print the run statistics.

Flags override the decompose section of the config file. With --db the run
is archived; with --save its terminal diagrams are archived too.

Exit codes:
  0 - Decomposition finished
  2 - Command error (unreadable diagram, bad options, archive errors)

Examples:
  stabdecomp decompose circuit.zxt
  stabdecomp decompose circuit.zxt --random-t --seed 7
  stabdecomp decompose circuit.yaml --parallel-depth 2 --workers 8
  stabdecomp decompose circuit.zxt --save --db runs.db --label nightly`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecompose(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Simplify, "simp", "full", "simplifier applied to each term (full|none)")
	cmd.Flags().BoolVar(&opts.RandomT, "random-t", false, "pick T-vertices at random")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 1, "seed for --random-t")
	cmd.Flags().IntVar(&opts.ParallelDepth, "parallel-depth", 0, "breadth-first depth before forking (0 = sequential)")
	cmd.Flags().IntVar(&opts.Workers, "workers", 0, "parallel workers (0 = GOMAXPROCS)")
	cmd.Flags().IntVar(&opts.MaxSteps, "max-steps", 0, "fail after this many rewrite steps per worker unit (0 = unlimited)")
	cmd.Flags().BoolVar(&opts.Save, "save", false, "keep terminal diagrams")
	cmd.Flags().StringVar(&opts.Database, "db", "", "archive the run to this SQLite database")
	cmd.Flags().StringVar(&opts.Label, "label", "", "label stored with the archived run")

	return cmd
}

// runOptions merges config values with the flags the user set.
func (o *DecomposeOptions) runOptions(cmd *cobra.Command) ir.RunOptions {
	ro := runner.OptionsFromConfig(o.config().Decompose)
	flags := cmd.Flags()
	if flags.Changed("simp") {
		ro.Simplify = o.Simplify
	}
	if flags.Changed("random-t") {
		ro.RandomT = o.RandomT
	}
	if flags.Changed("seed") {
		ro.Seed = int64(o.Seed)
	}
	if flags.Changed("parallel-depth") {
		ro.ParallelDepth = o.ParallelDepth
	}
	if flags.Changed("workers") {
		ro.Workers = o.Workers
	}
	if flags.Changed("max-steps") {
		ro.MaxSteps = o.MaxSteps
	}
	if flags.Changed("save") {
		ro.Save = o.Save
	}
	return ro
}

// database returns the archive path from --db or archive.path.
func (o *DecomposeOptions) database(cmd *cobra.Command) string {
	if cmd.Flags().Changed("db") {
		return o.Database
	}
	return o.config().Archive.Path
}

func runDecompose(opts *DecomposeOptions, path string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	g, doc, err := diagramfile.Load(path)
	if err != nil {
		return f.Fail(ExitCommandError, CodeLoad, "failed to load diagram", err)
	}

	ro := opts.runOptions(cmd)
	f.VerboseLog("decomposing %s (t-count %d)", path, g.TCount())
	res, err := runner.Run(g, doc, ro)
	if err != nil {
		return f.Fail(ExitCommandError, CodeDecompose, "decomposition failed", err)
	}

	out := newDecomposeResult(path, g, res)
	if db := opts.database(cmd); db != "" {
		gen := opts.IDGenerator
		if gen == nil {
			gen = store.UUIDv7Generator{}
		}
		stored, err := archiveRun(cmd.Context(), db, res, gen.Generate(), opts.Label)
		if err != nil {
			return f.Fail(ExitCommandError, CodeArchive, "failed to archive run", err)
		}
		out.RunID = stored.ID
		f.VerboseLog("archived run %s (seq %d) to %s", stored.ID, stored.Seq, db)
	}

	return f.Emit(out, func(w io.Writer) { writeDecomposeText(w, out) })
}

func newDecomposeResult(path string, g *zx.Diagram, res *runner.Result) DecomposeResult {
	rec := res.Record
	return DecomposeResult{
		Diagram:     path,
		DiagramHash: rec.DiagramHash,
		TCount:      g.TCount(),
		MaxTerms:    rec.MaxTerms,
		Terms:       rec.Terms,
		Incomplete:  rec.Incomplete,
		Saved:       len(res.Terms),
		Scalar:      rec.Scalar,
		Approx:      formatApprox(res.Decomposer.Scalar()),
		ElapsedMS:   res.Elapsed.Milliseconds(),
	}
}

// archiveRun writes a finished run to the SQLite archive at path.
func archiveRun(ctx context.Context, path string, res *runner.Result, id, label string) (ir.RunRecord, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	st, err := store.Open(path)
	if err != nil {
		return ir.RunRecord{}, err
	}
	defer st.Close()

	rec := res.Record
	rec.ID = id
	rec.Label = label
	return st.WriteRun(ctx, rec, res.Terms)
}

func writeDecomposeText(w io.Writer, r DecomposeResult) {
	fmt.Fprintf(w, "diagram:    %s (%s)\n", r.Diagram, shortHash(r.DiagramHash))
	fmt.Fprintf(w, "t-count:    %d\n", r.TCount)
	fmt.Fprintf(w, "max terms:  %s\n", r.MaxTerms)
	fmt.Fprintf(w, "terms:      %d\n", r.Terms)
	if r.Incomplete > 0 {
		fmt.Fprintf(w, "incomplete: %d\n", r.Incomplete)
	}
	if r.Saved > 0 {
		fmt.Fprintf(w, "saved:      %d\n", r.Saved)
	}
	fmt.Fprintf(w, "scalar:     %s ~ %s\n", formatScalarDoc(r.Scalar), r.Approx)
	if r.RunID != "" {
		fmt.Fprintf(w, "run id:     %s\n", r.RunID)
	}
}

func formatScalarDoc(s ir.ScalarDoc) string {
	return diagramfile.DecodeScalar(s).String()
}

// formatApprox renders a scalar as a floating point complex number.
func formatApprox(s scalar.Scalar) string {
	z := s.Complex128()
	return fmt.Sprintf("%.6g%+.6gi", real(z), imag(z))
}

func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}
