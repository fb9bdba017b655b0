package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/stabdecomp/internal/ir"
	"github.com/roach88/stabdecomp/internal/store"
)

// RunsOptions holds flags for the runs command.
type RunsOptions struct {
	*RootOptions
	Database   string
	Terms      string // run id whose terms to list
	Label      string
	Diagram    string // diagram hash
	MinTerms   int64
	Incomplete bool
}

// RunSummary is one archived run as listed by the runs command.
type RunSummary struct {
	ID          string       `json:"id"`
	Seq         int64        `json:"seq"`
	Label       string       `json:"label,omitempty"`
	DiagramHash string       `json:"diagram_hash"`
	TCount      int          `json:"t_count"`
	MaxTerms    string       `json:"max_terms"`
	Terms       int          `json:"terms"`
	Incomplete  int          `json:"incomplete"`
	Scalar      ir.ScalarDoc `json:"scalar"`
}

// TermSummary is one saved terminal diagram of a run.
type TermSummary struct {
	Seq         int64        `json:"seq"`
	DiagramHash string       `json:"diagram_hash"`
	Vertices    int          `json:"vertices"`
	Edges       int          `json:"edges"`
	Scalar      ir.ScalarDoc `json:"scalar"`
}

// NewRunsCommand creates the runs command.
func NewRunsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List archived runs",
		Long: `List the runs stored in a SQLite archive in the order they were written,
or with --terms the saved terminal diagrams of one run. Filters combine.

Examples:
  stabdecomp runs --db runs.db
  stabdecomp runs --db runs.db --label nightly --min-terms 100
  stabdecomp runs --db runs.db --terms 0190f3a2-...`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRuns(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (defaults to archive.path)")
	cmd.Flags().StringVar(&opts.Terms, "terms", "", "list the saved terms of this run id")
	cmd.Flags().StringVar(&opts.Label, "label", "", "only runs with this label")
	cmd.Flags().StringVar(&opts.Diagram, "diagram", "", "only runs of the diagram with this hash")
	cmd.Flags().Int64Var(&opts.MinTerms, "min-terms", 0, "only runs with at least this many terms")
	cmd.Flags().BoolVar(&opts.Incomplete, "incomplete", false, "only runs with incomplete terms")

	return cmd
}

func runRuns(opts *RunsOptions, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	db := opts.Database
	if db == "" {
		db = opts.config().Archive.Path
	}
	if db == "" {
		return f.Fail(ExitCommandError, CodeArchive, "no archive: pass --db or set archive.path", nil)
	}

	st, err := store.Open(db)
	if err != nil {
		return f.Fail(ExitCommandError, CodeArchive, "failed to open archive", err)
	}
	defer st.Close()

	ctx := cmd.Context()
	if opts.Terms != "" {
		if _, err := st.ReadRun(ctx, opts.Terms); err != nil {
			if errors.Is(err, store.ErrRunNotFound) {
				return f.Fail(ExitCommandError, CodeArchive, fmt.Sprintf("run %s not found", opts.Terms), err)
			}
			return f.Fail(ExitCommandError, CodeArchive, "failed to read run", err)
		}
		terms, err := st.ReadTerms(ctx, opts.Terms)
		if err != nil {
			return f.Fail(ExitCommandError, CodeArchive, "failed to read terms", err)
		}
		out := make([]TermSummary, len(terms))
		for i, t := range terms {
			out[i] = summarizeTerm(t)
		}
		return f.Emit(out, func(w io.Writer) { writeTermsText(w, opts.Terms, out) })
	}

	runs, err := st.FindRuns(ctx, opts.filter())
	if err != nil {
		return f.Fail(ExitCommandError, CodeArchive, "failed to list runs", err)
	}
	out := make([]RunSummary, len(runs))
	for i, r := range runs {
		out[i] = summarizeRun(r)
	}
	return f.Emit(out, func(w io.Writer) { writeRunsText(w, out) })
}

// filter builds the store predicate for the filter flags.
func (o *RunsOptions) filter() store.Predicate {
	var preds []store.Predicate
	if o.Label != "" {
		preds = append(preds, store.Equals{Column: "label", Value: ir.IRString(o.Label)})
	}
	if o.Diagram != "" {
		preds = append(preds, store.Equals{Column: "diagram_hash", Value: ir.IRString(o.Diagram)})
	}
	if o.MinTerms > 0 {
		preds = append(preds, store.AtLeast{Column: "terms", Value: o.MinTerms})
	}
	if o.Incomplete {
		preds = append(preds, store.AtLeast{Column: "incomplete", Value: 1})
	}
	return store.And{Predicates: preds}
}

func summarizeRun(r ir.RunRecord) RunSummary {
	return RunSummary{
		ID:          r.ID,
		Seq:         r.Seq,
		Label:       r.Label,
		DiagramHash: r.DiagramHash,
		TCount:      r.TCount,
		MaxTerms:    r.MaxTerms,
		Terms:       r.Terms,
		Incomplete:  r.Incomplete,
		Scalar:      r.Scalar,
	}
}

func summarizeTerm(t ir.TermRecord) TermSummary {
	s := TermSummary{
		Seq:         t.Seq,
		DiagramHash: t.DiagramHash,
		Vertices:    len(t.Diagram.Vertices),
		Edges:       len(t.Diagram.Edges),
	}
	if t.Diagram.Scalar != nil {
		s.Scalar = *t.Diagram.Scalar
	} else {
		s.Scalar = ir.ScalarDoc{Coeffs: [4]int64{1, 0, 0, 0}}
	}
	return s
}

func writeRunsText(w io.Writer, runs []RunSummary) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs archived.")
		return
	}
	for _, r := range runs {
		label := r.Label
		if label == "" {
			label = "-"
		}
		fmt.Fprintf(w, "%4d  %s  %-16s  diagram %s  t=%d  terms %d/%s",
			r.Seq, r.ID, label, shortHash(r.DiagramHash), r.TCount, r.Terms, r.MaxTerms)
		if r.Incomplete > 0 {
			fmt.Fprintf(w, "  incomplete %d", r.Incomplete)
		}
		fmt.Fprintln(w)
	}
}

func writeTermsText(w io.Writer, runID string, terms []TermSummary) {
	if len(terms) == 0 {
		fmt.Fprintf(w, "Run %s has no saved terms.\n", runID)
		return
	}
	for _, t := range terms {
		fmt.Fprintf(w, "%4d  %s  %d vertices  %d edges  scalar %s\n",
			t.Seq, shortHash(t.DiagramHash), t.Vertices, t.Edges, formatScalarDoc(t.Scalar))
	}
}
