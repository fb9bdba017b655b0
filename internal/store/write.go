package store

import (
	"context"
	"fmt"

	"github.com/roach88/stabdecomp/internal/ir"
)

// WriteRun archives a run and its saved terminal diagrams in one
// transaction. The store assigns the run's seq (one past the highest stored
// seq) and computes the term hashes; the returned record carries the seq.
//
// run.ID must be set by the caller, usually from an IDGenerator. Writing the
// same ID twice is an error.
func (s *Store) WriteRun(ctx context.Context, run ir.RunRecord, terms []ir.DiagramDoc) (ir.RunRecord, error) {
	if run.ID == "" {
		return run, fmt.Errorf("write run: empty id")
	}

	inputJSON, err := marshalCanonical("input", run.Input.IRValue())
	if err != nil {
		return run, fmt.Errorf("write run: %w", err)
	}
	scalarJSON, err := marshalCanonical("scalar", run.Scalar.IRValue())
	if err != nil {
		return run, fmt.Errorf("write run: %w", err)
	}
	optionsJSON, err := marshalCanonical("options", run.Options.IRValue())
	if err != nil {
		return run, fmt.Errorf("write run: %w", err)
	}
	resultHash, err := ir.ResultHash(run)
	if err != nil {
		return run, fmt.Errorf("write run: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return run, fmt.Errorf("write run: begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM runs`).Scan(&run.Seq); err != nil {
		return run, fmt.Errorf("write run: next seq: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs
		(id, seq, label, diagram_hash, diagram, t_count, max_terms, terms, incomplete,
		 scalar, options, result_hash, engine_version, ir_version)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		run.ID,
		run.Seq,
		run.Label,
		run.DiagramHash,
		inputJSON,
		run.TCount,
		run.MaxTerms,
		run.Terms,
		run.Incomplete,
		scalarJSON,
		optionsJSON,
		resultHash,
		ir.EngineVersion,
		ir.IRVersion,
	)
	if err != nil {
		return run, fmt.Errorf("write run: insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO terms (run_id, seq, diagram_hash, diagram, scalar)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return run, fmt.Errorf("write run: prepare terms: %w", err)
	}
	defer stmt.Close()

	for i, term := range terms {
		canonical := term.IRValue()
		diagramJSON, err := marshalCanonical("term", canonical)
		if err != nil {
			return run, fmt.Errorf("write run: term %d: %w", i, err)
		}
		hash, err := ir.DiagramHash(term)
		if err != nil {
			return run, fmt.Errorf("write run: term %d: %w", i, err)
		}
		termScalarJSON, err := marshalCanonical("term scalar", canonical["scalar"])
		if err != nil {
			return run, fmt.Errorf("write run: term %d: %w", i, err)
		}
		if _, err := stmt.ExecContext(ctx, run.ID, i, hash, diagramJSON, termScalarJSON); err != nil {
			return run, fmt.Errorf("write run: insert term %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return run, fmt.Errorf("write run: commit: %w", err)
	}
	return run, nil
}

// DeleteRun removes a run and its terms. Deleting a missing run is not an
// error.
func (s *Store) DeleteRun(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete run: %w", err)
	}
	return nil
}
