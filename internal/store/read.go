package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/stabdecomp/internal/ir"
)

// ErrRunNotFound is returned by ReadRun for an unknown id.
var ErrRunNotFound = errors.New("run not found")

const runColumns = `id, seq, label, diagram_hash, diagram, t_count, max_terms, terms, incomplete, scalar, options`

// rowScanner is the part of *sql.Row and *sql.Rows that scanRun needs.
type rowScanner interface {
	Scan(dest ...any) error
}

// ReadRun retrieves a single run by id.
// Returns ErrRunNotFound (wrapped) if the id is unknown.
func (s *Store) ReadRun(ctx context.Context, id string) (ir.RunRecord, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return ir.RunRecord{}, fmt.Errorf("read run %s: %w", id, ErrRunNotFound)
	}
	if err != nil {
		return ir.RunRecord{}, fmt.Errorf("read run %s: %w", id, err)
	}
	return run, nil
}

// ListRuns returns every archived run.
// Results are ordered deterministically: ORDER BY seq ASC, id ASC COLLATE BINARY.
//
// Returns an empty slice (not nil) if the archive is empty.
func (s *Store) ListRuns(ctx context.Context) ([]ir.RunRecord, error) {
	return s.FindRuns(ctx, nil)
}

// FindRunsByDiagram returns the runs whose input hashed to diagramHash,
// oldest first.
func (s *Store) FindRunsByDiagram(ctx context.Context, diagramHash string) ([]ir.RunRecord, error) {
	return s.FindRuns(ctx, Equals{Column: "diagram_hash", Value: ir.IRString(diagramHash)})
}

// ReadTerms returns the saved terminal diagrams of a run in the order they
// were produced. Returns an empty slice for unknown runs or runs archived
// without saving.
func (s *Store) ReadTerms(ctx context.Context, runID string) ([]ir.TermRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, seq, diagram_hash, diagram
		FROM terms
		WHERE run_id = ?
		ORDER BY seq ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query terms: %w", err)
	}
	defer rows.Close()

	terms := []ir.TermRecord{}
	for rows.Next() {
		var (
			t           ir.TermRecord
			diagramJSON string
		)
		if err := rows.Scan(&t.RunID, &t.Seq, &t.DiagramHash, &diagramJSON); err != nil {
			return nil, fmt.Errorf("scan term: %w", err)
		}
		if err := unmarshalColumn("term", diagramJSON, &t.Diagram); err != nil {
			return nil, err
		}
		terms = append(terms, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate terms: %w", err)
	}
	return terms, nil
}

// CountTerms returns how many terminal diagrams are stored for a run.
func (s *Store) CountTerms(ctx context.Context, runID string) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM terms WHERE run_id = ?`, runID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count terms: %w", err)
	}
	return n, nil
}

func (s *Store) queryRuns(ctx context.Context, query string, args ...any) ([]ir.RunRecord, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []ir.RunRecord{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

func scanRun(row rowScanner) (ir.RunRecord, error) {
	var (
		run                                ir.RunRecord
		inputJSON, scalarJSON, optionsJSON string
	)
	if err := row.Scan(
		&run.ID, &run.Seq, &run.Label, &run.DiagramHash, &inputJSON, &run.TCount,
		&run.MaxTerms, &run.Terms, &run.Incomplete, &scalarJSON, &optionsJSON,
	); err != nil {
		return ir.RunRecord{}, err
	}
	if err := unmarshalColumn("input", inputJSON, &run.Input); err != nil {
		return ir.RunRecord{}, err
	}
	if err := unmarshalColumn("scalar", scalarJSON, &run.Scalar); err != nil {
		return ir.RunRecord{}, err
	}
	if err := unmarshalColumn("options", optionsJSON, &run.Options); err != nil {
		return ir.RunRecord{}, err
	}
	return run, nil
}
