package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/roach88/stabdecomp/internal/ir"
)

// Predicate filters archived runs.
//
// This is a sealed interface: only Equals, AtLeast and And implement it.
// Predicates compile to parameterized SQL; values are never interpolated.
type Predicate interface {
	predicateNode()
}

// Equals matches runs whose column equals a literal value.
type Equals struct {
	Column string
	Value  ir.IRValue
}

func (Equals) predicateNode() {}

// AtLeast matches runs whose integer column is >= Value.
type AtLeast struct {
	Column string
	Value  int64
}

func (AtLeast) predicateNode() {}

// And matches runs satisfying every predicate. An empty And matches all runs.
type And struct {
	Predicates []Predicate
}

func (And) predicateNode() {}

// filterColumns lists the runs columns a predicate may reference, mapped to
// whether the column holds an integer.
var filterColumns = map[string]bool{
	"id":           false,
	"label":        false,
	"diagram_hash": false,
	"max_terms":    false,
	"t_count":      true,
	"terms":        true,
	"incomplete":   true,
}

// compileRunQuery compiles a predicate to a SELECT over runs.
// Every query ends with the archive's stable order: seq, then id.
func compileRunQuery(p Predicate) (string, []any, error) {
	where, params, err := compilePredicate(p)
	if err != nil {
		return "", nil, err
	}
	sql := "SELECT " + runColumns + " FROM runs"
	if where != "" {
		sql += " WHERE " + where
	}
	sql += " ORDER BY seq ASC, id COLLATE BINARY ASC"
	return sql, params, nil
}

// compilePredicate returns the WHERE fragment for p, or "" for no filter.
func compilePredicate(p Predicate) (string, []any, error) {
	switch pred := p.(type) {
	case nil:
		return "", nil, nil
	case Equals:
		isInt, err := checkColumn(pred.Column)
		if err != nil {
			return "", nil, err
		}
		param, err := irValueToParam(pred.Value, isInt)
		if err != nil {
			return "", nil, fmt.Errorf("column %s: %w", pred.Column, err)
		}
		return pred.Column + " = ?", []any{param}, nil
	case AtLeast:
		isInt, err := checkColumn(pred.Column)
		if err != nil {
			return "", nil, err
		}
		if !isInt {
			return "", nil, fmt.Errorf("column %s is not an integer column", pred.Column)
		}
		return pred.Column + " >= ?", []any{pred.Value}, nil
	case And:
		var (
			parts  []string
			params []any
		)
		for _, sub := range pred.Predicates {
			sql, subParams, err := compilePredicate(sub)
			if err != nil {
				return "", nil, err
			}
			if sql == "" {
				continue
			}
			parts = append(parts, sql)
			params = append(params, subParams...)
		}
		return strings.Join(parts, " AND "), params, nil
	default:
		return "", nil, fmt.Errorf("unsupported predicate type: %T", p)
	}
}

func checkColumn(col string) (bool, error) {
	isInt, ok := filterColumns[col]
	if !ok {
		return false, fmt.Errorf("unknown run column %q", col)
	}
	return isInt, nil
}

// irValueToParam converts a literal to a SQL parameter of the column's kind.
func irValueToParam(v ir.IRValue, isInt bool) (any, error) {
	switch val := v.(type) {
	case ir.IRString:
		if isInt {
			return nil, fmt.Errorf("string value for integer column")
		}
		return string(val), nil
	case ir.IRInt:
		if !isInt {
			return nil, fmt.Errorf("integer value for text column")
		}
		return int64(val), nil
	default:
		return nil, fmt.Errorf("unsupported value type %T", v)
	}
}

// FindRuns returns the archived runs matching p in archive order.
// A nil predicate matches every run.
func (s *Store) FindRuns(ctx context.Context, p Predicate) ([]ir.RunRecord, error) {
	query, params, err := compileRunQuery(p)
	if err != nil {
		return nil, fmt.Errorf("compile run filter: %w", err)
	}
	return s.queryRuns(ctx, query, params...)
}
