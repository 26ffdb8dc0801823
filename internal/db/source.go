package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/vvka-141/qload/pkg/qload"
)

// Querier is the part of *pgxpool.Pool the Source needs.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Source reads single-column query results from PostgreSQL.
//
// Queries run over the simple protocol, so every value arrives in its
// PostgreSQL text form regardless of column type. NULL becomes "".
type Source struct {
	db Querier
}

// NewSource creates a Source over db (usually a *pgxpool.Pool).
func NewSource(db Querier) *Source {
	return &Source{db: db}
}

// FetchColumn runs sql and returns the whole column in result order.
func (s *Source) FetchColumn(ctx context.Context, sql string) ([]string, error) {
	var values []string
	err := s.StreamColumn(ctx, sql, func(v string) error {
		values = append(values, v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return values, nil
}

// StreamColumn runs sql and calls fn for every value as rows are read off
// the wire. An error from fn stops iteration and is returned unwrapped.
func (s *Source) StreamColumn(ctx context.Context, sql string, fn func(value string) error) error {
	rows, err := s.db.Query(ctx, sql, pgx.QueryExecModeSimpleProtocol)
	if err != nil {
		return queryError(sql, err)
	}
	defer rows.Close()

	checked := false
	for rows.Next() {
		if !checked {
			if err := requireSingleColumn(rows); err != nil {
				return err
			}
			checked = true
		}

		raw := rows.RawValues()
		if err := fn(string(raw[0])); err != nil {
			return err
		}
	}

	if err := rows.Err(); err != nil {
		return queryError(sql, err)
	}

	// an empty result still has to have the right shape
	if !checked {
		return requireSingleColumn(rows)
	}
	return nil
}

func requireSingleColumn(rows pgx.Rows) error {
	if n := len(rows.FieldDescriptions()); n != 1 {
		return fmt.Errorf("query must return exactly one column, got %d: %w", n, qload.ErrQueryFailed)
	}
	return nil
}

func queryError(sql string, err error) error {
	return fmt.Errorf("query %q: %w: %w", qload.TruncateSQL(sql), qload.ErrQueryFailed, err)
}

var _ qload.RowSource = (*Source)(nil)
