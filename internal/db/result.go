package db

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// QueryResult is the structured row shape returned by query tools.
type QueryResult struct {
	Columns   []string `json:"columns"`
	Rows      [][]any  `json:"rows"`
	RowCount  int      `json:"row_count"`
	Truncated bool     `json:"truncated,omitempty"`
}

// JSON renders the result for text content alongside structured output.
func (r *QueryResult) JSON() string {
	b, err := json.Marshal(r)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// Collect runs sql inside a READ ONLY transaction and captures up to maxRows
// rows with their column names. The access mode is server-enforced, so
// statements the lexical guard misclassifies still cannot write. maxRows <= 0
// means unlimited; text values longer than maxTextBytes are cut and flag the
// result as truncated.
func Collect(ctx context.Context, pool *pgxpool.Pool, sql string, maxRows, maxTextBytes int) (*QueryResult, error) {
	tx, err := pool.BeginTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)
	rows, err := tx.Query(ctx, sql)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	cols := make([]string, len(fields))
	for i, f := range fields {
		cols[i] = string(f.Name)
	}

	res := &QueryResult{Columns: cols, Rows: [][]any{}}
	for rows.Next() {
		if maxRows > 0 && len(res.Rows) >= maxRows {
			res.Truncated = true
			break
		}
		vals, err := rows.Values()
		if err != nil {
			return nil, err
		}
		row := make([]any, len(vals))
		for i, v := range vals {
			nv, cut := truncateText(normalizeValue(v), maxTextBytes)
			if cut {
				res.Truncated = true
			}
			row[i] = nv
		}
		res.Rows = append(res.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	res.RowCount = len(res.Rows)
	return res, nil
}

// Exec runs sql inside a transaction and commits, mirroring autocommit
// semantics for DML/DDL tools. It returns the command tag text.
func Exec(ctx context.Context, pool *pgxpool.Pool, sql string) (string, error) {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer tx.Rollback(ctx)
	tag, err := tx.Exec(ctx, sql)
	if err != nil {
		return "", err
	}
	if err := tx.Commit(ctx); err != nil {
		return "", err
	}
	return tag.String(), nil
}

// truncateText caps string values at maxBytes. maxBytes <= 0 disables the cap.
func truncateText(v any, maxBytes int) (any, bool) {
	if maxBytes <= 0 {
		return v, false
	}
	s, ok := v.(string)
	if !ok || len(s) <= maxBytes {
		return v, false
	}
	return s[:maxBytes], true
}

// normalizeValue converts driver values into JSON-friendly forms.
func normalizeValue(v any) any {
	switch t := v.(type) {
	case []byte:
		return string(t)
	case time.Time:
		return t.Format(time.RFC3339Nano)
	default:
		return v
	}
}
