package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Column struct {
	Table    string `json:"table"`
	Column   string `json:"column"`
	DataType string `json:"data_type"`
}

// ListDatabases returns the names of all non-template databases.
func ListDatabases(ctx context.Context, pool *pgxpool.Pool) ([]string, error) {
	rows, err := pool.Query(ctx, QueryDatabases)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

// ListColumns returns the public-schema column catalog, ordered by table and
// ordinal position.
func ListColumns(ctx context.Context, pool *pgxpool.Pool) ([]Column, error) {
	rows, err := pool.Query(ctx, QueryColumns)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var cols []Column
	for rows.Next() {
		var c Column
		if err := rows.Scan(&c.Table, &c.Column, &c.DataType); err != nil {
			return nil, err
		}
		cols = append(cols, c)
	}
	return cols, rows.Err()
}

// TableCount returns the number of base tables in the public schema.
func TableCount(ctx context.Context, pool *pgxpool.Pool) (int64, error) {
	var n int64
	if err := pool.QueryRow(ctx, QueryTableCount).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// ServerVersion returns the version() string of the connected server.
func ServerVersion(ctx context.Context, pool *pgxpool.Pool) (string, error) {
	var v string
	if err := pool.QueryRow(ctx, QueryServerVersion).Scan(&v); err != nil {
		return "", err
	}
	return v, nil
}
