// azure-postgresql-mcp: MCP server for Azure Database for PostgreSQL - Flexible Server
// SPDX-License-Identifier: MIT
//
// Parallel per-database catalog collection.

package db

import (
	"context"

	"golang.org/x/sync/errgroup"
)

type DatabaseOverview struct {
	Database   string `json:"database"`
	TableCount int64  `json:"table_count"`
	Error      string `json:"error,omitempty"`
}

// Overview gathers table counts for the given databases concurrently.
// Unreachable databases are reported inline rather than failing the whole
// call. Results come back in input order.
func Overview(ctx context.Context, mgr *Manager, databases []string) ([]DatabaseOverview, error) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	results := make([]DatabaseOverview, len(databases))
	for i, name := range databases {
		i, name := i, name
		g.Go(func() error {
			results[i] = DatabaseOverview{Database: name}
			pool, err := mgr.Pool(ctx, name)
			if err != nil {
				results[i].Error = err.Error()
				return nil
			}
			n, err := TableCount(ctx, pool)
			if err != nil {
				results[i].Error = err.Error()
				return nil
			}
			results[i].TableCount = n
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
