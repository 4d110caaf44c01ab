package tools

import (
	"context"
	"time"

	"github.com/Azure-Samples/azure-postgresql-mcp/internal/db"
	serr "github.com/Azure-Samples/azure-postgresql-mcp/internal/errors"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// GetDatabases tool

type GetDatabasesInput struct{}

type GetDatabasesOutput struct {
	Databases []string `json:"databases"`
}

func GetDatabases(ctx context.Context, deps Dependencies, input GetDatabasesInput) (*mcp.CallToolResult, GetDatabasesOutput, error) {
	names, err := ListDatabasesCached(ctx, deps)
	if err != nil {
		return callError(serr.CodeUnavailable, err.Error(), "db error"), GetDatabasesOutput{}, nil
	}
	return nil, GetDatabasesOutput{Databases: names}, nil
}

// ListDatabasesCached is shared by the tool and the databases resource.
func ListDatabasesCached(ctx context.Context, deps Dependencies) ([]string, error) {
	const key = "databases"
	if deps.Config.EnableCaching {
		if val, ok := deps.Cache.Get(key); ok {
			if names, ok := val.([]string); ok {
				return names, nil
			}
		}
	}
	pool, err := deps.Pools.Pool(ctx, "")
	if err != nil {
		return nil, err
	}
	names, err := db.ListDatabases(ctx, pool)
	if err != nil {
		return nil, err
	}
	if deps.Config.EnableCaching {
		deps.Cache.Set(key, names, time.Duration(deps.Config.CacheTTLSeconds)*time.Second)
	}
	return names, nil
}

// DatabaseOverview tool

type DatabaseOverviewInput struct {
	Databases []string `json:"databases,omitempty" jsonschema:"databases to inspect; defaults to all"`
}

type DatabaseOverviewOutput struct {
	Databases []db.DatabaseOverview `json:"databases"`
}

func Overview(ctx context.Context, deps Dependencies, input DatabaseOverviewInput) (*mcp.CallToolResult, DatabaseOverviewOutput, error) {
	names := input.Databases
	if len(names) == 0 {
		var err error
		names, err = ListDatabasesCached(ctx, deps)
		if err != nil {
			return callError(serr.CodeUnavailable, err.Error(), "db error"), DatabaseOverviewOutput{}, nil
		}
	}
	overviews, err := db.Overview(ctx, deps.Pools, names)
	if err != nil {
		return callError(serr.CodeUnavailable, err.Error(), "db error"), DatabaseOverviewOutput{}, nil
	}
	return nil, DatabaseOverviewOutput{Databases: overviews}, nil
}
