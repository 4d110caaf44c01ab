package tools

import (
	"context"
	"time"

	"github.com/Azure-Samples/azure-postgresql-mcp/internal/db"
	serr "github.com/Azure-Samples/azure-postgresql-mcp/internal/errors"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// GetSchemas tool

type GetSchemasInput struct {
	Database string `json:"database,omitempty" jsonschema:"database to inspect; defaults to the configured database"`
}

type GetSchemasOutput struct {
	Database string      `json:"database"`
	Columns  []db.Column `json:"columns"`
}

func GetSchemas(ctx context.Context, deps Dependencies, input GetSchemasInput) (*mcp.CallToolResult, GetSchemasOutput, error) {
	dbname := input.Database
	if dbname == "" {
		dbname = deps.Config.Database
	}
	key := "schemas:" + dbname
	if deps.Config.EnableCaching {
		if val, ok := deps.Cache.Get(key); ok {
			if cols, ok := val.([]db.Column); ok {
				return nil, GetSchemasOutput{Database: dbname, Columns: cols}, nil
			}
		}
	}
	pool, err := deps.Pools.Pool(ctx, dbname)
	if err != nil {
		return callError(serr.CodeUnavailable, err.Error(), "db error"), GetSchemasOutput{}, nil
	}
	cols, err := db.ListColumns(ctx, pool)
	if err != nil {
		return callError(serr.CodeUnavailable, err.Error(), "db error"), GetSchemasOutput{}, nil
	}
	if deps.Config.EnableCaching {
		deps.Cache.Set(key, cols, time.Duration(deps.Config.CacheTTLSeconds)*time.Second)
	}
	return nil, GetSchemasOutput{Database: dbname, Columns: cols}, nil
}
