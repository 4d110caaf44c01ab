package tools

import (
	"context"
	"strings"

	"github.com/Azure-Samples/azure-postgresql-mcp/internal/db"
	serr "github.com/Azure-Samples/azure-postgresql-mcp/internal/errors"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

// QueryData tool

type QueryDataInput struct {
	Database string `json:"database,omitempty" jsonschema:"database to query; defaults to the configured database"`
	SQL      string `json:"sql" jsonschema:"required"`
}

type QueryDataOutput struct {
	Result *db.QueryResult `json:"result"`
}

func QueryData(ctx context.Context, deps Dependencies, input QueryDataInput) (*mcp.CallToolResult, QueryDataOutput, error) {
	if strings.TrimSpace(input.SQL) == "" {
		return callError(serr.CodeInvalidInput, "sql is required", ""), QueryDataOutput{}, nil
	}
	if err := deps.Guardrails.RequireReadOnlySQL(input.SQL); err != nil {
		return toolError(err), QueryDataOutput{}, nil
	}
	pool, err := deps.Pools.Pool(ctx, input.Database)
	if err != nil {
		return callError(serr.CodeUnavailable, err.Error(), "db error"), QueryDataOutput{}, nil
	}
	res, err := db.Collect(ctx, pool, input.SQL, deps.Config.MaxRows, deps.Config.MaxTextBytes)
	if err != nil {
		deps.Logger.Warn("query_data failed", zap.Error(err))
		return callError(serr.CodeInternalError, err.Error(), "query error"), QueryDataOutput{}, nil
	}
	return nil, QueryDataOutput{Result: res}, nil
}
