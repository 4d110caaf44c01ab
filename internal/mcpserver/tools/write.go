package tools

import (
	"context"
	"strings"

	"github.com/Azure-Samples/azure-postgresql-mcp/internal/db"
	serr "github.com/Azure-Samples/azure-postgresql-mcp/internal/errors"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

// ExecInput is shared by update_values, create_table and drop_table.
type ExecInput struct {
	Database string `json:"database,omitempty" jsonschema:"database to modify; defaults to the configured database"`
	SQL      string `json:"sql" jsonschema:"required"`
}

type ExecOutput struct {
	Status     string `json:"status"`
	CommandTag string `json:"command_tag,omitempty"`
}

func UpdateValues(ctx context.Context, deps Dependencies, input ExecInput) (*mcp.CallToolResult, ExecOutput, error) {
	return execAndCommit(ctx, deps, "update_values", input)
}

func CreateTable(ctx context.Context, deps Dependencies, input ExecInput) (*mcp.CallToolResult, ExecOutput, error) {
	return execAndCommit(ctx, deps, "create_table", input)
}

func DropTable(ctx context.Context, deps Dependencies, input ExecInput) (*mcp.CallToolResult, ExecOutput, error) {
	return execAndCommit(ctx, deps, "drop_table", input)
}

// execAndCommit runs the statement in a committed transaction, mirroring the
// behavior all three write tools share.
func execAndCommit(ctx context.Context, deps Dependencies, tool string, input ExecInput) (*mcp.CallToolResult, ExecOutput, error) {
	if strings.TrimSpace(input.SQL) == "" {
		return callError(serr.CodeInvalidInput, "sql is required", ""), ExecOutput{}, nil
	}
	if err := deps.Guardrails.RequireWriteAllowed(tool); err != nil {
		return toolError(err), ExecOutput{}, nil
	}
	pool, err := deps.Pools.Pool(ctx, input.Database)
	if err != nil {
		return callError(serr.CodeUnavailable, err.Error(), "db error"), ExecOutput{}, nil
	}
	tag, err := db.Exec(ctx, pool, input.SQL)
	if err != nil {
		deps.Logger.Warn("write tool failed", zap.String("tool", tool), zap.Error(err))
		return callError(serr.CodeInternalError, err.Error(), "statement error"), ExecOutput{}, nil
	}
	// schema may have changed
	deps.Cache.Invalidate("schemas:" + dbnameOrDefault(deps, input.Database))
	return nil, ExecOutput{Status: "ok", CommandTag: tag}, nil
}

func dbnameOrDefault(deps Dependencies, dbname string) string {
	if dbname == "" {
		return deps.Config.Database
	}
	return dbname
}
