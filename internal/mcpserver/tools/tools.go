package tools

import (
	"context"
	"fmt"

	"github.com/Azure-Samples/azure-postgresql-mcp/internal/azure"
	"github.com/Azure-Samples/azure-postgresql-mcp/internal/cache"
	"github.com/Azure-Samples/azure-postgresql-mcp/internal/config"
	"github.com/Azure-Samples/azure-postgresql-mcp/internal/db"
	serr "github.com/Azure-Samples/azure-postgresql-mcp/internal/errors"
	"github.com/Azure-Samples/azure-postgresql-mcp/internal/safety"
	"github.com/Azure-Samples/azure-postgresql-mcp/internal/version"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

type Dependencies struct {
	Pools      *db.Manager
	Logger     *zap.Logger
	Guardrails *safety.Guardrails
	Config     config.Config
	Cache      *cache.Cache
	Mgmt       azure.Management // nil outside EntraID mode
}

func Register(server *mcp.Server, deps Dependencies) {
	mcp.AddTool(server, &mcp.Tool{Name: "ping", Description: "ping the server"}, func(ctx context.Context, req *mcp.CallToolRequest, input PingInput) (*mcp.CallToolResult, PingOutput, error) {
		return Ping(ctx, deps, input)
	})

	mcp.AddTool(server, &mcp.Tool{Name: "server_info", Description: "returns server metadata and auth mode"}, func(ctx context.Context, req *mcp.CallToolRequest, input ServerInfoInput) (*mcp.CallToolResult, ServerInfoOutput, error) {
		return ServerInfo(ctx, deps)
	})

	mcp.AddTool(server, &mcp.Tool{Name: "get_databases", Description: "gets the list of all the databases in a server instance"}, func(ctx context.Context, req *mcp.CallToolRequest, input GetDatabasesInput) (*mcp.CallToolResult, GetDatabasesOutput, error) {
		return GetDatabases(ctx, deps, input)
	})

	mcp.AddTool(server, &mcp.Tool{Name: "get_schemas", Description: "gets schemas of all the tables in a database"}, func(ctx context.Context, req *mcp.CallToolRequest, input GetSchemasInput) (*mcp.CallToolResult, GetSchemasOutput, error) {
		return GetSchemas(ctx, deps, input)
	})

	mcp.AddTool(server, &mcp.Tool{Name: "query_data", Description: "runs read queries on a database"}, func(ctx context.Context, req *mcp.CallToolRequest, input QueryDataInput) (*mcp.CallToolResult, QueryDataOutput, error) {
		return QueryData(ctx, deps, input)
	})

	mcp.AddTool(server, &mcp.Tool{Name: "update_values", Description: "updates or inserts values into a table"}, func(ctx context.Context, req *mcp.CallToolRequest, input ExecInput) (*mcp.CallToolResult, ExecOutput, error) {
		return UpdateValues(ctx, deps, input)
	})

	mcp.AddTool(server, &mcp.Tool{Name: "create_table", Description: "creates a table in a database"}, func(ctx context.Context, req *mcp.CallToolRequest, input ExecInput) (*mcp.CallToolResult, ExecOutput, error) {
		return CreateTable(ctx, deps, input)
	})

	mcp.AddTool(server, &mcp.Tool{Name: "drop_table", Description: "drops a table in a database"}, func(ctx context.Context, req *mcp.CallToolRequest, input ExecInput) (*mcp.CallToolResult, ExecOutput, error) {
		return DropTable(ctx, deps, input)
	})

	mcp.AddTool(server, &mcp.Tool{Name: "get_server_config", Description: "gets the configuration of a server instance (EntraID mode only)"}, func(ctx context.Context, req *mcp.CallToolRequest, input GetServerConfigInput) (*mcp.CallToolResult, GetServerConfigOutput, error) {
		return GetServerConfig(ctx, deps)
	})

	mcp.AddTool(server, &mcp.Tool{Name: "get_server_parameter", Description: "gets the value of a server parameter (EntraID mode only)"}, func(ctx context.Context, req *mcp.CallToolRequest, input GetServerParameterInput) (*mcp.CallToolResult, GetServerParameterOutput, error) {
		return GetServerParameter(ctx, deps, input)
	})

	mcp.AddTool(server, &mcp.Tool{Name: "database_overview", Description: "per-database table counts across the server"}, func(ctx context.Context, req *mcp.CallToolRequest, input DatabaseOverviewInput) (*mcp.CallToolResult, DatabaseOverviewOutput, error) {
		return Overview(ctx, deps, input)
	})
}

// Ping tool

type PingInput struct {
	Message string `json:"message,omitempty" jsonschema:"optional message to echo"`
}

type PingOutput struct {
	Pong string `json:"pong"`
}

func Ping(ctx context.Context, deps Dependencies, input PingInput) (*mcp.CallToolResult, PingOutput, error) {
	msg := input.Message
	if msg == "" {
		msg = "pong"
	}
	return nil, PingOutput{Pong: msg}, nil
}

// ServerInfo tool

type ServerInfoInput struct{}

type ServerInfoOutput struct {
	ServerName      string            `json:"server_name"`
	AuthMode        string            `json:"auth_mode"`
	ReadOnly        bool              `json:"read_only"`
	DefaultDatabase string            `json:"default_database"`
	ServerVersion   string            `json:"server_version,omitempty"`
	Build           version.BuildInfo `json:"build"`
}

func ServerInfo(ctx context.Context, deps Dependencies) (*mcp.CallToolResult, ServerInfoOutput, error) {
	out := ServerInfoOutput{
		ServerName:      deps.Config.ServerName(),
		AuthMode:        authMode(deps.Config),
		ReadOnly:        deps.Config.ReadOnly,
		DefaultDatabase: deps.Config.Database,
		Build:           version.Info(),
	}
	pool, err := deps.Pools.Pool(ctx, "")
	if err != nil {
		deps.Logger.Warn("server_info connect failed", zap.Error(err))
		return nil, out, nil
	}
	if v, err := db.ServerVersion(ctx, pool); err == nil {
		out.ServerVersion = v
	}
	return nil, out, nil
}

func authMode(cfg config.Config) string {
	if cfg.UseAAD {
		return "entra_id"
	}
	return "password"
}

// Helper error creation
func callError(code serr.ErrorCode, msg, hint string) *mcp.CallToolResult {
	errObj := map[string]any{"code": code, "message": msg}
	if hint != "" {
		errObj["hint"] = hint
	}
	return &mcp.CallToolResult{
		IsError:           true,
		StructuredContent: errObj,
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf("%s: %s", code, msg)},
		},
	}
}

func toolError(err error) *mcp.CallToolResult {
	se := serr.ToToolError(err)
	return callError(se.Code, se.Message, se.Hint)
}
