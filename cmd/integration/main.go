package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/Azure-Samples/azure-postgresql-mcp/internal/cache"
	"github.com/Azure-Samples/azure-postgresql-mcp/internal/config"
	"github.com/Azure-Samples/azure-postgresql-mcp/internal/db"
	"github.com/Azure-Samples/azure-postgresql-mcp/internal/mcpserver/tools"
	"github.com/Azure-Samples/azure-postgresql-mcp/internal/safety"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

// Manual tool runner against a live server. Reads the same PG* environment
// variables as the server itself.
func main() {
	ctx := context.Background()

	cfg := config.Config{
		Host:                  getenv("PGHOST", "localhost"),
		Port:                  5432,
		User:                  getenv("PGUSER", "postgres"),
		Password:              os.Getenv("PGPASSWORD"),
		Database:              getenv("PGDATABASE", "postgres"),
		ConnectTimeoutSeconds: 5,
		StatementTimeoutMs:    30000,
		AppName:               "azure-postgresql-mcp-integration",
		MaxRows:               200,
		MaxTextBytes:          200000,
		EnableCaching:         true,
		CacheTTLSeconds:       5,
		Transport:             config.TransportStdio,
		LogLevel:              "info",
	}
	fmt.Println("Using host:", cfg.Host)

	logger, _ := zap.NewDevelopment()
	pools := db.NewManager(cfg, db.StaticCredential(cfg.Password), logger)
	defer pools.Close()

	deps := tools.Dependencies{
		Pools:      pools,
		Logger:     logger,
		Guardrails: safety.NewGuardrails(cfg),
		Config:     cfg,
		Cache:      cache.New(),
	}

	// runners
	run("ping", func() (*mcp.CallToolResult, any, error) {
		return tools.Ping(ctx, deps, tools.PingInput{Message: "hello"})
	})
	run("server_info", func() (*mcp.CallToolResult, any, error) { return tools.ServerInfo(ctx, deps) })
	run("get_databases", func() (*mcp.CallToolResult, any, error) {
		return tools.GetDatabases(ctx, deps, tools.GetDatabasesInput{})
	})
	run("get_schemas", func() (*mcp.CallToolResult, any, error) {
		return tools.GetSchemas(ctx, deps, tools.GetSchemasInput{})
	})
	run("query_data", func() (*mcp.CallToolResult, any, error) {
		return tools.QueryData(ctx, deps, tools.QueryDataInput{SQL: "SELECT 1 AS one"})
	})
	run("database_overview", func() (*mcp.CallToolResult, any, error) {
		return tools.Overview(ctx, deps, tools.DatabaseOverviewInput{})
	})
}

func run(name string, fn func() (*mcp.CallToolResult, any, error)) {
	fmt.Println("==>", name)
	res, out, err := fn()
	if err != nil {
		fmt.Println("  error:", err)
		return
	}
	if res != nil && res.IsError {
		b, _ := json.Marshal(res.StructuredContent)
		fmt.Println("  tool error:", string(b))
		return
	}
	b, _ := json.MarshalIndent(out, "  ", "  ")
	fmt.Println(" ", string(b))
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
