package prompts

import (
	"context"
	"fmt"
	"strings"

	"github.com/Azure-Samples/azure-postgresql-mcp/internal/mcpserver/tools"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// RegisterAll registers all prompts with the MCP server.
func RegisterAll(server *mcp.Server, deps tools.Dependencies) {
	server.AddPrompt(&mcp.Prompt{Name: "/flexpg.explore_database", Title: "Explore a database", Description: "Guided walk through databases, schemas and sample queries"}, promptExploreDatabase(deps))
	server.AddPrompt(&mcp.Prompt{Name: "/flexpg.safe_write_workflow", Title: "Safe write workflow", Description: "Step-by-step guidance for table changes"}, promptSafeWriteWorkflow(deps))
}

func promptExploreDatabase(deps tools.Dependencies) mcp.PromptHandler {
	return func(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		database := ""
		if req != nil && req.Params != nil && req.Params.Arguments != nil {
			database = strings.TrimSpace(req.Params.Arguments["database"])
		}
		if database == "" {
			database = deps.Config.Database
		}

		var b strings.Builder
		b.WriteString("### Explore a database\n")
		b.WriteString("1) List databases\nRun: `get_databases`\n\n")
		b.WriteString(fmt.Sprintf("2) Inspect table schemas\nRun: `get_schemas` with `{\"database\":\"%s\"}`\n\n", database))
		b.WriteString(fmt.Sprintf("3) Sample the data\nRun: `query_data` with `{\"database\":\"%s\",\"sql\":\"SELECT * FROM <table> LIMIT 10\"}`\n\n", database))
		b.WriteString("Notes:\n- query_data only accepts read statements.\n- Row output is capped; narrow the query rather than raising limits.\n")

		messages := []*mcp.PromptMessage{
			{Role: mcp.Role("system"), Content: &mcp.TextContent{Text: "You are a concise PostgreSQL assistant. Suggest next tools to run."}},
			{Role: mcp.Role("assistant"), Content: &mcp.TextContent{Text: b.String()}},
		}
		return &mcp.GetPromptResult{Description: "Database exploration workflow", Messages: messages}, nil
	}
}

func promptSafeWriteWorkflow(deps tools.Dependencies) mcp.PromptHandler {
	return func(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		var b strings.Builder
		b.WriteString("### Safe write workflow\n")
		b.WriteString("1) Confirm the target schema\nRun: `get_schemas` for the database you will modify\n\n")
		b.WriteString("2) Preview impact with a read query\nRun: `query_data` with a SELECT matching your WHERE clause\n\n")
		b.WriteString("3) Apply the change\nRun: `update_values` (DML) or `create_table`/`drop_table` (DDL)\n\n")
		if deps.Config.ReadOnly {
			b.WriteString("⚠️ This server runs read-only: write tools will be rejected.\n")
		}
		b.WriteString("Notes:\n- Statements run in a single committed transaction.\n- Prefer explicit column lists in INSERT statements.\n")

		messages := []*mcp.PromptMessage{
			{Role: mcp.Role("system"), Content: &mcp.TextContent{Text: "You are a careful PostgreSQL operations assistant. Provide step-by-step guidance."}},
			{Role: mcp.Role("assistant"), Content: &mcp.TextContent{Text: b.String()}},
		}
		return &mcp.GetPromptResult{Description: "Safe write workflow", Messages: messages}, nil
	}
}
