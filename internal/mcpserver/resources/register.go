package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Azure-Samples/azure-postgresql-mcp/internal/mcpserver/tools"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// DatabasesURI builds the resource URI for the database list, e.g.
// flexpg://myserver/databases.
func DatabasesURI(serverName string) string {
	return fmt.Sprintf("flexpg://%s/databases", serverName)
}

// RegisterAll registers resources with the MCP server.
func RegisterAll(server *mcp.Server, deps tools.Dependencies) {
	uri := DatabasesURI(deps.Config.ServerName())
	server.AddResource(&mcp.Resource{
		URI:         uri,
		Name:        "databases",
		Description: "List of all databases in the server instance",
		MIMEType:    "application/json",
	}, databasesHandler(uri, deps))
}

func databasesHandler(uri string, deps tools.Dependencies) mcp.ResourceHandler {
	return func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		names, err := tools.ListDatabasesCached(ctx, deps)
		if err != nil {
			return nil, fmt.Errorf("list databases: %w", err)
		}
		body, err := json.Marshal(map[string]any{"databases": names})
		if err != nil {
			return nil, err
		}
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{
				{URI: uri, MIMEType: "application/json", Text: string(body)},
			},
		}, nil
	}
}
