package mcpserver

import (
	"context"
	"fmt"

	"github.com/Azure-Samples/azure-postgresql-mcp/internal/azure"
	"github.com/Azure-Samples/azure-postgresql-mcp/internal/cache"
	"github.com/Azure-Samples/azure-postgresql-mcp/internal/config"
	"github.com/Azure-Samples/azure-postgresql-mcp/internal/db"
	"github.com/Azure-Samples/azure-postgresql-mcp/internal/mcpserver/prompts"
	"github.com/Azure-Samples/azure-postgresql-mcp/internal/mcpserver/resources"
	"github.com/Azure-Samples/azure-postgresql-mcp/internal/mcpserver/tools"
	"github.com/Azure-Samples/azure-postgresql-mcp/internal/safety"
	"github.com/Azure-Samples/azure-postgresql-mcp/internal/version"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

const serverName = "azure-postgresql-mcp"

type Server struct {
	cfg    config.Config
	logger *zap.Logger
	pools  *db.Manager
	srv    *mcp.Server
}

// New wires credentials, pools and the MCP server. In EntraID mode the
// database credential is an AAD token source and the management-plane tools
// are enabled; in password mode they stay registered but report
// NOT_SUPPORTED, matching the server's documented behavior.
func New(cfg config.Config, logger *zap.Logger) (*Server, error) {
	var cred db.CredentialFunc
	var mgmt azure.Management
	if cfg.UseAAD {
		src, err := azure.NewTokenSource()
		if err != nil {
			return nil, fmt.Errorf("entra id credential: %w", err)
		}
		cred = src.Token
		arm, err := azure.NewARMClientFromSource(src, cfg.SubscriptionID, cfg.ResourceGroup, cfg.ServerName())
		if err != nil {
			return nil, fmt.Errorf("arm client: %w", err)
		}
		mgmt = arm
	} else {
		cred = db.StaticCredential(cfg.Password)
	}

	pools := db.NewManager(cfg, cred, logger)
	deps := tools.Dependencies{
		Pools:      pools,
		Logger:     logger,
		Guardrails: safety.NewGuardrails(cfg),
		Config:     cfg,
		Cache:      cache.New(),
		Mgmt:       mgmt,
	}

	m := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: version.Version}, nil)
	tools.Register(m, deps)
	resources.RegisterAll(m, deps)
	prompts.RegisterAll(m, deps)
	return &Server{cfg: cfg, logger: logger, pools: pools, srv: m}, nil
}

// Run runs the server with the provided transport (e.g., &mcp.StdioTransport{}).
func (s *Server) Run(ctx context.Context, transport mcp.Transport) error {
	return s.srv.Run(ctx, transport)
}

func (s *Server) Close() {
	s.pools.Close()
}
