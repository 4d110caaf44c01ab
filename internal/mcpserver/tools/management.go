package tools

import (
	"context"
	"strings"

	"github.com/Azure-Samples/azure-postgresql-mcp/internal/azure"
	serr "github.com/Azure-Samples/azure-postgresql-mcp/internal/errors"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

// GetServerConfig tool (EntraID mode only)

type GetServerConfigInput struct{}

type GetServerConfigOutput struct {
	Server *azure.ServerConfig `json:"server"`
}

func GetServerConfig(ctx context.Context, deps Dependencies) (*mcp.CallToolResult, GetServerConfigOutput, error) {
	if deps.Mgmt == nil {
		return toolError(serr.NewEntraIDRequired("get_server_config")), GetServerConfigOutput{}, nil
	}
	cfg, err := deps.Mgmt.GetServerConfig(ctx)
	if err != nil {
		deps.Logger.Warn("get_server_config failed", zap.Error(err))
		return callError(serr.CodeUnavailable, err.Error(), "azure management error"), GetServerConfigOutput{}, nil
	}
	return nil, GetServerConfigOutput{Server: cfg}, nil
}

// GetServerParameter tool (EntraID mode only)

type GetServerParameterInput struct {
	Name string `json:"name" jsonschema:"required"`
}

type GetServerParameterOutput struct {
	Param string `json:"param"`
	Value string `json:"value"`
}

func GetServerParameter(ctx context.Context, deps Dependencies, input GetServerParameterInput) (*mcp.CallToolResult, GetServerParameterOutput, error) {
	if deps.Mgmt == nil {
		return toolError(serr.NewEntraIDRequired("get_server_parameter")), GetServerParameterOutput{}, nil
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return callError(serr.CodeInvalidInput, "name is required", "provide a server parameter name"), GetServerParameterOutput{}, nil
	}
	param, err := deps.Mgmt.GetServerParameter(ctx, name)
	if err != nil {
		deps.Logger.Warn("get_server_parameter failed", zap.String("name", name), zap.Error(err))
		return callError(serr.CodeUnavailable, err.Error(), "azure management error"), GetServerParameterOutput{}, nil
	}
	return nil, GetServerParameterOutput{Param: param.Param, Value: param.Value}, nil
}
