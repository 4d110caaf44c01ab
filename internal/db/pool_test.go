package db

import (
	"context"
	"testing"

	"github.com/Azure-Samples/azure-postgresql-mcp/internal/config"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
)

func TestNewPoolConfig(t *testing.T) {
	cfg := config.Config{
		Host:                  "test-host.postgres.database.azure.com",
		Port:                  5432,
		User:                  "test-user",
		ConnectTimeoutSeconds: 5,
		StatementTimeoutMs:    30000,
		AppName:               "azure-postgresql-mcp",
	}
	pcfg, err := NewPoolConfig(cfg, "sales", StaticCredential("test-password"))
	require.NoError(t, err)
	require.Equal(t, "test-host.postgres.database.azure.com", pcfg.ConnConfig.Host)
	require.Equal(t, "sales", pcfg.ConnConfig.Database)
	require.Equal(t, "azure-postgresql-mcp", pcfg.ConnConfig.RuntimeParams["application_name"])
	require.Equal(t, "30000", pcfg.ConnConfig.RuntimeParams["statement_timeout"])

	// BeforeConnect injects the credential at connect time.
	cc := &pgx.ConnConfig{}
	require.NoError(t, pcfg.BeforeConnect(context.Background(), cc))
	require.Equal(t, "test-password", cc.Password)
}

func TestNewPoolConfigKeepsHostileDatabaseNameInert(t *testing.T) {
	cfg := config.Config{
		Host:                  "test-host.postgres.database.azure.com",
		Port:                  5432,
		User:                  "test-user",
		ConnectTimeoutSeconds: 5,
		StatementTimeoutMs:    30000,
		AppName:               "azure-postgresql-mcp",
	}
	hostile := "postgres host=evil.example.com sslmode=disable"
	pcfg, err := NewPoolConfig(cfg, hostile, StaticCredential("test-password"))
	require.NoError(t, err)
	// The whole string stays the database name; it must not rewrite the
	// connection target.
	require.Equal(t, "test-host.postgres.database.azure.com", pcfg.ConnConfig.Host)
	require.Equal(t, uint16(5432), pcfg.ConnConfig.Port)
	require.Equal(t, hostile, pcfg.ConnConfig.Database)
}
