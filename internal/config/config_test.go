package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		Host:                  "test-host.postgres.database.azure.com",
		Port:                  5432,
		User:                  "test-user",
		Password:              "test-password",
		Database:              "postgres",
		ConnectTimeoutSeconds: 5,
		StatementTimeoutMs:    30000,
		AppName:               "azure-postgresql-mcp",
		MaxRows:               200,
		MaxTextBytes:          200000,
		Transport:             TransportStdio,
	}
}

func TestValidatePasswordMode(t *testing.T) {
	cfg := validConfig()
	require.NoError(t, Validate(cfg))

	cfg.Password = ""
	require.Error(t, Validate(cfg), "password mode requires a password")
}

func TestValidateAADMode(t *testing.T) {
	cfg := validConfig()
	cfg.UseAAD = true
	cfg.Password = ""
	require.Error(t, Validate(cfg), "aad mode requires subscription and resource group")

	cfg.SubscriptionID = "test-subscription-id"
	cfg.ResourceGroup = "test-resource-group"
	require.NoError(t, Validate(cfg))
}

func TestValidateRejectsBadValues(t *testing.T) {
	for _, mutate := range []func(*Config){
		func(c *Config) { c.Host = "" },
		func(c *Config) { c.User = "" },
		func(c *Config) { c.Port = 0 },
		func(c *Config) { c.Port = 70000 },
		func(c *Config) { c.Database = "" },
		func(c *Config) { c.ConnectTimeoutSeconds = 0 },
		func(c *Config) { c.StatementTimeoutMs = 0 },
		func(c *Config) { c.MaxRows = 0 },
		func(c *Config) { c.MaxTextBytes = 0 },
		func(c *Config) { c.Transport = Transport("carrier-pigeon") },
	} {
		cfg := validConfig()
		mutate(&cfg)
		require.Error(t, Validate(cfg))
	}
}

func TestServerName(t *testing.T) {
	cfg := Config{Host: "myserver.postgres.database.azure.com"}
	require.Equal(t, "myserver", cfg.ServerName())

	cfg.Host = "localhost"
	require.Equal(t, "localhost", cfg.ServerName())
}
