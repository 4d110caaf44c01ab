// azure-postgresql-mcp: MCP server for Azure Database for PostgreSQL - Flexible Server
// SPDX-License-Identifier: MIT
//
// Integration tests for the MCP server with a live flexible server.

//go:build integration

package integration

import "testing"

func TestIntegrationPlaceholder(t *testing.T) {
	t.Skip("integration tests require a reachable PostgreSQL instance; use cmd/integration")
}
