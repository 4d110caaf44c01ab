// azure-postgresql-mcp: MCP server for Azure Database for PostgreSQL - Flexible Server
// SPDX-License-Identifier: MIT
//
// Catalog SQL used by the server.

package db

const (
	// QueryDatabases lists user databases on the instance.
	QueryDatabases = `SELECT datname FROM pg_database WHERE datistemplate = false ORDER BY datname`

	// QueryColumns lists table/column/type triples for the public schema.
	QueryColumns = `SELECT table_name, column_name, data_type FROM information_schema.columns WHERE table_schema = 'public' ORDER BY table_name, ordinal_position`

	// QueryTableCount counts user tables in the public schema.
	QueryTableCount = `SELECT count(*) FROM information_schema.tables WHERE table_schema = 'public' AND table_type = 'BASE TABLE'`

	// QueryServerVersion returns the full server version string.
	QueryServerVersion = `SELECT version()`
)
