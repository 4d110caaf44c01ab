// azure-postgresql-mcp: MCP server for Azure Database for PostgreSQL - Flexible Server
// SPDX-License-Identifier: MIT
//
// Unit tests for guardrails and read-only checks.

package safety

import (
	"testing"

	"github.com/Azure-Samples/azure-postgresql-mcp/internal/config"
)

func TestQueryIsReadOnly(t *testing.T) {
	cases := []struct {
		q  string
		ro bool
	}{
		{"SELECT 1", true},
		{"\n  -- comment\nSELECT * FROM t", true},
		{"/* leading */ SELECT 1", true},
		{"WITH x AS (SELECT 1) SELECT * FROM x", true},
		{"WITH gone AS (DELETE FROM accounts RETURNING *) SELECT * FROM gone", false},
		{"WITH ins AS (INSERT INTO t VALUES (1) RETURNING id) SELECT id FROM ins", false},
		{"with u as (update t set a=1 returning a) select * from u", false},
		{"SHOW max_connections", true},
		{"EXPLAIN SELECT 1", true},
		{"INSERT INTO t VALUES (1)", false},
		{"UPDATE t SET a=1", false},
		{"DELETE FROM t", false},
		{"CALL foo()", false},
		{"COPY t TO '/tmp/x'", false},
		{"CREATE TABLE t()", false},
		{"DROP TABLE t", false},
	}
	for _, c := range cases {
		if QueryIsReadOnly(c.q) != c.ro {
			t.Fatalf("expected %v for %q", c.ro, c.q)
		}
	}
}

func TestRequireWriteAllowed(t *testing.T) {
	g := NewGuardrails(config.Config{ReadOnly: true})
	if err := g.RequireWriteAllowed("create_table"); err == nil {
		t.Fatal("expected write blocked in read-only mode")
	}
	g = NewGuardrails(config.Config{ReadOnly: false})
	if err := g.RequireWriteAllowed("create_table"); err != nil {
		t.Fatalf("expected write allowed, got %v", err)
	}
}

func TestRequireReadOnlySQL(t *testing.T) {
	g := NewGuardrails(config.Config{})
	if err := g.RequireReadOnlySQL("DELETE FROM t"); err == nil {
		t.Fatal("expected delete rejected by read-only query guard")
	}
	if err := g.RequireReadOnlySQL("SELECT 1"); err != nil {
		t.Fatalf("expected select allowed, got %v", err)
	}
}
