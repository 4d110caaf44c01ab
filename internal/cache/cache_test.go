// azure-postgresql-mcp: MCP server for Azure Database for PostgreSQL - Flexible Server
// SPDX-License-Identifier: MIT
//
// Unit tests for TTL cache.

package cache

import (
	"testing"
	"time"
)

func TestCacheSetGet(t *testing.T) {
	c := New()
	c.Set("k", "v", time.Second)
	v, ok := c.Get("k")
	if !ok || v.(string) != "v" {
		t.Fatalf("expected v, got %v", v)
	}
}

func TestCacheExpiry(t *testing.T) {
	c := New()
	c.Set("k", "v", -time.Second)
	if _, ok := c.Get("k"); ok {
		t.Fatal("expected expired entry to miss")
	}
}

func TestCacheInvalidate(t *testing.T) {
	c := New()
	c.Set("k", "v", 0)
	c.Invalidate("k")
	if _, ok := c.Get("k"); ok {
		t.Fatal("expected invalidated entry to miss")
	}
}
