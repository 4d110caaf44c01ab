package db

import (
	"context"
	"testing"
	"time"
)

func TestNormalizeValue(t *testing.T) {
	if got := normalizeValue([]byte("abc")); got != "abc" {
		t.Fatalf("expected string for []byte, got %v", got)
	}
	ts := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	if got := normalizeValue(ts); got != "2025-01-02T03:04:05Z" {
		t.Fatalf("unexpected time rendering: %v", got)
	}
	if got := normalizeValue(int64(7)); got != int64(7) {
		t.Fatalf("expected passthrough, got %v", got)
	}
}

func TestTruncateText(t *testing.T) {
	v, cut := truncateText("abcdef", 4)
	if !cut || v != "abcd" {
		t.Fatalf("expected truncated value, got %v cut=%v", v, cut)
	}
	v, cut = truncateText("abc", 4)
	if cut || v != "abc" {
		t.Fatalf("expected short string untouched, got %v cut=%v", v, cut)
	}
	v, cut = truncateText(int64(9), 4)
	if cut || v != int64(9) {
		t.Fatalf("expected non-string untouched, got %v cut=%v", v, cut)
	}
	v, cut = truncateText("abcdef", 0)
	if cut || v != "abcdef" {
		t.Fatalf("expected cap disabled, got %v cut=%v", v, cut)
	}
}

func TestQueryResultJSON(t *testing.T) {
	r := &QueryResult{Columns: []string{"a"}, Rows: [][]any{{1}}, RowCount: 1}
	s := r.JSON()
	if s == "" || s == "{}" {
		t.Fatalf("unexpected render: %s", s)
	}
}

func TestStaticCredential(t *testing.T) {
	cred := StaticCredential("test-password")
	pw, err := cred(context.Background())
	if err != nil || pw != "test-password" {
		t.Fatalf("expected static password, got %q err %v", pw, err)
	}
}
