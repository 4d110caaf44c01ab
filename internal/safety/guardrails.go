package safety

import (
	"regexp"
	"strings"

	"github.com/Azure-Samples/azure-postgresql-mcp/internal/config"
	serr "github.com/Azure-Samples/azure-postgresql-mcp/internal/errors"
)

type Guardrails struct {
	readOnly bool
}

func NewGuardrails(cfg config.Config) *Guardrails {
	return &Guardrails{readOnly: cfg.ReadOnly}
}

// RequireWriteAllowed blocks write tools when the server runs read-only.
func (g *Guardrails) RequireWriteAllowed(tool string) error {
	if !g.readOnly {
		return nil
	}
	return serr.New(serr.CodePermissionDenied, "write tools are disabled in read-only mode", "restart without read_only to enable "+tool, nil)
}

// RequireReadOnlySQL rejects statements that are not read-only. query_data
// enforces this regardless of server mode.
func (g *Guardrails) RequireReadOnlySQL(sql string) error {
	if QueryIsReadOnly(sql) {
		return nil
	}
	return serr.New(serr.CodePermissionDenied, "only read queries are allowed here", "use update_values/create_table/drop_table for writes", nil)
}

var dataModifyingWord = regexp.MustCompile(`(?i)\b(insert|update|delete|merge)\b`)

// QueryIsReadOnly returns true if the statement appears to be read-only.
// This is a lexical pre-check; query_data additionally runs statements in a
// READ ONLY transaction so the server rejects anything that slips through.
func QueryIsReadOnly(sql string) bool {
	kw := firstKeyword(sql)
	if kw == "" {
		return true
	}
	kw = strings.ToLower(kw)
	switch kw {
	case "select", "show", "explain", "values", "table":
		return true
	case "with":
		// WITH can wrap data-modifying CTEs; reject when the body mentions
		// one. May over-reject a column literally named "update" - writes
		// must never pass.
		return !dataModifyingWord.MatchString(sql)
	default:
		return false
	}
}

// firstKeyword strips leading comments/whitespace and returns the first token.
func firstKeyword(sql string) string {
	s := stripLeadingComments(sql)
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	for i, r := range s {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '(' || r == ';' {
			return s[:i]
		}
	}
	return s
}

// stripLeadingComments removes leading SQL comments (-- or /* */) and whitespace.
func stripLeadingComments(sql string) string {
	s := sql
	for {
		s = strings.TrimLeft(s, "\t\n\r ")
		if strings.HasPrefix(s, "--") {
			if idx := strings.IndexAny(s, "\n\r"); idx >= 0 {
				s = s[idx:]
			} else {
				return ""
			}
			continue
		}
		if strings.HasPrefix(s, "/*") {
			if idx := strings.Index(s, "*/"); idx >= 0 {
				s = s[idx+2:]
				continue
			}
			return ""
		}
		return s
	}
}
