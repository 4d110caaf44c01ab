// azure-postgresql-mcp: MCP server for Azure Database for PostgreSQL - Flexible Server
// SPDX-License-Identifier: MIT
//
// Custom error types and error codes for MCP responses.

package errors

import (
	"fmt"
	"regexp"
)

type ErrorCode string

const (
	CodeInvalidInput     ErrorCode = "INVALID_INPUT"
	CodePermissionDenied ErrorCode = "PERMISSION_DENIED"
	CodeNotSupported     ErrorCode = "NOT_SUPPORTED"
	CodeUnavailable      ErrorCode = "UNAVAILABLE"
	CodeTimeout          ErrorCode = "TIMEOUT"
	CodeInternalError    ErrorCode = "INTERNAL_ERROR"
)

type ServerError struct {
	Code    ErrorCode      `json:"code"`
	Message string         `json:"message"`
	Hint    string         `json:"hint,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

func (e *ServerError) Error() string { return fmt.Sprintf("%s: %s", e.Code, e.Message) }

func New(code ErrorCode, msg, hint string, details map[string]any) *ServerError {
	return &ServerError{Code: code, Message: msg, Hint: hint, Details: sanitize(details)}
}

func NewInvalidInput(msg, hint string, details map[string]any) *ServerError {
	return New(CodeInvalidInput, msg, hint, details)
}

func NewPermissionDenied(msg, hint string) *ServerError {
	return New(CodePermissionDenied, msg, hint, nil)
}

// NewEntraIDRequired marks tools that exist only in EntraID mode.
func NewEntraIDRequired(tool string) *ServerError {
	return New(CodeNotSupported, "this tool is available only with Microsoft EntraID", "set AZURE_USE_AAD and restart", map[string]any{"tool": tool})
}

func NewTimeout(msg string) *ServerError {
	return New(CodeTimeout, msg, "retry or increase timeout", nil)
}

func NewUnavailable(msg string) *ServerError {
	return New(CodeUnavailable, scrub(msg), "check server connectivity", nil)
}

func NewInternal(err error) *ServerError {
	if err == nil {
		return New(CodeInternalError, "internal error", "see logs", nil)
	}
	return New(CodeInternalError, "internal error", "see logs", map[string]any{"cause": scrub(err.Error())})
}

// ToToolError converts any error to a ServerError;
// unknown errors are wrapped as internal error with scrubbed message.
func ToToolError(err error) *ServerError {
	if err == nil {
		return nil
	}
	if se, ok := err.(*ServerError); ok {
		return se
	}
	return NewInternal(err)
}

func sanitize(details map[string]any) map[string]any {
	if details == nil {
		return nil
	}
	out := make(map[string]any, len(details))
	for k, v := range details {
		out[k] = scrub(fmt.Sprint(v))
	}
	return out
}

var (
	scrubKeyword  = regexp.MustCompile(`(?i)\b(password|pwd)=\S+`)
	scrubUserinfo = regexp.MustCompile(`(postgres(?:ql)?://)[^@\s/]+@`)
)

// scrub best-effort masks secrets/DSNs so error details never carry the
// original value.
func scrub(s string) string {
	out := scrubKeyword.ReplaceAllString(s, "${1}=***")
	out = scrubUserinfo.ReplaceAllString(out, "${1}***:***@")
	return out
}
