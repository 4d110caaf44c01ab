package logging

import (
	"fmt"

	"github.com/Azure-Samples/azure-postgresql-mcp/internal/safety"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger constructs a zap logger with the provided level (default info).
// It uses console encoding and ISO8601 timestamps. Logs go to stderr so they
// never interleave with the stdio MCP transport.
func NewLogger(level string) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	zcfg.Encoding = "console"
	zcfg.OutputPaths = []string{"stderr"}
	zcfg.ErrorOutputPaths = []string{"stderr"}
	lvl := level
	if lvl == "" {
		lvl = "info"
	}
	l, err := zapcore.ParseLevel(lvl)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	zcfg.Level = zap.NewAtomicLevelAt(l)
	zcfg.EncoderConfig.TimeKey = "ts"
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zcfg.EncoderConfig.CallerKey = "caller"
	return zcfg.Build()
}

// WithComponent attaches a component field.
func WithComponent(logger *zap.Logger, component string) *zap.Logger {
	if component == "" {
		return logger
	}
	return logger.With(zap.String("component", component))
}

// WithTool attaches a tool_name field.
func WithTool(logger *zap.Logger, tool string) *zap.Logger {
	if tool == "" {
		return logger
	}
	return logger.With(zap.String("tool_name", tool))
}

// RedactDSN safely redacts DSNs by masking user/password.
func RedactDSN(dsn string) string { return safety.RedactDSN(dsn) }

// FieldDSN returns a zap field with a redacted DSN.
func FieldDSN(key, dsn string) zap.Field {
	return zap.String(key, RedactDSN(dsn))
}

// FieldSecret masks secret values.
func FieldSecret(key string) zap.Field {
	return zap.String(key, "***")
}
