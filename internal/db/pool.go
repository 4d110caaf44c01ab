package db

import (
	"context"
	"fmt"
	"time"

	"github.com/Azure-Samples/azure-postgresql-mcp/internal/config"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CredentialFunc supplies the connection password. In password mode it
// returns the configured password; in EntraID mode it returns a fresh AAD
// access token. It runs on every new physical connection so tokens are never
// reused past their lifetime.
type CredentialFunc func(ctx context.Context) (string, error)

// StaticCredential wraps a fixed password.
func StaticCredential(password string) CredentialFunc {
	return func(context.Context) (string, error) { return password, nil }
}

// NewPoolConfig builds a pool configuration for one database on the
// configured server.
func NewPoolConfig(cfg config.Config, dbname string, cred CredentialFunc) (*pgxpool.Config, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s", cfg.Host, cfg.Port, cfg.User)
	pcfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse pool config: %w", err)
	}
	// The database name comes from tool input. Set it on the parsed config
	// instead of splicing it into the DSN so it cannot smuggle extra
	// keyword/value pairs (host=, sslmode=, ...).
	if dbname != "" {
		pcfg.ConnConfig.Database = dbname
	}
	pcfg.ConnConfig.ConnectTimeout = time.Duration(cfg.ConnectTimeoutSeconds) * time.Second
	if pcfg.ConnConfig.RuntimeParams == nil {
		pcfg.ConnConfig.RuntimeParams = map[string]string{}
	}
	pcfg.ConnConfig.RuntimeParams["application_name"] = cfg.AppName
	pcfg.ConnConfig.RuntimeParams["statement_timeout"] = fmt.Sprintf("%d", cfg.StatementTimeoutMs)
	pcfg.BeforeConnect = func(ctx context.Context, cc *pgx.ConnConfig) error {
		pw, err := cred(ctx)
		if err != nil {
			return fmt.Errorf("resolve credential: %w", err)
		}
		cc.Password = pw
		return nil
	}
	return pcfg, nil
}

func NewPool(ctx context.Context, cfg config.Config, dbname string, cred CredentialFunc) (*pgxpool.Pool, error) {
	pcfg, err := NewPoolConfig(cfg, dbname, cred)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, pcfg)
	if err != nil {
		return nil, fmt.Errorf("pgxpool new: %w", err)
	}
	return pool, nil
}
