package db

import (
	"context"
	"sync"
	"time"

	"github.com/Azure-Samples/azure-postgresql-mcp/internal/config"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Manager maintains one pool per database on the server. Pools are created
// lazily on first use and kept for the life of the process; tools address
// arbitrary databases, so connections cannot be pinned to a single dbname.
type Manager struct {
	cfg    config.Config
	cred   CredentialFunc
	logger *zap.Logger
	mu     sync.Mutex
	pools  map[string]*pgxpool.Pool
}

func NewManager(cfg config.Config, cred CredentialFunc, logger *zap.Logger) *Manager {
	return &Manager{cfg: cfg, cred: cred, logger: logger, pools: make(map[string]*pgxpool.Pool)}
}

// Pool returns a ready pool for dbname, creating and health-checking it on
// first use. An empty dbname resolves to the configured default database.
func (m *Manager) Pool(ctx context.Context, dbname string) (*pgxpool.Pool, error) {
	if dbname == "" {
		dbname = m.cfg.Database
	}
	m.mu.Lock()
	pool, ok := m.pools[dbname]
	m.mu.Unlock()
	if ok {
		return pool, nil
	}

	pool, err := NewPool(ctx, m.cfg, dbname, m.cred)
	if err != nil {
		return nil, err
	}
	pingCtx, cancel := context.WithTimeout(ctx, time.Duration(m.cfg.ConnectTimeoutSeconds)*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, err
	}

	m.mu.Lock()
	if existing, ok := m.pools[dbname]; ok {
		// lost the race, keep the first pool
		m.mu.Unlock()
		pool.Close()
		return existing, nil
	}
	m.pools[dbname] = pool
	m.mu.Unlock()
	m.logger.Debug("opened database pool", zap.String("database", dbname))
	return pool, nil
}

// Databases lists databases that currently have an open pool.
func (m *Manager) Databases() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.pools))
	for name := range m.pools {
		out = append(out, name)
	}
	return out
}

func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for name, pool := range m.pools {
		pool.Close()
		delete(m.pools, name)
	}
}
