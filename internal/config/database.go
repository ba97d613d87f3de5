package config

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// NewDatabasePool opens the PostgreSQL pool described by DatabaseURL and the database section
func NewDatabasePool(ctx context.Context, config *Config) (*pgxpool.Pool, error) {
	poolConfig, err := config.PoolConfig()
	if err != nil {
		return nil, err
	}

	if config.Database.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, config.Database.ConnectTimeout)
		defer cancel()
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return pool, nil
}

// PoolConfig builds the pgxpool configuration without connecting.
// Zero values in the database section keep pgxpool's own defaults.
func (c *Config) PoolConfig() (*pgxpool.Config, error) {
	dbConfig, err := c.ParseDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	poolConfig, err := pgxpool.ParseConfig(dbConfig.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	pc := c.Database
	if pc.MaxConns < 0 || pc.MinConns < 0 {
		return nil, fmt.Errorf("database pool sizes must not be negative")
	}
	if pc.MaxConns > 0 {
		poolConfig.MaxConns = pc.MaxConns
	}
	if pc.MinConns > poolConfig.MaxConns {
		return nil, fmt.Errorf("database min_conns (%d) exceeds max_conns (%d)", pc.MinConns, poolConfig.MaxConns)
	}
	poolConfig.MinConns = pc.MinConns
	if pc.MaxConnLifetime > 0 {
		poolConfig.MaxConnLifetime = pc.MaxConnLifetime
	}
	if pc.MaxConnIdleTime > 0 {
		poolConfig.MaxConnIdleTime = pc.MaxConnIdleTime
	}
	if pc.ConnectTimeout > 0 {
		poolConfig.ConnConfig.ConnectTimeout = pc.ConnectTimeout
	}

	return poolConfig, nil
}

// CloseDatabasePool closes pool when it is set
func CloseDatabasePool(pool *pgxpool.Pool) {
	if pool != nil {
		pool.Close()
	}
}
