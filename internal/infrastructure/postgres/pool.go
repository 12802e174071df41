// Package postgres implementa los repositorios sobre PostgreSQL (pgx). Es el almacén
// alternativo al SQLite embebido, seleccionado con STORE_DRIVER=postgres.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/notify-renewals/pkg/config"
)

const schema = `
CREATE TABLE IF NOT EXISTS customers (
	id                TEXT PRIMARY KEY,
	company           TEXT NOT NULL,
	villa             TEXT,
	telephone         TEXT,
	subscription      INTEGER NOT NULL,
	subscription_date TEXT NOT NULL,
	renewal_date      TEXT NOT NULL,
	enabled           INTEGER NOT NULL DEFAULT 1
);

CREATE INDEX IF NOT EXISTS idx_customers_renewal_date ON customers (renewal_date);

CREATE TABLE IF NOT EXISTS companies (
	id      TEXT PRIMARY KEY,
	company TEXT NOT NULL
);
`

// NewPool crea un pool de conexiones PostgreSQL usando la configuración de la app
// y aplica el esquema.
func NewPool(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}

	poolConfig.MaxConns = 4
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("crear pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping DB: %w", err)
	}
	if err := EnsureSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// EnsureSchema crea las tablas si no existen.
func EnsureSchema(ctx context.Context, q Querier) error {
	if _, err := q.Exec(ctx, schema); err != nil {
		return fmt.Errorf("migrar esquema: %w", err)
	}
	return nil
}
