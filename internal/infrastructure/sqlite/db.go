// Package sqlite implementa los repositorios sobre SQLite embebido (modernc.org/sqlite, sin cgo).
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS customers (
	id                TEXT PRIMARY KEY NOT NULL,
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
	id      TEXT PRIMARY KEY NOT NULL,
	company TEXT NOT NULL
);
`

// Open abre (o crea) la base en path y aplica el esquema. Usar ":memory:" en tests.
// Se limita a una conexión: un solo escritor y, en memoria, una sola base compartida.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("abrir sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrar esquema: %w", err)
	}
	return db, nil
}
