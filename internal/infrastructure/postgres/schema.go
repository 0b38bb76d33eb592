package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS payment_requests (
	id         UUID PRIMARY KEY,
	reference  TEXT NOT NULL UNIQUE,
	amount     NUMERIC(12, 2) NOT NULL CHECK (amount >= 0),
	payload    TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS idempotency_keys (
	key           TEXT PRIMARY KEY,
	response_code INT NOT NULL,
	response_body JSONB NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL
);
`

// EnsureSchema creates the tables used by the repositories if missing.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, schema)
	return err
}
