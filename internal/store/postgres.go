package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresBackend keeps snapshots in a single keyed table so state
// survives across hosts.
type PostgresBackend struct {
	Pool *pgxpool.Pool
}

func NewPostgresBackend(ctx context.Context, databaseURL string) (*PostgresBackend, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	b := &PostgresBackend{Pool: pool}
	if err := b.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return b, nil
}

func (b *PostgresBackend) ensureSchema(ctx context.Context) error {
	_, err := b.Pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS scheduler_snapshots (
			key TEXT PRIMARY KEY,
			data JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`)
	return err
}

func (b *PostgresBackend) Ping(ctx context.Context) error {
	return b.Pool.Ping(ctx)
}

func (b *PostgresBackend) Load(ctx context.Context, key string) ([]byte, bool, error) {
	var data []byte
	err := b.Pool.QueryRow(ctx, `SELECT data FROM scheduler_snapshots WHERE key = $1`, key).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (b *PostgresBackend) Save(ctx context.Context, key string, data []byte) error {
	_, err := b.Pool.Exec(ctx, `
		INSERT INTO scheduler_snapshots (key, data, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET data = EXCLUDED.data, updated_at = NOW()
	`, key, data)
	return err
}

func (b *PostgresBackend) Clear(ctx context.Context, key string) error {
	_, err := b.Pool.Exec(ctx, `DELETE FROM scheduler_snapshots WHERE key = $1`, key)
	return err
}

func (b *PostgresBackend) Close() {
	b.Pool.Close()
}
