package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/vcmdu/Stock-master/internal/domain/repository"
)

var (
	_ repository.BatchKVStore = (*Store)(nil)
	_ repository.SizedKVStore = (*Store)(nil)
)

const schemaSQL = `
	CREATE TABLE IF NOT EXISTS kv_store (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		bytes      NUMERIC(20, 0) NOT NULL DEFAULT 0,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`

const upsertSQL = `
	INSERT INTO kv_store (key, value, bytes, updated_at)
	VALUES ($1, $2, $3, now())
	ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, bytes = EXCLUDED.bytes, updated_at = now()`

// Store almacén clave/valor sobre la tabla kv_store de PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore construye el almacén. Llamar EnsureSchema antes del primer uso.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// EnsureSchema crea la tabla kv_store si no existe.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("crear kv_store: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.pool.QueryRow(ctx, `SELECT value FROM kv_store WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) || (err != nil && isUndefinedTable(err)) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("postgres get %s: %w", key, err)
	}
	return value, true, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	return set(ctx, s.pool, key, value)
}

// SetMany escribe todas las claves en una sola transacción.
func (s *Store) SetMany(ctx context.Context, values map[string]string) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for key, value := range values {
		if err := set(ctx, tx, key, value); err != nil {
			return err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Size devuelve el total de bytes guardados según la columna bytes (NUMERIC, decodificado con
// pgx-shopspring-decimal). /health lo expone como storageBytes.
func (s *Store) Size(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	if err := s.pool.QueryRow(ctx, `SELECT COALESCE(SUM(bytes), 0) FROM kv_store`).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("postgres size: %w", err)
	}
	return total, nil
}

func set(ctx context.Context, q Querier, key, value string) error {
	if _, err := q.Exec(ctx, upsertSQL, key, value, decimal.NewFromInt(int64(len(value)))); err != nil {
		return fmt.Errorf("postgres set %s: %w", key, err)
	}
	return nil
}
