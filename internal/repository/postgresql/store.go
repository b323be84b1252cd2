package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/furniflow/erp-backend-go/internal/pkg/database"
	"github.com/furniflow/erp-backend-go/internal/repository"
	"github.com/jackc/pgx/v5"
)

const schema = `CREATE TABLE IF NOT EXISTS kv_store (
	key        TEXT PRIMARY KEY,
	value      JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// storeLockID keys the advisory lock that serializes Update calls across
// every API process sharing the database.
const storeLockID int64 = 0x66757266

type storeImpl struct {
	db *database.DB
}

func NewStore(ctx context.Context, db *database.DB) (repository.Store, error) {
	if _, err := db.Exec(ctx, schema); err != nil {
		return nil, fmt.Errorf("create kv_store: %w", err)
	}
	return &storeImpl{db: db}, nil
}

func (s *storeImpl) Get(ctx context.Context, key string) ([]byte, error) {
	return get(ctx, s.db.Pool, key)
}

func (s *storeImpl) Set(ctx context.Context, key string, value []byte) error {
	return set(ctx, s.db.Pool, key, value)
}

func (s *storeImpl) Delete(ctx context.Context, key string) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM kv_store WHERE key = $1`, key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

func (s *storeImpl) Keys(ctx context.Context, prefix string) ([]string, error) {
	rows, err := s.db.Query(ctx, `SELECT key FROM kv_store WHERE starts_with(key, $1) ORDER BY key`, prefix)
	if err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}
	keys, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scan keys: %w", err)
	}
	return keys, nil
}

func (s *storeImpl) Update(ctx context.Context, fn func(q repository.Querier) error) error {
	return WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, storeLockID); err != nil {
			return fmt.Errorf("acquire store lock: %w", err)
		}
		return fn(&txQuerier{tx: tx})
	})
}

func (s *storeImpl) Close() error {
	s.db.Close()
	return nil
}

type txQuerier struct {
	tx pgx.Tx
}

func (t *txQuerier) Get(ctx context.Context, key string) ([]byte, error) {
	return get(ctx, t.tx, key)
}

func (t *txQuerier) Set(ctx context.Context, key string, value []byte) error {
	return set(ctx, t.tx, key, value)
}

func get(ctx context.Context, q database.Querier, key string) ([]byte, error) {
	var value []byte
	err := q.QueryRow(ctx, `SELECT value FROM kv_store WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	return value, nil
}

func set(ctx context.Context, q database.Querier, key string, value []byte) error {
	_, err := q.Exec(ctx,
		`INSERT INTO kv_store (key, value, updated_at) VALUES ($1, $2::jsonb, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		key, string(value),
	)
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}
