package redis

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/furniflow/erp-backend-go/internal/repository"
	"github.com/redis/go-redis/v9"
)

const scanCount = 100

// Store keeps every collection as a plain string key. Update stages writes
// and flushes them in one MULTI/EXEC block.
type Store struct {
	client redis.UniversalClient

	// serializes Update calls within this process
	mu sync.Mutex
}

func NewStore(client redis.UniversalClient) *Store {
	return &Store{client: client}
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, repository.ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	return value, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

func (s *Store) Keys(ctx context.Context, prefix string) ([]string, error) {
	var (
		keys   []string
		cursor uint64
	)
	for {
		batch, next, err := s.client.Scan(ctx, cursor, prefix+"*", scanCount).Result()
		if err != nil {
			return nil, fmt.Errorf("scan %s*: %w", prefix, err)
		}
		keys = append(keys, batch...)
		if next == 0 {
			break
		}
		cursor = next
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *Store) Update(ctx context.Context, fn func(q repository.Querier) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &stagedTx{store: s, writes: make(map[string][]byte)}
	if err := fn(tx); err != nil {
		return err
	}
	if len(tx.order) == 0 {
		return nil
	}

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, key := range tx.order {
			pipe.Set(ctx, key, tx.writes[key], 0)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("commit staged writes: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

type stagedTx struct {
	store  *Store
	writes map[string][]byte
	order  []string
}

func (t *stagedTx) Get(ctx context.Context, key string) ([]byte, error) {
	if v, ok := t.writes[key]; ok {
		return v, nil
	}
	return t.store.Get(ctx, key)
}

func (t *stagedTx) Set(ctx context.Context, key string, value []byte) error {
	if _, ok := t.writes[key]; !ok {
		t.order = append(t.order, key)
	}
	t.writes[key] = value
	return nil
}
