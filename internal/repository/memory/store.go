package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/furniflow/erp-backend-go/internal/repository"
)

// Store keeps payloads in process memory. Used by tests and STORE_DRIVER=memory.
type Store struct {
	mu   sync.RWMutex
	data map[string][]byte

	// serializes Update calls
	txMu sync.Mutex
}

func NewStore() *Store {
	return &Store{data: make(map[string][]byte)}
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[key]
	if !ok {
		return nil, repository.ErrKeyNotFound
	}
	return clone(v), nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = clone(value)
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, key)
	return nil
}

func (s *Store) Keys(ctx context.Context, prefix string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *Store) Update(ctx context.Context, fn func(q repository.Querier) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	tx := &stagedTx{base: s, writes: make(map[string][]byte)}
	if err := fn(tx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range tx.writes {
		s.data[k] = v
	}
	return nil
}

func (s *Store) Close() error {
	return nil
}

type stagedTx struct {
	base   *Store
	writes map[string][]byte
}

func (t *stagedTx) Get(ctx context.Context, key string) ([]byte, error) {
	if v, ok := t.writes[key]; ok {
		return clone(v), nil
	}
	return t.base.Get(ctx, key)
}

func (t *stagedTx) Set(ctx context.Context, key string, value []byte) error {
	t.writes[key] = clone(value)
	return nil
}

func clone(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
