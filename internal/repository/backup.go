package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/furniflow/erp-backend-go/internal/domain/settings"
	"golang.org/x/sync/errgroup"
)

// Backup dumps and restores every collection stored under one namespace.
type Backup struct {
	store     Store
	namespace string
}

func NewBackup(store Store, namespace string) *Backup {
	return &Backup{store: store, namespace: namespace}
}

// Export returns the raw payload of every namespaced key.
func (b *Backup) Export(ctx context.Context) (map[string]json.RawMessage, error) {
	keys, err := b.store.Keys(ctx, b.namespace)
	if err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}

	var mu sync.Mutex
	out := make(map[string]json.RawMessage, len(keys))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, key := range keys {
		g.Go(func() error {
			raw, err := b.store.Get(gctx, key)
			if err != nil {
				return fmt.Errorf("read %s: %w", key, err)
			}
			mu.Lock()
			out[key] = json.RawMessage(raw)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Import validates the whole backup first and then overwrites its keys in
// one update. Keys absent from the backup are left untouched.
func (b *Backup) Import(ctx context.Context, backup map[string]json.RawMessage) error {
	if len(backup) == 0 {
		return fmt.Errorf("%w: no collections", settings.ErrInvalidBackup)
	}
	for key, raw := range backup {
		if !strings.HasPrefix(key, b.namespace) {
			return fmt.Errorf("%w: key %q is outside namespace %q", settings.ErrInvalidBackup, key, b.namespace)
		}
		if !isJSONArray(raw) {
			return fmt.Errorf("%w: %q is not a list", settings.ErrInvalidBackup, key)
		}
	}

	err := b.store.Update(ctx, func(q Querier) error {
		for key, raw := range backup {
			if err := q.Set(ctx, key, raw); err != nil {
				return fmt.Errorf("write %s: %w", key, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("backup imported", "namespace", b.namespace, "collections", len(backup))
	return nil
}

func isJSONArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return false
	}
	var items []json.RawMessage
	return json.Unmarshal(trimmed, &items) == nil
}
