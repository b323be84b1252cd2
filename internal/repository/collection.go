package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
)

// Collection persists a whole list of T under a single key. The first Load
// of an absent key writes the seed and returns it.
type Collection[T any] struct {
	store Store
	key   string
	seed  func() []T
}

func NewCollection[T any](store Store, key string, seed func() []T) *Collection[T] {
	return &Collection[T]{store: store, key: key, seed: seed}
}

func (c *Collection[T]) Key() string {
	return c.key
}

func (c *Collection[T]) Load(ctx context.Context) ([]T, error) {
	q := GetQuerier(ctx, c.store)

	raw, err := q.Get(ctx, c.key)
	if errors.Is(err, ErrKeyNotFound) {
		items := c.seedItems()
		if err := c.write(ctx, q, items); err != nil {
			return nil, fmt.Errorf("seed %s: %w", c.key, err)
		}
		return items, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", c.key, err)
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		slog.Warn("unreadable collection payload, using seed data", "key", c.key, "error", err)
		return c.seedItems(), nil
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// Store overwrites the whole collection.
func (c *Collection[T]) Store(ctx context.Context, items []T) error {
	if err := c.write(ctx, GetQuerier(ctx, c.store), items); err != nil {
		return fmt.Errorf("store %s: %w", c.key, err)
	}
	return nil
}

func (c *Collection[T]) write(ctx context.Context, q Querier, items []T) error {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return q.Set(ctx, c.key, raw)
}

func (c *Collection[T]) seedItems() []T {
	if c.seed == nil {
		return []T{}
	}
	items := c.seed()
	if items == nil {
		return []T{}
	}
	return items
}
