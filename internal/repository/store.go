package repository

import (
	"context"
	"errors"
	"fmt"
)

var ErrKeyNotFound = errors.New("key not found")

// Querier reads and writes raw collection payloads, either directly against
// a store or inside an Update.
type Querier interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Store is the key-value durability boundary shared by every collection.
type Store interface {
	Querier
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context, prefix string) ([]string, error)
	// Update runs fn against a querier whose writes are committed together
	// when fn returns nil and discarded otherwise.
	Update(ctx context.Context, fn func(q Querier) error) error
	Close() error
}

type txKey struct{}

// WithTransaction executes fn inside a store update. Collections reached
// through ctx inside fn read and write through the same update.
func WithTransaction(ctx context.Context, store Store, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(Querier); ok {
		// Already inside an update, join it.
		return fn(ctx)
	}

	err := store.Update(ctx, func(q Querier) error {
		return fn(context.WithValue(ctx, txKey{}, q))
	})
	if err != nil {
		return fmt.Errorf("store transaction: %w", err)
	}
	return nil
}

// GetQuerier returns either the in-flight update or the store itself.
func GetQuerier(ctx context.Context, store Store) Querier {
	if q, ok := ctx.Value(txKey{}).(Querier); ok {
		return q
	}
	return store
}
