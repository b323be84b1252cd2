package redis

import (
	"context"
	"errors"
	"testing"

	"github.com/furniflow/erp-backend-go/internal/repository"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_Get(t *testing.T) {
	ctx := context.Background()
	client, mock := redismock.NewClientMock()
	store := NewStore(client)

	mock.ExpectGet("furniflow_orders").RedisNil()
	_, err := store.Get(ctx, "furniflow_orders")
	assert.ErrorIs(t, err, repository.ErrKeyNotFound)

	mock.ExpectGet("furniflow_orders").SetVal(`[{"id":"o1"}]`)
	got, err := store.Get(ctx, "furniflow_orders")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"o1"}]`, string(got))

	mock.ExpectGet("furniflow_orders").SetErr(errors.New("connection reset"))
	_, err = store.Get(ctx, "furniflow_orders")
	require.Error(t, err)
	assert.NotErrorIs(t, err, repository.ErrKeyNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_SetAndDelete(t *testing.T) {
	ctx := context.Background()
	client, mock := redismock.NewClientMock()
	store := NewStore(client)

	mock.ExpectSet("furniflow_users", []byte(`[]`), 0).SetVal("OK")
	require.NoError(t, store.Set(ctx, "furniflow_users", []byte(`[]`)))

	mock.ExpectDel("furniflow_users").SetVal(1)
	require.NoError(t, store.Delete(ctx, "furniflow_users"))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_KeysScansAllPages(t *testing.T) {
	ctx := context.Background()
	client, mock := redismock.NewClientMock()
	store := NewStore(client)

	mock.ExpectScan(0, "furniflow_*", scanCount).SetVal([]string{"furniflow_orders"}, 42)
	mock.ExpectScan(42, "furniflow_*", scanCount).SetVal([]string{"furniflow_branches"}, 0)

	keys, err := store.Keys(ctx, "furniflow_")
	require.NoError(t, err)
	assert.Equal(t, []string{"furniflow_branches", "furniflow_orders"}, keys)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_UpdateFlushesInOneTransaction(t *testing.T) {
	ctx := context.Background()
	client, mock := redismock.NewClientMock()
	store := NewStore(client)

	mock.ExpectGet("furniflow_orders").SetVal(`[]`)
	mock.ExpectTxPipeline()
	mock.ExpectSet("furniflow_orders", []byte(`[{"id":"o1"}]`), 0).SetVal("OK")
	mock.ExpectSet("furniflow_transactions", []byte(`[{"id":"t1"}]`), 0).SetVal("OK")
	mock.ExpectTxPipelineExec()

	err := store.Update(ctx, func(q repository.Querier) error {
		if _, err := q.Get(ctx, "furniflow_orders"); err != nil {
			return err
		}
		if err := q.Set(ctx, "furniflow_orders", []byte(`[{"id":"o1"}]`)); err != nil {
			return err
		}
		staged, err := q.Get(ctx, "furniflow_orders")
		if err != nil {
			return err
		}
		assert.Equal(t, `[{"id":"o1"}]`, string(staged))
		return q.Set(ctx, "furniflow_transactions", []byte(`[{"id":"t1"}]`))
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_UpdateErrorWritesNothing(t *testing.T) {
	ctx := context.Background()
	client, mock := redismock.NewClientMock()
	store := NewStore(client)

	err := store.Update(ctx, func(q repository.Querier) error {
		if err := q.Set(ctx, "furniflow_orders", []byte(`[]`)); err != nil {
			return err
		}
		return errors.New("validation failed")
	})
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
