package repository_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/furniflow/erp-backend-go/internal/domain/settings"
	"github.com/furniflow/erp-backend-go/internal/repository"
	"github.com/furniflow/erp-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackup_RoundTrip(t *testing.T) {
	ctx := context.Background()
	src := memory.NewStore()
	cols := repository.NewCollections(src, "furniflow_")
	_, err := cols.Employees.Load(ctx)
	require.NoError(t, err)
	_, err = cols.Branches.Load(ctx)
	require.NoError(t, err)
	require.NoError(t, src.Set(ctx, "other_app_key", []byte(`[]`)))

	dump, err := repository.NewBackup(src, "furniflow_").Export(ctx)
	require.NoError(t, err)
	assert.Len(t, dump, 2)
	assert.NotContains(t, dump, "other_app_key")

	dst := memory.NewStore()
	require.NoError(t, repository.NewBackup(dst, "furniflow_").Import(ctx, dump))

	for key, raw := range dump {
		got, err := dst.Get(ctx, key)
		require.NoError(t, err)
		assert.JSONEq(t, string(raw), string(got))
	}
}

func TestBackup_ImportRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	b := repository.NewBackup(store, "furniflow_")

	tests := []struct {
		name   string
		backup map[string]json.RawMessage
	}{
		{"empty", map[string]json.RawMessage{}},
		{"foreign key", map[string]json.RawMessage{
			"furniflow_users": json.RawMessage(`[]`),
			"evil_users":      json.RawMessage(`[]`),
		}},
		{"object payload", map[string]json.RawMessage{"furniflow_users": json.RawMessage(`{"id":"u1"}`)}},
		{"broken json", map[string]json.RawMessage{"furniflow_users": json.RawMessage(`[{"id":`)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := b.Import(ctx, tt.backup)
			assert.ErrorIs(t, err, settings.ErrInvalidBackup)

			keys, err := store.Keys(ctx, "")
			require.NoError(t, err)
			assert.Empty(t, keys)
		})
	}
}
