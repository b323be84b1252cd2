package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_SaveOpenDelete(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	path, err := s.Save(ctx, "snapshots/a.json", strings.NewReader(`{"k":[]}`))
	require.NoError(t, err)
	assert.Equal(t, "snapshots/a.json", path)

	f, err := s.Open(ctx, path)
	require.NoError(t, err)
	body, err := io.ReadAll(f)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	assert.JSONEq(t, `{"k":[]}`, string(body))

	files, err := s.List(ctx, "snapshots")
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "snapshots/a.json", files[0].Path)

	require.NoError(t, s.Delete(ctx, path))
	require.NoError(t, s.Delete(ctx, path))
	_, err = s.Open(ctx, path)
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestLocalStorage_RejectsTraversal(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	_, err = s.Save(ctx, "../escape.json", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrInvalidPath)
	_, err = s.Open(ctx, "../../etc/passwd")
	assert.ErrorIs(t, err, ErrInvalidPath)
}

func TestLocalStorage_ListMissingDir(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	files, err := s.List(context.Background(), "nothing-here")
	require.NoError(t, err)
	assert.Empty(t, files)
}
