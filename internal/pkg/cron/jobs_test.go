package cron

import (
	"context"
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/furniflow/erp-backend-go/internal/domain/attendance"
	"github.com/furniflow/erp-backend-go/internal/pkg/sse"
	"github.com/furniflow/erp-backend-go/internal/pkg/storage"
	"github.com/furniflow/erp-backend-go/internal/repository"
	"github.com/furniflow/erp-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type boardOnly struct {
	attendance.AttendanceService
	scopes []string
}

func (b *boardOnly) LiveBoard(_ context.Context, scope string) (attendance.LiveBoardResponse, error) {
	b.scopes = append(b.scopes, scope)
	return attendance.LiveBoardResponse{Date: "2024-06-01", Present: len(b.scopes)}, nil
}

func TestLiveBoardJob_PublishesPerTopic(t *testing.T) {
	hub := sse.NewHub()
	cai, unsub := hub.Subscribe("CAI")
	defer unsub()

	svc := &boardOnly{}
	require.NoError(t, NewLiveBoardJob(svc, hub).Run(context.Background()))

	assert.Equal(t, []string{"CAI"}, svc.scopes)
	select {
	case ev := <-cai:
		assert.Equal(t, LiveBoardEvent, ev.Event)
		board, ok := ev.Data.(attendance.LiveBoardResponse)
		require.True(t, ok)
		assert.Equal(t, "2024-06-01", board.Date)
	default:
		t.Fatal("no live board published")
	}
}

func TestBackupJob_WritesAndPrunes(t *testing.T) {
	ctx := context.Background()
	cols := repository.NewCollections(memory.NewStore(), "test_")
	_, err := cols.Branches.Load(ctx)
	require.NoError(t, err)
	_, err = cols.Roles.Load(ctx)
	require.NoError(t, err)

	fs, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	job := NewBackupJob(repository.NewBackup(cols.Store, cols.Namespace), fs, 2)
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		job.now = func() time.Time { return base.Add(time.Duration(i) * time.Hour) }
		require.NoError(t, job.Run(ctx))
	}

	files, err := fs.List(ctx, SnapshotDir)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "snapshots/backup-20240601-010000.json", files[0].Path)
	assert.Equal(t, "snapshots/backup-20240601-020000.json", files[1].Path)

	f, err := fs.Open(ctx, files[1].Path)
	require.NoError(t, err)
	defer f.Close()
	body, err := io.ReadAll(f)
	require.NoError(t, err)

	var snapshot map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(body, &snapshot))
	assert.Contains(t, snapshot, cols.Branches.Key())
	assert.Contains(t, snapshot, cols.Roles.Key())
}

func TestScheduler_DisabledAndRunOnce(t *testing.T) {
	s := NewScheduler(context.Background())
	var ran []string
	s.AddJob("off", 0, func(context.Context) error { ran = append(ran, "off"); return nil })
	s.AddJob("on", time.Hour, func(context.Context) error { ran = append(ran, "on"); return nil })

	s.RunOnce(context.Background())
	assert.Equal(t, []string{"on"}, ran)

	s.Start()
	s.Stop()
}
