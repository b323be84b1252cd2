package cron

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/furniflow/erp-backend-go/internal/domain/attendance"
	"github.com/furniflow/erp-backend-go/internal/domain/settings"
	"github.com/furniflow/erp-backend-go/internal/pkg/sse"
	"github.com/furniflow/erp-backend-go/internal/pkg/storage"
)

// LiveBoardEvent is the SSE event name carrying a live attendance board.
const LiveBoardEvent = "attendance.live"

// SnapshotDir is where backup snapshots are written inside the storage.
const SnapshotDir = "snapshots"

// LiveBoardJob pushes a fresh attendance board to every branch that has an
// open stream.
type LiveBoardJob struct {
	attendance attendance.AttendanceService
	hub        *sse.Hub
}

func NewLiveBoardJob(attendanceSvc attendance.AttendanceService, hub *sse.Hub) *LiveBoardJob {
	return &LiveBoardJob{attendance: attendanceSvc, hub: hub}
}

func (j *LiveBoardJob) Run(ctx context.Context) error {
	for _, topic := range j.hub.Topics() {
		board, err := j.attendance.LiveBoard(ctx, topic)
		if err != nil {
			return fmt.Errorf("failed to build live board for %s: %w", topic, err)
		}
		j.hub.Publish(topic, sse.Event{Event: LiveBoardEvent, Data: board})
	}
	return nil
}

// BackupJob writes a full export to storage and keeps the newest Keep files.
type BackupJob struct {
	backup  settings.BackupStore
	storage storage.FileStorage
	keep    int
	now     func() time.Time
}

func NewBackupJob(backup settings.BackupStore, fs storage.FileStorage, keep int) *BackupJob {
	return &BackupJob{backup: backup, storage: fs, keep: keep, now: time.Now}
}

func (j *BackupJob) Run(ctx context.Context) error {
	snapshot, err := j.backup.Export(ctx)
	if err != nil {
		return fmt.Errorf("failed to export backup: %w", err)
	}
	body, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}

	name := fmt.Sprintf("%s/backup-%s.json", SnapshotDir, j.now().UTC().Format("20060102-150405"))
	path, err := j.storage.Save(ctx, name, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to save backup: %w", err)
	}
	slog.Info("backup snapshot written", "path", path, "keys", len(snapshot), "bytes", len(body))

	return j.prune(ctx)
}

func (j *BackupJob) prune(ctx context.Context) error {
	if j.keep <= 0 {
		return nil
	}
	files, err := j.storage.List(ctx, SnapshotDir)
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	for len(files) > j.keep {
		if err := j.storage.Delete(ctx, files[0].Path); err != nil {
			return fmt.Errorf("failed to prune backup: %w", err)
		}
		slog.Debug("backup snapshot pruned", "path", files[0].Path)
		files = files[1:]
	}
	return nil
}
