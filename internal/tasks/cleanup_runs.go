package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"
)

// RunCleaner provides the ability to delete old import run records.
type RunCleaner interface {
	DeleteOlderThan(retention time.Duration) (int64, error)
}

// CleanupRunsTask removes import run history older than the configured
// retention period.
type CleanupRunsTask struct {
	RetentionDays int `json:"retention_days"`
}

// Config returns the queue configuration for run cleanup tasks.
func (t CleanupRunsTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "cleanup_import_runs",
		MaxAttempts: 3,
		Backoff:     5 * time.Minute,
		Timeout:     2 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// CleanupRunsProcessor creates a processor function for CleanupRunsTask.
func CleanupRunsProcessor(cleaner RunCleaner) backlite.QueueProcessor[CleanupRunsTask] {
	return func(ctx context.Context, task CleanupRunsTask) error {
		if cleaner == nil {
			return fmt.Errorf("run cleaner not configured")
		}

		retentionDays := task.RetentionDays
		if retentionDays <= 0 {
			retentionDays = 30
		}
		retention := time.Duration(retentionDays) * 24 * time.Hour

		deleted, err := cleaner.DeleteOlderThan(retention)
		if err != nil {
			return fmt.Errorf("cleanup import runs: %w", err)
		}

		log.Printf("[TASK] Cleaned up %d import runs older than %d days", deleted, retentionDays)
		return nil
	}
}

// NewCleanupRunsQueue creates a backlite queue for run cleanup tasks.
func NewCleanupRunsQueue(cleaner RunCleaner) backlite.Queue {
	return backlite.NewQueue(CleanupRunsProcessor(cleaner))
}
