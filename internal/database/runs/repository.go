// Package runs provides database operations for import run history.
//
// The import processor reports progress through this repository so the HTTP
// status endpoint can serve it without holding a reference to the live queue.
package runs

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"beyondbridge/internal/entities"
)

// Repository handles import run history operations.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// StartRun records the beginning of an import run.
func (r *Repository) StartRun(runID string, total int) error {
	now := time.Now()
	run := entities.ImportRun{
		RunID:     runID,
		Status:    entities.RunStatusRunning,
		Total:     total,
		StartedAt: now,
		UpdatedAt: now,
	}
	return r.db.Create(&run).Error
}

// UpdateRun updates progress counters of a running import.
func (r *Repository) UpdateRun(runID string, completed, failed int, currentItem, message string) error {
	return r.db.Model(&entities.ImportRun{}).
		Where("run_id = ?", runID).
		Updates(map[string]any{
			"completed":    completed,
			"failed":       failed,
			"current_item": currentItem,
			"message":      message,
			"updated_at":   time.Now(),
		}).Error
}

// CompleteRun marks a run as finished or cancelled.
func (r *Repository) CompleteRun(runID string, status entities.RunStatus, completed, failed int, message string) error {
	now := time.Now()
	return r.db.Model(&entities.ImportRun{}).
		Where("run_id = ?", runID).
		Updates(map[string]any{
			"status":       status,
			"completed":    completed,
			"failed":       failed,
			"current_item": "",
			"message":      message,
			"updated_at":   now,
			"completed_at": now,
		}).Error
}

// Latest returns the most recently started run, or nil when none exists.
func (r *Repository) Latest() (*entities.ImportRun, error) {
	var run entities.ImportRun
	err := r.db.Order("started_at DESC").First(&run).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// Get returns a run by its run id, or nil when unknown.
func (r *Repository) Get(runID string) (*entities.ImportRun, error) {
	var run entities.ImportRun
	err := r.db.Where("run_id = ?", runID).First(&run).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// DeleteOlderThan prunes finished runs past the retention period.
// Running records are never pruned.
func (r *Repository) DeleteOlderThan(retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention)
	result := r.db.Where("status <> ? AND started_at < ?", entities.RunStatusRunning, cutoff).
		Delete(&entities.ImportRun{})
	return result.RowsAffected, result.Error
}
