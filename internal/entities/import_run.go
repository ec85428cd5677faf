package entities

import (
	"time"
)

type RunStatus string

const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusCancelled RunStatus = "cancelled"
)

// ImportRun records the aggregate outcome of one import run. Per-task state
// lives only in memory for the duration of the run; runs are kept as history
// and pruned by the cleanup task after the retention period.
type ImportRun struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	RunID       string     `gorm:"uniqueIndex;size:36" json:"run_id"`
	Status      RunStatus  `gorm:"size:20" json:"status"`
	Total       int        `json:"total"`
	Completed   int        `json:"completed"`
	Failed      int        `json:"failed"`
	CurrentItem string     `gorm:"size:512" json:"current_item,omitempty"`
	Message     string     `gorm:"type:text" json:"message,omitempty"`
	StartedAt   time.Time  `json:"started_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

func (ImportRun) TableName() string {
	return "import_runs"
}
