package importer

import (
	"beyondbridge/internal/entities"
)

// Event is a progress report emitted after every task status transition.
// Fraction counts terminal tasks over the total, by index, not weighted by
// task cost.
type Event struct {
	Fraction  float64 `json:"fraction"`
	Completed int     `json:"completed"`
	Failed    int     `json:"failed"`
	Total     int     `json:"total"`
	Message   string  `json:"message"`
}

// ProgressFunc receives progress events. It is invoked outside the
// processor's lock, so a callback may safely call back into the processor.
type ProgressFunc func(Event)

// TaskView is a point-in-time copy of one task's state.
type TaskView struct {
	ID     string               `json:"id"`
	Kind   entities.ContentKind `json:"kind"`
	Status entities.TaskStatus  `json:"status"`
	Error  string               `json:"error,omitempty"`
}

// Snapshot is a point-in-time view of the processor's current (or most
// recent) queue.
type Snapshot struct {
	Running   bool       `json:"running"`
	RunID     string     `json:"run_id,omitempty"`
	Total     int        `json:"total"`
	Completed int        `json:"completed"`
	Failed    int        `json:"failed"`
	Fraction  float64    `json:"fraction"`
	Tasks     []TaskView `json:"tasks"`
}

func fraction(completed, failed, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(completed+failed) / float64(total)
}
