package importer

import (
	"beyondbridge/internal/entities"
)

// Selection is one user-selected piece of content to import.
type Selection struct {
	ID   string               `json:"id"`
	Kind entities.ContentKind `json:"kind"`
}

// Task is one unit of work in an import run. ID and Kind are fixed at
// creation; Overwrite is set once at enqueue time for the whole run.
// Error is set exactly when Status is failed.
type Task struct {
	ID        string               `json:"id"`
	Kind      entities.ContentKind `json:"kind"`
	Overwrite bool                 `json:"overwrite"`
	Status    entities.TaskStatus  `json:"status"`
	Error     string               `json:"error,omitempty"`
}

// Queue is an ordered list of import tasks, in user selection order.
// A queue is built fresh per import action and never persisted; the
// processor exclusively owns it for the duration of one run.
type Queue struct {
	Tasks []*Task

	cancelled bool
}

// Len returns the number of tasks in the queue.
func (q *Queue) Len() int {
	return len(q.Tasks)
}

// counts tallies terminal task states. Caller must hold the processor lock
// while the queue is being drained.
func (q *Queue) counts() (completed, failed int) {
	for _, t := range q.Tasks {
		switch t.Status {
		case entities.TaskStatusCompleted:
			completed++
		case entities.TaskStatusFailed:
			failed++
		}
	}
	return completed, failed
}
