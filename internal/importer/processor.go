// Package importer drives the sequential import pipeline: a queue of
// user-selected content references is drained one task at a time through
// per-kind import handlers, with live progress reporting and cooperative
// cancellation.
package importer

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"

	"beyondbridge/internal/entities"
)

// Handler imports a single piece of content of one kind. Implementations
// fetch the provider payload, convert it and persist the host artifact.
type Handler interface {
	Import(ctx context.Context, id string, overwrite bool) error
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, id string, overwrite bool) error

func (f HandlerFunc) Import(ctx context.Context, id string, overwrite bool) error {
	return f(ctx, id, overwrite)
}

// RunRecorder persists run progress so it can be served after the fact.
type RunRecorder interface {
	StartRun(runID string, total int) error
	UpdateRun(runID string, completed, failed int, currentItem, message string) error
	CompleteRun(runID string, status entities.RunStatus, completed, failed int, message string) error
}

// LastImportMarker records the wall-clock time of the last finished run.
type LastImportMarker interface {
	SetLastImportNow() error
}

// Result is the aggregate outcome of one run.
type Result struct {
	RunID     string `json:"run_id"`
	Total     int    `json:"total"`
	Completed int    `json:"completed"`
	Failed    int    `json:"failed"`
	Cancelled bool   `json:"cancelled"`
}

// Processor owns the import queue for the duration of one run. Tasks are
// processed strictly one at a time, in selection order; a single task's
// failure never aborts the run. Only one run may be active at a time,
// process-wide.
type Processor struct {
	handlers map[entities.ContentKind]Handler
	recorder RunRecorder
	marker   LastImportMarker
	progress ProgressFunc

	mu      sync.Mutex
	running bool
	queue   *Queue
	runID   string
}

// NewProcessor creates a processor with its per-kind dispatch table.
func NewProcessor(handlers map[entities.ContentKind]Handler) *Processor {
	return &Processor{handlers: handlers}
}

// SetRunRecorder attaches persistent run-history recording.
func (p *Processor) SetRunRecorder(recorder RunRecorder) {
	p.recorder = recorder
}

// SetLastImportMarker attaches the last-import timestamp sink.
func (p *Processor) SetLastImportMarker(marker LastImportMarker) {
	p.marker = marker
}

// SetProgressFunc attaches the progress event sink.
func (p *Processor) SetProgressFunc(fn ProgressFunc) {
	p.progress = fn
}

// Enqueue builds a queue with one pending task per selection, preserving
// selection order. The overwrite flag applies uniformly to all tasks of the
// run.
func (p *Processor) Enqueue(selections []Selection, overwrite bool) (*Queue, error) {
	if len(selections) == 0 {
		return nil, ErrEmptySelection
	}

	queue := &Queue{Tasks: make([]*Task, 0, len(selections))}
	for _, sel := range selections {
		if !sel.Kind.Valid() {
			return nil, fmt.Errorf("unknown content kind %q", sel.Kind)
		}
		queue.Tasks = append(queue.Tasks, &Task{
			ID:        sel.ID,
			Kind:      sel.Kind,
			Overwrite: overwrite,
			Status:    entities.TaskStatusPending,
		})
	}
	return queue, nil
}

// Begin claims the processor for a run of the given queue and assigns the
// run ID. It fails with ErrImportRunning when another run is active. Callers
// must follow up with Run; Begin alone leaves the processor claimed.
func (p *Processor) Begin(queue *Queue) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running {
		return "", ErrImportRunning
	}
	p.running = true
	p.queue = queue
	p.runID = uuid.NewString()
	return p.runID, nil
}

// Start drains the queue sequentially. It fails immediately with
// ErrImportRunning when another run is active and blocks until the run
// finishes otherwise. Cancellation is checked between tasks; a cancelled
// run's in-flight task resolves naturally but keeps its forced failed state.
func (p *Processor) Start(ctx context.Context, queue *Queue) (Result, error) {
	runID, err := p.Begin(queue)
	if err != nil {
		return Result{}, err
	}
	return p.Run(ctx, runID, queue), nil
}

// Run drains a queue previously claimed with Begin and blocks until the run
// finishes.
func (p *Processor) Run(ctx context.Context, runID string, queue *Queue) Result {
	total := queue.Len()
	if p.recorder != nil {
		if err := p.recorder.StartRun(runID, total); err != nil {
			log.Printf("Import run %s: failed to record start: %v", runID, err)
		}
	}

	for _, task := range queue.Tasks {
		p.mu.Lock()
		if queue.cancelled {
			p.mu.Unlock()
			break
		}
		if task.Status != entities.TaskStatusPending {
			p.mu.Unlock()
			continue
		}
		task.Status = entities.TaskStatusProcessing
		p.mu.Unlock()

		p.emit(runID, queue, taskLabel(task),
			fmt.Sprintf("Importing %s (ID: %s)...", task.Kind.DisplayName(), task.ID))

		err := p.dispatch(ctx, task)

		p.mu.Lock()
		if task.Status != entities.TaskStatusProcessing {
			// Cancel forced this task to failed while its handler was in
			// flight; the late result is discarded.
			p.mu.Unlock()
			continue
		}
		if err != nil {
			task.Status = entities.TaskStatusFailed
			task.Error = err.Error()
		} else {
			task.Status = entities.TaskStatusCompleted
		}
		p.mu.Unlock()

		if err != nil {
			p.emit(runID, queue, "",
				fmt.Sprintf("Failed to import %s (ID: %s): %v", task.Kind.DisplayName(), task.ID, err))
		} else {
			p.emit(runID, queue, "",
				fmt.Sprintf("Successfully imported %s (ID: %s)", task.Kind.DisplayName(), task.ID))
		}
	}

	return p.finish(runID, queue)
}

// Cancel aborts the current run. Tasks in processing state are forced to
// failed; pending tasks stay pending and are not started. A no-op when no
// run is active.
func (p *Processor) Cancel() {
	p.mu.Lock()
	if !p.running || p.queue == nil {
		p.mu.Unlock()
		return
	}
	queue := p.queue
	runID := p.runID
	queue.cancelled = true
	for _, task := range queue.Tasks {
		if task.Status == entities.TaskStatusProcessing {
			task.Status = entities.TaskStatusFailed
			task.Error = cancelledMessage
		}
	}
	p.running = false
	p.mu.Unlock()

	p.emit(runID, queue, "", "Import cancelled.")
	log.Printf("Import run %s: cancelled", runID)
}

// Running reports whether a run is in progress.
func (p *Processor) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

// Snapshot returns the per-task state of the current or most recent queue.
func (p *Processor) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()

	snap := Snapshot{Running: p.running, RunID: p.runID, Tasks: []TaskView{}}
	if p.queue == nil {
		return snap
	}

	completed, failed := p.queue.counts()
	snap.Total = p.queue.Len()
	snap.Completed = completed
	snap.Failed = failed
	snap.Fraction = fraction(completed, failed, snap.Total)
	for _, t := range p.queue.Tasks {
		snap.Tasks = append(snap.Tasks, TaskView{
			ID:     t.ID,
			Kind:   t.Kind,
			Status: t.Status,
			Error:  t.Error,
		})
	}
	return snap
}

func (p *Processor) dispatch(ctx context.Context, task *Task) error {
	handler, ok := p.handlers[task.Kind]
	if !ok {
		return fmt.Errorf("no import handler for content kind %q", task.Kind)
	}
	return handler.Import(ctx, task.ID, task.Overwrite)
}

// finish closes out the run: clears the running flag, persists the outcome
// and the last-import timestamp, and emits the final progress event.
func (p *Processor) finish(runID string, queue *Queue) Result {
	p.mu.Lock()
	cancelled := queue.cancelled
	completed, failed := queue.counts()
	// A cancelled run's drain outlives its claim: Cancel already released
	// the flag, and a successor run may hold it by now. Only the run that
	// still owns the processor releases it.
	if p.runID == runID {
		p.running = false
	}
	p.mu.Unlock()

	result := Result{
		RunID:     runID,
		Total:     queue.Len(),
		Completed: completed,
		Failed:    failed,
		Cancelled: cancelled,
	}

	if cancelled {
		if p.recorder != nil {
			if err := p.recorder.CompleteRun(runID, entities.RunStatusCancelled, completed, failed, "Import cancelled"); err != nil {
				log.Printf("Import run %s: failed to record outcome: %v", runID, err)
			}
		}
		return result
	}

	if p.marker != nil {
		if err := p.marker.SetLastImportNow(); err != nil {
			log.Printf("Import run %s: failed to record last import time: %v", runID, err)
		}
	}
	p.emit(runID, queue, "", "Import completed!")
	message := fmt.Sprintf("Import completed: %d imported, %d failed", completed, failed)
	if p.recorder != nil {
		if err := p.recorder.CompleteRun(runID, entities.RunStatusCompleted, completed, failed, message); err != nil {
			log.Printf("Import run %s: failed to record outcome: %v", runID, err)
		}
	}
	log.Printf("Import run %s: %s", runID, message)
	return result
}

// emit captures a consistent snapshot under the lock, then reports it with
// the lock released so progress callbacks may call back into the processor.
func (p *Processor) emit(runID string, queue *Queue, currentItem, message string) {
	p.mu.Lock()
	completed, failed := queue.counts()
	total := queue.Len()
	p.mu.Unlock()

	if p.recorder != nil {
		if err := p.recorder.UpdateRun(runID, completed, failed, currentItem, message); err != nil {
			log.Printf("Import run %s: failed to record progress: %v", runID, err)
		}
	}
	if p.progress != nil {
		p.progress(Event{
			Fraction:  fraction(completed, failed, total),
			Completed: completed,
			Failed:    failed,
			Total:     total,
			Message:   message,
		})
	}
}

func taskLabel(task *Task) string {
	return fmt.Sprintf("%s %s", task.Kind.DisplayName(), task.ID)
}
