package http

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"beyondbridge/internal/database/runs"
	"beyondbridge/internal/importer"
	"beyondbridge/internal/tasks"
)

// ImportController drives import runs over the HTTP surface.
type ImportController struct {
	processor     *importer.Processor
	runs          *runs.Repository
	taskClient    *tasks.Client
	retentionDays int
}

func NewImportController(processor *importer.Processor, runRepo *runs.Repository, taskClient *tasks.Client, retentionDays int) *ImportController {
	return &ImportController{
		processor:     processor,
		runs:          runRepo,
		taskClient:    taskClient,
		retentionDays: retentionDays,
	}
}

// ImportRequest is the request body for starting an import run.
type ImportRequest struct {
	Selections []importer.Selection `json:"selections"`
	Overwrite  bool                 `json:"overwrite"`
}

// StartImport handles POST /api/import
// The queue is claimed synchronously so concurrent starts get a 409, then
// drained in the background; progress is polled via GET /api/import/status.
func (ic *ImportController) StartImport(c *gin.Context) {
	var req ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	queue, err := ic.processor.Enqueue(req.Selections, req.Overwrite)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	runID, err := ic.processor.Begin(queue)
	if err != nil {
		if errors.Is(err, importer.ErrImportRunning) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	go func() {
		result := ic.processor.Run(context.Background(), runID, queue)
		log.Printf("Import run %s finished: %d/%d imported, %d failed",
			result.RunID, result.Completed, result.Total, result.Failed)

		// Each finished run queues a history cleanup so retention keeps up
		// with new records.
		if ic.taskClient != nil {
			if _, err := ic.taskClient.Add(tasks.CleanupRunsTask{RetentionDays: ic.retentionDays}).Save(); err != nil {
				log.Printf("Failed to queue run history cleanup: %v", err)
			}
		}
	}()

	c.JSON(http.StatusAccepted, gin.H{
		"run_id": runID,
		"total":  queue.Len(),
	})
}

// GetStatus handles GET /api/import/status
// Serves the live snapshot while a queue exists in memory; falls back to the
// last persisted run after a restart.
func (ic *ImportController) GetStatus(c *gin.Context) {
	snap := ic.processor.Snapshot()
	if snap.RunID != "" {
		c.JSON(http.StatusOK, snap)
		return
	}

	if ic.runs != nil {
		run, err := ic.runs.Latest()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if run != nil {
			c.JSON(http.StatusOK, run)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"running": false})
}

// CancelImport handles POST /api/import/cancel
// A no-op when nothing is running.
func (ic *ImportController) CancelImport(c *gin.Context) {
	ic.processor.Cancel()
	c.JSON(http.StatusOK, gin.H{"running": ic.processor.Running()})
}
