package http

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"beyondbridge/internal/database"
	"beyondbridge/internal/database/runs"
	"beyondbridge/internal/entities"
	"beyondbridge/internal/importer"
	"beyondbridge/internal/tasks"
)

func setupImportRouter(t *testing.T, handler importer.Handler) (*gin.Engine, *importer.Processor) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	processor := importer.NewProcessor(map[entities.ContentKind]importer.Handler{
		entities.ContentKindAdventure: handler,
		entities.ContentKindCharacter: handler,
	})
	controller := NewImportController(processor, nil, nil, 0)

	router := gin.New()
	router.POST("/api/import", controller.StartImport)
	router.GET("/api/import/status", controller.GetStatus)
	router.POST("/api/import/cancel", controller.CancelImport)
	return router, processor
}

func postImport(t *testing.T, router *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/import", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func waitForIdle(t *testing.T, processor *importer.Processor) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for processor.Running() {
		if time.Now().After(deadline) {
			t.Fatal("import run did not finish in time")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestImportController_StartImport(t *testing.T) {
	t.Run("accepts a valid selection and runs it", func(t *testing.T) {
		var mu sync.Mutex
		var imported []string
		handler := importer.HandlerFunc(func(_ context.Context, id string, _ bool) error {
			mu.Lock()
			imported = append(imported, id)
			mu.Unlock()
			return nil
		})

		router, processor := setupImportRouter(t, handler)

		w := postImport(t, router, `{"selections":[{"id":"1042","kind":"adventure"},{"id":"7","kind":"character"}]}`)
		assert.Equal(t, http.StatusAccepted, w.Code)

		var response map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.NotEmpty(t, response["run_id"])
		assert.Equal(t, float64(2), response["total"])

		waitForIdle(t, processor)

		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, []string{"1042", "7"}, imported)
	})

	t.Run("rejects invalid body", func(t *testing.T) {
		router, _ := setupImportRouter(t, importer.HandlerFunc(func(context.Context, string, bool) error {
			return nil
		}))

		w := postImport(t, router, `{"selections":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "invalid request body")
	})

	t.Run("rejects empty selection", func(t *testing.T) {
		router, _ := setupImportRouter(t, importer.HandlerFunc(func(context.Context, string, bool) error {
			return nil
		}))

		w := postImport(t, router, `{"selections":[]}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects unknown content kind", func(t *testing.T) {
		router, _ := setupImportRouter(t, importer.HandlerFunc(func(context.Context, string, bool) error {
			return nil
		}))

		w := postImport(t, router, `{"selections":[{"id":"1","kind":"spellbook"}]}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("returns conflict while a run is active", func(t *testing.T) {
		entered := make(chan struct{})
		release := make(chan struct{})
		var once sync.Once
		handler := importer.HandlerFunc(func(_ context.Context, _ string, _ bool) error {
			once.Do(func() { close(entered) })
			<-release
			return nil
		})

		router, processor := setupImportRouter(t, handler)

		first := postImport(t, router, `{"selections":[{"id":"1","kind":"adventure"}]}`)
		require.Equal(t, http.StatusAccepted, first.Code)

		<-entered

		second := postImport(t, router, `{"selections":[{"id":"2","kind":"adventure"}]}`)
		assert.Equal(t, http.StatusConflict, second.Code)
		assert.Contains(t, second.Body.String(), "already in progress")

		close(release)
		waitForIdle(t, processor)
	})
}

func TestImportController_QueuesRunHistoryCleanup(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "bridge.db")

	taskCfg := tasks.DefaultConfig()
	taskCfg.Workers = 1
	taskClient, err := tasks.NewClient(dbPath, taskCfg)
	require.NoError(t, err)
	defer taskClient.Close()

	processor := importer.NewProcessor(map[entities.ContentKind]importer.Handler{
		entities.ContentKindAdventure: importer.HandlerFunc(func(context.Context, string, bool) error {
			return nil
		}),
	})
	controller := NewImportController(processor, nil, taskClient, 14)

	router := gin.New()
	router.POST("/api/import", controller.StartImport)

	w := postImport(t, router, `{"selections":[{"id":"1042","kind":"adventure"}]}`)
	require.Equal(t, http.StatusAccepted, w.Code)
	waitForIdle(t, processor)

	// The cleanup task is queued after the run's drain returns; the task
	// client is never started here, so the queued row stays visible.
	tasksDB, err := sql.Open("sqlite3", filepath.Join(tmpDir, "bridge-tasks.db"))
	require.NoError(t, err)
	defer tasksDB.Close()

	deadline := time.Now().Add(2 * time.Second)
	for {
		var payload string
		err := tasksDB.QueryRow(
			"SELECT task FROM backlite_tasks WHERE queue = 'cleanup_import_runs'").Scan(&payload)
		if err == nil {
			assert.Contains(t, payload, `"retention_days":14`)
			return
		}
		require.ErrorIs(t, err, sql.ErrNoRows)
		if time.Now().After(deadline) {
			t.Fatal("no run history cleanup task was queued")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestImportController_GetStatus(t *testing.T) {
	t.Run("serves live snapshot during a run", func(t *testing.T) {
		entered := make(chan struct{})
		release := make(chan struct{})
		var once sync.Once
		handler := importer.HandlerFunc(func(_ context.Context, _ string, _ bool) error {
			once.Do(func() { close(entered) })
			<-release
			return nil
		})

		router, processor := setupImportRouter(t, handler)

		first := postImport(t, router, `{"selections":[{"id":"1","kind":"adventure"}]}`)
		require.Equal(t, http.StatusAccepted, first.Code)
		<-entered

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/import/status", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var snap importer.Snapshot
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
		assert.True(t, snap.Running)
		assert.NotEmpty(t, snap.RunID)
		assert.Equal(t, 1, snap.Total)

		close(release)
		waitForIdle(t, processor)
	})

	t.Run("reports idle when nothing has run", func(t *testing.T) {
		router, _ := setupImportRouter(t, importer.HandlerFunc(func(context.Context, string, bool) error {
			return nil
		}))

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/import/status", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"running":false}`, w.Body.String())
	})

	t.Run("falls back to persisted run history", func(t *testing.T) {
		gin.SetMode(gin.TestMode)

		dbPath := "./test_imports_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
		db, err := database.NewDatabase(dbPath)
		require.NoError(t, err)
		defer func() {
			db.Close()
			os.Remove(dbPath)
		}()

		runRepo := runs.NewRepository(db.DB)
		require.NoError(t, runRepo.StartRun("run-past", 3))
		require.NoError(t, runRepo.CompleteRun("run-past", entities.RunStatusCompleted, 3, 0, "Import completed!"))

		processor := importer.NewProcessor(nil)
		controller := NewImportController(processor, runRepo, nil, 0)

		router := gin.New()
		router.GET("/api/import/status", controller.GetStatus)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/import/status", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var run entities.ImportRun
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &run))
		assert.Equal(t, "run-past", run.RunID)
		assert.Equal(t, entities.RunStatusCompleted, run.Status)
	})
}

func TestImportController_CancelImport(t *testing.T) {
	t.Run("cancels an active run", func(t *testing.T) {
		entered := make(chan struct{})
		release := make(chan struct{})
		var once sync.Once
		handler := importer.HandlerFunc(func(_ context.Context, _ string, _ bool) error {
			once.Do(func() { close(entered) })
			<-release
			return nil
		})

		router, processor := setupImportRouter(t, handler)

		first := postImport(t, router, `{"selections":[{"id":"1","kind":"adventure"},{"id":"2","kind":"adventure"}]}`)
		require.Equal(t, http.StatusAccepted, first.Code)
		<-entered

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/import/cancel", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		close(release)
		waitForIdle(t, processor)

		snap := processor.Snapshot()
		assert.False(t, snap.Running)
	})

	t.Run("is a no-op when idle", func(t *testing.T) {
		router, _ := setupImportRouter(t, importer.HandlerFunc(func(context.Context, string, bool) error {
			return nil
		}))

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/import/cancel", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"running":false}`, w.Body.String())
	})
}
