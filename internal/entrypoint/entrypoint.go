package entrypoint

import (
	"context"
	"encoding/hex"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"beyondbridge/internal/config"
	"beyondbridge/internal/content"
	"beyondbridge/internal/converters"
	"beyondbridge/internal/database"
	"beyondbridge/internal/database/actors"
	"beyondbridge/internal/database/compendium"
	"beyondbridge/internal/database/runs"
	"beyondbridge/internal/database/settings"
	"beyondbridge/internal/dndbeyond"
	"beyondbridge/internal/entities"
	http_controllers "beyondbridge/internal/http"
	"beyondbridge/internal/importer"
	"beyondbridge/internal/imports"
	"beyondbridge/internal/scheduler"
	"beyondbridge/internal/session"
	"beyondbridge/internal/settingsstore"
	"beyondbridge/internal/tasks"
	"beyondbridge/internal/webauth"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Call shutdown callback first (e.g., to stop task queue)
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting BeyondBridge v%s", version)

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	settingsRepo := settings.NewRepository(db.DB)
	store := settingsstore.New(settingsRepo)
	compendiumRepo := compendium.NewRepository(db.DB)
	actorRepo := actors.NewRepository(db.DB)
	runRepo := runs.NewRepository(db.DB)

	client := dndbeyond.NewClient()
	validator := session.NewValidator(client, nil)

	// Validate a configured credential up front so the content list is
	// available immediately after startup.
	if cookie := store.GetCobaltCookie(); cookie != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if _, err := validator.Validate(ctx, cookie); err != nil {
			log.Printf("Initial credential validation failed: %v", err)
		}
		cancel()
	} else {
		log.Printf("No Cobalt cookie configured; set it via the settings API or COBALT_COOKIE")
	}

	lister := content.NewLister(client)

	characterImporter := imports.NewCharacterImporter(client, store, converters.NewCharacterConverter(), actorRepo)
	processor := importer.NewProcessor(map[entities.ContentKind]importer.Handler{
		entities.ContentKindAdventure:  imports.NewAdventureImporter(compendiumRepo),
		entities.ContentKindSourcebook: imports.NewSourcebookImporter(compendiumRepo),
		entities.ContentKindHomebrew:   imports.NewHomebrewImporter(compendiumRepo),
		entities.ContentKindCharacter:  characterImporter,
	})
	processor.SetRunRecorder(runRepo)
	processor.SetLastImportMarker(store)

	// Initialize task queue if enabled
	var taskClient *tasks.Client
	var taskCtxCancel context.CancelFunc
	if cfg.Tasks.Enabled {
		taskCfg := tasks.Config{
			Workers:          cfg.Tasks.Workers,
			ReleaseAfter:     cfg.Tasks.ReleaseAfter,
			CleanupInterval:  cfg.Tasks.CleanupInterval,
			RunRetentionDays: cfg.Tasks.RunRetentionDays,
		}

		taskClient, err = tasks.NewClient(cfg.Database.Path, taskCfg)
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		taskClient.Register(
			tasks.NewRefreshCharacterQueue(actorRepo, characterImporter),
			tasks.NewCleanupRunsQueue(runRepo),
		)

		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)

		// Catch up on retention for history accumulated while the server
		// was down; subsequent cleanups are queued per finished run.
		if _, err := taskClient.Add(tasks.CleanupRunsTask{RetentionDays: cfg.Tasks.RunRetentionDays}).Save(); err != nil {
			log.Printf("Failed to queue run history cleanup: %v", err)
		}
	}

	// Scheduled character refresh
	refreshScheduler := scheduler.NewCharacterRefreshScheduler(actorRepo, store, processor)
	if err := refreshScheduler.Start(context.Background()); err != nil {
		log.Printf("Failed to start character refresh scheduler: %v", err)
	}

	// Initialize authentication if enabled
	var authService *webauth.Service
	var sessionManager *webauth.SessionManager
	var csrfSecret []byte

	if cfg.Auth.Mode == config.AuthModeLocal {
		log.Printf("Authentication mode: local")

		sqlDB, err := db.DB.DB()
		if err != nil {
			log.Fatalf("Failed to get SQL DB for sessions: %v", err)
		}

		sessionManager, err = webauth.NewSessionManager(sqlDB, cfg.Auth.SessionLifetime, cfg.Auth.SecureCookies)
		if err != nil {
			log.Fatalf("Failed to initialize session manager: %v", err)
		}

		authService = webauth.NewService(sessionManager, store)

		if cfg.Auth.SessionSecret != "" {
			csrfSecret, err = hex.DecodeString(cfg.Auth.SessionSecret)
			if err != nil {
				// Not hex, use as raw bytes
				csrfSecret = []byte(cfg.Auth.SessionSecret)
			}
		} else {
			secret, err := webauth.GenerateSessionSecret()
			if err != nil {
				log.Fatalf("Failed to generate CSRF secret: %v", err)
			}
			csrfSecret, _ = hex.DecodeString(secret)
			log.Printf("Generated session secret (set AUTH_SESSION_SECRET to persist)")
		}

		if store.GetAdminPasswordHash() == "" {
			log.Printf("No admin password set. Run 'set-password' to create one.")
		}
	} else {
		log.Printf("Authentication mode: none (no authentication required)")
	}

	routerCfg := http_controllers.RouterConfig{
		Database:         db,
		Validator:        validator,
		Lister:           lister,
		Processor:        processor,
		Runs:             runRepo,
		Actors:           actorRepo,
		SettingsStore:    store,
		Scheduler:        refreshScheduler,
		TaskClient:       taskClient,
		RunRetentionDays: cfg.Tasks.RunRetentionDays,
		AuthConfig:       cfg.Auth,
		AuthService:      authService,
		SessionManager:   sessionManager,
		CSRFSecret:       csrfSecret,
		SecureCookies:    cfg.Auth.SecureCookies,
		Version:          version,
	}

	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		processor.Cancel()
		refreshScheduler.Stop()
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
	}

	Serve(router, cfg, onShutdown)
}
