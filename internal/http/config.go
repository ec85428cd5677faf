package http

import (
	"beyondbridge/internal/config"
	"beyondbridge/internal/content"
	"beyondbridge/internal/database"
	"beyondbridge/internal/database/actors"
	"beyondbridge/internal/database/runs"
	"beyondbridge/internal/importer"
	"beyondbridge/internal/scheduler"
	"beyondbridge/internal/session"
	"beyondbridge/internal/settingsstore"
	"beyondbridge/internal/tasks"
	"beyondbridge/internal/webauth"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router. This replaces a long parameter list
// in NewRouter for better maintainability.
type RouterConfig struct {
	// Core dependencies
	Database  *database.Database
	Validator *session.Validator
	Lister    *content.Lister
	Processor *importer.Processor

	// Run history
	Runs *runs.Repository

	// Imported characters
	Actors *actors.Repository

	// Persistent settings
	SettingsStore *settingsstore.SettingsStore

	// Character refresh scheduling
	Scheduler *scheduler.CharacterRefreshScheduler

	// Task queue client (optional) and run-history retention
	TaskClient       *tasks.Client
	RunRetentionDays int

	// Authentication (optional, AUTH_MODE=local)
	AuthConfig     config.Auth
	AuthService    *webauth.Service
	SessionManager *webauth.SessionManager
	CSRFSecret     []byte
	SecureCookies  bool

	// Application info
	Version string
}
