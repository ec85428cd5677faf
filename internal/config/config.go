package config

import (
	"time"

	"github.com/spf13/viper"
)

type AuthMode string

const (
	AuthModeNone  AuthMode = "none"  // No authentication required (default)
	AuthModeLocal AuthMode = "local" // Admin password with sessions
)

type (
	Config struct {
		HTTP
		Global
		DndBeyond
		Database
		Tasks
		Auth
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	DndBeyond struct {
		CobaltCookie string // Fallback credential; the database setting takes precedence
	}
	Database struct {
		Path string
	}
	Tasks struct {
		Enabled          bool
		Workers          int
		ReleaseAfter     time.Duration
		CleanupInterval  time.Duration
		RunRetentionDays int
	}
	Auth struct {
		Mode            AuthMode
		SessionSecret   string
		SessionLifetime time.Duration
		BcryptCost      int
		SecureCookies   bool // Set to false for local dev without HTTPS
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8788)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)

	// Auth defaults
	v.SetDefault("auth_mode", "none")
	v.SetDefault("auth_session_secret", "")      // Auto-generated if empty
	v.SetDefault("auth_session_lifetime", "24h") // 24 hours
	v.SetDefault("auth_bcrypt_cost", 12)         // bcrypt cost factor
	v.SetDefault("auth_secure_cookies", true)    // HTTPS-only cookies

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 2)
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")
	v.SetDefault("run_retention_days", 30)

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		DndBeyond: DndBeyond{
			CobaltCookie: v.GetString("COBALT_COOKIE"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Tasks: Tasks{
			Enabled:          v.GetBool("TASKS_ENABLED"),
			Workers:          v.GetInt("TASK_WORKERS"),
			ReleaseAfter:     v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval:  v.GetDuration("TASK_CLEANUP_INTERVAL"),
			RunRetentionDays: v.GetInt("RUN_RETENTION_DAYS"),
		},
		Auth: Auth{
			Mode:            AuthMode(v.GetString("AUTH_MODE")),
			SessionSecret:   v.GetString("AUTH_SESSION_SECRET"),
			SessionLifetime: v.GetDuration("AUTH_SESSION_LIFETIME"),
			BcryptCost:      v.GetInt("AUTH_BCRYPT_COST"),
			SecureCookies:   v.GetBool("AUTH_SECURE_COOKIES"),
		},
	}
}
