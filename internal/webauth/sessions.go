package webauth

import (
	"database/sql"
	"encoding/gob"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
)

// Session data keys
const (
	SessionKeyAdmin   = "admin"
	SessionKeyLoginAt = "login_at"
)

func init() {
	gob.Register(time.Time{})
}

// SessionManager wraps scs.SessionManager with application-specific methods.
type SessionManager struct {
	*scs.SessionManager
}

// NewSessionManager creates a configured session manager backed by SQLite.
// The sqlDB parameter should be the underlying *sql.DB from GORM.
func NewSessionManager(sqlDB *sql.DB, lifetime time.Duration, secureCookies bool) (*SessionManager, error) {
	// Create sessions table if it doesn't exist
	_, err := sqlDB.Exec(`CREATE TABLE IF NOT EXISTS sessions (
		token TEXT PRIMARY KEY,
		data BLOB NOT NULL,
		expiry REAL NOT NULL
	);
	CREATE INDEX IF NOT EXISTS sessions_expiry_idx ON sessions(expiry);`)
	if err != nil {
		return nil, err
	}

	sm := scs.New()
	sm.Store = sqlite3store.New(sqlDB)

	sm.Lifetime = lifetime
	sm.IdleTimeout = lifetime / 2

	sm.Cookie.Name = "session"
	sm.Cookie.HttpOnly = true
	sm.Cookie.Secure = secureCookies
	sm.Cookie.SameSite = http.SameSiteStrictMode
	sm.Cookie.Path = "/"

	return &SessionManager{SessionManager: sm}, nil
}

// CreateSession marks the request's session as authenticated.
// This should be called after password verification.
func (sm *SessionManager) CreateSession(r *http.Request) error {
	// Renew token to prevent session fixation
	if err := sm.RenewToken(r.Context()); err != nil {
		return err
	}

	sm.Put(r.Context(), SessionKeyAdmin, true)
	sm.Put(r.Context(), SessionKeyLoginAt, time.Now())

	return nil
}

// DestroySession removes all session data and invalidates the session.
func (sm *SessionManager) DestroySession(r *http.Request) error {
	return sm.Destroy(r.Context())
}

// IsAuthenticated returns true if the request has a valid admin session.
func (sm *SessionManager) IsAuthenticated(r *http.Request) bool {
	return sm.GetBool(r.Context(), SessionKeyAdmin)
}

// LoginAt retrieves the login timestamp from the session.
func (sm *SessionManager) LoginAt(r *http.Request) time.Time {
	at, _ := sm.Get(r.Context(), SessionKeyLoginAt).(time.Time)
	return at
}
