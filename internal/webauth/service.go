// Package webauth provides optional password protection for the local web UI.
// A single admin password is stored as a bcrypt hash in settings; sessions are
// persisted in SQLite and mutating routes are CSRF-protected.
package webauth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// PasswordSource supplies the stored admin password hash.
type PasswordSource interface {
	GetAdminPasswordHash() string
}

// Service handles login, logout and request gating for the local UI.
type Service struct {
	sessions  *SessionManager
	passwords PasswordSource
}

func NewService(sessions *SessionManager, passwords PasswordSource) *Service {
	return &Service{sessions: sessions, passwords: passwords}
}

type loginRequest struct {
	Password string `json:"password" binding:"required"`
}

// Login verifies the admin password and establishes a session.
func (s *Service) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "password is required"})
		return
	}

	hash := s.passwords.GetAdminPasswordHash()
	if hash == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "local authentication is not configured"})
		return
	}

	if err := CheckPassword(req.Password, hash); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid password"})
		return
	}

	if err := s.sessions.CreateSession(c.Request); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"authenticated": true})
}

// Logout destroys the current session.
func (s *Service) Logout(c *gin.Context) {
	if err := s.sessions.DestroySession(c.Request); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to destroy session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"authenticated": false})
}

// Status reports whether the request carries an authenticated session.
func (s *Service) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"authenticated": s.sessions.IsAuthenticated(c.Request),
		"csrf_token":    GetCSRFToken(c),
	})
}

// RequireAuth rejects requests without an authenticated session.
func (s *Service) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.sessions.IsAuthenticated(c.Request) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Next()
	}
}
