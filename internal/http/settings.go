package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"beyondbridge/internal/scheduler"
	"beyondbridge/internal/session"
	"beyondbridge/internal/settingsstore"
)

// SettingsController exposes the persistent settings over the API. Changing
// the Cobalt cookie re-validates the session immediately; changing refresh
// options reschedules the character refresh job.
type SettingsController struct {
	store     *settingsstore.SettingsStore
	validator *session.Validator
	scheduler *scheduler.CharacterRefreshScheduler
}

func NewSettingsController(store *settingsstore.SettingsStore, validator *session.Validator, sched *scheduler.CharacterRefreshScheduler) *SettingsController {
	return &SettingsController{store: store, validator: validator, scheduler: sched}
}

// SettingsResponse augments the stored settings with live session and
// scheduler state.
type SettingsResponse struct {
	settingsstore.Info
	Authenticated  bool       `json:"authenticated"`
	NextRefreshRun *time.Time `json:"next_refresh_run,omitempty"`
}

// UpdateSettingsRequest carries a partial settings update. Only non-nil
// fields are applied.
type UpdateSettingsRequest struct {
	CobaltCookie    *string `json:"cobalt_cookie,omitempty"`
	ImportPath      *string `json:"import_path,omitempty"`
	DebugMode       *bool   `json:"debug_mode,omitempty"`
	RefreshEnabled  *bool   `json:"character_refresh_enabled,omitempty"`
	RefreshSchedule *string `json:"character_refresh_schedule,omitempty"`
}

// GetSettings handles GET /api/settings
func (sc *SettingsController) GetSettings(c *gin.Context) {
	sc.writeSettings(c)
}

// UpdateSettings handles POST /api/settings
func (sc *SettingsController) UpdateSettings(c *gin.Context) {
	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	if req.RefreshSchedule != nil {
		if err := settingsstore.ValidateCronSchedule(*req.RefreshSchedule); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid cron schedule: " + err.Error()})
			return
		}
	}

	if req.CobaltCookie != nil {
		if err := sc.store.SetCobaltCookie(*req.CobaltCookie); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		// A failed probe is reported in the response, not as an error:
		// the cookie is stored either way.
		_, _ = sc.validator.Validate(c.Request.Context(), *req.CobaltCookie)
	}

	if req.ImportPath != nil {
		if err := sc.store.SetImportPath(*req.ImportPath); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}
	if req.DebugMode != nil {
		if err := sc.store.SetDebugMode(*req.DebugMode); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	rescheduleNeeded := false
	if req.RefreshEnabled != nil {
		if err := sc.store.SetCharacterRefreshEnabled(*req.RefreshEnabled); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		rescheduleNeeded = true
	}
	if req.RefreshSchedule != nil {
		if err := sc.store.SetCharacterRefreshSchedule(*req.RefreshSchedule); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		rescheduleNeeded = true
	}
	if rescheduleNeeded && sc.scheduler != nil {
		if err := sc.scheduler.Reschedule(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to reschedule refresh: " + err.Error()})
			return
		}
	}

	sc.writeSettings(c)
}

// ClearCobaltCookie handles DELETE /api/settings/cobalt-cookie
// Removes the database override; an env-provided cookie, if any, takes over
// and is re-validated.
func (sc *SettingsController) ClearCobaltCookie(c *gin.Context) {
	if err := sc.store.ClearCobaltCookie(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	_, _ = sc.validator.Validate(c.Request.Context(), sc.store.GetCobaltCookie())

	sc.writeSettings(c)
}

func (sc *SettingsController) writeSettings(c *gin.Context) {
	resp := SettingsResponse{
		Info:          sc.store.GetInfo(),
		Authenticated: sc.validator.Current().Authenticated,
	}
	if sc.scheduler != nil {
		resp.NextRefreshRun = sc.scheduler.GetNextRunTime()
	}
	c.JSON(http.StatusOK, resp)
}
