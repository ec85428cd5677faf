// Package settingsstore resolves runtime-changeable options with the
// precedence: database > environment > default.
package settingsstore

import (
	"os"
	"strconv"
	"time"

	"beyondbridge/internal/database/settings"
	"beyondbridge/internal/entities"
)

const (
	// DefaultImportPath is where imported content is grouped on the host side.
	DefaultImportPath = "dndbeyond"

	// DefaultRefreshSchedule re-imports characters every 6 hours.
	DefaultRefreshSchedule = "0 */6 * * *"
)

type SettingsStore struct {
	repo *settings.Repository
}

func New(repo *settings.Repository) *SettingsStore {
	return &SettingsStore{repo: repo}
}

// GetCobaltCookie returns the provider session credential
// (database > COBALT_COOKIE env > empty).
func (s *SettingsStore) GetCobaltCookie() string {
	if setting, err := s.repo.GetSetting(entities.SettingKeyCobaltCookie); err == nil && setting.Value != "" {
		return setting.Value
	}
	if envVal := os.Getenv("COBALT_COOKIE"); envVal != "" {
		return envVal
	}
	return ""
}

// SetCobaltCookie stores the credential. Callers are expected to re-validate
// the session after a change.
func (s *SettingsStore) SetCobaltCookie(cookie string) error {
	return s.repo.SetSetting(entities.SettingKeyCobaltCookie, cookie)
}

// ClearCobaltCookie removes the database override, reverting to env/default.
func (s *SettingsStore) ClearCobaltCookie() error {
	return s.repo.DeleteSetting(entities.SettingKeyCobaltCookie)
}

// HasCobaltCookie reports whether a credential is configured from any source.
func (s *SettingsStore) HasCobaltCookie() bool {
	return s.GetCobaltCookie() != ""
}

// GetImportPath returns the host-side grouping path for imported content.
func (s *SettingsStore) GetImportPath() string {
	if setting, err := s.repo.GetSetting(entities.SettingKeyImportPath); err == nil && setting.Value != "" {
		return setting.Value
	}
	if envVal := os.Getenv("IMPORT_PATH"); envVal != "" {
		return envVal
	}
	return DefaultImportPath
}

func (s *SettingsStore) SetImportPath(path string) error {
	return s.repo.SetSetting(entities.SettingKeyImportPath, path)
}

// GetDebugMode reports whether debug logging is enabled.
func (s *SettingsStore) GetDebugMode() bool {
	if setting, err := s.repo.GetSetting(entities.SettingKeyDebugMode); err == nil && setting.Value != "" {
		return setting.Value == "true" || setting.Value == "1"
	}
	if envVal := os.Getenv("DEBUG_MODE"); envVal != "" {
		return envVal == "true" || envVal == "1"
	}
	return false
}

func (s *SettingsStore) SetDebugMode(enabled bool) error {
	return s.repo.SetSetting(entities.SettingKeyDebugMode, strconv.FormatBool(enabled))
}

// GetLastImport returns the timestamp of the last finished import run.
func (s *SettingsStore) GetLastImport() *time.Time {
	setting, err := s.repo.GetSetting(entities.SettingKeyLastImport)
	if err != nil || setting.Value == "" {
		return nil
	}
	ts, err := time.Parse(time.RFC3339, setting.Value)
	if err != nil {
		return nil
	}
	return &ts
}

// SetLastImportNow records the current time as the last import timestamp.
func (s *SettingsStore) SetLastImportNow() error {
	return s.repo.SetSetting(entities.SettingKeyLastImport, time.Now().UTC().Format(time.RFC3339))
}

// GetCharacterRefreshEnabled reports whether the scheduled character refresh
// is enabled (database > CHARACTER_REFRESH_ENABLED env > disabled).
func (s *SettingsStore) GetCharacterRefreshEnabled() bool {
	if setting, err := s.repo.GetSetting(entities.SettingKeyCharacterRefreshEnabled); err == nil && setting.Value != "" {
		return setting.Value == "true" || setting.Value == "1"
	}
	if envVal := os.Getenv("CHARACTER_REFRESH_ENABLED"); envVal != "" {
		return envVal == "true" || envVal == "1"
	}
	return false
}

func (s *SettingsStore) SetCharacterRefreshEnabled(enabled bool) error {
	return s.repo.SetSetting(entities.SettingKeyCharacterRefreshEnabled, strconv.FormatBool(enabled))
}

// GetCharacterRefreshSchedule returns the refresh cron schedule.
func (s *SettingsStore) GetCharacterRefreshSchedule() string {
	if setting, err := s.repo.GetSetting(entities.SettingKeyCharacterRefreshSchedule); err == nil && setting.Value != "" {
		return setting.Value
	}
	if envVal := os.Getenv("CHARACTER_REFRESH_SCHEDULE"); envVal != "" {
		return envVal
	}
	return DefaultRefreshSchedule
}

func (s *SettingsStore) SetCharacterRefreshSchedule(schedule string) error {
	return s.repo.SetSetting(entities.SettingKeyCharacterRefreshSchedule, schedule)
}

// GetAdminPasswordHash returns the bcrypt hash of the local UI admin password
// (database > ADMIN_PASSWORD_HASH env > empty).
func (s *SettingsStore) GetAdminPasswordHash() string {
	if setting, err := s.repo.GetSetting(entities.SettingKeyAdminPasswordHash); err == nil && setting.Value != "" {
		return setting.Value
	}
	return os.Getenv("ADMIN_PASSWORD_HASH")
}

func (s *SettingsStore) SetAdminPasswordHash(hash string) error {
	return s.repo.SetSetting(entities.SettingKeyAdminPasswordHash, hash)
}

// Info is the settings view exposed over the API. The credential is masked.
type Info struct {
	HasCobaltCookie bool       `json:"has_cobalt_cookie"`
	CobaltCookie    string     `json:"cobalt_cookie"` // masked
	ImportPath      string     `json:"import_path"`
	DebugMode       bool       `json:"debug_mode"`
	LastImport      *time.Time `json:"last_import,omitempty"`
	RefreshEnabled  bool       `json:"character_refresh_enabled"`
	RefreshSchedule string     `json:"character_refresh_schedule"`
}

func (s *SettingsStore) GetInfo() Info {
	cookie := s.GetCobaltCookie()
	return Info{
		HasCobaltCookie: cookie != "",
		CobaltCookie:    maskSecret(cookie),
		ImportPath:      s.GetImportPath(),
		DebugMode:       s.GetDebugMode(),
		LastImport:      s.GetLastImport(),
		RefreshEnabled:  s.GetCharacterRefreshEnabled(),
		RefreshSchedule: s.GetCharacterRefreshSchedule(),
	}
}

// maskSecret returns a display-safe form of a secret value.
func maskSecret(val string) string {
	if val == "" {
		return ""
	}
	if len(val) <= 8 {
		return "****"
	}
	return val[:4] + "****" + val[len(val)-4:]
}
