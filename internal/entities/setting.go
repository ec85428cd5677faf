package entities

import (
	"time"
)

type Setting struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"uniqueIndex;size:100" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Setting) TableName() string {
	return "settings"
}

// Known setting keys
const (
	// Provider credential and import options
	SettingKeyCobaltCookie = "cobalt_cookie"
	SettingKeyImportPath   = "import_path"
	SettingKeyLastImport   = "last_import"
	SettingKeyDebugMode    = "debug_mode"

	// Scheduled character refresh
	SettingKeyCharacterRefreshEnabled  = "character_refresh_enabled"
	SettingKeyCharacterRefreshSchedule = "character_refresh_schedule"

	// Web auth (local mode)
	SettingKeyAdminPasswordHash = "admin_password_hash"
)
