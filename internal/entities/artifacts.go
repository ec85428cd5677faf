package entities

import (
	"time"
)

// Compendium is a named host-side content collection. One compendium is
// created per imported adventure, sourcebook or homebrew item; its Name
// encodes the provider id (e.g. "adventure-1042") and is unique.
type Compendium struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	Name      string      `gorm:"uniqueIndex;size:256" json:"name"`
	Label     string      `gorm:"size:512" json:"label"`
	Kind      ContentKind `gorm:"index;size:20" json:"kind"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`

	Documents []CompendiumDocument `gorm:"foreignKey:CompendiumID" json:"documents,omitempty"`
}

func (Compendium) TableName() string {
	return "compendia"
}

// CompendiumDocument is a single document inside a compendium.
// Data holds the host-schema document body as JSON.
type CompendiumDocument struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CompendiumID uint      `gorm:"index" json:"compendium_id"`
	Name         string    `gorm:"size:512" json:"name"`
	Type         string    `gorm:"size:50" json:"type"`
	Img          string    `gorm:"size:1024" json:"img,omitempty"`
	Data         string    `gorm:"type:text" json:"data,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func (CompendiumDocument) TableName() string {
	return "compendium_documents"
}

// Actor is a host-side character document. ProviderID is the provider's
// character id and acts as the duplicate-detection marker: at most one actor
// exists per provider character.
type Actor struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	ProviderID     string    `gorm:"uniqueIndex;size:64" json:"provider_id"`
	Name           string    `gorm:"index;size:512" json:"name"`
	Type           string    `gorm:"size:50" json:"type"`
	Img            string    `gorm:"size:1024" json:"img,omitempty"`
	Data           string    `gorm:"type:text" json:"data,omitempty"`
	LastImportedAt time.Time `json:"last_imported_at"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (Actor) TableName() string {
	return "actors"
}
