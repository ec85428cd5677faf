// Package compendium provides database operations for host-side content
// collections. It implements the compendium half of the host persistence
// gateway consumed by the import handlers.
package compendium

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"beyondbridge/internal/entities"
)

// Repository handles compendium and compendium document operations.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByName returns the compendium with the given name, or nil when none
// exists.
func (r *Repository) FindByName(name string) (*entities.Compendium, error) {
	var pack entities.Compendium
	err := r.db.Where("name = ?", name).First(&pack).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &pack, nil
}

// CreateOrClear returns an empty compendium with the given name: an existing
// one has its documents removed, otherwise a fresh one is created.
func (r *Repository) CreateOrClear(name, label string, kind entities.ContentKind) (*entities.Compendium, error) {
	existing, err := r.FindByName(name)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		err := r.db.Where("compendium_id = ?", existing.ID).
			Delete(&entities.CompendiumDocument{}).Error
		if err != nil {
			return nil, fmt.Errorf("failed to clear compendium %s: %w", name, err)
		}
		return existing, nil
	}

	pack := &entities.Compendium{
		Name:  name,
		Label: label,
		Kind:  kind,
	}
	if err := r.db.Create(pack).Error; err != nil {
		return nil, fmt.Errorf("failed to create compendium %s: %w", name, err)
	}
	return pack, nil
}

// ImportDocument adds a document to a compendium.
func (r *Repository) ImportDocument(compendiumID uint, doc entities.CompendiumDocument) error {
	doc.CompendiumID = compendiumID
	return r.db.Create(&doc).Error
}

// Documents returns all documents of a compendium.
func (r *Repository) Documents(compendiumID uint) ([]entities.CompendiumDocument, error) {
	var docs []entities.CompendiumDocument
	err := r.db.Where("compendium_id = ?", compendiumID).Find(&docs).Error
	return docs, err
}
