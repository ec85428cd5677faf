// Package actors provides database operations for host-side character
// documents. It implements the actor half of the host persistence gateway.
package actors

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"beyondbridge/internal/entities"
)

// Repository handles actor database operations.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByProviderID returns the actor imported from the given provider
// character id, or nil when none exists.
func (r *Repository) FindByProviderID(providerID string) (*entities.Actor, error) {
	var actor entities.Actor
	err := r.db.Where("provider_id = ?", providerID).First(&actor).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &actor, nil
}

// Create stores a new actor.
func (r *Repository) Create(actor *entities.Actor) error {
	actor.LastImportedAt = time.Now()
	return r.db.Create(actor).Error
}

// Update replaces the stored fields of an existing actor.
func (r *Repository) Update(actor *entities.Actor) error {
	actor.LastImportedAt = time.Now()
	return r.db.Save(actor).Error
}

// All returns every stored actor, ordered by name.
func (r *Repository) All() ([]entities.Actor, error) {
	var list []entities.Actor
	err := r.db.Order("name").Find(&list).Error
	return list, err
}

// Get returns an actor by primary key.
func (r *Repository) Get(id uint) (*entities.Actor, error) {
	var actor entities.Actor
	err := r.db.First(&actor, id).Error
	if err != nil {
		return nil, err
	}
	return &actor, nil
}
