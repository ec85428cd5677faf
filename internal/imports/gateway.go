// Package imports contains the per-content-kind import routines invoked by
// the queue processor. Each routine checks for a pre-existing host artifact,
// then creates or replaces it through the host persistence gateway.
package imports

import (
	"beyondbridge/internal/entities"
)

// CompendiumGateway is the compendium side of the host persistence gateway.
type CompendiumGateway interface {
	FindByName(name string) (*entities.Compendium, error)
	CreateOrClear(name, label string, kind entities.ContentKind) (*entities.Compendium, error)
	ImportDocument(compendiumID uint, doc entities.CompendiumDocument) error
}

// ActorGateway is the actor side of the host persistence gateway.
type ActorGateway interface {
	FindByProviderID(providerID string) (*entities.Actor, error)
	Create(actor *entities.Actor) error
	Update(actor *entities.Actor) error
}
