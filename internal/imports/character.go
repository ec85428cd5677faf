package imports

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"beyondbridge/internal/entities"
)

// CharacterSource fetches a character's detail payload from the provider.
type CharacterSource interface {
	GetCharacter(ctx context.Context, cookie, id string) (json.RawMessage, error)
}

// CredentialSource supplies the current provider credential.
type CredentialSource interface {
	GetCobaltCookie() string
}

// CharacterConverter maps the provider payload onto a host actor.
type CharacterConverter interface {
	Convert(raw json.RawMessage) (*entities.Actor, error)
}

// CharacterImporter imports a single character: fetch, convert, then create
// or update the host actor keyed by provider id. Re-importing with
// overwrite enabled replaces the existing actor and never creates a
// duplicate.
type CharacterImporter struct {
	source      CharacterSource
	credentials CredentialSource
	converter   CharacterConverter
	gateway     ActorGateway
}

func NewCharacterImporter(source CharacterSource, credentials CredentialSource, converter CharacterConverter, gateway ActorGateway) *CharacterImporter {
	return &CharacterImporter{
		source:      source,
		credentials: credentials,
		converter:   converter,
		gateway:     gateway,
	}
}

func (i *CharacterImporter) Import(ctx context.Context, id string, overwrite bool) error {
	log.Printf("Importing character %s (overwrite: %t)", id, overwrite)

	raw, err := i.source.GetCharacter(ctx, i.credentials.GetCobaltCookie(), id)
	if err != nil {
		return err
	}

	existing, err := i.gateway.FindByProviderID(id)
	if err != nil {
		return err
	}
	if existing != nil && !overwrite {
		return &DuplicateError{Kind: entities.ContentKindCharacter, ID: id}
	}

	actor, err := i.converter.Convert(raw)
	if err != nil {
		return err
	}
	actor.ProviderID = id

	if existing != nil {
		actor.ID = existing.ID
		actor.CreatedAt = existing.CreatedAt
		if err := i.gateway.Update(actor); err != nil {
			return fmt.Errorf("failed to update actor: %w", err)
		}
		return nil
	}

	if err := i.gateway.Create(actor); err != nil {
		return fmt.Errorf("failed to create actor: %w", err)
	}
	return nil
}
