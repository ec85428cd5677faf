package imports

import (
	"context"
	"fmt"
	"log"

	"beyondbridge/internal/entities"
)

// SourcebookImporter imports a sourcebook as a host compendium. The actual
// sourcebook conversion is an external capability; only the artifact
// lifecycle (duplicate check, create-or-replace) is handled here.
type SourcebookImporter struct {
	gateway CompendiumGateway
}

func NewSourcebookImporter(gateway CompendiumGateway) *SourcebookImporter {
	return &SourcebookImporter{gateway: gateway}
}

func (i *SourcebookImporter) Import(ctx context.Context, id string, overwrite bool) error {
	log.Printf("Importing sourcebook %s (overwrite: %t)", id, overwrite)

	name := fmt.Sprintf("sourcebook-%s", id)
	label := fmt.Sprintf("Sourcebook %s", id)

	_, err := importCompendium(i.gateway, name, label, entities.ContentKindSourcebook, id, overwrite)
	return err
}

// HomebrewImporter imports homebrew content as a host compendium. Like the
// sourcebook routine, conversion itself is an external capability.
type HomebrewImporter struct {
	gateway CompendiumGateway
}

func NewHomebrewImporter(gateway CompendiumGateway) *HomebrewImporter {
	return &HomebrewImporter{gateway: gateway}
}

func (i *HomebrewImporter) Import(ctx context.Context, id string, overwrite bool) error {
	log.Printf("Importing homebrew %s (overwrite: %t)", id, overwrite)

	name := fmt.Sprintf("homebrew-%s", id)
	label := fmt.Sprintf("Homebrew %s", id)

	_, err := importCompendium(i.gateway, name, label, entities.ContentKindHomebrew, id, overwrite)
	return err
}
