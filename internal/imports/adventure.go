package imports

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"beyondbridge/internal/entities"
)

// sampleNPC is the placeholder compendium content: full adventure
// conversion is an external capability not implemented here.
var sampleNPC = map[string]any{
	"abilities": map[string]any{
		"str": map[string]int{"value": 10},
		"dex": map[string]int{"value": 10},
		"con": map[string]int{"value": 10},
		"int": map[string]int{"value": 10},
		"wis": map[string]int{"value": 10},
		"cha": map[string]int{"value": 10},
	},
}

// AdventureImporter imports an adventure as a host compendium.
type AdventureImporter struct {
	gateway CompendiumGateway
}

func NewAdventureImporter(gateway CompendiumGateway) *AdventureImporter {
	return &AdventureImporter{gateway: gateway}
}

func (i *AdventureImporter) Import(ctx context.Context, id string, overwrite bool) error {
	log.Printf("Importing adventure %s (overwrite: %t)", id, overwrite)

	name := fmt.Sprintf("adventure-%s", id)
	label := fmt.Sprintf("Adventure %s", id)

	pack, err := importCompendium(i.gateway, name, label, entities.ContentKindAdventure, id, overwrite)
	if err != nil {
		return err
	}

	data, err := json.Marshal(sampleNPC)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}

	doc := entities.CompendiumDocument{
		Name: "Sample NPC",
		Type: "npc",
		Img:  "icons/svg/mystery-man.svg",
		Data: string(data),
	}
	if err := i.gateway.ImportDocument(pack.ID, doc); err != nil {
		return fmt.Errorf("failed to import document: %w", err)
	}
	return nil
}

// importCompendium performs the shared duplicate check and
// create-or-replace step for compendium-backed content kinds.
func importCompendium(gateway CompendiumGateway, name, label string, kind entities.ContentKind, id string, overwrite bool) (*entities.Compendium, error) {
	existing, err := gateway.FindByName(name)
	if err != nil {
		return nil, err
	}
	if existing != nil && !overwrite {
		return nil, &DuplicateError{Kind: kind, ID: id}
	}

	pack, err := gateway.CreateOrClear(name, label, kind)
	if err != nil {
		return nil, err
	}
	return pack, nil
}
