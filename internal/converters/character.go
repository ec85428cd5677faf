// Package converters maps provider payloads into host document field maps.
package converters

import (
	"encoding/json"
	"fmt"
	"time"

	"beyondbridge/internal/entities"
)

const defaultActorImg = "icons/svg/mystery-man.svg"

// Provider stat ids for the six ability scores.
const (
	statStrength = iota + 1
	statDexterity
	statConstitution
	statIntelligence
	statWisdom
	statCharisma
)

// characterPayload is the subset of the provider's character JSON the
// conversion consumes.
type characterPayload struct {
	ID         json.Number `json:"id"`
	Name       string      `json:"name"`
	AvatarURL  string      `json:"avatarUrl"`
	Stats      []stat      `json:"stats"`
	HitPoints  int         `json:"hitPoints"`
	ArmorClass int         `json:"armorClass"`
}

type stat struct {
	ID    int `json:"id"`
	Value int `json:"value"`
}

// ActorData is the host-schema body of a character actor.
type ActorData struct {
	Abilities  map[string]AbilityValue `json:"abilities"`
	Attributes Attributes              `json:"attributes"`
	ProviderID string                  `json:"provider_id"`
	UpdatedAt  string                  `json:"last_updated"`
}

type AbilityValue struct {
	Value int `json:"value"`
}

type Attributes struct {
	HP HitPoints  `json:"hp"`
	AC ArmorClass `json:"ac"`
}

type HitPoints struct {
	Value int `json:"value"`
	Max   int `json:"max"`
}

type ArmorClass struct {
	Value int `json:"value"`
}

// CharacterConverter converts provider character JSON into a host actor.
type CharacterConverter struct{}

func NewCharacterConverter() *CharacterConverter {
	return &CharacterConverter{}
}

// Convert maps the provider payload onto an actor document. Missing ability
// scores default to 10; a missing avatar falls back to the stock image.
func (c *CharacterConverter) Convert(raw json.RawMessage) (*entities.Actor, error) {
	var payload characterPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode character data: %w", err)
	}

	img := payload.AvatarURL
	if img == "" {
		img = defaultActorImg
	}

	data := ActorData{
		Abilities: map[string]AbilityValue{
			"str": {Value: statValue(payload.Stats, statStrength)},
			"dex": {Value: statValue(payload.Stats, statDexterity)},
			"con": {Value: statValue(payload.Stats, statConstitution)},
			"int": {Value: statValue(payload.Stats, statIntelligence)},
			"wis": {Value: statValue(payload.Stats, statWisdom)},
			"cha": {Value: statValue(payload.Stats, statCharisma)},
		},
		Attributes: Attributes{
			HP: HitPoints{Value: payload.HitPoints, Max: payload.HitPoints},
			AC: ArmorClass{Value: payload.ArmorClass},
		},
		ProviderID: payload.ID.String(),
		UpdatedAt:  time.Now().UTC().Format(time.RFC3339),
	}

	body, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to encode actor data: %w", err)
	}

	return &entities.Actor{
		ProviderID: payload.ID.String(),
		Name:       payload.Name,
		Type:       "character",
		Img:        img,
		Data:       string(body),
	}, nil
}

func statValue(stats []stat, id int) int {
	for _, s := range stats {
		if s.ID == id {
			return s.Value
		}
	}
	return 10
}
