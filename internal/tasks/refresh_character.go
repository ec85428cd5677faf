package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"beyondbridge/internal/entities"
)

// ActorReader looks up stored actors by primary key.
type ActorReader interface {
	Get(id uint) (*entities.Actor, error)
}

// CharacterRefresher re-imports one character from the provider.
type CharacterRefresher interface {
	Import(ctx context.Context, id string, overwrite bool) error
}

// RefreshCharacterTask re-fetches a previously imported character and
// replaces its host actor.
type RefreshCharacterTask struct {
	ActorID uint `json:"actor_id"`
}

// Config returns the queue configuration for character refresh tasks.
func (t RefreshCharacterTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "refresh_character",
		MaxAttempts: 3,
		Backoff:     30 * time.Second,
		Timeout:     2 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// RefreshCharacterProcessor creates a processor function for
// RefreshCharacterTask.
func RefreshCharacterProcessor(actors ActorReader, refresher CharacterRefresher) backlite.QueueProcessor[RefreshCharacterTask] {
	return func(ctx context.Context, task RefreshCharacterTask) error {
		if actors == nil || refresher == nil {
			return fmt.Errorf("character refresh not configured")
		}

		actor, err := actors.Get(task.ActorID)
		if err != nil {
			return fmt.Errorf("load actor %d: %w", task.ActorID, err)
		}

		if err := refresher.Import(ctx, actor.ProviderID, true); err != nil {
			return fmt.Errorf("refresh character %s: %w", actor.ProviderID, err)
		}

		log.Printf("[TASK] Refreshed character %s (%s)", actor.ProviderID, actor.Name)
		return nil
	}
}

// NewRefreshCharacterQueue creates a backlite queue for character refresh
// tasks.
func NewRefreshCharacterQueue(actors ActorReader, refresher CharacterRefresher) backlite.Queue {
	return backlite.NewQueue(RefreshCharacterProcessor(actors, refresher))
}
