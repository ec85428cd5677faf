package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"beyondbridge/internal/database/actors"
	"beyondbridge/internal/tasks"
)

// CharactersController manages previously imported characters.
type CharactersController struct {
	actors     *actors.Repository
	taskClient *tasks.Client
}

func NewCharactersController(actorRepo *actors.Repository, taskClient *tasks.Client) *CharactersController {
	return &CharactersController{actors: actorRepo, taskClient: taskClient}
}

// ImportedCharacter is the list view of a stored actor; the full data
// payload is omitted.
type ImportedCharacter struct {
	ID             uint   `json:"id"`
	ProviderID     string `json:"provider_id"`
	Name           string `json:"name"`
	Img            string `json:"img,omitempty"`
	LastImportedAt string `json:"last_imported_at,omitempty"`
}

// ListImported handles GET /api/characters
func (cc *CharactersController) ListImported(c *gin.Context) {
	all, err := cc.actors.All()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	characters := make([]ImportedCharacter, 0, len(all))
	for _, actor := range all {
		ic := ImportedCharacter{
			ID:         actor.ID,
			ProviderID: actor.ProviderID,
			Name:       actor.Name,
			Img:        actor.Img,
		}
		if !actor.LastImportedAt.IsZero() {
			ic.LastImportedAt = actor.LastImportedAt.Format(time.RFC3339)
		}
		characters = append(characters, ic)
	}

	c.JSON(http.StatusOK, gin.H{"characters": characters})
}

// Refresh handles POST /api/characters/:id/refresh
// Queues a background re-import of a single stored character.
func (cc *CharactersController) Refresh(c *gin.Context) {
	if cc.taskClient == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "task queue is disabled"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid character ID"})
		return
	}

	actor, err := cc.actors.Get(uint(id))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if actor == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "character not found"})
		return
	}

	ids, err := cc.taskClient.Add(tasks.RefreshCharacterTask{ActorID: actor.ID}).Save()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to queue refresh: " + err.Error()})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"queued":   true,
		"task_ids": ids,
	})
}
