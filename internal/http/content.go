package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"beyondbridge/internal/content"
	"beyondbridge/internal/dndbeyond"
	"beyondbridge/internal/session"
)

// ContentController serves the partitioned list of importable content.
type ContentController struct {
	lister    *content.Lister
	validator *session.Validator
}

func NewContentController(lister *content.Lister, validator *session.Validator) *ContentController {
	return &ContentController{lister: lister, validator: validator}
}

// GetContent handles GET /api/content
// Returns the user's adventures, sourcebooks and homebrew content.
func (cc *ContentController) GetContent(c *gin.Context) {
	set, err := cc.lister.ListContent(c.Request.Context(), cc.validator.Current())
	if err != nil {
		writeContentError(c, err)
		return
	}

	c.JSON(http.StatusOK, set)
}

// GetCharacters handles GET /api/content/characters
// Characters are fetched lazily, not as part of the main content list.
func (cc *ContentController) GetCharacters(c *gin.Context) {
	characters, err := cc.lister.ListCharacters(c.Request.Context(), cc.validator.Current())
	if err != nil {
		writeContentError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"characters": characters})
}

// writeContentError maps listing failures to HTTP statuses. Authentication
// problems surface as 401; upstream failures as 502.
func writeContentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, content.ErrNotAuthenticated),
		errors.Is(err, dndbeyond.ErrInvalidCookie),
		errors.Is(err, dndbeyond.ErrMissingCredential):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	}
}
