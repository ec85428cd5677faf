package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"beyondbridge/internal/content"
	"beyondbridge/internal/dndbeyond"
	"beyondbridge/internal/session"
)

type stubContentSource struct {
	items      []dndbeyond.ContentItem
	characters []dndbeyond.CharacterSummary
	err        error
}

func (s *stubContentSource) ListDigitalContent(context.Context, string) ([]dndbeyond.ContentItem, error) {
	return s.items, s.err
}

func (s *stubContentSource) ListCharacters(context.Context, string) ([]dndbeyond.CharacterSummary, error) {
	return s.characters, s.err
}

type stubProber struct {
	err error
}

func (p *stubProber) Probe(context.Context, string) (json.RawMessage, error) {
	if p.err != nil {
		return nil, p.err
	}
	return json.RawMessage(`{"username":"tester"}`), nil
}

func setupContentRouter(t *testing.T, source *stubContentSource, prober *stubProber, credential string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	validator := session.NewValidator(prober, nil)
	if credential != "" {
		_, _ = validator.Validate(context.Background(), credential)
	}

	controller := NewContentController(content.NewLister(source), validator)

	router := gin.New()
	router.GET("/api/content", controller.GetContent)
	router.GET("/api/content/characters", controller.GetCharacters)
	return router
}

func TestContentController_GetContent(t *testing.T) {
	t.Run("returns partitioned content", func(t *testing.T) {
		source := &stubContentSource{items: []dndbeyond.ContentItem{
			{ID: "1042", Name: "Curse of Strahd", Type: "adventure"},
			{ID: "2001", Name: "Player's Handbook", Type: "sourcebook"},
			{ID: "h-77", Name: "My Homebrew Monsters", Type: "homebrew"},
		}}
		router := setupContentRouter(t, source, &stubProber{}, "good-cookie")

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/content", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var set content.Set
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &set))
		require.Len(t, set.Adventures, 1)
		assert.Equal(t, "Curse of Strahd", set.Adventures[0].Name)
		require.Len(t, set.Sourcebooks, 1)
		require.Len(t, set.Homebrew, 1)
	})

	t.Run("returns 401 without a validated session", func(t *testing.T) {
		router := setupContentRouter(t, &stubContentSource{}, &stubProber{}, "")

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/content", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "not authenticated")
	})

	t.Run("returns 401 when the provider rejects the cookie", func(t *testing.T) {
		source := &stubContentSource{err: dndbeyond.ErrInvalidCookie}
		router := setupContentRouter(t, source, &stubProber{}, "stale-cookie")

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/content", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("returns 502 on upstream failure", func(t *testing.T) {
		source := &stubContentSource{err: errors.New("connection reset")}
		router := setupContentRouter(t, source, &stubProber{}, "good-cookie")

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/content", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadGateway, w.Code)
	})
}

func TestContentController_GetCharacters(t *testing.T) {
	t.Run("returns characters", func(t *testing.T) {
		source := &stubContentSource{characters: []dndbeyond.CharacterSummary{
			{ID: json.Number("12345"), Name: "Strider", Level: 7},
		}}
		router := setupContentRouter(t, source, &stubProber{}, "good-cookie")

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/content/characters", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response struct {
			Characters []content.Item `json:"characters"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		require.Len(t, response.Characters, 1)
		assert.Equal(t, "12345", response.Characters[0].ID)
		assert.Equal(t, "Strider (Level 7)", response.Characters[0].Name)
	})

	t.Run("requires authentication", func(t *testing.T) {
		router := setupContentRouter(t, &stubContentSource{}, &stubProber{}, "")

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/content/characters", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
