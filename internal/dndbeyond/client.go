package dndbeyond

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const (
	defaultBaseURL = "https://www.dndbeyond.com"

	charactersPath     = "/api/user/characters"
	digitalContentPath = "/api/subscriptions/user/digital-content"
	characterJSONPath  = "/api/character/%s/json"

	// The provider rejects requests without a browser-like User-Agent.
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

	defaultTimeout = 30 * time.Second
)

// Client interfaces with the D&D Beyond REST API. Requests are authenticated
// with a CobaltSession cookie. Failures are terminal per call: there is no
// retry or backoff, the caller decides whether to re-invoke.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client against the production API.
func NewClient() *Client {
	return NewClientWithBaseURL(defaultBaseURL)
}

// NewClientWithBaseURL creates a client against a custom endpoint.
// Used by tests to point at an httptest server.
func NewClientWithBaseURL(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

// ContentItem is one entry of the user's owned digital content.
type ContentItem struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

type digitalContentResponse struct {
	Items []ContentItem `json:"items"`
}

// CharacterSummary is one entry of the user's character list.
type CharacterSummary struct {
	ID    json.Number `json:"id"`
	Name  string      `json:"name"`
	Level int         `json:"level"`
}

type charactersResponse struct {
	Data []CharacterSummary `json:"data"`
}

// Probe issues the authentication probe request and returns the raw user
// payload on success. HTTP 200 is the only success; 401 maps to
// ErrInvalidCookie, any other status to a StatusError.
func (c *Client) Probe(ctx context.Context, cookie string) (json.RawMessage, error) {
	body, err := c.get(ctx, charactersPath, cookie)
	if err != nil {
		return nil, err
	}
	return body, nil
}

// ListDigitalContent fetches the user's owned content (adventures,
// sourcebooks, homebrew).
func (c *Client) ListDigitalContent(ctx context.Context, cookie string) ([]ContentItem, error) {
	body, err := c.get(ctx, digitalContentPath, cookie)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user content: %w", err)
	}

	var resp digitalContentResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode content list: %w", err)
	}
	return resp.Items, nil
}

// ListCharacters fetches the user's character list. Characters live behind a
// separate endpoint from other digital content and are queried on demand.
func (c *Client) ListCharacters(ctx context.Context, cookie string) ([]CharacterSummary, error) {
	body, err := c.get(ctx, charactersPath, cookie)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch characters: %w", err)
	}

	var resp charactersResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode character list: %w", err)
	}
	return resp.Data, nil
}

// GetCharacter fetches the full JSON detail for a single character.
func (c *Client) GetCharacter(ctx context.Context, cookie, id string) (json.RawMessage, error) {
	body, err := c.get(ctx, fmt.Sprintf(characterJSONPath, id), cookie)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch character data: %w", err)
	}
	return body, nil
}

func (c *Client) get(ctx context.Context, path, cookie string) (json.RawMessage, error) {
	if cookie == "" {
		return nil, ErrMissingCredential
	}

	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Cookie", "CobaltSession="+cookie)
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, ErrInvalidCookie
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: resp.StatusCode, URL: url}
	}

	var body json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return body, nil
}
