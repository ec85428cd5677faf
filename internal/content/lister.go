// Package content lists the user's owned provider content, partitioned by
// content kind.
package content

import (
	"context"
	"errors"
	"fmt"

	"beyondbridge/internal/dndbeyond"
	"beyondbridge/internal/entities"
	"beyondbridge/internal/session"
)

// ErrNotAuthenticated indicates listing was attempted without a validated
// session. No network call is made in that case.
var ErrNotAuthenticated = errors.New("not authenticated with D&D Beyond")

// Item is one listable piece of content.
type Item struct {
	ID   string               `json:"id"`
	Name string               `json:"name"`
	Kind entities.ContentKind `json:"kind"`
}

// Set is the user's owned content partitioned by kind. Characters are
// fetched lazily through ListCharacters and are not part of the set.
type Set struct {
	Adventures  []Item `json:"adventures"`
	Sourcebooks []Item `json:"sourcebooks"`
	Homebrew    []Item `json:"homebrew"`
}

// ContentSource provides the provider's listing endpoints.
type ContentSource interface {
	ListDigitalContent(ctx context.Context, cookie string) ([]dndbeyond.ContentItem, error)
	ListCharacters(ctx context.Context, cookie string) ([]dndbeyond.CharacterSummary, error)
}

type Lister struct {
	source ContentSource
}

func NewLister(source ContentSource) *Lister {
	return &Lister{source: source}
}

// ListContent fetches the user's owned digital content and partitions it by
// kind. Requires an authenticated session.
func (l *Lister) ListContent(ctx context.Context, sess session.Session) (*Set, error) {
	if !sess.Authenticated {
		return nil, ErrNotAuthenticated
	}

	items, err := l.source.ListDigitalContent(ctx, sess.Credential)
	if err != nil {
		return nil, err
	}

	set := &Set{
		Adventures:  []Item{},
		Sourcebooks: []Item{},
		Homebrew:    []Item{},
	}
	for _, item := range items {
		entry := Item{ID: item.ID, Name: item.Name, Kind: entities.ContentKind(item.Type)}
		switch entry.Kind {
		case entities.ContentKindAdventure:
			set.Adventures = append(set.Adventures, entry)
		case entities.ContentKindSourcebook:
			set.Sourcebooks = append(set.Sourcebooks, entry)
		case entities.ContentKindHomebrew:
			set.Homebrew = append(set.Homebrew, entry)
		}
	}
	return set, nil
}

// ListCharacters fetches the user's characters. The provider serves
// characters from a separate endpoint, so the UI requests them on demand
// after the main content set is already displayed.
func (l *Lister) ListCharacters(ctx context.Context, sess session.Session) ([]Item, error) {
	if !sess.Authenticated {
		return nil, ErrNotAuthenticated
	}

	characters, err := l.source.ListCharacters(ctx, sess.Credential)
	if err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(characters))
	for _, c := range characters {
		name := c.Name
		if c.Level > 0 {
			name = fmt.Sprintf("%s (Level %d)", c.Name, c.Level)
		}
		items = append(items, Item{
			ID:   c.ID.String(),
			Name: name,
			Kind: entities.ContentKindCharacter,
		})
	}
	return items, nil
}
