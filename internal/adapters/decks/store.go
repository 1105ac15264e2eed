// Package decks serves immutable reference data: tarot decks and spread
// definitions, loaded once from embedded JSON.
package decks

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/randomtoy/arcana-go/internal/domain"
)

//go:embed data/*.json
var dataFS embed.FS

// deckRegistry maps deck IDs to their JSON filenames inside data/.
var deckRegistry = map[string]string{
	"rider_waite": "data/rider_waite.json",
}

const spreadsFile = "data/spreads.json"

// EmbeddedStore loads decks and spreads from embedded JSON files. It
// implements both ports.DeckStore and ports.SpreadStore.
type EmbeddedStore struct {
	once    sync.Once
	decks   map[string]domain.Deck
	spreads map[string]domain.SpreadDefinition
	order   []string
	err     error
}

func NewEmbeddedStore() *EmbeddedStore {
	return &EmbeddedStore{}
}

func (s *EmbeddedStore) init() {
	s.decks = make(map[string]domain.Deck, len(deckRegistry))
	for id, filename := range deckRegistry {
		raw, err := dataFS.ReadFile(filename)
		if err != nil {
			s.err = fmt.Errorf("read embedded deck %s: %w", id, err)
			return
		}
		var cards []domain.Card
		if err := json.Unmarshal(raw, &cards); err != nil {
			s.err = fmt.Errorf("parse embedded deck %s: %w", id, err)
			return
		}
		s.decks[id] = domain.Deck{
			ID:    id,
			Name:  id,
			Cards: cards,
		}
	}

	raw, err := dataFS.ReadFile(spreadsFile)
	if err != nil {
		s.err = fmt.Errorf("read embedded spreads: %w", err)
		return
	}
	var spreads []domain.SpreadDefinition
	if err := json.Unmarshal(raw, &spreads); err != nil {
		s.err = fmt.Errorf("parse embedded spreads: %w", err)
		return
	}

	s.spreads = make(map[string]domain.SpreadDefinition, len(spreads))
	for _, sp := range spreads {
		if sp.Layout.CardCount != len(sp.Positions) {
			s.err = fmt.Errorf("spread %s: card_count %d does not match %d positions",
				sp.ID, sp.Layout.CardCount, len(sp.Positions))
			return
		}
		s.spreads[sp.ID] = sp
		s.order = append(s.order, sp.ID)
	}
}

func (s *EmbeddedStore) GetDeck(_ context.Context, deckID string) (domain.Deck, error) {
	s.once.Do(s.init)
	if s.err != nil {
		return domain.Deck{}, s.err
	}
	deck, ok := s.decks[deckID]
	if !ok {
		return domain.Deck{}, domain.ErrDeckNotFound
	}
	return deck, nil
}

func (s *EmbeddedStore) GetSpread(_ context.Context, spreadID string) (domain.SpreadDefinition, error) {
	s.once.Do(s.init)
	if s.err != nil {
		return domain.SpreadDefinition{}, s.err
	}
	spread, ok := s.spreads[spreadID]
	if !ok {
		return domain.SpreadDefinition{}, domain.ErrSpreadNotFound
	}
	return spread, nil
}

func (s *EmbeddedStore) ListSpreads(_ context.Context) ([]domain.SpreadDefinition, error) {
	s.once.Do(s.init)
	if s.err != nil {
		return nil, s.err
	}
	out := make([]domain.SpreadDefinition, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.spreads[id])
	}
	return out, nil
}
