package ports

import (
	"context"

	"github.com/randomtoy/arcana-go/internal/domain"
)

// DeckStore provides access to tarot decks.
type DeckStore interface {
	GetDeck(ctx context.Context, deckID string) (domain.Deck, error)
}

// SpreadStore provides access to spread definitions.
type SpreadStore interface {
	GetSpread(ctx context.Context, spreadID string) (domain.SpreadDefinition, error)
	ListSpreads(ctx context.Context) ([]domain.SpreadDefinition, error)
}
