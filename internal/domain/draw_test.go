package domain_test

import (
	"fmt"
	"testing"

	"github.com/randomtoy/arcana-go/internal/domain"
)

// deterministicRNG returns values from a pre-set sequence.
type deterministicRNG struct {
	values []int
	idx    int
}

func (r *deterministicRNG) Intn(n int) int {
	v := r.values[r.idx%len(r.values)] % n
	r.idx++
	return v
}

func testDeck(n int) domain.Deck {
	cards := make([]domain.Card, n)
	for i := 0; i < n; i++ {
		cards[i] = domain.Card{
			ID:       fmt.Sprintf("card_%d", i),
			Name:     fmt.Sprintf("Card %d", i),
			Arcana:   domain.MajorArcana,
			Keywords: []string{"kw1", "kw2"},
		}
	}
	return domain.Deck{ID: "test", Name: "Test Deck", Cards: cards}
}

func threeCardSpread() domain.SpreadDefinition {
	return domain.SpreadDefinition{
		ID:   "three_card",
		Name: "Past, Present, Future",
		Positions: []domain.Position{
			{ID: "past", Name: "Past"},
			{ID: "present", Name: "Present"},
			{ID: "future", Name: "Future"},
		},
		Layout: domain.Layout{Type: "row", CardCount: 3},
	}
}

func zeros(n int) []int {
	return make([]int, n)
}

func TestDrawCards_UniqueCards(t *testing.T) {
	deck := testDeck(22)
	// 21 shuffle swaps, then 3 orientation picks.
	rng := &deterministicRNG{values: zeros(24)}

	cards, err := domain.DrawCards(deck, threeCardSpread(), rng)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(cards) != 3 {
		t.Fatalf("expected 3 cards, got %d", len(cards))
	}

	seen := make(map[string]bool)
	for _, c := range cards {
		if seen[c.ID] {
			t.Errorf("duplicate card ID: %s", c.ID)
		}
		seen[c.ID] = true
	}
}

func TestDrawCards_PositionBinding(t *testing.T) {
	deck := testDeck(10)
	rng := &deterministicRNG{values: zeros(12)}

	spread := threeCardSpread()
	cards, err := domain.DrawCards(deck, spread, rng)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i, c := range cards {
		if c.Position != spread.Positions[i].ID {
			t.Errorf("card %d: expected position %s, got %s", i, spread.Positions[i].ID, c.Position)
		}
		if c.PositionName != spread.Positions[i].Name {
			t.Errorf("card %d: expected position name %s, got %s", i, spread.Positions[i].Name, c.PositionName)
		}
	}
}

func TestDrawCards_Orientation(t *testing.T) {
	deck := testDeck(5)
	rng := &deterministicRNG{values: []int{
		0, 0, 0, 0, // shuffle (4 swaps for 5 cards)
		0, 1, 0, // orientation: upright, reversed, upright
	}}

	cards, err := domain.DrawCards(deck, threeCardSpread(), rng)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []domain.Orientation{domain.Upright, domain.Reversed, domain.Upright}
	for i, c := range cards {
		if c.Orientation != expected[i] {
			t.Errorf("card %d: expected %s, got %s", i, expected[i], c.Orientation)
		}
	}
}

func TestDrawCards_EmptySpread(t *testing.T) {
	deck := testDeck(5)
	rng := &deterministicRNG{values: []int{0}}

	_, err := domain.DrawCards(deck, domain.SpreadDefinition{ID: "empty"}, rng)
	if err != domain.ErrEmptySpread {
		t.Errorf("expected ErrEmptySpread, got %v", err)
	}
}

func TestDrawCards_SpreadExceedsDeck(t *testing.T) {
	deck := testDeck(2)
	rng := &deterministicRNG{values: []int{0}}

	_, err := domain.DrawCards(deck, threeCardSpread(), rng)
	if err != domain.ErrSpreadExceedsDeck {
		t.Errorf("expected ErrSpreadExceedsDeck, got %v", err)
	}
}
