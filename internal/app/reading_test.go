package app_test

import (
	"context"
	"testing"

	"github.com/randomtoy/arcana-go/internal/app"
	"github.com/randomtoy/arcana-go/internal/cache"
	"github.com/randomtoy/arcana-go/internal/domain"
	"github.com/randomtoy/arcana-go/internal/ports"
	"github.com/randomtoy/arcana-go/internal/synthesis"
)

type mockDeckStore struct {
	deck domain.Deck
	err  error
}

func (m *mockDeckStore) GetDeck(_ context.Context, _ string) (domain.Deck, error) {
	return m.deck, m.err
}

type mockSpreadStore struct {
	spread domain.SpreadDefinition
	err    error
}

func (m *mockSpreadStore) GetSpread(_ context.Context, _ string) (domain.SpreadDefinition, error) {
	return m.spread, m.err
}

func (m *mockSpreadStore) ListSpreads(_ context.Context) ([]domain.SpreadDefinition, error) {
	return []domain.SpreadDefinition{m.spread}, m.err
}

// countingInterpreter wraps another interpreter and counts calls, so tests
// can assert that cache hits skip generation.
type countingInterpreter struct {
	inner ports.Interpreter
	calls int
}

func (c *countingInterpreter) Interpret(ctx context.Context, in ports.InterpretInput) (domain.Interpretation, error) {
	c.calls++
	return c.inner.Interpret(ctx, in)
}

type failingInterpreter struct{ err error }

func (f *failingInterpreter) Interpret(_ context.Context, _ ports.InterpretInput) (domain.Interpretation, error) {
	return domain.Interpretation{}, f.err
}

type memReadingStore struct {
	readings map[string]domain.Reading
	err      error
}

func newMemReadingStore() *memReadingStore {
	return &memReadingStore{readings: make(map[string]domain.Reading)}
}

func (m *memReadingStore) CreateReading(_ context.Context, r domain.Reading) error {
	if m.err != nil {
		return m.err
	}
	m.readings[r.ID] = r
	return nil
}

func (m *memReadingStore) GetReading(_ context.Context, id string) (domain.Reading, error) {
	r, ok := m.readings[id]
	if !ok {
		return domain.Reading{}, domain.ErrReadingNotFound
	}
	return r, nil
}

func (m *memReadingStore) ListReadings(_ context.Context, userID string) ([]domain.Reading, error) {
	var out []domain.Reading
	for _, r := range m.readings {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

type fixedRNG struct{ val int }

func (r fixedRNG) Intn(n int) int { return r.val % n }

func testDeck() domain.Deck {
	cards := make([]domain.Card, 22)
	for i := 0; i < 22; i++ {
		cards[i] = domain.Card{
			ID:       "card_" + string(rune('a'+i)),
			Name:     "Card " + string(rune('A'+i)),
			Arcana:   domain.MajorArcana,
			Keywords: []string{"kw1"},
		}
	}
	return domain.Deck{ID: "rider_waite", Name: "Rider Waite", Cards: cards}
}

func testSpread() domain.SpreadDefinition {
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

func newService(interp ports.Interpreter, store ports.ReadingStore) *app.ReadingService {
	return app.NewReadingService(
		&mockDeckStore{deck: testDeck()},
		&mockSpreadStore{spread: testSpread()},
		interp,
		cache.NewLRU(8),
		store,
		fixedRNG{val: 0},
	)
}

func TestNewReading_Success(t *testing.T) {
	store := newMemReadingStore()
	svc := newService(synthesis.New(fixedRNG{val: 0}), store)

	reading, err := svc.NewReading(context.Background(), app.NewReadingRequest{
		UserID:   "user-1",
		Question: "Will it rain?",
		DeckID:   "rider_waite",
		SpreadID: "three_card",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if reading.ID == "" {
		t.Error("reading has no ID")
	}
	if len(reading.Cards) != 3 {
		t.Fatalf("expected 3 cards, got %d", len(reading.Cards))
	}
	if len(reading.Interpretation.Cards) != 3 {
		t.Errorf("expected 3 card readings, got %d", len(reading.Interpretation.Cards))
	}
	if _, ok := store.readings[reading.ID]; !ok {
		t.Error("reading was not persisted")
	}
}

func TestInterpret_CacheSkipsGeneration(t *testing.T) {
	counting := &countingInterpreter{inner: synthesis.New(fixedRNG{val: 0})}
	svc := newService(counting, newMemReadingStore())

	spread := testSpread()
	cards := []domain.DrawnCard{
		{Card: domain.Card{Name: "The Fool", Arcana: domain.MajorArcana}, Position: "past", PositionName: "Past", Orientation: domain.Upright},
	}

	first, err := svc.Interpret(context.Background(), "q", spread, cards)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.Interpret(context.Background(), "q", spread, cards)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if counting.calls != 1 {
		t.Errorf("expected 1 generator call, got %d", counting.calls)
	}
	if first.ID != second.ID {
		t.Error("cache hit returned a different interpretation")
	}
	if first.Summary != second.Summary {
		t.Error("cache hit returned different summary text")
	}
}

func TestInterpret_OrientationChangeMissesCache(t *testing.T) {
	counting := &countingInterpreter{inner: synthesis.New(fixedRNG{val: 0})}
	svc := newService(counting, newMemReadingStore())

	spread := testSpread()
	upright := []domain.DrawnCard{
		{Card: domain.Card{Name: "The Fool", Arcana: domain.MajorArcana}, Position: "past", PositionName: "Past", Orientation: domain.Upright},
	}
	reversed := []domain.DrawnCard{
		{Card: domain.Card{Name: "The Fool", Arcana: domain.MajorArcana}, Position: "past", PositionName: "Past", Orientation: domain.Reversed},
	}

	if _, err := svc.Interpret(context.Background(), "q", spread, upright); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Interpret(context.Background(), "q", spread, reversed); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if counting.calls != 2 {
		t.Errorf("expected 2 generator calls, got %d", counting.calls)
	}
}

func TestNewReading_SpreadNotFound(t *testing.T) {
	svc := app.NewReadingService(
		&mockDeckStore{deck: testDeck()},
		&mockSpreadStore{err: domain.ErrSpreadNotFound},
		synthesis.New(fixedRNG{val: 0}),
		cache.NewLRU(8),
		newMemReadingStore(),
		fixedRNG{val: 0},
	)

	_, err := svc.NewReading(context.Background(), app.NewReadingRequest{
		UserID:   "user-1",
		SpreadID: "nonexistent",
		DeckID:   "rider_waite",
	})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestNewReading_InterpreterFailure(t *testing.T) {
	svc := newService(&failingInterpreter{err: domain.ErrUpstreamLLM}, newMemReadingStore())

	_, err := svc.NewReading(context.Background(), app.NewReadingRequest{
		UserID:   "user-1",
		DeckID:   "rider_waite",
		SpreadID: "three_card",
	})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestEndSession_ClearsCache(t *testing.T) {
	counting := &countingInterpreter{inner: synthesis.New(fixedRNG{val: 0})}
	svc := newService(counting, newMemReadingStore())

	spread := testSpread()
	cards := []domain.DrawnCard{
		{Card: domain.Card{Name: "The Fool", Arcana: domain.MajorArcana}, Position: "past", PositionName: "Past", Orientation: domain.Upright},
	}

	if _, err := svc.Interpret(context.Background(), "q", spread, cards); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	svc.EndSession()
	if _, err := svc.Interpret(context.Background(), "q", spread, cards); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if counting.calls != 2 {
		t.Errorf("expected regeneration after EndSession, got %d calls", counting.calls)
	}
}
