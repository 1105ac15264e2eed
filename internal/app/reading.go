package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/randomtoy/arcana-go/internal/domain"
	"github.com/randomtoy/arcana-go/internal/ports"
)

// NewReadingRequest is the application-level input (no HTTP types).
type NewReadingRequest struct {
	UserID   string
	Question string
	DeckID   string
	SpreadID string
}

// ReadingService orchestrates drawing, interpretation, and persistence.
type ReadingService struct {
	deckStore   ports.DeckStore
	spreadStore ports.SpreadStore
	interpreter ports.Interpreter
	cache       ports.InterpretationCache
	readings    ports.ReadingStore
	rng         domain.RNG
}

func NewReadingService(
	ds ports.DeckStore,
	ss ports.SpreadStore,
	interp ports.Interpreter,
	cache ports.InterpretationCache,
	readings ports.ReadingStore,
	rng domain.RNG,
) *ReadingService {
	return &ReadingService{
		deckStore:   ds,
		spreadStore: ss,
		interpreter: interp,
		cache:       cache,
		readings:    readings,
		rng:         rng,
	}
}

// Interpret returns an interpretation for the draw, consulting the cache
// first. An exact-repeat request (identical question bytes and identical
// card sequence) returns the cached interpretation without regenerating.
// Card counts that do not match the spread are tolerated: the result covers
// exactly the cards supplied.
func (s *ReadingService) Interpret(ctx context.Context, question string, spread domain.SpreadDefinition, cards []domain.DrawnCard) (domain.Interpretation, error) {
	if interp, ok := s.cache.Get(question, cards); ok {
		return interp, nil
	}

	interp, err := s.interpreter.Interpret(ctx, ports.InterpretInput{
		Question: question,
		Spread:   spread,
		Cards:    cards,
	})
	if err != nil {
		return domain.Interpretation{}, fmt.Errorf("interpret: %w", err)
	}

	s.cache.Put(question, cards, interp)
	return interp, nil
}

// NewReading runs the full flow: resolve spread and deck, draw one card per
// position, interpret, and persist the completed reading.
func (s *ReadingService) NewReading(ctx context.Context, req NewReadingRequest) (domain.Reading, error) {
	spread, err := s.spreadStore.GetSpread(ctx, req.SpreadID)
	if err != nil {
		return domain.Reading{}, fmt.Errorf("get spread: %w", err)
	}

	deck, err := s.deckStore.GetDeck(ctx, req.DeckID)
	if err != nil {
		return domain.Reading{}, fmt.Errorf("get deck: %w", err)
	}

	cards, err := domain.DrawCards(deck, spread, s.rng)
	if err != nil {
		return domain.Reading{}, fmt.Errorf("draw cards: %w", err)
	}

	interp, err := s.Interpret(ctx, req.Question, spread, cards)
	if err != nil {
		return domain.Reading{}, err
	}

	reading := domain.Reading{
		ID:             uuid.NewString(),
		UserID:         req.UserID,
		Question:       req.Question,
		SpreadType:     spread.ID,
		Cards:          cards,
		Interpretation: interp,
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.readings.CreateReading(ctx, reading); err != nil {
		return domain.Reading{}, fmt.Errorf("save reading: %w", err)
	}

	return reading, nil
}

func (s *ReadingService) GetReading(ctx context.Context, id string) (domain.Reading, error) {
	return s.readings.GetReading(ctx, id)
}

func (s *ReadingService) ListReadings(ctx context.Context, userID string) ([]domain.Reading, error) {
	return s.readings.ListReadings(ctx, userID)
}

// ListSpreads exposes the available spread definitions.
func (s *ReadingService) ListSpreads(ctx context.Context) ([]domain.SpreadDefinition, error) {
	return s.spreadStore.ListSpreads(ctx)
}

// EndSession clears the interpretation cache.
func (s *ReadingService) EndSession() {
	s.cache.Clear()
}
