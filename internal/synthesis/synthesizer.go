package synthesis

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/randomtoy/arcana-go/internal/domain"
	"github.com/randomtoy/arcana-go/internal/ports"
)

// Synthesizer implements ports.Interpreter with in-process template
// generation. It is safe for concurrent use as long as the supplied RNG is.
type Synthesizer struct {
	rng domain.RNG
}

func New(rng domain.RNG) *Synthesizer {
	return &Synthesizer{rng: rng}
}

// Interpret assembles a full Interpretation for the draw. It never fails
// under well-formed input; the error return exists to satisfy the port and
// to surface context cancellation.
func (s *Synthesizer) Interpret(ctx context.Context, in ports.InterpretInput) (domain.Interpretation, error) {
	if err := ctx.Err(); err != nil {
		return domain.Interpretation{}, err
	}

	theme, tone := Classify(in.Question, in.Cards)

	cardReadings := make([]domain.CardReading, len(in.Cards))
	for i, card := range in.Cards {
		cardReadings[i] = domain.CardReading{
			Name:           card.Name,
			Position:       card.Position,
			Interpretation: CardInterpretation(card, theme),
		}
	}

	return domain.Interpretation{
		ID:                  uuid.NewString(),
		Summary:             Summary(in.Question, in.Cards, tone, s.rng),
		Introduction:        Introduction(theme, tone),
		Cards:               cardReadings,
		CardInteractions:    CardInteractions(in.Cards, theme),
		Guidance:            Guidance(in.Cards, theme, tone),
		ReflectionQuestions: ReflectionQuestions(in.Cards, theme, tone, s.rng),
		CreatedAt:           time.Now().UTC(),
	}, nil
}
