package ports

import (
	"context"

	"github.com/randomtoy/arcana-go/internal/domain"
)

// InterpretInput holds everything an interpreter needs to generate a reading.
type InterpretInput struct {
	Question string
	Spread   domain.SpreadDefinition
	Cards    []domain.DrawnCard
}

// Interpreter generates a structured interpretation for a completed draw.
// Implementations: the in-process synthesizer and the OpenRouter client.
type Interpreter interface {
	Interpret(ctx context.Context, in InterpretInput) (domain.Interpretation, error)
}

// InterpretationCache memoizes interpretations for exact-repeat requests.
// Keys are sensitive to the question bytes and the full card sequence,
// including order and orientation.
type InterpretationCache interface {
	Get(question string, cards []domain.DrawnCard) (domain.Interpretation, bool)
	Put(question string, cards []domain.DrawnCard, interp domain.Interpretation)
	Clear()
}
