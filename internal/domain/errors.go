package domain

import "errors"

var (
	ErrDeckNotFound      = errors.New("deck not found")
	ErrSpreadNotFound    = errors.New("spread not found")
	ErrReadingNotFound   = errors.New("reading not found")
	ErrEntryNotFound     = errors.New("journal entry not found")
	ErrInvalidMood       = errors.New("mood is not one of the known values")
	ErrEmptySpread       = errors.New("spread must have at least one position")
	ErrSpreadExceedsDeck = errors.New("spread has more positions than cards in deck")
	ErrUpstreamLLM       = errors.New("upstream LLM failure")
	ErrInvalidLLMJSON    = errors.New("LLM returned invalid JSON after retry")
)
