package http

import (
	"time"

	"github.com/randomtoy/arcana-go/internal/domain"
)

// NewReadingRequest is the JSON body of POST /v1/readings.
type NewReadingRequest struct {
	UserID   string `json:"user_id"`
	Question string `json:"question"`
	Spread   string `json:"spread"`
	Deck     string `json:"deck"`
}

// ReadingResponse is the JSON shape of a persisted reading.
type ReadingResponse struct {
	ID             string             `json:"id"`
	UserID         string             `json:"user_id"`
	Question       string             `json:"question"`
	SpreadType     string             `json:"spread_type"`
	Cards          []CardResponse     `json:"cards"`
	Interpretation InterpretationResp `json:"interpretation"`
	CreatedAt      time.Time          `json:"created_at"`
	Meta           MetaResp           `json:"meta"`
}

type CardResponse struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	Arcana       domain.Arcana      `json:"arcana"`
	Suit         domain.Suit        `json:"suit,omitempty"`
	Position     string             `json:"position"`
	PositionName string             `json:"position_name"`
	Orientation  domain.Orientation `json:"orientation"`
	Keywords     []string           `json:"keywords"`
	Meaning      string             `json:"meaning"`
}

type CardReadingResp struct {
	Name           string `json:"name"`
	Position       string `json:"position"`
	Interpretation string `json:"interpretation"`
}

type InterpretationResp struct {
	ID                  string            `json:"id"`
	Summary             string            `json:"summary"`
	Introduction        string            `json:"introduction"`
	Cards               []CardReadingResp `json:"cards"`
	CardInteractions    string            `json:"card_interactions"`
	Guidance            string            `json:"guidance"`
	ReflectionQuestions []string          `json:"reflection_questions"`
}

type MetaResp struct {
	RequestID string `json:"request_id"`
	LatencyMS int64  `json:"latency_ms"`
}

// JournalEntryRequest is the JSON body of POST and PUT /v1/journal.
type JournalEntryRequest struct {
	UserID    string   `json:"user_id"`
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Mood      string   `json:"mood"`
	ReadingID string   `json:"reading_id,omitempty"`
	Tags      []string `json:"tags"`
}

type JournalEntryResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Mood      string    `json:"mood"`
	ReadingID string    `json:"reading_id,omitempty"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SpreadResponse describes an available spread.
type SpreadResponse struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	CardCount int                `json:"card_count"`
	Positions []PositionResponse `json:"positions"`
}

type PositionResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Meaning string `json:"meaning"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
