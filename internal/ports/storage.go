package ports

import (
	"context"

	"github.com/randomtoy/arcana-go/internal/domain"
)

// ReadingStore persists completed readings. Readings are immutable after
// creation; there is no update operation.
type ReadingStore interface {
	CreateReading(ctx context.Context, r domain.Reading) error
	GetReading(ctx context.Context, id string) (domain.Reading, error)
	ListReadings(ctx context.Context, userID string) ([]domain.Reading, error)
}

// JournalFilter narrows ListEntries results. Zero fields match everything.
type JournalFilter struct {
	UserID    string
	Mood      domain.Mood
	ReadingID string
}

// JournalStore persists journal entries.
type JournalStore interface {
	CreateEntry(ctx context.Context, e domain.JournalEntry) error
	GetEntry(ctx context.Context, id string) (domain.JournalEntry, error)
	ListEntries(ctx context.Context, filter JournalFilter) ([]domain.JournalEntry, error)
	UpdateEntry(ctx context.Context, e domain.JournalEntry) error
	DeleteEntry(ctx context.Context, id string) error
}
