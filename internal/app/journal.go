package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/randomtoy/arcana-go/internal/domain"
	"github.com/randomtoy/arcana-go/internal/ports"
)

// NewEntryRequest is the application-level input for creating or updating
// a journal entry.
type NewEntryRequest struct {
	UserID    string
	Title     string
	Content   string
	Mood      domain.Mood
	ReadingID string
	Tags      []string
}

// JournalService manages journal entries and their optional link to a
// persisted reading.
type JournalService struct {
	entries  ports.JournalStore
	readings ports.ReadingStore
}

func NewJournalService(entries ports.JournalStore, readings ports.ReadingStore) *JournalService {
	return &JournalService{entries: entries, readings: readings}
}

func (s *JournalService) CreateEntry(ctx context.Context, req NewEntryRequest) (domain.JournalEntry, error) {
	if req.Mood == "" {
		req.Mood = domain.MoodNeutral
	}
	if !domain.ValidMood(req.Mood) {
		return domain.JournalEntry{}, domain.ErrInvalidMood
	}

	if req.ReadingID != "" {
		if _, err := s.readings.GetReading(ctx, req.ReadingID); err != nil {
			return domain.JournalEntry{}, fmt.Errorf("resolve linked reading: %w", err)
		}
	}

	now := time.Now().UTC()
	entry := domain.JournalEntry{
		ID:        uuid.NewString(),
		UserID:    req.UserID,
		Title:     req.Title,
		Content:   req.Content,
		Mood:      req.Mood,
		ReadingID: req.ReadingID,
		Tags:      req.Tags,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.entries.CreateEntry(ctx, entry); err != nil {
		return domain.JournalEntry{}, fmt.Errorf("save entry: %w", err)
	}
	return entry, nil
}

func (s *JournalService) GetEntry(ctx context.Context, id string) (domain.JournalEntry, error) {
	return s.entries.GetEntry(ctx, id)
}

func (s *JournalService) ListEntries(ctx context.Context, filter ports.JournalFilter) ([]domain.JournalEntry, error) {
	if filter.Mood != "" && !domain.ValidMood(filter.Mood) {
		return nil, domain.ErrInvalidMood
	}
	return s.entries.ListEntries(ctx, filter)
}

// UpdateEntry replaces the mutable fields of an existing entry. CreatedAt
// and ownership never change.
func (s *JournalService) UpdateEntry(ctx context.Context, id string, req NewEntryRequest) (domain.JournalEntry, error) {
	existing, err := s.entries.GetEntry(ctx, id)
	if err != nil {
		return domain.JournalEntry{}, err
	}

	if req.Mood == "" {
		req.Mood = existing.Mood
	}
	if !domain.ValidMood(req.Mood) {
		return domain.JournalEntry{}, domain.ErrInvalidMood
	}

	if req.ReadingID != "" && req.ReadingID != existing.ReadingID {
		if _, err := s.readings.GetReading(ctx, req.ReadingID); err != nil {
			return domain.JournalEntry{}, fmt.Errorf("resolve linked reading: %w", err)
		}
	}

	existing.Title = req.Title
	existing.Content = req.Content
	existing.Mood = req.Mood
	existing.ReadingID = req.ReadingID
	existing.Tags = req.Tags
	existing.UpdatedAt = time.Now().UTC()

	if err := s.entries.UpdateEntry(ctx, existing); err != nil {
		return domain.JournalEntry{}, fmt.Errorf("update entry: %w", err)
	}
	return existing, nil
}

func (s *JournalService) DeleteEntry(ctx context.Context, id string) error {
	return s.entries.DeleteEntry(ctx, id)
}
