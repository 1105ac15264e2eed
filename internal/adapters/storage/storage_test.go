package storage_test

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/randomtoy/arcana-go/internal/adapters/storage"
	"github.com/randomtoy/arcana-go/internal/domain"
	"github.com/randomtoy/arcana-go/internal/ports"
)

// assertJSONEqual compares two values by their JSON encoding, sidestepping
// time.Time location differences introduced by the database driver.
func assertJSONEqual(t *testing.T, got, want any) {
	t.Helper()
	gotJSON, err := json.Marshal(got)
	if err != nil {
		t.Fatalf("marshal got: %v", err)
	}
	wantJSON, err := json.Marshal(want)
	if err != nil {
		t.Fatalf("marshal want: %v", err)
	}
	if string(gotJSON) != string(wantJSON) {
		t.Errorf("round trip mismatch:\n got %s\nwant %s", gotJSON, wantJSON)
	}
}

func openTestDB(t *testing.T) *storage.DB {
	t.Helper()
	db, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func sampleReading(id, userID string) domain.Reading {
	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return domain.Reading{
		ID:         id,
		UserID:     userID,
		Question:   "What lies ahead?",
		SpreadType: "three_card",
		Cards: []domain.DrawnCard{
			{
				Card: domain.Card{
					ID:       "the_fool",
					Name:     "The Fool",
					Arcana:   domain.MajorArcana,
					Keywords: []string{"beginnings", "trust"},
					Meanings: domain.Meanings{Upright: "A fresh start.", Reversed: "Recklessness."},
				},
				Position:     "past",
				PositionName: "Past",
				Orientation:  domain.Upright,
			},
			{
				Card: domain.Card{
					ID:       "nine_of_cups",
					Name:     "Nine of Cups",
					Arcana:   domain.MinorArcana,
					Suit:     domain.Cups,
					Keywords: []string{"fruition"},
					Meanings: domain.Meanings{Upright: "Fruition.", Reversed: "Anxiety."},
				},
				Position:     "present",
				PositionName: "Present",
				Orientation:  domain.Reversed,
			},
		},
		Interpretation: domain.Interpretation{
			ID:           "interp-1",
			Summary:      "A layered reading.",
			Introduction: "The cards respond.",
			Cards: []domain.CardReading{
				{Name: "The Fool", Position: "past", Interpretation: "A beginning behind you."},
				{Name: "Nine of Cups", Position: "present", Interpretation: "Satisfaction deferred."},
			},
			CardInteractions:    "The cards speak to each other.",
			Guidance:            "Carry this with you.",
			ReflectionQuestions: []string{"What is beginning?", "What satisfies you?"},
			CreatedAt:           created,
		},
		CreatedAt: created,
	}
}

func TestReading_RoundTrip(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	want := sampleReading("reading-1", "user-1")
	if err := db.CreateReading(ctx, want); err != nil {
		t.Fatalf("create reading: %v", err)
	}

	got, err := db.GetReading(ctx, "reading-1")
	if err != nil {
		t.Fatalf("get reading: %v", err)
	}

	assertJSONEqual(t, got, want)
}

func TestGetReading_NotFound(t *testing.T) {
	db := openTestDB(t)

	_, err := db.GetReading(context.Background(), "missing")
	if !errors.Is(err, domain.ErrReadingNotFound) {
		t.Errorf("expected ErrReadingNotFound, got %v", err)
	}
}

func TestListReadings_ByUser(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	for _, r := range []domain.Reading{
		sampleReading("r1", "user-1"),
		sampleReading("r2", "user-1"),
		sampleReading("r3", "user-2"),
	} {
		if err := db.CreateReading(ctx, r); err != nil {
			t.Fatalf("create reading %s: %v", r.ID, err)
		}
	}

	got, err := db.ListReadings(ctx, "user-1")
	if err != nil {
		t.Fatalf("list readings: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 readings for user-1, got %d", len(got))
	}
}

func sampleEntry(id, userID string, mood domain.Mood, readingID string) domain.JournalEntry {
	now := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	return domain.JournalEntry{
		ID:        id,
		UserID:    userID,
		Title:     "Morning pages",
		Content:   "<p>Today I drew cards.</p>",
		Mood:      mood,
		ReadingID: readingID,
		Tags:      []string{"tarot", "morning"},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestJournalEntry_RoundTrip(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	want := sampleEntry("entry-1", "user-1", domain.MoodHopeful, "reading-1")
	if err := db.CreateEntry(ctx, want); err != nil {
		t.Fatalf("create entry: %v", err)
	}

	got, err := db.GetEntry(ctx, "entry-1")
	if err != nil {
		t.Fatalf("get entry: %v", err)
	}
	assertJSONEqual(t, got, want)
}

func TestJournalEntry_NoReadingLink(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	want := sampleEntry("entry-1", "user-1", domain.MoodNeutral, "")
	if err := db.CreateEntry(ctx, want); err != nil {
		t.Fatalf("create entry: %v", err)
	}

	got, err := db.GetEntry(ctx, "entry-1")
	if err != nil {
		t.Fatalf("get entry: %v", err)
	}
	if got.ReadingID != "" {
		t.Errorf("expected empty reading link, got %q", got.ReadingID)
	}
}

func TestListEntries_Filters(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	entries := []domain.JournalEntry{
		sampleEntry("e1", "user-1", domain.MoodHopeful, "reading-1"),
		sampleEntry("e2", "user-1", domain.MoodAnxious, ""),
		sampleEntry("e3", "user-2", domain.MoodHopeful, "reading-1"),
	}
	for _, e := range entries {
		if err := db.CreateEntry(ctx, e); err != nil {
			t.Fatalf("create entry %s: %v", e.ID, err)
		}
	}

	tests := []struct {
		name   string
		filter ports.JournalFilter
		want   int
	}{
		{"by user", ports.JournalFilter{UserID: "user-1"}, 2},
		{"by user and mood", ports.JournalFilter{UserID: "user-1", Mood: domain.MoodHopeful}, 1},
		{"by reading", ports.JournalFilter{ReadingID: "reading-1"}, 2},
		{"no filter", ports.JournalFilter{}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := db.ListEntries(ctx, tt.filter)
			if err != nil {
				t.Fatalf("list entries: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("expected %d entries, got %d", tt.want, len(got))
			}
		})
	}
}

func TestUpdateEntry_Persisted(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	entry := sampleEntry("entry-1", "user-1", domain.MoodNeutral, "")
	if err := db.CreateEntry(ctx, entry); err != nil {
		t.Fatalf("create entry: %v", err)
	}

	entry.Title = "Evening pages"
	entry.Mood = domain.MoodPeaceful
	entry.UpdatedAt = entry.UpdatedAt.Add(time.Hour)
	if err := db.UpdateEntry(ctx, entry); err != nil {
		t.Fatalf("update entry: %v", err)
	}

	got, err := db.GetEntry(ctx, "entry-1")
	if err != nil {
		t.Fatalf("get entry: %v", err)
	}
	if got.Title != "Evening pages" || got.Mood != domain.MoodPeaceful {
		t.Errorf("update not persisted: %+v", got)
	}
}

func TestUpdateEntry_NotFound(t *testing.T) {
	db := openTestDB(t)

	err := db.UpdateEntry(context.Background(), sampleEntry("missing", "user-1", domain.MoodNeutral, ""))
	if !errors.Is(err, domain.ErrEntryNotFound) {
		t.Errorf("expected ErrEntryNotFound, got %v", err)
	}
}

func TestDeleteEntry_Persisted(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	if err := db.CreateEntry(ctx, sampleEntry("entry-1", "user-1", domain.MoodNeutral, "")); err != nil {
		t.Fatalf("create entry: %v", err)
	}
	if err := db.DeleteEntry(ctx, "entry-1"); err != nil {
		t.Fatalf("delete entry: %v", err)
	}
	if _, err := db.GetEntry(ctx, "entry-1"); !errors.Is(err, domain.ErrEntryNotFound) {
		t.Errorf("expected ErrEntryNotFound after delete, got %v", err)
	}

	if err := db.DeleteEntry(ctx, "entry-1"); !errors.Is(err, domain.ErrEntryNotFound) {
		t.Errorf("expected ErrEntryNotFound for second delete, got %v", err)
	}
}
