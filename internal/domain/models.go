package domain

import "time"

// RNG abstracts random number generation for deterministic testing.
type RNG interface {
	// Intn returns a non-negative random int in [0, n).
	Intn(n int) int
}

// Orientation represents the orientation of a drawn tarot card.
type Orientation string

const (
	Upright  Orientation = "upright"
	Reversed Orientation = "reversed"
)

// Arcana classifies a card as one of the 22 majors or 56 suited minors.
type Arcana string

const (
	MajorArcana Arcana = "major"
	MinorArcana Arcana = "minor"
)

// Suit is the minor-arcana suit. Empty for major arcana.
type Suit string

const (
	Cups      Suit = "cups"
	Pentacles Suit = "pentacles"
	Swords    Suit = "swords"
	Wands     Suit = "wands"
)

// Meanings holds the orientation-dependent meaning text of a card.
type Meanings struct {
	Upright  string `json:"upright"`
	Reversed string `json:"reversed"`
}

// Card represents a single tarot card in a deck.
type Card struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Arcana      Arcana   `json:"arcana"`
	Suit        Suit     `json:"suit,omitempty"`
	Keywords    []string `json:"keywords"`
	Meanings    Meanings `json:"meanings"`
	Description string   `json:"description"`
}

// Deck is a collection of tarot cards.
type Deck struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Cards []Card `json:"cards"`
}

// Position is one named slot of a spread, e.g. "Past".
type Position struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Meaning string `json:"meaning"`
}

// Layout describes how a spread is laid out on the table.
type Layout struct {
	Type      string `json:"type"`
	CardCount int    `json:"card_count"`
}

// SpreadDefinition is a named layout with an ordered set of positions.
// Layout.CardCount always equals len(Positions); the deck store validates
// this at load time.
type SpreadDefinition struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Positions []Position `json:"positions"`
	Layout    Layout     `json:"layout"`
}

// DrawnCard is a card bound to a spread position with an orientation.
type DrawnCard struct {
	Card
	Position     string      `json:"position"`
	PositionName string      `json:"position_name"`
	Orientation  Orientation `json:"orientation"`
}

// CardReading is the per-card commentary inside an Interpretation.
type CardReading struct {
	Name           string `json:"name"`
	Position       string `json:"position"`
	Interpretation string `json:"interpretation"`
}

// Interpretation is the structured reading produced by an interpreter.
// Immutable after creation; a new reading always produces a new one.
type Interpretation struct {
	ID                  string        `json:"id"`
	Summary             string        `json:"summary"`
	Introduction        string        `json:"introduction"`
	Cards               []CardReading `json:"cards"`
	CardInteractions    string        `json:"card_interactions"`
	Guidance            string        `json:"guidance"`
	ReflectionQuestions []string      `json:"reflection_questions"`
	CreatedAt           time.Time     `json:"created_at"`
}

// Reading is a persisted, completed reading.
type Reading struct {
	ID             string         `json:"id"`
	UserID         string         `json:"user_id"`
	Question       string         `json:"question"`
	SpreadType     string         `json:"spread_type"`
	Cards          []DrawnCard    `json:"reading_data"`
	Interpretation Interpretation `json:"interpretation"`
	CreatedAt      time.Time      `json:"created_at"`
}

// Mood is the journal entry mood.
type Mood string

const (
	MoodJoyful     Mood = "joyful"
	MoodPeaceful   Mood = "peaceful"
	MoodHopeful    Mood = "hopeful"
	MoodCurious    Mood = "curious"
	MoodNeutral    Mood = "neutral"
	MoodAnxious    Mood = "anxious"
	MoodMelancholy Mood = "melancholy"
	MoodFrustrated Mood = "frustrated"
)

// Moods returns all valid moods in canonical order.
func Moods() []Mood {
	return []Mood{
		MoodJoyful, MoodPeaceful, MoodHopeful, MoodCurious,
		MoodNeutral, MoodAnxious, MoodMelancholy, MoodFrustrated,
	}
}

// ValidMood reports whether m is one of the eight known moods.
func ValidMood(m Mood) bool {
	for _, known := range Moods() {
		if m == known {
			return true
		}
	}
	return false
}

// JournalEntry is a personal reflection, optionally linked to a reading.
type JournalEntry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Mood      Mood      `json:"mood"`
	ReadingID string    `json:"reading_id,omitempty"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
