package synthesis

import (
	"fmt"
	"strings"

	"github.com/randomtoy/arcana-go/internal/domain"
)

// orientedText is a pair of sentences keyed by orientation.
type orientedText struct {
	upright  string
	reversed string
}

func (t orientedText) pick(o domain.Orientation) string {
	if o == domain.Reversed {
		return t.reversed
	}
	return t.upright
}

var positionTemplates = map[string]string{
	"past":    "In the position of the past, this card reflects influences that have shaped your current situation.",
	"present": "In the position of the present, this card speaks to the energies surrounding you right now.",
	"future":  "In the position of the future, this card points toward what is taking shape ahead of you.",
}

// namedCardTexts covers a small set of major arcana with dedicated
// commentary. Everything else falls through to the suit or generic text.
var namedCardTexts = map[string]orientedText{
	"The Fool": {
		upright:  "The Fool heralds a new beginning, inviting you to step forward with openness and trust in the journey.",
		reversed: "The Fool reversed cautions against recklessness, suggesting a pause to consider what leap you are really taking.",
	},
	"The Magician": {
		upright:  "The Magician affirms that you hold every tool you need, and that focused will can turn intention into reality.",
		reversed: "The Magician reversed warns of scattered energy or untapped potential, asking where your talents are going unused.",
	},
	"The High Priestess": {
		upright:  "The High Priestess calls you inward, trusting intuition and the knowledge that lies beneath the surface.",
		reversed: "The High Priestess reversed suggests you are ignoring your inner voice or that something hidden has yet to reveal itself.",
	},
}

var suitTexts = map[domain.Suit]orientedText{
	domain.Cups: {
		upright:  "This card of Cups flows through the emotional waters of your life, touching matters of feeling, connection, and intuition.",
		reversed: "Reversed, this card of Cups suggests emotional currents that are blocked or running counter to your needs.",
	},
	domain.Swords: {
		upright:  "This card of Swords cuts to the realm of thought and truth, where clarity and honest communication are at stake.",
		reversed: "Reversed, this card of Swords points to mental conflict, clouded judgment, or words left unsaid.",
	},
	domain.Wands: {
		upright:  "This card of Wands burns with creative fire, energizing ambition, passion, and forward movement.",
		reversed: "Reversed, this card of Wands suggests stalled momentum or passion seeking a healthier outlet.",
	},
	domain.Pentacles: {
		upright:  "This card of Pentacles grounds the reading in the material world of work, resources, and tangible results.",
		reversed: "Reversed, this card of Pentacles points to instability in practical matters or a need to reassess what you value.",
	},
}

var genericCardText = orientedText{
	upright:  "This card brings its unique energy to the reading, asking you to sit with its imagery and notice what it stirs in you.",
	reversed: "Reversed, this card brings its unique energy in an inverted light, inviting you to consider what is blocked or internalized.",
}

// themeInsights adds a theme-flavored closing clause when the card's suit
// aligns with the theme (or the card is major arcana).
var themeInsights = map[Theme]orientedText{
	ThemeRelationship: {
		upright:  "In matters of the heart, its presence is encouraging.",
		reversed: "In matters of the heart, it asks for patience and honest reflection.",
	},
	ThemeCareer: {
		upright:  "For your working life, this is a signal to keep building.",
		reversed: "For your working life, it suggests reassessing your current course.",
	},
	ThemeSpiritual: {
		upright:  "On your spiritual path, this card marks genuine movement.",
		reversed: "On your spiritual path, it points to lessons still being integrated.",
	},
}

var themeSuits = map[Theme]domain.Suit{
	ThemeRelationship: domain.Cups,
	ThemeCareer:       domain.Pentacles,
	ThemeSpiritual:    domain.Wands,
}

// CardInterpretation builds the per-card commentary paragraph: a position
// context sentence, a card meaning sentence, and an optional theme clause,
// joined by single spaces. Deterministic for identical inputs.
func CardInterpretation(card domain.DrawnCard, theme Theme) string {
	parts := []string{
		positionSentence(card),
		meaningSentence(card),
	}
	if clause := themeClause(card, theme); clause != "" {
		parts = append(parts, clause)
	}
	return strings.Join(parts, " ")
}

func positionSentence(card domain.DrawnCard) string {
	if tmpl, ok := positionTemplates[strings.ToLower(card.Position)]; ok {
		return tmpl
	}
	name := card.PositionName
	if name == "" {
		name = card.Position
	}
	return fmt.Sprintf("In the position of %q, this card colors that aspect of your reading.", name)
}

func meaningSentence(card domain.DrawnCard) string {
	if text, ok := namedCardTexts[card.Name]; ok {
		return text.pick(card.Orientation)
	}
	if text, ok := suitTexts[cardSuit(card.Card)]; ok {
		return text.pick(card.Orientation)
	}
	return genericCardText.pick(card.Orientation)
}

func themeClause(card domain.DrawnCard, theme Theme) string {
	text, ok := themeInsights[theme]
	if !ok {
		return ""
	}
	if card.Arcana != domain.MajorArcana && cardSuit(card.Card) != themeSuits[theme] {
		return ""
	}
	return text.pick(card.Orientation)
}

// cardSuit resolves the suit from card metadata, falling back to a name
// match for decks that do not carry structured suit information.
func cardSuit(card domain.Card) domain.Suit {
	if card.Suit != "" {
		return card.Suit
	}
	switch {
	case strings.Contains(card.Name, "Cups"):
		return domain.Cups
	case strings.Contains(card.Name, "Swords"):
		return domain.Swords
	case strings.Contains(card.Name, "Wands"):
		return domain.Wands
	case strings.Contains(card.Name, "Pentacles"):
		return domain.Pentacles
	}
	return ""
}
