package synthesis

import (
	"fmt"
	"strings"

	"github.com/randomtoy/arcana-go/internal/domain"
)

var toneAdjectives = map[Tone][4]string{
	TonePositive:       {"encouraging", "bright", "affirming", "hopeful"},
	ToneChallenging:    {"demanding", "sobering", "testing", "difficult"},
	ToneBalanced:       {"nuanced", "measured", "layered", "thoughtful"},
	ToneSignificant:    {"important", "weighty", "pivotal", "notable"},
	ToneTransformative: {"transformative", "profound", "powerful", "deep"},
}

// Summary produces the one-line overview. The adjective pick draws on the
// RNG, so identical inputs may phrase the summary differently.
func Summary(question string, cards []domain.DrawnCard, tone Tone, rng domain.RNG) string {
	adjectives, ok := toneAdjectives[tone]
	if !ok {
		adjectives = toneAdjectives[ToneBalanced]
	}
	adj := adjectives[rng.Intn(len(adjectives))]

	subject := "your question"
	if q := strings.TrimSpace(question); q != "" {
		subject = fmt.Sprintf("your question %q", q)
	}

	switch len(cards) {
	case 1:
		return fmt.Sprintf("This single card reading offers a %s answer to %s.", adj, subject)
	case 3:
		return fmt.Sprintf("This three card reading traces a %s arc across %s.", adj, subject)
	default:
		return fmt.Sprintf("This %d card reading weaves a %s response to %s.", len(cards), adj, subject)
	}
}

var themeIntros = map[Theme]string{
	ThemeRelationship: "Your question touches the territory of the heart, and the cards respond to the bonds you hold and seek.",
	ThemeCareer:       "Your question concerns your work and material path, and the cards speak to effort, ambition, and reward.",
	ThemeHealth:       "Your question turns toward wellbeing, and the cards address the balance of body and spirit.",
	ThemeSpiritual:    "Your question reaches toward meaning and inner growth, and the cards answer on the level of the soul.",
	ThemeGeneral:      "The cards respond to the broad currents moving through your life at this moment.",
}

var toneClosers = map[Tone]string{
	TonePositive:       "The overall energy of this draw is supportive and open.",
	ToneChallenging:    "The overall energy of this draw asks something difficult of you, and honesty will serve you best.",
	ToneBalanced:       "The overall energy of this draw holds light and shadow in roughly equal measure.",
	ToneSignificant:    "The overall energy of this draw carries unusual weight; pay close attention.",
	ToneTransformative: "The overall energy of this draw signals deep change already underway.",
}

// Introduction is fully deterministic: a theme paragraph plus a tone clause.
func Introduction(theme Theme, tone Tone) string {
	intro, ok := themeIntros[theme]
	if !ok {
		intro = themeIntros[ThemeGeneral]
	}
	closer, ok := toneClosers[tone]
	if !ok {
		closer = toneClosers[ToneBalanced]
	}
	return intro + " " + closer
}

var themeInteractionClosers = map[Theme]string{
	ThemeRelationship: "Read together, the cards describe how you give and receive within your connections.",
	ThemeCareer:       "Read together, the cards describe the trajectory of your efforts and what supports or resists them.",
	ThemeHealth:       "Read together, the cards describe the interplay of strain and recovery in your life.",
	ThemeSpiritual:    "Read together, the cards describe where your inner work is leading.",
	ThemeGeneral:      "Read together, the cards form a single conversation rather than isolated voices.",
}

// CardInteractions derives the cross-card narrative: a reversal-pattern
// sentence, an optional progression sentence, and a theme closing.
func CardInteractions(cards []domain.DrawnCard, theme Theme) string {
	reversed := 0
	majors := 0
	for _, c := range cards {
		if c.Orientation == domain.Reversed {
			reversed++
		}
		if c.Arcana == domain.MajorArcana {
			majors++
		}
	}

	var pattern string
	switch {
	case len(cards) > 0 && reversed == len(cards):
		pattern = "Every card in this spread appears reversed, a strong sign that the situation calls for inner work before outward action."
	case reversed == 0:
		pattern = "All cards appear upright, suggesting the energies here flow freely and without obstruction."
	default:
		pattern = "The mix of upright and reversed cards shows a situation in motion, with some energies flowing and others blocked."
	}

	parts := []string{pattern}
	if progression := progressionSentence(cards, majors); progression != "" {
		parts = append(parts, progression)
	}

	closer, ok := themeInteractionClosers[theme]
	if !ok {
		closer = themeInteractionClosers[ThemeGeneral]
	}
	parts = append(parts, closer)

	return strings.Join(parts, " ")
}

func progressionSentence(cards []domain.DrawnCard, majors int) string {
	if len(cards) >= 2 {
		first := cardSuit(cards[0].Card)
		last := cardSuit(cards[len(cards)-1].Card)
		if first != "" && first == last {
			return fmt.Sprintf("The spread opens and closes in the suit of %s, framing the whole reading within that element.", suitTitle(first))
		}
	}
	if majors >= 2 {
		return "With more than one major arcana present, larger forces than everyday circumstance are at work in this reading."
	}
	return ""
}

func suitTitle(s domain.Suit) string {
	switch s {
	case domain.Cups:
		return "Cups"
	case domain.Swords:
		return "Swords"
	case domain.Wands:
		return "Wands"
	case domain.Pentacles:
		return "Pentacles"
	}
	return string(s)
}

var themeGuidance = map[Theme]string{
	ThemeRelationship: "Let the cards remind you that connection is built in small, honest moments; bring what you have seen here into your next conversation.",
	ThemeCareer:       "Treat this reading as a planning tool: name one concrete step your work situation needs, and take it this week.",
	ThemeHealth:       "Listen to what your body and the cards are both telling you, and favor the gentler option where you have a choice.",
	ThemeSpiritual:    "Make room for stillness in the days ahead; the insights of this reading deepen with quiet attention.",
	ThemeGeneral:      "Carry the imagery of these cards with you and notice where your days echo what you have seen here.",
}

var toneModifiers = map[Tone]string{
	TonePositive:       "Momentum is with you, so act while the way is open.",
	ToneChallenging:    "Move slowly and deliberately; the harder path in this reading is also the more honest one.",
	ToneBalanced:       "Neither force nor retreat is called for, only steady attention.",
	ToneSignificant:    "Decisions made now will echo further than usual, so choose with care.",
	ToneTransformative: "Resist the urge to hold the old shape of things; let the change complete itself.",
}

// Guidance concatenates the theme paragraph, the tone modifier, and an
// optional specific-advice clause. The Swords+Cups combination takes
// precedence over a reversed major arcana.
func Guidance(cards []domain.DrawnCard, theme Theme, tone Tone) string {
	base, ok := themeGuidance[theme]
	if !ok {
		base = themeGuidance[ThemeGeneral]
	}
	modifier, ok := toneModifiers[tone]
	if !ok {
		modifier = toneModifiers[ToneBalanced]
	}

	parts := []string{base, modifier}
	if advice := specificAdvice(cards); advice != "" {
		parts = append(parts, advice)
	}
	return strings.Join(parts, " ")
}

func specificAdvice(cards []domain.DrawnCard) string {
	var hasSwords, hasCups, reversedMajor bool
	for _, c := range cards {
		switch cardSuit(c.Card) {
		case domain.Swords:
			hasSwords = true
		case domain.Cups:
			hasCups = true
		}
		if c.Arcana == domain.MajorArcana && c.Orientation == domain.Reversed {
			reversedMajor = true
		}
	}
	if hasSwords && hasCups {
		return "With both Swords and Cups present, weigh what you think against what you feel before committing to either."
	}
	if reversedMajor {
		return "A reversed major arcana asks you to look inward before acting; the obstacle here is as much internal as external."
	}
	return ""
}

var generalQuestions = []string{
	"What part of this reading resonated most strongly with you, and why?",
	"If these cards described a close friend's situation, what would you tell them?",
	"What would change if you fully trusted the message of this reading?",
}

var themeQuestions = map[Theme][]string{
	ThemeRelationship: {
		"What do you need from your closest relationships that you have not yet asked for?",
		"Where in your connections are you giving from obligation rather than love?",
		"What old pattern in relationships are you ready to leave behind?",
	},
	ThemeCareer: {
		"What does success actually look like for you, apart from anyone else's definition?",
		"Which current effort deserves more of your energy, and which deserves less?",
		"What risk in your working life have you been postponing?",
	},
	ThemeHealth: {
		"What is your body asking for that you keep overriding?",
		"Which habit most supports your wellbeing, and which most undermines it?",
		"What would resting without guilt look like this week?",
	},
	ThemeSpiritual: {
		"What practice reliably returns you to yourself?",
		"Where do you feel most connected to something larger than you?",
		"What belief have you outgrown without yet admitting it?",
	},
	ThemeGeneral: {
		"What question were you really asking beneath the one you wrote down?",
		"What in your life right now deserves more curiosity and less judgment?",
		"What are you waiting for permission to do?",
	},
}

var toneQuestions = map[Tone][]string{
	ToneChallenging: {
		"What difficulty named in this reading have you been avoiding?",
		"Who could support you through the challenge these cards describe?",
	},
	ToneTransformative: {
		"What is ending in your life right now, and what is it making room for?",
		"How would you act differently if you trusted this change completely?",
	},
	ToneSignificant: {
		"What makes this moment in your life feel weightier than usual?",
	},
}

var cardQuestions = map[string]string{
	"The Fool":  "What new beginning is asking for your trust?",
	"Death":     "What are you being asked to release so something else can begin?",
	"The World": "What cycle in your life is reaching completion?",
}

var courtRanks = []string{"Page", "Knight", "Queen", "King"}

const courtQuestion = "Which person in your life, or which side of yourself, does the court card in this spread represent?"

// ReflectionQuestions pools general, theme, tone, and card-conditional
// questions, shuffles with the RNG, and returns at most five.
func ReflectionQuestions(cards []domain.DrawnCard, theme Theme, tone Tone, rng domain.RNG) []string {
	pool := make([]string, 0, 12)
	pool = append(pool, generalQuestions...)
	if qs, ok := themeQuestions[theme]; ok {
		pool = append(pool, qs...)
	}
	pool = append(pool, toneQuestions[tone]...)

	court := false
	for _, c := range cards {
		if q, ok := cardQuestions[c.Name]; ok {
			pool = append(pool, q)
		}
		for _, rank := range courtRanks {
			if strings.HasPrefix(c.Name, rank+" of ") {
				court = true
			}
		}
	}
	if court {
		pool = append(pool, courtQuestion)
	}

	for i := len(pool) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		pool[i], pool[j] = pool[j], pool[i]
	}

	if len(pool) > 5 {
		pool = pool[:5]
	}
	return pool
}
