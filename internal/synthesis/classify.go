// Package synthesis generates structured tarot interpretations from a
// question and a completed draw. All text comes from fixed lookup tables;
// the only variation between identical inputs is where an RNG is supplied
// (summary adjective, reflection-question shuffle).
package synthesis

import (
	"strings"

	"github.com/randomtoy/arcana-go/internal/domain"
)

// Theme is the coarse subject-matter classification of a question.
type Theme string

const (
	ThemeRelationship Theme = "relationship"
	ThemeCareer       Theme = "career"
	ThemeHealth       Theme = "health"
	ThemeSpiritual    Theme = "spiritual"
	ThemeGeneral      Theme = "general"
)

// Tone is the coarse emotional valence of a reading, derived from
// orientation and arcana ratios.
type Tone string

const (
	TonePositive       Tone = "positive"
	ToneChallenging    Tone = "challenging"
	ToneBalanced       Tone = "balanced"
	ToneSignificant    Tone = "significant"
	ToneTransformative Tone = "transformative"
)

// themeOrder fixes the priority of theme matching: the first theme whose
// keyword set matches the question wins. No scoring, no blending.
var themeOrder = []Theme{ThemeRelationship, ThemeCareer, ThemeHealth, ThemeSpiritual}

var themeKeywords = map[Theme][]string{
	ThemeRelationship: {
		"love", "relationship", "partner", "romance", "romantic",
		"marriage", "boyfriend", "girlfriend", "crush", "heart", "dating",
	},
	ThemeCareer: {
		"career", "job", "work", "business", "money", "promotion",
		"finance", "financial", "profession", "salary", "interview",
	},
	ThemeHealth: {
		"health", "healing", "body", "illness", "sick", "wellness",
		"recovery", "energy",
	},
	ThemeSpiritual: {
		"spiritual", "spirit", "soul", "purpose", "meaning", "path",
		"growth", "meditation", "awakening",
	},
}

// Classify derives the theme of the question and the tone of the draw.
// It always returns a value: an empty or unmatched question yields
// ThemeGeneral, an empty draw yields ToneBalanced.
func Classify(question string, cards []domain.DrawnCard) (Theme, Tone) {
	return classifyTheme(question), classifyTone(cards)
}

func classifyTheme(question string) Theme {
	q := strings.ToLower(question)
	for _, theme := range themeOrder {
		for _, kw := range themeKeywords[theme] {
			if strings.Contains(q, kw) {
				return theme
			}
		}
	}
	return ThemeGeneral
}

func classifyTone(cards []domain.DrawnCard) Tone {
	n := len(cards)
	if n == 0 {
		return ToneBalanced
	}

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

	// Strictly more than half reversed reads as challenging; exactly half
	// stays balanced.
	tone := ToneBalanced
	switch {
	case 2*reversed > n:
		tone = ToneChallenging
	case reversed == 0:
		tone = TonePositive
	}

	if 2*majors > n {
		if tone == ToneChallenging {
			return ToneTransformative
		}
		return ToneSignificant
	}
	return tone
}
