package synthesis

import (
	"fmt"
	"strings"

	"github.com/randomtoy/arcana-go/internal/ports"
)

// BuildPrompt renders the draw as a natural-language prompt for a remote
// language model. The OpenRouter adapter sends this as the user message;
// the in-process synthesizer never needs it.
func BuildPrompt(in ports.InterpretInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Spread: %s (%d positions)\n\nCards drawn:\n", in.Spread.Name, len(in.Spread.Positions))

	for _, card := range in.Cards {
		fmt.Fprintf(&b, "  %s: %s (%s)\n", card.PositionName, card.Name, card.Orientation)
		if len(card.Keywords) > 0 {
			fmt.Fprintf(&b, "    Keywords: %s\n", strings.Join(card.Keywords, ", "))
		}
		meaning := card.Meanings.Upright
		if card.Orientation == "reversed" {
			meaning = card.Meanings.Reversed
		}
		if meaning != "" {
			fmt.Fprintf(&b, "    Meaning: %s\n", meaning)
		}
	}

	if in.Question != "" {
		fmt.Fprintf(&b, "\nThe querent asks: %q\n", in.Question)
	}

	b.WriteString("\nProvide a cohesive interpretation as a single JSON object.")
	return b.String()
}
