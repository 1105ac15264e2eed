package domain

// DrawCards draws one unique card per spread position using the provided
// RNG. Cards are bound to positions in spread order. Orientation is 50/50
// upright/reversed.
func DrawCards(deck Deck, spread SpreadDefinition, rng RNG) ([]DrawnCard, error) {
	n := len(spread.Positions)
	if n < 1 {
		return nil, ErrEmptySpread
	}
	if n > len(deck.Cards) {
		return nil, ErrSpreadExceedsDeck
	}

	// Fisher-Yates partial shuffle: only the first n elements matter.
	indices := make([]int, len(deck.Cards))
	for i := range indices {
		indices[i] = i
	}
	for i := len(indices) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		indices[i], indices[j] = indices[j], indices[i]
	}

	cards := make([]DrawnCard, n)
	for i, pos := range spread.Positions {
		orientation := Upright
		if rng.Intn(2) == 1 {
			orientation = Reversed
		}
		cards[i] = DrawnCard{
			Card:         deck.Cards[indices[i]],
			Position:     pos.ID,
			PositionName: pos.Name,
			Orientation:  orientation,
		}
	}

	return cards, nil
}
