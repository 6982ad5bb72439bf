package domain

import "math/rand"

// NewDeck returns every card identifier in [0, size), in ascending order.
func NewDeck(size int) []Card {
	deck := make([]Card, size)
	for i := range deck {
		deck[i] = Card(i)
	}
	return deck
}

// ShuffleDeck returns a shuffled copy of the given deck. The caller owns the
// result; the input is left untouched.
func ShuffleDeck(deck []Card) []Card {
	out := make([]Card, len(deck))
	copy(out, deck)
	rand.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// Draw removes and returns the top n cards of the deck (or fewer, if the
// deck is shorter than n), along with the remaining deck.
func Draw(deck []Card, n int) (drawn []Card, rest []Card) {
	if n > len(deck) {
		n = len(deck)
	}
	return deck[:n], deck[n:]
}
