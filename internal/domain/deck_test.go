package domain

import (
	"sort"
	"testing"
)

func TestNewDeckReturnsEveryIdentifierOnceInAscendingOrder(t *testing.T) {
	deck := NewDeck(81)
	if len(deck) != 81 {
		t.Fatalf("expected 81 cards, got %d", len(deck))
	}
	for i, c := range deck {
		if c != Card(i) {
			t.Fatalf("expected deck[%d] == %d, got %d", i, i, c)
		}
	}
}

func TestShuffleDeckIsAPermutationAndLeavesTheInputUntouched(t *testing.T) {
	deck := NewDeck(81)
	original := make([]Card, len(deck))
	copy(original, deck)

	shuffled := ShuffleDeck(deck)

	for i, c := range deck {
		if c != original[i] {
			t.Fatalf("expected ShuffleDeck not to mutate its input, deck[%d] changed from %d to %d", i, original[i], c)
		}
	}

	if len(shuffled) != len(deck) {
		t.Fatalf("expected shuffled deck to keep length %d, got %d", len(deck), len(shuffled))
	}
	sortedShuffled := make([]Card, len(shuffled))
	copy(sortedShuffled, shuffled)
	sort.Slice(sortedShuffled, func(i, j int) bool { return sortedShuffled[i] < sortedShuffled[j] })
	for i, c := range sortedShuffled {
		if c != Card(i) {
			t.Fatalf("expected shuffled deck to be a permutation of [0,%d), missing or duplicated %d", len(deck), i)
		}
	}
}

func TestDrawSplitsTheDeckAtN(t *testing.T) {
	deck := NewDeck(10)

	drawn, rest := Draw(deck, 3)
	if len(drawn) != 3 || len(rest) != 7 {
		t.Fatalf("expected 3 drawn and 7 remaining, got %d and %d", len(drawn), len(rest))
	}
	if drawn[0] != 0 || drawn[2] != 2 {
		t.Fatalf("expected the top 3 cards drawn in order, got %v", drawn)
	}
	if rest[0] != 3 {
		t.Fatalf("expected the remaining deck to start at card 3, got %v", rest)
	}
}

func TestDrawClampsNToTheDeckLength(t *testing.T) {
	deck := NewDeck(3)

	drawn, rest := Draw(deck, 10)
	if len(drawn) != 3 {
		t.Fatalf("expected drawing more than the deck size to clamp to %d, got %d", len(deck), len(drawn))
	}
	if len(rest) != 0 {
		t.Fatalf("expected no cards left after drawing the whole deck, got %v", rest)
	}
}
