package ports

import "setengine/internal/domain"

// SetTester is the combinatorial set-testing utility the core consumes. It
// must be pure and safe for concurrent use: the table calls it under its own
// mutex, and the dealer calls it under the table mutex during adjudication.
type SetTester interface {
	// TestSet reports whether the three given cards form a legal set.
	TestSet(cards [domain.SetSize]domain.Card) bool

	// FindSets enumerates up to maxResults legal triplets drawn from cards.
	// maxResults <= 0 means unbounded.
	FindSets(cards []domain.Card, maxResults int) [][domain.SetSize]domain.Card

	// CardToFeatures decomposes a card into its feature vector.
	CardToFeatures(c domain.Card) [domain.FeatureCount]int
}
